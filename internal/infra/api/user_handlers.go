package api

import (
	"net/http"
	"strings"

	"engagesphere/internal/domain/ports/repository"
	"engagesphere/internal/infra/metrics"
	"engagesphere/internal/usecase"
)

type emailRequest struct {
	Email string `json:"email"`
}

type emailOTPRequest struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

func (s *Server) handleUserRequestOTP(w http.ResponseWriter, r *http.Request) {
	var req emailRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := s.userUC.RequestOTP(r.Context(), req.Email); err != nil {
		metrics.IncOTPSend("register", "error")
		respondError(w, err)
		return
	}
	metrics.IncOTPSend("register", "sent")
	respondOK(w, "otp sent", nil)
}

func (s *Server) handleUserVerifyOTP(w http.ResponseWriter, r *http.Request) {
	var req emailOTPRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := s.userUC.VerifyOTP(r.Context(), req.Email, req.OTP); err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, "email verified", nil)
}

func (s *Server) handleUserRegister(w http.ResponseWriter, r *http.Request) {
	var req usecase.RegisterInput
	if !decodeJSON(w, r, &req) {
		return
	}
	user, err := s.userUC.Register(r.Context(), req)
	if err != nil {
		respondError(w, err)
		return
	}
	token, err := s.auth.MintUser(user.ID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondCreated(w, "registered", envelope{"user": user, "token": token})
}

func (s *Server) handleUserLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	user, err := s.userUC.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		respondError(w, err)
		return
	}
	token, err := s.auth.MintUser(user.ID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, "logged in", envelope{"user": user, "token": token})
}

func (s *Server) handleUserRequestReset(w http.ResponseWriter, r *http.Request) {
	var req emailRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	// Always answer 200 so the endpoint cannot be used to enumerate accounts.
	if err := s.userUC.RequestPasswordReset(r.Context(), req.Email); err != nil {
		metrics.IncOTPSend("password_reset", "error")
		s.log.Warn().Err(err).Msg("password reset request")
	} else {
		metrics.IncOTPSend("password_reset", "sent")
	}
	respondOK(w, "if the account exists, a reset code was sent", nil)
}

func (s *Server) handleUserVerifyReset(w http.ResponseWriter, r *http.Request) {
	var req emailOTPRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := s.userUC.VerifyPasswordReset(r.Context(), req.Email, req.OTP); err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, "otp verified", nil)
}

func (s *Server) handleUserUpdatePass(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email       string `json:"email"`
		NewPassword string `json:"newPassword"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := s.userUC.UpdatePassword(r.Context(), req.Email, req.NewPassword); err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, "password updated", nil)
}

func (s *Server) handleUserGetByID(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserID string `json:"userId"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	id, _ := IdentityFrom(r.Context())
	if req.UserID == "" {
		req.UserID = id.UserID
	}
	if !id.IsAdmin && req.UserID != id.UserID {
		respond(w, http.StatusForbidden, "forbidden", nil)
		return
	}
	user, err := s.userUC.GetByID(r.Context(), req.UserID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, "user", envelope{"user": user})
}

func (s *Server) handleUserUpdate(w http.ResponseWriter, r *http.Request) {
	var req usecase.UpdateProfileInput
	if !decodeJSON(w, r, &req) {
		return
	}
	id, _ := IdentityFrom(r.Context())
	user, err := s.userUC.UpdateProfile(r.Context(), id.UserID, req)
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, "profile updated", envelope{"user": user})
}

func (s *Server) handleUserGetAll(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Search   string `json:"search"`
		SortBy   string `json:"sortBy"`
		SortDesc bool   `json:"sortDesc"`
		Page     int    `json:"page"`
		PerPage  int    `json:"perPage"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Page < 1 {
		req.Page = 1
	}
	if req.PerPage <= 0 {
		req.PerPage = 20
	}
	users, total, err := s.userUC.List(r.Context(), repository.UserListFilter{
		Search:   strings.TrimSpace(req.Search),
		SortBy:   req.SortBy,
		SortDesc: req.SortDesc,
		Offset:   (req.Page - 1) * req.PerPage,
		Limit:    req.PerPage,
	})
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, "users", envelope{"users": users, "total": total, "page": req.Page})
}

func (s *Server) handleUserAll(w http.ResponseWriter, r *http.Request) {
	users, _, err := s.userUC.List(r.Context(), repository.UserListFilter{Limit: 1000})
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, "users", envelope{"users": users})
}
