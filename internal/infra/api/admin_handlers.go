package api

import (
	"net/http"

	"engagesphere/internal/infra/metrics"
)

func (s *Server) handleAdminLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	admin, err := s.adminUC.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		respondError(w, err)
		return
	}
	token, err := s.auth.MintAdmin(admin.ID, admin.Email)
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, "logged in", envelope{"admin": admin, "token": token})
}

func (s *Server) handleAdminForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req emailRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := s.adminUC.ForgotPassword(r.Context(), req.Email); err != nil {
		metrics.IncOTPSend("admin_reset", "error")
		s.log.Warn().Err(err).Msg("admin password reset request")
	} else {
		metrics.IncOTPSend("admin_reset", "sent")
	}
	respondOK(w, "if the account exists, a reset code was sent", nil)
}

func (s *Server) handleAdminResetPassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email       string `json:"email"`
		OTP         string `json:"otp"`
		NewPassword string `json:"newPassword"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := s.adminUC.ResetPassword(r.Context(), req.Email, req.OTP, req.NewPassword); err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, "password reset", nil)
}

func (s *Server) handleAdminUpdateEmail(w http.ResponseWriter, r *http.Request) {
	var req struct {
		NewEmail string `json:"newEmail"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	id, _ := IdentityFrom(r.Context())
	admin, err := s.adminUC.UpdateEmail(r.Context(), id.AdminID, req.NewEmail)
	if err != nil {
		respondError(w, err)
		return
	}
	// The old token embeds the previous email; hand back a fresh one.
	token, err := s.auth.MintAdmin(admin.ID, admin.Email)
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, "email updated", envelope{"admin": admin, "token": token})
}

func (s *Server) handleAdminUpdatePassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		OldPassword string `json:"oldPassword"`
		NewPassword string `json:"newPassword"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	id, _ := IdentityFrom(r.Context())
	if err := s.adminUC.UpdatePassword(r.Context(), id.AdminID, req.OldPassword, req.NewPassword); err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, "password updated", nil)
}
