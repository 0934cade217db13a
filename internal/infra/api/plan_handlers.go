package api

import (
	"net/http"

	"engagesphere/internal/domain/model"
	"engagesphere/internal/usecase"
)

func (s *Server) handlePlanAll(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Search  string `json:"search"`
		Page    int    `json:"page"`
		PerPage int    `json:"perPage"`
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
	plans, total, err := s.planUC.List(r.Context(), req.Search, (req.Page-1)*req.PerPage, req.PerPage)
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, "plans", envelope{"plans": plans, "total": total, "page": req.Page})
}

func (s *Server) handlePlanGetByID(w http.ResponseWriter, r *http.Request) {
	var req struct {
		PlanID string `json:"planId"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	plan, err := s.planUC.GetByID(r.Context(), req.PlanID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, "plan", envelope{"plan": plan})
}

func (s *Server) handlePlanGetByName(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	plan, err := s.planUC.GetByName(r.Context(), req.Name)
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, "plan", envelope{"plan": plan})
}

func (s *Server) handlePlanCreate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name           string              `json:"name"`
		DurationMonths int                 `json:"durationMonths"`
		Pricing        []model.PricingTier `json:"pricing"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	plan, err := s.planUC.Create(r.Context(), req.Name, req.DurationMonths, req.Pricing)
	if err != nil {
		respondError(w, err)
		return
	}
	respondCreated(w, "plan created", envelope{"plan": plan})
}

func (s *Server) handlePlanUpdate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		PlanID string `json:"planId"`
		usecase.UpdatePlanInput
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	plan, err := s.planUC.Update(r.Context(), req.PlanID, req.UpdatePlanInput)
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, "plan updated", envelope{"plan": plan})
}

func (s *Server) handlePlanDelete(w http.ResponseWriter, r *http.Request) {
	var req struct {
		PlanID string `json:"planId"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := s.planUC.Delete(r.Context(), req.PlanID); err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, "plan deleted", nil)
}

func (s *Server) handlePlanDeletePricing(w http.ResponseWriter, r *http.Request) {
	var req struct {
		PlanID    string `json:"planId"`
		PricingID string `json:"pricingId"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	plan, err := s.planUC.DeletePricing(r.Context(), req.PlanID, req.PricingID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, "pricing removed", envelope{"plan": plan})
}
