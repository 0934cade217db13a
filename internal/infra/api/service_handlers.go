package api

import (
	"net/http"

	"engagesphere/internal/domain/model"
	"engagesphere/internal/usecase"
)

func (s *Server) handleServiceGetAll(w http.ResponseWriter, r *http.Request) {
	services, err := s.serviceUC.ListAll(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, "services", envelope{"services": services})
}

func (s *Server) handleServiceGetByID(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ServiceID string `json:"serviceId"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	svc, err := s.serviceUC.GetByID(r.Context(), req.ServiceID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, "service", envelope{"service": svc})
}

func (s *Server) handleServiceCreate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Heading     string                 `json:"serviceHeading"`
		Description string                 `json:"serviceDescription"`
		Content     []model.ServiceContent `json:"serviceContent"`
		Logo        string                 `json:"logo"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	svc, err := s.serviceUC.Create(r.Context(), req.Heading, req.Description, req.Content, req.Logo)
	if err != nil {
		respondError(w, err)
		return
	}
	respondCreated(w, "service created", envelope{"service": svc})
}

func (s *Server) handleServiceUpdate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ServiceID string `json:"serviceId"`
		usecase.UpdateServiceInput
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	svc, err := s.serviceUC.Update(r.Context(), req.ServiceID, req.UpdateServiceInput)
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, "service updated", envelope{"service": svc})
}

func (s *Server) handleServiceDeleteContent(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ServiceID string `json:"serviceId"`
		ContentID string `json:"contentId"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	svc, err := s.serviceUC.DeleteContent(r.Context(), req.ServiceID, req.ContentID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, "content removed", envelope{"service": svc})
}

func (s *Server) handleServiceDelete(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ServiceID string `json:"serviceId"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := s.serviceUC.Delete(r.Context(), req.ServiceID); err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, "service deleted", nil)
}
