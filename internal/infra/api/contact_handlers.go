package api

import (
	"net/http"

	"engagesphere/internal/domain/model"
)

func (s *Server) handleContactSubmit(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name        string `json:"user_name"`
		Email       string `json:"user_email"`
		ServiceType string `json:"serviceType"`
		Platform    string `json:"platform"`
		Message     string `json:"message"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	contact, err := s.contactUC.Submit(r.Context(), req.Name, req.Email, model.ServiceType(req.ServiceType), req.Platform, req.Message)
	if err != nil {
		respondError(w, err)
		return
	}
	respondCreated(w, "message received", envelope{"contact": contact})
}

func (s *Server) handleContactAll(w http.ResponseWriter, r *http.Request) {
	contacts, err := s.contactUC.ListAll(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, "contacts", envelope{"contacts": contacts})
}

func (s *Server) handleCountryGetAll(w http.ResponseWriter, r *http.Request) {
	countries, err := s.countryUC.ListAll(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, "countries", envelope{"countries": countries})
}
