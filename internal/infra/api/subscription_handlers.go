package api

import (
	"net/http"

	"engagesphere/internal/infra/metrics"
	"engagesphere/internal/usecase"
)

func actorFrom(r *http.Request) usecase.Actor {
	id, _ := IdentityFrom(r.Context())
	return usecase.Actor{UserID: id.UserID, IsAdmin: id.IsAdmin}
}

func (s *Server) handleSubscriptionUser(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserID string `json:"userId"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	actor := actorFrom(r)
	if req.UserID == "" {
		req.UserID = actor.UserID
	}
	subs, err := s.subUC.ListByUser(r.Context(), actor, req.UserID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, "subscriptions", envelope{"subscriptions": subs})
}

func (s *Server) handleSubscriptionCancel(w http.ResponseWriter, r *http.Request) {
	var req struct {
		SubscriptionID string `json:"subscriptionId"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	sub, err := s.subUC.Cancel(r.Context(), actorFrom(r), req.SubscriptionID)
	if err != nil {
		respondError(w, err)
		return
	}
	metrics.IncSubscriptionTransition("active", string(sub.Status))
	respondOK(w, "subscription cancelled", envelope{"subscription": sub})
}

func (s *Server) handleSubscriptionUpdate(w http.ResponseWriter, r *http.Request) {
	var req usecase.UpdateSubscriptionInput
	if !decodeJSON(w, r, &req) {
		return
	}
	sub, err := s.subUC.Update(r.Context(), actorFrom(r), req)
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, "subscription updated", envelope{"subscription": sub})
}

func (s *Server) handleSubscriptionRenew(w http.ResponseWriter, r *http.Request) {
	var req struct {
		SubscriptionID string `json:"subscriptionId"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	sub, err := s.subUC.Renew(r.Context(), actorFrom(r), req.SubscriptionID)
	if err != nil {
		respondError(w, err)
		return
	}
	metrics.IncSubscriptionTransition("expired", string(sub.Status))
	respondOK(w, "subscription renewed", envelope{"subscription": sub})
}
