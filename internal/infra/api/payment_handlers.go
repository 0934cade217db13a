package api

import (
	"errors"
	"net/http"
	"time"

	"engagesphere/internal/domain"
	"engagesphere/internal/domain/model"
	"engagesphere/internal/infra/metrics"
	"engagesphere/internal/usecase"
)

func (s *Server) handlePaymentOrder(w http.ResponseWriter, r *http.Request) {
	var req usecase.CreateOrderInput
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

	order, payment, sub, err := s.orderUC.CreateOrder(r.Context(), req)
	if err != nil {
		respondError(w, err)
		return
	}
	metrics.IncPayment(string(payment.Status))
	metrics.IncSubscriptionTransition("", string(sub.Status))
	respondCreated(w, "order created", envelope{
		"order":        order,
		"payment":      payment,
		"subscription": sub,
	})
}

func (s *Server) handlePaymentVerify(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	var req usecase.VerifyPaymentInput
	if err := decodeVerify(w, r, &req); err != nil {
		metrics.PaymentVerifyRequests.WithLabelValues("fail", "bad_json").Inc()
		metrics.PaymentVerifyDuration.WithLabelValues("fail").Observe(time.Since(start).Seconds())
		return
	}

	payment, sub, replayed, err := s.orderUC.VerifyPayment(r.Context(), req)
	if err != nil {
		reason := "unknown"
		switch {
		case errors.Is(err, domain.ErrInvalidSignature):
			reason = "bad_signature"
		case errors.Is(err, domain.ErrPaymentNotCaptured):
			reason = "not_captured"
		case errors.Is(err, domain.ErrInvalidArgument), errors.Is(err, domain.ErrNotFound):
			reason = "bad_json"
		default:
			reason = "gateway_error"
		}
		metrics.PaymentVerifyRequests.WithLabelValues("fail", reason).Inc()
		metrics.PaymentVerifyDuration.WithLabelValues("fail").Observe(time.Since(start).Seconds())
		if payment != nil {
			metrics.IncPayment(string(payment.Status))
		}
		respondError(w, err)
		return
	}

	metrics.PaymentVerifyRequests.WithLabelValues("ok", "").Inc()
	metrics.PaymentVerifyDuration.WithLabelValues("ok").Observe(time.Since(start).Seconds())
	// A replayed callback reports the stored state; counting it again would
	// double revenue and the pending->active transition.
	if !replayed {
		metrics.IncPayment(string(model.PaymentStatusPaid))
		metrics.AddPaymentRevenue(payment.Currency, payment.Amount)
		if sub != nil {
			metrics.IncSubscriptionTransition(string(model.SubscriptionStatusPending), string(sub.Status))
		}
	}
	respondOK(w, "payment verified", envelope{
		"payment":      payment,
		"subscription": sub,
	})
}

// decodeVerify exists so the verify handler can count malformed bodies
// separately from domain failures.
func decodeVerify(w http.ResponseWriter, r *http.Request, dst *usecase.VerifyPaymentInput) error {
	if !decodeJSON(w, r, dst) {
		return domain.ErrInvalidArgument
	}
	return nil
}
