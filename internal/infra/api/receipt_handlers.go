package api

import (
	"fmt"
	"net/http"
)

func (s *Server) handleReceiptGenerate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		OrderID string `json:"orderId"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	receipt, pdfBytes, err := s.receiptUC.Generate(r.Context(), req.OrderID)
	if err != nil {
		respondError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("X-Receipt-Id", receipt.ID)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=receipt-%s.pdf", receipt.Number))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(pdfBytes)
}

func (s *Server) handleReceiptView(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ReceiptID string `json:"receiptId"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	receipt, pdfBytes, err := s.receiptUC.View(r.Context(), req.ReceiptID)
	if err != nil {
		respondError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("X-Receipt-Id", receipt.ID)
	w.Header().Set("Content-Disposition", fmt.Sprintf("inline; filename=receipt-%s.pdf", receipt.Number))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(pdfBytes)
}
