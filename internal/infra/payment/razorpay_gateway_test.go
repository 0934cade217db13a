//go:build !integration

package payment

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"net/http/httptest"
	"testing"

	"engagesphere/internal/config"
)

func newTestGateway(baseURL string) *RazorpayGateway {
	return NewRazorpayGateway(&config.RazorpayConfig{
		KeyID:     "rzp_test_key",
		KeySecret: "secret",
		BaseURL:   baseURL,
	})
}

func sign(secret, orderID, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

func TestVerifySignature(t *testing.T) {
	g := newTestGateway("http://unused")

	good := sign("secret", "order_1", "pay_1")
	if !g.VerifySignature("order_1", "pay_1", good) {
		t.Fatal("valid signature rejected")
	}

	// Any single-character tamper must fail.
	tampered := []byte(good)
	if tampered[0] == 'a' {
		tampered[0] = 'b'
	} else {
		tampered[0] = 'a'
	}
	if g.VerifySignature("order_1", "pay_1", string(tampered)) {
		t.Fatal("tampered signature accepted")
	}

	// A signature over different IDs must fail too.
	if g.VerifySignature("order_2", "pay_1", good) {
		t.Fatal("signature accepted for the wrong order")
	}
	if g.VerifySignature("order_1", "pay_1", "") {
		t.Fatal("empty signature accepted")
	}
}

func TestCreateOrder(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/orders" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if user, pass, ok := r.BasicAuth(); !ok || user != "rzp_test_key" || pass != "secret" {
			t.Error("missing or wrong basic auth")
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"order_abc","amount":2499,"currency":"USD","receipt":"rcpt_1","status":"created"}`))
	}))
	defer srv.Close()

	g := newTestGateway(srv.URL)
	order, err := g.CreateOrder(context.Background(), 2499, "USD", "rcpt_1")
	if err != nil {
		t.Fatalf("create order: %v", err)
	}
	if order.ID != "order_abc" || order.Amount != 2499 || order.Status != "created" {
		t.Fatalf("unexpected order: %+v", order)
	}
}

func TestCreateOrderGatewayError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":{"code":"BAD_REQUEST_ERROR","description":"amount too small"}}`))
	}))
	defer srv.Close()

	g := newTestGateway(srv.URL)
	if _, err := g.CreateOrder(context.Background(), 1, "USD", "rcpt_1"); err == nil {
		t.Fatal("expected gateway error")
	}
}

func TestFetchPayment(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/payments/pay_9" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"pay_9","order_id":"order_abc","amount":2499,"status":"captured"}`))
	}))
	defer srv.Close()

	g := newTestGateway(srv.URL)
	p, err := g.FetchPayment(context.Background(), "pay_9")
	if err != nil {
		t.Fatalf("fetch payment: %v", err)
	}
	if p.Status != "captured" || p.OrderID != "order_abc" {
		t.Fatalf("unexpected payment: %+v", p)
	}
}
