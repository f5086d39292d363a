package razorpay_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/karbo/karbo-api/internal/pkg/razorpay"
)

func newTestClient(baseURL string) *razorpay.Client {
	return razorpay.NewClient(razorpay.Config{
		BaseURL:   baseURL,
		KeyID:     "rzp_test_key",
		KeySecret: "rzp_test_secret",
	})
}

func TestCreateOrderSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/v1/orders" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		user, pass, ok := r.BasicAuth()
		if !ok || user != "rzp_test_key" || pass != "rzp_test_secret" {
			t.Error("missing or wrong basic auth")
		}

		var req razorpay.CreateOrderRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req.Amount != 150000 || req.Currency != "INR" {
			t.Errorf("unexpected order payload: %+v", req)
		}

		json.NewEncoder(w).Encode(razorpay.Order{
			ID:       "order_test123",
			Amount:   req.Amount,
			Currency: req.Currency,
			Status:   "created",
		})
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	order, err := client.CreateOrder(context.Background(), razorpay.CreateOrderRequest{
		Amount:   150000,
		Currency: "INR",
		Receipt:  "listing-abc",
	})
	if err != nil {
		t.Fatalf("CreateOrder failed: %v", err)
	}
	if order.ID != "order_test123" {
		t.Errorf("expected order_test123, got %s", order.ID)
	}
	if order.Amount != 150000 {
		t.Errorf("expected amount 150000, got %d", order.Amount)
	}
}

func TestCreateOrderServerErrorIsRetryable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	_, err := client.CreateOrder(context.Background(), razorpay.CreateOrderRequest{Amount: 100})
	if !errors.Is(err, razorpay.ErrGatewayUnavailable) {
		t.Fatalf("expected ErrGatewayUnavailable, got %v", err)
	}
}

func TestCreateOrderTransportErrorIsRetryable(t *testing.T) {
	// Closed server: connection refused.
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	server.Close()

	client := newTestClient(server.URL)
	_, err := client.CreateOrder(context.Background(), razorpay.CreateOrderRequest{Amount: 100})
	if !errors.Is(err, razorpay.ErrGatewayUnavailable) {
		t.Fatalf("expected ErrGatewayUnavailable, got %v", err)
	}
}

func TestCreateOrderRejectedIsNotRetryable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":{"description":"bad key"}}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	_, err := client.CreateOrder(context.Background(), razorpay.CreateOrderRequest{Amount: 100})
	if err == nil {
		t.Fatal("expected error")
	}
	if errors.Is(err, razorpay.ErrGatewayUnavailable) {
		t.Fatal("auth rejection must not be marked retryable")
	}
}

func TestCreateOrderValidation(t *testing.T) {
	client := newTestClient("http://localhost:1")
	if _, err := client.CreateOrder(context.Background(), razorpay.CreateOrderRequest{Amount: 0}); err == nil {
		t.Fatal("expected error for zero amount")
	}
	if _, err := client.CreateOrder(context.Background(), razorpay.CreateOrderRequest{Amount: -5}); err == nil {
		t.Fatal("expected error for negative amount")
	}
}
