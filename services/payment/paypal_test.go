package payment

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"meddirect/models"
)

// paypalStub wires a fake PayPal API onto an httptest server. tokenHits
// counts oauth fetches so tests can assert the cache works.
type paypalStub struct {
	tokenHits     int32
	captureStatus string
	captureCode   int
}

func newPaypalStub(t *testing.T) (*paypalStub, *PaypalAdapter) {
	t.Helper()
	stub := &paypalStub{captureStatus: "COMPLETED", captureCode: http.StatusCreated}

	mux := http.NewServeMux()
	mux.HandleFunc("/v1/oauth2/token", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		if user, pass, ok := r.BasicAuth(); !ok || user != "client-1" || pass != "secret-1" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		n := atomic.AddInt32(&stub.tokenHits, 1)
		json.NewEncoder(w).Encode(map[string]any{
			"access_token": fmt.Sprintf("tok_%d", n),
			"expires_in":   3600,
		})
	})
	mux.HandleFunc("/v2/checkout/orders", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") == "" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]any{
			"id":     "ORDER-1",
			"status": "CREATED",
			"links": []map[string]string{
				{"rel": "self", "href": "https://api.test/v2/checkout/orders/ORDER-1"},
				{"rel": "approve", "href": "https://www.test/checkoutnow?token=ORDER-1"},
			},
		})
	})
	mux.HandleFunc("/v2/checkout/orders/ORDER-1/capture", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(stub.captureCode)
		json.NewEncoder(w).Encode(map[string]any{
			"id":     "ORDER-1",
			"status": stub.captureStatus,
			"purchase_units": []map[string]any{
				{"payments": map[string]any{
					"captures": []map[string]string{{"id": "CAPTURE-1", "status": stub.captureStatus}},
				}},
			},
		})
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	adapter := &PaypalAdapter{
		clientID:     "client-1",
		clientSecret: "secret-1",
		webhookID:    "wh-1",
		baseURL:      srv.URL,
		returnURL:    "http://localhost:3000",
		httpClient:   srv.Client(),
	}
	return stub, adapter
}

func TestPaypalCreateSession(t *testing.T) {
	ctx := context.Background()

	t.Run("returns the order id and approval link", func(t *testing.T) {
		_, adapter := newPaypalStub(t)

		session, err := adapter.CreateSession(ctx, models.ChargeRequest{
			AppointmentID: "appt-1", Amount: 500, Currency: "inr",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if session.SessionID != "ORDER-1" || session.OrderID != "ORDER-1" {
			t.Fatalf("order id not carried through: %+v", session)
		}
		if session.RedirectURL != "https://www.test/checkoutnow?token=ORDER-1" {
			t.Fatalf("approval link not picked: %q", session.RedirectURL)
		}
		if session.Currency != "INR" {
			t.Fatalf("currency not normalized: %q", session.Currency)
		}
	})

	t.Run("reuses the cached oauth token", func(t *testing.T) {
		stub, adapter := newPaypalStub(t)

		for i := 0; i < 2; i++ {
			if _, err := adapter.CreateSession(ctx, models.ChargeRequest{
				AppointmentID: "appt-1", Amount: 500, Currency: "INR",
			}); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		}
		if hits := atomic.LoadInt32(&stub.tokenHits); hits != 1 {
			t.Fatalf("token fetched %d times, want 1", hits)
		}
	})

	t.Run("fetches a fresh token after expiry", func(t *testing.T) {
		stub, adapter := newPaypalStub(t)

		if _, err := adapter.CreateSession(ctx, models.ChargeRequest{
			AppointmentID: "appt-1", Amount: 500, Currency: "INR",
		}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		adapter.mu.Lock()
		adapter.tokenExpiry = time.Now().Add(-time.Second)
		adapter.mu.Unlock()

		if _, err := adapter.CreateSession(ctx, models.ChargeRequest{
			AppointmentID: "appt-1", Amount: 500, Currency: "INR",
		}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if hits := atomic.LoadInt32(&stub.tokenHits); hits != 2 {
			t.Fatalf("token fetched %d times, want 2", hits)
		}
	})
}

func TestPaypalVerifyConfirmation(t *testing.T) {
	ctx := context.Background()

	t.Run("completed capture yields the capture id", func(t *testing.T) {
		_, adapter := newPaypalStub(t)

		paymentID, data, err := adapter.VerifyConfirmation(ctx, models.ConfirmRequest{OrderID: "ORDER-1"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if paymentID != "CAPTURE-1" {
			t.Fatalf("expected the capture id, got %q", paymentID)
		}
		if data["orderId"] != "ORDER-1" || data["captureId"] != "CAPTURE-1" {
			t.Fatalf("confirmation data incomplete: %v", data)
		}
	})

	t.Run("non-completed capture declines", func(t *testing.T) {
		stub, adapter := newPaypalStub(t)
		stub.captureStatus = "DECLINED"

		if _, _, err := adapter.VerifyConfirmation(ctx, models.ConfirmRequest{OrderID: "ORDER-1"}); !errors.Is(err, ErrVerificationFailed) {
			t.Fatalf("expected ErrVerificationFailed, got %v", err)
		}
	})

	t.Run("capture API failure declines", func(t *testing.T) {
		stub, adapter := newPaypalStub(t)
		stub.captureCode = http.StatusUnprocessableEntity

		if _, _, err := adapter.VerifyConfirmation(ctx, models.ConfirmRequest{OrderID: "ORDER-1"}); !errors.Is(err, ErrVerificationFailed) {
			t.Fatalf("expected ErrVerificationFailed, got %v", err)
		}
	})

	t.Run("missing order id declines without a round trip", func(t *testing.T) {
		stub, adapter := newPaypalStub(t)

		if _, _, err := adapter.VerifyConfirmation(ctx, models.ConfirmRequest{}); !errors.Is(err, ErrVerificationFailed) {
			t.Fatalf("expected ErrVerificationFailed, got %v", err)
		}
		if atomic.LoadInt32(&stub.tokenHits) != 0 {
			t.Fatal("no API call expected for an empty order id")
		}
	})
}
