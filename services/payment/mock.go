package payment

import (
	"context"
	"net/http"

	"meddirect/models"

	"github.com/google/uuid"
)

// MockAdapter stands in for a provider whose credentials are placeholders.
// It is registered under the real method's name so dispatch is transparent;
// the Mock flag on the session is the only observable difference.
type MockAdapter struct {
	method string
}

func NewMockAdapter(method string) *MockAdapter {
	return &MockAdapter{method: method}
}

func (a *MockAdapter) Name() string { return a.method }

// CreateSession fabricates a session with the same field shapes a real
// adapter would return.
func (a *MockAdapter) CreateSession(_ context.Context, req models.ChargeRequest) (*models.GatewaySession, error) {
	id := "mock_" + uuid.New().String()
	return &models.GatewaySession{
		Provider:     a.method,
		SessionID:    id,
		OrderID:      id,
		Amount:       req.Amount,
		Currency:     req.Currency,
		ClientSecret: id + "_secret",
		Mock:         true,
	}, nil
}

// VerifyConfirmation accepts any confirmation in mock mode.
func (a *MockAdapter) VerifyConfirmation(_ context.Context, req models.ConfirmRequest) (string, map[string]string, error) {
	paymentID := req.PaymentID
	if paymentID == "" {
		paymentID = "mock_" + uuid.New().String()
	}
	return paymentID, map[string]string{"mock": "true"}, nil
}

// VerifyWebhook always declines: there is no authentic webhook source for
// a mock provider, and an unauthenticated success event must never flip an
// appointment to paid.
func (a *MockAdapter) VerifyWebhook(_ []byte, _ http.Header) (*models.WebhookEvent, error) {
	return nil, ErrVerificationFailed
}
