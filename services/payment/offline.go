package payment

import (
	"context"
	"net/http"

	"meddirect/models"

	"github.com/google/uuid"
)

// OfflineAdapter handles methods settled outside any gateway: bank transfer
// and pay-at-clinic. Intents record the method on the appointment with
// payment still false; settlement goes through the regular confirm path
// once the clinic has the money.
type OfflineAdapter struct {
	method string
}

func NewOfflineAdapter(method string) *OfflineAdapter {
	return &OfflineAdapter{method: method}
}

func (a *OfflineAdapter) Name() string { return a.method }

// CreateSession fabricates a local session handle. Nothing leaves the
// process; the appointment stays unpaid until settled.
func (a *OfflineAdapter) CreateSession(_ context.Context, req models.ChargeRequest) (*models.GatewaySession, error) {
	return &models.GatewaySession{
		Provider:  a.method,
		SessionID: "offline_" + uuid.New().String(),
		Amount:    req.Amount,
		Currency:  req.Currency,
	}, nil
}

// VerifyConfirmation records the settlement. There is no external party to
// check against; the confirm call itself is the settlement record.
func (a *OfflineAdapter) VerifyConfirmation(_ context.Context, req models.ConfirmRequest) (string, map[string]string, error) {
	paymentID := req.PaymentID
	if paymentID == "" {
		paymentID = "offline_" + uuid.New().String()
	}
	return paymentID, map[string]string{"settlement": "offline"}, nil
}

// VerifyWebhook always declines: no provider exists to sign a callback.
func (a *OfflineAdapter) VerifyWebhook(_ []byte, _ http.Header) (*models.WebhookEvent, error) {
	return nil, ErrVerificationFailed
}
