package payment

import (
	"context"
	"encoding/json"
	"math"
	"net/http"
	"strings"

	"meddirect/models"
	"meddirect/utils"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
	"github.com/stripe/stripe-go/v76/webhook"
	"go.uber.org/zap"
)

// StripeAdapter charges via Stripe PaymentIntents. The appointment id rides
// in the intent metadata so webhooks can be correlated back without a
// lookup table.
type StripeAdapter struct {
	api            *client.API
	publishableKey string
	webhookSecret  string
}

// NewStripeAdapter builds a Stripe adapter with its own API client; no
// package-global stripe.Key is set.
func NewStripeAdapter(secretKey, publishableKey, webhookSecret string) *StripeAdapter {
	api := &client.API{}
	api.Init(secretKey, nil)
	return &StripeAdapter{
		api:            api,
		publishableKey: publishableKey,
		webhookSecret:  webhookSecret,
	}
}

func (a *StripeAdapter) Name() string { return models.MethodStripe }

// CreateSession creates a PaymentIntent and hands back its client secret.
func (a *StripeAdapter) CreateSession(ctx context.Context, req models.ChargeRequest) (*models.GatewaySession, error) {
	params := &stripe.PaymentIntentParams{
		Params:      stripe.Params{Context: ctx},
		Amount:      stripe.Int64(int64(math.Round(req.Amount * 100))),
		Currency:    stripe.String(strings.ToLower(req.Currency)),
		Description: stripe.String(req.Description),
	}
	if req.UserEmail != "" {
		params.ReceiptEmail = stripe.String(req.UserEmail)
	}
	params.AddMetadata("appointmentId", req.AppointmentID)
	params.AddMetadata("userId", req.UserID)

	pi, err := a.api.PaymentIntents.New(params)
	if err != nil {
		utils.GetLogger().Error("Stripe payment intent creation failed",
			zap.String("appointmentId", req.AppointmentID), zap.Error(err))
		return nil, ErrPaymentFailed
	}

	return &models.GatewaySession{
		Provider:     models.MethodStripe,
		SessionID:    pi.ID,
		Amount:       req.Amount,
		Currency:     req.Currency,
		ClientSecret: pi.ClientSecret,
		Extra:        map[string]string{"publishableKey": a.publishableKey},
	}, nil
}

// VerifyConfirmation re-fetches the PaymentIntent and checks it succeeded.
func (a *StripeAdapter) VerifyConfirmation(ctx context.Context, req models.ConfirmRequest) (string, map[string]string, error) {
	if req.PaymentID == "" {
		return "", nil, ErrVerificationFailed
	}
	pi, err := a.api.PaymentIntents.Get(req.PaymentID, &stripe.PaymentIntentParams{Params: stripe.Params{Context: ctx}})
	if err != nil {
		utils.GetLogger().Error("Stripe payment intent lookup failed",
			zap.String("paymentId", req.PaymentID), zap.Error(err))
		return "", nil, ErrVerificationFailed
	}
	if pi.Status != stripe.PaymentIntentStatusSucceeded {
		return "", nil, ErrVerificationFailed
	}
	data := map[string]string{
		"intentId": pi.ID,
		"currency": string(pi.Currency),
	}
	return pi.ID, data, nil
}

// VerifyWebhook validates the Stripe-Signature header and normalizes the
// event envelope.
func (a *StripeAdapter) VerifyWebhook(body []byte, headers http.Header) (*models.WebhookEvent, error) {
	event, err := webhook.ConstructEvent(body, headers.Get("Stripe-Signature"), a.webhookSecret)
	if err != nil {
		return nil, ErrVerificationFailed
	}

	out := &models.WebhookEvent{
		Provider: models.MethodStripe,
		RawType:  string(event.Type),
		Type:     models.WebhookIgnored,
	}

	switch event.Type {
	case "payment_intent.succeeded", "payment_intent.payment_failed":
		var pi stripe.PaymentIntent
		if err := json.Unmarshal(event.Data.Raw, &pi); err != nil {
			return nil, ErrVerificationFailed
		}
		out.AppointmentID = pi.Metadata["appointmentId"]
		out.PaymentID = pi.ID
		out.Data = map[string]string{"intentId": pi.ID, "currency": string(pi.Currency)}
		if event.Type == "payment_intent.succeeded" {
			out.Type = models.WebhookPaymentSucceeded
		} else {
			out.Type = models.WebhookPaymentFailed
		}
	}
	return out, nil
}
