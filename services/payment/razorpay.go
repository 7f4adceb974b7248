package payment

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"time"

	"meddirect/models"
	"meddirect/utils"

	"go.uber.org/zap"
)

const razorpayBaseURL = "https://api.razorpay.com/v1"

// RazorpayAdapter creates orders against the Razorpay Orders API and checks
// the HMAC-signed confirmation triple the checkout hands back. The
// appointment id travels in the order notes.
type RazorpayAdapter struct {
	keyID         string
	keySecret     string
	webhookSecret string
	baseURL       string
	httpClient    *http.Client
}

func NewRazorpayAdapter(keyID, keySecret, webhookSecret string) *RazorpayAdapter {
	return &RazorpayAdapter{
		keyID:         keyID,
		keySecret:     keySecret,
		webhookSecret: webhookSecret,
		baseURL:       razorpayBaseURL,
		httpClient:    &http.Client{Timeout: 30 * time.Second},
	}
}

func (a *RazorpayAdapter) Name() string { return models.MethodRazorpay }

type razorpayOrderResponse struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Status   string `json:"status"`
}

// CreateSession creates a Razorpay order. Amounts are sent in paise.
func (a *RazorpayAdapter) CreateSession(ctx context.Context, req models.ChargeRequest) (*models.GatewaySession, error) {
	payload, err := json.Marshal(map[string]any{
		"amount":   int64(math.Round(req.Amount * 100)),
		"currency": req.Currency,
		"receipt":  req.AppointmentID,
		"notes": map[string]string{
			"appointmentId": req.AppointmentID,
			"userId":        req.UserID,
		},
	})
	if err != nil {
		return nil, ErrPaymentFailed
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, a.baseURL+"/orders", bytes.NewReader(payload))
	if err != nil {
		return nil, ErrPaymentFailed
	}
	httpReq.SetBasicAuth(a.keyID, a.keySecret)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := a.httpClient.Do(httpReq)
	if err != nil {
		utils.GetLogger().Error("Razorpay order creation failed",
			zap.String("appointmentId", req.AppointmentID), zap.Error(err))
		return nil, ErrPaymentFailed
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		utils.GetLogger().Error("Razorpay order creation rejected",
			zap.String("appointmentId", req.AppointmentID),
			zap.Int("status", resp.StatusCode), zap.ByteString("body", body))
		return nil, ErrPaymentFailed
	}

	var order razorpayOrderResponse
	if err := json.Unmarshal(body, &order); err != nil {
		return nil, ErrPaymentFailed
	}

	return &models.GatewaySession{
		Provider:  models.MethodRazorpay,
		SessionID: order.ID,
		OrderID:   order.ID,
		Amount:    req.Amount,
		Currency:  order.Currency,
		Extra: map[string]string{
			"keyId":     a.keyID,
			"subMethod": req.SubMethod,
		},
	}, nil
}

// VerifyConfirmation recomputes HMAC-SHA256 over "orderId|paymentId" with
// the key secret and compares it against the supplied signature. Any
// mismatch is an unconditional decline.
func (a *RazorpayAdapter) VerifyConfirmation(_ context.Context, req models.ConfirmRequest) (string, map[string]string, error) {
	if req.OrderID == "" || req.PaymentID == "" || req.Signature == "" {
		return "", nil, ErrVerificationFailed
	}
	message := fmt.Sprintf("%s|%s", req.OrderID, req.PaymentID)
	expected := hmacHex(sha256.New, []byte(message), []byte(a.keySecret))
	if !digestsEqual(expected, req.Signature) {
		return "", nil, ErrVerificationFailed
	}
	data := map[string]string{
		"orderId":   req.OrderID,
		"signature": req.Signature,
	}
	return req.PaymentID, data, nil
}

type razorpayWebhookEnvelope struct {
	Event   string `json:"event"`
	Payload struct {
		Payment struct {
			Entity struct {
				ID      string            `json:"id"`
				OrderID string            `json:"order_id"`
				Notes   map[string]string `json:"notes"`
			} `json:"entity"`
		} `json:"payment"`
	} `json:"payload"`
}

// VerifyWebhook checks the X-Razorpay-Signature HMAC over the raw body.
func (a *RazorpayAdapter) VerifyWebhook(body []byte, headers http.Header) (*models.WebhookEvent, error) {
	signature := headers.Get("X-Razorpay-Signature")
	if signature == "" {
		return nil, ErrVerificationFailed
	}
	expected := hmacHex(sha256.New, body, []byte(a.webhookSecret))
	if !digestsEqual(expected, signature) {
		return nil, ErrVerificationFailed
	}

	var envelope razorpayWebhookEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, ErrVerificationFailed
	}

	entity := envelope.Payload.Payment.Entity
	out := &models.WebhookEvent{
		Provider:      models.MethodRazorpay,
		RawType:       envelope.Event,
		Type:          models.WebhookIgnored,
		AppointmentID: entity.Notes["appointmentId"],
		PaymentID:     entity.ID,
		Data: map[string]string{
			"orderId": entity.OrderID,
		},
	}

	switch envelope.Event {
	case "payment.captured", "order.paid":
		out.Type = models.WebhookPaymentSucceeded
	case "payment.failed":
		out.Type = models.WebhookPaymentFailed
	}
	return out, nil
}
