package payment

import (
	"context"
	"crypto/sha1"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"meddirect/models"
	"meddirect/utils"

	"go.uber.org/zap"
)

// InstamojoAdapter creates payment requests against the Instamojo API. The
// appointment id is packed into the purpose field ("appointment:<id>") so
// webhook deliveries carry it back.
type InstamojoAdapter struct {
	apiKey     string
	authToken  string
	salt       string
	baseURL    string
	returnURL  string
	httpClient *http.Client
}

func NewInstamojoAdapter(apiKey, authToken, salt, baseURL, frontendURL string) *InstamojoAdapter {
	return &InstamojoAdapter{
		apiKey:     apiKey,
		authToken:  authToken,
		salt:       salt,
		baseURL:    strings.TrimRight(baseURL, "/"),
		returnURL:  strings.TrimRight(frontendURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (a *InstamojoAdapter) Name() string { return models.MethodInstamojo }

const instamojoPurposePrefix = "appointment:"

type instamojoCreateResponse struct {
	Success        bool `json:"success"`
	PaymentRequest struct {
		ID      string `json:"id"`
		LongURL string `json:"longurl"`
		Status  string `json:"status"`
	} `json:"payment_request"`
}

// CreateSession creates a payment request and returns its checkout URL.
func (a *InstamojoAdapter) CreateSession(ctx context.Context, req models.ChargeRequest) (*models.GatewaySession, error) {
	form := url.Values{}
	form.Set("purpose", instamojoPurposePrefix+req.AppointmentID)
	form.Set("amount", fmt.Sprintf("%.2f", req.Amount))
	form.Set("redirect_url", a.returnURL+"/payment/instamojo/return")
	form.Set("allow_repeated_payments", "false")
	if req.UserEmail != "" {
		form.Set("email", req.UserEmail)
		form.Set("send_email", "false")
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, a.baseURL+"/payment-requests/",
		strings.NewReader(form.Encode()))
	if err != nil {
		return nil, ErrPaymentFailed
	}
	httpReq.Header.Set("X-Api-Key", a.apiKey)
	httpReq.Header.Set("X-Auth-Token", a.authToken)
	httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := a.httpClient.Do(httpReq)
	if err != nil {
		utils.GetLogger().Error("Instamojo payment request failed",
			zap.String("appointmentId", req.AppointmentID), zap.Error(err))
		return nil, ErrPaymentFailed
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	var created instamojoCreateResponse
	if err := json.Unmarshal(body, &created); err != nil || !created.Success {
		utils.GetLogger().Error("Instamojo payment request rejected",
			zap.String("appointmentId", req.AppointmentID),
			zap.Int("status", resp.StatusCode), zap.ByteString("body", body))
		return nil, ErrPaymentFailed
	}

	return &models.GatewaySession{
		Provider:    models.MethodInstamojo,
		SessionID:   created.PaymentRequest.ID,
		Amount:      req.Amount,
		Currency:    req.Currency,
		RedirectURL: created.PaymentRequest.LongURL,
		Extra:       map[string]string{"paymentRequestId": created.PaymentRequest.ID},
	}, nil
}

// VerifyConfirmation looks the payment up under its payment request and
// requires Credit status.
func (a *InstamojoAdapter) VerifyConfirmation(ctx context.Context, req models.ConfirmRequest) (string, map[string]string, error) {
	if req.PaymentRequestID == "" || req.PaymentID == "" {
		return "", nil, ErrVerificationFailed
	}

	path := fmt.Sprintf("%s/payment-requests/%s/%s/", a.baseURL, req.PaymentRequestID, req.PaymentID)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, path, nil)
	if err != nil {
		return "", nil, ErrVerificationFailed
	}
	httpReq.Header.Set("X-Api-Key", a.apiKey)
	httpReq.Header.Set("X-Auth-Token", a.authToken)

	resp, err := a.httpClient.Do(httpReq)
	if err != nil {
		utils.GetLogger().Error("Instamojo payment lookup failed",
			zap.String("paymentRequestId", req.PaymentRequestID), zap.Error(err))
		return "", nil, ErrVerificationFailed
	}
	defer resp.Body.Close()

	var detail struct {
		Success        bool `json:"success"`
		PaymentRequest struct {
			Payment struct {
				PaymentID string `json:"payment_id"`
				Status    string `json:"status"`
			} `json:"payment"`
		} `json:"payment_request"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&detail); err != nil || !detail.Success {
		return "", nil, ErrVerificationFailed
	}
	if detail.PaymentRequest.Payment.Status != "Credit" {
		return "", nil, ErrVerificationFailed
	}

	data := map[string]string{
		"paymentRequestId": req.PaymentRequestID,
	}
	return req.PaymentID, data, nil
}

// VerifyWebhook recomputes the MAC over the form fields: values of all
// fields except mac, sorted by field name, joined with '|', HMAC-SHA1 with
// the account salt.
func (a *InstamojoAdapter) VerifyWebhook(body []byte, _ http.Header) (*models.WebhookEvent, error) {
	fields, err := url.ParseQuery(string(body))
	if err != nil {
		return nil, ErrVerificationFailed
	}

	mac := fields.Get("mac")
	if mac == "" {
		return nil, ErrVerificationFailed
	}

	keys := make([]string, 0, len(fields))
	for k := range fields {
		if k == "mac" {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	values := make([]string, 0, len(keys))
	for _, k := range keys {
		values = append(values, fields.Get(k))
	}
	expected := hmacHex(sha1.New, []byte(strings.Join(values, "|")), []byte(a.salt))
	if !digestsEqual(expected, mac) {
		return nil, ErrVerificationFailed
	}

	purpose := fields.Get("purpose")
	out := &models.WebhookEvent{
		Provider:      models.MethodInstamojo,
		RawType:       fields.Get("status"),
		Type:          models.WebhookIgnored,
		AppointmentID: strings.TrimPrefix(purpose, instamojoPurposePrefix),
		PaymentID:     fields.Get("payment_id"),
		Data: map[string]string{
			"paymentRequestId": fields.Get("payment_request_id"),
		},
	}
	if !strings.HasPrefix(purpose, instamojoPurposePrefix) {
		out.AppointmentID = ""
	}

	switch fields.Get("status") {
	case "Credit":
		out.Type = models.WebhookPaymentSucceeded
	case "Failed":
		out.Type = models.WebhookPaymentFailed
	}
	return out, nil
}
