package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"meddirect/models"
	"meddirect/utils"

	"go.uber.org/zap"
)

// PaypalAdapter drives the PayPal Orders v2 API over raw HTTP. The OAuth
// bearer token is the only mutable shared state in the payment subsystem;
// it is refreshed lazily on first use after expiry. Two concurrent
// refreshes would both produce valid tokens, so the race is benign even
// without the mutex, which exists to keep the fields data-race free.
type PaypalAdapter struct {
	clientID     string
	clientSecret string
	webhookID    string
	baseURL      string
	returnURL    string
	httpClient   *http.Client

	mu          sync.Mutex
	accessToken string
	tokenExpiry time.Time
}

func NewPaypalAdapter(clientID, clientSecret, webhookID, baseURL, frontendURL string) *PaypalAdapter {
	return &PaypalAdapter{
		clientID:     clientID,
		clientSecret: clientSecret,
		webhookID:    webhookID,
		baseURL:      strings.TrimRight(baseURL, "/"),
		returnURL:    strings.TrimRight(frontendURL, "/"),
		httpClient:   &http.Client{Timeout: 30 * time.Second},
	}
}

func (a *PaypalAdapter) Name() string { return models.MethodPaypal }

// getAccessToken returns a cached OAuth token, refreshing it when expired.
func (a *PaypalAdapter) getAccessToken(ctx context.Context) (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.accessToken != "" && time.Now().Before(a.tokenExpiry) {
		return a.accessToken, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.baseURL+"/v1/oauth2/token",
		strings.NewReader("grant_type=client_credentials"))
	if err != nil {
		return "", fmt.Errorf("failed to create token request: %w", err)
	}
	req.SetBasicAuth(a.clientID, a.clientSecret)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to get access token: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("token request rejected: %s - %s", resp.Status, string(body))
	}

	var tokenResp struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&tokenResp); err != nil {
		return "", fmt.Errorf("failed to decode token response: %w", err)
	}

	// Refresh a minute early so in-flight requests never carry a stale token.
	a.accessToken = tokenResp.AccessToken
	a.tokenExpiry = time.Now().Add(time.Duration(tokenResp.ExpiresIn-60) * time.Second)
	return a.accessToken, nil
}

func (a *PaypalAdapter) call(ctx context.Context, method, path string, in any) ([]byte, int, error) {
	token, err := a.getAccessToken(ctx)
	if err != nil {
		return nil, 0, err
	}

	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return nil, 0, err
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, a.baseURL+path, body)
	if err != nil {
		return nil, 0, err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	return respBody, resp.StatusCode, nil
}

type paypalOrderResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
	Links  []struct {
		Href string `json:"href"`
		Rel  string `json:"rel"`
	} `json:"links"`
}

// CreateSession creates a CAPTURE-intent order. The appointment id is put
// in custom_id so webhook captures can be routed back.
func (a *PaypalAdapter) CreateSession(ctx context.Context, req models.ChargeRequest) (*models.GatewaySession, error) {
	orderReq := map[string]any{
		"intent": "CAPTURE",
		"purchase_units": []map[string]any{
			{
				"reference_id": req.AppointmentID,
				"custom_id":    req.AppointmentID,
				"description":  req.Description,
				"amount": map[string]string{
					"currency_code": strings.ToUpper(req.Currency),
					"value":         fmt.Sprintf("%.2f", req.Amount),
				},
			},
		},
		"application_context": map[string]string{
			"return_url":  a.returnURL + "/payment/paypal/return",
			"cancel_url":  a.returnURL + "/payment/paypal/cancel",
			"user_action": "PAY_NOW",
		},
	}

	body, status, err := a.call(ctx, http.MethodPost, "/v2/checkout/orders", orderReq)
	if err != nil || (status != http.StatusCreated && status != http.StatusOK) {
		utils.GetLogger().Error("PayPal order creation failed",
			zap.String("appointmentId", req.AppointmentID),
			zap.Int("status", status), zap.Error(err))
		return nil, ErrPaymentFailed
	}

	var order paypalOrderResponse
	if err := json.Unmarshal(body, &order); err != nil {
		return nil, ErrPaymentFailed
	}

	var approvalURL string
	for _, link := range order.Links {
		if link.Rel == "approve" {
			approvalURL = link.Href
			break
		}
	}

	return &models.GatewaySession{
		Provider:    models.MethodPaypal,
		SessionID:   order.ID,
		OrderID:     order.ID,
		Amount:      req.Amount,
		Currency:    strings.ToUpper(req.Currency),
		RedirectURL: approvalURL,
	}, nil
}

// VerifyConfirmation captures the approved order. Anything but a COMPLETED
// capture declines.
func (a *PaypalAdapter) VerifyConfirmation(ctx context.Context, req models.ConfirmRequest) (string, map[string]string, error) {
	if req.OrderID == "" {
		return "", nil, ErrVerificationFailed
	}

	body, status, err := a.call(ctx, http.MethodPost, "/v2/checkout/orders/"+req.OrderID+"/capture", nil)
	if err != nil || (status != http.StatusCreated && status != http.StatusOK) {
		utils.GetLogger().Error("PayPal capture failed",
			zap.String("orderId", req.OrderID), zap.Int("status", status), zap.Error(err))
		return "", nil, ErrVerificationFailed
	}

	var capture struct {
		ID            string `json:"id"`
		Status        string `json:"status"`
		PurchaseUnits []struct {
			Payments struct {
				Captures []struct {
					ID     string `json:"id"`
					Status string `json:"status"`
				} `json:"captures"`
			} `json:"payments"`
		} `json:"purchase_units"`
	}
	if err := json.Unmarshal(body, &capture); err != nil {
		return "", nil, ErrVerificationFailed
	}
	if capture.Status != "COMPLETED" {
		return "", nil, ErrVerificationFailed
	}

	captureID := capture.ID
	if len(capture.PurchaseUnits) > 0 && len(capture.PurchaseUnits[0].Payments.Captures) > 0 {
		captureID = capture.PurchaseUnits[0].Payments.Captures[0].ID
	}

	data := map[string]string{
		"orderId":   req.OrderID,
		"captureId": captureID,
	}
	return captureID, data, nil
}

// VerifyWebhook validates the transmission headers against PayPal's
// verify-webhook-signature endpoint, then normalizes the event.
func (a *PaypalAdapter) VerifyWebhook(body []byte, headers http.Header) (*models.WebhookEvent, error) {
	verifyReq := map[string]any{
		"auth_algo":         headers.Get("Paypal-Auth-Algo"),
		"cert_url":          headers.Get("Paypal-Cert-Url"),
		"transmission_id":   headers.Get("Paypal-Transmission-Id"),
		"transmission_sig":  headers.Get("Paypal-Transmission-Sig"),
		"transmission_time": headers.Get("Paypal-Transmission-Time"),
		"webhook_id":        a.webhookID,
		"webhook_event":     json.RawMessage(body),
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	respBody, status, err := a.call(ctx, http.MethodPost, "/v1/notifications/verify-webhook-signature", verifyReq)
	if err != nil || status != http.StatusOK {
		return nil, ErrVerificationFailed
	}

	var verification struct {
		VerificationStatus string `json:"verification_status"`
	}
	if err := json.Unmarshal(respBody, &verification); err != nil || verification.VerificationStatus != "SUCCESS" {
		return nil, ErrVerificationFailed
	}

	var event struct {
		EventType string `json:"event_type"`
		Resource  struct {
			ID            string `json:"id"`
			Status        string `json:"status"`
			CustomID      string `json:"custom_id"`
			PurchaseUnits []struct {
				CustomID string `json:"custom_id"`
			} `json:"purchase_units"`
		} `json:"resource"`
	}
	if err := json.Unmarshal(body, &event); err != nil {
		return nil, ErrVerificationFailed
	}

	appointmentID := event.Resource.CustomID
	if appointmentID == "" && len(event.Resource.PurchaseUnits) > 0 {
		appointmentID = event.Resource.PurchaseUnits[0].CustomID
	}

	out := &models.WebhookEvent{
		Provider:      models.MethodPaypal,
		RawType:       event.EventType,
		Type:          models.WebhookIgnored,
		AppointmentID: appointmentID,
		PaymentID:     event.Resource.ID,
		Data:          map[string]string{"captureId": event.Resource.ID},
	}

	switch event.EventType {
	case "PAYMENT.CAPTURE.COMPLETED":
		out.Type = models.WebhookPaymentSucceeded
	case "PAYMENT.CAPTURE.DENIED":
		out.Type = models.WebhookPaymentFailed
	}
	return out, nil
}
