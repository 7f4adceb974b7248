package payment

import (
	"context"
	"crypto/hmac"
	"encoding/hex"
	"hash"
	"net/http"

	"meddirect/config"
	"meddirect/models"
	"meddirect/utils"

	"go.uber.org/zap"
)

// GatewayAdapter is the uniform create/verify contract every provider
// integration implements. New providers are added by registering an adapter,
// not by editing a dispatch switch.
type GatewayAdapter interface {
	// Name returns the method identifier the adapter is registered under.
	Name() string
	// CreateSession creates a charge on the provider and returns the
	// ephemeral handle the client needs to complete payment.
	CreateSession(ctx context.Context, req models.ChargeRequest) (*models.GatewaySession, error)
	// VerifyConfirmation checks the provider-specific confirmation fields
	// and returns the external payment id plus the paymentData bag to
	// persist. Any mismatch is an unconditional ErrVerificationFailed.
	VerifyConfirmation(ctx context.Context, req models.ConfirmRequest) (string, map[string]string, error)
	// VerifyWebhook authenticates a provider callback and normalizes it.
	// A verification failure must reject the whole delivery.
	VerifyWebhook(body []byte, headers http.Header) (*models.WebhookEvent, error)
}

// Registry maps method identifiers to adapter instances.
type Registry struct {
	adapters map[string]GatewayAdapter
}

// NewRegistry returns an empty adapter registry.
func NewRegistry() *Registry {
	return &Registry{adapters: make(map[string]GatewayAdapter)}
}

// Register adds an adapter under its own name.
func (r *Registry) Register(a GatewayAdapter) {
	r.adapters[a.Name()] = a
}

// Get looks up the adapter for a method identifier.
func (r *Registry) Get(method string) (GatewayAdapter, bool) {
	a, ok := r.adapters[method]
	return a, ok
}

// Configured reports whether a method has a registered adapter.
func (r *Registry) Configured(method string) bool {
	_, ok := r.adapters[method]
	return ok
}

// BuildRegistry wires one adapter per gateway from configuration. A provider
// whose credentials still look like placeholders gets the mock adapter in
// development (transparent substitution, same return contract) and is left
// unregistered in production.
func BuildRegistry(cfg config.Config) *Registry {
	logger := utils.GetLogger()
	reg := NewRegistry()

	register := func(method string, placeholder bool, real GatewayAdapter) {
		if !placeholder {
			reg.Register(real)
			return
		}
		if !config.IsProduction() {
			logger.Warn("Gateway credentials look like placeholders, using mock adapter",
				zap.String("method", method))
			reg.Register(NewMockAdapter(method))
		}
	}

	register(models.MethodStripe,
		config.IsPlaceholderCredential(cfg.StripeSecretKey),
		NewStripeAdapter(cfg.StripeSecretKey, cfg.StripePublishableKey, cfg.StripeWebhookSecret))
	register(models.MethodRazorpay,
		config.IsPlaceholderCredential(cfg.RazorpayKeyID) || config.IsPlaceholderCredential(cfg.RazorpayKeySecret),
		NewRazorpayAdapter(cfg.RazorpayKeyID, cfg.RazorpayKeySecret, cfg.RazorpayWebhookSecret))
	register(models.MethodPaypal,
		config.IsPlaceholderCredential(cfg.PaypalClientID) || config.IsPlaceholderCredential(cfg.PaypalClientSecret),
		NewPaypalAdapter(cfg.PaypalClientID, cfg.PaypalClientSecret, cfg.PaypalWebhookID, cfg.PaypalBaseURL, cfg.FrontendURL))
	register(models.MethodInstamojo,
		config.IsPlaceholderCredential(cfg.InstamojoAPIKey) || config.IsPlaceholderCredential(cfg.InstamojoAuthToken),
		NewInstamojoAdapter(cfg.InstamojoAPIKey, cfg.InstamojoAuthToken, cfg.InstamojoSalt, cfg.InstamojoBaseURL, cfg.FrontendURL))

	// Offline methods need no credentials and are always available.
	reg.Register(NewOfflineAdapter(models.MethodBankTransfer))
	reg.Register(NewOfflineAdapter(models.MethodPayLater))

	return reg
}

// hmacHex computes an HMAC over message with the given hash constructor and
// returns the lowercase hex digest.
func hmacHex(h func() hash.Hash, message, key []byte) string {
	mac := hmac.New(h, key)
	mac.Write(message)
	return hex.EncodeToString(mac.Sum(nil))
}

// digestsEqual compares two hex digests in constant time.
func digestsEqual(a, b string) bool {
	return hmac.Equal([]byte(a), []byte(b))
}
