package payment

import (
	"context"
	"net/http"
	"testing"

	"meddirect/config"
	"meddirect/models"
)

func TestBuildRegistry(t *testing.T) {
	t.Run("placeholder credentials get the mock adapter in development", func(t *testing.T) {
		cfg := config.Config{
			Env:                "development",
			StripeSecretKey:    "your_stripe_key",
			RazorpayKeyID:      "",
			PaypalClientID:     "placeholder",
			InstamojoAPIKey:    "xxxx",
			InstamojoAuthToken: "xxxx",
		}
		prev := config.AppConfig
		config.AppConfig = cfg
		defer func() { config.AppConfig = prev }()

		reg := BuildRegistry(cfg)

		for _, method := range []string{models.MethodStripe, models.MethodRazorpay, models.MethodPaypal, models.MethodInstamojo} {
			adapter, ok := reg.Get(method)
			if !ok {
				t.Fatalf("%s not registered", method)
			}
			if _, isMock := adapter.(*MockAdapter); !isMock {
				t.Fatalf("%s should be the mock adapter", method)
			}
		}
	})

	t.Run("placeholder credentials leave the provider unregistered in production", func(t *testing.T) {
		cfg := config.Config{
			Env:             "production",
			StripeSecretKey: "your_stripe_key",
		}
		prev := config.AppConfig
		config.AppConfig = cfg
		defer func() { config.AppConfig = prev }()

		reg := BuildRegistry(cfg)

		if reg.Configured(models.MethodStripe) {
			t.Fatal("stripe must not be registered with placeholder credentials in production")
		}
	})

	t.Run("real credentials get the real adapter", func(t *testing.T) {
		cfg := config.Config{
			Env:               "development",
			RazorpayKeyID:     "rzp_test_abc",
			RazorpayKeySecret: "secret_abc",
		}
		prev := config.AppConfig
		config.AppConfig = cfg
		defer func() { config.AppConfig = prev }()

		reg := BuildRegistry(cfg)

		adapter, ok := reg.Get(models.MethodRazorpay)
		if !ok {
			t.Fatal("razorpay not registered")
		}
		if _, isReal := adapter.(*RazorpayAdapter); !isReal {
			t.Fatal("expected the real razorpay adapter")
		}
	})

	t.Run("offline methods are registered in every environment", func(t *testing.T) {
		for _, env := range []string{"development", "production"} {
			cfg := config.Config{Env: env}
			prev := config.AppConfig
			config.AppConfig = cfg

			reg := BuildRegistry(cfg)

			for _, method := range []string{models.MethodBankTransfer, models.MethodPayLater} {
				adapter, ok := reg.Get(method)
				if !ok {
					t.Fatalf("%s not registered in %s", method, env)
				}
				if _, isOffline := adapter.(*OfflineAdapter); !isOffline {
					t.Fatalf("%s should be the offline adapter in %s", method, env)
				}
			}

			config.AppConfig = prev
		}
	})
}

func TestMockAdapter(t *testing.T) {
	adapter := NewMockAdapter(models.MethodStripe)

	t.Run("sessions are flagged as mock", func(t *testing.T) {
		session, err := adapter.CreateSession(context.Background(), models.ChargeRequest{Amount: 500, Currency: "INR"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !session.Mock {
			t.Fatal("mock session must be flagged")
		}
		if session.Provider != models.MethodStripe {
			t.Fatalf("mock keeps the real method name, got %s", session.Provider)
		}
		if session.Amount != 500 || session.Currency != "INR" {
			t.Fatalf("session fields not carried through: %+v", session)
		}
	})

	t.Run("confirmation always succeeds", func(t *testing.T) {
		paymentID, data, err := adapter.VerifyConfirmation(context.Background(), models.ConfirmRequest{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if paymentID == "" {
			t.Fatal("expected a generated payment id")
		}
		if data["mock"] != "true" {
			t.Fatalf("missing mock marker: %v", data)
		}
	})

	t.Run("webhooks always decline", func(t *testing.T) {
		if _, err := adapter.VerifyWebhook([]byte(`{"type":"payment_intent.succeeded"}`), http.Header{}); err == nil {
			t.Fatal("mock webhook must never verify")
		}
	})
}
