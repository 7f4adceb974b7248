package payment

import (
	"testing"

	"meddirect/models"
)

func methodNames(descs []models.MethodDescriptor) []string {
	out := make([]string, 0, len(descs))
	for _, d := range descs {
		out = append(out, d.Method)
	}
	return out
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}

func TestListMethods(t *testing.T) {
	t.Run("IN lists only configured gateways plus offline methods", func(t *testing.T) {
		registry := NewRegistry()
		registry.Register(&fakeAdapter{name: models.MethodRazorpay})
		resolver := NewMethodResolver(registry)

		got := methodNames(resolver.ListMethods("IN"))

		if !contains(got, models.MethodRazorpay) {
			t.Fatalf("razorpay missing from %v", got)
		}
		if contains(got, models.MethodInstamojo) {
			t.Fatalf("unconfigured instamojo listed in %v", got)
		}
		if !contains(got, models.MethodBankTransfer) || !contains(got, models.MethodPayLater) {
			t.Fatalf("offline methods missing from %v", got)
		}
	})

	t.Run("unknown countries fall back to the default bucket", func(t *testing.T) {
		registry := NewRegistry()
		registry.Register(&fakeAdapter{name: models.MethodStripe})
		resolver := NewMethodResolver(registry)

		got := methodNames(resolver.ListMethods("ZZ"))

		if !contains(got, models.MethodStripe) {
			t.Fatalf("stripe missing from fallback bucket %v", got)
		}
		if contains(got, models.MethodRazorpay) {
			t.Fatalf("razorpay should not appear in fallback bucket %v", got)
		}
	})

	t.Run("lowercase country codes are accepted", func(t *testing.T) {
		registry := NewRegistry()
		registry.Register(&fakeAdapter{name: models.MethodRazorpay})
		resolver := NewMethodResolver(registry)

		if got := methodNames(resolver.ListMethods("in")); !contains(got, models.MethodRazorpay) {
			t.Fatalf("lowercase country not normalized: %v", got)
		}
	})
}

func TestCurrencyFor(t *testing.T) {
	resolver := NewMethodResolver(NewRegistry())

	cases := []struct {
		country, method, want string
	}{
		{"IN", models.MethodRazorpay, "INR"},
		{"US", models.MethodStripe, "USD"},
		{"GB", models.MethodPaypal, "GBP"},
		{"ZZ", models.MethodStripe, "USD"},
		{"IN", models.MethodStripe, "INR"},
	}
	for _, tc := range cases {
		if got := resolver.CurrencyFor(tc.country, tc.method); got != tc.want {
			t.Errorf("CurrencyFor(%s, %s) = %s, want %s", tc.country, tc.method, got, tc.want)
		}
	}
}
