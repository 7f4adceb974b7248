package payment

import (
	"strings"

	"meddirect/models"
)

// MethodResolver maps a country code to the ordered list of payment methods
// applicable there, filtered to those whose adapter is actually configured.
// Pure data lookup; currency symbols and sub-methods are presentation
// metadata for the client.
type MethodResolver struct {
	registry *Registry
}

func NewMethodResolver(registry *Registry) *MethodResolver {
	return &MethodResolver{registry: registry}
}

const defaultCountryBucket = "default"

var methodTable = map[string][]models.MethodDescriptor{
	"IN": {
		{Method: models.MethodRazorpay, DisplayName: "Razorpay", Currency: "INR", CurrencySymbol: "₹",
			SubMethods: []string{"upi", "card", "netbanking", "wallet"}},
		{Method: models.MethodInstamojo, DisplayName: "Instamojo", Currency: "INR", CurrencySymbol: "₹",
			SubMethods: []string{"upi", "card", "netbanking"}},
		{Method: models.MethodBankTransfer, DisplayName: "Bank Transfer", Currency: "INR", CurrencySymbol: "₹", Offline: true},
		{Method: models.MethodPayLater, DisplayName: "Pay at Clinic", Currency: "INR", CurrencySymbol: "₹", Offline: true},
	},
	"US": {
		{Method: models.MethodStripe, DisplayName: "Card (Stripe)", Currency: "USD", CurrencySymbol: "$"},
		{Method: models.MethodPaypal, DisplayName: "PayPal", Currency: "USD", CurrencySymbol: "$"},
		{Method: models.MethodPayLater, DisplayName: "Pay at Clinic", Currency: "USD", CurrencySymbol: "$", Offline: true},
	},
	"GB": {
		{Method: models.MethodStripe, DisplayName: "Card (Stripe)", Currency: "GBP", CurrencySymbol: "£"},
		{Method: models.MethodPaypal, DisplayName: "PayPal", Currency: "GBP", CurrencySymbol: "£"},
		{Method: models.MethodPayLater, DisplayName: "Pay at Clinic", Currency: "GBP", CurrencySymbol: "£", Offline: true},
	},
	defaultCountryBucket: {
		{Method: models.MethodStripe, DisplayName: "Card (Stripe)", Currency: "USD", CurrencySymbol: "$"},
		{Method: models.MethodPaypal, DisplayName: "PayPal", Currency: "USD", CurrencySymbol: "$"},
		{Method: models.MethodPayLater, DisplayName: "Pay at Clinic", Currency: "USD", CurrencySymbol: "$", Offline: true},
	},
}

// ListMethods returns the configured methods for a country, in table order.
// Unrecognized countries fall back to the generic bucket. Offline methods
// need no adapter and are always listed.
func (r *MethodResolver) ListMethods(country string) []models.MethodDescriptor {
	bucket, ok := methodTable[strings.ToUpper(country)]
	if !ok {
		bucket = methodTable[defaultCountryBucket]
	}

	out := make([]models.MethodDescriptor, 0, len(bucket))
	for _, desc := range bucket {
		if desc.Offline || r.registry.Configured(desc.Method) {
			out = append(out, desc)
		}
	}
	return out
}

// CurrencyFor returns the charge currency for a method in a country,
// defaulting to INR (the fee base currency) when the method is not in the
// country's bucket.
func (r *MethodResolver) CurrencyFor(country, method string) string {
	bucket, ok := methodTable[strings.ToUpper(country)]
	if !ok {
		bucket = methodTable[defaultCountryBucket]
	}
	for _, desc := range bucket {
		if desc.Method == method {
			return desc.Currency
		}
	}
	return "INR"
}
