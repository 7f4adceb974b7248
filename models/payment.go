package models

// Payment method identifiers. These are the values accepted on the wire and
// stored on the appointment record.
const (
	MethodStripe       = "stripe"
	MethodRazorpay     = "razorpay"
	MethodPaypal       = "paypal"
	MethodInstamojo    = "instamojo"
	MethodBankTransfer = "bank_transfer"
	MethodPayLater     = "pay_later"
)

// MethodDescriptor describes one payment method available in a country.
// Currency/symbol and sub-methods are presentation metadata for the client.
type MethodDescriptor struct {
	Method         string   `json:"method"`
	DisplayName    string   `json:"displayName"`
	Currency       string   `json:"currency"`
	CurrencySymbol string   `json:"currencySymbol"`
	SubMethods     []string `json:"subMethods,omitempty"`
	Offline        bool     `json:"offline,omitempty"`
}

// ChargeRequest is the normalized create-charge request handed to a gateway
// adapter. Amount is always resolved server-side from the doctor fee.
type ChargeRequest struct {
	AppointmentID string
	UserID        string
	UserEmail     string
	Amount        float64
	Currency      string
	Description   string
	SubMethod     string
}

// GatewaySession is the ephemeral provider handle returned to the client so
// it can complete the payment. Field names are identical across real and
// mock adapters; Mock is the only distinguishing flag.
type GatewaySession struct {
	Provider     string            `json:"provider"`
	SessionID    string            `json:"sessionId"`
	Amount       float64           `json:"amount"`
	Currency     string            `json:"currency"`
	ClientSecret string            `json:"clientSecret,omitempty"`
	OrderID      string            `json:"orderId,omitempty"`
	RedirectURL  string            `json:"redirectUrl,omitempty"`
	Extra        map[string]string `json:"extra,omitempty"`
	Mock         bool              `json:"mock,omitempty"`
}

// ConfirmRequest carries provider-specific confirmation fields from the
// direct confirm endpoint.
type ConfirmRequest struct {
	AppointmentID string `json:"appointmentId" binding:"required"`
	PaymentMethod string `json:"paymentMethod" binding:"required"`
	// Razorpay confirmation triple.
	OrderID   string `json:"orderId,omitempty"`
	PaymentID string `json:"paymentId,omitempty"`
	Signature string `json:"signature,omitempty"`
	// Instamojo confirmation.
	PaymentRequestID string `json:"paymentRequestId,omitempty"`
}

// PaymentResult is the soft-fail envelope every payment operation returns.
// Business failures decline with Success=false rather than an HTTP error.
type PaymentResult struct {
	Success bool            `json:"success"`
	Message string          `json:"message,omitempty"`
	Session *GatewaySession `json:"session,omitempty"`
	Paid    bool            `json:"paid,omitempty"`
}

// Webhook event types after normalization.
const (
	WebhookPaymentSucceeded = "payment_succeeded"
	WebhookPaymentFailed    = "payment_failed"
	WebhookIgnored          = "ignored"
)

// WebhookEvent is the normalized, signature-verified representation of a
// provider callback. AppointmentID is recovered from the provider's
// metadata/notes field so no separate lookup table is needed.
type WebhookEvent struct {
	Provider      string
	Type          string
	AppointmentID string
	PaymentID     string
	RawType       string
	Data          map[string]string
}
