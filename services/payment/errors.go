package payment

import "errors"

// ErrPaymentFailed is the generic signal every adapter raises when a
// provider call fails. Provider-specific error shapes stay inside the
// adapter; only the diagnostics log carries the original text.
var ErrPaymentFailed = errors.New("payment processing failed")

// ErrVerificationFailed is returned on any signature or confirmation
// mismatch. Callers are told nothing about why verification failed.
var ErrVerificationFailed = errors.New("payment verification failed")

// ErrUnknownProvider is returned for webhook deliveries addressed to a
// provider no adapter is registered for.
var ErrUnknownProvider = errors.New("unknown payment provider")
