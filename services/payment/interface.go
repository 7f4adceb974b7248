package payment

import (
	"context"
	"net/http"

	appointmentRepo "meddirect/database/repository/appointment"
	doctorRepo "meddirect/database/repository/doctor"
	userRepo "meddirect/database/repository/user"
	"meddirect/models"
	"meddirect/services/tasks"
)

// CreateIntentInput is the payload for starting a payment.
type CreateIntentInput struct {
	AppointmentID string `json:"appointmentId" binding:"required"`
	PaymentMethod string `json:"paymentMethod" binding:"required"`
	Country       string `json:"country"`
	SubMethod     string `json:"subMethod"`
}

// PaymentService orchestrates the payment flow over the appointment store
// and the gateway adapters. All business failures come back as a declined
// PaymentResult, never an error; errors are reserved for webhook rejection.
type PaymentService interface {
	// ListMethods returns the methods available for a country.
	ListMethods(country string) []models.MethodDescriptor
	// CreateIntent starts a payment for an appointment.
	CreateIntent(ctx context.Context, userID string, in CreateIntentInput) *models.PaymentResult
	// Confirm finalizes a payment with provider-specific confirmation fields.
	Confirm(ctx context.Context, userID string, req models.ConfirmRequest) *models.PaymentResult
	// ConfirmMock finalizes a payment in development mode.
	ConfirmMock(ctx context.Context, userID, appointmentID, paymentID, method string) *models.PaymentResult
	// Status reports the payment state of an appointment.
	Status(ctx context.Context, userID, appointmentID string) *models.PaymentResult
	// HandleWebhook verifies and applies a provider callback.
	HandleWebhook(ctx context.Context, provider string, body []byte, headers http.Header) error
}

// DefaultPaymentService is the production implementation.
type DefaultPaymentService struct {
	Appointments appointmentRepo.AppointmentRepository
	Doctors      doctorRepo.DoctorRepository
	Users        userRepo.UserRepository
	Registry     *Registry
	Resolver     *MethodResolver
	Queue        tasks.Enqueuer // optional; nil disables receipt emails
}
