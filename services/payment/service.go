package payment

import (
	"context"
	"fmt"
	"net/http"

	"meddirect/config"
	"meddirect/models"
	"meddirect/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const feeBaseCurrency = "INR"

func declined(message string) *models.PaymentResult {
	return &models.PaymentResult{Success: false, Message: message}
}

// ListMethods returns the methods available for a country.
func (s *DefaultPaymentService) ListMethods(country string) []models.MethodDescriptor {
	return s.Resolver.ListMethods(country)
}

// loadOwnedAppointment fetches an appointment and checks it belongs to the
// caller. Both failure modes decline with the same message so a caller
// cannot probe for foreign appointment ids.
func (s *DefaultPaymentService) loadOwnedAppointment(userID, appointmentID string) (*models.Appointment, *models.PaymentResult) {
	if appointmentID == "" {
		return nil, declined("appointment id is required")
	}
	appt, err := s.Appointments.GetByID(appointmentID)
	if err != nil {
		utils.GetLogger().Error("Failed to load appointment",
			zap.String("appointmentId", appointmentID), zap.Error(err))
		return nil, declined("appointment not found")
	}
	if appt == nil || appt.UserID != userID {
		return nil, declined("appointment not found")
	}
	return appt, nil
}

// CreateIntent starts a payment for an appointment. The amount is resolved
// from the doctor's fee, never from the client.
func (s *DefaultPaymentService) CreateIntent(ctx context.Context, userID string, in CreateIntentInput) *models.PaymentResult {
	logger := utils.GetLogger()

	appt, fail := s.loadOwnedAppointment(userID, in.AppointmentID)
	if fail != nil {
		return fail
	}
	if appt.Cancelled {
		return declined("appointment is cancelled")
	}
	if appt.Payment {
		return declined("payment already completed")
	}

	doc, err := s.Doctors.GetByID(appt.DoctorID)
	if err != nil || doc == nil {
		logger.Error("Failed to resolve doctor fee",
			zap.String("doctorId", appt.DoctorID), zap.Error(err))
		return declined("payment processing failed")
	}

	currency := s.Resolver.CurrencyFor(in.Country, in.PaymentMethod)
	amount, err := utils.ConvertCurrency(doc.Fee, feeBaseCurrency, currency)
	if err != nil {
		logger.Error("Currency conversion failed",
			zap.String("currency", currency), zap.Error(err))
		return declined("payment processing failed")
	}

	// Offline methods take no gateway round trip. The chosen method is
	// recorded on the appointment with payment still false; settlement
	// happens later through Confirm.
	if in.PaymentMethod == models.MethodBankTransfer || in.PaymentMethod == models.MethodPayLater {
		if err := s.Appointments.SetPaymentMethod(appt.ID, in.PaymentMethod); err != nil {
			logger.Error("Failed to record offline payment method",
				zap.String("appointmentId", appt.ID), zap.Error(err))
			return declined("payment processing failed")
		}
		return &models.PaymentResult{
			Success: true,
			Message: "payment due at clinic",
			Session: &models.GatewaySession{
				Provider:  in.PaymentMethod,
				SessionID: "offline_" + uuid.New().String(),
				Amount:    amount,
				Currency:  currency,
			},
		}
	}

	adapter, ok := s.Registry.Get(in.PaymentMethod)
	if !ok {
		return declined("payment method not available")
	}

	session, err := adapter.CreateSession(ctx, models.ChargeRequest{
		AppointmentID: appt.ID,
		UserID:        userID,
		UserEmail:     s.userEmail(userID),
		Amount:        amount,
		Currency:      currency,
		Description:   fmt.Sprintf("Appointment with Dr. %s on %s %s", s.doctorName(doc.ID), appt.SlotDate, appt.SlotTime),
		SubMethod:     in.SubMethod,
	})
	if err != nil {
		// Adapter already logged the provider-specific detail.
		return declined("payment processing failed")
	}

	return &models.PaymentResult{Success: true, Session: session}
}

// Confirm finalizes a payment directly. Verification failure declines with
// no explanation; success applies the idempotent paid transition in a
// single update.
func (s *DefaultPaymentService) Confirm(ctx context.Context, userID string, req models.ConfirmRequest) *models.PaymentResult {
	logger := utils.GetLogger()

	appt, fail := s.loadOwnedAppointment(userID, req.AppointmentID)
	if fail != nil {
		return fail
	}

	adapter, ok := s.Registry.Get(req.PaymentMethod)
	if !ok {
		return declined("payment method not available")
	}

	paymentID, data, err := adapter.VerifyConfirmation(ctx, req)
	if err != nil {
		logger.Warn("Payment confirmation declined",
			zap.String("appointmentId", req.AppointmentID),
			zap.String("method", req.PaymentMethod))
		return declined("payment verification failed")
	}

	if err := s.Appointments.MarkPaid(appt.ID, req.PaymentMethod, paymentID, data); err != nil {
		logger.Error("Failed to persist payment state",
			zap.String("appointmentId", appt.ID), zap.Error(err))
		return declined("payment processing failed")
	}

	s.sendReceipt(appt, req.PaymentMethod)
	return &models.PaymentResult{Success: true, Paid: true, Message: "payment confirmed"}
}

// ConfirmMock finalizes a payment without any provider round trip. Only
// available outside production.
func (s *DefaultPaymentService) ConfirmMock(_ context.Context, userID, appointmentID, paymentID, method string) *models.PaymentResult {
	if config.IsProduction() {
		return declined("mock confirmation is not available")
	}

	appt, fail := s.loadOwnedAppointment(userID, appointmentID)
	if fail != nil {
		return fail
	}

	if paymentID == "" {
		paymentID = "mock_" + uuid.New().String()
	}
	if err := s.Appointments.MarkPaid(appt.ID, method, paymentID, map[string]string{"mock": "true"}); err != nil {
		utils.GetLogger().Error("Failed to persist mock payment",
			zap.String("appointmentId", appt.ID), zap.Error(err))
		return declined("payment processing failed")
	}
	return &models.PaymentResult{Success: true, Paid: true, Message: "payment confirmed"}
}

// Status reports the payment state of an appointment.
func (s *DefaultPaymentService) Status(_ context.Context, userID, appointmentID string) *models.PaymentResult {
	appt, fail := s.loadOwnedAppointment(userID, appointmentID)
	if fail != nil {
		return fail
	}
	return &models.PaymentResult{
		Success: true,
		Paid:    appt.Payment,
		Message: appt.PaymentMethod,
	}
}

// HandleWebhook verifies a provider callback and applies the paid
// transition. A verification failure rejects the delivery outright and
// mutates nothing; unrecognized event types are logged and acknowledged.
func (s *DefaultPaymentService) HandleWebhook(_ context.Context, provider string, body []byte, headers http.Header) error {
	logger := utils.GetLogger()

	adapter, ok := s.Registry.Get(provider)
	if !ok {
		return ErrUnknownProvider
	}

	event, err := adapter.VerifyWebhook(body, headers)
	if err != nil {
		logger.Warn("Webhook signature verification failed",
			zap.String("provider", provider))
		return ErrVerificationFailed
	}

	switch event.Type {
	case models.WebhookPaymentSucceeded:
		if event.AppointmentID == "" {
			logger.Warn("Verified webhook carries no appointment reference",
				zap.String("provider", provider), zap.String("event", event.RawType))
			return nil
		}
		if err := s.Appointments.MarkPaid(event.AppointmentID, provider, event.PaymentID, event.Data); err != nil {
			logger.Error("Failed to apply webhook payment",
				zap.String("appointmentId", event.AppointmentID), zap.Error(err))
			return fmt.Errorf("failed to apply webhook payment: %w", err)
		}
		if appt, err := s.Appointments.GetByID(event.AppointmentID); err == nil && appt != nil {
			s.sendReceipt(appt, provider)
		}
	case models.WebhookPaymentFailed:
		logger.Info("Provider reported payment failure",
			zap.String("provider", provider),
			zap.String("appointmentId", event.AppointmentID))
	default:
		logger.Info("Ignoring unrecognized webhook event",
			zap.String("provider", provider), zap.String("event", event.RawType))
	}
	return nil
}

func (s *DefaultPaymentService) userEmail(userID string) string {
	if s.Users == nil {
		return ""
	}
	usr, err := s.Users.GetByID(userID)
	if err != nil || usr == nil {
		return ""
	}
	return usr.Email
}

func (s *DefaultPaymentService) doctorName(doctorID string) string {
	doc, err := s.Doctors.GetByID(doctorID)
	if err != nil || doc == nil {
		return "your doctor"
	}
	return doc.Name
}

// sendReceipt queues the payment receipt email. Best effort; failures are
// logged and never surface to the payment path.
func (s *DefaultPaymentService) sendReceipt(appt *models.Appointment, method string) {
	if s.Queue == nil || s.Users == nil {
		return
	}
	usr, err := s.Users.GetByID(appt.UserID)
	if err != nil || usr == nil || usr.Email == "" {
		return
	}
	payload := models.EmailPayload{
		Kind:          models.EmailPaymentReceipt,
		To:            usr.Email,
		UserName:      usr.Name,
		DoctorName:    s.doctorName(appt.DoctorID),
		SlotDate:      appt.SlotDate,
		SlotTime:      appt.SlotTime,
		Amount:        appt.Amount,
		PaymentMethod: method,
		AppointmentID: appt.ID,
	}
	if err := s.Queue.EnqueueEmail(payload, 0); err != nil {
		utils.GetLogger().Warn("Failed to enqueue receipt email",
			zap.String("appointmentId", appt.ID), zap.Error(err))
	}
}
