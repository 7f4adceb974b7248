package payment

import (
	"context"
	"errors"
	"testing"

	"meddirect/models"
)

func testAppointment() *models.Appointment {
	return &models.Appointment{
		ID:       "appt-1",
		UserID:   "user-1",
		DoctorID: "doc-1",
		SlotDate: "2026-09-15",
		SlotTime: "10:00",
		Amount:   500,
	}
}

func testDoctor() *models.Doctor {
	return &models.Doctor{
		ID:   "doc-1",
		Name: "Asha Rao",
		Fee:  500,
	}
}

func testUser() *models.User {
	return &models.User{
		ID:    "user-1",
		Name:  "Ravi",
		Email: "ravi@example.com",
	}
}

func TestCreateIntent(t *testing.T) {
	ctx := context.Background()

	t.Run("declines when the appointment is already paid", func(t *testing.T) {
		appt := testAppointment()
		appt.Payment = true
		svc := newTestService(newMemAppointmentRepo(appt), newMemDoctorRepo(testDoctor()), newMemUserRepo(testUser()),
			&fakeAdapter{name: models.MethodRazorpay})

		result := svc.CreateIntent(ctx, "user-1", CreateIntentInput{
			AppointmentID: "appt-1", PaymentMethod: models.MethodRazorpay, Country: "IN",
		})

		if result.Success {
			t.Fatal("expected decline for an already paid appointment")
		}
		if result.Message != "payment already completed" {
			t.Fatalf("unexpected message: %q", result.Message)
		}
	})

	t.Run("declines when the appointment is cancelled", func(t *testing.T) {
		appt := testAppointment()
		appt.Cancelled = true
		svc := newTestService(newMemAppointmentRepo(appt), newMemDoctorRepo(testDoctor()), newMemUserRepo(testUser()),
			&fakeAdapter{name: models.MethodRazorpay})

		result := svc.CreateIntent(ctx, "user-1", CreateIntentInput{
			AppointmentID: "appt-1", PaymentMethod: models.MethodRazorpay, Country: "IN",
		})

		if result.Success {
			t.Fatal("expected decline for a cancelled appointment")
		}
	})

	t.Run("declines with the same message for missing and foreign appointments", func(t *testing.T) {
		svc := newTestService(newMemAppointmentRepo(testAppointment()), newMemDoctorRepo(testDoctor()), newMemUserRepo(testUser()),
			&fakeAdapter{name: models.MethodRazorpay})

		foreign := svc.CreateIntent(ctx, "someone-else", CreateIntentInput{
			AppointmentID: "appt-1", PaymentMethod: models.MethodRazorpay, Country: "IN",
		})
		missing := svc.CreateIntent(ctx, "user-1", CreateIntentInput{
			AppointmentID: "no-such-appt", PaymentMethod: models.MethodRazorpay, Country: "IN",
		})

		if foreign.Success || missing.Success {
			t.Fatal("expected both lookups to decline")
		}
		if foreign.Message != missing.Message {
			t.Fatalf("ownership leak: %q vs %q", foreign.Message, missing.Message)
		}
	})

	t.Run("resolves the amount from the doctor fee, not the client", func(t *testing.T) {
		adapter := &fakeAdapter{name: models.MethodRazorpay}
		svc := newTestService(newMemAppointmentRepo(testAppointment()), newMemDoctorRepo(testDoctor()), newMemUserRepo(testUser()), adapter)

		result := svc.CreateIntent(ctx, "user-1", CreateIntentInput{
			AppointmentID: "appt-1", PaymentMethod: models.MethodRazorpay, Country: "IN",
		})

		if !result.Success {
			t.Fatalf("expected success, got decline: %q", result.Message)
		}
		if result.Session == nil {
			t.Fatal("expected a gateway session")
		}
		if result.Session.Amount != 500 {
			t.Fatalf("expected amount 500, got %v", result.Session.Amount)
		}
		if result.Session.Currency != "INR" {
			t.Fatalf("expected INR, got %s", result.Session.Currency)
		}
	})

	t.Run("declines when the gateway rejects the session", func(t *testing.T) {
		adapter := &fakeAdapter{name: models.MethodRazorpay, createErr: ErrPaymentFailed}
		svc := newTestService(newMemAppointmentRepo(testAppointment()), newMemDoctorRepo(testDoctor()), newMemUserRepo(testUser()), adapter)

		result := svc.CreateIntent(ctx, "user-1", CreateIntentInput{
			AppointmentID: "appt-1", PaymentMethod: models.MethodRazorpay, Country: "IN",
		})

		if result.Success {
			t.Fatal("expected decline when the gateway errors")
		}
		if result.Message != "payment processing failed" {
			t.Fatalf("unexpected message: %q", result.Message)
		}
	})

	t.Run("declines for an unregistered method", func(t *testing.T) {
		svc := newTestService(newMemAppointmentRepo(testAppointment()), newMemDoctorRepo(testDoctor()), newMemUserRepo(testUser()))

		result := svc.CreateIntent(ctx, "user-1", CreateIntentInput{
			AppointmentID: "appt-1", PaymentMethod: models.MethodStripe, Country: "US",
		})

		if result.Success {
			t.Fatal("expected decline for an unregistered method")
		}
	})

	t.Run("offline methods succeed without a gateway", func(t *testing.T) {
		svc := newTestService(newMemAppointmentRepo(testAppointment()), newMemDoctorRepo(testDoctor()), newMemUserRepo(testUser()))

		result := svc.CreateIntent(ctx, "user-1", CreateIntentInput{
			AppointmentID: "appt-1", PaymentMethod: models.MethodPayLater, Country: "IN",
		})

		if !result.Success {
			t.Fatalf("expected success for pay later, got: %q", result.Message)
		}
		if result.Session == nil || result.Session.SessionID == "" {
			t.Fatal("expected an offline session id")
		}
		if result.Paid {
			t.Fatal("offline intent must not mark the appointment paid")
		}
	})

	t.Run("offline intent records the method with payment still false", func(t *testing.T) {
		appts := newMemAppointmentRepo(testAppointment())
		svc := newTestService(appts, newMemDoctorRepo(testDoctor()), newMemUserRepo(testUser()))

		result := svc.CreateIntent(ctx, "user-1", CreateIntentInput{
			AppointmentID: "appt-1", PaymentMethod: models.MethodBankTransfer, Country: "IN",
		})

		if !result.Success {
			t.Fatalf("expected success, got: %q", result.Message)
		}
		stored, _ := appts.GetByID("appt-1")
		if stored.PaymentMethod != models.MethodBankTransfer {
			t.Fatalf("offline intent did not record the method: %q", stored.PaymentMethod)
		}
		if stored.Payment {
			t.Fatal("appointment must stay unpaid until settlement")
		}
	})
}

func TestOfflineSettlement(t *testing.T) {
	ctx := context.Background()

	t.Run("pay later settles through confirm", func(t *testing.T) {
		appts := newMemAppointmentRepo(testAppointment())
		svc := newTestService(appts, newMemDoctorRepo(testDoctor()), newMemUserRepo(testUser()),
			NewOfflineAdapter(models.MethodPayLater))

		intent := svc.CreateIntent(ctx, "user-1", CreateIntentInput{
			AppointmentID: "appt-1", PaymentMethod: models.MethodPayLater, Country: "IN",
		})
		if !intent.Success {
			t.Fatalf("intent failed: %q", intent.Message)
		}

		result := svc.Confirm(ctx, "user-1", models.ConfirmRequest{
			AppointmentID: "appt-1", PaymentMethod: models.MethodPayLater,
		})
		if !result.Success || !result.Paid {
			t.Fatalf("offline settlement failed: %+v", result)
		}

		stored, _ := appts.GetByID("appt-1")
		if !stored.Payment || stored.PaymentMethod != models.MethodPayLater {
			t.Fatalf("settlement not persisted: %+v", stored)
		}
		if stored.PaymentID == "" {
			t.Fatal("expected a generated settlement id")
		}
		if stored.PaymentData["settlement"] != "offline" {
			t.Fatalf("settlement marker missing: %v", stored.PaymentData)
		}
	})

	t.Run("settlement still enforces ownership", func(t *testing.T) {
		appts := newMemAppointmentRepo(testAppointment())
		svc := newTestService(appts, newMemDoctorRepo(testDoctor()), newMemUserRepo(testUser()),
			NewOfflineAdapter(models.MethodBankTransfer))

		result := svc.Confirm(ctx, "someone-else", models.ConfirmRequest{
			AppointmentID: "appt-1", PaymentMethod: models.MethodBankTransfer,
		})
		if result.Success {
			t.Fatal("foreign settlement must decline")
		}
		stored, _ := appts.GetByID("appt-1")
		if stored.Payment {
			t.Fatal("foreign settlement must not mark the appointment paid")
		}
	})

	t.Run("offline webhooks never verify", func(t *testing.T) {
		appts := newMemAppointmentRepo(testAppointment())
		svc := newTestService(appts, newMemDoctorRepo(testDoctor()), newMemUserRepo(testUser()),
			NewOfflineAdapter(models.MethodPayLater))

		err := svc.HandleWebhook(ctx, models.MethodPayLater, []byte(`{"status":"paid"}`), nil)
		if !errors.Is(err, ErrVerificationFailed) {
			t.Fatalf("expected ErrVerificationFailed, got %v", err)
		}
		if appts.markPaidCalls != 0 {
			t.Fatal("offline webhook must not touch the appointment")
		}
	})
}

func TestConfirm(t *testing.T) {
	ctx := context.Background()

	t.Run("marks the appointment paid on verified confirmation", func(t *testing.T) {
		appts := newMemAppointmentRepo(testAppointment())
		adapter := &fakeAdapter{
			name:        models.MethodRazorpay,
			confirmID:   "pay_123",
			confirmData: map[string]string{"orderId": "order_123"},
		}
		svc := newTestService(appts, newMemDoctorRepo(testDoctor()), newMemUserRepo(testUser()), adapter)

		result := svc.Confirm(ctx, "user-1", models.ConfirmRequest{
			AppointmentID: "appt-1",
			PaymentMethod: models.MethodRazorpay,
			OrderID:       "order_123",
			PaymentID:     "pay_123",
			Signature:     "sig",
		})

		if !result.Success || !result.Paid {
			t.Fatalf("expected paid result, got %+v", result)
		}
		stored, _ := appts.GetByID("appt-1")
		if !stored.Payment {
			t.Fatal("appointment not marked paid")
		}
		if stored.PaymentID != "pay_123" || stored.PaymentMethod != models.MethodRazorpay {
			t.Fatalf("payment fields not persisted: %+v", stored)
		}
	})

	t.Run("repeated confirmation stays paid and succeeds", func(t *testing.T) {
		appts := newMemAppointmentRepo(testAppointment())
		adapter := &fakeAdapter{name: models.MethodRazorpay, confirmID: "pay_123"}
		svc := newTestService(appts, newMemDoctorRepo(testDoctor()), newMemUserRepo(testUser()), adapter)

		req := models.ConfirmRequest{
			AppointmentID: "appt-1", PaymentMethod: models.MethodRazorpay,
			OrderID: "order_123", PaymentID: "pay_123", Signature: "sig",
		}
		first := svc.Confirm(ctx, "user-1", req)
		second := svc.Confirm(ctx, "user-1", req)

		if !first.Success || !second.Success {
			t.Fatal("confirmation must be idempotent")
		}
		stored, _ := appts.GetByID("appt-1")
		if !stored.Payment || stored.PaymentID != "pay_123" {
			t.Fatalf("paid state lost after repeat: %+v", stored)
		}
	})

	t.Run("verification failure declines without mutating state", func(t *testing.T) {
		appts := newMemAppointmentRepo(testAppointment())
		adapter := &fakeAdapter{name: models.MethodRazorpay, confirmErr: ErrVerificationFailed}
		svc := newTestService(appts, newMemDoctorRepo(testDoctor()), newMemUserRepo(testUser()), adapter)

		result := svc.Confirm(ctx, "user-1", models.ConfirmRequest{
			AppointmentID: "appt-1", PaymentMethod: models.MethodRazorpay,
			OrderID: "order_123", PaymentID: "pay_123", Signature: "bad",
		})

		if result.Success {
			t.Fatal("expected decline on verification failure")
		}
		if result.Message != "payment verification failed" {
			t.Fatalf("unexpected message: %q", result.Message)
		}
		stored, _ := appts.GetByID("appt-1")
		if stored.Payment {
			t.Fatal("appointment must stay unpaid after a failed verification")
		}
		if appts.markPaidCalls != 0 {
			t.Fatal("MarkPaid must not run on a failed verification")
		}
	})
}

func TestConfirmMock(t *testing.T) {
	ctx := context.Background()

	t.Run("marks paid with a generated payment id", func(t *testing.T) {
		appts := newMemAppointmentRepo(testAppointment())
		svc := newTestService(appts, newMemDoctorRepo(testDoctor()), newMemUserRepo(testUser()))

		result := svc.ConfirmMock(ctx, "user-1", "appt-1", "", models.MethodRazorpay)

		if !result.Success || !result.Paid {
			t.Fatalf("expected paid result, got %+v", result)
		}
		stored, _ := appts.GetByID("appt-1")
		if !stored.Payment || stored.PaymentID == "" {
			t.Fatalf("mock payment not persisted: %+v", stored)
		}
		if stored.PaymentData["mock"] != "true" {
			t.Fatal("mock flag missing from payment data")
		}
	})

	t.Run("enforces ownership", func(t *testing.T) {
		appts := newMemAppointmentRepo(testAppointment())
		svc := newTestService(appts, newMemDoctorRepo(testDoctor()), newMemUserRepo(testUser()))

		result := svc.ConfirmMock(ctx, "someone-else", "appt-1", "", models.MethodRazorpay)

		if result.Success {
			t.Fatal("expected decline for a foreign appointment")
		}
		stored, _ := appts.GetByID("appt-1")
		if stored.Payment {
			t.Fatal("foreign mock confirm must not mark the appointment paid")
		}
	})
}

func TestStatus(t *testing.T) {
	ctx := context.Background()

	appt := testAppointment()
	appt.Payment = true
	appt.PaymentMethod = models.MethodStripe
	svc := newTestService(newMemAppointmentRepo(appt), newMemDoctorRepo(testDoctor()), newMemUserRepo(testUser()))

	result := svc.Status(ctx, "user-1", "appt-1")
	if !result.Success || !result.Paid {
		t.Fatalf("expected paid status, got %+v", result)
	}

	foreign := svc.Status(ctx, "someone-else", "appt-1")
	if foreign.Success {
		t.Fatal("status must enforce ownership")
	}
}

func TestHandleWebhook(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown provider is rejected", func(t *testing.T) {
		svc := newTestService(newMemAppointmentRepo(testAppointment()), newMemDoctorRepo(testDoctor()), newMemUserRepo(testUser()))

		err := svc.HandleWebhook(ctx, "nosuch", []byte("{}"), nil)
		if !errors.Is(err, ErrUnknownProvider) {
			t.Fatalf("expected ErrUnknownProvider, got %v", err)
		}
	})

	t.Run("verification failure rejects the delivery and mutates nothing", func(t *testing.T) {
		appts := newMemAppointmentRepo(testAppointment())
		adapter := &fakeAdapter{name: models.MethodRazorpay, webhookErr: ErrVerificationFailed}
		svc := newTestService(appts, newMemDoctorRepo(testDoctor()), newMemUserRepo(testUser()), adapter)

		err := svc.HandleWebhook(ctx, models.MethodRazorpay, []byte("tampered"), nil)
		if !errors.Is(err, ErrVerificationFailed) {
			t.Fatalf("expected ErrVerificationFailed, got %v", err)
		}
		if appts.markPaidCalls != 0 {
			t.Fatal("tampered webhook must not touch the appointment")
		}
	})

	t.Run("verified success event marks the appointment paid", func(t *testing.T) {
		appts := newMemAppointmentRepo(testAppointment())
		adapter := &fakeAdapter{
			name: models.MethodRazorpay,
			webhookEvent: &models.WebhookEvent{
				Provider:      models.MethodRazorpay,
				Type:          models.WebhookPaymentSucceeded,
				AppointmentID: "appt-1",
				PaymentID:     "pay_hook",
				RawType:       "payment.captured",
			},
		}
		svc := newTestService(appts, newMemDoctorRepo(testDoctor()), newMemUserRepo(testUser()), adapter)

		if err := svc.HandleWebhook(ctx, models.MethodRazorpay, []byte("{}"), nil); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		stored, _ := appts.GetByID("appt-1")
		if !stored.Payment || stored.PaymentID != "pay_hook" {
			t.Fatalf("webhook payment not applied: %+v", stored)
		}
	})

	t.Run("failure events are acknowledged without mutation", func(t *testing.T) {
		appts := newMemAppointmentRepo(testAppointment())
		adapter := &fakeAdapter{
			name: models.MethodRazorpay,
			webhookEvent: &models.WebhookEvent{
				Provider:      models.MethodRazorpay,
				Type:          models.WebhookPaymentFailed,
				AppointmentID: "appt-1",
				RawType:       "payment.failed",
			},
		}
		svc := newTestService(appts, newMemDoctorRepo(testDoctor()), newMemUserRepo(testUser()), adapter)

		if err := svc.HandleWebhook(ctx, models.MethodRazorpay, []byte("{}"), nil); err != nil {
			t.Fatalf("failure event must be acknowledged, got %v", err)
		}
		if appts.markPaidCalls != 0 {
			t.Fatal("failure event must not mark the appointment paid")
		}
	})

	t.Run("webhook and confirm may both apply the same payment", func(t *testing.T) {
		appts := newMemAppointmentRepo(testAppointment())
		adapter := &fakeAdapter{
			name:      models.MethodRazorpay,
			confirmID: "pay_123",
			webhookEvent: &models.WebhookEvent{
				Provider:      models.MethodRazorpay,
				Type:          models.WebhookPaymentSucceeded,
				AppointmentID: "appt-1",
				PaymentID:     "pay_123",
				RawType:       "payment.captured",
			},
		}
		svc := newTestService(appts, newMemDoctorRepo(testDoctor()), newMemUserRepo(testUser()), adapter)

		if err := svc.HandleWebhook(ctx, models.MethodRazorpay, []byte("{}"), nil); err != nil {
			t.Fatalf("unexpected webhook error: %v", err)
		}
		result := svc.Confirm(ctx, "user-1", models.ConfirmRequest{
			AppointmentID: "appt-1", PaymentMethod: models.MethodRazorpay,
			OrderID: "order_123", PaymentID: "pay_123", Signature: "sig",
		})
		if !result.Success {
			t.Fatalf("confirm after webhook must still succeed: %+v", result)
		}
		stored, _ := appts.GetByID("appt-1")
		if !stored.Payment || stored.PaymentID != "pay_123" {
			t.Fatalf("paid state inconsistent after both paths: %+v", stored)
		}
	})
}
