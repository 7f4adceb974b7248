package appointmentRepo

import "meddirect/models"

// AppointmentRepository defines methods for appointment data access.
//
// MarkPaid is the only write the payment subsystem performs: a single $set
// on one document, never a read-modify-write, so concurrent confirm and
// webhook deliveries overwrite each other with identical values.
type AppointmentRepository interface {
	// GetByID retrieves an appointment by its unique ID.
	GetByID(id string) (*models.Appointment, error)
	// Create inserts a new appointment record.
	Create(appt *models.Appointment) error
	// ListByUser retrieves all appointments booked by a user.
	ListByUser(userID string) ([]models.Appointment, error)
	// ListByDoctor retrieves all appointments for a doctor.
	ListByDoctor(doctorID string) ([]models.Appointment, error)
	// MarkPaid applies the idempotent paid transition in one update.
	MarkPaid(id, method, paymentID string, data map[string]string) error
	// SetPaymentMethod records the chosen method while payment stays false.
	// Used by offline intents so the selection survives until settlement.
	SetPaymentMethod(id, method string) error
	// Cancel flags an appointment as cancelled. Cancellation is independent
	// of payment state.
	Cancel(id string) error
	// Delete removes an appointment record.
	Delete(id string) error
}
