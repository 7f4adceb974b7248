package appointment

import (
	"fmt"
	"time"

	appointmentRepo "meddirect/database/repository/appointment"
	doctorRepo "meddirect/database/repository/doctor"
	userRepo "meddirect/database/repository/user"
	"meddirect/models"
	"meddirect/services/tasks"
	"meddirect/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// BookingService handles appointment lifecycle: booking, cancellation and
// listing. Payment state is mutated only by the payment subsystem.
type BookingService interface {
	Book(userID string, in models.BookingInput) (*models.Appointment, error)
	Cancel(userID, appointmentID string) error
	GetByID(userID, appointmentID string) (*models.Appointment, error)
	ListForUser(userID string) ([]models.Appointment, error)
	ListForDoctor(doctorID string) ([]models.Appointment, error)
}

// DefaultBookingService is the production implementation.
type DefaultBookingService struct {
	Appointments appointmentRepo.AppointmentRepository
	Doctors      doctorRepo.DoctorRepository
	Users        userRepo.UserRepository
	Queue        tasks.Enqueuer // optional; nil disables confirmation emails
}

// Book creates an appointment with the doctor's fee snapshotted into the
// amount and payment=false.
func (s *DefaultBookingService) Book(userID string, in models.BookingInput) (*models.Appointment, error) {
	doc, err := s.Doctors.GetByID(in.DoctorID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch doctor: %w", err)
	}
	if doc == nil {
		return nil, fmt.Errorf("doctor with id %s not found", in.DoctorID)
	}
	if !doc.Available {
		return nil, fmt.Errorf("doctor is not accepting appointments")
	}

	appt := &models.Appointment{
		ID:       uuid.New().String(),
		UserID:   userID,
		DoctorID: doc.ID,
		SlotDate: in.SlotDate,
		SlotTime: in.SlotTime,
		Amount:   doc.Fee,
	}
	if err := s.Appointments.Create(appt); err != nil {
		return nil, fmt.Errorf("failed to create appointment: %w", err)
	}

	s.sendBookingEmail(appt, doc)
	return appt, nil
}

// Cancel flags an appointment as cancelled. Cancellation is independent of
// payment state.
func (s *DefaultBookingService) Cancel(userID, appointmentID string) error {
	appt, err := s.GetByID(userID, appointmentID)
	if err != nil {
		return err
	}
	return s.Appointments.Cancel(appt.ID)
}

// GetByID retrieves an appointment owned by the caller.
func (s *DefaultBookingService) GetByID(userID, appointmentID string) (*models.Appointment, error) {
	appt, err := s.Appointments.GetByID(appointmentID)
	if err != nil {
		return nil, err
	}
	if appt == nil || appt.UserID != userID {
		return nil, fmt.Errorf("appointment with id %s not found", appointmentID)
	}
	return appt, nil
}

// ListForUser retrieves all appointments booked by a user.
func (s *DefaultBookingService) ListForUser(userID string) ([]models.Appointment, error) {
	return s.Appointments.ListByUser(userID)
}

// ListForDoctor retrieves all appointments for a doctor.
func (s *DefaultBookingService) ListForDoctor(doctorID string) ([]models.Appointment, error) {
	return s.Appointments.ListByDoctor(doctorID)
}

// sendBookingEmail queues the confirmation email plus a reminder the
// morning of the appointment. Best effort.
func (s *DefaultBookingService) sendBookingEmail(appt *models.Appointment, doc *models.Doctor) {
	if s.Queue == nil || s.Users == nil {
		return
	}
	usr, err := s.Users.GetByID(appt.UserID)
	if err != nil || usr == nil || usr.Email == "" {
		return
	}

	payload := models.EmailPayload{
		Kind:          models.EmailBookingConfirmation,
		To:            usr.Email,
		UserName:      usr.Name,
		DoctorName:    doc.Name,
		SlotDate:      appt.SlotDate,
		SlotTime:      appt.SlotTime,
		Amount:        appt.Amount,
		AppointmentID: appt.ID,
	}
	if err := s.Queue.EnqueueEmail(payload, 0); err != nil {
		utils.GetLogger().Warn("Failed to enqueue booking email",
			zap.String("appointmentId", appt.ID), zap.Error(err))
		return
	}

	if delay := reminderDelay(appt.SlotDate); delay > 0 {
		reminder := payload
		reminder.Kind = models.EmailAppointmentReminder
		if err := s.Queue.EnqueueEmail(reminder, delay); err != nil {
			utils.GetLogger().Warn("Failed to enqueue reminder email",
				zap.String("appointmentId", appt.ID), zap.Error(err))
		}
	}
}

// reminderDelay computes how long until 8am on the slot date. Slot dates
// are "2006-01-02" strings; anything unparsable gets no reminder.
func reminderDelay(slotDate string) time.Duration {
	day, err := time.ParseInLocation("2006-01-02", slotDate, time.Local)
	if err != nil {
		return 0
	}
	fireAt := day.Add(8 * time.Hour)
	delay := time.Until(fireAt)
	if delay <= 0 {
		return 0
	}
	return delay
}
