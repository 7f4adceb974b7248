package models

// EmailKind selects the template used by the mail worker.
const (
	EmailBookingConfirmation = "booking_confirmation"
	EmailPaymentReceipt      = "payment_receipt"
	EmailAppointmentReminder = "appointment_reminder"
)

// EmailPayload is the asynq task payload for outbound mail.
type EmailPayload struct {
	Kind          string  `json:"kind"`
	To            string  `json:"to"`
	UserName      string  `json:"userName"`
	DoctorName    string  `json:"doctorName"`
	SlotDate      string  `json:"slotDate"`
	SlotTime      string  `json:"slotTime"`
	Amount        float64 `json:"amount"`
	PaymentMethod string  `json:"paymentMethod,omitempty"`
	AppointmentID string  `json:"appointmentId"`
}
