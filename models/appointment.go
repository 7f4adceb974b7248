package models

import "time"

// Appointment is the booking record. The payment subsystem only ever mutates
// the payment fields of an existing appointment; it never creates one.
//
// Payment transitions false -> true at most once through the confirmation
// path. Webhook and direct-confirm deliveries both apply the same overwrite,
// so repeated delivery is harmless.
type Appointment struct {
	ID            string            `bson:"id" json:"id"`
	UserID        string            `bson:"userId" json:"userId"`
	DoctorID      string            `bson:"doctorId" json:"doctorId"`
	SlotDate      string            `bson:"slotDate" json:"slotDate"`
	SlotTime      string            `bson:"slotTime" json:"slotTime"`
	Amount        float64           `bson:"amount" json:"amount"`
	Cancelled     bool              `bson:"cancelled" json:"cancelled"`
	Payment       bool              `bson:"payment" json:"payment"`
	PaymentMethod string            `bson:"paymentMethod,omitempty" json:"paymentMethod,omitempty"`
	PaymentID     string            `bson:"paymentId,omitempty" json:"paymentId,omitempty"`
	PaymentData   map[string]string `bson:"paymentData,omitempty" json:"paymentData,omitempty"`
	CreatedAt     time.Time         `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time         `bson:"updatedAt" json:"updatedAt"`
}

// BookingInput is the payload accepted by the booking endpoint.
type BookingInput struct {
	DoctorID string `json:"doctorId" binding:"required"`
	SlotDate string `json:"slotDate" binding:"required"`
	SlotTime string `json:"slotTime" binding:"required"`
}
