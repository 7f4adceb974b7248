package models

import "time"

// Doctor represents a practitioner listed in the directory.
// Fee is the consultation fee in INR; appointment amounts are snapshotted
// from this value at booking time.
type Doctor struct {
	ID             string    `bson:"id" json:"id"`
	Name           string    `bson:"name" json:"name"`
	Email          string    `bson:"email" json:"email"`
	Phone          string    `bson:"phone" json:"phone"`
	Specialization string    `bson:"specialization" json:"specialization"`
	HospitalID     string    `bson:"hospitalId" json:"hospitalId"`
	Fee            float64   `bson:"fee" json:"fee"`
	Experience     int       `bson:"experience" json:"experience"`
	About          string    `bson:"about" json:"about"`
	Available      bool      `bson:"available" json:"available"`
	Slots          []string  `bson:"slots" json:"slots"`
	CreatedAt      time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time `bson:"updatedAt" json:"updatedAt"`
}
