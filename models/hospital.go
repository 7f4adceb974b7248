package models

import "time"

// Hospital is a directory entry.
type Hospital struct {
	ID        string    `bson:"id" json:"id"`
	Name      string    `bson:"name" json:"name"`
	Address   string    `bson:"address" json:"address"`
	City      string    `bson:"city" json:"city"`
	State     string    `bson:"state" json:"state"`
	Phone     string    `bson:"phone" json:"phone"`
	Email     string    `bson:"email" json:"email"`
	Services  []string  `bson:"services" json:"services"`
	Location  GeoPoint  `bson:"location" json:"location"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// GeoPoint is a GeoJSON point; nearby-hospital queries are delegated to
// Mongo's 2dsphere operators.
type GeoPoint struct {
	Type        string    `bson:"type" json:"type"`
	Coordinates []float64 `bson:"coordinates" json:"coordinates"` // [lon, lat]
}
