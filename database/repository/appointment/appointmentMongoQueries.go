// File: database/repository/appointment/appointmentMongoQueries.go
package appointmentRepo

import (
	"fmt"
	"time"

	"meddirect/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (r *MongoAppointmentRepo) list(filter bson.M) ([]models.Appointment, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query appointments: %w", err)
	}
	defer cursor.Close(ctx)

	var appts []models.Appointment
	if err := cursor.All(ctx, &appts); err != nil {
		return nil, fmt.Errorf("failed to decode appointments: %w", err)
	}
	return appts, nil
}

// ListByUser retrieves all appointments booked by a user, newest first.
func (r *MongoAppointmentRepo) ListByUser(userID string) ([]models.Appointment, error) {
	return r.list(bson.M{"userId": userID})
}

// ListByDoctor retrieves all appointments for a doctor, newest first.
func (r *MongoAppointmentRepo) ListByDoctor(doctorID string) ([]models.Appointment, error) {
	return r.list(bson.M{"doctorId": doctorID})
}
