package hospitalRepo

import (
	"context"
	"fmt"
	"time"

	"meddirect/database"
	"meddirect/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoHospitalRepo implements HospitalRepository using MongoDB.
type MongoHospitalRepo struct {
	coll *mongo.Collection
}

// NewMongoHospitalRepo creates a new HospitalRepository backed by MongoDB.
func NewMongoHospitalRepo() HospitalRepository {
	coll := database.Collection("hospitals")
	repo := &MongoHospitalRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoHospitalRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "city", Value: 1}}},
		{Keys: bson.D{{Key: "name", Value: "text"}, {Key: "address", Value: "text"}, {Key: "services", Value: "text"}}},
		{Keys: bson.D{{Key: "location", Value: "2dsphere"}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// GetByID retrieves a hospital by its unique ID.
func (r *MongoHospitalRepo) GetByID(id string) (*models.Hospital, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var h models.Hospital
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&h); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch hospital with id %s: %w", id, err)
	}
	return &h, nil
}

func (r *MongoHospitalRepo) list(filter bson.M) ([]models.Hospital, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to query hospitals: %w", err)
	}
	defer cursor.Close(ctx)

	var hospitals []models.Hospital
	if err := cursor.All(ctx, &hospitals); err != nil {
		return nil, fmt.Errorf("failed to decode hospitals: %w", err)
	}
	return hospitals, nil
}

// GetAll retrieves all hospitals.
func (r *MongoHospitalRepo) GetAll() ([]models.Hospital, error) {
	return r.list(bson.M{})
}

// Search runs a Mongo $text search over the text index.
func (r *MongoHospitalRepo) Search(query string) ([]models.Hospital, error) {
	return r.list(bson.M{"$text": bson.M{"$search": query}})
}

// ListByCity retrieves hospitals in a city.
func (r *MongoHospitalRepo) ListByCity(city string) ([]models.Hospital, error) {
	return r.list(bson.M{"city": city})
}

// Nearby uses the 2dsphere index to find hospitals near a point.
func (r *MongoHospitalRepo) Nearby(lon, lat float64, maxMeters int) ([]models.Hospital, error) {
	return r.list(bson.M{
		"location": bson.M{
			"$near": bson.M{
				"$geometry":    bson.M{"type": "Point", "coordinates": []float64{lon, lat}},
				"$maxDistance": maxMeters,
			},
		},
	})
}

// Create inserts a new hospital document.
func (r *MongoHospitalRepo) Create(h *models.Hospital) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	h.CreatedAt = now
	h.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, h); err != nil {
		return fmt.Errorf("failed to create hospital: %w", err)
	}
	return nil
}

// Update modifies an existing hospital document.
func (r *MongoHospitalRepo) Update(h *models.Hospital) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	h.UpdatedAt = time.Now()
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": h.ID}, bson.M{"$set": h})
	if err != nil {
		return fmt.Errorf("failed to update hospital with id %s: %w", h.ID, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("hospital with id %s not found", h.ID)
	}
	return nil
}

// Delete removes a hospital document by its ID.
func (r *MongoHospitalRepo) Delete(id string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	result, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete hospital with id %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("hospital with id %s not found", id)
	}
	return nil
}
