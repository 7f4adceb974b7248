package doctorRepo

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

// MongoDoctorRepo implements DoctorRepository using MongoDB.
type MongoDoctorRepo struct {
	coll *mongo.Collection
}

// NewMongoDoctorRepo creates a new DoctorRepository backed by MongoDB.
func NewMongoDoctorRepo() DoctorRepository {
	coll := database.Collection("doctors")
	repo := &MongoDoctorRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoDoctorRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "specialization", Value: 1}}},
		{Keys: bson.D{{Key: "hospitalId", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// GetByID retrieves a doctor by its unique ID.
func (r *MongoDoctorRepo) GetByID(id string) (*models.Doctor, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var doc models.Doctor
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch doctor with id %s: %w", id, err)
	}
	return &doc, nil
}

func (r *MongoDoctorRepo) list(filter bson.M) ([]models.Doctor, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to query doctors: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []models.Doctor
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode doctors: %w", err)
	}
	return docs, nil
}

// GetAll retrieves all doctors.
func (r *MongoDoctorRepo) GetAll() ([]models.Doctor, error) {
	return r.list(bson.M{})
}

// ListBySpecialization retrieves doctors matching a specialization.
func (r *MongoDoctorRepo) ListBySpecialization(specialization string) ([]models.Doctor, error) {
	return r.list(bson.M{"specialization": specialization})
}

// ListByHospital retrieves doctors attached to a hospital.
func (r *MongoDoctorRepo) ListByHospital(hospitalID string) ([]models.Doctor, error) {
	return r.list(bson.M{"hospitalId": hospitalID})
}

// Create inserts a new doctor document.
func (r *MongoDoctorRepo) Create(doc *models.Doctor) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	doc.CreatedAt = now
	doc.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("failed to create doctor: %w", err)
	}
	return nil
}

// Update modifies an existing doctor document.
func (r *MongoDoctorRepo) Update(doc *models.Doctor) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	doc.UpdatedAt = time.Now()
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": doc.ID}, bson.M{"$set": doc})
	if err != nil {
		return fmt.Errorf("failed to update doctor with id %s: %w", doc.ID, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("doctor with id %s not found", doc.ID)
	}
	return nil
}

// Delete removes a doctor document by its ID.
func (r *MongoDoctorRepo) Delete(id string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	result, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete doctor with id %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("doctor with id %s not found", id)
	}
	return nil
}
