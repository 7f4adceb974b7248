package hospital

import (
	"fmt"

	hospitalRepo "meddirect/database/repository/hospital"
	"meddirect/models"

	"github.com/google/uuid"
)

// HospitalService defines directory operations for hospitals.
type HospitalService interface {
	GetHospitalByID(id string) (*models.Hospital, error)
	ListHospitals(city string) ([]models.Hospital, error)
	SearchHospitals(query string) ([]models.Hospital, error)
	NearbyHospitals(lon, lat float64, maxMeters int) ([]models.Hospital, error)
	CreateHospital(h models.Hospital) (*models.Hospital, error)
	UpdateHospital(h models.Hospital) (*models.Hospital, error)
	DeleteHospital(id string) error
}

// DefaultHospitalService is the production implementation.
type DefaultHospitalService struct {
	Repo hospitalRepo.HospitalRepository
}

// GetHospitalByID retrieves a hospital by ID.
func (s *DefaultHospitalService) GetHospitalByID(id string) (*models.Hospital, error) {
	h, err := s.Repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if h == nil {
		return nil, fmt.Errorf("hospital with id %s not found", id)
	}
	return h, nil
}

// ListHospitals lists hospitals, optionally filtered by city.
func (s *DefaultHospitalService) ListHospitals(city string) ([]models.Hospital, error) {
	if city != "" {
		return s.Repo.ListByCity(city)
	}
	return s.Repo.GetAll()
}

// SearchHospitals runs a text search over the directory.
func (s *DefaultHospitalService) SearchHospitals(query string) ([]models.Hospital, error) {
	if query == "" {
		return nil, fmt.Errorf("search query is required")
	}
	return s.Repo.Search(query)
}

// NearbyHospitals finds hospitals around a point.
func (s *DefaultHospitalService) NearbyHospitals(lon, lat float64, maxMeters int) ([]models.Hospital, error) {
	if maxMeters <= 0 {
		maxMeters = 10000
	}
	return s.Repo.Nearby(lon, lat, maxMeters)
}

// CreateHospital adds a hospital to the directory.
func (s *DefaultHospitalService) CreateHospital(h models.Hospital) (*models.Hospital, error) {
	if h.Name == "" || h.City == "" {
		return nil, fmt.Errorf("hospital name and city are required")
	}
	h.ID = uuid.New().String()
	if h.Location.Type == "" {
		h.Location.Type = "Point"
	}
	if err := s.Repo.Create(&h); err != nil {
		return nil, err
	}
	return &h, nil
}

// UpdateHospital modifies a directory entry.
func (s *DefaultHospitalService) UpdateHospital(h models.Hospital) (*models.Hospital, error) {
	current, err := s.GetHospitalByID(h.ID)
	if err != nil {
		return nil, err
	}
	h.CreatedAt = current.CreatedAt
	if err := s.Repo.Update(&h); err != nil {
		return nil, err
	}
	return &h, nil
}

// DeleteHospital removes a directory entry.
func (s *DefaultHospitalService) DeleteHospital(id string) error {
	return s.Repo.Delete(id)
}
