package doctor

import (
	"fmt"

	doctorRepo "meddirect/database/repository/doctor"
	"meddirect/models"

	"github.com/google/uuid"
)

// DoctorService defines directory operations for practitioners.
type DoctorService interface {
	GetDoctorByID(id string) (*models.Doctor, error)
	ListDoctors(specialization, hospitalID string) ([]models.Doctor, error)
	CreateDoctor(doc models.Doctor) (*models.Doctor, error)
	UpdateDoctor(doc models.Doctor) (*models.Doctor, error)
	DeleteDoctor(id string) error
}

// DefaultDoctorService is the production implementation.
type DefaultDoctorService struct {
	Repo doctorRepo.DoctorRepository
}

// GetDoctorByID retrieves a doctor by ID.
func (s *DefaultDoctorService) GetDoctorByID(id string) (*models.Doctor, error) {
	doc, err := s.Repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, fmt.Errorf("doctor with id %s not found", id)
	}
	return doc, nil
}

// ListDoctors lists doctors, optionally filtered by specialization or hospital.
func (s *DefaultDoctorService) ListDoctors(specialization, hospitalID string) ([]models.Doctor, error) {
	switch {
	case specialization != "":
		return s.Repo.ListBySpecialization(specialization)
	case hospitalID != "":
		return s.Repo.ListByHospital(hospitalID)
	default:
		return s.Repo.GetAll()
	}
}

// CreateDoctor adds a practitioner to the directory.
func (s *DefaultDoctorService) CreateDoctor(doc models.Doctor) (*models.Doctor, error) {
	if doc.Name == "" || doc.Specialization == "" {
		return nil, fmt.Errorf("doctor name and specialization are required")
	}
	if doc.Fee <= 0 {
		return nil, fmt.Errorf("doctor fee must be positive")
	}
	doc.ID = uuid.New().String()
	doc.Available = true
	if err := s.Repo.Create(&doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// UpdateDoctor modifies a directory entry.
func (s *DefaultDoctorService) UpdateDoctor(doc models.Doctor) (*models.Doctor, error) {
	current, err := s.GetDoctorByID(doc.ID)
	if err != nil {
		return nil, err
	}
	doc.CreatedAt = current.CreatedAt
	if err := s.Repo.Update(&doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// DeleteDoctor removes a directory entry.
func (s *DefaultDoctorService) DeleteDoctor(id string) error {
	return s.Repo.Delete(id)
}
