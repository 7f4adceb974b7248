package doctorRepo

import "meddirect/models"

// DoctorRepository defines methods for doctor data access. The payment
// orchestrator only needs GetByID to resolve the authoritative fee.
type DoctorRepository interface {
	// GetByID retrieves a doctor by its unique ID.
	GetByID(id string) (*models.Doctor, error)
	// GetAll retrieves all doctors.
	GetAll() ([]models.Doctor, error)
	// ListBySpecialization retrieves doctors matching a specialization.
	ListBySpecialization(specialization string) ([]models.Doctor, error)
	// ListByHospital retrieves doctors attached to a hospital.
	ListByHospital(hospitalID string) ([]models.Doctor, error)
	// Create inserts a new doctor record.
	Create(doc *models.Doctor) error
	// Update modifies an existing doctor record.
	Update(doc *models.Doctor) error
	// Delete removes a doctor record by its ID.
	Delete(id string) error
}
