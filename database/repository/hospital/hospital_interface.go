package hospitalRepo

import "meddirect/models"

// HospitalRepository defines methods for hospital directory access.
// Text and geospatial search are delegated wholesale to Mongo operators.
type HospitalRepository interface {
	// GetByID retrieves a hospital by its unique ID.
	GetByID(id string) (*models.Hospital, error)
	// GetAll retrieves all hospitals.
	GetAll() ([]models.Hospital, error)
	// Search runs a text search over name/address/services.
	Search(query string) ([]models.Hospital, error)
	// ListByCity retrieves hospitals in a city.
	ListByCity(city string) ([]models.Hospital, error)
	// Nearby retrieves hospitals within maxMeters of a point.
	Nearby(lon, lat float64, maxMeters int) ([]models.Hospital, error)
	// Create inserts a new hospital record.
	Create(h *models.Hospital) error
	// Update modifies an existing hospital record.
	Update(h *models.Hospital) error
	// Delete removes a hospital record by its ID.
	Delete(id string) error
}
