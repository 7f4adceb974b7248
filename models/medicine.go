package models

// Medicine is the normalized projection of an OpenFDA drug label result.
type Medicine struct {
	BrandName    string   `json:"brandName"`
	GenericName  string   `json:"genericName"`
	Manufacturer string   `json:"manufacturer"`
	Purpose      []string `json:"purpose,omitempty"`
	Warnings     []string `json:"warnings,omitempty"`
	Dosage       []string `json:"dosage,omitempty"`
	Route        []string `json:"route,omitempty"`
}
