package medicine

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"meddirect/config"
	"meddirect/models"
	"meddirect/utils"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// MedicineService looks up drug information from the OpenFDA label API.
type MedicineService interface {
	Search(ctx context.Context, name string, limit int) ([]models.Medicine, error)
}

// DefaultMedicineService is the production implementation with a Redis
// cache in front of OpenFDA.
type DefaultMedicineService struct {
	BaseURL    string
	Cache      *redis.Client
	CacheTTL   time.Duration
	HTTPClient *http.Client
}

// NewMedicineService builds the service from configuration.
func NewMedicineService(cache *redis.Client) *DefaultMedicineService {
	return &DefaultMedicineService{
		BaseURL:    config.AppConfig.OpenFDABaseURL,
		Cache:      cache,
		CacheTTL:   time.Duration(config.AppConfig.OpenFDACacheTTL) * time.Minute,
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// openFDAResponse mirrors the slice of the label API we consume.
type openFDAResponse struct {
	Results []struct {
		Purpose                 []string `json:"purpose"`
		Warnings                []string `json:"warnings"`
		DosageAndAdministration []string `json:"dosage_and_administration"`
		OpenFDA                 struct {
			BrandName        []string `json:"brand_name"`
			GenericName      []string `json:"generic_name"`
			ManufacturerName []string `json:"manufacturer_name"`
			Route            []string `json:"route"`
		} `json:"openfda"`
	} `json:"results"`
}

// Search queries OpenFDA for labels matching the medicine name, consulting
// the cache first.
func (s *DefaultMedicineService) Search(ctx context.Context, name string, limit int) ([]models.Medicine, error) {
	if name == "" {
		return nil, fmt.Errorf("medicine name is required")
	}
	if limit <= 0 || limit > 25 {
		limit = 5
	}

	cacheKey := fmt.Sprintf("%s%s:%d", utils.MedicineCachePrefix, name, limit)
	if s.Cache != nil {
		if cached, err := s.Cache.Get(ctx, cacheKey).Result(); err == nil {
			var meds []models.Medicine
			if err := json.Unmarshal([]byte(cached), &meds); err == nil {
				return meds, nil
			}
		}
	}

	query := url.Values{}
	// OpenFDA separates OR terms with "+", which is how Encode renders a space.
	query.Set("search", fmt.Sprintf(`openfda.brand_name:%q openfda.generic_name:%q`, name, name))
	query.Set("limit", fmt.Sprintf("%d", limit))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.BaseURL+"?"+query.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build OpenFDA request: %w", err)
	}

	resp, err := s.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("OpenFDA request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return []models.Medicine{}, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("OpenFDA returned status %d", resp.StatusCode)
	}

	var fdaResp openFDAResponse
	if err := json.NewDecoder(resp.Body).Decode(&fdaResp); err != nil {
		return nil, fmt.Errorf("failed to decode OpenFDA response: %w", err)
	}

	meds := normalizeResults(fdaResp)

	if s.Cache != nil {
		if b, err := json.Marshal(meds); err == nil {
			if err := s.Cache.Set(ctx, cacheKey, b, s.CacheTTL).Err(); err != nil {
				utils.GetLogger().Warn("Failed to cache medicine lookup", zap.Error(err))
			}
		}
	}
	return meds, nil
}

func normalizeResults(resp openFDAResponse) []models.Medicine {
	meds := make([]models.Medicine, 0, len(resp.Results))
	for _, r := range resp.Results {
		med := models.Medicine{
			Purpose:  r.Purpose,
			Warnings: r.Warnings,
			Dosage:   r.DosageAndAdministration,
			Route:    r.OpenFDA.Route,
		}
		if len(r.OpenFDA.BrandName) > 0 {
			med.BrandName = r.OpenFDA.BrandName[0]
		}
		if len(r.OpenFDA.GenericName) > 0 {
			med.GenericName = r.OpenFDA.GenericName[0]
		}
		if len(r.OpenFDA.ManufacturerName) > 0 {
			med.Manufacturer = r.OpenFDA.ManufacturerName[0]
		}
		meds = append(meds, med)
	}
	return meds
}
