package handlers

import (
	"net/http"
	"strconv"

	"meddirect/models"
	"meddirect/services/hospital"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// HospitalHandler exposes the hospital directory endpoints.
type HospitalHandler struct {
	Service hospital.HospitalService
}

// NewHospitalHandler creates a new HospitalHandler.
func NewHospitalHandler(svc hospital.HospitalService) *HospitalHandler {
	return &HospitalHandler{Service: svc}
}

// ListHospitalsHandler returns hospitals, optionally filtered by city.
func (hh *HospitalHandler) ListHospitalsHandler(c *gin.Context) {
	city := c.Query("city")

	hospitals, err := hh.Service.ListHospitals(city)
	if err != nil {
		zap.L().Error("Failed to list hospitals", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch hospitals"})
		return
	}
	c.JSON(http.StatusOK, hospitals)
}

// GetHospitalHandler returns a single hospital by id.
func (hh *HospitalHandler) GetHospitalHandler(c *gin.Context) {
	id := c.Param("id")

	h, err := hh.Service.GetHospitalByID(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "hospital not found"})
		return
	}
	c.JSON(http.StatusOK, h)
}

// SearchHospitalsHandler runs a text search over names, addresses and services.
func (hh *HospitalHandler) SearchHospitalsHandler(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query parameter q is required"})
		return
	}

	hospitals, err := hh.Service.SearchHospitals(query)
	if err != nil {
		zap.L().Error("Failed to search hospitals", zap.String("query", query), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to search hospitals"})
		return
	}
	c.JSON(http.StatusOK, hospitals)
}

// NearbyHospitalsHandler returns hospitals close to a coordinate.
func (hh *HospitalHandler) NearbyHospitalsHandler(c *gin.Context) {
	lon, errLon := strconv.ParseFloat(c.Query("lon"), 64)
	lat, errLat := strconv.ParseFloat(c.Query("lat"), 64)
	if errLon != nil || errLat != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "lon and lat query parameters are required"})
		return
	}
	radius, _ := strconv.Atoi(c.Query("radius"))

	hospitals, err := hh.Service.NearbyHospitals(lon, lat, radius)
	if err != nil {
		zap.L().Error("Failed to find nearby hospitals", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to find nearby hospitals"})
		return
	}
	c.JSON(http.StatusOK, hospitals)
}

// CreateHospitalHandler adds a hospital to the directory.
func (hh *HospitalHandler) CreateHospitalHandler(c *gin.Context) {
	var h models.Hospital
	if err := c.ShouldBindJSON(&h); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request payload"})
		return
	}

	created, err := hh.Service.CreateHospital(h)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, created)
}

// UpdateHospitalHandler updates a hospital's directory entry.
func (hh *HospitalHandler) UpdateHospitalHandler(c *gin.Context) {
	var h models.Hospital
	if err := c.ShouldBindJSON(&h); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request payload"})
		return
	}
	h.ID = c.Param("id")

	updated, err := hh.Service.UpdateHospital(h)
	if err != nil {
		zap.L().Error("Failed to update hospital", zap.String("hospitalId", h.ID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update hospital"})
		return
	}
	c.JSON(http.StatusOK, updated)
}

// DeleteHospitalHandler removes a hospital from the directory.
func (hh *HospitalHandler) DeleteHospitalHandler(c *gin.Context) {
	id := c.Param("id")

	if err := hh.Service.DeleteHospital(id); err != nil {
		zap.L().Error("Failed to delete hospital", zap.String("hospitalId", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete hospital"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "hospital deleted"})
}
