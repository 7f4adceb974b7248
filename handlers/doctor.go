package handlers

import (
	"net/http"

	"meddirect/models"
	"meddirect/services/doctor"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// DoctorHandler exposes the doctor directory endpoints.
type DoctorHandler struct {
	Service doctor.DoctorService
}

// NewDoctorHandler creates a new DoctorHandler.
func NewDoctorHandler(svc doctor.DoctorService) *DoctorHandler {
	return &DoctorHandler{Service: svc}
}

// ListDoctorsHandler returns doctors, optionally filtered by specialization
// or hospital.
func (dh *DoctorHandler) ListDoctorsHandler(c *gin.Context) {
	specialization := c.Query("specialization")
	hospitalID := c.Query("hospitalId")

	doctors, err := dh.Service.ListDoctors(specialization, hospitalID)
	if err != nil {
		zap.L().Error("Failed to list doctors", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch doctors"})
		return
	}
	c.JSON(http.StatusOK, doctors)
}

// GetDoctorHandler returns a single doctor by id.
func (dh *DoctorHandler) GetDoctorHandler(c *gin.Context) {
	id := c.Param("id")

	doc, err := dh.Service.GetDoctorByID(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "doctor not found"})
		return
	}
	c.JSON(http.StatusOK, doc)
}

// CreateDoctorHandler adds a doctor to the directory.
func (dh *DoctorHandler) CreateDoctorHandler(c *gin.Context) {
	var doc models.Doctor
	if err := c.ShouldBindJSON(&doc); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request payload"})
		return
	}

	created, err := dh.Service.CreateDoctor(doc)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, created)
}

// UpdateDoctorHandler updates a doctor's directory entry.
func (dh *DoctorHandler) UpdateDoctorHandler(c *gin.Context) {
	var doc models.Doctor
	if err := c.ShouldBindJSON(&doc); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request payload"})
		return
	}
	doc.ID = c.Param("id")

	updated, err := dh.Service.UpdateDoctor(doc)
	if err != nil {
		zap.L().Error("Failed to update doctor", zap.String("doctorId", doc.ID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update doctor"})
		return
	}
	c.JSON(http.StatusOK, updated)
}

// DeleteDoctorHandler removes a doctor from the directory.
func (dh *DoctorHandler) DeleteDoctorHandler(c *gin.Context) {
	id := c.Param("id")

	if err := dh.Service.DeleteDoctor(id); err != nil {
		zap.L().Error("Failed to delete doctor", zap.String("doctorId", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete doctor"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "doctor deleted"})
}
