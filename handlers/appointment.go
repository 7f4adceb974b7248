package handlers

import (
	"net/http"

	"meddirect/models"
	"meddirect/services/appointment"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AppointmentHandler exposes the booking endpoints.
type AppointmentHandler struct {
	Service appointment.BookingService
}

// NewAppointmentHandler creates a new AppointmentHandler.
func NewAppointmentHandler(svc appointment.BookingService) *AppointmentHandler {
	return &AppointmentHandler{Service: svc}
}

// BookHandler creates an appointment for the authenticated user.
func (ah *AppointmentHandler) BookHandler(c *gin.Context) {
	userID := c.GetString("userID")

	var in models.BookingInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request payload"})
		return
	}

	appt, err := ah.Service.Book(userID, in)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, appt)
}

// ListHandler returns the authenticated user's appointments.
func (ah *AppointmentHandler) ListHandler(c *gin.Context) {
	userID := c.GetString("userID")

	appts, err := ah.Service.ListForUser(userID)
	if err != nil {
		zap.L().Error("Failed to list appointments", zap.String("userId", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch appointments"})
		return
	}
	c.JSON(http.StatusOK, appts)
}

// GetHandler returns one of the authenticated user's appointments.
func (ah *AppointmentHandler) GetHandler(c *gin.Context) {
	userID := c.GetString("userID")
	appointmentID := c.Param("id")

	appt, err := ah.Service.GetByID(userID, appointmentID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "appointment not found"})
		return
	}
	c.JSON(http.StatusOK, appt)
}

// CancelHandler cancels one of the authenticated user's appointments.
func (ah *AppointmentHandler) CancelHandler(c *gin.Context) {
	userID := c.GetString("userID")
	appointmentID := c.Param("id")

	if err := ah.Service.Cancel(userID, appointmentID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "appointment cancelled"})
}
