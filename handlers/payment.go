package handlers

import (
	"errors"
	"io"
	"net/http"

	"meddirect/models"
	"meddirect/services/payment"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// PaymentHandler exposes the payment endpoints.
type PaymentHandler struct {
	Service payment.PaymentService
}

// NewPaymentHandler creates a new PaymentHandler.
func NewPaymentHandler(svc payment.PaymentService) *PaymentHandler {
	return &PaymentHandler{Service: svc}
}

// ListMethodsHandler returns the payment methods available for the
// caller's country. Country comes from the query string, defaulting to IN.
func (ph *PaymentHandler) ListMethodsHandler(c *gin.Context) {
	country := c.Query("country")
	methods := ph.Service.ListMethods(country)
	c.JSON(http.StatusOK, gin.H{"methods": methods})
}

// CreateIntentHandler starts a payment for an appointment. Business
// failures come back as 200 with success=false.
func (ph *PaymentHandler) CreateIntentHandler(c *gin.Context) {
	userID := c.GetString("userID")

	var in payment.CreateIntentInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request payload"})
		return
	}

	result := ph.Service.CreateIntent(c.Request.Context(), userID, in)
	c.JSON(http.StatusOK, result)
}

// ConfirmHandler finalizes a payment with provider confirmation fields.
func (ph *PaymentHandler) ConfirmHandler(c *gin.Context) {
	userID := c.GetString("userID")

	var req models.ConfirmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request payload"})
		return
	}

	result := ph.Service.Confirm(c.Request.Context(), userID, req)
	c.JSON(http.StatusOK, result)
}

// ConfirmMockHandler finalizes a mock payment. Disabled in production.
func (ph *PaymentHandler) ConfirmMockHandler(c *gin.Context) {
	userID := c.GetString("userID")

	var req struct {
		AppointmentID string `json:"appointmentId" binding:"required"`
		PaymentMethod string `json:"paymentMethod" binding:"required"`
		PaymentID     string `json:"paymentId"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request payload"})
		return
	}

	result := ph.Service.ConfirmMock(c.Request.Context(), userID, req.AppointmentID, req.PaymentID, req.PaymentMethod)
	c.JSON(http.StatusOK, result)
}

// StatusHandler reports the payment state of an appointment.
func (ph *PaymentHandler) StatusHandler(c *gin.Context) {
	userID := c.GetString("userID")
	appointmentID := c.Param("appointmentId")

	result := ph.Service.Status(c.Request.Context(), userID, appointmentID)
	c.JSON(http.StatusOK, result)
}

// WebhookHandler receives provider callbacks. The raw body is passed
// untouched to the adapter so signature verification sees exactly what
// the provider signed.
func (ph *PaymentHandler) WebhookHandler(c *gin.Context) {
	provider := c.Param("provider")

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		zap.L().Error("Failed to read webhook body", zap.String("provider", provider), zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read request body"})
		return
	}

	err = ph.Service.HandleWebhook(c.Request.Context(), provider, body, c.Request.Header)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"received": true})
	case errors.Is(err, payment.ErrUnknownProvider):
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown payment provider"})
	case errors.Is(err, payment.ErrVerificationFailed):
		c.JSON(http.StatusBadRequest, gin.H{"error": "webhook verification failed"})
	default:
		zap.L().Error("Webhook processing failed", zap.String("provider", provider), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to process webhook"})
	}
}
