package handlers

import (
	"net/http"
	"strconv"

	"meddirect/services/medicine"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// MedicineHandler exposes the drug label lookup endpoint.
type MedicineHandler struct {
	Service medicine.MedicineService
}

// NewMedicineHandler creates a new MedicineHandler.
func NewMedicineHandler(svc medicine.MedicineService) *MedicineHandler {
	return &MedicineHandler{Service: svc}
}

// SearchHandler looks up drug label information by medicine name.
func (mh *MedicineHandler) SearchHandler(c *gin.Context) {
	name := c.Query("name")
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query parameter name is required"})
		return
	}
	limit, _ := strconv.Atoi(c.Query("limit"))

	meds, err := mh.Service.Search(c.Request.Context(), name, limit)
	if err != nil {
		zap.L().Error("Medicine lookup failed", zap.String("name", name), zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to look up medicine"})
		return
	}
	c.JSON(http.StatusOK, meds)
}
