package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"solar-dispatch/internal/api/models"
	"solar-dispatch/internal/tariff"
)

// TariffHandler classifies price series into buy/sell windows. Stateless.
type TariffHandler struct{}

func NewTariffHandler() *TariffHandler { return &TariffHandler{} }

// Windows handles POST /api/v1/tariff/windows
func (h *TariffHandler) Windows(c *gin.Context) {
	var req models.WindowsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{Code: "INVALID_REQUEST", Message: err.Error()},
		})
		return
	}

	c.JSON(http.StatusOK, tariff.Classify(req.Prices, req.WindowHours))
}
