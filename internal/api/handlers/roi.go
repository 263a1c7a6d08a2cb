package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"solar-dispatch/internal/api/models"
	"solar-dispatch/internal/finance"
)

// ROIHandler computes investment returns. Stateless.
type ROIHandler struct{}

func NewROIHandler() *ROIHandler { return &ROIHandler{} }

// Calculate handles POST /api/v1/roi
func (h *ROIHandler) Calculate(c *gin.Context) {
	var req models.ROIRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{Code: "INVALID_REQUEST", Message: err.Error()},
		})
		return
	}
	if req.LifetimeYears == 0 {
		req.LifetimeYears = 25
	}

	res, err := finance.ROI(req.Investment, req.AnnualBenefit, req.LifetimeYears)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{Code: "INVALID_FINANCE", Message: err.Error()},
		})
		return
	}

	c.JSON(http.StatusOK, models.ROIResponse{
		TotalBenefit:     res.TotalBenefit,
		ROIPercent:       res.ROIPercent,
		PaybackYears:     res.PaybackYearsString(),
		ApproxIRRPercent: res.ApproxIRRPercent,
	})
}
