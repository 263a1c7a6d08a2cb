package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"solar-dispatch/internal/api/models"
)

func roiRouter() *gin.Engine {
	r := gin.New()
	r.POST("/api/v1/roi", NewROIHandler().Calculate)
	return r
}

func TestROICalculate(t *testing.T) {
	r := roiRouter()

	w := postJSON(t, r, "/api/v1/roi", models.ROIRequest{
		Investment:    15000,
		AnnualBenefit: 1200,
		LifetimeYears: 25,
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp models.ROIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.InDelta(t, 30000, resp.TotalBenefit, 1e-9)
	assert.InDelta(t, 100, resp.ROIPercent, 1e-9)
	assert.Equal(t, "12.50", resp.PaybackYears)
	assert.InDelta(t, 8, resp.ApproxIRRPercent, 1e-9)
}

func TestROICalculate_DefaultLifetime(t *testing.T) {
	r := roiRouter()

	w := postJSON(t, r, "/api/v1/roi", models.ROIRequest{
		Investment:    15000,
		AnnualBenefit: 1200,
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp models.ROIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.InDelta(t, 30000, resp.TotalBenefit, 1e-9)
}

func TestROICalculate_InfinitePayback(t *testing.T) {
	r := roiRouter()

	w := postJSON(t, r, "/api/v1/roi", models.ROIRequest{
		Investment:    15000,
		AnnualBenefit: 0,
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp models.ROIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "inf", resp.PaybackYears)
}

func TestROICalculate_MissingInvestment(t *testing.T) {
	r := roiRouter()

	w := postJSON(t, r, "/api/v1/roi", models.ROIRequest{AnnualBenefit: 1200})
	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp models.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "INVALID_REQUEST", resp.Error.Code)
}
