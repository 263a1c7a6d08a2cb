package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"solar-dispatch/internal/advice"
	"solar-dispatch/internal/api/models"
	"solar-dispatch/internal/dispatch"
	"solar-dispatch/internal/model"
	"solar-dispatch/internal/store"
)

// SimulateHandler handles simulation requests. The store is optional; without
// it only inline series are accepted and runs cannot be saved.
type SimulateHandler struct {
	store *store.Store
}

// NewSimulateHandler creates a new simulation handler.
func NewSimulateHandler(st *store.Store) *SimulateHandler {
	return &SimulateHandler{store: st}
}

// RunSimulation handles POST /api/v1/simulate
func (h *SimulateHandler) RunSimulation(c *gin.Context) {
	var req models.SimulateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{Code: "INVALID_REQUEST", Message: err.Error()},
		})
		return
	}

	sim, err := dispatch.New(toBatteryParams(req.Battery), toPolicy(req.Policy))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{Code: "INVALID_BATTERY", Message: err.Error()},
		})
		return
	}

	production, prices, err := h.resolveSeries(&req)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{Code: "INVALID_SERIES", Message: err.Error()},
		})
		return
	}

	// Empty or misaligned series is not an error here: the dashboard calls
	// this speculatively before data is loaded and expects an empty result.
	res := sim.Run(production, prices, req.BaseLoadKWh)

	resp := models.SimulateResponse{
		Status:          "completed",
		Summary:         models.NewSummary(res),
		Recommendations: advice.Recommendations(res, prices),
	}
	if req.Options.IncludeTrace {
		resp.Trace = res.Trace
	}

	if req.Options.Save {
		if h.store == nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error: models.ErrorDetail{Code: "STORE_UNAVAILABLE", Message: "no store configured; cannot save run"},
			})
			return
		}
		id, err := h.store.SaveRun(sim.Params(), res)
		if err != nil {
			c.JSON(http.StatusInternalServerError, models.ErrorResponse{
				Error: models.ErrorDetail{Code: "SAVE_ERROR", Message: err.Error()},
			})
			return
		}
		resp.ID = id.String()
	}

	c.JSON(http.StatusOK, resp)
}

// resolveSeries picks inline rows when present, otherwise queries the store
// for the requested range.
func (h *SimulateHandler) resolveSeries(req *models.SimulateRequest) ([]model.ProductionPoint, []model.PricePoint, error) {
	if req.Series != nil {
		return req.Series.Production, req.Series.Prices, nil
	}
	if req.Range == nil {
		return nil, nil, fmt.Errorf("either series or range is required")
	}
	if h.store == nil {
		return nil, nil, fmt.Errorf("no store configured; inline series required")
	}

	from, err := parseFlexibleTime(req.Range.Start)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid range.start: %w", err)
	}
	to, err := parseFlexibleTime(req.Range.End)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid range.end: %w", err)
	}
	if from.After(to) {
		return nil, nil, fmt.Errorf("range.start must not be after range.end")
	}

	production, err := h.store.Production(from, to)
	if err != nil {
		return nil, nil, fmt.Errorf("load production: %w", err)
	}
	prices, err := h.store.Prices(from, to)
	if err != nil {
		return nil, nil, fmt.Errorf("load prices: %w", err)
	}
	return production, prices, nil
}

func toBatteryParams(b models.BatteryConfig) model.BatteryParams {
	return model.BatteryParams{
		CapacityKWh:         b.CapacityKWh,
		InitialChargeKWh:    b.InitialChargeKWh,
		ChargeEfficiency:    b.ChargeEfficiency,
		DischargeEfficiency: b.DischargeEfficiency,
		SellPriceFactor:     b.SellPriceFactor,
	}
}

func toPolicy(p models.PolicyConfig) dispatch.Policy {
	return dispatch.Policy{
		LookaheadHours:       p.LookaheadHours,
		ReferenceHours:       p.ReferenceHours,
		ChargePriceCeiling:   p.ChargePriceCeiling,
		DischargePriceFloor:  p.DischargePriceFloor,
		DischargeSOCFraction: p.DischargeSOCFraction,
		MinSpareKWh:          p.MinSpareKWh,
		MinChargeKWh:         p.MinChargeKWh,
	}
}

func parseFlexibleTime(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}
