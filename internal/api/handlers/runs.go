package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"solar-dispatch/internal/api/models"
	"solar-dispatch/internal/store"
)

// RunsHandler serves previously saved simulation runs.
type RunsHandler struct {
	store *store.Store
}

func NewRunsHandler(st *store.Store) *RunsHandler {
	return &RunsHandler{store: st}
}

// ListRuns handles GET /api/v1/simulations
func (h *RunsHandler) ListRuns(c *gin.Context) {
	if h.store == nil {
		c.JSON(http.StatusServiceUnavailable, models.ErrorResponse{
			Error: models.ErrorDetail{Code: "STORE_UNAVAILABLE", Message: "no store configured"},
		})
		return
	}

	limit := 10
	if s := c.Query("limit"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			limit = n
		}
	}

	runs, err := h.store.RecentRuns(limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error: models.ErrorDetail{Code: "STORE_ERROR", Message: err.Error()},
		})
		return
	}

	infos := make([]models.RunInfo, len(runs))
	for i, r := range runs {
		infos[i] = models.RunInfo{
			ID:               r.ID.String(),
			CreatedAt:        r.CreatedAt,
			CapacityKWh:      r.CapacityKWh,
			InitialChargeKWh: r.InitialChargeKWh,
		}
	}
	c.JSON(http.StatusOK, gin.H{"runs": infos})
}

// GetRun handles GET /api/v1/simulations/:id
func (h *RunsHandler) GetRun(c *gin.Context) {
	if h.store == nil {
		c.JSON(http.StatusServiceUnavailable, models.ErrorResponse{
			Error: models.ErrorDetail{Code: "STORE_UNAVAILABLE", Message: "no store configured"},
		})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{Code: "INVALID_ID", Message: "run id must be a UUID"},
		})
		return
	}

	run, err := h.store.Run(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse{
				Error: models.ErrorDetail{Code: "RUN_NOT_FOUND", Message: "no run with that id"},
			})
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error: models.ErrorDetail{Code: "STORE_ERROR", Message: err.Error()},
		})
		return
	}

	res, err := store.DecodeRunResult(run)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error: models.ErrorDetail{Code: "DECODE_ERROR", Message: err.Error()},
		})
		return
	}

	c.JSON(http.StatusOK, models.SimulateResponse{
		ID:      run.ID.String(),
		Status:  "completed",
		Summary: models.NewSummary(res),
		Trace:   res.Trace,
	})
}
