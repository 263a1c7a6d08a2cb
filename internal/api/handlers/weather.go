package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"solar-dispatch/internal/api/models"
	"solar-dispatch/internal/weather"
)

// WeatherHandler proxies current conditions for the dashboard.
type WeatherHandler struct {
	client *weather.Client
}

func NewWeatherHandler(client *weather.Client) *WeatherHandler {
	return &WeatherHandler{client: client}
}

// Current handles GET /api/v1/weather/current?city=...
func (h *WeatherHandler) Current(c *gin.Context) {
	if h.client == nil {
		c.JSON(http.StatusServiceUnavailable, models.ErrorResponse{
			Error: models.ErrorDetail{Code: "WEATHER_UNAVAILABLE", Message: "no weather API key configured"},
		})
		return
	}

	city := c.Query("city")
	if city == "" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{Code: "INVALID_REQUEST", Message: "city query parameter is required"},
		})
		return
	}

	cond, err := h.client.Current(city)
	if err != nil {
		status := http.StatusBadGateway
		code := "WEATHER_ERROR"
		if apiErr, ok := err.(*weather.APIError); ok {
			if apiErr.StatusCode == http.StatusUnauthorized || apiErr.StatusCode == http.StatusForbidden {
				status = http.StatusUnauthorized
				code = "WEATHER_AUTH_ERROR"
			} else if apiErr.StatusCode == http.StatusNotFound {
				status = http.StatusNotFound
				code = "CITY_NOT_FOUND"
			}
		}
		c.JSON(status, models.ErrorResponse{
			Error: models.ErrorDetail{Code: code, Message: err.Error()},
		})
		return
	}

	c.JSON(http.StatusOK, cond)
}
