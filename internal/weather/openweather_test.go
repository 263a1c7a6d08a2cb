package weather

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCurrent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/weather", r.URL.Path)
		assert.Equal(t, "Madrid", r.URL.Query().Get("q"))
		assert.Equal(t, "test-key", r.URL.Query().Get("appid"))
		assert.Equal(t, "metric", r.URL.Query().Get("units"))
		w.Write([]byte(`{
			"main": {"temp": 21.5, "humidity": 40},
			"clouds": {"all": 25},
			"weather": [{"description": "scattered clouds"}]
		}`))
	}))
	defer srv.Close()

	c := NewClient("test-key", srv.URL, time.Second)
	cond, err := c.Current("Madrid")
	require.NoError(t, err)

	assert.InDelta(t, 21.5, cond.TemperatureC, 1e-9)
	assert.InDelta(t, 25, cond.CloudCoverPct, 1e-9)
	assert.InDelta(t, 40, cond.HumidityPct, 1e-9)
	assert.Equal(t, "scattered clouds", cond.Description)
}

func TestCurrent_EmptyCity(t *testing.T) {
	c := NewClient("test-key", "http://localhost", time.Second)
	_, err := c.Current("")
	assert.Error(t, err)
}

func TestCurrent_MissingAPIKey(t *testing.T) {
	c := NewClient("", "http://localhost", time.Second)
	_, err := c.Current("Madrid")
	assert.Error(t, err)
}

func TestCurrent_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"cod": 401, "message": "Invalid API key"}`))
	}))
	defer srv.Close()

	c := NewClient("bad-key", srv.URL, time.Second)
	_, err := c.Current("Madrid")

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	assert.Equal(t, "Invalid API key", apiErr.Message)
}

func TestForecast(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/forecast", r.URL.Path)
		w.Write([]byte(`{
			"list": [
				{"dt": 1770000000, "main": {"temp": 18.0, "humidity": 55}, "clouds": {"all": 80}, "weather": [{"description": "overcast"}]},
				{"dt": 1770010800, "main": {"temp": 19.0, "humidity": 50}, "clouds": {"all": 60}}
			]
		}`))
	}))
	defer srv.Close()

	c := NewClient("test-key", srv.URL, time.Second)
	items, err := c.Forecast("Madrid")
	require.NoError(t, err)
	require.Len(t, items, 2)

	assert.Equal(t, time.Unix(1770000000, 0).UTC(), items[0].Time)
	assert.InDelta(t, 18.0, items[0].TemperatureC, 1e-9)
	assert.Equal(t, "overcast", items[0].Description)
	assert.Empty(t, items[1].Description)
}
