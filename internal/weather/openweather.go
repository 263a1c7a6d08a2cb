// Package weather fetches current conditions and short-range forecasts from
// OpenWeatherMap. It is the only outbound network surface of the system; the
// dispatch simulator itself never performs I/O.
package weather

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"time"
)

// Client provides methods to fetch data from the OpenWeatherMap API.
type Client struct {
	APIKey  string
	BaseURL string
	Units   string
	HTTP    *http.Client
}

// NewClient creates an OpenWeatherMap client. If baseURL is empty it defaults
// to the public endpoint; units default to metric.
func NewClient(apiKey, baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = "https://api.openweathermap.org/data/2.5"
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		APIKey:  apiKey,
		BaseURL: baseURL,
		Units:   "metric",
		HTTP:    &http.Client{Timeout: timeout},
	}
}

// Conditions are the weather features consumed by the yield estimator.
type Conditions struct {
	Time          time.Time `json:"time"`
	TemperatureC  float64   `json:"temperature_c"`
	CloudCoverPct float64   `json:"cloud_cover_pct"`
	HumidityPct   float64   `json:"humidity_pct"`
	Description   string    `json:"description"`
}

// APIError represents a non-2xx response from OpenWeatherMap.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("openweather: %s (status %d)", e.Message, e.StatusCode)
}

// Current fetches the present conditions for a city.
func (c *Client) Current(city string) (*Conditions, error) {
	if city == "" {
		return nil, fmt.Errorf("city is required")
	}
	var raw currentResponse
	if err := c.get("/weather", url.Values{"q": {city}}, &raw); err != nil {
		return nil, err
	}

	cond := &Conditions{
		Time:          time.Now().UTC().Truncate(time.Hour),
		TemperatureC:  raw.Main.Temp,
		CloudCoverPct: float64(raw.Clouds.All),
		HumidityPct:   float64(raw.Main.Humidity),
	}
	if len(raw.Weather) > 0 {
		cond.Description = raw.Weather[0].Description
	}
	return cond, nil
}

// Forecast fetches the 5-day forecast, one entry per 3 hours.
func (c *Client) Forecast(city string) ([]Conditions, error) {
	if city == "" {
		return nil, fmt.Errorf("city is required")
	}
	var raw forecastResponse
	if err := c.get("/forecast", url.Values{"q": {city}}, &raw); err != nil {
		return nil, err
	}

	out := make([]Conditions, 0, len(raw.List))
	for _, item := range raw.List {
		cond := Conditions{
			Time:          time.Unix(item.Dt, 0).UTC(),
			TemperatureC:  item.Main.Temp,
			CloudCoverPct: float64(item.Clouds.All),
			HumidityPct:   float64(item.Main.Humidity),
		}
		if len(item.Weather) > 0 {
			cond.Description = item.Weather[0].Description
		}
		out = append(out, cond)
	}
	return out, nil
}

func (c *Client) get(path string, params url.Values, into any) error {
	if c.APIKey == "" {
		return fmt.Errorf("API key is required")
	}

	u, err := url.Parse(c.BaseURL + path)
	if err != nil {
		return fmt.Errorf("invalid base URL: %w", err)
	}
	q := u.Query()
	for k, vs := range params {
		for _, v := range vs {
			q.Set(k, v)
		}
	}
	q.Set("appid", c.APIKey)
	units := c.Units
	if units == "" {
		units = "metric"
	}
	q.Set("units", units)
	u.RawQuery = q.Encode()

	log.Printf("[OpenWeather] Request: GET %s (city=%s)", path, params.Get("q"))

	resp, err := c.HTTP.Get(u.String())
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		msg := parseAPIMessage(body)
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return &APIError{StatusCode: resp.StatusCode, Message: msg}
	}

	if err := json.Unmarshal(body, into); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func parseAPIMessage(body []byte) string {
	var e struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &e); err != nil {
		return ""
	}
	return e.Message
}

// Wire shapes of the OpenWeatherMap responses; only the fields we consume.

type currentResponse struct {
	Main struct {
		Temp     float64 `json:"temp"`
		Humidity int     `json:"humidity"`
	} `json:"main"`
	Clouds struct {
		All int `json:"all"`
	} `json:"clouds"`
	Weather []struct {
		Description string `json:"description"`
	} `json:"weather"`
}

type forecastResponse struct {
	List []struct {
		Dt   int64 `json:"dt"`
		Main struct {
			Temp     float64 `json:"temp"`
			Humidity int     `json:"humidity"`
		} `json:"main"`
		Clouds struct {
			All int `json:"all"`
		} `json:"clouds"`
		Weather []struct {
			Description string `json:"description"`
		} `json:"weather"`
	} `json:"list"`
}
