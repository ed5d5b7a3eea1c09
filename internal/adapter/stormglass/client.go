// Package stormglass implements domain.WeatherProvider on top of the
// Stormglass point APIs.
package stormglass

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/sony/gobreaker/v2"

	"github.com/couchcryptid/crop-advisory-service/internal/config"
	"github.com/couchcryptid/crop-advisory-service/internal/domain"
	"github.com/couchcryptid/crop-advisory-service/internal/observability"
)

const (
	endpointWeather     = "weather"
	endpointAgriculture = "agriculture"

	// Used when the agriculture endpoint is unavailable.
	fallbackUVIndex = 3.0

	breakerFailureThreshold = 5
)

var (
	weatherParams     = []string{"airTemperature", "humidity", "precipitation", "windSpeed", "gust", "pressure", "cloudCover"}
	agricultureParams = []string{"soilMoisture", "soilTemperature", "uvIndex"}
)

// Client fetches current conditions from Stormglass. The weather endpoint is
// required; the agriculture endpoint only enriches the snapshot.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker[domain.WeatherSnapshot]
	clock      clockwork.Clock
	metrics    *observability.Metrics
	logger     *slog.Logger
}

// NewClient creates a Stormglass client from the service configuration.
func NewClient(cfg *config.Config, clock clockwork.Clock, metrics *observability.Metrics, logger *slog.Logger) *Client {
	return newClient(cfg.StormglassAPIKey, cfg.StormglassBaseURL, &http.Client{Timeout: cfg.StormglassTimeout}, clock, metrics, logger)
}

func newClient(apiKey, baseURL string, httpClient *http.Client, clock clockwork.Clock, metrics *observability.Metrics, logger *slog.Logger) *Client {
	c := &Client{
		apiKey:     apiKey,
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		clock:      clock,
		metrics:    metrics,
		logger:     logger,
	}
	c.breaker = gobreaker.NewCircuitBreaker[domain.WeatherSnapshot](gobreaker.Settings{
		Name:        "stormglass",
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= breakerFailureThreshold
		},
		IsSuccessful: func(err error) bool {
			// The caller giving up says nothing about upstream health.
			return err == nil || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit breaker state change", "breaker", name, "from", from.String(), "to", to.String())
		},
	})
	return c
}

// CurrentWeather returns the most recent hour of weather at lat/lon. Failures
// of the weather endpoint, and calls made while the breaker is open, wrap
// domain.ErrUpstream.
func (c *Client) CurrentWeather(ctx context.Context, lat, lon float64) (domain.WeatherSnapshot, error) {
	snap, err := c.breaker.Execute(func() (domain.WeatherSnapshot, error) {
		return c.fetch(ctx, lat, lon)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		c.metrics.UpstreamRequests.WithLabelValues(endpointWeather, "rejected").Inc()
		return domain.WeatherSnapshot{}, fmt.Errorf("%w: stormglass circuit open: %v", domain.ErrUpstream, err)
	}
	return snap, err
}

func (c *Client) fetch(ctx context.Context, lat, lon float64) (domain.WeatherSnapshot, error) {
	now := c.clock.Now().UTC()
	params := c.pointParams(lat, lon, weatherParams)
	params.Set("start", now.Format("2006-01-02")+"T00:00:00Z")
	params.Set("end", now.Add(6*time.Hour).Format("2006-01-02")+"T23:59:59Z")

	var weather pointResponse
	if err := c.get(ctx, endpointWeather, "/weather/point", params, &weather); err != nil {
		return domain.WeatherSnapshot{}, err
	}
	if len(weather.Hours) == 0 {
		c.metrics.UpstreamRequests.WithLabelValues(endpointWeather, "error").Inc()
		return domain.WeatherSnapshot{}, fmt.Errorf("%w: stormglass weather: no hourly data", domain.ErrUpstream)
	}

	snap, err := weather.Hours[0].snapshot()
	if err != nil {
		c.metrics.UpstreamRequests.WithLabelValues(endpointWeather, "error").Inc()
		return domain.WeatherSnapshot{}, fmt.Errorf("%w: stormglass weather: %v", domain.ErrUpstream, err)
	}
	c.metrics.UpstreamRequests.WithLabelValues(endpointWeather, "success").Inc()

	c.enrich(ctx, lat, lon, &snap)
	return snap, nil
}

// enrich adds soil and UV readings. Any failure falls back to estimates
// rather than failing the whole fetch.
func (c *Client) enrich(ctx context.Context, lat, lon float64, snap *domain.WeatherSnapshot) {
	estimateSoil := func() {
		snap.Temperature.Soil = domain.EstimateSoilTemperature(snap.Temperature.Air)
	}

	var agri pointResponse
	err := c.get(ctx, endpointAgriculture, "/agriculture/point", c.pointParams(lat, lon, agricultureParams), &agri)
	if err == nil && len(agri.Hours) == 0 {
		err = errors.New("no hourly data")
	}
	if err != nil {
		c.logger.Warn("agriculture data unavailable, using fallback", "lat", lat, "lon", lon, "error", err)
		snap.UVIndex = fallbackUVIndex
		estimateSoil()
		return
	}
	c.metrics.UpstreamRequests.WithLabelValues(endpointAgriculture, "success").Inc()

	h := agri.Hours[0]
	snap.UVIndex = h.UVIndex.or(0)
	if v, ok := h.SoilTemperature.value(); ok {
		snap.Temperature.Soil = v
	} else {
		estimateSoil()
	}
	if v, ok := h.SoilMoisture.value(); ok {
		if v >= 0 && v <= 1 {
			snap.SoilMoisture = &v
		} else {
			c.logger.Warn("discarding out-of-range soil moisture", "lat", lat, "lon", lon, "soil_moisture", v)
		}
	}
}

func (c *Client) pointParams(lat, lon float64, fields []string) url.Values {
	return url.Values{
		"lat":    {strconv.FormatFloat(lat, 'f', -1, 64)},
		"lng":    {strconv.FormatFloat(lon, 'f', -1, 64)},
		"params": {strings.Join(fields, ",")},
	}
}

func (c *Client) get(ctx context.Context, endpoint, path string, params url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", c.apiKey)

	start := c.clock.Now()
	resp, err := c.httpClient.Do(req)
	c.metrics.UpstreamDuration.WithLabelValues(endpoint).Observe(c.clock.Since(start).Seconds())
	if err != nil {
		c.metrics.UpstreamRequests.WithLabelValues(endpoint, "error").Inc()
		if ctxErr := ctx.Err(); ctxErr != nil {
			return fmt.Errorf("stormglass %s request: %w", endpoint, ctxErr)
		}
		return fmt.Errorf("%w: stormglass %s request: %v", domain.ErrUpstream, endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.metrics.UpstreamRequests.WithLabelValues(endpoint, "error").Inc()
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("%w: stormglass %s API error: status %d: %s", domain.ErrUpstream, endpoint, resp.StatusCode, body)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		c.metrics.UpstreamRequests.WithLabelValues(endpoint, "error").Inc()
		return fmt.Errorf("%w: decode stormglass %s response: %v", domain.ErrUpstream, endpoint, err)
	}
	return nil
}

// Stormglass API response types. Each parameter maps data source name to
// value; only the "sg" blend is used.

type pointResponse struct {
	Hours []hour `json:"hours"`
}

type hour struct {
	Time           time.Time   `json:"time"`
	AirTemperature sourceValue `json:"airTemperature"`
	Humidity       sourceValue `json:"humidity"`
	Precipitation  sourceValue `json:"precipitation"`
	WindSpeed      sourceValue `json:"windSpeed"`

	SoilMoisture    sourceValue `json:"soilMoisture"`
	SoilTemperature sourceValue `json:"soilTemperature"`
	UVIndex         sourceValue `json:"uvIndex"`
}

type sourceValue struct {
	SG *float64 `json:"sg"`
}

func (v sourceValue) value() (float64, bool) {
	if v.SG == nil {
		return 0, false
	}
	return *v.SG, true
}

func (v sourceValue) or(fallback float64) float64 {
	if v.SG == nil {
		return fallback
	}
	return *v.SG
}

func (h hour) snapshot() (domain.WeatherSnapshot, error) {
	required := []struct {
		name string
		v    sourceValue
	}{
		{"airTemperature", h.AirTemperature},
		{"humidity", h.Humidity},
		{"precipitation", h.Precipitation},
		{"windSpeed", h.WindSpeed},
	}
	for _, r := range required {
		if r.v.SG == nil {
			return domain.WeatherSnapshot{}, fmt.Errorf("hour %s is missing %s", h.Time.Format(time.RFC3339), r.name)
		}
	}

	return domain.WeatherSnapshot{
		Timestamp:   h.Time.UTC(),
		Temperature: domain.Temperature{Air: *h.AirTemperature.SG},
		Humidity:    *h.Humidity.SG,
		Rainfall:    *h.Precipitation.SG,
		WindSpeed:   *h.WindSpeed.SG,
	}, nil
}
