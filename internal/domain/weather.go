package domain

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// DefaultSoilMoisture is the volumetric fraction assumed when a snapshot has
// no soil moisture reading.
const DefaultSoilMoisture = 0.2

// soilTempOffset is how many °C cooler than air the soil is assumed to be
// when no soil temperature is reported.
const soilTempOffset = 3.0

// EstimateSoilTemperature returns the soil temperature assumed for an air
// temperature when no reading exists: air - 3, rounded to one decimal.
func EstimateSoilTemperature(air float64) float64 {
	return math.Round((air-soilTempOffset)*10) / 10
}

// Temperature holds air and soil temperatures in °C.
type Temperature struct {
	Air  float64 `json:"air"`
	Soil float64 `json:"soil"`
}

// WeatherSnapshot is a single point-in-time weather reading for one location.
type WeatherSnapshot struct {
	Timestamp   time.Time   `json:"timestamp"`
	Temperature Temperature `json:"temperature"`
	Humidity    float64     `json:"humidity"`   // percent
	Rainfall    float64     `json:"rainfall"`   // mm in the observation window
	WindSpeed   float64     `json:"wind_speed"` // m/s
	UVIndex     float64     `json:"uv_index"`
	// SoilMoisture is nil when the provider had no reading. Use
	// EffectiveSoilMoisture instead of reading it directly.
	SoilMoisture *float64 `json:"soil_moisture"`
}

// EffectiveSoilMoisture returns the reported soil moisture, or
// DefaultSoilMoisture when none was reported.
func (w WeatherSnapshot) EffectiveSoilMoisture() float64 {
	if w.SoilMoisture == nil {
		return DefaultSoilMoisture
	}
	return *w.SoilMoisture
}

// Clone returns a copy that shares no memory with w.
func (w WeatherSnapshot) Clone() WeatherSnapshot {
	if w.SoilMoisture != nil {
		m := *w.SoilMoisture
		w.SoilMoisture = &m
	}
	return w
}

// Validate reports an ErrInvalidInput when a numeric field is not finite or
// outside its physical range.
func (w WeatherSnapshot) Validate() error {
	fields := []struct {
		name  string
		value float64
	}{
		{"temperature.air", w.Temperature.Air},
		{"temperature.soil", w.Temperature.Soil},
		{"humidity", w.Humidity},
		{"rainfall", w.Rainfall},
		{"wind_speed", w.WindSpeed},
		{"uv_index", w.UVIndex},
	}
	for _, f := range fields {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) {
			return fmt.Errorf("%w: %s must be a finite number", ErrInvalidInput, f.name)
		}
	}

	if w.UVIndex < 0 {
		return fmt.Errorf("%w: uv_index must be non-negative, got %g", ErrInvalidInput, w.UVIndex)
	}
	if w.Rainfall < 0 {
		return fmt.Errorf("%w: rainfall must be non-negative, got %g", ErrInvalidInput, w.Rainfall)
	}
	if w.SoilMoisture != nil {
		m := *w.SoilMoisture
		if math.IsNaN(m) || m < 0 || m > 1 {
			return fmt.Errorf("%w: soil_moisture must be within [0, 1], got %g", ErrInvalidInput, m)
		}
	}
	return nil
}

// Geo represents a WGS-84 latitude/longitude coordinate pair.
type Geo struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Place is a named location from the location directory.
type Place struct {
	Continent string `json:"continent,omitempty"`
	Name      string `json:"name"`
	Geo       Geo    `json:"geo"`

	// Nigerian state fields, empty for country-level places.
	Capital      string `json:"capital,omitempty"`
	Abbreviation string `json:"abbreviation,omitempty"`
}

// DisplayName renders directory keys such as "Nigeria - Kano" as "Nigeria Kano".
func (p Place) DisplayName() string {
	return displayName(p.Name)
}

func displayName(name string) string {
	return strings.ReplaceAll(name, " - ", " ")
}
