package domain

import (
	"context"
	"time"
)

// WeatherProvider supplies the current weather at a coordinate.
type WeatherProvider interface {
	CurrentWeather(ctx context.Context, lat, lon float64) (WeatherSnapshot, error)
}

// Advisory is the planting advice computed for one place at one moment.
type Advisory struct {
	ID               string          `json:"id"`
	Place            Place           `json:"place"`
	Weather          WeatherSnapshot `json:"weather"`
	RecommendedCrops []ScoreResult   `json:"recommended_crops"`
	Alerts           []Alert         `json:"alerts"`
	GeneratedAt      time.Time       `json:"generated_at"`
}
