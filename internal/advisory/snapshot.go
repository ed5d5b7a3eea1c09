package advisory

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/couchcryptid/crop-advisory-service/internal/domain"
)

// MaxSnapshotBytes caps how much of a snapshot body is read.
const MaxSnapshotBytes = 1 << 16

// snapshotRequest is the JSON shape of a caller-supplied snapshot. Pointers
// distinguish a missing field from an explicit zero.
type snapshotRequest struct {
	Timestamp    *time.Time          `json:"timestamp"`
	Temperature  *temperatureRequest `json:"temperature" validate:"required"`
	Humidity     *float64            `json:"humidity" validate:"required"`
	Rainfall     *float64            `json:"rainfall" validate:"required"`
	WindSpeed    *float64            `json:"wind_speed" validate:"required"`
	UVIndex      *float64            `json:"uv_index" validate:"required"`
	SoilMoisture *float64            `json:"soil_moisture"`
}

type temperatureRequest struct {
	Air  *float64 `json:"air" validate:"required"`
	Soil *float64 `json:"soil"`
}

func (req snapshotRequest) snapshot(now time.Time) domain.WeatherSnapshot {
	air := *req.Temperature.Air
	soil := domain.EstimateSoilTemperature(air)
	if req.Temperature.Soil != nil {
		soil = *req.Temperature.Soil
	}

	snap := domain.WeatherSnapshot{
		Timestamp:    now,
		Temperature:  domain.Temperature{Air: air, Soil: soil},
		Humidity:     *req.Humidity,
		Rainfall:     *req.Rainfall,
		WindSpeed:    *req.WindSpeed,
		UVIndex:      *req.UVIndex,
		SoilMoisture: req.SoilMoisture,
	}
	if req.Timestamp != nil {
		snap.Timestamp = req.Timestamp.UTC()
	}
	return snap
}

// validate is safe for concurrent use and caches struct metadata.
var validate = newValidator()

// newValidator reports fields by their JSON name.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	return v
}

// DecodeSnapshot reads one JSON snapshot from r and checks it. Missing
// required fields, unknown fields, and out-of-range values all wrap
// domain.ErrInvalidInput. A missing soil temperature is estimated from air.
// now stamps snapshots that carry no timestamp.
func DecodeSnapshot(r io.Reader, now time.Time) (domain.WeatherSnapshot, error) {
	var req snapshotRequest
	dec := json.NewDecoder(io.LimitReader(r, MaxSnapshotBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		return domain.WeatherSnapshot{}, fmt.Errorf("%w: malformed JSON body: %v", domain.ErrInvalidInput, err)
	}

	if err := validate.Struct(req); err != nil {
		return domain.WeatherSnapshot{}, describe(err)
	}

	snap := req.snapshot(now)
	if err := snap.Validate(); err != nil {
		return domain.WeatherSnapshot{}, err
	}
	return snap, nil
}

func describe(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		field := strings.TrimPrefix(fe.Namespace(), "snapshotRequest.")
		if fe.Tag() == "required" {
			msgs = append(msgs, field+" is required")
			continue
		}
		msgs = append(msgs, fmt.Sprintf("invalid %s: failed %s", field, fe.Tag()))
	}
	return fmt.Errorf("%w: %s", domain.ErrInvalidInput, strings.Join(msgs, "; "))
}
