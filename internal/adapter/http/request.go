package http

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/couchcryptid/crop-advisory-service/internal/advisory"
	"github.com/couchcryptid/crop-advisory-service/internal/domain"
)

// decodeSnapshot reads and checks a snapshot body. Every failure wraps
// domain.ErrInvalidInput.
func (a *API) decodeSnapshot(r *http.Request) (domain.WeatherSnapshot, error) {
	return advisory.DecodeSnapshot(r.Body, a.service.Now())
}

// monthParam reads ?month=1..12, defaulting to the current month.
func (a *API) monthParam(r *http.Request) (time.Month, error) {
	raw := r.URL.Query().Get("month")
	if raw == "" {
		return a.service.Month(), nil
	}
	m, err := strconv.Atoi(raw)
	if err != nil || m < 1 || m > 12 {
		return 0, fmt.Errorf("%w: month must be an integer from 1 to 12, got %q", domain.ErrInvalidInput, raw)
	}
	return time.Month(m), nil
}

// topParam reads ?top=N. Zero or absent means the service default.
func topParam(r *http.Request) (int, error) {
	raw := r.URL.Query().Get("top")
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%w: top must be a non-negative integer, got %q", domain.ErrInvalidInput, raw)
	}
	return n, nil
}
