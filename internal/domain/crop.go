package domain

import (
	"errors"
	"fmt"
	"slices"
	"time"
)

// Rainfall preference tags carried by crop profiles. They describe the crop
// and are not read by the scorer.
const (
	RainfallLow           = "low"
	RainfallLowToModerate = "low_to_moderate"
	RainfallModerate      = "moderate"
	RainfallHigh          = "high"
)

// TempRange is an inclusive °C interval.
type TempRange struct {
	Low  float64 `json:"low"`
	High float64 `json:"high"`
}

// Contains reports whether t lies inside the range, bounds included.
func (r TempRange) Contains(t float64) bool {
	return t >= r.Low && t <= r.High
}

// CropProfile describes the growing conditions a crop tolerates.
type CropProfile struct {
	Name               string       `json:"name"`
	TempMin            float64      `json:"temp_min"`
	TempOptimal        TempRange    `json:"temp_optimal"`
	TempMax            float64      `json:"temp_max"`
	SoilMoistureMin    float64      `json:"soil_moisture_min"`
	PrefersFlooding    bool         `json:"prefers_flooding"`
	RainfallPreference string       `json:"rainfall_preference,omitempty"`
	UVMax              *float64     `json:"uv_max,omitempty"`
	SuitableMonths     []time.Month `json:"suitable_months,omitempty"`
	Risks              []string     `json:"risks"`
}

// Validate checks the ordering of the temperature bounds, the moisture
// fraction and the month set.
func (c CropProfile) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("%w: crop name is empty", ErrInvalidInput)
	}
	if !(c.TempMin <= c.TempOptimal.Low && c.TempOptimal.Low <= c.TempOptimal.High && c.TempOptimal.High <= c.TempMax) {
		return fmt.Errorf("%w: crop %q: temperature bounds must satisfy min <= optimal.low <= optimal.high <= max (got %g, %g, %g, %g)",
			ErrInvalidInput, c.Name, c.TempMin, c.TempOptimal.Low, c.TempOptimal.High, c.TempMax)
	}
	if c.SoilMoistureMin < 0 || c.SoilMoistureMin > 1 {
		return fmt.Errorf("%w: crop %q: soil_moisture_min must be within [0, 1], got %g", ErrInvalidInput, c.Name, c.SoilMoistureMin)
	}
	if c.UVMax != nil && *c.UVMax < 0 {
		return fmt.Errorf("%w: crop %q: uv_max must be non-negative, got %g", ErrInvalidInput, c.Name, *c.UVMax)
	}
	for _, m := range c.SuitableMonths {
		if m < time.January || m > time.December {
			return fmt.Errorf("%w: crop %q: month %d out of range", ErrInvalidInput, c.Name, m)
		}
	}
	return nil
}

// clone returns a deep copy so callers cannot reach the catalog's slices.
func (c CropProfile) clone() CropProfile {
	out := c
	if c.UVMax != nil {
		v := *c.UVMax
		out.UVMax = &v
	}
	out.SuitableMonths = slices.Clone(c.SuitableMonths)
	out.Risks = slices.Clone(c.Risks)
	if out.Risks == nil {
		out.Risks = []string{}
	}
	return out
}

// Catalog is an immutable, ordered set of crop profiles keyed by name.
// It is safe for concurrent use.
type Catalog struct {
	profiles []CropProfile
	index    map[string]int
}

// NewCatalog validates the profiles and builds a catalog in the given order.
// Every invalid profile and duplicate name is reported.
func NewCatalog(profiles ...CropProfile) (*Catalog, error) {
	c := &Catalog{
		profiles: make([]CropProfile, 0, len(profiles)),
		index:    make(map[string]int, len(profiles)),
	}

	var errs []error
	for _, p := range profiles {
		if err := p.Validate(); err != nil {
			errs = append(errs, err)
			continue
		}
		if _, dup := c.index[p.Name]; dup {
			errs = append(errs, fmt.Errorf("%w: duplicate crop name %q", ErrInvalidInput, p.Name))
			continue
		}
		c.index[p.Name] = len(c.profiles)
		c.profiles = append(c.profiles, p.clone())
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("build crop catalog: %w", errors.Join(errs...))
	}
	return c, nil
}

// MustNewCatalog is like NewCatalog but panics on error. Intended for
// package-level tables.
func MustNewCatalog(profiles ...CropProfile) *Catalog {
	c, err := NewCatalog(profiles...)
	if err != nil {
		panic(err)
	}
	return c
}

// Lookup returns a copy of the named profile or an error wrapping ErrNotFound.
func (c *Catalog) Lookup(name string) (CropProfile, error) {
	i, ok := c.index[name]
	if !ok {
		return CropProfile{}, fmt.Errorf("crop %q: %w", name, ErrNotFound)
	}
	return c.profiles[i].clone(), nil
}

// All returns copies of every profile in catalog order.
func (c *Catalog) All() []CropProfile {
	out := make([]CropProfile, len(c.profiles))
	for i, p := range c.profiles {
		out[i] = p.clone()
	}
	return out
}

// Names returns crop names in catalog order.
func (c *Catalog) Names() []string {
	out := make([]string, len(c.profiles))
	for i, p := range c.profiles {
		out[i] = p.Name
	}
	return out
}

// Len returns the number of crops in the catalog.
func (c *Catalog) Len() int {
	return len(c.profiles)
}
