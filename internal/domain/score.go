package domain

import (
	"cmp"
	"errors"
	"fmt"
	"math"
	"slices"
	"time"
)

// Reasons attached to a ScoreResult, one per penalty rule.
const (
	ReasonTooCold        = "too cold"
	ReasonTooHot         = "too hot"
	ReasonSubOptimalTemp = "sub-optimal temperature"
	ReasonSoilTooDry     = "soil too dry"
	ReasonNeedsFlooding  = "needs standing water"
	ReasonHighUV         = "high UV stress"
	ReasonWrongSeason    = "wrong planting season"

	// ReasonGood is the only reason reported when no penalty applies.
	ReasonGood = "Good conditions"
)

const (
	maxScore   = 100.0
	maxReasons = 3

	coldPenaltyPerDegree    = 5.0
	heatPenaltyPerDegree    = 4.0
	maxTemperaturePenalty   = 60.0
	subOptimalPerDegree     = 3.0
	drynessPenaltyPerUnit   = 200.0
	floodingRainfallMinimum = 2.0 // mm
	floodingPenalty         = 20.0
	uvPenaltyPerIndex       = 8.0
	seasonPenalty           = 40.0
)

// ScoreResult is the suitability of one crop under one weather snapshot.
type ScoreResult struct {
	Crop    string   `json:"crop"`
	Score   float64  `json:"score"`
	Reasons []string `json:"reasons"`
}

// ScoreCrop rates how favourable the snapshot is for planting crop during
// month. The score starts at 100 and each rule that fires subtracts its
// penalty and appends a reason, in this order: temperature, soil moisture,
// flooding, UV, season. The result is clamped at 0 and rounded to one
// decimal; at most three reasons are kept.
func ScoreCrop(crop CropProfile, snap WeatherSnapshot, month time.Month) (ScoreResult, error) {
	if err := validateMonth(month); err != nil {
		return ScoreResult{}, err
	}
	if err := snap.Validate(); err != nil {
		return ScoreResult{}, err
	}
	if err := crop.Validate(); err != nil {
		return ScoreResult{}, err
	}
	return scoreCrop(crop, snap, month), nil
}

// ScoreCropByName looks the crop up in catalog and scores it.
func ScoreCropByName(catalog *Catalog, name string, snap WeatherSnapshot, month time.Month) (ScoreResult, error) {
	crop, err := catalog.Lookup(name)
	if err != nil {
		return ScoreResult{}, err
	}
	return ScoreCrop(crop, snap, month)
}

// ScoreAllCrops scores every crop in catalog order. An invalid snapshot or
// month yields no results. A crop that fails its own validation is left out
// and its error joined into the returned error; the rest are still scored.
func ScoreAllCrops(catalog *Catalog, snap WeatherSnapshot, month time.Month) ([]ScoreResult, error) {
	if err := validateMonth(month); err != nil {
		return nil, err
	}
	if err := snap.Validate(); err != nil {
		return nil, err
	}

	crops := catalog.All()
	results := make([]ScoreResult, 0, len(crops))
	var errs []error
	for _, crop := range crops {
		if err := crop.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("score %q: %w", crop.Name, err))
			continue
		}
		results = append(results, scoreCrop(crop, snap, month))
	}
	return results, errors.Join(errs...)
}

// RankScores sorts results by descending score, keeping catalog order for
// ties, and truncates to n. n <= 0 keeps everything. The input is not modified.
func RankScores(results []ScoreResult, n int) []ScoreResult {
	ranked := slices.Clone(results)
	slices.SortStableFunc(ranked, func(a, b ScoreResult) int {
		return cmp.Compare(b.Score, a.Score)
	})
	if n > 0 && n < len(ranked) {
		ranked = ranked[:n]
	}
	return ranked
}

func scoreCrop(crop CropProfile, snap WeatherSnapshot, month time.Month) ScoreResult {
	score := maxScore
	var reasons []string
	penalize := func(penalty float64, reason string) {
		score -= penalty
		reasons = append(reasons, reason)
	}

	air := snap.Temperature.Air
	switch {
	case air < crop.TempMin:
		penalize(math.Min((crop.TempMin-air)*coldPenaltyPerDegree, maxTemperaturePenalty), ReasonTooCold)
	case air > crop.TempMax:
		penalize(math.Min((air-crop.TempMax)*heatPenaltyPerDegree, maxTemperaturePenalty), ReasonTooHot)
	case !crop.TempOptimal.Contains(air):
		distance := math.Min(math.Abs(air-crop.TempOptimal.Low), math.Abs(air-crop.TempOptimal.High))
		penalize(distance*subOptimalPerDegree, ReasonSubOptimalTemp)
	}

	if moisture := snap.EffectiveSoilMoisture(); moisture < crop.SoilMoistureMin {
		penalize((crop.SoilMoistureMin-moisture)*drynessPenaltyPerUnit, ReasonSoilTooDry)
	}

	if crop.PrefersFlooding && snap.Rainfall < floodingRainfallMinimum {
		penalize(floodingPenalty, ReasonNeedsFlooding)
	}

	if crop.UVMax != nil && snap.UVIndex > *crop.UVMax {
		penalize((snap.UVIndex-*crop.UVMax)*uvPenaltyPerIndex, ReasonHighUV)
	}

	if len(crop.SuitableMonths) > 0 && !slices.Contains(crop.SuitableMonths, month) {
		penalize(seasonPenalty, ReasonWrongSeason)
	}

	if len(reasons) == 0 {
		reasons = []string{ReasonGood}
	} else if len(reasons) > maxReasons {
		reasons = reasons[:maxReasons]
	}

	return ScoreResult{
		Crop:    crop.Name,
		Score:   roundTenth(math.Max(0, score)),
		Reasons: reasons,
	}
}

func validateMonth(m time.Month) error {
	if m < time.January || m > time.December {
		return fmt.Errorf("%w: month must be within 1..12, got %d", ErrInvalidInput, m)
	}
	return nil
}

func roundTenth(v float64) float64 {
	return math.Round(v*10) / 10
}
