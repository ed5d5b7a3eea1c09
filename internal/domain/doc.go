// Package domain holds the crop suitability engine: the crop catalog, the
// scoring rules and the hazard alerts, together with the weather snapshot and
// place types they operate on. Everything here is pure and safe for
// concurrent use.
//
// # Scoring
//
// Every crop starts at 100 and loses points per rule, evaluated in order:
//
//	Temperature (one branch at most):
//	  air < temp_min                  min((temp_min - air) * 5, 60)   "too cold"
//	  air > temp_max                  min((air - temp_max) * 4, 60)   "too hot"
//	  outside temp_optimal            distance to nearest bound * 3   "sub-optimal temperature"
//	Soil moisture < soil_moisture_min (soil_moisture_min - moisture) * 200  "soil too dry"
//	Prefers flooding, rainfall < 2mm  20                              "needs standing water"
//	uv_index > uv_max                 (uv_index - uv_max) * 8         "high UV stress"
//	Month outside suitable_months     40                              "wrong planting season"
//
// The score is clamped at 0 and rounded to one decimal. Only the first three
// reasons are reported; a crop with no penalty reports "Good conditions".
//
// The planting month is a parameter rather than read from the wall clock, so
// results depend only on their inputs.
//
// # Soil Moisture
//
// Providers leave soil moisture nil when upstream has no reading. Both scoring
// and alerts read it through [WeatherSnapshot.EffectiveSoilMoisture], which
// substitutes [DefaultSoilMoisture].
//
// # Alerts
//
// [GenerateAlerts] runs all checks independently of any crop:
//
//	air < 5°C                       frost
//	air > 38°C                      heat wave
//	moisture < 0.15                 drought
//	moisture > 0.55 and rain > 10mm waterlogging
//	uv_index > 9                    extreme UV
//
// An empty result is replaced by "No major risks detected.".
package domain
