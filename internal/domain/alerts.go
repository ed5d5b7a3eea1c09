package domain

// Alert is an agronomic hazard message derived from a weather snapshot.
type Alert string

// Alert vocabulary. The strings are part of the public JSON contract.
const (
	AlertFrost        Alert = "Frost risk! Protect sensitive crops."
	AlertHeatWave     Alert = "Heat wave warning! Provide shade/mulching."
	AlertDrought      Alert = "Severe drought stress – irrigate immediately!"
	AlertWaterlogging Alert = "Waterlogging risk – ensure drainage."
	AlertExtremeUV    Alert = "Extreme UV – avoid fieldwork 10AM–4PM."
	AlertNone         Alert = "No major risks detected."
)

const (
	frostAirTemp        = 5.0
	heatWaveAirTemp     = 38.0
	droughtMoisture     = 0.15
	waterloggedMoisture = 0.55
	waterloggedRainfall = 10.0
	extremeUVIndex      = 9.0
)

// GenerateAlerts runs every hazard check against the snapshot and returns the
// messages that fire, in check order. The result is never empty: when nothing
// fires it is exactly [AlertNone].
func GenerateAlerts(snap WeatherSnapshot) []Alert {
	var alerts []Alert
	air := snap.Temperature.Air
	moisture := snap.EffectiveSoilMoisture()

	if air < frostAirTemp {
		alerts = append(alerts, AlertFrost)
	}
	if air > heatWaveAirTemp {
		alerts = append(alerts, AlertHeatWave)
	}
	if moisture < droughtMoisture {
		alerts = append(alerts, AlertDrought)
	}
	if moisture > waterloggedMoisture && snap.Rainfall > waterloggedRainfall {
		alerts = append(alerts, AlertWaterlogging)
	}
	if snap.UVIndex > extremeUVIndex {
		alerts = append(alerts, AlertExtremeUV)
	}

	if len(alerts) == 0 {
		return []Alert{AlertNone}
	}
	return alerts
}
