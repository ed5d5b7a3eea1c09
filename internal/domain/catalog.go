package domain

import "time"

// Temperatures are daytime °C; soil moisture is volumetric water content.
// Suitable months follow the Indian Kharif (rice) and Rabi (wheat, chickpea)
// sowing windows.
var defaultCatalog = MustNewCatalog(
	CropProfile{
		Name:               "Rice",
		TempMin:            20,
		TempOptimal:        TempRange{Low: 25, High: 35},
		TempMax:            38,
		SoilMoistureMin:    0.35,
		PrefersFlooding:    true,
		RainfallPreference: RainfallHigh,
		SuitableMonths:     []time.Month{time.May, time.June, time.July, time.August, time.September},
		Risks:              []string{"drought", "cold_snap"},
	},
	CropProfile{
		Name:               "Wheat",
		TempMin:            10,
		TempOptimal:        TempRange{Low: 15, High: 25},
		TempMax:            32,
		SoilMoistureMin:    0.20,
		RainfallPreference: RainfallModerate,
		SuitableMonths:     []time.Month{time.October, time.November, time.December, time.January, time.February, time.March},
		Risks:              []string{"heat_wave", "waterlogging"},
	},
	CropProfile{
		Name:               "Maize",
		TempMin:            18,
		TempOptimal:        TempRange{Low: 24, High: 33},
		TempMax:            38,
		SoilMoistureMin:    0.25,
		RainfallPreference: RainfallHigh,
		Risks:              []string{"drought", "waterlogging"},
	},
	CropProfile{
		Name:               "Soybean",
		TempMin:            20,
		TempOptimal:        TempRange{Low: 25, High: 30},
		TempMax:            35,
		SoilMoistureMin:    0.22,
		RainfallPreference: RainfallModerate,
		Risks:              []string{"drought"},
	},
	CropProfile{
		Name:               "Potato",
		TempMin:            10,
		TempOptimal:        TempRange{Low: 15, High: 25},
		TempMax:            30,
		SoilMoistureMin:    0.30,
		RainfallPreference: RainfallModerate,
		Risks:              []string{"frost", "heat_wave"},
	},
	CropProfile{
		Name:            "Tomato",
		TempMin:         18,
		TempOptimal:     TempRange{Low: 21, High: 29},
		TempMax:         35,
		SoilMoistureMin: 0.25,
		UVMax:           ptr(8.0),
		Risks:           []string{"frost", "extreme_heat"},
	},
	CropProfile{
		Name:               "Cotton",
		TempMin:            20,
		TempOptimal:        TempRange{Low: 25, High: 35},
		TempMax:            40,
		SoilMoistureMin:    0.18,
		RainfallPreference: RainfallLowToModerate,
		Risks:              []string{"waterlogging"},
	},
	CropProfile{
		Name:               "Sorghum (Jowar)",
		TempMin:            20,
		TempOptimal:        TempRange{Low: 27, High: 35},
		TempMax:            40,
		SoilMoistureMin:    0.15,
		RainfallPreference: RainfallLow,
		Risks:              []string{},
	},
	CropProfile{
		Name:               "Groundnut",
		TempMin:            20,
		TempOptimal:        TempRange{Low: 25, High: 35},
		TempMax:            38,
		SoilMoistureMin:    0.20,
		RainfallPreference: RainfallModerate,
		Risks:              []string{"waterlogging"},
	},
	CropProfile{
		Name:               "Chickpea (Gram)",
		TempMin:            10,
		TempOptimal:        TempRange{Low: 15, High: 28},
		TempMax:            32,
		SoilMoistureMin:    0.15,
		RainfallPreference: RainfallLow,
		SuitableMonths:     []time.Month{time.October, time.November, time.December, time.January, time.February},
		Risks:              []string{"frost"},
	},
)

// DefaultCatalog returns the built-in crop catalog.
func DefaultCatalog() *Catalog {
	return defaultCatalog
}

func ptr[T any](v T) *T {
	return &v
}
