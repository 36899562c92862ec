package models

import (
	"fmt"
	"math"
)

// OpenMeteoResponse is the subset of the Open-Meteo forecast payload the service reads
type OpenMeteoResponse struct {
	Latitude       float64        `json:"latitude"`
	Longitude      float64        `json:"longitude"`
	Timezone       string         `json:"timezone"`
	Elevation      float64        `json:"elevation"`
	DailyUnits     map[string]any `json:"daily_units,omitempty"`
	Daily          OpenMeteoDaily `json:"daily"`
	GenerationTime float64        `json:"generationtime_ms,omitempty"`
}

// OpenMeteoDaily holds the parallel daily arrays. Open-Meteo reports gaps as null,
// so every numeric series is a slice of pointers.
type OpenMeteoDaily struct {
	Time             []string   `json:"time"`
	PrecipitationSum []*float64 `json:"precipitation_sum"`
	TemperatureMax   []*float64 `json:"temperature_2m_max"`
	TemperatureMin   []*float64 `json:"temperature_2m_min"`
	RainSum          []*float64 `json:"rain_sum,omitempty"`
}

// DailyForecast is one day of the forecast window
type DailyForecast struct {
	Date            string  `json:"date"`
	PrecipitationMm float64 `json:"precipitation_mm"`
	TempMaxC        float64 `json:"temp_max_c"`
	TempMinC        float64 `json:"temp_min_c"`
}

// ForecastSeries is the ordered forecast window, oldest day first.
type ForecastSeries []DailyForecast

// ToSeries flattens the parallel arrays into a ForecastSeries. A null value or
// arrays of different lengths make the payload unusable.
func (d OpenMeteoDaily) ToSeries() (ForecastSeries, error) {
	n := len(d.Time)
	if len(d.PrecipitationSum) != n || len(d.TemperatureMax) != n || len(d.TemperatureMin) != n {
		return nil, fmt.Errorf("daily arrays differ in length: time=%d precipitation=%d max=%d min=%d",
			n, len(d.PrecipitationSum), len(d.TemperatureMax), len(d.TemperatureMin))
	}

	series := make(ForecastSeries, 0, n)
	for i := range n {
		precip, err := valueAt(d.PrecipitationSum, i, "precipitation_sum")
		if err != nil {
			return nil, err
		}
		tMax, err := valueAt(d.TemperatureMax, i, "temperature_2m_max")
		if err != nil {
			return nil, err
		}
		tMin, err := valueAt(d.TemperatureMin, i, "temperature_2m_min")
		if err != nil {
			return nil, err
		}
		series = append(series, DailyForecast{
			Date:            d.Time[i],
			PrecipitationMm: precip,
			TempMaxC:        tMax,
			TempMinC:        tMin,
		})
	}
	return series, nil
}

func valueAt(values []*float64, i int, field string) (float64, error) {
	v := values[i]
	if v == nil {
		return 0, fmt.Errorf("%s[%d] is missing", field, i)
	}
	if math.IsNaN(*v) || math.IsInf(*v, 0) {
		return 0, fmt.Errorf("%s[%d] is not a finite number", field, i)
	}
	return *v, nil
}

// HistoricalInsights is the climate context returned next to an advisory
type HistoricalInsights struct {
	TypicalRainySeasonStart string    `json:"typicalRainySeasonStart"`
	TypicalRainySeasonEnd   string    `json:"typicalRainySeasonEnd"`
	ProbabilityOfDrought    float64   `json:"probabilityOfDrought"`
	AverageMonthlyRainfall  []float64 `json:"averageMonthlyRainfall"`
}
