package services

import (
	"fmt"
	"math"
	"strings"
	"time"

	"shamba-service/internal/models"
)

const (
	minForecastDays     = 7
	maxForecastDays     = 14
	plantingHorizonDays = 7

	rainyDayThresholdMm = 2.0
	dryDayThresholdMm   = 1.0
	drySpellMinDays     = 5
	frostThresholdC     = 5.0
	heatThresholdC      = 35.0
	heavyRainMm         = 30.0
	lowMoistureMm       = 15.0
	tempSwingC          = 15.0
	marginalTempBandC   = 5.0

	goodConfidence = 75
	waitConfidence = 55
)

var (
	defaultOptimalRainfall = models.Range{Min: 400, Max: 800}
	defaultOptimalTemp     = models.Range{Min: 15, Max: 30}
)

const defaultGrowthDurationDays = 120

// cropThresholds is the crop profile resolved against the catalog defaults
type cropThresholds struct {
	optimalRainfall models.Range
	optimalTemp     models.Range
	growthDays      int
	soilTypes       []string
}

func resolveThresholds(crop *models.Crop) cropThresholds {
	t := cropThresholds{
		optimalRainfall: defaultOptimalRainfall,
		optimalTemp:     defaultOptimalTemp,
		growthDays:      defaultGrowthDurationDays,
	}
	if crop == nil {
		return t
	}
	if r := crop.OptimalRainfallMm(); !r.IsZero() {
		t.optimalRainfall = r
	}
	if r := crop.OptimalTempC(); !r.IsZero() {
		t.optimalTemp = r
	}
	if crop.GrowthDurationDays > 0 {
		t.growthDays = crop.GrowthDurationDays
	}
	if len(crop.SoilTypes) > 0 {
		t.soilTypes = append([]string(nil), crop.SoilTypes...)
	}
	return t
}

// forecastAnalysis is everything the risk checks and texts read from
type forecastAnalysis struct {
	rainfall    models.RainfallAnalysis
	temperature models.TemperatureAnalysis
	thresholds  cropThresholds
}

type riskCheck struct {
	applies func(a *forecastAnalysis) bool
	build   func(a *forecastAnalysis) models.RiskFactor
}

// riskChecks run in this order and the output keeps it.
var riskChecks = []riskCheck{
	{
		applies: func(a *forecastAnalysis) bool { return a.rainfall.DrySpellRisk },
		build: func(a *forecastAnalysis) models.RiskFactor {
			return models.RiskFactor{
				Factor:      "Dry Spell Risk",
				Level:       models.RiskLevelHigh,
				Description: "Less than 2mm rainfall expected in 5+ of the next 7 days",
				Mitigation:  "Consider mulching to retain soil moisture or delay planting by 1 week",
			}
		},
	},
	{
		applies: func(a *forecastAnalysis) bool { return a.temperature.FrostRisk },
		build: func(a *forecastAnalysis) models.RiskFactor {
			return models.RiskFactor{
				Factor:      "Frost Risk",
				Level:       models.RiskLevelHigh,
				Description: fmt.Sprintf("Minimum temperature of %s°C expected", toFixed1(a.temperature.MinTemp)),
				Mitigation:  "Delay planting until frost risk passes or use protective covers",
			}
		},
	},
	{
		applies: func(a *forecastAnalysis) bool { return a.temperature.HeatStressRisk },
		build: func(a *forecastAnalysis) models.RiskFactor {
			return models.RiskFactor{
				Factor:      "Heat Stress",
				Level:       models.RiskLevelMedium,
				Description: fmt.Sprintf("Maximum temperature of %s°C expected", toFixed1(a.temperature.MaxTemp)),
				Mitigation:  "Ensure adequate irrigation and plant during cooler morning hours",
			}
		},
	},
	{
		applies: func(a *forecastAnalysis) bool { return a.rainfall.MaxDailyRain > heavyRainMm },
		build: func(a *forecastAnalysis) models.RiskFactor {
			return models.RiskFactor{
				Factor:      "Heavy Rainfall",
				Level:       models.RiskLevelMedium,
				Description: fmt.Sprintf("Up to %smm expected in a single day", toFixed1(a.rainfall.MaxDailyRain)),
				Mitigation:  "Ensure good drainage. Avoid planting on slopes prone to erosion",
			}
		},
	},
	{
		applies: func(a *forecastAnalysis) bool { return a.rainfall.Next14DaysRain < lowMoistureMm },
		build: func(a *forecastAnalysis) models.RiskFactor {
			return models.RiskFactor{
				Factor:      "Insufficient Moisture",
				Level:       models.RiskLevelHigh,
				Description: fmt.Sprintf("Only %smm expected in 14 days", toFixed1(a.rainfall.Next14DaysRain)),
				Mitigation:  "Wait for better conditions or ensure irrigation is available",
			}
		},
	},
	{
		applies: func(a *forecastAnalysis) bool { return a.temperature.TempVariation > tempSwingC },
		build: func(a *forecastAnalysis) models.RiskFactor {
			return models.RiskFactor{
				Factor:      "Temperature Fluctuation",
				Level:       models.RiskLevelLow,
				Description: fmt.Sprintf("%s°C difference between day and night", toFixed1(a.temperature.TempVariation)),
				Mitigation:  "Normal for this region. Young seedlings may need protection at night",
			}
		},
	},
}

// PlantingScorer turns a forecast window and an optional crop profile into planting advice.
// It holds no mutable state and is safe for concurrent use.
type PlantingScorer struct {
	now func() time.Time
}

func NewPlantingScorer(now func() time.Time) *PlantingScorer {
	if now == nil {
		now = time.Now
	}
	return &PlantingScorer{now: now}
}

// Score computes the advisory for cropName. crop may be nil, in which case the
// catalog defaults apply. The forecast is read, never modified.
func (s *PlantingScorer) Score(forecast models.ForecastSeries, crop *models.Crop, cropName string) (*models.ScoringResult, error) {
	if err := validateForecast(forecast); err != nil {
		return nil, err
	}

	window := forecast
	if len(window) > maxForecastDays {
		window = window[:maxForecastDays]
	}

	a := &forecastAnalysis{
		rainfall:    analyzeRainfall(window),
		temperature: analyzeTemperature(window),
		thresholds:  resolveThresholds(crop),
	}

	rainfallScore := scoreRainfall(a.rainfall.Next14DaysRain)
	temperatureScore := scoreTemperature(a.temperature.AvgTemp, a.thresholds.optimalTemp)
	timingScore := scoreTiming(a.rainfall.RainyDays)
	confidence := overallConfidence(rainfallScore, temperatureScore, timingScore)
	if confidence < 0 || confidence > 100 {
		return nil, fmt.Errorf("%w: confidence %d outside 0-100", ErrComputation, confidence)
	}

	result := &models.ScoringResult{
		Confidence:         confidence,
		RainfallScore:      rainfallScore,
		TemperatureScore:   temperatureScore,
		TimingScore:        timingScore,
		Rainfall:           a.rainfall,
		Temperature:        a.temperature,
		OptimalTemp:        a.thresholds.optimalTemp,
		RiskFactors:        evaluateRisks(a),
		SoilPreparation:    soilPreparationTips(a, cropName),
		BestPlantingWindow: s.bestPlantingWindow(window, a.thresholds.optimalTemp),
	}
	applyRecommendation(result, a, cropName)

	return result, nil
}

func validateForecast(forecast models.ForecastSeries) error {
	if len(forecast) < minForecastDays {
		return fmt.Errorf("%w: forecast has %d days, at least %d are required", ErrInvalidInput, len(forecast), minForecastDays)
	}
	for i, day := range forecast {
		fields := []struct {
			name  string
			value float64
		}{
			{"precipitation_mm", day.PrecipitationMm},
			{"temp_max_c", day.TempMaxC},
			{"temp_min_c", day.TempMinC},
		}
		for _, f := range fields {
			if math.IsNaN(f.value) || math.IsInf(f.value, 0) {
				return fmt.Errorf("%w: day %d %s is not a finite number", ErrInvalidInput, i, f.name)
			}
		}
		if day.PrecipitationMm < 0 {
			return fmt.Errorf("%w: day %d precipitation_mm is negative", ErrInvalidInput, i)
		}
	}
	return nil
}

func analyzeRainfall(window models.ForecastSeries) models.RainfallAnalysis {
	var r models.RainfallAnalysis
	dryDays := 0
	for i, day := range window {
		p := day.PrecipitationMm
		if i < plantingHorizonDays {
			r.Next7DaysRain += p
			if p < dryDayThresholdMm {
				dryDays++
			}
		}
		r.Next14DaysRain += p
		if i == 0 || p > r.MaxDailyRain {
			r.MaxDailyRain = p
		}
		if p > rainyDayThresholdMm {
			r.RainyDays++
		}
	}
	r.DrySpellRisk = dryDays >= drySpellMinDays
	return r
}

func analyzeTemperature(window models.ForecastSeries) models.TemperatureAnalysis {
	var t models.TemperatureAnalysis
	var sumMax, sumMin float64
	for i, day := range window {
		sumMax += day.TempMaxC
		sumMin += day.TempMinC
		if i == 0 || day.TempMinC < t.MinTemp {
			t.MinTemp = day.TempMinC
		}
		if i == 0 || day.TempMaxC > t.MaxTemp {
			t.MaxTemp = day.TempMaxC
		}
	}
	n := float64(len(window))
	t.AvgMaxTemp = sumMax / n
	t.AvgMinTemp = sumMin / n
	t.AvgTemp = (t.AvgMaxTemp + t.AvgMinTemp) / 2
	t.TempVariation = t.AvgMaxTemp - t.AvgMinTemp
	t.FrostRisk = t.MinTemp < frostThresholdC
	t.HeatStressRisk = t.MaxTemp > heatThresholdC
	return t
}

// scoreRainfall bands the 14-day total. 100mm still counts as good.
func scoreRainfall(next14DaysRain float64) int {
	switch {
	case next14DaysRain >= 30 && next14DaysRain <= 100:
		return 90
	case next14DaysRain >= 20 && next14DaysRain < 30:
		return 70
	case next14DaysRain >= 10 && next14DaysRain < 20:
		return 50
	case next14DaysRain > 100:
		return 60
	default:
		return 30
	}
}

func scoreTemperature(avgTemp float64, optimal models.Range) int {
	switch {
	case optimal.Contains(avgTemp):
		return 90
	case avgTemp >= optimal.Min-marginalTempBandC && avgTemp <= optimal.Max+marginalTempBandC:
		return 70
	default:
		return 40
	}
}

func scoreTiming(rainyDays int) int {
	switch {
	case rainyDays >= 5:
		return 85
	case rainyDays >= 3:
		return 70
	default:
		return 50
	}
}

func overallConfidence(rainfallScore, temperatureScore, timingScore int) int {
	// explicit conversions keep each product rounded before the sum (no fused multiply-add)
	weighted := float64(float64(rainfallScore)*0.45) +
		float64(float64(temperatureScore)*0.35) +
		float64(float64(timingScore)*0.20)
	return int(roundHalfUp(weighted))
}

// StatusForConfidence maps a confidence score to its recommendation category
func StatusForConfidence(confidence int) models.PlantingStatus {
	switch {
	case confidence >= goodConfidence:
		return models.PlantingStatusGood
	case confidence >= waitConfidence:
		return models.PlantingStatusWait
	default:
		return models.PlantingStatusRisk
	}
}

func evaluateRisks(a *forecastAnalysis) []models.RiskFactor {
	risks := make([]models.RiskFactor, 0, len(riskChecks))
	for _, check := range riskChecks {
		if check.applies(a) {
			risks = append(risks, check.build(a))
		}
	}
	return risks
}

func applyRecommendation(result *models.ScoringResult, a *forecastAnalysis, cropName string) {
	rain14 := toFixed1(a.rainfall.Next14DaysRain)
	avgTemp := a.temperature.AvgTemp
	optimal := a.thresholds.optimalTemp

	result.Status = StatusForConfidence(result.Confidence)
	switch result.Status {
	case models.PlantingStatusGood:
		result.Recommendation = fmt.Sprintf("Excellent conditions for planting %s!", cropName)
		result.Details = fmt.Sprintf("Weather forecast shows %smm of rainfall over the next 14 days with %d rainy days. "+
			"Average temperatures of %s°C are within the optimal range for %s germination.",
			rain14, a.rainfall.RainyDays, toFixed1(avgTemp), cropName)
		result.Timing = "Plant within the next 3-5 days to maximize soil moisture"

	case models.PlantingStatusWait:
		condition := "marginal"
		if optimal.Contains(avgTemp) {
			condition = "favorable"
		}
		result.Recommendation = fmt.Sprintf("Moderate conditions for %s. Consider waiting.", cropName)
		result.Details = fmt.Sprintf("Forecast shows %smm rainfall which is below optimal for confident germination. "+
			"Temperature conditions are %s.", rain14, condition)
		result.Timing = "Monitor weather for the next 5-7 days before deciding"

	default:
		// each clause slot is always emitted, so an unbreached condition leaves its separator behind
		clauses := []string{"", "", ""}
		if a.rainfall.Next14DaysRain < lowMoistureMm {
			clauses[0] = "Insufficient rainfall expected."
		}
		if avgTemp < optimal.Min {
			clauses[1] = "Temperatures too low."
		}
		if avgTemp > optimal.Max {
			clauses[2] = "Temperatures too high."
		}
		result.Recommendation = fmt.Sprintf("Not recommended to plant %s now.", cropName)
		result.Details = "Current conditions pose significant risks. " + strings.Join(clauses, " ")
		result.Timing = "Wait for improved conditions or consider alternative crops"
	}
}

func soilPreparationTips(a *forecastAnalysis, cropName string) []string {
	tips := make([]string, 0, 4)
	if a.rainfall.Next7DaysRain > 20 {
		tips = append(tips, "Prepare seedbed 2-3 days before planting when soil is moist but not waterlogged")
	} else {
		tips = append(tips, "Pre-irrigate if possible, or wait for natural rainfall before planting")
	}
	if len(a.thresholds.soilTypes) > 0 {
		tips = append(tips, fmt.Sprintf("%s grows best in %s soils", cropName, strings.Join(a.thresholds.soilTypes, " or ")))
	}
	tips = append(tips,
		"Apply well-decomposed manure to improve water retention",
		"Consider making water harvesting furrows to capture rainfall",
	)
	return tips
}

func (s *PlantingScorer) bestPlantingWindow(window models.ForecastSeries, optimalTemp models.Range) models.PlantingWindow {
	bestDay := 0
	bestScore := 0.0
	for i := 0; i < plantingHorizonDays && i < len(window); i++ {
		dayRain := window[i].PrecipitationMm
		if i+1 < len(window) {
			dayRain += window[i+1].PrecipitationMm
		}
		dayTemp := (window[i].TempMaxC + window[i].TempMinC) / 2

		moisture := dayRain * 10
		if dayRain > 5 {
			moisture = 50
		}
		warmth := 25.0
		if optimalTemp.Contains(dayTemp) {
			warmth = 50
		}

		if dayScore := moisture + warmth; dayScore > bestScore {
			bestScore = dayScore
			bestDay = i
		}
	}

	day := window[bestDay]
	return models.PlantingWindow{
		DayIndex:      bestDay,
		Date:          day.Date,
		FormattedDate: s.now().AddDate(0, 0, bestDay).Format("Monday, 2 Jan"),
		Reason: fmt.Sprintf("Best combination of moisture (%smm) and temperature (%s°C)",
			toFixed1(day.PrecipitationMm), toFixed1((day.TempMaxC+day.TempMinC)/2)),
	}
}
