package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"

	"shamba-service/internal/models"

	"golang.org/x/sync/errgroup"
)

// CropFinder looks a crop up by case-insensitive partial name. A miss is (nil, nil).
type CropFinder interface {
	FindByName(ctx context.Context, name string) (*models.Crop, error)
}

type IPlantingService interface {
	GetAdvice(ctx context.Context, lat, lon float64, cropName string) (*models.PlantingResponse, error)
}

type PlantingService struct {
	crops      CropFinder
	weather    IWeatherService
	historical IHistoricalService
	scorer     *PlantingScorer
}

func NewPlantingService(crops CropFinder, weather IWeatherService, historical IHistoricalService, scorer *PlantingScorer) *PlantingService {
	return &PlantingService{
		crops:      crops,
		weather:    weather,
		historical: historical,
		scorer:     scorer,
	}
}

func (s *PlantingService) GetAdvice(ctx context.Context, lat, lon float64, cropName string) (*models.PlantingResponse, error) {
	cropName = strings.TrimSpace(cropName)
	if cropName == "" {
		return nil, fmt.Errorf("%w: crop name is required", ErrInvalidInput)
	}
	if math.IsNaN(lat) || math.IsNaN(lon) || lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return nil, fmt.Errorf("%w: coordinates (%v, %v) out of range", ErrInvalidInput, lat, lon)
	}

	var (
		crop     *models.Crop
		forecast *models.OpenMeteoResponse
		history  models.HistoricalInsights
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		found, err := s.crops.FindByName(gctx, cropName)
		if err != nil {
			return fmt.Errorf("%w: crop lookup failed: %v", ErrUpstreamUnavailable, err)
		}
		crop = found
		return nil
	})
	g.Go(func() error {
		f, err := s.weather.GetForecast(gctx, lat, lon)
		if err != nil {
			return err
		}
		forecast = f
		return nil
	})
	g.Go(func() error {
		history = s.historical.GetInsights(lat, lon)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	series, err := usableSeries(forecast.Daily)
	if err != nil {
		return nil, err
	}

	result, err := s.scorer.Score(series, crop, cropName)
	if err != nil {
		if errors.Is(err, ErrComputation) {
			slog.Error("planting scorer failed", "crop", cropName, "error", err)
		}
		return nil, fmt.Errorf("failed to score planting conditions: %w", err)
	}

	return buildPlantingResponse(result, series, crop, forecast.Daily, history), nil
}

func buildPlantingResponse(result *models.ScoringResult, series models.ForecastSeries, crop *models.Crop,
	daily models.OpenMeteoDaily, history models.HistoricalInsights) *models.PlantingResponse {
	rainDist := make([]models.RainfallDataPoint, 0, len(series))
	tempDist := make([]models.TemperatureDataPoint, 0, len(series))
	for _, day := range series {
		rainDist = append(rainDist, models.RainfallDataPoint{
			Date:  day.Date,
			Value: roundTo1(day.PrecipitationMm),
		})
		tempDist = append(tempDist, models.TemperatureDataPoint{
			Date: day.Date,
			Max:  roundTo1(day.TempMaxC),
			Min:  roundTo1(day.TempMinC),
		})
	}

	return &models.PlantingResponse{
		Recommendation: result.Recommendation,
		Status:         result.Status,
		Details:        result.Details,
		Timing:         result.Timing,
		Confidence:     result.Confidence,
		Analysis: models.PlantingAnalysis{
			Rainfall: models.RainfallSummary{
				Next7Days:    roundTo1(result.Rainfall.Next7DaysRain),
				Next14Days:   roundTo1(result.Rainfall.Next14DaysRain),
				RainyDays:    result.Rainfall.RainyDays,
				Distribution: rainDist,
				Verdict:      rainfallVerdict(result.RainfallScore),
			},
			Temperature: models.TemperatureSummary{
				AvgMax:       roundTo1(result.Temperature.AvgMaxTemp),
				AvgMin:       roundTo1(result.Temperature.AvgMinTemp),
				Average:      roundTo1(result.Temperature.AvgTemp),
				OptimalRange: result.OptimalTemp,
				Distribution: tempDist,
				Verdict:      temperatureVerdict(result.TemperatureScore),
			},
			Scores: models.ScoreSummary{
				Rainfall:    result.RainfallScore,
				Temperature: result.TemperatureScore,
				Timing:      result.TimingScore,
				Overall:     result.Confidence,
			},
		},
		RiskFactors:        result.RiskFactors,
		BestPlantingWindow: result.BestPlantingWindow,
		CropInfo:           crop.ToCropInfo(),
		SoilPreparation:    result.SoilPreparation,
		HistoricalContext: models.HistoricalContext{
			TypicalRainySeasonStart: history.TypicalRainySeasonStart,
			TypicalRainySeasonEnd:   history.TypicalRainySeasonEnd,
			DroughtProbability:      fmt.Sprintf("%.0f%%", roundHalfUp(history.ProbabilityOfDrought*100)),
		},
		Data: models.PlantingData{
			Forecast: daily,
			History:  history,
		},
	}
}

func rainfallVerdict(score int) string {
	switch {
	case score >= 70:
		return "Favorable"
	case score >= 50:
		return "Marginal"
	default:
		return "Insufficient"
	}
}

func temperatureVerdict(score int) string {
	switch {
	case score >= 70:
		return "Optimal"
	case score >= 50:
		return "Acceptable"
	default:
		return "Challenging"
	}
}
