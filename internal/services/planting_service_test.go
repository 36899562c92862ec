package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"shamba-service/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCropFinder struct {
	crop  *models.Crop
	err   error
	query string
}

func (f *fakeCropFinder) FindByName(_ context.Context, name string) (*models.Crop, error) {
	f.query = name
	return f.crop, f.err
}

type fakeWeather struct {
	forecast *models.OpenMeteoResponse
	err      error
}

func (f *fakeWeather) GetForecast(context.Context, float64, float64) (*models.OpenMeteoResponse, error) {
	return f.forecast, f.err
}

func openMeteoFrom(series models.ForecastSeries) *models.OpenMeteoResponse {
	daily := models.OpenMeteoDaily{}
	for _, d := range series {
		p, mx, mn := d.PrecipitationMm, d.TempMaxC, d.TempMinC
		daily.Time = append(daily.Time, d.Date)
		daily.PrecipitationSum = append(daily.PrecipitationSum, &p)
		daily.TemperatureMax = append(daily.TemperatureMax, &mx)
		daily.TemperatureMin = append(daily.TemperatureMin, &mn)
	}
	return &models.OpenMeteoResponse{Latitude: -0.3, Longitude: 36.06, Timezone: "Africa/Nairobi", Daily: daily}
}

func newTestPlantingService(crops CropFinder, weather IWeatherService) *PlantingService {
	now := func() time.Time { return fixedNow }
	return NewPlantingService(crops, weather, NewHistoricalService(now), NewPlantingScorer(now))
}

func TestPlantingService_GetAdvice(t *testing.T) {
	precip := []float64{10, 0, 8, 0, 7, 0, 9, 0, 6, 0, 10, 0, 0, 0}
	forecast := buildForecast(precip, 25.04, 15)
	crops := &fakeCropFinder{crop: maizeCrop()}
	svc := newTestPlantingService(crops, &fakeWeather{forecast: openMeteoFrom(forecast)})

	resp, err := svc.GetAdvice(context.Background(), -0.3031, 36.0613, "  maize ")

	require.NoError(t, err)
	assert.Equal(t, "maize", crops.query)
	assert.Equal(t, models.PlantingStatusGood, resp.Status)
	assert.Equal(t, 89, resp.Confidence)
	assert.Equal(t, 89, resp.Analysis.Scores.Overall)
	assert.Equal(t, "Favorable", resp.Analysis.Rainfall.Verdict)
	assert.Equal(t, "Optimal", resp.Analysis.Temperature.Verdict)
	assert.Equal(t, 34.0, resp.Analysis.Rainfall.Next7Days)
	assert.Equal(t, 50.0, resp.Analysis.Rainfall.Next14Days)
	assert.Equal(t, 25.0, resp.Analysis.Temperature.AvgMax)
	assert.Len(t, resp.Analysis.Rainfall.Distribution, 14)
	assert.Equal(t, models.TemperatureDataPoint{Date: "2026-03-02", Max: 25, Min: 15}, resp.Analysis.Temperature.Distribution[0])
	assert.Equal(t, models.Range{Min: 18, Max: 30}, resp.Analysis.Temperature.OptimalRange)

	require.NotNil(t, resp.CropInfo)
	assert.Equal(t, "H614", resp.CropInfo.Variety)
	assert.Equal(t, 120, resp.CropInfo.GrowthDuration)
	assert.Equal(t, "10%", resp.HistoricalContext.DroughtProbability)
	assert.Equal(t, "March 15 (Long Rains)", resp.HistoricalContext.TypicalRainySeasonStart)
	assert.Len(t, resp.Data.Forecast.Time, 14)
	assert.Equal(t, 0.1, resp.Data.History.ProbabilityOfDrought)
}

func TestPlantingService_UnknownCropUsesDefaults(t *testing.T) {
	forecast := buildForecast(repeat(4, 14), 26, 16)
	svc := newTestPlantingService(&fakeCropFinder{}, &fakeWeather{forecast: openMeteoFrom(forecast)})

	resp, err := svc.GetAdvice(context.Background(), 1, 37, "Sorghum")

	require.NoError(t, err)
	assert.Nil(t, resp.CropInfo)
	assert.Equal(t, models.Range{Min: 15, Max: 30}, resp.Analysis.Temperature.OptimalRange)

	body, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.Contains(t, string(body), `"cropInfo":null`)
	assert.Contains(t, string(body), `"riskFactors":[]`)
}

func TestPlantingService_InvalidArguments(t *testing.T) {
	svc := newTestPlantingService(&fakeCropFinder{}, &fakeWeather{})

	_, err := svc.GetAdvice(context.Background(), 91, 36, "Maize")
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.GetAdvice(context.Background(), -0.3, 36, "   ")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestPlantingService_UpstreamFailures(t *testing.T) {
	good := openMeteoFrom(buildForecast(repeat(4, 14), 26, 16))

	t.Run("weather down", func(t *testing.T) {
		weatherErr := fmt.Errorf("%w: timeout", ErrUpstreamUnavailable)
		svc := newTestPlantingService(&fakeCropFinder{}, &fakeWeather{err: weatherErr})

		_, err := svc.GetAdvice(context.Background(), -0.3, 36, "Maize")
		assert.ErrorIs(t, err, ErrUpstreamUnavailable)
	})

	t.Run("crop catalog down", func(t *testing.T) {
		svc := newTestPlantingService(&fakeCropFinder{err: errors.New("connection reset")}, &fakeWeather{forecast: good})

		_, err := svc.GetAdvice(context.Background(), -0.3, 36, "Maize")
		assert.ErrorIs(t, err, ErrUpstreamUnavailable)
	})

	t.Run("null in forecast", func(t *testing.T) {
		broken := openMeteoFrom(buildForecast(repeat(4, 14), 26, 16))
		broken.Daily.TemperatureMin[4] = nil
		svc := newTestPlantingService(&fakeCropFinder{}, &fakeWeather{forecast: broken})

		_, err := svc.GetAdvice(context.Background(), -0.3, 36, "Maize")
		assert.ErrorIs(t, err, ErrUpstreamUnavailable)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("short forecast", func(t *testing.T) {
		short := openMeteoFrom(buildForecast(repeat(4, 5), 26, 16))
		svc := newTestPlantingService(&fakeCropFinder{}, &fakeWeather{forecast: short})

		_, err := svc.GetAdvice(context.Background(), -0.3, 36, "Maize")
		assert.ErrorIs(t, err, ErrUpstreamUnavailable)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("mismatched daily arrays", func(t *testing.T) {
		broken := openMeteoFrom(buildForecast(repeat(4, 14), 26, 16))
		broken.Daily.TemperatureMax = broken.Daily.TemperatureMax[:10]
		svc := newTestPlantingService(&fakeCropFinder{}, &fakeWeather{forecast: broken})

		_, err := svc.GetAdvice(context.Background(), -0.3, 36, "Maize")
		assert.ErrorIs(t, err, ErrUpstreamUnavailable)
	})
}

func TestUsableSeries(t *testing.T) {
	series, err := usableSeries(openMeteoFrom(buildForecast(repeat(4, 7), 26, 16)).Daily)
	require.NoError(t, err)
	assert.Len(t, series, 7)

	_, err = usableSeries(openMeteoFrom(buildForecast(repeat(4, 6), 26, 16)).Daily)
	assert.ErrorIs(t, err, ErrUpstreamUnavailable)
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Contains(t, err.Error(), "forecast has 6 days")
}

func TestVerdicts(t *testing.T) {
	assert.Equal(t, "Favorable", rainfallVerdict(70))
	assert.Equal(t, "Marginal", rainfallVerdict(60))
	assert.Equal(t, "Insufficient", rainfallVerdict(30))
	assert.Equal(t, "Optimal", temperatureVerdict(90))
	assert.Equal(t, "Challenging", temperatureVerdict(40))
}
