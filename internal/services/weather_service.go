package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"shamba-service/internal/config"
	"shamba-service/internal/models"
)

var dailyVariables = []string{"precipitation_sum", "temperature_2m_max", "temperature_2m_min", "rain_sum"}

// ForecastCache is implemented by the Redis forecast cache
type ForecastCache interface {
	GetForecast(ctx context.Context, lat, lon float64) (*models.OpenMeteoResponse, bool, error)
	SetForecast(ctx context.Context, lat, lon float64, forecast *models.OpenMeteoResponse, ttl time.Duration) error
}

type IWeatherService interface {
	GetForecast(ctx context.Context, lat, lon float64) (*models.OpenMeteoResponse, error)
}

type WeatherService struct {
	cfg        config.WeatherConfig
	httpClient *http.Client
	cache      ForecastCache
}

// NewWeatherService builds the Open-Meteo client. cache may be nil.
func NewWeatherService(cfg config.WeatherConfig, cache ForecastCache) *WeatherService {
	return &WeatherService{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		cache:      cache,
	}
}

func (w *WeatherService) GetForecast(ctx context.Context, lat, lon float64) (*models.OpenMeteoResponse, error) {
	if w.cache != nil {
		cached, found, err := w.cache.GetForecast(ctx, lat, lon)
		if err != nil {
			slog.Warn("forecast cache read failed", "lat", lat, "lon", lon, "error", err)
		} else if found {
			return cached, nil
		}
	}

	forecast, err := w.fetchForecast(ctx, lat, lon)
	if err != nil {
		return nil, err
	}

	if _, err := usableSeries(forecast.Daily); err != nil {
		slog.Warn("forecast not cached, payload unusable", "lat", lat, "lon", lon, "error", err)
		return forecast, nil
	}
	if w.cache != nil {
		if err := w.cache.SetForecast(ctx, lat, lon, forecast, w.cfg.CacheTTL); err != nil {
			slog.Warn("forecast cache write failed", "lat", lat, "lon", lon, "error", err)
		}
	}
	return forecast, nil
}

func (w *WeatherService) fetchForecast(ctx context.Context, lat, lon float64) (*models.OpenMeteoResponse, error) {
	params := url.Values{}
	params.Set("latitude", strconv.FormatFloat(lat, 'f', -1, 64))
	params.Set("longitude", strconv.FormatFloat(lon, 'f', -1, 64))
	params.Set("daily", strings.Join(dailyVariables, ","))
	params.Set("timezone", w.cfg.Timezone)
	params.Set("forecast_days", strconv.Itoa(w.cfg.ForecastDays))

	endpoint := strings.TrimRight(w.cfg.BaseURL, "/") + "/v1/forecast?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build forecast request: %w", err)
	}

	resp, err := w.httpClient.Do(req)
	if err != nil {
		slog.Error("error fetching forecast", "lat", lat, "lon", lon, "error", err)
		return nil, fmt.Errorf("%w: forecast request failed: %v", ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read forecast response: %v", ErrUpstreamUnavailable, err)
	}

	if resp.StatusCode != http.StatusOK {
		slog.Error("forecast provider returned non-200 status", "status", resp.StatusCode, "body", string(body))
		return nil, fmt.Errorf("%w: forecast provider returned status %d", ErrUpstreamUnavailable, resp.StatusCode)
	}

	var forecast models.OpenMeteoResponse
	if err := json.Unmarshal(body, &forecast); err != nil {
		return nil, fmt.Errorf("%w: failed to parse forecast: %v", ErrUpstreamUnavailable, err)
	}
	if len(forecast.Daily.Time) == 0 {
		return nil, fmt.Errorf("%w: forecast has no daily data", ErrUpstreamUnavailable)
	}

	return &forecast, nil
}

// usableSeries converts the daily payload and requires at least a week of
// complete data
func usableSeries(daily models.OpenMeteoDaily) (models.ForecastSeries, error) {
	series, err := daily.ToSeries()
	if err != nil {
		return nil, fmt.Errorf("%w: %w: forecast data unusable: %v", ErrUpstreamUnavailable, ErrInvalidInput, err)
	}
	if len(series) < minForecastDays {
		return nil, fmt.Errorf("%w: %w: forecast has %d days, at least %d are required",
			ErrUpstreamUnavailable, ErrInvalidInput, len(series), minForecastDays)
	}
	return series, nil
}
