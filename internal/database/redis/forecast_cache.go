package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"shamba-service/internal/models"
	"shamba-service/utils"

	"github.com/redis/go-redis/v9"
)

const forecastKeyPrefix = "weather:forecast"

// ForecastCache stores raw Open-Meteo responses keyed by rounded coordinates
type ForecastCache struct {
	client *Client
}

func NewForecastCache(client *Client) *ForecastCache {
	return &ForecastCache{client: client}
}

// ForecastKey rounds to two decimals (about 1km) so nearby farms share an entry
func ForecastKey(lat, lon float64) string {
	return fmt.Sprintf("%s:%.2f:%.2f", forecastKeyPrefix, lat, lon)
}

// GetForecast returns (nil, false, nil) on a cache miss.
func (c *ForecastCache) GetForecast(ctx context.Context, lat, lon float64) (*models.OpenMeteoResponse, bool, error) {
	data, err := c.client.GetClient().Get(ctx, ForecastKey(lat, lon)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read cached forecast: %w", err)
	}

	var forecast models.OpenMeteoResponse
	if err := utils.DeserializeModel(data, &forecast); err != nil {
		return nil, false, fmt.Errorf("failed to decode cached forecast: %w", err)
	}
	return &forecast, true, nil
}

func (c *ForecastCache) SetForecast(ctx context.Context, lat, lon float64, forecast *models.OpenMeteoResponse, ttl time.Duration) error {
	data, err := utils.SerializeModel(forecast)
	if err != nil {
		return fmt.Errorf("failed to encode forecast: %w", err)
	}
	if err := c.client.GetClient().Set(ctx, ForecastKey(lat, lon), data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache forecast: %w", err)
	}
	return nil
}
