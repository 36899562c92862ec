package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type ShambaServiceConfig struct {
	Port        string
	LogDir      string
	PostgresCfg PostgresConfig
	RedisCfg    RedisConfig
	RabbitMQCfg RabbitMQConfig
	WeatherCfg  WeatherConfig
	USSDCfg     USSDConfig
	WorkerCfg   WorkerConfig
}

type PostgresConfig struct {
	DBname       string
	Username     string
	Password     string
	Host         string
	Port         string
	ConnAttempts int
	RetryWait    time.Duration
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type RabbitMQConfig struct {
	Username string
	Password string
	Host     string
	Port     string
	Queue    string
}

type WeatherConfig struct {
	BaseURL      string
	Timezone     string
	ForecastDays int
	Timeout      time.Duration
	CacheTTL     time.Duration
}

// USSDConfig holds the defaults used when a USSD caller cannot give coordinates
type USSDConfig struct {
	DefaultMarket string
	DefaultLat    float64
	DefaultLon    float64
	ShortCode     string
}

type WorkerConfig struct {
	NumWorkers int
	QueueSize  int
}

func New() *ShambaServiceConfig {
	// .env is optional; real deployments inject the environment directly
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("failed to load .env file: %v", err)
	}

	return &ShambaServiceConfig{
		Port:   getEnvOrDefault("PORT", "8090"),
		LogDir: getEnvOrDefault("LOG_DIR", "/shamba/log/shamba_service"),
		PostgresCfg: PostgresConfig{
			DBname:       getEnvOrDefault("POSTGRES_DB", "shamba"),
			Username:     getEnvOrDefault("POSTGRES_USER", "postgres"),
			Password:     getEnvOrDefault("POSTGRES_PASSWORD", "postgres"),
			Host:         getEnvOrDefault("POSTGRES_HOST", "localhost"),
			Port:         getEnvOrDefault("POSTGRES_PORT", "5432"),
			ConnAttempts: getIntOrDefault("POSTGRES_CONN_ATTEMPTS", 5),
			RetryWait:    getDurationOrDefault("POSTGRES_RETRY_WAIT", 5*time.Second),
		},
		RedisCfg: RedisConfig{
			Host:     getEnvOrDefault("REDIS_HOST", "localhost"),
			Port:     getEnvOrDefault("REDIS_PORT", "6379"),
			Password: getEnvOrDefault("REDIS_PASSWORD", ""),
			DB:       getIntOrDefault("REDIS_DB", 0),
		},
		RabbitMQCfg: RabbitMQConfig{
			Username: getEnvOrDefault("RABBITMQ_USER", "admin"),
			Password: getEnvOrDefault("RABBITMQ_PWD", "admin"),
			Host:     getEnvOrDefault("RABBITMQ_HOST", "localhost"),
			Port:     getEnvOrDefault("RABBITMQ_PORT", "5672"),
			Queue:    getEnvOrDefault("RABBITMQ_NOTIFICATION_QUEUE", "notification_events"),
		},
		WeatherCfg: WeatherConfig{
			BaseURL:      getEnvOrDefault("OPEN_METEO_BASE_URL", "https://api.open-meteo.com"),
			Timezone:     getEnvOrDefault("WEATHER_TIMEZONE", "Africa/Nairobi"),
			ForecastDays: getIntOrDefault("WEATHER_FORECAST_DAYS", 14),
			Timeout:      getDurationOrDefault("WEATHER_TIMEOUT", 15*time.Second),
			CacheTTL:     getDurationOrDefault("WEATHER_CACHE_TTL", time.Hour),
		},
		USSDCfg: USSDConfig{
			DefaultMarket: getEnvOrDefault("USSD_DEFAULT_MARKET", "Nakuru"),
			DefaultLat:    getFloatOrDefault("USSD_DEFAULT_LAT", -0.3031),
			DefaultLon:    getFloatOrDefault("USSD_DEFAULT_LON", 36.0613),
			ShortCode:     getEnvOrDefault("USSD_SHORT_CODE", "*384*1300#"),
		},
		WorkerCfg: WorkerConfig{
			NumWorkers: getIntOrDefault("WORKER_COUNT", 4),
			QueueSize:  getIntOrDefault("WORKER_QUEUE_SIZE", 100),
		},
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("invalid integer for %s=%q, using default %d", key, value, defaultValue)
		return defaultValue
	}
	return parsed
}

func getFloatOrDefault(key string, defaultValue float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		log.Printf("invalid number for %s=%q, using default %v", key, value, defaultValue)
		return defaultValue
	}
	return parsed
}

func getDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		log.Printf("invalid duration for %s=%q, using default %s", key, value, defaultValue)
		return defaultValue
	}
	return parsed
}
