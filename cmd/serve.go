package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"shamba-service/internal/config"
	"shamba-service/internal/database/postgres"
	"shamba-service/internal/database/redis"
	"shamba-service/internal/event"
	"shamba-service/internal/handlers"
	"shamba-service/internal/repository"
	"shamba-service/internal/services"
	"shamba-service/internal/worker"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 15 * time.Second

func newServeCmd(cfg *config.ShambaServiceConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), cfg)
		},
	}
}

func runServe(parent context.Context, cfg *config.ShambaServiceConfig) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Printf("Connecting to PostgreSQL with: host=%s, port=%s, user=%s, dbname=%s",
		cfg.PostgresCfg.Host, cfg.PostgresCfg.Port, cfg.PostgresCfg.Username, cfg.PostgresCfg.DBname)
	db, err := postgres.ConnectWithRetry(ctx, cfg.PostgresCfg)
	if err != nil {
		return fmt.Errorf("error connecting to PostgreSQL: %w", err)
	}
	defer db.Close()

	// Redis and RabbitMQ are optional: without them forecasts are not cached
	// and notifications are disabled.
	var forecastCache services.ForecastCache
	redisClient, err := redis.NewRedisClient(cfg.RedisCfg.Host, cfg.RedisCfg.Port, cfg.RedisCfg.Password, cfg.RedisCfg.DB)
	if err != nil {
		log.Printf("Redis unavailable, forecast caching disabled: %v", err)
	} else {
		defer redisClient.Close()
		forecastCache = redis.NewForecastCache(redisClient)
	}

	var (
		sender    services.NotificationSender
		publisher *event.NotificationPublisher
	)
	rabbitConn, err := event.ConnectRabbitMQ(cfg.RabbitMQCfg)
	if err != nil {
		log.Printf("RabbitMQ unavailable, notifications disabled: %v", err)
	} else {
		defer rabbitConn.Close()
		publisher = event.NewNotificationPublisher(rabbitConn, cfg.RabbitMQCfg.Queue)
		sender = publisher
	}

	pool := worker.NewWorkingPool(cfg.WorkerCfg.NumWorkers, cfg.WorkerCfg.QueueSize)
	poolCtx, stopPool := context.WithCancel(context.Background())
	var poolWg sync.WaitGroup
	poolWg.Add(1)
	go pool.Start(poolCtx, &poolWg)

	// repositories
	cropRepository := repository.NewCropRepository(db)
	marketPriceRepository := repository.NewMarketPriceRepository(db)
	observationRepository := repository.NewObservationRepository(db)
	subscriberRepository := repository.NewSubscriberRepository(db)

	// services
	weatherService := services.NewWeatherService(cfg.WeatherCfg, forecastCache)
	historicalService := services.NewHistoricalService(time.Now)
	plantingService := services.NewPlantingService(cropRepository, weatherService, historicalService, services.NewPlantingScorer(time.Now))
	cropService := services.NewCropService(cropRepository)
	marketService := services.NewMarketService(marketPriceRepository)
	observationService := services.NewObservationService(observationRepository)
	ussdService := services.NewUssdService(cfg.USSDCfg, plantingService, observationService, marketService)
	notificationService := services.NewNotificationService(subscriberRepository, sender, pool, cfg.USSDCfg.ShortCode)
	seedService := services.NewSeedService(cropRepository, marketPriceRepository, nil)

	// health checks
	checks := []handlers.HealthCheck{
		{Name: "postgres", Check: db.PingContext},
		{Name: "redis", Check: func(ctx context.Context) error {
			if redisClient == nil {
				return errors.New("not configured")
			}
			return redisClient.Ping(ctx)
		}},
		{Name: "rabbitmq", Check: func(context.Context) error {
			if publisher == nil {
				return errors.New("not configured")
			}
			if !publisher.HealthCheck().IsHealthy {
				return errors.New("connection closed")
			}
			return nil
		}},
		{Name: "worker_pool", Check: func(context.Context) error {
			if status := pool.Status(); status != worker.PoolStatusActive {
				return fmt.Errorf("pool %s", status)
			}
			return nil
		}},
	}

	r := gin.Default()
	for _, h := range []interface{ RegisterRoutes(*gin.Engine) }{
		handlers.NewPlantingHandler(plantingService, cropService),
		handlers.NewMarketHandler(marketService),
		handlers.NewObservationHandler(observationService),
		handlers.NewUssdHandler(ussdService),
		handlers.NewSubscriptionHandler(notificationService),
		handlers.NewSeedHandler(seedService),
		handlers.NewHealthHandler(checks...),
	} {
		h.RegisterRoutes(r)
	}

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Printf("Starting shamba-service on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case <-ctx.Done():
		log.Println("Shutdown signal received")
	case err := <-serveErr:
		if err != nil {
			log.Printf("Server failed: %v", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}

	stopPool()
	poolWg.Wait()
	log.Println("shamba-service stopped")
	return nil
}
