package main

import (
	"context"
	"fmt"
	"log"

	"shamba-service/internal/config"
	"shamba-service/internal/database/postgres"
	"shamba-service/internal/repository"
	"shamba-service/internal/services"

	"github.com/spf13/cobra"
)

func newSeedCmd(cfg *config.ShambaServiceConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Insert the starter crop catalog and sample market prices",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSeed(cmd.Context(), cfg, cmd)
		},
	}
}

func runSeed(ctx context.Context, cfg *config.ShambaServiceConfig, cmd *cobra.Command) error {
	if ctx == nil {
		ctx = context.Background()
	}
	db, err := postgres.ConnectWithRetry(ctx, cfg.PostgresCfg)
	if err != nil {
		return fmt.Errorf("error connecting to PostgreSQL: %w", err)
	}
	defer db.Close()

	seedService := services.NewSeedService(
		repository.NewCropRepository(db),
		repository.NewMarketPriceRepository(db),
		nil,
	)
	result, err := seedService.Seed(ctx)
	if err != nil {
		return err
	}

	log.Printf("%s: %d crops, %d market prices", result.Message, result.Crops, result.MarketPrices)
	cmd.Printf("%s: %d crops, %d market prices\n", result.Message, result.Crops, result.MarketPrices)
	return nil
}
