package repository

import (
	"context"
	"fmt"

	"shamba-service/internal/models"

	"github.com/jmoiron/sqlx"
)

const marketPriceColumns = `id, crop, market, price_per_bag, price_per_kg, unit, date, trend`

type MarketPriceRepository struct {
	db *sqlx.DB
}

func NewMarketPriceRepository(db *sqlx.DB) *MarketPriceRepository {
	return &MarketPriceRepository{db: db}
}

func (r *MarketPriceRepository) Create(ctx context.Context, price *models.MarketPrice) error {
	query := `
		INSERT INTO market_prices (` + marketPriceColumns + `)
		VALUES (:id, :crop, :market, :price_per_bag, :price_per_kg, :unit, :date, :trend)`

	if _, err := r.db.NamedExecContext(ctx, query, price); err != nil {
		return fmt.Errorf("failed to create market price: %w", err)
	}
	return nil
}

// Latest returns the newest prices quoted at market, newest first
func (r *MarketPriceRepository) Latest(ctx context.Context, market string, limit int) ([]models.MarketPrice, error) {
	var prices []models.MarketPrice
	query := `
		SELECT ` + marketPriceColumns + `
		FROM market_prices
		WHERE market = $1
		ORDER BY date DESC
		LIMIT $2`

	if err := r.db.SelectContext(ctx, &prices, query, market, limit); err != nil {
		return nil, fmt.Errorf("failed to get prices for market %s: %w", market, err)
	}
	return prices, nil
}

func (r *MarketPriceRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM market_prices`); err != nil {
		return 0, fmt.Errorf("failed to count market prices: %w", err)
	}
	return count, nil
}

// InsertMany writes all prices in one transaction
func (r *MarketPriceRepository) InsertMany(ctx context.Context, prices []models.MarketPrice) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO market_prices (` + marketPriceColumns + `)
		VALUES (:id, :crop, :market, :price_per_bag, :price_per_kg, :unit, :date, :trend)`

	for i := range prices {
		if _, err := tx.NamedExecContext(ctx, query, &prices[i]); err != nil {
			return fmt.Errorf("failed to insert price for %s at %s: %w", prices[i].Crop, prices[i].Market, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit market prices: %w", err)
	}
	return nil
}
