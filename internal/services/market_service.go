package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"shamba-service/internal/models"

	"github.com/google/uuid"
)

const defaultPriceListLimit = 10

type MarketPriceStore interface {
	Create(ctx context.Context, price *models.MarketPrice) error
	Latest(ctx context.Context, market string, limit int) ([]models.MarketPrice, error)
}

type IMarketService interface {
	GetLatestPrices(ctx context.Context, market string, limit int) ([]models.MarketPrice, error)
	CreatePrice(ctx context.Context, req models.CreateMarketPriceRequest) (*models.MarketPrice, error)
}

type MarketService struct {
	store MarketPriceStore
}

func NewMarketService(store MarketPriceStore) *MarketService {
	return &MarketService{store: store}
}

// GetLatestPrices returns the newest quotes for market, Nakuru when empty
func (s *MarketService) GetLatestPrices(ctx context.Context, market string, limit int) ([]models.MarketPrice, error) {
	market = strings.TrimSpace(market)
	if market == "" {
		market = models.DefaultMarket
	}
	if limit <= 0 {
		limit = defaultPriceListLimit
	}

	prices, err := s.store.Latest(ctx, market, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch prices: %w", err)
	}
	if prices == nil {
		prices = []models.MarketPrice{}
	}
	return prices, nil
}

func (s *MarketService) CreatePrice(ctx context.Context, req models.CreateMarketPriceRequest) (*models.MarketPrice, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	price := &models.MarketPrice{
		ID:          uuid.New(),
		Crop:        strings.TrimSpace(req.Crop),
		Market:      strings.TrimSpace(req.Market),
		PricePerBag: req.PricePerBag,
		PricePerKg:  req.PricePerKg,
		Unit:        models.DefaultPriceUnit,
		Date:        time.Now().UTC(),
		Trend:       models.PriceTrendStable,
	}
	if req.Unit != "" {
		price.Unit = req.Unit
	}
	if req.Date != nil {
		price.Date = req.Date.UTC()
	}
	if req.Trend != "" {
		price.Trend = req.Trend
	}

	if err := s.store.Create(ctx, price); err != nil {
		return nil, fmt.Errorf("failed to create price: %w", err)
	}
	return price, nil
}
