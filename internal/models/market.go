package models

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

type PriceTrend string

const (
	PriceTrendUp     PriceTrend = "up"
	PriceTrendDown   PriceTrend = "down"
	PriceTrendStable PriceTrend = "stable"
)

const (
	DefaultMarket    = "Nakuru"
	DefaultPriceUnit = "90kg bag"
)

// MarketPrice is a crop price quoted at a market, in KES
type MarketPrice struct {
	ID          uuid.UUID  `json:"id" db:"id"`
	Crop        string     `json:"crop" db:"crop"`
	Market      string     `json:"market" db:"market"`
	PricePerBag float64    `json:"pricePerBag" db:"price_per_bag"`
	PricePerKg  *float64   `json:"pricePerKg,omitempty" db:"price_per_kg"`
	Unit        string     `json:"unit" db:"unit"`
	Date        time.Time  `json:"date" db:"date"`
	Trend       PriceTrend `json:"trend" db:"trend"`
}

type CreateMarketPriceRequest struct {
	Crop        string     `json:"crop" binding:"required"`
	Market      string     `json:"market" binding:"required"`
	PricePerBag float64    `json:"pricePerBag" binding:"required"`
	PricePerKg  *float64   `json:"pricePerKg,omitempty"`
	Unit        string     `json:"unit,omitempty"`
	Date        *time.Time `json:"date,omitempty"`
	Trend       PriceTrend `json:"trend,omitempty"`
}

func (r CreateMarketPriceRequest) Validate() error {
	if strings.TrimSpace(r.Crop) == "" {
		return errors.New("crop is required")
	}
	if strings.TrimSpace(r.Market) == "" {
		return errors.New("market is required")
	}
	if r.PricePerBag <= 0 {
		return errors.New("pricePerBag must be greater than 0")
	}
	if r.PricePerKg != nil && *r.PricePerKg < 0 {
		return errors.New("pricePerKg must not be negative")
	}
	switch r.Trend {
	case "", PriceTrendUp, PriceTrendDown, PriceTrendStable:
	default:
		return errors.New("trend must be one of up, down, stable")
	}
	return nil
}
