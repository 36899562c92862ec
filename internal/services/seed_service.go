package services

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"shamba-service/internal/models"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

const (
	seedPriceSpread = 800.0 // quotes vary by +/- half of this around the base price
	kgPerBag        = 90.0
)

var seedMarkets = []string{"Nakuru", "Nairobi", "Mombasa"}

var seedBasePrices = []struct {
	crop string
	base float64
}{
	{"Maize", 3500},
	{"Beans", 8400},
	{"Potatoes", 1500},
	{"Cassava", 2200},
}

var seedTrends = []models.PriceTrend{models.PriceTrendUp, models.PriceTrendDown, models.PriceTrendStable}

func seedCrops() []models.Crop {
	return []models.Crop{
		{
			Name:                 "Maize",
			Variety:              "H614",
			OptimalRainfallMin:   500,
			OptimalRainfallMax:   800,
			OptimalTempMin:       18,
			OptimalTempMax:       30,
			GrowthDurationDays:   120,
			SoilTypes:            pq.StringArray{"Loamy", "Alluvial"},
			PlantingInstructions: "Plant at a depth of 5cm when the soil is moist. Space 75cm between rows and 25cm between plants.",
		},
		{
			Name:                 "Beans",
			Variety:              "Rosecoco",
			OptimalRainfallMin:   300,
			OptimalRainfallMax:   450,
			OptimalTempMin:       15,
			OptimalTempMax:       27,
			GrowthDurationDays:   90,
			SoilTypes:            pq.StringArray{"Sandy Loam"},
			PlantingInstructions: "Sow directly into the field. Requires well-drained soil.",
		},
		{
			Name:                 "Cassava",
			Variety:              "Migyera",
			OptimalRainfallMin:   400,
			OptimalRainfallMax:   1000,
			OptimalTempMin:       25,
			OptimalTempMax:       32,
			GrowthDurationDays:   240,
			SoilTypes:            pq.StringArray{"Sandy", "Loamy"},
			PlantingInstructions: "Use stem cuttings of about 20-30cm. Plant horizontally or vertically.",
		},
		{
			Name:                 "Potatoes",
			Variety:              "Shangi",
			OptimalRainfallMin:   500,
			OptimalRainfallMax:   750,
			OptimalTempMin:       15,
			OptimalTempMax:       20,
			GrowthDurationDays:   105,
			SoilTypes:            pq.StringArray{"Loamy", "Sandy"},
			PlantingInstructions: "Plant seed potatoes 10cm deep. Ensure good drainage and regular earthing up.",
		},
	}
}

type SeedCropStore interface {
	Count(ctx context.Context) (int, error)
	InsertMany(ctx context.Context, crops []models.Crop) error
}

type SeedPriceStore interface {
	Count(ctx context.Context) (int, error)
	InsertMany(ctx context.Context, prices []models.MarketPrice) error
}

// SeedResult reports the table sizes after seeding
type SeedResult struct {
	Message      string `json:"message"`
	Crops        int    `json:"crops"`
	MarketPrices int    `json:"marketPrices"`
}

type ISeedService interface {
	Seed(ctx context.Context) (*SeedResult, error)
}

type SeedService struct {
	crops  SeedCropStore
	prices SeedPriceStore
	rng    *rand.Rand
	now    func() time.Time
}

// NewSeedService seeds with a time-based random source. rng may be passed for
// reproducible price variation.
func NewSeedService(crops SeedCropStore, prices SeedPriceStore, rng *rand.Rand) *SeedService {
	if rng == nil {
		rng = rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0x5eed))
	}
	return &SeedService{crops: crops, prices: prices, rng: rng, now: time.Now}
}

// Seed fills each table only when it is empty, so running it twice is harmless
func (s *SeedService) Seed(ctx context.Context) (*SeedResult, error) {
	cropCount, err := s.crops.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count crops: %w", err)
	}
	if cropCount == 0 {
		crops := seedCrops()
		if err := s.crops.InsertMany(ctx, crops); err != nil {
			return nil, fmt.Errorf("failed to seed crops: %w", err)
		}
		cropCount = len(crops)
	}

	priceCount, err := s.prices.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count market prices: %w", err)
	}
	if priceCount == 0 {
		prices := s.samplePrices()
		if err := s.prices.InsertMany(ctx, prices); err != nil {
			return nil, fmt.Errorf("failed to seed market prices: %w", err)
		}
		priceCount = len(prices)
	}

	return &SeedResult{
		Message:      "Database seeded successfully",
		Crops:        cropCount,
		MarketPrices: priceCount,
	}, nil
}

func (s *SeedService) samplePrices() []models.MarketPrice {
	now := s.now().UTC()
	prices := make([]models.MarketPrice, 0, len(seedMarkets)*len(seedBasePrices))
	for _, market := range seedMarkets {
		for _, cp := range seedBasePrices {
			variation := (s.rng.Float64() - 0.5) * seedPriceSpread
			price := roundHalfUp(cp.base + variation)
			perKg := roundHalfUp(price / kgPerBag)

			prices = append(prices, models.MarketPrice{
				ID:          uuid.New(),
				Crop:        cp.crop,
				Market:      market,
				PricePerBag: price,
				PricePerKg:  &perKg,
				Unit:        models.DefaultPriceUnit,
				Date:        now,
				Trend:       seedTrends[s.rng.IntN(len(seedTrends))],
			})
		}
	}
	return prices
}
