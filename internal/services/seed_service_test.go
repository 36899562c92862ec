package services

import (
	"context"
	"errors"
	"math/rand/v2"
	"testing"

	"shamba-service/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSeedCrops struct {
	count    int
	inserted []models.Crop
	err      error
}

func (f *fakeSeedCrops) Count(context.Context) (int, error) { return f.count, f.err }

func (f *fakeSeedCrops) InsertMany(_ context.Context, crops []models.Crop) error {
	f.inserted = append(f.inserted, crops...)
	return nil
}

type fakeSeedPrices struct {
	count    int
	inserted []models.MarketPrice
}

func (f *fakeSeedPrices) Count(context.Context) (int, error) { return f.count, nil }

func (f *fakeSeedPrices) InsertMany(_ context.Context, prices []models.MarketPrice) error {
	f.inserted = append(f.inserted, prices...)
	return nil
}

func TestSeedService_SeedsEmptyTables(t *testing.T) {
	crops := &fakeSeedCrops{}
	prices := &fakeSeedPrices{}
	svc := NewSeedService(crops, prices, rand.New(rand.NewPCG(1, 2)))

	result, err := svc.Seed(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "Database seeded successfully", result.Message)
	assert.Equal(t, 4, result.Crops)
	assert.Equal(t, 12, result.MarketPrices)

	names := make([]string, 0, len(crops.inserted))
	for _, c := range crops.inserted {
		names = append(names, c.Name)
	}
	assert.ElementsMatch(t, []string{"Maize", "Beans", "Cassava", "Potatoes"}, names)

	base := map[string]float64{"Maize": 3500, "Beans": 8400, "Potatoes": 1500, "Cassava": 2200}
	for _, p := range prices.inserted {
		assert.Contains(t, []string{"Nakuru", "Nairobi", "Mombasa"}, p.Market)
		assert.InDelta(t, base[p.Crop], p.PricePerBag, 400)
		assert.Equal(t, p.PricePerBag, float64(int64(p.PricePerBag)), "whole shillings")
		require.NotNil(t, p.PricePerKg)
		assert.Equal(t, roundHalfUp(p.PricePerBag/90), *p.PricePerKg)
		assert.Contains(t, seedTrends, p.Trend)
		assert.Equal(t, models.DefaultPriceUnit, p.Unit)
	}
}

func TestSeedService_SkipsPopulatedTables(t *testing.T) {
	crops := &fakeSeedCrops{count: 7}
	prices := &fakeSeedPrices{count: 30}
	svc := NewSeedService(crops, prices, nil)

	result, err := svc.Seed(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 7, result.Crops)
	assert.Equal(t, 30, result.MarketPrices)
	assert.Empty(t, crops.inserted)
	assert.Empty(t, prices.inserted)
}

func TestSeedService_SameSeedSamePrices(t *testing.T) {
	first := &fakeSeedPrices{}
	second := &fakeSeedPrices{}
	_, err := NewSeedService(&fakeSeedCrops{count: 1}, first, rand.New(rand.NewPCG(9, 9))).Seed(context.Background())
	require.NoError(t, err)
	_, err = NewSeedService(&fakeSeedCrops{count: 1}, second, rand.New(rand.NewPCG(9, 9))).Seed(context.Background())
	require.NoError(t, err)

	require.Len(t, second.inserted, len(first.inserted))
	for i := range first.inserted {
		assert.Equal(t, first.inserted[i].PricePerBag, second.inserted[i].PricePerBag)
		assert.Equal(t, first.inserted[i].Trend, second.inserted[i].Trend)
	}
}

func TestSeedService_CountError(t *testing.T) {
	svc := NewSeedService(&fakeSeedCrops{err: errors.New("db down")}, &fakeSeedPrices{}, nil)

	_, err := svc.Seed(context.Background())
	assert.Error(t, err)
}
