package handlers

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"shamba-service/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSeedService struct {
	err error
}

func (f *fakeSeedService) Seed(context.Context) (*services.SeedResult, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &services.SeedResult{Message: "Database seeded successfully", Crops: 4, MarketPrices: 12}, nil
}

func TestSeedHandler(t *testing.T) {
	r := newRouter(NewSeedHandler(&fakeSeedService{}))
	w := performRequest(r, http.MethodPost, "/seed", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	data := decodeBody(t, w)["data"].(map[string]any)
	assert.Equal(t, float64(4), data["crops"])

	r = newRouter(NewSeedHandler(&fakeSeedService{err: errors.New("insert failed")}))
	w = performRequest(r, http.MethodPost, "/seed", "", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Failed to seed database", errorMessage(t, w))
}
