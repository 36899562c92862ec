package services

import (
	"time"

	"shamba-service/internal/models"
)

const (
	longRainsStart       = "March 15 (Long Rains)"
	longRainsEnd         = "June 10"
	dryMonthsDroughtRisk = 0.3
	baselineDroughtRisk  = 0.1
	firstDryMonth        = time.November
)

var averageMonthlyRainfallMm = []float64{80, 120, 200, 150}

type IHistoricalService interface {
	GetInsights(lat, lon float64) models.HistoricalInsights
}

// HistoricalService gives climatological context for a location. It is a fixed
// East African long-rains profile until a processed rainfall archive is available.
type HistoricalService struct {
	now func() time.Time
}

func NewHistoricalService(now func() time.Time) *HistoricalService {
	if now == nil {
		now = time.Now
	}
	return &HistoricalService{now: now}
}

func (h *HistoricalService) GetInsights(lat, lon float64) models.HistoricalInsights {
	drought := baselineDroughtRisk
	if h.now().Month() >= firstDryMonth {
		drought = dryMonthsDroughtRisk
	}
	return models.HistoricalInsights{
		TypicalRainySeasonStart: longRainsStart,
		TypicalRainySeasonEnd:   longRainsEnd,
		ProbabilityOfDrought:    drought,
		AverageMonthlyRainfall:  append([]float64(nil), averageMonthlyRainfallMm...),
	}
}
