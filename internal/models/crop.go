package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Range is an inclusive [Min, Max] interval
type Range struct {
	Min float64 `json:"min" db:"min"`
	Max float64 `json:"max" db:"max"`
}

// Contains reports whether v lies within the inclusive range
func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// IsZero reports whether the range was never set
func (r Range) IsZero() bool {
	return r.Min == 0 && r.Max == 0
}

// Crop is a catalog entry with the agronomic thresholds used by the scorer
type Crop struct {
	ID                   uuid.UUID      `json:"id" db:"id"`
	Name                 string         `json:"name" db:"name"`
	Variety              string         `json:"variety" db:"variety"`
	OptimalRainfallMin   float64        `json:"optimalRainfallMinMm" db:"optimal_rainfall_min_mm"`
	OptimalRainfallMax   float64        `json:"optimalRainfallMaxMm" db:"optimal_rainfall_max_mm"`
	OptimalTempMin       float64        `json:"optimalTempMinC" db:"optimal_temp_min_c"`
	OptimalTempMax       float64        `json:"optimalTempMaxC" db:"optimal_temp_max_c"`
	GrowthDurationDays   int            `json:"growthDurationDays" db:"growth_duration_days"`
	SoilTypes            pq.StringArray `json:"soilTypes" db:"soil_types"`
	PlantingInstructions string         `json:"plantingInstructions" db:"planting_instructions"`
	CreatedAt            time.Time      `json:"createdAt" db:"created_at"`
}

// OptimalRainfallMm returns the rainfall band as a Range
func (c *Crop) OptimalRainfallMm() Range {
	return Range{Min: c.OptimalRainfallMin, Max: c.OptimalRainfallMax}
}

// OptimalTempC returns the temperature band as a Range
func (c *Crop) OptimalTempC() Range {
	return Range{Min: c.OptimalTempMin, Max: c.OptimalTempMax}
}

// CropInfo is the catalog view embedded in a planting response
type CropInfo struct {
	Name                 string            `json:"name"`
	Variety              string            `json:"variety"`
	GrowthDuration       int               `json:"growthDuration"`
	OptimalConditions    OptimalConditions `json:"optimalConditions"`
	SoilTypes            []string          `json:"soilTypes"`
	PlantingInstructions string            `json:"plantingInstructions"`
}

type OptimalConditions struct {
	Rainfall    Range `json:"rainfall"`
	Temperature Range `json:"temperature"`
}

// ToCropInfo builds the response view of a crop
func (c *Crop) ToCropInfo() *CropInfo {
	if c == nil {
		return nil
	}
	return &CropInfo{
		Name:           c.Name,
		Variety:        c.Variety,
		GrowthDuration: c.GrowthDurationDays,
		OptimalConditions: OptimalConditions{
			Rainfall:    c.OptimalRainfallMm(),
			Temperature: c.OptimalTempC(),
		},
		SoilTypes:            []string(c.SoilTypes),
		PlantingInstructions: c.PlantingInstructions,
	}
}
