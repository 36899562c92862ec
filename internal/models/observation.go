package models

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"shamba-service/utils"
)

type IndicatorType string

const (
	IndicatorBirdBehavior   IndicatorType = "Bird Behavior"
	IndicatorPlantFlowering IndicatorType = "Plant Flowering"
	IndicatorWindPattern    IndicatorType = "Wind Pattern"
	IndicatorInsects        IndicatorType = "Insects"
	IndicatorOther          IndicatorType = "Other"
)

func (t IndicatorType) IsValid() bool {
	switch t {
	case IndicatorBirdBehavior, IndicatorPlantFlowering, IndicatorWindPattern, IndicatorInsects, IndicatorOther:
		return true
	}
	return false
}

// Nakuru town centre, used when a report carries no location
var DefaultObservationLocation = [2]float64{36.0613, -0.3031}

// ObservationValidation is one community member's verdict on an observation
type ObservationValidation struct {
	UserID  string `json:"userId"`
	IsValid bool   `json:"isValid"`
	Comment string `json:"comment,omitempty"`
}

// Observation is an indigenous-knowledge weather indicator reported by a farmer
type Observation struct {
	ID            uuid.UUID                              `json:"id" db:"id"`
	Location      *GeoJSONPoint                          `json:"location" db:"location"`
	IndicatorType IndicatorType                          `json:"indicatorType" db:"indicator_type"`
	Description   string                                 `json:"description" db:"description"`
	Prediction    string                                 `json:"prediction" db:"prediction"`
	UserID        string                                 `json:"userId" db:"user_id"`
	DateObserved  time.Time                              `json:"dateObserved" db:"date_observed"`
	Validations   utils.JSONArray[ObservationValidation] `json:"validations" db:"validations"`
	AccuracyScore float64                                `json:"accuracyScore" db:"accuracy_score"`
}

// RecomputeAccuracy sets AccuracyScore to the share of validations that agreed
func (o *Observation) RecomputeAccuracy() {
	if len(o.Validations) == 0 {
		o.AccuracyScore = 0
		return
	}
	valid := 0
	for _, v := range o.Validations {
		if v.IsValid {
			valid++
		}
	}
	o.AccuracyScore = float64(valid) / float64(len(o.Validations))
}

type CreateObservationRequest struct {
	Location      *GeoJSONPoint `json:"location,omitempty"`
	IndicatorType IndicatorType `json:"indicatorType" binding:"required"`
	Description   string        `json:"description,omitempty" binding:"max=1000"`
	Prediction    string        `json:"prediction,omitempty" binding:"max=500"`
	UserID        string        `json:"userId,omitempty" binding:"max=100"`
	DateObserved  *time.Time    `json:"dateObserved,omitempty"`
}

func (r CreateObservationRequest) Validate() error {
	if !r.IndicatorType.IsValid() {
		return fmt.Errorf("indicatorType %q is not supported", r.IndicatorType)
	}
	if r.Location != nil {
		if err := r.Location.Validate(); err != nil {
			return err
		}
	}
	return nil
}

type ValidateObservationRequest struct {
	UserID  string `json:"userId" binding:"required,max=100"`
	IsValid *bool  `json:"isValid" binding:"required"`
	Comment string `json:"comment,omitempty" binding:"max=500"`
}

func (r ValidateObservationRequest) Validate() error {
	if r.UserID == "" {
		return errors.New("userId is required")
	}
	if r.IsValid == nil {
		return errors.New("isValid is required")
	}
	return nil
}
