package services

import (
	"context"
	"fmt"
	"time"

	"shamba-service/internal/models"

	"github.com/google/uuid"
)

const recentObservationLimit = 10

type ObservationStore interface {
	Create(ctx context.Context, obs *models.Observation) error
	Latest(ctx context.Context, limit int) ([]models.Observation, error)
	AddValidation(ctx context.Context, id uuid.UUID, validation models.ObservationValidation) (*models.Observation, error)
}

type IObservationService interface {
	CreateObservation(ctx context.Context, req models.CreateObservationRequest) (*models.Observation, error)
	GetRecentObservations(ctx context.Context) ([]models.Observation, error)
	ValidateObservation(ctx context.Context, id uuid.UUID, req models.ValidateObservationRequest) (*models.Observation, error)
}

type ObservationService struct {
	store ObservationStore
}

func NewObservationService(store ObservationStore) *ObservationService {
	return &ObservationService{store: store}
}

func (s *ObservationService) CreateObservation(ctx context.Context, req models.CreateObservationRequest) (*models.Observation, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	location := req.Location
	if location == nil {
		location = models.NewGeoJSONPoint(models.DefaultObservationLocation[0], models.DefaultObservationLocation[1])
	}
	observed := time.Now().UTC()
	if req.DateObserved != nil {
		observed = req.DateObserved.UTC()
	}

	obs := &models.Observation{
		ID:            uuid.New(),
		Location:      location,
		IndicatorType: req.IndicatorType,
		Description:   req.Description,
		Prediction:    req.Prediction,
		UserID:        req.UserID,
		DateObserved:  observed,
		Validations:   []models.ObservationValidation{},
	}

	if err := s.store.Create(ctx, obs); err != nil {
		return nil, fmt.Errorf("failed to submit observation: %w", err)
	}
	return obs, nil
}

func (s *ObservationService) GetRecentObservations(ctx context.Context) ([]models.Observation, error) {
	observations, err := s.store.Latest(ctx, recentObservationLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch observations: %w", err)
	}
	if observations == nil {
		observations = []models.Observation{}
	}
	return observations, nil
}

// ValidateObservation records a community verdict and returns the updated report
func (s *ObservationService) ValidateObservation(ctx context.Context, id uuid.UUID, req models.ValidateObservationRequest) (*models.Observation, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	obs, err := s.store.AddValidation(ctx, id, models.ObservationValidation{
		UserID:  req.UserID,
		IsValid: *req.IsValid,
		Comment: req.Comment,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to validate observation: %w", err)
	}
	if obs == nil {
		return nil, fmt.Errorf("%w: observation %s", ErrNotFound, id)
	}
	return obs, nil
}
