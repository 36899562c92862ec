package services

import (
	"context"
	"fmt"

	"shamba-service/internal/models"
)

type CropLister interface {
	List(ctx context.Context) ([]models.Crop, error)
}

type ICropService interface {
	ListCrops(ctx context.Context) ([]models.Crop, error)
}

type CropService struct {
	store CropLister
}

func NewCropService(store CropLister) *CropService {
	return &CropService{store: store}
}

func (s *CropService) ListCrops(ctx context.Context) ([]models.Crop, error) {
	crops, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list crops: %w", err)
	}
	return crops, nil
}
