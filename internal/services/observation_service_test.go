package services

import (
	"context"
	"testing"

	"shamba-service/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeObservationStore struct {
	created     []*models.Observation
	validated   map[uuid.UUID]*models.Observation
	lastVerdict models.ObservationValidation
}

func (f *fakeObservationStore) Create(_ context.Context, obs *models.Observation) error {
	f.created = append(f.created, obs)
	return nil
}

func (f *fakeObservationStore) Latest(context.Context, int) ([]models.Observation, error) {
	return nil, nil
}

func (f *fakeObservationStore) AddValidation(_ context.Context, id uuid.UUID, v models.ObservationValidation) (*models.Observation, error) {
	f.lastVerdict = v
	obs, ok := f.validated[id]
	if !ok {
		return nil, nil
	}
	obs.Validations = append(obs.Validations, v)
	obs.RecomputeAccuracy()
	return obs, nil
}

func TestObservationService_CreateUsesDefaultLocation(t *testing.T) {
	store := &fakeObservationStore{}
	obs, err := NewObservationService(store).CreateObservation(context.Background(), models.CreateObservationRequest{
		IndicatorType: models.IndicatorBirdBehavior,
		Description:   "Swallows flying low",
	})

	require.NoError(t, err)
	require.Len(t, store.created, 1)
	assert.Equal(t, 36.0613, obs.Location.Lon())
	assert.Equal(t, -0.3031, obs.Location.Lat())
	assert.NotNil(t, obs.Validations)
	assert.Zero(t, obs.AccuracyScore)
}

func TestObservationService_CreateKeepsGivenLocation(t *testing.T) {
	store := &fakeObservationStore{}
	obs, err := NewObservationService(store).CreateObservation(context.Background(), models.CreateObservationRequest{
		IndicatorType: models.IndicatorInsects,
		Location:      models.NewGeoJSONPoint(34.75, 0.52),
	})

	require.NoError(t, err)
	assert.Equal(t, 34.75, obs.Location.Lon())
}

func TestObservationService_CreateRejectsBadInput(t *testing.T) {
	svc := NewObservationService(&fakeObservationStore{})

	_, err := svc.CreateObservation(context.Background(), models.CreateObservationRequest{IndicatorType: "Moon Phase"})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.CreateObservation(context.Background(), models.CreateObservationRequest{
		IndicatorType: models.IndicatorOther,
		Location:      models.NewGeoJSONPoint(200, 0),
	})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestObservationService_GetRecentNeverNil(t *testing.T) {
	observations, err := NewObservationService(&fakeObservationStore{}).GetRecentObservations(context.Background())

	require.NoError(t, err)
	assert.NotNil(t, observations)
}

func TestObservationService_Validate(t *testing.T) {
	id := uuid.New()
	store := &fakeObservationStore{validated: map[uuid.UUID]*models.Observation{
		id: {ID: id, Validations: []models.ObservationValidation{{UserID: "a", IsValid: true}}},
	}}
	svc := NewObservationService(store)
	no := false

	obs, err := svc.ValidateObservation(context.Background(), id, models.ValidateObservationRequest{UserID: "b", IsValid: &no, Comment: "no rain came"})

	require.NoError(t, err)
	assert.Equal(t, 0.5, obs.AccuracyScore)
	assert.Equal(t, "no rain came", store.lastVerdict.Comment)

	_, err = svc.ValidateObservation(context.Background(), uuid.New(), models.ValidateObservationRequest{UserID: "b", IsValid: &no})
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.ValidateObservation(context.Background(), id, models.ValidateObservationRequest{UserID: "b"})
	assert.ErrorIs(t, err, ErrValidation)
}
