package handlers

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"shamba-service/internal/models"
	"shamba-service/internal/services"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeObservationService struct {
	created      *models.CreateObservationRequest
	validatedID  uuid.UUID
	validateErr  error
	observations []models.Observation
}

func (f *fakeObservationService) CreateObservation(_ context.Context, req models.CreateObservationRequest) (*models.Observation, error) {
	f.created = &req
	return &models.Observation{ID: uuid.New(), IndicatorType: req.IndicatorType}, nil
}

func (f *fakeObservationService) GetRecentObservations(context.Context) ([]models.Observation, error) {
	return f.observations, nil
}

func (f *fakeObservationService) ValidateObservation(_ context.Context, id uuid.UUID, req models.ValidateObservationRequest) (*models.Observation, error) {
	f.validatedID = id
	if f.validateErr != nil {
		return nil, f.validateErr
	}
	return &models.Observation{ID: id, AccuracyScore: 1}, nil
}

func TestObservationHandler_Create(t *testing.T) {
	svc := &fakeObservationService{}
	r := newRouter(NewObservationHandler(svc))

	w := performJSON(r, http.MethodPost, "/observations",
		`{"indicatorType": "Insects", "description": "Termites swarming", "location": {"type": "Point", "coordinates": [35.27, 0.51]}}`)

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	require.NotNil(t, svc.created)
	assert.Equal(t, models.IndicatorInsects, svc.created.IndicatorType)
	assert.Equal(t, 0.51, svc.created.Location.Lat())
}

func TestObservationHandler_CreateRejectsBadLocation(t *testing.T) {
	svc := &fakeObservationService{}
	r := newRouter(NewObservationHandler(svc))

	w := performJSON(r, http.MethodPost, "/observations",
		`{"indicatorType": "Insects", "location": {"type": "Polygon", "coordinates": [35.27, 0.51]}}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Nil(t, svc.created)
}

func TestObservationHandler_List(t *testing.T) {
	r := newRouter(NewObservationHandler(&fakeObservationService{observations: []models.Observation{{ID: uuid.New()}}}))

	w := performRequest(r, http.MethodGet, "/observations", "", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decodeBody(t, w)["data"], 1)
}

func TestObservationHandler_Validate(t *testing.T) {
	id := uuid.New()
	svc := &fakeObservationService{}
	r := newRouter(NewObservationHandler(svc))

	w := performJSON(r, http.MethodPost, "/observations/"+id.String()+"/validations", `{"userId": "farmer-7", "isValid": false}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, id, svc.validatedID)
}

func TestObservationHandler_ValidateErrors(t *testing.T) {
	r := newRouter(NewObservationHandler(&fakeObservationService{}))
	w := performJSON(r, http.MethodPost, "/observations/not-a-uuid/validations", `{"userId": "a", "isValid": true}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = performJSON(r, http.MethodPost, "/observations/"+uuid.NewString()+"/validations", `{"userId": "a"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	id := uuid.New()
	svc := &fakeObservationService{validateErr: fmt.Errorf("%w: observation %s", services.ErrNotFound, id)}
	r = newRouter(NewObservationHandler(svc))
	w = performJSON(r, http.MethodPost, "/observations/"+id.String()+"/validations", `{"userId": "a", "isValid": true}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "observation "+id.String(), errorMessage(t, w))
}
