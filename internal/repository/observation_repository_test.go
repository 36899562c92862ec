package repository

import (
	"context"
	"encoding/binary"
	"testing"
	"time"

	"shamba-service/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/ewkb"
)

var observationRowColumns = []string{
	"id", "location", "indicator_type", "description", "prediction",
	"user_id", "date_observed", "validations", "accuracy_score",
}

func nakuruEWKB(t *testing.T) []byte {
	t.Helper()
	point := geom.NewPoint(geom.XY).MustSetCoords(geom.Coord{36.0613, -0.3031}).SetSRID(4326)
	b, err := ewkb.Marshal(point, binary.LittleEndian)
	require.NoError(t, err)
	return b
}

func TestObservationRepository_Latest(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewObservationRepository(db)
	id := uuid.New()
	observed := time.Date(2026, 3, 1, 6, 30, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT id, ST_AsEWKB\(location\) AS location, (.+) FROM observations ORDER BY date_observed DESC LIMIT \$1`).
		WithArgs(10).
		WillReturnRows(sqlmock.NewRows(observationRowColumns).AddRow(
			id.String(), nakuruEWKB(t), "Bird Behavior", "Swallows flying low", "Rain within a week",
			"+254712345678", observed, `[{"userId":"u1","isValid":true}]`, 1.0,
		))

	observations, err := repo.Latest(context.Background(), 10)

	require.NoError(t, err)
	require.Len(t, observations, 1)
	obs := observations[0]
	assert.Equal(t, id, obs.ID)
	assert.Equal(t, models.IndicatorBirdBehavior, obs.IndicatorType)
	require.NotNil(t, obs.Location)
	assert.InDelta(t, 36.0613, obs.Location.Lon(), 1e-9)
	assert.InDelta(t, -0.3031, obs.Location.Lat(), 1e-9)
	require.Len(t, obs.Validations, 1)
	assert.True(t, obs.Validations[0].IsValid)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestObservationRepository_AddValidation(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewObservationRepository(db)
	id := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery(`FROM observations WHERE id = \$1 FOR UPDATE`).
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows(observationRowColumns).AddRow(
			id.String(), nil, "Plant Flowering", "", "", "", time.Now(), `[{"userId":"u1","isValid":true}]`, 1.0,
		))
	mock.ExpectExec(`UPDATE observations SET validations = \$1, accuracy_score = \$2 WHERE id = \$3`).
		WithArgs(sqlmock.AnyArg(), 0.5, id).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	obs, err := repo.AddValidation(context.Background(), id, models.ObservationValidation{UserID: "u2", IsValid: false})

	require.NoError(t, err)
	require.NotNil(t, obs)
	assert.Len(t, obs.Validations, 2)
	assert.Equal(t, 0.5, obs.AccuracyScore)
	assert.Nil(t, obs.Location)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestObservationRepository_AddValidationMissing(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewObservationRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`FOR UPDATE`).WillReturnRows(sqlmock.NewRows(observationRowColumns))
	mock.ExpectRollback()

	obs, err := repo.AddValidation(context.Background(), uuid.New(), models.ObservationValidation{UserID: "u1", IsValid: true})

	require.NoError(t, err)
	assert.Nil(t, obs)
	assert.NoError(t, mock.ExpectationsWereMet())
}
