package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"shamba-service/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return sqlx.NewDb(db, "postgres"), mock
}

var cropRowColumns = []string{
	"id", "name", "variety", "optimal_rainfall_min_mm", "optimal_rainfall_max_mm",
	"optimal_temp_min_c", "optimal_temp_max_c", "growth_duration_days", "soil_types",
	"planting_instructions", "created_at",
}

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, "maize", escapeLike("maize"))
	assert.Equal(t, `50\%\_off`, escapeLike("50%_off"))
	assert.Equal(t, `a\\b`, escapeLike(`a\b`))
}

func TestCropRepository_FindByName(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewCropRepository(db)
	created := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT (.+) FROM crops WHERE name ILIKE \$1`).
		WithArgs("%maize%").
		WillReturnRows(sqlmock.NewRows(cropRowColumns).AddRow(
			"5d1f7c1e-8d7a-4f0e-9b52-0c1a2b3c4d5e", "Maize", "H614", 500.0, 800.0,
			18.0, 30.0, 120, "{Loamy,Alluvial}", "Plant at 5cm depth", created,
		))

	crop, err := repo.FindByName(context.Background(), " maize ")

	require.NoError(t, err)
	require.NotNil(t, crop)
	assert.Equal(t, "Maize", crop.Name)
	assert.Equal(t, models.Range{Min: 500, Max: 800}, crop.OptimalRainfallMm())
	assert.Equal(t, models.Range{Min: 18, Max: 30}, crop.OptimalTempC())
	assert.Equal(t, pq.StringArray{"Loamy", "Alluvial"}, crop.SoilTypes)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCropRepository_FindByNameEscapesWildcards(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewCropRepository(db)

	mock.ExpectQuery(`FROM crops WHERE name ILIKE`).
		WithArgs(`%\%\_%`).
		WillReturnRows(sqlmock.NewRows(cropRowColumns))

	crop, err := repo.FindByName(context.Background(), "%_")

	require.NoError(t, err)
	assert.Nil(t, crop, "a miss is not an error")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCropRepository_FindByNameDatabaseError(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewCropRepository(db)
	boom := errors.New("connection reset")

	mock.ExpectQuery(`FROM crops`).WillReturnError(boom)

	_, err := repo.FindByName(context.Background(), "beans")

	assert.ErrorIs(t, err, boom)
}

func TestCropRepository_Count(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM crops`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(4))

	count, err := NewCropRepository(db).Count(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 4, count)
}

func TestCropRepository_InsertManyIsTransactional(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewCropRepository(db)
	crops := []models.Crop{
		{Name: "Maize", Variety: "H614", SoilTypes: pq.StringArray{"Loamy"}},
		{Name: "Beans", Variety: "Rosecoco", SoilTypes: pq.StringArray{"Sandy Loam"}},
	}

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO crops`).WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(`INSERT INTO crops`).WillReturnError(errors.New("duplicate key"))
	mock.ExpectRollback()

	err := repo.InsertMany(context.Background(), crops)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "Beans")
	assert.NotEqual(t, uuid.Nil, crops[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
