package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"shamba-service/internal/models"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

const cropColumns = `id, name, variety, optimal_rainfall_min_mm, optimal_rainfall_max_mm,
		optimal_temp_min_c, optimal_temp_max_c, growth_duration_days, soil_types,
		planting_instructions, created_at`

type CropRepository struct {
	db *sqlx.DB
}

func NewCropRepository(db *sqlx.DB) *CropRepository {
	return &CropRepository{db: db}
}

// FindByName returns the first crop, by name, whose name contains the given text
// ignoring case. A miss returns (nil, nil).
func (r *CropRepository) FindByName(ctx context.Context, name string) (*models.Crop, error) {
	var crop models.Crop
	query := `
		SELECT ` + cropColumns + `
		FROM crops
		WHERE name ILIKE $1 ESCAPE '\'
		ORDER BY name
		LIMIT 1`

	err := r.db.GetContext(ctx, &crop, query, "%"+escapeLike(strings.TrimSpace(name))+"%")
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find crop %q: %w", name, err)
	}

	return &crop, nil
}

func (r *CropRepository) List(ctx context.Context) ([]models.Crop, error) {
	var crops []models.Crop
	query := `
		SELECT ` + cropColumns + `
		FROM crops
		ORDER BY name`

	if err := r.db.SelectContext(ctx, &crops, query); err != nil {
		return nil, fmt.Errorf("failed to list crops: %w", err)
	}

	return crops, nil
}

func (r *CropRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM crops`); err != nil {
		return 0, fmt.Errorf("failed to count crops: %w", err)
	}
	return count, nil
}

// InsertMany writes all crops in one transaction
func (r *CropRepository) InsertMany(ctx context.Context, crops []models.Crop) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO crops (` + cropColumns + `)
		VALUES (:id, :name, :variety, :optimal_rainfall_min_mm, :optimal_rainfall_max_mm,
			:optimal_temp_min_c, :optimal_temp_max_c, :growth_duration_days, :soil_types,
			:planting_instructions, :created_at)`

	now := time.Now()
	for i := range crops {
		if crops[i].ID == uuid.Nil {
			crops[i].ID = uuid.New()
		}
		if crops[i].CreatedAt.IsZero() {
			crops[i].CreatedAt = now
		}
		if _, err := tx.NamedExecContext(ctx, query, &crops[i]); err != nil {
			return fmt.Errorf("failed to insert crop %s: %w", crops[i].Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit crops: %w", err)
	}
	return nil
}

// escapeLike makes user text match literally inside a LIKE pattern
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
