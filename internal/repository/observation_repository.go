package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"shamba-service/internal/models"
	"shamba-service/utils"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// location is read back as raw EWKB so GeoJSONPoint.Scan can decode it
const observationSelect = `
		SELECT id, ST_AsEWKB(location) AS location, indicator_type, description, prediction,
			user_id, date_observed, validations, accuracy_score
		FROM observations`

type ObservationRepository struct {
	db *sqlx.DB
}

func NewObservationRepository(db *sqlx.DB) *ObservationRepository {
	return &ObservationRepository{db: db}
}

func (r *ObservationRepository) Create(ctx context.Context, obs *models.Observation) error {
	query := `
		INSERT INTO observations (id, location, indicator_type, description, prediction,
			user_id, date_observed, validations, accuracy_score)
		VALUES (:id, ST_GeomFromEWKT(:location), :indicator_type, :description, :prediction,
			:user_id, :date_observed, :validations, :accuracy_score)`

	if _, err := r.db.NamedExecContext(ctx, query, obs); err != nil {
		return fmt.Errorf("failed to create observation: %w", err)
	}
	return nil
}

// Latest returns the most recently observed reports first
func (r *ObservationRepository) Latest(ctx context.Context, limit int) ([]models.Observation, error) {
	var observations []models.Observation
	query := observationSelect + `
		ORDER BY date_observed DESC
		LIMIT $1`

	if err := r.db.SelectContext(ctx, &observations, query, limit); err != nil {
		return nil, fmt.Errorf("failed to get observations: %w", err)
	}
	return observations, nil
}

// GetByID returns (nil, nil) when no observation has the id
func (r *ObservationRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Observation, error) {
	var obs models.Observation
	query := observationSelect + `
		WHERE id = $1`

	if err := r.db.GetContext(ctx, &obs, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get observation %s: %w", id, err)
	}
	return &obs, nil
}

// AddValidation appends a community verdict and stores the recomputed accuracy.
// The row is locked for the read-modify-write so concurrent votes are not lost.
func (r *ObservationRepository) AddValidation(ctx context.Context, id uuid.UUID, validation models.ObservationValidation) (*models.Observation, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var obs models.Observation
	query := observationSelect + `
		WHERE id = $1
		FOR UPDATE`
	if err := tx.GetContext(ctx, &obs, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to lock observation %s: %w", id, err)
	}

	obs.Validations = append(obs.Validations, validation)
	obs.RecomputeAccuracy()

	update := `UPDATE observations SET validations = $1, accuracy_score = $2 WHERE id = $3`
	if err := utils.ExecWithCheck(ctx, tx, update, utils.ExecUpdate, obs.Validations, obs.AccuracyScore, id); err != nil {
		return nil, fmt.Errorf("failed to store validation for observation %s: %w", id, err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit validation: %w", err)
	}
	return &obs, nil
}
