package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"shamba-service/internal/models"
	"shamba-service/utils"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

const subscriberColumns = `id, email, phone, plan, source, email_sent, sms_sent, created_at, updated_at`

type SubscriberRepository struct {
	db *sqlx.DB
}

func NewSubscriberRepository(db *sqlx.DB) *SubscriberRepository {
	return &SubscriberRepository{db: db}
}

// FindByContact returns the subscriber matching either the email or the phone.
// Empty values are ignored; a miss returns (nil, nil).
func (r *SubscriberRepository) FindByContact(ctx context.Context, email, phone string) (*models.Subscriber, error) {
	if email == "" && phone == "" {
		return nil, nil
	}

	var sub models.Subscriber
	query := `
		SELECT ` + subscriberColumns + `
		FROM subscribers
		WHERE ($1 <> '' AND email = $1) OR ($2 <> '' AND phone = $2)
		ORDER BY created_at
		LIMIT 1`

	if err := r.db.GetContext(ctx, &sub, query, email, phone); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find subscriber: %w", err)
	}
	return &sub, nil
}

func (r *SubscriberRepository) Create(ctx context.Context, sub *models.Subscriber) error {
	now := time.Now()
	if sub.ID == uuid.Nil {
		sub.ID = uuid.New()
	}
	sub.CreatedAt = now
	sub.UpdatedAt = now

	query := `
		INSERT INTO subscribers (` + subscriberColumns + `)
		VALUES (:id, :email, :phone, :plan, :source, :email_sent, :sms_sent, :created_at, :updated_at)`

	if _, err := r.db.NamedExecContext(ctx, query, sub); err != nil {
		return fmt.Errorf("failed to create subscriber: %w", err)
	}
	return nil
}

func (r *SubscriberRepository) UpdateContact(ctx context.Context, sub *models.Subscriber) error {
	sub.UpdatedAt = time.Now()
	query := `UPDATE subscribers SET email = $1, phone = $2, plan = $3, updated_at = $4 WHERE id = $5`

	err := utils.ExecWithCheck(ctx, r.db, query, utils.ExecUpdate, sub.Email, sub.Phone, sub.Plan, sub.UpdatedAt, sub.ID)
	if err != nil {
		return fmt.Errorf("failed to update subscriber %s: %w", sub.ID, err)
	}
	return nil
}

// MarkNotified records that a welcome message was handed to the notification queue
func (r *SubscriberRepository) MarkNotified(ctx context.Context, id uuid.UUID, channel string) error {
	var column string
	switch channel {
	case "sms":
		column = "sms_sent"
	case "email":
		column = "email_sent"
	default:
		return fmt.Errorf("unknown notification channel %q", channel)
	}

	query := `UPDATE subscribers SET ` + column + ` = TRUE, updated_at = $1 WHERE id = $2`
	if err := utils.ExecWithCheck(ctx, r.db, query, utils.ExecUpdate, time.Now(), id); err != nil {
		return fmt.Errorf("failed to mark subscriber %s notified: %w", id, err)
	}
	return nil
}
