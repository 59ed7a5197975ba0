package prefs

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStorage implements Storage backed by a pgx connection pool
type PostgresStorage struct {
	pool *pgxpool.Pool
}

// NewPostgresStorage creates a Postgres-backed preference storage
func NewPostgresStorage(pool *pgxpool.Pool) (*PostgresStorage, error) {
	if pool == nil {
		return nil, ErrStorageNil
	}
	return &PostgresStorage{pool: pool}, nil
}

// Get implements Storage
func (ps *PostgresStorage) Get(ctx context.Context, recipientID uuid.UUID, notifType string) (*Preference, error) {
	rows, err := ps.pool.Query(ctx, `
		SELECT recipient_id, type, email_enabled, push_enabled, updated_at
		FROM notification_preferences
		WHERE recipient_id = $1 AND type = $2`,
		recipientID, notifType,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query preference: %w", err)
	}

	pref, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[Preference])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan preference: %w", err)
	}

	return &pref, nil
}

// Set implements Storage via upsert on the (recipient, type) key
func (ps *PostgresStorage) Set(ctx context.Context, pref Preference) error {
	_, err := ps.pool.Exec(ctx, `
		INSERT INTO notification_preferences (recipient_id, type, email_enabled, push_enabled, updated_at)
		VALUES ($1, $2, $3, $4, now())
		ON CONFLICT (recipient_id, type)
		DO UPDATE SET email_enabled = $3, push_enabled = $4, updated_at = now()`,
		pref.RecipientID, pref.Type, pref.EmailEnabled, pref.PushEnabled,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert preference for type %q: %w", pref.Type, err)
	}

	return nil
}

// Delete implements Storage
func (ps *PostgresStorage) Delete(ctx context.Context, recipientID uuid.UUID, notifType string) error {
	_, err := ps.pool.Exec(ctx, `
		DELETE FROM notification_preferences
		WHERE recipient_id = $1 AND type = $2`,
		recipientID, notifType,
	)
	if err != nil {
		return fmt.Errorf("failed to delete preference for type %q: %w", notifType, err)
	}

	return nil
}

// DeleteAll implements Storage
func (ps *PostgresStorage) DeleteAll(ctx context.Context, recipientID uuid.UUID) (int, error) {
	tag, err := ps.pool.Exec(ctx, `
		DELETE FROM notification_preferences
		WHERE recipient_id = $1`,
		recipientID,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to reset preferences for recipient %s: %w", recipientID, err)
	}

	return int(tag.RowsAffected()), nil
}

// List implements Storage
func (ps *PostgresStorage) List(ctx context.Context, recipientID uuid.UUID) ([]Preference, error) {
	rows, err := ps.pool.Query(ctx, `
		SELECT recipient_id, type, email_enabled, push_enabled, updated_at
		FROM notification_preferences
		WHERE recipient_id = $1
		ORDER BY type`,
		recipientID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list preferences: %w", err)
	}

	prefs, err := pgx.CollectRows(rows, pgx.RowToStructByName[Preference])
	if err != nil {
		return nil, fmt.Errorf("failed to scan preferences: %w", err)
	}

	return prefs, nil
}
