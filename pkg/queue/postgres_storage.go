package queue

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/campuskit/notify/pkg/pg"
)

// PostgresStorage implements Storage backed by a pgx connection pool.
// The pending->processing transition is a single conditional UPDATE, so
// overlapping batch sweeps never claim the same record twice.
type PostgresStorage struct {
	pool *pgxpool.Pool
}

// NewPostgresStorage creates a Postgres-backed queue storage
func NewPostgresStorage(pool *pgxpool.Pool) (*PostgresStorage, error) {
	if pool == nil {
		return nil, ErrStorageNil
	}
	return &PostgresStorage{pool: pool}, nil
}

const notificationColumns = `id, recipient_id, type, channel, title, message, status, attempts, last_attempt_at, error_message, created_at`

// Enqueue implements Storage
func (ps *PostgresStorage) Enqueue(ctx context.Context, notif *Notification) (uuid.UUID, error) {
	if notif == nil {
		return uuid.Nil, ErrNotificationNil
	}

	id := notif.ID
	if id == uuid.Nil {
		id = uuid.New()
	}
	createdAt := notif.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	// Initial state is forced server-side regardless of caller values
	_, err := ps.pool.Exec(ctx, `
		INSERT INTO notification_queue (id, recipient_id, type, channel, title, message, status, attempts, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, 'pending', 0, $7)`,
		id, notif.RecipientID, notif.Type, notif.Channel, notif.Title, notif.Message, createdAt,
	)
	if err != nil {
		if pg.IsDuplicateKeyError(err) {
			return uuid.Nil, ErrDuplicateID
		}
		return uuid.Nil, fmt.Errorf("failed to insert notification: %w", err)
	}

	return id, nil
}

// Get implements Storage
func (ps *PostgresStorage) Get(ctx context.Context, id uuid.UUID) (*Notification, error) {
	rows, err := ps.pool.Query(ctx,
		`SELECT `+notificationColumns+` FROM notification_queue WHERE id = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query notification %s: %w", id, err)
	}

	notif, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[Notification])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan notification %s: %w", id, err)
	}

	return &notif, nil
}

// SelectPending implements Storage
func (ps *PostgresStorage) SelectPending(ctx context.Context, limit, maxAttempts int) ([]Notification, error) {
	rows, err := ps.pool.Query(ctx, `
		SELECT `+notificationColumns+`
		FROM notification_queue
		WHERE status = 'pending' AND attempts < $1
		ORDER BY created_at ASC
		LIMIT $2`,
		maxAttempts, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to select pending notifications: %w", err)
	}

	notifs, err := pgx.CollectRows(rows, pgx.RowToStructByName[Notification])
	if err != nil {
		return nil, fmt.Errorf("failed to scan pending notifications: %w", err)
	}

	return notifs, nil
}

// SelectPendingRetry implements Storage
func (ps *PostgresStorage) SelectPendingRetry(ctx context.Context, minRetryDelay time.Duration) ([]Notification, error) {
	cutoff := time.Now().Add(-minRetryDelay)

	rows, err := ps.pool.Query(ctx, `
		SELECT `+notificationColumns+`
		FROM notification_queue
		WHERE status = 'pending' AND attempts > 0 AND last_attempt_at <= $1
		ORDER BY created_at ASC`,
		cutoff,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to select retry candidates: %w", err)
	}

	notifs, err := pgx.CollectRows(rows, pgx.RowToStructByName[Notification])
	if err != nil {
		return nil, fmt.Errorf("failed to scan retry candidates: %w", err)
	}

	return notifs, nil
}

// MarkProcessing implements Storage.
// The WHERE clause makes this a compare-and-swap: zero rows affected means
// another sweep already claimed the record or it left pending status.
func (ps *PostgresStorage) MarkProcessing(ctx context.Context, id uuid.UUID) error {
	tag, err := ps.pool.Exec(ctx, `
		UPDATE notification_queue
		SET status = 'processing'
		WHERE id = $1 AND status = 'pending'`,
		id,
	)
	if err != nil {
		return fmt.Errorf("failed to mark notification %s processing: %w", id, err)
	}

	if tag.RowsAffected() == 0 {
		return ErrNotClaimable
	}

	return nil
}

// MarkSent implements Storage
func (ps *PostgresStorage) MarkSent(ctx context.Context, id uuid.UUID) error {
	tag, err := ps.pool.Exec(ctx, `
		UPDATE notification_queue
		SET status = 'sent'
		WHERE id = $1 AND status <> 'sent'`,
		id,
	)
	if err != nil {
		return fmt.Errorf("failed to mark notification %s sent: %w", id, err)
	}

	// Zero rows means either already sent (idempotent success) or missing
	if tag.RowsAffected() == 0 {
		var exists bool
		if err := ps.pool.QueryRow(ctx,
			`SELECT EXISTS (SELECT 1 FROM notification_queue WHERE id = $1)`, id,
		).Scan(&exists); err != nil {
			return fmt.Errorf("failed to verify notification %s: %w", id, err)
		}
		if !exists {
			return ErrNotFound
		}
	}

	return nil
}

// MarkFailed implements Storage.
// Attempt counting and the exhaustion decision happen in one statement so
// concurrent failure reports cannot race the status transition.
func (ps *PostgresStorage) MarkFailed(ctx context.Context, id uuid.UUID, errorMsg string, maxAttempts int) error {
	tag, err := ps.pool.Exec(ctx, `
		UPDATE notification_queue
		SET attempts = attempts + 1,
		    last_attempt_at = now(),
		    error_message = $2,
		    status = CASE WHEN attempts + 1 >= $3 THEN 'failed' ELSE 'pending' END
		WHERE id = $1`,
		id, errorMsg, maxAttempts,
	)
	if err != nil {
		return fmt.Errorf("failed to mark notification %s failed: %w", id, err)
	}

	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

// PurgeOld implements Storage
func (ps *PostgresStorage) PurgeOld(ctx context.Context, retention time.Duration) (int, error) {
	cutoff := time.Now().Add(-retention)

	tag, err := ps.pool.Exec(ctx, `
		DELETE FROM notification_queue
		WHERE status IN ('sent', 'failed') AND created_at < $1`,
		cutoff,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to purge old notifications: %w", err)
	}

	return int(tag.RowsAffected()), nil
}

// Statistics implements Storage
func (ps *PostgresStorage) Statistics(ctx context.Context) (Statistics, error) {
	var stats Statistics
	err := ps.pool.QueryRow(ctx, `
		SELECT
			count(*) FILTER (WHERE status = 'pending'),
			count(*) FILTER (WHERE status = 'processing'),
			count(*) FILTER (WHERE status = 'sent'),
			count(*) FILTER (WHERE status = 'failed'),
			count(*)
		FROM notification_queue`,
	).Scan(&stats.Pending, &stats.Processing, &stats.Sent, &stats.Failed, &stats.Total)
	if err != nil {
		return Statistics{}, fmt.Errorf("failed to collect queue statistics: %w", err)
	}

	return stats, nil
}
