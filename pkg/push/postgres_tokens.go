package push

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresTokenStore implements TokenStore backed by a pgx connection pool
type PostgresTokenStore struct {
	pool *pgxpool.Pool
}

// NewPostgresTokenStore creates a Postgres-backed device token store
func NewPostgresTokenStore(pool *pgxpool.Pool) (*PostgresTokenStore, error) {
	if pool == nil {
		return nil, ErrTokenStoreNil
	}
	return &PostgresTokenStore{pool: pool}, nil
}

// Register implements TokenStore
func (ps *PostgresTokenStore) Register(ctx context.Context, recipientID uuid.UUID, token string) error {
	if token == "" {
		return ErrEmptyToken
	}

	_, err := ps.pool.Exec(ctx, `
		INSERT INTO push_device_tokens (recipient_id, token, created_at)
		VALUES ($1, $2, now())
		ON CONFLICT (token) DO NOTHING`,
		recipientID, token,
	)
	if err != nil {
		return fmt.Errorf("failed to register device token: %w", err)
	}

	return nil
}

// TokensFor implements TokenStore
func (ps *PostgresTokenStore) TokensFor(ctx context.Context, recipientID uuid.UUID) ([]string, error) {
	rows, err := ps.pool.Query(ctx, `
		SELECT token FROM push_device_tokens
		WHERE recipient_id = $1
		ORDER BY created_at`,
		recipientID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query device tokens: %w", err)
	}
	defer rows.Close()

	var tokens []string
	for rows.Next() {
		var token string
		if err := rows.Scan(&token); err != nil {
			return nil, fmt.Errorf("failed to scan device token: %w", err)
		}
		tokens = append(tokens, token)
	}

	return tokens, rows.Err()
}

// Remove implements TokenStore
func (ps *PostgresTokenStore) Remove(ctx context.Context, tokens ...string) (int, error) {
	if len(tokens) == 0 {
		return 0, nil
	}

	tag, err := ps.pool.Exec(ctx, `
		DELETE FROM push_device_tokens WHERE token = ANY($1)`,
		tokens,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to remove device tokens: %w", err)
	}

	return int(tag.RowsAffected()), nil
}
