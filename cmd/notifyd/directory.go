package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/campuskit/notify/pkg/mailer"
)

// pgContactDirectory resolves recipient email addresses from the
// recipient_contacts table. Deployments with an external person directory
// replace this with a client for that service; only the address crosses
// into the queue.
type pgContactDirectory struct {
	pool *pgxpool.Pool
}

func newContactDirectory(pool *pgxpool.Pool) *pgContactDirectory {
	return &pgContactDirectory{pool: pool}
}

// EmailAddress implements mailer.ContactDirectory
func (d *pgContactDirectory) EmailAddress(ctx context.Context, recipientID uuid.UUID) (string, error) {
	var address string
	err := d.pool.QueryRow(ctx,
		`SELECT email FROM recipient_contacts WHERE recipient_id = $1`,
		recipientID,
	).Scan(&address)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", mailer.ErrNoContact
		}
		return "", fmt.Errorf("contact lookup failed: %w", err)
	}

	if address == "" {
		return "", mailer.ErrNoContact
	}

	return address, nil
}
