package db

import (
	"context"
	"database/sql"
)

type UpsertStripeEventParams struct {
	ID   string
	Type string
}

// upsertStripeEvent inserts the event in pending status, or returns the
// existing row unchanged so the webhook handler can detect duplicates
// by its status.
const upsertStripeEvent = `
INSERT INTO stripe_events (id, type, status)
VALUES ($1, $2, 'pending')
ON CONFLICT (id) DO UPDATE SET updated_at = now()
RETURNING id, type, status, error_message, created_at, updated_at`

func (q *Queries) UpsertStripeEvent(ctx context.Context, arg UpsertStripeEventParams) (StripeEvent, error) {
	row := q.db.QueryRowContext(ctx, upsertStripeEvent, arg.ID, arg.Type)
	var e StripeEvent
	err := row.Scan(&e.ID, &e.Type, &e.Status, &e.ErrorMessage, &e.CreatedAt, &e.UpdatedAt)
	return e, err
}

const markStripeEventProcessed = `
UPDATE stripe_events
SET status = 'processed', updated_at = now()
WHERE id = $1`

func (q *Queries) MarkStripeEventProcessed(ctx context.Context, id string) error {
	_, err := q.db.ExecContext(ctx, markStripeEventProcessed, id)
	return err
}

type MarkStripeEventFailedParams struct {
	ID           string
	ErrorMessage sql.NullString
}

const markStripeEventFailed = `
UPDATE stripe_events
SET status = 'failed', error_message = $2, updated_at = now()
WHERE id = $1`

func (q *Queries) MarkStripeEventFailed(ctx context.Context, arg MarkStripeEventFailedParams) error {
	_, err := q.db.ExecContext(ctx, markStripeEventFailed, arg.ID, arg.ErrorMessage)
	return err
}
