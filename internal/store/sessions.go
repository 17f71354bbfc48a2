package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/compasslabs/career-compass-backend/internal/db"
)

// ─── INPUT TYPES ─────────────────────────────────────────────────────────────

// AttachPaymentIntentParams groups the Stripe and email fields written
// together when a student starts the report purchase. Email is collected
// at the paywall since the session itself is anonymous.
type AttachPaymentIntentParams struct {
	SessionID           uuid.UUID
	StripeCustomerID    string
	StripePaymentIntent string
	Email               string
}

// ─── ERRORS ──────────────────────────────────────────────────────────────────

// ErrPaymentIntentAlreadyAttached is returned when a session already holds a
// Stripe PaymentIntent for its report. A session buys at most one report, so
// the checkout handler treats this as recoverable and returns the existing
// client_secret rather than creating a second PaymentIntent.
var ErrPaymentIntentAlreadyAttached = errors.New("store: payment intent already attached to session")

// ─── METHODS ─────────────────────────────────────────────────────────────────

// AttachPaymentIntent atomically guards against attaching a second Stripe
// PaymentIntent to a session, then writes the customer ID, PI, and paywall
// email.
//
// Race scenario without this guard: a student has the report paywall open in
// two tabs and submits both. Each request reads the session, sees no PI, and
// asks Stripe for one; the second write then silently overwrites the first,
// and if the student completes payment against the overwritten PI the
// webhook finds no session matching it and the paid report never builds.
//
// With serializable isolation the second transaction sees the first commit,
// hits the already-attached check, and returns
// ErrPaymentIntentAlreadyAttached. The handler re-reads the winning PI and
// hands its client_secret back, so both tabs confirm the same purchase.
func (s *Store) AttachPaymentIntent(ctx context.Context, p AttachPaymentIntentParams) (db.Session, error) {
	var session db.Session

	err := s.withTx(ctx, func(ctx context.Context, q db.Querier) error {
		// Re-read the session inside the transaction so we see the latest
		// committed state under serializable isolation.
		existing, err := q.GetSessionByID(ctx, p.SessionID)
		if err != nil {
			return fmt.Errorf("AttachPaymentIntent: get session: %w", err)
		}

		// Guard: if the session already carries a PI, surface the sentinel.
		// Reopening the paywall is not an error from the student's point of
		// view, so the handler still answers 200 with the existing secret.
		if existing.StripePaymentIntent.Valid && existing.StripePaymentIntent.String != "" {
			session = existing
			return ErrPaymentIntentAlreadyAttached
		}

		updated, err := q.AttachStripeCustomer(ctx, db.AttachStripeCustomerParams{
			ID: p.SessionID,
			StripeCustomerID: sql.NullString{
				String: p.StripeCustomerID,
				Valid:  p.StripeCustomerID != "",
			},
			StripePaymentIntent: sql.NullString{
				String: p.StripePaymentIntent,
				Valid:  true,
			},
			Email: sql.NullString{
				String: p.Email,
				Valid:  p.Email != "",
			},
		})
		if err != nil {
			return fmt.Errorf("AttachPaymentIntent: attach stripe customer: %w", err)
		}

		session = updated
		return nil
	})

	// Unwrap the sentinel so callers can check with errors.Is without needing
	// to look inside a wrapped error chain.
	if errors.Is(err, ErrPaymentIntentAlreadyAttached) {
		return session, ErrPaymentIntentAlreadyAttached
	}
	if err != nil {
		return db.Session{}, err
	}

	return session, nil
}