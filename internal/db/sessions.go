package db

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
)

const sessionColumns = `id, anon_token, student_name, grade_level, email,
	stripe_customer_id, stripe_payment_intent, paid, created_at, updated_at`

func scanSession(row *sql.Row) (Session, error) {
	var s Session
	err := row.Scan(
		&s.ID,
		&s.AnonToken,
		&s.StudentName,
		&s.GradeLevel,
		&s.Email,
		&s.StripeCustomerID,
		&s.StripePaymentIntent,
		&s.Paid,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	return s, err
}

type CreateSessionParams struct {
	AnonToken   string
	StudentName sql.NullString
	GradeLevel  sql.NullString
}

const createSession = `
INSERT INTO sessions (anon_token, student_name, grade_level)
VALUES ($1, $2, $3)
RETURNING ` + sessionColumns

func (q *Queries) CreateSession(ctx context.Context, arg CreateSessionParams) (Session, error) {
	row := q.db.QueryRowContext(ctx, createSession, arg.AnonToken, arg.StudentName, arg.GradeLevel)
	return scanSession(row)
}

const getSessionByID = `
SELECT ` + sessionColumns + ` FROM sessions WHERE id = $1`

func (q *Queries) GetSessionByID(ctx context.Context, id uuid.UUID) (Session, error) {
	return scanSession(q.db.QueryRowContext(ctx, getSessionByID, id))
}

const getSessionByAnonToken = `
SELECT ` + sessionColumns + ` FROM sessions WHERE anon_token = $1`

func (q *Queries) GetSessionByAnonToken(ctx context.Context, anonToken string) (Session, error) {
	return scanSession(q.db.QueryRowContext(ctx, getSessionByAnonToken, anonToken))
}

type UpdateSessionProfileParams struct {
	ID          uuid.UUID
	StudentName sql.NullString
	GradeLevel  sql.NullString
}

const updateSessionProfile = `
UPDATE sessions
SET student_name = COALESCE($2, student_name),
    grade_level = COALESCE($3, grade_level),
    updated_at = now()
WHERE id = $1
RETURNING ` + sessionColumns

func (q *Queries) UpdateSessionProfile(ctx context.Context, arg UpdateSessionProfileParams) (Session, error) {
	row := q.db.QueryRowContext(ctx, updateSessionProfile, arg.ID, arg.StudentName, arg.GradeLevel)
	return scanSession(row)
}

type AttachStripeCustomerParams struct {
	ID                  uuid.UUID
	StripeCustomerID    sql.NullString
	StripePaymentIntent sql.NullString
	Email               sql.NullString
}

const attachStripeCustomer = `
UPDATE sessions
SET stripe_customer_id = $2,
    stripe_payment_intent = $3,
    email = COALESCE($4, email),
    updated_at = now()
WHERE id = $1
RETURNING ` + sessionColumns

func (q *Queries) AttachStripeCustomer(ctx context.Context, arg AttachStripeCustomerParams) (Session, error) {
	row := q.db.QueryRowContext(ctx, attachStripeCustomer,
		arg.ID, arg.StripeCustomerID, arg.StripePaymentIntent, arg.Email)
	return scanSession(row)
}

const markSessionPaid = `
UPDATE sessions
SET paid = true, updated_at = now()
WHERE stripe_payment_intent = $1
RETURNING ` + sessionColumns

func (q *Queries) MarkSessionPaid(ctx context.Context, stripePaymentIntent sql.NullString) (Session, error) {
	return scanSession(q.db.QueryRowContext(ctx, markSessionPaid, stripePaymentIntent))
}

const markSessionPaymentFailed = `
UPDATE sessions
SET paid = false, updated_at = now()
WHERE stripe_payment_intent = $1
RETURNING ` + sessionColumns

func (q *Queries) MarkSessionPaymentFailed(ctx context.Context, stripePaymentIntent sql.NullString) (Session, error) {
	return scanSession(q.db.QueryRowContext(ctx, markSessionPaymentFailed, stripePaymentIntent))
}
