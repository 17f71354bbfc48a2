package db

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/sqlc-dev/pqtype"
)

// ReportStatus tracks a report through its lifecycle:
// draft → processing → ready, or → error on permanent failure.
type ReportStatus string

const (
	ReportStatusDraft      ReportStatus = "draft"
	ReportStatusProcessing ReportStatus = "processing"
	ReportStatusReady      ReportStatus = "ready"
	ReportStatusError      ReportStatus = "error"
)

// Session is an anonymous assessment-taking session, identified to the
// browser by its anon token. Student details and Stripe fields are
// filled in as the student progresses.
type Session struct {
	ID                  uuid.UUID
	AnonToken           string
	StudentName         sql.NullString
	GradeLevel          sql.NullString
	Email               sql.NullString
	StripeCustomerID    sql.NullString
	StripePaymentIntent sql.NullString
	Paid                bool
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// Answer is one raw Likert answer, unique per
// (session, assessment_type, question).
type Answer struct {
	ID             uuid.UUID
	SessionID      uuid.UUID
	AssessmentType string
	QuestionID     string
	Value          int16
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// AssessmentResult is the JSON snapshot of one scored assessment,
// written by the worker alongside the report.
type AssessmentResult struct {
	ID             uuid.UUID
	ReportID       uuid.UUID
	AssessmentType string
	ResultJson     pqtype.NullRawMessage
	CreatedAt      time.Time
}

// Report is the paid career report generated for a session.
type Report struct {
	ID              uuid.UUID
	SessionID       uuid.UUID
	AccessToken     string
	Status          ReportStatus
	HollandCode     sql.NullString
	OverallStrength sql.NullString
	ProfileJson     pqtype.NullRawMessage
	GuidanceSummary sql.NullString
	GuidanceHtml    sql.NullString
	ErrorMessage    sql.NullString
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// StripeEvent records processed webhook event IDs for idempotency.
type StripeEvent struct {
	ID           string
	Type         string
	Status       string
	ErrorMessage sql.NullString
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
