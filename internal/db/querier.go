package db

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
)

// Querier is the query surface shared by *Queries and transactional
// copies of it. Handlers and the worker depend on this interface so
// tests can substitute stubs.
type Querier interface {
	CreateSession(ctx context.Context, arg CreateSessionParams) (Session, error)
	GetSessionByID(ctx context.Context, id uuid.UUID) (Session, error)
	GetSessionByAnonToken(ctx context.Context, anonToken string) (Session, error)
	UpdateSessionProfile(ctx context.Context, arg UpdateSessionProfileParams) (Session, error)
	AttachStripeCustomer(ctx context.Context, arg AttachStripeCustomerParams) (Session, error)
	MarkSessionPaid(ctx context.Context, stripePaymentIntent sql.NullString) (Session, error)
	MarkSessionPaymentFailed(ctx context.Context, stripePaymentIntent sql.NullString) (Session, error)

	UpsertAnswer(ctx context.Context, arg UpsertAnswerParams) (Answer, error)
	GetAnswersBySession(ctx context.Context, sessionID uuid.UUID) ([]Answer, error)

	CreateReport(ctx context.Context, sessionID uuid.UUID) (Report, error)
	GetReportByID(ctx context.Context, id uuid.UUID) (Report, error)
	GetReportBySessionID(ctx context.Context, sessionID uuid.UUID) (Report, error)
	GetReportByAccessToken(ctx context.Context, accessToken string) (GetReportByAccessTokenRow, error)
	ListPendingReports(ctx context.Context, limit int32) ([]Report, error)
	SetReportProcessing(ctx context.Context, id uuid.UUID) (Report, error)
	FinalizeReport(ctx context.Context, arg FinalizeReportParams) (Report, error)
	SetReportError(ctx context.Context, arg SetReportErrorParams) (Report, error)

	InsertAssessmentResult(ctx context.Context, arg InsertAssessmentResultParams) (AssessmentResult, error)
	GetAssessmentResultsByReport(ctx context.Context, reportID uuid.UUID) ([]AssessmentResult, error)

	UpsertStripeEvent(ctx context.Context, arg UpsertStripeEventParams) (StripeEvent, error)
	MarkStripeEventProcessed(ctx context.Context, id string) error
	MarkStripeEventFailed(ctx context.Context, arg MarkStripeEventFailedParams) error
}

var _ Querier = (*Queries)(nil)
