package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/sqlc-dev/pqtype"

	"github.com/compasslabs/career-compass-backend/internal/db"
	"github.com/compasslabs/career-compass-backend/internal/pilot"
)

// ─── INPUT TYPES ─────────────────────────────────────────────────────────────

// PersistReportParams is everything the worker hands to the store once
// scoring and AI guidance generation are complete.
type PersistReportParams struct {
	ReportID uuid.UUID

	// Results maps assessment type to its scored result object
	// (scoring.PersonalityResult, scoring.HollandResult, etc.). Each is
	// serialised into its own assessment_results row.
	Results map[string]any

	// Profile is the combined pilot profile summary.
	Profile pilot.Profile

	GuidanceSummary string // AI-generated; empty string is fine
	GuidanceHTML    string // AI-generated; empty string is fine
}

// ─── ERRORS ──────────────────────────────────────────────────────────────────

// ErrReportAlreadyExists is returned by InitialiseReport when a report row for
// the session already exists. The webhook handler should treat this as
// idempotent success — a duplicate delivery of payment_intent.succeeded should
// not create a second report.
var ErrReportAlreadyExists = errors.New("store: report already exists for session")

// ─── METHODS ─────────────────────────────────────────────────────────────────

// InitialiseReport is called by the Stripe webhook handler on
// payment_intent.succeeded. It atomically:
//
//  1. Marks the session as paid.
//  2. Checks whether a report row already exists (idempotency guard).
//  3. Creates a new report row in draft status.
//
// If the session was already marked paid and a report already exists (duplicate
// webhook delivery), ErrReportAlreadyExists is returned. The caller should log
// this at debug level and return HTTP 200 to Stripe immediately — no further
// work is needed.
//
// If MarkSessionPaid succeeds but CreateReport fails, the whole transaction
// rolls back so the session remains unpaid. The next webhook delivery will
// retry cleanly.
func (s *Store) InitialiseReport(ctx context.Context, stripePaymentIntent string) (db.Report, error) {
	var report db.Report

	err := s.withTx(ctx, func(ctx context.Context, q db.Querier) error {
		// 1. Mark session paid. MarkSessionPaid matches on stripe_payment_intent,
		//    so it is safe to call for any PI string.
		session, err := q.MarkSessionPaid(ctx, sql.NullString{
			String: stripePaymentIntent,
			Valid:  true,
		})
		if err != nil {
			return fmt.Errorf("InitialiseReport: mark session paid: %w", err)
		}

		// 2. Idempotency guard — report may already exist from a prior delivery.
		existing, err := q.GetReportBySessionID(ctx, session.ID)
		if err == nil {
			// Row found — surface the sentinel and return the existing report so
			// the caller can enqueue it for processing if its status is not ready.
			report = existing
			return ErrReportAlreadyExists
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("InitialiseReport: check existing report: %w", err)
		}

		// 3. Create draft report.
		created, err := q.CreateReport(ctx, session.ID)
		if err != nil {
			return fmt.Errorf("InitialiseReport: create report: %w", err)
		}

		report = created
		return nil
	})

	// Unwrap the sentinel so callers can check with errors.Is without needing
	// to look inside a wrapped error chain.
	if errors.Is(err, ErrReportAlreadyExists) {
		return report, ErrReportAlreadyExists
	}
	if err != nil {
		return db.Report{}, err
	}

	return report, nil
}

// PersistReport is called by the background worker once scoring and AI
// guidance generation are complete. It atomically:
//
//  1. Sets the report status to processing (acquires the work slot).
//  2. Inserts one assessment_results row per scored assessment.
//  3. Finalises the report (status=ready, sets the Holland code, overall
//     strength, profile JSON snapshot, and AI guidance fields).
//
// If any step fails the entire transaction rolls back, leaving the report in
// its previous state. The worker's retry loop will pick it up again via
// ListPendingReports.
func (s *Store) PersistReport(ctx context.Context, p PersistReportParams) (db.Report, error) {
	var report db.Report

	err := s.withTx(ctx, func(ctx context.Context, q db.Querier) error {
		// 1. Claim the report for processing. Idempotent for the status field;
		//    the real guard against double-processing is the serializable
		//    transaction — only one writer can commit result rows for a given
		//    report_id.
		if _, err := q.SetReportProcessing(ctx, p.ReportID); err != nil {
			return fmt.Errorf("PersistReport: set processing: %w", err)
		}

		// 2. Insert one row per scored assessment.
		for assessmentType, result := range p.Results {
			resultJSON, err := json.Marshal(result)
			if err != nil {
				return fmt.Errorf("PersistReport: marshal %s result: %w", assessmentType, err)
			}
			if _, err := q.InsertAssessmentResult(ctx, db.InsertAssessmentResultParams{
				ReportID:       p.ReportID,
				AssessmentType: assessmentType,
				ResultJson: pqtype.NullRawMessage{
					RawMessage: resultJSON,
					Valid:      true,
				},
			}); err != nil {
				return fmt.Errorf("PersistReport: insert %s result: %w", assessmentType, err)
			}
		}

		// 3. Serialise the profile snapshot and finalise. The snapshot is
		//    computed here so it stays consistent with the assessment_results
		//    rows written in the same transaction.
		profileJSON, err := json.Marshal(p.Profile)
		if err != nil {
			return fmt.Errorf("PersistReport: marshal profile: %w", err)
		}

		var overallStrength sql.NullString
		if p.Profile.OverallStrength != nil {
			overallStrength = sql.NullString{String: p.Profile.OverallStrength.Name, Valid: true}
		}

		finalised, err := q.FinalizeReport(ctx, db.FinalizeReportParams{
			ID: p.ReportID,
			HollandCode: sql.NullString{
				String: p.Profile.HollandCode,
				Valid:  p.Profile.HollandCode != "",
			},
			OverallStrength: overallStrength,
			ProfileJson: pqtype.NullRawMessage{
				RawMessage: profileJSON,
				Valid:      true,
			},
			GuidanceSummary: sql.NullString{
				String: p.GuidanceSummary,
				Valid:  p.GuidanceSummary != "",
			},
			GuidanceHtml: sql.NullString{
				String: p.GuidanceHTML,
				Valid:  p.GuidanceHTML != "",
			},
		})
		if err != nil {
			return fmt.Errorf("PersistReport: finalize report: %w", err)
		}

		report = finalised
		return nil
	})

	if err != nil {
		return db.Report{}, err
	}

	return report, nil
}

// MarkReportFailed sets the report status to error with a descriptive message.
// Called by the worker when scoring or AI generation fails permanently (i.e.
// after exhausting retries). This is a single-query write — no transaction
// needed — but it lives here because it is logically part of the report
// lifecycle and the worker should not call db.Querier directly for this.
func (s *Store) MarkReportFailed(ctx context.Context, reportID uuid.UUID, reason string) (db.Report, error) {
	report, err := s.q.SetReportError(ctx, db.SetReportErrorParams{
		ID: reportID,
		ErrorMessage: sql.NullString{
			String: reason,
			Valid:  true,
		},
	})
	if err != nil {
		return db.Report{}, fmt.Errorf("MarkReportFailed: %w", err)
	}
	return report, nil
}
