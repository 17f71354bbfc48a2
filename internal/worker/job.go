package worker

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/compasslabs/career-compass-backend/internal/ai"
	"github.com/compasslabs/career-compass-backend/internal/assessment"
	"github.com/compasslabs/career-compass-backend/internal/db"
	"github.com/compasslabs/career-compass-backend/internal/email"
	"github.com/compasslabs/career-compass-backend/internal/metrics"
	"github.com/compasslabs/career-compass-backend/internal/pilot"
	"github.com/compasslabs/career-compass-backend/internal/scoring"
	"github.com/compasslabs/career-compass-backend/internal/store"
)

const assessmentTypePilot = "pilot"

// Job holds the dependencies for the score-and-generate pipeline. Each step
// is a separate method so they can be tested independently and so the Run
// method reads like a checklist.
type Job struct {
	q       db.Querier
	store   *store.Store
	catalog *assessment.Catalog
	advisor ai.Advisor
	mailer  email.Sender
	metrics *metrics.Metrics
	logger  *slog.Logger
}

// NewJob constructs a Job with all required dependencies.
func NewJob(
	q db.Querier,
	st *store.Store,
	catalog *assessment.Catalog,
	advisor ai.Advisor,
	mailer email.Sender,
	m *metrics.Metrics,
	logger *slog.Logger,
) *Job {
	return &Job{
		q:       q,
		store:   st,
		catalog: catalog,
		advisor: advisor,
		mailer:  mailer,
		metrics: m,
		logger:  logger,
	}
}

// Run executes the full pipeline for a single report:
//
//  1. Load the report and the session's answers.
//  2. Score every answered assessment plus the pilot profile.
//  3. Call the AI to generate personalised guidance from the profile.
//  4. Persist everything atomically via store.PersistReport.
//  5. Send the delivery email.
//
// Any error is returned to the Runner, which will retry up to MaxRetries times
// before calling store.MarkReportFailed.
func (j *Job) Run(ctx context.Context, reportID uuid.UUID) error {
	log := j.logger.With("report_id", reportID)
	log.Info("job: starting")

	// ── 1. Load the report and session answers ────────────────────────────────
	report, err := j.q.GetReportByID(ctx, reportID)
	if err != nil {
		return fmt.Errorf("job: get report: %w", err)
	}

	session, err := j.q.GetSessionByID(ctx, report.SessionID)
	if err != nil {
		return fmt.Errorf("job: get session: %w", err)
	}

	answers, err := j.q.GetAnswersBySession(ctx, report.SessionID)
	if err != nil {
		return fmt.Errorf("job: get answers: %w", err)
	}

	if len(answers) == 0 {
		return fmt.Errorf("job: no answers found for session %s", report.SessionID)
	}

	log.Debug("job: loaded answers", "count", len(answers))

	// ── 2. Score ──────────────────────────────────────────────────────────────
	grouped := groupAnswers(answers)

	results := make(map[string]any, len(grouped))
	var profile pilot.Profile

	for assessmentType, responses := range grouped {
		if assessmentType == assessmentTypePilot {
			domains := pilot.Score(pilot.Responses(responses))
			profile = pilot.Summarize(domains)
			results[assessmentTypePilot] = domains
			j.metrics.AssessmentsScored.WithLabelValues(assessmentTypePilot).Inc()
			continue
		}

		def, ok := j.catalog.Get(assessmentType)
		if !ok {
			// Answers for a type the catalog no longer knows — skip rather
			// than fail the whole report.
			log.Warn("job: unknown assessment type in answers", "type", assessmentType)
			continue
		}

		result, err := scoring.Score(def, responses)
		if err != nil {
			return fmt.Errorf("job: score %s: %w", assessmentType, err)
		}
		results[assessmentType] = result
		j.metrics.AssessmentsScored.WithLabelValues(assessmentType).Inc()
	}

	log.Debug("job: scored assessments",
		"assessments", len(results),
		"holland_code", profile.HollandCode,
	)

	// ── 3. Generate AI guidance ───────────────────────────────────────────────
	var guidance ai.GuidanceResult
	if profile.HollandCode != "" || len(profile.SuggestedCareers) > 0 {
		guidance, err = j.advisor.GenerateGuidance(ctx, ai.GuidanceParams{
			StudentName: session.StudentName.String,
			GradeLevel:  session.GradeLevel.String,
			Profile:     profile,
		})
		if err != nil {
			// AI failure is non-fatal: the scored report is still valuable
			// without the personalised narrative.
			log.Warn("job: AI guidance generation failed, finishing without it", "error", err)
			guidance = ai.GuidanceResult{}
		}
	}

	// ── 4. Persist everything atomically ──────────────────────────────────────
	finalReport, err := j.store.PersistReport(ctx, store.PersistReportParams{
		ReportID:        reportID,
		Results:         results,
		Profile:         profile,
		GuidanceSummary: guidance.Summary,
		GuidanceHTML:    guidance.GuidanceHTML,
	})
	if err != nil {
		return fmt.Errorf("job: persist report: %w", err)
	}

	log.Info("job: report persisted",
		"holland_code", finalReport.HollandCode.String,
		"access_token", finalReport.AccessToken,
	)

	// ── 5. Send delivery email ────────────────────────────────────────────────
	if !session.Email.Valid || session.Email.String == "" {
		log.Warn("job: session has no email address, skipping delivery email")
		return nil
	}

	if err := j.mailer.SendReportReady(ctx, email.ReportReadyParams{
		To:          session.Email.String,
		StudentName: session.StudentName.String,
		AccessToken: finalReport.AccessToken,
	}); err != nil {
		// Log but do not fail — the student can still access the report via
		// the token.
		log.Error("job: failed to send report email",
			"to", session.Email.String,
			"error", err,
		)
	}

	return nil
}

// groupAnswers splits a session's answers by assessment type into the
// sparse response maps the scoring engines take.
func groupAnswers(answers []db.Answer) map[string]scoring.Responses {
	grouped := make(map[string]scoring.Responses)
	for _, a := range answers {
		m := grouped[a.AssessmentType]
		if m == nil {
			m = make(scoring.Responses)
			grouped[a.AssessmentType] = m
		}
		m[a.QuestionID] = int(a.Value)
	}
	return grouped
}
