package db

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/sqlc-dev/pqtype"
)

const reportColumns = `id, session_id, access_token, status, holland_code,
	overall_strength, profile_json, guidance_summary, guidance_html,
	error_message, created_at, updated_at`

func scanReport(row *sql.Row) (Report, error) {
	var r Report
	err := row.Scan(
		&r.ID,
		&r.SessionID,
		&r.AccessToken,
		&r.Status,
		&r.HollandCode,
		&r.OverallStrength,
		&r.ProfileJson,
		&r.GuidanceSummary,
		&r.GuidanceHtml,
		&r.ErrorMessage,
		&r.CreatedAt,
		&r.UpdatedAt,
	)
	return r, err
}

const createReport = `
INSERT INTO reports (session_id, access_token, status)
VALUES ($1, encode(gen_random_bytes(24), 'hex'), 'draft')
RETURNING ` + reportColumns

func (q *Queries) CreateReport(ctx context.Context, sessionID uuid.UUID) (Report, error) {
	return scanReport(q.db.QueryRowContext(ctx, createReport, sessionID))
}

const getReportByID = `
SELECT ` + reportColumns + ` FROM reports WHERE id = $1`

func (q *Queries) GetReportByID(ctx context.Context, id uuid.UUID) (Report, error) {
	return scanReport(q.db.QueryRowContext(ctx, getReportByID, id))
}

const getReportBySessionID = `
SELECT ` + reportColumns + ` FROM reports WHERE session_id = $1`

func (q *Queries) GetReportBySessionID(ctx context.Context, sessionID uuid.UUID) (Report, error) {
	return scanReport(q.db.QueryRowContext(ctx, getReportBySessionID, sessionID))
}

// GetReportByAccessTokenRow joins the student fields the report page
// renders alongside the report itself.
type GetReportByAccessTokenRow struct {
	Report      Report
	StudentName sql.NullString
	GradeLevel  sql.NullString
	Email       sql.NullString
}

const getReportByAccessToken = `
SELECT r.id, r.session_id, r.access_token, r.status, r.holland_code,
       r.overall_strength, r.profile_json, r.guidance_summary, r.guidance_html,
       r.error_message, r.created_at, r.updated_at,
       s.student_name, s.grade_level, s.email
FROM reports r
JOIN sessions s ON s.id = r.session_id
WHERE r.access_token = $1`

func (q *Queries) GetReportByAccessToken(ctx context.Context, accessToken string) (GetReportByAccessTokenRow, error) {
	row := q.db.QueryRowContext(ctx, getReportByAccessToken, accessToken)
	var out GetReportByAccessTokenRow
	err := row.Scan(
		&out.Report.ID,
		&out.Report.SessionID,
		&out.Report.AccessToken,
		&out.Report.Status,
		&out.Report.HollandCode,
		&out.Report.OverallStrength,
		&out.Report.ProfileJson,
		&out.Report.GuidanceSummary,
		&out.Report.GuidanceHtml,
		&out.Report.ErrorMessage,
		&out.Report.CreatedAt,
		&out.Report.UpdatedAt,
		&out.StudentName,
		&out.GradeLevel,
		&out.Email,
	)
	return out, err
}

const listPendingReports = `
SELECT ` + reportColumns + `
FROM reports
WHERE status IN ('draft', 'processing')
ORDER BY created_at
LIMIT $1`

func (q *Queries) ListPendingReports(ctx context.Context, limit int32) ([]Report, error) {
	rows, err := q.db.QueryContext(ctx, listPendingReports, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reports []Report
	for rows.Next() {
		var r Report
		if err := rows.Scan(
			&r.ID,
			&r.SessionID,
			&r.AccessToken,
			&r.Status,
			&r.HollandCode,
			&r.OverallStrength,
			&r.ProfileJson,
			&r.GuidanceSummary,
			&r.GuidanceHtml,
			&r.ErrorMessage,
			&r.CreatedAt,
			&r.UpdatedAt,
		); err != nil {
			return nil, err
		}
		reports = append(reports, r)
	}
	return reports, rows.Err()
}

const setReportProcessing = `
UPDATE reports
SET status = 'processing', updated_at = now()
WHERE id = $1
RETURNING ` + reportColumns

func (q *Queries) SetReportProcessing(ctx context.Context, id uuid.UUID) (Report, error) {
	return scanReport(q.db.QueryRowContext(ctx, setReportProcessing, id))
}

type FinalizeReportParams struct {
	ID              uuid.UUID
	HollandCode     sql.NullString
	OverallStrength sql.NullString
	ProfileJson     pqtype.NullRawMessage
	GuidanceSummary sql.NullString
	GuidanceHtml    sql.NullString
}

const finalizeReport = `
UPDATE reports
SET status = 'ready',
    holland_code = $2,
    overall_strength = $3,
    profile_json = $4,
    guidance_summary = $5,
    guidance_html = $6,
    error_message = NULL,
    updated_at = now()
WHERE id = $1
RETURNING ` + reportColumns

func (q *Queries) FinalizeReport(ctx context.Context, arg FinalizeReportParams) (Report, error) {
	row := q.db.QueryRowContext(ctx, finalizeReport,
		arg.ID, arg.HollandCode, arg.OverallStrength,
		arg.ProfileJson, arg.GuidanceSummary, arg.GuidanceHtml)
	return scanReport(row)
}

type SetReportErrorParams struct {
	ID           uuid.UUID
	ErrorMessage sql.NullString
}

const setReportError = `
UPDATE reports
SET status = 'error', error_message = $2, updated_at = now()
WHERE id = $1
RETURNING ` + reportColumns

func (q *Queries) SetReportError(ctx context.Context, arg SetReportErrorParams) (Report, error) {
	return scanReport(q.db.QueryRowContext(ctx, setReportError, arg.ID, arg.ErrorMessage))
}
