package db

import (
	"context"

	"github.com/google/uuid"
	"github.com/sqlc-dev/pqtype"
)

type InsertAssessmentResultParams struct {
	ReportID       uuid.UUID
	AssessmentType string
	ResultJson     pqtype.NullRawMessage
}

const insertAssessmentResult = `
INSERT INTO assessment_results (report_id, assessment_type, result_json)
VALUES ($1, $2, $3)
ON CONFLICT (report_id, assessment_type)
DO UPDATE SET result_json = EXCLUDED.result_json
RETURNING id, report_id, assessment_type, result_json, created_at`

func (q *Queries) InsertAssessmentResult(ctx context.Context, arg InsertAssessmentResultParams) (AssessmentResult, error) {
	row := q.db.QueryRowContext(ctx, insertAssessmentResult,
		arg.ReportID, arg.AssessmentType, arg.ResultJson)
	var r AssessmentResult
	err := row.Scan(&r.ID, &r.ReportID, &r.AssessmentType, &r.ResultJson, &r.CreatedAt)
	return r, err
}

const getAssessmentResultsByReport = `
SELECT id, report_id, assessment_type, result_json, created_at
FROM assessment_results
WHERE report_id = $1
ORDER BY assessment_type`

func (q *Queries) GetAssessmentResultsByReport(ctx context.Context, reportID uuid.UUID) ([]AssessmentResult, error) {
	rows, err := q.db.QueryContext(ctx, getAssessmentResultsByReport, reportID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []AssessmentResult
	for rows.Next() {
		var r AssessmentResult
		if err := rows.Scan(&r.ID, &r.ReportID, &r.AssessmentType, &r.ResultJson, &r.CreatedAt); err != nil {
			return nil, err
		}
		results = append(results, r)
	}
	return results, rows.Err()
}
