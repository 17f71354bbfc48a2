package db

import (
	"context"

	"github.com/google/uuid"
)

type UpsertAnswerParams struct {
	SessionID      uuid.UUID
	AssessmentType string
	QuestionID     string
	Value          int16
}

const upsertAnswer = `
INSERT INTO answers (session_id, assessment_type, question_id, value)
VALUES ($1, $2, $3, $4)
ON CONFLICT (session_id, assessment_type, question_id)
DO UPDATE SET value = EXCLUDED.value, updated_at = now()
RETURNING id, session_id, assessment_type, question_id, value, created_at, updated_at`

func (q *Queries) UpsertAnswer(ctx context.Context, arg UpsertAnswerParams) (Answer, error) {
	row := q.db.QueryRowContext(ctx, upsertAnswer,
		arg.SessionID, arg.AssessmentType, arg.QuestionID, arg.Value)
	var a Answer
	err := row.Scan(
		&a.ID,
		&a.SessionID,
		&a.AssessmentType,
		&a.QuestionID,
		&a.Value,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	return a, err
}

const getAnswersBySession = `
SELECT id, session_id, assessment_type, question_id, value, created_at, updated_at
FROM answers
WHERE session_id = $1
ORDER BY assessment_type, question_id`

func (q *Queries) GetAnswersBySession(ctx context.Context, sessionID uuid.UUID) ([]Answer, error) {
	rows, err := q.db.QueryContext(ctx, getAnswersBySession, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var answers []Answer
	for rows.Next() {
		var a Answer
		if err := rows.Scan(
			&a.ID,
			&a.SessionID,
			&a.AssessmentType,
			&a.QuestionID,
			&a.Value,
			&a.CreatedAt,
			&a.UpdatedAt,
		); err != nil {
			return nil, err
		}
		answers = append(answers, a)
	}
	return answers, rows.Err()
}
