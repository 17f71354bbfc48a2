package api

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/compasslabs/career-compass-backend/internal/db"
)

// ─── PUT /api/session/:sessionID/answers ─────────────────────────────────────
//
// Accepts a batch of answers and upserts them. The browser sends the full
// current answer set on every navigation (or a partial batch on debounce).
// Using upsert means it is safe to replay the same payload multiple times.

type answerInput struct {
	AssessmentType string `json:"assessment_type"`
	QuestionID     string `json:"question_id"`
	Value          int16  `json:"value"`
}

type upsertAnswersRequest struct {
	Answers []answerInput `json:"answers"`
}

type upsertAnswersResponse struct {
	Upserted int `json:"upserted"`
}

// handleUpsertAnswers batch-upserts answers for a session.
// Each answer is upserted independently — there is no all-or-nothing guarantee
// across the batch at the HTTP level. If one upsert fails, the handler returns
// 500 and the browser can retry; successful upserts from the same batch are
// idempotent so retrying the full batch is safe.
func (s *Server) handleUpsertAnswers(w http.ResponseWriter, r *http.Request) {
	sessionID, err := parseUUID(chi.URLParam(r, "sessionID"))
	if err != nil {
		respondErr(w, http.StatusBadRequest, "invalid session_id")
		return
	}

	var req upsertAnswersRequest
	if !decode(w, r, &req) {
		return
	}

	if len(req.Answers) == 0 {
		respondErr(w, http.StatusBadRequest, "answers must not be empty")
		return
	}

	if len(req.Answers) > 200 {
		respondErr(w, http.StatusBadRequest, "too many answers in a single request (max 200)")
		return
	}

	upserted := 0
	for _, a := range req.Answers {
		if a.QuestionID == "" {
			respondErr(w, http.StatusBadRequest, "each answer must have a non-empty question_id")
			return
		}
		if !s.validAnswer(a) {
			respondErr(w, http.StatusBadRequest,
				fmt.Sprintf("invalid answer for %s/%s", a.AssessmentType, a.QuestionID))
			return
		}

		if _, err := s.q.UpsertAnswer(r.Context(), db.UpsertAnswerParams{
			SessionID:      sessionID,
			AssessmentType: a.AssessmentType,
			QuestionID:     a.QuestionID,
			Value:          a.Value,
		}); err != nil {
			s.respondInternalErr(w, r, fmt.Errorf("upsert answer %q: %w", a.QuestionID, err))
			return
		}
		upserted++
	}

	respond(w, http.StatusOK, upsertAnswersResponse{Upserted: upserted})
}

// validAnswer checks the assessment type against the catalog and the value
// against that assessment's answer range. Pilot answers always use the 1-5
// scale. Out-of-range values are rejected here so the scorer never sees them.
func (s *Server) validAnswer(a answerInput) bool {
	if a.AssessmentType == assessmentTypePilot {
		return a.Value >= 1 && a.Value <= 5
	}
	def, ok := s.catalog.Get(a.AssessmentType)
	if !ok {
		return false
	}
	return int(a.Value) >= def.Scoring.MinAnswer && int(a.Value) <= def.Scoring.MaxAnswer
}
