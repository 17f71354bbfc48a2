package api

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/compasslabs/career-compass-backend/internal/db"
	"github.com/compasslabs/career-compass-backend/internal/pilot"
	"github.com/compasslabs/career-compass-backend/internal/scoring"
)

// ─── GET /api/session/:sessionID/results ─────────────────────────────────────
//
// Results are recomputed from stored answers on every call rather than
// cached: scoring is pure and cheap, and recomputing means an updated
// answer is reflected immediately without invalidation bookkeeping.

type resultsResponse struct {
	// Assessments maps assessment type to its scored result object.
	Assessments map[string]any `json:"assessments"`

	// Pilot holds the pilot domain scores and profile summary, present
	// only when the session has pilot answers.
	Pilot *pilotResults `json:"pilot,omitempty"`
}

type pilotResults struct {
	Domains []pilot.DomainScore `json:"domains"`
	Profile pilot.Profile       `json:"profile"`
}

// handleGetResults scores every assessment the session has answers for.
// Assessments with no answers are omitted rather than returned as empty
// results.
func (s *Server) handleGetResults(w http.ResponseWriter, r *http.Request) {
	sessionID, err := parseUUID(chi.URLParam(r, "sessionID"))
	if err != nil {
		respondErr(w, http.StatusBadRequest, "invalid session_id")
		return
	}

	answers, err := s.q.GetAnswersBySession(r.Context(), sessionID)
	if err != nil {
		s.respondInternalErr(w, r, fmt.Errorf("get answers: %w", err))
		return
	}

	grouped := groupAnswers(answers)
	out := resultsResponse{Assessments: make(map[string]any)}

	for assessmentType, responses := range grouped {
		if assessmentType == assessmentTypePilot {
			domains := pilot.Score(pilot.Responses(responses))
			out.Pilot = &pilotResults{
				Domains: domains,
				Profile: pilot.Summarize(domains),
			}
			s.metrics.AssessmentsScored.WithLabelValues(assessmentTypePilot).Inc()
			continue
		}

		def, ok := s.catalog.Get(assessmentType)
		if !ok {
			// Answers for a type the catalog no longer knows — skip.
			s.logger.Warn("results: unknown assessment type in answers",
				"type", assessmentType, "session_id", sessionID, logField(r))
			continue
		}

		result, err := scoring.Score(def, responses)
		if err != nil {
			s.respondInternalErr(w, r, fmt.Errorf("score %s: %w", assessmentType, err))
			return
		}
		out.Assessments[assessmentType] = result
		s.metrics.AssessmentsScored.WithLabelValues(assessmentType).Inc()
	}

	respond(w, http.StatusOK, out)
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
