package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/compasslabs/career-compass-backend/internal/assessment"
	"github.com/compasslabs/career-compass-backend/internal/pilot"
)

// assessmentTypePilot is the answer namespace used by the pilot
// questionnaire. It is not part of the YAML catalog because its
// two-level scoring has its own engine.
const assessmentTypePilot = "pilot"

// ─── GET /api/assessments ─────────────────────────────────────────────────────

type assessmentSummary struct {
	Type          string `json:"type"`
	Name          string `json:"name"`
	Description   string `json:"description,omitempty"`
	QuestionCount int    `json:"question_count"`
}

// handleListAssessments returns the catalog summaries in a stable order
// so the frontend can render the assessment menu.
func (s *Server) handleListAssessments(w http.ResponseWriter, r *http.Request) {
	defs := s.catalog.List()
	out := make([]assessmentSummary, 0, len(defs)+1)
	for _, def := range defs {
		out = append(out, assessmentSummary{
			Type:          def.Type,
			Name:          def.Name,
			Description:   def.Description,
			QuestionCount: len(def.Questions),
		})
	}
	out = append(out, assessmentSummary{
		Type:          assessmentTypePilot,
		Name:          "Career Discovery",
		Description:   "In-depth interests, learning style, and strengths profile.",
		QuestionCount: len(pilot.Questions()),
	})
	respond(w, http.StatusOK, out)
}

// ─── GET /api/assessments/:assessmentType ─────────────────────────────────────

type assessmentDetail struct {
	Type      string                  `json:"type"`
	Name      string                  `json:"name"`
	MinAnswer int                     `json:"min_answer"`
	MaxAnswer int                     `json:"max_answer"`
	Domains   []assessment.Domain     `json:"domains"`
	Questions []assessment.Question   `json:"questions"`
}

// handleGetAssessment serves one definition with its questions. Scoring
// internals (bands, reverse maps) stay server-side.
func (s *Server) handleGetAssessment(w http.ResponseWriter, r *http.Request) {
	assessmentType := chi.URLParam(r, "assessmentType")
	def, ok := s.catalog.Get(assessmentType)
	if !ok {
		respondErr(w, http.StatusNotFound, "unknown assessment type")
		return
	}

	respond(w, http.StatusOK, assessmentDetail{
		Type:      def.Type,
		Name:      def.Name,
		MinAnswer: def.Scoring.MinAnswer,
		MaxAnswer: def.Scoring.MaxAnswer,
		Domains:   def.Domains,
		Questions: def.Questions,
	})
}

// ─── GET /api/pilot/questions ─────────────────────────────────────────────────

func (s *Server) handlePilotQuestions(w http.ResponseWriter, r *http.Request) {
	respond(w, http.StatusOK, map[string]any{
		"domains":   pilot.Domains(),
		"questions": pilot.Questions(),
	})
}
