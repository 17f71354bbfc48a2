package api

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/compasslabs/career-compass-backend/internal/db"
)

// ─── GET /api/report/:accessToken ────────────────────────────────────────────

type reportAssessmentResponse struct {
	AssessmentType string          `json:"assessment_type"`
	Result         json.RawMessage `json:"result"`
}

type reportResponse struct {
	ReportID        string                     `json:"report_id"`
	Status          string                     `json:"status"`
	StudentName     string                     `json:"student_name,omitempty"`
	GradeLevel      string                     `json:"grade_level,omitempty"`
	HollandCode     string                     `json:"holland_code,omitempty"`
	OverallStrength string                     `json:"overall_strength,omitempty"`
	Profile         json.RawMessage            `json:"profile,omitempty"`
	GuidanceSummary string                     `json:"guidance_summary,omitempty"`
	GuidanceHTML    string                     `json:"guidance_html,omitempty"`
	Assessments     []reportAssessmentResponse `json:"assessments"`
	GeneratedAt     string                     `json:"generated_at,omitempty"`
}

// handleGetReport serves the completed career report. The access token is an
// opaque random string stored on the report row — no session authentication
// is needed. The student receives this link in their email.
//
// Returns 404 for an unknown token. Returns 202 Accepted while the report is
// still being generated (status != ready) so the frontend can poll.
func (s *Server) handleGetReport(w http.ResponseWriter, r *http.Request) {
	accessToken := chi.URLParam(r, "accessToken")
	if accessToken == "" {
		respondErr(w, http.StatusBadRequest, "missing access token")
		return
	}

	// Load the report and its student details in one query.
	row, err := s.q.GetReportByAccessToken(r.Context(), accessToken)
	if errors.Is(err, sql.ErrNoRows) {
		respondErr(w, http.StatusNotFound, "report not found")
		return
	}
	if err != nil {
		s.respondInternalErr(w, r, fmt.Errorf("get report: %w", err))
		return
	}

	// Report is still being generated — tell the client to poll.
	if row.Report.Status != db.ReportStatusReady {
		respond(w, http.StatusAccepted, map[string]string{
			"status":  string(row.Report.Status),
			"message": "report is being generated, please check back shortly",
		})
		return
	}

	// Load the per-assessment result snapshots written by the worker.
	results, err := s.q.GetAssessmentResultsByReport(r.Context(), row.Report.ID)
	if err != nil {
		s.respondInternalErr(w, r, fmt.Errorf("get assessment results: %w", err))
		return
	}

	assessments := make([]reportAssessmentResponse, 0, len(results))
	for _, res := range results {
		if !res.ResultJson.Valid {
			continue
		}
		assessments = append(assessments, reportAssessmentResponse{
			AssessmentType: res.AssessmentType,
			Result:         res.ResultJson.RawMessage,
		})
	}

	var profile json.RawMessage
	if row.Report.ProfileJson.Valid {
		profile = row.Report.ProfileJson.RawMessage
	}

	respond(w, http.StatusOK, reportResponse{
		ReportID:        row.Report.ID.String(),
		Status:          string(row.Report.Status),
		StudentName:     row.StudentName.String,
		GradeLevel:      row.GradeLevel.String,
		HollandCode:     row.Report.HollandCode.String,
		OverallStrength: row.Report.OverallStrength.String,
		Profile:         profile,
		GuidanceSummary: row.Report.GuidanceSummary.String,
		GuidanceHTML:    row.Report.GuidanceHtml.String,
		Assessments:     assessments,
		GeneratedAt:     row.Report.UpdatedAt.UTC().Format("2006-01-02T15:04:05Z"),
	})
}
