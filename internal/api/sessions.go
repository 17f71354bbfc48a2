package api

import (
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/compasslabs/career-compass-backend/internal/db"
)

// ─── POST /api/session ────────────────────────────────────────────────────────

type createSessionRequest struct {
	// Profile fields are optional at creation — the student fills them in on
	// the welcome step.
	StudentName string `json:"student_name"`
	GradeLevel  string `json:"grade_level"`
}

type createSessionResponse struct {
	SessionID string `json:"session_id"`
	AnonToken string `json:"anon_token"`
}

// handleCreateSession creates an anonymous session for a new visitor.
// Called once when the assessment page first loads.
//
// The anon_token is returned to the browser and stored in sessionStorage.
// It is sent as X-Anon-Token on all subsequent session-scoped requests.
func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var req createSessionRequest
	if !decode(w, r, &req) {
		return
	}

	// Generate a cryptographically random token. 32 bytes → 64 hex chars.
	tokenBytes := make([]byte, 32)
	if _, err := rand.Read(tokenBytes); err != nil {
		s.respondInternalErr(w, r, fmt.Errorf("generate anon token: %w", err))
		return
	}
	anonToken := hex.EncodeToString(tokenBytes)

	session, err := s.q.CreateSession(r.Context(), db.CreateSessionParams{
		AnonToken:   anonToken,
		StudentName: nullString(req.StudentName),
		GradeLevel:  nullString(req.GradeLevel),
	})
	if err != nil {
		s.respondInternalErr(w, r, fmt.Errorf("create session: %w", err))
		return
	}

	respond(w, http.StatusCreated, createSessionResponse{
		SessionID: session.ID.String(),
		AnonToken: anonToken,
	})
}

// ─── PATCH /api/session/:sessionID/profile ────────────────────────────────────

type updateProfileRequest struct {
	StudentName string `json:"student_name"`
	GradeLevel  string `json:"grade_level"`
}

type updateProfileResponse struct {
	SessionID   string `json:"session_id"`
	StudentName string `json:"student_name"`
	GradeLevel  string `json:"grade_level"`
}

// handleUpdateProfile persists the student details from the welcome step.
// The route is protected by requireAnonToken middleware, so session_id in the
// URL is already verified to belong to the token sender.
func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	sessionID, err := parseUUID(chi.URLParam(r, "sessionID"))
	if err != nil {
		respondErr(w, http.StatusBadRequest, "invalid session_id")
		return
	}

	var req updateProfileRequest
	if !decode(w, r, &req) {
		return
	}

	session, err := s.q.UpdateSessionProfile(r.Context(), db.UpdateSessionProfileParams{
		ID:          sessionID,
		StudentName: nullString(req.StudentName),
		GradeLevel:  nullString(req.GradeLevel),
	})
	if err != nil {
		s.respondInternalErr(w, r, fmt.Errorf("update profile: %w", err))
		return
	}

	respond(w, http.StatusOK, updateProfileResponse{
		SessionID:   session.ID.String(),
		StudentName: session.StudentName.String,
		GradeLevel:  session.GradeLevel.String,
	})
}

// ─── HELPERS ─────────────────────────────────────────────────────────────────

// nullString converts a Go string to sql.NullString. Empty string → NULL.
func nullString(s string) sql.NullString {
	s = strings.TrimSpace(s)
	return sql.NullString{String: s, Valid: s != ""}
}

// parseUUID wraps uuid.Parse with a cleaner error.
func parseUUID(s string) (uuidType, error) {
	return uuidParse(s)
}
