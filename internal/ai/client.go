// Package ai defines the interface for AI-generated career guidance text
// and provides an Anthropic-backed implementation.
package ai

import (
	"context"

	"github.com/compasslabs/career-compass-backend/internal/pilot"
)

// GuidanceParams is the input to a GenerateGuidance call: everything the
// model needs to write a personalised report section.
type GuidanceParams struct {
	StudentName string
	GradeLevel  string
	Profile     pilot.Profile
}

// GuidanceResult is the structured output from a successful GenerateGuidance call.
type GuidanceResult struct {
	// Summary is a 2–3 sentence plain-English summary of the student's
	// profile, suitable for the report header.
	Summary string

	// GuidanceHTML is a formatted block (safe inline HTML) with concrete
	// next steps for the student. Rendered directly in the report view.
	GuidanceHTML string

	// CareerNotes maps career title → a short AI-written note on why it
	// fits this student. May be nil if the model returned no usable notes.
	CareerNotes map[string]string
}

// Advisor is the interface the worker uses to generate AI guidance.
// The concrete implementation lives in anthropic.go (or deepseek.go).
// Tests inject a stub that returns canned responses.
type Advisor interface {
	// GenerateGuidance accepts a student's scored profile and returns a
	// personalised summary, a guidance block, and per-career notes.
	//
	// Implementations must be safe to call concurrently.
	// A non-nil error means the entire call failed; the worker will finish
	// the report without AI guidance rather than fail it.
	GenerateGuidance(ctx context.Context, params GuidanceParams) (GuidanceResult, error)
}
