package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// anthropicClient is the concrete Advisor backed by the Anthropic Messages API.
type anthropicClient struct {
	apiKey     string
	model      string
	httpClient *http.Client
}

// NewAnthropicClient returns an Advisor that calls the Anthropic API.
//   - apiKey: your ANTHROPIC_API_KEY
//   - model:  e.g. "claude-sonnet-4-5"
func NewAnthropicClient(apiKey, model string) Advisor {
	return &anthropicClient{
		apiKey: apiKey,
		model:  model,
		httpClient: &http.Client{
			Timeout: 90 * time.Second,
		},
	}
}

// ─── ANTHROPIC API SHAPES ─────────────────────────────────────────────────────

type anthropicRequest struct {
	Model     string             `json:"model"`
	MaxTokens int                `json:"max_tokens"`
	System    string             `json:"system"`
	Messages  []anthropicMessage `json:"messages"`
}

type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type anthropicResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	Error *struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

// ─── GUIDANCE RESULT JSON ─────────────────────────────────────────────────────
// The model is prompted to respond in this exact JSON shape so we can parse
// it without regex heuristics.

type guidanceJSON struct {
	Summary      string            `json:"guidance_summary"`
	GuidanceHTML string            `json:"guidance_html"`
	CareerNotes  map[string]string `json:"career_notes"` // career title → note
}

// ─── IMPLEMENTATION ───────────────────────────────────────────────────────────

const systemPrompt = `You are a career counsellor for secondary-school students.
You will receive a student's scored assessment profile: their Holland interest code, suggested careers, learning style, work style, top strengths, and growth areas.

Your job is to produce:
1. A guidance_summary: 2-3 sentences summarising the student's profile in plain, encouraging language. Address the student directly. Be specific, never generic.
2. A guidance_html: a short HTML fragment (2-4 sentences, may use <strong>) with concrete next steps — subjects to focus on, activities to try, skills to build. No <html>, <body>, or block elements — inline only.
3. A career_notes object: for each suggested career (keyed by its exact title), write 1-2 sentences on why it fits this student's interests and strengths. Do not pad or repeat the career title in the note.

Respond ONLY with valid JSON matching this exact schema, no markdown fences, no preamble:
{
  "guidance_summary": "...",
  "guidance_html": "...",
  "career_notes": {
    "Career Title 1": "...",
    "Career Title 2": "..."
  }
}`

// GenerateGuidance calls the Anthropic API and returns AI-authored guidance
// text for the provided student profile.
func (c *anthropicClient) GenerateGuidance(ctx context.Context, params GuidanceParams) (GuidanceResult, error) {
	userPrompt := buildPrompt(params)

	reqBody := anthropicRequest{
		Model:     c.model,
		MaxTokens: 2048,
		System:    systemPrompt,
		Messages: []anthropicMessage{
			{Role: "user", Content: userPrompt},
		},
	}

	raw, err := c.call(ctx, reqBody)
	if err != nil {
		return GuidanceResult{}, err
	}

	// Strip any accidental markdown fences the model may have added.
	raw = strings.TrimSpace(raw)
	raw = strings.TrimPrefix(raw, "```json")
	raw = strings.TrimPrefix(raw, "```")
	raw = strings.TrimSuffix(raw, "```")
	raw = strings.TrimSpace(raw)

	var parsed guidanceJSON
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		return GuidanceResult{}, fmt.Errorf("ai: parse response JSON: %w (raw: %.200s)", err, raw)
	}

	return GuidanceResult{
		Summary:      parsed.Summary,
		GuidanceHTML: parsed.GuidanceHTML,
		CareerNotes:  parsed.CareerNotes,
	}, nil
}

// call sends one request to the Anthropic Messages API and returns the
// text content of the first content block.
func (c *anthropicClient) call(ctx context.Context, reqBody anthropicRequest) (string, error) {
	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("ai: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		"https://api.anthropic.com/v1/messages",
		bytes.NewReader(bodyBytes),
	)
	if err != nil {
		return "", fmt.Errorf("ai: build request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", c.apiKey)
	req.Header.Set("anthropic-version", "2023-06-01")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("ai: http request: %w", err)
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20)) // 1 MB cap
	if err != nil {
		return "", fmt.Errorf("ai: read response body: %w", err)
	}

	var parsed anthropicResponse
	if err := json.Unmarshal(respBytes, &parsed); err != nil {
		return "", fmt.Errorf("ai: unmarshal response: %w", err)
	}

	if parsed.Error != nil {
		return "", fmt.Errorf("ai: API error %s: %s", parsed.Error.Type, parsed.Error.Message)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("ai: unexpected status %d: %.200s", resp.StatusCode, string(respBytes))
	}

	for _, block := range parsed.Content {
		if block.Type == "text" {
			return block.Text, nil
		}
	}

	return "", fmt.Errorf("ai: no text content in response")
}

// buildPrompt serialises the student profile into a compact prompt string.
func buildPrompt(params GuidanceParams) string {
	var sb strings.Builder
	sb.WriteString("Here is the student's assessment profile:\n\n")

	if params.StudentName != "" {
		fmt.Fprintf(&sb, "student_name: %s\n", params.StudentName)
	}
	if params.GradeLevel != "" {
		fmt.Fprintf(&sb, "grade_level: %s\n", params.GradeLevel)
	}
	fmt.Fprintf(&sb, "holland_code: %s\n", params.Profile.HollandCode)
	fmt.Fprintf(&sb, "suggested_careers: %s\n", strings.Join(params.Profile.SuggestedCareers, ", "))
	fmt.Fprintf(&sb, "learning_style: %s\n", strings.Join(params.Profile.LearningStyle, ", "))
	fmt.Fprintf(&sb, "work_style: %s\n", strings.Join(params.Profile.WorkStyle, ", "))
	if params.Profile.OverallStrength != nil {
		fmt.Fprintf(&sb, "strongest_domain: %s (%d/100)\n",
			params.Profile.OverallStrength.Name, params.Profile.OverallStrength.Score)
	}

	sb.WriteString("\nDomain scores:\n")
	for _, s := range params.Profile.TopStrengths {
		fmt.Fprintf(&sb, "strength: %s — %d/100\n", s.Name, s.Score)
	}
	for _, g := range params.Profile.GrowthAreas {
		fmt.Fprintf(&sb, "growth_area: %s — %d/100\n", g.Name, g.Score)
	}

	return sb.String()
}
