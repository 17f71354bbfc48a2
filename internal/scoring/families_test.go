package scoring_test

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/compasslabs/career-compass-backend/internal/assessment"
	"github.com/compasslabs/career-compass-backend/internal/scoring"
)

// ─── Spectrum family ─────────────────────────────────────────────────────────

func spectrumDef(t *testing.T) *assessment.Definition {
	t.Helper()
	def := &assessment.Definition{
		Type: "spectrum_fixture",
		Name: "Spectrum",
		Domains: []assessment.Domain{
			{Code: "ANL", Name: "Analytical", Color: "#000000", Opposite: "Intuitive"},
		},
		Questions: []assessment.Question{
			{ID: "c1", Text: "one", Domain: "ANL"},
			{ID: "c2", Text: "two", Domain: "ANL"},
			{ID: "c3", Text: "three", Domain: "ANL", Reverse: true},
		},
		Scoring: assessment.Scoring{
			Method:         assessment.MethodSpectrum,
			ReverseScoring: map[string]int{"1": 5, "2": 4, "3": 3, "4": 2, "5": 1},
			MinScore:       3,
			MaxScore:       15,
			Interpretation: map[string]assessment.Bands{
				"ANL": {
					High: &assessment.Band{Min: 12, Max: 15, Label: "Strongly Analytical"},
					Mid:  &assessment.Band{Min: 8, Max: 11, Label: "Balanced"},
					Low:  &assessment.Band{Min: 3, Max: 7, Label: "Strongly Intuitive"},
				},
			},
		},
	}
	if err := def.Validate(); err != nil {
		t.Fatalf("fixture invalid: %v", err)
	}
	return def
}

func TestSpectrum_PercentAndLabel(t *testing.T) {
	def := spectrumDef(t)
	tests := []struct {
		name        string
		responses   scoring.Responses
		wantScore   int
		wantPercent float64
		wantLabel   string
	}{
		{"floor", scoring.Responses{"c1": 1, "c2": 1, "c3": 5}, 3, 0, "Strongly Intuitive"},
		{"ceiling", scoring.Responses{"c1": 5, "c2": 5, "c3": 1}, 15, 100, "Strongly Analytical"},
		{"midpoint", scoring.Responses{"c1": 3, "c2": 3, "c3": 3}, 9, 50, "Balanced"},
		{"unrounded", scoring.Responses{"c1": 4, "c2": 3, "c3": 3}, 10, 100.0 * 7 / 12, "Balanced"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := scoring.ScoreSpectrum(def, tt.responses)
			if len(res.Styles) != 1 {
				t.Fatalf("expected 1 style, got %d", len(res.Styles))
			}
			s := res.Styles[0]
			if s.Score != tt.wantScore {
				t.Errorf("score=%d, want %d", s.Score, tt.wantScore)
			}
			if math.Abs(s.Percent-tt.wantPercent) > 1e-9 {
				t.Errorf("percent=%v, want %v", s.Percent, tt.wantPercent)
			}
			if s.Band != tt.wantLabel {
				t.Errorf("band=%q, want %q", s.Band, tt.wantLabel)
			}
			if s.Opposite != "Intuitive" {
				t.Errorf("opposite=%q, want Intuitive", s.Opposite)
			}
		})
	}
}

// ─── Category-mean family ───────────────────────────────────────────────────

func TestCategoryMean_GroupsAndAverages(t *testing.T) {
	def := &assessment.Definition{
		Type: "skills_fixture",
		Name: "Skills",
		Domains: []assessment.Domain{
			{Code: "COMM", Name: "Communication", Color: "#000000", Category: "interpersonal"},
			{Code: "TEAM", Name: "Collaboration", Color: "#000000", Category: "interpersonal"},
			{Code: "ORG", Name: "Organisation", Color: "#000000", Category: "practical"},
		},
		Questions: []assessment.Question{
			{ID: "k1", Text: "one", Domain: "COMM"},
			{ID: "k2", Text: "two", Domain: "TEAM"},
			{ID: "k3", Text: "three", Domain: "ORG"},
		},
		Scoring: assessment.Scoring{
			Method: assessment.MethodCategoryMean,
			Bands: &assessment.Bands{
				High: &assessment.Band{Min: 4, Max: 5, Label: "Strength"},
				Mid:  &assessment.Band{Min: 3, Max: 3, Label: "Developing"},
				Low:  &assessment.Band{Min: 1, Max: 2, Label: "Growth Area"},
			},
		},
	}
	if err := def.Validate(); err != nil {
		t.Fatalf("fixture invalid: %v", err)
	}

	// COMM=5, TEAM=2 → interpersonal mean 3.5; ORG=4 → practical mean 4.0.
	res := scoring.ScoreCategoryMean(def, scoring.Responses{"k1": 5, "k2": 2, "k3": 4})

	if len(res.Categories) != 2 {
		t.Fatalf("expected 2 categories, got %d", len(res.Categories))
	}
	inter, prac := res.Categories[0], res.Categories[1]
	if inter.Category != "interpersonal" || inter.Average != 3.5 || inter.Domains != 2 {
		t.Errorf("interpersonal: %+v", inter)
	}
	if prac.Category != "practical" || prac.Average != 4.0 || prac.Domains != 1 {
		t.Errorf("practical: %+v", prac)
	}
}

func TestCategoryMean_RoundsToOneDecimal(t *testing.T) {
	def := &assessment.Definition{
		Type: "skills_round",
		Name: "Skills",
		Domains: []assessment.Domain{
			{Code: "A", Name: "A", Color: "#000000", Category: "cat"},
			{Code: "B", Name: "B", Color: "#000000", Category: "cat"},
			{Code: "C", Name: "C", Color: "#000000", Category: "cat"},
		},
		Questions: []assessment.Question{
			{ID: "q1", Text: "a", Domain: "A"},
			{ID: "q2", Text: "b", Domain: "B"},
			{ID: "q3", Text: "c", Domain: "C"},
		},
		Scoring: assessment.Scoring{
			Method: assessment.MethodCategoryMean,
			Bands: &assessment.Bands{
				High: &assessment.Band{Min: 4, Max: 5, Label: "High"},
				Mid:  &assessment.Band{Min: 3, Max: 3, Label: "Mid"},
				Low:  &assessment.Band{Min: 1, Max: 2, Label: "Low"},
			},
		},
	}
	if err := def.Validate(); err != nil {
		t.Fatalf("fixture invalid: %v", err)
	}

	// (5+5+4)/3 = 4.666… → 4.7
	res := scoring.ScoreCategoryMean(def, scoring.Responses{"q1": 5, "q2": 5, "q3": 4})
	if got := res.Categories[0].Average; got != 4.7 {
		t.Errorf("average=%v, want 4.7", got)
	}
}

// ─── Scalar family ───────────────────────────────────────────────────────────

func scalarDef(t *testing.T) *assessment.Definition {
	t.Helper()
	def := &assessment.Definition{
		Type: "scalar_fixture",
		Name: "Scalar",
		Domains: []assessment.Domain{
			{Code: "SD", Name: "Social Desirability", Color: "#000000"},
		},
		Questions: []assessment.Question{
			{ID: "d1", Text: "one", Domain: "SD"},
			{ID: "d2", Text: "two", Domain: "SD"},
			{ID: "d3", Text: "three", Domain: "SD", Reverse: true},
		},
		Scoring: assessment.Scoring{
			Method:         assessment.MethodScalar,
			ReverseScoring: map[string]int{"1": 5, "2": 4, "3": 3, "4": 2, "5": 1},
			Thresholds: []assessment.Threshold{
				{Min: 13, Label: "Image-Conscious Responding"},
				{Min: 10, Label: "Somewhat Elevated"},
			},
			DefaultLabel: "Authentic",
		},
	}
	if err := def.Validate(); err != nil {
		t.Fatalf("fixture invalid: %v", err)
	}
	return def
}

func TestScalar_ThresholdLadder(t *testing.T) {
	def := scalarDef(t)
	tests := []struct {
		name      string
		responses scoring.Responses
		wantTotal int
		wantLabel string
	}{
		{"maxed out", scoring.Responses{"d1": 5, "d2": 5, "d3": 1}, 15, "Image-Conscious Responding"},
		{"at high threshold", scoring.Responses{"d1": 5, "d2": 5, "d3": 3}, 13, "Image-Conscious Responding"},
		{"middle", scoring.Responses{"d1": 4, "d2": 4, "d3": 4}, 10, "Somewhat Elevated"},
		{"authentic", scoring.Responses{"d1": 3, "d2": 3, "d3": 3}, 9, "Authentic"},
		{"empty", scoring.Responses{}, 0, "Authentic"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := scoring.ScoreScalar(def, tt.responses)
			if res.TotalScore != tt.wantTotal {
				t.Errorf("total=%d, want %d", res.TotalScore, tt.wantTotal)
			}
			if res.Interpretation != tt.wantLabel {
				t.Errorf("interpretation=%q, want %q", res.Interpretation, tt.wantLabel)
			}
		})
	}
}

// ─── Percentage family ───────────────────────────────────────────────────────

func percentageDef(t *testing.T) *assessment.Definition {
	t.Helper()
	def := &assessment.Definition{
		Type: "execution_fixture",
		Name: "Execution",
		Domains: []assessment.Domain{
			{Code: "GOAL", Name: "Goal Setting", Color: "#000000"},
			{Code: "TIME", Name: "Time Management", Color: "#000000"},
		},
		Questions: []assessment.Question{
			{ID: "x1", Text: "one", Domain: "GOAL"},
			{ID: "x2", Text: "two", Domain: "GOAL"},
			{ID: "x3", Text: "three", Domain: "TIME"},
			{ID: "x4", Text: "four", Domain: "TIME"},
		},
		Scoring: assessment.Scoring{
			Method:   assessment.MethodPercentage,
			MinScore: 2,
			MaxScore: 10,
			Bands: &assessment.Bands{
				High: &assessment.Band{Min: 8, Max: 10, Label: "Ready"},
				Mid:  &assessment.Band{Min: 5, Max: 7, Label: "Developing"},
				Low:  &assessment.Band{Min: 2, Max: 4, Label: assessment.NeedsFocusLabel},
			},
		},
	}
	if err := def.Validate(); err != nil {
		t.Fatalf("fixture invalid: %v", err)
	}
	return def
}

func TestPercentage_ExecutionScore(t *testing.T) {
	// GOAL=10, TIME=5 → 15/20 = 75.
	def := percentageDef(t)
	res := scoring.ScorePercentage(def, scoring.Responses{"x1": 5, "x2": 5, "x3": 2, "x4": 3})

	if res.ExecutionScore != 75 {
		t.Errorf("execution score=%d, want 75", res.ExecutionScore)
	}
	if len(res.AreasNeedingFocus) != 0 {
		t.Errorf("unexpected focus areas: %+v", res.AreasNeedingFocus)
	}
}

func TestPercentage_AreasNeedingFocusByLabel(t *testing.T) {
	// TIME total 3 falls in the low band and must be flagged by its label.
	def := percentageDef(t)
	res := scoring.ScorePercentage(def, scoring.Responses{"x1": 5, "x2": 5, "x3": 1, "x4": 2})

	if len(res.AreasNeedingFocus) != 1 {
		t.Fatalf("focus areas=%d, want 1", len(res.AreasNeedingFocus))
	}
	if res.AreasNeedingFocus[0].Code != "TIME" {
		t.Errorf("focus area=%s, want TIME", res.AreasNeedingFocus[0].Code)
	}
	if res.AreasNeedingFocus[0].Band != assessment.NeedsFocusLabel {
		t.Errorf("focus band=%q, want %q", res.AreasNeedingFocus[0].Band, assessment.NeedsFocusLabel)
	}
}

func TestPercentage_EmptyResponses(t *testing.T) {
	def := percentageDef(t)
	res := scoring.ScorePercentage(def, scoring.Responses{})

	if res.ExecutionScore != 0 {
		t.Errorf("execution score=%d, want 0", res.ExecutionScore)
	}
	// Both zero-score domains classify low, hence flagged.
	if len(res.AreasNeedingFocus) != 2 {
		t.Errorf("focus areas=%d, want 2", len(res.AreasNeedingFocus))
	}
}

// ─── Dispatcher ──────────────────────────────────────────────────────────────

func TestScore_DispatchesEveryCatalogDefinition(t *testing.T) {
	catalog, err := assessment.Load()
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}

	for _, def := range catalog.List() {
		t.Run(def.Type, func(t *testing.T) {
			responses := scoring.Responses{}
			for i, q := range def.Questions {
				responses[q.ID] = 1 + i%5
			}

			result, err := scoring.Score(def, responses)
			if err != nil {
				t.Fatalf("score: %v", err)
			}

			// Every result must be JSON-serializable for the result snapshot.
			if _, err := json.Marshal(result); err != nil {
				t.Errorf("result not serializable: %v", err)
			}
		})
	}
}

func TestScore_UnknownMethod(t *testing.T) {
	def := &assessment.Definition{
		Type:    "bogus",
		Scoring: assessment.Scoring{Method: "mystery"},
	}
	if _, err := scoring.Score(def, scoring.Responses{}); err == nil {
		t.Error("expected error for unknown method")
	}
}
