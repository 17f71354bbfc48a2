package scoring_test

import (
	"testing"

	"github.com/compasslabs/career-compass-backend/internal/assessment"
	"github.com/compasslabs/career-compass-backend/internal/scoring"
)

// reverse15 is the canonical 5-point mirror map.
func reverse15() map[string]int {
	return map[string]int{"1": 5, "2": 4, "3": 3, "4": 2, "5": 1}
}

// twoDomainDef is the two-domain fixture from the engine's reference
// scenario: domains A (straight) and B (reverse), two questions each, bands
// high 8–10 / low 2–4.
func twoDomainDef(t *testing.T) *assessment.Definition {
	t.Helper()
	def := &assessment.Definition{
		Type: "fixture",
		Name: "Fixture",
		Domains: []assessment.Domain{
			{Code: "A", Name: "Alpha", Color: "#111111"},
			{Code: "B", Name: "Beta", Color: "#222222"},
		},
		Questions: []assessment.Question{
			{ID: "q1", Text: "a one", Domain: "A"},
			{ID: "q2", Text: "a two", Domain: "A"},
			{ID: "q3", Text: "b one", Domain: "B", Reverse: true},
			{ID: "q4", Text: "b two", Domain: "B", Reverse: true},
		},
		Scoring: assessment.Scoring{
			Method:         assessment.MethodSum,
			MinAnswer:      1,
			MaxAnswer:      5,
			ReverseScoring: reverse15(),
			ItemsPerDomain: 2,
			MinScore:       2,
			MaxScore:       10,
			Bands: &assessment.Bands{
				High: &assessment.Band{Min: 8, Max: 10, Label: "High"},
				Mid:  &assessment.Band{Min: 5, Max: 7, Label: "Moderate"},
				Low:  &assessment.Band{Min: 2, Max: 4, Label: "Low"},
			},
		},
	}
	if err := def.Validate(); err != nil {
		t.Fatalf("fixture definition invalid: %v", err)
	}
	return def
}

// domains builds a bare DomainScore slice for deriver tests.
func domains(scores ...int) []scoring.DomainScore {
	out := make([]scoring.DomainScore, len(scores))
	for i, s := range scores {
		out[i] = scoring.DomainScore{Code: string(rune('A' + i)), Score: s}
	}
	return out
}

// ─── AggregateDomains ────────────────────────────────────────────────────────

func TestAggregateDomains_ReferenceScenario(t *testing.T) {
	// q1,q2 → A straight 5s; q3,q4 → B reversed 1s. Both domains land at 10.
	def := twoDomainDef(t)
	res := scoring.ScoreSum(def, scoring.Responses{"q1": 5, "q2": 5, "q3": 1, "q4": 1})

	if len(res.Domains) != 2 {
		t.Fatalf("expected 2 domains, got %d", len(res.Domains))
	}
	for _, d := range res.Domains {
		if d.Score != 10 {
			t.Errorf("domain %s: score=%d, want 10", d.Code, d.Score)
		}
		if d.Band != "High" {
			t.Errorf("domain %s: band=%q, want High", d.Code, d.Band)
		}
		if d.ItemCount != 2 {
			t.Errorf("domain %s: item count=%d, want 2", d.Code, d.ItemCount)
		}
	}
}

func TestAggregateDomains_SparseResponses(t *testing.T) {
	// Only q1 answered: A gets its single answer, B stays at zero with the
	// low band (0 ≤ 4), and neither is padded with phantom answers.
	def := twoDomainDef(t)
	res := scoring.ScoreSum(def, scoring.Responses{"q1": 5})

	a, b := res.Domains[0], res.Domains[1]
	if a.Score != 5 || a.ItemCount != 1 {
		t.Errorf("A: score=%d items=%d, want 5/1", a.Score, a.ItemCount)
	}
	if a.Band != "Moderate" {
		t.Errorf("A: band=%q, want Moderate", a.Band)
	}
	if b.Score != 0 || b.ItemCount != 0 {
		t.Errorf("B: score=%d items=%d, want 0/0", b.Score, b.ItemCount)
	}
	if b.Band != "Low" {
		t.Errorf("B: band=%q, want Low", b.Band)
	}
}

func TestAggregateDomains_EmptyResponses(t *testing.T) {
	def := twoDomainDef(t)
	res := scoring.ScoreSum(def, scoring.Responses{})

	for _, d := range res.Domains {
		if d.Score != 0 || d.ItemCount != 0 {
			t.Errorf("domain %s: score=%d items=%d, want zeros", d.Code, d.Score, d.ItemCount)
		}
	}
}

func TestAggregateDomains_Deterministic(t *testing.T) {
	def := twoDomainDef(t)
	responses := scoring.Responses{"q1": 3, "q2": 4, "q3": 2, "q4": 5}

	first := scoring.ScoreSum(def, responses)
	second := scoring.ScoreSum(def, responses)

	for i := range first.Domains {
		if first.Domains[i] != second.Domains[i] {
			t.Errorf("domain %d differs between calls: %+v vs %+v",
				i, first.Domains[i], second.Domains[i])
		}
	}
}

func TestAggregateDomains_OutOfRangeAnswerSkipped(t *testing.T) {
	// A 0 or 6 from a malformed client is treated as unanswered, not
	// normalized into the total.
	def := twoDomainDef(t)
	base := scoring.ScoreSum(def, scoring.Responses{"q1": 5})
	noisy := scoring.ScoreSum(def, scoring.Responses{"q1": 5, "q2": 0, "q3": 6})

	for i := range base.Domains {
		if base.Domains[i].Score != noisy.Domains[i].Score ||
			base.Domains[i].ItemCount != noisy.Domains[i].ItemCount {
			t.Errorf("domain %s changed by out-of-range answers: %+v vs %+v",
				base.Domains[i].Code, base.Domains[i], noisy.Domains[i])
		}
	}
}

func TestReverseScoring_MirrorEquivalence(t *testing.T) {
	// All-1s on the all-reverse domain must equal all-5s on the straight
	// domain.
	def := twoDomainDef(t)
	res := scoring.ScoreSum(def, scoring.Responses{"q1": 5, "q2": 5, "q3": 1, "q4": 1})

	if res.Domains[0].Score != res.Domains[1].Score {
		t.Errorf("mirror domains diverged: A=%d B=%d",
			res.Domains[0].Score, res.Domains[1].Score)
	}
}

// ─── Band classification ─────────────────────────────────────────────────────

func TestBands_Monotonic(t *testing.T) {
	// Walking the score from min to max must never demote the band.
	def := twoDomainDef(t)
	rank := map[string]int{"Low": 0, "Moderate": 1, "High": 2}

	prev := -1
	for raw := 1; raw <= 5; raw++ {
		res := scoring.ScoreSum(def, scoring.Responses{"q1": raw, "q2": raw})
		got := rank[res.Domains[0].Band]
		if got < prev {
			t.Errorf("band demoted at raw=%d: rank %d after %d", raw, got, prev)
		}
		prev = got
	}
}

func TestBands_HighCheckedBeforeLow(t *testing.T) {
	def := twoDomainDef(t)
	tests := []struct {
		score map[string]int
		want  string
	}{
		{map[string]int{"q1": 5, "q2": 5}, "High"},     // 10 — high floor
		{map[string]int{"q1": 4, "q2": 4}, "High"},     // 8 == high.min
		{map[string]int{"q1": 4, "q2": 3}, "Moderate"}, // 7 — between
		{map[string]int{"q1": 2, "q2": 2}, "Low"},      // 4 == low.max
		{map[string]int{"q1": 1, "q2": 1}, "Low"},      // 2 — floor
	}
	for _, tt := range tests {
		res := scoring.ScoreSum(def, tt.score)
		if got := res.Domains[0].Band; got != tt.want {
			t.Errorf("responses %v: band=%q, want %q", tt.score, got, tt.want)
		}
	}
}

// ─── Composite derivers ──────────────────────────────────────────────────────

func TestHollandCode_DescendingOrder(t *testing.T) {
	ds := domains(3, 9, 1, 7, 5, 2) // A=3 B=9 C=1 D=7 E=5 F=2
	if got := scoring.HollandCode(ds); got != "BDE" {
		t.Errorf("code=%q, want BDE", got)
	}
}

func TestHollandCode_TieKeepsDefinitionOrder(t *testing.T) {
	// B and C tie; the stable sort keeps B (earlier in the definition) ahead.
	ds := domains(1, 8, 8, 9)
	if got := scoring.HollandCode(ds); got != "DBC" {
		t.Errorf("code=%q, want DBC", got)
	}
}

func TestHollandCode_FewerThanThreeDomains(t *testing.T) {
	ds := domains(4, 2)
	if got := scoring.HollandCode(ds); got != "AB" {
		t.Errorf("code=%q, want AB", got)
	}
}

func TestTopRank_Bounds(t *testing.T) {
	def := &assessment.Definition{
		Type: "ranked",
		Name: "Ranked",
		Domains: []assessment.Domain{
			{Code: "X", Name: "X", Color: "#000000"},
			{Code: "Y", Name: "Y", Color: "#000000"},
		},
		Questions: []assessment.Question{
			{ID: "r1", Text: "x", Domain: "X"},
			{ID: "r2", Text: "y", Domain: "Y"},
		},
		Scoring: assessment.Scoring{
			Method:   assessment.MethodTopRank,
			TopCount: 3,
			Bands: &assessment.Bands{
				High: &assessment.Band{Min: 4, Max: 5, Label: "High"},
				Mid:  &assessment.Band{Min: 3, Max: 3, Label: "Moderate"},
				Low:  &assessment.Band{Min: 1, Max: 2, Label: "Low"},
			},
		},
	}
	if err := def.Validate(); err != nil {
		t.Fatalf("fixture invalid: %v", err)
	}

	res := scoring.ScoreTopRank(def, scoring.Responses{"r1": 5, "r2": 3})
	// Requested 3, only 2 domains exist — no padding, no error.
	if len(res.Top) != 2 {
		t.Fatalf("top length=%d, want 2", len(res.Top))
	}
	if res.Top[0].Code != "X" || res.Top[1].Code != "Y" {
		t.Errorf("top order wrong: %s %s", res.Top[0].Code, res.Top[1].Code)
	}
}

func TestPrimary_SelectsHighestAndExposesRanking(t *testing.T) {
	def := twoDomainDef(t)
	def.Scoring.Method = assessment.MethodPrimary

	res := scoring.ScorePrimary(def, scoring.Responses{"q1": 2, "q2": 2, "q3": 1, "q4": 1})
	// A=4, B=10 (reversed 1s).
	if res.Primary == nil {
		t.Fatal("primary is nil")
	}
	if res.Primary.Code != "B" {
		t.Errorf("primary=%s, want B", res.Primary.Code)
	}
	if len(res.Ranked) != 2 || res.Ranked[0].Code != "B" || res.Ranked[1].Code != "A" {
		t.Errorf("ranked order wrong: %+v", res.Ranked)
	}
}
