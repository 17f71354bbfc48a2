package scoring

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/compasslabs/career-compass-backend/internal/assessment"
)

// Every result type below is a plain JSON-serializable struct with a
// Timestamp set at computation time. The structs are what the API persists
// as the result snapshot, so field names are part of the wire contract.

// PersonalityResult is the sum-and-band output shared by the personality
// family.
type PersonalityResult struct {
	Type      string        `json:"type"`
	Domains   []DomainScore `json:"domains"`
	Timestamp time.Time     `json:"timestamp"`
}

// RankedResult adds a top-N slice to the domain breakdown (values,
// intelligences).
type RankedResult struct {
	Type      string        `json:"type"`
	Domains   []DomainScore `json:"domains"`
	Top       []DomainScore `json:"top"`
	Timestamp time.Time     `json:"timestamp"`
}

// HollandResult carries the three-letter Holland Code alongside the full
// domain breakdown.
type HollandResult struct {
	Type        string        `json:"type"`
	Domains     []DomainScore `json:"domains"`
	HollandCode string        `json:"holland_code"`
	Timestamp   time.Time     `json:"timestamp"`
}

// StressResult exposes the full descending-sorted list plus the single
// primary response style. Primary is nil only for an empty domain list.
type StressResult struct {
	Type      string        `json:"type"`
	Ranked    []DomainScore `json:"ranked"`
	Primary   *DomainScore  `json:"primary,omitempty"`
	Timestamp time.Time     `json:"timestamp"`
}

// SpectrumScore is a DomainScore positioned between two poles. Percent is
// the unrounded position in [0,100] used for slider rendering.
type SpectrumScore struct {
	DomainScore
	Opposite string  `json:"opposite"`
	Percent  float64 `json:"percent"`
}

// CognitiveResult is the spectrum-family output.
type CognitiveResult struct {
	Type      string          `json:"type"`
	Styles    []SpectrumScore `json:"styles"`
	Timestamp time.Time       `json:"timestamp"`
}

// EnvironmentResult is the interpreted-family output: per-domain labels from
// the domain-keyed interpretation map, no spectrum positioning.
type EnvironmentResult struct {
	Type      string        `json:"type"`
	Domains   []DomainScore `json:"domains"`
	Timestamp time.Time     `json:"timestamp"`
}

// CategoryScore is the per-category average for the skills family. Average
// is the arithmetic mean of the member domains' scores (not weighted by item
// count), rounded to one decimal place.
type CategoryScore struct {
	Category string  `json:"category"`
	Average  float64 `json:"average"`
	Domains  int     `json:"domains"`
}

// SkillsResult groups the domain breakdown into category averages.
type SkillsResult struct {
	Type       string          `json:"type"`
	Domains    []DomainScore   `json:"domains"`
	Categories []CategoryScore `json:"categories"`
	Timestamp  time.Time       `json:"timestamp"`
}

// ScalarResult is the social-desirability output: one summed scalar and its
// interpretation, no per-domain breakdown.
type ScalarResult struct {
	Type           string    `json:"type"`
	TotalScore     int       `json:"total_score"`
	ItemCount      int       `json:"item_count"`
	Interpretation string    `json:"interpretation"`
	Timestamp      time.Time `json:"timestamp"`
}

// ExecutionResult is the percentage-of-maximum output. ExecutionScore is
// round(total / (domains × maxPerDomain) × 100); AreasNeedingFocus lists the
// domains whose band label is exactly assessment.NeedsFocusLabel.
type ExecutionResult struct {
	Type              string        `json:"type"`
	Domains           []DomainScore `json:"domains"`
	ExecutionScore    int           `json:"execution_score"`
	AreasNeedingFocus []DomainScore `json:"areas_needing_focus"`
	Timestamp         time.Time     `json:"timestamp"`
}

// ─── PER-FAMILY SCORERS ──────────────────────────────────────────────────────

// ScoreSum is the plain normalize → aggregate → classify pipeline.
func ScoreSum(def *assessment.Definition, responses Responses) PersonalityResult {
	domains := AggregateDomains(def, responses)
	classifyDomains(domains, def.Scoring.Bands)
	return PersonalityResult{
		Type:      def.Type,
		Domains:   domains,
		Timestamp: time.Now().UTC(),
	}
}

// ScoreTopRank adds the top-N composite. N comes from the definition
// (default 3); fewer domains than N returns all of them.
func ScoreTopRank(def *assessment.Definition, responses Responses) RankedResult {
	domains := AggregateDomains(def, responses)
	classifyDomains(domains, def.Scoring.Bands)

	n := def.Scoring.TopCount
	if n <= 0 {
		n = 3
	}
	return RankedResult{
		Type:      def.Type,
		Domains:   domains,
		Top:       topN(rankDesc(domains), n),
		Timestamp: time.Now().UTC(),
	}
}

// ScoreHolland derives the three-letter code from the top three domains by
// descending score. Equal scores keep definition order (stable sort), so the
// code is deterministic for any input.
func ScoreHolland(def *assessment.Definition, responses Responses) HollandResult {
	domains := AggregateDomains(def, responses)
	classifyDomains(domains, def.Scoring.Bands)
	return HollandResult{
		Type:        def.Type,
		Domains:     domains,
		HollandCode: HollandCode(domains),
		Timestamp:   time.Now().UTC(),
	}
}

// HollandCode concatenates the codes of the top three domains by descending
// score. Exposed separately because the pilot profile reuses it.
func HollandCode(domains []DomainScore) string {
	ranked := topN(rankDesc(domains), 3)
	var b strings.Builder
	for _, d := range ranked {
		b.WriteString(d.Code)
	}
	return b.String()
}

// ScorePrimary selects the dominant domain (stress family). The full ranked
// list is returned alongside so callers can show secondary styles.
func ScorePrimary(def *assessment.Definition, responses Responses) StressResult {
	domains := AggregateDomains(def, responses)
	classifyDomains(domains, def.Scoring.Bands)

	ranked := rankDesc(domains)
	res := StressResult{
		Type:      def.Type,
		Ranked:    ranked,
		Timestamp: time.Now().UTC(),
	}
	if len(ranked) > 0 {
		primary := ranked[0]
		res.Primary = &primary
	}
	return res
}

// ScoreSpectrum classifies each domain with its own interpretation bands and
// positions it between its poles as an unrounded percentage.
func ScoreSpectrum(def *assessment.Definition, responses Responses) CognitiveResult {
	domains := AggregateDomains(def, responses)
	classifyInterpreted(domains, def.Scoring.Interpretation)

	styles := make([]SpectrumScore, len(domains))
	for i, d := range domains {
		opposite := ""
		if dom, ok := def.Domain(d.Code); ok {
			opposite = dom.Opposite
		}
		styles[i] = SpectrumScore{
			DomainScore: d,
			Opposite:    opposite,
			Percent:     spectrumPercent(d.Score, def.Scoring.MinScore, def.Scoring.MaxScore),
		}
	}
	return CognitiveResult{
		Type:      def.Type,
		Styles:    styles,
		Timestamp: time.Now().UTC(),
	}
}

// ScoreInterpreted classifies each domain with its own interpretation bands,
// without spectrum positioning (environment family).
func ScoreInterpreted(def *assessment.Definition, responses Responses) EnvironmentResult {
	domains := AggregateDomains(def, responses)
	classifyInterpreted(domains, def.Scoring.Interpretation)
	return EnvironmentResult{
		Type:      def.Type,
		Domains:   domains,
		Timestamp: time.Now().UTC(),
	}
}

// ScoreCategoryMean groups domains by their category and averages each
// group's scores (simple mean, one decimal place).
func ScoreCategoryMean(def *assessment.Definition, responses Responses) SkillsResult {
	domains := AggregateDomains(def, responses)
	classifyDomains(domains, def.Scoring.Bands)

	// Category order follows first appearance in the domain list.
	var categoryOrder []string
	totals := make(map[string]int)
	counts := make(map[string]int)
	for _, d := range domains {
		if _, seen := totals[d.Category]; !seen {
			categoryOrder = append(categoryOrder, d.Category)
		}
		totals[d.Category] += d.Score
		counts[d.Category]++
	}

	categories := make([]CategoryScore, 0, len(categoryOrder))
	for _, cat := range categoryOrder {
		mean := float64(totals[cat]) / float64(counts[cat])
		categories = append(categories, CategoryScore{
			Category: cat,
			Average:  math.Round(mean*10) / 10,
			Domains:  counts[cat],
		})
	}

	return SkillsResult{
		Type:       def.Type,
		Domains:    domains,
		Categories: categories,
		Timestamp:  time.Now().UTC(),
	}
}

// ScoreScalar sums every normalized answer into one scalar and classifies it
// through the ordered threshold ladder: the first threshold the score
// reaches wins, otherwise the default label applies.
func ScoreScalar(def *assessment.Definition, responses Responses) ScalarResult {
	total, count := 0, 0
	for _, q := range def.Questions {
		raw, answered := responses[q.ID]
		if !answered || !inRange(def, raw) {
			continue
		}
		total += normalized(def, q, raw)
		count++
	}

	label := def.Scoring.DefaultLabel
	for _, t := range def.Scoring.Thresholds {
		if total >= t.Min {
			label = t.Label
			break
		}
	}

	return ScalarResult{
		Type:           def.Type,
		TotalScore:     total,
		ItemCount:      count,
		Interpretation: label,
		Timestamp:      time.Now().UTC(),
	}
}

// ScorePercentage computes the execution-readiness composite: the grand
// total as a rounded percentage of the maximum achievable across all
// domains, plus the list of domains classified as needing focus. The filter
// is a label-string comparison, which is why the validator pins the low-band
// label for this method.
func ScorePercentage(def *assessment.Definition, responses Responses) ExecutionResult {
	domains := AggregateDomains(def, responses)
	classifyDomains(domains, def.Scoring.Bands)

	total := 0
	for _, d := range domains {
		total += d.Score
	}

	score := 0
	if max := len(domains) * def.Scoring.MaxScore; max > 0 {
		score = int(math.Round(float64(total) / float64(max) * 100))
	}

	focus := make([]DomainScore, 0)
	for _, d := range domains {
		if d.Band == assessment.NeedsFocusLabel {
			focus = append(focus, d)
		}
	}

	return ExecutionResult{
		Type:              def.Type,
		Domains:           domains,
		ExecutionScore:    score,
		AreasNeedingFocus: focus,
		Timestamp:         time.Now().UTC(),
	}
}

// ─── DISPATCHER ──────────────────────────────────────────────────────────────

// Score routes a definition to its family scorer by scoring method. The
// returned value is always one of the result structs above and always
// JSON-serializable. The only error is an unknown method, which a validated
// catalog cannot produce.
func Score(def *assessment.Definition, responses Responses) (any, error) {
	switch def.Scoring.Method {
	case assessment.MethodSum:
		return ScoreSum(def, responses), nil
	case assessment.MethodTopRank:
		return ScoreTopRank(def, responses), nil
	case assessment.MethodHollandCode:
		return ScoreHolland(def, responses), nil
	case assessment.MethodPrimary:
		return ScorePrimary(def, responses), nil
	case assessment.MethodSpectrum:
		return ScoreSpectrum(def, responses), nil
	case assessment.MethodInterpreted:
		return ScoreInterpreted(def, responses), nil
	case assessment.MethodCategoryMean:
		return ScoreCategoryMean(def, responses), nil
	case assessment.MethodScalar:
		return ScoreScalar(def, responses), nil
	case assessment.MethodPercentage:
		return ScorePercentage(def, responses), nil
	default:
		return nil, fmt.Errorf("scoring: unknown method %q for assessment %q", def.Scoring.Method, def.Type)
	}
}
