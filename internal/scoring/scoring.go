// Package scoring implements the flat assessment scoring engine: answer
// normalization, per-domain aggregation, band classification, and the
// composite derivers layered on top. It is intentionally dependency-free
// beyond the assessment definitions: it performs no I/O, holds no state, and
// every function is a pure mapping from (responses, definition) to a result,
// so concurrent calls are safe by construction.
package scoring

import (
	"sort"
	"strconv"

	"github.com/compasslabs/career-compass-backend/internal/assessment"
)

// Responses maps question id to the raw Likert answer. The map is sparse:
// an unanswered question simply has no entry. It is never padded with zeros —
// a zero-filled answer would drag partially-completed assessments into the
// low band, which is wrong.
type Responses map[string]int

// DomainScore is the per-domain output of the aggregator, annotated with its
// band label. Ephemeral: recomputed on every call, never read back by the
// engine.
type DomainScore struct {
	Code        string `json:"code"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Color       string `json:"color"`
	Category    string `json:"category,omitempty"`

	// Score is the aggregate of normalized answers (a raw sum for the
	// sum-family methods).
	Score int `json:"score"`

	// Band is the qualitative label assigned by the classifier.
	Band string `json:"band"`

	// ItemCount is the number of answered questions in this domain. Callers
	// use it to judge completeness; the engine itself never does.
	ItemCount int `json:"item_count"`
}

// normalized resolves one raw answer to the value to accumulate. Reverse
// questions are mirrored through the definition's reverse-scoring map, which
// Validate has already guaranteed covers the full answer range.
func normalized(def *assessment.Definition, q assessment.Question, raw int) int {
	if !q.Reverse {
		return raw
	}
	return def.Scoring.ReverseScoring[strconv.Itoa(raw)]
}

// inRange reports whether a raw answer is inside the definition's answer
// scale. Out-of-range values (a 0 or 6 from a malformed client) are treated
// as unanswered rather than poisoning a domain total.
func inRange(def *assessment.Definition, raw int) bool {
	return raw >= def.Scoring.MinAnswer && raw <= def.Scoring.MaxAnswer
}

// AggregateDomains runs the normalize-and-sum pass. Every domain in the
// definition appears in the output, in definition order, even with zero
// answered questions (Score=0, ItemCount=0). Unanswered questions contribute
// nothing — neither to the score nor to the item count.
func AggregateDomains(def *assessment.Definition, responses Responses) []DomainScore {
	index := make(map[string]int, len(def.Domains))
	scores := make([]DomainScore, len(def.Domains))
	for i, d := range def.Domains {
		scores[i] = DomainScore{
			Code:        d.Code,
			Name:        d.Name,
			Description: d.Description,
			Color:       d.Color,
			Category:    d.Category,
		}
		index[d.Code] = i
	}

	for _, q := range def.Questions {
		raw, answered := responses[q.ID]
		if !answered || !inRange(def, raw) {
			continue
		}
		i := index[q.Domain]
		scores[i].Score += normalized(def, q, raw)
		scores[i].ItemCount++
	}

	return scores
}

// classify maps a score onto a three-band spec. The high band is checked
// before the low band; this ordering is part of the contract (if ranges ever
// overlapped, high wins). Validation guarantees all three bands are present,
// so everything in between falls to the mid label.
func classify(score int, b *assessment.Bands) string {
	switch {
	case b == nil:
		return ""
	case score >= b.High.Min:
		return b.High.Label
	case score <= b.Low.Max:
		return b.Low.Label
	default:
		return b.Mid.Label
	}
}

// classifyDomains annotates every domain score with the shared band label.
func classifyDomains(scores []DomainScore, b *assessment.Bands) {
	for i := range scores {
		scores[i].Band = classify(scores[i].Score, b)
	}
}

// classifyInterpreted annotates domain scores using the per-domain
// interpretation map (cognitive/environment variants).
func classifyInterpreted(scores []DomainScore, interp map[string]assessment.Bands) {
	for i := range scores {
		if b, ok := interp[scores[i].Code]; ok {
			scores[i].Band = classify(scores[i].Score, &b)
		}
	}
}

// spectrumPercent positions a score between the definition's min and max
// scores as a percentage. It is not rounded here — only the presentation
// layer rounds — and is bounded to [0,100] by construction for any score a
// fully-answered domain can produce.
func spectrumPercent(score, minScore, maxScore int) float64 {
	return float64(score-minScore) / float64(maxScore-minScore) * 100
}

// rankDesc returns a copy of scores sorted by descending score. The sort is
// stable, so domains with equal scores keep their definition order — the
// documented tie-break for every ranking composite.
func rankDesc(scores []DomainScore) []DomainScore {
	out := make([]DomainScore, len(scores))
	copy(out, scores)
	sort.SliceStable(out, func(a, b int) bool {
		return out[a].Score > out[b].Score
	})
	return out
}

// rankAsc is rankDesc's mirror, used for growth-area slices.
func rankAsc(scores []DomainScore) []DomainScore {
	out := make([]DomainScore, len(scores))
	copy(out, scores)
	sort.SliceStable(out, func(a, b int) bool {
		return out[a].Score < out[b].Score
	})
	return out
}

// topN slices the first n of a ranked list, returning everything when fewer
// than n exist. Never pads, never errors.
func topN(ranked []DomainScore, n int) []DomainScore {
	if n <= 0 || n > len(ranked) {
		n = len(ranked)
	}
	return ranked[:n]
}
