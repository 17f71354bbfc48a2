package pilot

import (
	"sort"
	"strings"
	"time"
)

const (
	strongThreshold = 60
	weakThreshold   = 40
	topCount        = 3
)

// Summarize assembles the student profile from computed domain scores.
// The input is expected to come from Score; domains missing from it are
// simply absent from the corresponding profile sections.
func Summarize(scores []DomainScore) Profile {
	p := Profile{
		HollandCode:   hollandCode(scores),
		LearningStyle: traitsFor(scores, DomainLearningStyle, learningTraits),
		WorkStyle:     traitsFor(scores, DomainWorkStyle, workTraits),
		Timestamp:     time.Now().UTC(),
	}
	p.SuggestedCareers = careersFor(p.HollandCode)
	p.TopStrengths, p.GrowthAreas = rankSubDomains(scores)
	p.OverallStrength = strongestDomain(scores)
	return p
}

// hollandCode concatenates the RIASEC letters of the three
// highest-scoring career-interest sub-domains. Ties keep definition
// order via the stable sort. Unanswered sub-domains do not compete;
// with fewer than three answered there is no meaningful code and the
// empty string is returned, which careersFor maps to the generic list.
func hollandCode(scores []DomainScore) string {
	career := findDomain(scores, DomainCareerInterests)
	if career == nil {
		return ""
	}
	var subs []SubDomainScore
	for _, s := range career.SubDomains {
		if s.QuestionCount > 0 {
			subs = append(subs, s)
		}
	}
	if len(subs) < topCount {
		return ""
	}
	sort.SliceStable(subs, func(i, j int) bool { return subs[i].Score > subs[j].Score })

	var b strings.Builder
	for i, s := range subs {
		if i == topCount {
			break
		}
		b.WriteString(hollandLetters[s.ID])
	}
	return b.String()
}

func findDomain(scores []DomainScore, id string) *DomainScore {
	for i := range scores {
		if scores[i].ID == id {
			return &scores[i]
		}
	}
	return nil
}

func careersFor(code string) []string {
	if careers, ok := hollandCareers[code]; ok {
		return careers
	}
	return genericCareers
}

// traitsFor turns one domain's sub-domain scores into adjectives:
// scores above 60 contribute the trait's strong adjective, scores below
// 40 its contrasting one. Unanswered sub-domains score zero and are
// skipped rather than described.
func traitsFor(scores []DomainScore, domainID string, traits []trait) []string {
	d := findDomain(scores, domainID)
	if d == nil {
		return nil
	}
	byID := make(map[string]SubDomainScore, len(d.SubDomains))
	for _, s := range d.SubDomains {
		byID[s.ID] = s
	}

	var out []string
	for _, t := range traits {
		s, ok := byID[t.subDomainID]
		if !ok || s.QuestionCount == 0 {
			continue
		}
		switch {
		case s.Score > strongThreshold && t.above != "":
			out = append(out, t.above)
		case s.Score < weakThreshold && t.below != "":
			out = append(out, t.below)
		}
	}
	return out
}

// rankSubDomains flattens every answered sub-domain and returns the
// top three by score descending (strengths) and ascending (growth
// areas). Both slices break ties by definition order.
func rankSubDomains(scores []DomainScore) (strengths, growth []SubDomainScore) {
	var all []SubDomainScore
	for _, d := range scores {
		for _, s := range d.SubDomains {
			if s.QuestionCount > 0 {
				all = append(all, s)
			}
		}
	}

	desc := make([]SubDomainScore, len(all))
	copy(desc, all)
	sort.SliceStable(desc, func(i, j int) bool { return desc[i].Score > desc[j].Score })

	asc := make([]SubDomainScore, len(all))
	copy(asc, all)
	sort.SliceStable(asc, func(i, j int) bool { return asc[i].Score < asc[j].Score })

	n := topCount
	if len(all) < n {
		n = len(all)
	}
	return desc[:n], asc[:n]
}

// strongestDomain picks the highest-scoring domain among those with at
// least one answered question. Entirely unanswered domains sit at zero
// and must not win by default.
func strongestDomain(scores []DomainScore) *DomainScore {
	var best *DomainScore
	for i := range scores {
		if !domainAnswered(scores[i]) {
			continue
		}
		if best == nil || scores[i].Score > best.Score {
			best = &scores[i]
		}
	}
	if best == nil {
		return nil
	}
	out := *best
	return &out
}

func domainAnswered(d DomainScore) bool {
	for _, s := range d.SubDomains {
		if s.QuestionCount > 0 {
			return true
		}
	}
	return false
}
