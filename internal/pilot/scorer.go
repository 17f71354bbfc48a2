package pilot

import "math"

// Score reduces raw answers to per-domain results. Each sub-domain is
// normalized to 0-100 as round(raw/max*100) with max = answered
// questions * 5; the domain score is the rounded unweighted mean of its
// sub-domain scores. The two levels are kept separate on purpose: with
// unequal question counts the mean of sub-domain percentages is not the
// same as pooling every answer into one domain percentage.
func Score(responses Responses) []DomainScore {
	type tally struct {
		raw   int
		count int
	}
	tallies := make(map[string]*tally)
	for _, q := range questions {
		raw, ok := responses[q.ID]
		if !ok || raw < minAnswer || raw > maxAnswer {
			continue
		}
		if q.IsReverse {
			raw = minAnswer + maxAnswer - raw
		}
		t := tallies[q.SubDomainID]
		if t == nil {
			t = &tally{}
			tallies[q.SubDomainID] = t
		}
		t.raw += raw
		t.count++
	}

	results := make([]DomainScore, 0, len(domains))
	for _, d := range domains {
		ds := DomainScore{
			ID:         d.ID,
			Name:       d.Name,
			SubDomains: make([]SubDomainScore, 0, len(d.SubDomains)),
		}
		total := 0
		for _, s := range d.SubDomains {
			ss := SubDomainScore{ID: s.ID, Name: s.Name}
			if t := tallies[s.ID]; t != nil {
				ss.RawScore = t.raw
				ss.QuestionCount = t.count
				ss.MaxScore = t.count * maxAnswer
				ss.Score = int(math.Round(float64(t.raw) / float64(ss.MaxScore) * 100))
			}
			total += ss.Score
			ds.SubDomains = append(ds.SubDomains, ss)
		}
		if len(ds.SubDomains) > 0 {
			ds.Score = int(math.Round(float64(total) / float64(len(ds.SubDomains))))
		}
		results = append(results, ds)
	}
	return results
}
