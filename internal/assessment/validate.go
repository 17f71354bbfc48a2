package assessment

import (
	"fmt"
	"strconv"
)

// NeedsFocusLabel is the exact low-band label the execution assessment must
// use. The execution-readiness deriver selects "areas needing focus" by
// comparing against this string, so it is validated here rather than trusted
// at scoring time.
const NeedsFocusLabel = "Needs Focus"

// Validate checks the structural invariants of a definition. It is called
// once per definition by Load; a failure means the binary refuses to start.
//
// This is where the original design's silent failure modes are closed: a
// reverse-scored answer with no ReverseScoring entry would have poisoned a
// domain total at scoring time, so coverage of the full answer range is
// demanded up front.
func (d *Definition) Validate() error {
	if d.Type == "" {
		return fmt.Errorf("assessment: missing type")
	}
	if d.Name == "" {
		return fmt.Errorf("assessment %s: missing name", d.Type)
	}
	if len(d.Domains) == 0 {
		return fmt.Errorf("assessment %s: no domains", d.Type)
	}
	if len(d.Questions) == 0 {
		return fmt.Errorf("assessment %s: no questions", d.Type)
	}

	domainCodes := make(map[string]struct{}, len(d.Domains))
	for i, dom := range d.Domains {
		if dom.Code == "" {
			return fmt.Errorf("assessment %s: domain %d has empty code", d.Type, i)
		}
		if _, dup := domainCodes[dom.Code]; dup {
			return fmt.Errorf("assessment %s: duplicate domain code %q", d.Type, dom.Code)
		}
		domainCodes[dom.Code] = struct{}{}

		if d.Scoring.Method == MethodCategoryMean && dom.Category == "" {
			return fmt.Errorf("assessment %s: domain %q missing category (required by %s)", d.Type, dom.Code, MethodCategoryMean)
		}
	}

	questionIDs := make(map[string]struct{}, len(d.Questions))
	hasReverse := false
	for i, q := range d.Questions {
		if q.ID == "" {
			return fmt.Errorf("assessment %s: question %d has empty id", d.Type, i)
		}
		if _, dup := questionIDs[q.ID]; dup {
			return fmt.Errorf("assessment %s: duplicate question id %q", d.Type, q.ID)
		}
		questionIDs[q.ID] = struct{}{}

		if _, ok := domainCodes[q.Domain]; !ok {
			return fmt.Errorf("assessment %s: question %q references unknown domain %q", d.Type, q.ID, q.Domain)
		}
		if q.Reverse {
			hasReverse = true
		}
	}

	return d.Scoring.validate(d.Type, hasReverse, domainCodes)
}

func (s *Scoring) validate(assessmentType string, hasReverse bool, domainCodes map[string]struct{}) error {
	if s.MinAnswer == 0 && s.MaxAnswer == 0 {
		// 1–5 Likert default; set here so the scoring engine never branches.
		s.MinAnswer, s.MaxAnswer = 1, 5
	}
	if s.MinAnswer >= s.MaxAnswer {
		return fmt.Errorf("assessment %s: answer range [%d,%d] is empty", assessmentType, s.MinAnswer, s.MaxAnswer)
	}

	// Reverse-scoring coverage: every raw answer in range must have a mirror.
	if hasReverse {
		if len(s.ReverseScoring) == 0 {
			return fmt.Errorf("assessment %s: has reverse questions but no reverse_scoring map", assessmentType)
		}
		for raw := s.MinAnswer; raw <= s.MaxAnswer; raw++ {
			key := strconv.Itoa(raw)
			v, ok := s.ReverseScoring[key]
			if !ok {
				return fmt.Errorf("assessment %s: reverse_scoring missing entry for answer %q", assessmentType, key)
			}
			if v < s.MinAnswer || v > s.MaxAnswer {
				return fmt.Errorf("assessment %s: reverse_scoring[%q]=%d outside answer range [%d,%d]",
					assessmentType, key, v, s.MinAnswer, s.MaxAnswer)
			}
		}
	}

	switch s.Method {
	case MethodSum, MethodTopRank, MethodHollandCode, MethodPrimary, MethodCategoryMean:
		if s.Bands == nil {
			return fmt.Errorf("assessment %s: method %s requires bands", assessmentType, s.Method)
		}
		if err := s.Bands.validate(assessmentType); err != nil {
			return err
		}

	case MethodPercentage:
		if s.Bands == nil {
			return fmt.Errorf("assessment %s: method %s requires bands", assessmentType, s.Method)
		}
		if err := s.Bands.validate(assessmentType); err != nil {
			return err
		}
		if s.Bands.Low == nil || s.Bands.Low.Label != NeedsFocusLabel {
			return fmt.Errorf("assessment %s: percentage method requires low band label %q", assessmentType, NeedsFocusLabel)
		}
		if s.MaxScore <= 0 {
			return fmt.Errorf("assessment %s: percentage method requires max_score > 0", assessmentType)
		}

	case MethodSpectrum, MethodInterpreted:
		if len(s.Interpretation) == 0 {
			return fmt.Errorf("assessment %s: method %s requires interpretation map", assessmentType, s.Method)
		}
		for code := range domainCodes {
			b, ok := s.Interpretation[code]
			if !ok {
				return fmt.Errorf("assessment %s: interpretation missing domain %q", assessmentType, code)
			}
			if err := b.validate(assessmentType); err != nil {
				return err
			}
		}
		if s.Method == MethodSpectrum && s.MaxScore <= s.MinScore {
			return fmt.Errorf("assessment %s: spectrum method requires min_score < max_score", assessmentType)
		}

	case MethodScalar:
		if len(s.Thresholds) == 0 {
			return fmt.Errorf("assessment %s: scalar method requires thresholds", assessmentType)
		}
		if s.DefaultLabel == "" {
			return fmt.Errorf("assessment %s: scalar method requires default_label", assessmentType)
		}
		// Thresholds are checked top-down, so they must be listed strictly
		// descending for the priority ordering to be meaningful.
		for i := 1; i < len(s.Thresholds); i++ {
			if s.Thresholds[i].Min >= s.Thresholds[i-1].Min {
				return fmt.Errorf("assessment %s: thresholds must be strictly descending (index %d)", assessmentType, i)
			}
		}

	default:
		return fmt.Errorf("assessment %s: unknown scoring method %q", assessmentType, s.Method)
	}

	return nil
}

func (b Bands) validate(assessmentType string) error {
	if b.High == nil || b.Low == nil {
		return fmt.Errorf("assessment %s: bands require both high and low", assessmentType)
	}
	// The classifier falls through to the mid label for scores between
	// Low.Max and High.Min, so a definition may not omit it: every label in
	// every band comes from definition data, never from engine constants.
	if b.Mid == nil {
		return fmt.Errorf("assessment %s: bands require a mid band", assessmentType)
	}
	if b.High.Label == "" || b.Mid.Label == "" || b.Low.Label == "" {
		return fmt.Errorf("assessment %s: band labels must not be empty", assessmentType)
	}
	if b.Low.Max >= b.High.Min {
		return fmt.Errorf("assessment %s: low band max %d overlaps high band min %d",
			assessmentType, b.Low.Max, b.High.Min)
	}
	return nil
}
