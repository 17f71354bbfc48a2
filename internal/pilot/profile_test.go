package pilot

import (
	"reflect"
	"testing"
)

// answersFor fills every question in a sub-domain with the same value.
func answersFor(responses Responses, subDomainID string, value int) {
	for _, q := range questions {
		if q.SubDomainID != subDomainID {
			continue
		}
		v := value
		if q.IsReverse {
			v = minAnswer + maxAnswer - value
		}
		responses[q.ID] = v
	}
}

func TestSummarize_HollandCodeDescending(t *testing.T) {
	responses := Responses{}
	answersFor(responses, "investigative", 5)
	answersFor(responses, "realistic", 4)
	answersFor(responses, "conventional", 3)
	answersFor(responses, "artistic", 2)
	answersFor(responses, "social", 1)
	answersFor(responses, "enterprising", 1)

	p := Summarize(Score(responses))
	if p.HollandCode != "IRC" {
		t.Errorf("holland code=%q, want IRC", p.HollandCode)
	}
	if !reflect.DeepEqual(p.SuggestedCareers, hollandCareers["IRC"]) {
		t.Errorf("careers=%v, want IRC table entry", p.SuggestedCareers)
	}
}

func TestSummarize_TieKeepsDefinitionOrder(t *testing.T) {
	// All six interests equal: RIASEC definition order wins.
	responses := Responses{}
	for _, s := range []string{"realistic", "investigative", "artistic", "social", "enterprising", "conventional"} {
		answersFor(responses, s, 3)
	}

	p := Summarize(Score(responses))
	if p.HollandCode != "RIA" {
		t.Errorf("holland code=%q, want RIA", p.HollandCode)
	}
}

func TestSummarize_UnknownCodeFallsBack(t *testing.T) {
	// ISC is not in the careers table.
	responses := Responses{}
	answersFor(responses, "investigative", 5)
	answersFor(responses, "social", 4)
	answersFor(responses, "conventional", 3)

	p := Summarize(Score(responses))
	if p.HollandCode != "ISC" {
		t.Fatalf("holland code=%q, want ISC", p.HollandCode)
	}
	if !reflect.DeepEqual(p.SuggestedCareers, genericCareers) {
		t.Errorf("careers=%v, want generic fallback", p.SuggestedCareers)
	}
}

func TestSummarize_LearningAndWorkStyleThresholds(t *testing.T) {
	responses := Responses{}
	answersFor(responses, "visual", 5)          // 100 > 60 → visual
	answersFor(responses, "auditory", 3)        // 60, not strictly above → dropped
	answersFor(responses, "kinesthetic", 4)     // 80 > 60 → hands-on
	answersFor(responses, "independence", 5)    // self-directed
	answersFor(responses, "structure", 1)       // 20 < 40 → spontaneous
	answersFor(responses, "collaboration", 3)   // between thresholds → dropped
	// adaptability unanswered → skipped entirely

	p := Summarize(Score(responses))
	if want := []string{"visual", "hands-on"}; !reflect.DeepEqual(p.LearningStyle, want) {
		t.Errorf("learning style=%v, want %v", p.LearningStyle, want)
	}
	if want := []string{"self-directed", "spontaneous"}; !reflect.DeepEqual(p.WorkStyle, want) {
		t.Errorf("work style=%v, want %v", p.WorkStyle, want)
	}
}

func TestSummarize_StrengthsAndGrowthAreas(t *testing.T) {
	responses := Responses{}
	answersFor(responses, "leadership", 5)      // 100
	answersFor(responses, "problem_solving", 4) // 80
	answersFor(responses, "communication", 2)   // 40
	answersFor(responses, "creativity", 1)      // 20

	p := Summarize(Score(responses))
	if len(p.TopStrengths) != 3 {
		t.Fatalf("strengths=%d, want 3", len(p.TopStrengths))
	}
	if p.TopStrengths[0].ID != "leadership" || p.TopStrengths[1].ID != "problem_solving" {
		t.Errorf("strengths order wrong: %+v", p.TopStrengths)
	}
	if p.GrowthAreas[0].ID != "creativity" {
		t.Errorf("growth areas order wrong: %+v", p.GrowthAreas)
	}
	if p.OverallStrength == nil || p.OverallStrength.ID != DomainPersonalStrengths {
		t.Errorf("overall strength=%+v, want personal_strengths", p.OverallStrength)
	}
}

func TestSummarize_FewerAnsweredThanTop(t *testing.T) {
	responses := Responses{}
	answersFor(responses, "leadership", 5)

	p := Summarize(Score(responses))
	if len(p.TopStrengths) != 1 || len(p.GrowthAreas) != 1 {
		t.Errorf("strengths=%d growth=%d, want 1/1", len(p.TopStrengths), len(p.GrowthAreas))
	}
}

func TestSummarize_NoCareerAnswersLeavesCodeEmpty(t *testing.T) {
	// Leadership answers only: the career-interest sub-domains all sit
	// at zero and must not assemble into a code by catalog order.
	responses := Responses{"ps1": 5, "ps2": 4}

	p := Summarize(Score(responses))
	if p.HollandCode != "" {
		t.Errorf("holland code=%q, want empty", p.HollandCode)
	}
	if !reflect.DeepEqual(p.SuggestedCareers, genericCareers) {
		t.Errorf("careers=%v, want generic fallback", p.SuggestedCareers)
	}
	if p.OverallStrength == nil || p.OverallStrength.ID != DomainPersonalStrengths {
		t.Errorf("overall strength=%+v, want personal_strengths", p.OverallStrength)
	}
}

func TestSummarize_TooFewCareerSubDomainsForCode(t *testing.T) {
	// Two answered interest sub-domains cannot make a three-letter code.
	responses := Responses{}
	answersFor(responses, "realistic", 5)
	answersFor(responses, "artistic", 4)

	p := Summarize(Score(responses))
	if p.HollandCode != "" {
		t.Errorf("holland code=%q, want empty", p.HollandCode)
	}
}

func TestSummarize_EmptyScores(t *testing.T) {
	p := Summarize(nil)
	if p.HollandCode != "" {
		t.Errorf("holland code=%q, want empty", p.HollandCode)
	}
	if p.OverallStrength != nil {
		t.Errorf("overall strength=%+v, want nil", p.OverallStrength)
	}
	if !reflect.DeepEqual(p.SuggestedCareers, genericCareers) {
		t.Errorf("careers=%v, want generic fallback", p.SuggestedCareers)
	}
	if p.Timestamp.IsZero() {
		t.Error("timestamp not set")
	}
}
