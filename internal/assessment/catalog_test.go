package assessment

import (
	"strings"
	"testing"
)

// ─── Load ─────────────────────────────────────────────────────────────────────

func TestLoad_AllEmbeddedDefinitionsValidate(t *testing.T) {
	c, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	want := []string{
		TypeCognitive, TypeEnvironment, TypeExecution, TypeHolland,
		TypeIntelligences, TypePersonality, TypeSkills,
		TypeSocialDesirability, TypeStress, TypeValues,
	}
	got := c.Types()
	if len(got) != len(want) {
		t.Fatalf("expected %d assessment types, got %d: %v", len(want), len(got), got)
	}
	for i, typ := range want {
		if got[i] != typ {
			t.Errorf("types[%d]: expected %q, got %q", i, typ, got[i])
		}
	}
}

func TestLoad_GetAndList(t *testing.T) {
	c, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	def, ok := c.Get(TypeHolland)
	if !ok {
		t.Fatal("holland definition missing")
	}
	if def.Scoring.Method != MethodHollandCode {
		t.Errorf("holland method: got %q", def.Scoring.Method)
	}

	if _, ok := c.Get("nonexistent"); ok {
		t.Error("Get should return false for unknown type")
	}

	list := c.List()
	if len(list) != len(c.Types()) {
		t.Errorf("List length %d != Types length %d", len(list), len(c.Types()))
	}
}

func TestLoad_DefaultsAnswerRangeTo1Through5(t *testing.T) {
	c, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	for _, def := range c.List() {
		if def.Scoring.MinAnswer <= 0 || def.Scoring.MaxAnswer <= def.Scoring.MinAnswer {
			t.Errorf("%s: answer range [%d,%d] not normalised",
				def.Type, def.Scoring.MinAnswer, def.Scoring.MaxAnswer)
		}
	}
}

func TestLoad_ReverseScoringCoversFullRange(t *testing.T) {
	// Validated at load time, but worth asserting directly: any definition
	// with a reverse question must map every raw value in its answer range.
	c, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	for _, def := range c.List() {
		hasReverse := false
		for _, q := range def.Questions {
			if q.Reverse {
				hasReverse = true
				break
			}
		}
		if !hasReverse {
			continue
		}
		if got := len(def.Scoring.ReverseScoring); got != def.Scoring.MaxAnswer-def.Scoring.MinAnswer+1 {
			t.Errorf("%s: reverse_scoring has %d entries for range [%d,%d]",
				def.Type, got, def.Scoring.MinAnswer, def.Scoring.MaxAnswer)
		}
	}
}

// ─── Validate ─────────────────────────────────────────────────────────────────

// validDefinition returns a minimal definition that passes Validate. Tests
// mutate one field at a time to exercise each failure path.
func validDefinition() Definition {
	return Definition{
		Type: "sample",
		Name: "Sample Assessment",
		Domains: []Domain{
			{Code: "A", Name: "Alpha"},
			{Code: "B", Name: "Beta"},
		},
		Questions: []Question{
			{ID: "q1", Text: "One", Domain: "A"},
			{ID: "q2", Text: "Two", Domain: "B"},
		},
		Scoring: Scoring{
			Method: MethodSum,
			Bands: &Bands{
				High: &Band{Min: 8, Max: 10, Label: "High"},
				Mid:  &Band{Min: 5, Max: 7, Label: "Moderate"},
				Low:  &Band{Min: 2, Max: 4, Label: "Low"},
			},
		},
	}
}

func TestValidate_AcceptsMinimalDefinition(t *testing.T) {
	def := validDefinition()
	if err := def.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Validate normalises the zero answer range to the Likert default.
	if def.Scoring.MinAnswer != 1 || def.Scoring.MaxAnswer != 5 {
		t.Errorf("answer range: got [%d,%d]", def.Scoring.MinAnswer, def.Scoring.MaxAnswer)
	}
}

func TestValidate_Failures(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Definition)
		wantErr string
	}{
		{
			name:    "missing type",
			mutate:  func(d *Definition) { d.Type = "" },
			wantErr: "missing type",
		},
		{
			name:    "missing name",
			mutate:  func(d *Definition) { d.Name = "" },
			wantErr: "missing name",
		},
		{
			name:    "no domains",
			mutate:  func(d *Definition) { d.Domains = nil },
			wantErr: "no domains",
		},
		{
			name:    "no questions",
			mutate:  func(d *Definition) { d.Questions = nil },
			wantErr: "no questions",
		},
		{
			name: "duplicate domain code",
			mutate: func(d *Definition) {
				d.Domains = append(d.Domains, Domain{Code: "A", Name: "Again"})
			},
			wantErr: "duplicate domain code",
		},
		{
			name: "duplicate question id",
			mutate: func(d *Definition) {
				d.Questions = append(d.Questions, Question{ID: "q1", Text: "Dup", Domain: "A"})
			},
			wantErr: "duplicate question id",
		},
		{
			name: "question references unknown domain",
			mutate: func(d *Definition) {
				d.Questions[0].Domain = "Z"
			},
			wantErr: "unknown domain",
		},
		{
			name: "reverse question without reverse_scoring map",
			mutate: func(d *Definition) {
				d.Questions[0].Reverse = true
			},
			wantErr: "no reverse_scoring map",
		},
		{
			name: "reverse_scoring missing an entry",
			mutate: func(d *Definition) {
				d.Questions[0].Reverse = true
				d.Scoring.ReverseScoring = map[string]int{
					"1": 5, "2": 4, "3": 3, "4": 2, // "5" absent
				}
			},
			wantErr: `missing entry for answer "5"`,
		},
		{
			name: "reverse_scoring value out of range",
			mutate: func(d *Definition) {
				d.Questions[0].Reverse = true
				d.Scoring.ReverseScoring = map[string]int{
					"1": 5, "2": 4, "3": 3, "4": 2, "5": 9,
				}
			},
			wantErr: "outside answer range",
		},
		{
			name: "inverted answer range",
			mutate: func(d *Definition) {
				d.Scoring.MinAnswer = 5
				d.Scoring.MaxAnswer = 1
			},
			wantErr: "is empty",
		},
		{
			name: "sum method without bands",
			mutate: func(d *Definition) {
				d.Scoring.Bands = nil
			},
			wantErr: "requires bands",
		},
		{
			name: "bands missing low",
			mutate: func(d *Definition) {
				d.Scoring.Bands.Low = nil
			},
			wantErr: "require both high and low",
		},
		{
			name: "bands missing mid",
			mutate: func(d *Definition) {
				d.Scoring.Bands.Mid = nil
			},
			wantErr: "require a mid band",
		},
		{
			name: "overlapping bands",
			mutate: func(d *Definition) {
				d.Scoring.Bands.Low.Max = 9
			},
			wantErr: "overlaps",
		},
		{
			name: "category_mean without domain categories",
			mutate: func(d *Definition) {
				d.Scoring.Method = MethodCategoryMean
			},
			wantErr: "missing category",
		},
		{
			name: "spectrum without interpretation",
			mutate: func(d *Definition) {
				d.Scoring.Method = MethodSpectrum
				d.Scoring.Bands = nil
			},
			wantErr: "requires interpretation map",
		},
		{
			name: "spectrum interpretation missing a domain",
			mutate: func(d *Definition) {
				d.Scoring.Method = MethodSpectrum
				d.Scoring.MinScore = 2
				d.Scoring.MaxScore = 10
				d.Scoring.Interpretation = map[string]Bands{
					"A": {
						High: &Band{Min: 8, Max: 10, Label: "High"},
						Mid:  &Band{Min: 5, Max: 7, Label: "Moderate"},
						Low:  &Band{Min: 2, Max: 4, Label: "Low"},
					},
					// "B" absent
				}
			},
			wantErr: `interpretation missing domain "B"`,
		},
		{
			name: "scalar without thresholds",
			mutate: func(d *Definition) {
				d.Scoring.Method = MethodScalar
				d.Scoring.Bands = nil
			},
			wantErr: "requires thresholds",
		},
		{
			name: "scalar thresholds not descending",
			mutate: func(d *Definition) {
				d.Scoring.Method = MethodScalar
				d.Scoring.Bands = nil
				d.Scoring.DefaultLabel = "Base"
				d.Scoring.Thresholds = []Threshold{
					{Min: 5, Label: "Mid"},
					{Min: 10, Label: "Top"},
				}
			},
			wantErr: "strictly descending",
		},
		{
			name: "percentage with wrong low label",
			mutate: func(d *Definition) {
				d.Scoring.Method = MethodPercentage
				d.Scoring.MaxScore = 20
				d.Scoring.Bands.Low.Label = "Weak"
			},
			wantErr: NeedsFocusLabel,
		},
		{
			name: "percentage without max_score",
			mutate: func(d *Definition) {
				d.Scoring.Method = MethodPercentage
				d.Scoring.Bands.Low.Label = NeedsFocusLabel
			},
			wantErr: "max_score",
		},
		{
			name: "unknown method",
			mutate: func(d *Definition) {
				d.Scoring.Method = "vibes"
			},
			wantErr: "unknown scoring method",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			def := validDefinition()
			tt.mutate(&def)
			err := def.Validate()
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not contain %q", err, tt.wantErr)
			}
		})
	}
}

// ─── Definition helpers ───────────────────────────────────────────────────────

func TestDefinition_DomainLookup(t *testing.T) {
	def := validDefinition()

	dom, ok := def.Domain("A")
	if !ok || dom.Name != "Alpha" {
		t.Errorf("Domain(A): got %+v, ok=%v", dom, ok)
	}
	if _, ok := def.Domain("Z"); ok {
		t.Error("Domain(Z) should be absent")
	}
}

func TestDefinition_QuestionsForDomain(t *testing.T) {
	def := validDefinition()
	def.Questions = append(def.Questions, Question{ID: "q3", Text: "Three", Domain: "A"})

	qs := def.QuestionsForDomain("A")
	if len(qs) != 2 {
		t.Fatalf("expected 2 questions for domain A, got %d", len(qs))
	}
	if qs[0].ID != "q1" || qs[1].ID != "q3" {
		t.Errorf("definition order not preserved: %v", qs)
	}
}
