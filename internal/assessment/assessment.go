// Package assessment holds the declarative assessment definitions: domains,
// questions, reverse-scoring maps, and banding thresholds. Definitions are
// loaded once from embedded YAML at startup and validated there — the scoring
// engine can then assume every lookup it performs will succeed.
package assessment

// Assessment type identifiers. These double as the definition file names
// (definitions/<type>.yaml) and as the assessment_type column value on
// answers and results.
const (
	TypePersonality        = "personality"
	TypeValues             = "values"
	TypeHolland            = "holland"
	TypeIntelligences      = "intelligences"
	TypeCognitive          = "cognitive"
	TypeStress             = "stress"
	TypeSkills             = "skills"
	TypeSocialDesirability = "social_desirability"
	TypeEnvironment        = "environment"
	TypeExecution          = "execution"
)

// Scoring method discriminators. Each maps to one composite-deriver family in
// the scoring package.
const (
	MethodSum          = "sum"           // raw per-domain totals + three-band labels
	MethodTopRank      = "top_rank"      // sum + top-N ranking composite
	MethodHollandCode  = "holland_code"  // sum + 3-letter code from top domains
	MethodPrimary      = "primary"       // sum + dominant-domain selection
	MethodSpectrum     = "spectrum"      // per-domain interpretation + spectrum %
	MethodInterpreted  = "interpreted"   // per-domain interpretation, no spectrum
	MethodCategoryMean = "category_mean" // sum + per-category averages
	MethodScalar       = "scalar"        // single summed scalar + ordered thresholds
	MethodPercentage   = "percentage"    // percent-of-maximum composite
)

// Definition is one complete assessment: its domains, questions, and scoring
// rules. Immutable after Load.
type Definition struct {
	Type        string     `yaml:"type" json:"type"`
	Name        string     `yaml:"name" json:"name"`
	Description string     `yaml:"description" json:"description"`
	Domains     []Domain   `yaml:"domains" json:"domains"`
	Questions   []Question `yaml:"questions" json:"questions"`
	Scoring     Scoring    `yaml:"scoring" json:"-"`
}

// Domain is a named sub-scale of an assessment. Code is unique within the
// assessment and is what questions reference.
type Domain struct {
	Code        string `yaml:"code" json:"code"`
	Name        string `yaml:"name" json:"name"`
	Description string `yaml:"description" json:"description"`
	Color       string `yaml:"color" json:"color"`
	Icon        string `yaml:"icon,omitempty" json:"icon,omitempty"`
	// Opposite names the other pole for spectrum-style domains
	// (e.g. "Intuitive" opposite "Analytical").
	Opposite string `yaml:"opposite,omitempty" json:"opposite,omitempty"`
	// Category groups domains for the category_mean method.
	Category string `yaml:"category,omitempty" json:"category,omitempty"`
}

// Question is a single Likert item. Reverse questions are mirrored through
// Scoring.ReverseScoring before aggregation.
type Question struct {
	ID      string `yaml:"id" json:"id"`
	Text    string `yaml:"text" json:"text"`
	Domain  string `yaml:"domain" json:"domain"`
	Reverse bool   `yaml:"reverse,omitempty" json:"reverse,omitempty"`
}

// Band is one inclusive threshold range with its qualitative label.
type Band struct {
	Min   int    `yaml:"min" json:"min"`
	Max   int    `yaml:"max" json:"max"`
	Label string `yaml:"label" json:"label"`
}

// Bands is the three-band classifier shape. High is checked before Low, so if
// the ranges were ever to overlap, High wins. Scores between Low.Max and
// High.Min take the Mid label; all three bands are required so every label a
// student sees comes from the definition file.
type Bands struct {
	High *Band `yaml:"high" json:"high"`
	Mid  *Band `yaml:"mid,omitempty" json:"mid,omitempty"`
	Low  *Band `yaml:"low" json:"low"`
}

// Threshold is one ordered check for the scalar method: the first threshold
// whose Min the score reaches supplies the label.
type Threshold struct {
	Min   int    `yaml:"min" json:"min"`
	Label string `yaml:"label" json:"label"`
}

// Scoring holds the declarative scoring rules for one assessment.
type Scoring struct {
	Method string `yaml:"method" json:"method"`

	// MinAnswer/MaxAnswer bound the raw Likert scale. Default 1–5.
	MinAnswer int `yaml:"min_answer" json:"min_answer"`
	MaxAnswer int `yaml:"max_answer" json:"max_answer"`

	// ReverseScoring maps a raw answer (stringified, as the original data is
	// keyed) to its mirrored value. Must cover [MinAnswer, MaxAnswer] whenever
	// any question in the assessment is reverse-scored.
	ReverseScoring map[string]int `yaml:"reverse_scoring,omitempty" json:"reverse_scoring,omitempty"`

	// ItemsPerDomain is informational (used by MinScore/MaxScore sanity
	// checks); the aggregator counts answered items itself.
	ItemsPerDomain int `yaml:"items_per_domain,omitempty" json:"items_per_domain,omitempty"`

	// MinScore/MaxScore bound a fully-answered domain's aggregate. Spectrum
	// percentages are positioned within this range.
	MinScore int `yaml:"min_score,omitempty" json:"min_score,omitempty"`
	MaxScore int `yaml:"max_score,omitempty" json:"max_score,omitempty"`

	// Bands is the shared three-band classifier (sum-family methods).
	Bands *Bands `yaml:"bands,omitempty" json:"bands,omitempty"`

	// Interpretation keys three-band classifiers per domain code
	// (spectrum/interpreted methods).
	Interpretation map[string]Bands `yaml:"interpretation,omitempty" json:"interpretation,omitempty"`

	// Thresholds is the ordered label ladder for the scalar method, checked
	// top-down; DefaultLabel applies when none match.
	Thresholds   []Threshold `yaml:"thresholds,omitempty" json:"thresholds,omitempty"`
	DefaultLabel string      `yaml:"default_label,omitempty" json:"default_label,omitempty"`

	// TopCount is N for the top_rank method. Default 3.
	TopCount int `yaml:"top_count,omitempty" json:"top_count,omitempty"`
}

// Domain returns the domain with the given code, or false when absent.
func (d *Definition) Domain(code string) (Domain, bool) {
	for _, dom := range d.Domains {
		if dom.Code == code {
			return dom, true
		}
	}
	return Domain{}, false
}

// QuestionsForDomain returns the questions referencing the given domain code,
// in definition order.
func (d *Definition) QuestionsForDomain(code string) []Question {
	var out []Question
	for _, q := range d.Questions {
		if q.Domain == code {
			out = append(out, q)
		}
	}
	return out
}
