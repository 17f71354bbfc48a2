// Package pilot implements the two-level career-discovery assessment:
// answers roll up into 0-100 sub-domain scores, which in turn average
// into domain scores, and finally summarize into a student profile with
// career suggestions. Like package scoring it is pure and performs no
// I/O; definitions are compiled in.
package pilot

import "time"

// Responses maps question IDs to raw 1-5 answers. Sparse: an absent
// question is unanswered, not zero.
type Responses map[string]int

const (
	minAnswer = 1
	maxAnswer = 5
)

// Question is a single pilot questionnaire item.
type Question struct {
	ID          string `json:"id"`
	Domain      string `json:"domain"`
	DomainID    string `json:"domainId"`
	SubDomain   string `json:"subDomain"`
	SubDomainID string `json:"subDomainId"`
	Text        string `json:"text"`
	IsReverse   bool   `json:"isReverse"`
	Order       int    `json:"order"`
}

// SubDomain is a scored unit beneath a domain.
type SubDomain struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Domain groups related sub-domains.
type Domain struct {
	ID         string      `json:"id"`
	Name       string      `json:"name"`
	SubDomains []SubDomain `json:"subDomains"`
}

// SubDomainScore is the normalized 0-100 outcome for one sub-domain.
type SubDomainScore struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Score         int    `json:"score"`
	RawScore      int    `json:"rawScore"`
	MaxScore      int    `json:"maxScore"`
	QuestionCount int    `json:"questionCount"`
}

// DomainScore is the rounded mean of a domain's sub-domain scores.
type DomainScore struct {
	ID         string           `json:"id"`
	Name       string           `json:"name"`
	Score      int              `json:"score"`
	SubDomains []SubDomainScore `json:"subDomains"`
}

// Profile is the narrative-ready summary assembled from domain scores.
type Profile struct {
	HollandCode      string           `json:"hollandCode"`
	SuggestedCareers []string         `json:"suggestedCareers"`
	LearningStyle    []string         `json:"learningStyle"`
	WorkStyle        []string         `json:"workStyle"`
	TopStrengths     []SubDomainScore `json:"topStrengths"`
	GrowthAreas      []SubDomainScore `json:"growthAreas"`
	OverallStrength  *DomainScore     `json:"overallStrength,omitempty"`
	Timestamp        time.Time        `json:"timestamp"`
}
