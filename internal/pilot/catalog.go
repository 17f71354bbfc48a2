package pilot

// Domain and question definitions are compiled in rather than loaded
// from config: the pilot questionnaire is a single fixed instrument and
// its summarizer depends on specific sub-domain IDs being present.

const (
	DomainCareerInterests   = "career_interests"
	DomainLearningStyle     = "learning_style"
	DomainWorkStyle         = "work_style"
	DomainPersonalStrengths = "personal_strengths"
)

var domains = []Domain{
	{
		ID:   DomainCareerInterests,
		Name: "Career Interests",
		SubDomains: []SubDomain{
			{ID: "realistic", Name: "Realistic"},
			{ID: "investigative", Name: "Investigative"},
			{ID: "artistic", Name: "Artistic"},
			{ID: "social", Name: "Social"},
			{ID: "enterprising", Name: "Enterprising"},
			{ID: "conventional", Name: "Conventional"},
		},
	},
	{
		ID:   DomainLearningStyle,
		Name: "Learning Style",
		SubDomains: []SubDomain{
			{ID: "visual", Name: "Visual"},
			{ID: "auditory", Name: "Auditory"},
			{ID: "kinesthetic", Name: "Kinesthetic"},
			{ID: "reading_writing", Name: "Reading & Writing"},
		},
	},
	{
		ID:   DomainWorkStyle,
		Name: "Work Style",
		SubDomains: []SubDomain{
			{ID: "independence", Name: "Independence"},
			{ID: "collaboration", Name: "Collaboration"},
			{ID: "structure", Name: "Structure"},
			{ID: "adaptability", Name: "Adaptability"},
		},
	},
	{
		ID:   DomainPersonalStrengths,
		Name: "Personal Strengths",
		SubDomains: []SubDomain{
			{ID: "leadership", Name: "Leadership"},
			{ID: "problem_solving", Name: "Problem Solving"},
			{ID: "communication", Name: "Communication"},
			{ID: "creativity", Name: "Creativity"},
		},
	},
}

var questions = []Question{
	// Career interests (RIASEC).
	{ID: "pc1", DomainID: DomainCareerInterests, SubDomainID: "realistic", Text: "I enjoy working with tools, machines, or my hands."},
	{ID: "pc2", DomainID: DomainCareerInterests, SubDomainID: "realistic", Text: "I would rather build something physical than write about it."},
	{ID: "pc3", DomainID: DomainCareerInterests, SubDomainID: "investigative", Text: "I like figuring out why things work the way they do."},
	{ID: "pc4", DomainID: DomainCareerInterests, SubDomainID: "investigative", Text: "Solving puzzles and analysing data appeals to me."},
	{ID: "pc5", DomainID: DomainCareerInterests, SubDomainID: "artistic", Text: "I enjoy expressing myself through art, music, or writing."},
	{ID: "pc6", DomainID: DomainCareerInterests, SubDomainID: "artistic", Text: "I prefer open-ended tasks over ones with a single right answer."},
	{ID: "pc7", DomainID: DomainCareerInterests, SubDomainID: "social", Text: "Helping other people learn or grow energises me."},
	{ID: "pc8", DomainID: DomainCareerInterests, SubDomainID: "social", Text: "Friends come to me when they need someone to listen."},
	{ID: "pc9", DomainID: DomainCareerInterests, SubDomainID: "enterprising", Text: "I like persuading people and leading projects."},
	{ID: "pc10", DomainID: DomainCareerInterests, SubDomainID: "enterprising", Text: "Starting my own business one day sounds exciting."},
	{ID: "pc11", DomainID: DomainCareerInterests, SubDomainID: "conventional", Text: "I feel satisfied when records and plans are kept in order."},
	{ID: "pc12", DomainID: DomainCareerInterests, SubDomainID: "conventional", Text: "I prefer clear procedures over improvising."},

	// Learning style.
	{ID: "pl1", DomainID: DomainLearningStyle, SubDomainID: "visual", Text: "Diagrams and charts help me understand new ideas."},
	{ID: "pl2", DomainID: DomainLearningStyle, SubDomainID: "visual", Text: "I remember things better when I can picture them."},
	{ID: "pl3", DomainID: DomainLearningStyle, SubDomainID: "auditory", Text: "I learn well from lectures and spoken explanations."},
	{ID: "pl4", DomainID: DomainLearningStyle, SubDomainID: "auditory", Text: "Talking a problem through out loud helps me solve it."},
	{ID: "pl5", DomainID: DomainLearningStyle, SubDomainID: "kinesthetic", Text: "I understand best by trying things myself."},
	{ID: "pl6", DomainID: DomainLearningStyle, SubDomainID: "kinesthetic", Text: "I find it hard to learn something without practising it."},
	{ID: "pl7", DomainID: DomainLearningStyle, SubDomainID: "reading_writing", Text: "Taking written notes is how I make ideas stick."},
	{ID: "pl8", DomainID: DomainLearningStyle, SubDomainID: "reading_writing", Text: "I would rather read instructions than watch a demonstration."},

	// Work style.
	{ID: "pw1", DomainID: DomainWorkStyle, SubDomainID: "independence", Text: "I do my best work when left to manage myself."},
	{ID: "pw2", DomainID: DomainWorkStyle, SubDomainID: "independence", Text: "I prefer someone to check in on my progress often.", IsReverse: true},
	{ID: "pw3", DomainID: DomainWorkStyle, SubDomainID: "collaboration", Text: "Working in a team brings out my best ideas."},
	{ID: "pw4", DomainID: DomainWorkStyle, SubDomainID: "collaboration", Text: "I would rather share credit for a group win than win alone."},
	{ID: "pw5", DomainID: DomainWorkStyle, SubDomainID: "structure", Text: "I like knowing exactly what is expected before I start."},
	{ID: "pw6", DomainID: DomainWorkStyle, SubDomainID: "structure", Text: "Last-minute changes to a plan frustrate me."},
	{ID: "pw7", DomainID: DomainWorkStyle, SubDomainID: "adaptability", Text: "I stay effective when priorities shift suddenly."},
	{ID: "pw8", DomainID: DomainWorkStyle, SubDomainID: "adaptability", Text: "New and unfamiliar situations rarely unsettle me."},

	// Personal strengths.
	{ID: "ps1", DomainID: DomainPersonalStrengths, SubDomainID: "leadership", Text: "People often look to me to take charge."},
	{ID: "ps2", DomainID: DomainPersonalStrengths, SubDomainID: "leadership", Text: "I am comfortable making decisions for a group."},
	{ID: "ps3", DomainID: DomainPersonalStrengths, SubDomainID: "problem_solving", Text: "I enjoy breaking a hard problem into smaller steps."},
	{ID: "ps4", DomainID: DomainPersonalStrengths, SubDomainID: "problem_solving", Text: "I usually find a workaround when the obvious path is blocked."},
	{ID: "ps5", DomainID: DomainPersonalStrengths, SubDomainID: "communication", Text: "I can explain complicated things in simple terms."},
	{ID: "ps6", DomainID: DomainPersonalStrengths, SubDomainID: "communication", Text: "I rarely struggle to put my thoughts into words."},
	{ID: "ps7", DomainID: DomainPersonalStrengths, SubDomainID: "creativity", Text: "I often come up with ideas nobody else suggested."},
	{ID: "ps8", DomainID: DomainPersonalStrengths, SubDomainID: "creativity", Text: "I like finding unusual ways to do routine things."},
}

func init() {
	// Denormalize display names and ordering onto each question so the
	// API can serve the list without joining against the domain table.
	byDomain := make(map[string]Domain, len(domains))
	subNames := make(map[string]string)
	for _, d := range domains {
		byDomain[d.ID] = d
		for _, s := range d.SubDomains {
			subNames[s.ID] = s.Name
		}
	}
	for i := range questions {
		questions[i].Order = i + 1
		questions[i].Domain = byDomain[questions[i].DomainID].Name
		questions[i].SubDomain = subNames[questions[i].SubDomainID]
	}
}

// Domains returns the pilot domain definitions in presentation order.
func Domains() []Domain { return domains }

// Questions returns all pilot questions in presentation order.
func Questions() []Question { return questions }

// hollandLetters maps career-interest sub-domain IDs to their RIASEC
// letter for Holland code assembly.
var hollandLetters = map[string]string{
	"realistic":     "R",
	"investigative": "I",
	"artistic":      "A",
	"social":        "S",
	"enterprising":  "E",
	"conventional":  "C",
}

// hollandCareers maps three-letter Holland codes to career suggestions.
// The table is deliberately partial; unknown codes fall back to
// genericCareers.
var hollandCareers = map[string][]string{
	"RIA": {"Architect", "Industrial Designer", "Surveyor"},
	"RIC": {"Mechanical Engineer", "Electrician", "Aviation Technician"},
	"RSE": {"Physiotherapist", "Fitness Coach", "Emergency Responder"},
	"IRC": {"Software Engineer", "Data Analyst", "Laboratory Technician"},
	"IAS": {"Research Psychologist", "Science Writer", "UX Researcher"},
	"IAR": {"Biomedical Engineer", "Forensic Scientist", "Astronomer"},
	"ASE": {"Art Teacher", "Event Designer", "Brand Strategist"},
	"AIS": {"Journalist", "Graphic Designer", "Multimedia Artist"},
	"AES": {"Actor", "Marketing Creative", "Music Producer"},
	"SEC": {"School Counsellor", "Human Resources Officer", "Community Manager"},
	"SAE": {"Teacher", "Social Worker", "Speech Therapist"},
	"SIA": {"Nurse", "Occupational Therapist", "Public Health Officer"},
	"ESC": {"Sales Manager", "Entrepreneur", "Hotel Manager"},
	"ESA": {"Public Relations Officer", "Recruiter", "Event Manager"},
	"EIC": {"Business Analyst", "Product Manager", "Management Consultant"},
	"CSE": {"Accountant", "Office Administrator", "Bank Officer"},
	"CIE": {"Auditor", "Actuary", "Financial Analyst"},
	"CRI": {"Logistics Coordinator", "Quality Inspector", "Database Administrator"},
}

var genericCareers = []string{
	"Project Coordinator",
	"Teacher or Trainer",
	"Analyst",
	"Designer",
	"Entrepreneur",
}

// trait maps a sub-domain score against the 60/40 thresholds to a
// descriptive adjective for the profile summary.
type trait struct {
	subDomainID string
	above       string
	below       string
}

var learningTraits = []trait{
	{subDomainID: "visual", above: "visual", below: ""},
	{subDomainID: "auditory", above: "auditory", below: ""},
	{subDomainID: "kinesthetic", above: "hands-on", below: ""},
	{subDomainID: "reading_writing", above: "text-oriented", below: ""},
}

var workTraits = []trait{
	{subDomainID: "independence", above: "self-directed", below: "guidance-seeking"},
	{subDomainID: "collaboration", above: "team-oriented", below: "independent-working"},
	{subDomainID: "structure", above: "methodical", below: "spontaneous"},
	{subDomainID: "adaptability", above: "adaptable", below: "routine-preferring"},
}
