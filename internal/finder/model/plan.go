package model

// Gender values accepted in a SearchPlan. The zero value means "none".
const (
	GenderMale    = "male"
	GenderFemale  = "female"
	GenderNeutral = "neutral"
)

// QualityPreference restricts results by high-quality model availability.
type QualityPreference string

const (
	QualityAny      QualityPreference = "any"
	QualityHighOnly QualityPreference = "high_only"
	QualityNoHigh   QualityPreference = "no_high"
)

// Valid reports whether q is one of the enumerated preferences.
func (q QualityPreference) Valid() bool {
	switch q {
	case QualityAny, QualityHighOnly, QualityNoHigh:
		return true
	}
	return false
}

// MaxPlanQueries bounds SearchPlan.Queries.
const MaxPlanQueries = 7

// SearchPlan is the structured intent extracted from a free-text request.
// Empty strings mean "absent" for the optional fields.
type SearchPlan struct {
	InterfaceLanguage string            `json:"interface_language"`
	VoiceLanguage     string            `json:"target_voice_language,omitempty"`
	Accent            string            `json:"target_accent,omitempty"`
	Gender            string            `json:"target_gender,omitempty"`
	UseCases          []string          `json:"use_cases"`
	Tones             []string          `json:"tone_descriptors"`
	Quality           QualityPreference `json:"quality_preference"`
	Queries           []string          `json:"search_queries"`
}

// PlanResult is what the planning step hands to the rest of the pipeline.
// Degraded is set when the plan was built from heuristics only.
type PlanResult struct {
	Plan     SearchPlan
	Degraded bool
	Reason   string
}
