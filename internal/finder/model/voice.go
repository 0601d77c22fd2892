package model

import "strings"

// Tier records how a candidate was discovered. Lower values are more trusted.
type Tier int

const (
	TierPrimary Tier = iota
	TierLanguage
	TierFallback
)

var tierNames = [...]string{"primary", "language", "fallback"}

func (t Tier) String() string {
	if t < TierPrimary || t > TierFallback {
		return "unknown"
	}
	return tierNames[t]
}

// MoreTrustedThan reports whether t outranks other.
func (t Tier) MoreTrustedThan(other Tier) bool {
	return t < other
}

// Trust is the multiplier applied to ranking scores for the tier.
func (t Tier) Trust() float64 {
	switch t {
	case TierPrimary:
		return 1.0
	case TierLanguage:
		return 0.9
	default:
		return 0.5
	}
}

// VerifiedLanguage is a language the catalog has confirmed for a voice.
type VerifiedLanguage struct {
	Language   string `json:"language"`
	ModelID    string `json:"model_id,omitempty"`
	Accent     string `json:"accent,omitempty"`
	Locale     string `json:"locale,omitempty"`
	PreviewURL string `json:"preview_url,omitempty"`
}

// Sharing carries the library sharing metadata of a voice.
type Sharing struct {
	Status           string `json:"status,omitempty"`
	LikedByCount     int64  `json:"liked_by_count,omitempty"`
	ClonedByCount    int64  `json:"cloned_by_count,omitempty"`
	FreeUsersAllowed bool   `json:"free_users_allowed,omitempty"`
}

// Voice is one entry of the remote voice catalog.
type Voice struct {
	VoiceID                 string             `json:"voice_id"`
	Name                    string             `json:"name"`
	PublicOwnerID           string             `json:"public_owner_id,omitempty"`
	Language                string             `json:"language,omitempty"`
	Locale                  string             `json:"locale,omitempty"`
	Accent                  string             `json:"accent,omitempty"`
	Gender                  string             `json:"gender,omitempty"`
	Age                     string             `json:"age,omitempty"`
	Descriptive             string             `json:"descriptive,omitempty"`
	UseCase                 string             `json:"use_case,omitempty"`
	Category                string             `json:"category,omitempty"`
	Description             string             `json:"description,omitempty"`
	PreviewURL              string             `json:"preview_url,omitempty"`
	UsageCharacterCount7d   int64              `json:"usage_character_count_7d,omitempty"`
	UsageCharacterCount1y   int64              `json:"usage_character_count_1y,omitempty"`
	ClonedByCount           int64              `json:"cloned_by_count,omitempty"`
	HighQualityBaseModelIDs []string           `json:"high_quality_base_model_ids,omitempty"`
	VerifiedLanguages       []VerifiedLanguage `json:"verified_languages,omitempty"`
	Labels                  map[string]string  `json:"labels,omitempty"`
	Sharing                 *Sharing           `json:"sharing,omitempty"`
}

// IsHighQuality reports whether the voice has any high-quality model.
func (v Voice) IsHighQuality() bool {
	for _, id := range v.HighQualityBaseModelIDs {
		if strings.TrimSpace(id) != "" {
			return true
		}
	}
	return false
}

// UsageProxy returns the most recent usage metric available.
func (v Voice) UsageProxy() int64 {
	switch {
	case v.UsageCharacterCount7d > 0:
		return v.UsageCharacterCount7d
	case v.UsageCharacterCount1y > 0:
		return v.UsageCharacterCount1y
	case v.ClonedByCount > 0:
		return v.ClonedByCount
	case v.Sharing != nil:
		return v.Sharing.ClonedByCount
	}
	return 0
}

// Gender groups used by the presenter.
const (
	GroupFemale = "female"
	GroupMale   = "male"
	GroupOther  = "other"
)

// ResolvedGender resolves the explicit field, then labels["gender"], else other.
func (v Voice) ResolvedGender() string {
	g := strings.ToLower(strings.TrimSpace(v.Gender))
	if g == "" && v.Labels != nil {
		g = strings.ToLower(strings.TrimSpace(v.Labels["gender"]))
	}
	switch g {
	case GroupFemale:
		return GroupFemale
	case GroupMale:
		return GroupMale
	}
	return GroupOther
}

// PrimaryLanguage returns the language field, else the first verified language.
func (v Voice) PrimaryLanguage() string {
	if l := strings.ToLower(strings.TrimSpace(v.Language)); l != "" {
		return l
	}
	for _, vl := range v.VerifiedLanguages {
		if l := strings.ToLower(strings.TrimSpace(vl.Language)); l != "" {
			return l
		}
	}
	return ""
}

// Candidate is a voice bound to the tier that discovered it.
type Candidate struct {
	Voice
	Tier Tier `json:"tier"`
}
