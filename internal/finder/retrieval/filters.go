package retrieval

import (
	"strings"

	"github.com/voice-finder/server/internal/finder/lexicon"
	"github.com/voice-finder/server/internal/finder/model"
)

// MatchesLanguage reports whether a voice can be confirmed to speak lang,
// from its language/locale fields, verified languages or descriptive text.
func MatchesLanguage(v model.Voice, lang string) bool {
	lang = lexicon.NormalizeCode(lang)
	if lang == "" {
		return false
	}
	if lexicon.NormalizeCode(v.Language) == lang || lexicon.NormalizeCode(v.Locale) == lang {
		return true
	}
	for _, vl := range v.VerifiedLanguages {
		if lexicon.NormalizeCode(vl.Language) == lang || lexicon.NormalizeCode(vl.Locale) == lang {
			return true
		}
	}
	names := lexicon.NamesFor(lang)
	if len(names) == 0 {
		return false
	}
	parts := []string{v.Name, v.Description, v.Accent, v.Descriptive}
	for _, l := range v.Labels {
		parts = append(parts, l)
	}
	return lexicon.NewText(strings.Join(parts, " ")).Has(names...)
}

// filterSafe keeps the candidates accepted by keep unless fewer than min
// remain, in which case the input is returned unchanged.
func filterSafe(cs []model.Candidate, min int, keep func(model.Candidate) bool) ([]model.Candidate, bool) {
	if min < 1 {
		min = 1
	}
	out := make([]model.Candidate, 0, len(cs))
	for _, c := range cs {
		if keep(c) {
			out = append(out, c)
		}
	}
	if len(out) < min {
		return cs, false
	}
	return out, true
}

// FilterQuality applies a quality preference unless it would empty the set.
func FilterQuality(cs []model.Candidate, q model.QualityPreference) ([]model.Candidate, bool) {
	switch q {
	case model.QualityHighOnly:
		return filterSafe(cs, 1, func(c model.Candidate) bool { return c.IsHighQuality() })
	case model.QualityNoHigh:
		return filterSafe(cs, 1, func(c model.Candidate) bool { return !c.IsHighQuality() })
	}
	return cs, false
}

// FilterLanguage narrows to confirmed speakers of lang when at least min of
// them exist.
func FilterLanguage(cs []model.Candidate, lang string, min int) ([]model.Candidate, bool) {
	if lang == "" {
		return cs, false
	}
	return filterSafe(cs, min, func(c model.Candidate) bool { return MatchesLanguage(c.Voice, lang) })
}
