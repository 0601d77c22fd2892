package intents

import (
	"strings"

	"github.com/voice-finder/server/internal/finder/lexicon"
)

var (
	languagePluralWords = []string{
		"languages", "jezyki", "jezykach", "jezykow", "sprachen", "idiomas", "langues", "lenguas",
	}
	questionWords = []string{
		"what", "which", "list", "show", "jakie", "jakich", "ktore", "ktorych", "pokaz", "wymien",
		"welche", "zeig*", "que", "cuales", "quels", "quelles", "montre*",
	}
	highQualityTerms = []string{
		"high quality", "hq", "wysokiej jakosci", "wysoka jakosc", "hohe qualitat", "hoher qualitat",
		"alta calidad", "haute qualite",
	}
	listReferences = []string{
		"these", "those", "them", "ones", "this list", "the list", "from the list", "above",
		"tych", "tego", "tej listy", "z listy", "powyzsz*", "diese*", "davon", "der liste",
		"estas", "estos", "de la lista", "ces", "celles", "ceux", "de la liste",
	}
	whichWords = []string{
		"which", "what", "any", "ktore", "ktory", "jakie", "czy", "welche", "cuales", "quels", "quelles",
	}
)

// IsLanguagesSummary asks which languages the current shortlist covers.
func IsLanguagesSummary(t lexicon.Text) bool {
	if !t.Has(languagePluralWords...) {
		return false
	}
	return t.Has(questionWords...) || t.Len() <= 2 || strings.Contains(t.Raw, "?")
}

// IsWhichHighQuality asks which of the current voices are high quality.
func IsWhichHighQuality(t lexicon.Text) bool {
	return t.Has(whichWords...) && t.Has(highQualityTerms...)
}

// RefersToList reports whether the message points back at the shown voices.
func RefersToList(t lexicon.Text) bool {
	return t.Has(listReferences...)
}
