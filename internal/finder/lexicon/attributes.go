package lexicon

import "github.com/voice-finder/server/internal/finder/model"

var accents = []struct {
	accent string
	stems  []string
}{
	{"american", []string{"american", "amerykansk*", "amerikanisch*", "americano*", "americain*"}},
	{"british", []string{"british", "uk accent", "brytyjsk*", "britisch*", "britanico*", "britannique*"}},
	{"australian", []string{"australian", "australijsk*", "australisch*"}},
	{"irish", []string{"irish", "irlandzk*", "irisch*"}},
	{"scottish", []string{"scottish", "szkock*", "schottisch*"}},
	{"indian", []string{"indian", "indyjsk*", "indisch*"}},
	{"canadian", []string{"canadian", "kanadyjsk*"}},
	{"african", []string{"african", "afrykansk*"}},
}

// DetectAccent returns the first accent named in the text, or "".
func DetectAccent(t Text) string {
	for _, a := range accents {
		if t.Has(a.stems...) {
			return a.accent
		}
	}
	return ""
}

var (
	FemaleWords  = []string{"female", "females", "woman", "women", "girl", "feminine", "kobiec*", "kobiet*", "damsk*", "zensk*", "weiblich*", "frau*", "femenin*", "mujer*", "femme*", "feminin*"}
	MaleWords    = []string{"male", "males", "man", "men", "guy", "masculine", "mesk*", "mezczyz*", "mannlich*", "mann", "manner", "masculin*", "hombre*", "homme*"}
	NeutralWords = []string{"neutral", "androgyn*", "neutraln*"}
)

// DetectGender returns the plan gender named in the text, or "".
func DetectGender(t Text) string {
	switch {
	case t.Has(FemaleWords...):
		return model.GenderFemale
	case t.Has(MaleWords...):
		return model.GenderMale
	case t.Has(NeutralWords...):
		return model.GenderNeutral
	}
	return ""
}

var (
	HighOnlyPhrases = []string{
		"high quality only", "only high quality", "only hq", "hq only", "just high quality",
		"tylko hq", "tylko wysokiej jakosci", "tylko wysoka jakosc", "wylacznie hq", "wylacznie wysokiej jakosci",
		"nur hq", "nur hohe qualitat", "solo hq", "solo alta calidad", "seulement hq",
	}
	NoHighPhrases = []string{
		"no high quality", "without high quality", "not high quality", "no hq", "without hq",
		"only standard", "standard only", "bez hq", "bez wysokiej jakosci", "tylko standard*",
		"ohne hq", "sin hq", "sans hq",
	}
	AnyQualityPhrases = []string{
		"any quality", "all quality", "all qualities", "every quality",
		"dowolna jakosc", "kazda jakosc", "wszystkie jakosci", "jakakolwiek jakosc",
		"beliebige qualitat", "cualquier calidad",
	}
)

// DetectQuality returns the quality wish stated in the text and whether one
// was stated at all.
func DetectQuality(t Text) (model.QualityPreference, bool) {
	switch {
	case t.Has(NoHighPhrases...):
		return model.QualityNoHigh, true
	case t.Has(HighOnlyPhrases...):
		return model.QualityHighOnly, true
	case t.Has(AnyQualityPhrases...):
		return model.QualityAny, true
	}
	return model.QualityAny, false
}
