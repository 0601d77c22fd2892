package intents

import (
	"github.com/voice-finder/server/internal/finder/lexicon"
	"github.com/voice-finder/server/internal/finder/model"
)

var (
	onlyMarkers = []string{
		"only", "just", "show", "tylko", "wylacznie", "pokaz", "nur", "zeig*", "solo", "solamente",
		"seulement", "uniquement",
	}
	fillerWords = []string{
		"voice", "voices", "glos", "glosy", "glosow", "stimme", "stimmen", "voz", "voces", "voix",
		"please", "prosze", "bitte", "the", "me", "a", "some",
	}
	anyGenderPhrases = []string{
		"any gender", "all genders", "both genders", "male and female", "female and male",
		"men and women", "women and men", "obie plcie", "kazda plec", "wszystkie plcie", "dowolna plec",
		"kobiece i meskie", "meskie i kobiece", "alle geschlechter", "beide geschlechter",
		"ambos generos", "todos los generos", "tous les genres",
	}
	listAllPhrases = []string{
		"show all", "list all", "all voices", "show more", "more voices",
		"pokaz wszystkie", "wszystkie glosy", "wiecej", "alle zeigen", "alle stimmen", "mehr",
		"mostrar todas", "todas las voces", "mas voces", "toutes les voix", "plus de voix",
	}
	fewerPhrases = []string{
		"show less", "show fewer", "fewer", "top 5", "mniej", "weniger", "menos", "moins",
	}
)

type rule struct {
	matches func(lexicon.Text) bool
	apply   func(*model.FilterState)
}

// filterRules run in order and every match is applied, so a later rule wins
// within its dimension.
var filterRules = []rule{
	{isGenderOnly(lexicon.FemaleWords), func(f *model.FilterState) { f.Gender = model.GenderOnlyFemale }},
	{isGenderOnly(lexicon.MaleWords), func(f *model.FilterState) { f.Gender = model.GenderOnlyMale }},
	{has(anyGenderPhrases), func(f *model.FilterState) { f.Gender = model.GenderAny }},
	{isHighOnly, func(f *model.FilterState) { f.Quality = model.QualityHighOnly }},
	{has(lexicon.NoHighPhrases), func(f *model.FilterState) { f.Quality = model.QualityNoHigh }},
	{has(lexicon.AnyQualityPhrases), func(f *model.FilterState) { f.Quality = model.QualityAny }},
	{has(listAllPhrases), func(f *model.FilterState) { f.ListAll = true }},
	{has(fewerPhrases), func(f *model.FilterState) { f.ListAll = false }},
}

// ApplyFilterMutations applies every matching filter rule to a copy of
// current and reports whether any rule matched.
func ApplyFilterMutations(t lexicon.Text, current model.FilterState) (model.FilterState, bool) {
	next := current
	matched := false
	for _, r := range filterRules {
		if r.matches(t) {
			r.apply(&next)
			matched = true
		}
	}
	return next, matched
}

func has(phrases []string) func(lexicon.Text) bool {
	return func(t lexicon.Text) bool { return t.Has(phrases...) }
}

// isGenderOnly needs an only-marker, or a message made of nothing but
// gender and filler words ("female voices"), so that "calm female narrator"
// stays a new search.
func isGenderOnly(words []string) func(lexicon.Text) bool {
	return func(t lexicon.Text) bool {
		if !t.Has(words...) {
			return false
		}
		return t.Has(onlyMarkers...) || onlyWords(t, words, fillerWords)
	}
}

func isHighOnly(t lexicon.Text) bool {
	if t.Has(lexicon.HighOnlyPhrases...) {
		return true
	}
	return t.Has(onlyMarkers...) && t.Has(highQualityTerms...) && !t.Has(lexicon.NoHighPhrases...)
}

func onlyWords(t lexicon.Text, vocabularies ...[]string) bool {
	for _, tok := range t.Tokens {
		single := lexicon.Text{Raw: tok, Tokens: []string{tok}}
		known := false
		for _, v := range vocabularies {
			if single.Has(v...) {
				known = true
				break
			}
		}
		if !known {
			return false
		}
	}
	return true
}
