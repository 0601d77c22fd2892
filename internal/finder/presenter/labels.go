package presenter

import "github.com/voice-finder/server/internal/finder/lexicon"

// Labels is the localized text used by the presenter. Format verbs are
// documented per field.
type Labels struct {
	Intro         string // %s: user query
	IntroTopUsage string // %s: language code
	Standard      string
	High          string
	Female        string
	Male          string
	Other         string
	NoVoices      string

	FooterGeneric string
	FooterFemale  string
	FooterMale    string

	Languages       string
	UnknownLanguage string
	HighQualityList string
	NoHighQuality   string
	NoResults       string
	GenericError    string
}

var labels = map[string]Labels{
	"en": {
		Intro:           "Voices for \"%s\":",
		IntroTopUsage:   "Most used voices for language `%s`:",
		Standard:        "Standard voices",
		High:            "High-quality voices",
		Female:          "Female",
		Male:            "Male",
		Other:           "Other",
		NoVoices:        "No voices in this section.",
		FooterGeneric:   "Refine with \"only female\", \"only male\", \"only HQ\" or \"show all\".",
		FooterFemale:    "Showing female voices only. Say \"any gender\" to see everyone.",
		FooterMale:      "Showing male voices only. Say \"any gender\" to see everyone.",
		Languages:       "Languages",
		UnknownLanguage: "unknown",
		HighQualityList: "High-quality voices in this list:",
		NoHighQuality:   "None of these voices are high quality.",
		NoResults:       "I could not find any voices for that. Try describing it differently.",
		GenericError:    "Something went wrong while searching. Please try again.",
	},
	"pl": {
		Intro:           "Głosy dla \"%s\":",
		IntroTopUsage:   "Najczęściej używane głosy dla języka `%s`:",
		Standard:        "Głosy standardowe",
		High:            "Głosy wysokiej jakości",
		Female:          "Kobiece",
		Male:            "Męskie",
		Other:           "Inne",
		NoVoices:        "Brak głosów w tej sekcji.",
		FooterGeneric:   "Zawęź wyniki: \"tylko kobiece\", \"tylko męskie\", \"tylko HQ\" albo \"pokaż wszystkie\".",
		FooterFemale:    "Pokazuję tylko głosy kobiece. Napisz \"obie płcie\", aby zobaczyć wszystkie.",
		FooterMale:      "Pokazuję tylko głosy męskie. Napisz \"obie płcie\", aby zobaczyć wszystkie.",
		Languages:       "Języki",
		UnknownLanguage: "nieznany",
		HighQualityList: "Głosy wysokiej jakości na tej liście:",
		NoHighQuality:   "Żaden z tych głosów nie jest wysokiej jakości.",
		NoResults:       "Nie znalazłem żadnych głosów. Spróbuj opisać to inaczej.",
		GenericError:    "Coś poszło nie tak podczas wyszukiwania. Spróbuj ponownie.",
	},
	"de": {
		Intro:           "Stimmen für \"%s\":",
		IntroTopUsage:   "Meistgenutzte Stimmen für die Sprache `%s`:",
		Standard:        "Standardstimmen",
		High:            "Hochwertige Stimmen",
		Female:          "Weiblich",
		Male:            "Männlich",
		Other:           "Andere",
		NoVoices:        "Keine Stimmen in diesem Abschnitt.",
		FooterGeneric:   "Verfeinern mit \"nur weiblich\", \"nur männlich\", \"nur HQ\" oder \"alle zeigen\".",
		FooterFemale:    "Nur weibliche Stimmen. Schreibe \"alle Geschlechter\", um alle zu sehen.",
		FooterMale:      "Nur männliche Stimmen. Schreibe \"alle Geschlechter\", um alle zu sehen.",
		Languages:       "Sprachen",
		UnknownLanguage: "unbekannt",
		HighQualityList: "Hochwertige Stimmen in dieser Liste:",
		NoHighQuality:   "Keine dieser Stimmen ist hochwertig.",
		NoResults:       "Ich habe keine passenden Stimmen gefunden. Beschreibe es bitte anders.",
		GenericError:    "Bei der Suche ist etwas schiefgelaufen. Bitte versuche es erneut.",
	},
	"es": {
		Intro:           "Voces para \"%s\":",
		IntroTopUsage:   "Voces más usadas para el idioma `%s`:",
		Standard:        "Voces estándar",
		High:            "Voces de alta calidad",
		Female:          "Femeninas",
		Male:            "Masculinas",
		Other:           "Otras",
		NoVoices:        "No hay voces en esta sección.",
		FooterGeneric:   "Filtra con \"solo femeninas\", \"solo masculinas\", \"solo HQ\" o \"mostrar todas\".",
		FooterFemale:    "Solo voces femeninas. Escribe \"ambos generos\" para ver todas.",
		FooterMale:      "Solo voces masculinas. Escribe \"ambos generos\" para ver todas.",
		Languages:       "Idiomas",
		UnknownLanguage: "desconocido",
		HighQualityList: "Voces de alta calidad en esta lista:",
		NoHighQuality:   "Ninguna de estas voces es de alta calidad.",
		NoResults:       "No encontré voces para eso. Prueba a describirlo de otra forma.",
		GenericError:    "Algo salió mal durante la búsqueda. Inténtalo de nuevo.",
	},
}

// LabelsFor returns the labels of a language, English when unknown.
func LabelsFor(lang string) Labels {
	if l, ok := labels[lexicon.NormalizeCode(lang)]; ok {
		return l
	}
	return labels[lexicon.DefaultLanguage]
}
