package lexicon

import (
	"strings"
)

type languageEntry struct {
	code  string
	stems []string
}

// languageNames maps language codes to the words people use for them.
var languageNames = []languageEntry{
	{"pl", []string{"polish", "polsk*", "polnisch*", "polaco*", "polonais*"}},
	{"en", []string{"english", "angielsk*", "englisch*", "ingles*", "anglais*"}},
	{"de", []string{"german", "niemieck*", "deutsch*", "aleman*", "allemand*"}},
	{"es", []string{"spanish", "hiszpansk*", "spanisch*", "espanol*", "espagnol*"}},
	{"fr", []string{"french", "francusk*", "franzosisch*", "francais*"}},
	{"it", []string{"italian", "wlosk*", "italienisch*", "italiano*"}},
	{"pt", []string{"portuguese", "portugalsk*", "portugiesisch*", "portugues*"}},
	{"nl", []string{"dutch", "holendersk*", "niderlandzk*", "niederlandisch*"}},
	{"cs", []string{"czech", "czesk*", "tschechisch*"}},
	{"uk", []string{"ukrainian", "ukrainsk*"}},
	{"ru", []string{"russian", "rosyjsk*", "russisch*"}},
	{"ja", []string{"japanese", "japonsk*", "japanisch*"}},
	{"zh", []string{"chinese", "chinsk*", "mandarin", "chinesisch*"}},
	{"ko", []string{"korean", "koreansk*"}},
	{"hi", []string{"hindi"}},
	{"ar", []string{"arabic", "arabsk*", "arabisch*"}},
	{"tr", []string{"turkish", "tureck*", "turkisch*"}},
	{"sv", []string{"swedish", "szwedzk*", "schwedisch*"}},
}

// impliedLanguages are accent words that imply a language when no language
// is named outright.
var impliedLanguages = []languageEntry{
	{"en", []string{"american", "british", "australian", "irish", "scottish", "amerykansk*", "brytyjsk*"}},
	{"pt", []string{"brazilian", "brazylijsk*"}},
}

// DetectVoiceLanguage finds the language named in the text, or "".
func DetectVoiceLanguage(t Text) string {
	for _, table := range [][]languageEntry{languageNames, impliedLanguages} {
		for _, e := range table {
			if t.Has(e.stems...) {
				return e.code
			}
		}
	}
	return ""
}

// NamesFor returns the stems naming a language code.
func NamesFor(code string) []string {
	code = strings.ToLower(code)
	for _, e := range languageNames {
		if e.code == code {
			return e.stems
		}
	}
	return nil
}

// ValidCode reports whether s looks like an ISO 639-1/639-3 code.
func ValidCode(s string) bool {
	if len(s) < 2 || len(s) > 3 {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < 'a' || s[i] > 'z' {
			return false
		}
	}
	return true
}

// placeholderCodes look like codes but name no language.
var placeholderCodes = map[string]bool{
	"any": true, "all": true, "und": true, "nil": true, "mul": true, "zxx": true, "mis": true,
}

// NormalizeCode lowercases and trims a language code, and cuts locale
// suffixes ("pl-PL" -> "pl"). Invalid and placeholder codes become "".
func NormalizeCode(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if i := strings.IndexAny(s, "-_"); i > 0 {
		s = s[:i]
	}
	if !ValidCode(s) || placeholderCodes[s] {
		return ""
	}
	return s
}

type interfaceHints struct {
	code      string
	letters   string
	stopwords []string
}

var interfaceLanguages = []interfaceHints{
	{"pl", "ąćęłńśźż", []string{"tylko", "glos", "glosy", "glosu", "glosow", "jaki", "jakie", "ktore", "dla", "prosze", "najczesciej", "uzywane", "spokojny", "szukam", "potrzebuje", "pokaz", "wszystkie", "jezyki", "meskie", "kobiece"}},
	{"de", "äöüß", []string{"stimme", "stimmen", "bitte", "fur", "eine", "ich", "suche", "nur", "welche", "mannlich", "weiblich", "sprachen"}},
	{"es", "ñ¿¡", []string{"voz", "voces", "para", "busco", "una", "quiero", "solo", "cuales", "idiomas"}},
	{"fr", "çœ", []string{"voix", "pour", "je", "cherche", "seulement", "quelles", "langues"}},
	{"en", "", []string{"voice", "voices", "for", "the", "only", "which", "what", "with", "show", "please", "need", "want", "languages"}},
}

// DetectInterfaceLanguage guesses the language the text is written in.
// Letters specific to a language weigh more than stopwords. Returns "" when
// nothing matches.
func DetectInterfaceLanguage(raw string) string {
	lower := strings.ToLower(raw)
	t := NewText(raw)
	best, bestScore := "", 0
	for _, h := range interfaceLanguages {
		score := 0
		if h.letters != "" && strings.ContainsAny(lower, h.letters) {
			score += 3
		}
		for _, tok := range t.Tokens {
			for _, sw := range h.stopwords {
				if tok == sw {
					score++
				}
			}
		}
		if score > bestScore {
			best, bestScore = h.code, score
		}
	}
	return best
}

// DefaultLanguage is used when no language can be resolved.
const DefaultLanguage = "en"
