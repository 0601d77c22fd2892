// Package lexicon holds the keyword tables and text matching used to guess
// languages, accents, genders and quality wishes from free text.
package lexicon

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var foldReplacer = strings.NewReplacer("ł", "l", "ß", "ss", "ø", "o", "đ", "d")

// Fold lowercases s and strips diacritics ("Głos Męski" -> "glos meski").
func Fold(s string) string {
	s = foldReplacer.Replace(strings.ToLower(s))
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// Tokens splits folded text into letter/digit words.
func Tokens(s string) []string {
	return strings.FieldsFunc(Fold(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// Text is a pre-tokenized message, built once and matched many times.
type Text struct {
	Raw    string
	Tokens []string
}

// NewText folds and tokenizes raw.
func NewText(raw string) Text {
	return Text{Raw: raw, Tokens: Tokens(raw)}
}

// Has reports whether any phrase occurs as a contiguous token run.
// A phrase word ending in '*' matches any token with that prefix.
func (t Text) Has(phrases ...string) bool {
	for _, p := range phrases {
		if hasPhrase(t.Tokens, strings.Fields(p)) {
			return true
		}
	}
	return false
}

// Len is the number of tokens.
func (t Text) Len() int {
	return len(t.Tokens)
}

func hasPhrase(tokens, words []string) bool {
	if len(words) == 0 || len(words) > len(tokens) {
		return false
	}
	for i := 0; i+len(words) <= len(tokens); i++ {
		ok := true
		for j, w := range words {
			if !wordMatches(tokens[i+j], w) {
				ok = false
				break
			}
		}
		if ok {
			return true
		}
	}
	return false
}

func wordMatches(token, word string) bool {
	if stem, ok := strings.CutSuffix(word, "*"); ok {
		return strings.HasPrefix(token, stem)
	}
	return token == word
}
