package intents

import (
	"github.com/voice-finder/server/internal/finder/lexicon"
	"github.com/voice-finder/server/internal/finder/model"
)

var topUsagePhrases = []string{
	"most used", "most popular", "top voices", "popular voices", "most cloned", "trending voices",
	"najczesciej uzyw*", "najczesciej wybier*", "najpopularniejsz*", "najbardziej popularn*", "top glos*",
	"meistgenutzt*", "meist genutzt*", "am haufigsten", "beliebtest*",
	"mas usad*", "mas utilizad*", "mas popular*",
	"plus utilise*", "plus populaire*",
}

// IsTopUsage asks for the most used voices of a language.
func IsTopUsage(t lexicon.Text) bool {
	return t.Has(topUsagePhrases...)
}

// TopUsageLanguage resolves the language for a top-usage request from the
// plan, then from the text. ok is false when neither names one.
func TopUsageLanguage(t lexicon.Text, plan model.SearchPlan) (string, bool) {
	if lang := lexicon.NormalizeCode(plan.VoiceLanguage); lang != "" {
		return lang, true
	}
	if lang := lexicon.DetectVoiceLanguage(t); lang != "" {
		return lang, true
	}
	return "", false
}
