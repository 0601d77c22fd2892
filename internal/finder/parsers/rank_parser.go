package parsers

import (
	"fmt"

	"github.com/voice-finder/server/internal/finder/lexicon"
)

// Ranking is the usable part of a ranking oracle reply.
type Ranking struct {
	Scores       map[string]float64
	UserLanguage string
}

// ParseRanking extracts per-voice scores for the submitted ids. Scores for
// unknown ids are dropped. It fails when no usable score remains.
func ParseRanking(content string, submitted []string) (Ranking, error) {
	m, err := extractObject(content)
	if err != nil {
		return Ranking{}, err
	}

	allowed := make(map[string]bool, len(submitted))
	for _, id := range submitted {
		allowed[id] = true
	}

	out := Ranking{
		Scores:       map[string]float64{},
		UserLanguage: lexicon.NormalizeCode(stringField(m, "user_language", "interface_language")),
	}
	add := func(id string, v any) {
		if !allowed[id] {
			return
		}
		if f, ok := toFloat(v); ok {
			out.Scores[id] = f
		}
	}

	raw, _ := first(m, "scores", "ranking", "results")
	switch vv := raw.(type) {
	case []any:
		for _, item := range vv {
			entry, ok := item.(map[string]any)
			if !ok {
				continue
			}
			id := stringField(entry, "voice_id", "id")
			if v, ok := first(entry, "score", "relevance"); ok {
				add(id, v)
			}
		}
	case map[string]any:
		for id, v := range vv {
			add(id, v)
		}
	}

	if len(out.Scores) == 0 {
		return out, fmt.Errorf("ranking reply has no usable scores: %q", safeSnippet(content))
	}
	return out, nil
}
