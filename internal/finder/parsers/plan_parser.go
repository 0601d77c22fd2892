package parsers

import (
	"fmt"
	"strings"

	"github.com/voice-finder/server/internal/finder/lexicon"
	"github.com/voice-finder/server/internal/finder/model"
	logx "github.com/voice-finder/server/pkg/logger"
)

// NormalizePlan turns raw planner output into a complete SearchPlan. It never
// fails: unparseable output yields the heuristic plan.
func NormalizePlan(content, userText string) (res model.PlanResult) {
	// panic safety
	defer func() {
		if r := recover(); r != nil {
			logx.Error().Str("component", "plan_parser").Msgf("panic recovered: %v", r)
			res = HeuristicPlan(userText, fmt.Sprintf("plan parser panic: %v", r))
		}
	}()

	m, err := extractObject(content)
	if err != nil {
		logx.Warn().Err(err).Str("component", "plan_parser").Msg("planner output unusable, using heuristic plan")
		return HeuristicPlan(userText, err.Error())
	}

	text := lexicon.NewText(userText)
	plan := model.SearchPlan{
		InterfaceLanguage: lexicon.NormalizeCode(stringField(m, "interface_language", "user_language")),
		VoiceLanguage:     lexicon.NormalizeCode(stringField(m, "target_voice_language", "voice_language", "language")),
		Accent:            normalizeOptional(stringField(m, "target_accent", "accent")),
		Gender:            normalizeGender(stringField(m, "target_gender", "gender")),
		UseCases:          normalizeTags(m, "use_cases", "use_case"),
		Tones:             normalizeTags(m, "tone_descriptors", "descriptives", "tones"),
		Quality:           normalizeQuality(stringField(m, "quality_preference", "quality")),
		Queries:           normalizeQueries(m, userText),
	}
	if plan.InterfaceLanguage == "" {
		plan.InterfaceLanguage = guessInterfaceLanguage(userText)
	}
	if plan.VoiceLanguage == "" {
		plan.VoiceLanguage = lexicon.DetectVoiceLanguage(text)
	}

	return model.PlanResult{Plan: plan}
}

// HeuristicPlan builds a complete plan from keyword heuristics only.
func HeuristicPlan(userText, reason string) model.PlanResult {
	text := lexicon.NewText(userText)
	quality, _ := lexicon.DetectQuality(text)
	plan := model.SearchPlan{
		InterfaceLanguage: guessInterfaceLanguage(userText),
		VoiceLanguage:     lexicon.DetectVoiceLanguage(text),
		Accent:            lexicon.DetectAccent(text),
		Gender:            lexicon.DetectGender(text),
		UseCases:          []string{},
		Tones:             []string{},
		Quality:           quality,
		Queries:           fallbackQueries(userText),
	}
	return model.PlanResult{Plan: plan, Degraded: true, Reason: reason}
}

func guessInterfaceLanguage(userText string) string {
	if l := lexicon.DetectInterfaceLanguage(userText); l != "" {
		return l
	}
	return lexicon.DefaultLanguage
}

func fallbackQueries(userText string) []string {
	q := truncateRunes(strings.TrimSpace(userText), maxQueryRunes)
	return []string{q}
}

func normalizeOptional(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "", "none", "null", "any", "n/a":
		return ""
	}
	return s
}

func normalizeGender(s string) string {
	switch g := normalizeOptional(s); g {
	case model.GenderMale, model.GenderFemale, model.GenderNeutral:
		return g
	}
	return ""
}

func normalizeQuality(s string) model.QualityPreference {
	q := model.QualityPreference(strings.ToLower(strings.TrimSpace(s)))
	if !q.Valid() {
		return model.QualityAny
	}
	return q
}

func normalizeTags(m map[string]any, keys ...string) []string {
	out := []string{}
	v, ok := first(m, keys...)
	if !ok {
		return out
	}
	arr, ok := v.([]any)
	if !ok {
		return out
	}
	seen := map[string]bool{}
	for _, item := range arr {
		s, ok := item.(string)
		if !ok {
			continue
		}
		s = strings.ToLower(strings.TrimSpace(s))
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
		if len(out) == maxTags {
			break
		}
	}
	return out
}

func normalizeQueries(m map[string]any, userText string) []string {
	v, ok := first(m, "search_queries", "queries")
	if !ok {
		return fallbackQueries(userText)
	}
	var items []any
	switch vv := v.(type) {
	case []any:
		items = vv
	case string:
		items = []any{vv}
	}
	out := make([]string, 0, model.MaxPlanQueries)
	seen := map[string]bool{}
	for _, item := range items {
		s, ok := item.(string)
		if !ok {
			continue
		}
		s = truncateRunes(strings.TrimSpace(s), maxQueryRunes)
		key := strings.ToLower(s)
		if s == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, s)
		if len(out) == model.MaxPlanQueries {
			break
		}
	}
	if len(out) == 0 {
		return fallbackQueries(userText)
	}
	return out
}
