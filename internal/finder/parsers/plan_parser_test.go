package parsers

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voice-finder/server/internal/finder/model"
)

func TestNormalizePlan_WellFormed(t *testing.T) {
	content := "```json\n" + `{
		"interface_language": "en",
		"target_voice_language": "en",
		"target_accent": "American",
		"target_gender": "male",
		"use_cases": ["conversational", "Conversational", 3],
		"tone_descriptors": ["calm"],
		"quality_preference": "high_only",
		"search_queries": ["calm support agent", "  ", "friendly customer service"]
	}` + "\n```"

	res := NormalizePlan(content, "calm american male voice for a support agent, high quality only")
	require.False(t, res.Degraded)

	p := res.Plan
	assert.Equal(t, "en", p.InterfaceLanguage)
	assert.Equal(t, "en", p.VoiceLanguage)
	assert.Equal(t, "american", p.Accent)
	assert.Equal(t, model.GenderMale, p.Gender)
	assert.Equal(t, []string{"conversational"}, p.UseCases)
	assert.Equal(t, []string{"calm"}, p.Tones)
	assert.Equal(t, model.QualityHighOnly, p.Quality)
	assert.Equal(t, []string{"calm support agent", "friendly customer service"}, p.Queries)
}

func TestNormalizePlan_Repairs(t *testing.T) {
	tests := []struct {
		name    string
		content string
		text    string
		check   func(t *testing.T, p model.SearchPlan)
	}{
		{
			name:    "missing queries fall back to raw text",
			content: `{"interface_language":"pl"}`,
			text:    "spokojny polski głos",
			check: func(t *testing.T, p model.SearchPlan) {
				assert.Equal(t, []string{"spokojny polski głos"}, p.Queries)
				assert.Equal(t, "pl", p.VoiceLanguage, "voice language guessed from text")
			},
		},
		{
			name:    "placeholder voice language is detected from text",
			content: `{"target_voice_language":"any","interface_language":"und"}`,
			text:    "polish narrator",
			check: func(t *testing.T, p model.SearchPlan) {
				assert.Equal(t, "pl", p.VoiceLanguage)
				assert.Equal(t, "en", p.InterfaceLanguage)
			},
		},
		{
			name:    "empty query list",
			content: `{"search_queries": []}`,
			text:    "warm narrator",
			check: func(t *testing.T, p model.SearchPlan) {
				assert.Equal(t, []string{"warm narrator"}, p.Queries)
			},
		},
		{
			name:    "invalid interface language guessed from text",
			content: `{"interface_language": "Polish!!"}`,
			text:    "tylko kobiece głosy",
			check: func(t *testing.T, p model.SearchPlan) {
				assert.Equal(t, "pl", p.InterfaceLanguage)
			},
		},
		{
			name:    "unknown interface language defaults to en",
			content: `{}`,
			text:    "???",
			check: func(t *testing.T, p model.SearchPlan) {
				assert.Equal(t, "en", p.InterfaceLanguage)
			},
		},
		{
			name:    "wrong typed lists become empty",
			content: `{"use_cases": "narration", "tone_descriptors": {"a": 1}}`,
			text:    "narrator",
			check: func(t *testing.T, p model.SearchPlan) {
				assert.Empty(t, p.UseCases)
				assert.NotNil(t, p.UseCases)
				assert.Empty(t, p.Tones)
			},
		},
		{
			name:    "unknown quality becomes any",
			content: `{"quality_preference": "premium"}`,
			text:    "x",
			check: func(t *testing.T, p model.SearchPlan) {
				assert.Equal(t, model.QualityAny, p.Quality)
			},
		},
		{
			name:    "empty optional strings are absent",
			content: `{"target_accent": "", "target_gender": "", "target_voice_language": ""}`,
			text:    "a narrator",
			check: func(t *testing.T, p model.SearchPlan) {
				assert.Empty(t, p.Accent)
				assert.Empty(t, p.Gender)
				assert.Empty(t, p.VoiceLanguage)
			},
		},
		{
			name:    "gender outside the enum is absent",
			content: `{"target_gender": "robot"}`,
			text:    "x",
			check: func(t *testing.T, p model.SearchPlan) {
				assert.Empty(t, p.Gender)
			},
		},
		{
			name:    "queries capped at seven",
			content: `{"search_queries": ["a","b","c","d","e","f","g","h","i"]}`,
			text:    "x",
			check: func(t *testing.T, p model.SearchPlan) {
				assert.Len(t, p.Queries, model.MaxPlanQueries)
			},
		},
		{
			name:    "single string query accepted",
			content: `{"search_queries": "deep trailer voice"}`,
			text:    "x",
			check: func(t *testing.T, p model.SearchPlan) {
				assert.Equal(t, []string{"deep trailer voice"}, p.Queries)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := NormalizePlan(tt.content, tt.text)
			assert.False(t, res.Degraded)
			assert.NotEmpty(t, res.Plan.Queries)
			assert.True(t, res.Plan.Quality.Valid())
			tt.check(t, res.Plan)
		})
	}
}

func TestNormalizePlan_GarbageFallsBackToHeuristics(t *testing.T) {
	res := NormalizePlan("sorry, I cannot help with that", "calm american male voice for a support agent, high quality only")
	require.True(t, res.Degraded)
	assert.NotEmpty(t, res.Reason)

	p := res.Plan
	assert.Equal(t, "en", p.InterfaceLanguage)
	assert.Equal(t, "american", p.Accent)
	assert.Equal(t, model.GenderMale, p.Gender)
	assert.Equal(t, model.QualityHighOnly, p.Quality)
	assert.Equal(t, []string{"calm american male voice for a support agent, high quality only"}, p.Queries)
}

func TestHeuristicPlan_LongTextTruncated(t *testing.T) {
	long := strings.Repeat("ą", 500)
	res := HeuristicPlan(long, "timeout")
	assert.Len(t, []rune(res.Plan.Queries[0]), maxQueryRunes)
	assert.Equal(t, "timeout", res.Reason)
}
