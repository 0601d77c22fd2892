package oracles

import (
	"context"
	"time"

	"github.com/bytedance/sonic"
	einomodel "github.com/cloudwego/eino/components/model"

	errx "github.com/voice-finder/server/internal/core/error"
	"github.com/voice-finder/server/internal/finder/model"
	"github.com/voice-finder/server/internal/finder/parsers"
)

const (
	// MaxRankCandidates is how many candidates the ranking oracle sees.
	MaxRankCandidates   = 80
	maxDescriptionRunes = 160
)

// Ranker asks the ranking oracle to score candidates.
type Ranker struct {
	chat      einomodel.BaseChatModel
	modelName string
	timeout   time.Duration
}

func NewRanker(chat einomodel.BaseChatModel, modelName string, timeout time.Duration) *Ranker {
	return &Ranker{chat: chat, modelName: modelName, timeout: timeout}
}

type candidateSummary struct {
	VoiceID     string `json:"voice_id"`
	Name        string `json:"name"`
	Language    string `json:"language,omitempty"`
	Accent      string `json:"accent,omitempty"`
	Gender      string `json:"gender,omitempty"`
	Age         string `json:"age,omitempty"`
	UseCase     string `json:"use_case,omitempty"`
	Descriptive string `json:"descriptive,omitempty"`
	Category    string `json:"category,omitempty"`
	Description string `json:"description,omitempty"`
	HighQuality bool   `json:"high_quality"`
	Usage       int64  `json:"usage"`
}

// summarize builds the bounded payload for the first MaxRankCandidates
// candidates and returns it with the submitted ids.
func summarize(cs []model.Candidate) ([]candidateSummary, []string) {
	if len(cs) > MaxRankCandidates {
		cs = cs[:MaxRankCandidates]
	}
	out := make([]candidateSummary, len(cs))
	ids := make([]string, len(cs))
	for i, c := range cs {
		out[i] = candidateSummary{
			VoiceID:     c.VoiceID,
			Name:        c.Name,
			Language:    c.PrimaryLanguage(),
			Accent:      c.Accent,
			Gender:      c.ResolvedGender(),
			Age:         c.Age,
			UseCase:     c.UseCase,
			Descriptive: c.Descriptive,
			Category:    c.Category,
			Description: truncate(c.Description, maxDescriptionRunes),
			HighQuality: c.IsHighQuality(),
			Usage:       c.UsageProxy(),
		}
		ids[i] = c.VoiceID
	}
	return out, ids
}

// Rank returns the parsed oracle scores. Any error means the caller should
// use positional scoring.
func (r *Ranker) Rank(ctx context.Context, userText string, plan model.SearchPlan, cs []model.Candidate) (parsers.Ranking, error) {
	summaries, ids := summarize(cs)
	if len(summaries) == 0 {
		return parsers.Ranking{}, nil
	}
	payload, err := sonic.MarshalString(summaries)
	if err != nil {
		return parsers.Ranking{}, errx.WrapOracle(err)
	}
	planJSON, err := sonic.MarshalString(plan)
	if err != nil {
		return parsers.Ranking{}, errx.WrapOracle(err)
	}

	msgs, err := renderMessages(ctx, rankerSystemPrompt, "Candidates:\n"+payload, map[string]any{
		"UserText": userText,
		"Plan":     planJSON,
	})
	if err != nil {
		return parsers.Ranking{}, errx.WrapOracle(err)
	}
	out, err := generate(ctx, r.chat, "ranker", r.modelName, r.timeout, msgs)
	if err != nil {
		return parsers.Ranking{}, err
	}
	ranking, err := parsers.ParseRanking(out.Content, ids)
	if err != nil {
		return parsers.Ranking{}, errx.WrapOracle(err)
	}
	return ranking, nil
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
