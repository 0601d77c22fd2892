package graph

import (
	"context"

	"github.com/voice-finder/server/internal/finder/intents"
	"github.com/voice-finder/server/internal/finder/lexicon"
	"github.com/voice-finder/server/internal/finder/model"
	"github.com/voice-finder/server/internal/finder/ranking"
	logx "github.com/voice-finder/server/pkg/logger"
)

// plan normalizes the request and decides whether the top-usage mode
// applies.
func (b *GraphBuilder) plan(ctx context.Context, in *model.SearchOutcome) (*model.SearchOutcome, error) {
	in.Plan = b.config.Planner.Plan(ctx, in.Query)

	text := lexicon.NewText(in.Query)
	if intents.IsTopUsage(text) {
		if lang, ok := intents.TopUsageLanguage(text, in.Plan.Plan); ok {
			in.TopUsage = true
			in.Language = lang
		} else {
			logx.Ctx(ctx).Debug().Msg("top usage requested without a language, using generic search")
		}
	}

	logx.Ctx(ctx).Debug().
		Bool("degraded", in.Plan.Degraded).
		Bool("top_usage", in.TopUsage).
		Str("voice_language", in.Plan.Plan.VoiceLanguage).
		Strs("queries", in.Plan.Plan.Queries).
		Msg("plan ready")
	return in, nil
}

func (b *GraphBuilder) topUsage(ctx context.Context, in *model.SearchOutcome) (*model.SearchOutcome, error) {
	in.Candidates, in.Scores = b.config.Retriever.TopUsage(ctx, in.Language)
	in.UILanguage = ranking.ResolveUILanguage(in.Plan.Plan.InterfaceLanguage, lexicon.DetectInterfaceLanguage(in.Query))
	in.Ranking = model.RankResult{Scores: in.Scores, UserLanguage: in.UILanguage}
	return in, nil
}

func (b *GraphBuilder) retrieve(ctx context.Context, in *model.SearchOutcome) (*model.SearchOutcome, error) {
	in.Candidates = b.config.Retriever.Retrieve(ctx, in.Plan.Plan)
	return in, nil
}

// rank skips the oracle when there is nothing to rank.
func (b *GraphBuilder) rank(ctx context.Context, in *model.SearchOutcome) (*model.SearchOutcome, error) {
	plan := in.Plan.Plan
	if len(in.Candidates) == 0 {
		in.UILanguage = ranking.ResolveUILanguage(plan.InterfaceLanguage, lexicon.DetectInterfaceLanguage(in.Query))
		in.Scores = map[string]float64{}
		in.Ranking = model.RankResult{Scores: in.Scores, UserLanguage: in.UILanguage}
		return in, nil
	}

	reply, err := b.config.Ranker.Rank(ctx, in.Query, plan, in.Candidates)
	if err != nil {
		logx.Ctx(ctx).Warn().Err(err).Str("component", "ranker").Msg("ranking oracle failed, using positional scores")
	}
	in.Ranking = ranking.Rank(in.Candidates, reply, err, plan, in.Query)
	in.Scores = in.Ranking.Scores
	in.UILanguage = in.Ranking.UserLanguage
	return in, nil
}
