package oracles

import (
	"context"
	"time"

	einomodel "github.com/cloudwego/eino/components/model"

	"github.com/voice-finder/server/internal/finder/model"
	"github.com/voice-finder/server/internal/finder/parsers"
	logx "github.com/voice-finder/server/pkg/logger"
)

// Planner asks the planning oracle for a search plan.
type Planner struct {
	chat      einomodel.BaseChatModel
	modelName string
	timeout   time.Duration
}

func NewPlanner(chat einomodel.BaseChatModel, modelName string, timeout time.Duration) *Planner {
	return &Planner{chat: chat, modelName: modelName, timeout: timeout}
}

// Plan always returns a usable plan. Oracle failures produce a degraded,
// heuristic plan.
func (p *Planner) Plan(ctx context.Context, userText string) model.PlanResult {
	msgs, err := renderMessages(ctx, plannerSystemPrompt, userText, map[string]any{
		"MaxQueries": model.MaxPlanQueries,
	})
	if err != nil {
		return p.degrade(ctx, userText, err)
	}
	out, err := generate(ctx, p.chat, "planner", p.modelName, p.timeout, msgs)
	if err != nil {
		return p.degrade(ctx, userText, err)
	}
	return parsers.NormalizePlan(out.Content, userText)
}

func (p *Planner) degrade(ctx context.Context, userText string, err error) model.PlanResult {
	logx.Ctx(ctx).Warn().
		Err(err).
		Str("component", "planner").
		Msg("planning oracle failed, using heuristic plan")
	return parsers.HeuristicPlan(userText, err.Error())
}
