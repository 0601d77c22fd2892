package oracles

import (
	"context"
	"fmt"
	"time"

	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	errx "github.com/voice-finder/server/internal/core/error"
	"github.com/voice-finder/server/internal/finder/model"
	logx "github.com/voice-finder/server/pkg/logger"
)

// generate runs one bounded oracle call and logs its token cost.
func generate(ctx context.Context, chat einomodel.BaseChatModel, component, modelName string, timeout time.Duration, msgs []*schema.Message) (*schema.Message, error) {
	if chat == nil {
		return nil, errx.WrapOracle(fmt.Errorf("%s chat model is nil", component))
	}
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	start := time.Now()
	out, err := chat.Generate(ctx, msgs)
	if err != nil {
		return nil, errx.WrapOracle(fmt.Errorf("%s generate: %w", component, err))
	}
	if out == nil {
		return nil, errx.WrapOracle(fmt.Errorf("%s generate: empty message", component))
	}
	logUsage(ctx, component, modelName, out, time.Since(start))
	return out, nil
}

func logUsage(ctx context.Context, component, modelName string, out *schema.Message, took time.Duration) {
	ev := logx.Ctx(ctx).Debug().
		Str("component", component).
		Str("model", modelName).
		Dur("took", took)
	if out.ResponseMeta != nil && out.ResponseMeta.Usage != nil {
		usage := out.ResponseMeta.Usage
		inC, outC, totalC := model.ComputeCost(usage, model.ResolvePricing(modelName))
		ev = ev.
			Int("prompt_tokens", usage.PromptTokens).
			Int("completion_tokens", usage.CompletionTokens).
			Int("total_tokens", usage.TotalTokens).
			Float64("input_cost_usd", inC).
			Float64("output_cost_usd", outC).
			Float64("total_cost_usd", totalC)
	}
	ev.Msg("LLM usage")
}

// ParseTimeout reads a duration setting, falling back to def when empty or
// invalid.
func ParseTimeout(s string, def time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return def
	}
	return d
}
