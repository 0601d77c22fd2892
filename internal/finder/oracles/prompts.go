package oracles

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/schema"
)

//go:embed template/planner_prompt.txt
var plannerSystemPrompt string

//go:embed template/ranker_prompt.txt
var rankerSystemPrompt string

// renderMessages formats a system template and a user message through the
// eino prompt component so prompt callbacks fire.
func renderMessages(ctx context.Context, system, user string, vars map[string]any) ([]*schema.Message, error) {
	tpl := prompt.FromMessages(
		schema.GoTemplate,
		schema.SystemMessage(system),
		schema.UserMessage("{{.UserInput}}"),
	)
	all := map[string]any{"UserInput": user}
	for k, v := range vars {
		all[k] = v
	}
	msgs, err := tpl.Format(ctx, all)
	if err != nil {
		return nil, fmt.Errorf("prompt render: %w", err)
	}
	if len(msgs) != 2 || msgs[0] == nil || msgs[1] == nil {
		return nil, fmt.Errorf("prompt render: unexpected result")
	}
	return msgs, nil
}
