package oracles

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino-ext/components/model/gemini"
	einomodel "github.com/cloudwego/eino/components/model"
	"google.golang.org/genai"

	"github.com/voice-finder/server/internal/finder/model"
	logx "github.com/voice-finder/server/pkg/logger"
)

// ChatModelConfig holds the configuration for chat model creation
type ChatModelConfig struct {
	APIKey  string
	BaseURL string
	Planner *model.PlannerModelConfig
	Ranker  *model.RankerModelConfig
}

// ChatModels holds the planner and ranker chat models
type ChatModels struct {
	Planner          einomodel.BaseChatModel
	Ranker           einomodel.BaseChatModel
	PlannerModelName string
	RankerModelName  string
}

// NewChatModels creates both oracle chat models on one Gemini client
func NewChatModels(ctx context.Context, config ChatModelConfig) (*ChatModels, error) {
	if config.Planner == nil || config.Ranker == nil {
		return nil, fmt.Errorf("oracle model config is nil")
	}

	clientCfg := &genai.ClientConfig{
		APIKey:  config.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if config.BaseURL != "" {
		clientCfg.HTTPOptions.BaseURL = config.BaseURL
	}

	client, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		logx.Error().Err(err).Msg("Error creating Gemini client")
		return nil, fmt.Errorf("error creating Gemini client: %w", err)
	}

	planner, err := newGeminiModel(ctx, client, config.Planner.OracleModelConfig)
	if err != nil {
		logx.Error().Err(err).Msg("Error creating planner model")
		return nil, fmt.Errorf("error creating planner model: %w", err)
	}

	ranker, err := newGeminiModel(ctx, client, config.Ranker.OracleModelConfig)
	if err != nil {
		logx.Error().Err(err).Msg("Error creating ranker model")
		return nil, fmt.Errorf("error creating ranker model: %w", err)
	}

	return &ChatModels{
		Planner:          planner,
		Ranker:           ranker,
		PlannerModelName: config.Planner.Model,
		RankerModelName:  config.Ranker.Model,
	}, nil
}

func newGeminiModel(ctx context.Context, client *genai.Client, cfg model.OracleModelConfig) (*gemini.ChatModel, error) {
	temperature := cfg.Temperature
	maxTokens := cfg.MaxTokens
	return gemini.NewChatModel(ctx, &gemini.Config{
		Client:      client,
		Model:       cfg.Model,
		Temperature: &temperature,
		MaxTokens:   &maxTokens,
		ThinkingConfig: &genai.ThinkingConfig{
			IncludeThoughts: false,
			ThinkingBudget:  genai.Ptr(cfg.ThinkingBudget),
		},
	})
}
