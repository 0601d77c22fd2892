package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/voice-finder/server/internal/core"
	"github.com/voice-finder/server/internal/finder/bot"
	"github.com/voice-finder/server/internal/finder/catalog"
	"github.com/voice-finder/server/internal/finder/graph"
	"github.com/voice-finder/server/internal/finder/model"
	"github.com/voice-finder/server/internal/finder/oracles"
	"github.com/voice-finder/server/internal/finder/presenter"
	"github.com/voice-finder/server/internal/finder/retrieval"
	"github.com/voice-finder/server/internal/finder/sessions"
	"github.com/voice-finder/server/internal/transport/httpapi"
	"github.com/voice-finder/server/internal/transport/slackbot"
	logx "github.com/voice-finder/server/pkg/logger"
	pkgredis "github.com/voice-finder/server/pkg/redis"
)

// AppConfig defines all configurable parameters of the voice finder,
// sourced from environment variables (loaded from .env for local runs).
type AppConfig struct {
	Environment core.Environment `envconfig:"ENVIRONMENT" default:"development"`
	LogLevel    string           `envconfig:"LOG_LEVEL"`

	// Infrastructure
	Redis pkgredis.Config

	// LLM provider
	APIKey  string `envconfig:"GEMINI_API_KEY" required:"true"`
	BaseURL string `envconfig:"GEMINI_BASE_URL"`

	// Finder configs
	Planner   model.PlannerModelConfig
	Ranker    model.RankerModelConfig
	Catalog   model.CatalogConfig
	Session   model.SessionConfig
	Presenter model.PresenterConfig
	Transport model.TransportConfig
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load .env file
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "Warning: Could not load .env file: %v\n", err)
	}

	// Load structured config from env
	var envCfg AppConfig
	if err := envconfig.Process("", &envCfg); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to process environment config: %v\n", err)
		os.Exit(1)
	}

	logx.Init(logx.LoggerOpts{Environment: envCfg.Environment, Level: envCfg.LogLevel})

	if err := run(ctx, envCfg); err != nil {
		logx.Fatal().Err(err).Msg("voice finder stopped")
	}
	logx.Info().Msg("voice finder stopped")
}

func run(ctx context.Context, cfg AppConfig) error {
	store, locker, closeStore, err := newStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	cms, err := oracles.NewChatModels(ctx, oracles.ChatModelConfig{
		APIKey:  cfg.APIKey,
		BaseURL: cfg.BaseURL,
		Planner: &cfg.Planner,
		Ranker:  &cfg.Ranker,
	})
	if err != nil {
		return err
	}

	catalogTimeout := oracles.ParseTimeout(cfg.Catalog.Timeout, 15*time.Second)
	client := catalog.NewClient(cfg.Catalog.APIKey, cfg.Catalog.BaseURL, catalogTimeout)

	runner, err := graph.BuildSearchGraph(ctx, &graph.GraphConfig{
		Planner: oracles.NewPlanner(cms.Planner, cms.PlannerModelName,
			oracles.ParseTimeout(cfg.Planner.Timeout, 20*time.Second)),
		Retriever: retrieval.NewRetriever(client, retrieval.Config{
			PageSize: cfg.Catalog.PageSize,
			Timeout:  catalogTimeout,
		}),
		Ranker: oracles.NewRanker(cms.Ranker, cms.RankerModelName,
			oracles.ParseTimeout(cfg.Ranker.Timeout, 20*time.Second)),
	})
	if err != nil {
		return err
	}

	finder := bot.New(runner, store, locker, presenter.New(cfg.Presenter.LinkBase), cfg.Presenter.DefaultLanguage)

	switch strings.ToLower(cfg.Transport.Kind) {
	case "slack":
		listener, err := slackbot.NewListener(cfg.Transport.SlackBotToken, cfg.Transport.SlackAppToken, finder)
		if err != nil {
			return err
		}
		logx.Info().Msg("listening for Slack mentions")
		if err := listener.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			return fmt.Errorf("slack listener: %w", err)
		}
		return nil
	case "http":
		app := httpapi.New(finder)
		go func() {
			<-ctx.Done()
			_ = app.ShutdownWithTimeout(5 * time.Second)
		}()
		logx.Info().Str("addr", cfg.Transport.HTTPAddr).Msg("listening for HTTP messages")
		return app.Listen(cfg.Transport.HTTPAddr)
	default:
		return fmt.Errorf("unknown TRANSPORT %q", cfg.Transport.Kind)
	}
}

// newStore returns the session store and the per-thread locker for the
// configured backend. The redis backend locks threads in Redis so replicas
// sharing it never handle the same thread at once.
func newStore(ctx context.Context, cfg AppConfig) (sessions.Store, sessions.Locker, func(), error) {
	ttl, err := time.ParseDuration(cfg.Session.TTL)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("invalid SESSION_TTL %q: %w", cfg.Session.TTL, err)
	}

	switch strings.ToLower(cfg.Session.Backend) {
	case "memory":
		return sessions.NewMemoryStore(ttl), sessions.NewKeyedLocker(), func() {}, nil
	case "redis":
		lockTTL := oracles.ParseTimeout(cfg.Session.LockTTL, sessions.DefaultLockTTL)
		rdb, err := cfg.Redis.New(ctx)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("failed to initialise Redis client: %w", err)
		}
		logx.Info().Msg("Connected to Redis successfully")
		store := sessions.NewRedisStore(rdb, cfg.Redis.KeyPrefix, ttl)
		locker := sessions.NewRedisLocker(rdb, cfg.Redis.KeyPrefix, lockTTL)
		return store, locker, func() { _ = rdb.Close() }, nil
	default:
		return nil, nil, nil, fmt.Errorf("unknown SESSION_BACKEND %q", cfg.Session.Backend)
	}
}
