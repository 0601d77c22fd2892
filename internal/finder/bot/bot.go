// Package bot runs the per-thread conversation state machine: the first
// message of a thread searches, later ones refine, inspect or replace the
// shortlist.
package bot

import (
	"context"
	"fmt"
	"runtime/debug"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/voice-finder/server/internal/finder/graph"
	"github.com/voice-finder/server/internal/finder/intents"
	"github.com/voice-finder/server/internal/finder/model"
	"github.com/voice-finder/server/internal/finder/presenter"
	"github.com/voice-finder/server/internal/finder/sessions"
	logx "github.com/voice-finder/server/pkg/logger"
)

// Bot answers inbound messages. It is safe for concurrent use; messages of
// one thread are handled one at a time.
type Bot struct {
	search          graph.Runner
	store           sessions.Store
	locker          sessions.Locker
	presenter       *presenter.Presenter
	defaultLanguage string
	now             func() time.Time
}

// New builds a Bot. A nil locker serializes threads within this process
// only.
func New(search graph.Runner, store sessions.Store, locker sessions.Locker, p *presenter.Presenter, defaultLanguage string) *Bot {
	if locker == nil {
		locker = sessions.NewKeyedLocker()
	}
	return &Bot{
		search:          search,
		store:           store,
		locker:          locker,
		presenter:       p,
		defaultLanguage: defaultLanguage,
		now:             time.Now,
	}
}

// Handle returns the reply for msg. Search failures are answered with a
// localized message; the error is only set when no reply can be produced.
func (b *Bot) Handle(ctx context.Context, msg model.InboundMessage) (string, error) {
	threadID := msg.ThreadID()
	log := logx.With(map[string]string{
		"thread_id":  threadID,
		"request_id": uuid.NewString(),
	})
	ctx = log.WithContext(ctx)

	unlock, err := b.locker.Lock(ctx, threadID)
	if err != nil {
		return "", fmt.Errorf("wait for thread %s: %w", threadID, err)
	}
	defer unlock()

	text := strings.TrimSpace(msg.Text)

	session, ok, err := b.store.Get(ctx, threadID)
	if err != nil {
		log.Warn().Err(err).Msg("session lookup failed, treating thread as new")
		ok = false
	}
	if !ok {
		return b.newSearch(ctx, &log, threadID, text), nil
	}

	if text == "" {
		return b.presenter.Render(session), nil
	}

	decision := intents.Classify(text, session.Filter)
	log.Debug().Str("intent", decision.Kind.String()).Msg("follow-up classified")

	switch decision.Kind {
	case intents.KindLanguagesSummary:
		return b.presenter.RenderLanguages(session), nil
	case intents.KindWhichHighQuality:
		return b.presenter.RenderHighQuality(session), nil
	case intents.KindFilter:
		session.Filter = decision.Filter
		session.UpdatedAt = b.now()
		b.save(ctx, &log, session)
		return b.presenter.Render(session), nil
	}
	return b.newSearch(ctx, &log, threadID, text), nil
}

// newSearch runs the pipeline and replaces the thread's session. Nothing is
// stored when the search fails or finds nothing.
func (b *Bot) newSearch(ctx context.Context, log *zerolog.Logger, threadID, text string) (reply string) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().
				Str("panic", fmt.Sprint(r)).
				Bytes("stack", debug.Stack()).
				Msg("search panicked")
			reply = b.presenter.GenericError(b.defaultLanguage)
		}
	}()

	if text == "" {
		return b.presenter.NoResults(b.defaultLanguage)
	}

	out, err := b.search.Search(ctx, text)
	if err != nil {
		log.Error().Err(err).Msg("search failed")
		return b.presenter.GenericError(b.defaultLanguage)
	}
	if len(out.Candidates) == 0 {
		log.Info().Msg("search found no voices")
		return b.presenter.NoResults(out.UILanguage)
	}

	now := b.now()
	plan := out.Plan.Plan
	if out.TopUsage {
		plan.VoiceLanguage = out.Language
	}
	session := &model.Session{
		ThreadID:   threadID,
		Query:      text,
		Plan:       plan,
		Candidates: out.Candidates,
		Scores:     out.Scores,
		UILanguage: out.UILanguage,
		Filter:     model.DefaultFilter(),
		TopUsage:   out.TopUsage,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	b.save(ctx, log, session)

	log.Info().
		Int("candidates", len(session.Candidates)).
		Bool("top_usage", session.TopUsage).
		Bool("plan_degraded", out.Plan.Degraded).
		Bool("ranking_degraded", out.Ranking.Degraded).
		Str("ui_language", session.UILanguage).
		Msg("search finished")
	return b.presenter.Render(session)
}

func (b *Bot) save(ctx context.Context, log *zerolog.Logger, s *model.Session) {
	if err := b.store.Put(ctx, s); err != nil {
		log.Error().Err(err).Msg("failed to store session")
	}
}
