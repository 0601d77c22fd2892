package retrieval

import (
	"context"
	"time"

	"github.com/voice-finder/server/internal/finder/catalog"
	"github.com/voice-finder/server/internal/finder/model"
	logx "github.com/voice-finder/server/pkg/logger"
)

const (
	MaxPrimaryQueries    = 5
	PrimarySufficient    = 50
	LanguageTierBelow    = 25
	FallbackTierBelow    = 15
	FallbackCap          = 10
	LanguageFilterMinHit = 8

	TopUsageFetch = 100
	TopUsageCap   = 80
)

// Config bounds catalog calls.
type Config struct {
	PageSize int
	Timeout  time.Duration
}

// Retriever runs the tiered candidate fetch.
type Retriever struct {
	catalog catalog.Searcher
	cfg     Config
}

func NewRetriever(c catalog.Searcher, cfg Config) *Retriever {
	if cfg.PageSize <= 0 {
		cfg.PageSize = 30
	}
	return &Retriever{catalog: c, cfg: cfg}
}

// Retrieve returns deduplicated, tier-tagged candidates for the plan.
// Catalog failures only empty the failing tier.
func (r *Retriever) Retrieve(ctx context.Context, plan model.SearchPlan) []model.Candidate {
	p := newPool()

	for i, q := range plan.Queries {
		if i >= MaxPrimaryQueries || p.len() >= PrimarySufficient {
			break
		}
		p.add(r.fetch(ctx, model.TierPrimary, catalog.Query{
			PageSize:     r.cfg.PageSize,
			Search:       q,
			Language:     plan.VoiceLanguage,
			Accent:       plan.Accent,
			Gender:       plan.Gender,
			UseCases:     plan.UseCases,
			Descriptives: plan.Tones,
		}), model.TierPrimary)
	}

	if p.len() < LanguageTierBelow && plan.VoiceLanguage != "" {
		p.add(r.fetch(ctx, model.TierLanguage, catalog.Query{
			PageSize: r.cfg.PageSize,
			Language: plan.VoiceLanguage,
		}), model.TierLanguage)
	}

	if p.len() < FallbackTierBelow {
		p.add(r.fetch(ctx, model.TierFallback, catalog.Query{
			PageSize: r.cfg.PageSize,
		}), model.TierFallback)
	}

	out := p.candidates(FallbackCap)
	unique := len(out)

	out, langApplied := FilterLanguage(out, plan.VoiceLanguage, LanguageFilterMinHit)
	out, qualityApplied := FilterQuality(out, plan.Quality)

	logx.Ctx(ctx).Debug().
		Str("component", "retriever").
		Int("unique", p.len()).
		Int("merged", unique).
		Int("final", len(out)).
		Bool("language_filter", langApplied).
		Bool("quality_filter", qualityApplied).
		Msg("retrieval finished")

	return out
}

// TopUsage fetches the most used voices for one language, scored by usage.
func (r *Retriever) TopUsage(ctx context.Context, lang string) ([]model.Candidate, map[string]float64) {
	p := newPool()
	p.add(r.fetch(ctx, model.TierPrimary, catalog.Query{
		PageSize: TopUsageFetch,
		Language: lang,
		Sort:     catalog.SortUsage7d,
	}), model.TierPrimary)

	out := p.candidates(0)
	scores := UsageScores(out)
	SortByUsage(out)
	if len(out) > TopUsageCap {
		out = out[:TopUsageCap]
	}
	return out, scores
}

// UsageScores scores candidates by usage relative to the most used one, with
// a 0.01 floor for any nonzero usage. Without any usage data the fetch order
// decides.
func UsageScores(cs []model.Candidate) map[string]float64 {
	scores := make(map[string]float64, len(cs))
	var max int64
	for _, c := range cs {
		if u := c.UsageProxy(); u > max {
			max = u
		}
	}
	n := float64(len(cs))
	for i, c := range cs {
		if max == 0 {
			scores[c.VoiceID] = 1 - float64(i)/n
			continue
		}
		u := c.UsageProxy()
		if u <= 0 {
			scores[c.VoiceID] = 0
			continue
		}
		s := float64(u) / float64(max)
		if s < 0.01 {
			s = 0.01
		}
		scores[c.VoiceID] = s
	}
	return scores
}

func (r *Retriever) fetch(ctx context.Context, tier model.Tier, q catalog.Query) []model.Voice {
	if r.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.cfg.Timeout)
		defer cancel()
	}
	voices, err := r.catalog.Search(ctx, q)
	if err != nil {
		logx.Ctx(ctx).Warn().
			Err(err).
			Str("component", "retriever").
			Str("tier", tier.String()).
			Str("query", q.Search).
			Str("language", q.Language).
			Msg("catalog call failed, treating tier as empty")
		return nil
	}
	return voices
}
