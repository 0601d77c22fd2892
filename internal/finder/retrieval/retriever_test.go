package retrieval

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voice-finder/server/internal/core"
	"github.com/voice-finder/server/internal/finder/catalog"
	"github.com/voice-finder/server/internal/finder/model"
	logx "github.com/voice-finder/server/pkg/logger"
)

// fakeCatalog answers by tier: primary queries have Search set, the language
// tier has only Language, the fallback tier has neither.
type fakeCatalog struct {
	mu       sync.Mutex
	primary  func(q catalog.Query) ([]model.Voice, error)
	language []model.Voice
	fallback []model.Voice
	langErr  error
	calls    []catalog.Query
}

func (f *fakeCatalog) Search(_ context.Context, q catalog.Query) ([]model.Voice, error) {
	f.mu.Lock()
	f.calls = append(f.calls, q)
	f.mu.Unlock()
	switch {
	case q.Search != "":
		if f.primary == nil {
			return nil, nil
		}
		return f.primary(q)
	case q.Language != "":
		return f.language, f.langErr
	default:
		return f.fallback, nil
	}
}

func voices(prefix string, n int, mut ...func(i int, v *model.Voice)) []model.Voice {
	out := make([]model.Voice, n)
	for i := range out {
		out[i] = model.Voice{VoiceID: fmt.Sprintf("%s%d", prefix, i), Name: fmt.Sprintf("%s %d", prefix, i)}
		for _, m := range mut {
			m(i, &out[i])
		}
	}
	return out
}

func countTier(cs []model.Candidate, tier model.Tier) int {
	n := 0
	for _, c := range cs {
		if c.Tier == tier {
			n++
		}
	}
	return n
}

func TestRetrieve_PrimaryStopsAtFifty(t *testing.T) {
	call := 0
	fc := &fakeCatalog{primary: func(q catalog.Query) ([]model.Voice, error) {
		call++
		return voices(fmt.Sprintf("q%d-", call), 30), nil
	}}
	r := NewRetriever(fc, Config{PageSize: 30})

	out := r.Retrieve(context.Background(), model.SearchPlan{Queries: []string{"a", "b", "c", "d", "e", "f"}})

	assert.Equal(t, 2, call, "third query skipped once 60 >= 50 unique")
	assert.Len(t, out, 60)
	assert.Len(t, fc.calls, 2, "no language or fallback tier")
}

func TestRetrieve_PrimaryQueryCarriesFilters(t *testing.T) {
	fc := &fakeCatalog{primary: func(q catalog.Query) ([]model.Voice, error) {
		return voices("p", 60), nil
	}}
	plan := model.SearchPlan{
		VoiceLanguage: "en", Accent: "american", Gender: "male",
		UseCases: []string{"conversational"}, Tones: []string{"calm"},
		Queries: []string{"support agent"},
	}
	NewRetriever(fc, Config{PageSize: 25}).Retrieve(context.Background(), plan)

	require.Len(t, fc.calls, 1)
	q := fc.calls[0]
	assert.Equal(t, catalog.Query{
		PageSize: 25, Search: "support agent", Language: "en", Accent: "american", Gender: "male",
		UseCases: []string{"conversational"}, Descriptives: []string{"calm"},
	}, q)
}

func TestRetrieve_AtMostFivePrimaryQueries(t *testing.T) {
	n := 0
	fc := &fakeCatalog{primary: func(q catalog.Query) ([]model.Voice, error) {
		n++
		return voices(fmt.Sprintf("q%d-", n), 1), nil
	}}
	NewRetriever(fc, Config{}).Retrieve(context.Background(), model.SearchPlan{Queries: []string{"1", "2", "3", "4", "5", "6", "7"}})
	assert.Equal(t, 5, n)
}

func TestRetrieve_DedupKeepsHighestTier(t *testing.T) {
	shared := voices("s", 3)
	fc := &fakeCatalog{
		primary:  func(q catalog.Query) ([]model.Voice, error) { return shared[:2], nil },
		language: append(voices("l", 2), shared...),
		fallback: append(voices("f", 2), shared...),
	}
	out := NewRetriever(fc, Config{}).Retrieve(context.Background(), model.SearchPlan{
		VoiceLanguage: "xx", Queries: []string{"q"},
	})

	seen := map[string]model.Tier{}
	for _, c := range out {
		_, dup := seen[c.VoiceID]
		require.False(t, dup, "duplicate %s", c.VoiceID)
		seen[c.VoiceID] = c.Tier
	}
	assert.Equal(t, model.TierPrimary, seen["s0"])
	assert.Equal(t, model.TierPrimary, seen["s1"])
	assert.Equal(t, model.TierLanguage, seen["s2"])
	assert.Equal(t, model.TierLanguage, seen["l0"])
	assert.Equal(t, model.TierFallback, seen["f0"])
}

func TestPoolUpgradesTier(t *testing.T) {
	p := newPool()
	p.add(voices("v", 1), model.TierFallback)
	p.add(voices("v", 1), model.TierPrimary)
	p.add(voices("v", 1), model.TierLanguage)
	cs := p.candidates(FallbackCap)
	require.Len(t, cs, 1)
	assert.Equal(t, model.TierPrimary, cs[0].Tier)
}

func TestRetrieve_FallbackCappedAndSortedByUsage(t *testing.T) {
	fc := &fakeCatalog{
		fallback: voices("f", 40, func(i int, v *model.Voice) { v.UsageCharacterCount7d = int64(i) }),
	}
	out := NewRetriever(fc, Config{}).Retrieve(context.Background(), model.SearchPlan{Queries: []string{"q"}})

	require.Len(t, out, FallbackCap)
	assert.Equal(t, FallbackCap, countTier(out, model.TierFallback))
	assert.Equal(t, "f39", out[0].VoiceID)
	assert.Equal(t, "f30", out[9].VoiceID)
}

func TestRetrieve_FallbackAppendedAfterTrusted(t *testing.T) {
	fc := &fakeCatalog{
		primary:  func(q catalog.Query) ([]model.Voice, error) { return voices("p", 3), nil },
		fallback: voices("f", 20, func(i int, v *model.Voice) { v.UsageCharacterCount1y = 1000 }),
	}
	out := NewRetriever(fc, Config{}).Retrieve(context.Background(), model.SearchPlan{Queries: []string{"q"}})

	require.Len(t, out, 13)
	assert.Equal(t, "p0", out[0].VoiceID)
	assert.Equal(t, "f0", out[3].VoiceID, "stable among equal usage")
	assert.LessOrEqual(t, countTier(out, model.TierFallback), FallbackCap)
}

func TestRetrieve_TierFailureDoesNotAbort(t *testing.T) {
	fc := &fakeCatalog{
		primary:  func(q catalog.Query) ([]model.Voice, error) { return nil, errors.New("boom") },
		langErr:  errors.New("language tier down"),
		fallback: voices("f", 5),
	}
	out := NewRetriever(fc, Config{}).Retrieve(context.Background(), model.SearchPlan{VoiceLanguage: "pl", Queries: []string{"q"}})

	assert.Len(t, fc.calls, 3)
	assert.Len(t, out, 5)
}

func TestRetrieve_TierFailureLogsRequestFields(t *testing.T) {
	var buf bytes.Buffer
	logx.Init(logx.LoggerOpts{Environment: core.Production, Output: &buf})
	t.Cleanup(func() { logx.Init() })

	log := logx.With(map[string]string{"thread_id": "C1:1", "request_id": "req-1"})
	ctx := log.WithContext(context.Background())
	fc := &fakeCatalog{primary: func(q catalog.Query) ([]model.Voice, error) { return nil, errors.New("boom") }}
	NewRetriever(fc, Config{}).Retrieve(ctx, model.SearchPlan{Queries: []string{"q"}})

	out := buf.String()
	assert.Contains(t, out, "catalog call failed")
	assert.Contains(t, out, `"request_id":"req-1"`)
	assert.Contains(t, out, `"thread_id":"C1:1"`)
}

func TestRetrieve_LanguageTierOnlyWhenLanguageKnown(t *testing.T) {
	fc := &fakeCatalog{fallback: voices("f", 2)}
	NewRetriever(fc, Config{}).Retrieve(context.Background(), model.SearchPlan{Queries: []string{"q"}})
	for _, q := range fc.calls {
		assert.Empty(t, q.Language)
	}
}

func TestRetrieve_HardLanguageFilter(t *testing.T) {
	polish := func(i int, v *model.Voice) {
		if i%2 == 0 {
			v.Language = "pl"
		}
	}
	t.Run("applied with eight or more matches", func(t *testing.T) {
		fc := &fakeCatalog{primary: func(q catalog.Query) ([]model.Voice, error) { return voices("p", 60, polish), nil }}
		out := NewRetriever(fc, Config{}).Retrieve(context.Background(), model.SearchPlan{VoiceLanguage: "pl", Queries: []string{"q"}})
		assert.Len(t, out, 30)
		for _, c := range out {
			assert.Equal(t, "pl", c.Language)
		}
	})
	t.Run("skipped below eight matches", func(t *testing.T) {
		fewPolish := func(i int, v *model.Voice) {
			if i < 7 {
				v.Language = "pl"
			}
		}
		fc := &fakeCatalog{primary: func(q catalog.Query) ([]model.Voice, error) { return voices("p", 60, fewPolish), nil }}
		out := NewRetriever(fc, Config{}).Retrieve(context.Background(), model.SearchPlan{VoiceLanguage: "pl", Queries: []string{"q"}})
		assert.Len(t, out, 60)
	})
}

func TestRetrieve_QualityFilterSafety(t *testing.T) {
	hq := func(i int, v *model.Voice) {
		if i < 4 {
			v.HighQualityBaseModelIDs = []string{"eleven_v2_flash"}
		}
	}
	fc := &fakeCatalog{primary: func(q catalog.Query) ([]model.Voice, error) { return voices("p", 60, hq), nil }}
	r := NewRetriever(fc, Config{})

	out := r.Retrieve(context.Background(), model.SearchPlan{Quality: model.QualityHighOnly, Queries: []string{"q"}})
	assert.Len(t, out, 4)

	out = r.Retrieve(context.Background(), model.SearchPlan{Quality: model.QualityNoHigh, Queries: []string{"q"}})
	assert.Len(t, out, 56)

	none := &fakeCatalog{primary: func(q catalog.Query) ([]model.Voice, error) { return voices("p", 60), nil }}
	out = NewRetriever(none, Config{}).Retrieve(context.Background(), model.SearchPlan{Quality: model.QualityHighOnly, Queries: []string{"q"}})
	assert.Len(t, out, 60, "over-filtering keeps the unfiltered set")
}

func TestMatchesLanguage(t *testing.T) {
	assert.True(t, MatchesLanguage(model.Voice{Locale: "pl-PL"}, "pl"))
	assert.True(t, MatchesLanguage(model.Voice{VerifiedLanguages: []model.VerifiedLanguage{{Language: "pl"}}}, "pl"))
	assert.True(t, MatchesLanguage(model.Voice{Description: "Ciepły polski lektor"}, "pl"))
	assert.True(t, MatchesLanguage(model.Voice{Labels: map[string]string{"language": "Polish"}}, "pl"))
	assert.False(t, MatchesLanguage(model.Voice{Language: "en", Description: "warm narrator"}, "pl"))
	assert.False(t, MatchesLanguage(model.Voice{Language: "pl"}, ""))
}

func TestTopUsage(t *testing.T) {
	fc := &fakeCatalog{language: voices("u", 100, func(i int, v *model.Voice) {
		v.UsageCharacterCount7d = int64(i * 10)
	})}
	out, scores := NewRetriever(fc, Config{}).TopUsage(context.Background(), "pl")

	require.Len(t, fc.calls, 1)
	assert.Equal(t, catalog.Query{PageSize: TopUsageFetch, Language: "pl", Sort: catalog.SortUsage7d}, fc.calls[0])

	require.Len(t, out, TopUsageCap)
	for i := 1; i < len(out); i++ {
		assert.GreaterOrEqual(t, out[i-1].UsageProxy(), out[i].UsageProxy())
	}
	for _, c := range out {
		assert.Equal(t, model.TierPrimary, c.Tier)
	}
	assert.Equal(t, 1.0, scores["u99"])
	assert.Equal(t, 0.0, scores["u0"])
	assert.InDelta(t, 490.0/990.0, scores["u49"], 1e-9)
}

func TestUsageScores(t *testing.T) {
	cs := []model.Candidate{
		{Voice: model.Voice{VoiceID: "a", UsageCharacterCount7d: 100000}},
		{Voice: model.Voice{VoiceID: "b", UsageCharacterCount7d: 1}},
		{Voice: model.Voice{VoiceID: "c"}},
	}
	s := UsageScores(cs)
	assert.Equal(t, 1.0, s["a"])
	assert.Equal(t, 0.01, s["b"], "nonzero usage floored")
	assert.Equal(t, 0.0, s["c"])

	noUsage := []model.Candidate{{Voice: model.Voice{VoiceID: "x"}}, {Voice: model.Voice{VoiceID: "y"}}}
	s = UsageScores(noUsage)
	assert.Equal(t, 1.0, s["x"])
	assert.Equal(t, 0.5, s["y"])
}
