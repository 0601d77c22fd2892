package graph

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voice-finder/server/internal/finder/model"
	"github.com/voice-finder/server/internal/finder/parsers"
)

type fakePlanner struct {
	plan  model.SearchPlan
	calls int
}

func (f *fakePlanner) Plan(_ context.Context, userText string) model.PlanResult {
	f.calls++
	p := f.plan
	if len(p.Queries) == 0 {
		p.Queries = []string{userText}
	}
	return model.PlanResult{Plan: p}
}

type fakeRetriever struct {
	candidates []model.Candidate
	top        []model.Candidate
	topScores  map[string]float64
	retrieves  int
	topLangs   []string
}

func (f *fakeRetriever) Retrieve(context.Context, model.SearchPlan) []model.Candidate {
	f.retrieves++
	return f.candidates
}

func (f *fakeRetriever) TopUsage(_ context.Context, lang string) ([]model.Candidate, map[string]float64) {
	f.topLangs = append(f.topLangs, lang)
	return f.top, f.topScores
}

type fakeRanker struct {
	reply parsers.Ranking
	err   error
	calls int
}

func (f *fakeRanker) Rank(context.Context, string, model.SearchPlan, []model.Candidate) (parsers.Ranking, error) {
	f.calls++
	return f.reply, f.err
}

func cand(id string, tier model.Tier) model.Candidate {
	return model.Candidate{Voice: model.Voice{VoiceID: id}, Tier: tier}
}

func build(t *testing.T, p *fakePlanner, r *fakeRetriever, k *fakeRanker) Runner {
	t.Helper()
	runner, err := BuildSearchGraph(context.Background(), &GraphConfig{Planner: p, Retriever: r, Ranker: k})
	require.NoError(t, err)
	return runner
}

func TestSearch_GenericPath(t *testing.T) {
	p := &fakePlanner{plan: model.SearchPlan{InterfaceLanguage: "en"}}
	r := &fakeRetriever{candidates: []model.Candidate{cand("a", model.TierPrimary), cand("b", model.TierLanguage)}}
	k := &fakeRanker{reply: parsers.Ranking{Scores: map[string]float64{"a": 0.2, "b": 1}, UserLanguage: "pl"}}

	out, err := build(t, p, r, k).Search(context.Background(), "spokojny głos")
	require.NoError(t, err)

	assert.False(t, out.TopUsage)
	assert.Equal(t, 1, r.retrieves)
	assert.Equal(t, 1, k.calls)
	assert.Equal(t, "pl", out.UILanguage)
	assert.InDelta(t, 0.9, out.Scores["b"], 1e-9)
	assert.InDelta(t, 0.2, out.Scores["a"], 1e-9)
	assert.False(t, out.Ranking.Degraded)
}

func TestSearch_RankerFailureIsPositional(t *testing.T) {
	p := &fakePlanner{plan: model.SearchPlan{InterfaceLanguage: "de"}}
	r := &fakeRetriever{candidates: []model.Candidate{cand("a", model.TierPrimary), cand("b", model.TierPrimary)}}
	k := &fakeRanker{err: errors.New("deadline exceeded")}

	out, err := build(t, p, r, k).Search(context.Background(), "ruhige Stimme")
	require.NoError(t, err)
	assert.True(t, out.Ranking.Degraded)
	assert.Equal(t, "de", out.UILanguage)
	assert.Equal(t, 1.0, out.Scores["a"])
	assert.Equal(t, 0.5, out.Scores["b"])
}

func TestSearch_NoCandidatesSkipsRanker(t *testing.T) {
	k := &fakeRanker{}
	out, err := build(t, &fakePlanner{}, &fakeRetriever{}, k).Search(context.Background(), "nothing matches")
	require.NoError(t, err)
	assert.Empty(t, out.Candidates)
	assert.Zero(t, k.calls)
	assert.Equal(t, "en", out.UILanguage)
}

func TestSearch_TopUsagePath(t *testing.T) {
	p := &fakePlanner{plan: model.SearchPlan{InterfaceLanguage: "pl"}}
	r := &fakeRetriever{
		top:       []model.Candidate{cand("x", model.TierPrimary)},
		topScores: map[string]float64{"x": 1},
	}
	k := &fakeRanker{}

	out, err := build(t, p, r, k).Search(context.Background(), "najczęściej używane polskie głosy")
	require.NoError(t, err)

	assert.True(t, out.TopUsage)
	assert.Equal(t, "pl", out.Language)
	assert.Equal(t, []string{"pl"}, r.topLangs)
	assert.Zero(t, r.retrieves)
	assert.Zero(t, k.calls)
	assert.Equal(t, map[string]float64{"x": 1}, out.Scores)
	assert.Equal(t, "pl", out.UILanguage)
}

func TestSearch_TopUsageWithoutLanguageFallsBack(t *testing.T) {
	r := &fakeRetriever{}
	out, err := build(t, &fakePlanner{}, r, &fakeRanker{}).Search(context.Background(), "most used voices")
	require.NoError(t, err)
	assert.False(t, out.TopUsage)
	assert.Equal(t, 1, r.retrieves)
	assert.Empty(t, r.topLangs)
}

func TestBuildSearchGraph_Validation(t *testing.T) {
	_, err := BuildSearchGraph(context.Background(), nil)
	assert.Error(t, err)
	_, err = BuildSearchGraph(context.Background(), &GraphConfig{Planner: &fakePlanner{}})
	assert.Error(t, err)
}
