// Package graph composes the search pipeline as an eino graph:
// START -> planner -> (top_usage | retriever -> ranker) -> END.
package graph

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/compose"

	"github.com/voice-finder/server/internal/finder/model"
	"github.com/voice-finder/server/internal/finder/parsers"
	logx "github.com/voice-finder/server/pkg/logger"
)

const (
	NodePlanner   = "planner"
	NodeTopUsage  = "top_usage"
	NodeRetriever = "retriever"
	NodeRanker    = "ranker"
)

// Planner produces a normalized plan for raw text.
type Planner interface {
	Plan(ctx context.Context, userText string) model.PlanResult
}

// Retriever fetches candidates from the catalog.
type Retriever interface {
	Retrieve(ctx context.Context, plan model.SearchPlan) []model.Candidate
	TopUsage(ctx context.Context, lang string) ([]model.Candidate, map[string]float64)
}

// Ranker asks the ranking oracle for scores.
type Ranker interface {
	Rank(ctx context.Context, userText string, plan model.SearchPlan, cs []model.Candidate) (parsers.Ranking, error)
}

// Runner executes the compiled search graph for one message.
type Runner interface {
	Search(ctx context.Context, userText string) (*model.SearchOutcome, error)
}

// GraphConfig holds all dependencies needed to build the graph
type GraphConfig struct {
	Planner   Planner
	Retriever Retriever
	Ranker    Ranker
}

// GraphBuilder handles the construction of the search graph
type GraphBuilder struct {
	config *GraphConfig
	graph  *compose.Graph[*model.SearchOutcome, *model.SearchOutcome]
}

type graphRunner struct {
	runnable compose.Runnable[*model.SearchOutcome, *model.SearchOutcome]
}

func (r *graphRunner) Search(ctx context.Context, userText string) (*model.SearchOutcome, error) {
	out, err := r.runnable.Invoke(ctx, &model.SearchOutcome{Query: userText},
		compose.WithCallbacks(NewAllCallbacks()))
	if err != nil {
		return nil, err
	}
	if out == nil {
		return nil, fmt.Errorf("search graph returned no outcome")
	}
	return out, nil
}

// BuildSearchGraph builds and compiles the graph and returns a Runner.
func BuildSearchGraph(ctx context.Context, config *GraphConfig) (Runner, error) {
	if config == nil {
		return nil, fmt.Errorf("graph config is nil")
	}
	if config.Planner == nil || config.Retriever == nil || config.Ranker == nil {
		return nil, fmt.Errorf("graph dependencies are not properly initialized")
	}

	builder := &GraphBuilder{
		config: config,
		graph:  compose.NewGraph[*model.SearchOutcome, *model.SearchOutcome](),
	}

	if err := builder.addNodes(); err != nil {
		return nil, err
	}
	if err := builder.addEdges(); err != nil {
		return nil, err
	}
	if err := builder.addBranches(); err != nil {
		return nil, err
	}

	runnable, err := builder.graph.Compile(ctx, compose.WithMaxRunSteps(10))
	if err != nil {
		logx.Error().Err(err).Msg("Error compiling graph")
		return nil, fmt.Errorf("error compiling graph: %w", err)
	}

	logx.Debug().Msg("Search graph compiled successfully")
	return &graphRunner{runnable: runnable}, nil
}

// addNodes adds all processing nodes to the graph
func (b *GraphBuilder) addNodes() error {
	nodes := []struct {
		key    string
		lambda *compose.Lambda
	}{
		{NodePlanner, compose.InvokableLambda(b.plan)},
		{NodeTopUsage, compose.InvokableLambda(b.topUsage)},
		{NodeRetriever, compose.InvokableLambda(b.retrieve)},
		{NodeRanker, compose.InvokableLambda(b.rank)},
	}
	for _, n := range nodes {
		if err := b.graph.AddLambdaNode(n.key, n.lambda, compose.WithNodeName(n.key)); err != nil {
			return fmt.Errorf("error adding node %s: %w", n.key, err)
		}
	}
	return nil
}

// addEdges creates the main flow connections between nodes
func (b *GraphBuilder) addEdges() error {
	edges := [][2]string{
		{compose.START, NodePlanner},
		{NodeTopUsage, compose.END},
		{NodeRetriever, NodeRanker},
		{NodeRanker, compose.END},
	}
	for _, edge := range edges {
		if err := b.graph.AddEdge(edge[0], edge[1]); err != nil {
			return fmt.Errorf("error adding edge %s -> %s: %w", edge[0], edge[1], err)
		}
	}
	return nil
}

// addBranches routes planned messages to the top-usage mode or the generic
// retrieval path
func (b *GraphBuilder) addBranches() error {
	modeBranch := compose.NewGraphBranch(
		func(ctx context.Context, in *model.SearchOutcome) (string, error) {
			if in.TopUsage {
				return NodeTopUsage, nil
			}
			return NodeRetriever, nil
		},
		map[string]bool{
			NodeTopUsage:  true,
			NodeRetriever: true,
		},
	)
	if err := b.graph.AddBranch(NodePlanner, modeBranch); err != nil {
		logx.Error().Err(err).Msg("Error adding mode branch")
		return fmt.Errorf("error adding mode branch: %w", err)
	}
	return nil
}
