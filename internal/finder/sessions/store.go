// Package sessions stores per-thread search sessions and serializes work on
// a thread.
package sessions

import (
	"context"
	"maps"
	"slices"

	"github.com/voice-finder/server/internal/finder/model"
)

// Store keeps one Session per thread id.
type Store interface {
	// Get returns the session of a thread; ok is false when there is none.
	Get(ctx context.Context, threadID string) (s *model.Session, ok bool, err error)
	Put(ctx context.Context, s *model.Session) error
	Delete(ctx context.Context, threadID string) error
}

// clone copies a session deeply enough that callers can mutate the result
// without touching the stored value.
func clone(s *model.Session) *model.Session {
	c := *s
	c.Candidates = slices.Clone(s.Candidates)
	c.Scores = maps.Clone(s.Scores)
	c.Plan.Queries = slices.Clone(s.Plan.Queries)
	c.Plan.UseCases = slices.Clone(s.Plan.UseCases)
	c.Plan.Tones = slices.Clone(s.Plan.Tones)
	return &c
}
