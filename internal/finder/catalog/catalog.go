package catalog

import (
	"context"

	"github.com/voice-finder/server/internal/finder/model"
)

// Query is one paged search against the voice catalog. Empty fields are not
// sent.
type Query struct {
	PageSize     int
	Search       string
	Language     string
	Accent       string
	Gender       string
	UseCases     []string
	Descriptives []string
	Sort         string
}

// Sort orders supported by the shared voice library.
const (
	SortTrending = "trending"
	SortUsage7d  = "usage_character_count_7d"
	SortClonedBy = "cloned_by_count"
)

// Searcher is the consumed catalog interface.
type Searcher interface {
	Search(ctx context.Context, q Query) ([]model.Voice, error)
}
