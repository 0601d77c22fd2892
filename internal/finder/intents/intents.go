// Package intents recognizes what a message asks for. Every detector is a
// predicate over a normalized lexicon.Text so each can be tested alone;
// Classify applies them in precedence order.
package intents

import (
	"github.com/voice-finder/server/internal/finder/lexicon"
	"github.com/voice-finder/server/internal/finder/model"
)

// Kind is what a follow-up message in an active thread asks for.
type Kind int

const (
	KindNewSearch Kind = iota
	KindLanguagesSummary
	KindWhichHighQuality
	KindFilter
)

func (k Kind) String() string {
	switch k {
	case KindLanguagesSummary:
		return "languages_summary"
	case KindWhichHighQuality:
		return "which_high_quality"
	case KindFilter:
		return "filter"
	}
	return "new_search"
}

// MaxFollowUpTokens bounds short filter follow-ups. A longer message only
// mutates filters when it refers back to the current list.
const MaxFollowUpTokens = 8

// Decision is the routing of a message in a thread with an active session.
type Decision struct {
	Kind   Kind
	Filter model.FilterState
}

// Classify routes a follow-up message. Precedence: languages summary, then
// which-high-quality, then filter mutations, else a new search.
func Classify(raw string, current model.FilterState) Decision {
	t := lexicon.NewText(raw)
	if t.Len() == 0 {
		return Decision{Kind: KindNewSearch, Filter: current}
	}
	switch {
	case IsLanguagesSummary(t):
		return Decision{Kind: KindLanguagesSummary, Filter: current}
	case IsWhichHighQuality(t):
		return Decision{Kind: KindWhichHighQuality, Filter: current}
	}
	if t.Len() > MaxFollowUpTokens && !RefersToList(t) {
		return Decision{Kind: KindNewSearch, Filter: current}
	}
	if next, ok := ApplyFilterMutations(t, current); ok {
		return Decision{Kind: KindFilter, Filter: next}
	}
	return Decision{Kind: KindNewSearch, Filter: current}
}
