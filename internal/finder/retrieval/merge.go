package retrieval

import (
	"sort"

	"github.com/voice-finder/server/internal/finder/model"
)

// pool deduplicates voices by id, keeps arrival order and the most trusted
// tier seen for each id.
type pool struct {
	order []string
	byID  map[string]*model.Candidate
}

func newPool() *pool {
	return &pool{byID: map[string]*model.Candidate{}}
}

func (p *pool) add(voices []model.Voice, tier model.Tier) (added int) {
	for _, v := range voices {
		if v.VoiceID == "" {
			continue
		}
		if existing, ok := p.byID[v.VoiceID]; ok {
			if tier.MoreTrustedThan(existing.Tier) {
				existing.Tier = tier
			}
			continue
		}
		p.byID[v.VoiceID] = &model.Candidate{Voice: v, Tier: tier}
		p.order = append(p.order, v.VoiceID)
		added++
	}
	return added
}

func (p *pool) len() int {
	return len(p.order)
}

// candidates returns trusted candidates in arrival order followed by at most
// fallbackCap fallback candidates, most used first.
func (p *pool) candidates(fallbackCap int) []model.Candidate {
	trusted := make([]model.Candidate, 0, len(p.order))
	var fallback []model.Candidate
	for _, id := range p.order {
		c := *p.byID[id]
		if c.Tier == model.TierFallback {
			fallback = append(fallback, c)
			continue
		}
		trusted = append(trusted, c)
	}
	SortByUsage(fallback)
	if len(fallback) > fallbackCap {
		fallback = fallback[:fallbackCap]
	}
	return append(trusted, fallback...)
}

// SortByUsage orders candidates by usage proxy, most used first, keeping
// arrival order among equals.
func SortByUsage(cs []model.Candidate) {
	sort.SliceStable(cs, func(i, j int) bool {
		return cs[i].UsageProxy() > cs[j].UsageProxy()
	})
}
