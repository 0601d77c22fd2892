// Package ranking merges ranking oracle opinions with retrieval trust.
package ranking

import (
	"sort"

	"github.com/voice-finder/server/internal/finder/lexicon"
	"github.com/voice-finder/server/internal/finder/model"
	"github.com/voice-finder/server/internal/finder/parsers"
)

// OmittedWeight scales the positional score of candidates the oracle did
// not score, so they sort below scored ones at a similar position.
const OmittedWeight = 0.2

// Fuse gives every candidate a score. With oracle scores, unscored
// candidates get OmittedWeight*(1-i/n); without any, every candidate gets
// 1-i/n. Oracle scores are used as returned, without clamping. Tier trust
// is applied in both cases. degraded reports the second.
func Fuse(cs []model.Candidate, oracle map[string]float64) (scores map[string]float64, degraded bool) {
	degraded = len(oracle) == 0
	n := float64(len(cs))
	scores = make(map[string]float64, len(cs))
	for i, c := range cs {
		positional := 1 - float64(i)/n
		var s float64
		switch v, ok := oracle[c.VoiceID]; {
		case degraded:
			s = positional
		case ok:
			s = v
		default:
			s = OmittedWeight * positional
		}
		scores[c.VoiceID] = s * c.Tier.Trust()
	}
	return scores, degraded
}

// Rank fuses an oracle reply into a RankResult. A non-nil oracleErr or an
// empty reply yields the positional result.
func Rank(cs []model.Candidate, reply parsers.Ranking, oracleErr error, plan model.SearchPlan, userText string) model.RankResult {
	var oracle map[string]float64
	if oracleErr == nil {
		oracle = reply.Scores
	}
	scores, degraded := Fuse(cs, oracle)

	res := model.RankResult{
		Scores:       scores,
		UserLanguage: ResolveUILanguage(reply.UserLanguage, plan.InterfaceLanguage, lexicon.DetectInterfaceLanguage(userText)),
		Degraded:     degraded,
	}
	switch {
	case oracleErr != nil:
		res.Reason = oracleErr.Error()
	case degraded:
		res.Reason = "ranking oracle returned no usable scores"
	}
	return res
}

// ResolveUILanguage returns the first valid language code, else the
// default language.
func ResolveUILanguage(candidates ...string) string {
	for _, c := range candidates {
		if code := lexicon.NormalizeCode(c); code != "" {
			return code
		}
	}
	return lexicon.DefaultLanguage
}

// Order returns a copy of cs sorted by score, highest first. Equal scores
// keep their input order.
func Order(cs []model.Candidate, scores map[string]float64) []model.Candidate {
	out := make([]model.Candidate, len(cs))
	copy(out, cs)
	sort.SliceStable(out, func(i, j int) bool {
		return scores[out[i].VoiceID] > scores[out[j].VoiceID]
	})
	return out
}
