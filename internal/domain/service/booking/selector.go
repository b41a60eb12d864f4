package booking

import (
	"sort"
	"strings"

	"github.com/samber/lo"

	"github.com/myselfshravan/SponsorCatcher/internal/domain/entity"
)

// RankCandidates returns the eligible candidates in attempt order: the
// blocklisted ones removed, the rest sorted by priority, and the affinity
// hint moved to the front when it is still eligible. The input is never
// mutated.
func RankCandidates(candidates []entity.Candidate, state *RunState) []entity.Candidate {
	eligible := lo.Filter(candidates, func(c entity.Candidate, _ int) bool {
		return !state.Blocked(c.Keyword)
	})

	sort.SliceStable(eligible, func(i, j int) bool {
		return eligible[i].Priority < eligible[j].Priority
	})

	hint := state.AffinityHint()
	if hint == "" {
		return eligible
	}

	for i, c := range eligible {
		if strings.EqualFold(c.Keyword, hint) {
			front := eligible[i]
			copy(eligible[1:i+1], eligible[:i])
			eligible[0] = front

			break
		}
	}

	return eligible
}
