package question

import (
	"math/rand/v2"
	"sync"
)

// Rand is the random source used by Draw. *rand.Rand satisfies it.
type Rand interface {
	IntN(n int) int
}

type globalRand struct{}

func (globalRand) IntN(n int) int { return rand.IntN(n) }

// lockedRand serializes access to a source that is not safe for concurrent use.
type lockedRand struct {
	mu  sync.Mutex
	src Rand
}

func (r *lockedRand) IntN(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.src.IntN(n)
}

// Draw picks one question uniformly at random among those not in previous
// and, unless categoryID is AnyCategory, belonging to categoryID. It returns
// nil once the eligible pool is exhausted.
func Draw(all []Question, previous []int, categoryID int, rng Rand) *Question {
	asked := make(map[int]struct{}, len(previous))
	for _, id := range previous {
		asked[id] = struct{}{}
	}

	eligible := make([]Question, 0, len(all))
	for _, q := range all {
		if categoryID != AnyCategory && q.Category != categoryID {
			continue
		}
		if _, seen := asked[q.ID]; seen {
			continue
		}
		eligible = append(eligible, q)
	}
	if len(eligible) == 0 {
		return nil
	}

	if rng == nil {
		rng = globalRand{}
	}
	picked := eligible[rng.IntN(len(eligible))]
	return &picked
}
