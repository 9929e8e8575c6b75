package imitation

import (
	"fmt"
	"math"
	"sort"

	"github.com/unixpickle/anyvec"
	"github.com/unixpickle/essentials"
	"gonum.org/v1/gonum/floats"
)

// StateEntropy estimates how novel each row of states is
// with respect to a set of reference rows.
//
// Both vectors are packed batches of rows with obsSize
// components each.
// For every query row, the Euclidean distance d to the
// k-th nearest reference row is found, and the estimate
// is log(1+d), a Kozachenko-Leonenko style particle
// estimate of the state-visitation entropy.
//
// If there are fewer than k reference rows, the farthest
// reference row is used.
// If there are no reference rows, every estimate is 0.
//
// The result has one component per query row and is
// created with the creator of states.
func StateEntropy(states, reference anyvec.Vector, obsSize,
	k int) (res anyvec.Vector, err error) {
	defer essentials.AddCtxTo("state entropy", &err)
	if k <= 0 {
		return nil, fmt.Errorf("invalid neighbor count: %d", k)
	}
	queries, err := splitRows(VectorComponents(states), obsSize)
	if err != nil {
		return nil, essentials.AddCtx("split states", err)
	}
	refs, err := splitRows(VectorComponents(reference), obsSize)
	if err != nil {
		return nil, essentials.AddCtx("split reference", err)
	}

	scratch := make([]float64, len(refs))
	estimates := make([]float64, len(queries))
	for i, query := range queries {
		estimates[i] = math.Log1p(kthDistance(query, refs, k, scratch))
	}
	return ComponentsVector(states.Creator(), estimates), nil
}

// kthDistance finds the distance from query to its k-th
// nearest row in refs, clamping k to len(refs).
func kthDistance(query []float64, refs [][]float64, k int, scratch []float64) float64 {
	if len(refs) == 0 {
		return 0
	}
	for i, ref := range refs {
		scratch[i] = floats.Distance(query, ref, 2)
	}
	sort.Float64s(scratch)
	if k > len(scratch) {
		k = len(scratch)
	}
	return scratch[k-1]
}
