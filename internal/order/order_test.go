package order_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsavage/depict"
	"github.com/jsavage/depict/internal/graph"
	"github.com/jsavage/depict/internal/order"
)

func layoutGraph(t *testing.T, src string) *graph.LayoutGraph {
	t.Helper()
	prog, err := depict.Parse(src)
	require.NoError(t, err)
	g := graph.Build(prog)
	rank := g.Rank()
	return g.InsertVirtuals(rank, make([]float64, len(g.Actors)), make([]float64, len(g.Actors)))
}

func TestComputeIsDeterministic(t *testing.T) {
	lg := layoutGraph(t, "A B: x\nC B: y\nA C: z")

	order1, crossings1 := order.Compute(lg, order.Options{})
	order2, crossings2 := order.Compute(lg, order.Options{})

	assert.Equal(t, order1, order2)
	assert.Equal(t, crossings1, crossings2)
}

func TestComputeOneVertexPerRankHasNoCrossings(t *testing.T) {
	lg := layoutGraph(t, "A B: x")
	got, crossings := order.Compute(lg, order.Options{})

	require.Len(t, got, 2)
	assert.Equal(t, 0, crossings)
}

func TestComputeOnDisjointChainsFindsZeroCrossings(t *testing.T) {
	lg := layoutGraph(t, "A D: x\nB C: y")
	_, crossings := order.Compute(lg, order.Options{Sweeps: 24})

	assert.Equal(t, 0, crossings)
}

func TestComputePreservesVertexSetPerRank(t *testing.T) {
	lg := layoutGraph(t, "A B: x\nB C: y\nC A: z")
	got, _ := order.Compute(lg, order.Options{})

	want := lg.RanksOf()
	require.Len(t, got, len(want))
	for r := range want {
		assert.ElementsMatch(t, want[r], got[r])
	}
}
