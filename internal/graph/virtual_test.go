package graph_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsavage/depict/internal/graph"
)

func TestInsertVirtualsNoLongEdges(t *testing.T) {
	g := build(t, "A B: x\nB C: y")
	rank := g.Rank()
	width := make([]float64, len(g.Actors))
	height := make([]float64, len(g.Actors))

	lg := g.InsertVirtuals(rank, width, height)

	assert.Len(t, lg.Vertices, len(g.Actors)) // no virtuals needed, every edge spans one rank
	for _, r := range lg.Routes {
		assert.Len(t, r.Path, 2)
	}
}

func TestInsertVirtualsSpansLongEdge(t *testing.T) {
	g := build(t, "A B: x\nB C: y\nA D: z") // third statement puts D one rank below A, alongside B
	// force a rank gap of 2 directly: A(0) -> C(2) synthetic edge
	g.Edges = append(g.Edges, graph.Edge{ID: len(g.Edges), Source: 0, Target: 2, Label: "long", Order: len(g.Edges)})

	rank := g.Rank()
	width := make([]float64, len(g.Actors))
	height := make([]float64, len(g.Actors))
	lg := g.InsertVirtuals(rank, width, height)

	var longRoute *graph.EdgeRoute
	for i, r := range lg.Routes {
		if r.EdgeID == g.Edges[len(g.Edges)-1].ID {
			longRoute = &lg.Routes[i]
		}
	}
	require.NotNil(t, longRoute)
	require.Greater(t, len(longRoute.Path), 2, "a long edge must route through at least one virtual vertex")

	for _, id := range longRoute.Path[1 : len(longRoute.Path)-1] {
		var v graph.Vertex
		for _, cand := range lg.Vertices {
			if cand.ID == id {
				v = cand
			}
		}
		assert.Equal(t, graph.Virtual, v.Kind)
	}
}

func TestRanksOfBucketsVerticesByRank(t *testing.T) {
	g := build(t, "A B: x\nB C: y")
	rank := g.Rank()
	lg := g.InsertVirtuals(rank, make([]float64, len(g.Actors)), make([]float64, len(g.Actors)))

	ranks := lg.RanksOf()
	require.Len(t, ranks, 3)
	assert.Equal(t, []int{0}, ranks[0])
	assert.Equal(t, []int{1}, ranks[1])
	assert.Equal(t, []int{2}, ranks[2])
}
