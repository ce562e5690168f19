// Package order chooses a horizontal permutation of vertices within each
// rank that minimizes edge crossings, using the classic barycenter
// heuristic swept up and down the ranks.
package order

import (
	"sort"

	"github.com/jsavage/depict/internal/graph"
)

const defaultSweeps = 24

// Options configures the ordering sweep. Zero value uses defaultSweeps.
type Options struct {
	Sweeps int
}

// hop is one rank-to-rank edge segment derived from an EdgeRoute: two
// vertices one rank apart, tagged with the ID of the edge that produced it.
// The sweeps and the crossing count do not read the tag.
type hop struct {
	upper, lower int // vertex IDs; upper has the smaller rank
	order        int
}

// Compute returns the per-rank vertex ordering that minimizes crossings,
// along with the minimum crossing count observed. Ranks start in declaration
// order and barycenter ties keep each vertex's previous position, so the
// result is a pure function of lg.
func Compute(lg *graph.LayoutGraph, opts Options) ([][]int, int) {
	sweeps := opts.Sweeps
	if sweeps <= 0 {
		sweeps = defaultSweeps
	}

	ranks := lg.RanksOf()
	hops := buildHops(lg)
	rankOf := make(map[int]int, len(lg.Vertices))
	for r, verts := range ranks {
		for _, v := range verts {
			rankOf[v] = r
		}
	}

	order := initialOrder(lg, ranks)
	best := cloneOrder(order)
	bestCrossings := countCrossings(best, hops)

	noImprovement := 0
	down := true
	for pass := 0; pass < sweeps && noImprovement < 2; pass++ {
		if down {
			sweepDown(order, hops, rankOf)
		} else {
			sweepUp(order, hops, rankOf)
		}
		down = !down

		c := countCrossings(order, hops)
		if c < bestCrossings {
			bestCrossings = c
			best = cloneOrder(order)
			noImprovement = 0
		} else {
			noImprovement++
		}
	}

	return best, bestCrossings
}

func buildHops(lg *graph.LayoutGraph) []hop {
	var hops []hop
	for _, route := range lg.Routes {
		for i := 0; i+1 < len(route.Path); i++ {
			a, b := route.Path[i], route.Path[i+1]
			ra, rb := rankOfVertex(lg, a), rankOfVertex(lg, b)
			upper, lower := a, b
			if ra > rb {
				upper, lower = b, a
			}
			hops = append(hops, hop{upper: upper, lower: lower, order: route.EdgeID})
		}
	}
	return hops
}

func rankOfVertex(lg *graph.LayoutGraph, id int) int {
	for _, v := range lg.Vertices {
		if v.ID == id {
			return v.Rank
		}
	}
	return -1
}

// initialOrder seeds each rank with real vertices in actor-declaration order
// (Actor.ID is assigned in first-declaration order) followed by virtual
// vertices in the order of the edge that produced them.
func initialOrder(lg *graph.LayoutGraph, ranks [][]int) [][]int {
	byID := make(map[int]graph.Vertex, len(lg.Vertices))
	for _, v := range lg.Vertices {
		byID[v.ID] = v
	}

	order := make([][]int, len(ranks))
	for r, verts := range ranks {
		order[r] = append([]int(nil), verts...)
		sort.SliceStable(order[r], func(i, j int) bool {
			vi, vj := byID[order[r][i]], byID[order[r][j]]
			ki, kj := sortKey(vi), sortKey(vj)
			return ki < kj
		})
	}
	return order
}

func sortKey(v graph.Vertex) int {
	if v.Kind == graph.Real {
		return v.Actor * 2
	}
	return v.ID*2 + 1
}

func cloneOrder(order [][]int) [][]int {
	out := make([][]int, len(order))
	for i, r := range order {
		out[i] = append([]int(nil), r...)
	}
	return out
}

// sweepDown reorders ranks 1..n-1 using the barycenter of each vertex's
// neighbors in the rank above.
func sweepDown(order [][]int, hops []hop, rankOf map[int]int) {
	for r := 1; r < len(order); r++ {
		reorderRank(order, hops, rankOf, r, true)
	}
}

// sweepUp reorders ranks n-2..0 using the barycenter of each vertex's
// neighbors in the rank below.
func sweepUp(order [][]int, hops []hop, rankOf map[int]int) {
	for r := len(order) - 2; r >= 0; r-- {
		reorderRank(order, hops, rankOf, r, false)
	}
}

func reorderRank(order [][]int, hops []hop, rankOf map[int]int, r int, useUpper bool) {
	pos := positionIndex(order)

	neighbors := make(map[int][]int) // vertex ID -> neighbor positions in adjacent rank
	for _, h := range hops {
		if useUpper && rankOf[h.lower] == r && rankOf[h.upper] == r-1 {
			neighbors[h.lower] = append(neighbors[h.lower], pos[h.upper])
		} else if !useUpper && rankOf[h.upper] == r && rankOf[h.lower] == r+1 {
			neighbors[h.upper] = append(neighbors[h.upper], pos[h.lower])
		}
	}

	type scored struct {
		id        int
		bary      float64
		hasBary   bool
		prevIndex int
	}
	cur := order[r]
	items := make([]scored, len(cur))
	for i, id := range cur {
		ns := neighbors[id]
		it := scored{id: id, prevIndex: i}
		if len(ns) > 0 {
			sum := 0
			for _, p := range ns {
				sum += p
			}
			it.bary = float64(sum) / float64(len(ns))
			it.hasBary = true
		}
		items[i] = it
	}

	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]
		if a.hasBary != b.hasBary {
			return a.hasBary // vertices with a barycenter sort before isolated ones, stable otherwise
		}
		if a.hasBary && a.bary != b.bary {
			return a.bary < b.bary
		}
		if a.prevIndex != b.prevIndex {
			return a.prevIndex < b.prevIndex
		}
		return a.id < b.id
	})

	for i, it := range items {
		order[r][i] = it.id
	}
}

func positionIndex(order [][]int) map[int]int {
	pos := make(map[int]int)
	for _, rank := range order {
		for i, id := range rank {
			pos[id] = i
		}
	}
	return pos
}

// countCrossings sums, over every adjacent rank pair, the number of hop
// pairs that cross given the current ordering.
func countCrossings(order [][]int, hops []hop) int {
	pos := positionIndex(order)
	total := 0
	for i := 0; i+1 < len(order); i++ {
		total += countCrossingsBetween(order, hops, pos, i)
	}
	return total
}

func countCrossingsBetween(order [][]int, hops []hop, pos map[int]int, rankIdx int) int {
	var segs [][2]int
	for _, h := range hops {
		if _, ok := pos[h.upper]; !ok {
			continue
		}
		if rankOfInOrder(order, h.upper) == rankIdx && rankOfInOrder(order, h.lower) == rankIdx+1 {
			segs = append(segs, [2]int{pos[h.upper], pos[h.lower]})
		}
	}

	count := 0
	for i := 0; i < len(segs); i++ {
		for j := i + 1; j < len(segs); j++ {
			a, b := segs[i], segs[j]
			if (a[0]-b[0])*(a[1]-b[1]) < 0 {
				count++
			}
		}
	}
	return count
}

func rankOfInOrder(order [][]int, id int) int {
	for r, verts := range order {
		for _, v := range verts {
			if v == id {
				return r
			}
		}
	}
	return -1
}
