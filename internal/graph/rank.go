package graph

import "sort"

// Rank assigns every actor a non-negative integer rank (the vertical band
// it is drawn in). It mutates g.Edges to mark back-edges discovered while
// breaking cycles and returns the rank slice indexed by actor ID.
//
// The algorithm: condense into strongly-connected components, select a
// feedback arc set per nontrivial SCC with a degree-greedy heuristic, then
// run longest-path layering over the resulting DAG.
func (g *Graph) Rank() []int {
	g.markBackEdges()
	return g.longestPathRank()
}

// markBackEdges finds, for every strongly-connected component with more
// than one vertex, a linear order of its members by repeatedly removing the
// remaining vertex with the smallest (out-degree - in-degree), ties broken
// by first-declaration order. Edges running backward relative to that order
// are marked Back; ranking treats them as reversed.
func (g *Graph) markBackEdges() {
	comps := g.StronglyConnectedComponents()

	seqPos := make([]int, len(g.Actors)) // position of each actor within its component's break order
	for _, comp := range comps {
		if len(comp) < 2 {
			seqPos[comp[0]] = 0
			continue
		}
		order := feedbackOrder(comp, g.Edges)
		for pos, v := range order {
			seqPos[v] = pos
		}
	}

	compOf := make([]int, len(g.Actors))
	for ci, comp := range comps {
		for _, v := range comp {
			compOf[v] = ci
		}
	}

	for i := range g.Edges {
		e := &g.Edges[i]
		if compOf[e.Source] != compOf[e.Target] {
			continue // inter-component edges never participate in a cycle
		}
		if seqPos[e.Source] > seqPos[e.Target] {
			e.Back = true
		}
	}
}

// feedbackOrder computes a linear order of the vertices in comp by
// repeatedly placing the vertex with the smallest local (out-degree -
// in-degree) at the back of the order, considering only edges within comp.
func feedbackOrder(comp []int, edges []Edge) []int {
	inComp := make(map[int]bool, len(comp))
	for _, v := range comp {
		inComp[v] = true
	}

	type deg struct{ out, in int }
	degrees := make(map[int]*deg, len(comp))
	for _, v := range comp {
		degrees[v] = &deg{}
	}
	localOut := make(map[int][]Edge)
	for _, e := range edges {
		if inComp[e.Source] && inComp[e.Target] {
			degrees[e.Source].out++
			degrees[e.Target].in++
			localOut[e.Source] = append(localOut[e.Source], e)
		}
	}

	remaining := make(map[int]bool, len(comp))
	for _, v := range comp {
		remaining[v] = true
	}

	var back []int // built back-to-front, reversed at the end
	for len(remaining) > 0 {
		best := -1
		bestScore := 0
		bestOrder := 0
		for v := range remaining {
			score := degrees[v].out - degrees[v].in
			order := v // first-declaration order proxy: lower actor ID declared earlier
			if best == -1 || score < bestScore || (score == bestScore && order < bestOrder) {
				best = v
				bestScore = score
				bestOrder = order
			}
		}

		back = append(back, best)
		delete(remaining, best)
		for _, e := range localOut[best] {
			if remaining[e.Target] {
				degrees[e.Target].in--
			}
		}
		for _, e := range edges {
			if e.Target == best && remaining[e.Source] {
				degrees[e.Source].out--
			}
		}
	}

	// back holds vertices in the order they were peeled from the end;
	// reverse it to get front-to-back placement.
	order := make([]int, len(back))
	for i, v := range back {
		order[len(back)-1-i] = v
	}
	return order
}

// longestPathRank computes rank(v) = 1 + max(rank(u)) over effective
// forward edges (back-edges reversed), 0 for sources, via Kahn's algorithm
// over the now-acyclic effective graph. Ranks are compacted so no rank is
// empty.
func (g *Graph) longestPathRank() []int {
	n := len(g.Actors)
	effOut := make([][]int, n)
	indeg := make([]int, n)
	for _, e := range g.Edges {
		from, to := e.Source, e.Target
		if e.Back {
			from, to = to, from
		}
		effOut[from] = append(effOut[from], to)
		indeg[to]++
	}

	rank := make([]int, n)
	var queue []int
	for v := 0; v < n; v++ {
		if indeg[v] == 0 {
			queue = append(queue, v)
		}
	}
	sort.Ints(queue)

	processed := 0
	for len(queue) > 0 {
		v := queue[0]
		queue = queue[1:]
		processed++
		for _, w := range effOut[v] {
			if rank[v]+1 > rank[w] {
				rank[w] = rank[v] + 1
			}
			indeg[w]--
			if indeg[w] == 0 {
				queue = append(queue, w)
			}
		}
	}
	_ = processed // a genuine DAG always drains the queue fully

	return compact(rank)
}

// compact remaps ranks to a dense 0..k-1 range, preserving order, so no
// rank is left empty.
func compact(rank []int) []int {
	if len(rank) == 0 {
		return rank
	}
	seen := make(map[int]bool)
	for _, r := range rank {
		seen[r] = true
	}
	distinct := make([]int, 0, len(seen))
	for r := range seen {
		distinct = append(distinct, r)
	}
	sort.Ints(distinct)
	remap := make(map[int]int, len(distinct))
	for i, r := range distinct {
		remap[r] = i
	}

	out := make([]int, len(rank))
	for i, r := range rank {
		out[i] = remap[r]
	}
	return out
}
