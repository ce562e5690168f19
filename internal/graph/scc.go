package graph

// sccFinder runs Tarjan's strongly-connected-components algorithm over a
// graph's forward adjacency, in the same index/lowlink bookkeeping style as
// a textbook recursive DFS over an adjacency list.
type sccFinder struct {
	adj     [][]int
	index   []int
	lowlink []int
	onStack []bool
	stack   []int
	counter int
	comps   [][]int
}

// StronglyConnectedComponents returns the graph's SCCs as lists of actor
// IDs. Each actor belongs to exactly one component; a component of size 1
// whose actor has no self-loop is not cyclic.
func (g *Graph) StronglyConnectedComponents() [][]int {
	out, _ := g.Adjacency()
	f := &sccFinder{
		adj:     out,
		index:   make([]int, len(g.Actors)),
		lowlink: make([]int, len(g.Actors)),
		onStack: make([]bool, len(g.Actors)),
	}
	for i := range f.index {
		f.index[i] = -1
	}

	for v := 0; v < len(g.Actors); v++ {
		if f.index[v] == -1 {
			f.strongConnect(v)
		}
	}
	return f.comps
}

// strongConnect is the recursive step of Tarjan's algorithm. Depict graphs
// are small enough (diagram source, not arbitrary data) that recursion
// depth is not a concern.
func (f *sccFinder) strongConnect(v int) {
	f.index[v] = f.counter
	f.lowlink[v] = f.counter
	f.counter++
	f.stack = append(f.stack, v)
	f.onStack[v] = true

	for _, w := range f.adj[v] {
		if f.index[w] == -1 {
			f.strongConnect(w)
			f.lowlink[v] = min(f.lowlink[v], f.lowlink[w])
		} else if f.onStack[w] {
			f.lowlink[v] = min(f.lowlink[v], f.index[w])
		}
	}

	if f.lowlink[v] == f.index[v] {
		var comp []int
		for {
			n := len(f.stack) - 1
			w := f.stack[n]
			f.stack = f.stack[:n]
			f.onStack[w] = false
			comp = append(comp, w)
			if w == v {
				break
			}
		}
		f.comps = append(f.comps, comp)
	}
}
