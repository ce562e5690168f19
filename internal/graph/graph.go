// Package graph translates a parsed Depict DSL program into a typed
// directed multigraph, then layers it into ranks suitable for drawing:
// strongly-connected-component condensation, feedback-arc-set back-edge
// selection, longest-path ranking, and virtual-vertex insertion for edges
// that span more than one rank.
package graph

import (
	"github.com/jsavage/depict/internal/ast"
)

// Actor is a named participant. Two actors with the same name refer to the
// same entity; ID is a stable dense index assigned in first-declaration
// order.
type Actor struct {
	ID   int
	Name string
}

// Edge is a directed message between two actors. Parallel edges between the
// same ordered pair are preserved and differentiated by Label; Order records
// the insertion sequence (equal to ID). The layering and ordering stages do
// not read Order.
type Edge struct {
	ID       int
	Source   int // Actor.ID
	Target   int // Actor.ID
	Label    string
	Response string // empty when the originating action had no response
	Order    int
	Back     bool // set during ranking when this edge is reversed to break a cycle
}

// Graph is the directed multigraph built from a Depict DSL program.
type Graph struct {
	Actors []Actor
	Edges  []Edge
	// Parent maps an actor ID to the actor ID of its declared container, as
	// established by the statement's indentation. Actors with no declared
	// container are absent from the map.
	Parent map[int]int
}

// Build constructs a Graph from a parsed program. Actor-sequence `A B C: x,
// y` yields actors A, B, C plus edges A→B labeled x, B→C labeled x, then
// A→B labeled y, B→C labeled y, in that order.
func Build(prog *ast.Program) *Graph {
	g := &Graph{Parent: make(map[int]int)}
	index := make(map[string]int)

	actorID := func(name string) int {
		if id, ok := index[name]; ok {
			return id
		}
		id := len(g.Actors)
		index[name] = id
		g.Actors = append(g.Actors, Actor{ID: id, Name: name})
		return id
	}

	// firstActorOf maps a statement index to the ID of the first actor it
	// declares, used to resolve containment from indentation.
	firstActorOf := make([]int, len(prog.Statements))

	for i, stmt := range prog.Statements {
		ids := make([]int, len(stmt.Actors))
		for j, a := range stmt.Actors {
			ids[j] = actorID(a.Name)
		}
		if len(ids) > 0 {
			firstActorOf[i] = ids[0]
		} else {
			firstActorOf[i] = -1
		}

		if parent := ast.Parent(prog.Statements, i); parent >= 0 && firstActorOf[parent] >= 0 {
			for _, id := range ids {
				if _, have := g.Parent[id]; !have && id != firstActorOf[parent] {
					g.Parent[id] = firstActorOf[parent]
				}
			}
		}

		for _, action := range stmt.Actions {
			for j := 0; j+1 < len(ids); j++ {
				g.Edges = append(g.Edges, Edge{
					ID:       len(g.Edges),
					Source:   ids[j],
					Target:   ids[j+1],
					Label:    action.Label,
					Response: action.Response,
					Order:    len(g.Edges),
				})
			}
		}
	}

	return g
}

// Adjacency returns forward and backward adjacency lists over actor IDs,
// counting each edge once per occurrence (parallel edges produce repeated
// entries) so callers relying on multiplicity-sensitive heuristics such as
// the barycenter see the right weight.
func (g *Graph) Adjacency() (out, in [][]int) {
	out = make([][]int, len(g.Actors))
	in = make([][]int, len(g.Actors))
	for _, e := range g.Edges {
		out[e.Source] = append(out[e.Source], e.Target)
		in[e.Target] = append(in[e.Target], e.Source)
	}
	return out, in
}
