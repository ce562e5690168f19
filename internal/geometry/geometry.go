// Package geometry turns solved coordinates into the final, immutable
// render output: node rectangles, edge polylines, arrow tips, and
// positioned labels, in a top-left-origin pixel coordinate space.
package geometry

import (
	"math"
	"sort"

	"github.com/jsavage/depict/internal/assert"
	"github.com/jsavage/depict/internal/config"
	"github.com/jsavage/depict/internal/graph"
	"github.com/jsavage/depict/internal/metrics"
)

// pendingLabel is a label awaiting the same-rank deoverlap pass.
type pendingLabel struct {
	label Label
	rank  int
}

// Point is one vertex of a polyline.
type Point struct{ X, Y float64 }

// ArrowHead is the triangle marker placed at an edge's target end.
type ArrowHead struct {
	X, Y  float64
	Angle float64 // radians, direction the triangle points
	Size  float64 // distance from the tip to each back corner, from config.Config.Arrow
}

// Node is a rendered actor box.
type Node struct {
	ID      int
	X, Y    float64 // centerline
	W, H    float64
	Classes []string
}

// Edge is a rendered message arrow.
type Edge struct {
	ID      int
	Points  []Point
	Classes []string
	Head    ArrowHead
}

// Label is positioned text attached to an edge or node.
type Label struct {
	Text    string
	X, Y    float64 // X is the left edge of the W-wide label box, whatever the Anchor
	W, H    float64
	Anchor  string // "start", "middle", or "end", mirrors SVG text-anchor
	Classes []string
}

// Document is the complete, immutable geometric output of one render.
type Document struct {
	Width, Height float64
	Nodes         []Node
	Edges         []Edge
	Labels        []Label
}

// Assemble builds a Document from a solved coordinate vector x (indexed by
// layout vertex ID, as produced by solve.Solve).
func Assemble(g *graph.Graph, lg *graph.LayoutGraph, x []float64, cfg config.Config) Document {
	byID := make(map[int]graph.Vertex, len(lg.Vertices))
	for _, v := range lg.Vertices {
		byID[v.ID] = v
	}

	doc := Document{}

	yOf := func(rank int) float64 { return float64(rank)*cfg.RowHeight + cfg.Margin }
	xOf := func(id int) float64 { return x[id] + cfg.Margin }

	for _, a := range g.Actors {
		v := byID[a.ID]
		doc.Nodes = append(doc.Nodes, Node{
			ID:      a.ID,
			X:       xOf(a.ID),
			Y:       yOf(v.Rank),
			W:       v.Width,
			H:       v.Height,
			Classes: []string{"actor"},
		})
	}

	routeByEdge := make(map[int]graph.EdgeRoute, len(lg.Routes))
	for _, r := range lg.Routes {
		routeByEdge[r.EdgeID] = r
	}

	var pending []pendingLabel

	for _, e := range g.Edges {
		route, ok := routeByEdge[e.ID]
		if !ok {
			continue
		}

		assert.That(len(route.Path) >= 2, "edge route must have at least 2 points, got %d", len(route.Path))

		var points []Point
		for i, id := range route.Path {
			v := byID[id]
			px, py := xOf(id), yOf(v.Rank)
			if i == 0 {
				py += v.Height / 2 // bottom-center of source box
			} else if i == len(route.Path)-1 {
				py -= v.Height / 2 // top-center of target box
			}
			points = append(points, Point{X: px, Y: py})
		}

		classes := []string{"edge"}
		if e.Back {
			classes = append(classes, "back-edge")
		}

		head := arrowAt(points, cfg.Arrow)

		doc.Edges = append(doc.Edges, Edge{
			ID:      e.ID,
			Points:  points,
			Classes: classes,
			Head:    head,
		})

		targetRank := byID[route.Path[len(route.Path)-1]].Rank

		if e.Label != "" {
			mid, w, h := labelAnchor(points, e.Label, cfg)
			lbl := Label{
				Text: e.Label, X: mid.X + cfg.LabelPad, Y: mid.Y,
				W: w, H: h, Anchor: "start", Classes: append([]string{"label"}, classes[1:]...),
			}
			pending = append(pending, pendingLabel{label: lbl, rank: targetRank})
		}
		if e.Response != "" {
			// A response draws its own reverse arrow between the same pair
			// (spec: "signals a reply arrow drawn back"), in addition to the
			// response label.
			reverse := make([]Point, len(points))
			for i, p := range points {
				reverse[len(points)-1-i] = p
			}
			doc.Edges = append(doc.Edges, Edge{
				ID:      -(e.ID + 1), // distinguishable from forward edge IDs, never looked up
				Points:  reverse,
				Classes: []string{"edge", "response"},
				Head:    arrowAt(reverse, cfg.Arrow),
			})

			mid, w, h := labelAnchor(points, e.Response, cfg)
			labelX := mid.X - cfg.LabelPad - w
			if labelX < 0 {
				labelX = 0
			}
			lbl := Label{
				Text: e.Response, X: labelX, Y: mid.Y,
				W: w, H: h, Anchor: "end", Classes: []string{"label", "response"},
			}
			pending = append(pending, pendingLabel{label: lbl, rank: targetRank})
		}
	}

	doc.Labels = deoverlap(pending, cfg)

	doc.Width, doc.Height = bounds(doc, cfg)
	return doc
}

// labelAnchor finds the midpoint of a polyline's longest vertical segment,
// which is where an edge label is placed.
func labelAnchor(points []Point, text string, cfg config.Config) (Point, float64, float64) {
	best := 0
	bestLen := -1.0
	for i := 0; i+1 < len(points); i++ {
		l := points[i+1].Y - points[i].Y
		if l < 0 {
			l = -l
		}
		if l > bestLen {
			bestLen = l
			best = i
		}
	}
	if len(points) < 2 {
		p := points[0]
		return p, metrics.TextWidth(text, cfg.FontSize), cfg.FontSize * 1.4
	}
	a, b := points[best], points[best+1]
	mid := Point{X: (a.X + b.X) / 2, Y: (a.Y + b.Y) / 2}
	return mid, metrics.TextWidth(text, cfg.FontSize), cfg.FontSize * 1.4
}

// deoverlap nudges labels within the same rank rightward so they don't
// overlap; the nudge never propagates across ranks.
func deoverlap(pending []pendingLabel, cfg config.Config) []Label {
	byRank := make(map[int][]int) // rank -> indices into pending
	for i, p := range pending {
		byRank[p.rank] = append(byRank[p.rank], i)
	}

	out := make([]Label, len(pending))
	for i, p := range pending {
		out[i] = p.label
	}

	for _, idxs := range byRank {
		sort.Slice(idxs, func(i, j int) bool { return out[idxs[i]].X < out[idxs[j]].X })
		for k := 1; k < len(idxs); k++ {
			prev := out[idxs[k-1]]
			cur := &out[idxs[k]]
			minX := prev.X + prev.W + cfg.LabelGap
			if cur.X < minX {
				cur.X = minX
			}
		}
	}
	return out
}

func arrowAt(points []Point, size float64) ArrowHead {
	if len(points) < 2 {
		return ArrowHead{}
	}
	last := points[len(points)-1]
	prev := points[len(points)-2]
	dx, dy := last.X-prev.X, last.Y-prev.Y
	return ArrowHead{X: last.X, Y: last.Y, Angle: math.Atan2(dy, dx), Size: size}
}

func bounds(doc Document, cfg config.Config) (float64, float64) {
	maxX, maxY := 0.0, 0.0
	for _, n := range doc.Nodes {
		if r := n.X + n.W/2; r > maxX {
			maxX = r
		}
		if b := n.Y + n.H/2; b > maxY {
			maxY = b
		}
	}
	for _, l := range doc.Labels {
		if r := l.X + l.W; r > maxX {
			maxX = r
		}
		if b := l.Y + l.H; b > maxY {
			maxY = b
		}
	}
	return maxX + cfg.Margin, maxY + cfg.Margin
}
