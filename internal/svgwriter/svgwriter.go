// Package svgwriter emits a geometry.Document as an SVG 1.1 document using
// ajstarks/svgo for canvas lifecycle (Start/End) while writing the
// fractional-pixel shapes (rects, paths, polygons, text) directly to the
// canvas's underlying writer, since svgo's typed helpers are int-only and
// the engine rounds coordinates to 0.5px increments.
package svgwriter

import (
	"fmt"
	"io"
	"math"

	svg "github.com/ajstarks/svgo"

	"github.com/jsavage/depict/internal/geometry"
)

// ClassMap maps a semantic tag (e.g. "actor", "back-edge") to the CSS class
// name emitted in the document, so front-ends can fold depict's markup into
// a host stylesheet.
type ClassMap map[string]string

// Write renders doc as a single <svg> document to w. Element emission order
// is background rects, edges, arrowheads, then labels, which fixes z-order.
func Write(w io.Writer, doc geometry.Document, classes ClassMap) error {
	width, height := int(math.Ceil(doc.Width)), int(math.Ceil(doc.Height))
	canvas := svg.New(w)
	canvas.Start(width, height, fmt.Sprintf(`viewBox="0 0 %d %d"`, width, height))
	fmt.Fprintf(w, "\n")

	for _, n := range doc.Nodes {
		writeRect(w, n, classes)
	}
	for _, e := range doc.Edges {
		writeEdge(w, e, classes)
	}
	for _, e := range doc.Edges {
		writeArrow(w, e, classes)
	}
	for _, l := range doc.Labels {
		writeLabel(w, l, classes)
	}

	canvas.End()
	return nil
}

func classAttr(tags []string, classes ClassMap) string {
	out := ""
	for i, t := range tags {
		name := t
		if mapped, ok := classes[t]; ok {
			name = mapped
		}
		if i > 0 {
			out += " "
		}
		out += name
	}
	return out
}

func writeRect(w io.Writer, n geometry.Node, classes ClassMap) {
	x := n.X - n.W/2
	y := n.Y - n.H/2
	fmt.Fprintf(w, `<rect x="%s" y="%s" width="%s" height="%s" class="%s"/>`+"\n",
		fnum(x), fnum(y), fnum(n.W), fnum(n.H), classAttr(n.Classes, classes))
}

func writeEdge(w io.Writer, e geometry.Edge, classes ClassMap) {
	if len(e.Points) == 0 {
		return
	}
	d := fmt.Sprintf("M%s,%s", fnum(e.Points[0].X), fnum(e.Points[0].Y))
	for _, p := range e.Points[1:] {
		d += fmt.Sprintf(" L%s,%s", fnum(p.X), fnum(p.Y))
	}
	fmt.Fprintf(w, `<path d="%s" class="%s" fill="none"/>`+"\n", d, classAttr(e.Classes, classes))
}

func writeArrow(w io.Writer, e geometry.Edge, classes ClassMap) {
	if len(e.Points) < 2 {
		return
	}
	h := e.Head
	size := h.Size
	if size == 0 {
		size = 7
	}
	// triangle pointing along h.Angle, tip at (h.X, h.Y)
	backAngle1 := h.Angle + math.Pi - 0.4
	backAngle2 := h.Angle + math.Pi + 0.4
	bx1 := h.X + size*math.Cos(backAngle1)
	by1 := h.Y + size*math.Sin(backAngle1)
	bx2 := h.X + size*math.Cos(backAngle2)
	by2 := h.Y + size*math.Sin(backAngle2)

	classList := append([]string{"arrowhead"}, e.Classes[1:]...)
	fmt.Fprintf(w, `<polygon points="%s,%s %s,%s %s,%s" class="%s"/>`+"\n",
		fnum(h.X), fnum(h.Y), fnum(bx1), fnum(by1), fnum(bx2), fnum(by2), classAttr(classList, classes))
}

func writeLabel(w io.Writer, l geometry.Label, classes ClassMap) {
	// l.X is the left edge of the label box; move it to the point the
	// text-anchor refers to.
	x := l.X
	switch l.Anchor {
	case "middle":
		x += l.W / 2
	case "end":
		x += l.W
	}
	fmt.Fprintf(w, `<text x="%s" y="%s" text-anchor="%s" class="%s">%s</text>`+"\n",
		fnum(x), fnum(l.Y), l.Anchor, classAttr(l.Classes, classes), escapeText(l.Text))
}

func fnum(v float64) string {
	return fmt.Sprintf("%.1f", v)
}

func escapeText(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		switch r {
		case '&':
			out = append(out, []rune("&amp;")...)
		case '<':
			out = append(out, []rune("&lt;")...)
		case '>':
			out = append(out, []rune("&gt;")...)
		default:
			out = append(out, r)
		}
	}
	return string(out)
}
