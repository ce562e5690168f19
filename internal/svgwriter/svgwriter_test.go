package svgwriter_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsavage/depict/internal/geometry"
	"github.com/jsavage/depict/internal/svgwriter"
)

func TestWriteEmitsViewBoxAndZOrder(t *testing.T) {
	doc := geometry.Document{
		Width: 100, Height: 80,
		Nodes:  []geometry.Node{{ID: 0, X: 50, Y: 20, W: 60, H: 40, Classes: []string{"actor"}}},
		Edges:  []geometry.Edge{{ID: 0, Points: []geometry.Point{{X: 50, Y: 40}, {X: 50, Y: 60}}, Classes: []string{"edge"}}},
		Labels: []geometry.Label{{Text: "ping", X: 10, Y: 50, Anchor: "start", Classes: []string{"label"}}},
	}

	var buf bytes.Buffer
	err := svgwriter.Write(&buf, doc, svgwriter.ClassMap{})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, `viewBox="0 0 100 80"`)
	assert.Contains(t, out, `<rect`)
	assert.Contains(t, out, `<path`)
	assert.Contains(t, out, `<polygon`)
	assert.Contains(t, out, `<text`)
	assert.Contains(t, out, "ping")

	// z-order: rects, then edges, then arrows, then labels
	rectIdx := strings.Index(out, "<rect")
	pathIdx := strings.Index(out, "<path")
	polyIdx := strings.Index(out, "<polygon")
	textIdx := strings.Index(out, "<text")
	assert.True(t, rectIdx < pathIdx)
	assert.True(t, pathIdx < polyIdx)
	assert.True(t, polyIdx < textIdx)
}

func TestWriteAppliesClassMap(t *testing.T) {
	doc := geometry.Document{
		Width: 10, Height: 10,
		Nodes: []geometry.Node{{ID: 0, X: 5, Y: 5, W: 2, H: 2, Classes: []string{"actor"}}},
	}
	classes := svgwriter.ClassMap{"actor": "depict-actor"}

	var buf bytes.Buffer
	require.NoError(t, svgwriter.Write(&buf, doc, classes))

	assert.Contains(t, buf.String(), `class="depict-actor"`)
}

func TestWriteEscapesText(t *testing.T) {
	doc := geometry.Document{
		Width: 10, Height: 10,
		Labels: []geometry.Label{{Text: "A & B < C", Anchor: "start"}},
	}

	var buf bytes.Buffer
	require.NoError(t, svgwriter.Write(&buf, doc, svgwriter.ClassMap{}))

	assert.Contains(t, buf.String(), "A &amp; B &lt; C")
}
