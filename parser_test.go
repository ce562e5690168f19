package depict_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsavage/depict"
	"github.com/jsavage/depict/internal/ast"
)

func TestParseSingleAction(t *testing.T) {
	prog, err := depict.Parse("A B: ping")
	require.NoError(t, err)
	require.Len(t, prog.Statements, 1)

	stmt := prog.Statements[0]
	assert.Equal(t, []ast.Ident{{Name: "A", Start: stmt.Actors[0].Start, End: stmt.Actors[0].End}, {Name: "B", Start: stmt.Actors[1].Start, End: stmt.Actors[1].End}}, stmt.Actors)
	require.Len(t, stmt.Actions, 1)
	assert.Equal(t, "ping", stmt.Actions[0].Label)
	assert.Empty(t, stmt.Actions[0].Response)
}

func TestParseActionListWithResponse(t *testing.T) {
	prog, err := depict.Parse("A B: ping / pong, done")
	require.NoError(t, err)
	require.Len(t, prog.Statements, 1)

	actions := prog.Statements[0].Actions
	require.Len(t, actions, 2)
	assert.Equal(t, "ping", actions[0].Label)
	assert.Equal(t, "pong", actions[0].Response)
	assert.Equal(t, "done", actions[1].Label)
	assert.Empty(t, actions[1].Response)
}

func TestParseMultiWordLabel(t *testing.T) {
	prog, err := depict.Parse("A B: say hello there")
	require.NoError(t, err)
	require.Len(t, prog.Statements, 1)
	assert.Equal(t, "say hello there", prog.Statements[0].Actions[0].Label)
}

func TestParseMultipleStatementsAndIndentation(t *testing.T) {
	src := "A B: ping\n\tC D: pong\nE F: done"
	prog, err := depict.Parse(src)
	require.NoError(t, err)
	require.Len(t, prog.Statements, 3)

	assert.Equal(t, 0, prog.Statements[0].Indent)
	assert.Equal(t, 8, prog.Statements[1].Indent)
	assert.Equal(t, 0, prog.Statements[2].Indent)
	assert.Equal(t, 0, ast.Parent(prog.Statements, 1))
	assert.Equal(t, -1, ast.Parent(prog.Statements, 2))
}

func TestParseEmptySource(t *testing.T) {
	prog, err := depict.Parse("")
	require.NoError(t, err)
	assert.Empty(t, prog.Statements)
}

func TestParseErrors(t *testing.T) {
	tests := map[string]struct {
		in   string
		kind depict.ParseErrorKind
	}{
		"ColonWithNoActions": {in: "A B:", kind: depict.EmptyLabel},
		"NoColon":            {in: "A B ping", kind: depict.DanglingColon},
		"EmptyStatement":     {in: ":", kind: depict.DanglingColon},
		"SlashWithNoLabel":   {in: "A B: / pong", kind: depict.EmptyLabel},
		"MismatchedIndent":   {in: "A: x\n\tB: y\n    C: z", kind: depict.MismatchedIndent},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := depict.Parse(test.in)
			require.Error(t, err)

			var parseErr *depict.ParseError
			require.ErrorAs(t, err, &parseErr)
			assert.Equal(t, test.kind, parseErr.Kind)
		})
	}
}
