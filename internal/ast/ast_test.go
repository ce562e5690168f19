package ast_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jsavage/depict/internal/ast"
)

func TestStatementString(t *testing.T) {
	stmt := &ast.Statement{
		Actors: []ast.Ident{{Name: "A"}, {Name: "B"}},
		Actions: []ast.Action{
			{Label: "ping", Response: "pong"},
			{Label: "done"},
		},
	}
	assert.Equal(t, "A B: ping / pong, done", stmt.String())
}

func TestParent(t *testing.T) {
	stmts := []*ast.Statement{
		{Indent: 0}, // 0: top level
		{Indent: 8}, // 1: child of 0
		{Indent: 8}, // 2: sibling of 1, still child of 0
		{Indent: 0}, // 3: back to top level
	}

	assert.Equal(t, -1, ast.Parent(stmts, 0))
	assert.Equal(t, 0, ast.Parent(stmts, 1))
	assert.Equal(t, 0, ast.Parent(stmts, 2))
	assert.Equal(t, -1, ast.Parent(stmts, 3))
}
