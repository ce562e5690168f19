// Package ast holds the abstract syntax tree produced by parsing Depict DSL
// source: a flat list of statements, each an actor sequence paired with the
// list of actions exchanged along it.
package ast

import (
	"strings"

	"github.com/jsavage/depict/internal/token"
)

// Program is the root of a parsed Depict DSL document.
type Program struct {
	Statements []*Statement
}

// Statement is one `<actor-seq> ':' <action-list>` line of the DSL.
type Statement struct {
	Actors  []Ident
	Actions []Action
	Indent  int // column after tab expansion, used to derive hierarchy
	Start   token.Position
	End     token.Position
}

// Ident is an actor name occurrence.
type Ident struct {
	Name  string
	Start token.Position
	End   token.Position
}

// Action is one label in an action-list, with an optional response label
// introduced by '/'.
type Action struct {
	Label    string
	Response string // empty when no response annotation is present
	Start    token.Position
	End      token.Position
}

func (s *Statement) String() string {
	var sb strings.Builder
	for i, a := range s.Actors {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(a.Name)
	}
	sb.WriteString(": ")
	for i, a := range s.Actions {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(a.Label)
		if a.Response != "" {
			sb.WriteString(" / ")
			sb.WriteString(a.Response)
		}
	}
	return sb.String()
}

// Parent returns the index into Program.Statements of s's hierarchical
// parent, determined by indentation: the nearest preceding statement with a
// strictly smaller indent. It returns -1 when s is top-level.
func Parent(stmts []*Statement, i int) int {
	for j := i - 1; j >= 0; j-- {
		if stmts[j].Indent < stmts[i].Indent {
			return j
		}
	}
	return -1
}
