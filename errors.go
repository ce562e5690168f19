package depict

import (
	"fmt"

	"github.com/jsavage/depict/internal/token"
)

// ParseErrorKind classifies why parsing failed.
type ParseErrorKind int

const (
	UnexpectedChar ParseErrorKind = iota
	EmptyLabel
	DanglingColon
	MismatchedIndent
)

func (k ParseErrorKind) String() string {
	switch k {
	case UnexpectedChar:
		return "UnexpectedChar"
	case EmptyLabel:
		return "EmptyLabel"
	case DanglingColon:
		return "DanglingColon"
	case MismatchedIndent:
		return "MismatchedIndent"
	default:
		return "UnknownParseErrorKind"
	}
}

// ParseError reports malformed Depict DSL input. It is recoverable at the
// caller's boundary: fixing the source text resolves it.
type ParseError struct {
	Span    token.Position
	Kind    ParseErrorKind
	Excerpt string // one-line excerpt of the offending source with a caret
	Cause   error
}

func (e *ParseError) Error() string {
	if e.Excerpt != "" {
		return fmt.Sprintf("parse error at %s: %s\n%s", e.Span, e.Kind, e.Excerpt)
	}
	return fmt.Sprintf("parse error at %s: %s", e.Span, e.Kind)
}

func (e *ParseError) Unwrap() error { return e.Cause }

// LayoutErrorKind classifies a downstream structural or numeric failure.
type LayoutErrorKind int

const (
	Infeasible LayoutErrorKind = iota
	NonConvergent
	DegenerateRanking
)

func (k LayoutErrorKind) String() string {
	switch k {
	case Infeasible:
		return "Infeasible"
	case NonConvergent:
		return "NonConvergent"
	case DegenerateRanking:
		return "DegenerateRanking"
	default:
		return "UnknownLayoutErrorKind"
	}
}

// LayoutError reports a failure in constraint construction or QP solving. It
// indicates a bug in the engine, never a malformed user input.
type LayoutError struct {
	Kind        LayoutErrorKind
	RankCount   int
	VarCount    int
	ConstrCount int
	Cause       error
}

func (e *LayoutError) Error() string {
	return fmt.Sprintf("layout error: %s (ranks=%d vars=%d constraints=%d): %v",
		e.Kind, e.RankCount, e.VarCount, e.ConstrCount, e.Cause)
}

func (e *LayoutError) Unwrap() error { return e.Cause }

// InternalError reports a violated invariant: a bug in the engine. Callers
// should not attempt to recover from it; it is surfaced with the name of the
// invariant that failed.
type InternalError struct {
	Invariant string
	Cause     error
}

func (e *InternalError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("internal error: invariant %q violated: %v", e.Invariant, e.Cause)
	}
	return fmt.Sprintf("internal error: invariant %q violated", e.Invariant)
}

func (e *InternalError) Unwrap() error { return e.Cause }

// RenderError is the sum of error kinds that Render can return. It exists so
// callers can type-switch on the concrete kind without string matching.
type RenderError interface {
	error
	renderError()
}

func (e *ParseError) renderError()    {}
func (e *LayoutError) renderError()   {}
func (e *InternalError) renderError() {}
