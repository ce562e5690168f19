// Package depict renders Depict DSL source — actors, actions, and messages
// — into a layered, orthogonal diagram. Render is the engine's single entry
// point: text in, SVG or geometry out. It is a pure function of its
// arguments; two calls with the same source and options produce
// byte-identical output, and there is no shared state between calls.
package depict

import (
	"bytes"
	"fmt"
	"log/slog"

	"github.com/jsavage/depict/internal/config"
	"github.com/jsavage/depict/internal/constraint"
	"github.com/jsavage/depict/internal/geometry"
	"github.com/jsavage/depict/internal/graph"
	"github.com/jsavage/depict/internal/metrics"
	"github.com/jsavage/depict/internal/order"
	"github.com/jsavage/depict/internal/solve"
	"github.com/jsavage/depict/internal/svgwriter"
)

// Emit selects what Render produces.
type Emit int

const (
	// EmitSVG renders the final SVG document (the default).
	EmitSVG Emit = iota
	// EmitGeometry returns the intermediate geometric value instead, for
	// front-ends that render natively rather than via SVG.
	EmitGeometry
)

// Options configures a render call. The zero value is usable: every field
// falls back to config.Default() when unset.
type Options struct {
	RowHeight float64
	FontSize  float64
	ClassMap  map[string]string
	Emit      Emit

	// Logger receives non-fatal diagnostics (e.g. solver iteration counts).
	// Render never logs unless a Logger is supplied, keeping it pure.
	Logger *slog.Logger

	// base overrides config.Default() wholesale when set, letting a loaded
	// config file govern every layout constant rather than just RowHeight
	// and FontSize. Set via NewOptionsFromConfigFile.
	base *config.Config
}

// NewOptionsFromConfigFile loads a full layout configuration from a YAML
// file and returns Options that render against it. RowHeight and FontSize
// set afterward on the returned value still take precedence.
func NewOptionsFromConfigFile(path string) (Options, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return Options{}, err
	}
	return Options{base: &cfg}, nil
}

// Result is what Render produces, shaped by Options.Emit.
type Result struct {
	SVG      string
	Geometry geometry.Document
}

func (o Options) toConfig() config.Config {
	cfg := config.Default()
	if o.base != nil {
		cfg = *o.base
	}
	if o.FontSize > 0 {
		cfg.FontSize = o.FontSize
		cfg.RowHeight = o.FontSize * 3
	}
	if o.RowHeight > 0 {
		cfg.RowHeight = o.RowHeight
	}
	return cfg
}

// Render parses source as Depict DSL and lays it out into a diagram.
func Render(source string, opts Options) (result Result, err error) {
	defer func() {
		// assert.That panics on a violated invariant; this is the one place
		// the engine recovers, to honor the "InternalError propagates to
		// the top with the originating invariant label" contract without
		// crashing the caller's process.
		if r := recover(); r != nil {
			result = Result{}
			err = &InternalError{Invariant: fmt.Sprint(r)}
		}
	}()

	cfg := opts.toConfig()
	logger := opts.Logger

	prog, err := Parse(source)
	if err != nil {
		return Result{}, err
	}

	g := graph.Build(prog)
	if len(g.Actors) == 0 {
		doc := geometry.Document{Width: 2 * cfg.Margin, Height: 2 * cfg.Margin}
		result = Result{Geometry: doc}
		if opts.Emit == EmitGeometry {
			return result, nil
		}
		var buf bytes.Buffer
		if err := svgwriter.Write(&buf, doc, svgwriter.ClassMap(opts.ClassMap)); err != nil {
			return Result{}, &InternalError{Invariant: "svg emission", Cause: err}
		}
		result.SVG = buf.String()
		return result, nil
	}

	rank := g.Rank()
	if err := checkRankMonotonicity(g, rank); err != nil {
		return Result{}, err
	}

	width := make([]float64, len(g.Actors))
	height := make([]float64, len(g.Actors))
	for _, a := range g.Actors {
		width[a.ID], height[a.ID] = metrics.NodeSize(a.Name, cfg.FontSize)
	}

	lg := g.InsertVirtuals(rank, width, height)

	ordering, crossings := order.Compute(lg, order.Options{Sweeps: cfg.Sweeps})
	if logger != nil {
		logger.Debug("ordering complete", "crossings", crossings)
	}

	problem := constraint.Build(g, lg, ordering, cfg)
	solved, solveErr := solve.Solve(problem, cfg)
	if solveErr != nil {
		if logger != nil {
			logger.Warn("solver did not reach tolerance", "error", solveErr)
		}
		return Result{}, toLayoutError(solveErr, len(ordering), problem)
	}
	if logger != nil {
		logger.Debug("solve complete", "iterations", solved.Iterations)
	}

	doc := geometry.Assemble(g, lg, solved.X, cfg)

	result = Result{Geometry: doc}
	if opts.Emit == EmitGeometry {
		return result, nil
	}

	var buf bytes.Buffer
	if err := svgwriter.Write(&buf, doc, svgwriter.ClassMap(opts.ClassMap)); err != nil {
		return Result{}, &InternalError{Invariant: "svg emission", Cause: err}
	}
	result.SVG = buf.String()
	return result, nil
}

// checkRankMonotonicity re-verifies the invariant spec.md requires of every
// forward edge after ranking: rank(target) > rank(source). A violation
// indicates a bug in the ranking stage, not a user error.
func checkRankMonotonicity(g *graph.Graph, rank []int) error {
	for _, e := range g.Edges {
		if e.Back {
			continue
		}
		if rank[e.Target] <= rank[e.Source] {
			return &InternalError{Invariant: "rank monotonicity", Cause: fmt.Errorf(
				"edge %d->%d: rank(%d) <= rank(%d)", e.Source, e.Target, rank[e.Target], rank[e.Source])}
		}
	}
	return nil
}

func toLayoutError(err error, rankCount int, p *constraint.Problem) *LayoutError {
	kind := NonConvergent
	switch err.(type) {
	case *solve.ErrInfeasible:
		kind = Infeasible
	}
	return &LayoutError{
		Kind:        kind,
		RankCount:   rankCount,
		VarCount:    p.N,
		ConstrCount: len(p.Constraints),
		Cause:       err,
	}
}
