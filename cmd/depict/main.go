// Command depict renders Depict DSL source read from stdin (or a file
// argument) into SVG on stdout.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/jsavage/depict"
	"github.com/jsavage/depict/internal/version"
)

func main() {
	os.Exit(run(os.Args, os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, r io.Reader, w io.Writer, wErr io.Writer) int {
	flags := flag.NewFlagSet(args[0], flag.ContinueOnError)
	flags.SetOutput(wErr)

	configPath := flags.String("config", "", "load layout constants from a YAML `file` instead of the built-in defaults")
	geometry := flags.Bool("geometry", false, "print the intermediate geometry as text instead of SVG")
	verbose := flags.Bool("v", false, "log solver and ordering diagnostics to stderr")
	showVersion := flags.Bool("version", false, "print the module version and exit")

	if err := flags.Parse(args[1:]); err != nil {
		return 2
	}

	if *showVersion {
		fmt.Fprintln(w, version.Version())
		return 0
	}

	var in io.Reader = r
	if rest := flags.Args(); len(rest) > 0 {
		f, err := os.Open(rest[0])
		if err != nil {
			fmt.Fprintf(wErr, "depict: %v\n", err)
			return 74
		}
		defer f.Close()
		in = f
	}

	source, err := io.ReadAll(in)
	if err != nil {
		fmt.Fprintf(wErr, "depict: reading input: %v\n", err)
		return 74
	}

	opts := depict.Options{}
	if *configPath != "" {
		opts, err = depict.NewOptionsFromConfigFile(*configPath)
		if err != nil {
			fmt.Fprintf(wErr, "depict: %v\n", err)
			return 74
		}
	}
	if *geometry {
		opts.Emit = depict.EmitGeometry
	}
	if *verbose {
		opts.Logger = slog.New(slog.NewTextHandler(wErr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}

	result, err := depict.Render(string(source), opts)
	if err != nil {
		fmt.Fprintf(wErr, "depict: %v\n", err)
		return exitCodeFor(err)
	}

	if *geometry {
		fmt.Fprintf(w, "%+v\n", result.Geometry)
		return 0
	}
	fmt.Fprint(w, result.SVG)
	return 0
}

// exitCodeFor maps a depict.RenderError to a shell exit code: 65 for
// malformed input (EX_DATAERR), 70 for a layout engine failure
// (EX_SOFTWARE), 74 for an invariant violation (EX_IOERR).
func exitCodeFor(err error) int {
	var parseErr *depict.ParseError
	var layoutErr *depict.LayoutError
	var internalErr *depict.InternalError
	switch {
	case errors.As(err, &parseErr):
		return 65
	case errors.As(err, &layoutErr):
		return 70
	case errors.As(err, &internalErr):
		return 74
	default:
		return 74
	}
}
