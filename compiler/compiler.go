package compiler

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"cool-checker/ast"
	"cool-checker/config"
	"cool-checker/diag"
	"cool-checker/layout"
	"cool-checker/parser"
	"cool-checker/semant"
)

// Compiler runs the front end over a set of COOL sources: loading, parsing,
// semantic analysis and the optional outputs of a clean check.
type Compiler struct {
	cfg  *config.Config
	sink *diag.Sink

	// out receives the decorated tree dump.
	out io.Writer
}

func New(cfg *config.Config, sink *diag.Sink, out io.Writer) *Compiler {
	return &Compiler{cfg: cfg, sink: sink, out: out}
}

// Result is what a check produced. Fields are filled as far as the pipeline
// got; Layout is only set when everything checked clean.
type Result struct {
	Sources []parser.Source
	Program *ast.Program
	Classes *semant.ClassTable
	Layout  *layout.Layout
}

// Check runs the whole pipeline. Diagnostics go to the sink; the returned
// error is reserved for failures reading or writing files.
func (c *Compiler) Check(ctx context.Context) (*Result, error) {
	result := &Result{}

	sources, err := c.load()
	if err != nil {
		return result, err
	}
	result.Sources = sources

	program, err := c.parse(ctx, sources)
	if err != nil {
		return result, err
	}
	result.Program = program
	if !c.sink.ShouldProceed() {
		return result, nil
	}

	result.Classes = semant.Analyze(program, c.sink, semant.Options{
		HaltAfterClass: c.cfg.HaltAfterClass,
	})
	if !c.sink.ShouldProceed() {
		return result, nil
	}

	if c.cfg.DumpTypes && c.out != nil {
		fmt.Fprint(c.out, ast.PrintAST(program))
	}

	if c.cfg.LayoutOutput != "" {
		result.Layout = layout.Build(result.Classes)
		if err := result.Layout.Write(c.cfg.LayoutOutput); err != nil {
			return result, err
		}
	}

	return result, nil
}

// load resolves the imports of every root source. A file reachable from more
// than one root is only loaded once.
func (c *Compiler) load() ([]parser.Source, error) {
	if len(c.cfg.Sources) == 0 {
		return nil, errors.New("no source files given")
	}

	var sources []parser.Source
	seen := make(map[string]bool)

	for _, root := range c.cfg.Sources {
		if abs, err := filepath.Abs(root); err == nil && seen[abs] {
			c.sink.Warnf("`%s` is already imported by an earlier source", root)
			continue
		}

		resolved, err := parser.ResolveImports(root)
		if err != nil {
			return nil, errors.Wrapf(err, "loading %s", root)
		}

		for _, src := range resolved {
			abs, err := filepath.Abs(src.Path)
			if err != nil {
				return nil, errors.Wrapf(err, "resolving %s", src.Path)
			}
			if seen[abs] {
				continue
			}
			seen[abs] = true
			sources = append(sources, src)
		}
	}

	return sources, nil
}

type parsedFile struct {
	program *ast.Program
	errs    []parser.Error
}

// parse parses every source concurrently and merges the classes into one
// program in source order, so diagnostics and class order do not depend on
// scheduling.
func (c *Compiler) parse(ctx context.Context, sources []parser.Source) (*ast.Program, error) {
	parsed := make([]parsedFile, len(sources))

	g, ctx := errgroup.WithContext(ctx)
	for i, src := range sources {
		i, src := i, src
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			c.sink.Progress("parsing %s", src.Path)

			program, errs := parser.ParseFile(src.Path, strings.NewReader(src.Text))
			parsed[i] = parsedFile{program: program, errs: errs}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, errors.Wrap(err, "parsing sources")
	}

	program := &ast.Program{}
	for i, p := range parsed {
		for _, e := range p.errs {
			c.sink.Errorf(sources[i].Path, e.Line, "%s", e.Message)
		}
		program.Classes = append(program.Classes, p.program.Classes...)
	}
	return program, nil
}
