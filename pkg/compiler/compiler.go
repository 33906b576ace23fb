package compiler

import (
	"log/slog"

	"github.com/leapstack-labs/leapview/pkg/ast"
	"github.com/leapstack-labs/leapview/pkg/parser"
	"github.com/leapstack-labs/leapview/pkg/scenario"
)

// Config configures a Compiler.
type Config struct {
	// Registry is the base component registry, usually built from the
	// catalogue. Required.
	Registry *Registry

	// Logger receives best-effort warnings from the collection passes.
	// Defaults to a discarding logger.
	Logger *slog.Logger
}

// Compiler compiles parsed units into scenario documents. A Compiler is
// safe for concurrent use: each compilation works against its own fork
// of the base registry and carries no other shared state.
type Compiler struct {
	registry *Registry
	logger   *slog.Logger
}

// New creates a compiler over the given configuration.
func New(cfg Config) *Compiler {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Compiler{registry: cfg.Registry, logger: logger}
}

// Result is the outcome of one successful compilation.
type Result struct {
	Scenario *scenario.Scenario
	Metadata Metadata
}

// Compile runs the full pass pipeline over one unit: metadata, stores,
// exports, markup transformation per component, action collection, and
// assembly.
func (c *Compiler) Compile(unit *ast.Unit) (*Result, error) {
	meta, err := collectMetadata(unit)
	if err != nil {
		return nil, err
	}

	stores := collectStores(unit, c.logger)

	decls, err := collectExports(unit)
	if err != nil {
		return nil, err
	}

	registry := c.registry.Fork()
	for _, decl := range decls {
		if decl.name != "" {
			registry.RegisterLocal(decl.name)
		}
	}

	tr := newTransformer(registry, stores, c.logger)

	var main *scenario.Node
	defaults := 0
	components := make(map[string]*scenario.Node)
	for _, decl := range decls {
		node, err := tr.component(decl)
		if err != nil {
			return nil, err
		}
		if decl.kind == ExportDefault {
			defaults++
			if main == nil {
				main = node
			}
			continue
		}
		components[decl.name] = node
	}

	actions := collectActions(unit, stores, c.logger)

	doc, err := assemble(assembleInput{
		meta:       meta,
		main:       main,
		defaults:   defaults,
		components: components,
		stores:     stores,
		actions:    actions,
	}, c.logger)
	if err != nil {
		return nil, err
	}

	return &Result{Scenario: doc, Metadata: meta}, nil
}

// CompileSource parses and compiles source text in one step. The path is
// used in diagnostics only.
func (c *Compiler) CompileSource(src, path string) (*Result, error) {
	unit, err := parser.Parse(src, path)
	if err != nil {
		return nil, err
	}
	return c.Compile(unit)
}

// CompileElement compiles a single markup element outside any unit, with
// no props or stores in scope. Used by the repl to preview one node.
func (c *Compiler) CompileElement(el *ast.Element) (*scenario.Node, error) {
	tr := newTransformer(c.registry.Fork(), StoreSet{}, c.logger)
	return tr.element(el)
}
