package compiler

import (
	"fmt"
	"unicode"

	"github.com/leapstack-labs/leapview/pkg/ast"
	"github.com/leapstack-labs/leapview/pkg/scenario"
)

// ExportKind classifies a renderable component declaration.
type ExportKind int

// Export kinds.
const (
	// ExportDefault is the unit's single root component.
	ExportDefault ExportKind = iota
	// ExportNamed is a reusable, exported component.
	ExportNamed
	// ExportHelper is a private component, still collected because it
	// may be referenced as a sub-tree elsewhere in the markup.
	ExportHelper
)

// String returns the display name of the export kind.
func (k ExportKind) String() string {
	switch k {
	case ExportDefault:
		return "default"
	case ExportNamed:
		return "named"
	case ExportHelper:
		return "helper"
	}
	return "unknown"
}

// componentDecl is one collected renderable declaration: a function
// whose body produces a single markup element.
type componentDecl struct {
	name   string // empty for an anonymous default export
	kind   ExportKind
	params []ast.Param
	root   *ast.Element
}

// collectExports walks the unit's top-level declarations and classifies
// every renderable function. Three shapes are recognized: named function
// declarations, arrow functions with a direct element body, and arrow
// functions whose block body contains a top-level return of an element.
//
// Name casing and duplicate names are validated here, fail-fast; the
// default-export count is the assembler's concern, where it is reported
// together with the other structural violations.
func collectExports(unit *ast.Unit) ([]componentDecl, error) {
	var out []componentDecl
	seen := make(map[string]bool)

	record := func(decl componentDecl) error {
		if decl.name != "" {
			if seen[decl.name] {
				return scenario.NewInvalidExportError(
					fmt.Sprintf("duplicate component name %q", decl.name),
					map[string]any{"name": decl.name})
			}
			seen[decl.name] = true

			exported := decl.kind == ExportDefault || decl.kind == ExportNamed
			if exported && !unicode.IsUpper(rune(decl.name[0])) {
				return scenario.NewInvalidExportError(
					fmt.Sprintf("exported component %q must start with an uppercase letter", decl.name),
					map[string]any{"name": decl.name})
			}
		}
		out = append(out, decl)
		return nil
	}

	for _, d := range unit.Decls {
		switch node := d.(type) {
		case *ast.FuncDecl:
			root := returnedElement(node.Body)
			if root == nil {
				continue
			}
			kind := ExportHelper
			switch {
			case node.Default:
				kind = ExportDefault
			case node.Exported:
				kind = ExportNamed
			}
			if err := record(componentDecl{name: node.Name, kind: kind, params: node.Params, root: root}); err != nil {
				return nil, err
			}

		case *ast.DefaultExport:
			fn, ok := node.Expr.(*ast.ArrowFn)
			if !ok {
				continue
			}
			root := arrowElement(fn)
			if root == nil {
				continue
			}
			if err := record(componentDecl{kind: ExportDefault, params: fn.Params, root: root}); err != nil {
				return nil, err
			}

		case *ast.VarDecl:
			fn, ok := node.Init.(*ast.ArrowFn)
			if !ok {
				continue
			}
			root := arrowElement(fn)
			if root == nil {
				continue
			}
			kind := ExportHelper
			if node.Exported {
				kind = ExportNamed
			}
			if err := record(componentDecl{name: node.Name, kind: kind, params: fn.Params, root: root}); err != nil {
				return nil, err
			}
		}
	}
	return out, nil
}

// arrowElement extracts the root element of an arrow-function component:
// either a direct expression body or a block body with a return.
func arrowElement(fn *ast.ArrowFn) *ast.Element {
	if fn.ExprBody != nil {
		if el, ok := fn.ExprBody.(*ast.Element); ok {
			return el
		}
		return nil
	}
	return returnedElement(fn.BlockBody)
}

// returnedElement finds a top-level "return <element>" in a block.
// Conditional returns nested inside statements do not count; a component
// body must have a statically known single root.
func returnedElement(body *ast.BlockStmt) *ast.Element {
	if body == nil {
		return nil
	}
	for _, stmt := range body.Stmts {
		ret, ok := stmt.(*ast.ReturnStmt)
		if !ok {
			continue
		}
		if el, ok := ret.Result.(*ast.Element); ok {
			return el
		}
	}
	return nil
}
