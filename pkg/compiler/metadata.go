package compiler

import (
	"fmt"

	"github.com/leapstack-labs/leapview/pkg/ast"
	"github.com/leapstack-labs/leapview/pkg/scenario"
)

// metadataDeclName is the fixed top-level declaration the scenario
// metadata block is read from.
const metadataDeclName = "SCENARIO"

// Metadata is the scenario metadata block declared in source:
//
//	export const SCENARIO = { key, name, description, version }
//
// Found is false when the unit has no SCENARIO declaration at all; in
// that case the assembler generates a random key. A SCENARIO declaration
// that is present but incomplete is a hard error.
type Metadata struct {
	Key         string
	Name        string
	Description string
	Version     string
	Found       bool
}

// collectMetadata locates and validates the scenario metadata block.
func collectMetadata(unit *ast.Unit) (Metadata, error) {
	for _, d := range unit.Decls {
		decl, ok := d.(*ast.VarDecl)
		if !ok || decl.Name != metadataDeclName {
			continue
		}

		obj, ok := decl.Init.(*ast.ObjectLit)
		if !ok {
			return Metadata{}, metadataError("SCENARIO must be initialized with an object literal")
		}

		meta := Metadata{Found: true}
		fields := []struct {
			name string
			dst  *string
		}{
			{"key", &meta.Key},
			{"name", &meta.Name},
			{"description", &meta.Description},
			{"version", &meta.Version},
		}
		for _, f := range fields {
			value := obj.Field(f.name)
			if value == nil {
				return Metadata{}, metadataError(fmt.Sprintf("SCENARIO is missing the %q field", f.name))
			}
			lit, ok := value.(*ast.StringLit)
			if !ok || lit.Value == "" {
				return Metadata{}, metadataError(fmt.Sprintf("SCENARIO field %q must be a non-empty string literal", f.name))
			}
			*f.dst = lit.Value
		}
		return meta, nil
	}
	return Metadata{}, nil
}

// metadataError builds the user-facing remediation error for a malformed
// metadata block.
func metadataError(msg string) *scenario.Error {
	return scenario.NewInvalidExportError(
		msg+`; declare it as: export const SCENARIO = { key: "my-screen", name: "My Screen", description: "...", version: "1.0.0" }`,
		map[string]any{"declaration": metadataDeclName})
}
