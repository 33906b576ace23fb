package compiler

import (
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/leapstack-labs/leapview/pkg/scenario"
)

// assembleInput carries everything the earlier passes produced for one
// compilation unit.
type assembleInput struct {
	meta       Metadata
	main       *scenario.Node
	defaults   int
	components map[string]*scenario.Node
	stores     StoreSet
	actions    map[string]*scenario.ActionDescriptor
}

// assemble merges the collected artifacts into the final scenario
// document and re-validates it end to end. Structural problems are
// aggregated into one AssemblyError so a broken unit reports everything
// wrong with it in a single compile.
func assemble(in assembleInput, logger *slog.Logger) (*scenario.Scenario, error) {
	var violations []scenario.Violation

	switch {
	case in.defaults == 0:
		violations = append(violations, scenario.Violation{
			Field:    "main",
			Message:  "unit has no default export",
			Severity: scenario.SeverityError,
		})
	case in.defaults > 1:
		violations = append(violations, scenario.Violation{
			Field:    "main",
			Message:  fmt.Sprintf("unit has %d default exports, want exactly one", in.defaults),
			Severity: scenario.SeverityError,
		})
	}

	key := in.meta.Key
	if !in.meta.Found {
		key = uuid.NewString()
		logger.Warn("no SCENARIO metadata block, generated a random key; output is not reproducible",
			"key", key)
	}
	if in.meta.Found && !scenario.KeyPattern.MatchString(key) {
		violations = append(violations, scenario.Violation{
			Field:    "key",
			Message:  fmt.Sprintf("%q does not match %s", key, scenario.KeyPattern),
			Severity: scenario.SeverityError,
		})
	}

	if len(violations) > 0 {
		return nil, (&scenario.AssemblyError{Violations: violations}).AsError()
	}

	doc := &scenario.Scenario{
		Key:        key,
		Version:    scenario.SchemaVersion,
		Main:       in.main,
		Components: in.components,
	}
	if doc.Components == nil {
		doc.Components = map[string]*scenario.Node{}
	}
	if len(in.stores) > 0 {
		doc.Stores = map[string]*scenario.StoreDescriptor(in.stores)
	}
	if len(in.actions) > 0 {
		doc.Actions = in.actions
	}

	// Defense in depth: the transformer already maintains these
	// invariants on construction, but the document is the contract with
	// every client, so it never leaves unchecked.
	if verr := doc.Validate(); verr != nil && verr.HasErrors() {
		return nil, verr.AsError()
	}

	return doc, nil
}
