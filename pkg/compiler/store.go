package compiler

import (
	"log/slog"
	"math"
	"sort"
	"strings"

	"github.com/leapstack-labs/leapview/pkg/ast"
	"github.com/leapstack-labs/leapview/pkg/scenario"
	"github.com/leapstack-labs/leapview/pkg/token"
)

// storeConstructor is the call that declares a state store.
const storeConstructor = "createStore"

// StoreSet maps store variable names to their descriptors for one
// compilation unit.
type StoreSet map[string]*scenario.StoreDescriptor

// collectStores scans top-level declarations for store-constructor calls:
//
//	const cart = createStore({ scope: Scope.Global, storage: Storage.Memory, initialValue: {...} })
//
// Collection is best-effort: a declaration whose configuration cannot be
// parsed is skipped with a warning rather than failing the compilation,
// because stores augment the renderable tree without defining it.
func collectStores(unit *ast.Unit, logger *slog.Logger) StoreSet {
	stores := make(StoreSet)

	for _, d := range unit.Decls {
		decl, ok := d.(*ast.VarDecl)
		if !ok {
			continue
		}
		call, ok := decl.Init.(*ast.CallExpr)
		if !ok {
			continue
		}
		callee, ok := call.Callee.(*ast.Ident)
		if !ok || callee.Name != storeConstructor {
			continue
		}

		desc, reason := parseStoreConfig(call)
		if desc == nil {
			logger.Warn("skipping unparseable store declaration",
				"store", decl.Name, "reason", reason)
			continue
		}
		stores[decl.Name] = desc
	}
	return stores
}

// parseStoreConfig parses the constructor's configuration object.
// Returns a descriptor, or nil with a reason string.
func parseStoreConfig(call *ast.CallExpr) (*scenario.StoreDescriptor, string) {
	if len(call.Args) != 1 {
		return nil, "constructor takes exactly one configuration object"
	}
	cfg, ok := call.Args[0].(*ast.ObjectLit)
	if !ok {
		return nil, "configuration must be an object literal"
	}

	scope, ok := enumMember(cfg.Field("scope"), "Scope")
	if !ok {
		return nil, "scope must be a Scope enum member"
	}
	storeScope, ok := scenario.ParseStoreScope(scope)
	if !ok {
		return nil, "unknown scope Scope." + scope
	}

	storage, ok := enumMember(cfg.Field("storage"), "Storage")
	if !ok {
		return nil, "storage must be a Storage enum member"
	}
	storeStorage, ok := scenario.ParseStoreStorage(storage)
	if !ok {
		return nil, "unknown storage Storage." + storage
	}

	desc := &scenario.StoreDescriptor{Scope: storeScope, Storage: storeStorage}
	if init := cfg.Field("initialValue"); init != nil {
		value := literalValue(init)
		if value == nil {
			return nil, "initialValue must be a literal expression"
		}
		desc.InitialValue = value
	}
	return desc, ""
}

// enumMember extracts the member name from an expression of the form
// Enum.Member, verifying the enum identifier.
func enumMember(expr ast.Expr, enum string) (string, bool) {
	member, ok := expr.(*ast.MemberExpr)
	if !ok || member.Computed {
		return "", false
	}
	obj, ok := member.Object.(*ast.Ident)
	if !ok || obj.Name != enum {
		return "", false
	}
	return member.Property, true
}

// literalValue converts a literal expression tree into a TypedValue.
// Returns nil for anything the target runtime could not hold statically
// (identifiers, calls, arithmetic); callers decide whether that is a
// skip, a Null substitution, or an error.
func literalValue(expr ast.Expr) *scenario.TypedValue {
	switch node := expr.(type) {
	case *ast.StringLit:
		return scenario.StringValue(node.Value)
	case *ast.NumberLit:
		return numberValue(node)
	case *ast.BoolLit:
		return scenario.BoolValue(node.Value)
	case *ast.NullLit:
		return scenario.NullValue()
	case *ast.UnaryExpr:
		// Negative number literals arrive as unary minus.
		if node.Op == token.MINUS {
			if num, ok := node.Arg.(*ast.NumberLit); ok {
				v := numberValue(num)
				if v.Kind == scenario.ValueInteger {
					v.Int = -v.Int
				} else {
					v.Num = -v.Num
				}
				return v
			}
		}
		return nil
	case *ast.ArrayLit:
		items := make([]*scenario.TypedValue, 0, len(node.Elements))
		for _, el := range node.Elements {
			v := literalValue(el)
			if v == nil {
				return nil
			}
			items = append(items, v)
		}
		return scenario.ArrayValue(items...)
	case *ast.ObjectLit:
		fields := make(map[string]*scenario.TypedValue, len(node.Fields))
		for _, f := range node.Fields {
			v := literalValue(f.Value)
			if v == nil {
				return nil
			}
			fields[f.Key] = v
		}
		return scenario.ObjectValue(fields)
	}
	return nil
}

// numberValue picks integer or floating representation from the literal.
func numberValue(num *ast.NumberLit) *scenario.TypedValue {
	if num.Value == math.Trunc(num.Value) && !hasFloatSyntax(num.Raw) {
		return scenario.IntegerValue(int64(num.Value))
	}
	return scenario.NumberValue(num.Value)
}

func hasFloatSyntax(raw string) bool {
	for i := 0; i < len(raw); i++ {
		switch raw[i] {
		case '.', 'e', 'E':
			return true
		}
	}
	return false
}

// collectActions finds every mutation call-site against a known store:
//
//	cart.set("items", [...]) / cart.remove("x") / cart.merge("y", {...})
//	cart.transaction(() => { ...nested mutations... })
//
// Identical mutations at the same key collapse onto one descriptor via
// the deterministic action id. Like store collection this is
// best-effort: malformed call-sites are skipped with a warning.
func collectActions(unit *ast.Unit, stores StoreSet, logger *slog.Logger) map[string]*scenario.ActionDescriptor {
	actions := make(map[string]*scenario.ActionDescriptor)
	for _, d := range unit.Decls {
		collectActionsIn(d, stores, actions, logger)
	}
	return actions
}

// collectActionsIn scans a subtree for mutation call-sites. Calls inside
// transaction callbacks are consumed by the transaction's descriptor and
// must not additionally surface as top-level actions, so they are marked
// and skipped in the main sweep.
func collectActionsIn(n ast.Node, stores StoreSet, actions map[string]*scenario.ActionDescriptor, logger *slog.Logger) {
	if n == nil {
		return
	}

	inTransaction := make(map[ast.Node]bool)
	ast.Walk(n, func(child ast.Node) {
		call, ok := child.(*ast.CallExpr)
		if !ok || !isTransactionCall(call, stores) {
			return
		}
		cb, ok := call.Args[0].(*ast.ArrowFn)
		if !ok {
			return
		}
		ast.Walk(cb, func(inner ast.Node) {
			if _, ok := inner.(*ast.CallExpr); ok {
				inTransaction[inner] = true
			}
		})
	})

	ast.Walk(n, func(child ast.Node) {
		call, ok := child.(*ast.CallExpr)
		if !ok || inTransaction[call] {
			return
		}
		if desc, handled := mutationDescriptor(call, stores, logger); handled && desc != nil {
			actions[desc.ID] = desc
		}
	})
}

// isTransactionCall reports whether the call is store.transaction(cb)
// for a known store.
func isTransactionCall(call *ast.CallExpr, stores StoreSet) bool {
	member, ok := call.Callee.(*ast.MemberExpr)
	if !ok || member.Computed || member.Property != "transaction" {
		return false
	}
	obj, ok := member.Object.(*ast.Ident)
	if !ok {
		return false
	}
	_, known := stores[obj.Name]
	return known && len(call.Args) == 1
}

// mutationDescriptor builds the descriptor for a store mutation call.
// handled is true when the call targets a known store with a mutation
// method, even if the descriptor itself could not be built.
func mutationDescriptor(call *ast.CallExpr, stores StoreSet, logger *slog.Logger) (desc *scenario.ActionDescriptor, handled bool) {
	member, ok := call.Callee.(*ast.MemberExpr)
	if !ok || member.Computed {
		return nil, false
	}
	obj, ok := member.Object.(*ast.Ident)
	if !ok {
		return nil, false
	}
	store, ok := stores[obj.Name]
	if !ok {
		return nil, false
	}
	kind, ok := scenario.ParseActionKind(member.Property)
	if !ok {
		return nil, false
	}

	if kind == scenario.ActionTransaction {
		return transactionDescriptor(call, obj.Name, store, stores, logger), true
	}

	if len(call.Args) == 0 {
		logger.Warn("skipping store mutation without a key", "store", obj.Name, "method", member.Property)
		return nil, true
	}
	key, ok := call.Args[0].(*ast.StringLit)
	if !ok {
		logger.Warn("skipping store mutation with a non-literal key", "store", obj.Name, "method", member.Property)
		return nil, true
	}

	desc = &scenario.ActionDescriptor{
		ID:      scenario.ActionID(store.Scope, store.Storage, kind, key.Value),
		Kind:    kind,
		Scope:   store.Scope,
		Storage: store.Storage,
		KeyPath: key.Value,
	}
	if kind != scenario.ActionRemove && len(call.Args) > 1 {
		value := literalValue(call.Args[1])
		if value == nil {
			// The runtime cannot evaluate host-language expressions;
			// the value is intentionally lost.
			logger.Warn("store mutation value is not a literal, serializing as null",
				"store", obj.Name, "method", member.Property, "key", key.Value)
			value = scenario.NullValue()
		}
		desc.Value = value
	}
	return desc, true
}

// transactionDescriptor analyses (not executes) the transaction callback
// and collects its nested mutations as child descriptors.
func transactionDescriptor(call *ast.CallExpr, storeName string, store *scenario.StoreDescriptor, stores StoreSet, logger *slog.Logger) *scenario.ActionDescriptor {
	if len(call.Args) != 1 {
		logger.Warn("skipping transaction without a callback", "store", storeName)
		return nil
	}
	cb, ok := call.Args[0].(*ast.ArrowFn)
	if !ok {
		logger.Warn("skipping transaction with a non-function callback", "store", storeName)
		return nil
	}

	nested := make(map[string]*scenario.ActionDescriptor)
	var body ast.Node
	if cb.BlockBody != nil {
		body = cb.BlockBody
	} else if cb.ExprBody != nil {
		body = cb.ExprBody
	}
	collectActionsIn(body, stores, nested, logger)

	desc := &scenario.ActionDescriptor{
		Kind:    scenario.ActionTransaction,
		Scope:   store.Scope,
		Storage: store.Storage,
	}
	for _, d := range nested {
		desc.NestedActions = append(desc.NestedActions, d)
	}
	sort.Slice(desc.NestedActions, func(i, j int) bool {
		return desc.NestedActions[i].ID < desc.NestedActions[j].ID
	})

	// A transaction's key path is the joined key paths of its nested
	// mutations, so distinct transactions get distinct ids while
	// identical ones still collapse.
	keys := make([]string, len(desc.NestedActions))
	for i, d := range desc.NestedActions {
		keys[i] = d.KeyPath
	}
	desc.KeyPath = strings.Join(keys, ",")
	desc.ID = scenario.ActionID(store.Scope, store.Storage, scenario.ActionTransaction, desc.KeyPath)
	return desc
}
