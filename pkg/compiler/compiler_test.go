package compiler

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/leapstack-labs/leapview/pkg/ast"
	"github.com/leapstack-labs/leapview/pkg/catalogue"
	"github.com/leapstack-labs/leapview/pkg/parser"
	"github.com/leapstack-labs/leapview/pkg/scenario"
)

func testCompiler() *Compiler {
	return New(Config{Registry: NewRegistry(catalogue.Builtin)})
}

func compileSource(t *testing.T, src string) *Result {
	t.Helper()
	res, err := testCompiler().CompileSource(src, "test.lsx")
	if err != nil {
		t.Fatalf("compile failed: %v", err)
	}
	return res
}

func TestCompileMinimalUnit(t *testing.T) {
	res := compileSource(t, `
export const SCENARIO = { key: "demo", name: "Demo", description: "d", version: "1.0.0" }

export default function App() {
	return <Column><Text>Hi</Text></Column>
}
`)

	out, err := res.Scenario.Marshal()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"key":"demo","version":"1.0.0","main":{"type":"Column","style":{"flexDirection":"column"},"children":[{"type":"Text","properties":{"text":"Hi"}}]},"components":{}}`
	if string(out) != want {
		t.Errorf("document mismatch\ngot  %s\nwant %s", out, want)
	}
}

func TestCompileRowImplicitDirection(t *testing.T) {
	res := compileSource(t, `export default () => <Row/>`)
	if got := res.Scenario.Main.Style["flexDirection"]; got != "row" {
		t.Errorf("flexDirection = %v, want row", got)
	}
}

func TestCompileExplicitStyleOverridesImplicit(t *testing.T) {
	res := compileSource(t, `export default () => <Row style={{ flexDirection: "column", gap: 8 }}/>`)
	main := res.Scenario.Main
	if got := main.Style["flexDirection"]; got != "column" {
		t.Errorf("flexDirection = %v, want column", got)
	}
	if got := main.Style["gap"]; got != int64(8) {
		t.Errorf("gap = %v (%T), want int64 8", got, got)
	}
}

func TestCompileUnknownTag(t *testing.T) {
	_, err := testCompiler().CompileSource(`export default () => <Bogus/>`, "test.lsx")
	var serr *scenario.Error
	if !errors.As(err, &serr) || serr.Code != scenario.CodeComponentNotFound {
		t.Fatalf("err = %v, want ComponentNotFoundError", err)
	}
	if !strings.Contains(serr.Message, "Bogus") {
		t.Errorf("message %q does not name the tag", serr.Message)
	}
}

func TestCompileMissingDefault(t *testing.T) {
	_, err := testCompiler().CompileSource(`export function Header() { return <Row/> }`, "test.lsx")
	var serr *scenario.Error
	if !errors.As(err, &serr) || serr.Code != scenario.CodeAssembly {
		t.Fatalf("err = %v, want AssemblyError", err)
	}
}

func TestCompileTwoDefaults(t *testing.T) {
	_, err := testCompiler().CompileSource(`
export default function App() { return <Row/> }
export default function Other() { return <Column/> }
`, "test.lsx")
	var serr *scenario.Error
	if !errors.As(err, &serr) || serr.Code != scenario.CodeAssembly {
		t.Fatalf("err = %v, want AssemblyError", err)
	}
	if !strings.Contains(serr.Message, "2 default exports") {
		t.Errorf("message %q does not report the count", serr.Message)
	}
}

func TestCompileDuplicateComponentName(t *testing.T) {
	_, err := testCompiler().CompileSource(`
export function Header() { return <Row/> }
export const Header = () => <Column/>
`, "test.lsx")
	var serr *scenario.Error
	if !errors.As(err, &serr) || serr.Code != scenario.CodeInvalidExport {
		t.Fatalf("err = %v, want InvalidExportError", err)
	}
}

func TestCompileLowercaseExport(t *testing.T) {
	_, err := testCompiler().CompileSource(`export const header = () => <Row/>`, "test.lsx")
	var serr *scenario.Error
	if !errors.As(err, &serr) || serr.Code != scenario.CodeInvalidExport {
		t.Fatalf("err = %v, want InvalidExportError", err)
	}
}

func TestCompileMissingMetadataGeneratesKey(t *testing.T) {
	res := compileSource(t, `export default () => <Screen/>`)
	if res.Metadata.Found {
		t.Fatal("metadata reported found")
	}
	if !scenario.KeyPattern.MatchString(res.Scenario.Key) {
		t.Errorf("generated key %q does not satisfy the key pattern", res.Scenario.Key)
	}
}

func TestCompileIncompleteMetadata(t *testing.T) {
	_, err := testCompiler().CompileSource(`
export const SCENARIO = { key: "demo", name: "Demo" }
export default () => <Screen/>
`, "test.lsx")
	var serr *scenario.Error
	if !errors.As(err, &serr) || serr.Code != scenario.CodeInvalidExport {
		t.Fatalf("err = %v, want InvalidExportError", err)
	}
	if !strings.Contains(serr.Message, "description") {
		t.Errorf("message %q does not name the missing field", serr.Message)
	}
}

func TestCompileNamedAndHelperComponents(t *testing.T) {
	res := compileSource(t, `
export function Header({ title }) { return <Text title={title}/> }

const Footer = () => <Row/>

export default function App() {
	return <Column><Header title="Welcome"/><Footer/></Column>
}
`)
	doc := res.Scenario
	if len(doc.Components) != 2 {
		t.Fatalf("components = %d, want 2", len(doc.Components))
	}
	if doc.Components["Header"] == nil || doc.Components["Footer"] == nil {
		t.Fatalf("missing component entries: %v", doc.Components)
	}
	if doc.Main.Children[0].Type != "Header" {
		t.Errorf("first child type = %q, want Header", doc.Main.Children[0].Type)
	}
}

func TestCompilePropReference(t *testing.T) {
	res := compileSource(t, `export default function App(props) { return <Text value={props}/> }`)
	got := res.Scenario.Main.Data["value"]
	want := map[string]any{"type": "prop", "key": "props"}
	assertJSONEqual(t, got, want)
}

func TestCompilePropMemberReference(t *testing.T) {
	res := compileSource(t, `
export function Badge({ user }) { return <Text value={user.name}/> }
export default () => <Badge/>
`)
	got := res.Scenario.Components["Badge"].Data["value"]
	want := map[string]any{"type": "prop", "key": "user.name"}
	assertJSONEqual(t, got, want)
}

func TestCompileStoreDeclaration(t *testing.T) {
	res := compileSource(t, `
const cart = createStore({ scope: Scope.Global, storage: Storage.Persistent, initialValue: { items: [] } })

export default () => <Text value={cart.get("items")}/>
`)
	store := res.Scenario.Stores["cart"]
	if store == nil {
		t.Fatal("cart store not collected")
	}
	if store.Scope != scenario.ScopeGlobal || store.Storage != scenario.StoragePersistent {
		t.Errorf("store = %s/%s, want global/persistent", store.Scope, store.Storage)
	}

	want := map[string]any{"type": "store", "scope": "global", "storage": "persistent", "key": "items"}
	assertJSONEqual(t, res.Scenario.Main.Data["value"], want)
}

func TestCompileActionCollection(t *testing.T) {
	res := compileSource(t, `
const counter = createStore({ scope: Scope.Screen, storage: Storage.Memory, initialValue: { count: 0 } })

export default function App() {
	return <Button onPress={() => counter.set("count", 1)}>Go</Button>
}
`)
	action := res.Scenario.Actions["screen.memory.set.count"]
	if action == nil {
		t.Fatalf("action not collected, have %v", res.Scenario.Actions)
	}
	if action.Kind != scenario.ActionSet || action.KeyPath != "count" {
		t.Errorf("action = %s %q", action.Kind, action.KeyPath)
	}
}

func TestCompileTransactionAction(t *testing.T) {
	res := compileSource(t, `
const cart = createStore({ scope: Scope.Global, storage: Storage.Memory, initialValue: {} })

export default function App() {
	return <Button onPress={() => cart.transaction(() => {
		cart.set("total", 0)
		cart.remove("items")
	})}>Clear</Button>
}
`)
	var tx *scenario.ActionDescriptor
	for _, a := range res.Scenario.Actions {
		if a.Kind == scenario.ActionTransaction {
			tx = a
		}
	}
	if tx == nil {
		t.Fatalf("transaction not collected, have %v", res.Scenario.Actions)
	}
	if len(tx.NestedActions) != 2 {
		t.Fatalf("nested = %d, want 2", len(tx.NestedActions))
	}
	// nested mutations belong to the transaction only
	for id, a := range res.Scenario.Actions {
		if a.Kind != scenario.ActionTransaction && strings.Contains(id, "total") {
			t.Errorf("nested mutation %s leaked to the top level", id)
		}
	}
}

func TestCompileHandlerSerialization(t *testing.T) {
	res := compileSource(t, `
export default function App() {
	return <Button onPress={(event) => { let n = 1; n = n + 1; }}>Go</Button>
}
`)
	raw, err := json.Marshal(res.Scenario.Main.Data["onPress"])
	if err != nil {
		t.Fatalf("marshal handler: %v", err)
	}
	var handler scenario.SerializedHandler
	if err := json.Unmarshal(raw, &handler); err != nil {
		t.Fatalf("unmarshal handler: %v", err)
	}
	if len(handler.Params) != 1 || handler.Params[0] != "event" {
		t.Errorf("params = %v, want [event]", handler.Params)
	}
	if handler.Body.Kind != scenario.HStmtBlock || len(handler.Body.Body) != 2 {
		t.Fatalf("body = %+v, want block of 2", handler.Body)
	}
	if handler.Body.Body[0].Kind != scenario.HStmtVarDecl {
		t.Errorf("first stmt = %s, want declare", handler.Body.Body[0].Kind)
	}
}

func TestCompileHandlerRejectsTryCatch(t *testing.T) {
	_, err := testCompiler().CompileSource(`
export default function App() {
	return <Button onPress={() => { try { go() } catch (e) { } }}>Go</Button>
}
`, "test.lsx")
	var serr *scenario.Error
	if !errors.As(err, &serr) || serr.Code != scenario.CodeConversion {
		t.Fatalf("err = %v, want ConversionError", err)
	}
	if !strings.Contains(serr.Message, "try/catch") {
		t.Errorf("message %q does not name the construct", serr.Message)
	}
}

func TestCompileItemTemplate(t *testing.T) {
	res := compileSource(t, `
export default function App() {
	return <List renderItem={(item) => <Text value={item.title}/>}/>
}
`)
	template, ok := res.Scenario.Main.Data["itemTemplate"].(*scenario.Node)
	if !ok {
		t.Fatalf("itemTemplate = %T, want *scenario.Node", res.Scenario.Main.Data["itemTemplate"])
	}
	if template.Type != "Text" {
		t.Errorf("template type = %q, want Text", template.Type)
	}
	want := map[string]any{"type": "prop", "key": "item.title"}
	assertJSONEqual(t, template.Data["value"], want)
}

// Scope frames are per function: the renderItem closure sees its own
// item parameter but not the props of the component that encloses it.
func TestCompileScopeBoundary(t *testing.T) {
	res := compileSource(t, `
export function Feed({ accent }) {
	return <List renderItem={(item) => <Text color={accent}/>}/>
}
export default () => <Feed/>
`)
	template := res.Scenario.Components["Feed"].Data["itemTemplate"].(*scenario.Node)
	if v, ok := template.Data["color"]; !ok || v != nil {
		t.Errorf("color = %v, want null (outer prop not visible)", v)
	}
}

func TestCompileElementForRepl(t *testing.T) {
	node, err := testCompiler().CompileElement(mustParseElement(t, `<Row><Text>hey</Text></Row>`))
	if err != nil {
		t.Fatalf("compile element: %v", err)
	}
	if node.Type != "Row" || len(node.Children) != 1 {
		t.Fatalf("node = %+v", node)
	}
	if node.Children[0].Properties["text"] != "hey" {
		t.Errorf("text = %v, want hey", node.Children[0].Properties["text"])
	}
}

func TestRegistryForkIsolation(t *testing.T) {
	base := NewRegistry([]string{"Row"})
	fork := base.Fork()
	fork.RegisterLocal("Header")

	if !fork.IsValid("Header") || !fork.IsValid("Row") {
		t.Error("fork should see local and base names")
	}
	if base.IsValid("Header") {
		t.Error("local registration leaked into the base registry")
	}
}

// Compiling the same source twice must yield byte-identical documents;
// the randomly generated key is the only permitted difference, and only
// when the metadata block is absent.
func TestCompileIsDeterministic(t *testing.T) {
	const src = `
export const SCENARIO = { key: "demo", name: "Demo", description: "d", version: "1.0.0" }

const cart = createStore({ scope: Scope.Global, storage: Storage.Memory, initialValue: { items: [] } })

export function Header({ title }) { return <Text title={title}/> }

export default function App(props) {
	return <Column>
		<Header title="Welcome"/>
		<List renderItem={(item) => <Text value={item.title}/>}/>
		<Button onPress={() => cart.set("items", 1)}>Go</Button>
	</Column>
}
`
	first, err := testCompiler().CompileSource(src, "test.lsx")
	if err != nil {
		t.Fatalf("first compile: %v", err)
	}
	second, err := testCompiler().CompileSource(src, "test.lsx")
	if err != nil {
		t.Fatalf("second compile: %v", err)
	}

	a, err := first.Scenario.Marshal()
	if err != nil {
		t.Fatalf("marshal first: %v", err)
	}
	b, err := second.Scenario.Marshal()
	if err != nil {
		t.Fatalf("marshal second: %v", err)
	}
	if string(a) != string(b) {
		t.Errorf("documents differ between runs\nfirst  %s\nsecond %s", a, b)
	}
}

func TestCompileWithoutMetadataDiffersOnlyInKey(t *testing.T) {
	const src = `export default () => <Column><Text>Hi</Text></Column>`

	first := compileSource(t, src)
	second := compileSource(t, src)

	if first.Scenario.Key == second.Scenario.Key {
		t.Errorf("generated keys collide: %q", first.Scenario.Key)
	}

	// With the generated keys normalized the rest must be identical.
	second.Scenario.Key = first.Scenario.Key
	a, err := first.Scenario.Marshal()
	if err != nil {
		t.Fatalf("marshal first: %v", err)
	}
	b, err := second.Scenario.Marshal()
	if err != nil {
		t.Fatalf("marshal second: %v", err)
	}
	if string(a) != string(b) {
		t.Errorf("documents differ beyond the key\nfirst  %s\nsecond %s", a, b)
	}
}

// The output tree nests exactly as deep as the source markup.
func TestCompileDepthMatchesMarkup(t *testing.T) {
	res := compileSource(t, `
export default function App() {
	return <Column>
		<Row>
			<Column>
				<Image src="a.png"/>
			</Column>
		</Row>
	</Column>
}
`)
	if got := res.Scenario.Main.Depth(); got != 4 {
		t.Errorf("depth = %d, want 4", got)
	}
}

func mustParseElement(t *testing.T, src string) *ast.Element {
	t.Helper()
	expr, err := parser.ParseExpr(src)
	if err != nil {
		t.Fatalf("parse %q: %v", src, err)
	}
	el, ok := expr.(*ast.Element)
	if !ok {
		t.Fatalf("parsed %T, want *ast.Element", expr)
	}
	return el
}

func assertJSONEqual(t *testing.T, got, want any) {
	t.Helper()
	g, err := json.Marshal(got)
	if err != nil {
		t.Fatalf("marshal got: %v", err)
	}
	w, err := json.Marshal(want)
	if err != nil {
		t.Fatalf("marshal want: %v", err)
	}
	if string(g) != string(w) {
		t.Errorf("value mismatch\ngot  %s\nwant %s", g, w)
	}
}
