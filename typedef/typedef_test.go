package typedef

import (
	"strings"
	"testing"

	"github.com/reoring/schemagen/typedesc"
)

const sampleDoc = `
package: shop

types:
  - name: Sku
    kind: alias
    to: String
    doc: Stock keeping unit.

  - name: Entity
    kind: record
    fields:
      - {name: id, type: Int}

  - name: Product
    kind: record
    doc: |
      A sellable item.
    extends: Entity
    fields:
      - {name: sku, type: Sku}
      - {name: title, type: String, json: display_title}
      - {name: blurb, type: "Null<String>", optional: true}
      - {name: tags, type: "Array<String>", optional: true}
      - {name: prices, type: "Map<String, Float>"}
      - {name: state, type: State, default: '"draft"'}
      - {name: cached, type: Int, virtual: true}

  - name: State
    kind: constants
    base: String
    members:
      - {name: Draft, value: '"draft"'}
      - {name: Live, value: '"live"'}
      - {name: Retired, value: 'nil'}

  - name: Change
    kind: enum
    cases:
      - {name: created}
      - name: repriced
        args:
          - {name: old, type: Float}
          - {name: new, type: Float}

  - name: Timestamp
    kind: opaque
    from: [Float, String]
`

func parseSample(t *testing.T) *Document {
	t.Helper()
	doc, err := Parse([]byte(sampleDoc))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	return doc
}

func TestParse_NamesAndKinds(t *testing.T) {
	doc := parseSample(t)
	want := []string{"Sku", "Entity", "Product", "State", "Change", "Timestamp"}
	got := doc.Names()
	if len(got) != len(want) {
		t.Fatalf("names: %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("names[%d] = %s, want %s", i, got[i], want[i])
		}
	}
	if td, _ := doc.Lookup("State"); td.Kind != "constants" || td.Base != "String" {
		t.Fatalf("State: %+v", td)
	}
}

func TestParse_StrictUnknownKeys(t *testing.T) {
	_, err := Parse([]byte("package: x\nbogus: true\ntypes: []\n"))
	if err == nil {
		t.Fatalf("unknown document key must fail")
	}
	_, err = Parse([]byte("types:\n  - {name: A, kind: record, shape: round}\n"))
	if err == nil {
		t.Fatalf("unknown type key must fail")
	}
}

func TestParse_Validation(t *testing.T) {
	// missing name, unknown kind, duplicate declaration
	for _, src := range []string{
		"types:\n  - {kind: record}\n",
		"types:\n  - {name: A, kind: blob}\n",
		"types:\n  - {name: A, kind: record}\n  - {name: A, kind: record}\n",
	} {
		if _, err := Parse([]byte(src)); err == nil {
			t.Fatalf("want parse failure for:\n%s", src)
		}
	}
}

func TestResolve_Record(t *testing.T) {
	doc := parseSample(t)
	td, err := doc.Resolve("Product")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	rec, ok := td.(*typedesc.Record)
	if !ok {
		t.Fatalf("got %T", td)
	}
	if rec.Name.Pkg != "shop" || rec.Name.Ident != "Product" {
		t.Fatalf("name: %+v", rec.Name)
	}
	if rec.Super == nil || rec.Super.Name.Ident != "Entity" {
		t.Fatalf("super: %+v", rec.Super)
	}

	byName := map[string]typedesc.Field{}
	for _, f := range rec.Fields {
		byName[f.Name] = f
	}
	if byName["title"].JSONName != "display_title" {
		t.Fatalf("json override: %+v", byName["title"])
	}
	if _, ok := byName["blurb"].Type.(*typedesc.Nullable); !ok || !byName["blurb"].Optional {
		t.Fatalf("blurb: %+v", byName["blurb"])
	}
	if !byName["cached"].Virtual {
		t.Fatalf("cached: %+v", byName["cached"])
	}
	st := byName["state"]
	if !st.HasDefault || st.Default != "draft" {
		t.Fatalf("state default: %+v", st)
	}
	if _, ok := st.Type.(*typedesc.ScalarEnum); !ok {
		t.Fatalf("state type: %T", st.Type)
	}
	m, ok := byName["prices"].Type.(*typedesc.Map)
	if !ok {
		t.Fatalf("prices: %T", byName["prices"].Type)
	}
	if m.Key != typedesc.String {
		t.Fatalf("prices key: %#v", m.Key)
	}
}

func TestResolve_SharedNodes(t *testing.T) {
	doc := parseSample(t)
	a, err := doc.Resolve("Sku")
	if err != nil {
		t.Fatalf("resolve Sku: %v", err)
	}
	p, err := doc.Resolve("Product")
	if err != nil {
		t.Fatalf("resolve Product: %v", err)
	}
	rec := p.(*typedesc.Record)
	for _, f := range rec.Fields {
		if f.Name == "sku" && f.Type != a {
			t.Fatalf("descriptor nodes must be shared per document")
		}
	}
}

func TestResolve_ConstantsMembers(t *testing.T) {
	doc := parseSample(t)
	td, err := doc.Resolve("State")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	se := td.(*typedesc.ScalarEnum)
	if len(se.Members) != 3 {
		t.Fatalf("members: %+v", se.Members)
	}
	if !se.Members[0].Constant || se.Members[0].Value != "draft" {
		t.Fatalf("Draft: %+v", se.Members[0])
	}
	if !se.Members[2].Constant || se.Members[2].Value != nil {
		t.Fatalf("Retired must evaluate to the null literal: %+v", se.Members[2])
	}
}

func TestResolve_NonConstantMemberKept(t *testing.T) {
	doc, err := Parse([]byte(`
types:
  - name: Weird
    kind: constants
    base: Int
    members:
      - {name: ok, value: '40 + 2'}
      - {name: broken, value: 'not a ) expression'}
`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	td, err := doc.Resolve("Weird")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	se := td.(*typedesc.ScalarEnum)
	if !se.Members[0].Constant || se.Members[0].Value != int64(42) {
		t.Fatalf("ok member: %+v", se.Members[0])
	}
	if se.Members[1].Constant {
		t.Fatalf("unparseable initializer must stay non-constant: %+v", se.Members[1])
	}
}

func TestResolve_BadFieldDefaultFails(t *testing.T) {
	doc, err := Parse([]byte(`
types:
  - name: R
    kind: record
    fields:
      - {name: x, type: Int, default: 'nonsense('}
`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if _, err := doc.Resolve("R"); err == nil {
		t.Fatalf("bad field default must fail resolution")
	}
}

func TestResolve_UnknownReference(t *testing.T) {
	doc, err := Parse([]byte(`
types:
  - name: R
    kind: record
    fields:
      - {name: x, type: Ghost}
`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	_, err = doc.Resolve("R")
	if err == nil || !strings.Contains(err.Error(), "Ghost") {
		t.Fatalf("want unknown-type error, got %v", err)
	}
}

func TestResolve_SelfReference(t *testing.T) {
	doc, err := Parse([]byte(`
types:
  - name: Node
    kind: record
    fields:
      - {name: next, type: "Null<Node>", optional: true}
`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	td, err := doc.Resolve("Node")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	rec := td.(*typedesc.Record)
	inner := rec.Fields[0].Type.(*typedesc.Nullable).Elem
	if inner != td {
		t.Fatalf("self reference must close the cycle on the same node")
	}
}

func TestParseTypeExpr(t *testing.T) {
	e, err := parseTypeExpr("Map< String , Array<Int> >")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if e.Head != "Map" || len(e.Args) != 2 || e.Args[1].Head != "Array" {
		t.Fatalf("parsed: %+v", e)
	}
	for _, bad := range []string{"", "<Int>", "Array<Int", "Array<Int>>", "Map<,>"} {
		if _, err := parseTypeExpr(bad); err == nil {
			t.Fatalf("want error for %q", bad)
		}
	}
}

func TestLoad_File(t *testing.T) {
	doc, err := Load("testdata/shop.yaml")
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if _, ok := doc.Lookup("Product"); !ok {
		t.Fatalf("names: %v", doc.Names())
	}
	if _, err := doc.Resolve("Product"); err != nil {
		t.Fatalf("resolve: %v", err)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load("testdata/nope.yaml"); err == nil {
		t.Fatalf("missing file must fail")
	}
}
