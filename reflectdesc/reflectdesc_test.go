package reflectdesc

import (
	"testing"

	"github.com/reoring/schemagen/typedesc"
)

type audit struct {
	By string `json:"by"`
}

type userID int64

type profile struct {
	audit

	ID       userID   `json:"id"`
	Name     string   `json:"name,omitempty"`
	Email    *string  `json:"email"`
	Tags     []string `json:"tags"`
	Scores   map[string]float64
	Secret   string `json:"-"`
	internal bool

	Renamed string `schemagen:"name=external" json:"ignored_name"`
}

func describeProfile(t *testing.T) *typedesc.Record {
	t.Helper()
	td, err := Describe(profile{})
	if err != nil {
		t.Fatalf("describe failed: %v", err)
	}
	rec, ok := td.(*typedesc.Record)
	if !ok {
		t.Fatalf("got %T, want record", td)
	}
	return rec
}

func fieldsByKey(rec *typedesc.Record) map[string]typedesc.Field {
	out := map[string]typedesc.Field{}
	for _, f := range rec.Fields {
		key := f.Name
		if f.JSONName != "" {
			key = f.JSONName
		}
		out[key] = f
	}
	return out
}

func TestDescribe_StructShape(t *testing.T) {
	rec := describeProfile(t)
	if rec.Name.Ident != "profile" {
		t.Fatalf("record name: %+v", rec.Name)
	}
	fs := fieldsByKey(rec)

	// named scalar type becomes an alias definition of its own
	alias, ok := fs["id"].Type.(*typedesc.Alias)
	if !ok || alias.Name.Ident != "userID" {
		t.Fatalf("id: %#v", fs["id"].Type)
	}
	if alias.To != typedesc.Int {
		t.Fatalf("userID alias target: %#v", alias.To)
	}

	if !fs["name"].Optional {
		t.Fatalf("omitempty must mark the field optional")
	}
	if _, ok := fs["email"].Type.(*typedesc.Nullable); !ok {
		t.Fatalf("pointer field: %#v", fs["email"].Type)
	}
	if _, ok := fs["tags"].Type.(*typedesc.Array); !ok {
		t.Fatalf("slice field: %#v", fs["tags"].Type)
	}
	if m, ok := fs["Scores"].Type.(*typedesc.Map); !ok || m.Key != typedesc.String {
		t.Fatalf("map field: %#v", fs["Scores"].Type)
	}
	if !fs["Secret"].Excluded {
		t.Fatalf(`json:"-" must exclude the field`)
	}
	if _, ok := fs["internal"]; ok {
		t.Fatalf("unexported field must be skipped")
	}
}

func TestDescribe_TagPriority(t *testing.T) {
	fs := fieldsByKey(describeProfile(t))
	if _, ok := fs["external"]; !ok {
		t.Fatalf("schemagen tag must beat json tag: %v", keysOf(fs))
	}
	if _, ok := fs["ignored_name"]; ok {
		t.Fatalf("json name must lose to schemagen tag")
	}
}

func TestDescribe_EmbeddedFlattened(t *testing.T) {
	fs := fieldsByKey(describeProfile(t))
	if _, ok := fs["by"]; !ok {
		t.Fatalf("embedded struct fields must flatten in: %v", keysOf(fs))
	}
}

func TestDescribe_SharedNodesAndCycles(t *testing.T) {
	type node struct {
		Next *node  `json:"next,omitempty"`
		Prev *node  `json:"prev,omitempty"`
		Val  string `json:"val"`
	}
	td, err := Describe(node{})
	if err != nil {
		t.Fatalf("describe failed: %v", err)
	}
	rec := td.(*typedesc.Record)
	fs := fieldsByKey(rec)
	next := fs["next"].Type.(*typedesc.Nullable)
	prev := fs["prev"].Type.(*typedesc.Nullable)
	if next.Elem != td || prev.Elem != td {
		t.Fatalf("cyclic struct must share one descriptor node")
	}
}

func TestDescribe_Unsupported(t *testing.T) {
	if _, err := Describe(make(chan int)); err == nil {
		t.Fatalf("channels must be rejected")
	}
	var fn func()
	if _, err := Describe(fn); err == nil {
		t.Fatalf("nil func value must be rejected")
	}
}

func keysOf(m map[string]typedesc.Field) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
