package ir

// Package ir defines the intermediate schema representation produced by the
// builder and consumed by the renderer. This package is internal and not part
// of the public API.

// Kind identifies a fragment node type.
type Kind int

const (
	KindNull Kind = iota
	KindSimple
	KindStrConst
	KindBoolConst
	KindFloatConst
	KindIntConst
	KindObject
	KindArray
	KindMap
	KindRef
	KindAnyOf
	KindWithDescr
	KindPlaceholder
)

// Fragment is the root fragment node interface.
type Fragment interface {
	Kind() Kind
}

// Null matches only JSON null.
type Null struct{}

func (n *Null) Kind() Kind { return KindNull }

// Simple represents one of the schema-native scalar types.
type Simple struct {
	Type string // "string"|"integer"|"number"|"boolean"
}

func (s *Simple) Kind() Kind { return KindSimple }

// StrConst matches a single string literal. A nil Val is the null-literal
// form: it renders as "const": null, standing in for a constant of JSON null.
type StrConst struct {
	Val *string
}

func (s *StrConst) Kind() Kind { return KindStrConst }

// Str builds a StrConst over v.
func Str(v string) *StrConst { return &StrConst{Val: &v} }

// BoolConst matches a single boolean literal.
type BoolConst struct {
	Val bool
}

func (b *BoolConst) Kind() Kind { return KindBoolConst }

// FloatConst matches a single number literal.
type FloatConst struct {
	Val float64
}

func (f *FloatConst) Kind() Kind { return KindFloatConst }

// IntConst matches a single integer literal.
type IntConst struct {
	Val int64
}

func (i *IntConst) Kind() Kind { return KindIntConst }

// Object matches a JSON object with the given properties. Required names
// must be present; Defaults carries per-property default values rendered as
// a sibling defaultValue key, independent of Required. Unknown keys are
// rejected (additionalProperties: false).
type Object struct {
	Properties map[string]Fragment
	Required   map[string]struct{}
	Defaults   map[string]any
}

func (o *Object) Kind() Kind { return KindObject }

// NewObject returns an empty Object with all maps allocated.
func NewObject() *Object {
	return &Object{
		Properties: map[string]Fragment{},
		Required:   map[string]struct{}{},
		Defaults:   map[string]any{},
	}
}

// Array matches a homogeneous JSON array.
type Array struct {
	Elem Fragment
}

func (a *Array) Kind() Kind { return KindArray }

// Map matches a JSON object used as a key/value container. IntKeys restricts
// keys to the integer-literal pattern; otherwise any string key is accepted.
type Map struct {
	IntKeys bool
	Value   Fragment
}

func (m *Map) Kind() Kind { return KindMap }

// Ref points into the shared definitions table.
type Ref struct {
	Name string
}

func (r *Ref) Kind() Kind { return KindRef }

// AnyOf matches any of an ordered list of alternatives.
type AnyOf struct {
	Alts []Fragment
}

func (a *AnyOf) Kind() Kind { return KindAnyOf }

// WithDescr attaches raw documentation text to another fragment. The
// renderer unwraps it, normalizes the text, and inserts a description key;
// the outermost description wins when wrappers nest.
type WithDescr struct {
	Frag Fragment
	Text string
}

func (w *WithDescr) Kind() Kind { return KindWithDescr }

// Placeholder marks an in-progress definition while its body is still being
// built, so self-referential types resolve to a Ref instead of recursing. It
// is a distinct variant, never confusable with Null, and must never survive
// into a completed table; the renderer rejects it.
type Placeholder struct {
	Name string
}

func (p *Placeholder) Kind() Kind { return KindPlaceholder }
