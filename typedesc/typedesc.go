package typedesc

// Package typedesc defines the type-descriptor surface consumed by the schema
// derivation engine. A host type system (reflection, a loaded definition
// document, a compiler frontend) describes its types as a graph of the nodes
// below; the engine never talks to the host directly.
//
// Descriptor nodes are plain data. Named nodes (Record, Enum, ScalarEnum,
// Alias, Opaque) may reference each other, including cyclically; hosts build
// such graphs by allocating the node first and filling its members afterwards.

// DescrKind identifies a descriptor node type.
type DescrKind int

const (
	DescrPrimitive DescrKind = iota
	DescrArray
	DescrMap
	DescrNullable
	DescrRecord
	DescrEnum
	DescrScalarEnum
	DescrAlias
	DescrOpaque
)

// Type is the root descriptor interface.
type Type interface {
	DescrKind() DescrKind
}

// PrimitiveKind enumerates the scalar kinds the engine knows how to encode.
type PrimitiveKind int

const (
	KindString PrimitiveKind = iota
	KindInt
	KindFloat
	KindBool
)

// Primitive represents one of the four scalar kinds. Use the package-level
// singletons; hosts never need to allocate their own.
type Primitive struct {
	K PrimitiveKind
}

func (p *Primitive) DescrKind() DescrKind { return DescrPrimitive }

var (
	String = &Primitive{K: KindString}
	Int    = &Primitive{K: KindInt}
	Float  = &Primitive{K: KindFloat}
	Bool   = &Primitive{K: KindBool}
)

// Array is a homogeneous sequence of Elem.
type Array struct {
	Elem Type
}

func (a *Array) DescrKind() DescrKind { return DescrArray }

// Map is a key/value container. The engine accepts only keys that resolve
// (through alias chains) to Int or String.
type Map struct {
	Key   Type
	Value Type
}

func (m *Map) DescrKind() DescrKind { return DescrMap }

// Nullable wraps a type whose encoding additionally admits JSON null.
type Nullable struct {
	Elem Type
}

func (n *Nullable) DescrKind() DescrKind { return DescrNullable }

// Name is the qualified identity of a named type. Pkg may be empty for
// hosts without a package notion.
type Name struct {
	Pkg   string
	Ident string
}

func (n Name) String() string {
	if n.Pkg == "" {
		return n.Ident
	}
	return n.Pkg + "." + n.Ident
}

// Field describes one member of a Record.
type Field struct {
	Name     string
	JSONName string // external name override; empty means Name
	Type     Type
	Doc      string
	Optional bool // may be absent from the encoded object
	Excluded bool // explicitly not serialized
	Virtual  bool // computed, not backed by storage
	Forced   bool // serialize even when Virtual

	// Default carries the field's default-value expression result, tracked
	// independently of Optional. HasDefault distinguishes "no default" from
	// a default of nil.
	Default    any
	HasDefault bool
}

// Record is a composite of named fields, optionally extending a supertype
// chain. Fields of the record itself come first; ancestors follow in order.
type Record struct {
	Name   Name
	Doc    string
	Fields []Field
	Super  *Record
}

func (r *Record) DescrKind() DescrKind { return DescrRecord }

// Arg describes one payload argument of an enum constructor.
type Arg struct {
	Name     string
	Type     Type
	Optional bool
}

// Case is one constructor of an Enum. A case without args encodes as its
// bare tag string; a case with args encodes as a single-key object.
type Case struct {
	Name string
	Doc  string
	Args []Arg
}

// Enum is a closed tagged union of constructors.
type Enum struct {
	Name  Name
	Doc   string
	Cases []Case
}

func (e *Enum) DescrKind() DescrKind { return DescrEnum }

// Member is one candidate constant of a ScalarEnum. Constant reports whether
// the initializer evaluated to a usable literal; non-constant members are
// skipped during derivation.
type Member struct {
	Name     string
	Value    any // string, *string==nil via untyped nil, bool, float64, or int64
	Constant bool
}

// ScalarEnum is a closed set of compile-time literal constants over one
// scalar base kind.
type ScalarEnum struct {
	Name    Name
	Doc     string
	Base    PrimitiveKind
	Members []Member
}

func (s *ScalarEnum) DescrKind() DescrKind { return DescrScalarEnum }

// Alias names another type. The alias keeps its own identity and doc.
type Alias struct {
	Name Name
	Doc  string
	To   Type
}

func (a *Alias) DescrKind() DescrKind { return DescrAlias }

// Opaque is a wrapper type that is not itself a JSON-native shape but
// declares one or more conversion-source types, tried in declaration order.
type Opaque struct {
	Name Name
	Doc  string
	From []Type
}

func (o *Opaque) DescrKind() DescrKind { return DescrOpaque }
