package typedef

// Package typedef loads declarative type-definition documents and compiles
// them into typedesc descriptors. A document is YAML:
//
//	package: example
//	types:
//	  - name: UserId
//	    kind: alias
//	    to: Int
//	  - name: User
//	    kind: record
//	    doc: A registered account.
//	    fields:
//	      - {name: id, type: UserId}
//	      - {name: email, type: String, optional: true}
//	      - {name: scores, type: "Map<String, Float>"}
//	  - name: Event
//	    kind: enum
//	    cases:
//	      - {name: ping}
//	      - name: login
//	        args: [{name: user, type: UserId}]
//	  - name: Color
//	    kind: constants
//	    base: String
//	    members:
//	      - {name: Red, value: '"red"'}
//	  - name: Timestamp
//	    kind: opaque
//	    from: [Float, String]
//
// Type expressions use the builtins String, Int, Float, Bool, Array<T>,
// Map<K, V> and Null<T>, plus any name declared in the document. Field
// defaults and constant members are expressions evaluated once at load time.

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/reoring/schemagen/typedesc"
)

// Document is a parsed definition document.
type Document struct {
	Package string
	Types   []TypeDef

	byName   map[string]*TypeDef
	resolved map[string]typedesc.Type
}

// TypeDef is one named type declaration. Exactly the fields matching its
// Kind are meaningful.
type TypeDef struct {
	Name    string      `yaml:"name"`
	Kind    string      `yaml:"kind"` // record | enum | constants | alias | opaque
	Doc     string      `yaml:"doc"`
	Extends string      `yaml:"extends"` // record: supertype name
	Fields  []FieldDef  `yaml:"fields"`  // record
	Cases   []CaseDef   `yaml:"cases"`   // enum
	Base    string      `yaml:"base"`    // constants: String | Int | Float | Bool
	Members []MemberDef `yaml:"members"` // constants
	To      string      `yaml:"to"`      // alias: target type expression
	From    []string    `yaml:"from"`    // opaque: conversion sources, tried in order
}

// FieldDef is one record field.
type FieldDef struct {
	Name     string `yaml:"name"`
	Type     string `yaml:"type"`
	JSON     string `yaml:"json"` // external name override
	Doc      string `yaml:"doc"`
	Optional bool   `yaml:"optional"`
	Excluded bool   `yaml:"excluded"`
	Virtual  bool   `yaml:"virtual"`
	Forced   bool   `yaml:"forced"`
	Default  string `yaml:"default"` // expression, evaluated at load time
}

// CaseDef is one enum constructor.
type CaseDef struct {
	Name string   `yaml:"name"`
	Doc  string   `yaml:"doc"`
	Args []ArgDef `yaml:"args"`
}

// ArgDef is one constructor payload argument.
type ArgDef struct {
	Name     string `yaml:"name"`
	Type     string `yaml:"type"`
	Optional bool   `yaml:"optional"`
}

// MemberDef is one constant-set member. Value is an expression; a member
// whose expression does not evaluate to a literal is kept as non-constant
// and skipped during derivation.
type MemberDef struct {
	Name  string `yaml:"name"`
	Value string `yaml:"value"`
}

// Load reads and parses the document at path.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("typedef: %w", err)
	}
	doc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("typedef: %s: %w", path, err)
	}
	return doc, nil
}

// Parse decodes a document. Decoding is strict: unknown keys are errors, and
// yaml reports them with line numbers.
func Parse(data []byte) (*Document, error) {
	var raw struct {
		Package string    `yaml:"package"`
		Types   []TypeDef `yaml:"types"`
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&raw); err != nil {
		return nil, err
	}

	doc := &Document{
		Package: raw.Package,
		Types:   raw.Types,
		byName:  map[string]*TypeDef{},
	}
	for i := range doc.Types {
		td := &doc.Types[i]
		if td.Name == "" {
			return nil, fmt.Errorf("types[%d]: missing name", i)
		}
		if _, dup := doc.byName[td.Name]; dup {
			return nil, fmt.Errorf("type %s: declared twice", td.Name)
		}
		if err := checkKind(td); err != nil {
			return nil, err
		}
		doc.byName[td.Name] = td
	}
	return doc, nil
}

// Names lists the declared type names in declaration order.
func (d *Document) Names() []string {
	names := make([]string, 0, len(d.Types))
	for i := range d.Types {
		names = append(names, d.Types[i].Name)
	}
	return names
}

// Lookup returns the declaration of name.
func (d *Document) Lookup(name string) (*TypeDef, bool) {
	td, ok := d.byName[name]
	return td, ok
}

func checkKind(td *TypeDef) error {
	switch td.Kind {
	case "record", "enum", "constants", "alias", "opaque":
		return nil
	case "":
		return fmt.Errorf("type %s: missing kind", td.Name)
	}
	return fmt.Errorf("type %s: unknown kind %q", td.Name, td.Kind)
}
