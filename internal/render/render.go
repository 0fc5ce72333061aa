package render

// Package render turns finished schema fragments into the ordered draft-07
// document and its JSON text. Byte emission (escaping, number formatting,
// indentation) is delegated to goccy/go-json; this package only decides keys,
// values and their order.

import (
	"bytes"
	"fmt"
	"sort"

	j "github.com/goccy/go-json"

	ir "github.com/reoring/schemagen/internal/ir"
)

// SchemaURI identifies the dialect every generated document declares.
const SchemaURI = "http://json-schema.org/draft-07/schema#"

// intKeyPattern is the patternProperties key for integer-keyed maps.
const intKeyPattern = `^[-+]?\d+([Ee][+-]?\d+)?$`

// Document assembles the ordered schema document: $schema first, then the
// definitions table sorted by name when non-empty, then the root fragment's
// own keys merged at the top level.
func Document(root ir.Fragment, defs map[string]ir.Fragment) (*Obj, error) {
	doc := NewObj()
	doc.Set("$schema", SchemaURI)

	if len(defs) > 0 {
		names := make([]string, 0, len(defs))
		for n := range defs {
			names = append(names, n)
		}
		sort.Strings(names)
		dd := NewObj()
		for _, n := range names {
			ro, err := Fragment(defs[n])
			if err != nil {
				return nil, err
			}
			dd.Set(n, ro)
		}
		doc.Set("definitions", dd)
	}

	ro, err := Fragment(root)
	if err != nil {
		return nil, err
	}
	for _, k := range ro.keys {
		doc.Set(k, ro.vals[k])
	}
	return doc, nil
}

// Text renders the document to JSON text. indent selects pretty output; the
// empty string selects the compact form.
func Text(doc *Obj, indent string) (string, error) {
	b, err := j.Marshal(doc)
	if err != nil {
		return "", err
	}
	if indent == "" {
		return string(b), nil
	}
	var buf bytes.Buffer
	if err := j.Indent(&buf, b, "", indent); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Fragment renders one schema fragment to its ordered object form.
func Fragment(f ir.Fragment) (*Obj, error) {
	switch t := f.(type) {
	case *ir.Null:
		o := NewObj()
		o.Set("type", "null")
		return o, nil

	case *ir.Simple:
		o := NewObj()
		o.Set("type", t.Type)
		return o, nil

	case *ir.StrConst:
		o := NewObj()
		if t.Val == nil {
			// the null-literal form: the constant is JSON null
			o.Set("const", nil)
		} else {
			o.Set("const", *t.Val)
		}
		return o, nil

	case *ir.BoolConst:
		o := NewObj()
		o.Set("const", t.Val)
		return o, nil

	case *ir.FloatConst:
		o := NewObj()
		o.Set("const", t.Val)
		return o, nil

	case *ir.IntConst:
		o := NewObj()
		o.Set("const", t.Val)
		return o, nil

	case *ir.Object:
		return object(t)

	case *ir.Array:
		elem, err := Fragment(t.Elem)
		if err != nil {
			return nil, err
		}
		o := NewObj()
		o.Set("type", "array")
		o.Set("items", elem)
		return o, nil

	case *ir.Map:
		val, err := Fragment(t.Value)
		if err != nil {
			return nil, err
		}
		o := NewObj()
		o.Set("type", "object")
		if t.IntKeys {
			pp := NewObj()
			pp.Set(intKeyPattern, val)
			o.Set("patternProperties", pp)
		} else {
			o.Set("additionalProperties", val)
		}
		return o, nil

	case *ir.Ref:
		o := NewObj()
		o.Set("$ref", "#/definitions/"+t.Name)
		return o, nil

	case *ir.AnyOf:
		alts := make([]any, 0, len(t.Alts))
		for _, a := range t.Alts {
			ro, err := Fragment(a)
			if err != nil {
				return nil, err
			}
			alts = append(alts, ro)
		}
		o := NewObj()
		o.Set("anyOf", alts)
		return o, nil

	case *ir.WithDescr:
		o, err := Fragment(t.Frag)
		if err != nil {
			return nil, err
		}
		if text := CleanDoc(t.Text); text != "" {
			o.Set("description", text)
		}
		return o, nil

	case *ir.Placeholder:
		return nil, fmt.Errorf("render: in-progress placeholder %q leaked into finished schema", t.Name)
	}
	return nil, fmt.Errorf("render: unknown fragment %T", f)
}

// object renders a composite: properties and required in strictly increasing
// lexicographic order, defaults as sibling defaultValue keys, unknown keys
// rejected.
func object(t *ir.Object) (*Obj, error) {
	o := NewObj()
	o.Set("type", "object")

	keys := make([]string, 0, len(t.Properties))
	for k := range t.Properties {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	props := NewObj()
	for _, k := range keys {
		po, err := Fragment(t.Properties[k])
		if err != nil {
			return nil, err
		}
		if def, ok := t.Defaults[k]; ok {
			po.Set("defaultValue", def)
		}
		props.Set(k, po)
	}
	o.Set("properties", props)

	if len(t.Required) > 0 {
		req := make([]string, 0, len(t.Required))
		for k := range t.Required {
			req = append(req, k)
		}
		sort.Strings(req)
		o.Set("required", req)
	}
	o.Set("additionalProperties", false)
	return o, nil
}
