package build

// Package build translates type descriptors into schema fragments. The
// translation is recursive and memoizing: every named type registers exactly
// one entry in the Definitions table and is referenced through ir.Ref from
// then on, which also bounds recursion on self-referential types.

import (
	ir "github.com/reoring/schemagen/internal/ir"
	"github.com/reoring/schemagen/typedesc"
)

// Build derives the schema fragment for td, populating defs with every named
// type reachable from it. On failure the table retains no entry, partial or
// sentinel, for any type on the failure path.
func Build(td typedesc.Type, defs *Definitions) (ir.Fragment, error) {
	return buildType(td, defs, false)
}

// buildType dispatches on the descriptor node. optional marks the immediate
// context as an optional field or argument; a Nullable wrapper in that
// position contributes no null alternative, since omission already covers
// the absent case. Optionality never propagates past the first node.
func buildType(td typedesc.Type, defs *Definitions, optional bool) (ir.Fragment, error) {
	switch t := td.(type) {
	case *typedesc.Primitive:
		return &ir.Simple{Type: simpleName(t.K)}, nil

	case *typedesc.Array:
		elem, err := buildType(t.Elem, defs, false)
		if err != nil {
			return nil, err
		}
		return &ir.Array{Elem: elem}, nil

	case *typedesc.Map:
		return buildMap(t, defs)

	case *typedesc.Nullable:
		inner, err := buildType(t.Elem, defs, false)
		if err != nil {
			return nil, err
		}
		if optional {
			return inner, nil
		}
		return ir.Combine(&ir.Null{}, inner), nil

	case *typedesc.Alias:
		return buildAlias(t, defs)

	case *typedesc.Record:
		return buildRecord(t, defs)

	case *typedesc.Enum:
		return buildEnum(t, defs)

	case *typedesc.ScalarEnum:
		return buildScalarEnum(t, defs)

	case *typedesc.Opaque:
		return buildOpaque(t, defs)

	case nil:
		return nil, failf(CodeUnsupportedType, "", "nil type descriptor")
	}
	return nil, failf(CodeUnsupportedType, typedesc.Identity(td), "no schema mapping for this type")
}

func simpleName(k typedesc.PrimitiveKind) string {
	switch k {
	case typedesc.KindString:
		return "string"
	case typedesc.KindInt:
		return "integer"
	case typedesc.KindFloat:
		return "number"
	default:
		return "boolean"
	}
}

// buildMap registers the container once per distinct (key, value) pairing.
// Keys must resolve, through alias chains, to Int or String.
func buildMap(t *typedesc.Map, defs *Definitions) (ir.Fragment, error) {
	identity := typedesc.Identity(t)
	if name, ok := defs.lookup(identity); ok {
		return &ir.Ref{Name: name}, nil
	}
	intKeys, ok := mapKeyKind(t.Key)
	if !ok {
		return nil, failf(CodeUnsupportedMapKey, identity,
			"map key type %s does not resolve to Int or String", typedesc.Identity(t.Key))
	}
	name := defs.nameFor(identity, displayOf(t))
	defs.begin(name)
	val, err := buildType(t.Value, defs, false)
	if err != nil {
		defs.abandon(identity, name)
		return nil, err
	}
	defs.finish(name, &ir.Map{IntKeys: intKeys, Value: val}, "")
	return &ir.Ref{Name: name}, nil
}

func mapKeyKind(t typedesc.Type) (intKeys, ok bool) {
	for {
		switch k := t.(type) {
		case *typedesc.Primitive:
			switch k.K {
			case typedesc.KindInt:
				return true, true
			case typedesc.KindString:
				return false, true
			}
			return false, false
		case *typedesc.Alias:
			t = k.To
		default:
			return false, false
		}
	}
}

// buildAlias derives the underlying type under the alias's own canonical
// name. The alias's documentation wraps the stored definition, so it wins
// over any documentation the underlying type carried.
func buildAlias(t *typedesc.Alias, defs *Definitions) (ir.Fragment, error) {
	identity := typedesc.Identity(t)
	if name, ok := defs.lookup(identity); ok {
		return &ir.Ref{Name: name}, nil
	}
	name := defs.nameFor(identity, t.Name.Ident)
	defs.begin(name)
	under, err := buildType(t.To, defs, false)
	if err != nil {
		defs.abandon(identity, name)
		return nil, err
	}
	defs.finish(name, under, t.Doc)
	return &ir.Ref{Name: name}, nil
}

// buildRecord derives a composite object. The placeholder goes in before any
// field recursion so a field whose type reaches back to the record resolves
// to a Ref. A failed field removes the placeholder again: a partially built
// composite must never remain registered.
func buildRecord(t *typedesc.Record, defs *Definitions) (ir.Fragment, error) {
	identity := typedesc.Identity(t)
	if name, ok := defs.lookup(identity); ok {
		return &ir.Ref{Name: name}, nil
	}
	name := defs.nameFor(identity, t.Name.Ident)
	defs.begin(name)

	obj := ir.NewObject()
	for r := t; r != nil; r = r.Super {
		for _, f := range r.Fields {
			if f.Excluded {
				continue
			}
			if f.Virtual && !f.Forced {
				continue
			}
			key := f.Name
			if f.JSONName != "" {
				key = f.JSONName
			}
			if _, shadowed := obj.Properties[key]; shadowed {
				// most-derived declaration wins over ancestors
				continue
			}
			frag, err := buildType(f.Type, defs, f.Optional)
			if err != nil {
				defs.abandon(identity, name)
				return nil, err
			}
			if f.Doc != "" {
				frag = &ir.WithDescr{Frag: frag, Text: f.Doc}
			}
			obj.Properties[key] = frag
			if !f.Optional {
				obj.Required[key] = struct{}{}
			}
			if f.HasDefault {
				obj.Defaults[key] = f.Default
			}
		}
	}

	defs.finish(name, obj, t.Doc)
	return &ir.Ref{Name: name}, nil
}

// buildEnum derives a closed tagged union. A constructor without payload
// contributes its bare tag string; one with payload contributes a
// single-key object wrapping the payload fields.
func buildEnum(t *typedesc.Enum, defs *Definitions) (ir.Fragment, error) {
	identity := typedesc.Identity(t)
	if name, ok := defs.lookup(identity); ok {
		return &ir.Ref{Name: name}, nil
	}
	name := defs.nameFor(identity, t.Name.Ident)
	defs.begin(name)

	var acc ir.Fragment
	for _, c := range t.Cases {
		var alt ir.Fragment
		if len(c.Args) == 0 {
			alt = ir.Str(c.Name)
		} else {
			payload := ir.NewObject()
			for _, a := range c.Args {
				frag, err := buildType(a.Type, defs, a.Optional)
				if err != nil {
					defs.abandon(identity, name)
					return nil, err
				}
				payload.Properties[a.Name] = frag
				if !a.Optional {
					payload.Required[a.Name] = struct{}{}
				}
			}
			wrapper := ir.NewObject()
			wrapper.Properties[c.Name] = payload
			wrapper.Required[c.Name] = struct{}{}
			alt = wrapper
		}
		if c.Doc != "" {
			alt = &ir.WithDescr{Frag: alt, Text: c.Doc}
		}
		acc = ir.Combine(acc, alt)
	}
	if acc == nil {
		defs.abandon(identity, name)
		return nil, failf(CodeUnsupportedType, identity, "enum has no constructors")
	}

	defs.finish(name, acc, t.Doc)
	return &ir.Ref{Name: name}, nil
}

// buildScalarEnum derives a constant set. Members whose initializer did not
// evaluate to a recognized literal are skipped; only total emptiness is
// fatal.
func buildScalarEnum(t *typedesc.ScalarEnum, defs *Definitions) (ir.Fragment, error) {
	identity := typedesc.Identity(t)
	if name, ok := defs.lookup(identity); ok {
		return &ir.Ref{Name: name}, nil
	}
	if t.Base < typedesc.KindString || t.Base > typedesc.KindBool {
		return nil, failf(CodeUnsupportedEnumBase, identity,
			"underlying representation is not string, int, float or bool")
	}
	name := defs.nameFor(identity, t.Name.Ident)
	defs.begin(name)

	var acc ir.Fragment
	for _, m := range t.Members {
		if !m.Constant {
			continue
		}
		lit, ok := constFragment(m.Value)
		if !ok {
			continue
		}
		acc = ir.Combine(acc, lit)
	}
	if acc == nil {
		defs.abandon(identity, name)
		return nil, failf(CodeEmptyScalarEnum, identity, "no member evaluated to a usable constant")
	}

	defs.finish(name, acc, t.Doc)
	return &ir.Ref{Name: name}, nil
}

// constFragment maps an evaluated initializer to its literal fragment. A nil
// value is the constant JSON null, carried by the StrConst null form.
func constFragment(v any) (ir.Fragment, bool) {
	switch x := v.(type) {
	case nil:
		return &ir.StrConst{}, true
	case string:
		return ir.Str(x), true
	case bool:
		return &ir.BoolConst{Val: x}, true
	case float64:
		return &ir.FloatConst{Val: x}, true
	case int64:
		return &ir.IntConst{Val: x}, true
	case int:
		return &ir.IntConst{Val: int64(x)}, true
	}
	return nil, false
}

// buildOpaque tries each declared conversion source in order. Alternatives
// that fail to derive are excluded from the union; only zero successes is
// fatal. Each attempt runs against a table mark: a failing alternative may
// have finished nested definitions before the failure, and those can hold
// Refs to names the failure path abandons, so the whole attempt rolls back.
func buildOpaque(t *typedesc.Opaque, defs *Definitions) (ir.Fragment, error) {
	identity := typedesc.Identity(t)
	if name, ok := defs.lookup(identity); ok {
		return &ir.Ref{Name: name}, nil
	}
	name := defs.nameFor(identity, t.Name.Ident)
	defs.begin(name)

	var acc ir.Fragment
	for _, from := range t.From {
		m := defs.mark()
		frag, err := buildType(from, defs, false)
		if err != nil {
			defs.rollback(m)
			continue
		}
		acc = ir.Combine(acc, frag)
	}
	if acc == nil {
		defs.abandon(identity, name)
		return nil, failf(CodeUnrepresentableAbstract, identity,
			"every declared conversion source failed to derive")
	}

	defs.finish(name, acc, t.Doc)
	return &ir.Ref{Name: name}, nil
}

// displayOf produces the human-facing definition name the namer prefers.
func displayOf(t typedesc.Type) string {
	switch d := t.(type) {
	case *typedesc.Primitive:
		return typedesc.Identity(d)
	case *typedesc.Array:
		return "Array_" + displayOf(d.Elem)
	case *typedesc.Map:
		return "Map_" + displayOf(d.Key) + "_" + displayOf(d.Value)
	case *typedesc.Nullable:
		return "Null_" + displayOf(d.Elem)
	case *typedesc.Record:
		return d.Name.Ident
	case *typedesc.Enum:
		return d.Name.Ident
	case *typedesc.ScalarEnum:
		return d.Name.Ident
	case *typedesc.Alias:
		return d.Name.Ident
	case *typedesc.Opaque:
		return d.Name.Ident
	}
	return "_"
}
