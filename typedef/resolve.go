package typedef

import (
	"fmt"

	"github.com/reoring/schemagen/typedesc"
)

// Resolve compiles the declaration of name into its descriptor. Descriptors
// are shared per document: resolving two types that reference a third yields
// one node for the third, and self-referential records resolve to a cyclic
// graph. Documents are not safe for concurrent resolution.
func (d *Document) Resolve(name string) (typedesc.Type, error) {
	return d.resolver().named(name)
}

// ResolveAll compiles every declaration, in declaration order.
func (d *Document) ResolveAll() ([]typedesc.Type, error) {
	r := d.resolver()
	out := make([]typedesc.Type, 0, len(d.Types))
	for i := range d.Types {
		t, err := r.named(d.Types[i].Name)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

func (d *Document) resolver() *resolver {
	if d.resolved == nil {
		d.resolved = map[string]typedesc.Type{}
	}
	return &resolver{doc: d, memo: d.resolved}
}

type resolver struct {
	doc  *Document
	memo map[string]typedesc.Type
}

func (r *resolver) named(name string) (typedesc.Type, error) {
	if t, ok := r.memo[name]; ok {
		return t, nil
	}
	td, ok := r.doc.byName[name]
	if !ok {
		return nil, fmt.Errorf("typedef: unknown type %q", name)
	}
	qname := typedesc.Name{Pkg: r.doc.Package, Ident: td.Name}

	switch td.Kind {
	case "record":
		rec := &typedesc.Record{Name: qname, Doc: td.Doc}
		r.memo[name] = rec
		if td.Extends != "" {
			sup, err := r.named(td.Extends)
			if err != nil {
				delete(r.memo, name)
				return nil, err
			}
			base, ok := sup.(*typedesc.Record)
			if !ok {
				delete(r.memo, name)
				return nil, fmt.Errorf("typedef: type %s: extends %s, which is not a record", name, td.Extends)
			}
			rec.Super = base
		}
		for _, f := range td.Fields {
			typ, err := r.typeExpr(f.Type)
			if err != nil {
				delete(r.memo, name)
				return nil, fmt.Errorf("typedef: type %s: field %s: %w", name, f.Name, err)
			}
			fd := typedesc.Field{
				Name:     f.Name,
				JSONName: f.JSON,
				Type:     typ,
				Doc:      f.Doc,
				Optional: f.Optional,
				Excluded: f.Excluded,
				Virtual:  f.Virtual,
				Forced:   f.Forced,
			}
			if f.Default != "" {
				v, err := evalConst(f.Default)
				if err != nil {
					delete(r.memo, name)
					return nil, fmt.Errorf("typedef: type %s: field %s: default: %w", name, f.Name, err)
				}
				fd.Default = v
				fd.HasDefault = true
			}
			rec.Fields = append(rec.Fields, fd)
		}
		return rec, nil

	case "enum":
		e := &typedesc.Enum{Name: qname, Doc: td.Doc}
		r.memo[name] = e
		for _, c := range td.Cases {
			cs := typedesc.Case{Name: c.Name, Doc: c.Doc}
			for _, a := range c.Args {
				typ, err := r.typeExpr(a.Type)
				if err != nil {
					delete(r.memo, name)
					return nil, fmt.Errorf("typedef: type %s: case %s: arg %s: %w", name, c.Name, a.Name, err)
				}
				cs.Args = append(cs.Args, typedesc.Arg{Name: a.Name, Type: typ, Optional: a.Optional})
			}
			e.Cases = append(e.Cases, cs)
		}
		return e, nil

	case "constants":
		base, err := primitiveKind(td.Base)
		if err != nil {
			return nil, fmt.Errorf("typedef: type %s: base: %w", name, err)
		}
		se := &typedesc.ScalarEnum{Name: qname, Doc: td.Doc, Base: base}
		r.memo[name] = se
		for _, m := range td.Members {
			member := typedesc.Member{Name: m.Name}
			if v, err := evalConst(m.Value); err == nil {
				member.Value = v
				member.Constant = true
			}
			// a member whose expression failed stays non-constant and is
			// skipped during derivation
			se.Members = append(se.Members, member)
		}
		return se, nil

	case "alias":
		a := &typedesc.Alias{Name: qname, Doc: td.Doc}
		r.memo[name] = a
		to, err := r.typeExpr(td.To)
		if err != nil {
			delete(r.memo, name)
			return nil, fmt.Errorf("typedef: type %s: to: %w", name, err)
		}
		a.To = to
		return a, nil

	case "opaque":
		o := &typedesc.Opaque{Name: qname, Doc: td.Doc}
		r.memo[name] = o
		for i, src := range td.From {
			typ, err := r.typeExpr(src)
			if err != nil {
				delete(r.memo, name)
				return nil, fmt.Errorf("typedef: type %s: from[%d]: %w", name, i, err)
			}
			o.From = append(o.From, typ)
		}
		return o, nil
	}
	return nil, fmt.Errorf("typedef: type %s: unknown kind %q", name, td.Kind)
}

// typeExpr compiles a type expression string against the builtins and the
// document's declarations.
func (r *resolver) typeExpr(src string) (typedesc.Type, error) {
	if src == "" {
		return nil, fmt.Errorf("missing type expression")
	}
	e, err := parseTypeExpr(src)
	if err != nil {
		return nil, err
	}
	return r.compile(e)
}

func (r *resolver) compile(e typeExpr) (typedesc.Type, error) {
	switch e.Head {
	case "String", "Int", "Float", "Bool":
		if len(e.Args) != 0 {
			return nil, fmt.Errorf("%s takes no type arguments", e.Head)
		}
		k, _ := primitiveKind(e.Head)
		return primitiveOf(k), nil
	case "Array":
		if len(e.Args) != 1 {
			return nil, fmt.Errorf("Array takes exactly one type argument")
		}
		elem, err := r.compile(e.Args[0])
		if err != nil {
			return nil, err
		}
		return &typedesc.Array{Elem: elem}, nil
	case "Map":
		if len(e.Args) != 2 {
			return nil, fmt.Errorf("Map takes exactly two type arguments")
		}
		key, err := r.compile(e.Args[0])
		if err != nil {
			return nil, err
		}
		val, err := r.compile(e.Args[1])
		if err != nil {
			return nil, err
		}
		return &typedesc.Map{Key: key, Value: val}, nil
	case "Null":
		if len(e.Args) != 1 {
			return nil, fmt.Errorf("Null takes exactly one type argument")
		}
		elem, err := r.compile(e.Args[0])
		if err != nil {
			return nil, err
		}
		return &typedesc.Nullable{Elem: elem}, nil
	}
	if len(e.Args) != 0 {
		return nil, fmt.Errorf("type %s takes no type arguments", e.Head)
	}
	return r.named(e.Head)
}

func primitiveKind(s string) (typedesc.PrimitiveKind, error) {
	switch s {
	case "String":
		return typedesc.KindString, nil
	case "Int":
		return typedesc.KindInt, nil
	case "Float":
		return typedesc.KindFloat, nil
	case "Bool":
		return typedesc.KindBool, nil
	}
	return 0, fmt.Errorf("not a primitive kind: %q", s)
}

func primitiveOf(k typedesc.PrimitiveKind) *typedesc.Primitive {
	switch k {
	case typedesc.KindString:
		return typedesc.String
	case typedesc.KindInt:
		return typedesc.Int
	case typedesc.KindFloat:
		return typedesc.Float
	default:
		return typedesc.Bool
	}
}
