package reflectdesc

// Package reflectdesc describes Go types as typedesc descriptors: structs
// become records, slices arrays, maps key/value containers, pointers
// nullables, and named scalar types aliases. It is one of the two in-repo
// hosts of the descriptor surface; the other loads declarative definition
// documents.

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/reoring/schemagen/typedesc"
)

// Describe returns the descriptor of v's dynamic type.
func Describe(v any) (typedesc.Type, error) {
	rt := reflect.TypeOf(v)
	if rt == nil {
		return nil, fmt.Errorf("reflectdesc: cannot describe untyped nil")
	}
	return DescribeType(rt)
}

// DescribeType returns the descriptor of rt. Self-referential structs are
// supported; the resulting descriptor graph shares one node per Go type.
func DescribeType(rt reflect.Type) (typedesc.Type, error) {
	d := &describer{memo: map[reflect.Type]typedesc.Type{}}
	return d.describe(rt)
}

type describer struct {
	memo map[reflect.Type]typedesc.Type
}

func (d *describer) describe(rt reflect.Type) (typedesc.Type, error) {
	if t, ok := d.memo[rt]; ok {
		return t, nil
	}
	switch rt.Kind() {
	case reflect.Pointer:
		elem, err := d.describe(rt.Elem())
		if err != nil {
			return nil, err
		}
		return &typedesc.Nullable{Elem: elem}, nil

	case reflect.String:
		return d.scalar(rt, typedesc.String)
	case reflect.Bool:
		return d.scalar(rt, typedesc.Bool)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return d.scalar(rt, typedesc.Int)
	case reflect.Float32, reflect.Float64:
		return d.scalar(rt, typedesc.Float)

	case reflect.Slice, reflect.Array:
		elem, err := d.describe(rt.Elem())
		if err != nil {
			return nil, err
		}
		return &typedesc.Array{Elem: elem}, nil

	case reflect.Map:
		key, err := d.describe(rt.Key())
		if err != nil {
			return nil, err
		}
		val, err := d.describe(rt.Elem())
		if err != nil {
			return nil, err
		}
		return &typedesc.Map{Key: key, Value: val}, nil

	case reflect.Struct:
		return d.record(rt)
	}
	return nil, fmt.Errorf("reflectdesc: unsupported Go type %s", rt)
}

// scalar maps a basic kind, keeping named types (type UserID string) as
// aliases so they earn their own definition and canonical name.
func (d *describer) scalar(rt reflect.Type, prim *typedesc.Primitive) (typedesc.Type, error) {
	if rt.PkgPath() == "" {
		return prim, nil
	}
	a := &typedesc.Alias{
		Name: typedesc.Name{Pkg: rt.PkgPath(), Ident: rt.Name()},
		To:   prim,
	}
	d.memo[rt] = a
	return a, nil
}

func (d *describer) record(rt reflect.Type) (typedesc.Type, error) {
	if rt.Name() == "" {
		return nil, fmt.Errorf("reflectdesc: anonymous struct types are not supported")
	}
	rec := &typedesc.Record{
		Name: typedesc.Name{Pkg: rt.PkgPath(), Ident: rt.Name()},
	}
	d.memo[rt] = rec

	fields, err := d.structFields(rt)
	if err != nil {
		return nil, err
	}
	rec.Fields = fields
	return rec, nil
}

// structFields gathers the record fields, flattening embedded structs after
// the record's own fields so the most-derived declaration wins on name
// clashes, like encoding/json.
func (d *describer) structFields(rt reflect.Type) ([]typedesc.Field, error) {
	var own []typedesc.Field
	var embedded []typedesc.Field
	for i := 0; i < rt.NumField(); i++ {
		sf := rt.Field(i)
		if sf.Anonymous {
			et := sf.Type
			if et.Kind() == reflect.Pointer {
				et = et.Elem()
			}
			if et.Kind() == reflect.Struct && sf.Tag.Get("json") == "" {
				nested, err := d.structFields(et)
				if err != nil {
					return nil, err
				}
				embedded = append(embedded, nested...)
				continue
			}
		}
		if sf.PkgPath != "" {
			// unexported: computed or storage-only, never serialized
			continue
		}
		f, err := d.structField(sf)
		if err != nil {
			return nil, err
		}
		own = append(own, f)
	}
	return append(own, embedded...), nil
}

func (d *describer) structField(sf reflect.StructField) (typedesc.Field, error) {
	typ, err := d.describe(sf.Type)
	if err != nil {
		return typedesc.Field{}, fmt.Errorf("field %s: %w", sf.Name, err)
	}
	f := typedesc.Field{Name: sf.Name, Type: typ}

	key, omitempty := resolveFieldKey(sf)
	if key == "-" {
		f.Excluded = true
	} else if key != sf.Name {
		f.JSONName = key
	}
	if omitempty {
		f.Optional = true
	}
	return f, nil
}

// resolveFieldKey applies the repository-wide rule for a struct field's
// external key.
// Priority: schemagen:"name=..." > json tag name > field name; "-" excludes
// the field. The second result reports the json ",omitempty" option.
func resolveFieldKey(sf reflect.StructField) (string, bool) {
	jt := sf.Tag.Get("json")
	omitempty := false
	if jt != "" {
		parts := strings.Split(jt, ",")
		for _, p := range parts[1:] {
			if p == "omitempty" {
				omitempty = true
			}
		}
	}
	if gt := sf.Tag.Get("schemagen"); gt != "" {
		for _, p := range strings.Split(gt, ",") {
			p = strings.TrimSpace(p)
			if strings.HasPrefix(p, "name=") {
				return strings.TrimPrefix(p, "name="), omitempty
			}
		}
	}
	if jt != "" {
		name := jt
		if i := strings.IndexByte(jt, ','); i >= 0 {
			name = jt[:i]
		}
		if name != "" {
			return name, omitempty
		}
	}
	return sf.Name, omitempty
}
