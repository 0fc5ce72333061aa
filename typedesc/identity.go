package typedesc

import (
	"encoding/binary"
	"fmt"
	"hash/maphash"
	"math"
)

// Identity returns the canonical string identity of a descriptor. Named
// types are identified by their qualified name; structural types by their
// shape over the identities of their parts. Two descriptors with equal
// Identity are treated as the same type by the derivation cache and namer;
// Fingerprint disambiguates display-name collisions.
func Identity(t Type) string {
	switch d := t.(type) {
	case *Primitive:
		switch d.K {
		case KindString:
			return "String"
		case KindInt:
			return "Int"
		case KindFloat:
			return "Float"
		case KindBool:
			return "Bool"
		}
		return fmt.Sprintf("Primitive(%d)", d.K)
	case *Array:
		return "Array<" + Identity(d.Elem) + ">"
	case *Map:
		return "Map<" + Identity(d.Key) + "," + Identity(d.Value) + ">"
	case *Nullable:
		return "Null<" + Identity(d.Elem) + ">"
	case *Record:
		return d.Name.String()
	case *Enum:
		return d.Name.String()
	case *ScalarEnum:
		return d.Name.String()
	case *Alias:
		return d.Name.String()
	case *Opaque:
		return d.Name.String()
	case nil:
		return "<nil>"
	}
	return fmt.Sprintf("<unknown %T>", t)
}

// fingerprintSeed is shared process-wide so equal structures hash equally
// within one process. Fingerprints are never persisted.
var fingerprintSeed = maphash.MakeSeed()

// Fingerprint returns a structural 64-bit hash of the descriptor graph.
// Unlike Identity it descends into the bodies of named types, so two
// structurally distinct types sharing a display name fingerprint apart.
// Cycles are cut at the first repeated named type.
func Fingerprint(t Type) uint64 {
	var h maphash.Hash
	h.SetSeed(fingerprintSeed)
	hashDescr(&h, t, map[Type]bool{})
	return h.Sum64()
}

func hashDescr(h *maphash.Hash, t Type, seen map[Type]bool) {
	if t == nil {
		h.WriteByte(0xff)
		return
	}
	h.WriteByte(byte(t.DescrKind()))
	switch d := t.(type) {
	case *Primitive:
		h.WriteByte(byte(d.K))
	case *Array:
		hashDescr(h, d.Elem, seen)
	case *Map:
		hashDescr(h, d.Key, seen)
		hashDescr(h, d.Value, seen)
	case *Nullable:
		hashDescr(h, d.Elem, seen)
	case *Record:
		h.WriteString(d.Name.String())
		if seen[t] {
			return
		}
		seen[t] = true
		for r := d; r != nil; r = r.Super {
			for _, f := range r.Fields {
				h.WriteString(f.Name)
				h.WriteString(f.JSONName)
				hashBools(h, f.Optional, f.Excluded, f.Virtual, f.Forced, f.HasDefault)
				if f.HasDefault {
					hashLiteral(h, f.Default)
				}
				hashDescr(h, f.Type, seen)
			}
		}
	case *Enum:
		h.WriteString(d.Name.String())
		if seen[t] {
			return
		}
		seen[t] = true
		for _, c := range d.Cases {
			h.WriteString(c.Name)
			for _, a := range c.Args {
				h.WriteString(a.Name)
				hashBools(h, a.Optional)
				hashDescr(h, a.Type, seen)
			}
		}
	case *ScalarEnum:
		h.WriteString(d.Name.String())
		h.WriteByte(byte(d.Base))
		for _, m := range d.Members {
			h.WriteString(m.Name)
			hashBools(h, m.Constant)
			if m.Constant {
				hashLiteral(h, m.Value)
			}
		}
	case *Alias:
		h.WriteString(d.Name.String())
		if seen[t] {
			return
		}
		seen[t] = true
		hashDescr(h, d.To, seen)
	case *Opaque:
		h.WriteString(d.Name.String())
		if seen[t] {
			return
		}
		seen[t] = true
		for _, f := range d.From {
			hashDescr(h, f, seen)
		}
	}
}

func hashBools(h *maphash.Hash, bs ...bool) {
	var b byte
	for i, v := range bs {
		if v {
			b |= 1 << i
		}
	}
	h.WriteByte(b)
}

func hashLiteral(h *maphash.Hash, v any) {
	switch x := v.(type) {
	case nil:
		h.WriteByte('n')
	case string:
		h.WriteByte('s')
		h.WriteString(x)
	case bool:
		h.WriteByte('b')
		hashBools(h, x)
	case int64:
		h.WriteByte('i')
		var b [8]byte
		binary.LittleEndian.PutUint64(b[:], uint64(x))
		h.Write(b[:])
	case int:
		hashLiteral(h, int64(x))
	case float64:
		h.WriteByte('f')
		var b [8]byte
		binary.LittleEndian.PutUint64(b[:], math.Float64bits(x))
		h.Write(b[:])
	default:
		h.WriteString(fmt.Sprintf("%T:%v", v, v))
	}
}
