package ir

// Combine merges two fragments into a normalized alternative set. It is used
// wherever a type legally encodes to more than one shape: enum constructor
// alternatives, opaque conversion alternatives, nullable wrapping.
//
// Rules, in order:
//   - a nil operand is the identity: Combine(nil, x) == x.
//   - combining Null into an AnyOf that already contains Null returns that
//     AnyOf unchanged, so repeated null union never duplicates the null
//     alternative.
//   - AnyOf + AnyOf concatenates the alternative lists in order, without
//     deduplication.
//   - AnyOf + other appends the other operand.
//   - anything else forms a fresh two-element AnyOf.
func Combine(a, b Fragment) Fragment {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	if _, ok := a.(*Null); ok {
		if alt, ok := b.(*AnyOf); ok && containsNull(alt.Alts) {
			return alt
		}
	}
	if _, ok := b.(*Null); ok {
		if alt, ok := a.(*AnyOf); ok && containsNull(alt.Alts) {
			return alt
		}
	}
	aa, aok := a.(*AnyOf)
	bb, bok := b.(*AnyOf)
	switch {
	case aok && bok:
		alts := make([]Fragment, 0, len(aa.Alts)+len(bb.Alts))
		alts = append(alts, aa.Alts...)
		alts = append(alts, bb.Alts...)
		return &AnyOf{Alts: alts}
	case aok:
		alts := make([]Fragment, 0, len(aa.Alts)+1)
		alts = append(alts, aa.Alts...)
		return &AnyOf{Alts: append(alts, b)}
	case bok:
		alts := make([]Fragment, 0, len(bb.Alts)+1)
		alts = append(alts, bb.Alts...)
		return &AnyOf{Alts: append(alts, a)}
	default:
		return &AnyOf{Alts: []Fragment{a, b}}
	}
}

func containsNull(alts []Fragment) bool {
	for _, f := range alts {
		if _, ok := f.(*Null); ok {
			return true
		}
	}
	return false
}
