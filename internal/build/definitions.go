package build

import (
	"strconv"
	"strings"

	ir "github.com/reoring/schemagen/internal/ir"
)

// Definitions is the shared, mutable table of named schema fragments built
// during one derivation pass. Each top-level request owns its table
// exclusively; there is no cross-request sharing. Alongside the fragments it
// carries the namer state mapping canonical type identities to assigned
// definition names.
type Definitions struct {
	frags   map[string]ir.Fragment
	byIdent map[string]string // canonical identity -> assigned name
	owner   map[string]string // assigned name -> owning identity
}

// NewDefinitions returns an empty table.
func NewDefinitions() *Definitions {
	return &Definitions{
		frags:   map[string]ir.Fragment{},
		byIdent: map[string]string{},
		owner:   map[string]string{},
	}
}

// Table exposes the finished name -> fragment mapping for rendering.
func (d *Definitions) Table() map[string]ir.Fragment { return d.frags }

// lookup reports the name already assigned to identity, if any. An assigned
// name may still map to a Placeholder while the body is under construction;
// callers return a Ref either way.
func (d *Definitions) lookup(identity string) (string, bool) {
	n, ok := d.byIdent[identity]
	return n, ok
}

// nameFor assigns a definition name to identity. The bare display name is
// preferred; when a structurally different identity already owns it, the
// underscore-qualified identity is used instead, and only a genuine residual
// collision appends a numeric suffix.
func (d *Definitions) nameFor(identity, display string) string {
	if n, ok := d.byIdent[identity]; ok {
		return n
	}
	cand := sanitizeName(display)
	if own, taken := d.owner[cand]; taken && own != identity {
		cand = sanitizeName(identity)
		base := cand
		for i := 2; ; i++ {
			own, taken := d.owner[cand]
			if !taken || own == identity {
				break
			}
			cand = base + "_" + strconv.Itoa(i)
		}
	}
	d.byIdent[identity] = cand
	d.owner[cand] = identity
	return cand
}

// begin installs the in-progress placeholder for name.
func (d *Definitions) begin(name string) {
	d.frags[name] = &ir.Placeholder{Name: name}
}

// finish overwrites name's placeholder with its finished fragment, wrapping
// it with documentation when doc is non-empty.
func (d *Definitions) finish(name string, frag ir.Fragment, doc string) {
	if doc != "" {
		frag = &ir.WithDescr{Frag: frag, Text: doc}
	}
	d.frags[name] = frag
}

// tableMark captures the keys present at a point in time, so a speculative
// sub-derivation can be discarded as a whole.
type tableMark struct {
	frags   map[string]bool
	byIdent map[string]bool
	owner   map[string]bool
}

// mark snapshots the current key sets.
func (d *Definitions) mark() tableMark {
	m := tableMark{
		frags:   make(map[string]bool, len(d.frags)),
		byIdent: make(map[string]bool, len(d.byIdent)),
		owner:   make(map[string]bool, len(d.owner)),
	}
	for k := range d.frags {
		m.frags[k] = true
	}
	for k := range d.byIdent {
		m.byIdent[k] = true
	}
	for k := range d.owner {
		m.owner[k] = true
	}
	return m
}

// rollback removes every entry added since m was taken. A failing sub-builder
// only ever abandons entries it created itself, so entries present at the
// mark are still present here and only additions are discarded.
func (d *Definitions) rollback(m tableMark) {
	for k := range d.frags {
		if !m.frags[k] {
			delete(d.frags, k)
		}
	}
	for k := range d.byIdent {
		if !m.byIdent[k] {
			delete(d.byIdent, k)
		}
	}
	for k := range d.owner {
		if !m.owner[k] {
			delete(d.owner, k)
		}
	}
}

// abandon discards a failed in-progress definition so no partial or sentinel
// entry survives into the table.
func (d *Definitions) abandon(identity, name string) {
	delete(d.frags, name)
	delete(d.byIdent, identity)
	delete(d.owner, name)
}

// sanitizeName maps an arbitrary identity or display string onto the
// definition-name character set.
func sanitizeName(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	if b.Len() == 0 {
		return "_"
	}
	return b.String()
}
