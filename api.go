package schemagen

import (
	"sync"

	"github.com/reoring/schemagen/internal/build"
	"github.com/reoring/schemagen/internal/render"
	"github.com/reoring/schemagen/typedesc"
)

// Opt bundles derivation options.
type Opt struct {
	// Indent is the indentation unit of the rendered text. Empty selects
	// the compact form.
	Indent string
}

// Handle is the lazily evaluated result of a derivation request. Creating a
// Handle performs no work; the first SchemaText call derives and renders,
// later calls return the same text.
type Handle struct {
	td  typedesc.Type
	opt Opt

	once sync.Once
	text string
	err  error
}

// Derive requests the schema of the type described by td. When multiple
// opts are given the last one wins.
func Derive(td typedesc.Type, opts ...Opt) *Handle {
	var opt Opt
	if len(opts) > 0 {
		opt = opts[len(opts)-1]
	}
	return &Handle{td: td, opt: opt}
}

// SchemaText returns the rendered schema document. The first call performs
// derivation and serialization, consulting the process-wide cache; repeated
// calls for the same Handle or the same type yield byte-identical text.
func (h *Handle) SchemaText() (string, error) {
	h.once.Do(func() {
		h.text, h.err = deriveText(h.td, h.opt)
	})
	return h.text, h.err
}

// DeriveText is shorthand for Derive(td, opts...).SchemaText().
func DeriveText(td typedesc.Type, opts ...Opt) (string, error) {
	return Derive(td, opts...).SchemaText()
}

// deriveText runs the whole pipeline: fresh definitions table, recursive
// build, ordered document assembly, text emission, cache fill.
func deriveText(td typedesc.Type, opt Opt) (string, error) {
	if td == nil {
		return "", &DeriveError{Code: CodeInvocation, Detail: "derive requires exactly one concrete type descriptor"}
	}
	key := cacheKey(td, opt.Indent)
	if text, ok := cacheLookup(key); ok {
		return text, nil
	}

	defs := build.NewDefinitions()
	root, err := build.Build(td, defs)
	if err != nil {
		return "", toDeriveError(err)
	}
	doc, err := render.Document(root, defs.Table())
	if err != nil {
		return "", toDeriveError(err)
	}
	text, err := render.Text(doc, opt.Indent)
	if err != nil {
		return "", toDeriveError(err)
	}

	cacheStore(key, text)
	return text, nil
}
