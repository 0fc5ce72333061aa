package schemagen

// Package schemagen derives JSON Schema (draft-07) documents describing the
// valid JSON encodings of a static type, and renders them as canonical
// schema text.
//
// - Type descriptions enter through the typedesc capability surface; any
//   host (reflection, a loaded definition document, a compiler frontend)
//   can implement it.
// - Derivation is recursive and memoizing: composites, tagged unions,
//   scalar-constant enumerations, generic containers, aliases and opaque
//   wrappers all resolve into a shared definitions table, with sentinel
//   cycle protection for self-referential types.
// - Output is deterministic: definitions, properties and required names are
//   sorted, and repeated requests for the same type return cached text.
//
// Design policy:
// - Keep only public APIs in the root package; put detailed implementations
//   under internal/.
// - Place the host adapters under typedef/ and reflectdesc/, and the CLI
//   under cmd/schemagen.
// - Prefer black-box testing against public APIs.
//
// Typical usage:
//
//  td, err := reflectdesc.Describe(User{})
//  text, err := schemagen.DeriveText(td, schemagen.Opt{Indent: "  "})
//
//  h := schemagen.Derive(td)
//  text, err := h.SchemaText() // derives once, then cached
