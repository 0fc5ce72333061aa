package build

import "fmt"

// Failure codes. The public API re-exposes these verbatim; keep the strings
// stable.
const (
	CodeUnsupportedType         = "unsupported_type"
	CodeUnsupportedMapKey       = "unsupported_map_key"
	CodeUnrepresentableAbstract = "unrepresentable_abstract"
	CodeEmptyScalarEnum         = "empty_scalar_enum"
	CodeUnsupportedEnumBase     = "unsupported_enum_base"
)

// Error is a fatal derivation failure. Every failure aborts the whole
// in-progress derivation; no partial schema is ever returned.
type Error struct {
	Code   string
	Type   string // identity of the offending type
	Detail string
}

func (e *Error) Error() string {
	if e.Type == "" {
		return fmt.Sprintf("schema derivation: %s: %s", e.Code, e.Detail)
	}
	return fmt.Sprintf("schema derivation: %s for %s: %s", e.Code, e.Type, e.Detail)
}

func failf(code, typ, format string, args ...any) *Error {
	return &Error{Code: code, Type: typ, Detail: fmt.Sprintf(format, args...)}
}
