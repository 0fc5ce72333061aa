package schemagen

import (
	"errors"
	"fmt"

	"github.com/reoring/schemagen/internal/build"
)

// Failure codes (exported consts for IDE completion and type safety by convention)
const (
	CodeUnsupportedType         = build.CodeUnsupportedType
	CodeUnsupportedMapKey       = build.CodeUnsupportedMapKey
	CodeUnrepresentableAbstract = build.CodeUnrepresentableAbstract
	CodeEmptyScalarEnum         = build.CodeEmptyScalarEnum
	CodeUnsupportedEnumBase     = build.CodeUnsupportedEnumBase
	CodeInvocation              = "invocation"
	// CodeInternal marks invariant violations that should never surface;
	// kept distinct so they are not mistaken for input problems.
	CodeInternal = "internal"
)

// DeriveError is the single fatal failure a derivation surfaces. No partial
// schema accompanies it; the in-progress definitions table is discarded.
type DeriveError struct {
	Code   string // One of the codes listed above.
	Type   string // Canonical identity of the offending type, when known.
	Detail string
	Cause  error // Optional: underlying error.
}

func (e *DeriveError) Error() string {
	if e.Type == "" {
		return fmt.Sprintf("schemagen: %s: %s", e.Code, e.Detail)
	}
	return fmt.Sprintf("schemagen: %s for %s: %s", e.Code, e.Type, e.Detail)
}

func (e *DeriveError) Unwrap() error { return e.Cause }

// AsDeriveError extracts a DeriveError from an error using errors.As internally.
func AsDeriveError(err error) (*DeriveError, bool) {
	if err == nil {
		return nil, false
	}
	var de *DeriveError
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}

// toDeriveError lifts builder and renderer failures into the public error
// model.
func toDeriveError(err error) error {
	if err == nil {
		return nil
	}
	var be *build.Error
	if errors.As(err, &be) {
		return &DeriveError{Code: be.Code, Type: be.Type, Detail: be.Detail, Cause: be}
	}
	var de *DeriveError
	if errors.As(err, &de) {
		return de
	}
	return &DeriveError{Code: CodeInternal, Detail: err.Error(), Cause: err}
}
