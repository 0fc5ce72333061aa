package typedef

import (
	"fmt"

	"github.com/expr-lang/expr"
)

// evalConst compiles and runs a constant expression with an empty
// environment and normalizes the result onto the literal set the engine
// accepts: string, bool, int64, float64, or nil.
func evalConst(src string) (any, error) {
	prog, err := expr.Compile(src)
	if err != nil {
		return nil, fmt.Errorf("compile %q: %w", src, err)
	}
	out, err := expr.Run(prog, nil)
	if err != nil {
		return nil, fmt.Errorf("eval %q: %w", src, err)
	}
	switch v := out.(type) {
	case nil:
		return nil, nil
	case string, bool, int64, float64:
		return v, nil
	case int:
		return int64(v), nil
	case int32:
		return int64(v), nil
	case uint:
		return int64(v), nil
	case uint64:
		return int64(v), nil
	case float32:
		return float64(v), nil
	}
	return nil, fmt.Errorf("eval %q: result %T is not a literal", src, out)
}
