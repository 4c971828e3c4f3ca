package expr

import "fmt"

// UnknownKeyError reports an expression referencing a state key that has
// never been written. The evaluator recovers from it by substituting a safe
// default; it exists as a type so callers can log it distinctly.
type UnknownKeyError struct {
	Key string
}

func (e *UnknownKeyError) Error() string {
	return fmt.Sprintf("unknown state key %q", e.Key)
}

// TypeMismatchError reports an expression whose operands or result could not
// be interpreted in the required type, including evaluation diagnostics and
// null results. Like UnknownKeyError it is always recoverable.
type TypeMismatchError struct {
	Expr   string
	Detail string
}

func (e *TypeMismatchError) Error() string {
	if e.Expr != "" {
		return fmt.Sprintf("type mismatch in %q: %s", e.Expr, e.Detail)
	}
	return "type mismatch: " + e.Detail
}
