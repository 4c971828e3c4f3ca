// Package expr evaluates the small expressions that appear in menu
// templates: conditionals such as `cur_config_index == 1` and bare boolean
// keys such as `debug_enabled`. Expressions are parsed once at compile time
// and evaluated against a state snapshot every frame. Evaluation never
// mutates state and never panics; failures are reported as typed errors so
// the renderer can degrade instead of crashing the frame loop.
package expr

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
)

// Compiled is a parsed expression bound to its source text.
type Compiled struct {
	src string
	e   hclsyntax.Expression
}

// Compile parses src into an evaluatable expression. Parse failures are
// returned as plain errors; callers decide whether they are fatal (the
// template compiler treats them as malformed-template errors).
func Compile(src string) (*Compiled, error) {
	e, diags := hclsyntax.ParseExpression([]byte(src), "expr", hcl.InitialPos)
	if diags.HasErrors() {
		return nil, fmt.Errorf("parse expression %q: %s", src, diags.Error())
	}
	return &Compiled{src: src, e: e}, nil
}

// Source returns the original expression text, mainly for diagnostics.
func (c *Compiled) Source() string {
	return c.src
}

// Keys returns the state keys the expression reads, in source order with
// duplicates removed.
func (c *Compiled) Keys() []string {
	seen := make(map[string]struct{})
	var keys []string
	for _, tr := range c.e.Variables() {
		root := tr.RootName()
		if _, ok := seen[root]; ok {
			continue
		}
		seen[root] = struct{}{}
		keys = append(keys, root)
	}
	return keys
}

// Eval evaluates the expression against vars and returns the raw result.
// A reference to a key absent from vars yields an UnknownKeyError; any
// evaluation diagnostic or null result yields a TypeMismatchError. Callers
// recover from both and keep the frame going.
func (c *Compiled) Eval(vars map[string]cty.Value) (cty.Value, error) {
	for _, tr := range c.e.Variables() {
		root := tr.RootName()
		if _, ok := vars[root]; !ok {
			return cty.NilVal, &UnknownKeyError{Key: root}
		}
	}
	v, diags := c.e.Value(&hcl.EvalContext{Variables: vars})
	if diags.HasErrors() {
		return cty.NilVal, &TypeMismatchError{Expr: c.src, Detail: diags.Error()}
	}
	if v.IsNull() {
		return cty.NilVal, &TypeMismatchError{Expr: c.src, Detail: "expression produced no value"}
	}
	return v, nil
}

// EvalBool evaluates the expression as a condition. On any failure it
// returns false alongside the error, so a conditional simply excludes its
// subtree instead of failing the frame.
func (c *Compiled) EvalBool(vars map[string]cty.Value) (bool, error) {
	v, err := c.Eval(vars)
	if err != nil {
		return false, err
	}
	b, convErr := convert.Convert(v, cty.Bool)
	if convErr != nil {
		return false, &TypeMismatchError{Expr: c.src, Detail: convErr.Error()}
	}
	return b.True(), nil
}

// EvalDisplay evaluates the expression and renders the result as display
// text. On any failure it returns the empty placeholder alongside the error.
func (c *Compiled) EvalDisplay(vars map[string]cty.Value) (string, error) {
	v, err := c.Eval(vars)
	if err != nil {
		return "", err
	}
	return Display(v)
}

// Display converts a scalar value to its display form: numbers in plain
// decimal notation, booleans as "true"/"false", strings verbatim. Values
// with no string form yield "" and a TypeMismatchError.
func Display(v cty.Value) (string, error) {
	if v == cty.NilVal || v.IsNull() {
		return "", &TypeMismatchError{Detail: "null value has no display form"}
	}
	s, err := convert.Convert(v, cty.String)
	if err != nil {
		return "", &TypeMismatchError{Detail: err.Error()}
	}
	return s.AsString(), nil
}
