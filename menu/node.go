package menu

import (
	"github.com/padmenu/padmenu/expr"
	"github.com/zclconf/go-cty/cty"
)

// Attr is a single static attribute as it appeared in the markup. Attribute
// order is preserved so that compilation stays deterministic.
type Attr struct {
	Name  string
	Value string
}

// TextSpan is one piece of an element's text content. Exactly one of
// Literal or Key is set; Key marks a `{{key}}` interpolation site resolved
// against state on every render.
type TextSpan struct {
	Literal string
	Key     string
}

// Interpolation reports whether the span reads state rather than carrying
// literal text.
func (s TextSpan) Interpolation() bool {
	return s.Key != ""
}

// CheckedBinding is a `data-checked` directive: membership in a radio group.
// Checking the node writes Literal into the state key; the node renders
// checked whenever the key's current value equals Literal.
type CheckedBinding struct {
	Key     string
	Group   string
	Literal cty.Value
}

// NavHints holds the directional neighbor references extracted from a
// node's style attribute. Each field is a target element id; empty means no
// neighbor in that direction. References are lookup keys, not ownership
// edges, and may legally point at ids that do not exist.
type NavHints struct {
	Up    string
	Down  string
	Left  string
	Right string
}

// Node is one element of a compiled template. It is immutable after
// compilation; directives describe behavior but hold no mutable state.
type Node struct {
	Tag      string
	ID       string
	Attrs    []Attr
	Children []*Node

	// Text is the element's text content, split into literal and
	// interpolation spans at compile time.
	Text []TextSpan

	// If excludes the subtree entirely when it evaluates false: no render
	// output, no navigation edges, no event bindings.
	If *expr.Compiled

	// Value names the state key of a two-way value binding (data-value).
	Value string

	// Checked is the radio-group binding (data-checked), if any.
	Checked *CheckedBinding

	// Events maps an event kind to the handler call bound to it.
	Events map[EventKind]CallExpr

	// Nav holds the directional navigation hints, if any.
	Nav NavHints
}

// Attr returns the value of the named static attribute.
func (n *Node) Attr(name string) (string, bool) {
	for _, a := range n.Attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// focusableTags are the element kinds that accept gamepad focus on their own.
var focusableTags = map[string]bool{
	"slider":   true,
	"radio":    true,
	"checkbox": true,
	"button":   true,
	"input":    true,
}

// Focusable reports whether the node can hold focus: it needs an id and
// either a focusable tag, a two-way binding, or at least one navigation
// hint.
func (n *Node) Focusable() bool {
	if n.ID == "" {
		return false
	}
	if focusableTags[n.Tag] || n.Value != "" || n.Checked != nil {
		return true
	}
	return n.Nav != (NavHints{})
}
