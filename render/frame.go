package render

import (
	"log/slog"

	"github.com/padmenu/padmenu/menu"
	"github.com/zclconf/go-cty/cty"
)

// Element is one visible node with its state resolved for this frame.
type Element struct {
	// Node is the underlying immutable template node.
	Node *menu.Node

	// Depth is the node's distance from the root, for hosts that indent.
	Depth int

	// Text is the element's text with every interpolation resolved.
	Text string

	// Value is the current state value behind the node's data-value
	// binding; cty.NilVal when the node has no value binding or the key
	// is unset.
	Value cty.Value

	// Checked is the resolved radio/checkbox state. Only meaningful when
	// the node carries a checked binding.
	Checked bool

	// Focusable mirrors the node's focusability; a two-way binding is
	// "live" exactly when this is true.
	Focusable bool
}

// ID returns the element's id, or "" for anonymous nodes.
func (e *Element) ID() string {
	return e.Node.ID
}

// Tag returns the element's tag.
func (e *Element) Tag() string {
	return e.Node.Tag
}

// Attr returns an opaque presentation attribute from the template.
func (e *Element) Attr(name string) (string, bool) {
	return e.Node.Attr(name)
}

// Frame is the complete output of one render pass: the visible elements in
// document order plus an id index. A Frame is immutable once returned and
// safe to hand to observers on other goroutines.
type Frame struct {
	elements []*Element
	index    map[string]*Element
	revision uint64
}

// Elements returns the visible elements in document order. The slice is
// shared; callers must not modify it.
func (f *Frame) Elements() []*Element {
	return f.elements
}

// Element returns the visible element with the given id.
func (f *Frame) Element(id string) (*Element, bool) {
	e, ok := f.index[id]
	return e, ok
}

// Visible reports whether the node with the given id is part of this
// frame. Excluded and unknown ids both report false.
func (f *Frame) Visible(id string) bool {
	_, ok := f.index[id]
	return ok
}

// VisibleNode returns the template node behind a visible id. Event
// dispatch uses it to honor the rule that excluded nodes expose no
// bindings.
func (f *Frame) VisibleNode(id string) (*menu.Node, bool) {
	e, ok := f.index[id]
	if !ok {
		return nil, false
	}
	return e.Node, true
}

// VisibleIDs returns the ids of all visible identified nodes in document
// order.
func (f *Frame) VisibleIDs() []string {
	ids := make([]string, 0, len(f.index))
	for _, e := range f.elements {
		if e.Node.ID != "" {
			ids = append(ids, e.Node.ID)
		}
	}
	return ids
}

// Revision returns the store revision this frame was rendered from.
func (f *Frame) Revision() uint64 {
	return f.revision
}

// enforceSingleChecked clears all but the first checked member of every
// radio group, so the single-checked invariant holds at the end of every
// render pass no matter what state the pass started from.
func (f *Frame) enforceSingleChecked(logger *slog.Logger) {
	var first map[string]*Element
	for _, e := range f.elements {
		cb := e.Node.Checked
		if cb == nil || !e.Checked {
			continue
		}
		if first == nil {
			first = make(map[string]*Element)
		}
		if kept, ok := first[cb.Group]; ok {
			e.Checked = false
			logger.Warn("radio group resolved more than one checked member, keeping the first",
				"group", cb.Group, "kept", kept.ID(), "cleared", e.ID())
			continue
		}
		first[cb.Group] = e
	}
}
