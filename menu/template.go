package menu

import "fmt"

// Template is a compiled menu screen: the node tree plus the indexes the
// runtime packages look nodes up through. Templates are immutable; a screen
// re-renders the same Template against changing state every frame.
type Template struct {
	// Source names where the template came from, for diagnostics.
	Source string
	Root   *Node

	byID       map[string]*Node
	focusables []*Node
}

// NewTemplate indexes root into a Template. Element ids must be unique
// within a template; a duplicate is a MalformedTemplateError because the
// navigation graph and event routing key on ids.
func NewTemplate(source string, root *Node) (*Template, error) {
	if root == nil {
		return nil, &MalformedTemplateError{Source: source, Detail: "empty template"}
	}
	t := &Template{
		Source: source,
		Root:   root,
		byID:   make(map[string]*Node),
	}
	var dup string
	t.Walk(func(n *Node) {
		if n.ID != "" {
			if _, exists := t.byID[n.ID]; exists && dup == "" {
				dup = n.ID
			}
			t.byID[n.ID] = n
		}
		if n.Focusable() {
			t.focusables = append(t.focusables, n)
		}
	})
	if dup != "" {
		return nil, &MalformedTemplateError{Source: source, Detail: fmt.Sprintf("duplicate element id %q", dup)}
	}
	return t, nil
}

// Walk visits every node in document order (parents before children).
func (t *Template) Walk(fn func(*Node)) {
	walk(t.Root, fn)
}

func walk(n *Node, fn func(*Node)) {
	if n == nil {
		return
	}
	fn(n)
	for _, c := range n.Children {
		walk(c, fn)
	}
}

// NodeByID returns the node carrying the given id.
func (t *Template) NodeByID(id string) (*Node, bool) {
	n, ok := t.byID[id]
	return n, ok
}

// Focusables returns the focusable nodes in document order. The slice is
// shared; callers must not modify it.
func (t *Template) Focusables() []*Node {
	return t.focusables
}

// Len returns the total number of nodes in the template.
func (t *Template) Len() int {
	count := 0
	t.Walk(func(*Node) { count++ })
	return count
}
