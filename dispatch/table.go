package dispatch

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/padmenu/padmenu/menu"
	"github.com/padmenu/padmenu/store"
	"github.com/zclconf/go-cty/cty"
)

// Handler is a host function invocable from an event binding.
type Handler func(ctx context.Context, call Call) error

// Call carries everything a handler may need about the invocation that
// reached it.
type Call struct {
	// Node is the visible node the event fired on.
	Node *menu.Node
	// Kind is the event kind that triggered the binding.
	Kind menu.EventKind
	// Args are the literal arguments declared in the template binding.
	Args []cty.Value
	// Value is the event payload; NilVal for kinds that carry none.
	Value cty.Value
	// Store is the active screen's state store.
	Store *store.Store
}

// Table maps handler names to host functions. The host populates it once
// at startup; registration is not safe for concurrent use.
type Table struct {
	handlers map[string]Handler
}

// NewTable creates an empty handler table.
func NewTable() *Table {
	return &Table{handlers: make(map[string]Handler)}
}

// Register adds a named handler. Registering the same name twice is a
// programming error and panics.
func (t *Table) Register(name string, fn Handler) {
	if _, exists := t.handlers[name]; exists {
		panic(fmt.Sprintf("event handler with name '%s' already registered", name))
	}
	slog.Debug("Registering event handler.", "name", name)
	t.handlers[name] = fn
}

// Lookup returns the handler registered under name.
func (t *Table) Lookup(name string) (Handler, bool) {
	fn, ok := t.handlers[name]
	return fn, ok
}

// Names returns the registered handler names in sorted order.
func (t *Table) Names() []string {
	names := make([]string, 0, len(t.handlers))
	for name := range t.handlers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
