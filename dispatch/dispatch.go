package dispatch

import (
	"context"
	"fmt"

	"github.com/padmenu/padmenu/internal/ctxlog"
	"github.com/padmenu/padmenu/menu"
	"github.com/padmenu/padmenu/store"
	"github.com/zclconf/go-cty/cty"
)

// Event is a single input occurrence targeting a node by id.
type Event struct {
	Kind   menu.EventKind
	NodeID string
	// Value carries the payload of a value-changed event. Other kinds
	// leave it as NilVal.
	Value cty.Value
}

// Frame is the slice of a rendered frame the dispatcher needs: which
// nodes survived the last visibility pass.
type Frame interface {
	VisibleNode(id string) (*menu.Node, bool)
}

// UnboundHandlerError reports an event binding that names a handler the
// host never registered.
type UnboundHandlerError struct {
	Func string
}

func (e *UnboundHandlerError) Error() string {
	return fmt.Sprintf("unbound handler %q", e.Func)
}

// Dispatcher resolves events against a frame and a handler table.
type Dispatcher struct {
	table *Table
}

// New creates a Dispatcher backed by the given handler table.
func New(table *Table) *Dispatcher {
	return &Dispatcher{table: table}
}

// Dispatch processes one event. Failures are recoverable by contract:
// they are logged on the context logger and the event is dropped, so a
// bad binding or a misbehaving handler can never take the loop down.
// State mutations land in the store and only become visible at the next
// render pass.
func (d *Dispatcher) Dispatch(ctx context.Context, f Frame, st *store.Store, ev Event) {
	logger := ctxlog.FromContext(ctx)

	node, ok := f.VisibleNode(ev.NodeID)
	if !ok {
		logger.Debug("Dropping event, node not part of the current frame.", "kind", ev.Kind, "node", ev.NodeID)
		return
	}

	if ev.Kind == menu.EventValueChanged {
		d.applyBinding(ctx, node, st, ev)
	}

	call, bound := node.Events[ev.Kind]
	if !bound {
		return
	}

	fn, ok := d.table.Lookup(call.Func)
	if !ok {
		logger.Warn("Skipping event binding.", "node", ev.NodeID, "kind", ev.Kind, "error", &UnboundHandlerError{Func: call.Func})
		return
	}

	err := fn(ctx, Call{
		Node:  node,
		Kind:  ev.Kind,
		Args:  call.Args,
		Value: ev.Value,
		Store: st,
	})
	if err != nil {
		logger.Warn("Event handler failed.", "node", ev.NodeID, "kind", ev.Kind, "handler", call.Func, "error", err)
	}
}

// applyBinding performs the two-way write a value-changed event implies.
// A checked binding writes the node's declared literal; a value binding
// writes the event payload.
func (d *Dispatcher) applyBinding(ctx context.Context, node *menu.Node, st *store.Store, ev Event) {
	logger := ctxlog.FromContext(ctx)

	switch {
	case node.Checked != nil:
		st.Set(node.Checked.Key, node.Checked.Literal)
	case node.Value != "":
		if !store.IsScalar(ev.Value) {
			logger.Warn("Discarding value-changed write, payload is not a scalar.", "node", ev.NodeID, "key", node.Value)
			return
		}
		st.Set(node.Value, ev.Value)
	}
}
