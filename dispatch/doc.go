// Package dispatch routes input events to declared handler invocations.
//
// Events arrive from the host addressed by node id. The dispatcher
// resolves the id against the current frame: a node that the last render
// pass excluded exposes no bindings, so its events are dropped. For a
// value-changed event the dispatcher applies the node's two-way binding
// write first, then invokes the handler the template bound to that event
// kind, if any. Handler names resolve through a Table populated by the
// host at startup; a binding naming an unregistered handler is logged
// and skipped, never fatal.
package dispatch
