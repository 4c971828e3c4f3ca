// Package screen runs the per-frame cycle that ties the engine together.
//
// A Screen owns one compiled template, its state store, the renderer,
// the navigation graph, and a dispatcher. Each Step consumes the input
// the host buffered since the last frame in a fixed order: events are
// dispatched against the previous frame, directional moves update focus
// (emitting focus-loss and focus-gain through the dispatcher), and only
// then is the new frame rendered, so every mutation made by a handler
// becomes visible exactly once, at this frame's render.
//
// A Manager holds a named set of screens and swaps the active one
// between frames: Enter and Leave requests made mid-frame (typically
// from handlers) are buffered and applied at the next Step boundary, so
// no frame ever observes a half-switched screen.
package screen
