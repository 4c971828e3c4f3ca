package screen

import (
	"context"

	"github.com/padmenu/padmenu/dispatch"
	"github.com/padmenu/padmenu/internal/ctxlog"
	"github.com/padmenu/padmenu/menu"
	"github.com/padmenu/padmenu/nav"
	"github.com/padmenu/padmenu/render"
	"github.com/padmenu/padmenu/store"
)

// Input is everything the host buffered for one frame.
type Input struct {
	// Events are dispatched first, in order.
	Events []dispatch.Event
	// Moves are directional focus inputs, applied after the events.
	Moves []nav.Direction
}

// Screen owns one template, its store, and the machinery that runs them.
type Screen struct {
	name     string
	tmpl     *menu.Template
	st       *store.Store
	renderer *render.Renderer
	graph    *nav.Graph
	disp     *dispatch.Dispatcher

	frame    *render.Frame
	focus    string
	initial  string
	stepping bool
}

// New assembles a screen from a compiled template, its store, and the
// host's handler table.
func New(name string, tmpl *menu.Template, st *store.Store, table *dispatch.Table) *Screen {
	return &Screen{
		name:     name,
		tmpl:     tmpl,
		st:       st,
		renderer: render.New(tmpl),
		graph:    nav.Build(tmpl),
		disp:     dispatch.New(table),
	}
}

// Name returns the screen's registered name.
func (s *Screen) Name() string { return s.name }

// Store returns the screen's state store.
func (s *Screen) Store() *store.Store { return s.st }

// Template returns the compiled template.
func (s *Screen) Template() *menu.Template { return s.tmpl }

// Graph returns the compiled navigation graph.
func (s *Screen) Graph() *nav.Graph { return s.graph }

// Frame returns the last rendered frame, nil before the first Step.
func (s *Screen) Frame() *render.Frame { return s.frame }

// Focus returns the id of the focused node, or "" when none holds focus.
func (s *Screen) Focus() string { return s.focus }

// SetInitialFocus names the node that should receive focus on entry
// instead of the first focusable in document order. The preference is
// consumed by the next focus seat; an invisible target falls back to
// document order.
func (s *Screen) SetInitialFocus(id string) { s.initial = id }

// Step runs one frame cycle: seat focus if none is held, dispatch the
// buffered events against the previous frame, apply directional moves,
// then render. The returned frame is also available via Frame.
//
// Step must not be re-entered from a handler; a nested call is rejected
// and returns the previous frame unchanged.
func (s *Screen) Step(ctx context.Context, in Input) *render.Frame {
	logger := ctxlog.FromContext(ctx)
	if s.stepping {
		logger.Warn("Rejecting nested step.", "screen", s.name)
		return s.frame
	}
	s.stepping = true
	defer func() { s.stepping = false }()

	if s.frame == nil {
		// Bootstrap render so dispatch and navigation have a
		// visibility set to work against.
		s.frame = s.renderer.Render(ctx, s.st)
	}

	s.seatFocus(ctx)

	for _, ev := range in.Events {
		s.disp.Dispatch(ctx, s.frame, s.st, ev)
	}
	for _, dir := range in.Moves {
		s.applyMove(ctx, dir)
	}

	s.frame = s.renderer.Render(ctx, s.st)
	s.validateFocus(ctx)
	return s.frame
}

// Blur releases focus, dispatching focus-loss against the last frame.
// The manager calls it when the screen stops being active.
func (s *Screen) Blur(ctx context.Context) {
	if s.frame == nil {
		s.focus = ""
		return
	}
	s.setFocus(ctx, "")
}

// seatFocus establishes focus when none is held: the host-requested
// initial id when visible, otherwise the first visible focusable in
// document order. The preference is consumed either way.
func (s *Screen) seatFocus(ctx context.Context) {
	if s.focus != "" {
		return
	}
	target := ""
	if s.initial != "" && s.graph.Contains(s.initial) && s.frame.Visible(s.initial) {
		target = s.initial
	} else if first, ok := s.graph.First(s.frame); ok {
		target = first
	}
	s.initial = ""
	if target != "" {
		s.setFocus(ctx, target)
	}
}

// applyMove resolves one directional input against the graph and the
// current frame's visibility. No neighbor, or an invisible one, leaves
// focus where it is.
func (s *Screen) applyMove(ctx context.Context, dir nav.Direction) {
	if s.focus == "" {
		return
	}
	to, moved := s.graph.Move(s.focus, dir, s.frame)
	if !moved {
		return
	}
	s.setFocus(ctx, to)
}

// setFocus transfers focus, emitting focus-loss then focus-gain through
// the dispatcher so bound handlers observe the transition. A node that
// already left the frame swallows its own loss event there.
func (s *Screen) setFocus(ctx context.Context, to string) {
	if to == s.focus {
		return
	}
	if s.focus != "" {
		s.disp.Dispatch(ctx, s.frame, s.st, dispatch.Event{Kind: menu.EventFocusLoss, NodeID: s.focus})
	}
	s.focus = to
	if to != "" {
		s.disp.Dispatch(ctx, s.frame, s.st, dispatch.Event{Kind: menu.EventFocusGain, NodeID: to})
	}
}

// validateFocus runs after the render pass: if this frame excluded the
// focused node, focus is cleared so the next step reseats it.
func (s *Screen) validateFocus(ctx context.Context) {
	if s.focus == "" || s.frame.Visible(s.focus) {
		return
	}
	ctxlog.FromContext(ctx).Debug("Focused node left the frame, clearing focus.", "screen", s.name, "node", s.focus)
	s.setFocus(ctx, "")
}
