package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/zclconf/go-cty/cty"

	"github.com/padmenu/padmenu/dispatch"
	"github.com/padmenu/padmenu/inspect"
	"github.com/padmenu/padmenu/menu"
	"github.com/padmenu/padmenu/nav"
	"github.com/padmenu/padmenu/remote"
	"github.com/padmenu/padmenu/render"
	"github.com/padmenu/padmenu/screen"
	"github.com/padmenu/padmenu/screenset"
)

// The engine recomputes at a fixed cadence; input buffers between ticks.
const frameInterval = time.Second / 30

type frameMsg struct{}

func nextFrame() tea.Cmd {
	return tea.Tick(frameInterval, func(time.Time) tea.Msg {
		return frameMsg{}
	})
}

var (
	titleStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	tabStyle       = lipgloss.NewStyle().Faint(true)
	activeTabStyle = lipgloss.NewStyle().Bold(true).Underline(true)
	focusStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	helpStyle      = lipgloss.NewStyle().Faint(true)
)

// appModel drives the frame loop from bubbletea's event loop: key presses
// buffer input, and every tick steps the active screen with whatever
// accumulated since the last frame.
type appModel struct {
	ctx       context.Context
	set       *screenset.Set
	mgr       *screen.Manager
	inspector *inspect.Server
	bridge    *remote.Bridge

	pending  screen.Input
	width    int
	quitting bool
}

func newAppModel(ctx context.Context, set *screenset.Set, mgr *screen.Manager, inspector *inspect.Server, bridge *remote.Bridge) appModel {
	return appModel{
		ctx:       ctx,
		set:       set,
		mgr:       mgr,
		inspector: inspector,
		bridge:    bridge,
	}
}

func (m appModel) Init() tea.Cmd {
	return nextFrame()
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	case frameMsg:
		return m.step()
	}
	return m, nil
}

func (m appModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		m.quitting = true
		return m, tea.Quit
	case "up":
		m.pending.Moves = append(m.pending.Moves, nav.Up)
	case "down":
		m.pending.Moves = append(m.pending.Moves, nav.Down)
	case "left":
		m = m.adjustOrMove(-1, nav.Left)
	case "right":
		m = m.adjustOrMove(1, nav.Right)
	case "enter", " ":
		if ev, ok := m.activation(); ok {
			m.pending.Events = append(m.pending.Events, ev)
		}
	case "tab":
		m = m.cycleScreen()
	}
	return m, nil
}

// step runs one engine frame: merge remote input, consume the buffer, and
// publish the result to the inspector.
func (m appModel) step() (tea.Model, tea.Cmd) {
	if m.quitting {
		return m, nil
	}
	if m.bridge != nil {
		events, moves := m.bridge.Drain()
		m.pending.Events = append(m.pending.Events, events...)
		m.pending.Moves = append(m.pending.Moves, moves...)
	}
	in := m.pending
	m.pending = screen.Input{}

	frame, ok := m.mgr.Step(m.ctx, in)
	if !ok {
		// A handler tore down the last screen.
		m.quitting = true
		return m, tea.Quit
	}
	if m.inspector != nil {
		if sc, active := m.mgr.ActiveScreen(); active {
			m.inspector.Publish(sc.Name(), sc.Focus(), frame, sc.Store())
		}
	}
	return m, nextFrame()
}

// adjustOrMove turns left/right into a slider adjustment when a slider is
// focused, and a directional move otherwise.
func (m appModel) adjustOrMove(direction float64, fallback nav.Direction) appModel {
	ev, handled := m.sliderAdjust(direction)
	switch {
	case handled && ev != nil:
		m.pending.Events = append(m.pending.Events, *ev)
	case !handled:
		m.pending.Moves = append(m.pending.Moves, fallback)
	}
	return m
}

// sliderAdjust computes the clamped value-changed event for a focused
// slider. It reports handled=true with a nil event when the slider is
// already at the boundary.
func (m appModel) sliderAdjust(direction float64) (*dispatch.Event, bool) {
	el, ok := m.focusedElement()
	if !ok || el.Tag() != "slider" || el.Node.Value == "" {
		return nil, false
	}
	if el.Value == cty.NilVal || !el.Value.Type().Equals(cty.Number) {
		return nil, false
	}
	cur, _ := el.Value.AsBigFloat().Float64()
	lo, hi, step := sliderRange(el)
	next := cur + direction*step
	if next < lo {
		next = lo
	}
	if next > hi {
		next = hi
	}
	if next == cur {
		return nil, true
	}
	return &dispatch.Event{
		Kind:   menu.EventValueChanged,
		NodeID: el.ID(),
		Value:  cty.NumberFloatVal(next),
	}, true
}

// activation maps enter/space on the focused element to the event its role
// implies. Sliders only react to left/right, so they produce nothing here.
func (m appModel) activation() (dispatch.Event, bool) {
	el, ok := m.focusedElement()
	if !ok {
		return dispatch.Event{}, false
	}
	switch el.Tag() {
	case "radio", "checkbox", "button":
	default:
		return dispatch.Event{}, false
	}
	ev := dispatch.Event{Kind: menu.EventValueChanged, NodeID: el.ID()}
	// Boolean value bindings toggle. Checked bindings resolve through the
	// node's literal, so the payload stays empty for those.
	if el.Node.Checked == nil && el.Node.Value != "" && el.Value != cty.NilVal && el.Value.Type().Equals(cty.Bool) {
		ev.Value = cty.BoolVal(!el.Value.True())
	}
	return ev, true
}

func (m appModel) cycleScreen() appModel {
	names := m.mgr.Names()
	if len(names) < 2 {
		return m
	}
	active := m.mgr.Active()
	for i, name := range names {
		if name == active {
			// Enter only fails for unregistered names, and these come
			// straight from the manager.
			_ = m.mgr.Enter(names[(i+1)%len(names)])
			break
		}
	}
	return m
}

func (m appModel) focusedElement() (*render.Element, bool) {
	sc, ok := m.mgr.ActiveScreen()
	if !ok || sc.Frame() == nil || sc.Focus() == "" {
		return nil, false
	}
	return sc.Frame().Element(sc.Focus())
}

func (m appModel) View() string {
	if m.quitting {
		return ""
	}
	sc, ok := m.mgr.ActiveScreen()
	if !ok {
		return "\n  no active screen\n"
	}
	frame := sc.Frame()
	if frame == nil {
		return "\n  starting...\n"
	}

	var b strings.Builder
	b.WriteString("\n  " + m.headerLine(sc.Name()) + "\n\n")
	focus := sc.Focus()
	for _, el := range frame.Elements() {
		line, ok := elementLine(el)
		if !ok {
			continue
		}
		if el.ID() != "" && el.ID() == focus {
			b.WriteString("  " + focusStyle.Render("> "+line) + "\n")
		} else {
			b.WriteString("    " + line + "\n")
		}
	}
	b.WriteString("\n  " + helpStyle.Render("arrows move • enter select • tab screen • q quit") + "\n")
	return b.String()
}

func (m appModel) headerLine(active string) string {
	title := active
	if cfg, ok := m.set.Screen(active); ok && cfg.Title != "" {
		title = cfg.Title
	}
	line := titleStyle.Render(title)
	names := m.mgr.Names()
	if len(names) > 1 {
		tabs := make([]string, len(names))
		for i, name := range names {
			if name == active {
				tabs[i] = activeTabStyle.Render(name)
			} else {
				tabs[i] = tabStyle.Render(name)
			}
		}
		line += "   " + strings.Join(tabs, " ")
	}
	return line
}

// elementLine renders one visible element. Containers contribute structure,
// not output.
func elementLine(el *render.Element) (string, bool) {
	switch el.Tag() {
	case "label":
		if el.Text == "" {
			return "", false
		}
		return el.Text, true
	case "slider":
		return sliderLine(el), true
	case "radio":
		mark := "( )"
		if el.Checked {
			mark = "(•)"
		}
		return mark + " " + displayName(el), true
	case "checkbox":
		mark := "[ ]"
		if checkboxOn(el) {
			mark = "[x]"
		}
		return mark + " " + displayName(el), true
	case "button":
		return "[ " + displayName(el) + " ]", true
	default:
		return "", false
	}
}

// checkboxOn resolves a checkbox's state from either binding form: a
// checked binding compares against its literal, a value binding holds the
// bool directly.
func checkboxOn(el *render.Element) bool {
	if el.Node.Checked != nil {
		return el.Checked
	}
	return el.Value != cty.NilVal && el.Value.Type().Equals(cty.Bool) && el.Value.True()
}

func sliderLine(el *render.Element) string {
	lo, hi, _ := sliderRange(el)
	cur := lo
	if el.Value != cty.NilVal && el.Value.Type().Equals(cty.Number) {
		cur, _ = el.Value.AsBigFloat().Float64()
	}
	const width = 16
	filled := 0
	if hi > lo {
		filled = int((cur - lo) / (hi - lo) * float64(width))
	}
	if filled < 0 {
		filled = 0
	}
	if filled > width {
		filled = width
	}
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	return fmt.Sprintf("%s %s %s", displayName(el), bar, strconv.FormatFloat(cur, 'f', -1, 64))
}

// sliderRange reads the slider's min/max/step attributes, with defaults
// matching the templates' usual volume scale.
func sliderRange(el *render.Element) (lo, hi, step float64) {
	lo, hi, step = 0, 100, 5
	if v, ok := el.Attr("min"); ok {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			lo = f
		}
	}
	if v, ok := el.Attr("max"); ok {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			hi = f
		}
	}
	if v, ok := el.Attr("step"); ok {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			step = f
		}
	}
	return lo, hi, step
}

// displayName is the element's label attribute, falling back to its id.
func displayName(el *render.Element) string {
	if v, ok := el.Attr("label"); ok && v != "" {
		return v
	}
	return el.ID()
}
