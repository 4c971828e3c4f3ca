package screen

import (
	"context"
	"fmt"

	"github.com/padmenu/padmenu/internal/ctxlog"
	"github.com/padmenu/padmenu/render"
)

// Manager owns a named set of screens and the identity of the active
// one. Switch requests are buffered and applied between frames.
type Manager struct {
	screens map[string]*Screen
	order   []string

	active       string
	pendingEnter string
	pendingLeave bool
}

// NewManager creates an empty manager with no active screen.
func NewManager() *Manager {
	return &Manager{screens: make(map[string]*Screen)}
}

// Add registers a screen under its name. Adding a duplicate name is a
// programming error and panics.
func (m *Manager) Add(sc *Screen) {
	if _, exists := m.screens[sc.Name()]; exists {
		panic(fmt.Sprintf("screen with name '%s' already registered", sc.Name()))
	}
	m.screens[sc.Name()] = sc
	m.order = append(m.order, sc.Name())
}

// Enter requests a switch to the named screen. The switch is applied at
// the next Step boundary, so a handler may call it mid-frame without
// triggering a nested render. The departing screen stays registered and
// keeps its state.
func (m *Manager) Enter(name string) error {
	if _, ok := m.screens[name]; !ok {
		return fmt.Errorf("enter %q: screen not registered", name)
	}
	m.pendingEnter = name
	return nil
}

// Leave requests teardown of the active screen. At the next Step
// boundary the screen is removed from the manager entirely, releasing
// its template and store together; no frame observes a partial state.
func (m *Manager) Leave() {
	m.pendingLeave = true
}

// Step applies any pending switch, then steps the active screen. The
// second result is false when no screen is active.
func (m *Manager) Step(ctx context.Context, in Input) (*render.Frame, bool) {
	m.applyPending(ctx)
	sc, ok := m.screens[m.active]
	if !ok {
		return nil, false
	}
	return sc.Step(ctx, in), true
}

// Active returns the name of the active screen, or "" when none is.
func (m *Manager) Active() string { return m.active }

// ActiveScreen returns the active screen itself.
func (m *Manager) ActiveScreen() (*Screen, bool) {
	sc, ok := m.screens[m.active]
	return sc, ok
}

// Screen returns the named screen.
func (m *Manager) Screen(name string) (*Screen, bool) {
	sc, ok := m.screens[name]
	return sc, ok
}

// Names returns the registered screen names in registration order.
func (m *Manager) Names() []string {
	names := make([]string, len(m.order))
	copy(names, m.order)
	return names
}

// Len returns the number of registered screens.
func (m *Manager) Len() int { return len(m.screens) }

// applyPending resolves buffered leave and enter requests at the frame
// boundary. A leave and an enter requested in the same frame tear down
// the old screen first, then activate the new one.
func (m *Manager) applyPending(ctx context.Context) {
	logger := ctxlog.FromContext(ctx)

	if m.pendingLeave {
		m.pendingLeave = false
		if sc, ok := m.screens[m.active]; ok {
			sc.Blur(ctx)
			delete(m.screens, m.active)
			for i, name := range m.order {
				if name == m.active {
					m.order = append(m.order[:i], m.order[i+1:]...)
					break
				}
			}
			logger.Info("Screen torn down.", "screen", m.active)
		}
		m.active = ""
	}

	if m.pendingEnter != "" {
		next := m.pendingEnter
		m.pendingEnter = ""
		if _, ok := m.screens[next]; !ok {
			// Torn down after the request; nothing to activate.
			logger.Warn("Pending screen no longer registered.", "screen", next)
			return
		}
		if next == m.active {
			return
		}
		if old, ok := m.screens[m.active]; ok {
			old.Blur(ctx)
		}
		m.active = next
		logger.Info("Screen entered.", "screen", next)
	}
}
