// Package nav compiles directional navigation hints into an adjacency
// table and answers focus-movement queries against it.
//
// Templates scatter neighbor references across style attributes; Build
// resolves them once into an arena of index-linked slots so traversal is
// two array lookups with no string parsing. Hints naming unknown ids
// stay unresolved and inert. Movement never wraps and never searches:
// a missing or invisible neighbor means focus stays put.
package nav

import (
	"fmt"

	"github.com/padmenu/padmenu/menu"
)

// Direction is one of the four directional inputs.
type Direction int

const (
	Up Direction = iota
	Down
	Left
	Right
)

var directionNames = [...]string{"up", "down", "left", "right"}

func (d Direction) String() string {
	if d < Up || d > Right {
		return fmt.Sprintf("direction(%d)", int(d))
	}
	return directionNames[d]
}

// ParseDirection converts the textual form used by remote hosts.
func ParseDirection(s string) (Direction, error) {
	switch s {
	case "up":
		return Up, nil
	case "down":
		return Down, nil
	case "left":
		return Left, nil
	case "right":
		return Right, nil
	}
	return 0, fmt.Errorf("unknown direction %q", s)
}

// Visibility reports whether a node id survived the current frame.
type Visibility interface {
	Visible(id string) bool
}

// adjacency is one arena slot: a focusable id and its neighbor slots as
// arena indices, -1 when absent.
type adjacency struct {
	id   string
	next [4]int
}

// Graph is the compiled navigation adjacency for one template. It is
// immutable after Build and shared safely by readers.
type Graph struct {
	arena []adjacency
	index map[string]int
}

// Build compiles the template's focusable nodes and their navigation
// hints into a Graph. Focusables enter the arena in document order.
func Build(tmpl *menu.Template) *Graph {
	focusables := tmpl.Focusables()
	g := &Graph{
		arena: make([]adjacency, 0, len(focusables)),
		index: make(map[string]int, len(focusables)),
	}
	for i, n := range focusables {
		g.index[n.ID] = i
		g.arena = append(g.arena, adjacency{id: n.ID, next: [4]int{-1, -1, -1, -1}})
	}
	for i, n := range focusables {
		g.arena[i].next[Up] = g.resolve(n.Nav.Up)
		g.arena[i].next[Down] = g.resolve(n.Nav.Down)
		g.arena[i].next[Left] = g.resolve(n.Nav.Left)
		g.arena[i].next[Right] = g.resolve(n.Nav.Right)
	}
	return g
}

func (g *Graph) resolve(id string) int {
	if id == "" {
		return -1
	}
	if i, ok := g.index[id]; ok {
		return i
	}
	return -1
}

// Move answers a directional input from the given node. It returns the
// neighbor id and true when focus moves; otherwise from and false. The
// neighbor must exist in the graph and be visible under vis — there is
// no wraparound and no fallback search.
func (g *Graph) Move(from string, dir Direction, vis Visibility) (string, bool) {
	i, ok := g.index[from]
	if !ok {
		return from, false
	}
	j := g.arena[i].next[dir]
	if j < 0 {
		return from, false
	}
	to := g.arena[j].id
	if vis != nil && !vis.Visible(to) {
		return from, false
	}
	return to, true
}

// Neighbor returns the compiled neighbor in the given direction,
// ignoring visibility.
func (g *Graph) Neighbor(from string, dir Direction) (string, bool) {
	i, ok := g.index[from]
	if !ok {
		return "", false
	}
	j := g.arena[i].next[dir]
	if j < 0 {
		return "", false
	}
	return g.arena[j].id, true
}

// First returns the first focusable id in document order visible under
// vis. A nil vis counts everything as visible.
func (g *Graph) First(vis Visibility) (string, bool) {
	for _, a := range g.arena {
		if vis == nil || vis.Visible(a.id) {
			return a.id, true
		}
	}
	return "", false
}

// Contains reports whether id names a focusable in this graph.
func (g *Graph) Contains(id string) bool {
	_, ok := g.index[id]
	return ok
}

// IDs returns every focusable id in document order.
func (g *Graph) IDs() []string {
	ids := make([]string, len(g.arena))
	for i, a := range g.arena {
		ids[i] = a.id
	}
	return ids
}

// Len returns the number of focusable nodes in the graph.
func (g *Graph) Len() int {
	return len(g.arena)
}
