package nav

import (
	"testing"

	"github.com/padmenu/padmenu/menu"
	"github.com/padmenu/padmenu/mml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const columnMML = `
<screen>
  <slider id="a" data-value="v" style="nav-down: #b"/>
  <radio id="b" name="g" value="x" data-checked="k" style="nav-up: #a; nav-down: #c"/>
  <button id="c" style="nav-up: #b; nav-right: #ghost"/>
</screen>`

// visibleSet is a map-backed Visibility for tests.
type visibleSet map[string]bool

func (s visibleSet) Visible(id string) bool { return s[id] }

func build(t *testing.T, src string) *Graph {
	t.Helper()
	tmpl, err := mml.Compile("test.mml", []byte(src))
	require.NoError(t, err)
	return Build(tmpl)
}

func everything(g *Graph) visibleSet {
	s := visibleSet{}
	for _, id := range g.IDs() {
		s[id] = true
	}
	return s
}

func TestDirection_String(t *testing.T) {
	assert.Equal(t, "up", Up.String())
	assert.Equal(t, "right", Right.String())
	assert.Equal(t, "direction(9)", Direction(9).String())
}

func TestParseDirection(t *testing.T) {
	testCases := []struct {
		input   string
		want    Direction
		wantErr bool
	}{
		{input: "up", want: Up},
		{input: "down", want: Down},
		{input: "left", want: Left},
		{input: "right", want: Right},
		{input: "UP", wantErr: true},
		{input: "", wantErr: true},
		{input: "north", wantErr: true},
	}
	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			got, err := ParseDirection(tc.input)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestBuild_DocumentOrder(t *testing.T) {
	g := build(t, columnMML)
	assert.Equal(t, []string{"a", "b", "c"}, g.IDs())
	assert.Equal(t, 3, g.Len())
	assert.True(t, g.Contains("b"))
	assert.False(t, g.Contains("ghost"))
}

func TestMove_FollowsHints(t *testing.T) {
	g := build(t, columnMML)
	vis := everything(g)

	to, moved := g.Move("a", Down, vis)
	assert.True(t, moved)
	assert.Equal(t, "b", to)

	to, moved = g.Move("b", Down, vis)
	assert.True(t, moved)
	assert.Equal(t, "c", to)

	to, moved = g.Move("c", Up, vis)
	assert.True(t, moved)
	assert.Equal(t, "b", to)
}

func TestMove_NoNeighborStaysPut(t *testing.T) {
	g := build(t, columnMML)
	vis := everything(g)

	to, moved := g.Move("a", Up, vis)
	assert.False(t, moved)
	assert.Equal(t, "a", to)

	to, moved = g.Move("c", Down, vis)
	assert.False(t, moved)
	assert.Equal(t, "c", to)
}

func TestMove_UnresolvedHintIsInert(t *testing.T) {
	g := build(t, columnMML)

	to, moved := g.Move("c", Right, everything(g))
	assert.False(t, moved)
	assert.Equal(t, "c", to)

	_, ok := g.Neighbor("c", Right)
	assert.False(t, ok)
}

func TestMove_InvisibleNeighborStaysPut(t *testing.T) {
	g := build(t, columnMML)
	vis := visibleSet{"a": true, "c": true}

	// b is hidden this frame. No skip-over: focus does not move at all.
	to, moved := g.Move("a", Down, vis)
	assert.False(t, moved)
	assert.Equal(t, "a", to)
}

func TestMove_UnknownOriginStaysPut(t *testing.T) {
	g := build(t, columnMML)
	to, moved := g.Move("nope", Down, everything(g))
	assert.False(t, moved)
	assert.Equal(t, "nope", to)
}

func TestNeighbor_IgnoresVisibility(t *testing.T) {
	g := build(t, columnMML)
	to, ok := g.Neighbor("a", Down)
	assert.True(t, ok)
	assert.Equal(t, "b", to)
}

func TestFirst(t *testing.T) {
	g := build(t, columnMML)

	id, ok := g.First(everything(g))
	assert.True(t, ok)
	assert.Equal(t, "a", id)

	id, ok = g.First(visibleSet{"b": true, "c": true})
	assert.True(t, ok)
	assert.Equal(t, "b", id)

	_, ok = g.First(visibleSet{})
	assert.False(t, ok)

	id, ok = g.First(nil)
	assert.True(t, ok)
	assert.Equal(t, "a", id)
}

func TestBuild_CyclesAreLegal(t *testing.T) {
	src := `
<screen>
  <button id="x" style="nav-right: #y"/>
  <button id="y" style="nav-right: #x"/>
</screen>`
	g := build(t, src)
	vis := everything(g)

	to, moved := g.Move("x", Right, vis)
	require.True(t, moved)
	assert.Equal(t, "y", to)
	to, moved = g.Move(to, Right, vis)
	require.True(t, moved)
	assert.Equal(t, "x", to)
}

func TestBuild_NavHintsParsedFromStyle(t *testing.T) {
	tmpl, err := mml.Compile("test.mml", []byte(columnMML))
	require.NoError(t, err)

	n, ok := tmpl.NodeByID("b")
	require.True(t, ok)
	assert.Equal(t, menu.NavHints{Up: "a", Down: "c"}, n.Nav)
}
