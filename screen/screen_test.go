package screen

import (
	"context"
	"testing"

	"github.com/padmenu/padmenu/dispatch"
	"github.com/padmenu/padmenu/internal/testutil"
	"github.com/padmenu/padmenu/menu"
	"github.com/padmenu/padmenu/mml"
	"github.com/padmenu/padmenu/nav"
	"github.com/padmenu/padmenu/render"
	"github.com/padmenu/padmenu/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

const generalMML = `
<screen>
  <panel id="options">
    <label id="bgm_label">Background Music: {{bgm_volume}}%</label>
    <slider id="bgm_volume_input" data-value="bgm_volume" min="0" max="100" step="5"
            data-event-focus-gain="set_cur_config(0)"
            style="nav-down: #lhb_on_input"/>
    <radio id="lhb_on_input" name="lhb" value="on" data-checked="lhb"
           data-event-focus-gain="set_cur_config(1)"
           data-event-value-changed='play_sound("toggle")'
           style="nav-up: #bgm_volume_input; nav-right: #lhb_off_input"/>
    <radio id="lhb_off_input" name="lhb" value="off" data-checked="lhb"
           data-event-focus-gain="set_cur_config(1)"
           data-event-value-changed='play_sound("toggle")'
           style="nav-up: #bgm_volume_input; nav-left: #lhb_on_input"/>
  </panel>
  <panel id="descriptions">
    <label id="desc_0" data-if="cur_config_index == 0">Adjusts the background music volume.</label>
    <label id="desc_1" data-if="cur_config_index == 1">Beeps when your health is low.</label>
  </panel>
</screen>`

type recorder struct {
	sounds []string
}

func newTable(rec *recorder) *dispatch.Table {
	table := dispatch.NewTable()
	table.Register("set_cur_config", func(_ context.Context, call dispatch.Call) error {
		call.Store.Set("cur_config_index", call.Args[0])
		return nil
	})
	table.Register("play_sound", func(_ context.Context, call dispatch.Call) error {
		rec.sounds = append(rec.sounds, call.Args[0].AsString())
		return nil
	})
	return table
}

func newGeneralScreen(t *testing.T) (*Screen, *recorder) {
	t.Helper()
	tmpl, err := mml.Compile("general.mml", []byte(generalMML))
	require.NoError(t, err)

	st := store.New()
	st.Seed(map[string]cty.Value{
		"bgm_volume": cty.NumberIntVal(40),
		"lhb":        cty.StringVal("on"),
	})

	rec := &recorder{}
	return New("general", tmpl, st, newTable(rec)), rec
}

func text(t *testing.T, sc *Screen, id string) string {
	t.Helper()
	el, ok := sc.Frame().Element(id)
	require.True(t, ok, "element %q not in frame", id)
	return el.Text
}

func TestStep_InitialFocusAndDescription(t *testing.T) {
	sc, _ := newGeneralScreen(t)
	ctx, _ := testutil.NewContext(t)

	f := sc.Step(ctx, Input{})
	assert.Equal(t, "bgm_volume_input", sc.Focus())

	// The focus-gain handler wrote cur_config_index before this frame's
	// render, so the matching description is already visible.
	assert.True(t, f.Visible("desc_0"))
	assert.False(t, f.Visible("desc_1"))
	assert.Equal(t, "Background Music: 40%", text(t, sc, "bgm_label"))
}

func TestStep_ValueChangedRoundTrip(t *testing.T) {
	sc, _ := newGeneralScreen(t)
	ctx, _ := testutil.NewContext(t)

	sc.Step(ctx, Input{})
	sc.Step(ctx, Input{Events: []dispatch.Event{{
		Kind:   menu.EventValueChanged,
		NodeID: "bgm_volume_input",
		Value:  cty.NumberIntVal(55),
	}}})

	assert.Equal(t, float64(55), sc.Store().Number("bgm_volume"))
	assert.Equal(t, "Background Music: 55%", text(t, sc, "bgm_label"))

	el, ok := sc.Frame().Element("bgm_volume_input")
	require.True(t, ok)
	assert.True(t, el.Value.RawEquals(cty.NumberIntVal(55)))
}

func TestStep_DescriptionFollowsFocus(t *testing.T) {
	sc, _ := newGeneralScreen(t)
	ctx, _ := testutil.NewContext(t)

	sc.Step(ctx, Input{})
	f := sc.Step(ctx, Input{Moves: []nav.Direction{nav.Down}})

	assert.Equal(t, "lhb_on_input", sc.Focus())
	assert.False(t, f.Visible("desc_0"))
	assert.True(t, f.Visible("desc_1"))
	assert.Equal(t, "Beeps when your health is low.", text(t, sc, "desc_1"))
}

func TestStep_RadioActivationKeepsExactlyOneChecked(t *testing.T) {
	sc, rec := newGeneralScreen(t)
	ctx, _ := testutil.NewContext(t)

	f := sc.Step(ctx, Input{})
	on, _ := f.Element("lhb_on_input")
	off, _ := f.Element("lhb_off_input")
	require.True(t, on.Checked)
	require.False(t, off.Checked)

	f = sc.Step(ctx, Input{Events: []dispatch.Event{{
		Kind:   menu.EventValueChanged,
		NodeID: "lhb_off_input",
	}}})

	on, _ = f.Element("lhb_on_input")
	off, _ = f.Element("lhb_off_input")
	assert.False(t, on.Checked)
	assert.True(t, off.Checked)
	assert.Equal(t, "off", sc.Store().String("lhb"))
	assert.Equal(t, []string{"toggle"}, rec.sounds)
}

func TestStep_NoNeighborLeavesFocusUnchanged(t *testing.T) {
	sc, _ := newGeneralScreen(t)
	ctx, _ := testutil.NewContext(t)

	sc.Step(ctx, Input{})
	require.Equal(t, "bgm_volume_input", sc.Focus())

	sc.Step(ctx, Input{Moves: []nav.Direction{nav.Up}})
	assert.Equal(t, "bgm_volume_input", sc.Focus())

	sc.Step(ctx, Input{Moves: []nav.Direction{nav.Left}})
	assert.Equal(t, "bgm_volume_input", sc.Focus())
}

func TestStep_MultipleMovesInOneFrame(t *testing.T) {
	sc, _ := newGeneralScreen(t)
	ctx, _ := testutil.NewContext(t)

	sc.Step(ctx, Input{})
	sc.Step(ctx, Input{Moves: []nav.Direction{nav.Down, nav.Right}})
	assert.Equal(t, "lhb_off_input", sc.Focus())
}

func TestStep_InitialFocusPreference(t *testing.T) {
	sc, _ := newGeneralScreen(t)
	ctx, _ := testutil.NewContext(t)

	sc.SetInitialFocus("lhb_off_input")
	f := sc.Step(ctx, Input{})

	assert.Equal(t, "lhb_off_input", sc.Focus())
	assert.True(t, f.Visible("desc_1"), "focus-gain handler of the preferred node must run")
}

func TestStep_InitialFocusFallsBackToDocumentOrder(t *testing.T) {
	sc, _ := newGeneralScreen(t)
	ctx, _ := testutil.NewContext(t)

	sc.SetInitialFocus("no_such_node")
	sc.Step(ctx, Input{})
	assert.Equal(t, "bgm_volume_input", sc.Focus())
}

func TestStep_NoFocusablesIsFine(t *testing.T) {
	tmpl, err := mml.Compile("static.mml", []byte(`<screen><label id="l">Hello</label></screen>`))
	require.NoError(t, err)
	sc := New("static", tmpl, store.New(), dispatch.NewTable())
	ctx, _ := testutil.NewContext(t)

	f := sc.Step(ctx, Input{Moves: []nav.Direction{nav.Down}})
	assert.Equal(t, "", sc.Focus())
	assert.True(t, f.Visible("l"))
}

func TestStep_FocusReseatsWhenNodeDisappears(t *testing.T) {
	src := `
<screen>
  <checkbox id="toggle_input" data-value="show_advanced" style="nav-down: #advanced_input"/>
  <panel data-if="show_advanced">
    <slider id="advanced_input" data-value="sensitivity" style="nav-up: #toggle_input"/>
  </panel>
</screen>`
	tmpl, err := mml.Compile("advanced.mml", []byte(src))
	require.NoError(t, err)

	st := store.New()
	st.Seed(map[string]cty.Value{
		"show_advanced": cty.True,
		"sensitivity":   cty.NumberIntVal(3),
	})
	sc := New("advanced", tmpl, st, dispatch.NewTable())
	ctx, _ := testutil.NewContext(t)

	sc.Step(ctx, Input{})
	sc.Step(ctx, Input{Moves: []nav.Direction{nav.Down}})
	require.Equal(t, "advanced_input", sc.Focus())

	// Unchecking the toggle hides the focused slider; this frame ends
	// with no focus held.
	f := sc.Step(ctx, Input{Events: []dispatch.Event{{
		Kind:   menu.EventValueChanged,
		NodeID: "toggle_input",
		Value:  cty.False,
	}}})
	assert.False(t, f.Visible("advanced_input"))
	assert.Equal(t, "", sc.Focus())

	// The next step seats focus on the first visible focusable again.
	sc.Step(ctx, Input{})
	assert.Equal(t, "toggle_input", sc.Focus())
}

func TestStep_NestedStepRejected(t *testing.T) {
	src := `<screen><button id="reenter_button" data-event-value-changed="reenter()"/></screen>`
	tmpl, err := mml.Compile("reenter.mml", []byte(src))
	require.NoError(t, err)

	var sc *Screen
	var nested *render.Frame
	table := dispatch.NewTable()
	table.Register("reenter", func(ctx context.Context, _ dispatch.Call) error {
		nested = sc.Step(ctx, Input{})
		return nil
	})

	sc = New("reenter", tmpl, store.New(), table)
	ctx, buf := testutil.NewContext(t)

	first := sc.Step(ctx, Input{})
	second := sc.Step(ctx, Input{Events: []dispatch.Event{{
		Kind:   menu.EventValueChanged,
		NodeID: "reenter_button",
	}}})

	require.NotNil(t, nested)
	assert.Same(t, first, nested, "nested step must return the previous frame untouched")
	assert.NotNil(t, second)
	assert.Contains(t, buf.String(), "Rejecting nested step")
}

func TestStep_MutationsVisibleAtThisFramesRender(t *testing.T) {
	src := `
<screen>
  <button id="bump_button" data-event-value-changed="bump()"/>
  <label id="count_label">Pressed {{presses}} times</label>
</screen>`
	tmpl, err := mml.Compile("bump.mml", []byte(src))
	require.NoError(t, err)

	st := store.New()
	st.Set("presses", cty.NumberIntVal(0))

	table := dispatch.NewTable()
	table.Register("bump", func(_ context.Context, call dispatch.Call) error {
		call.Store.Set("presses", cty.NumberIntVal(int64(call.Store.Number("presses"))+1))
		return nil
	})

	sc := New("bump", tmpl, st, table)
	ctx, _ := testutil.NewContext(t)

	sc.Step(ctx, Input{})
	sc.Step(ctx, Input{Events: []dispatch.Event{{
		Kind:   menu.EventValueChanged,
		NodeID: "bump_button",
	}}})

	assert.Equal(t, "Pressed 1 times", text(t, sc, "count_label"))
}
