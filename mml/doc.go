// Package mml compiles menu markup into menu.Template trees.
//
// MML is a small tag-based format for gamepad-navigable menus. Elements
// carry plain presentation attributes plus a handful of directives the
// engine interprets:
//
//	<screen>
//	  <label>Background Music: {{bgm_volume}}%</label>
//	  <slider id="bgm_volume_input" data-value="bgm_volume" min="0" max="100"
//	          data-event-focus-gain="set_cur_config(0)"
//	          style="nav-down: #lhb_on_input"/>
//	  <radio id="lhb_on_input" name="lhb" value="on" data-checked="lhb"
//	         style="nav-up: #bgm_volume_input; nav-right: #lhb_off_input"/>
//	  <label data-if="cur_config_index == 0">Adjusts the music volume.</label>
//	</screen>
//
// Recognized directives are `data-if`, `data-value`, `data-checked` (with
// its companion name/value attributes), `data-event-<kind>`, `{{key}}`
// markers in text content, and `nav-up/down/left/right` properties inside
// the style attribute. Any other attribute is opaque presentation data and
// is preserved untouched; an unrecognized attribute inside the data-*
// namespace, however, is a malformed template. Compilation is pure and
// deterministic, and on failure no partial tree is returned.
package mml
