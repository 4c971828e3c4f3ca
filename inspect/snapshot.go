package inspect

import (
	"encoding/json"
	"fmt"

	"github.com/padmenu/padmenu/render"
	"github.com/padmenu/padmenu/store"
	"github.com/zclconf/go-cty/cty"
	ctyjson "github.com/zclconf/go-cty/cty/json"
)

// ElementView is the JSON projection of one rendered element.
type ElementView struct {
	ID        string          `json:"id,omitempty"`
	Tag       string          `json:"tag"`
	Depth     int             `json:"depth"`
	Text      string          `json:"text,omitempty"`
	Value     json.RawMessage `json:"value,omitempty"`
	Checked   bool            `json:"checked,omitempty"`
	Focusable bool            `json:"focusable,omitempty"`
	Focused   bool            `json:"focused,omitempty"`
}

// Snapshot is the full debug view of one frame: the screen identity,
// the store contents, and every element the frame kept.
type Snapshot struct {
	Screen   string                     `json:"screen"`
	Revision uint64                     `json:"revision"`
	Focus    string                     `json:"focus,omitempty"`
	State    map[string]json.RawMessage `json:"state"`
	Elements []ElementView              `json:"elements"`
}

// Capture projects a rendered frame and its store into a Snapshot.
func Capture(screenName, focus string, f *render.Frame, st *store.Store) (*Snapshot, error) {
	snap := &Snapshot{
		Screen:   screenName,
		Revision: f.Revision(),
		Focus:    focus,
		State:    make(map[string]json.RawMessage, st.Len()),
	}

	for key, val := range st.Snapshot() {
		raw, err := ctyjson.Marshal(val, val.Type())
		if err != nil {
			return nil, fmt.Errorf("marshal state key %q: %w", key, err)
		}
		snap.State[key] = raw
	}

	for _, el := range f.Elements() {
		view := ElementView{
			ID:        el.ID(),
			Tag:       el.Tag(),
			Depth:     el.Depth,
			Text:      el.Text,
			Checked:   el.Checked,
			Focusable: el.Focusable,
			Focused:   el.ID() != "" && el.ID() == focus,
		}
		if el.Value != cty.NilVal {
			raw, err := ctyjson.Marshal(el.Value, el.Value.Type())
			if err != nil {
				return nil, fmt.Errorf("marshal value of %q: %w", el.ID(), err)
			}
			view.Value = raw
		}
		snap.Elements = append(snap.Elements, view)
	}
	return snap, nil
}
