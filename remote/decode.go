package remote

import (
	"fmt"

	"github.com/padmenu/padmenu/dispatch"
	"github.com/padmenu/padmenu/menu"
	"github.com/padmenu/padmenu/nav"
	"github.com/zclconf/go-cty/cty"
)

// decodeEvent maps a socket.io payload into a dispatch.Event. Payloads
// arrive as JSON objects: {"kind": "...", "node": "...", "value": ...}
// with value optional.
func decodeEvent(raw any) (dispatch.Event, error) {
	obj, ok := raw.(map[string]any)
	if !ok {
		return dispatch.Event{}, fmt.Errorf("event payload must be an object, got %T", raw)
	}

	kindStr, _ := obj["kind"].(string)
	kind, ok := menu.ParseEventKind(kindStr)
	if !ok {
		return dispatch.Event{}, fmt.Errorf("unknown event kind %q", kindStr)
	}

	node, _ := obj["node"].(string)
	if node == "" {
		return dispatch.Event{}, fmt.Errorf("event payload missing node id")
	}

	ev := dispatch.Event{Kind: kind, NodeID: node}
	if payload, present := obj["value"]; present {
		val, err := goValue(payload)
		if err != nil {
			return dispatch.Event{}, fmt.Errorf("event value: %w", err)
		}
		ev.Value = val
	}
	return ev, nil
}

// decodeMove maps a payload into a direction. Both a bare string and
// {"dir": "..."} are accepted.
func decodeMove(raw any) (nav.Direction, error) {
	switch v := raw.(type) {
	case string:
		return nav.ParseDirection(v)
	case map[string]any:
		s, _ := v["dir"].(string)
		return nav.ParseDirection(s)
	}
	return 0, fmt.Errorf("move payload must be a string or an object, got %T", raw)
}

// goValue converts a decoded JSON scalar into its cty form.
func goValue(raw any) (cty.Value, error) {
	switch v := raw.(type) {
	case bool:
		return cty.BoolVal(v), nil
	case float64:
		return cty.NumberFloatVal(v), nil
	case string:
		return cty.StringVal(v), nil
	}
	return cty.NilVal, fmt.Errorf("unsupported scalar type %T", raw)
}
