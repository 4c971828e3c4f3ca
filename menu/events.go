package menu

import (
	"strconv"
	"strings"

	"github.com/zclconf/go-cty/cty"
)

// EventKind identifies one of the fixed UI input signals a template can
// bind handlers to.
type EventKind string

const (
	EventHoverEnter   EventKind = "hover-enter"
	EventHoverLeave   EventKind = "hover-leave"
	EventFocusGain    EventKind = "focus-gain"
	EventFocusLoss    EventKind = "focus-loss"
	EventValueChanged EventKind = "value-changed"
)

// ParseEventKind maps the suffix of a data-event-* attribute to its kind.
func ParseEventKind(s string) (EventKind, bool) {
	switch k := EventKind(s); k {
	case EventHoverEnter, EventHoverLeave, EventFocusGain, EventFocusLoss, EventValueChanged:
		return k, true
	}
	return "", false
}

// CallExpr is the parsed form of an event handler attribute: a handler name
// plus literal arguments. Arguments are resolved once at compile time and
// never read state; that is what distinguishes handler calls from
// interpolation and conditional expressions.
type CallExpr struct {
	Func string
	Args []cty.Value
}

// String renders the call the way it was authored, for logs and errors.
func (c CallExpr) String() string {
	var b strings.Builder
	b.WriteString(c.Func)
	b.WriteByte('(')
	for i, a := range c.Args {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(literalString(a))
	}
	b.WriteByte(')')
	return b.String()
}

func literalString(v cty.Value) string {
	if v == cty.NilVal || v.IsNull() {
		return "null"
	}
	switch t := v.Type(); {
	case t.Equals(cty.String):
		return strconv.Quote(v.AsString())
	case t.Equals(cty.Number):
		return v.AsBigFloat().Text('f', -1)
	case t.Equals(cty.Bool):
		if v.True() {
			return "true"
		}
		return "false"
	}
	return v.Type().FriendlyName()
}
