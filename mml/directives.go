package mml

import (
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/padmenu/padmenu/expr"
	"github.com/padmenu/padmenu/menu"
	"github.com/zclconf/go-cty/cty"
)

const (
	attrIf      = "data-if"
	attrValue   = "data-value"
	attrChecked = "data-checked"
	eventPrefix = "data-event-"
	dataPrefix  = "data-"
)

// buildNode turns a start element into a template node, splitting its
// attribute set into directives and opaque presentation data.
func buildNode(source string, start xml.StartElement) (*menu.Node, error) {
	n := &menu.Node{Tag: start.Name.Local}

	fail := func(format string, args ...any) error {
		detail := fmt.Sprintf(format, args...)
		return &menu.MalformedTemplateError{Source: source, Detail: fmt.Sprintf("element <%s>: %s", n.Tag, detail)}
	}

	for _, a := range start.Attr {
		name := a.Name.Local
		val := a.Value

		switch {
		case name == "id":
			n.ID = val
			n.Attrs = append(n.Attrs, menu.Attr{Name: name, Value: val})

		case name == attrIf:
			c, err := expr.Compile(val)
			if err != nil {
				return nil, fail("invalid %s expression: %v", attrIf, err)
			}
			n.If = c

		case name == attrValue:
			if !validKey(val) {
				return nil, fail("%s key %q is not a valid state key", attrValue, val)
			}
			n.Value = val

		case name == attrChecked:
			if !validKey(val) {
				return nil, fail("%s key %q is not a valid state key", attrChecked, val)
			}
			n.Checked = &menu.CheckedBinding{Key: val}

		case strings.HasPrefix(name, eventPrefix):
			kind, ok := menu.ParseEventKind(strings.TrimPrefix(name, eventPrefix))
			if !ok {
				return nil, fail("unknown event kind in directive %q", name)
			}
			call, err := parseCall(val)
			if err != nil {
				return nil, fail("invalid handler call in %q: %v", name, err)
			}
			if n.Events == nil {
				n.Events = make(map[menu.EventKind]menu.CallExpr)
			}
			n.Events[kind] = call

		case strings.HasPrefix(name, dataPrefix):
			return nil, fail("unknown directive %q", name)

		case name == "style":
			hints, err := parseNavHints(val)
			if err != nil {
				return nil, fail("%v", err)
			}
			n.Nav = hints
			n.Attrs = append(n.Attrs, menu.Attr{Name: name, Value: val})

		default:
			n.Attrs = append(n.Attrs, menu.Attr{Name: name, Value: val})
		}
	}

	if n.Checked != nil {
		group, ok := n.Attr("name")
		if !ok || group == "" {
			return nil, fail("%s requires a name attribute for its radio group", attrChecked)
		}
		lit, ok := n.Attr("value")
		if !ok {
			return nil, fail("%s requires a value attribute for its literal", attrChecked)
		}
		n.Checked.Group = group
		n.Checked.Literal = literalValue(lit)
	}

	return n, nil
}

// parseCall parses a handler attribute value like `set_cur_config(1)` or
// `play_sound("toggle")`. Arguments must be scalar literals; they are
// evaluated once here and never again.
func parseCall(src string) (menu.CallExpr, error) {
	e, diags := hclsyntax.ParseExpression([]byte(src), "call", hcl.InitialPos)
	if diags.HasErrors() {
		return menu.CallExpr{}, fmt.Errorf("parse %q: %s", src, diags.Error())
	}
	call, ok := e.(*hclsyntax.FunctionCallExpr)
	if !ok {
		return menu.CallExpr{}, fmt.Errorf("%q is not a handler call", src)
	}

	args := make([]cty.Value, 0, len(call.Args))
	for _, argExpr := range call.Args {
		// Evaluating with no context admits literals only; anything that
		// reads state fails here, at compile time.
		v, diags := argExpr.Value(nil)
		if diags.HasErrors() || !v.IsWhollyKnown() || v.IsNull() {
			return menu.CallExpr{}, fmt.Errorf("argument in %q must be a literal", src)
		}
		if t := v.Type(); !t.Equals(cty.Number) && !t.Equals(cty.String) && !t.Equals(cty.Bool) {
			return menu.CallExpr{}, fmt.Errorf("argument in %q must be a number, string, or bool", src)
		}
		args = append(args, v)
	}
	return menu.CallExpr{Func: call.Name, Args: args}, nil
}

// parseNavHints extracts the nav-* properties from a style attribute.
// Non-navigation properties are presentation data and pass through
// untouched; the style attribute itself stays on the node either way.
func parseNavHints(style string) (menu.NavHints, error) {
	var h menu.NavHints
	for _, entry := range strings.Split(style, ";") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		prop, val, ok := strings.Cut(entry, ":")
		if !ok {
			continue
		}
		prop = strings.TrimSpace(prop)
		val = strings.TrimSpace(val)

		var slot *string
		switch prop {
		case "nav-up":
			slot = &h.Up
		case "nav-down":
			slot = &h.Down
		case "nav-left":
			slot = &h.Left
		case "nav-right":
			slot = &h.Right
		default:
			continue
		}

		switch {
		case val == "none" || val == "auto":
			// Explicit "no designer-authored edge"; same as absent.
		case strings.HasPrefix(val, "#") && len(val) > 1:
			*slot = val[1:]
		default:
			return menu.NavHints{}, fmt.Errorf("navigation target in %q must be #id, none, or auto", entry)
		}
	}
	return h, nil
}

// literalValue types a checked-binding literal the way seeds are typed:
// booleans and numbers when the text reads as one, strings otherwise.
func literalValue(s string) cty.Value {
	switch s {
	case "true":
		return cty.True
	case "false":
		return cty.False
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return cty.NumberFloatVal(f)
	}
	return cty.StringVal(s)
}
