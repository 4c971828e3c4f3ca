package render

import (
	"context"
	"log/slog"
	"strings"

	"github.com/padmenu/padmenu/expr"
	"github.com/padmenu/padmenu/internal/ctxlog"
	"github.com/padmenu/padmenu/menu"
	"github.com/padmenu/padmenu/store"
	"github.com/zclconf/go-cty/cty"
)

// Renderer renders one compiled template. It holds no per-frame state, so
// a single Renderer serves a screen for its whole lifetime.
type Renderer struct {
	tmpl *menu.Template
}

// New returns a Renderer for tmpl.
func New(tmpl *menu.Template) *Renderer {
	return &Renderer{tmpl: tmpl}
}

// Render produces the frame for the current state. It reads the store once
// (a snapshot) and never writes it.
func (r *Renderer) Render(ctx context.Context, st *store.Store) *Frame {
	logger := ctxlog.FromContext(ctx)
	vars := st.Snapshot()

	f := &Frame{
		index:    make(map[string]*Element),
		revision: st.Revision(),
	}
	r.walk(logger, r.tmpl.Root, 0, vars, f)
	f.enforceSingleChecked(logger)
	return f
}

func (r *Renderer) walk(logger *slog.Logger, n *menu.Node, depth int, vars map[string]cty.Value, f *Frame) {
	if n.If != nil {
		visible, err := n.If.EvalBool(vars)
		if err != nil {
			logger.Debug("conditional failed, excluding subtree",
				"template", r.tmpl.Source, "node", nodeLabel(n), "expr", n.If.Source(), "error", err)
		}
		if !visible {
			return
		}
	}

	e := &Element{
		Node:      n,
		Depth:     depth,
		Focusable: n.Focusable(),
		Value:     cty.NilVal,
	}
	e.Text = r.resolveText(logger, n, vars)
	if n.Value != "" {
		if v, ok := vars[n.Value]; ok {
			e.Value = v
		}
	}
	if n.Checked != nil {
		if cur, ok := vars[n.Checked.Key]; ok {
			e.Checked = cur.RawEquals(n.Checked.Literal)
		}
	}

	f.elements = append(f.elements, e)
	if n.ID != "" {
		f.index[n.ID] = e
	}
	for _, c := range n.Children {
		r.walk(logger, c, depth+1, vars, f)
	}
}

// resolveText joins a node's spans, reading state for every interpolation.
// A key that is unset or has no display form renders as the empty
// placeholder rather than failing the frame.
func (r *Renderer) resolveText(logger *slog.Logger, n *menu.Node, vars map[string]cty.Value) string {
	if len(n.Text) == 0 {
		return ""
	}
	var b strings.Builder
	for _, span := range n.Text {
		if !span.Interpolation() {
			b.WriteString(span.Literal)
			continue
		}
		v, ok := vars[span.Key]
		if !ok {
			logger.Debug("interpolation key unset, rendering placeholder",
				"template", r.tmpl.Source, "node", nodeLabel(n), "key", span.Key)
			continue
		}
		s, err := expr.Display(v)
		if err != nil {
			logger.Debug("interpolation value has no display form, rendering placeholder",
				"template", r.tmpl.Source, "node", nodeLabel(n), "key", span.Key, "error", err)
			continue
		}
		b.WriteString(s)
	}
	return b.String()
}

func nodeLabel(n *menu.Node) string {
	if n.ID != "" {
		return n.Tag + "#" + n.ID
	}
	return n.Tag
}
