package mml

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/padmenu/padmenu/menu"
)

// Compile parses src into a compiled template. The source name appears in
// diagnostics only. On any failure the returned template is nil and the
// error unwraps to a *menu.MalformedTemplateError.
func Compile(source string, src []byte) (*menu.Template, error) {
	dec := xml.NewDecoder(bytes.NewReader(src))

	var root *menu.Node
	var stack []*menu.Node

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, syntaxError(source, err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if root != nil && len(stack) == 0 {
				return nil, &menu.MalformedTemplateError{Source: source, Detail: "multiple root elements"}
			}
			node, err := buildNode(source, t)
			if err != nil {
				return nil, err
			}
			if len(stack) == 0 {
				root = node
			} else {
				parent := stack[len(stack)-1]
				parent.Children = append(parent.Children, node)
			}
			stack = append(stack, node)

		case xml.EndElement:
			// The tokenizer guarantees this matches the innermost open
			// element; mismatches surface as syntax errors above.
			stack = stack[:len(stack)-1]

		case xml.CharData:
			text := string(t)
			if len(stack) == 0 {
				if strings.TrimSpace(text) != "" {
					return nil, &menu.MalformedTemplateError{Source: source, Detail: "text outside of root element"}
				}
				continue
			}
			spans, err := parseText(source, text)
			if err != nil {
				return nil, err
			}
			cur := stack[len(stack)-1]
			cur.Text = append(cur.Text, spans...)

		case xml.Comment, xml.ProcInst, xml.Directive:
			// Authoring noise; carries no meaning for the engine.
		}
	}

	if root == nil {
		return nil, &menu.MalformedTemplateError{Source: source, Detail: "empty template"}
	}
	return menu.NewTemplate(source, root)
}

// CompileFile reads and compiles a template from disk.
func CompileFile(path string) (*menu.Template, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read template: %w", err)
	}
	return Compile(path, src)
}

// syntaxError converts a tokenizer failure into the engine's compile error,
// keeping the line number when the decoder supplies one.
func syntaxError(source string, err error) error {
	var se *xml.SyntaxError
	if errors.As(err, &se) {
		return &menu.MalformedTemplateError{Source: source, Line: se.Line, Detail: se.Msg}
	}
	return &menu.MalformedTemplateError{Source: source, Detail: err.Error()}
}
