package mml

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/padmenu/padmenu/menu"
)

var keyPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// validKey reports whether s can serve as a state key.
func validKey(s string) bool {
	return keyPattern.MatchString(s)
}

// parseText splits a chunk of element text into literal and `{{key}}`
// interpolation spans. Whitespace-only chunks (indentation between
// elements) produce no spans at all.
func parseText(source, text string) ([]menu.TextSpan, error) {
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}

	var spans []menu.TextSpan
	rest := text
	for {
		open := strings.Index(rest, "{{")
		if open < 0 {
			if rest != "" {
				spans = append(spans, menu.TextSpan{Literal: rest})
			}
			return spans, nil
		}
		if open > 0 {
			spans = append(spans, menu.TextSpan{Literal: rest[:open]})
		}
		end := strings.Index(rest[open:], "}}")
		if end < 0 {
			return nil, &menu.MalformedTemplateError{
				Source: source,
				Detail: fmt.Sprintf("unterminated interpolation in %q", strings.TrimSpace(text)),
			}
		}
		key := strings.TrimSpace(rest[open+2 : open+end])
		if !validKey(key) {
			return nil, &menu.MalformedTemplateError{
				Source: source,
				Detail: fmt.Sprintf("interpolation key %q is not a valid state key", key),
			}
		}
		spans = append(spans, menu.TextSpan{Key: key})
		rest = rest[open+end+2:]
	}
}
