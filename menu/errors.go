package menu

import "fmt"

// MalformedTemplateError is the single fatal error class of the engine: the
// template compiler refused the markup and produced no tree. It is fatal
// only to the screen being compiled; other screens are unaffected.
type MalformedTemplateError struct {
	// Source is the template name or file path.
	Source string
	// Line is 1-based where known, 0 otherwise.
	Line   int
	Detail string
}

func (e *MalformedTemplateError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("malformed template %s:%d: %s", e.Source, e.Line, e.Detail)
	}
	return fmt.Sprintf("malformed template %s: %s", e.Source, e.Detail)
}
