package screenset

import "github.com/hashicorp/hcl/v2"

// SeedBlock holds the initial key/value attributes for a screen's store.
// Values must be literal scalars; they are evaluated with no variables.
type SeedBlock struct {
	Body hcl.Body `hcl:",remain"`
}

// ScreenBlock represents a `screen` block from a set manifest.
type ScreenBlock struct {
	Name         string     `hcl:"name,label"`
	Source       string     `hcl:"source"`
	Title        string     `hcl:"title,optional"`
	InitialFocus string     `hcl:"initial_focus,optional"`
	Seed         *SeedBlock `hcl:"seed,block"`
}

// SetConfig represents the top-level structure of a set manifest file.
type SetConfig struct {
	Entry   string         `hcl:"entry,optional"`
	Screens []*ScreenBlock `hcl:"screen,block"`
	Body    hcl.Body       `hcl:",remain"`
}
