package plan

import "fmt"

// UnclassifiedPolicy decides what happens to reference-holding fields that
// carry no marker.
type UnclassifiedPolicy string

const (
	// PolicyShared copies unmarked fields as shared references and reports a
	// suggestion (or a warning when the field type is cloneable).
	PolicyShared UnclassifiedPolicy = "shared"
	// PolicyError refuses to generate code for types with unmarked fields.
	PolicyError UnclassifiedPolicy = "error"
)

// Config holds resolution configuration.
type Config struct {
	// Unclassified is the policy for unmarked reference-holding fields.
	Unclassified UnclassifiedPolicy
	// Tag is the struct tag key markers are read from, used in suggestions.
	Tag string
}

// DefaultConfig returns the default resolution configuration.
func DefaultConfig() Config {
	return Config{
		Unclassified: PolicyShared,
		Tag:          "clone",
	}
}

// Validate checks the configuration values.
func (c Config) Validate() error {
	switch c.Unclassified {
	case PolicyShared, PolicyError:
		return nil
	default:
		return fmt.Errorf("unknown unclassified policy %q (want %q or %q)",
			c.Unclassified, PolicyShared, PolicyError)
	}
}
