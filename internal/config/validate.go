package config

import (
	"errors"
	"fmt"
	"go/token"
	"path/filepath"
	"strings"

	"clonegen/internal/analyze"
	"clonegen/internal/plan"
)

// Validate checks the configuration values. All problems are reported at
// once.
func (c *Config) Validate() error {
	var errs []error

	if c.Version != "1" {
		errs = append(errs, fmt.Errorf("unsupported version %q", c.Version))
	}

	switch plan.UnclassifiedPolicy(c.Unclassified) {
	case plan.PolicyShared, plan.PolicyError:
	default:
		errs = append(errs, fmt.Errorf("unclassified: unknown policy %q (want %q or %q)",
			c.Unclassified, plan.PolicyShared, plan.PolicyError))
	}

	if c.Tag == "" || strings.ContainsAny(c.Tag, " \t:\"`") {
		errs = append(errs, fmt.Errorf("tag: %q is not a valid struct tag key", c.Tag))
	}

	if c.Hook != HookDisabled && !token.IsIdentifier(c.Hook) {
		errs = append(errs, fmt.Errorf("hook: %q is not a method name", c.Hook))
	}

	if filepath.Base(c.Output) != c.Output || filepath.Ext(c.Output) != ".go" || strings.HasSuffix(c.Output, "_test.go") {
		errs = append(errs, fmt.Errorf("output: %q must be a plain .go file name", c.Output))
	}

	if c.Runtime == "" {
		errs = append(errs, errors.New("runtime: import path is empty"))
	}

	for _, vt := range c.ValueTypes {
		if i := strings.LastIndex(vt, "."); i <= 0 || i == len(vt)-1 {
			errs = append(errs, fmt.Errorf("value_types: %q is not of the form importpath.Name", vt))
		}
	}

	seen := make(map[string]bool, len(c.Types))

	for i, tc := range c.Types {
		if tc.Name == "" {
			errs = append(errs, fmt.Errorf("types[%d]: name is empty", i))

			continue
		}

		if seen[tc.Name] {
			errs = append(errs, fmt.Errorf("types[%d]: %s is listed twice", i, tc.Name))
		}

		seen[tc.Name] = true

		for field, marker := range tc.Fields {
			if marker != analyze.MarkerChild && marker != analyze.MarkerReference {
				errs = append(errs, fmt.Errorf("types[%d]: %s.%s: marker %q is neither %q nor %q",
					i, tc.Name, field, marker, analyze.MarkerChild, analyze.MarkerReference))
			}
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}

	return nil
}
