package config

import (
	"clonegen/internal/analyze"
	"clonegen/internal/gen"
	"clonegen/internal/plan"
)

// AnalyzeOptions returns the options of the analysis stage.
func (c *Config) AnalyzeOptions() analyze.Options {
	opts := analyze.Options{
		Tag:        c.Tag,
		Hook:       c.Hook,
		ValueTypes: c.ValueTypes,
	}

	if opts.Hook == HookDisabled {
		opts.Hook = ""
	}

	if len(c.Types) > 0 {
		opts.Markers = make(map[string]map[string]string, len(c.Types))
		for _, tc := range c.Types {
			opts.Markers[tc.Name] = tc.Fields
		}
	}

	return opts
}

// PlanConfig returns the configuration of the resolution stage.
func (c *Config) PlanConfig() plan.Config {
	return plan.Config{
		Unclassified: plan.UnclassifiedPolicy(c.Unclassified),
		Tag:          c.Tag,
	}
}

// GeneratorConfig returns the configuration of the generation stage.
func (c *Config) GeneratorConfig() gen.GeneratorConfig {
	return gen.GeneratorConfig{
		Filename:         c.Output,
		RuntimePackage:   c.Runtime,
		DebugUnformatted: c.DebugUnformatted,
	}
}
