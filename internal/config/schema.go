package config

// DefaultFile is the configuration file looked up when none is given.
const DefaultFile = "clonegen.yaml"

// HookDisabled as the hook name turns the extension point off.
const HookDisabled = "-"

// Config is the root structure of a clonegen.yaml file.
type Config struct {
	// Version is the schema version; only "1" exists.
	Version string `yaml:"version"`
	// Packages are the package patterns processed when none are given on the
	// command line.
	Packages []string `yaml:"packages,omitempty"`
	// Output is the name of the file generated into each package.
	Output string `yaml:"output,omitempty"`
	// Tag is the struct tag key holding clone markers.
	Tag string `yaml:"tag,omitempty"`
	// Hook is the name of the extension method called last by
	// FixOwnedFields. HookDisabled turns it off.
	Hook string `yaml:"hook,omitempty"`
	// Unclassified is the policy for reference fields without a marker:
	// "shared" or "error".
	Unclassified string `yaml:"unclassified,omitempty"`
	// Runtime is the import path of the clone runtime package.
	Runtime string `yaml:"runtime,omitempty"`
	// ValueTypes are named types copied by value even though they hold
	// references, written as "importpath.Name".
	ValueTypes []string `yaml:"value_types,omitempty"`
	// Types classifies untagged fields per type.
	Types []TypeConfig `yaml:"types,omitempty"`
	// DebugUnformatted writes the raw template output next to the target file
	// when it cannot be formatted.
	DebugUnformatted bool `yaml:"debug_unformatted,omitempty"`
}

// TypeConfig holds the marker overrides of one type.
type TypeConfig struct {
	// Name is "importpath.Name" or a bare type name.
	Name string `yaml:"name"`
	// Fields maps field names to a marker: "child" or "reference".
	Fields map[string]string `yaml:"fields"`
}
