package config

// CurrentConfigVersion is the schema version for the config file.
// Increment when making breaking changes to the config structure.
const CurrentConfigVersion = 1

// Config represents the complete .insorc.yaml configuration file.
//
// Only Scripts and a handful of well-known keys are interpreted by
// inso itself; everything else is opaque pass-through kept verbatim in
// Raw for the debug commands and config-dependent collaborators.
type Config struct {
	Version int `yaml:"version" mapstructure:"version"`

	// Scripts maps a script name to the command line it expands to.
	// Invoked as `inso <name> [...passthrough]`.
	Scripts map[string]string `yaml:"scripts" mapstructure:"scripts"`

	// Environments holds named targets for `inso run test --env <id>`.
	Environments map[string]Environment `yaml:"environments" mapstructure:"environments"`

	// Spec is the default spec document path used when a command is
	// invoked without an identifier argument.
	Spec string `yaml:"spec" mapstructure:"spec"`

	// Raw holds the parsed config file contents verbatim. It is never
	// merged flag-by-flag into resolved options; debug commands and
	// script lookup read into it directly.
	Raw map[string]interface{} `yaml:"-" mapstructure:"-"`

	// Path is the file the config was loaded from (empty for defaults).
	Path string `yaml:"-" mapstructure:"-"`
}

// Environment defines a target for test runs.
type Environment struct {
	// BaseURL is prepended to every operation path.
	BaseURL string `yaml:"baseUrl" mapstructure:"baseUrl"`

	// Headers are sent with every request in this environment.
	Headers map[string]string `yaml:"headers" mapstructure:"headers"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Version:      CurrentConfigVersion,
		Scripts:      make(map[string]string),
		Environments: make(map[string]Environment),
		Raw:          make(map[string]interface{}),
	}
}
