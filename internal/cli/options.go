package cli

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/Lisiadito/insomnia/internal/config"
)

// Options is the resolved option set for one command invocation.
// Precedence per key: an explicitly set flag wins over the handler's
// hard default; a key with neither is absent. The loaded config is
// attached whole, never merged flag-by-flag.
type Options struct {
	Values map[string]interface{}
	Config *config.Config
}

// resolveOptions walks the command's own and inherited flags and keeps
// only the ones the user actually set, layered over the handler's
// defaults.
func resolveOptions(cmd *cobra.Command, defaults map[string]interface{}, cfg *config.Config) *Options {
	values := make(map[string]interface{}, len(defaults))
	for k, v := range defaults {
		values[k] = v
	}

	collect := func(f *pflag.Flag) {
		values[f.Name] = flagValue(f)
	}
	// Visit only calls for flags that were explicitly set.
	cmd.Flags().Visit(collect)
	cmd.InheritedFlags().Visit(collect)

	return &Options{Values: values, Config: cfg}
}

// flagValue converts a set flag to a typed value.
func flagValue(f *pflag.Flag) interface{} {
	switch f.Value.Type() {
	case "bool":
		return f.Value.String() == "true"
	default:
		return f.Value.String()
	}
}

// GetString returns the string value for key, or fallback when the key
// is absent or not a string.
func (o *Options) GetString(key, fallback string) string {
	if v, ok := o.Values[key].(string); ok {
		return v
	}
	return fallback
}

// GetBool returns the bool value for key, or fallback when the key is
// absent or not a bool.
func (o *Options) GetBool(key string, fallback bool) bool {
	if v, ok := o.Values[key].(bool); ok {
		return v
	}
	return fallback
}

// Has reports whether key is present at all.
func (o *Options) Has(key string) bool {
	_, ok := o.Values[key]
	return ok
}

// Snapshot renders the resolved options for inspection: the value map
// plus the attached config file under the reserved configFile entry.
func (o *Options) Snapshot() map[string]interface{} {
	out := make(map[string]interface{}, len(o.Values)+1)
	for k, v := range o.Values {
		out[k] = v
	}
	if o.Config != nil {
		out["configFile"] = map[string]interface{}{
			"path":     o.Config.Path,
			"contents": o.Config.Raw,
		}
	}
	return out
}

// loadOptions resolves the config file through the search chain and
// builds the option set for cmd.
func (a *app) loadOptions(cmd *cobra.Command, defaults map[string]interface{}) (*Options, error) {
	workingDir, err := a.workingDir()
	if err != nil {
		return nil, err
	}
	cfg, err := config.LoadOrDefault(a.flags.ConfigPath, workingDir, a.flags.AppDataDir)
	if err != nil {
		return nil, err
	}
	return resolveOptions(cmd, defaults, cfg), nil
}
