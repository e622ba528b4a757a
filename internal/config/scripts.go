package config

import (
	"sort"
	"strings"
)

// LookupScript returns the command line for a named script. A missing
// script is not an error here: the dispatcher treats it as a benign
// no-op, so the second return value just reports presence.
func LookupScript(cfg *Config, name string) (string, bool) {
	if cfg == nil || cfg.Scripts == nil {
		return "", false
	}
	command, ok := cfg.Scripts[name]
	if !ok || strings.TrimSpace(command) == "" {
		return "", false
	}
	return command, true
}

// ScriptNames returns the sorted script names defined in the config.
func ScriptNames(cfg *Config) []string {
	if cfg == nil || len(cfg.Scripts) == 0 {
		return nil
	}
	names := make([]string, 0, len(cfg.Scripts))
	for name := range cfg.Scripts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// EnvironmentNames returns the sorted environment ids defined in the config.
func EnvironmentNames(cfg *Config) []string {
	if cfg == nil || len(cfg.Environments) == 0 {
		return nil
	}
	names := make([]string, 0, len(cfg.Environments))
	for name := range cfg.Environments {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
