package config

import (
	"fmt"
	"strings"

	"github.com/Lisiadito/insomnia/internal/errors"
)

// reservedScriptNames are built-in command names a script must not
// shadow: the command tree always wins over the script runner, so a
// script with one of these names could never be invoked.
var reservedScriptNames = map[string]bool{
	"generate":   true,
	"run":        true,
	"lint":       true,
	"export":     true,
	"debug":      true,
	"version":    true,
	"help":       true,
	"completion": true,
}

// IsReservedScriptName reports whether name collides with a built-in command.
func IsReservedScriptName(name string) bool {
	return reservedScriptNames[name]
}

// Validate checks the loaded config for problems that would make
// script dispatch or test runs misbehave.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errors.New(errors.ErrConfig,
			"Config hasn't been loaded yet",
			"This is unexpected - load a config before validating it.")
	}

	for name, command := range cfg.Scripts {
		if IsReservedScriptName(name) {
			return errors.New(errors.ErrConfig,
				fmt.Sprintf("Script name '%s' shadows a built-in command", name),
				"Rename the script in your .insorc.yaml; built-in commands always win.")
		}
		if strings.TrimSpace(command) == "" {
			return errors.New(errors.ErrConfig,
				fmt.Sprintf("Script '%s' has an empty command", name),
				"Give it a command line to run, e.g. \"lint spec\".")
		}
	}

	for id, env := range cfg.Environments {
		if strings.TrimSpace(env.BaseURL) == "" {
			return errors.New(errors.ErrConfig,
				fmt.Sprintf("Environment '%s' has no baseUrl", id),
				"Add a baseUrl under environments."+id+" in your .insorc.yaml.")
		}
	}

	return nil
}
