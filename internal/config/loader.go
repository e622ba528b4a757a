package config

import (
	"os"
	"path/filepath"

	"github.com/Lisiadito/insomnia/internal/errors"
	"github.com/spf13/viper"
)

// Config file names searched for in the working directory and its parents.
var configFileNames = []string{".insorc.yaml", ".insorc.yml", ".insorc.json"}

const (
	// AppDataDirName is the per-user app data directory (under the
	// OS config root) searched as the last resort.
	AppDataDirName = "inso"
	// AppDataConfigFile is the config file name inside the app data dir.
	AppDataConfigFile = "config.yaml"
)

// Load reads config from the specified path.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		if os.IsNotExist(err) {
			return nil, errors.WrapWithCode(err, errors.ErrConfig,
				"Config file not found: "+path,
				"Check the path passed with --config")
		}
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to read config file",
			"Check that "+path+" is valid YAML or JSON")
	}

	cfg := DefaultConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Invalid config format",
			"Check the syntax in "+path)
	}

	// Keep the parsed contents verbatim for debug dumps and opaque
	// pass-through consumers.
	cfg.Raw = v.AllSettings()
	cfg.Path = path

	return cfg, nil
}

// Find locates the config file using the search order:
// 1. Explicit path (from --config flag)
// 2. .insorc.{yaml,yml,json} in the working directory
// 3. Same names in parent directories (stops at git root or home)
// 4. <appDataDir>/config.yaml
//
// workingDir and appDataDir default to the current directory and the
// user config dir when empty. Returns the path to the config file, or
// empty string if not found.
func Find(explicit, workingDir, appDataDir string) (string, error) {
	// 1. Explicit path takes precedence
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			if os.IsNotExist(err) {
				return "", errors.WrapWithCode(err, errors.ErrConfig,
					"Specified config file not found: "+explicit,
					"Check the path is correct")
			}
			return "", errors.WrapWithCode(err, errors.ErrConfig,
				"Cannot access config file: "+explicit,
				"Check file permissions")
		}
		return explicit, nil
	}

	dir := workingDir
	if dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", errors.WrapWithCode(err, errors.ErrConfig,
				"Cannot determine working directory",
				"Check directory permissions or pass --workingDir")
		}
		dir = cwd
	}

	// 2. Working directory
	if path := findIn(dir); path != "" {
		return path, nil
	}

	// 3. Walk up through parent directories
	home, _ := os.UserHomeDir()
	for {
		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached filesystem root
			break
		}
		if home != "" && parent == home {
			// Don't go above home directory
			break
		}
		dir = parent

		if path := findIn(dir); path != "" {
			return path, nil
		}

		// Stop at git root
		if _, err := os.Stat(filepath.Join(dir, ".git")); err == nil {
			break
		}
	}

	// 4. App data directory
	dataDir := appDataDir
	if dataDir == "" {
		if root, err := os.UserConfigDir(); err == nil {
			dataDir = filepath.Join(root, AppDataDirName)
		}
	}
	if dataDir != "" {
		global := filepath.Join(dataDir, AppDataConfigFile)
		if _, err := os.Stat(global); err == nil {
			return global, nil
		}
	}

	return "", nil
}

// findIn returns the first config file present in dir, or "".
func findIn(dir string) string {
	for _, name := range configFileNames {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// LoadOrDefault loads config from the found path, or returns defaults
// if no config file exists. Commands that work without a config file
// (everything except script dispatch) go through here.
func LoadOrDefault(explicit, workingDir, appDataDir string) (*Config, error) {
	path, err := Find(explicit, workingDir, appDataDir)
	if err != nil {
		return nil, err
	}

	if path == "" {
		return DefaultConfig(), nil
	}

	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}
