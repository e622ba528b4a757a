// Package spec loads and models the API spec documents the inso
// commands operate on. A document is a YAML or JSON file describing a
// service and the operations it exposes.
package spec

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/Lisiadito/insomnia/internal/errors"
	"gopkg.in/yaml.v3"
)

// Default file names probed when no identifier is given and the config
// file does not name a spec.
var defaultSpecNames = []string{"spec.yaml", "spec.yml", "spec.json"}

// Document is a parsed spec file.
type Document struct {
	Name       string      `yaml:"name"`
	Version    string      `yaml:"version"`
	Operations []Operation `yaml:"operations"`

	// Raw holds the full parsed file contents for export and for
	// consumers of keys this model does not interpret.
	Raw map[string]interface{} `yaml:"-"`

	// Path is the file the document was loaded from.
	Path string `yaml:"-"`
}

// Operation is a single callable endpoint described by the spec.
type Operation struct {
	ID      string            `yaml:"id"`
	Method  string            `yaml:"method"`
	Path    string            `yaml:"path"`
	Headers map[string]string `yaml:"headers"`
	Expect  Expectation       `yaml:"expect"`
}

// Expectation describes what a test run asserts about an operation.
type Expectation struct {
	// Status is the expected HTTP status code; 0 means "any 2xx".
	Status int `yaml:"status"`
}

// Load reads and parses the spec document at path.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.WrapWithCode(err, errors.ErrSpec,
				"Spec file not found: "+path,
				"Check the path or pass a spec identifier")
		}
		return nil, errors.WrapWithCode(err, errors.ErrSpec,
			"Cannot read spec file: "+path,
			"Check file permissions")
	}

	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrSpec,
			"Could not parse spec: "+path,
			"Check the YAML or JSON syntax")
	}

	var raw map[string]interface{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrSpec,
			"Could not parse spec: "+path,
			"Check the YAML or JSON syntax")
	}

	doc.Raw = raw
	doc.Path = path
	return &doc, nil
}

// Resolve turns a spec identifier into a loaded document. The lookup
// order is: the identifier itself (relative paths resolved against
// workingDir), the config file's `spec:` entry, then the default file
// names in workingDir.
func Resolve(identifier, workingDir, configSpec string) (*Document, error) {
	if identifier != "" {
		return Load(resolvePath(identifier, workingDir))
	}

	if configSpec != "" {
		return Load(resolvePath(configSpec, workingDir))
	}

	for _, name := range defaultSpecNames {
		path := resolvePath(name, workingDir)
		if _, err := os.Stat(path); err == nil {
			return Load(path)
		}
	}

	return nil, errors.New(errors.ErrSpec,
		"No spec file found",
		fmt.Sprintf("Pass a spec path, set 'spec:' in .insorc.yaml, or create one of: %v", defaultSpecNames))
}

// resolvePath resolves relative paths against workingDir.
func resolvePath(path, workingDir string) string {
	if filepath.IsAbs(path) || workingDir == "" {
		return path
	}
	return filepath.Join(workingDir, path)
}
