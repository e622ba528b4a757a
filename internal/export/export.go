// Package export renders a loaded spec document back out as JSON or
// YAML. The output format follows the destination file's extension;
// stdout gets JSON.
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Lisiadito/insomnia/internal/errors"
	"github.com/Lisiadito/insomnia/internal/spec"
)

// Format is an output encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatForPath picks the encoding for a destination path. Empty path
// means stdout, which is always JSON. Unknown extensions fall back to
// JSON as well.
func FormatForPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Render writes the document's raw content to w in the given format.
func Render(w io.Writer, doc *spec.Document, format Format) error {
	switch format {
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc.Raw); err != nil {
			return errors.WrapWithCode(err, errors.ErrExport, "failed to encode spec as YAML", "")
		}
		return enc.Close()
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(doc.Raw); err != nil {
			return errors.WrapWithCode(err, errors.ErrExport, "failed to encode spec as JSON", "")
		}
		return nil
	default:
		return errors.New(errors.ErrExport, fmt.Sprintf("unknown export format '%s'", format), "")
	}
}

// WriteFile renders the document to path, creating parent directories
// as needed. An empty path writes JSON to out (normally stdout).
func WriteFile(out io.Writer, doc *spec.Document, path string) error {
	if path == "" {
		return Render(out, doc, FormatJSON)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.WrapWithCode(err, errors.ErrExport, "failed to create output directory", "check permissions on the destination path")
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrExport, fmt.Sprintf("failed to create %s", path), "")
	}

	if err := Render(f, doc, FormatForPath(path)); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return errors.WrapWithCode(err, errors.ErrExport, fmt.Sprintf("failed to write %s", path), "")
	}
	return nil
}
