package export

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/Lisiadito/insomnia/internal/spec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDoc() *spec.Document {
	return &spec.Document{
		Name: "petstore",
		Raw: map[string]interface{}{
			"name":    "petstore",
			"version": "1.0.0",
			"operations": []interface{}{
				map[string]interface{}{"id": "listPets", "method": "GET", "path": "/pets"},
			},
		},
	}
}

func TestFormatForPath(t *testing.T) {
	tests := []struct {
		path string
		want Format
	}{
		{"", FormatJSON},
		{"out.json", FormatJSON},
		{"out.yaml", FormatYAML},
		{"out.yml", FormatYAML},
		{"out.YAML", FormatYAML},
		{"out.txt", FormatJSON},
		{"dir/spec.yaml", FormatYAML},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatForPath(tt.path), tt.path)
	}
}

func TestRender_JSON(t *testing.T) {
	var buf bytes.Buffer
	err := Render(&buf, testDoc(), FormatJSON)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "petstore", decoded["name"])
	assert.Equal(t, "1.0.0", decoded["version"])
}

func TestRender_YAML(t *testing.T) {
	var buf bytes.Buffer
	err := Render(&buf, testDoc(), FormatYAML)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "petstore", decoded["name"])
}

func TestRender_UnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	err := Render(&buf, testDoc(), Format("toml"))
	assert.Error(t, err)
}

func TestWriteFile_Stdout(t *testing.T) {
	var buf bytes.Buffer
	err := WriteFile(&buf, testDoc(), "")
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "petstore", decoded["name"])
}

func TestWriteFile_CreatesDirectories(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "out", "spec.yaml")

	err := WriteFile(nil, testDoc(), path)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, yaml.Unmarshal(data, &decoded))
	assert.Equal(t, "petstore", decoded["name"])
}

func TestWriteFile_JSONByExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "spec.json")

	require.NoError(t, WriteFile(nil, testDoc(), path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "petstore", decoded["name"])
}

func TestWriteFile_OverwritesExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "spec.json")

	require.NoError(t, WriteFile(nil, testDoc(), path))
	require.NoError(t, WriteFile(nil, testDoc(), path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "petstore", decoded["name"])
}
