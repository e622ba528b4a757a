package testrun

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/Lisiadito/insomnia/internal/logger"
	"github.com/Lisiadito/insomnia/internal/spec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// nullReporter swallows all events.
type nullReporter struct{}

func (nullReporter) Begin(name string, total int) {}
func (nullReporter) Report(result OpResult)       {}
func (nullReporter) End(summary Summary)          {}

func testServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/pets", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			w.WriteHeader(http.StatusCreated)
			return
		}
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("/broken", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	mux.HandleFunc("/secure", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer token" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.WriteHeader(http.StatusOK)
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func testDocument() *spec.Document {
	return &spec.Document{
		Name: "petstore",
		Operations: []spec.Operation{
			{ID: "listPets", Method: "GET", Path: "/pets"},
			{ID: "createPet", Method: "POST", Path: "/pets", Expect: spec.Expectation{Status: 201}},
			{ID: "brokenEndpoint", Method: "GET", Path: "/broken"},
		},
	}
}

func TestRun_PassAndFail(t *testing.T) {
	server := testServer(t)
	runner := NewRunner(Target{BaseURL: server.URL}, logger.Noop())

	summary, err := runner.Run(context.Background(), testDocument(),
		Options{WorkingDir: t.TempDir()}, nullReporter{})
	require.NoError(t, err)

	assert.Equal(t, 3, summary.Total)
	assert.Equal(t, 2, summary.Passed)
	assert.Equal(t, 1, summary.Failed)
	assert.False(t, summary.Ok())

	last := summary.Results[2]
	assert.Equal(t, "brokenEndpoint", last.ID)
	assert.Equal(t, StatusFailed, last.Status)
	assert.Equal(t, http.StatusInternalServerError, last.HTTPStatus)
	assert.Contains(t, last.Message, "expected a 2xx response")
}

func TestRun_AllPassing(t *testing.T) {
	server := testServer(t)
	runner := NewRunner(Target{BaseURL: server.URL}, logger.Noop())

	doc := testDocument()
	doc.Operations = doc.Operations[:2]

	summary, err := runner.Run(context.Background(), doc,
		Options{WorkingDir: t.TempDir()}, nullReporter{})
	require.NoError(t, err)

	assert.True(t, summary.Ok())
	assert.Equal(t, 2, summary.Passed)
	assert.Zero(t, summary.Failed)
}

func TestRun_PatternFilter(t *testing.T) {
	server := testServer(t)
	runner := NewRunner(Target{BaseURL: server.URL}, logger.Noop())

	summary, err := runner.Run(context.Background(), testDocument(),
		Options{Pattern: "Pet$", WorkingDir: t.TempDir()}, nullReporter{})
	require.NoError(t, err)

	assert.Equal(t, 1, summary.Total)
	assert.Equal(t, "createPet", summary.Results[0].ID)
}

func TestRun_InvalidPattern(t *testing.T) {
	runner := NewRunner(Target{BaseURL: "http://localhost"}, logger.Noop())

	_, err := runner.Run(context.Background(), testDocument(),
		Options{Pattern: "[invalid", WorkingDir: t.TempDir()}, nullReporter{})
	assert.Error(t, err)
}

func TestRun_BailSkipsRemaining(t *testing.T) {
	server := testServer(t)
	runner := NewRunner(Target{BaseURL: server.URL}, logger.Noop())

	doc := &spec.Document{
		Name: "petstore",
		Operations: []spec.Operation{
			{ID: "first", Method: "GET", Path: "/broken"},
			{ID: "second", Method: "GET", Path: "/pets"},
			{ID: "third", Method: "GET", Path: "/pets"},
		},
	}

	summary, err := runner.Run(context.Background(), doc,
		Options{Bail: true, WorkingDir: t.TempDir()}, nullReporter{})
	require.NoError(t, err)

	assert.Equal(t, 1, summary.Failed)
	assert.Equal(t, 2, summary.Skipped)
	assert.Zero(t, summary.Passed)
	assert.Equal(t, StatusSkipped, summary.Results[1].Status)
	assert.Equal(t, StatusSkipped, summary.Results[2].Status)
}

func TestRun_TargetHeaders(t *testing.T) {
	server := testServer(t)
	runner := NewRunner(Target{
		BaseURL: server.URL,
		Headers: map[string]string{"Authorization": "Bearer token"},
	}, logger.Noop())

	doc := &spec.Document{
		Name: "petstore",
		Operations: []spec.Operation{
			{ID: "secureCall", Method: "GET", Path: "/secure"},
		},
	}

	summary, err := runner.Run(context.Background(), doc,
		Options{WorkingDir: t.TempDir()}, nullReporter{})
	require.NoError(t, err)
	assert.True(t, summary.Ok())
}

func TestRun_OperationHeaderOverridesTarget(t *testing.T) {
	server := testServer(t)
	runner := NewRunner(Target{
		BaseURL: server.URL,
		Headers: map[string]string{"Authorization": "Bearer wrong"},
	}, logger.Noop())

	doc := &spec.Document{
		Name: "petstore",
		Operations: []spec.Operation{
			{
				ID: "secureCall", Method: "GET", Path: "/secure",
				Headers: map[string]string{"Authorization": "Bearer token"},
			},
		},
	}

	summary, err := runner.Run(context.Background(), doc,
		Options{WorkingDir: t.TempDir()}, nullReporter{})
	require.NoError(t, err)
	assert.True(t, summary.Ok())
}

func TestRun_UnreachableTarget(t *testing.T) {
	runner := NewRunner(Target{BaseURL: "http://127.0.0.1:1"}, logger.Noop())

	doc := &spec.Document{
		Name:       "petstore",
		Operations: []spec.Operation{{ID: "listPets", Method: "GET", Path: "/pets"}},
	}

	summary, err := runner.Run(context.Background(), doc,
		Options{WorkingDir: t.TempDir()}, nullReporter{})
	require.NoError(t, err)

	assert.Equal(t, 1, summary.Failed)
	assert.Contains(t, summary.Results[0].Message, "request failed")
}

func TestRun_ResultsFileRemovedByDefault(t *testing.T) {
	server := testServer(t)
	runner := NewRunner(Target{BaseURL: server.URL}, logger.Noop())
	dir := t.TempDir()

	_, err := runner.Run(context.Background(), testDocument(),
		Options{WorkingDir: dir}, nullReporter{})
	require.NoError(t, err)

	_, statErr := os.Stat(filepath.Join(dir, ResultsFileName))
	assert.True(t, os.IsNotExist(statErr))
}

func TestRun_ResultsFileKept(t *testing.T) {
	server := testServer(t)
	runner := NewRunner(Target{BaseURL: server.URL}, logger.Noop())
	dir := t.TempDir()

	_, err := runner.Run(context.Background(), testDocument(),
		Options{KeepFile: true, WorkingDir: dir}, nullReporter{})
	require.NoError(t, err)

	data, readErr := os.ReadFile(filepath.Join(dir, ResultsFileName))
	require.NoError(t, readErr)
	assert.Contains(t, string(data), "listPets")
}

func TestMatches(t *testing.T) {
	tests := []struct {
		name   string
		expect spec.Expectation
		status int
		want   bool
	}{
		{"zero accepts 200", spec.Expectation{}, 200, true},
		{"zero accepts 204", spec.Expectation{}, 204, true},
		{"zero rejects 301", spec.Expectation{}, 301, false},
		{"zero rejects 500", spec.Expectation{}, 500, false},
		{"exact match", spec.Expectation{Status: 404}, 404, true},
		{"exact mismatch", spec.Expectation{Status: 404}, 200, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, matches(tt.expect, tt.status))
		})
	}
}
