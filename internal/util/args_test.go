package util

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitArgs(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name:  "empty input",
			input: "",
			want:  nil,
		},
		{
			name:  "whitespace only",
			input: "   \t  ",
			want:  nil,
		},
		{
			name:  "simple words",
			input: "lint spec",
			want:  []string{"lint", "spec"},
		},
		{
			name:  "flags and values",
			input: "generate config --type kubernetes",
			want:  []string{"generate", "config", "--type", "kubernetes"},
		},
		{
			name:  "collapses repeated whitespace",
			input: "run   test\t--bail",
			want:  []string{"run", "test", "--bail"},
		},
		{
			name:  "double quoted token",
			input: `run test -t "smoke tests"`,
			want:  []string{"run", "test", "-t", "smoke tests"},
		},
		{
			name:  "single quoted token",
			input: "export spec -o 'my spec.json'",
			want:  []string{"export", "spec", "-o", "my spec.json"},
		},
		{
			name:  "empty quoted token survives",
			input: `run ""`,
			want:  []string{"run", ""},
		},
		{
			name:  "single quotes inside double quotes",
			input: `run "it's fine"`,
			want:  []string{"run", "it's fine"},
		},
		{
			name:  "backslash escape inside quotes preserved literally",
			input: `lint "a\"b"`,
			want:  []string{"lint", `a\"b`},
		},
		{
			name:  "backslash escape outside quotes",
			input: `lint a\ b`,
			want:  []string{"lint", "a b"},
		},
		{
			name:  "trailing backslash is literal",
			input: `lint spec\`,
			want:  []string{"lint", `spec\`},
		},
		{
			name:  "adjacent quoted and unquoted text",
			input: `--output="out dir"/spec.json`,
			want:  []string{"--output=out dir/spec.json"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SplitArgs(tt.input)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSplitArgs_RoundTrip(t *testing.T) {
	// Re-joining tokens with spaces and re-tokenizing yields the same
	// sequence when no token contains quote characters or whitespace.
	inputs := []string{
		"generate config --type kubernetes -o out.yaml",
		"run test --env staging --bail",
		"lint spec swagger.yaml",
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			first := SplitArgs(input)
			second := SplitArgs(strings.Join(first, " "))
			assert.Equal(t, first, second)
		})
	}
}

func TestJoinOrNone(t *testing.T) {
	assert.Equal(t, "(none)", JoinOrNone(nil))
	assert.Equal(t, "(none)", JoinOrNone([]string{}))
	assert.Equal(t, "build", JoinOrNone([]string{"build"}))
	assert.Equal(t, "build, test", JoinOrNone([]string{"build", "test"}))
}

func TestJoinOrDefault(t *testing.T) {
	assert.Equal(t, "-", JoinOrDefault(nil, "-"))
	assert.Equal(t, "a, b", JoinOrDefault([]string{"a", "b"}, "-"))
}

func TestPluralize(t *testing.T) {
	assert.Equal(t, "issue", Pluralize(1, "issue", "issues"))
	assert.Equal(t, "issues", Pluralize(0, "issue", "issues"))
	assert.Equal(t, "issues", Pluralize(3, "issue", "issues"))
}
