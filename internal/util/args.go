// Package util provides common utility functions used across the codebase.
package util

import "strings"

// SplitArgs tokenizes a command-line string into arguments, matching
// shell-like splitting closely enough for typical script strings: it
// splits on whitespace while treating single- and double-quoted
// substrings as single tokens (quotes stripped). Backslash-escaped
// characters inside quotes are preserved literally; outside quotes a
// backslash escapes the next character. It is not a full shell grammar:
// no globbing, variable expansion, or subshells.
//
// Empty input yields a nil slice.
func SplitArgs(commandLine string) []string {
	var (
		args    []string
		current strings.Builder
		quote   rune // active quote character, 0 when unquoted
		hasTok  bool
		escaped bool
	)

	for _, r := range commandLine {
		switch {
		case escaped:
			if quote != 0 {
				// Inside quotes the backslash is kept verbatim.
				current.WriteRune('\\')
			}
			current.WriteRune(r)
			escaped = false
		case r == '\\':
			escaped = true
			hasTok = true
		case quote != 0:
			if r == quote {
				quote = 0
			} else {
				current.WriteRune(r)
			}
		case r == '\'' || r == '"':
			quote = r
			hasTok = true
		case r == ' ' || r == '\t' || r == '\n' || r == '\r':
			if hasTok {
				args = append(args, current.String())
				current.Reset()
				hasTok = false
			}
		default:
			current.WriteRune(r)
			hasTok = true
		}
	}

	// A trailing backslash is taken literally.
	if escaped {
		current.WriteRune('\\')
		hasTok = true
	}

	if hasTok {
		args = append(args, current.String())
	}

	return args
}
