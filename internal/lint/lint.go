// Package lint checks a spec document against a fixed set of rules and
// reports issues. Error-severity issues make `inso lint spec` exit
// unsuccessfully; warnings are informational.
package lint

import (
	"fmt"
	"strings"

	"github.com/Lisiadito/insomnia/internal/spec"
)

// Severity classifies an issue.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Issue is a single finding against the spec.
type Issue struct {
	Rule     string
	Severity Severity
	Message  string
	// Operation is the id (or index description) of the operation the
	// issue belongs to; empty for document-level issues.
	Operation string
}

// Result is the outcome of linting one document.
type Result struct {
	Issues []Issue
}

// Ok reports whether the document passed: no error-severity issues.
func (r *Result) Ok() bool {
	for _, issue := range r.Issues {
		if issue.Severity == SeverityError {
			return false
		}
	}
	return true
}

// Counts returns the number of errors and warnings.
func (r *Result) Counts() (errs, warnings int) {
	for _, issue := range r.Issues {
		if issue.Severity == SeverityError {
			errs++
		} else {
			warnings++
		}
	}
	return errs, warnings
}

var validMethods = map[string]bool{
	"GET": true, "HEAD": true, "POST": true, "PUT": true,
	"PATCH": true, "DELETE": true, "OPTIONS": true,
}

// Check runs all rules against the document.
func Check(doc *spec.Document) *Result {
	result := &Result{}

	add := func(rule string, severity Severity, operation, format string, args ...interface{}) {
		result.Issues = append(result.Issues, Issue{
			Rule:      rule,
			Severity:  severity,
			Operation: operation,
			Message:   fmt.Sprintf(format, args...),
		})
	}

	if strings.TrimSpace(doc.Name) == "" {
		add("document-name", SeverityError, "", "spec has no name")
	}
	if strings.TrimSpace(doc.Version) == "" {
		add("document-version", SeverityWarning, "", "spec has no version")
	}
	if len(doc.Operations) == 0 {
		add("operations-empty", SeverityWarning, "", "spec declares no operations")
	}

	seen := make(map[string]bool)
	for i, op := range doc.Operations {
		label := op.ID
		if label == "" {
			label = fmt.Sprintf("operation #%d", i+1)
			add("operation-id", SeverityError, label, "operation has no id")
		} else if seen[op.ID] {
			add("operation-id-unique", SeverityError, label, "duplicate operation id '%s'", op.ID)
		}
		seen[op.ID] = true

		method := strings.ToUpper(op.Method)
		if !validMethods[method] {
			add("operation-method", SeverityError, label, "invalid method '%s'", op.Method)
		}

		if !strings.HasPrefix(op.Path, "/") {
			add("operation-path", SeverityError, label, "path '%s' must start with '/'", op.Path)
		}

		if op.Expect.Status != 0 && (op.Expect.Status < 100 || op.Expect.Status > 599) {
			add("operation-expect-status", SeverityError, label,
				"expected status %d is not a valid HTTP status", op.Expect.Status)
		}
	}

	return result
}
