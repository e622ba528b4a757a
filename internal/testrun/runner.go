// Package testrun executes a spec's operations as HTTP smoke tests
// against a configured environment and reports the outcome through a
// pluggable reporter.
package testrun

import (
	"context"
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/Lisiadito/insomnia/internal/errors"
	"github.com/Lisiadito/insomnia/internal/logger"
	"github.com/Lisiadito/insomnia/internal/spec"
)

// Target is where requests go: the environment's base URL plus headers
// applied to every request. Operation headers override target headers.
type Target struct {
	BaseURL string
	Headers map[string]string
}

// Options controls a test run.
type Options struct {
	// Pattern filters operations by id. Empty matches everything.
	Pattern string
	// Bail stops the run at the first failure; the remaining
	// operations are reported as skipped.
	Bail bool
	// KeepFile preserves the results artifact after the run.
	KeepFile bool
	// WorkingDir is where the results artifact is written.
	WorkingDir string
	// Timeout bounds each individual request.
	Timeout time.Duration
}

// OpStatus classifies one operation's outcome.
type OpStatus string

const (
	StatusPassed  OpStatus = "passed"
	StatusFailed  OpStatus = "failed"
	StatusSkipped OpStatus = "skipped"
)

// OpResult is the outcome of a single operation.
type OpResult struct {
	ID         string        `json:"id"`
	Method     string        `json:"method"`
	Path       string        `json:"path"`
	Status     OpStatus      `json:"status"`
	HTTPStatus int           `json:"httpStatus,omitempty"`
	Message    string        `json:"message,omitempty"`
	Duration   time.Duration `json:"duration"`
}

// Summary aggregates a whole run.
type Summary struct {
	Total    int           `json:"total"`
	Passed   int           `json:"passed"`
	Failed   int           `json:"failed"`
	Skipped  int           `json:"skipped"`
	Duration time.Duration `json:"duration"`
	Results  []OpResult    `json:"results"`
}

// Ok reports whether the run had no failures.
func (s *Summary) Ok() bool {
	return s.Failed == 0
}

const defaultTimeout = 30 * time.Second

// Runner executes operations against a target.
type Runner struct {
	target Target
	client *http.Client
	log    logger.Logger
}

// NewRunner builds a runner for the given target.
func NewRunner(target Target, log logger.Logger) *Runner {
	if log == nil {
		log = logger.Default()
	}
	return &Runner{
		target: target,
		client: &http.Client{},
		log:    log,
	}
}

// SetClient replaces the HTTP client, for tests.
func (r *Runner) SetClient(c *http.Client) {
	r.client = c
}

// Run executes every matching operation in order, feeding the reporter
// as it goes. A non-nil error means the run itself could not proceed;
// test failures are reported through the summary, not the error.
func (r *Runner) Run(ctx context.Context, doc *spec.Document, opts Options, rep Reporter) (*Summary, error) {
	var filter *regexp.Regexp
	if opts.Pattern != "" {
		var err error
		filter, err = regexp.Compile(opts.Pattern)
		if err != nil {
			return nil, errors.WrapWithCode(err, errors.ErrTest,
				fmt.Sprintf("invalid test name pattern '%s'", opts.Pattern),
				"the pattern must be a valid regular expression")
		}
	}

	selected := make([]spec.Operation, 0, len(doc.Operations))
	for _, op := range doc.Operations {
		if filter == nil || filter.MatchString(op.ID) {
			selected = append(selected, op)
		}
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	summary := &Summary{Total: len(selected)}
	start := time.Now()
	rep.Begin(doc.Name, len(selected))

	bailed := false
	for _, op := range selected {
		var result OpResult
		if bailed {
			result = OpResult{
				ID:     op.ID,
				Method: strings.ToUpper(op.Method),
				Path:   op.Path,
				Status: StatusSkipped,
			}
		} else {
			result = r.execute(ctx, op, timeout)
		}

		switch result.Status {
		case StatusPassed:
			summary.Passed++
		case StatusFailed:
			summary.Failed++
			if opts.Bail {
				bailed = true
			}
		case StatusSkipped:
			summary.Skipped++
		}

		summary.Results = append(summary.Results, result)
		rep.Report(result)

		if ctx.Err() != nil {
			return nil, errors.WrapWithCode(ctx.Err(), errors.ErrTest, "test run interrupted", "")
		}
	}

	summary.Duration = time.Since(start)
	rep.End(*summary)

	if err := writeResults(opts.WorkingDir, summary, opts.KeepFile); err != nil {
		r.log.Warn("could not write results file: %v", err)
	}

	return summary, nil
}

func (r *Runner) execute(ctx context.Context, op spec.Operation, timeout time.Duration) OpResult {
	result := OpResult{
		ID:     op.ID,
		Method: strings.ToUpper(op.Method),
		Path:   op.Path,
	}

	reqCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	url := strings.TrimRight(r.target.BaseURL, "/") + op.Path
	req, err := http.NewRequestWithContext(reqCtx, result.Method, url, nil)
	if err != nil {
		result.Status = StatusFailed
		result.Message = fmt.Sprintf("invalid request: %v", err)
		return result
	}
	for k, v := range r.target.Headers {
		req.Header.Set(k, v)
	}
	for k, v := range op.Headers {
		req.Header.Set(k, v)
	}

	r.log.Debug("request %s %s", result.Method, url)

	start := time.Now()
	resp, err := r.client.Do(req)
	result.Duration = time.Since(start)
	if err != nil {
		result.Status = StatusFailed
		result.Message = fmt.Sprintf("request failed: %v", err)
		return result
	}
	defer resp.Body.Close()

	result.HTTPStatus = resp.StatusCode
	if matches(op.Expect, resp.StatusCode) {
		result.Status = StatusPassed
	} else {
		result.Status = StatusFailed
		result.Message = expectMessage(op.Expect, resp.StatusCode)
	}
	return result
}

// matches applies the operation's expectation. A zero expected status
// accepts any 2xx response.
func matches(expect spec.Expectation, status int) bool {
	if expect.Status == 0 {
		return status >= 200 && status < 300
	}
	return status == expect.Status
}

func expectMessage(expect spec.Expectation, status int) string {
	if expect.Status == 0 {
		return fmt.Sprintf("expected a 2xx response, got %d", status)
	}
	return fmt.Sprintf("expected status %d, got %d", expect.Status, status)
}
