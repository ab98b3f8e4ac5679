package analyzer

import (
	"fmt"
	"sync"
)

// Kind classifies a diagnostic.
type Kind string

const (
	// ParseFailure marks a file the grammar could not parse cleanly.
	ParseFailure Kind = "parse_failure"
	// UnresolvedReference marks a call site whose callee is unknown.
	UnresolvedReference Kind = "unresolved_reference"
	// IOFailure marks a file that could not be read.
	IOFailure Kind = "io_failure"
	// InvalidRequest marks a request the engine cannot satisfy, such as a
	// query for a function that does not exist.
	InvalidRequest Kind = "invalid_request"
)

// Diagnostic is one non-fatal problem encountered during a batch operation.
// Diagnostics accompany results instead of aborting them.
type Diagnostic struct {
	Kind   Kind   `json:"kind"`
	Path   string `json:"path,omitempty"`
	Line   int    `json:"line,omitempty"`
	Detail string `json:"detail"`
}

func (d Diagnostic) String() string {
	if d.Path == "" {
		return fmt.Sprintf("%s: %s", d.Kind, d.Detail)
	}
	if d.Line > 0 {
		return fmt.Sprintf("%s: %s:%d: %s", d.Kind, d.Path, d.Line, d.Detail)
	}
	return fmt.Sprintf("%s: %s: %s", d.Kind, d.Path, d.Detail)
}

// RequestError is the error returned for a request the engine cannot satisfy.
type RequestError struct {
	Detail string
}

func (e *RequestError) Error() string {
	return e.Detail
}

// collector accumulates diagnostics from concurrent workers.
type collector struct {
	mu    sync.Mutex
	diags []Diagnostic
}

func (c *collector) add(d Diagnostic) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.diags = append(c.diags, d)
}
