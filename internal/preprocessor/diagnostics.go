package preprocessor

import (
	"errors"
	"fmt"
	"strings"
)

// Severity of a Diagnostic.
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	}
	return fmt.Sprintf("Severity(%d)", int(s))
}

// Diagnostic is a non-fatal problem found while preprocessing. A Diagnostic
// is also an error so that callers can hand it to errors.Join and friends.
type Diagnostic struct {
	Severity Severity
	File     string
	Line     int // 1-based, 0 when the problem is not tied to a line
	Message  string

	// Chain lists the include sites leading to File, innermost first,
	// formatted as "path:line".
	Chain []string

	// Err is the underlying cause, if any.
	Err error
}

func (d Diagnostic) Error() string {
	var b strings.Builder
	if d.File != "" {
		b.WriteString(d.File)
		if d.Line > 0 {
			fmt.Fprintf(&b, ":%d", d.Line)
		}
		b.WriteString(": ")
	}
	b.WriteString(d.Message)
	for _, site := range d.Chain {
		b.WriteString("\n\tincluded from ")
		b.WriteString(site)
	}
	return b.String()
}

func (d Diagnostic) Unwrap() error { return d.Err }

// Diagnostics is the ordered list of problems reported during one call.
type Diagnostics []Diagnostic

// Errors returns the number of error diagnostics.
func (ds Diagnostics) Errors() int {
	return ds.count(SeverityError)
}

// Warnings returns the number of warning diagnostics.
func (ds Diagnostics) Warnings() int {
	return ds.count(SeverityWarning)
}

func (ds Diagnostics) count(sev Severity) int {
	n := 0
	for _, d := range ds {
		if d.Severity == sev {
			n++
		}
	}
	return n
}

// Err joins all error diagnostics into a single error, or returns nil if
// there are none. Warnings are not included.
func (ds Diagnostics) Err() error {
	var errs []error
	for _, d := range ds {
		if d.Severity == SeverityError {
			errs = append(errs, d)
		}
	}
	return errors.Join(errs...)
}

// ErrMalformedMacro is matched by errors.Is for every *MacroError.
var ErrMalformedMacro = errors.New("malformed macro definition")

// MacroError is returned when a caller supplied macro does not have the form
// NAME or NAME=VALUE. It is the only condition that aborts preprocessing.
type MacroError struct {
	Macro string
}

func (e *MacroError) Error() string {
	return fmt.Sprintf("malformed macro definition: %q", e.Macro)
}

func (e *MacroError) Unwrap() error { return ErrMalformedMacro }
