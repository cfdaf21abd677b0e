package errors

import (
	stderrors "errors"
	"fmt"
	"io"
	"os"

	"github.com/jugucan/gymsched/internal/logger"
)

// HintError wraps an error with a suggestion for the person at the terminal.
type HintError struct {
	Err  error
	Hint string
}

func (e *HintError) Error() string { return e.Err.Error() }
func (e *HintError) Unwrap() error { return e.Err }

// WithHint attaches a hint; a nil error stays nil.
func WithHint(err error, hint string) error {
	if err == nil {
		return nil
	}
	return &HintError{Err: err, Hint: hint}
}

// Format formats an error message with a consistent "Error: " prefix
func Format(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Error: %v", err)
}

// Hint returns the outermost hint attached to err, if any. A hint added
// while wrapping overrides one from deeper in the chain.
func Hint(err error) string {
	var h *HintError
	if stderrors.As(err, &h) {
		return h.Hint
	}
	return ""
}

// Report writes the formatted error and any hint to w.
func Report(w io.Writer, err error) {
	if err == nil {
		return
	}
	fmt.Fprintln(w, Format(err))
	if hint := Hint(err); hint != "" {
		fmt.Fprintf(w, "  hint: %s\n", hint)
	}
}

// Fatal logs an error, reports it on stderr and exits with status 1
func Fatal(err error) {
	if err != nil {
		logger.Error("Command execution failed", "error", err)
		Report(os.Stderr, err)
		os.Exit(1)
	}
}
