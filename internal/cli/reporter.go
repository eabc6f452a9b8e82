package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/toyz/rename-tool/internal/errors"
)

// DiagnosticReporter reports command level failures on the error stream
type DiagnosticReporter struct {
	out     io.Writer
	verbose bool
	colors  bool
}

// NewDiagnosticReporter creates a new diagnostic reporter
func NewDiagnosticReporter(out io.Writer, verbose bool) *DiagnosticReporter {
	return &DiagnosticReporter{
		out:     out,
		verbose: verbose,
		colors:  !color.NoColor,
	}
}

// SetColors forces colored output on or off
func (r *DiagnosticReporter) SetColors(enabled bool) *DiagnosticReporter {
	r.colors = enabled
	return r
}

// ReportError prints err with its suggestions and, in verbose mode, its chain
func (r *DiagnosticReporter) ReportError(err error) {
	red := color.New(color.FgRed, color.Bold)
	r.apply(red)
	red.Fprint(r.out, "Error: ")
	fmt.Fprintf(r.out, "%s\n", err.Error())

	renameErr := findRenameError(err)
	if renameErr == nil {
		return
	}

	if suggestions := renameErr.Suggestions(); len(suggestions) > 0 {
		r.printSuggestions(suggestions)
	}

	if r.verbose {
		r.printVerboseDebuggingInfo(renameErr)
	}
}

// printSuggestions prints actionable suggestions
func (r *DiagnosticReporter) printSuggestions(suggestions []string) {
	fmt.Fprintf(r.out, "Suggestions:\n")

	for i, suggestion := range suggestions {
		lines := strings.Split(suggestion, "\n")
		fmt.Fprintf(r.out, "   %d. %s\n", i+1, lines[0])
		for _, line := range lines[1:] {
			if strings.TrimSpace(line) != "" {
				fmt.Fprintf(r.out, "      %s\n", line)
			}
		}
	}
}

// printVerboseDebuggingInfo prints the error code, context and cause chain
func (r *DiagnosticReporter) printVerboseDebuggingInfo(renameErr errors.RenameError) {
	fmt.Fprintf(r.out, "Details:\n")
	fmt.Fprintf(r.out, "  Error Type: %s\n", renameErr.ErrorCode())

	if path := renameErr.Path(); path != "" {
		fmt.Fprintf(r.out, "  Path: %s\n", path)
	}

	for key, value := range renameErr.Context() {
		fmt.Fprintf(r.out, "  %s: %+v\n", formatContextKey(key), value)
	}

	err := renameErr.Unwrap()
	level := 1
	for err != nil {
		if level == 1 {
			fmt.Fprintf(r.out, "  Error Chain:\n")
		}
		fmt.Fprintf(r.out, "    %d. %s\n", level, err.Error())
		unwrapper, ok := err.(interface{ Unwrap() error })
		if !ok {
			break
		}
		err = unwrapper.Unwrap()
		level++
	}
}

func (r *DiagnosticReporter) apply(c *color.Color) {
	if r.colors {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
}

// findRenameError recursively searches for a RenameError in wrapped errors
func findRenameError(err error) errors.RenameError {
	if err == nil {
		return nil
	}

	if renameErr, ok := err.(errors.RenameError); ok {
		return renameErr
	}

	if unwrapper, ok := err.(interface{ Unwrap() error }); ok {
		return findRenameError(unwrapper.Unwrap())
	}

	return nil
}

// formatContextKey converts snake_case keys to Title Case
func formatContextKey(key string) string {
	parts := strings.Split(key, "_")
	for i, part := range parts {
		if len(part) > 0 {
			parts[i] = strings.ToUpper(part[:1]) + part[1:]
		}
	}
	return strings.Join(parts, " ")
}
