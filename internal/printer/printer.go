package printer

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
)

// Prefix marks young-ng's own messages apart from generator and npm output.
const Prefix = "[scaffold]"

func init() {
	// Force color output even when not connected to TTY
	// Users can disable with NO_COLOR environment variable
	if os.Getenv("NO_COLOR") == "" {
		color.NoColor = false
	}
}

var (
	green  = color.New(color.FgGreen)
	yellow = color.New(color.FgYellow)
	red    = color.New(color.FgRed, color.Bold)
	cyan   = color.New(color.FgCyan)

	out    io.Writer = os.Stdout
	errOut io.Writer = os.Stderr
)

// SetOutput redirects the printer, returning a func that restores the
// previous writers. Used by tests.
func SetOutput(stdout, stderr io.Writer) (restore func()) {
	prevOut, prevErr := out, errOut
	out, errOut = stdout, stderr
	return func() {
		out, errOut = prevOut, prevErr
	}
}

// Step prints a prefixed progress line in cyan
func Step(format string, a ...any) {
	cyan.Fprintf(out, "%s %s", Prefix, fmt.Sprintf(format, a...))
}

// Success prints a success message in green with a checkmark prefix
func Success(format string, a ...any) {
	msg := fmt.Sprintf(format, a...)
	if !strings.HasPrefix(msg, "✓") {
		green.Fprintf(out, "✓ %s", msg)
	} else {
		green.Fprint(out, msg)
	}
}

// Info prints an informational message in the default color
func Info(format string, a ...any) {
	fmt.Fprintf(out, format, a...)
}

// Warning prints a warning message in yellow with a warning emoji prefix
func Warning(format string, a ...any) {
	msg := fmt.Sprintf(format, a...)
	if !strings.HasPrefix(msg, "⚠️") {
		yellow.Fprintf(out, "⚠️  %s", msg)
	} else {
		yellow.Fprint(out, msg)
	}
}

// Failure prints err on stderr behind the fixed failure prefix, followed by
// any suggestions, and returns a short error for Cobra.
func Failure(err error, suggestions []string) error {
	red.Fprintf(errOut, "%s Failed: ", Prefix)
	fmt.Fprintf(errOut, "%v\n", err)
	printSuggestions(suggestions)

	// Return simple error for Cobra (won't be printed due to SilenceErrors)
	return fmt.Errorf("%s failed", Prefix)
}

// Error creates a formatted error message with title, explanation, and suggestions
// Prints the formatted error to stderr with colors and returns a simple error for Cobra
func Error(title string, explanation string, suggestions []string) error {
	red.Fprintf(errOut, "%s %s\n\n", Prefix, title)

	if explanation != "" {
		fmt.Fprintf(errOut, "%s\n", explanation)
	}
	printSuggestions(suggestions)

	return fmt.Errorf("%s", title)
}

func printSuggestions(suggestions []string) {
	if len(suggestions) == 0 {
		return
	}
	fmt.Fprintf(errOut, "\n")
	if len(suggestions) == 1 {
		fmt.Fprintf(errOut, "%s\n", suggestions[0])
		return
	}
	fmt.Fprintf(errOut, "Either:\n")
	for i, suggestion := range suggestions {
		fmt.Fprintf(errOut, "  %d. %s\n", i+1, suggestion)
	}
}

// Println prints a plain message (for output that doesn't need coloring)
func Println(a ...any) {
	fmt.Fprintln(out, a...)
}

// Printf prints a plain formatted message (for output that doesn't need coloring)
func Printf(format string, a ...any) {
	fmt.Fprintf(out, format, a...)
}
