package selector

import (
	"fmt"
	"strings"

	"github.com/pterm/pterm"
)

// ErrorContext indicates the environment where parser errors will be displayed
type ErrorContext string

const (
	// ErrorContextTerminal indicates errors will be displayed in terminal with ANSI colors
	ErrorContextTerminal ErrorContext = "terminal"
	// ErrorContextPlain indicates errors will be displayed without ANSI codes (build logs, tooling)
	ErrorContextPlain ErrorContext = "plain"
)

// ErrorKind categorizes parser errors for programmatic handling
type ErrorKind string

const (
	ErrorKindSyntax   ErrorKind = "syntax"   // Malformed declaration text
	ErrorKindSemantic ErrorKind = "semantic" // Well-formed but invalid (module where type expected, rename)
)

// ParseError is a diagnostic anchored to a span of the declaration text.
// Every rejection the parser produces points at the offending token, never
// at a generic "parse failed".
type ParseError struct {
	Err         error // Sentinel from the errors package, if this rejection has one
	Kind        ErrorKind
	Message     string
	Span        Range    // Source span of the offending syntax
	Token       string   // Offending token text, if any
	Suggestions []string // Possible fixes
	Context     ErrorContext
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return e.FormatError(e.Context)
}

// Unwrap exposes the sentinel so callers can classify with errors.Is.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// FormatError generates a context-appropriate message.
func (e *ParseError) FormatError(ctx ErrorContext) string {
	if ctx == ErrorContextTerminal {
		return e.formatTerminalError()
	}
	return e.formatPlainError()
}

// formatPlainError creates a concise single-line diagnostic for logs.
func (e *ParseError) formatPlainError() string {
	msg := fmt.Sprintf("%d:%d: %s", e.Span.Start.Line, e.Span.Start.Character+1, e.Message)
	if e.Token != "" {
		msg += fmt.Sprintf(" (at %q)", e.Token)
	}
	if len(e.Suggestions) > 0 {
		msg += fmt.Sprintf(". Suggestions: %s", strings.Join(e.Suggestions, ", "))
	}
	return msg
}

// formatTerminalError creates a rich colored diagnostic for the terminal.
func (e *ParseError) formatTerminalError() string {
	baseMsg := pterm.Red(e.Message)

	context := fmt.Sprintf("\n\n%s", pterm.LightCyan("Context:"))
	context += fmt.Sprintf("\n  %s %d:%d", pterm.Yellow("Position:"), e.Span.Start.Line, e.Span.Start.Character+1)
	if e.Token != "" {
		context += fmt.Sprintf("\n  %s '%s'", pterm.Yellow("Token:"), e.Token)
	}

	if len(e.Suggestions) > 0 {
		context += fmt.Sprintf("\n\n%s", pterm.Green("Suggestions:"))
		for _, suggestion := range e.Suggestions {
			context += fmt.Sprintf("\n  - %s", suggestion)
		}
	}

	return baseMsg + context
}

// newParseError builds a span-anchored error in plain context; the CLI
// upgrades to terminal context for interactive runs.
func newParseError(kind ErrorKind, span Range, token, message string, suggestions ...string) *ParseError {
	return &ParseError{
		Kind:        kind,
		Message:     message,
		Span:        span,
		Token:       token,
		Suggestions: suggestions,
		Context:     ErrorContextPlain,
	}
}
