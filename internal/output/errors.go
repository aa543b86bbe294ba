package output

import (
	"errors"
	"fmt"
)

// Exit codes following sysexits.h convention
const (
	ExitOK             = 0  // Success
	ExitGeneral        = 1  // General error
	ExitUsage          = 2  // Invalid usage / bad arguments
	ExitInvalidInput   = 3  // Input is neither a timestamp nor a datetime
	ExitParse          = 4  // JSON or URL input failed to parse
	ExitTimeResolution = 5  // Wall clock does not exist in the timezone
	ExitConfigError    = 10 // Configuration error
	ExitStateError     = 11 // State file could not be read or written
	ExitClipboard      = 12 // Clipboard unavailable
)

// CLIError represents a structured error with exit code and optional hint
type CLIError struct {
	ExitCode int
	Message  string
	Hint     string
}

// Error implements the error interface
func (e *CLIError) Error() string {
	return e.Message
}

// NewCLIError creates a new CLIError
func NewCLIError(code int, msg string) *CLIError {
	return &CLIError{
		ExitCode: code,
		Message:  msg,
	}
}

// Errorf creates a CLIError with a formatted message
func Errorf(code int, format string, args ...any) *CLIError {
	return NewCLIError(code, fmt.Sprintf(format, args...))
}

// WithHint adds a user-facing hint to the error
func (e *CLIError) WithHint(hint string) *CLIError {
	e.Hint = hint
	return e
}

// Report prints err via the formatter and returns the exit code to use
func Report(formatter Formatter, err error) int {
	var cliErr *CLIError
	if errors.As(err, &cliErr) {
		formatter.PrintError(cliErr)
		if cliErr.Hint != "" {
			formatter.PrintHint(cliErr.Hint)
		}
		return cliErr.ExitCode
	}

	formatter.PrintError(err)
	return ExitGeneral
}
