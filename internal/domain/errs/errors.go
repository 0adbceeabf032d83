// Package errs defines user-facing errors with codes and suggestions.
package errs

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
)

// Error codes for categorization.
const (
	ErrCodeCatalogNotFound = "CATALOG_NOT_FOUND"
	ErrCodeCatalogInvalid  = "CATALOG_INVALID"
	ErrCodeCategoryUnknown = "CATEGORY_UNKNOWN"
	ErrCodeLogUnavailable  = "LOG_UNAVAILABLE"
)

// UserError represents a user-friendly error with actionable suggestions.
type UserError struct {
	Code       string // Error code for categorization (e.g., "CATALOG_NOT_FOUND")
	Message    string // User-friendly error message
	Context    string // File path or other location context
	Suggestion string // Actionable suggestion to fix the error
	Underlying error  // Wrapped error for error chain
}

// Error returns the formatted error message.
func (e *UserError) Error() string {
	if e.Context != "" {
		return fmt.Sprintf("%s (at %s)", e.Message, e.Context)
	}
	return e.Message
}

// Unwrap returns the underlying error for error chain support.
func (e *UserError) Unwrap() error {
	return e.Underlying
}

// Is supports errors.Is() for comparing error codes.
func (e *UserError) Is(target error) bool {
	if t, ok := target.(*UserError); ok {
		return e.Code == t.Code
	}
	return false
}

// Details returns a fully formatted error with all details.
func (e *UserError) Details() string {
	var b strings.Builder

	fmt.Fprintf(&b, "[%s] %s", e.Code, e.Message)
	if e.Context != "" {
		fmt.Fprintf(&b, "\n  Location: %s", e.Context)
	}
	if e.Suggestion != "" {
		fmt.Fprintf(&b, "\n  Suggestion: %s", e.Suggestion)
	}

	return b.String()
}

// CatalogLoad wraps a failure to load the catalog at path.
func CatalogLoad(path string, err error) *UserError {
	if errors.Is(err, fs.ErrNotExist) {
		return &UserError{
			Code:       ErrCodeCatalogNotFound,
			Message:    "catalog file not found",
			Context:    path,
			Suggestion: "Check the --catalog path, or omit it to use the built-in catalog",
			Underlying: err,
		}
	}
	return &UserError{
		Code:       ErrCodeCatalogInvalid,
		Message:    "catalog could not be loaded",
		Context:    path,
		Suggestion: "Run 'toolbelt list --catalog " + path + "' after fixing the reported fields",
		Underlying: err,
	}
}

// UnknownCategory reports --only names missing from the catalog.
func UnknownCategory(names, known []string) *UserError {
	return &UserError{
		Code:       ErrCodeCategoryUnknown,
		Message:    "unknown category: " + strings.Join(names, ", "),
		Suggestion: "Choose from: " + strings.Join(known, ", "),
	}
}

// LogUnavailable wraps a failure to create the session log.
func LogUnavailable(dir string, err error) *UserError {
	return &UserError{
		Code:       ErrCodeLogUnavailable,
		Message:    "session log could not be created",
		Context:    dir,
		Suggestion: "Pass a writable directory with --log-dir",
		Underlying: err,
	}
}
