package errors

import (
	"errors"
	"fmt"
)

// BridgeError is the structured error type for the native bridge.
// It carries enough context for logging and for the caller to tell
// "never loaded" apart from "loaded but incompatible".
type BridgeError struct {
	// Code is the unique error code (e.g., "ERR_201_LIBRARY_LOAD_FAILED").
	Code string

	// Message is the human-readable error message.
	Message string

	// Category is the error category (Config, Load, Policy, Internal).
	Category Category

	// Severity is the error severity level.
	Severity Severity

	// Details contains additional context as key-value pairs.
	Details map[string]string

	// Cause is the underlying error that caused this error.
	Cause error

	// Suggestion is an actionable suggestion for the user.
	Suggestion string
}

// Error implements the error interface.
func (e *BridgeError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for error chain support.
func (e *BridgeError) Unwrap() error {
	return e.Cause
}

// Is checks if this error matches the target error by code.
// This enables errors.Is() to work with BridgeError.
func (e *BridgeError) Is(target error) bool {
	if t, ok := target.(*BridgeError); ok {
		return e.Code == t.Code
	}
	return false
}

// WithDetail adds a key-value detail to the error.
// Returns the error for method chaining.
func (e *BridgeError) WithDetail(key, value string) *BridgeError {
	if e.Details == nil {
		e.Details = make(map[string]string)
	}
	e.Details[key] = value
	return e
}

// WithSuggestion adds an actionable suggestion for the user.
// Returns the error for method chaining.
func (e *BridgeError) WithSuggestion(suggestion string) *BridgeError {
	e.Suggestion = suggestion
	return e
}

// New creates a new BridgeError with the given code and message.
// Category and severity are derived from the code.
func New(code string, message string, cause error) *BridgeError {
	return &BridgeError{
		Code:     code,
		Message:  message,
		Category: categoryFromCode(code),
		Severity: severityFromCode(code),
		Cause:    cause,
	}
}

// Newf is New with a formatted message and no cause.
func Newf(code string, format string, args ...any) *BridgeError {
	return New(code, fmt.Sprintf(format, args...), nil)
}

// Wrap creates a BridgeError from an existing error.
// The error's message becomes the BridgeError message.
func Wrap(code string, err error) *BridgeError {
	if err == nil {
		return nil
	}
	return New(code, err.Error(), err)
}

// Sentinels for errors.Is comparisons. Only the code is compared.
var (
	ErrPermissionDenied  = &BridgeError{Code: ErrCodePermissionDenied}
	ErrLibraryLoad       = &BridgeError{Code: ErrCodeLibraryLoadFailed}
	ErrVersionMismatch   = &BridgeError{Code: ErrCodeVersionMismatch}
	ErrConstructorFailed = &BridgeError{Code: ErrCodeConstructorFailed}
	ErrInvalidSignature  = &BridgeError{Code: ErrCodeInvalidSignature}
	ErrNativeNotFound    = &BridgeError{Code: ErrCodeNativeNotFound}
	ErrNoFunction        = &BridgeError{Code: ErrCodeNativeNoFunction}
	ErrUnsupported       = &BridgeError{Code: ErrCodePlatformUnsupported}
)

// ConfigError creates a configuration-related error.
func ConfigError(message string, cause error) *BridgeError {
	return New(ErrCodeConfigInvalid, message, cause)
}

// LoadError creates a library loading error.
func LoadError(message string, cause error) *BridgeError {
	return New(ErrCodeLibraryLoadFailed, message, cause)
}

// InternalError creates an internal error.
func InternalError(message string, cause error) *BridgeError {
	return New(ErrCodeInternal, message, cause)
}

// IsFatal checks if an error has fatal severity.
func IsFatal(err error) bool {
	var be *BridgeError
	if errors.As(err, &be) {
		return be.Severity == SeverityFatal
	}
	return false
}

// IsIncompatible reports whether err means the library was loaded but
// rejected during ABI negotiation.
func IsIncompatible(err error) bool {
	switch GetCode(err) {
	case ErrCodeVersionMismatch, ErrCodeConstructorFailed:
		return true
	default:
		return false
	}
}

// GetCode extracts the error code from a BridgeError anywhere in the chain.
// Returns empty string if there is none.
func GetCode(err error) string {
	var be *BridgeError
	if errors.As(err, &be) {
		return be.Code
	}
	return ""
}

// GetCategory extracts the category from a BridgeError.
// Returns empty string if not a BridgeError.
func GetCategory(err error) Category {
	var be *BridgeError
	if errors.As(err, &be) {
		return be.Category
	}
	return ""
}
