// Package errors provides structured error handling for the native bridge.
//
// Error codes follow the pattern ERR_XXX_DESCRIPTION where:
//   - 1XX: Configuration errors
//   - 2XX: Library loading errors (filesystem, OS loader)
//   - 4XX: Policy and ABI errors (permission, version, constructor, binding)
//   - 5XX: Internal errors
package errors

// Category defines error categories for classification.
type Category string

const (
	// CategoryConfig indicates configuration-related errors.
	CategoryConfig Category = "CONFIG"
	// CategoryLoad indicates a shared library could not be opened.
	CategoryLoad Category = "LOAD"
	// CategoryPolicy indicates a library was refused or is incompatible.
	CategoryPolicy Category = "POLICY"
	// CategoryInternal indicates unexpected internal errors.
	CategoryInternal Category = "INTERNAL"
)

// Severity defines error severity levels.
type Severity string

const (
	// SeverityFatal indicates unrecoverable error, must abort.
	SeverityFatal Severity = "FATAL"
	// SeverityError indicates operation failed but can continue.
	SeverityError Severity = "ERROR"
	// SeverityWarning indicates degraded operation, continuing.
	SeverityWarning Severity = "WARNING"
)

// Error codes organized by category.
const (
	// Config errors (100-199)
	ErrCodeConfigNotFound = "ERR_101_CONFIG_NOT_FOUND"
	ErrCodeConfigInvalid  = "ERR_102_CONFIG_INVALID"

	// Load errors (200-299)
	ErrCodeLibraryLoadFailed   = "ERR_201_LIBRARY_LOAD_FAILED"
	ErrCodePlatformUnsupported = "ERR_202_PLATFORM_UNSUPPORTED"

	// Policy and ABI errors (400-499)
	ErrCodePermissionDenied  = "ERR_401_PERMISSION_DENIED"
	ErrCodeVersionMismatch   = "ERR_402_VERSION_MISMATCH"
	ErrCodeConstructorFailed = "ERR_403_CONSTRUCTOR_FAILED"
	ErrCodeInvalidSignature  = "ERR_404_INVALID_SIGNATURE"
	ErrCodeNativeNotFound    = "ERR_405_NATIVE_NOT_FOUND"
	ErrCodeNativeNoFunction  = "ERR_406_NATIVE_NO_FUNCTION"

	// Internal errors (500-599)
	ErrCodeInternal = "ERR_501_INTERNAL"
)

// categoryFromCode extracts category from error code.
func categoryFromCode(code string) Category {
	if len(code) < 7 {
		return CategoryInternal
	}

	// Extract numeric portion (e.g., "201" from "ERR_201_LIBRARY_LOAD_FAILED")
	switch code[4] {
	case '1':
		return CategoryConfig
	case '2':
		return CategoryLoad
	case '4':
		return CategoryPolicy
	default:
		return CategoryInternal
	}
}

// severityFromCode determines severity based on error code.
// Nothing in the bridge aborts the runtime; a missing loader on the
// platform is the only condition that cannot improve on retry.
func severityFromCode(code string) Severity {
	switch code {
	case ErrCodePlatformUnsupported:
		return SeverityFatal
	case ErrCodeNativeNotFound:
		return SeverityWarning
	default:
		return SeverityError
	}
}
