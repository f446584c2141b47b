package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBridgeError_Unwrap_PreservesCause(t *testing.T) {
	// Given: an OS loader error
	cause := errors.New("libfoo.so: cannot open shared object file")

	// When: wrapping with BridgeError
	be := New(ErrCodeLibraryLoadFailed, "load libfoo.so", cause)

	// Then: unwrapping returns the cause
	require.NotNil(t, be)
	assert.Equal(t, cause, errors.Unwrap(be))
	assert.True(t, errors.Is(be, cause))
}

func TestBridgeError_Error_ReturnsFormattedMessage(t *testing.T) {
	tests := []struct {
		name     string
		code     string
		message  string
		expected string
	}{
		{
			name:     "config error",
			code:     ErrCodeConfigInvalid,
			message:  "mangle prefix is empty",
			expected: "[ERR_102_CONFIG_INVALID] mangle prefix is empty",
		},
		{
			name:     "load error",
			code:     ErrCodeLibraryLoadFailed,
			message:  "libx.so not found",
			expected: "[ERR_201_LIBRARY_LOAD_FAILED] libx.so not found",
		},
		{
			name:     "permission error",
			code:     ErrCodePermissionDenied,
			message:  "denied",
			expected: "[ERR_401_PERMISSION_DENIED] denied",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := New(tt.code, tt.message, nil)
			assert.Equal(t, tt.expected, err.Error())
		})
	}
}

func TestBridgeError_Is_MatchesByCode(t *testing.T) {
	err := New(ErrCodeVersionMismatch, "libx.so reported version 7", nil)

	assert.True(t, errors.Is(err, ErrVersionMismatch))
	assert.False(t, errors.Is(err, ErrConstructorFailed))

	wrapped := fmt.Errorf("loading: %w", err)
	assert.True(t, errors.Is(wrapped, ErrVersionMismatch))
}

func TestCategoryAndSeverityFromCode(t *testing.T) {
	tests := []struct {
		code     string
		category Category
		severity Severity
	}{
		{ErrCodeConfigNotFound, CategoryConfig, SeverityError},
		{ErrCodeLibraryLoadFailed, CategoryLoad, SeverityError},
		{ErrCodePlatformUnsupported, CategoryLoad, SeverityFatal},
		{ErrCodePermissionDenied, CategoryPolicy, SeverityError},
		{ErrCodeNativeNotFound, CategoryPolicy, SeverityWarning},
		{ErrCodeNativeNoFunction, CategoryPolicy, SeverityError},
		{ErrCodeInternal, CategoryInternal, SeverityError},
		{"BAD", CategoryInternal, SeverityError},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			err := New(tt.code, "msg", nil)
			assert.Equal(t, tt.category, err.Category)
			assert.Equal(t, tt.severity, err.Severity)
		})
	}
}

func TestWrap_NilReturnsNil(t *testing.T) {
	assert.Nil(t, Wrap(ErrCodeInternal, nil))
}

func TestWithDetail_And_WithSuggestion(t *testing.T) {
	err := New(ErrCodeLibraryLoadFailed, "load failed", nil).
		WithDetail("name", "libx.so").
		WithSuggestion("add the directory to library_paths")

	assert.Equal(t, "libx.so", err.Details["name"])
	assert.Equal(t, "add the directory to library_paths", err.Suggestion)
}

func TestIsIncompatible(t *testing.T) {
	assert.True(t, IsIncompatible(New(ErrCodeVersionMismatch, "v", nil)))
	assert.True(t, IsIncompatible(fmt.Errorf("x: %w", New(ErrCodeConstructorFailed, "c", nil))))
	assert.False(t, IsIncompatible(New(ErrCodeLibraryLoadFailed, "l", nil)))
	assert.False(t, IsIncompatible(errors.New("plain")))
	assert.False(t, IsIncompatible(nil))
}

func TestGetCode_And_GetCategory(t *testing.T) {
	err := fmt.Errorf("outer: %w", New(ErrCodePermissionDenied, "no", nil))
	assert.Equal(t, ErrCodePermissionDenied, GetCode(err))
	assert.Equal(t, CategoryPolicy, GetCategory(err))
	assert.Empty(t, GetCode(errors.New("plain")))
	assert.Empty(t, GetCategory(nil))
}

func TestIsFatal(t *testing.T) {
	assert.True(t, IsFatal(New(ErrCodePlatformUnsupported, "no dlopen", nil)))
	assert.False(t, IsFatal(New(ErrCodeLibraryLoadFailed, "x", nil)))
	assert.False(t, IsFatal(errors.New("plain")))
}
