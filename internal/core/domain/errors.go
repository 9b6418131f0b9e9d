// Package domain defines the core domain models for the migrations tool.
package domain

import (
	"errors"
	"fmt"
)

// DomainError represents a domain error with a structured error code.
//
// The message is meant for direct display on the command line; the code
// is stable and used for comparison and metrics labels.
type DomainError struct {
	Code    string // Error code (e.g., "MG-CONF-4000")
	Message string // Human-readable message
	Details string // Optional additional details
	Cause   error  // Underlying error (if any)
}

// Error implements the error interface.
func (e *DomainError) Error() string {
	switch {
	case e.Details != "":
		return fmt.Sprintf("%s: %s", e.Message, e.Details)
	case e.Cause != nil:
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	default:
		return e.Message
	}
}

// Unwrap returns the underlying error for errors.Unwrap() support.
func (e *DomainError) Unwrap() error {
	return e.Cause
}

// Is implements errors.Is() support for error comparison.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// NewDomainError creates a new DomainError with the given code and message.
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// WithMessage returns a copy of the error with a formatted message.
func (e *DomainError) WithMessage(format string, args ...any) *DomainError {
	return &DomainError{
		Code:    e.Code,
		Message: fmt.Sprintf(format, args...),
		Details: e.Details,
		Cause:   e.Cause,
	}
}

// WithDetails returns a copy of the error with additional details.
func (e *DomainError) WithDetails(details string) *DomainError {
	return &DomainError{
		Code:    e.Code,
		Message: e.Message,
		Details: details,
		Cause:   e.Cause,
	}
}

// WithCause returns a copy of the error wrapping the given cause.
func (e *DomainError) WithCause(cause error) *DomainError {
	return &DomainError{
		Code:    e.Code,
		Message: e.Message,
		Details: e.Details,
		Cause:   cause,
	}
}

// IsDomainError checks if an error is a DomainError with the given code.
// If code is empty, it only checks if the error is a DomainError.
func IsDomainError(err error, code string) bool {
	var de *DomainError
	if errors.As(err, &de) {
		if code == "" {
			return true
		}
		return de.Code == code
	}
	return false
}

// GetErrorCode extracts the error code from an error if it's a DomainError.
func GetErrorCode(err error) string {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code
	}
	return ""
}

// ============================================================================
// File Errors (FILE)
// ============================================================================

var (
	// ErrFileNotFound indicates no search location holds the requested file.
	ErrFileNotFound = NewDomainError("MG-FILE-4040", "config file not found")

	// ErrUnreadableFile indicates the file exists but could not be read.
	ErrUnreadableFile = NewDomainError("MG-FILE-4030", "config file unreadable")

	// ErrInvalidFileFormat indicates the parser rejected the file content.
	ErrInvalidFileFormat = NewDomainError("MG-FILE-4000", "invalid config file format")

	// ErrUnsupportedFormat indicates no parser is registered for the format.
	ErrUnsupportedFormat = NewDomainError("MG-FILE-4150", "unsupported config file format")
)

// ============================================================================
// Configuration Errors (CONF)
// ============================================================================

var (
	// ErrInvalidConfigurationKey indicates a key outside the closed schema.
	ErrInvalidConfigurationKey = NewDomainError("MG-CONF-4000", "invalid configuration key")

	// ErrInvalidConfigurationValue indicates a known key with a value of the wrong shape.
	ErrInvalidConfigurationValue = NewDomainError("MG-CONF-4001", "invalid configuration value")

	// ErrInvalidMigrationEntry indicates a malformed element of the migrations list.
	ErrInvalidMigrationEntry = NewDomainError("MG-CONF-4002", "invalid migration entry")

	// ErrIncompleteConfiguration indicates a required setting was never applied.
	ErrIncompleteConfiguration = NewDomainError("MG-CONF-4220", "incomplete configuration")
)

// ============================================================================
// Migration Errors (MIGR)
// ============================================================================

var (
	// ErrDuplicateMigrationVersion indicates a version registered twice.
	ErrDuplicateMigrationVersion = NewDomainError("MG-MIGR-4090", "duplicate migration version")

	// ErrMigrationsDirectoryNotFound indicates the migrations directory is missing.
	ErrMigrationsDirectoryNotFound = NewDomainError("MG-MIGR-4040", "migrations directory not found")
)

// FileNotFound returns ErrFileNotFound for the requested filename.
func FileNotFound(filename string) *DomainError {
	return ErrFileNotFound.WithMessage("Given config file %q does not exist.", filename)
}

// UnreadableFile returns ErrUnreadableFile for path, wrapping the I/O error.
func UnreadableFile(path string, cause error) *DomainError {
	return ErrUnreadableFile.WithMessage("Config file %q could not be read", path).WithCause(cause)
}

// InvalidFileFormat returns ErrInvalidFileFormat for path, wrapping the parser error.
func InvalidFileFormat(path, format string, cause error) *DomainError {
	return ErrInvalidFileFormat.WithMessage("Config file %q is not a valid %s document", path, format).WithCause(cause)
}

// UnsupportedFormat returns ErrUnsupportedFormat for the given format or extension.
func UnsupportedFormat(format string) *DomainError {
	return ErrUnsupportedFormat.WithMessage("Config file format %q is not supported.", format)
}

// InvalidConfigurationKey returns ErrInvalidConfigurationKey naming key exactly as given.
func InvalidConfigurationKey(key string) *DomainError {
	return ErrInvalidConfigurationKey.WithMessage("Migrations configuration key %q does not exist.", key)
}

// InvalidConfigurationValue returns ErrInvalidConfigurationValue for key.
func InvalidConfigurationValue(key, want string, got any) *DomainError {
	return ErrInvalidConfigurationValue.WithMessage("Migrations configuration key %q expects %s, got %T.", key, want, got)
}

// MissingSetting returns ErrIncompleteConfiguration for a required setting.
func MissingSetting(setting string) *DomainError {
	return ErrIncompleteConfiguration.WithMessage("Migrations %s must be configured in order to use migrations.", setting)
}

// DuplicateMigrationVersion returns ErrDuplicateMigrationVersion for version.
func DuplicateMigrationVersion(version string) *DomainError {
	return ErrDuplicateMigrationVersion.WithMessage("Migration version %q is already registered.", version)
}

// MigrationsDirectoryNotFound returns ErrMigrationsDirectoryNotFound for dir.
func MigrationsDirectoryNotFound(dir string) *DomainError {
	return ErrMigrationsDirectoryNotFound.WithMessage("Migrations directory %q is not a valid directory.", dir)
}
