package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unique error code for stable testing
type ErrorCode string

// Error codes for different error categories
const (
	// General errors
	ErrUnknown       ErrorCode = "UNKNOWN"
	ErrInternal      ErrorCode = "INTERNAL"
	ErrInvalidInput  ErrorCode = "INVALID_INPUT"
	ErrNotFound      ErrorCode = "NOT_FOUND"
	ErrAlreadyExists ErrorCode = "ALREADY_EXISTS"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"

	// Path construction and algebra errors. These are caller bugs and are never retried.
	ErrInvalidPath  ErrorCode = "INVALID_PATH"
	ErrNotUnderRoot ErrorCode = "NOT_UNDER_ROOT"

	// Path kind mismatches detected on disk
	ErrNotADirectory ErrorCode = "NOT_A_DIRECTORY"
	ErrNotAFile      ErrorCode = "NOT_A_FILE"

	// Lock contention, antivirus interference or momentary access denial.
	// Only the delete policies retry on it.
	ErrTransientIO ErrorCode = "TRANSIENT_IO"

	// FileSystem errors
	ErrDigestSourceUnavailable ErrorCode = "DIGEST_SOURCE_UNAVAILABLE"
	ErrFileRead                ErrorCode = "FILE_READ"
	ErrFileWrite               ErrorCode = "FILE_WRITE"
	ErrFileCopy                ErrorCode = "FILE_COPY"
	ErrFileMove                ErrorCode = "FILE_MOVE"
	ErrFileDelete              ErrorCode = "FILE_DELETE"
	ErrFileAttributes          ErrorCode = "FILE_ATTRIBUTES"
	ErrDirCreate               ErrorCode = "DIR_CREATE"
	ErrDirDelete               ErrorCode = "DIR_DELETE"
	ErrDirList                 ErrorCode = "DIR_LIST"
)

// DiskError represents a structured error with code and details
type DiskError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *DiskError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *DiskError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *DiskError) Is(target error) bool {
	var targetErr *DiskError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new DiskError with the given code and message
func New(code ErrorCode, message string) *DiskError {
	return &DiskError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new DiskError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *DiskError {
	return &DiskError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a DiskError
func Wrap(err error, code ErrorCode, message string) *DiskError {
	if err == nil {
		return nil
	}
	return &DiskError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *DiskError {
	if err == nil {
		return nil
	}
	return &DiskError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *DiskError) WithDetail(key string, value interface{}) *DiskError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// WithDetails adds multiple details to the error
func (e *DiskError) WithDetails(details map[string]interface{}) *DiskError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	for k, v := range details {
		e.Details[k] = v
	}
	return e
}

// IsErrorCode checks if any error in the chain carries the given code.
func IsErrorCode(err error, code ErrorCode) bool {
	if err == nil {
		return false
	}
	return errors.Is(err, &DiskError{Code: code})
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a DiskError
func GetErrorCode(err error) ErrorCode {
	var diskErr *DiskError
	if errors.As(err, &diskErr) {
		return diskErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a DiskError
func GetErrorDetails(err error) map[string]interface{} {
	var diskErr *DiskError
	if errors.As(err, &diskErr) {
		return diskErr.Details
	}
	return nil
}
