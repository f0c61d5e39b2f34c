// Package errors provides structured error handling for scansheet operations.
// It defines error codes and error types for the three places a run can fail:
// reading scan files, writing the workbook and loading configuration.
package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorCode represents different types of errors that can occur.
type ErrorCode string

const (
	// General errors.
	CodeUnknown       ErrorCode = "UNKNOWN"
	CodeValidation    ErrorCode = "VALIDATION"
	CodeConfiguration ErrorCode = "CONFIGURATION"
	CodeCanceled      ErrorCode = "CANCELED"

	// Scan file errors.
	CodeFileNotFound   ErrorCode = "FILE_NOT_FOUND"
	CodeFilePermission ErrorCode = "FILE_PERMISSION"
	CodeParse          ErrorCode = "PARSE_FAILED"

	// Workbook errors.
	CodeWorkbookCreate ErrorCode = "WORKBOOK_CREATE"
	CodeWorkbookWrite  ErrorCode = "WORKBOOK_WRITE"
	CodeWorkbookClose  ErrorCode = "WORKBOOK_CLOSE"
)

// ErrWorkbookClosed is returned when a workbook is used after Close.
var ErrWorkbookClosed = stderrors.New("workbook already closed")

// ParseError represents a scan file that could not be read or decoded.
type ParseError struct {
	Code    ErrorCode
	Message string
	File    string
	Cause   error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	msg := fmt.Sprintf("[%s] %s", e.Code, e.Message)
	if e.File != "" {
		msg = fmt.Sprintf("%s (file: %s)", msg, e.File)
	}
	if e.Cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

// Unwrap returns the underlying error for error unwrapping.
func (e *ParseError) Unwrap() error {
	return e.Cause
}

// WrapParseError wraps an existing error as a parse error.
func WrapParseError(code ErrorCode, message, file string, err error) *ParseError {
	return &ParseError{
		Code:    code,
		Message: message,
		File:    file,
		Cause:   err,
	}
}

// WorkbookError represents a failure while building or saving the workbook.
type WorkbookError struct {
	Code    ErrorCode
	Message string
	Path    string
	Sheet   string
	Cause   error
}

// Error implements the error interface.
func (e *WorkbookError) Error() string {
	msg := fmt.Sprintf("[%s] %s", e.Code, e.Message)
	switch {
	case e.Sheet != "":
		msg = fmt.Sprintf("%s (sheet: %s)", msg, e.Sheet)
	case e.Path != "":
		msg = fmt.Sprintf("%s (path: %s)", msg, e.Path)
	}
	if e.Cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

// Unwrap returns the underlying error.
func (e *WorkbookError) Unwrap() error {
	return e.Cause
}

// WithSheet records the worksheet the error happened on.
func (e *WorkbookError) WithSheet(sheet string) *WorkbookError {
	e.Sheet = sheet
	return e
}

// WrapWorkbookError wraps an existing error as a workbook error.
func WrapWorkbookError(code ErrorCode, message, path string, err error) *WorkbookError {
	return &WorkbookError{
		Code:    code,
		Message: message,
		Path:    path,
		Cause:   err,
	}
}

// ConfigError represents configuration-related errors.
type ConfigError struct {
	Code    ErrorCode
	Message string
	Field   string
	Value   interface{}
	Cause   error
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("[%s] %s (field: %s)", e.Code, e.Message, e.Field)
	}
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error.
func (e *ConfigError) Unwrap() error {
	return e.Cause
}

// NewConfigFieldError creates a configuration error for a specific field.
func NewConfigFieldError(code ErrorCode, message, field string, value interface{}) *ConfigError {
	return &ConfigError{
		Code:    code,
		Message: message,
		Field:   field,
		Value:   value,
	}
}

// WrapConfigError wraps an existing error as a configuration error.
func WrapConfigError(code ErrorCode, message string, err error) *ConfigError {
	return &ConfigError{
		Code:    code,
		Message: message,
		Cause:   err,
	}
}

// Utility functions for common error operations

// GetCode extracts the error code from the first coded error in the chain.
func GetCode(err error) ErrorCode {
	var pe *ParseError
	if stderrors.As(err, &pe) {
		return pe.Code
	}
	var we *WorkbookError
	if stderrors.As(err, &we) {
		return we.Code
	}
	var ce *ConfigError
	if stderrors.As(err, &ce) {
		return ce.Code
	}
	return CodeUnknown
}

// IsCode checks if an error has a specific error code.
func IsCode(err error, code ErrorCode) bool {
	return err != nil && GetCode(err) == code
}

// Common error creation functions

// ErrFileNotFound creates an error for a scan file that does not exist.
func ErrFileNotFound(file string, err error) *ParseError {
	return WrapParseError(CodeFileNotFound, "Scan file not found", file, err)
}

// ErrParse creates an error for a scan file that could not be decoded.
func ErrParse(file string, err error) *ParseError {
	return WrapParseError(CodeParse, "Failed to parse scan file", file, err)
}

// ErrWorkbookClose creates an error for a workbook that could not be saved.
func ErrWorkbookClose(path string, err error) *WorkbookError {
	return WrapWorkbookError(CodeWorkbookClose, "Failed to save workbook", path, err)
}

// ErrConfigInvalid creates an error for invalid configuration.
func ErrConfigInvalid(field string, value interface{}) *ConfigError {
	return NewConfigFieldError(CodeValidation, "Invalid configuration value", field, value)
}

// ErrConfigMissing creates an error for missing required configuration.
func ErrConfigMissing(field string) *ConfigError {
	return NewConfigFieldError(CodeConfiguration, "Required configuration field missing", field, nil)
}
