package errors

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrorType represents different categories of errors.
type ErrorType string

const (
	ErrorTypeValidation ErrorType = "validation"
	ErrorTypeIO         ErrorType = "io"
	ErrorTypeConfig     ErrorType = "config"
	ErrorTypeInternal   ErrorType = "internal"
)

// ForgeError is a structured error type with context.
type ForgeError struct {
	Type        ErrorType
	Code        string
	Message     string
	Cause       error
	Context     map[string]interface{}
	Token       string
	FilePath    string
	Recoverable bool
}

// Error implements the error interface.
func (e *ForgeError) Error() string {
	var parts []string

	if e.Code != "" {
		parts = append(parts, fmt.Sprintf("[%s]", e.Code))
	}

	if e.Token != "" {
		parts = append(parts, "token:"+e.Token)
	}

	if e.FilePath != "" {
		parts = append(parts, e.FilePath)
	}

	parts = append(parts, e.Message)

	result := strings.Join(parts, " ")

	if e.Cause != nil {
		result += fmt.Sprintf(": %v", e.Cause)
	}

	return result
}

// Unwrap returns the underlying cause error.
func (e *ForgeError) Unwrap() error {
	return e.Cause
}

// Is implements error comparison.
func (e *ForgeError) Is(target error) bool {
	var t *ForgeError
	if errors.As(target, &t) {
		return e.Type == t.Type && e.Code == t.Code
	}

	return false
}

// WithContext adds context information to the error.
func (e *ForgeError) WithContext(key string, value interface{}) *ForgeError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value

	return e
}

// WithFile records the draft or config file the error came from.
func (e *ForgeError) WithFile(filePath string) *ForgeError {
	e.FilePath = filePath

	return e
}

// WithToken adds the token key the error is about.
func (e *ForgeError) WithToken(token string) *ForgeError {
	e.Token = token

	return e
}

// Error creation functions

// NewValidationError creates a validation error.
func NewValidationError(code, message string) *ForgeError {
	return &ForgeError{
		Type:        ErrorTypeValidation,
		Code:        code,
		Message:     message,
		Recoverable: true,
	}
}

// NewIOError creates an I/O error.
func NewIOError(code, message string, cause error) *ForgeError {
	return &ForgeError{
		Type:        ErrorTypeIO,
		Code:        code,
		Message:     message,
		Cause:       cause,
		Recoverable: false,
	}
}

// NewConfigError creates a configuration error.
func NewConfigError(code, message string) *ForgeError {
	return &ForgeError{
		Type:        ErrorTypeConfig,
		Code:        code,
		Message:     message,
		Recoverable: false,
	}
}

// NewInternalError creates an internal error.
func NewInternalError(code, message string, cause error) *ForgeError {
	return &ForgeError{
		Type:        ErrorTypeInternal,
		Code:        code,
		Message:     message,
		Cause:       cause,
		Recoverable: false,
	}
}

// AsForgeError finds the first ForgeError in err's chain.
func AsForgeError(err error) (*ForgeError, bool) {
	var fe *ForgeError
	if errors.As(err, &fe) {
		return fe, true
	}

	return nil, false
}

// IsRecoverable checks if an error is recoverable.
func IsRecoverable(err error) bool {
	var fe *ForgeError
	if errors.As(err, &fe) {
		return fe.Recoverable
	}

	return false
}

// IsValidationError checks if an error came from rejected input.
func IsValidationError(err error) bool {
	var fe *ForgeError
	if errors.As(err, &fe) {
		return fe.Type == ErrorTypeValidation
	}

	return false
}

// ErrorHandler provides centralized error handling.
type ErrorHandler struct {
	logger Logger
}

// Logger interface for error logging.
type Logger interface {
	Error(ctx context.Context, err error, msg string, fields ...interface{})
	Warn(ctx context.Context, err error, msg string, fields ...interface{})
}

// NewErrorHandler creates a new error handler.
func NewErrorHandler(logger Logger) *ErrorHandler {
	return &ErrorHandler{logger: logger}
}

// Handle logs an error at a level that matches its type.
func (h *ErrorHandler) Handle(ctx context.Context, err error) {
	if err == nil || h.logger == nil {
		return
	}

	var fe *ForgeError
	if !errors.As(err, &fe) {
		h.logger.Error(ctx, err, "Unhandled error occurred")
		return
	}

	switch fe.Type {
	case ErrorTypeValidation:
		h.logger.Warn(ctx, fe, "Validation error occurred",
			"type", fe.Type,
			"code", fe.Code,
			"token", fe.Token)
	case ErrorTypeIO:
		h.logger.Warn(ctx, fe, "I/O error occurred",
			"type", fe.Type,
			"code", fe.Code,
			"file", fe.FilePath)
	default:
		h.logger.Error(ctx, fe, "Error occurred",
			"type", fe.Type,
			"code", fe.Code)
	}
}

// Common error codes.
const (
	ErrCodeInvalidColor      = "ERR_INVALID_COLOR"
	ErrCodeUnknownToken      = "ERR_UNKNOWN_TOKEN"
	ErrCodeUnknownMode       = "ERR_UNKNOWN_MODE"
	ErrCodeUnknownCategory   = "ERR_UNKNOWN_CATEGORY"
	ErrCodeUnknownFormat     = "ERR_UNKNOWN_FORMAT"
	ErrCodeConfigInvalid     = "ERR_CONFIG_INVALID"
	ErrCodeFileNotFound      = "ERR_FILE_NOT_FOUND"
	ErrCodeClipboard         = "ERR_CLIPBOARD"
	ErrCodeInternalError     = "ERR_INTERNAL"
	ErrCodeValidationFailed  = "ERR_VALIDATION_FAILED"
	ErrCodeUnsupportedSource = "ERR_UNSUPPORTED_SOURCE"
)

// ValidationError interface for field-specific validation errors.
type ValidationError interface {
	error
	Field() string
	Value() interface{}
	Suggestions() []string
}

// FieldValidationError implements ValidationError for specific field errors.
type FieldValidationError struct {
	FieldName    string
	FieldValue   interface{}
	ErrorMessage string
	HelpText     []string
}

// Error implements the error interface.
func (fve *FieldValidationError) Error() string {
	return fmt.Sprintf("validation error in field '%s': %s", fve.FieldName, fve.ErrorMessage)
}

// Field returns the field name that failed validation.
func (fve *FieldValidationError) Field() string {
	return fve.FieldName
}

// Value returns the invalid value.
func (fve *FieldValidationError) Value() interface{} {
	return fve.FieldValue
}

// Suggestions returns helpful suggestions for fixing the error.
func (fve *FieldValidationError) Suggestions() []string {
	return fve.HelpText
}

// NewFieldValidationError creates a new field validation error.
func NewFieldValidationError(
	field string,
	value interface{},
	message string,
	suggestions ...string,
) *FieldValidationError {
	return &FieldValidationError{
		FieldName:    field,
		FieldValue:   value,
		ErrorMessage: message,
		HelpText:     suggestions,
	}
}

// ValidationErrorCollection represents a collection of validation errors.
type ValidationErrorCollection struct {
	Errors []ValidationError
}

// Error implements the error interface.
func (vec *ValidationErrorCollection) Error() string {
	if len(vec.Errors) == 0 {
		return "no validation errors"
	}
	if len(vec.Errors) == 1 {
		return vec.Errors[0].Error()
	}

	return fmt.Sprintf("validation failed with %d errors", len(vec.Errors))
}

// Add adds a validation error to the collection.
func (vec *ValidationErrorCollection) Add(err ValidationError) {
	vec.Errors = append(vec.Errors, err)
}

// AddField adds a field validation error to the collection.
func (vec *ValidationErrorCollection) AddField(
	field string,
	value interface{},
	message string,
	suggestions ...string,
) {
	vec.Add(NewFieldValidationError(field, value, message, suggestions...))
}

// HasErrors returns true if there are any validation errors.
func (vec *ValidationErrorCollection) HasErrors() bool {
	return len(vec.Errors) > 0
}

// ToForgeError converts the validation collection to a ForgeError.
func (vec *ValidationErrorCollection) ToForgeError() *ForgeError {
	if !vec.HasErrors() {
		return nil
	}

	var messages []string
	context := make(map[string]interface{})

	for _, err := range vec.Errors {
		messages = append(messages, err.Error())
		context[err.Field()] = map[string]interface{}{
			"value":       err.Value(),
			"suggestions": err.Suggestions(),
		}
	}

	return &ForgeError{
		Type:        ErrorTypeValidation,
		Code:        ErrCodeValidationFailed,
		Message:     strings.Join(messages, "; "),
		Context:     context,
		Recoverable: true,
	}
}

// Helper functions for common errors

// ErrInvalidColor creates an error for a value that is not an accepted color.
func ErrInvalidColor(token, value string) *ForgeError {
	return NewValidationError(ErrCodeInvalidColor, "invalid color: "+value).WithToken(token)
}

// ErrUnknownToken creates an error for a key outside a bundle's fixed key set.
func ErrUnknownToken(token string) *ForgeError {
	return NewValidationError(ErrCodeUnknownToken, "unknown token: "+token).WithToken(token)
}

// ErrUnknownMode creates an error for a color mode other than light or dark.
func ErrUnknownMode(mode string) *ForgeError {
	return NewValidationError(ErrCodeUnknownMode, "unknown color mode: "+mode)
}

// ErrUnknownCategory creates an error for a preset category that does not exist.
func ErrUnknownCategory(category string) *ForgeError {
	return NewValidationError(ErrCodeUnknownCategory, "unknown preset category: "+category)
}

// ErrUnknownFormat creates an error for an unsupported snippet format.
func ErrUnknownFormat(format string) *ForgeError {
	return NewValidationError(ErrCodeUnknownFormat, "unknown snippet format: "+format)
}
