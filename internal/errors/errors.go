// Package errors provides centralized error definitions and error handling utilities
// for oxdebate. It defines pipeline-specific errors, semantic error types,
// error constructors with context wrapping, and error classification helpers.
//
// # Error Types
//
// Pipeline errors identify the stage that failed:
//   - ConfigError: secrets or settings could not be loaded
//   - GenerationError: the language model call for a segment failed
//   - SynthesisError: the speech synthesis call for a segment failed
//
// Semantic errors represent common error conditions:
//   - ValidationError: invalid input (for example an empty motion)
//
// # Usage
//
// Creating errors:
//
//	err := errors.NewConfigError("secrets file missing", errors.ErrSecretsNotFound).
//		WithPath("config/secrets/config.json")
//
//	err := errors.NewGenerationError("chat completion failed", cause).
//		WithSegment("proposition_rebuttal").WithStatusCode(502)
//
// Checking errors:
//
//	if errors.Is(err, errors.ErrSecretsNotFound) { ... }
//
//	var genErr *errors.GenerationError
//	if errors.As(err, &genErr) { ... }
//
// # Error Classification
//
// No operation in oxdebate is retried. Retryable is still recorded so that
// the CLI can tell the user a re-run is likely to succeed (rate limits,
// upstream 5xx responses).
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Re-export standard library functions for convenience.
// This allows callers to import only this package for all error handling.
var (
	Is     = errors.Is
	As     = errors.As
	Unwrap = errors.Unwrap
	New    = errors.New
	Join   = errors.Join
)

// Severity represents the severity level of an error.
type Severity int

const (
	// SeverityDebug is for errors that are useful for debugging but not critical.
	SeverityDebug Severity = iota
	// SeverityInfo is for informational errors that don't indicate a problem.
	SeverityInfo
	// SeverityWarning is for errors that might indicate a problem but aren't critical.
	SeverityWarning
	// SeverityError is for errors that indicate a real problem.
	SeverityError
	// SeverityCritical is for errors that require immediate attention.
	SeverityCritical
)

// String returns the string representation of the severity level.
func (s Severity) String() string {
	switch s {
	case SeverityDebug:
		return "debug"
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	case SeverityCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// -----------------------------------------------------------------------------
// Sentinel Errors
// -----------------------------------------------------------------------------

// Configuration sentinel errors
var (
	// ErrSecretsNotFound indicates that the API secrets file does not exist.
	ErrSecretsNotFound = New("secrets file not found")
	// ErrMissingAPIKey indicates that the secrets contain no usable API key.
	ErrMissingAPIKey = New("no API key configured")
	// ErrUnknownProvider indicates an unsupported speech provider name.
	ErrUnknownProvider = New("unknown TTS provider")
	// ErrVoiceMismatch indicates a voice ID that belongs to another provider.
	ErrVoiceMismatch = New("voice is not available from the TTS provider")
)

// Debate sentinel errors
var (
	// ErrEmptyMotion indicates that the motion is blank.
	ErrEmptyMotion = New("motion cannot be empty")
	// ErrIncompleteTranscript indicates that not every segment has text.
	ErrIncompleteTranscript = New("transcript is incomplete")
	// ErrEmptyCompletion indicates that the language model returned no text.
	ErrEmptyCompletion = New("language model returned no content")
)

// Speech sentinel errors
var (
	// ErrEmptyText indicates an attempt to synthesize empty text.
	ErrEmptyText = New("text cannot be empty")
	// ErrEmptyAudio indicates that the speech API returned zero bytes.
	ErrEmptyAudio = New("speech API returned no audio")
)

// Upstream API sentinel errors
var (
	// ErrRateLimited indicates an HTTP 429 from an upstream API.
	ErrRateLimited = New("rate limit exceeded")
	// ErrUnauthorized indicates the upstream API rejected the key.
	ErrUnauthorized = New("invalid API key")
	// ErrUpstream indicates a non-success response not covered above.
	ErrUpstream = New("upstream API error")
)

// -----------------------------------------------------------------------------
// Base Error Interface
// -----------------------------------------------------------------------------

// DebateError is the base interface for all oxdebate errors.
type DebateError interface {
	error

	// Unwrap returns the underlying error, if any.
	Unwrap() error

	// Severity returns the severity level of this error.
	Severity() Severity

	// IsRetryable returns true if re-running the command may succeed.
	IsRetryable() bool

	// IsUserFacing returns true if the error message is safe to display
	// to end users.
	IsUserFacing() bool
}

// baseError provides common functionality for all error types.
type baseError struct {
	message    string
	cause      error
	severity   Severity
	retryable  bool
	userFacing bool
}

func (e *baseError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.message, e.cause)
	}
	return e.message
}

func (e *baseError) Unwrap() error { return e.cause }

func (e *baseError) Severity() Severity { return e.severity }

func (e *baseError) IsRetryable() bool { return e.retryable }

func (e *baseError) IsUserFacing() bool { return e.userFacing }

func (e *baseError) setCause(err error) { e.cause = err }

func (e *baseError) setRetryable(r bool) { e.retryable = r }

// format renders "<prefix> [k=v, ...]: message: cause".
func (e *baseError) format(prefix string, parts []string) string {
	if len(parts) > 0 {
		prefix = fmt.Sprintf("%s [%s]", prefix, strings.Join(parts, ", "))
	}
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", prefix, e.message, e.cause)
	}
	return fmt.Sprintf("%s: %s", prefix, e.message)
}

// -----------------------------------------------------------------------------
// Pipeline Errors
// -----------------------------------------------------------------------------

// ConfigError represents a failure to load secrets or settings.
//
// Example:
//
//	err := errors.NewConfigError("cannot read secrets", errors.ErrSecretsNotFound).WithPath(path)
//	fmt.Println(err) // "config error [path=config/secrets/config.json]: cannot read secrets: secrets file not found"
type ConfigError struct {
	baseError
	Path string
	Hint string
}

// NewConfigError creates a new ConfigError.
func NewConfigError(message string, cause error) *ConfigError {
	return &ConfigError{
		baseError: baseError{
			message:    message,
			cause:      cause,
			severity:   SeverityCritical,
			userFacing: true,
		},
	}
}

// WithPath adds the offending file path to the error context.
func (e *ConfigError) WithPath(path string) *ConfigError {
	e.Path = path
	return e
}

// WithHint attaches a remediation hint shown after the error.
func (e *ConfigError) WithHint(hint string) *ConfigError {
	e.Hint = hint
	return e
}

// Error returns the formatted error message.
func (e *ConfigError) Error() string {
	var parts []string
	if e.Path != "" {
		parts = append(parts, "path="+e.Path)
	}
	return e.format("config error", parts)
}

// GenerationError represents a failed language model call.
type GenerationError struct {
	baseError
	Segment    string
	Model      string
	StatusCode int
}

// NewGenerationError creates a new GenerationError.
func NewGenerationError(message string, cause error) *GenerationError {
	return &GenerationError{
		baseError: baseError{
			message:    message,
			cause:      cause,
			severity:   SeverityError,
			userFacing: true,
		},
	}
}

// WithSegment records which debate segment was being generated.
func (e *GenerationError) WithSegment(key string) *GenerationError {
	e.Segment = key
	return e
}

// WithModel records the model that was called.
func (e *GenerationError) WithModel(model string) *GenerationError {
	e.Model = model
	return e
}

// WithStatusCode records the HTTP status and derives retryability from it.
func (e *GenerationError) WithStatusCode(code int) *GenerationError {
	e.StatusCode = code
	e.retryable = retryableStatus(code)
	return e
}

// WithRetryable sets whether the error is retryable.
func (e *GenerationError) WithRetryable(r bool) *GenerationError {
	e.setRetryable(r)
	return e
}

// Error returns the formatted error message.
func (e *GenerationError) Error() string {
	var parts []string
	if e.Segment != "" {
		parts = append(parts, "segment="+e.Segment)
	}
	if e.Model != "" {
		parts = append(parts, "model="+e.Model)
	}
	if e.StatusCode != 0 {
		parts = append(parts, fmt.Sprintf("status=%d", e.StatusCode))
	}
	return e.format("generation error", parts)
}

// SynthesisError represents a failed speech synthesis call.
type SynthesisError struct {
	baseError
	Segment    string
	Provider   string
	StatusCode int
}

// NewSynthesisError creates a new SynthesisError.
func NewSynthesisError(message string, cause error) *SynthesisError {
	return &SynthesisError{
		baseError: baseError{
			message:    message,
			cause:      cause,
			severity:   SeverityError,
			userFacing: true,
		},
	}
}

// WithSegment records which debate segment was being voiced.
func (e *SynthesisError) WithSegment(key string) *SynthesisError {
	e.Segment = key
	return e
}

// WithProvider records the speech provider name.
func (e *SynthesisError) WithProvider(provider string) *SynthesisError {
	e.Provider = provider
	return e
}

// WithStatusCode records the HTTP status and derives retryability from it.
func (e *SynthesisError) WithStatusCode(code int) *SynthesisError {
	e.StatusCode = code
	e.retryable = retryableStatus(code)
	return e
}

// WithRetryable sets whether the error is retryable.
func (e *SynthesisError) WithRetryable(r bool) *SynthesisError {
	e.setRetryable(r)
	return e
}

// Error returns the formatted error message.
func (e *SynthesisError) Error() string {
	var parts []string
	if e.Segment != "" {
		parts = append(parts, "segment="+e.Segment)
	}
	if e.Provider != "" {
		parts = append(parts, "provider="+e.Provider)
	}
	if e.StatusCode != 0 {
		parts = append(parts, fmt.Sprintf("status=%d", e.StatusCode))
	}
	return e.format("synthesis error", parts)
}

// -----------------------------------------------------------------------------
// Semantic Errors
// -----------------------------------------------------------------------------

// ValidationError represents invalid input.
//
// Example:
//
//	err := errors.NewValidationError("motion cannot be empty").WithField("motion").WithCause(errors.ErrEmptyMotion)
type ValidationError struct {
	baseError
	Field string
	Value any
}

// NewValidationError creates a new ValidationError.
func NewValidationError(message string) *ValidationError {
	return &ValidationError{
		baseError: baseError{
			message:    message,
			severity:   SeverityWarning,
			userFacing: true,
		},
	}
}

// WithField adds a field name to the error context.
func (e *ValidationError) WithField(field string) *ValidationError {
	e.Field = field
	return e
}

// WithValue adds the invalid value to the error context.
func (e *ValidationError) WithValue(value any) *ValidationError {
	e.Value = value
	return e
}

// WithCause adds a cause to the error.
func (e *ValidationError) WithCause(cause error) *ValidationError {
	e.setCause(cause)
	return e
}

// Error returns the formatted error message.
func (e *ValidationError) Error() string {
	var parts []string
	if e.Field != "" {
		parts = append(parts, "field="+e.Field)
	}
	if e.Value != nil {
		parts = append(parts, fmt.Sprintf("value=%q", fmt.Sprint(e.Value)))
	}
	return e.format("validation error", parts)
}

// -----------------------------------------------------------------------------
// Error Classification Helpers
// -----------------------------------------------------------------------------

// retryableStatus reports whether an HTTP status is transient.
func retryableStatus(code int) bool {
	return code == 429 || code >= 500
}

// IsRetryable returns true if the error represents a transient condition.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	var de DebateError
	if As(err, &de) {
		return de.IsRetryable()
	}
	return Is(err, ErrRateLimited)
}

// IsUserFacing returns true if the error message is safe to display to end users.
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}
	var de DebateError
	if As(err, &de) {
		return de.IsUserFacing()
	}
	return false
}

// GetSeverity returns the severity level of the error.
// Returns SeverityError for errors that don't implement DebateError.
func GetSeverity(err error) Severity {
	if err == nil {
		return SeverityDebug
	}
	var de DebateError
	if As(err, &de) {
		return de.Severity()
	}
	return SeverityError
}

// HintFor returns the remediation hint attached to a ConfigError in the chain.
func HintFor(err error) string {
	var cfgErr *ConfigError
	if As(err, &cfgErr) {
		return cfgErr.Hint
	}
	return ""
}

// -----------------------------------------------------------------------------
// Convenience Constructors
// -----------------------------------------------------------------------------

// Wrap wraps an error with additional context message.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf wraps an error with a formatted context message.
func Wrapf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}
