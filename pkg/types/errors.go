package types

import (
	"errors"
	"fmt"
)

// ErrorCode categorizes configuration errors
type ErrorCode string

const (
	ErrCodeInvalidConfig       ErrorCode = "invalid_config"
	ErrCodeUnsupportedProvider ErrorCode = "unsupported_provider"
	ErrCodeDuplicateID         ErrorCode = "duplicate_id"
	ErrCodeUnknownDefault      ErrorCode = "unknown_default"
	ErrCodeDuplicateProvider   ErrorCode = "duplicate_provider"
)

// Sentinel errors matched by errors.Is against a *ConfigError of the same code.
var (
	ErrInvalidConfig       = errors.New("invalid configuration")
	ErrUnsupportedProvider = errors.New("unsupported provider")
	ErrDuplicateID         = errors.New("duplicate model id")
	ErrUnknownDefault      = errors.New("default model not configured")
	ErrDuplicateProvider   = errors.New("duplicate provider registration")

	// ErrModelNotFound is returned by resolvers that turn an absent lookup
	// into an error. Plain Find* lookups report absence with a bool.
	ErrModelNotFound = errors.New("model not found")
)

var sentinelByCode = map[ErrorCode]error{
	ErrCodeInvalidConfig:       ErrInvalidConfig,
	ErrCodeUnsupportedProvider: ErrUnsupportedProvider,
	ErrCodeDuplicateID:         ErrDuplicateID,
	ErrCodeUnknownDefault:      ErrUnknownDefault,
	ErrCodeDuplicateProvider:   ErrDuplicateProvider,
}

// ConfigError represents a configuration problem detected at load or
// client-construction time. It is never retryable.
type ConfigError struct {
	Code     ErrorCode    // Categorized error code
	Message  string       // Human-readable message
	Provider ProviderType // Provider the error relates to, if any
	Field    string       // Offending field or property key
	Kind     ModelKind    // Descriptor kind, if any
	ID       string       // Descriptor id, if any
	Err      error        // Wrapped original error
}

// Error implements the error interface
func (e *ConfigError) Error() string {
	scope := string(e.Provider)
	if scope == "" {
		scope = "config"
	}
	msg := fmt.Sprintf("[%s] %s (code=%s", scope, e.Message, e.Code)
	if e.Kind != "" && e.ID != "" {
		msg += fmt.Sprintf(", model=%s/%s", e.Kind, e.ID)
	}
	if e.Field != "" {
		msg += ", field=" + e.Field
	}
	msg += ")"
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the original error for errors.Is/As
func (e *ConfigError) Unwrap() error {
	return e.Err
}

// Is matches the sentinel that corresponds to the error code
func (e *ConfigError) Is(target error) bool {
	sentinel, ok := sentinelByCode[e.Code]
	return ok && target == sentinel
}

// WithField sets the field and returns the error for chaining
func (e *ConfigError) WithField(field string) *ConfigError {
	e.Field = field
	return e
}

// WithModel sets the descriptor kind and id and returns the error for chaining
func (e *ConfigError) WithModel(kind ModelKind, id string) *ConfigError {
	e.Kind = kind
	e.ID = id
	return e
}

// WithProvider sets the provider and returns the error for chaining
func (e *ConfigError) WithProvider(provider ProviderType) *ConfigError {
	e.Provider = provider
	return e
}

// WithErr sets the wrapped error and returns the error for chaining
func (e *ConfigError) WithErr(err error) *ConfigError {
	e.Err = err
	return e
}

// NewConfigError creates a ConfigError with the given code and message
func NewConfigError(code ErrorCode, message string) *ConfigError {
	return &ConfigError{Code: code, Message: message}
}

// NewMissingPropertyError reports a required property that is absent or empty
func NewMissingPropertyError(provider ProviderType, field, label string) *ConfigError {
	return &ConfigError{
		Code:     ErrCodeInvalidConfig,
		Message:  fmt.Sprintf("%s must be provided in model properties", label),
		Provider: provider,
		Field:    field,
	}
}

// NewMissingFieldError reports a required descriptor field that is empty
func NewMissingFieldError(kind ModelKind, id, field string) *ConfigError {
	return &ConfigError{
		Code:    ErrCodeInvalidConfig,
		Message: fmt.Sprintf("%s is required", field),
		Field:   field,
		Kind:    kind,
		ID:      id,
	}
}

// NewUnsupportedProviderError reports a provider tag with no registered factory
func NewUnsupportedProviderError(provider ProviderType) *ConfigError {
	return &ConfigError{
		Code:     ErrCodeUnsupportedProvider,
		Message:  fmt.Sprintf("provider %q is not supported", string(provider)),
		Provider: provider,
		Field:    "provider",
	}
}

// IsConfigError reports whether err carries a *ConfigError with the given code
func IsConfigError(err error, code ErrorCode) bool {
	var cfgErr *ConfigError
	if errors.As(err, &cfgErr) {
		return cfgErr.Code == code
	}
	return false
}
