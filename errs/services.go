package errs

import (
	"errors"
	"fmt"
	"net/http"
)

// Notification & Outbound Transport Errors
var (
	ErrUnknownTemplate      = errors.New("unknown notification template")
	ErrTransportUnavailable = errors.New("mail transport unavailable")
	ErrDispatchFailed       = errors.New("notification dispatch failed")
)

// Configuration & Environment Errors
var (
	ErrConfigMissing       = errors.New("configuration missing")
	ErrEnvironmentVariable = errors.New("environment variable error")
)

// Third-Party API & LLM Errors
var (
	ErrRateLimitExceeded = errors.New("rate limit exceeded")
	ErrUpstreamModel     = errors.New("upstream model call failed")
)

// NewUnknownTemplateError reports a template name outside the fixed
// enumeration. This indicates a missing mapping, not a user mistake.
func NewUnknownTemplateError(templateName string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusInternalServerError,
		err:        ErrUnknownTemplate,
		Details:    fmt.Sprintf("No template registered under name %q", templateName),
		Field:      "template",
	}
}

func NewTransportError(reason string, cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusInternalServerError,
		err:        ErrTransportUnavailable,
		Details:    reason,
		Cause:      cause,
	}
}

func NewDispatchError(recipient string, cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusInternalServerError,
		err:        ErrDispatchFailed,
		Details:    fmt.Sprintf("Failed to send notification to %s", recipient),
		Cause:      cause,
	}
}

// Configuration & Environment Error Constructors
func NewConfigError(configName string, cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusInternalServerError,
		err:        ErrConfigMissing,
		Details:    fmt.Sprintf("Configuration error for %s", configName),
		Cause:      cause,
	}
}

func NewEnvironmentVariableError(varName string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusInternalServerError,
		err:        ErrEnvironmentVariable,
		Details:    fmt.Sprintf("Environment variable %s is not set or invalid", varName),
		Field:      varName,
	}
}

// LLM Service Error Constructors
func NewRateLimitError(service string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusTooManyRequests,
		err:        ErrRateLimitExceeded,
		Details:    fmt.Sprintf("Rate limit exceeded for %s service", service),
		Field:      "rate_limit",
	}
}

func NewUpstreamModelError(service string, cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusInternalServerError,
		err:        ErrUpstreamModel,
		Details:    fmt.Sprintf("Upstream call to %s failed", service),
		Cause:      cause,
	}
}

// Error Type Checkers
func IsUnknownTemplateError(err error) bool {
	return errors.Is(err, ErrUnknownTemplate)
}

func IsTransportError(err error) bool {
	return errors.Is(err, ErrTransportUnavailable)
}

func IsDispatchError(err error) bool {
	return errors.Is(err, ErrDispatchFailed)
}

func IsConfigError(err error) bool {
	return errors.Is(err, ErrConfigMissing) || errors.Is(err, ErrEnvironmentVariable)
}

func IsRateLimitError(err error) bool {
	return errors.Is(err, ErrRateLimitExceeded)
}

func IsUpstreamModelError(err error) bool {
	return errors.Is(err, ErrUpstreamModel)
}
