package mcp

import (
	"errors"
	"fmt"

	"github.com/rpggio/brewlog/internal/domain/bean"
	"github.com/rpggio/brewlog/internal/domain/brew"
	"github.com/rpggio/brewlog/internal/domain/confirm"
	"github.com/rpggio/brewlog/internal/domain/session"
)

var (
	// ErrBeanNotFound indicates a tool addressed a bean that doesn't exist.
	ErrBeanNotFound = errors.New("bean not found")
	// ErrBrewNotFound indicates a tool addressed a record that doesn't exist.
	ErrBrewNotFound = errors.New("brewing record not found")
	// ErrInvalidParams indicates tool arguments that don't decode or are missing.
	ErrInvalidParams = errors.New("invalid parameters")
)

// APIError represents an MCP error response.
type APIError struct {
	Code         string `json:"code"`
	Message      string `json:"message"`
	Details      any    `json:"details,omitempty"`
	RecoveryHint string `json:"recovery_hint,omitempty"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// MapError maps domain errors to MCP error codes. Unknown errors map to nil.
func MapError(err error) *APIError {
	if err == nil {
		return nil
	}
	var apiErr *APIError
	switch {
	case errors.As(err, &apiErr):
		return apiErr
	case errors.Is(err, brew.ErrUnknownBean), errors.Is(err, ErrBeanNotFound):
		return &APIError{Code: "BEAN_NOT_FOUND", Message: err.Error(), RecoveryHint: "Call list_beans to find a valid id"}
	case errors.Is(err, ErrBrewNotFound):
		return &APIError{Code: "BREW_NOT_FOUND", Message: err.Error(), RecoveryHint: "Call list_brews to find a valid id"}
	case errors.Is(err, confirm.ErrTokenExpired):
		return &APIError{Code: "TOKEN_EXPIRED", Message: err.Error(), RecoveryHint: "Request the delete again and confirm promptly"}
	case errors.Is(err, confirm.ErrUnknownToken):
		return &APIError{Code: "TOKEN_UNKNOWN", Message: err.Error(), RecoveryHint: "Tokens work once; request a new one"}
	case errors.Is(err, bean.ErrInvalidInput),
		errors.Is(err, brew.ErrInvalidInput),
		errors.Is(err, session.ErrInvalidInput),
		errors.Is(err, confirm.ErrInvalidInput),
		errors.Is(err, ErrInvalidParams):
		return &APIError{Code: "INVALID_INPUT", Message: err.Error(), RecoveryHint: "Fix the named field and retry"}
	default:
		return nil
	}
}
