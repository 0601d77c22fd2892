package errx

import (
	"errors"
	"fmt"
	"net/http"
)

const (
	// SystemErrorMessage is a user-facing fallback when internal errors occur.
	SystemErrorMessage = "internal server error"
	// RedisErrorMessage describes Redis related failures.
	RedisErrorMessage = "redis operation failed"
	// RedisNotFoundMessage describes a missing Redis key.
	RedisNotFoundMessage = "redis key not found"
	// CatalogErrorMessage describes voice catalog failures.
	CatalogErrorMessage = "voice catalog request failed"
	// OracleErrorMessage describes language model failures.
	OracleErrorMessage = "language model request failed"
)

// AppError wraps an underlying error with an HTTP status and safe message.
type AppError struct {
	Err     error
	Status  int
	Message string
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

// Unwrap exposes the underlying error for errors.Is / errors.As support.
func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError with the provided information.
func New(err error, status int, message string) *AppError {
	return &AppError{
		Err:     err,
		Status:  status,
		Message: message,
	}
}

// WrapCatalog wraps a catalog transport or decoding error.
func WrapCatalog(err error) error {
	if err == nil {
		return nil
	}
	var app *AppError
	if errors.As(err, &app) {
		return err
	}
	return New(err, http.StatusBadGateway, CatalogErrorMessage)
}

// CatalogStatus builds an error for a non-2xx catalog response.
func CatalogStatus(status int, body string) error {
	return New(fmt.Errorf("status %d: %s", status, body), http.StatusBadGateway, CatalogErrorMessage)
}

// WrapOracle wraps a failed or malformed language model call.
func WrapOracle(err error) error {
	if err == nil {
		return nil
	}
	return New(err, http.StatusBadGateway, OracleErrorMessage)
}

// StatusOf returns the status carried by an AppError in the chain, or 500.
func StatusOf(err error) int {
	var app *AppError
	if errors.As(err, &app) && app.Status != 0 {
		return app.Status
	}
	return http.StatusInternalServerError
}
