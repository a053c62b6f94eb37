package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

var (
	// ErrServiceUnavailable is returned when a backing service (database,
	// cache, model, gateway) is not configured or not reachable.
	ErrServiceUnavailable = errors.New("service unavailable")
	// ErrNotFound covers both missing records and records owned by someone else.
	ErrNotFound = errors.New("not found")
	// ErrUnauthorized is returned for missing or rejected credentials.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrPaymentRequired is returned when a payment was not successful or could not be verified.
	ErrPaymentRequired = errors.New("payment not completed")
	// ErrConflict is returned when a unique record already exists.
	ErrConflict = errors.New("already exists")
)

// ValidationError reports bad input detected before any remote call.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

// NewValidationError builds a *ValidationError.
func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// RemoteError wraps a failure of an external collaborator (model, gateway, storage).
type RemoteError struct {
	Service string
	Err     error
}

func (e *RemoteError) Error() string {
	return e.Service + ": " + e.Err.Error()
}

func (e *RemoteError) Unwrap() error { return e.Err }

// StatusFor maps a service error onto an HTTP status code.
func StatusFor(err error) int {
	var verr *ValidationError
	var rerr *RemoteError
	switch {
	case err == nil:
		return http.StatusOK
	case errors.As(err, &verr):
		return http.StatusBadRequest
	case errors.Is(err, ErrServiceUnavailable):
		return http.StatusServiceUnavailable
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, ErrPaymentRequired):
		return http.StatusPaymentRequired
	case errors.Is(err, ErrConflict):
		return http.StatusConflict
	case errors.As(err, &rerr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// RespondError writes err as {"error": ...} with the mapped status.
func RespondError(c *gin.Context, err error) {
	status := StatusFor(err)
	msg := err.Error()
	if status == http.StatusServiceUnavailable {
		msg = ErrServiceUnavailable.Error()
	}
	if status >= http.StatusInternalServerError {
		GetLogger().Error("Request failed", zap.String("path", c.FullPath()), zap.Int("status", status), zap.Error(err))
	}
	c.AbortWithStatusJSON(status, gin.H{"error": msg})
}

// ErrorHandler is a middleware to catch panics and return structured errors
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				GetLogger().Error("Unhandled panic", zap.Any("error", err), zap.String("path", c.Request.URL.Path))

				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
			}
		}()
		c.Next()
	}
}
