package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	sessiondomain "github.com/strongslime/atelier/internal/session/domain"
	"gorm.io/gorm"
)

type ValidationError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

func (v ValidationErrors) Error() string {
	return "validation error"
}

type errorPayload struct {
	Type    string            `json:"type"`
	Message string            `json:"message"`
	Errors  []ValidationError `json:"errors,omitempty"`
}

type errorResponse struct {
	Error errorPayload `json:"error"`
}

func ErrorHandlingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}

		lastErr := c.Errors.Last()
		if lastErr == nil {
			return
		}

		status, payload := mapError(lastErr.Err)
		c.Header("Content-Type", "application/json")
		c.AbortWithStatusJSON(status, errorResponse{Error: payload})
	}
}

func AbortWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}

func invalidRequestError() error {
	return &ValidationErrors{
		Errors: []ValidationError{
			{
				Field:   "request",
				Code:    "invalid_request",
				Message: "invalid request",
			},
		},
	}
}

func mapError(err error) (int, errorPayload) {
	var validation *ValidationErrors
	if errors.As(err, &validation) {
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: "invalid request",
			Errors:  validation.Errors,
		}
	}

	switch {
	case errors.Is(err, sessiondomain.ErrNotFound),
		errors.Is(err, sessiondomain.ErrFileNotFound),
		errors.Is(err, gorm.ErrRecordNotFound):
		return http.StatusNotFound, errorPayload{
			Type:    "not_found",
			Message: err.Error(),
		}
	case errors.Is(err, sessiondomain.ErrUnknownAction):
		return http.StatusBadRequest, errorPayload{
			Type:    "unknown_action",
			Message: err.Error(),
		}
	case errors.Is(err, sessiondomain.ErrTOSNotAccepted):
		// Policy gate, not a fault: the export button simply is not
		// enabled until the terms are accepted.
		return http.StatusPreconditionFailed, errorPayload{
			Type:    "tos_not_accepted",
			Message: "terms of service must be accepted before export",
		}
	case errors.Is(err, sessiondomain.ErrExportFailed):
		return http.StatusInternalServerError, errorPayload{
			Type:    "export_failed",
			Message: "document generation failed, please retry",
		}
	default:
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "internal error",
		}
	}
}
