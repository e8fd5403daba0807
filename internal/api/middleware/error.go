package middleware

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/martijn/boatapi/internal/api/dto"
	"github.com/martijn/boatapi/internal/core/service"
	"github.com/martijn/boatapi/internal/logging"
)

const internalErrorMessage = "An internal error occurred"

// ErrorHandlerMiddleware renders the last error a handler attached to the
// context and turns panics into 500 responses.
func ErrorHandlerMiddleware(logger logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				logger.Error(c.Request.Context(), "panic while handling request",
					"panic", rec,
					"path", c.Request.URL.Path,
				)
				c.AbortWithStatusJSON(http.StatusInternalServerError, dto.ErrorResponse{
					Error:   internalErrorMessage,
					Message: fmt.Sprint(rec),
					Code:    http.StatusInternalServerError,
				})
			}
		}()

		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		status, body := renderError(err)
		if status == http.StatusInternalServerError {
			logger.Error(c.Request.Context(), "request error", "error", err, "path", c.Request.URL.Path)
		}
		c.JSON(status, body)
	}
}

// renderError maps a service error kind to its status code and body
func renderError(err error) (int, any) {
	var svcErr *service.Error
	if !errors.As(err, &svcErr) {
		svcErr = service.NewInternalError(internalErrorMessage, err)
	}

	switch svcErr.Kind {
	case service.KindValidation:
		return http.StatusBadRequest, dto.ValidationErrorResponse(svcErr.Fields)
	case service.KindNotFound:
		return http.StatusNotFound, dto.ErrorResponse{
			Error:   "Not Found",
			Message: svcErr.Message,
			Code:    http.StatusNotFound,
		}
	case service.KindAuthentication:
		return http.StatusUnauthorized, dto.ErrorResponse{
			Error: "Authentication failed: " + svcErr.Message,
			Code:  http.StatusUnauthorized,
		}
	case service.KindInternal:
		return http.StatusInternalServerError, dto.ErrorResponse{
			Error:   internalErrorMessage,
			Message: svcErr.Error(),
			Code:    http.StatusInternalServerError,
		}
	default:
		panic(fmt.Sprintf("unhandled error kind %v", svcErr.Kind))
	}
}
