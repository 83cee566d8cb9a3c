package middleware

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"go-jobportal-backend/internal/delivery/http/response"
	"go-jobportal-backend/pkg/apperror"
)

// ErrorHandler renders errors attached to the gin context in the canonical
// error shape. Internal errors are logged with their cause; the client only
// sees the stable code and a generic detail.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}
		err := c.Errors.Last().Err

		var appErr *apperror.AppError
		if !errors.As(err, &appErr) {
			appErr = apperror.Internal("INTERNAL_ERROR", "An unexpected error occurred. Please try again later.", err)
		}
		if appErr.Status >= http.StatusInternalServerError {
			slog.Error("request failed",
				"method", c.Request.Method,
				"path", c.FullPath(),
				"code", appErr.Code,
				"error", appErr.Unwrap(),
			)
		}
		response.Error(c, appErr)
	}
}
