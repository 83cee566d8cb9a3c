package response

import (
	"github.com/gin-gonic/gin"

	"go-jobportal-backend/pkg/apperror"
)

// Response standardizes the success JSON envelope.
type Response struct {
	Success   bool        `json:"success"`
	Message   string      `json:"message"`
	Data      interface{} `json:"data,omitempty"`
	RequestID string      `json:"request_id,omitempty"`
}

// ErrorBody is the wire shape of every failure: a human-readable detail, a
// stable machine code, and optional per-field messages.
type ErrorBody struct {
	Detail    string            `json:"detail"`
	Code      string            `json:"code"`
	Errors    map[string]string `json:"errors,omitempty"`
	RequestID string            `json:"request_id,omitempty"`
}

func requestID(c *gin.Context) string {
	id, _ := c.Get("RequestID")
	s, _ := id.(string)
	return s
}

// Success sends a success response.
func Success(c *gin.Context, code int, message string, data interface{}) {
	c.JSON(code, Response{
		Success:   true,
		Message:   message,
		Data:      data,
		RequestID: requestID(c),
	})
}

// Error renders an AppError in the canonical error shape.
func Error(c *gin.Context, appErr *apperror.AppError) {
	c.JSON(appErr.Status, ErrorBody{
		Detail:    appErr.Detail,
		Code:      appErr.Code,
		Errors:    appErr.Fields,
		RequestID: requestID(c),
	})
}
