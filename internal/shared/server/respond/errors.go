package respond

import (
	"github.com/gin-gonic/gin"

	"docassist/internal/shared/telemetry"
)

// ErrorBody defines the standardized error object.
type ErrorBody struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

// ErrorResponse wraps the error body.
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// Error sends a standardized error response.
func Error(c *gin.Context, status int, code, message string, details interface{}) {
	fields := map[string]any{
		"status":     status,
		"code":       code,
		"message":    message,
		"path":       c.Request.URL.Path,
		"method":     c.Request.Method,
		"request_id": c.GetString("requestId"),
	}
	if status >= 500 {
		telemetry.Error("http.error", fields)
	} else {
		telemetry.Warn("http.error", fields)
	}

	c.AbortWithStatusJSON(status, ErrorResponse{
		Error: ErrorBody{
			Code:    code,
			Message: message,
			Details: details,
		},
	})
}

// ValidationError sends a 400 validation_error envelope.
func ValidationError(c *gin.Context, message string, details interface{}) {
	Error(c, 400, "validation_error", message, details)
}

// NotFound sends a 404 not_found envelope.
func NotFound(c *gin.Context, message string) {
	Error(c, 404, "not_found", message, nil)
}

// Internal sends a 500 internal_error envelope.
func Internal(c *gin.Context, message string) {
	Error(c, 500, "internal_error", message, nil)
}
