package utils

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const genericServerError = "An unexpected error occurred. Please try again later."

// SendJSONError sends a standardized JSON error response and logs the internal error.
// For 5xx errors, it sends a generic public message while logging the actual internalError.
// For 4xx errors, the publicMsg is shown to the client, and internalError (if provided) is logged.
func SendJSONError(c *gin.Context, statusCode int, publicMsg string, internalError error, details ...string) {
	errorDetails := ""
	if len(details) > 0 {
		errorDetails = details[0]
	}

	response := gin.H{"error": publicMsg}
	if errorDetails != "" {
		response["details"] = errorDetails
	}

	fields := []zap.Field{
		zap.Int("status_code", statusCode),
		zap.String("public_message", publicMsg),
		zap.String("path", c.Request.URL.Path),
	}
	if errorDetails != "" {
		fields = append(fields, zap.String("details", errorDetails))
	}
	if internalError != nil {
		zap.L().Error("[Handler] Request failed", append(fields, zap.Error(internalError))...)
	} else {
		zap.L().Info("[Handler] Client error response", fields...)
	}

	if statusCode >= http.StatusInternalServerError {
		if publicMsg == "" || (internalError != nil && publicMsg == internalError.Error()) {
			response["error"] = genericServerError
		}
	}

	c.AbortWithStatusJSON(statusCode, response)
}

// FormatTime renders t in UTC as RFC 3339 with milliseconds.
func FormatTime(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05.000Z07:00")
}
