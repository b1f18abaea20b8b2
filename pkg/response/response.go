package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Error codes carried in every non-2xx body.
const (
	CodeValidation   = "VALIDATION_ERROR"
	CodeUnauthorized = "UNAUTHORIZED"
	CodeForbidden    = "FORBIDDEN"
	CodeNotFound     = "NOT_FOUND"
	CodeConflict     = "CONFLICT"
	CodeInternal     = "INTERNAL_ERROR"
)

// ErrorBody is the wire shape of every error response:
// {"detail": "<human message>", "code": "<ERROR_CODE>"}.
// Fields holds optional per-field validation messages.
type ErrorBody struct {
	Detail string            `json:"detail"`
	Code   string            `json:"code"`
	Fields map[string]string `json:"fields,omitempty"`
}

// Err writes an error body with the given status. Detail must stay generic
// for 401s so account and token state cannot be enumerated.
func Err(c *gin.Context, status int, detail, code string) {
	c.JSON(status, ErrorBody{Detail: detail, Code: code})
}

// ValidationErr writes a 400 with field-specific messages.
func ValidationErr(c *gin.Context, fields map[string]string) {
	c.JSON(http.StatusBadRequest, ErrorBody{
		Detail: "invalid request payload",
		Code:   CodeValidation,
		Fields: fields,
	})
}

// AbortErr writes an error body and aborts the handler chain (middleware use).
func AbortErr(c *gin.Context, status int, detail, code string) {
	c.AbortWithStatusJSON(status, ErrorBody{Detail: detail, Code: code})
}

// Internal writes a 500 with a generic message. The underlying error is for
// server-side logs only and never reaches the client.
func Internal(c *gin.Context) {
	Err(c, http.StatusInternalServerError, "internal server error", CodeInternal)
}
