package httperr

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type HTTPError struct {
	Code    string `json:"error_code"`
	Message string `json:"message"`
}

func Write(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, HTTPError{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, code, message)
}

func NotFound(c *gin.Context, code, message string) {
	Write(c, http.StatusNotFound, code, message)
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

func Unauthorized(c *gin.Context, code, message string) {
	Write(c, http.StatusUnauthorized, code, message)
}

func Forbidden(c *gin.Context, code, message string) {
	Write(c, http.StatusForbidden, code, message)
}

func TooManyRequests(c *gin.Context, code, message string) {
	Write(c, http.StatusTooManyRequests, code, message)
}

// StatusOf maps an error to its HTTP status. Anything that is not a
// business error is a 500.
func StatusOf(err error) int {
	if IsExclusionConflict(err) {
		return http.StatusBadRequest
	}

	switch KindOf(err) {
	case KindNotFound:
		return http.StatusNotFound
	case KindRejected, KindValidation:
		return http.StatusBadRequest
	case KindForbidden:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// FromError writes err using StatusOf. Internal errors never leak their
// text to the client.
func FromError(c *gin.Context, err error) {
	status := StatusOf(err)

	if be, ok := AsBusiness(err); ok {
		msg := be.Message
		if msg == "" {
			msg = be.Code
		}
		Write(c, status, be.Code, msg)
		return
	}

	if IsExclusionConflict(err) {
		Write(c, status, "time_conflict", "Time slot not available")
		return
	}

	Internal(c, "internal_error", "Internal server error")
}
