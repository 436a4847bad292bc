package httperr

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// This API speaks plain text: confirmations and failures alike are bare
// strings, not structured error bodies.

func Write(c *gin.Context, status int, message string) {
	c.String(status, message)
}

func BadRequest(c *gin.Context, message string) {
	Write(c, http.StatusBadRequest, message)
}

func Unauthorized(c *gin.Context, message string) {
	Write(c, http.StatusUnauthorized, message)
}

func Internal(c *gin.Context, message string) {
	Write(c, http.StatusInternalServerError, message)
}
