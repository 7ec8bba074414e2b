package res

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// AbortWithError writes the error body and stops the handler chain.
func AbortWithError(c *gin.Context, errRes *ErrorRes) {
	message := errRes.Err.Error()
	if errRes.StatusCode >= http.StatusInternalServerError {
		message = "Internal server error: " + message
		c.Error(errRes.Err)
	}
	c.AbortWithStatusJSON(errRes.StatusCode, &Response{
		Success: false,
		Message: message,
	})
}
