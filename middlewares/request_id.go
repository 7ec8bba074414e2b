package middlewares

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const REQUEST_ID_HEADER = "X-Request-Id"

// RequestID reuses the caller's request id or issues a new one.
func RequestID() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		requestID := ctx.GetHeader(REQUEST_ID_HEADER)
		if _, err := uuid.Parse(requestID); err != nil {
			requestID = uuid.NewString()
		}
		ctx.Set("requestId", requestID)
		ctx.Header(REQUEST_ID_HEADER, requestID)
		ctx.Next()
	}
}
