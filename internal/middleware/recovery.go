package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Recovery recovers from handler panics, logs the stack trace and answers
// with the structured error envelope so no request ever ends in a raw
// fault.
func Recovery(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				logger.Error("panic recovered",
					zap.Any("error", err),
					zap.String("path", c.Request.URL.Path),
					zap.String("method", c.Request.Method),
					zap.String("stacktrace", string(debug.Stack())))
				if !c.Writer.Written() {
					c.JSON(http.StatusInternalServerError, errorBody{Error: "internal server error"})
				}
				c.Abort()
			}
		}()
		c.Next()
	}
}
