package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"wxpay-gateway-api/internal/idgen"
	"wxpay-gateway-api/internal/logger"
)

// TraceIDKey 请求上下文中的链路ID键
const TraceIDKey = "trace_id"

func RequestLogger() gin.HandlerFunc {
	infoLog := logger.NewLogger("info")
	errorLog := logger.NewLogger("error")

	return func(c *gin.Context) {
		start := time.Now()
		traceID := strconv.FormatUint(idgen.New(), 10)
		c.Set(TraceIDKey, traceID)
		c.Header("X-Trace-Id", traceID)
		c.Next()
		latency := time.Since(start)

		entry := map[string]interface{}{
			"status":     c.Writer.Status(),
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"ip":         c.ClientIP(),
			"latency":    latency.String(),
			"trace_id":   traceID,
			"user-agent": c.Request.UserAgent(),
		}

		if len(c.Errors) > 0 {
			errorLog.WithFields(entry).Error(c.Errors.String())
		} else {
			infoLog.WithFields(entry).Info("request completed")
		}
	}
}
