package utils

import (
	"strings"

	"github.com/gin-gonic/gin"
)

// GetClientIP 取真实客户端IP，优先透传头
func GetClientIP(c *gin.Context) string {
	ip := c.GetHeader("X-Forwarded-For")
	if ip != "" {
		parts := strings.Split(ip, ",")
		return strings.TrimSpace(parts[0])
	}
	return c.ClientIP()
}
