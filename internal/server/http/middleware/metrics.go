package middleware

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/vouchermart/internal/metrics"
)

const unmatchedRoute = "unmatched"

// RequestMetrics counts handled requests by route template.
func RequestMetrics(recorder *metrics.Recorder) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		route := c.FullPath()
		if route == "" {
			route = unmatchedRoute
		}
		recorder.HTTPRequest(c.Request.Method, route, strconv.Itoa(c.Writer.Status()))
	}
}
