package middleware

import (
	"net/http"
	"strings"

	"github.com/SscSPs/life_management_app/internal/utils"
	"github.com/gin-gonic/gin"
)

// pathsToSkip contains paths that should not be tracked by PostHog
var pathsToSkip = map[string]bool{
	"/health": true,
}

// AnalyticsEventName turns a route template into an event name, e.g.
// "/api/v1/expenses/:expenseID/payments" becomes "expenses_payments".
func AnalyticsEventName(fullPath string) string {
	trimmed := strings.TrimPrefix(fullPath, "/api/v1")
	parts := strings.Split(strings.Trim(trimmed, "/"), "/")
	kept := parts[:0]
	for _, p := range parts {
		if p == "" || strings.HasPrefix(p, ":") || strings.HasPrefix(p, "*") {
			continue
		}
		kept = append(kept, strings.ReplaceAll(p, "-", "_"))
	}
	return strings.Join(kept, "_")
}

// PosthogMiddleware creates a Gin middleware handler that tracks successful
// authenticated API calls with PostHog.
func PosthogMiddleware(posthogClient *utils.PosthogClientWrapper) gin.HandlerFunc {
	return func(c *gin.Context) {
		if posthogClient == nil || !posthogClient.IsInitialized() || pathsToSkip[c.Request.URL.Path] {
			c.Next()
			return
		}

		c.Next()

		if len(c.Errors) > 0 || c.Writer.Status() >= http.StatusBadRequest {
			return
		}

		userID, exists := GetUserIDFromContext(c)
		if !exists {
			return
		}

		eventName := AnalyticsEventName(c.FullPath())
		if eventName == "" {
			return
		}

		props := map[string]any{
			"method":      c.Request.Method,
			"route":       c.FullPath(),
			"status_code": c.Writer.Status(),
		}
		posthogClient.Enqueue(userID, eventName, props)
	}
}
