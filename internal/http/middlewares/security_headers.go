package middlewares

import (
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	// JSON endpoints and metrics never load anything.
	apiCSP = "default-src 'none'; frame-ancestors 'none'"
	// HTML pages: own stylesheet and the dashboard's inline script only.
	pageCSP = "default-src 'self'; base-uri 'none'; frame-ancestors 'none'; object-src 'none'; form-action 'self'; img-src 'self' data:; style-src 'self'; script-src 'self' 'unsafe-inline'"
)

var apiPrefixes = []string{"/api/", "/metrics", "/healthz", "/readyz", "/admin/add_", "/admin/upload_"}

func SecurityHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("X-Frame-Options", "DENY")
		c.Header("Referrer-Policy", "same-origin")
		c.Header("X-XSS-Protection", "0")

		if isAPIPath(c.Request.URL.Path) {
			c.Header("Content-Security-Policy", apiCSP)
		} else {
			c.Header("Content-Security-Policy", pageCSP)
		}
		c.Next()
	}
}

func isAPIPath(path string) bool {
	for _, p := range apiPrefixes {
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}
