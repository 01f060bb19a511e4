package middlewares

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
)

// OriginPolicy controls how the request's own scheme is worked out.
// X-Forwarded-Proto is only read when TrustForwardedProto is set.
type OriginPolicy struct {
	TrustForwardedProto bool
}

// RequireSameOrigin rejects cookie-authenticated requests whose Origin (or, failing that,
// Referer) names another site. Requests without the session cookie pass through;
// the session guard decides what they may do.
func RequireSameOrigin(policy OriginPolicy) gin.HandlerFunc {
	return func(c *gin.Context) {
		if raw, err := c.Cookie(SessionCookieName); err != nil || raw == "" {
			c.Next()
			return
		}

		if !sameOrigin(c.Request, policy) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"success":   false,
				"message":   "Cross-site request refused",
				"code":      "forbidden",
				"requestId": c.GetString(CtxRequestID),
			})
			return
		}

		c.Next()
	}
}

func sameOrigin(r *http.Request, policy OriginPolicy) bool {
	scheme := requestScheme(r, policy)
	host, port := splitHost(r.Host)

	if host == "" {
		return false
	}

	if port == "" {
		port = defaultPort(scheme)
	}

	claimed := strings.TrimSpace(r.Header.Get("Origin"))
	if claimed == "" || claimed == "null" {
		claimed = strings.TrimSpace(r.Header.Get("Referer"))
	}

	if claimed == "" {
		return false
	}

	u, err := url.Parse(claimed)
	if err != nil {
		return false
	}

	otherScheme := strings.ToLower(u.Scheme)
	if otherScheme != scheme {
		return false
	}

	otherPort := u.Port()
	if otherPort == "" {
		otherPort = defaultPort(otherScheme)
	}

	return strings.ToLower(u.Hostname()) == host && otherPort == port
}

func requestScheme(r *http.Request, policy OriginPolicy) string {
	if policy.TrustForwardedProto {
		if p := strings.ToLower(strings.TrimSpace(r.Header.Get("X-Forwarded-Proto"))); p == "http" || p == "https" {
			return p
		}
	}

	if r.TLS != nil {
		return "https"
	}

	return "http"
}

func splitHost(raw string) (string, string) {
	u, err := url.Parse("//" + strings.TrimSpace(raw))
	if err != nil {
		return "", ""
	}
	return strings.ToLower(u.Hostname()), u.Port()
}

func defaultPort(scheme string) string {
	switch scheme {
	case "https":
		return "443"
	case "http":
		return "80"
	}
	return ""
}
