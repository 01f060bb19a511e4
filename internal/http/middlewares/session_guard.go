package middlewares

import (
	"context"
	"net/http"

	"github.com/geocoder89/portfolio/internal/http/flash"
	"github.com/geocoder89/portfolio/internal/session"
	"github.com/gin-gonic/gin"
)

// SessionCookieName is the cookie holding the signed session token.
const SessionCookieName = "portfolio_session"

// Keep this small interface so tests can fake it easily.
type SessionAuthenticator interface {
	Authenticate(ctx context.Context, token string) (session.Session, error)
}

type SessionGuard struct {
	sessions SessionAuthenticator
	secure   bool
}

func NewSessionGuard(sessions SessionAuthenticator, secureCookies bool) *SessionGuard {
	return &SessionGuard{sessions: sessions, secure: secureCookies}
}

// LoadSession resolves the session cookie, if any, and stashes the LoggedIn session
// on the context. It never rejects a request.
func (g *SessionGuard) LoadSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		g.load(c)
		c.Next()
	}
}

func (g *SessionGuard) load(c *gin.Context) (session.Session, bool) {
	if sess, ok := SessionFromContext(c); ok {
		return sess, true
	}

	raw, err := c.Cookie(SessionCookieName)
	if err != nil || raw == "" {
		return session.Session{}, false
	}

	sess, err := g.sessions.Authenticate(c.Request.Context(), raw)
	if err != nil {
		return session.Session{}, false
	}

	c.Set(CtxSession, sess)
	c.Set(CtxToken, raw)

	return sess, true
}

// RequireAdminJSON answers 401 with the admin JSON envelope when LoggedOut.
func (g *SessionGuard) RequireAdminJSON() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := g.load(c); !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success":   false,
				"message":   "Unauthorized",
				"code":      "unauthorized",
				"requestId": c.GetString(CtxRequestID),
			})
			return
		}

		c.Next()
	}
}

// RequireAdminPage redirects LoggedOut browsers to the login page with a notice.
func (g *SessionGuard) RequireAdminPage(loginPath string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := g.load(c); !ok {
			flash.Write(c.Writer, flash.Warning("Please log in to access the admin dashboard."), g.secure)
			c.Redirect(http.StatusFound, loginPath)
			c.Abort()
			return
		}

		c.Next()
	}
}

func SessionFromContext(c *gin.Context) (session.Session, bool) {
	v, ok := c.Get(CtxSession)
	if !ok {
		return session.Session{}, false
	}
	sess, ok := v.(session.Session)
	return sess, ok
}

// TokenFromContext returns the raw cookie token of the loaded session.
func TokenFromContext(c *gin.Context) (string, bool) {
	v, ok := c.Get(CtxToken)
	if !ok {
		return "", false
	}
	raw, ok := v.(string)
	return raw, ok
}
