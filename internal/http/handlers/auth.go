package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/geocoder89/portfolio/internal/domain/user"
	"github.com/geocoder89/portfolio/internal/http/flash"
	"github.com/geocoder89/portfolio/internal/http/middlewares"
	"github.com/geocoder89/portfolio/internal/security"
	"github.com/geocoder89/portfolio/internal/session"
	"github.com/gin-gonic/gin"
)

const (
	loginPath     = "/admin/login"
	dashboardPath = "/admin/dashboard"

	msgInvalidCredentials = "Invalid credentials"
)

type UserReader interface {
	GetByUsername(ctx context.Context, username string) (user.User, error)
}

type SessionIssuer interface {
	Login(ctx context.Context, u user.User) (string, session.Session, error)
	Logout(ctx context.Context, token string) error
}

type LoginObserver interface {
	ObserveLogin(success bool)
}

// DirEnsurer creates the upload directories. *uploads.Store implements it.
type DirEnsurer interface {
	EnsureDirs() error
}

type AuthHandler struct {
	users    UserReader
	sessions SessionIssuer
	dirs     DirEnsurer
	observer LoginObserver
	log      *slog.Logger
	secure   bool
	ttl      time.Duration
}

type AuthHandlerConfig struct {
	SecureCookies bool
	SessionTTL    time.Duration
}

func NewAuthHandler(users UserReader, sessions SessionIssuer, dirs DirEnsurer, observer LoginObserver, log *slog.Logger, cfg AuthHandlerConfig) *AuthHandler {
	if log == nil {
		log = slog.Default()
	}

	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = 24 * time.Hour
	}

	return &AuthHandler{
		users:    users,
		sessions: sessions,
		dirs:     dirs,
		observer: observer,
		log:      log,
		secure:   cfg.SecureCookies,
		ttl:      cfg.SessionTTL,
	}
}

func (h *AuthHandler) LoginPage(ctx *gin.Context) {
	if _, ok := middlewares.SessionFromContext(ctx); ok {
		ctx.Redirect(http.StatusFound, dashboardPath)
		return
	}

	renderPage(ctx, http.StatusOK, "admin_login.html", gin.H{"title": "Admin Login"}, h.secure)
}

// Login checks the form credentials. Unknown user and wrong password look the same
// to the client, and both pay for a bcrypt comparison.
func (h *AuthHandler) Login(ctx *gin.Context) {
	if _, ok := middlewares.SessionFromContext(ctx); ok {
		ctx.Redirect(http.StatusFound, dashboardPath)
		return
	}

	username := strings.TrimSpace(ctx.PostForm("username"))
	password := ctx.PostForm("password")

	cctx, cancel := context.WithTimeout(ctx.Request.Context(), 2*time.Second)
	defer cancel()

	var found user.User
	var err error

	if username != "" {
		found, err = h.users.GetByUsername(cctx, username)
	} else {
		err = user.ErrNotFound
	}

	if err != nil && !errors.Is(err, user.ErrNotFound) {
		h.log.ErrorContext(ctx.Request.Context(), "login lookup failed", "err", err)
		h.observe(false)
		h.loginFailed(ctx, http.StatusServiceUnavailable, flash.Danger("Login is unavailable right now. Please try again later."))
		return
	}

	// found is the zero user when err is ErrNotFound; VerifyLogin still runs bcrypt.
	if !security.VerifyLogin(found.PasswordHash, password) {
		h.log.InfoContext(ctx.Request.Context(), "admin login rejected", "username", username)
		h.observe(false)
		h.loginFailed(ctx, http.StatusUnauthorized, flash.Danger(msgInvalidCredentials))
		return
	}

	token, _, err := h.sessions.Login(cctx, found)

	if err != nil {
		h.log.ErrorContext(ctx.Request.Context(), "session issue failed", "err", err)
		h.observe(false)
		h.loginFailed(ctx, http.StatusServiceUnavailable, flash.Danger("Could not start a session. Please try again."))
		return
	}

	h.observe(true)
	h.setSessionCookie(ctx, token)
	flash.Write(ctx.Writer, flash.Success("Login successful!"), h.secure)
	ctx.Redirect(http.StatusFound, dashboardPath)
}

func (h *AuthHandler) loginFailed(ctx *gin.Context, status int, notice flash.Notice) {
	renderPage(ctx, status, "admin_login.html", gin.H{
		"title": "Admin Login",
		"flash": &notice,
	}, h.secure)
}

func (h *AuthHandler) Logout(ctx *gin.Context) {
	if raw, err := ctx.Cookie(middlewares.SessionCookieName); err == nil && raw != "" {
		if err := h.sessions.Logout(ctx.Request.Context(), raw); err != nil {
			h.log.WarnContext(ctx.Request.Context(), "session delete failed", "err", err)
		}
	}

	h.clearSessionCookie(ctx)
	flash.Write(ctx.Writer, flash.Info("You have been logged out."), h.secure)
	ctx.Redirect(http.StatusFound, loginPath)
}

// Dashboard makes sure the upload directories exist, then renders the admin forms.
func (h *AuthHandler) Dashboard(ctx *gin.Context) {
	if err := h.dirs.EnsureDirs(); err != nil {
		renderError(ctx, h.log, err, h.secure)
		return
	}

	renderPage(ctx, http.StatusOK, "admin_dashboard.html", gin.H{"title": "Dashboard"}, h.secure)
}

func (h *AuthHandler) observe(success bool) {
	if h.observer != nil {
		h.observer.ObserveLogin(success)
	}
}

func (h *AuthHandler) setSessionCookie(ctx *gin.Context, raw string) {
	ctx.SetSameSite(http.SameSiteLaxMode)

	ctx.SetCookie(
		middlewares.SessionCookieName,
		raw,
		int(h.ttl.Seconds()),
		"/",
		"",
		h.secure,
		true, // HttpOnly.
	)
}

func (h *AuthHandler) clearSessionCookie(ctx *gin.Context) {
	ctx.SetSameSite(http.SameSiteLaxMode)
	ctx.SetCookie(
		middlewares.SessionCookieName,
		"",
		-1,
		"/",
		"",
		h.secure,
		true,
	)
}
