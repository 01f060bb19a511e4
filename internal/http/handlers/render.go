package handlers

import (
	"log/slog"
	"net/http"
	"net/url"

	"github.com/geocoder89/portfolio/internal/http/flash"
	"github.com/geocoder89/portfolio/internal/http/middlewares"
	"github.com/gin-gonic/gin"
)

const fallbackBanner = "Database not connected. Displaying fallback data."

// renderPage adds the layout keys (pending flash notice, login state) and renders name.
func renderPage(ctx *gin.Context, status int, name string, data gin.H, secureCookies bool) {
	if data == nil {
		data = gin.H{}
	}

	if notice, ok := flash.ReadAndClear(ctx.Writer, ctx.Request, secureCookies); ok {
		if _, set := data["flash"]; !set {
			data["flash"] = &notice
		}
	}

	if sess, ok := middlewares.SessionFromContext(ctx); ok {
		data["loggedIn"] = true
		data["username"] = sess.Username
	}

	ctx.HTML(status, name, data)
}

func renderError(ctx *gin.Context, log *slog.Logger, err error, secureCookies bool) {
	log.ErrorContext(ctx.Request.Context(), "page failed",
		"route", ctx.FullPath(),
		"err", err,
	)

	_ = ctx.Error(err)

	renderPage(ctx, http.StatusInternalServerError, "error.html", gin.H{
		"title":     "Error",
		"message":   "The page could not be loaded. Please try again later.",
		"requestId": requestIDFrom(ctx),
	}, secureCookies)
}

// backTarget is the same-origin page the browser came from, or "/".
func backTarget(ctx *gin.Context) string {
	ref := ctx.Request.Referer()
	if ref == "" {
		return "/"
	}

	u, err := url.Parse(ref)
	if err != nil || (u.Host != "" && u.Host != ctx.Request.Host) || u.Path == "" {
		return "/"
	}

	target := u.Path
	if u.RawQuery != "" {
		target += "?" + u.RawQuery
	}

	return target
}

func bannerFor(unavailable bool) string {
	if unavailable {
		return fallbackBanner
	}
	return ""
}
