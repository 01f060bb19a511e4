package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/geocoder89/portfolio/internal/content"
	domain "github.com/geocoder89/portfolio/internal/domain/content"
	"github.com/geocoder89/portfolio/internal/http/flash"
	"github.com/geocoder89/portfolio/internal/uploads"
	"github.com/gin-gonic/gin"
)

// ContentReader is the read side the pages and the JSON API need. *content.Resolver implements it.
type ContentReader interface {
	Profile(ctx context.Context) domain.Profile
	Education(ctx context.Context) (content.Result[[]domain.Education], error)
	Experiences(ctx context.Context) (content.Result[[]domain.Experience], error)
	Certifications(ctx context.Context) (content.Result[[]domain.Certification], error)
	Skills(ctx context.Context) (content.Result[domain.SkillGroups], error)
	Projects(ctx context.Context) (content.Result[[]domain.Project], error)
	Achievements(ctx context.Context) (content.Result[[]domain.Achievement], error)
}

// ResumeLocator finds the stored resume PDF. *uploads.Store implements it.
type ResumeLocator interface {
	Resume() (string, error)
}

type PagesHandler struct {
	content ContentReader
	resume  ResumeLocator
	log     *slog.Logger
	secure  bool
}

func NewPagesHandler(reader ContentReader, resume ResumeLocator, log *slog.Logger, secureCookies bool) *PagesHandler {
	if log == nil {
		log = slog.Default()
	}

	return &PagesHandler{content: reader, resume: resume, log: log, secure: secureCookies}
}

func (h *PagesHandler) page(ctx *gin.Context, name, title string, data gin.H, unavailable bool) {
	data["title"] = title
	data["profile"] = h.content.Profile(ctx.Request.Context())
	data["banner"] = bannerFor(unavailable)

	renderPage(ctx, http.StatusOK, name, data, h.secure)
}

func (h *PagesHandler) Index(ctx *gin.Context) {
	res, err := h.content.Education(ctx.Request.Context())

	if err != nil {
		renderError(ctx, h.log, err, h.secure)
		return
	}

	h.page(ctx, "index.html", "", gin.H{"educations": res.Items}, res.StoreUnavailable)
}

func (h *PagesHandler) About(ctx *gin.Context) {
	res, err := h.content.Achievements(ctx.Request.Context())

	if err != nil {
		renderError(ctx, h.log, err, h.secure)
		return
	}

	h.page(ctx, "about.html", "About", gin.H{"achievements": res.Items}, res.StoreUnavailable)
}

func (h *PagesHandler) Education(ctx *gin.Context) {
	res, err := h.content.Education(ctx.Request.Context())

	if err != nil {
		renderError(ctx, h.log, err, h.secure)
		return
	}

	h.page(ctx, "educational.html", "Educational Qualification", gin.H{"educations": res.Items}, res.StoreUnavailable)
}

func (h *PagesHandler) Experience(ctx *gin.Context) {
	res, err := h.content.Experiences(ctx.Request.Context())

	if err != nil {
		renderError(ctx, h.log, err, h.secure)
		return
	}

	h.page(ctx, "professional_experience.html", "Professional Experience", gin.H{"experiences": res.Items}, res.StoreUnavailable)
}

func (h *PagesHandler) Certifications(ctx *gin.Context) {
	res, err := h.content.Certifications(ctx.Request.Context())

	if err != nil {
		renderError(ctx, h.log, err, h.secure)
		return
	}

	h.page(ctx, "certifications.html", "Certifications", gin.H{"certs": res.Items}, res.StoreUnavailable)
}

func (h *PagesHandler) Skills(ctx *gin.Context) {
	res, err := h.content.Skills(ctx.Request.Context())

	if err != nil {
		renderError(ctx, h.log, err, h.secure)
		return
	}

	h.page(ctx, "technical_skills.html", "Technical Skills", gin.H{"skills": res.Items}, res.StoreUnavailable)
}

func (h *PagesHandler) Projects(ctx *gin.Context) {
	res, err := h.content.Projects(ctx.Request.Context())

	if err != nil {
		renderError(ctx, h.log, err, h.secure)
		return
	}

	h.page(ctx, "projects.html", "Projects", gin.H{"projects": res.Items}, res.StoreUnavailable)
}

// DownloadResume streams the stored PDF as an attachment, or sends the browser
// back where it came from with a warning.
func (h *PagesHandler) DownloadResume(ctx *gin.Context) {
	path, err := h.resume.Resume()

	if err != nil {
		if !errors.Is(err, uploads.ErrResumeNotFound) {
			h.log.ErrorContext(ctx.Request.Context(), "resume lookup failed", "err", err)
		}

		flash.Write(ctx.Writer, flash.Warning("Resume not found."), h.secure)
		ctx.Redirect(http.StatusFound, backTarget(ctx))
		return
	}

	ctx.FileAttachment(path, uploads.ResumeFilename)
}
