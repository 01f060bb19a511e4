package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/geocoder89/portfolio/internal/content"
	"github.com/gin-gonic/gin"
)

type ContentAPIHandler struct {
	content ContentReader
	log     *slog.Logger
}

func NewContentAPIHandler(reader ContentReader, log *slog.Logger) *ContentAPIHandler {
	if log == nil {
		log = slog.Default()
	}

	return &ContentAPIHandler{content: reader, log: log}
}

type sectionPayload struct {
	Section          string         `json:"section"`
	Origin           content.Origin `json:"origin"`
	StoreUnavailable bool           `json:"storeUnavailable"`
	Items            interface{}    `json:"items"`
}

func payloadOf[T any](section string, res content.Result[T]) sectionPayload {
	return sectionPayload{
		Section:          section,
		Origin:           res.Origin,
		StoreUnavailable: res.StoreUnavailable,
		Items:            res.Items,
	}
}

func (h *ContentAPIHandler) read(ctx context.Context, section string) (sectionPayload, bool, error) {
	var (
		p   sectionPayload
		err error
	)

	switch section {
	case content.SectionEducation:
		res, e := h.content.Education(ctx)
		p, err = payloadOf(section, res), e
	case content.SectionExperience:
		res, e := h.content.Experiences(ctx)
		p, err = payloadOf(section, res), e
	case content.SectionCertifications:
		res, e := h.content.Certifications(ctx)
		p, err = payloadOf(section, res), e
	case content.SectionSkills:
		res, e := h.content.Skills(ctx)
		p, err = payloadOf(section, res), e
	case content.SectionProjects:
		res, e := h.content.Projects(ctx)
		p, err = payloadOf(section, res), e
	case content.SectionAchievements:
		res, e := h.content.Achievements(ctx)
		p, err = payloadOf(section, res), e
	default:
		return sectionPayload{}, false, nil
	}

	return p, true, err
}

// GetSection serves GET /api/content/:section with ETag / If-None-Match support.
func (h *ContentAPIHandler) GetSection(ctx *gin.Context) {
	section := ctx.Param("section")

	p, known, err := h.read(ctx.Request.Context(), section)

	if !known {
		RespondNotFound(ctx, "Unknown content section")
		return
	}

	if err != nil {
		h.log.ErrorContext(ctx.Request.Context(), "content api read failed", "section", section, "err", err)
		RespondInternal(ctx, "Could not load content")
		return
	}

	RespondJSONWithETag(ctx, http.StatusOK, p)
}
