package handlers

import (
	"context"
	"errors"
	"log/slog"
	"mime/multipart"
	"net/http"
	"time"

	domain "github.com/geocoder89/portfolio/internal/domain/content"
	"github.com/geocoder89/portfolio/internal/uploads"
	"github.com/gin-gonic/gin"
)

type ContentWriter interface {
	CreateExperience(ctx context.Context, e domain.Experience) (int64, error)
	CreateProject(ctx context.Context, p domain.Project) (int64, error)
	CreateCertification(ctx context.Context, c domain.Certification) (int64, error)
}

// Uploader is the file side of the admin endpoints. *uploads.Store implements it.
type Uploader interface {
	Save(fh *multipart.FileHeader, kind uploads.Kind) (string, error)
	RemoveCertificationImage(name string) error
}

type UploadObserver interface {
	ObserveUpload(kind, result string)
}

type AdminHandler struct {
	content  ContentWriter
	uploads  Uploader
	observer UploadObserver
	log      *slog.Logger
}

func NewAdminHandler(writer ContentWriter, uploader Uploader, observer UploadObserver, log *slog.Logger) *AdminHandler {
	if log == nil {
		log = slog.Default()
	}

	return &AdminHandler{content: writer, uploads: uploader, observer: observer, log: log}
}

const writeTimeout = 3 * time.Second

func (h *AdminHandler) observe(kind uploads.Kind, result string) {
	if h.observer != nil {
		h.observer.ObserveUpload(string(kind), result)
	}
}

func (h *AdminHandler) AddExperience(ctx *gin.Context) {
	var req domain.CreateExperienceRequest

	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := context.WithTimeout(ctx.Request.Context(), writeTimeout)
	defer cancel()

	id, err := h.content.CreateExperience(cctx, domain.NewExperienceFromRequest(req))

	if err != nil {
		h.log.ErrorContext(ctx.Request.Context(), "create experience failed", "err", err)
		RespondInternal(ctx, "Could not save experience")
		return
	}

	RespondCreated(ctx, "Experience added", id)
}

func (h *AdminHandler) AddProject(ctx *gin.Context) {
	var req domain.CreateProjectRequest

	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := context.WithTimeout(ctx.Request.Context(), writeTimeout)
	defer cancel()

	id, err := h.content.CreateProject(cctx, domain.NewProjectFromRequest(req))

	if err != nil {
		h.log.ErrorContext(ctx.Request.Context(), "create project failed", "err", err)
		RespondInternal(ctx, "Could not save project")
		return
	}

	RespondCreated(ctx, "Project added", id)
}

// formFile returns the named file part, or nil when the field is absent or has no filename.
// ok is false when a response has already been written.
func formFile(ctx *gin.Context, field string) (*multipart.FileHeader, bool) {
	fh, err := ctx.FormFile(field)

	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			RespondTooLarge(ctx, tooLarge.Limit)
			return nil, false
		}

		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, true
		}

		RespondBadRequest(ctx, "Could not read upload", gin.H{"field": field})
		return nil, false
	}

	if fh.Filename == "" {
		return nil, true
	}

	return fh, true
}

// AddCertification takes title, organization, year and an optional image from a multipart form.
// Fields are validated before anything touches disk; a failed insert removes the stored image.
func (h *AdminHandler) AddCertification(ctx *gin.Context) {
	var req domain.CreateCertificationRequest

	if !BindForm(ctx, &req) {
		return
	}

	fh, ok := formFile(ctx, "image")
	if !ok {
		return
	}

	var imageFile string

	if fh != nil {
		name, err := h.uploads.Save(fh, uploads.KindCertificationImage)

		if err != nil {
			if errors.Is(err, uploads.ErrDisallowedType) {
				h.observe(uploads.KindCertificationImage, "rejected")
				RespondBadRequest(ctx, "Invalid image type. Allowed: png, jpg, jpeg, gif.", gin.H{"field": "image"})
				return
			}

			h.observe(uploads.KindCertificationImage, "error")
			h.log.ErrorContext(ctx.Request.Context(), "store certification image failed", "err", err)
			RespondInternal(ctx, "Could not store image")
			return
		}

		h.observe(uploads.KindCertificationImage, "stored")
		imageFile = name
	}

	cctx, cancel := context.WithTimeout(ctx.Request.Context(), writeTimeout)
	defer cancel()

	id, err := h.content.CreateCertification(cctx, domain.NewCertificationFromRequest(req, imageFile))

	if err != nil {
		h.log.ErrorContext(ctx.Request.Context(), "create certification failed", "err", err)

		if rmErr := h.uploads.RemoveCertificationImage(imageFile); rmErr != nil {
			h.log.WarnContext(ctx.Request.Context(), "orphaned certification image", "file", imageFile, "err", rmErr)
		}

		RespondInternal(ctx, "Could not save certification")
		return
	}

	RespondCreated(ctx, "Certification added successfully!", id)
}

// UploadResume replaces the stored resume with the `resume` PDF part. Last writer wins.
func (h *AdminHandler) UploadResume(ctx *gin.Context) {
	fh, err := ctx.FormFile("resume")

	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			RespondTooLarge(ctx, tooLarge.Limit)
			return
		}

		RespondBadRequest(ctx, "No file part in request.", gin.H{"field": "resume"})
		return
	}

	if fh.Filename == "" {
		RespondBadRequest(ctx, "No file selected.", gin.H{"field": "resume"})
		return
	}

	_, err = h.uploads.Save(fh, uploads.KindResume)

	if err != nil {
		if errors.Is(err, uploads.ErrDisallowedType) || errors.Is(err, uploads.ErrNoFile) {
			h.observe(uploads.KindResume, "rejected")
			RespondBadRequest(ctx, "Invalid file type. Please upload a PDF.", gin.H{"field": "resume"})
			return
		}

		h.observe(uploads.KindResume, "error")
		h.log.ErrorContext(ctx.Request.Context(), "store resume failed", "err", err)
		RespondInternal(ctx, "Could not store resume")
		return
	}

	h.observe(uploads.KindResume, "stored")

	RespondOK(ctx, "Resume uploaded successfully!")
}
