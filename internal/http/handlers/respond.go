package handlers

import (
	"net/http"

	"github.com/geocoder89/portfolio/internal/http/middlewares"
	"github.com/gin-gonic/gin"
)

// Envelope is the body of every admin JSON response.
type Envelope struct {
	Success   bool        `json:"success"`
	Message   string      `json:"message"`
	ID        *int64      `json:"id,omitempty"`
	Code      string      `json:"code,omitempty"`
	RequestID string      `json:"requestId,omitempty"`
	Details   interface{} `json:"details,omitempty"`
}

func requestIDFrom(ctx *gin.Context) string {
	if id := ctx.GetString(middlewares.CtxRequestID); id != "" {
		return id
	}

	// fallback header
	return ctx.GetHeader("X-Request-Id")
}

func RespondOK(ctx *gin.Context, message string) {
	ctx.JSON(http.StatusOK, Envelope{Success: true, Message: message})
}

func RespondCreated(ctx *gin.Context, message string, id int64) {
	ctx.JSON(http.StatusCreated, Envelope{Success: true, Message: message, ID: &id})
}

func RespondError(ctx *gin.Context, status int, code, message string, details interface{}) {
	ctx.JSON(status, Envelope{
		Success:   false,
		Message:   message,
		Code:      code,
		RequestID: requestIDFrom(ctx),
		Details:   details,
	})
}

func RespondBadRequest(ctx *gin.Context, message string, details interface{}) {
	RespondError(ctx, http.StatusBadRequest, "invalid_request", message, details)
}

func RespondUnauthorized(ctx *gin.Context, message string) {
	RespondError(ctx, http.StatusUnauthorized, "unauthorized", message, nil)
}

func RespondNotFound(ctx *gin.Context, message string) {
	RespondError(ctx, http.StatusNotFound, "not_found", message, nil)
}

func RespondTooLarge(ctx *gin.Context, limit int64) {
	RespondError(ctx, http.StatusRequestEntityTooLarge, "too_large", "Upload is too large.", gin.H{"maxBytes": limit})
}

func RespondInternal(ctx *gin.Context, message string) {
	RespondError(ctx, http.StatusInternalServerError, "internal_error", message, nil)
}
