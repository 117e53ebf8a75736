package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/geocoder89/userhub/internal/domain/user"
	"github.com/geocoder89/userhub/internal/http/middlewares"
	"github.com/gin-gonic/gin"
)

type APIError struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"requestId,omitempty"`
	Details   any    `json:"details,omitempty"`
}

func RespondError(ctx *gin.Context, status int, code, message string, details any) {
	ctx.JSON(status, gin.H{
		"error": APIError{
			Code:      code,
			Message:   message,
			RequestID: middlewares.RequestIDFrom(ctx),
			Details:   details,
		},
	})
}

func RespondBadRequest(ctx *gin.Context, message string, details any) {
	RespondError(ctx, http.StatusBadRequest, "invalid_request", message, details)
}

func RespondInvalidID(ctx *gin.Context) {
	RespondError(ctx, http.StatusBadRequest, "invalid_id", "id must be a positive integer", nil)
}

func RespondNotFound(ctx *gin.Context, message string) {
	RespondError(ctx, http.StatusNotFound, "not_found", message, nil)
}

func RespondInternal(ctx *gin.Context, message string) {
	RespondError(ctx, http.StatusInternalServerError, "internal_error", message, nil)
}

// RespondServiceError maps user service errors onto the transport:
// validation → 400, not found → 404, anything else → 500.
func RespondServiceError(ctx *gin.Context, err error, fallback string) {
	var verr *user.ValidationError
	var nerr *user.NotFoundError

	switch {
	case errors.As(err, &verr):
		RespondError(ctx, http.StatusBadRequest, "validation_failed", verr.Error(), gin.H{
			"field": verr.Field,
			"value": verr.Value,
		})
	case errors.As(err, &nerr):
		RespondNotFound(ctx, "User not found")
	default:
		slog.Default().ErrorContext(ctx.Request.Context(), fallback, "err", err)
		RespondInternal(ctx, fallback)
	}
}
