package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jaki95/audio-downloader/internal/form"
	"github.com/jaki95/audio-downloader/internal/media"
	"github.com/jaki95/audio-downloader/internal/session"
)

// statusFor maps domain errors to HTTP status codes
func statusFor(err error) int {
	switch {
	case errors.Is(err, session.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, media.ErrInvalidURL):
		return http.StatusUnprocessableEntity
	case errors.Is(err, form.ErrSubmitInFlight):
		return http.StatusConflict
	case errors.Is(err, media.ErrUnknownFormat), errors.Is(err, media.ErrUnknownBitrate):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func abortWithError(c *gin.Context, err error) {
	c.AbortWithStatusJSON(statusFor(err), ErrorResponse{Error: err.Error()})
}
