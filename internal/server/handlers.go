package server

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/jaki95/audio-downloader/internal/faq"
	"github.com/jaki95/audio-downloader/internal/media"
	"github.com/jaki95/audio-downloader/internal/session"
)

// createForm godoc
// @Summary Create a form
// @Description Starts a new form session with the default format and bitrate.
// @Tags Forms
// @Produce json
// @Success 201 {object} session.Snapshot
// @Router /api/forms [post]
func (s *Server) createForm(c *gin.Context) {
	sess := s.sessions.Create()
	c.JSON(http.StatusCreated, sess.Snapshot())
}

// listForms godoc
// @Summary List forms
// @Tags Forms
// @Produce json
// @Param page query int false "Page number"
// @Param pageSize query int false "Page size"
// @Success 200 {object} session.Response
// @Router /api/forms [get]
func (s *Server) listForms(c *gin.Context) {
	page := 1
	pageSize := session.DefaultPageSize

	if p := c.Query("page"); p != "" {
		if parsed, err := strconv.Atoi(p); err == nil && parsed > 0 {
			page = parsed
		}
	}

	if ps := c.Query("pageSize"); ps != "" {
		if parsed, err := strconv.Atoi(ps); err == nil && parsed > 0 && parsed <= session.MaxPageSize {
			pageSize = parsed
		}
	}

	c.JSON(http.StatusOK, s.sessions.List(page, pageSize))
}

// getForm godoc
// @Summary Get form state
// @Tags Forms
// @Produce json
// @Param id path string true "Form ID"
// @Success 200 {object} session.Snapshot
// @Failure 404 {object} ErrorResponse
// @Router /api/forms/{id} [get]
func (s *Server) getForm(c *gin.Context) {
	sess, err := s.sessions.Get(c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, sess.Snapshot())
}

// updateForm godoc
// @Summary Update form fields
// @Description Sets any of url, format and bitrate. Does not touch the error or loading state.
// @Tags Forms
// @Accept json
// @Produce json
// @Param id path string true "Form ID"
// @Param request body UpdateFormRequest true "Fields to change"
// @Success 200 {object} session.Snapshot
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/forms/{id} [patch]
func (s *Server) updateForm(c *gin.Context) {
	sess, err := s.sessions.Get(c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}

	var req UpdateFormRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: fmt.Sprintf("invalid request: %v", err)})
		return
	}

	// Parse everything before applying so a bad field leaves the form untouched
	var (
		format  media.Format
		bitrate media.Bitrate
	)
	if req.Format != nil {
		if format, err = media.ParseFormat(*req.Format); err != nil {
			abortWithError(c, err)
			return
		}
	}
	if req.Bitrate != nil {
		if bitrate, err = media.ParseBitrate(strconv.Itoa(*req.Bitrate)); err != nil {
			abortWithError(c, err)
			return
		}
	}

	if req.URL != nil {
		sess.Form.SetURL(*req.URL)
	}
	if req.Format != nil {
		sess.Form.SetFormat(format)
	}
	if req.Bitrate != nil {
		sess.Form.SetBitrate(bitrate)
	}

	c.JSON(http.StatusOK, sess.Snapshot())
}

// submitForm godoc
// @Summary Submit a form
// @Description Validates the URL and starts the simulated download.
// @Tags Forms
// @Produce json
// @Param id path string true "Form ID"
// @Success 202 {object} session.Snapshot
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "A simulated download is still running"
// @Failure 422 {object} ErrorResponse "The URL is not a YouTube or SoundCloud URL"
// @Router /api/forms/{id}/submit [post]
func (s *Server) submitForm(c *gin.Context) {
	sess, err := s.sessions.Get(c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}

	if err := sess.Form.Submit(); err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusAccepted, sess.Snapshot())
}

// deleteForm godoc
// @Summary Delete a form
// @Tags Forms
// @Produce json
// @Param id path string true "Form ID"
// @Success 200 {object} MessageResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/forms/{id} [delete]
func (s *Server) deleteForm(c *gin.Context) {
	if err := s.sessions.Delete(c.Param("id")); err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "Form deleted"})
}

// validateURL godoc
// @Summary Validate a media URL
// @Tags Utility
// @Accept json
// @Produce json
// @Param request body ValidateRequest true "URL to check"
// @Success 200 {object} ValidateResponse
// @Failure 400 {object} ErrorResponse
// @Router /api/validate [post]
func (s *Server) validateURL(c *gin.Context) {
	var req ValidateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: fmt.Sprintf("invalid request: %v", err)})
		return
	}

	source := media.DetectSource(req.URL)
	c.JSON(http.StatusOK, ValidateResponse{
		URL:    req.URL,
		Valid:  source != media.SourceUnknown,
		Source: string(source),
	})
}

// listFAQ godoc
// @Summary Frequently asked questions
// @Tags Utility
// @Produce json
// @Success 200 {array} faq.Entry
// @Router /api/faq [get]
func (s *Server) listFAQ(c *gin.Context) {
	c.JSON(http.StatusOK, faq.Entries)
}

// health godoc
// @Summary Health check
// @Tags Utility
// @Produce json
// @Success 200 {object} MessageResponse
// @Router /health [get]
func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "sessions": s.sessions.Len()})
}
