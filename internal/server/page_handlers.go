package server

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jaki95/audio-downloader/internal/faq"
	"github.com/jaki95/audio-downloader/internal/form"
	"github.com/jaki95/audio-downloader/internal/media"
	"github.com/jaki95/audio-downloader/internal/session"
)

const (
	sessionCookie       = "session_id"
	sessionCookieMaxAge = 24 * 60 * 60
)

type selectOption struct {
	Value    string
	Label    string
	Selected bool
}

type pageData struct {
	State           form.State
	Formats         []selectOption
	Bitrates        []selectOption
	FAQ             []faq.Entry
	CopyrightNotice string
}

func newPageData(state form.State) pageData {
	data := pageData{
		State:           state,
		FAQ:             faq.Entries,
		CopyrightNotice: faq.CopyrightNotice,
	}
	for _, f := range media.Formats {
		data.Formats = append(data.Formats, selectOption{
			Value:    string(f),
			Label:    f.Label(),
			Selected: f == state.Format,
		})
	}
	for _, b := range media.Bitrates {
		data.Bitrates = append(data.Bitrates, selectOption{
			Value:    b.Value(),
			Label:    b.Label(),
			Selected: b == state.Bitrate,
		})
	}
	return data
}

// pageSession returns the session named by the visitor's cookie, creating a
// new one when the cookie is missing or stale
func (s *Server) pageSession(c *gin.Context) *session.Session {
	if id, err := c.Cookie(sessionCookie); err == nil {
		if sess, err := s.sessions.Get(id); err == nil {
			return sess
		}
	}

	sess := s.sessions.Create()
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(sessionCookie, sess.ID, sessionCookieMaxAge, "/", "", false, true)
	return sess
}

// index renders the download form
func (s *Server) index(c *gin.Context) {
	sess := s.pageSession(c)
	c.HTML(http.StatusOK, "index.html", newPageData(sess.Form.State()))
}

// submitPage applies the posted fields, submits the form and redirects back
// to the page so it renders the resulting state
func (s *Server) submitPage(c *gin.Context) {
	sess := s.pageSession(c)

	var post FormPost
	if err := c.ShouldBind(&post); err != nil {
		c.String(http.StatusBadRequest, "invalid form: %v", err)
		return
	}

	// Parse both selections before applying so a rejected post leaves the form untouched
	var (
		format  media.Format
		bitrate media.Bitrate
		err     error
	)
	if post.Format != "" {
		if format, err = media.ParseFormat(post.Format); err != nil {
			c.String(http.StatusBadRequest, "%v", err)
			return
		}
	}
	if post.Bitrate != "" {
		if bitrate, err = media.ParseBitrate(post.Bitrate); err != nil {
			c.String(http.StatusBadRequest, "%v", err)
			return
		}
	}

	f := sess.Form
	if post.Format != "" {
		f.SetFormat(format)
	}
	if post.Bitrate != "" {
		f.SetBitrate(bitrate)
	}
	f.SetURL(post.URL)

	if err := f.Submit(); err != nil && !errors.Is(err, media.ErrInvalidURL) {
		slog.Debug("Form submission ignored", "sessionId", sess.ID, "error", err)
	}

	c.Redirect(http.StatusSeeOther, "/")
}
