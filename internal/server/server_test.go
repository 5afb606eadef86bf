package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jaki95/audio-downloader/config"
	"github.com/jaki95/audio-downloader/internal/faq"
	"github.com/jaki95/audio-downloader/internal/media"
	"github.com/jaki95/audio-downloader/internal/progress"
	"github.com/jaki95/audio-downloader/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, delay time.Duration) *Server {
	t.Helper()
	cfg := config.Default()
	cfg.Server.Mode = gin.TestMode
	cfg.Form.SimulatedDelay = delay

	server := New(cfg)
	t.Cleanup(server.Close)
	return server
}

func doJSON(t *testing.T, s *Server, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		require.NoError(t, json.NewEncoder(&buf).Encode(b))
	}

	req, err := http.NewRequest(method, path, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	rr := httptest.NewRecorder()
	s.router.ServeHTTP(rr, req)
	return rr
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &v), rr.Body.String())
	return v
}

func createForm(t *testing.T, s *Server) *session.Snapshot {
	t.Helper()
	rr := doJSON(t, s, http.MethodPost, "/api/forms", nil)
	require.Equal(t, http.StatusCreated, rr.Code)
	return decode[*session.Snapshot](t, rr)
}

func TestHealthCheck(t *testing.T) {
	server := newTestServer(t, time.Hour)

	rr := doJSON(t, server, http.MethodGet, "/health", nil)

	assert.Equal(t, http.StatusOK, rr.Code)
	response := decode[map[string]interface{}](t, rr)
	assert.Equal(t, "ok", response["status"])
}

func TestCreateForm(t *testing.T) {
	server := newTestServer(t, time.Hour)

	snap := createForm(t, server)

	assert.NotEmpty(t, snap.ID)
	assert.Equal(t, "", snap.State.URL)
	assert.Equal(t, media.FormatMP3, snap.State.Format)
	assert.Equal(t, media.Bitrate320, snap.State.Bitrate)
	assert.False(t, snap.State.IsLoading)
	assert.Empty(t, snap.State.Error)
	assert.Equal(t, progress.StageIdle, snap.Stage)
}

func TestCreateFormUsesConfiguredDefaults(t *testing.T) {
	cfg := config.Default()
	cfg.Server.Mode = gin.TestMode
	cfg.Form.DefaultFormat = media.FormatWAV
	cfg.Form.DefaultBitrate = media.Bitrate128
	server := New(cfg)
	t.Cleanup(server.Close)

	snap := createForm(t, server)

	assert.Equal(t, media.FormatWAV, snap.State.Format)
	assert.Equal(t, media.Bitrate128, snap.State.Bitrate)
}

func TestGetForm_NotFound(t *testing.T) {
	server := newTestServer(t, time.Hour)

	tests := []struct {
		name   string
		method string
		path   string
	}{
		{"get", http.MethodGet, "/api/forms/non-existent"},
		{"update", http.MethodPatch, "/api/forms/non-existent"},
		{"submit", http.MethodPost, "/api/forms/non-existent/submit"},
		{"delete", http.MethodDelete, "/api/forms/non-existent"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := doJSON(t, server, tt.method, tt.path, map[string]string{})
			assert.Equal(t, http.StatusNotFound, rr.Code)
			assert.Contains(t, decode[ErrorResponse](t, rr).Error, "session not found")
		})
	}
}

func TestUpdateForm(t *testing.T) {
	server := newTestServer(t, time.Hour)
	id := createForm(t, server).ID

	rr := doJSON(t, server, http.MethodPatch, "/api/forms/"+id, map[string]interface{}{
		"url":     "soundcloud.com/user/track",
		"format":  "aac",
		"bitrate": 256,
	})

	require.Equal(t, http.StatusOK, rr.Code)
	snap := decode[*session.Snapshot](t, rr)
	assert.Equal(t, "soundcloud.com/user/track", snap.State.URL)
	assert.Equal(t, media.FormatAAC, snap.State.Format)
	assert.Equal(t, media.Bitrate256, snap.State.Bitrate)
	assert.False(t, snap.State.IsLoading)
}

func TestUpdateFormPartial(t *testing.T) {
	server := newTestServer(t, time.Hour)
	id := createForm(t, server).ID

	rr := doJSON(t, server, http.MethodPatch, "/api/forms/"+id, map[string]interface{}{"bitrate": 128})

	require.Equal(t, http.StatusOK, rr.Code)
	snap := decode[*session.Snapshot](t, rr)
	assert.Equal(t, media.FormatMP3, snap.State.Format)
	assert.Equal(t, media.Bitrate128, snap.State.Bitrate)
}

func TestUpdateFormRejectsUnknownValues(t *testing.T) {
	server := newTestServer(t, time.Hour)
	id := createForm(t, server).ID

	tests := []struct {
		name string
		body interface{}
	}{
		{"unknown format", map[string]interface{}{"url": "x", "format": "flac"}},
		{"unknown bitrate", map[string]interface{}{"url": "x", "bitrate": 192}},
		{"invalid json", "not json"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := doJSON(t, server, http.MethodPatch, "/api/forms/"+id, tt.body)
			assert.Equal(t, http.StatusBadRequest, rr.Code)
		})
	}

	rr := doJSON(t, server, http.MethodGet, "/api/forms/"+id, nil)
	assert.Equal(t, "", decode[*session.Snapshot](t, rr).State.URL, "rejected updates leave the form untouched")
}

func TestSubmitForm_InvalidURL(t *testing.T) {
	server := newTestServer(t, time.Hour)
	id := createForm(t, server).ID

	doJSON(t, server, http.MethodPatch, "/api/forms/"+id, map[string]string{"url": "https://vimeo.com/123"})
	rr := doJSON(t, server, http.MethodPost, "/api/forms/"+id+"/submit", nil)

	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	assert.Equal(t, "Please enter a valid YouTube or SoundCloud URL", decode[ErrorResponse](t, rr).Error)

	snap := decode[*session.Snapshot](t, doJSON(t, server, http.MethodGet, "/api/forms/"+id, nil))
	assert.False(t, snap.State.IsLoading)
	assert.Equal(t, media.InvalidURLMessage, snap.State.Error)
	assert.Equal(t, progress.StageError, snap.Stage)
	require.Len(t, snap.Events, 1)
	assert.Equal(t, progress.StageError, snap.Events[0].Stage)
}

func TestSubmitForm_Valid(t *testing.T) {
	server := newTestServer(t, time.Hour)
	id := createForm(t, server).ID

	doJSON(t, server, http.MethodPatch, "/api/forms/"+id, map[string]string{"url": "nope"})
	require.Equal(t, http.StatusUnprocessableEntity, doJSON(t, server, http.MethodPost, "/api/forms/"+id+"/submit", nil).Code)

	doJSON(t, server, http.MethodPatch, "/api/forms/"+id, map[string]string{"url": "https://www.youtube.com/watch?v=abc123"})
	rr := doJSON(t, server, http.MethodPost, "/api/forms/"+id+"/submit", nil)

	require.Equal(t, http.StatusAccepted, rr.Code)
	snap := decode[*session.Snapshot](t, rr)
	assert.True(t, snap.State.IsLoading)
	assert.Empty(t, snap.State.Error)
	assert.Equal(t, progress.StageLoading, snap.Stage)

	rr = doJSON(t, server, http.MethodPost, "/api/forms/"+id+"/submit", nil)
	assert.Equal(t, http.StatusConflict, rr.Code)
}

func TestSubmitForm_LoadingEnds(t *testing.T) {
	server := newTestServer(t, 20*time.Millisecond)
	id := createForm(t, server).ID

	doJSON(t, server, http.MethodPatch, "/api/forms/"+id, map[string]string{"url": "soundcloud.com/user/track"})
	require.Equal(t, http.StatusAccepted, doJSON(t, server, http.MethodPost, "/api/forms/"+id+"/submit", nil).Code)

	assert.Eventually(t, func() bool {
		snap := decode[*session.Snapshot](t, doJSON(t, server, http.MethodGet, "/api/forms/"+id, nil))
		return !snap.State.IsLoading && snap.Stage == progress.StageIdle
	}, 2*time.Second, 10*time.Millisecond)

	snap := decode[*session.Snapshot](t, doJSON(t, server, http.MethodGet, "/api/forms/"+id, nil))
	assert.Empty(t, snap.State.Error)
	assert.Equal(t, "soundcloud.com/user/track", snap.State.URL)
}

func TestDeleteForm(t *testing.T) {
	server := newTestServer(t, time.Hour)
	id := createForm(t, server).ID

	rr := doJSON(t, server, http.MethodDelete, "/api/forms/"+id, nil)
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = doJSON(t, server, http.MethodGet, "/api/forms/"+id, nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestListForms(t *testing.T) {
	server := newTestServer(t, time.Hour)
	for i := 0; i < 3; i++ {
		createForm(t, server)
	}

	rr := doJSON(t, server, http.MethodGet, "/api/forms?page=1&pageSize=2", nil)

	require.Equal(t, http.StatusOK, rr.Code)
	response := decode[session.Response](t, rr)
	assert.Len(t, response.Sessions, 2)
	assert.Equal(t, 3, response.Total)
	assert.Equal(t, 2, response.TotalPages)

	rr = doJSON(t, server, http.MethodGet, "/api/forms?page=abc&pageSize=1000", nil)
	response = decode[session.Response](t, rr)
	assert.Equal(t, 1, response.Page)
	assert.Equal(t, session.DefaultPageSize, response.PageSize)
}

func TestValidateURL(t *testing.T) {
	server := newTestServer(t, time.Hour)

	tests := []struct {
		url    string
		valid  bool
		source string
	}{
		{"https://www.youtube.com/watch?v=abc123", true, "youtube"},
		{"soundcloud.com/user/track", true, "soundcloud"},
		{"https://vimeo.com/123", false, "unknown"},
		{"", false, "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			rr := doJSON(t, server, http.MethodPost, "/api/validate", ValidateRequest{URL: tt.url})
			require.Equal(t, http.StatusOK, rr.Code)
			response := decode[ValidateResponse](t, rr)
			assert.Equal(t, tt.valid, response.Valid)
			assert.Equal(t, tt.source, response.Source)
		})
	}

	rr := doJSON(t, server, http.MethodPost, "/api/validate", "invalid json")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestFAQ(t *testing.T) {
	server := newTestServer(t, time.Hour)

	rr := doJSON(t, server, http.MethodGet, "/api/faq", nil)

	require.Equal(t, http.StatusOK, rr.Code)
	entries := decode[[]faq.Entry](t, rr)
	require.Len(t, entries, 3)
	assert.Equal(t, "What formats are supported?", entries[0].Question)
}
