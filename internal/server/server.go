package server

import (
	"embed"
	"html/template"
	"log/slog"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/jaki95/audio-downloader/config"
	"github.com/jaki95/audio-downloader/internal/form"
	"github.com/jaki95/audio-downloader/internal/session"
)

//go:embed templates/*.html
var templatesFS embed.FS

// Server serves the download form page and its JSON API
type Server struct {
	cfg      *config.Config
	router   *gin.Engine
	sessions *session.Manager

	stopOnce sync.Once
	stop     chan struct{}
}

// New creates a new HTTP server instance
func New(cfg *config.Config) *Server {
	gin.SetMode(cfg.Server.Mode)

	s := &Server{
		cfg:  cfg,
		stop: make(chan struct{}),
	}
	s.sessions = session.NewManager(s.newForm)

	router := gin.Default()
	router.SetHTMLTemplate(template.Must(template.ParseFS(templatesFS, "templates/*.html")))
	s.setupRoutes(router)
	s.router = router

	return s
}

func (s *Server) newForm() *form.Controller {
	return form.New(
		form.WithDefaults(s.cfg.Form.DefaultFormat, s.cfg.Form.DefaultBitrate),
		form.WithDelay(s.cfg.Form.SimulatedDelay),
	)
}

// setupRoutes configures the HTTP routes
func (s *Server) setupRoutes(router *gin.Engine) {
	router.GET("/health", s.health)

	router.GET("/", s.index)
	router.POST("/", s.submitPage)

	api := router.Group("/api")
	{
		api.POST("/validate", s.validateURL)
		api.GET("/faq", s.listFAQ)

		api.POST("/forms", s.createForm)
		api.GET("/forms", s.listForms)
		api.GET("/forms/:id", s.getForm)
		api.PATCH("/forms/:id", s.updateForm)
		api.POST("/forms/:id/submit", s.submitForm)
		api.DELETE("/forms/:id", s.deleteForm)
	}
}

// Handler exposes the router for embedding in another http.Server
func (s *Server) Handler() http.Handler {
	return s.router
}

// StartCleanupWorker starts pruning sessions idle for longer than the configured TTL
func (s *Server) StartCleanupWorker() {
	s.sessions.StartCleanupWorker(s.cfg.Sessions.CleanupInterval, s.cfg.Sessions.TTL, s.stop)
}

// Close stops background workers
func (s *Server) Close() {
	s.stopOnce.Do(func() {
		close(s.stop)
		slog.Info("Server background workers stopped")
	})
}

// Start starts the HTTP server
func (s *Server) Start(port string) error {
	return s.router.Run(":" + port)
}
