package web

import (
	"context"
	"embed"
	"errors"
	"html/template"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/san-kum/cyberfolio/internal/config"
	"github.com/san-kum/cyberfolio/internal/profile"
	"github.com/san-kum/cyberfolio/internal/viz"
)

//go:embed templates/*.html
var templateFS embed.FS

const (
	maxTextRunes = 256
	minSpeed     = 5 * time.Millisecond
	frameBuffer  = 64
)

// Server serves the portfolio page, the profile API and scramble streams.
type Server struct {
	cfg     *config.Config
	profile *profile.Profile
	logger  *log.Logger
	engine  *gin.Engine
}

func NewServer(cfg *config.Config, p *profile.Profile, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{cfg: cfg, profile: p, logger: logger}

	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())
	r.SetHTMLTemplate(template.Must(template.ParseFS(templateFS, "templates/*.html")))

	r.GET("/", s.index)
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	api.GET("/profile", func(c *gin.Context) {
		c.JSON(http.StatusOK, s.profile)
	})
	api.GET("/presets", func(c *gin.Context) {
		presets := make(map[string]config.ScrambleConfig)
		for _, name := range config.ListPresets() {
			opts, _ := s.cfg.Preset(name)
			presets[name] = config.FromOptions(opts)
		}
		c.JSON(http.StatusOK, presets)
	})
	api.GET("/scramble", s.scramble)

	s.engine = r
	return s
}

func (s *Server) Handler() http.Handler { return s.engine }

// Run listens on cfg.Addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{Addr: s.cfg.Addr, Handler: s.engine}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Printf("listening on %s", s.cfg.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) index(c *gin.Context) {
	theme := viz.GetTheme(s.cfg.Theme)
	counts := s.profile.CountByRarity()
	c.HTML(http.StatusOK, "index.html", gin.H{
		"profile": s.profile,
		"theme":   theme,
		"epic":    counts[profile.RarityEpic],
		"rare":    counts[profile.RarityRare],
	})
}
