// Package web serves the portfolio page and its supporting routes.
package web

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Zachkp/devfolio/internal/content"
)

// Config defines the inputs for the web server.
type Config struct {
	Portfolio *content.Portfolio
	// Visitors enables visitor tracking and the admin pages when non-nil.
	Visitors  VisitorStore
	Admin     AdminCredentials
	Retention time.Duration
	StaticDir string
	Service   string
	Version   string
}

type Server struct {
	engine    *gin.Engine
	portfolio *content.Portfolio
	version   string
}

// NewServer builds the gin engine with every route registered.
func NewServer(cfg Config) (*Server, error) {
	if cfg.Portfolio == nil {
		return nil, errors.New("portfolio is required")
	}
	if cfg.Service == "" {
		cfg.Service = "devfolio"
	}

	tmpl, err := parseTemplates()
	if err != nil {
		return nil, err
	}
	static, err := staticFiles(cfg.StaticDir)
	if err != nil {
		return nil, err
	}

	r := gin.New()
	if gin.Mode() == gin.DebugMode {
		r.Use(gin.Logger())
	}
	r.Use(gin.Recovery(), RequestIDMiddleware())
	if cfg.Visitors != nil {
		r.Use(VisitorTrackingMiddleware(cfg.Visitors))
	}
	r.SetHTMLTemplate(tmpl)
	r.StaticFS("/static", static)

	s := &Server{engine: r, portfolio: cfg.Portfolio, version: cfg.Version}

	r.GET("/", s.index)
	r.GET("/privacy", s.privacy)
	r.NoRoute(s.notFound)

	var store pinger
	if cfg.Visitors != nil {
		store = cfg.Visitors
		admin, err := newAdminHandler(cfg.Visitors, cfg.Admin, cfg.Retention)
		if err != nil {
			return nil, err
		}
		admin.RegisterRoutes(r)
	}
	NewHealthHandler(cfg.Service, cfg.Version, store).RegisterRoutes(r)

	return s, nil
}

func (s *Server) Handler() http.Handler {
	return s.engine
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string, shutdownTimeout time.Duration) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("listening on %s", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve http: %w", err)
	case <-ctx.Done():
	}

	log.Println("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown http: %w", err)
	}
	return nil
}
