// Package server exposes the lead intake over HTTP: the form endpoint,
// the diagnostics endpoints and the static landing page.
package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"leadgate/internal/intake"
	logx "leadgate/pkg/logx"
)

type Config struct {
	Port      int
	StaticDir string // landing page assets; skipped when the dir is absent
}

type Server struct {
	cfg    Config
	log    logx.Logger
	intake *intake.Service
}

func New(cfg Config, svc *intake.Service, log logx.Logger) *Server {
	if log.IsZero() {
		log = logx.Nop()
	}
	return &Server{cfg: cfg, log: log, intake: svc}
}

// Router builds the gin engine with all routes attached.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(s.log))

	r.POST("/submit-form", s.handleSubmit)
	r.GET("/test-integrations", s.handleTestIntegrations)
	r.GET("/leads", s.handleLeads)
	r.GET("/health", s.handleHealth)

	if dir := strings.TrimSpace(s.cfg.StaticDir); dir != "" {
		if st, err := os.Stat(dir); err == nil && st.IsDir() {
			r.NoRoute(gin.WrapH(http.FileServer(http.Dir(dir))))
		}
	}
	return r
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	addr := fmt.Sprintf(":%d", s.cfg.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()
	s.log.Info("http server listening", logx.String("addr", addr))

	select {
	case <-ctx.Done():
		shutCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutCtx)
	case err := <-errCh:
		return err
	}
}

func requestLogger(log logx.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Debug("http request",
			logx.String("method", c.Request.Method),
			logx.String("path", c.Request.URL.Path),
			logx.Int("status", c.Writer.Status()),
			logx.Duration("took", time.Since(start)),
		)
	}
}
