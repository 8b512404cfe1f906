// Package server serves the portfolio: an HTML summary page, the CV as a PDF download,
// the portfolio data as JSON, the chat assistant and the contact form.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/portfolio-cv/internal/chat"
	"github.com/jonathan/portfolio-cv/internal/config"
	"github.com/jonathan/portfolio-cv/internal/rendering"
	"github.com/jonathan/portfolio-cv/internal/server/ratelimit"
	"github.com/jonathan/portfolio-cv/internal/types"
)

// shutdownTimeout bounds how long in-flight requests may take once Run is cancelled
const shutdownTimeout = 10 * time.Second

// Options holds the dependencies of a Server
type Options struct {
	Config    config.Config
	Portfolio *types.Portfolio
	Composer  *rendering.Composer // nil uses a default composer with Config.MaxProjects
	Assistant *chat.Assistant     // nil disables POST /api/chat
	Limiter   *ratelimit.Limiter  // nil loads the limiter configuration from the environment
	Logger    *zap.Logger
}

// Server represents the HTTP server
type Server struct {
	cfg       config.Config
	portfolio *types.Portfolio
	composer  *rendering.Composer
	assistant *chat.Assistant
	limiter   *ratelimit.Limiter
	logger    *zap.Logger
	router    chi.Router
}

// New creates a new server instance
func New(opts Options) (*Server, error) {
	if opts.Portfolio == nil {
		return nil, errors.New("portfolio is required")
	}

	s := &Server{
		cfg:       opts.Config,
		portfolio: opts.Portfolio,
		composer:  opts.Composer,
		assistant: opts.Assistant,
		limiter:   opts.Limiter,
		logger:    opts.Logger,
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	if s.composer == nil {
		s.composer = rendering.NewComposer(
			rendering.WithMaxProjects(s.cfg.MaxProjects),
			rendering.WithLogger(s.logger),
		)
	}
	if s.limiter == nil {
		s.limiter = ratelimit.NewLimiter(ratelimit.LoadConfig(os.Getenv))
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.withRequestID)
	r.Use(s.withLogging)
	r.Use(s.withCORS)
	r.Use(s.withRateLimit)

	r.Get("/health", s.handleHealth)
	r.Get("/", s.handleIndex)
	r.Get("/cv.pdf", s.handleCV)
	r.Route("/api", func(r chi.Router) {
		r.Get("/portfolio", s.handlePortfolio)
		r.Get("/projects", s.handleProjects)
		r.Post("/chat", s.handleChat)
		r.Post("/contact", s.handleContact)
	})
	s.router = r

	return s, nil
}

// Handler returns the HTTP handler with all middleware applied
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run listens on the configured address and serves until ctx is cancelled
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr())
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.cfg.Addr(), err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is cancelled, then shuts down gracefully
// and stops the rate limiter.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	defer s.Close()

	httpServer := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      90 * time.Second, // model replies can be slow
		IdleTimeout:       60 * time.Second,
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.logger.Info("server starting", zap.String("addr", ln.Addr().String()))
		if err := httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gCtx.Done()
		s.logger.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown failed: %w", err)
		}
		return nil
	})

	err := g.Wait()
	s.logger.Info("server stopped")
	return err
}

// Close releases background resources. Serve calls it on return.
func (s *Server) Close() {
	s.limiter.Stop()
}

// contactAddress is where inquiries are sent: the configured address or the profile email
func (s *Server) contactAddress() string {
	if s.cfg.ContactEmail != "" {
		return s.cfg.ContactEmail
	}
	return s.portfolio.Profile.Email
}
