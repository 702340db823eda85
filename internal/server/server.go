// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package server exposes the TubeLytics search API and HTML pages over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/pdiddy/tubelytics/internal/cache"
	"github.com/pdiddy/tubelytics/internal/render"
	"github.com/pdiddy/tubelytics/internal/searchui"
	"github.com/pdiddy/tubelytics/pkg/types"
)

const (
	serviceName     = "tubelytics"
	shutdownTimeout = 10 * time.Second
)

// Searcher is the upstream video provider.
type Searcher interface {
	Search(ctx context.Context, query string) (*types.SearchResponse, error)
	ChannelProfile(ctx context.Context, channelID string) (*types.ChannelProfile, error)
}

// HistoryStore records served searches.
type HistoryStore interface {
	Add(ctx context.Context, query string, resp *types.SearchResponse) (*types.HistoryEntry, error)
	Recent(ctx context.Context, limit int) ([]types.HistoryEntry, error)
}

// Options wires a Server. Searcher is required; Cache and History may be nil.
type Options struct {
	Config   types.ServerConfig
	Searcher Searcher
	Cache    *cache.Cache
	History  HistoryStore
	Renderer *render.Renderer
	Logger   *zap.Logger

	// PageFetcher is what the index page's SearchUI calls. It defaults to
	// an HTTP fetcher against Config.PublicURL.
	PageFetcher searchui.Fetcher
}

// Server holds the handlers' dependencies.
type Server struct {
	cfg         types.ServerConfig
	searcher    Searcher
	cache       *cache.Cache
	history     HistoryStore
	renderer    *render.Renderer
	logger      *zap.Logger
	pageFetcher searchui.Fetcher
}

// New validates opts and returns a Server.
func New(opts Options) (*Server, error) {
	if opts.Searcher == nil {
		return nil, errors.New("server: searcher is required")
	}
	defaults := types.DefaultConfig().Server
	cfg := opts.Config
	if cfg.MaxQueryLength <= 0 {
		cfg.MaxQueryLength = defaults.MaxQueryLength
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = defaults.RequestTimeout
	}
	if cfg.Addr == "" {
		cfg.Addr = defaults.Addr
	}
	if cfg.PublicURL == "" {
		cfg.PublicURL = LocalURL(cfg.Addr)
	}

	renderer := opts.Renderer
	if renderer == nil {
		r, err := render.New(render.Options{})
		if err != nil {
			return nil, err
		}
		renderer = r
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	fetcher := opts.PageFetcher
	if fetcher == nil {
		fetcher = searchui.NewHTTPFetcher(cfg.PublicURL, &http.Client{Timeout: cfg.RequestTimeout})
	}

	return &Server{
		cfg:         cfg,
		searcher:    opts.Searcher,
		cache:       opts.Cache,
		history:     opts.History,
		renderer:    renderer,
		logger:      logger,
		pageFetcher: fetcher,
	}, nil
}

// LocalURL returns the base URL a client on this host uses to reach a
// server listening on addr. Wildcard and empty hosts become localhost.
func LocalURL(addr string) string {
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return "http://" + addr
	}
	switch host {
	case "", "0.0.0.0", "::":
		host = "localhost"
	}
	return "http://" + net.JoinHostPort(host, port)
}

// Router returns the HTTP handler with middleware and routes installed.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(s.logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(s.cfg.RequestTimeout))

	r.Get("/health", s.HandleHealth)
	r.Get("/", s.HandleIndex)
	r.Get("/channel/{id}", s.HandleChannel)
	r.Route("/tubelytics", func(r chi.Router) {
		r.Get("/search", s.HandleSearch)
		r.Get("/history", s.HandleHistory)
	})
	return r
}

// ListenAndServe listens on addr and serves until ctx is done.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is done, then shuts down
// gracefully.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	httpSrv := &http.Server{
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.logger.Info("tubelytics listening", zap.String("addr", ln.Addr().String()))
		if err := httpSrv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serving: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		s.logger.Info("shutting down")
		return httpSrv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
