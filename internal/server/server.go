// Package server runs the theme creator: a page, a JSON API that drives the
// draft through its named operations, and a websocket hub that pushes every
// change to open pages.
package server

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/conneroisu/forge/internal/clipboard"
	"github.com/conneroisu/forge/internal/config"
	"github.com/conneroisu/forge/internal/draftfile"
	"github.com/conneroisu/forge/internal/errors"
	"github.com/conneroisu/forge/internal/logging"
	"github.com/conneroisu/forge/internal/middleware"
	"github.com/conneroisu/forge/internal/theme"
	"github.com/conneroisu/forge/internal/watcher"
)

// Server serves the theme creator.
type Server struct {
	config       *config.Config
	session      *Session
	hub          *Hub
	copier       *clipboard.Copier
	logger       logging.Logger
	errorHandler *errors.ErrorHandler
	writer       clipboard.WriteFunc

	httpServer   *http.Server
	serverMutex  sync.RWMutex
	watcher      *watcher.FileWatcher
	shutdownOnce sync.Once
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the server logger.
func WithLogger(l logging.Logger) Option {
	return func(s *Server) {
		s.logger = l
	}
}

// WithClipboardWriter replaces the system clipboard.
func WithClipboardWriter(w clipboard.WriteFunc) Option {
	return func(s *Server) {
		s.writer = w
	}
}

// New creates a server. When the config names a draft file it is loaded
// into the initial draft.
func New(ctx context.Context, cfg *config.Config, opts ...Option) (*Server, error) {
	s := &Server{
		config: cfg,
		logger: logging.Discard(),
		writer: clipboard.SystemWrite,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.WithComponent("server")
	s.errorHandler = errors.NewErrorHandler(s.logger)

	format, err := theme.ParseFormat(cfg.Theme.Format)
	if err != nil {
		return nil, err
	}

	draft := theme.NewDraft()
	if cfg.Theme.Draft != "" {
		d, res, err := draftfile.Build(ctx, cfg.Theme.Draft, s.logger)
		if err != nil {
			return nil, fmt.Errorf("loading draft: %w", err)
		}
		s.logger.Info(ctx, "Draft loaded", "file", cfg.Theme.Draft, "applied", res.Applied)
		draft = d
	}

	s.session = NewSession(draft, format)
	s.hub = NewHub(cfg.Server.AllowedOrigins, s.logger)
	s.hub.greeting = func() []byte { return s.greeting() }

	indicator := clipboard.NewIndicator(cfg.Theme.CopyReset)
	indicator.OnChange(func(copied bool) {
		s.hub.Broadcast(UpdateMessage{Type: MessageCopied, Copied: &copied})
	})
	s.copier = clipboard.NewCopier(indicator,
		clipboard.WithWriter(s.writer),
		clipboard.WithLogger(s.logger))

	return s, nil
}

// Session returns the shared session.
func (s *Server) Session() *Session {
	return s.session
}

// Handler builds the routed, middleware-wrapped handler.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.Handle("GET /ws", s.hub)

	mux.HandleFunc("GET /api/theme", s.handleTheme)
	mux.HandleFunc("POST /api/theme/preset", s.handlePreset)
	mux.HandleFunc("POST /api/theme/color", s.handleColor)
	mux.HandleFunc("POST /api/theme/radius", s.handleRadius)
	mux.HandleFunc("POST /api/theme/spacing", s.handleSpacing)
	mux.HandleFunc("POST /api/theme/font", s.handleFont)
	mux.HandleFunc("POST /api/theme/shadows", s.handleShadows)
	mux.HandleFunc("POST /api/theme/reset", s.handleReset)
	mux.HandleFunc("POST /api/theme/copy", s.handleCopy)
	mux.HandleFunc("GET /api/theme/snippet", s.handleSnippet)
	mux.HandleFunc("GET /api/theme/contrast", s.handleContrast)
	mux.HandleFunc("POST /api/view/mode", s.handleViewMode)
	mux.HandleFunc("GET /api/presets", s.handlePresets)
	mux.HandleFunc("GET /api/color/hsl", s.handleColorHSL)
	mux.HandleFunc("GET /api/color/hex", s.handleColorHex)

	return s.middlewareChain().Apply(mux)
}

// Start runs the hub, the optional draft watcher and the HTTP server. It
// returns when the server stops.
func (s *Server) Start(ctx context.Context) error {
	go s.hub.Run(ctx)

	if s.config.Theme.Watch && s.config.Theme.Draft != "" {
		if err := s.startWatcher(ctx); err != nil {
			s.logger.Warn(ctx, err, "Draft watcher disabled", "file", s.config.Theme.Draft)
		}
	}

	s.serverMutex.Lock()
	s.httpServer = &http.Server{
		Addr:              s.config.Server.Address(),
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	server := s.httpServer
	s.serverMutex.Unlock()

	s.logger.Info(ctx, "Theme creator listening", "addr", "http://"+server.Addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

func (s *Server) startWatcher(ctx context.Context) error {
	fw, err := watcher.NewFileWatcher(watcher.DefaultDebounce, s.logger)
	if err != nil {
		return err
	}
	fw.AddFilter(watcher.DraftFilter)
	fw.AddHandler(s.reloadDraft)
	if err := fw.WatchFile(s.config.Theme.Draft); err != nil {
		fw.Stop()
		return err
	}

	s.serverMutex.Lock()
	s.watcher = fw
	s.serverMutex.Unlock()

	return fw.Start(ctx)
}

// reloadDraft rebuilds the draft from disk. An invalid file keeps the
// current draft and tells open pages why.
func (s *Server) reloadDraft(ctx context.Context, events []watcher.ChangeEvent) error {
	for _, ev := range events {
		if ev.Type == watcher.EventTypeDeleted {
			s.logger.Warn(ctx, nil, "Draft file removed, keeping current draft", "file", ev.Path)
			return nil
		}
	}

	d, res, err := draftfile.Build(ctx, s.config.Theme.Draft, s.logger)
	if err != nil {
		s.hub.Broadcast(UpdateMessage{Type: MessageError, Message: err.Error()})
		return err
	}

	state := s.session.Replace(d)
	state.Copied = s.copier.Indicator().Copied()
	s.hub.Broadcast(UpdateMessage{Type: MessageTheme, State: &state})
	s.logger.Info(ctx, "Draft reloaded", "file", s.config.Theme.Draft, "applied", res.Applied)
	return nil
}

// Shutdown stops the watcher and the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error

	s.shutdownOnce.Do(func() {
		s.serverMutex.RLock()
		fw := s.watcher
		server := s.httpServer
		s.serverMutex.RUnlock()

		if fw != nil {
			if err := fw.Stop(); err != nil {
				s.logger.Warn(ctx, err, "Failed to stop draft watcher")
			}
		}
		if server != nil {
			shutdownErr = server.Shutdown(ctx)
		}
	})

	return shutdownErr
}

func (s *Server) middlewareChain() *middleware.Chain {
	return middleware.NewChain(
		middleware.Logging(s.logger),
		middleware.CORS(s.config.Server.AllowedOrigins),
		middleware.SecurityHeaders(),
	)
}
