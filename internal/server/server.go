// Package server serves a demo page whose head carries the registered
// stylesheets, plus the child stylesheet itself.
package server

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/patii/workcity/internal/cachemanager"
	"github.com/patii/workcity/internal/config"
	"github.com/patii/workcity/internal/hook"
	"github.com/patii/workcity/internal/log"
	"github.com/patii/workcity/internal/pubsub"
	"github.com/patii/workcity/internal/render"
	"github.com/patii/workcity/internal/theme"
	"github.com/patii/workcity/internal/watcher"
)

const headCacheKey = "head"

// RequestIDHeader carries the per-request identifier.
const RequestIDHeader = "X-Request-ID"

// Server is the demo HTTP server.
type Server struct {
	cfg      config.Config
	renderer *render.Renderer
	heads    *cachemanager.ReadThroughCache[render.Result]
	changes  *pubsub.Broker[string]
	themeFS  fs.FS
	tracer   trace.Tracer
	mux      *http.ServeMux
	health   health
}

// Option configures a Server.
type Option func(*Server)

// WithTracer records a span per request and passes it on to rendering.
func WithTracer(t trace.Tracer) Option {
	return func(s *Server) { s.tracer = t }
}

// WithThemeFS overrides where style.css is read from.
func WithThemeFS(fsys fs.FS) Option {
	return func(s *Server) { s.themeFS = fsys }
}

// New builds a server that renders the parent and child theme styles.
func New(cfg config.Config, opts ...Option) *Server {
	s := &Server{
		cfg:     cfg,
		changes: pubsub.NewBroker[string](),
		tracer:  noop.NewTracerProvider().Tracer("noop"),
		mux:     http.NewServeMux(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.themeFS == nil {
		s.themeFS = ThemeFS(cfg)
	}

	actions := hook.NewActions()
	theme.InstallParent(actions, cfg.TemplateDirURI(), cfg.ParentVersion)
	theme.Install(actions, cfg.StylesheetDirURI())
	s.renderer = render.New(actions, render.WithTracer(s.tracer))

	cache := cachemanager.NewInMemoryCacheManager[render.Result]("head", cfg.Cache.TTL, cachemanager.DefaultCleanupInterval)
	s.heads = cachemanager.NewReadThroughCache[render.Result](cache, s.renderer.Head, !cfg.Cache.Enabled)

	s.mux.HandleFunc("GET /{$}", s.handlePage)
	s.mux.HandleFunc("GET "+cfg.StylesheetPath(), s.handleStylesheet)
	s.mux.HandleFunc("GET /healthz", s.handleHealth)

	s.recheck()
	return s
}

// ThemeFS returns the configured theme directory, or the embedded stylesheet
// when no directory is configured.
func ThemeFS(cfg config.Config) fs.FS {
	if cfg.ThemeDir != "" {
		return os.DirFS(cfg.ThemeDir)
	}
	return theme.StaticFS()
}

// Handler returns the server's HTTP handler with request middleware applied.
func (s *Server) Handler() http.Handler {
	return s.middleware(s.mux)
}

// Changes publishes the base name of theme files as they change on disk.
func (s *Server) Changes() *pubsub.Broker[string] {
	return s.changes
}

// Run serves on cfg.Server.Addr until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Server.Addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", s.cfg.Server.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is cancelled, then shuts down
// gracefully within cfg.Server.ShutdownTimeout.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	defer s.changes.Close()

	go s.recheckOnChange(s.changes.Subscribe(ctx))
	if s.cfg.Watch.Enabled && s.cfg.ThemeDir != "" {
		stop, err := s.watch()
		if err != nil {
			return err
		}
		defer stop()
	}

	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info(log.CatServer, "listening", "addr", ln.Addr().String())
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serving: %w", err)
	case <-ctx.Done():
	}

	timeout := s.cfg.Server.ShutdownTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), timeout)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	log.Info(log.CatServer, "stopped")
	return nil
}

func (s *Server) watch() (func(), error) {
	w, err := watcher.New(watcher.Config{
		Dir:         s.cfg.ThemeDir,
		Files:       []string{theme.Stylesheet},
		DebounceDur: s.cfg.Watch.Debounce,
	})
	if err != nil {
		return nil, err
	}
	onChange, err := w.Start()
	if err != nil {
		_ = w.Stop()
		return nil, err
	}

	done := make(chan struct{})
	go func() {
		for {
			select {
			case <-done:
				return
			case <-onChange:
				s.changes.Publish(pubsub.ChangedEvent, theme.Stylesheet)
			}
		}
	}()

	return func() {
		close(done)
		_ = w.Stop()
	}, nil
}

func (s *Server) recheckOnChange(events <-chan pubsub.Event[string]) {
	for ev := range events {
		log.Info(log.CatServer, "theme file changed, checking header", "file", ev.Payload)
		s.recheck()
	}
}

func (s *Server) middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)

		ctx, span := s.tracer.Start(r.Context(), r.Method+" "+r.URL.Path,
			trace.WithSpanKind(trace.SpanKindServer),
			trace.WithAttributes(attribute.String("http.request_id", id)))
		defer span.End()

		start := time.Now()
		next.ServeHTTP(w, r.WithContext(ctx))
		log.Debug(log.CatServer, "request", "id", id, "method", r.Method, "path", r.URL.Path, "took", time.Since(start))
	})
}
