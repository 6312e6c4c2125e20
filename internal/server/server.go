package server

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/loom-ui/loom/internal/config"
)

// Server is the Loom development server. It serves the app's static
// files, exposes health and metrics endpoints, and pushes live-reload
// notifications to connected browsers.
type Server struct {
	cfg      *config.Config
	router   chi.Router
	reload   *ReloadHub
	registry *prometheus.Registry
	logger   *slog.Logger
	httpSrv  *http.Server
}

// New creates a development server for the given project config.
func New(cfg *config.Config) *Server {
	s := &Server{
		cfg:      cfg,
		reload:   NewReloadHub(),
		registry: prometheus.NewRegistry(),
		logger:   slog.Default().With("component", "server"),
	}
	s.router = s.buildRouter()
	return s
}

func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(RequestLogger(s.logger))
	if s.cfg.Metrics.Enabled {
		r.Use(Metrics(s.cfg.Metrics.Namespace, s.registry))
	}
	if s.cfg.Tracing.Enabled {
		r.Use(Tracing(s.cfg.Tracing.ServiceName))
	}

	r.Get("/healthz", func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"status":"ok","app":%q}`, s.cfg.Name)
	})

	if s.cfg.Metrics.Enabled {
		r.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))
	}

	if s.cfg.Dev.HotReload {
		r.Get(ReloadPath, s.reload.HandleWebSocket)
	}

	r.Handle(s.cfg.StaticPrefix()+"*", s.staticHandler())

	return r
}

// staticHandler serves the project's public directory, falling back to
// index.html for unknown paths so client-side routes deep-link cleanly.
// The shell itself always goes through serveIndex so the reload client
// is injected in development.
func (s *Server) staticHandler() http.Handler {
	root := s.cfg.PublicPath()
	prefix := s.cfg.StaticPrefix()
	fileServer := http.StripPrefix(prefix, http.FileServer(http.Dir(root)))

	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		rel := strings.TrimPrefix(req.URL.Path, prefix)
		if rel != "" && rel != "/" && rel != "index.html" && !strings.Contains(rel, "..") {
			if info, err := os.Stat(filepath.Join(root, rel)); err == nil && !info.IsDir() {
				fileServer.ServeHTTP(w, req)
				return
			}
		}
		s.serveIndex(w, req)
	})
}

// serveIndex serves the app shell. With hot reload on, the reload
// client script is injected so the page connects back to the hub.
func (s *Server) serveIndex(w http.ResponseWriter, req *http.Request) {
	path := filepath.Join(s.cfg.PublicPath(), "index.html")
	if !s.cfg.Dev.HotReload {
		http.ServeFile(w, req, path)
		return
	}
	page, err := os.ReadFile(path)
	if err != nil {
		http.NotFound(w, req)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(injectReloadScript(page))
}

// injectReloadScript places the reload client before the closing body
// tag, or appends it when the shell has none.
func injectReloadScript(page []byte) []byte {
	out := make([]byte, 0, len(page)+len(ReloadClientScript))
	if i := bytes.LastIndex(page, []byte("</body>")); i >= 0 {
		out = append(out, page[:i]...)
		out = append(out, ReloadClientScript...)
		return append(out, page[i:]...)
	}
	out = append(out, page...)
	return append(out, ReloadClientScript...)
}

// Handler returns the server's HTTP handler, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Reload returns the live-reload hub so file watchers can push
// notifications to connected browsers.
func (s *Server) Reload() *ReloadHub {
	return s.reload
}

// Start runs the server until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) Start(ctx context.Context) error {
	s.httpSrv = &http.Server{
		Addr:         s.cfg.DevAddress(),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	if s.cfg.Dev.HotReload {
		watcher := NewWatcher(s.cfg.WatchPaths(), s.cfg.Dev.Ignore)
		go watcher.Run(ctx, func(changed []string) {
			if cssOnly(changed) {
				s.reload.NotifyCSS(filepath.Base(changed[0]))
				return
			}
			s.reload.NotifyReload()
		})
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("dev server listening", "url", s.cfg.DevURL())
		if err := s.httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		return s.Shutdown()
	}
}

// Shutdown stops the server, closing reload clients and draining
// in-flight requests.
func (s *Server) Shutdown() error {
	s.reload.Close()
	if s.httpSrv == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	s.logger.Info("dev server shutting down")
	return s.httpSrv.Shutdown(ctx)
}
