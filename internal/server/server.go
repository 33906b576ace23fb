// Package server provides the development HTTP server: it serves
// compiled scenario documents to rendering clients and pushes rebuild
// notifications over server-sent events, optionally recompiling on
// source changes.
package server

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"net"
	"net/http"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/leapstack-labs/leapview/internal/config"
	"github.com/leapstack-labs/leapview/internal/engine"
	"github.com/leapstack-labs/leapview/internal/state"
)

// Server is the development server.
type Server struct {
	cfg      *config.Config
	engine   *engine.Engine
	store    *state.SQLiteStore
	logger   *slog.Logger
	notifier *Notifier
}

// Options configures a new Server.
type Options struct {
	Config *config.Config
	Engine *engine.Engine
	Store  *state.SQLiteStore
	Logger *slog.Logger
}

// New creates a server instance.
func New(opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Server{
		cfg:      opts.Config,
		engine:   opts.Engine,
		store:    opts.Store,
		logger:   logger,
		notifier: NewNotifier(),
	}
}

// Serve starts the HTTP server and blocks until the context is
// cancelled.
func (s *Server) Serve(ctx context.Context) error {
	s.logger.Info("starting dev server", "addr", s.cfg.Serve.Addr, "watch", s.cfg.Serve.Watch)

	eg, egctx := errgroup.WithContext(ctx)

	r := chi.NewMux()
	r.Use(
		middleware.Logger,
		middleware.Recoverer,
		middleware.Compress(5),
	)
	s.routes(r)

	srv := &http.Server{
		Addr:    s.cfg.Serve.Addr,
		Handler: r,
		BaseContext: func(_ net.Listener) context.Context {
			return egctx
		},
		ReadHeaderTimeout: 10 * time.Second,
	}

	if s.cfg.Serve.Watch {
		eg.Go(func() error {
			return s.watchSources(egctx)
		})
	}

	eg.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	eg.Go(func() error {
		<-egctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.logger.Debug("shutting down dev server")
		return srv.Shutdown(shutdownCtx)
	})

	return eg.Wait()
}

// Notifier returns the server's notifier, used by tests and embedders to
// trigger client refreshes.
func (s *Server) Notifier() *Notifier {
	return s.notifier
}

// watchSources rebuilds the project when a unit changes and notifies
// connected clients.
func (s *Server) watchSources(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer func() { _ = watcher.Close() }()

	if err := watchDirRecursive(watcher, s.cfg.SrcDir); err != nil {
		s.logger.Error("failed to watch source directory", "error", err)
		// keep serving without watch
	}

	var debounceTimer *time.Timer

	for {
		select {
		case <-ctx.Done():
			return nil

		case event := <-watcher.Events:
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if filepath.Ext(event.Name) != engine.SourceExt {
				continue
			}

			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(100*time.Millisecond, func() {
				s.logger.Debug("source changed, rebuilding", "file", event.Name)

				result, err := s.engine.Build(ctx, engine.BuildOptions{Write: true})
				if err != nil {
					s.logger.Error("rebuild failed", "error", err)
					return
				}
				if result.Failed() > 0 {
					s.logger.Warn("rebuild finished with failures", "failed", result.Failed())
				}
				s.notifier.Broadcast()
			})

		case err := <-watcher.Errors:
			s.logger.Error("watcher error", "error", err)
		}
	}
}

// watchDirRecursive adds dir and all subdirectories to the watcher.
func watchDirRecursive(watcher *fsnotify.Watcher, dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return watcher.Add(path)
		}
		return nil
	})
}
