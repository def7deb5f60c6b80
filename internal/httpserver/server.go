// internal/httpserver/server.go
package httpserver

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/MrSnakeDoc/assetd/internal/config"
	"github.com/MrSnakeDoc/assetd/internal/connector"
	"github.com/MrSnakeDoc/assetd/internal/httpserver/deps"
	"github.com/MrSnakeDoc/assetd/internal/httpserver/mw"
	"github.com/MrSnakeDoc/assetd/internal/httpserver/routes"
	"github.com/MrSnakeDoc/assetd/internal/logger"
)

// Server wraps the HTTP server and the connector it listens on.
type Server struct {
	http      *http.Server
	logger    logger.Logger
	connector connector.Connector
	certFile  string
	keyFile   string
}

// NewRouter builds the router with global middlewares and every registered route.
func NewRouter(loggerClient logger.Logger, d deps.Deps) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.GetHead)
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(10 * time.Second))
	r.Use(mw.Log(loggerClient))

	// Unknown paths and methods answer with an empty body, like the static handler.
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusMethodNotAllowed)
	})

	routes.RegisterAll(r, d)
	return r
}

// New builds the HTTP server bound to d.Connector.
func New(cfg *config.Config, loggerClient logger.Logger, d deps.Deps) *Server {
	s := &http.Server{
		Addr:              d.Connector.HostPort(),
		Handler:           NewRouter(loggerClient, d),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	return &Server{
		http:      s,
		logger:    loggerClient,
		connector: d.Connector,
		certFile:  cfg.TLSCertFile,
		keyFile:   cfg.TLSKeyFile,
	}
}

// Start runs the HTTP server (blocks until error or shutdown).
// Secure connectors serve TLS with the configured certificate.
func (s *Server) Start() error {
	s.logger.Info("HTTP server listening",
		logger.String("connector", s.connector.String()))

	var err error
	if s.connector.Secure() {
		err = s.http.ListenAndServeTLS(s.certFile, s.keyFile)
	} else {
		err = s.http.ListenAndServe()
	}
	// http.ErrServerClosed is expected on graceful shutdown.
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Stop gracefully shuts down the server with the provided context deadline.
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("HTTP server shutting down...")
	return s.http.Shutdown(ctx)
}
