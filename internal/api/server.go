package api

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humago"
	"github.com/smazurov/statusled/internal/api/models"
	"github.com/smazurov/statusled/internal/events"
	"github.com/smazurov/statusled/internal/led"
	"github.com/smazurov/statusled/internal/logging"
	"github.com/smazurov/statusled/internal/monitor"
	"github.com/smazurov/statusled/internal/version"
)

// LEDDriver is the part of led.Driver the API needs.
type LEDDriver interface {
	Swap(c led.Color) (led.Color, bool, error)
	Current() (led.Color, bool)
	Initialized() bool
}

// StatusProvider exposes the last monitor cycle.
type StatusProvider interface {
	Last() (monitor.Snapshot, bool)
}

// Options configures the API server.
type Options struct {
	Driver            LEDDriver
	Status            StatusProvider // Optional, monitor mode only
	EventBus          *events.Bus
	EnableSetColor    bool         // Register /set_color (controller mode)
	PrometheusHandler http.Handler // Optional Prometheus metrics handler
}

// Server is the Huma v2 API server.
type Server struct {
	api        huma.API
	mux        *http.ServeMux
	mu         sync.Mutex
	httpServer *http.Server
	options    *Options
	eventBus   *events.Bus
	logger     *slog.Logger
}

// NewServer creates a new API server with Huma v2 using Go 1.22+ native routing.
func NewServer(opts *Options) *Server {
	mux := http.NewServeMux()

	corsConfig := DefaultCORSConfig()
	AddCORSHandler(mux, corsConfig)

	config := huma.DefaultConfig("statusled API", version.String())
	config.Info.Description = "Status LED control and Home Assistant health indicator"
	// Empty servers list will make OpenAPI use relative paths, working with any host
	config.Servers = []*huma.Server{}

	api := humago.New(mux, config)

	bus := opts.EventBus
	if bus == nil {
		bus = events.New()
	}

	server := &Server{
		api:      api,
		mux:      mux,
		options:  opts,
		eventBus: bus,
		logger:   logging.GetLogger("api"),
	}

	api.UseMiddleware(NewCORSMiddleware(corsConfig))
	api.UseMiddleware(HTTPLoggingMiddleware)

	if opts.PrometheusHandler != nil {
		mux.Handle("GET /metrics", opts.PrometheusHandler)
	}

	server.registerRoutes()

	return server
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.mux
}

// Start listens on addr and blocks until the server stops.
// http.ErrServerClosed is returned after Stop.
func (s *Server) Start(addr string) error {
	s.logger.Info("Starting statusled API server", "addr", addr)
	s.logger.Info("OpenAPI documentation available", "url", "http://"+addr+"/docs")

	// Request contexts end on Shutdown so open SSE streams return.
	base, cancel := context.WithCancel(context.Background())
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.mux,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return base },
	}
	srv.RegisterOnShutdown(cancel)

	s.mu.Lock()
	s.httpServer = srv
	s.mu.Unlock()

	return srv.ListenAndServe()
}

// Stop shuts the server down, ending open SSE streams. The listener is
// closed forcibly if ctx expires first.
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("Stopping API server")
	s.mu.Lock()
	srv := s.httpServer
	s.mu.Unlock()
	if srv == nil {
		return nil
	}
	if err := srv.Shutdown(ctx); err != nil {
		return srv.Close()
	}
	return nil
}

func (s *Server) registerRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "health-check",
		Method:      http.MethodGet,
		Path:        "/health",
		Summary:     "Health",
		Description: "Report whether the LED driver is initialized. Never fails.",
		Tags:        []string{"health"},
	}, func(_ context.Context, _ *struct{}) (*models.HealthResponse, error) {
		data := models.HealthData{Status: "ok"}
		if s.options.Driver != nil {
			data.Initialized = s.options.Driver.Initialized()
			if c, ok := s.options.Driver.Current(); ok {
				data.Color = c.String()
			}
		}
		return &models.HealthResponse{Body: data}, nil
	})

	huma.Register(s.api, huma.Operation{
		OperationID: "get-version",
		Method:      http.MethodGet,
		Path:        "/api/version",
		Summary:     "Version",
		Description: "Get application version information",
		Tags:        []string{"system"},
	}, func(_ context.Context, _ *struct{}) (*models.VersionResponse, error) {
		info := version.Get()
		return &models.VersionResponse{
			Body: models.VersionData{
				Version:   info.Version,
				GitCommit: info.GitCommit,
				BuildDate: info.BuildDate,
				GoVersion: info.GoVersion,
				Platform:  info.Platform,
				Hardware:  info.Hardware,
			},
		}, nil
	})

	if s.options.EnableSetColor {
		s.registerColorRoutes()
	}
	if s.options.Status != nil {
		s.registerStatusRoutes()
	}

	s.registerSSERoutes()
	s.registerLogRoutes()
}
