package server

import (
	"context"
	"errors"
	nethttp "net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	apihttp "github.com/serin-reader/serin/internal/api/http"
	"github.com/serin-reader/serin/internal/domain/extensions"
	"github.com/serin-reader/serin/internal/domain/keymap"
	"github.com/serin-reader/serin/internal/domain/registry"
	"github.com/serin-reader/serin/internal/infrastructure/config"
	"github.com/serin-reader/serin/internal/infrastructure/logging"
	"github.com/serin-reader/serin/internal/infrastructure/monitoring"
	"github.com/serin-reader/serin/internal/platform/proc"
	"github.com/serin-reader/serin/internal/speech"
	"go.uber.org/zap"
)

// Server owns the registry and the loops that drive it.
type Server struct {
	cfg     *config.Config
	logger  *logging.Logger
	sys     proc.System
	service *registry.Service
	metrics *monitoring.Metrics

	router  *gin.Engine
	httpSrv *nethttp.Server
	stop    chan struct{}
}

// New builds the full host and initializes the registry. Initialization
// failure is fatal: the caller must not run a host without a default module.
func New(cfg *config.Config, logger *logging.Logger) (*Server, error) {
	sys := proc.NewSystem()

	selfExe := cfg.Host.Name
	if exe, err := os.Executable(); err == nil {
		selfExe = filepath.Base(exe)
	}
	resolver := proc.NewResolver(sys, selfExe, logger.Named("proc"))

	speaker := speech.NewLogSpeaker(logger)
	metrics := monitoring.NewMetrics()
	layout := func() string { return cfg.Keyboard.Layout }

	catalog := extensions.NewCatalog(speaker, logger).AddRegistered()
	keymaps := keymap.NewLoader(cfg.Host.ExtensionsDir, layout, logger).WithMetrics(metrics)

	service := registry.NewService(sys, resolver, catalog, keymaps, speaker, layout, logger).
		WithMetrics(metrics)

	if err := service.Initialize(); err != nil {
		return nil, err
	}

	s := &Server{
		cfg:     cfg,
		logger:  logger,
		sys:     sys,
		service: service,
		metrics: metrics,
		stop:    make(chan struct{}),
	}
	s.router = s.buildRouter()
	return s, nil
}

// Service returns the running registry.
func (s *Server) Service() *registry.Service {
	return s.service
}

func (s *Server) buildRouter() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(monitoring.Middleware(s.metrics))

	h := apihttp.NewHandlers(s.service)
	router.GET("/", h.Root)
	router.GET("/health", h.Health)
	router.GET("/modules", h.ListModules)
	router.GET("/modules/active", h.ActiveModule)
	router.POST("/refresh", h.Refresh)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	return router
}

// Run starts the refresh loop and, when enabled, the introspection API.
// It blocks until Close is called or the HTTP listener fails.
func (s *Server) Run() error {
	go s.refreshLoop()

	if !s.cfg.API.Enabled {
		s.logger.Info("introspection API disabled")
		<-s.stop
		return nil
	}

	s.httpSrv = &nethttp.Server{
		Addr:    s.cfg.API.Addr,
		Handler: s.router,
	}
	s.logger.Info("introspection API listening", zap.String("addr", s.cfg.API.Addr))
	if err := s.httpSrv.ListenAndServe(); err != nil && !errors.Is(err, nethttp.ErrServerClosed) {
		return err
	}
	return nil
}

// refreshLoop periodically evicts dead modules and rebinds the foreground
// process. This is the host's single control loop; every registry mutation
// funnels through the service's serialized API.
func (s *Server) refreshLoop() {
	interval := time.Duration(s.cfg.Host.RefreshInterval) * time.Second
	if interval <= 0 {
		interval = 2 * time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
			pid, ok := s.sys.ForegroundProcess()
			if !ok || pid == s.sys.Self() {
				continue
			}
			if _, err := s.service.Refresh(pid); err != nil {
				s.logger.Warn("refresh failed", zap.Int("pid", pid), zap.Error(err))
			}
		}
	}
}

// Close stops the loops, shuts down the API and evicts every remaining
// module.
func (s *Server) Close() error {
	close(s.stop)

	var err error
	if s.httpSrv != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		err = s.httpSrv.Shutdown(ctx)
	}

	s.service.Shutdown()
	return err
}
