package server

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/xcaptain/facerank/internal/config"
	"github.com/xcaptain/facerank/internal/handler"
	"github.com/xcaptain/facerank/internal/provider"
	"github.com/xcaptain/facerank/internal/repository"
	"github.com/xcaptain/facerank/internal/service"
)

type Server struct {
	httpServer *http.Server
	cfg        *config.Config
	log        *zap.Logger
	closers    []io.Closer
}

func New(ctx context.Context, cfg *config.Config, log *zap.Logger) (*Server, error) {
	s := &Server{cfg: cfg, log: log}

	svc, err := s.analysisService(ctx)
	if err != nil {
		return nil, err
	}

	s.httpServer = &http.Server{
		Addr:           cfg.Addr(),
		Handler:        NewRouter(cfg, handler.NewHandler(svc, log), log),
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		MaxHeaderBytes: 1 << 20, // 1 MB
	}

	log.Info("Server created successfully",
		zap.String("host", cfg.Server.Host),
		zap.String("port", cfg.Server.Port),
		zap.String("provider", cfg.AI.Provider),
		zap.Bool("dry_run", cfg.App.DryRun))

	return s, nil
}

func NewRouter(cfg *config.Config, h *handler.Handler, log *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.MaxMultipartMemory = cfg.App.MaxMultipartMemory
	router.Use(gin.Recovery(), handler.RequestLogger(log))

	router.GET("/health", h.HealthCheck)
	router.POST("/analyze", h.Analyze)

	return router
}

func (s *Server) analysisService(ctx context.Context) (service.AnalysisService, error) {
	if s.cfg.App.DryRun {
		s.log.Warn("Dry run enabled, uploads will not be sent to a provider")
		return service.NewDryRunService(s.log), nil
	}

	var store repository.S3Repository
	if s.cfg.StagesArtifacts() {
		repo, err := repository.NewS3Repository(&s.cfg.S3, s.log)
		if err != nil {
			return nil, fmt.Errorf("failed to create S3 repository: %w", err)
		}
		store = repo
	}

	p, err := provider.New(ctx, s.cfg.AI, s.cfg.S3, store, s.log)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s provider: %w", s.cfg.AI.Provider, err)
	}
	if c, ok := p.(io.Closer); ok {
		s.closers = append(s.closers, c)
	}

	return service.NewAnalysisService(p, s.log), nil
}

func (s *Server) Run() error {
	s.log.Info("Server is running",
		zap.String("host", s.cfg.Server.Host),
		zap.String("port", s.cfg.Server.Port),
		zap.String("address", s.httpServer.Addr))

	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info("Shutting down server")
	err := s.httpServer.Shutdown(ctx)

	for _, c := range s.closers {
		if cerr := c.Close(); cerr != nil {
			s.log.Warn("Failed to close provider", zap.Error(cerr))
		}
	}

	return err
}
