// Package http serves the tracker over a JSON API.
package http

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/bnema/fhe-strength-tracker/internal/application"
	"github.com/bnema/fhe-strength-tracker/internal/domain"
	"github.com/ethereum/go-ethereum/common"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

const shutdownTimeout = 5 * time.Second

// Tracker is the slice of application.Tracker the API exposes.
type Tracker interface {
	Status(ctx context.Context) (application.TrackerStatus, error)
	ProtocolID(ctx context.Context) (uint64, error)
	RecordCount(ctx context.Context, owner common.Address) (uint64, error)
	Record(ctx context.Context, owner common.Address, index uint64) (application.RecordView, error)
	LoadRecords(ctx context.Context, owner common.Address) ([]application.RecordView, error)
	RecordTraining(ctx context.Context, cmd application.RecordTrainingCommand) (application.RecordTrainingResult, error)
	DecryptRecord(ctx context.Context, index uint64) (domain.DecryptedRecord, error)
}

var _ Tracker = (*application.Tracker)(nil)

type Options struct {
	Tracker Tracker
	Logger  *zap.Logger
	// Registry collects request metrics. A private registry is created when nil.
	Registry *prometheus.Registry
}

type Server struct {
	tracker  Tracker
	logger   *zap.Logger
	registry *prometheus.Registry
	router   *gin.Engine
}

func NewServer(opts Options) (*Server, error) {
	if opts.Tracker == nil {
		return nil, errors.New("tracker is nil")
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	registry := opts.Registry
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	metrics, err := newMetrics(registry)
	if err != nil {
		return nil, err
	}

	s := &Server{
		tracker:  opts.Tracker,
		logger:   logger.Named("http"),
		registry: registry,
		router:   gin.New(),
	}
	s.router.Use(gin.Recovery(), requestID(), accessLog(s.logger), metrics.middleware())
	s.routes()

	return s, nil
}

func (s *Server) routes() {
	s.router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	s.router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{})))

	v1 := s.router.Group("/api/v1")
	v1.GET("/status", s.handleStatus)
	v1.GET("/protocol", s.handleProtocol)
	v1.GET("/owners/:owner/records", s.handleRecords)
	v1.GET("/owners/:owner/records/count", s.handleRecordCount)
	v1.GET("/owners/:owner/records/:index", s.handleRecord)
	v1.POST("/records", s.handleRecordTraining)
	v1.POST("/records/:index/decrypt", s.handleDecrypt)
}

func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves on listen until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, listen string) error {
	listener, err := net.Listen("tcp", listen)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", listen, err)
	}

	return s.Serve(ctx, listener)
}

func (s *Server) Serve(ctx context.Context, listener net.Listener) error {
	server := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("api listening", zap.String("addr", listener.Addr().String()))
		errCh <- server.Serve(listener)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve api: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown api: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serve api: %w", err)
	}

	return nil
}
