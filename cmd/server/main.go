package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	grpc_middleware "github.com/grpc-ecosystem/go-grpc-middleware"
	"go.uber.org/zap"
	"google.golang.org/grpc"

	"coursework_service/internal/archive"
	"coursework_service/internal/cache"
	"coursework_service/internal/catalog"
	"coursework_service/internal/config"
	"coursework_service/internal/data"
	"coursework_service/internal/extractor"
	"coursework_service/internal/fetcher"
	"coursework_service/internal/handler"
	"coursework_service/internal/middleware"
	"coursework_service/internal/service"
	"coursework_service/internal/synchronizer"
	"coursework_service/pkg/kafka"
	"coursework_service/pkg/logging"
	"coursework_service/pkg/metadata"
	"coursework_service/pkg/utils"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	zapLogger, err := zap.NewDevelopment()
	if err != nil {
		panic(fmt.Sprintf("cannot create logger: %v", err))
	}
	logger := logging.New(zapLogger)
	defer logger.Sync()
	ctx = logging.ContextWithLogger(ctx, logger)

	cfg, err := config.New()
	if err != nil {
		logger.Fatal(ctx, "failed to load config", zap.Error(err))
	}
	loc, err := cfg.Location()
	if err != nil {
		logger.Fatal(ctx, "invalid timezone", zap.Error(err))
	}

	cat, err := catalog.Load(cfg.CoursesFile)
	if err != nil {
		logger.Fatal(ctx, "failed to load course catalog", zap.Error(err))
	}
	registry := extractor.NewRegistry(cat, cfg.OperatingYear)

	breakers := utils.NewBreakerSet(cfg.BreakerThreshold, cfg.BreakerReset)
	pageFetcher := fetcher.New(&http.Client{}, cfg.FetchTimeout, breakers)
	syncer := synchronizer.New(registry, pageFetcher, cfg.GracePeriod)

	if cfg.ArchiveEnabled() {
		s3Client, err := archive.NewClient(ctx, cfg)
		if err != nil {
			logger.Fatal(ctx, "failed to create s3 client", zap.Error(err))
		}
		pageArchive := archive.New(s3Client, cfg.S3Bucket)
		if err := pageArchive.EnsureBucket(ctx); err != nil {
			logger.Warn(ctx, "failed to ensure archive bucket", zap.Error(err))
		}
		syncer.WithArchiver(pageArchive)
	}

	pool, err := data.New(ctx, cfg)
	if err != nil {
		logger.Fatal(ctx, "cannot create db", zap.Error(err))
	}
	defer pool.Close()
	repo := data.NewRepository(pool)

	var views service.ViewCache
	rdb, err := cache.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		logger.Warn(ctx, "redis unavailable, views will not be cached", zap.Error(err))
	} else {
		defer rdb.Close()
		views = cache.NewViewCache(cache.NewRedisCache(rdb), cfg.ViewCacheTTL)
	}

	eventSender := kafka.NewEventSender(cfg.KafkaBrokers, cfg.KafkaTopic)
	defer func() {
		if err := eventSender.Close(); err != nil {
			logger.Error(ctx, "failed to close event sender", zap.Error(err))
		}
	}()

	svc := service.NewAssignmentService(repo, syncer, cat, eventSender, views)

	router := chi.NewRouter()
	router.Use(middleware.NewLoggingMiddleware(logger), middleware.Username)
	router.Get("/health", handler.Health)
	handler.NewAssignmentHandler(svc, loc).RegisterRoutes(router)

	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	grpcServer := grpc.NewServer(
		grpc.UnaryInterceptor(grpc_middleware.ChainUnaryServer(
			metadata.NewMetadataUnaryInterceptor(),
			logging.NewUnaryLoggingInterceptor(logger),
		)),
	)
	data.RegisterHealthService(ctx, grpcServer, pool, 15*time.Second)

	listener, err := net.Listen("tcp", fmt.Sprintf(":%d", cfg.GRPCHealthPort))
	if err != nil {
		logger.Fatal(ctx, "cannot create listener", zap.Error(err))
	}

	go func() {
		logger.Info(ctx, "Starting gRPC health server...", zap.Int("port", cfg.GRPCHealthPort))
		if err := grpcServer.Serve(listener); err != nil {
			logger.Error(ctx, "gRPC server stopped", zap.Error(err))
		}
	}()
	go func() {
		logger.Info(ctx, "Starting HTTP server...", zap.Int("port", cfg.HTTPPort))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error(ctx, "HTTP server stopped", zap.Error(err))
			stop()
		}
	}()

	worker := NewRefreshWorker(svc, logger, cfg.RefreshInterval, cfg.WorkerPoolSize, cfg.ReminderHorizon, loc)
	go worker.Start(ctx)

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error(ctx, "HTTP shutdown failed", zap.Error(err))
	}

	shutdownDone := make(chan struct{})
	go func() {
		grpcServer.GracefulStop()
		close(shutdownDone)
	}()
	select {
	case <-shutdownDone:
	case <-shutdownCtx.Done():
		logger.Info(ctx, "GracefulStop timed out, forcing Stop")
		grpcServer.Stop()
	}

	logger.Info(ctx, "Server Stopped")
}
