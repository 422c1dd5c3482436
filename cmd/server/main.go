package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/reflection"

	api "library-backend/internal/api/grpc"
	"library-backend/internal/api/grpc/interceptor"
	httpapi "library-backend/internal/api/http"
	"library-backend/internal/app"
	"library-backend/internal/config"
	"library-backend/internal/logger"
	"library-backend/internal/service"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting library backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "grpc_address", cfg.GetServerAddress(), "http_address", cfg.GetHTTPAddress())
	logger.Info("Database configuration", "driver", cfg.Database.Driver, "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := app.OpenStore(ctx, cfg)
	if err != nil {
		logger.Error("Failed to open store", "error", err)
		log.Fatalf("Failed to open store: %v", err)
	}
	defer store.Close()

	// Initialize Services
	bookSvc := service.NewBookService(store.BookRepository)
	memberSvc := service.NewMemberService(store.MemberRepository)
	loanSvc := service.NewLoanService(
		store.BookRepository,
		store.MemberRepository,
		store.RentalRepository,
		store.Transactor,
		service.LoanPolicy{PeriodDays: cfg.Loan.PeriodDays},
	)

	// Set up gRPC server
	lis, err := net.Listen("tcp", cfg.GetServerAddress())
	if err != nil {
		logger.Error("Failed to listen", "error", err, "address", cfg.GetServerAddress())
		log.Fatalf("Failed to listen: %v", err)
	}

	s := grpc.NewServer(
		grpc.UnaryInterceptor(interceptor.NewLoggingInterceptor().Unary()),
	)
	api.RegisterLibraryServiceServer(s, api.NewLibraryHandler(bookSvc, memberSvc, loanSvc))

	// Register reflection service for grpcurl
	reflection.Register(s)

	var httpServer *http.Server
	if cfg.HTTPEnabled() {
		httpServer = &http.Server{
			Addr:              cfg.GetHTTPAddress(),
			Handler:           httpapi.NewRouter(httpapi.NewLibraryHandler(bookSvc, memberSvc, loanSvc), store),
			ReadHeaderTimeout: 10 * time.Second,
		}
	} else {
		logger.Info("HTTP server disabled", "http_port", cfg.HTTP.Port)
	}

	errCh := make(chan error, 2)
	go func() {
		logger.Info("gRPC server listening", "address", cfg.GetServerAddress())
		errCh <- s.Serve(lis)
	}()
	if httpServer != nil {
		go func() {
			logger.Info("HTTP server listening", "address", cfg.GetHTTPAddress())
			if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- err
			}
		}()
	}

	select {
	case <-ctx.Done():
		logger.Info("Shutdown signal received")
	case err := <-errCh:
		logger.Error("Server error", "error", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if httpServer != nil {
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("HTTP shutdown failed", "error", err)
		}
	}
	s.GracefulStop()
	logger.Info("Server stopped. Goodbye!")
}
