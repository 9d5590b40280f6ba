package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/arnavshah/group-planner-go/pkg/auth"
	"github.com/arnavshah/group-planner-go/pkg/config"
	"github.com/arnavshah/group-planner-go/pkg/database"
	"github.com/arnavshah/group-planner-go/pkg/handlers"
	"github.com/arnavshah/group-planner-go/pkg/logger"
	"github.com/arnavshah/group-planner-go/pkg/metrics"
)

func main() {
	configPath := flag.String("config", "", "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("could not load config: %v", err)
	}

	zl, err := logger.New(cfg.Log)
	if err != nil {
		log.Fatalf("could not build logger: %v", err)
	}
	defer func() { _ = zl.Sync() }()

	if err := run(cfg, zl); err != nil {
		zl.Fatal("server stopped", zap.Error(err))
	}
}

func run(cfg *config.Config, zl *zap.Logger) error {
	gin.SetMode(cfg.Server.GinMode)

	db, err := database.Open(cfg.DB, zl)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}
	if err := auth.EnsureAdminExists(db, cfg.Auth, zl); err != nil {
		return fmt.Errorf("ensure admin: %w", err)
	}

	rec, err := metrics.NewRecorder(prometheus.DefaultRegisterer)
	if err != nil {
		return fmt.Errorf("metrics: %w", err)
	}

	h := handlers.NewHandler(db, auth.New(cfg.Auth), zl, rec, cfg.Planner)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           h.NewRouter(prometheus.DefaultGatherer),
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      cfg.Planner.Timeout + 15*time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		zl.Info("server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	zl.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
