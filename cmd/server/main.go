package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/fuelshare/internal/config"
	"github.com/mamadbah2/fuelshare/internal/repository/mongodb"
	"github.com/mamadbah2/fuelshare/internal/scheduler"
	"github.com/mamadbah2/fuelshare/internal/server/handlers"
	"github.com/mamadbah2/fuelshare/internal/server/router"
	"github.com/mamadbah2/fuelshare/internal/service/mockdata"
	"github.com/mamadbah2/fuelshare/internal/service/orchestrator"
	reportingsvc "github.com/mamadbah2/fuelshare/internal/service/reporting"
	"github.com/mamadbah2/fuelshare/pkg/clients/stationapi"
	"github.com/mamadbah2/fuelshare/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New(cfg.Log.Level))
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	dataset, err := loadDataset(cfg.Mock)
	if err != nil {
		baseLogger.Fatal("failed to load mock dataset", zap.Error(err))
	}

	var (
		audit     orchestrator.AuditSink
		snapshots reportingsvc.SnapshotRepository
	)
	if cfg.MongoDB.URI != "" {
		connectCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		mongoRepo, err := mongodb.NewMongoDBRepository(connectCtx, cfg.MongoDB.URI, cfg.MongoDB.DBName)
		cancel()
		if err != nil {
			baseLogger.Fatal("failed to init mongodb repository", zap.Error(err))
		}
		defer func() {
			if err := mongoRepo.Close(context.Background()); err != nil {
				baseLogger.Error("failed to close mongodb connection", zap.Error(err))
			}
		}()
		audit, snapshots = mongoRepo, mongoRepo
		baseLogger.Info("mongodb persistence enabled", zap.String("db", cfg.MongoDB.DBName))
	} else {
		baseLogger.Warn("mongodb uri missing, snapshots and price audits are not persisted")
	}

	stationClient := stationapi.NewClient(cfg.StationAPI, baseLogger.Named("client.stationapi"))
	orch := orchestrator.New(stationClient, orchestrator.Options{
		Fallback: dataset,
		Audit:    audit,
		Logger:   baseLogger.Named("svc.orchestrator"),
	})
	unsubscribe := orch.Subscribe(func(ev orchestrator.Event) {
		baseLogger.Debug("state changed", zap.String("resource", string(ev.Resource)), zap.String("connectivity", string(ev.Connectivity)))
	})
	defer unsubscribe()

	if err := orch.Start(context.Background()); err != nil {
		baseLogger.Error("initial sync failed", zap.Error(err))
	}

	reportingSvc := reportingsvc.NewService(orch, snapshots, baseLogger.Named("svc.reporting"))

	sched, err := scheduler.NewScheduler(cfg.Reporting, reportingSvc, baseLogger.Named("scheduler"))
	if err != nil {
		baseLogger.Fatal("failed to init scheduler", zap.Error(err))
	}
	if err := sched.Start(); err != nil {
		baseLogger.Fatal("failed to start scheduler", zap.Error(err))
	}
	defer sched.Stop()

	handler := handlers.NewHandler(orch, cfg.Server.DefaultOperator, baseLogger.Named("handlers.api"))
	engine := router.New(handler, cfg.Server, baseLogger.Named("router"))

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 45 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		baseLogger.Info("server starting", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			baseLogger.Fatal("http server crashed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	baseLogger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		baseLogger.Error("graceful shutdown failed", zap.Error(err))
	}
}

func loadDataset(cfg config.MockConfig) (mockdata.Dataset, error) {
	if cfg.DatasetPath != "" {
		return mockdata.Load(cfg.DatasetPath)
	}
	return mockdata.Default()
}
