package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/railfit/internal/config"
	"github.com/mamadbah2/railfit/internal/repository"
	"github.com/mamadbah2/railfit/internal/repository/memory"
	"github.com/mamadbah2/railfit/internal/repository/mongodb"
	"github.com/mamadbah2/railfit/internal/repository/sheets"
	"github.com/mamadbah2/railfit/internal/scheduler"
	"github.com/mamadbah2/railfit/internal/server/handlers"
	"github.com/mamadbah2/railfit/internal/server/router"
	"github.com/mamadbah2/railfit/internal/service/certificate"
	inventorysvc "github.com/mamadbah2/railfit/internal/service/inventory"
	"github.com/mamadbah2/railfit/internal/service/qrcode"
	reportingsvc "github.com/mamadbah2/railfit/internal/service/reporting"
	usersvc "github.com/mamadbah2/railfit/internal/service/users"
	"github.com/mamadbah2/railfit/pkg/logger"
)

// store is the full repository surface a storage driver provides.
type store interface {
	repository.InventoryRepository
	repository.UserRepository
	repository.CertificateRepository
}

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New(cfg.Log.Level))
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)
	gin.SetMode(gin.ReleaseMode)

	ctx := context.Background()

	var repo store
	switch cfg.Storage.Driver {
	case config.StorageMongoDB:
		mongoRepo, err := mongodb.NewMongoDBRepository(ctx, cfg.MongoDB.URI, cfg.MongoDB.DBName)
		if err != nil {
			baseLogger.Fatal("failed to init mongodb repository", zap.Error(err))
		}
		defer func() {
			if err := mongoRepo.Close(context.Background()); err != nil {
				baseLogger.Error("failed to close mongodb connection", zap.Error(err))
			}
		}()
		if cfg.Storage.SeedDemoData {
			if err := mongoRepo.Seed(ctx, memory.DemoInventory(), memory.DemoUsers()); err != nil {
				baseLogger.Fatal("failed to seed mongodb", zap.Error(err))
			}
		}
		repo = mongoRepo
	default:
		if cfg.Storage.SeedDemoData {
			repo = memory.NewSeededRepository()
		} else {
			repo = memory.NewRepository()
		}
	}
	baseLogger.Info("storage ready", zap.String("driver", cfg.Storage.Driver))

	var register repository.CertificateRepository = repo
	if cfg.Sheets.Enabled() {
		sheet, err := sheets.NewSheetClient(ctx, cfg.Sheets, logger.Named(baseLogger, "repo.sheets"))
		if err != nil {
			baseLogger.Fatal("failed to init sheets repository", zap.Error(err))
		}
		register = sheets.NewCertificateRegister(sheet, logger.Named(baseLogger, "repo.register"))
		baseLogger.Info("certificate register on google sheets enabled")
	}

	locale, ok := certificate.LookupLocale(cfg.Certificate.DefaultLocale)
	if !ok {
		baseLogger.Warn("unsupported CERT_LOCALE, using default",
			zap.String("locale", cfg.Certificate.DefaultLocale),
			zap.String("default", certificate.DefaultLocale().Tag.String()))
		locale = certificate.DefaultLocale()
	}

	certSvc, err := certificate.NewService(cfg.Certificate.UploadsDir, locale, register, logger.Named(baseLogger, "svc.certificate"))
	if err != nil {
		baseLogger.Fatal("failed to init certificate service", zap.Error(err))
	}
	qrSvc := qrcode.NewService(cfg.QR.Width, cfg.QR.Margin, logger.Named(baseLogger, "svc.qrcode"))
	inventorySvc := inventorysvc.NewService(repo, logger.Named(baseLogger, "svc.inventory"))
	userSvc := usersvc.NewService(repo, logger.Named(baseLogger, "svc.users"))
	reportingSvc := reportingsvc.NewService(repo, repo, cfg.Scheduler.WarrantyAlertDays, logger.Named(baseLogger, "svc.reporting"))

	engine := router.New(cfg.Server, certSvc.Dir(), router.Handlers{
		Certificates: handlers.NewCertificateHandler(certSvc, qrSvc, cfg.Server.PublicBaseURL, logger.Named(baseLogger, "handlers.certificates")),
		Dashboard:    handlers.NewDashboardHandler(inventorySvc, userSvc, reportingSvc, logger.Named(baseLogger, "handlers.dashboard")),
	}, logger.Named(baseLogger, "router"))

	sched := scheduler.NewScheduler(cfg.Scheduler, certSvc, reportingSvc, logger.Named(baseLogger, "scheduler"))
	if err := sched.Start(); err != nil {
		baseLogger.Fatal("failed to start scheduler", zap.Error(err))
	}
	defer sched.Stop()

	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	sigCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		baseLogger.Info("server starting",
			zap.String("addr", srv.Addr),
			zap.String("uploads_dir", certSvc.Dir()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			baseLogger.Fatal("http server crashed", zap.Error(err))
		}
	}()

	<-sigCtx.Done()
	baseLogger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		baseLogger.Error("graceful shutdown failed", zap.Error(err))
	}
}
