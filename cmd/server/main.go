package main

import (
	"context"
	"log"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	apiHandler "github.com/qreport/backend/api/handler"
	"github.com/qreport/backend/internal/config"
	"github.com/qreport/backend/internal/infrastructure/buffer"
	"github.com/qreport/backend/internal/infrastructure/monitor"
	pgInfra "github.com/qreport/backend/internal/infrastructure/postgres"
	redisInfra "github.com/qreport/backend/internal/infrastructure/redis"
	"github.com/qreport/backend/internal/middleware"
	"github.com/qreport/backend/internal/router"
	"github.com/qreport/backend/internal/services"
	"github.com/qreport/backend/internal/services/lifecycle"
	"github.com/qreport/backend/pkg/httpcontext"
	"github.com/qreport/backend/pkg/logger"
	"github.com/qreport/backend/pkg/signatures"
	"github.com/qreport/backend/repository/postgres"
	redisRepo "github.com/qreport/backend/repository/redis"
	authUC "github.com/qreport/backend/usecase/auth"
	clientUC "github.com/qreport/backend/usecase/client"
	contactUC "github.com/qreport/backend/usecase/contact"
	"github.com/qreport/backend/usecase/editor"
	facilityUC "github.com/qreport/backend/usecase/facility"
	interventionUC "github.com/qreport/backend/usecase/intervention"
	islandUC "github.com/qreport/backend/usecase/island"
	settingsUC "github.com/qreport/backend/usecase/settings"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	zapLogger, err := logger.New(logger.Config{
		Level:    cfg.Logger.Level,
		Encoding: cfg.Logger.Encoding,
	})
	if err != nil {
		log.Fatalf("logger error: %v", err)
	}
	defer zapLogger.Sync()

	appCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	manager := lifecycle.New(cfg.Context.ShutdownTimeout, zapLogger)
	manager.Listen(cancel)

	if err := pgInfra.RunMigrations(cfg, zapLogger); err != nil {
		zapLogger.Fatal("migrations failed", zap.Error(err))
	}

	pool, err := pgInfra.NewPool(appCtx, cfg.Database, zapLogger)
	if err != nil {
		zapLogger.Fatal("postgres connection failed", zap.Error(err))
	}
	manager.Register("postgres", func(ctx context.Context) error {
		pool.Close()
		return nil
	})

	redisClient, err := redisInfra.NewClient(cfg.Redis)
	if err != nil {
		zapLogger.Fatal("redis connection failed", zap.Error(err))
	}
	manager.Register("redis", func(ctx context.Context) error {
		return redisClient.Close()
	})

	bufferStore, err := buffer.Open(cfg.Buffer.Path, "buffer")
	if err != nil {
		zapLogger.Fatal("failed to open buffer store", zap.Error(err))
	}
	manager.Register("buffer", func(ctx context.Context) error {
		return bufferStore.Close()
	})

	mon := monitor.New(pool, redisClient, bufferStore, 10*time.Second, zapLogger)
	mon.Start()
	manager.Register("monitor", func(ctx context.Context) error {
		mon.Stop()
		return nil
	})

	clientRepo := postgres.NewClientRepository(pool)
	contactRepo := postgres.NewContactRepository(pool)
	facilityRepo := postgres.NewFacilityRepository(pool)
	islandRepo := postgres.NewIslandRepository(pool)
	interventionRepo := postgres.NewInterventionRepository(pool)
	sessionRepo := redisRepo.NewSessionRepository(redisClient, cfg.Context.SessionTTL)
	settingsRepo := redisRepo.NewSettingsRepository(redisClient)

	bufferProcessor := services.NewBufferProcessor(
		bufferStore,
		mon,
		contactRepo,
		interventionRepo,
		zapLogger,
		services.ProcessorConfig{
			Interval:   cfg.Buffer.SyncInterval,
			BatchSize:  50,
			MaxRetries: cfg.Buffer.MaxRetry,
		},
	)
	bufferProcessor.Start()
	manager.Register("buffer_processor", func(ctx context.Context) error {
		bufferProcessor.Stop(ctx)
		return nil
	})

	bufferBridge := services.NewBufferBridge(bufferProcessor)

	signatureStore, err := signatures.NewStore(cfg.Signatures.Path, zapLogger)
	if err != nil {
		zapLogger.Fatal("failed to open signature store", zap.Error(err))
	}

	authUseCase := authUC.New(sessionRepo, zapLogger)
	clientUseCase := clientUC.New(clientRepo, zapLogger)
	contactUseCase := contactUC.New(contactRepo, clientRepo, bufferBridge, zapLogger)
	facilityUseCase := facilityUC.New(facilityRepo, clientRepo, zapLogger)
	islandUseCase := islandUC.New(islandRepo, facilityRepo, zapLogger)
	interventionUseCase := interventionUC.New(interventionRepo, bufferBridge, zapLogger, cfg.DebugMode)
	settingsUseCase := settingsUC.New(settingsRepo, zapLogger)
	editorCoordinator := editor.NewCoordinator(interventionRepo, signatureStore, zapLogger)

	ctxAdapter := httpcontext.NewAdapter(cfg.Context.RequestTimeout)

	handlers := router.Handlers{
		Auth:         apiHandler.NewAuthHandler(authUseCase, ctxAdapter, zapLogger, cfg.Context.SessionTTL),
		Client:       apiHandler.NewClientHandler(clientUseCase, ctxAdapter, zapLogger),
		Contact:      apiHandler.NewContactHandler(contactUseCase, ctxAdapter, zapLogger),
		Facility:     apiHandler.NewFacilityHandler(facilityUseCase, islandUseCase, ctxAdapter, zapLogger),
		Intervention: apiHandler.NewInterventionHandler(interventionUseCase, ctxAdapter, zapLogger),
		Editor:       apiHandler.NewEditorHandler(editorCoordinator, ctxAdapter, zapLogger),
		Settings:     apiHandler.NewSettingsHandler(settingsUseCase, ctxAdapter, zapLogger),
		Health:       apiHandler.NewHealthHandler(mon, ctxAdapter, zapLogger),
	}

	authMiddleware := middleware.JWTAuth(cfg.JWT.Secret, zapLogger)
	r := router.New(handlers, authMiddleware)

	server := &fasthttp.Server{
		Handler:      r.Handler,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
		Name:         cfg.AppName,
	}

	go func() {
		zapLogger.Info("server started", zap.String("address", cfg.Address()))
		if err := server.ListenAndServe(cfg.Address()); err != nil {
			zapLogger.Fatal("server crashed", zap.Error(err))
		}
	}()

	manager.Register("http_server", func(ctx context.Context) error {
		return server.Shutdown()
	})

	<-appCtx.Done()

	if err := manager.Shutdown(context.Background()); err != nil {
		zapLogger.Error("graceful shutdown error", zap.Error(err))
	}
}
