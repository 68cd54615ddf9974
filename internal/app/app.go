package app

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jimlawless/whereami"

	config "github.com/bidhaus/auction-backend/internal/cfg"
	v1Grpc "github.com/bidhaus/auction-backend/internal/delivery/v1/grpc"
	v1Http "github.com/bidhaus/auction-backend/internal/delivery/v1/http"
	"github.com/bidhaus/auction-backend/internal/infrastructure/kafka"
	minioInfra "github.com/bidhaus/auction-backend/internal/infrastructure/minio"
	s3Repo "github.com/bidhaus/auction-backend/internal/repository/minio"
	"github.com/bidhaus/auction-backend/internal/repository/pgdb"
	pgdbConv "github.com/bidhaus/auction-backend/internal/repository/pgdb/converter/generated"
	"github.com/bidhaus/auction-backend/internal/repository/redis"
	redisConv "github.com/bidhaus/auction-backend/internal/repository/redis/converter/generated"
	"github.com/bidhaus/auction-backend/internal/usecase"
	"github.com/bidhaus/auction-backend/internal/validation"
	"github.com/bidhaus/auction-backend/internal/worker"
	"github.com/bidhaus/auction-backend/pkg/clients"
	"github.com/bidhaus/auction-backend/pkg/closer"
	"github.com/bidhaus/auction-backend/pkg/e"
	"github.com/bidhaus/auction-backend/pkg/logger"
	"github.com/bidhaus/auction-backend/pkg/postgres"
	"github.com/bidhaus/auction-backend/pkg/tr"
)

const (
	initTimeout     = 10 * time.Second
	shutdownTimeout = 10 * time.Second
	forcedTimeout   = 2 * time.Second
)

func Run() {
	logger := logger.NewSlogLogger()

	cfg, err := config.Load(logger)
	if err != nil {
		logger.Errorf(err, "failed to load config")
		os.Exit(1)
	}

	// Контекст живёт до конца shutdown: от него зависят фоновые воркеры
	// и отложенная очистка фотографий.
	appCtx, appCancel := context.WithCancel(context.Background())
	defer appCancel()

	cl := closer.NewCloser(forcedTimeout)

	db, err := initPGDB(logger, cfg)
	if err != nil {
		logger.Errorf(err, "failed to initialize database")
		os.Exit(1)
	}
	cl.Add(func(ctx context.Context) error {
		db.Close()
		logger.Infof("postgres pool closed")
		return nil
	})

	catConv := pgdbConv.NewCategoryConverterImpl()
	prConv := pgdbConv.NewProductConverterImpl()
	userConv := pgdbConv.NewUserConverterImpl()
	outboxConv := pgdbConv.NewOutboxEventConverterImpl()
	summaryConv := redisConv.NewProductSummaryConverterImpl()
	sessionConv := redisConv.NewSessionConverterImpl()

	categoryRepo := pgdb.NewCategoryRepo(db.Pool, catConv)
	productRepo := pgdb.NewProductRepo(db.Pool, prConv)
	userRepo := pgdb.NewUserRepo(db.Pool, userConv)
	outboxRepo := pgdb.NewOutboxEventRepo(db.Pool, outboxConv)

	minioClient, err := clients.NewMinIOClient(cfg.Minio)
	if err != nil {
		logger.Errorf(err, "failed to initialize minio client")
		os.Exit(1)
	}

	minioCtx, minioCancel := context.WithTimeout(context.Background(), initTimeout)
	if err := clients.EnsureBucket(minioCtx, minioClient, cfg.Minio.BucketName); err != nil {
		minioCancel()
		logger.Errorf(err, "failed to initialize MinIO bucket")
		os.Exit(1)
	}
	minioCancel()

	photoRepo := s3Repo.NewPhotoRepo(minioClient, cfg.Minio)
	photosInfra := minioInfra.NewPhotoInfrastructure(photoRepo, cfg.Minio, logger, appCtx)
	cl.Add(func(ctx context.Context) error {
		return photosInfra.WaitForCleanup(ctx)
	})

	redisClient := clients.NewRedisClient(cfg.Redis)
	redisCtx, redisCancel := context.WithTimeout(context.Background(), initTimeout)
	if err := redisClient.Ping(redisCtx); err != nil {
		redisCancel()
		logger.Errorf(err, "failed to connect to redis")
		os.Exit(1)
	}
	redisCancel()
	cl.Add(func(ctx context.Context) error {
		return redisClient.Client.Close()
	})

	cacheRepo := redis.NewCacheRepo(redisClient, summaryConv, cfg.Redis, logger)
	sessionStore := redis.NewSessionStore(redisClient, sessionConv, cfg.Session)

	producer, err := kafka.NewProducer(logger, cfg.Kafka)
	if err != nil {
		logger.Errorf(err, "failed to initialize kafka producer")
		os.Exit(1)
	}
	if err := producer.EnsureTopic(initTimeout); err != nil {
		logger.Errorf(err, "failed to ensure kafka topic")
		os.Exit(1)
	}
	cl.Add(func(ctx context.Context) error {
		return producer.Close()
	})

	transactor := tr.NewPgTransactor(db.Pool)
	validator := validation.NewValidator()

	reputationUC := usecase.NewReputationUsecase(userRepo, productRepo, outboxRepo, cfg.Rules, logger)
	auctionUC := usecase.NewAuctionUsecase(
		userRepo,
		productRepo,
		categoryRepo,
		outboxRepo,
		cacheRepo,
		photosInfra,
		reputationUC,
		transactor,
		validator,
		cfg.Rules,
		logger,
	)
	categoryUC := usecase.NewCategoryUsecase(categoryRepo, transactor, validator, logger)
	sessionUC := usecase.NewSessionUsecase(userRepo, sessionStore, validator, cfg.Rules, logger)

	outboxWorker := kafka.NewOutboxWorker(outboxRepo, logger, producer, db.Dsn)
	outboxWorker.Start(appCtx)
	cl.Add(func(ctx context.Context) error {
		outboxWorker.Stop()
		logger.Infof("outbox worker stopped")
		return nil
	})

	sweepWorker := worker.NewSweepWorker(auctionUC, cfg.Sweep, logger)
	sweepWorker.Start(appCtx)
	cl.Add(func(ctx context.Context) error {
		sweepWorker.Stop()
		logger.Infof("sweep worker stopped")
		return nil
	})

	grpcSrv := v1Grpc.NewGRPCServer(cfg.Grpc)
	grpcSrv.RegisterServices()

	grpcErrCh := make(chan error, 1)
	go func() {
		logger.Infof("gRPC server starting on %s:%s", cfg.Grpc.NetworkMode, cfg.Grpc.Port)
		if err := grpcSrv.Start(); err != nil {
			logger.Errorf(err, "gRPC server failed")
			grpcErrCh <- err
		}
	}()
	cl.Add(func(ctx context.Context) error {
		return grpcSrv.Stop(ctx)
	})

	r := chi.NewRouter()
	router := v1Http.NewRouter(r, logger)
	router.Init(sessionUC, auctionUC, categoryUC, cfg.Minio)

	httpSrv := v1Http.NewServer(r, cfg.Http)

	errCh := make(chan error, 1)
	go func() {
		logger.Infof("HTTP server started on port %s", cfg.Http.Port)
		if err := httpSrv.Run(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Errorf(err, "HTTP server failed: %v", err)
			errCh <- err
		}
	}()
	cl.Add(func(ctx context.Context) error {
		return httpSrv.Stop(ctx)
	})

	// === Ожидание сигнала или ошибки ===
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	var appErr error
	select {
	case appErr = <-errCh:
		logger.Errorf(appErr, "HTTP server fatal error")
	case appErr = <-grpcErrCh:
		logger.Errorf(appErr, "gRPC server fatal error")
	case <-shutdown:
		logger.Infof("Received shutdown signal, stopping gracefully...")
	}

	// === Graceful shutdown: ресурсы закрываются в обратном порядке ===
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	appCancel()

	if err := cl.Close(shutdownCtx); err != nil {
		logger.Warnf("shutdown finished with errors: %v", err)
	} else {
		logger.Infof("Application shutdown complete")
	}

	if appErr != nil {
		os.Exit(1)
	}
}

func initPGDB(logger logger.Logger, cfg *config.Config) (*postgres.PgDatabase, error) {
	db, err := postgres.Connect(cfg.Db)
	if err != nil {
		logger.Errorf(err, "failed to connect to database")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	if err := db.RunMigrations(logger); err != nil {
		logger.Errorf(err, "failed to run migrations")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	if err := db.Ping(); err != nil {
		logger.Errorf(err, "failed to ping database")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return db, nil
}
