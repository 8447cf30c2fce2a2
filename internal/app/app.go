package app

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	config "github.com/DRSN-tech/home-store/internal/cfg"
	v1Grpc "github.com/DRSN-tech/home-store/internal/delivery/v1/grpc"
	v1Http "github.com/DRSN-tech/home-store/internal/delivery/v1/http"
	"github.com/DRSN-tech/home-store/internal/infrastructure/kafka"
	minioInfra "github.com/DRSN-tech/home-store/internal/infrastructure/minio"
	s3Repo "github.com/DRSN-tech/home-store/internal/repository/minio"
	"github.com/DRSN-tech/home-store/internal/repository/pgdb"
	pgdbConv "github.com/DRSN-tech/home-store/internal/repository/pgdb/converter"
	"github.com/DRSN-tech/home-store/internal/repository/redis"
	redisConv "github.com/DRSN-tech/home-store/internal/repository/redis/converter"
	"github.com/DRSN-tech/home-store/internal/usecase"
	"github.com/DRSN-tech/home-store/pkg/clients"
	"github.com/DRSN-tech/home-store/pkg/closer"
	"github.com/DRSN-tech/home-store/pkg/e"
	"github.com/DRSN-tech/home-store/pkg/logger"
	"github.com/DRSN-tech/home-store/pkg/postgres"
	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/avito-tech/go-transaction-manager/trm/v2/manager"
	"github.com/go-chi/chi/v5"
	"github.com/jimlawless/whereami"
)

const (
	shutdownTimeout = 10 * time.Second
	startupTimeout  = 10 * time.Second
	topicTimeout    = 10 * time.Second
)

// App связывает зависимости приложения и управляет его жизненным циклом.
type App struct {
	cfg    *config.Config
	logger logger.Logger
	closer *closer.Closer

	httpSrv *v1Http.Server
	grpcSrv *v1Grpc.GRPCServer
	worker  *kafka.OutboxWorker
}

// NewApp подключается к внешним сервисам и собирает слои приложения.
// При ошибке уже открытые ресурсы закрываются.
func NewApp(cfg *config.Config, log logger.Logger) (_ *App, err error) {
	a := &App{
		cfg:    cfg,
		logger: log,
		closer: closer.NewCloser(0),
	}
	defer func() {
		if err != nil {
			if cerr := a.closer.Close(context.Background()); cerr != nil {
				log.Warnf("close after failed start: %v", cerr)
			}
		}
	}()

	db, err := initPGDB(log, cfg)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	a.closer.Add("postgres", func(context.Context) error {
		db.Close()
		return nil
	})

	trManager := manager.Must(trmpgx.NewDefaultFactory(db.Pool))

	prConv := &pgdbConv.ProductConverterImpl{}
	productRepo := pgdb.NewProductRepo(db.Pool, prConv)
	categoryRepo := pgdb.NewCategoryRepo(db.Pool, &pgdbConv.CategoryConverterImpl{})
	userRepo := pgdb.NewUserRepo(db.Pool, &pgdbConv.UserConverterImpl{})
	cartRepo := pgdb.NewCartRepo(db.Pool, &pgdbConv.CartConverterImpl{Products: prConv})
	orderRepo := pgdb.NewOrderRepo(db.Pool, &pgdbConv.OrderConverterImpl{})
	outboxRepo := pgdb.NewOutboxEventRepo(db.Pool, &pgdbConv.OutboxEventConverterImpl{}, cfg.Kafka.ProcessingTimeout)

	redisClient := clients.NewRedisClient(cfg.Redis)
	a.closer.AddErr("redis", redisClient.Close)

	redisCtx, redisCancel := context.WithTimeout(context.Background(), startupTimeout)
	defer redisCancel()
	if err := redisClient.WaitReady(redisCtx); err != nil {
		log.Errorf(err, "failed to connect to redis")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	ordersCache := redis.NewOrdersCacheRepo(redisClient, &redisConv.OrderConverterImpl{}, cfg.Redis.OrdersTTL, log)

	minioClient, err := clients.NewMinIOClient(cfg.Minio)
	if err != nil {
		log.Errorf(err, "failed to initialize minio client")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	minioCtx, minioCancel := context.WithTimeout(context.Background(), startupTimeout)
	defer minioCancel()
	if err := clients.EnsureBucket(minioCtx, minioClient, cfg.Minio.BucketName); err != nil {
		log.Errorf(err, "failed to initialize MinIO bucket")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	imagesInfra := minioInfra.NewMinioInfrastructure(s3Repo.NewImageRepo(minioClient), cfg.Minio, log)

	producer := kafka.NewProducer(log, cfg.Kafka)
	a.closer.AddErr("kafka producer", producer.Close)
	topicCtx, topicCancel := context.WithTimeout(context.Background(), topicTimeout)
	defer topicCancel()
	if err := producer.EnsureTopic(topicCtx); err != nil {
		log.Errorf(err, "failed to ensure kafka topic")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	// Воркер закрывается раньше продюсера, поэтому регистрируется после него
	a.worker = kafka.NewOutboxWorker(outboxRepo, log, producer, cfg.Kafka.BatchLimit, postgres.DSN(cfg.Db))
	a.closer.Add("outbox worker", func(context.Context) error {
		a.worker.Stop()
		return nil
	})

	catalogUC := usecase.NewCatalogUC(productRepo, categoryRepo, imagesInfra, log)
	userUC := usecase.NewUserUC(userRepo, orderRepo, outboxRepo, ordersCache, trManager, log)
	cartUC := usecase.NewCartUC(cartRepo, productRepo, outboxRepo, trManager, log)

	renderer, err := v1Http.NewRenderer()
	if err != nil {
		log.Errorf(err, "failed to parse templates")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	r := chi.NewRouter()
	v1Http.NewRouter(r, v1Http.NewSessionManager(cfg.Session), renderer, log).Init(catalogUC, userUC, cartUC)
	a.httpSrv = v1Http.NewServer(r, cfg.Http)

	a.grpcSrv = v1Grpc.NewGRPCServer(cfg.Grpc, log)
	a.grpcSrv.RegisterServices()

	return a, nil
}

// Run запускает серверы и воркер и блокируется до сигнала остановки или фатальной ошибки сервера.
func (a *App) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a.worker.Start(ctx)

	grpcErrCh := make(chan error, 1)
	go func() {
		a.logger.Infof("gRPC server starting on %s:%s", a.cfg.Grpc.NetworkMode, a.cfg.Grpc.Port)
		if err := a.grpcSrv.Start(); err != nil {
			grpcErrCh <- err
		}
	}()

	httpErrCh := make(chan error, 1)
	go func() {
		a.logger.Infof("HTTP server started on port %s", a.cfg.Http.Port)
		if err := a.httpSrv.Run(); err != nil {
			httpErrCh <- err
		}
	}()

	a.grpcSrv.SetServing()

	var appErr error
	select {
	case appErr = <-httpErrCh:
		a.logger.Errorf(appErr, "HTTP server fatal error")
	case appErr = <-grpcErrCh:
		a.logger.Errorf(appErr, "gRPC server fatal error")
	case <-ctx.Done():
		a.logger.Infof("Received shutdown signal, stopping gracefully...")
	}

	a.shutdown()

	return appErr
}

func (a *App) shutdown() {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := a.httpSrv.Stop(ctx); err != nil {
		a.logger.Errorf(err, "HTTP server shutdown error")
	} else {
		a.logger.Infof("HTTP server stopped")
	}

	if err := a.grpcSrv.Stop(ctx); err != nil {
		a.logger.Warnf("gRPC server shutdown: %v", err)
	} else {
		a.logger.Infof("gRPC server stopped")
	}

	if err := a.closer.Close(ctx); err != nil {
		a.logger.Errorf(err, "resources shutdown error")
	}

	a.logger.Infof("Application shutdown complete")
}

func initPGDB(logger logger.Logger, cfg *config.Config) (*postgres.PgDatabase, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	db, err := postgres.Connect(ctx, cfg.Db, logger)
	if err != nil {
		logger.Errorf(err, "failed to connect to database")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	if err := db.RunMigrations(logger); err != nil {
		logger.Errorf(err, "failed to run migrations")
		db.Close()
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return db, nil
}
