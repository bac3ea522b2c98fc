package app

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	config "github.com/DRSN-tech/cart-backend/internal/cfg"
	v1Http "github.com/DRSN-tech/cart-backend/internal/delivery/v1/http"
	"github.com/DRSN-tech/cart-backend/internal/infrastructure/kafka"
	"github.com/DRSN-tech/cart-backend/internal/repository/pgdb"
	pgdbConv "github.com/DRSN-tech/cart-backend/internal/repository/pgdb/converter"
	"github.com/DRSN-tech/cart-backend/internal/repository/redis"
	redisConv "github.com/DRSN-tech/cart-backend/internal/repository/redis/converter"
	"github.com/DRSN-tech/cart-backend/internal/usecase"
	"github.com/DRSN-tech/cart-backend/pkg/clients"
	"github.com/DRSN-tech/cart-backend/pkg/closer"
	"github.com/DRSN-tech/cart-backend/pkg/e"
	"github.com/DRSN-tech/cart-backend/pkg/logger"
	"github.com/DRSN-tech/cart-backend/pkg/postgres"
	"github.com/go-chi/chi/v5"
	"github.com/jimlawless/whereami"
)

// App связывает зависимости сервиса и управляет их жизненным циклом.
type App struct {
	cfg     *config.Config
	logger  logger.Logger
	httpSrv *v1Http.Server
	worker  *kafka.OutboxWorker
	closer  *closer.Closer
}

func NewApp(cfg *config.Config, log logger.Logger) (*App, error) {
	db, err := initPGDB(log, cfg)
	if err != nil {
		log.Errorf(err, "failed to initialize database")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	redisClient := clients.NewRedisClient(cfg.Redis)
	redisCtx, redisCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer redisCancel()
	if err := redisClient.Ping(redisCtx); err != nil {
		log.Errorf(err, "failed to connect to redis")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	productConv := pgdbConv.NewProductConverterImpl()
	cartConv := pgdbConv.NewCartConverterImpl()
	outboxConv := pgdbConv.NewOutboxEventConverterImpl()
	infoConv := redisConv.NewProductInfoConverterImpl()

	productRepo := pgdb.NewProductRepo(db.Pool, productConv)
	cartRepo := pgdb.NewCartRepo(db.Pool, cartConv)
	outboxRepo := pgdb.NewOutboxEventRepo(db.Pool, outboxConv)
	cacheRepo := redis.NewCacheRepo(redisClient, infoConv, cfg.Redis, log)

	producer, err := kafka.NewProducer(log, cfg.Kafka)
	if err != nil {
		log.Errorf(err, "failed to initialize kafka producer")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	if err := producer.EnsureTopic(10 * time.Second); err != nil {
		// Топик может быть создан брокером позже; доставку добирает outbox-воркер
		log.Warnf("failed to ensure kafka topic: %v", err)
	}

	cartUC := usecase.NewCartUC(cartRepo, productRepo, outboxRepo, db.Pool, log)
	catalogUC := usecase.NewCatalogUC(productRepo, cacheRepo, log)

	worker := kafka.NewOutboxWorker(outboxRepo, log, producer, db.Dsn)

	r := chi.NewRouter()
	router := v1Http.NewRouter(r, log)
	router.Init(catalogUC, cartUC)

	httpSrv := v1Http.NewServer(r, cfg.Http)

	// Закрытие ресурсов в порядке LIFO: producer, redis, db
	c := closer.NewCloser(0)
	c.Add(func(ctx context.Context) error {
		db.Close()
		return nil
	})
	c.Add(func(ctx context.Context) error {
		return redisClient.Client.Close()
	})
	c.Add(func(ctx context.Context) error {
		return producer.Close()
	})

	return &App{
		cfg:     cfg,
		logger:  log,
		httpSrv: httpSrv,
		worker:  worker,
		closer:  c,
	}, nil
}

func (a *App) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	a.worker.Start(ctx)

	errCh := make(chan error, 1)
	go func() {
		a.logger.Infof("HTTP server started on port %s", a.cfg.Http.Port)
		if err := a.httpSrv.Run(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.logger.Errorf(err, "HTTP server failed")
			errCh <- err
		}
	}()

	// === Ожидание сигнала или ошибки ===
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	var appErr error
	select {
	case appErr = <-errCh:
		a.logger.Errorf(appErr, "HTTP server fatal error")
	case <-shutdown:
		a.logger.Infof("Received shutdown signal, stopping gracefully...")
	}

	// === Graceful shutdown ===
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := a.httpSrv.Stop(shutdownCtx); err != nil {
		a.logger.Errorf(err, "HTTP server shutdown error")
	} else {
		a.logger.Infof("HTTP server stopped")
	}

	cancel()
	a.worker.Stop()
	a.logger.Infof("Outbox worker stopped")

	if err := a.closer.Close(shutdownCtx); err != nil {
		a.logger.Errorf(err, "resource shutdown error")
	}

	a.logger.Infof("Application shutdown complete")
	return appErr
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
