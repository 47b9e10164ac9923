package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	apihttp "github.com/sripathisridhar/assignment11/internal/api/http"
	calccontroller "github.com/sripathisridhar/assignment11/internal/api/http/controllers/calculation"
	"github.com/sripathisridhar/assignment11/internal/api/http/controllers/system"
	"github.com/sripathisridhar/assignment11/internal/infrastructure/kafka"
	"github.com/sripathisridhar/assignment11/internal/infrastructure/mongo"
	"github.com/sripathisridhar/assignment11/internal/infrastructure/pg"
	"github.com/sripathisridhar/assignment11/internal/infrastructure/redis"
	"github.com/sripathisridhar/assignment11/internal/pkg/logger"
	"github.com/sripathisridhar/assignment11/internal/ports"
	calcUsecase "github.com/sripathisridhar/assignment11/internal/usecase/calculation"
)

// App — приложение, хранит только конфиг.
type App struct {
	cfg Config
}

// New создаёт приложение с конфигом (хранилища подключаются в Run).
func New(cfg Config) *App {
	return &App{cfg: cfg}
}

// newRepository подключает выбранное хранилище (postgres или mongo) и возвращает
// репозиторий вычислений плюс функцию закрытия соединения.
func (a *App) newRepository(ctx context.Context, log *slog.Logger) (ports.ICalculationRepository, func(), error) {
	switch a.cfg.Storage {
	case "mongo":
		cli, err := mongo.New(ctx, &a.cfg.Mongo)
		if err != nil {
			return nil, nil, fmt.Errorf("mongo: %w", err)
		}
		return mongo.NewCalculationRepo(cli, log), func() { _ = cli.Disconnect(context.Background()) }, nil
	case "postgres":
		db, err := pg.New(&a.cfg.DB)
		if err != nil {
			return nil, nil, fmt.Errorf("db: %w", err)
		}
		if err := pg.Migrate(ctx, db); err != nil {
			db.Close()
			return nil, nil, fmt.Errorf("migrate: %w", err)
		}
		return pg.NewCalculationRepo(db, log), func() { db.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("unknown storage %q", a.cfg.Storage)
	}
}

// Run подключает хранилище, Redis и Kafka, инициализирует зависимости и запускает HTTP-сервер (блокирующий вызов).
func (a *App) Run() error {
	log := logger.NewWithLevel(a.cfg.LogLevel)
	slog.SetDefault(log)

	repo, closeRepo, err := a.newRepository(context.Background(), log)
	if err != nil {
		return err
	}
	defer closeRepo()

	rdb, err := redis.New(&a.cfg.Redis)
	if err != nil {
		return fmt.Errorf("redis: %w", err)
	}
	defer rdb.Close()

	producer := kafka.NewProducer(&a.cfg.Kafka)
	defer producer.Close()

	cache := redis.NewCache(rdb, log)
	// Аналитика живёт в воркере (cmd/worker); API в ClickHouse не пишет.
	uc := calcUsecase.New(repo, cache, producer, nil, log)

	srv := apihttp.NewServer(a.cfg.Server)
	srv.AddController(
		system.New(repo, log),
		calccontroller.New(uc, log))

	httpAddr := a.cfg.Server.Host + ":" + a.cfg.Server.Port
	slog.Info("application started", "http", httpAddr, "storage", a.cfg.Storage)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return srv.Start(ctx)
}
