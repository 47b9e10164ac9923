// Воркер читает вычисления из Kafka и складывает их в ClickHouse для аналитики.
// События приходят мимо схем валидации, поэтому use case переигрывает результат
// через доменную таблицу compute перед записью.
package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/sripathisridhar/assignment11/internal/app"
	"github.com/sripathisridhar/assignment11/internal/infrastructure/click"
	"github.com/sripathisridhar/assignment11/internal/infrastructure/kafka"
	"github.com/sripathisridhar/assignment11/internal/pkg/logger"
	calcUsecase "github.com/sripathisridhar/assignment11/internal/usecase/calculation"
)

func main() {
	cfg, err := app.LoadCfg()
	if err != nil {
		slog.Error("config load failed", "error", err)
		os.Exit(1)
	}

	log := logger.NewWithLevel(cfg.LogLevel)
	slog.SetDefault(log)

	ch, err := click.New(&cfg.ClickHouse)
	if err != nil {
		slog.Error("clickhouse connect failed", "error", err)
		os.Exit(1)
	}
	defer ch.Close()

	writer := click.NewCalculationWriter(ch)
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := writer.EnsureTable(ctx); err != nil {
		slog.Error("ensure analytics table failed", "error", err)
		os.Exit(1)
	}

	// Воркеру нужен только аналитический порт: репозиторий, кэш и продюсер
	// в обработке событий не участвуют.
	uc := calcUsecase.New(nil, nil, nil, writer, log)

	consumer := kafka.NewConsumer(&cfg.Kafka, uc, log)
	defer consumer.Close()

	slog.Info("worker started", "topic", cfg.Kafka.Topic, "group", cfg.Kafka.GroupID)
	if err := consumer.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		slog.Error("worker stopped", "error", err)
		os.Exit(1)
	}
	slog.Info("worker stopped")
}
