package click

import (
	"context"
	"fmt"

	"github.com/sripathisridhar/assignment11/internal/domain"
	"github.com/sripathisridhar/assignment11/internal/ports"
)

const calculationsAnalyticsFull = "default.calculations_analytics"

var _ ports.ICalculationAnalytics = (*CalculationWriter)(nil)

// CalculationWriter записывает вычисления в ClickHouse в формате, удобном для
// аналитики (GROUP BY type, распределение по пользователям и времени).
type CalculationWriter struct {
	db *Client
}

// NewCalculationWriter создаёт писатель вычислений для аналитики.
func NewCalculationWriter(db *Client) *CalculationWriter {
	return &CalculationWriter{db: db}
}

// EnsureTable создаёт таблицу вычислений для аналитики в default, если её ещё нет. Вызови один раз при старте воркера.
func (w *CalculationWriter) EnsureTable(ctx context.Context) error {
	query := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			id Int64,
			user_id Int64,
			type String,
			operands Array(Float64),
			result Float64,
			created_at DateTime64(3)
		) ENGINE = MergeTree()
		ORDER BY (created_at, type)
		PARTITION BY toYYYYMM(created_at)`,
		calculationsAnalyticsFull,
	)
	_, err := w.db.DB().ExecContext(ctx, query)
	return err
}

// WriteCalculation реализует ports.ICalculationAnalytics: пишет одно вычисление в ClickHouse.
func (w *CalculationWriter) WriteCalculation(ctx context.Context, c domain.Calculation) error {
	query := fmt.Sprintf(
		"INSERT INTO %s (id, user_id, type, operands, result, created_at) VALUES (?, ?, ?, ?, ?, ?)",
		calculationsAnalyticsFull,
	)
	_, err := w.db.DB().ExecContext(ctx, query,
		c.ID, c.UserID, string(c.Type), c.Operands, c.Result, c.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert calculation: %w", err)
	}
	return nil
}
