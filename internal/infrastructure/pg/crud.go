package pg

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/lib/pq"

	"github.com/sripathisridhar/assignment11/internal/domain"
	"github.com/sripathisridhar/assignment11/internal/ports"
)

var _ ports.ICalculationRepository = (*CalculationRepo)(nil)

// CalculationRepo реализует ports.ICalculationRepository для PostgreSQL.
type CalculationRepo struct {
	db  *DB
	log *slog.Logger
}

// NewCalculationRepo возвращает репозиторий вычислений.
func NewCalculationRepo(db *DB, log *slog.Logger) *CalculationRepo {
	return &CalculationRepo{db: db, log: log}
}

// Save сохраняет вычисление и возвращает присвоенный идентификатор.
func (r *CalculationRepo) Save(ctx context.Context, c domain.Calculation) (int64, error) {
	var id int64
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO calculations (user_id, type, operands, result, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id`,
		c.UserID, string(c.Type), pq.Array(c.Operands), c.Result, c.CreatedAt, c.UpdatedAt,
	).Scan(&id)
	if err != nil {
		r.log.Debug("Save failed", "error", err)
		return 0, err
	}
	return id, nil
}

// GetByID возвращает вычисление по идентификатору; domain.ErrNotFound, если записи нет.
// Вариант восстанавливается по колонке type — доменная таблица compute подберёт
// нужную функцию при пересчёте.
func (r *CalculationRepo) GetByID(ctx context.Context, id int64) (*domain.Calculation, error) {
	var c domain.Calculation
	var operands pq.Float64Array
	err := r.db.QueryRowContext(ctx,
		`SELECT id, user_id, type, operands, result, created_at, updated_at
		 FROM calculations WHERE id = $1`, id,
	).Scan(&c.ID, &c.UserID, &c.Type, &operands, &c.Result, &c.CreatedAt, &c.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		r.log.Debug("GetByID failed", "id", id, "error", err)
		return nil, err
	}
	c.Operands = []float64(operands)
	return &c, nil
}

// ListByUser возвращает историю вычислений пользователя (последние сначала).
func (r *CalculationRepo) ListByUser(ctx context.Context, userID int64) ([]domain.Calculation, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, type, operands, result, created_at, updated_at
		 FROM calculations WHERE user_id = $1 ORDER BY created_at DESC`, userID)
	if err != nil {
		r.log.Debug("ListByUser failed", "user_id", userID, "error", err)
		return nil, err
	}
	defer rows.Close()
	var list []domain.Calculation
	for rows.Next() {
		var c domain.Calculation
		var operands pq.Float64Array
		err := rows.Scan(&c.ID, &c.UserID, &c.Type, &operands, &c.Result, &c.CreatedAt, &c.UpdatedAt)
		if err != nil {
			return nil, err
		}
		c.Operands = []float64(operands)
		list = append(list, c)
	}
	return list, rows.Err()
}

// Update перезаписывает операнды и результат; domain.ErrNotFound, если записи нет.
// Тип не обновляется: он неизменяем с момента создания.
func (r *CalculationRepo) Update(ctx context.Context, c domain.Calculation) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE calculations SET operands = $1, result = $2, updated_at = $3 WHERE id = $4`,
		pq.Array(c.Operands), c.Result, c.UpdatedAt, c.ID)
	if err != nil {
		r.log.Debug("Update failed", "id", c.ID, "error", err)
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete удаляет вычисление владельца; domain.ErrNotFound, если записи нет.
func (r *CalculationRepo) Delete(ctx context.Context, id, userID int64) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM calculations WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		r.log.Debug("Delete failed", "id", id, "error", err)
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Ping проверяет доступность БД (readiness).
func (r *CalculationRepo) Ping(ctx context.Context) error {
	return r.db.Ping(ctx)
}
