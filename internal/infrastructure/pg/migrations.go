package pg

import (
	"context"
)

// Одна таблица на все четыре варианта: вариант выбирается по колонке type
// (single-table с дискриминатором), операнды — массив в порядке следования.
const createCalculationsTable = `
CREATE TABLE IF NOT EXISTS calculations (
	id         BIGSERIAL PRIMARY KEY,
	user_id    BIGINT NOT NULL,
	type       VARCHAR(20) NOT NULL,
	operands   DOUBLE PRECISION[] NOT NULL,
	result     DOUBLE PRECISION NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS calculations_user_id_idx ON calculations (user_id, created_at DESC);
`

// Migrate создаёт таблицу calculations, если её ещё нет.
func Migrate(ctx context.Context, db *DB) error {
	_, err := db.ExecContext(ctx, createCalculationsTable)
	return err
}
