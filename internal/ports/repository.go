package ports

//go:generate mockgen -source=repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"

	"github.com/sripathisridhar/assignment11/internal/domain"
)

// ICalculationRepository — контракт хранения вычислений.
// GetByID и Update возвращают domain.ErrNotFound, если записи нет.
type ICalculationRepository interface {
	Save(ctx context.Context, c domain.Calculation) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.Calculation, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.Calculation, error)
	Update(ctx context.Context, c domain.Calculation) error
	Delete(ctx context.Context, id, userID int64) error
	Ping(ctx context.Context) error
}
