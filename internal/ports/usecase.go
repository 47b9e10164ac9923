package ports

//go:generate mockgen -source=usecase.go -destination=../mocks/usecase_mock.go -package=mocks

import (
	"context"

	"github.com/sripathisridhar/assignment11/internal/domain"
	"github.com/sripathisridhar/assignment11/internal/schemas"
)

// ICalculationUseCase — контракт бизнес-логики вычислений (создание, чтение,
// изменение, удаление, обработка событий из Kafka).
type ICalculationUseCase interface {
	Create(ctx context.Context, typeTag string, userID int64, operands []float64) (*domain.Calculation, error)
	Get(ctx context.Context, id int64) (*domain.Calculation, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.Calculation, error)
	Update(ctx context.Context, id int64, req schemas.UpdateCalculation) (*domain.Calculation, error)
	Delete(ctx context.Context, id, userID int64) error
	HandleCalculationEvent(ctx context.Context, c domain.Calculation) error
}
