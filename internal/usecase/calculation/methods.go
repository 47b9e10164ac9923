package calculation

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"time"

	"github.com/sripathisridhar/assignment11/internal/domain"
	"github.com/sripathisridhar/assignment11/internal/schemas"
)

// Create — проверяет кэш; при промахе считает результат через фабрику.
// Запись сохраняется в БД в любом случае (у каждого вычисления своя identity
// и свой владелец), попадание в кэш экономит только сам расчёт.
func (u *UseCase) Create(ctx context.Context, typeTag string, userID int64, operands []float64) (*domain.Calculation, error) {
	t, err := domain.ParseType(typeTag)
	if err != nil {
		return nil, err
	}
	if len(operands) < 2 {
		return nil, fmt.Errorf("%w: got %d", domain.ErrNotEnoughOperands, len(operands))
	}

	key := cacheKey(t, operands)
	if cached, found, err := u.cache.Get(ctx, key); err == nil && found {
		// Результат этого выражения уже считали. В кэш попадают только
		// значения, прошедшие фабрику, так что инварианты соблюдены.
		now := time.Now()
		c := &domain.Calculation{
			UserID:    userID,
			Type:      t,
			Operands:  slices.Clone(operands),
			Result:    cached,
			CreatedAt: now,
			UpdatedAt: now,
		}
		u.log.Info("cache hit", "key", key, "result", cached)
		return u.persist(ctx, c, key)
	}

	c, err := domain.New(typeTag, userID, operands)
	if err != nil {
		return nil, err
	}
	return u.persist(ctx, c, key)
}

// persist сохраняет вычисление в БД, кладёт результат в кэш и публикует событие
// в брокер. Ошибка БД фатальна для запроса; кэш и брокер — только warn.
func (u *UseCase) persist(ctx context.Context, c *domain.Calculation, key string) (*domain.Calculation, error) {
	id, err := u.repo.Save(ctx, *c)
	if err != nil {
		return nil, err
	}
	c.ID = id
	u.log.Info("calculation saved", "id", id, "key", key, "result", c.Result)

	if err := u.cache.Set(ctx, key, c.Result); err != nil {
		u.log.Warn("cache set", "key", key, "error", err)
	}

	value, err := json.Marshal(c)
	if err != nil {
		return nil, err
	}
	if err := u.broker.Send(ctx, []byte(key), value); err != nil {
		u.log.Warn("broker send", "key", key, "error", err)
	} else {
		u.log.Info("calculation published", "id", id, "key", key)
	}

	return c, nil
}

// Get возвращает вычисление по идентификатору (обвязка над репозиторием).
func (u *UseCase) Get(ctx context.Context, id int64) (*domain.Calculation, error) {
	return u.repo.GetByID(ctx, id)
}

// ListByUser — история вычислений пользователя (последние сначала).
func (u *UseCase) ListByUser(ctx context.Context, userID int64) ([]domain.Calculation, error) {
	return u.repo.ListByUser(ctx, userID)
}

// Update загружает запись, валидирует изменения против сохранённого типа,
// пересчитывает результат и сохраняет. Тип вычисления сменить нельзя
// (schemas.UpdateCalculation возвращает ErrTypeImmutable).
func (u *UseCase) Update(ctx context.Context, id int64, req schemas.UpdateCalculation) (*domain.Calculation, error) {
	c, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if _, err := req.Validate(c.Type); err != nil {
		return nil, err
	}
	if req.Operands != nil {
		c.Operands = slices.Clone(req.Operands)
	}

	// Пересчёт идёт через доменную таблицу: даже если валидация схемы
	// где-то обойдена, нулевой делитель остановит расчёт здесь.
	result, err := c.Compute()
	if err != nil {
		return nil, err
	}
	c.Result = result
	c.UpdatedAt = time.Now()

	if err := u.repo.Update(ctx, *c); err != nil {
		return nil, err
	}

	key := cacheKey(c.Type, c.Operands)
	if err := u.cache.Set(ctx, key, c.Result); err != nil {
		u.log.Warn("cache set", "key", key, "error", err)
	}
	u.log.Info("calculation updated", "id", id, "result", c.Result)
	return c, nil
}

// Delete удаляет вычисление владельца.
func (u *UseCase) Delete(ctx context.Context, id, userID int64) error {
	if err := u.repo.Delete(ctx, id, userID); err != nil {
		return err
	}
	u.log.Info("calculation deleted", "id", id, "user_id", userID)
	return nil
}

// HandleCalculationEvent вызывается консьюмером при получении сообщения из топика
// (часть ICalculationUseCase). Событие пришло мимо схем, поэтому результат
// переигрывается через доменный guard; битые записи пропускаются, ошибка
// аналитики возвращается наружу для redelivery.
func (u *UseCase) HandleCalculationEvent(ctx context.Context, c domain.Calculation) error {
	result, err := c.Compute()
	if err != nil {
		u.log.Warn("event failed domain guard, skip", "id", c.ID, "type", c.Type, "error", err)
		return nil
	}
	c.Result = result

	if err := u.analytics.WriteCalculation(ctx, c); err != nil {
		u.log.Warn("analytics write", "id", c.ID, "error", err)
		return err
	}
	u.log.Info("calculation stored to click", "id", c.ID, "type", c.Type, "result", c.Result)
	return nil
}
