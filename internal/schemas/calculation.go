// Package schemas — формы запросов и ответа для вычислений и их валидация
// на границе API. Проверки «до расчёта» (количество операндов, нулевой делитель)
// живут здесь; домен дублирует их независимо на случай обхода границы.
package schemas

import (
	"fmt"
	"time"

	"github.com/sripathisridhar/assignment11/internal/domain"
)

// ValidationError — структурная ошибка валидации запроса: поле и причина.
// Оборачивает доменную ошибку, чтобы на границе работал errors.Is.
type ValidationError struct {
	Field string
	Err   error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation: %s: %v", e.Field, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// invalid — шорткат для ValidationError.
func invalid(field string, err error) error {
	return &ValidationError{Field: field, Err: err}
}

// checkDivisors проверяет правило деления: все операнды после первого ненулевые.
// Вызывается до расчёта, чтобы клиент получил ошибку валидации, а не ошибку вычисления.
func checkDivisors(operands []float64) error {
	for i, v := range operands[1:] {
		if v == 0 {
			return invalid("operands", fmt.Errorf("%w: operand %d is zero", domain.ErrDivisionByZero, i+1))
		}
	}
	return nil
}

// CreateCalculation — форма запроса на создание вычисления.
// Теги binding отсекают отсутствующие поля ещё на ShouldBindJSON.
type CreateCalculation struct {
	Type     string    `json:"type" binding:"required"`
	UserID   int64     `json:"user_id" binding:"required"`
	Operands []float64 `json:"operands" binding:"required"`
}

// Validate нормализует тег типа и проверяет семантику запроса:
// известный тип, минимум два операнда, для деления — ненулевые делители.
// Возвращает канонический тип при успехе.
func (r *CreateCalculation) Validate() (domain.CalcType, error) {
	t, err := domain.ParseType(r.Type)
	if err != nil {
		return "", invalid("type", err)
	}
	if len(r.Operands) < 2 {
		return "", invalid("operands", fmt.Errorf("%w: got %d", domain.ErrNotEnoughOperands, len(r.Operands)))
	}
	if t == domain.TypeDivision {
		if err := checkDivisors(r.Operands); err != nil {
			return "", err
		}
	}
	return t, nil
}

// UpdateCalculation — форма запроса на изменение вычисления. Все поля опциональны.
type UpdateCalculation struct {
	Type     *string   `json:"type,omitempty"`
	Operands []float64 `json:"operands,omitempty"`
}

// Validate проверяет запрос против уже сохранённого типа. Тип вычисления
// неизменяем: указать его можно, но только совпадающим с сохранённым.
// Правило делителей применяется к разрешённому типу (переданному или сохранённому),
// если переданы операнды.
func (r *UpdateCalculation) Validate(stored domain.CalcType) (domain.CalcType, error) {
	resolved := stored
	if r.Type != nil {
		t, err := domain.ParseType(*r.Type)
		if err != nil {
			return "", invalid("type", err)
		}
		if t != stored {
			return "", invalid("type", fmt.Errorf("%w: stored type is %q", domain.ErrTypeImmutable, stored))
		}
		resolved = t
	}
	if r.Operands != nil {
		if len(r.Operands) < 2 {
			return "", invalid("operands", fmt.Errorf("%w: got %d", domain.ErrNotEnoughOperands, len(r.Operands)))
		}
		if resolved == domain.TypeDivision {
			if err := checkDivisors(r.Operands); err != nil {
				return "", err
			}
		}
	}
	return resolved, nil
}

// CalculationResponse — форма ответа. Идентификатор, результат и таймстемпы
// назначает сервер; на вход они не принимаются.
type CalculationResponse struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Type      string    `json:"type"`
	Operands  []float64 `json:"operands"`
	Result    float64   `json:"result"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewCalculationResponse собирает форму ответа из доменной записи.
func NewCalculationResponse(c domain.Calculation) CalculationResponse {
	return CalculationResponse{
		ID:        c.ID,
		UserID:    c.UserID,
		Type:      string(c.Type),
		Operands:  c.Operands,
		Result:    c.Result,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
