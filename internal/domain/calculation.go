package domain

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"
)

// Ошибки уровня домена. На HTTP-границе матчатся через errors.Is.
var (
	// ErrUnknownType возвращается, когда тип вычисления не поддерживается.
	ErrUnknownType = errors.New("unknown calculation type")
	// ErrNotEnoughOperands возвращается, когда операндов меньше двух.
	ErrNotEnoughOperands = errors.New("calculation requires at least two operands")
	// ErrDivisionByZero возвращается при делении на ноль (любой операнд после первого).
	ErrDivisionByZero = errors.New("division by zero")
	// ErrTypeImmutable возвращается при попытке сменить тип существующего вычисления.
	ErrTypeImmutable = errors.New("calculation type is immutable")
	// ErrNotFound возвращается репозиторием, если вычисление не найдено.
	ErrNotFound = errors.New("calculation not found")
)

// CalcType — дискриминатор: какую арифметическую операцию выполняет вычисление.
type CalcType string

// Четыре типа вычислений. Множество закрытое: новый тип — это осознанное
// изменение схемы (таблица compute + миграция), а не наследование.
const (
	TypeAddition       CalcType = "addition"
	TypeSubtraction    CalcType = "subtraction"
	TypeMultiplication CalcType = "multiplication"
	TypeDivision       CalcType = "division"
)

// compute — таблица диспетчеризации тип → чистая функция над операндами.
// Аналог single-table inheritance: один тип записи, вариант выбирается по тегу.
var compute = map[CalcType]func([]float64) (float64, error){
	TypeAddition: func(ops []float64) (float64, error) {
		var sum float64
		for _, v := range ops {
			sum += v
		}
		return sum, nil
	},
	TypeSubtraction: func(ops []float64) (float64, error) {
		acc := ops[0]
		for _, v := range ops[1:] {
			acc -= v
		}
		return acc, nil
	},
	TypeMultiplication: func(ops []float64) (float64, error) {
		acc := 1.0
		for _, v := range ops {
			acc *= v
		}
		return acc, nil
	},
	TypeDivision: func(ops []float64) (float64, error) {
		// Делим слева направо; при первом нулевом делителе выходим с ошибкой,
		// частичный результат наружу не отдаётся (acc локальный).
		acc := ops[0]
		for _, v := range ops[1:] {
			if v == 0 {
				return 0, ErrDivisionByZero
			}
			acc /= v
		}
		return acc, nil
	},
}

// ParseType нормализует тег типа (регистр, пробелы) и проверяет его по таблице compute.
func ParseType(tag string) (CalcType, error) {
	t := CalcType(strings.ToLower(strings.TrimSpace(tag)))
	if _, ok := compute[t]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownType, tag)
	}
	return t, nil
}

// Calculation — запись об одном вычислении пользователя.
// user_id — ссылка на владельца (только lookup, обратного указателя у пользователя нет).
type Calculation struct {
	ID        int64
	UserID    int64
	Type      CalcType
	Operands  []float64
	Result    float64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// New — фабрика: по тегу типа, владельцу и операндам собирает нужный вариант
// и сразу считает результат. Единственный путь создания Calculation.
// Сначала проверяется тип (ErrUnknownType), затем число операндов
// (ErrNotEnoughOperands); частично собранный объект наружу не выходит.
func New(typeTag string, userID int64, operands []float64) (*Calculation, error) {
	t, err := ParseType(typeTag)
	if err != nil {
		return nil, err
	}
	if len(operands) < 2 {
		return nil, fmt.Errorf("%w: got %d", ErrNotEnoughOperands, len(operands))
	}

	now := time.Now()
	c := &Calculation{
		UserID:    userID,
		Type:      t,
		Operands:  slices.Clone(operands),
		CreatedAt: now,
		UpdatedAt: now,
	}
	result, err := c.Compute()
	if err != nil {
		return nil, err
	}
	c.Result = result
	return c, nil
}

// Compute считает результат по таблице диспетчеризации. Чистая функция от
// типа и операндов: повторный вызов на том же объекте даёт тот же результат.
// Проверки здесь дублируют схемы намеренно: домен защищает и тех, кто зашёл
// мимо HTTP-границы (например, воркер, переигрывающий события из Kafka).
func (c *Calculation) Compute() (float64, error) {
	fn, ok := compute[c.Type]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownType, c.Type)
	}
	if len(c.Operands) < 2 {
		return 0, fmt.Errorf("%w: got %d", ErrNotEnoughOperands, len(c.Operands))
	}
	return fn(c.Operands)
}
