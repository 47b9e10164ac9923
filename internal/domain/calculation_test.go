package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_ComputesResult(t *testing.T) {
	tests := []struct {
		name     string
		typeTag  string
		operands []float64
		want     float64
	}{
		{
			name:     "сложение трёх операндов",
			typeTag:  "addition",
			operands: []float64{2, 3, 4},
			want:     9,
		},
		{
			name:     "сложение двух операндов",
			typeTag:  "addition",
			operands: []float64{1.5, 2.5},
			want:     4,
		},
		{
			name:     "вычитание слева направо",
			typeTag:  "subtraction",
			operands: []float64{10, 3, 2},
			want:     5,
		},
		{
			name:     "вычитание двух операндов",
			typeTag:  "subtraction",
			operands: []float64{7, 9},
			want:     -2,
		},
		{
			name:     "умножение трёх операндов",
			typeTag:  "multiplication",
			operands: []float64{2, 3, 4},
			want:     24,
		},
		{
			name:     "умножение на ноль",
			typeTag:  "multiplication",
			operands: []float64{5, 0},
			want:     0,
		},
		{
			name:     "деление слева направо",
			typeTag:  "division",
			operands: []float64{100, 5, 2},
			want:     10,
		},
		{
			name:     "деление двух операндов",
			typeTag:  "division",
			operands: []float64{9, 4},
			want:     2.25,
		},
		{
			name:     "ноль в качестве первого операнда деления допустим",
			typeTag:  "division",
			operands: []float64{0, 5},
			want:     0,
		},
		{
			name:     "тег нормализуется к нижнему регистру",
			typeTag:  "  ADDITION ",
			operands: []float64{1, 2},
			want:     3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := New(tt.typeTag, 1, tt.operands)
			require.NoError(t, err)
			assert.Equal(t, tt.want, c.Result)
		})
	}
}

func TestNew_UnknownType(t *testing.T) {
	c, err := New("modulo", 1, []float64{10, 3})

	assert.Nil(t, c, "частично собранный объект не должен возвращаться")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownType)
}

func TestNew_NotEnoughOperands(t *testing.T) {
	for _, tag := range []string{"addition", "subtraction", "multiplication", "division"} {
		t.Run(tag, func(t *testing.T) {
			c, err := New(tag, 1, []float64{5})
			assert.Nil(t, c)
			assert.ErrorIs(t, err, ErrNotEnoughOperands)
		})
	}
}

func TestNew_TypeCheckedBeforeOperands(t *testing.T) {
	// При неизвестном типе и одном операнде первой должна сработать проверка типа.
	_, err := New("unknown", 1, []float64{5})
	assert.ErrorIs(t, err, ErrUnknownType)
}

func TestCompute_DivisionByZero(t *testing.T) {
	tests := []struct {
		name     string
		operands []float64
	}{
		{name: "ноль вторым операндом", operands: []float64{10, 0}},
		{name: "ноль в середине цепочки", operands: []float64{100, 5, 0, 2}},
		{name: "ноль последним операндом", operands: []float64{100, 5, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := New("division", 1, tt.operands)
			assert.Nil(t, c, "результат не должен возвращаться даже частично")
			assert.ErrorIs(t, err, ErrDivisionByZero)
		})
	}
}

func TestCompute_Idempotent(t *testing.T) {
	c, err := New("division", 1, []float64{100, 5, 2})
	require.NoError(t, err)

	first, err := c.Compute()
	require.NoError(t, err)
	second, err := c.Compute()
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, c.Result, first)
}

func TestCompute_GuardsStoredRecord(t *testing.T) {
	// Запись, пришедшая мимо фабрики (например из брокера), проверяется при расчёте.
	c := Calculation{Type: TypeDivision, Operands: []float64{10, 0}}
	_, err := c.Compute()
	assert.ErrorIs(t, err, ErrDivisionByZero)

	c = Calculation{Type: "percent", Operands: []float64{10, 2}}
	_, err = c.Compute()
	assert.ErrorIs(t, err, ErrUnknownType)

	c = Calculation{Type: TypeAddition, Operands: []float64{10}}
	_, err = c.Compute()
	assert.ErrorIs(t, err, ErrNotEnoughOperands)
}

func TestParseType(t *testing.T) {
	tests := []struct {
		in      string
		want    CalcType
		wantErr bool
	}{
		{in: "addition", want: TypeAddition},
		{in: "Subtraction", want: TypeSubtraction},
		{in: "MULTIPLICATION", want: TypeMultiplication},
		{in: " division\n", want: TypeDivision},
		{in: "add", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseType(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnknownType)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNew_ClonesOperands(t *testing.T) {
	src := []float64{2, 3}
	c, err := New("addition", 1, src)
	require.NoError(t, err)

	src[0] = 100
	assert.Equal(t, []float64{2, 3}, c.Operands, "операнды не должны разделять память с вызывающим кодом")
}
