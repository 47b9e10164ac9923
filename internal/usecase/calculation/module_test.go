package calculation

import (
	"testing"

	"github.com/sripathisridhar/assignment11/internal/domain"
)

func TestCacheKey(t *testing.T) {
	tests := []struct {
		name     string
		typ      domain.CalcType
		operands []float64
		want     string
	}{
		{
			name:     "сложение целых",
			typ:      domain.TypeAddition,
			operands: []float64{2, 3, 4},
			want:     "addition(2,3,4)",
		},
		{
			name:     "вычитание двух операндов",
			typ:      domain.TypeSubtraction,
			operands: []float64{10, 3},
			want:     "subtraction(10,3)",
		},
		{
			name:     "умножение с дробными",
			typ:      domain.TypeMultiplication,
			operands: []float64{3.14, 2},
			want:     "multiplication(3.14,2)",
		},
		{
			name:     "деление цепочкой",
			typ:      domain.TypeDivision,
			operands: []float64{100, 5, 2},
			want:     "division(100,5,2)",
		},
		{
			name:     "отрицательные числа",
			typ:      domain.TypeAddition,
			operands: []float64{-10, -5},
			want:     "addition(-10,-5)",
		},
		{
			name:     "очень маленькое дробное",
			typ:      domain.TypeAddition,
			operands: []float64{0.000001, 0.000002},
			want:     "addition(0.000001,0.000002)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := cacheKey(tt.typ, tt.operands)
			if got != tt.want {
				t.Errorf("cacheKey(%q, %v) = %q, want %q", tt.typ, tt.operands, got, tt.want)
			}
		})
	}
}
