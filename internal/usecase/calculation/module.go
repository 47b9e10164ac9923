package calculation

import (
	"log/slog"
	"strconv"
	"strings"

	"github.com/sripathisridhar/assignment11/internal/domain"
	"github.com/sripathisridhar/assignment11/internal/ports"
)

// cacheKey формирует читаемый ключ вычисления для кэша, например "addition(2,3,4)".
func cacheKey(t domain.CalcType, operands []float64) string {
	var b strings.Builder
	b.WriteString(string(t))
	b.WriteByte('(')
	for i, v := range operands {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.FormatFloat(v, 'f', -1, 64))
	}
	b.WriteByte(')')
	return b.String()
}

// UseCase — бизнес-логика вычислений.
type UseCase struct {
	repo      ports.ICalculationRepository
	cache     ports.ICache
	broker    ports.IProducer
	analytics ports.ICalculationAnalytics
	log       *slog.Logger
}

// New создаёт юзкейс вычислений.
func New(repo ports.ICalculationRepository, cache ports.ICache, broker ports.IProducer, analytics ports.ICalculationAnalytics, log *slog.Logger) *UseCase {
	return &UseCase{repo: repo, cache: cache, broker: broker, analytics: analytics, log: log}
}
