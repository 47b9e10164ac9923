package integration

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sripathisridhar/assignment11/internal/domain"
	"github.com/sripathisridhar/assignment11/internal/infrastructure/mongo"
	"github.com/sripathisridhar/assignment11/tests/integration/testutil"
)

// mongoContainer — контейнер MongoDB, инициализируется в TestMain.
var mongoContainer *testutil.MongoContainer

// setupMongoRepo подключается к тестовой MongoDB и очищает коллекции.
func setupMongoRepo(t *testing.T) *mongo.CalculationRepo {
	t.Helper()

	ctx := context.Background()

	client, err := mongo.New(ctx, &mongo.Config{
		URI:        mongoContainer.URI(),
		Database:   "testdb",
		Collection: "calculations",
	})
	require.NoError(t, err, "не удалось подключиться к MongoDB")

	// Сбрасываем данные и счётчик идентификаторов перед каждым тестом
	require.NoError(t, client.Coll().Drop(ctx), "не удалось очистить коллекцию calculations")
	require.NoError(t, client.DB().Collection("counters").Drop(ctx), "не удалось очистить коллекцию counters")

	t.Cleanup(func() {
		_ = client.Disconnect(context.Background())
	})

	return mongo.NewCalculationRepo(client, newTestLogger())
}

// =============================================================================
// Тесты MongoDB репозитория
// =============================================================================

func TestMongoRepo_SaveAndGet(t *testing.T) {
	if testing.Short() {
		t.Skip("пропускаем интеграционный тест в short режиме")
	}

	repo := setupMongoRepo(t)
	ctx := context.Background()

	calc, err := domain.New("multiplication", 1, []float64{2, 3, 4})
	require.NoError(t, err)

	id, err := repo.Save(ctx, *calc)
	require.NoError(t, err, "Save должен успешно сохранить")
	assert.Equal(t, int64(1), id, "первый id из counters равен 1")

	got, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, id, got.ID)
	assert.Equal(t, domain.TypeMultiplication, got.Type)
	assert.Equal(t, []float64{2, 3, 4}, got.Operands)
	assert.Equal(t, 24.0, got.Result)
}

// Идентификаторы из counters монотонно растут, как BIGSERIAL в PostgreSQL.
func TestMongoRepo_SequentialIDs(t *testing.T) {
	if testing.Short() {
		t.Skip("пропускаем интеграционный тест в short режиме")
	}

	repo := setupMongoRepo(t)
	ctx := context.Background()

	calc, err := domain.New("addition", 1, []float64{1, 2})
	require.NoError(t, err)

	first, err := repo.Save(ctx, *calc)
	require.NoError(t, err)
	second, err := repo.Save(ctx, *calc)
	require.NoError(t, err)

	assert.Equal(t, first+1, second)
}

func TestMongoRepo_GetByID_NotFound(t *testing.T) {
	if testing.Short() {
		t.Skip("пропускаем интеграционный тест в short режиме")
	}

	repo := setupMongoRepo(t)

	_, err := repo.GetByID(context.Background(), 9999)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestMongoRepo_ListByUser(t *testing.T) {
	if testing.Short() {
		t.Skip("пропускаем интеграционный тест в short режиме")
	}

	repo := setupMongoRepo(t)
	ctx := context.Background()

	first, err := domain.New("addition", 1, []float64{2, 3})
	require.NoError(t, err)
	first.CreatedAt = time.Now().Add(-2 * time.Second)

	second, err := domain.New("subtraction", 1, []float64{10, 3, 2})
	require.NoError(t, err)
	second.CreatedAt = time.Now().Add(-1 * time.Second)

	other, err := domain.New("addition", 2, []float64{5, 5})
	require.NoError(t, err)

	_, err = repo.Save(ctx, *first)
	require.NoError(t, err)
	_, err = repo.Save(ctx, *second)
	require.NoError(t, err)
	_, err = repo.Save(ctx, *other)
	require.NoError(t, err)

	list, err := repo.ListByUser(ctx, 1)
	require.NoError(t, err)
	require.Len(t, list, 2)

	// Последние сначала
	assert.Equal(t, domain.TypeSubtraction, list[0].Type)
	assert.Equal(t, domain.TypeAddition, list[1].Type)
}

func TestMongoRepo_UpdateAndDelete(t *testing.T) {
	if testing.Short() {
		t.Skip("пропускаем интеграционный тест в short режиме")
	}

	repo := setupMongoRepo(t)
	ctx := context.Background()

	calc, err := domain.New("division", 1, []float64{100, 5, 2})
	require.NoError(t, err)

	id, err := repo.Save(ctx, *calc)
	require.NoError(t, err)

	calc.ID = id
	calc.Operands = []float64{40, 4}
	calc.Result, err = calc.Compute()
	require.NoError(t, err)
	calc.UpdatedAt = time.Now()

	require.NoError(t, repo.Update(ctx, *calc))

	got, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, []float64{40, 4}, got.Operands)
	assert.Equal(t, 10.0, got.Result)

	// Чужой пользователь не удаляет, владелец — удаляет
	assert.ErrorIs(t, repo.Delete(ctx, id, 2), domain.ErrNotFound)
	require.NoError(t, repo.Delete(ctx, id, 1))

	_, err = repo.GetByID(ctx, id)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestMongoRepo_Update_NotFound(t *testing.T) {
	if testing.Short() {
		t.Skip("пропускаем интеграционный тест в short режиме")
	}

	repo := setupMongoRepo(t)

	calc, err := domain.New("addition", 1, []float64{2, 3})
	require.NoError(t, err)
	calc.ID = 9999

	assert.ErrorIs(t, repo.Update(context.Background(), *calc), domain.ErrNotFound)
}
