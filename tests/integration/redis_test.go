package integration

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sripathisridhar/assignment11/internal/infrastructure/redis"
	"github.com/sripathisridhar/assignment11/tests/integration/testutil"
)

// redisContainer — контейнер Redis, поднимается один раз для всех тестов пакета.
// Инициализируется в TestMain (main_test.go).
var redisContainer *testutil.RedisContainer

// setupRedisCache подключается к тестовому Redis и очищает его.
func setupRedisCache(t *testing.T) *redis.Cache {
	t.Helper()

	client, err := redis.New(&redis.Config{
		Host:     redisContainer.Host,
		Port:     redisContainer.Port,
		Password: "",
		DB:       0,
	})
	require.NoError(t, err, "не удалось подключиться к Redis")

	// Очищаем Redis перед каждым тестом
	err = client.FlushDB(context.Background()).Err()
	require.NoError(t, err, "не удалось очистить Redis")

	t.Cleanup(func() {
		client.Close()
	})

	return redis.NewCache(client, newTestLogger())
}

// =============================================================================
// Тесты Redis кэша
// =============================================================================

func TestRedisCache_SetAndGet(t *testing.T) {
	if testing.Short() {
		t.Skip("пропускаем интеграционный тест в short режиме")
	}

	cache := setupRedisCache(t)
	ctx := context.Background()

	// Ключ в формате юзкейса: тип(операнды)
	err := cache.Set(ctx, "addition(2,3,4)", 9.0)
	require.NoError(t, err, "Set должен успешно сохранить")

	value, found, err := cache.Get(ctx, "addition(2,3,4)")
	require.NoError(t, err, "Get должен успешно получить")
	assert.True(t, found, "ключ должен быть найден")
	assert.Equal(t, 9.0, value, "значение должно совпадать")
}

func TestRedisCache_Get_NotFound(t *testing.T) {
	if testing.Short() {
		t.Skip("пропускаем интеграционный тест в short режиме")
	}

	cache := setupRedisCache(t)
	ctx := context.Background()

	value, found, err := cache.Get(ctx, "division(1,0)")

	require.NoError(t, err, "Get несуществующего ключа не должен возвращать ошибку")
	assert.False(t, found, "ключ не должен быть найден")
	assert.Equal(t, 0.0, value, "значение должно быть нулевым")
}

func TestRedisCache_Overwrite(t *testing.T) {
	if testing.Short() {
		t.Skip("пропускаем интеграционный тест в short режиме")
	}

	cache := setupRedisCache(t)
	ctx := context.Background()

	err := cache.Set(ctx, "division(100,5,2)", 100.0)
	require.NoError(t, err)

	// Перезаписываем
	err = cache.Set(ctx, "division(100,5,2)", 10.0)
	require.NoError(t, err)

	value, found, err := cache.Get(ctx, "division(100,5,2)")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, 10.0, value, "значение должно быть перезаписано")
}

// Дробные результаты должны переживать сериализацию в строку и обратно.
func TestRedisCache_FractionalValue(t *testing.T) {
	if testing.Short() {
		t.Skip("пропускаем интеграционный тест в short режиме")
	}

	cache := setupRedisCache(t)
	ctx := context.Background()

	err := cache.Set(ctx, "division(1,3)", 1.0/3.0)
	require.NoError(t, err)

	value, found, err := cache.Get(ctx, "division(1,3)")
	require.NoError(t, err)
	assert.True(t, found)
	assert.InDelta(t, 1.0/3.0, value, 1e-12)
}
