package calculation

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/sripathisridhar/assignment11/internal/domain"
	"github.com/sripathisridhar/assignment11/internal/mocks"
	"github.com/sripathisridhar/assignment11/internal/schemas"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

// newTestRouter поднимает gin-роутер с контроллером на моке юзкейса.
func newTestRouter(uc *mocks.MockICalculationUseCase) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	New(uc, newTestLogger()).RegisterRoutes(r)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreate_OK(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	uc := mocks.NewMockICalculationUseCase(ctrl)
	calc, err := domain.New("addition", 1, []float64{2, 3, 4})
	require.NoError(t, err)
	calc.ID = 10
	uc.EXPECT().
		Create(gomock.Any(), "addition", int64(1), []float64{2, 3, 4}).
		Return(calc, nil)

	w := doJSON(t, newTestRouter(uc), http.MethodPost, "/api/v1/calculations",
		schemas.CreateCalculation{Type: "addition", UserID: 1, Operands: []float64{2, 3, 4}})

	require.Equal(t, http.StatusCreated, w.Code)
	var resp schemas.CalculationResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, int64(10), resp.ID)
	assert.Equal(t, 9.0, resp.Result)
	assert.Equal(t, "addition", resp.Type)
}

// Неизвестный тип отбрасывается валидацией схемы, до юзкейса запрос не доходит.
func TestCreate_UnknownTypeRejectedAtBoundary(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	uc := mocks.NewMockICalculationUseCase(ctrl)
	// uc.Create не вызывается.

	w := doJSON(t, newTestRouter(uc), http.MethodPost, "/api/v1/calculations",
		schemas.CreateCalculation{Type: "power", UserID: 1, Operands: []float64{2, 3}})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "unknown calculation type")
}

// Нулевой делитель ловится на границе до вычисления.
func TestCreate_DivisionByZeroRejectedAtBoundary(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	uc := mocks.NewMockICalculationUseCase(ctrl)

	w := doJSON(t, newTestRouter(uc), http.MethodPost, "/api/v1/calculations",
		schemas.CreateCalculation{Type: "division", UserID: 1, Operands: []float64{10, 0}})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "division by zero")
}

func TestCreate_NotEnoughOperands(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	uc := mocks.NewMockICalculationUseCase(ctrl)

	w := doJSON(t, newTestRouter(uc), http.MethodPost, "/api/v1/calculations",
		schemas.CreateCalculation{Type: "addition", UserID: 1, Operands: []float64{5}})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "at least two operands")
}

func TestGet_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	uc := mocks.NewMockICalculationUseCase(ctrl)
	uc.EXPECT().Get(gomock.Any(), int64(99)).Return(nil, domain.ErrNotFound)

	w := doJSON(t, newTestRouter(uc), http.MethodGet, "/api/v1/calculations/99", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestList_ByUser(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	uc := mocks.NewMockICalculationUseCase(ctrl)
	uc.EXPECT().ListByUser(gomock.Any(), int64(1)).Return([]domain.Calculation{
		{ID: 2, UserID: 1, Type: domain.TypeDivision, Operands: []float64{100, 5, 2}, Result: 10},
		{ID: 1, UserID: 1, Type: domain.TypeAddition, Operands: []float64{2, 3}, Result: 5},
	}, nil)

	w := doJSON(t, newTestRouter(uc), http.MethodGet, "/api/v1/calculations?user_id=1", nil)

	require.Equal(t, http.StatusOK, w.Code)
	var resp ListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Items, 2)
	assert.Equal(t, int64(2), resp.Items[0].ID)
}

func TestList_MissingUserID(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	uc := mocks.NewMockICalculationUseCase(ctrl)

	w := doJSON(t, newTestRouter(uc), http.MethodGet, "/api/v1/calculations", nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

// Смена типа при обновлении — 400 с доменной ошибкой от юзкейса.
func TestUpdate_TypeImmutable(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	uc := mocks.NewMockICalculationUseCase(ctrl)
	uc.EXPECT().
		Update(gomock.Any(), int64(5), gomock.Any()).
		Return(nil, domain.ErrTypeImmutable)

	division := "division"
	w := doJSON(t, newTestRouter(uc), http.MethodPut, "/api/v1/calculations/5",
		schemas.UpdateCalculation{Type: &division})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "immutable")
}

func TestDelete_OK(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	uc := mocks.NewMockICalculationUseCase(ctrl)
	uc.EXPECT().Delete(gomock.Any(), int64(5), int64(1)).Return(nil)

	w := doJSON(t, newTestRouter(uc), http.MethodDelete, "/api/v1/calculations/5?user_id=1", nil)

	assert.Equal(t, http.StatusNoContent, w.Code)
}
