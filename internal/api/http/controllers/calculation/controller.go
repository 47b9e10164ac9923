package calculation

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/sripathisridhar/assignment11/internal/domain"
	"github.com/sripathisridhar/assignment11/internal/ports"
	"github.com/sripathisridhar/assignment11/internal/schemas"
)

// calculationsTotal считает созданные вычисления по типу операции.
var calculationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "calculations_total",
		Help: "Total number of calculations created, by type",
	},
	[]string{"type"},
)

// Controller — маршруты вычислений: create, list, get, update, delete.
type Controller struct {
	uc  ports.ICalculationUseCase
	log *slog.Logger
}

// New создаёт контроллер вычислений.
func New(uc ports.ICalculationUseCase, log *slog.Logger) *Controller {
	return &Controller{uc: uc, log: log}
}

// RegisterRoutes реализует http.Controller: регистрирует маршруты на роутере.
func (c *Controller) RegisterRoutes(r *gin.Engine) {
	api := r.Group("/api/v1")

	api.POST("/calculations", c.create)
	api.GET("/calculations", c.list)
	api.GET("/calculations/:id", c.get)
	api.PUT("/calculations/:id", c.update)
	api.DELETE("/calculations/:id", c.delete)
}

// status подбирает HTTP-статус по ошибке юзкейса: нарушения валидации и
// доменных инвариантов — 400, отсутствие записи — 404, остальное — 500.
func status(err error) int {
	switch {
	case errors.Is(err, domain.ErrUnknownType),
		errors.Is(err, domain.ErrNotEnoughOperands),
		errors.Is(err, domain.ErrDivisionByZero),
		errors.Is(err, domain.ErrTypeImmutable):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// @Summary Создать вычисление
// @Description Принимает тип (addition|subtraction|multiplication|division), владельца и список операндов (минимум два), возвращает запись с результатом. Результат кэшируется и сохраняется в БД.
// @Tags calculations
// @Accept json
// @Produce json
// @Param request body schemas.CreateCalculation true "Параметры вычисления"
// @Success 201 {object} schemas.CalculationResponse "Созданное вычисление"
// @Failure 400 {object} ErrorResponse "Невалидный запрос, неизвестный тип или нулевой делитель"
// @Failure 500 {object} ErrorResponse "Внутренняя ошибка сервера"
// @Router /api/v1/calculations [post]
func (c *Controller) create(ctx *gin.Context) {
	var req schemas.CreateCalculation

	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.log.Warn("create bind failed", "error", err)
		ctx.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request: " + err.Error()})
		return
	}

	// Граница проверяет форму и семантику до вычисления; домен продублирует
	// те же проверки внутри фабрики.
	if _, err := req.Validate(); err != nil {
		c.log.Warn("create validation failed", "error", err)
		ctx.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	calc, err := c.uc.Create(ctx.Request.Context(), req.Type, req.UserID, req.Operands)
	if err != nil {
		code := status(err)
		if code == http.StatusInternalServerError {
			c.log.Error("create failed", "error", err)
		} else {
			c.log.Warn("create rejected", "error", err)
		}
		ctx.JSON(code, ErrorResponse{Error: err.Error()})
		return
	}

	calculationsTotal.WithLabelValues(string(calc.Type)).Inc()
	ctx.JSON(http.StatusCreated, schemas.NewCalculationResponse(*calc))
}

// @Summary История вычислений пользователя
// @Description Возвращает вычисления владельца из БД, последние сначала
// @Tags calculations
// @Produce json
// @Param user_id query int true "Идентификатор владельца"
// @Success 200 {object} ListResponse "Список вычислений"
// @Failure 400 {object} ErrorResponse "Не передан user_id"
// @Failure 500 {object} ErrorResponse "Внутренняя ошибка сервера"
// @Router /api/v1/calculations [get]
func (c *Controller) list(ctx *gin.Context) {
	userID, err := strconv.ParseInt(ctx.Query("user_id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid user_id"})
		return
	}

	list, err := c.uc.ListByUser(ctx.Request.Context(), userID)
	if err != nil {
		c.log.Error("list failed", "error", err)
		ctx.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}
	items := make([]schemas.CalculationResponse, len(list))
	for i, calc := range list {
		items[i] = schemas.NewCalculationResponse(calc)
	}
	ctx.JSON(http.StatusOK, ListResponse{Items: items})
}

// @Summary Получить вычисление
// @Tags calculations
// @Produce json
// @Param id path int true "Идентификатор вычисления"
// @Success 200 {object} schemas.CalculationResponse
// @Failure 404 {object} ErrorResponse "Вычисление не найдено"
// @Router /api/v1/calculations/{id} [get]
func (c *Controller) get(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
		return
	}

	calc, err := c.uc.Get(ctx.Request.Context(), id)
	if err != nil {
		code := status(err)
		if code == http.StatusInternalServerError {
			c.log.Error("get failed", "id", id, "error", err)
		}
		ctx.JSON(code, ErrorResponse{Error: err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, schemas.NewCalculationResponse(*calc))
}

// @Summary Изменить вычисление
// @Description Все поля опциональны; тип сменить нельзя. Новые операнды валидируются против сохранённого типа, результат пересчитывается.
// @Tags calculations
// @Accept json
// @Produce json
// @Param id path int true "Идентификатор вычисления"
// @Param request body schemas.UpdateCalculation true "Изменяемые поля"
// @Success 200 {object} schemas.CalculationResponse "Обновлённое вычисление"
// @Failure 400 {object} ErrorResponse "Невалидный запрос, смена типа или нулевой делитель"
// @Failure 404 {object} ErrorResponse "Вычисление не найдено"
// @Router /api/v1/calculations/{id} [put]
func (c *Controller) update(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
		return
	}

	var req schemas.UpdateCalculation
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.log.Warn("update bind failed", "error", err)
		ctx.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request: " + err.Error()})
		return
	}

	calc, err := c.uc.Update(ctx.Request.Context(), id, req)
	if err != nil {
		code := status(err)
		if code == http.StatusInternalServerError {
			c.log.Error("update failed", "id", id, "error", err)
		} else {
			c.log.Warn("update rejected", "id", id, "error", err)
		}
		ctx.JSON(code, ErrorResponse{Error: err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, schemas.NewCalculationResponse(*calc))
}

// @Summary Удалить вычисление
// @Tags calculations
// @Param id path int true "Идентификатор вычисления"
// @Param user_id query int true "Идентификатор владельца"
// @Success 204 "Удалено"
// @Failure 404 {object} ErrorResponse "Вычисление не найдено"
// @Router /api/v1/calculations/{id} [delete]
func (c *Controller) delete(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
		return
	}
	userID, err := strconv.ParseInt(ctx.Query("user_id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid user_id"})
		return
	}

	if err := c.uc.Delete(ctx.Request.Context(), id, userID); err != nil {
		code := status(err)
		if code == http.StatusInternalServerError {
			c.log.Error("delete failed", "id", id, "error", err)
		}
		ctx.JSON(code, ErrorResponse{Error: err.Error()})
		return
	}
	ctx.Status(http.StatusNoContent)
}
