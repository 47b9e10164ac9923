package calculation

import "github.com/sripathisridhar/assignment11/internal/schemas"

// Формы запросов и ответа живут в internal/schemas: они общие для границы API
// и юзкейса. Здесь только обвязка списка и ошибок.

// ErrorResponse — ответ с ошибкой.
type ErrorResponse struct {
	Error string `json:"error"`
}

// ListResponse — ответ со списком вычислений пользователя.
type ListResponse struct {
	Items []schemas.CalculationResponse `json:"items"`
}
