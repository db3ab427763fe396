package api

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	apperrors "nfc-store/pkg/errors"
)

type Response[T any] struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Body    T      `json:"body,omitempty"`
}

// SuccessOne — для возврата одного объекта
func SuccessOne[T any](c echo.Context, code int, message string, data T) error {
	return c.JSON(code, Response[T]{
		Status:  true,
		Message: message,
		Body:    data,
	})
}

func ErrorResponse(c echo.Context, err error) error {
	code := http.StatusInternalServerError
	msg := err.Error()

	// Для HttpError берем только пользовательское сообщение, без технических деталей
	var httpErr *apperrors.HttpError
	if errors.As(err, &httpErr) {
		code = httpErr.Code
		msg = httpErr.Message
	} else if errors.Is(err, apperrors.ErrNotFound) || errors.Is(err, apperrors.ErrCardNotFound) {
		code = http.StatusNotFound
	} else if errors.Is(err, apperrors.ErrBadRequest) {
		code = http.StatusBadRequest
	}

	return c.JSON(code, Response[any]{
		Status:  false,
		Message: msg,
	})
}
