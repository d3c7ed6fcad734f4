package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/devilal/catalog-api/internal/core/ports"
)

// envelope is the canonical response body for every endpoint. Error
// responses use the same shape and are rendered by the API error handler.
type envelope struct {
	Success    bool              `json:"success"`
	Message    string            `json:"message,omitempty"`
	Data       any               `json:"data,omitempty"`
	Error      string            `json:"error,omitempty"`
	Pagination *ports.Pagination `json:"pagination,omitempty"`
}

func respondData(c echo.Context, status int, data any) error {
	return c.JSON(status, envelope{Success: true, Data: data})
}

func respondMessage(c echo.Context, status int, message string, data any) error {
	return c.JSON(status, envelope{Success: true, Message: message, Data: data})
}

func respondPage(c echo.Context, status int, data any, p ports.Pagination) error {
	return c.JSON(status, envelope{Success: true, Data: data, Pagination: &p})
}
