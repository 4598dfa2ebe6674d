package http

import (
	"net/http"
	"time"

	"microcredit-coop/internal/adapter/middleware"
	"microcredit-coop/internal/domain/member"

	"github.com/labstack/echo/v4"
)

type Handler struct{}

func NewHandler() *Handler { return &Handler{} }

func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339Nano),
	})
}

// actorFrom reads the member authenticated by middleware.Auth.
func actorFrom(c echo.Context) (member.Actor, error) {
	a, ok := middleware.ActorFrom(c)
	if !ok {
		return member.Actor{}, echo.NewHTTPError(http.StatusUnauthorized, ErrorResponse{Error: "unauthenticated"})
	}
	return a, nil
}

// hexParam reads a 32-hex path param.
func hexParam(c echo.Context, name string) (string, error) {
	v := c.Param(name)
	if v == "" {
		return "", echo.NewHTTPError(http.StatusBadRequest, ErrorResponse{Error: "missing " + name + " path param"})
	}
	if !reHex32.MatchString(v) {
		return "", echo.NewHTTPError(http.StatusBadRequest, ErrorResponse{Error: "invalid " + name + " path param"})
	}
	return v, nil
}
