package http

import (
	"net/http"

	ucPayment "microcredit-coop/internal/usecase/payment"

	"github.com/labstack/echo/v4"
)

type PaymentHandler struct{ uc *ucPayment.Usecase }

func NewPaymentHandler(uc *ucPayment.Usecase) *PaymentHandler { return &PaymentHandler{uc: uc} }

func (h *PaymentHandler) ListMine(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	list, err := h.uc.ListMine(c.Request().Context(), actor)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, list)
}

func (h *PaymentHandler) MarkPaid(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	paymentID, err := hexParam(c, "payment_id")
	if err != nil {
		return err
	}
	dto, err := h.uc.MarkPaid(c.Request().Context(), actor, paymentID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}
