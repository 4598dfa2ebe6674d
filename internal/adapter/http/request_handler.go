package http

import (
	"net/http"
	"strconv"

	ucRequest "microcredit-coop/internal/usecase/request"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

type RequestHandler struct{ uc *ucRequest.Usecase }

func NewRequestHandler(uc *ucRequest.Usecase) *RequestHandler { return &RequestHandler{uc: uc} }

type submitRequestReq struct {
	Amount      decimal.Decimal `json:"amount"      validate:"required,gte=50,lte=5000,dec2"`
	Category    string          `json:"category"    validate:"required,category"`
	Purpose     string          `json:"purpose"     validate:"required,max=100"`
	Description *string         `json:"description" validate:"omitempty,max=500"`
	TermMonths  int             `json:"term_months" validate:"required,term"`
}

func (h *RequestHandler) Submit(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	var req submitRequestReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}
	if err := c.Validate(&req); err != nil {
		return validationFailed(c, err)
	}
	dto, err := h.uc.Submit(c.Request().Context(), actor, ucRequest.SubmitInput(req))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *RequestHandler) Get(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	requestID, err := hexParam(c, "request_id")
	if err != nil {
		return err
	}
	dto, err := h.uc.Get(c.Request().Context(), actor, requestID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *RequestHandler) ListMine(c echo.Context) error {
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

// ListGroup accepts an optional ?status= filter.
func (h *RequestHandler) ListGroup(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	groupID, err := hexParam(c, "group_id")
	if err != nil {
		return err
	}
	list, err := h.uc.ListGroup(c.Request().Context(), actor, groupID, c.QueryParam("status"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, list)
}

// Quote: GET /requests/quote?amount=300&term=3
func (h *RequestHandler) Quote(c echo.Context) error {
	amount, err := decimal.NewFromString(c.QueryParam("amount"))
	if err != nil {
		return badRequest(c, "amount must be a decimal number")
	}
	term, err := strconv.Atoi(c.QueryParam("term"))
	if err != nil {
		return badRequest(c, "term must be an integer")
	}
	dto, err := h.uc.Quote(amount, term)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}
