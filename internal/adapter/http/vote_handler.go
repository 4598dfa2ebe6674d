package http

import (
	"net/http"

	ucVote "microcredit-coop/internal/usecase/vote"

	"github.com/labstack/echo/v4"
)

type VoteHandler struct{ uc *ucVote.Usecase }

func NewVoteHandler(uc *ucVote.Usecase) *VoteHandler { return &VoteHandler{uc: uc} }

type castVoteReq struct {
	// pointer so that an explicit false still passes "required"
	Approve *bool `json:"approve" validate:"required"`
}

func (h *VoteHandler) Cast(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	requestID, err := hexParam(c, "request_id")
	if err != nil {
		return err
	}
	var req castVoteReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}
	if err := c.Validate(&req); err != nil {
		return validationFailed(c, err)
	}
	res, err := h.uc.Cast(c.Request().Context(), actor, requestID, *req.Approve)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, res)
}

func (h *VoteHandler) List(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	requestID, err := hexParam(c, "request_id")
	if err != nil {
		return err
	}
	list, err := h.uc.List(c.Request().Context(), actor, requestID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, list)
}
