package http

import (
	"net/http"

	ucMember "microcredit-coop/internal/usecase/member"

	"github.com/labstack/echo/v4"
)

type MemberHandler struct{ uc *ucMember.Usecase }

func NewMemberHandler(uc *ucMember.Usecase) *MemberHandler { return &MemberHandler{uc: uc} }

type upsertProfileReq struct {
	DisplayName string  `json:"display_name" validate:"required,max=120"`
	Role        string  `json:"role"         validate:"omitempty,oneof=leader treasurer member"`
	GroupID     *string `json:"group_id"     validate:"omitempty,hex32"`
}

func (h *MemberHandler) Me(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	dto, err := h.uc.Me(c.Request().Context(), actor)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *MemberHandler) UpsertProfile(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	var req upsertProfileReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}
	if err := c.Validate(&req); err != nil {
		return validationFailed(c, err)
	}
	dto, err := h.uc.UpsertProfile(c.Request().Context(), actor, ucMember.ProfileInput(req))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *MemberHandler) GroupMembers(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	groupID, err := hexParam(c, "group_id")
	if err != nil {
		return err
	}
	list, err := h.uc.GroupMembers(c.Request().Context(), actor, groupID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, list)
}
