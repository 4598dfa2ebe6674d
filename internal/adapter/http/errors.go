package http

import (
	"errors"
	"net/http"

	"microcredit-coop/internal/domain/member"
	"microcredit-coop/internal/domain/payment"
	"microcredit-coop/internal/domain/report"
	"microcredit-coop/internal/domain/request"
	"microcredit-coop/internal/domain/tally"
	"microcredit-coop/internal/domain/vote"

	"github.com/labstack/echo/v4"
)

// statusFor maps domain errors → HTTP codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, vote.ErrSelfVote),
		errors.Is(err, member.ErrNotGroupMember),
		errors.Is(err, payment.ErrNotOwner):
		return http.StatusForbidden
	case errors.Is(err, request.ErrNotFound),
		errors.Is(err, member.ErrNotFound),
		errors.Is(err, payment.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, vote.ErrDuplicateVote),
		errors.Is(err, request.ErrVotingClosed),
		errors.Is(err, tally.ErrRequestFinalized),
		errors.Is(err, request.ErrOpenRequestExists),
		errors.Is(err, payment.ErrAlreadyPaid):
		return http.StatusConflict
	case errors.Is(err, request.ErrInvalid),
		errors.Is(err, member.ErrInvalidProfile),
		errors.Is(err, member.ErrNoGroup),
		errors.Is(err, report.ErrInvalidRange):
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

// writeError answers client errors directly. Anything else goes back to
// echo as a generic 500 with the cause attached.
func writeError(c echo.Context, err error) error {
	code := statusFor(err)
	if code == http.StatusInternalServerError {
		return echo.NewHTTPError(code, ErrorResponse{Error: "internal error"}).SetInternal(err)
	}
	return c.JSON(code, ErrorResponse{Error: err.Error()})
}

func badRequest(c echo.Context, msg string) error {
	return c.JSON(http.StatusBadRequest, ErrorResponse{Error: msg})
}

func validationFailed(c echo.Context, err error) error {
	return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
		Error:   "validation failed",
		Details: ToFieldErrors(err),
	})
}
