package http

import (
	"net/http"
	"time"

	ucReport "microcredit-coop/internal/usecase/report"

	"github.com/labstack/echo/v4"
)

type ReportHandler struct{ uc *ucReport.Usecase }

func NewReportHandler(uc *ucReport.Usecase) *ReportHandler { return &ReportHandler{uc: uc} }

// Summary: GET /reports/summary?group_id=&from=&to=
// from/to accept YYYY-MM-DD (to covers the whole day) or RFC3339.
func (h *ReportHandler) Summary(c echo.Context) error {
	if _, err := actorFrom(c); err != nil {
		return err
	}
	in := ucReport.SummaryInput{GroupID: c.QueryParam("group_id")}
	if in.GroupID != "" && !reHex32.MatchString(in.GroupID) {
		return badRequest(c, "group_id must be 32-char lowercase hex")
	}
	var err error
	if in.From, err = parseDay(c.QueryParam("from"), false); err != nil {
		return badRequest(c, "from must be YYYY-MM-DD or RFC3339")
	}
	if in.To, err = parseDay(c.QueryParam("to"), true); err != nil {
		return badRequest(c, "to must be YYYY-MM-DD or RFC3339")
	}
	dto, err := h.uc.Summary(c.Request().Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func parseDay(raw string, endOfDay bool) (time.Time, error) {
	if raw == "" {
		return time.Time{}, nil
	}
	if d, err := time.Parse(time.DateOnly, raw); err == nil {
		if endOfDay {
			return d.AddDate(0, 0, 1).Add(-time.Nanosecond), nil
		}
		return d, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}
