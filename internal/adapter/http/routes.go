package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

type Routes struct {
	Health   *Handler
	Requests *RequestHandler
	Votes    *VoteHandler
	Members  *MemberHandler
	Payments *PaymentHandler
	Reports  *ReportHandler
}

// Register mounts /health openly and every other route behind mw
// (auth first, then idempotency).
func (r Routes) Register(e *echo.Echo, mw ...echo.MiddlewareFunc) {
	e.GET("/health", r.Health.Health)

	add := func(method, path string, h echo.HandlerFunc) { e.Add(method, path, h, mw...) }

	add(http.MethodGet, "/me", r.Members.Me)
	add(http.MethodPut, "/me", r.Members.UpsertProfile)
	add(http.MethodGet, "/me/requests", r.Requests.ListMine)
	add(http.MethodGet, "/me/payments", r.Payments.ListMine)
	add(http.MethodGet, "/groups/:group_id/members", r.Members.GroupMembers)
	add(http.MethodGet, "/groups/:group_id/requests", r.Requests.ListGroup)

	add(http.MethodPost, "/requests", r.Requests.Submit)
	add(http.MethodGet, "/requests/quote", r.Requests.Quote)
	add(http.MethodGet, "/requests/:request_id", r.Requests.Get)
	add(http.MethodPost, "/requests/:request_id/votes", r.Votes.Cast)
	add(http.MethodGet, "/requests/:request_id/votes", r.Votes.List)

	add(http.MethodPost, "/payments/:payment_id/pay", r.Payments.MarkPaid)

	add(http.MethodGet, "/reports/summary", r.Reports.Summary)
}
