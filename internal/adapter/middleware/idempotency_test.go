package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
)

const testIdemKey = "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"

// helper: new Echo with auth + idempotency and a simple route
func setupEcho(rdb *redis.Client, ttl time.Duration, handler echo.HandlerFunc) *echo.Echo {
	lg, _ := test.NewNullLogger()
	e := echo.New()
	e.HideBanner = true
	e.Use(Auth(testSecret, testIssuer))
	e.Use(Idempotency(rdb, ttl, lg))
	e.POST("/requests", handler)
	e.GET("/requests", handler)
	return e
}

func mkJSONBody(t *testing.T, v any) io.Reader {
	t.Helper()
	b, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return bytes.NewReader(b)
}

func doReq(t *testing.T, e *echo.Echo, method, path string, body io.Reader, hdr map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	for k, v := range hdr {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func newMiniredisClient(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis: %v", err)
	}
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return mr, rdb
}

func okCreatedHandler(c echo.Context) error {
	return c.JSON(http.StatusCreated, map[string]any{"ok": true})
}

func headers(t *testing.T) map[string]string {
	return map[string]string{
		echo.HeaderAuthorization: bearer(t, testMemberID),
		HeaderIdempotencyKey:     testIdemKey,
		HeaderRequestAt:          time.Now().UTC().Format(time.RFC3339),
	}
}

func Test_BypassOnGET_NoHeadersRequired(t *testing.T) {
	mr, rdb := newMiniredisClient(t)
	defer mr.Close()
	e := setupEcho(rdb, 30*time.Second, func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "get ok"})
	})
	rec := doReq(t, e, http.MethodGet, "/requests", nil, map[string]string{
		echo.HeaderAuthorization: bearer(t, testMemberID),
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func Test_ValidationFailures(t *testing.T) {
	mr, rdb := newMiniredisClient(t)
	defer mr.Close()
	e := setupEcho(rdb, 30*time.Second, okCreatedHandler)

	cases := []struct {
		name   string
		mutate func(h map[string]string)
	}{
		{"missing key", func(h map[string]string) { delete(h, HeaderIdempotencyKey) }},
		{"invalid key", func(h map[string]string) { h[HeaderIdempotencyKey] = "NOT-VALID" }},
		{"missing request-at", func(h map[string]string) { delete(h, HeaderRequestAt) }},
		{"invalid request-at", func(h map[string]string) { h[HeaderRequestAt] = "not-a-time" }},
		{"request-at skewed past", func(h map[string]string) {
			h[HeaderRequestAt] = time.Now().UTC().Add(-maxClockSkew - time.Minute).Format(time.RFC3339)
		}},
		{"request-at skewed future", func(h map[string]string) {
			h[HeaderRequestAt] = time.Now().UTC().Add(maxClockSkew + time.Minute).Format(time.RFC3339)
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h := headers(t)
			tc.mutate(h)
			rec := doReq(t, e, http.MethodPost, "/requests", mkJSONBody(t, map[string]int{"x": 1}), h)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("want 400, got %d body=%s", rec.Code, rec.Body.String())
			}
		})
	}
}

func Test_RequiresActor(t *testing.T) {
	mr, rdb := newMiniredisClient(t)
	defer mr.Close()
	lg, _ := test.NewNullLogger()

	e := echo.New()
	e.Use(Idempotency(rdb, time.Minute, lg))
	e.POST("/requests", okCreatedHandler)

	h := headers(t)
	delete(h, echo.HeaderAuthorization)
	rec := doReq(t, e, http.MethodPost, "/requests", mkJSONBody(t, map[string]int{"x": 1}), h)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("want 401, got %d", rec.Code)
	}
}

func Test_HappyPath_Then_Replay(t *testing.T) {
	mr, rdb := newMiniredisClient(t)
	defer mr.Close()

	var calls int32
	e := setupEcho(rdb, 2*time.Minute, func(c echo.Context) error {
		n := atomic.AddInt32(&calls, 1)
		return c.JSON(http.StatusCreated, map[string]any{"call": n})
	})

	h := headers(t)
	rec1 := doReq(t, e, http.MethodPost, "/requests", mkJSONBody(t, map[string]any{"amount": "300"}), h)
	if rec1.Code != http.StatusCreated {
		t.Fatalf("first request => want 201, got %d, body: %s", rec1.Code, rec1.Body.String())
	}

	rec2 := doReq(t, e, http.MethodPost, "/requests", mkJSONBody(t, map[string]any{"amount": "300"}), h)
	if rec2.Code != http.StatusCreated {
		t.Fatalf("replay => want 201, got %d, body: %s", rec2.Code, rec2.Body.String())
	}
	if rec1.Body.String() != rec2.Body.String() {
		t.Fatalf("replay body mismatch: %q vs %q", rec1.Body.String(), rec2.Body.String())
	}
	if got := atomic.LoadInt32(&calls); got != 1 {
		t.Fatalf("handler ran %d times, want 1", got)
	}
}

func Test_KeyIsScopedPerMember(t *testing.T) {
	mr, rdb := newMiniredisClient(t)
	defer mr.Close()

	var calls int32
	e := setupEcho(rdb, time.Minute, func(c echo.Context) error {
		atomic.AddInt32(&calls, 1)
		return c.JSON(http.StatusCreated, map[string]any{"ok": true})
	})

	h := headers(t)
	doReq(t, e, http.MethodPost, "/requests", mkJSONBody(t, map[string]int{"x": 1}), h)

	h[echo.HeaderAuthorization] = bearer(t, strings.Repeat("c", 32))
	rec := doReq(t, e, http.MethodPost, "/requests", mkJSONBody(t, map[string]int{"x": 1}), h)
	if rec.Code != http.StatusCreated {
		t.Fatalf("second member => want 201, got %d", rec.Code)
	}
	if got := atomic.LoadInt32(&calls); got != 2 {
		t.Fatalf("handler ran %d times, want 2", got)
	}
}

func Test_Conflict_When_InProgress(t *testing.T) {
	mr, rdb := newMiniredisClient(t)
	defer mr.Close()
	e := setupEcho(rdb, 2*time.Minute, okCreatedHandler)

	body := []byte(`{"x":1}`)
	key := buildKey(http.MethodPost, "/requests", testMemberID, testIdemKey)
	entry := idempEntry{
		InProgress:  true,
		BodySHA256:  bodyHash(body),
		Key:         testIdemKey,
		RequestAtMS: time.Now().UnixMilli(),
		CreatedAt:   time.Now().UTC(),
	}
	if ok, err := provisionalSet(context.Background(), rdb, key, entry); err != nil || !ok {
		t.Fatalf("seed provisional failed, ok=%v err=%v", ok, err)
	}

	rec := doReq(t, e, http.MethodPost, "/requests", bytes.NewReader(body), headers(t))
	if rec.Code != http.StatusConflict {
		t.Fatalf("in-progress => want 409, got %d body=%s", rec.Code, rec.Body.String())
	}
}

func Test_Conflict_When_SameKey_DifferentBody(t *testing.T) {
	mr, rdb := newMiniredisClient(t)
	defer mr.Close()
	e := setupEcho(rdb, 2*time.Minute, okCreatedHandler)

	key := buildKey(http.MethodPost, "/requests", testMemberID, testIdemKey)
	final := idempEntry{
		InProgress:  false,
		Code:        http.StatusCreated,
		Body:        []byte(`{"ok":true}`),
		BodySHA256:  bodyHash([]byte(`{"x":1}`)),
		Key:         testIdemKey,
		RequestAtMS: time.Now().UnixMilli(),
		CreatedAt:   time.Now().UTC(),
	}
	if err := saveFinal(context.Background(), rdb, key, final, 5*time.Minute); err != nil {
		t.Fatalf("seed final failed: %v", err)
	}

	rec := doReq(t, e, http.MethodPost, "/requests", bytes.NewReader([]byte(`{"x":2}`)), headers(t))
	if rec.Code != http.StatusConflict {
		t.Fatalf("different body same key => want 409, got %d", rec.Code)
	}
}

func Test_ServerError_ReleasesLock(t *testing.T) {
	mr, rdb := newMiniredisClient(t)
	defer mr.Close()

	var calls int32
	e := setupEcho(rdb, time.Minute, func(c echo.Context) error {
		if atomic.AddInt32(&calls, 1) == 1 {
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "boom"})
		}
		return c.JSON(http.StatusCreated, map[string]any{"ok": true})
	})

	h := headers(t)
	rec := doReq(t, e, http.MethodPost, "/requests", mkJSONBody(t, map[string]int{"x": 1}), h)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("first => want 500, got %d", rec.Code)
	}
	if mr.Exists(buildKey(http.MethodPost, "/requests", testMemberID, testIdemKey)) {
		t.Fatal("lock should be released after a server error")
	}

	rec = doReq(t, e, http.MethodPost, "/requests", mkJSONBody(t, map[string]int{"x": 1}), h)
	if rec.Code != http.StatusCreated {
		t.Fatalf("retry => want 201, got %d", rec.Code)
	}
}

func Test_StoreUnavailable_Returns503(t *testing.T) {
	rdb := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", MaxRetries: -1})
	lg, hook := test.NewNullLogger()

	e := echo.New()
	e.Use(Auth(testSecret, testIssuer))
	e.Use(Idempotency(rdb, time.Minute, lg))
	e.POST("/requests", okCreatedHandler)

	rec := doReq(t, e, http.MethodPost, "/requests", bytes.NewReader([]byte(`{}`)), headers(t))
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("store unavailable => want 503, got %d", rec.Code)
	}
	if last := hook.LastEntry(); last == nil || last.Level != logrus.WarnLevel {
		t.Fatalf("expected a warning to be logged, got %+v", last)
	}
}
