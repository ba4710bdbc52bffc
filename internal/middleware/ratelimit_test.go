package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"
)

// doRequest runs a single request from the given IP through the middleware.
func doRequest(e *echo.Echo, mw echo.MiddlewareFunc, ip string) int {
	req := httptest.NewRequest(http.MethodPost, "/login", nil)
	req.RemoteAddr = ip + ":12345"
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := mw(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec.Code
}

func TestRateLimit_AllowsWithinBurst(t *testing.T) {
	e := echo.New()
	mw := RateLimit(5, time.Minute)

	for i := 0; i < 5; i++ {
		if code := doRequest(e, mw, "192.0.2.1"); code != http.StatusOK {
			t.Fatalf("request %d rejected with %d, expected 200", i+1, code)
		}
	}
}

func TestRateLimit_RejectsOverBurst(t *testing.T) {
	e := echo.New()
	mw := RateLimit(3, time.Minute)

	for i := 0; i < 3; i++ {
		doRequest(e, mw, "192.0.2.2")
	}
	if code := doRequest(e, mw, "192.0.2.2"); code != http.StatusTooManyRequests {
		t.Errorf("expected 429 after burst exhausted, got %d", code)
	}
}

func TestIPLimiter_EvictsIdleEntries(t *testing.T) {
	l := newIPLimiter(rate.Every(time.Second), 1)
	defer l.close()

	l.allow("192.0.2.8")
	l.evictIdle(time.Now().Add(time.Minute))

	l.mu.Lock()
	_, ok := l.limiters["192.0.2.8"]
	l.mu.Unlock()
	if ok {
		t.Error("idle entry survived eviction")
	}
}

func TestIPLimiter_UsableAfterClose(t *testing.T) {
	l := newIPLimiter(rate.Every(time.Second), 1)
	l.close()

	if !l.allow("192.0.2.9") {
		t.Error("fresh bucket should allow its first request after close")
	}
}

func TestRateLimit_TracksIPsIndependently(t *testing.T) {
	e := echo.New()
	mw := RateLimit(1, time.Minute)

	doRequest(e, mw, "192.0.2.3")
	if code := doRequest(e, mw, "192.0.2.4"); code != http.StatusOK {
		t.Errorf("second IP should not share the first IP's bucket, got %d", code)
	}
}
