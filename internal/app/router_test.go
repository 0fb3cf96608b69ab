package app

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/odyssey-erp/trade-admin/internal/apiclient"
	"github.com/odyssey-erp/trade-admin/internal/settings"
	"github.com/odyssey-erp/trade-admin/internal/shared"
	_ "github.com/odyssey-erp/trade-admin/internal/testing/guard"
	"github.com/odyssey-erp/trade-admin/internal/view"
)

func newTestRouter(t *testing.T) (http.Handler, *int) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	saves := 0
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPut {
			saves++
		}
		_, _ = w.Write([]byte(`{"transportCostPerKm": 2.5}`))
	}))
	t.Cleanup(backend.Close)

	engine, err := view.NewEngine()
	require.NoError(t, err)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	csrf := shared.NewCSRFManager("secret")
	api := apiclient.New(backend.URL)

	params := RouterParams{
		Logger:          logger,
		Config:          &Config{AppEnv: "development", RateLimitPerMin: 1000},
		Templates:       engine,
		SessionManager:  shared.NewSessionManager(client, "test_session", time.Hour, false),
		CSRFManager:     csrf,
		SettingsHandler: settings.NewHandler(logger, apiclient.NewSettingsClient(api), engine, csrf),
	}
	engine.SetNav(Navigation(params))
	return NewRouter(params), &saves
}

func TestHealthz(t *testing.T) {
	router, _ := newTestRouter(t)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rr.Body.String())
}

func TestHomeRendersNavigationWithSecurityHeaders(t *testing.T) {
	router, _ := newTestRouter(t)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `href="/settings"`)
	assert.Equal(t, "SAMEORIGIN", rr.Header().Get("X-Frame-Options"))
	assert.Contains(t, rr.Header().Get("Content-Security-Policy"), "frame-ancestors 'self'")
	assert.Equal(t, "nosniff", rr.Header().Get("X-Content-Type-Options"))
	assert.NotEmpty(t, rr.Result().Cookies())
}

func TestStaticAssetsAreCached(t *testing.T) {
	router, _ := newTestRouter(t)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/static/js/selector.js", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "public, max-age=3600", rr.Header().Get("Cache-Control"))
	assert.Empty(t, rr.Result().Cookies())
}

func TestPostWithoutCSRFTokenIsRejected(t *testing.T) {
	router, saves := newTestRouter(t)
	req := httptest.NewRequest(http.MethodPost, "/settings", strings.NewReader(url.Values{"transportCostPerKm": {"3"}}.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusForbidden, rr.Code)
	assert.Zero(t, *saves)
}

func TestInTestModeFromGuard(t *testing.T) {
	RefreshTestMode()
	assert.True(t, InTestMode())
}
