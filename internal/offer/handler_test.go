package offer

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/odyssey-erp/trade-admin/internal/apiclient"
	"github.com/odyssey-erp/trade-admin/internal/shared"
	"github.com/odyssey-erp/trade-admin/internal/view"
)

type testConsole struct {
	router   http.Handler
	sessions *shared.SessionManager
	source   *fakeSource
	renderer *fakeRenderer
}

func newTestConsole(t *testing.T) *testConsole {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	sessions := shared.NewSessionManager(client, "test_session", time.Hour, false)

	engine, err := view.NewEngine()
	require.NoError(t, err)

	c := &testConsole{
		sessions: sessions,
		source:   &fakeSource{doc: sampleDocument(), lines: sampleLines()},
		renderer: &fakeRenderer{},
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	exporter := newTestExporter(c.source, fakeLogo{}, c.renderer, nil)
	h := NewHandler(logger, exporter, NewPreviewStore(client, time.Minute), engine, shared.NewCSRFManager("secret"), English)

	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			sess, err := sessions.Load(req.Context(), req)
			require.NoError(t, err)
			next.ServeHTTP(w, req.WithContext(shared.ContextWithSession(req.Context(), sess)))
			require.NoError(t, sessions.Commit(req.Context(), httptest.NewRecorder(), sess))
		})
	})
	h.MountRoutes(r)
	c.router = r
	return c
}

// login opens a session and returns its cookie.
func (c *testConsole) login(t *testing.T) *http.Cookie {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	sess, err := c.sessions.Load(req.Context(), req)
	require.NoError(t, err)
	rr := httptest.NewRecorder()
	require.NoError(t, c.sessions.Commit(req.Context(), rr, sess))
	cookies := rr.Result().Cookies()
	require.NotEmpty(t, cookies)
	return cookies[0]
}

func (c *testConsole) do(cookie *http.Cookie, method, target string, form url.Values) *httptest.ResponseRecorder {
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req := httptest.NewRequest(method, target, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	req.AddCookie(cookie)
	rr := httptest.NewRecorder()
	c.router.ServeHTTP(rr, req)
	return rr
}

var previewSrc = regexp.MustCompile(`src="(/previews/[^"]+)"`)

func previewHref(t *testing.T, body string) string {
	t.Helper()
	m := previewSrc.FindStringSubmatch(body)
	require.Len(t, m, 2, "preview iframe missing")
	return m[1]
}

func TestShowRendersPreviewOnce(t *testing.T) {
	c := newTestConsole(t)
	alice := c.login(t)

	rr := c.do(alice, http.MethodGet, "/sales-offers/SO-1001", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	href := previewHref(t, rr.Body.String())
	assert.Contains(t, rr.Body.String(), "SO-1001.pdf")

	rr = c.do(alice, http.MethodGet, "/sales-offers/SO-1001?lang=en", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, href, previewHref(t, rr.Body.String()))
	assert.Equal(t, 1, c.renderer.calls)

	pdf := c.do(alice, http.MethodGet, href, nil)
	require.Equal(t, http.StatusOK, pdf.Code)
	assert.Equal(t, "application/pdf", pdf.Header().Get("Content-Type"))
	assert.True(t, strings.HasPrefix(pdf.Header().Get("Content-Disposition"), "inline"))
	assert.Equal(t, "%PDF-fake SO-1001", pdf.Body.String())
}

func TestSwitchingLanguageReplacesPreview(t *testing.T) {
	c := newTestConsole(t)
	alice := c.login(t)

	first := previewHref(t, c.do(alice, http.MethodGet, "/sales-offers/SO-1001", nil).Body.String())
	rr := c.do(alice, http.MethodGet, "/sales-offers/SO-1001?lang=pl", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	second := previewHref(t, rr.Body.String())

	assert.NotEqual(t, first, second)
	assert.Equal(t, Polish, c.renderer.layout.Language)
	assert.Equal(t, http.StatusNotFound, c.do(alice, http.MethodGet, first, nil).Code)
	assert.Equal(t, http.StatusOK, c.do(alice, http.MethodGet, second, nil).Code)
}

func TestRenderForcesNewPreview(t *testing.T) {
	c := newTestConsole(t)
	alice := c.login(t)

	first := previewHref(t, c.do(alice, http.MethodGet, "/sales-offers/SO-1001", nil).Body.String())
	rr := c.do(alice, http.MethodPost, "/sales-offers/SO-1001/render", url.Values{"lang": {"en"}})
	require.Equal(t, http.StatusOK, rr.Code)

	assert.NotEqual(t, first, previewHref(t, rr.Body.String()))
	assert.Equal(t, 2, c.renderer.calls)
}

func TestPreviewBelongsToSession(t *testing.T) {
	c := newTestConsole(t)
	alice := c.login(t)
	bob := c.login(t)

	href := previewHref(t, c.do(alice, http.MethodGet, "/sales-offers/SO-1001", nil).Body.String())

	assert.Equal(t, http.StatusNotFound, c.do(bob, http.MethodGet, href, nil).Code)
	assert.Equal(t, http.StatusNotFound, c.do(alice, http.MethodGet, "/previews/unknown", nil).Code)
}

func TestExportFailureShowsMessage(t *testing.T) {
	c := newTestConsole(t)
	c.source.docErr = &apiclient.APIError{Status: http.StatusNotFound, Message: "Offer SO-404 does not exist"}
	alice := c.login(t)

	rr := c.do(alice, http.MethodGet, "/sales-offers/SO-404", nil)

	assert.Equal(t, http.StatusBadGateway, rr.Code)
	body := rr.Body.String()
	assert.Contains(t, body, "Offer SO-404 does not exist")
	assert.NotContains(t, body, "/previews/")
}

func TestExportFailureWithoutMessage(t *testing.T) {
	c := newTestConsole(t)
	c.source.linesErr = errors.New("connection reset")
	alice := c.login(t)

	rr := c.do(alice, http.MethodGet, "/sales-offers/SO-1001", nil)

	assert.Equal(t, http.StatusBadGateway, rr.Code)
	assert.Contains(t, rr.Body.String(), shared.MsgRequestFailed)
}

func TestDownload(t *testing.T) {
	c := newTestConsole(t)
	alice := c.login(t)

	rr := c.do(alice, http.MethodGet, "/sales-offers/SO-1001/download", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, `attachment; filename="SO-1001.pdf"`, rr.Header().Get("Content-Disposition"))
	assert.Equal(t, "%PDF-fake SO-1001", rr.Body.String())
	assert.Equal(t, 1, c.renderer.calls)

	c.do(alice, http.MethodGet, "/sales-offers/SO-1001", nil)
	rr = c.do(alice, http.MethodGet, "/sales-offers/SO-1001/download", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, 2, c.renderer.calls)
}

func TestReleaseDropsPreview(t *testing.T) {
	c := newTestConsole(t)
	alice := c.login(t)

	href := previewHref(t, c.do(alice, http.MethodGet, "/sales-offers/SO-1001", nil).Body.String())
	rr := c.do(alice, http.MethodPost, "/sales-offers/SO-1001/release", url.Values{})

	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, http.StatusNotFound, c.do(alice, http.MethodGet, href, nil).Code)
}

func TestLookupRedirectsToDocument(t *testing.T) {
	c := newTestConsole(t)
	alice := c.login(t)

	rr := c.do(alice, http.MethodGet, "/sales-offers?documentNo=+SO-7+&lang=pl", nil)
	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/sales-offers/SO-7?lang=pl", rr.Header().Get("Location"))

	rr = c.do(alice, http.MethodGet, "/sales-offers?documentNo=", nil)
	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/sales-offers", rr.Header().Get("Location"))

	rr = c.do(alice, http.MethodGet, "/sales-offers", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestDocumentNamedOpenIsShown(t *testing.T) {
	c := newTestConsole(t)
	alice := c.login(t)

	rr := c.do(alice, http.MethodGet, "/sales-offers/open", nil)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.NotEmpty(t, previewHref(t, rr.Body.String()))
}
