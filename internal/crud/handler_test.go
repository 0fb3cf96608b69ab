package crud

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
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

type widget struct {
	ID          string `json:"_id"`
	Code        string `json:"code"`
	Description string `json:"description"`
	Kind        string `json:"kind"`
}

type widgetForm struct {
	Code        string `form:"code" json:"code" validate:"required"`
	Description string `form:"description" json:"description" validate:"required"`
	Kind        string `form:"kind" json:"kind"`
}

type backendCall struct {
	Method string
	Path   string
	Query  url.Values
	Body   string
}

type fakeBackend struct {
	mu     sync.Mutex
	calls  []backendCall
	server *httptest.Server
	handle func(w http.ResponseWriter, r *http.Request)
}

func newFakeBackend(t *testing.T, handle func(w http.ResponseWriter, r *http.Request)) *fakeBackend {
	t.Helper()
	fb := &fakeBackend{handle: handle}
	fb.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		fb.mu.Lock()
		fb.calls = append(fb.calls, backendCall{Method: r.Method, Path: r.URL.Path, Query: r.URL.Query(), Body: string(body)})
		fb.mu.Unlock()
		fb.handle(w, r)
	}))
	t.Cleanup(fb.server.Close)
	return fb
}

func (fb *fakeBackend) Calls() []backendCall {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	return append([]backendCall(nil), fb.calls...)
}

func widgetResource(client *apiclient.Client) *Resource[widget, widgetForm] {
	kinds := []Choice{{Value: "small", Label: "Small"}, {Value: "large", Label: "Large"}}
	return &Resource[widget, widgetForm]{
		Title:      "Widgets",
		Singular:   "widget",
		Path:       "/widgets",
		Collection: apiclient.NewCollection[widget](client, "widgets"),
		Searchable: true,
		Columns: []Column[widget]{
			{Key: "code", Label: "Code", Sortable: true, Cell: func(w widget) string { return w.Code }},
			{Key: "description", Label: "Description", Sortable: true, Cell: func(w widget) string { return w.Description }},
		},
		Fields: []Field{
			{Name: "code", Label: "Code", Kind: KindText, Required: true, Uppercase: true},
			{Name: "description", Label: "Description", Kind: KindText, Required: true},
			{Name: "kind", Label: "Kind", Kind: KindSelect, Choices: kinds},
		},
		Filters: []Filter{{Key: "kind", Label: "Kind", Choices: kinds}},
		ID:      func(w widget) string { return w.ID },
		Detail: func(w widget) []DetailRow {
			return []DetailRow{{Label: "Kind", Value: ChoiceLabel(kinds, w.Kind)}}
		},
		Values: func(w widget) url.Values {
			return url.Values{"code": {w.Code}, "description": {w.Description}, "kind": {w.Kind}}
		},
		Decode: func(v url.Values) (widgetForm, error) {
			return widgetForm{Code: v.Get("code"), Description: v.Get("description"), Kind: v.Get("kind")}, nil
		},
	}
}

type testConsole struct {
	router   http.Handler
	sessions *shared.SessionManager
	backend  *fakeBackend
}

func newTestConsole(t *testing.T, handle func(w http.ResponseWriter, r *http.Request)) *testConsole {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	sessions := shared.NewSessionManager(client, "test_session", time.Hour, false)

	engine, err := view.NewEngine()
	require.NoError(t, err)

	backend := newFakeBackend(t, handle)
	api := apiclient.New(backend.server.URL)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	h := NewHandler(logger, widgetResource(api), engine, shared.NewCSRFManager("secret"), nil)

	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			sess, err := sessions.Load(req.Context(), req)
			require.NoError(t, err)
			next.ServeHTTP(w, req.WithContext(shared.ContextWithSession(req.Context(), sess)))
			require.NoError(t, sessions.Commit(req.Context(), httptest.NewRecorder(), sess))
		})
	})
	r.Route(h.Path(), h.MountRoutes)
	return &testConsole{router: r, sessions: sessions, backend: backend}
}

func (c *testConsole) do(method, target string, form url.Values) *httptest.ResponseRecorder {
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req := httptest.NewRequest(method, target, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	rr := httptest.NewRecorder()
	c.router.ServeHTTP(rr, req)
	return rr
}

func listResponse(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"data": []widget{
			{ID: "w1", Code: "BOLT", Description: "Hex bolt", Kind: "small"},
			{ID: "w2", Code: "BEAM", Description: "", Kind: "large"},
		},
		"total": 2, "page": 1, "pages": 1,
	})
}

func TestListRendersRowsAndSortLinks(t *testing.T) {
	c := newTestConsole(t, listResponse)

	rr := c.do(http.MethodGet, "/widgets?sort=code&kind=small", nil)

	require.Equal(t, http.StatusOK, rr.Code)
	body := rr.Body.String()
	assert.Contains(t, body, "BOLT")
	assert.Contains(t, body, "Hex bolt")
	assert.Contains(t, body, view.Dash)
	assert.Contains(t, body, "/widgets?dir=desc&amp;kind=small&amp;sort=code")
	assert.Contains(t, body, "▲")

	calls := c.backend.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "/api/widgets", calls[0].Path)
	assert.Equal(t, url.Values{
		"page":  {"1"},
		"limit": {"10"},
		"sort":  {"code:1"},
		"kind":  {"small"},
	}, calls[0].Query)
}

func TestListFailureShowsNoticeWithoutRows(t *testing.T) {
	c := newTestConsole(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	rr := c.do(http.MethodGet, "/widgets", nil)

	assert.Equal(t, http.StatusBadGateway, rr.Code)
	body := rr.Body.String()
	assert.Contains(t, body, shared.MsgRequestFailed)
	assert.Contains(t, body, "No records.")
}

func TestCreateWithBlankRequiredFieldSendsNothing(t *testing.T) {
	c := newTestConsole(t, listResponse)

	rr := c.do(http.MethodPost, "/widgets", url.Values{"code": {"bolt"}, "description": {"  "}})

	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	body := rr.Body.String()
	assert.Contains(t, body, shared.MsgRequiredFields)
	assert.Contains(t, body, `value="BOLT"`)
	assert.Empty(t, c.backend.Calls())
}

func TestCreateUppercasesAndReturnsToFirstPage(t *testing.T) {
	c := newTestConsole(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			w.WriteHeader(http.StatusCreated)
			_, _ = w.Write([]byte(`{"_id":"w3","code":"NUT"}`))
			return
		}
		listResponse(w, r)
	})

	rr := c.do(http.MethodPost, "/widgets", url.Values{
		"code":        {" nut "},
		"description": {"Hex nut"},
		"return":      {"page=3&sort=code&dir=desc"},
	})

	require.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/widgets?dir=desc&sort=code", rr.Header().Get("Location"))

	calls := c.backend.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, http.MethodPost, calls[0].Method)
	assert.JSONEq(t, `{"code":"NUT","description":"Hex nut","kind":""}`, calls[0].Body)

	follow := c.do(http.MethodGet, rr.Header().Get("Location"), nil)
	require.Equal(t, http.StatusOK, follow.Code)
	calls = c.backend.Calls()
	require.Len(t, calls, 2)
	assert.Equal(t, http.MethodGet, calls[1].Method)
	assert.Equal(t, "1", calls[1].Query.Get("page"))
}

func TestCreateShowsBackendMessage(t *testing.T) {
	c := newTestConsole(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"message":"Code already exists"}`))
	})

	rr := c.do(http.MethodPost, "/widgets", url.Values{"code": {"BOLT"}, "description": {"Hex bolt"}})

	assert.Equal(t, http.StatusBadGateway, rr.Code)
	assert.Contains(t, rr.Body.String(), "Code already exists")
}

func TestEditPrefillsAndUpdates(t *testing.T) {
	c := newTestConsole(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			_, _ = w.Write([]byte(`{"_id":"w1","code":"BOLT","description":"Hex bolt","kind":"small"}`))
		case http.MethodPut:
			_, _ = w.Write([]byte(`{"_id":"w1"}`))
		}
	})

	rr := c.do(http.MethodGet, "/widgets/w1/edit", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `value="Hex bolt"`)
	assert.Contains(t, rr.Body.String(), `action="/widgets/w1/edit"`)

	rr = c.do(http.MethodPost, "/widgets/w1/edit", url.Values{"code": {"bolt"}, "description": {"Hex bolt M8"}, "kind": {"small"}})
	require.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/widgets", rr.Header().Get("Location"))

	calls := c.backend.Calls()
	require.Len(t, calls, 2)
	assert.Equal(t, http.MethodPut, calls[1].Method)
	assert.Equal(t, "/api/widgets/w1", calls[1].Path)
	assert.JSONEq(t, `{"code":"BOLT","description":"Hex bolt M8","kind":"small"}`, calls[1].Body)
}

func TestDeleteRequiresConfirmation(t *testing.T) {
	c := newTestConsole(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	rr := c.do(http.MethodPost, "/widgets/w1/delete", url.Values{})
	require.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Empty(t, c.backend.Calls())

	rr = c.do(http.MethodPost, "/widgets/w1/delete", url.Values{"confirm": {"yes"}})
	require.Equal(t, http.StatusSeeOther, rr.Code)
	calls := c.backend.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, http.MethodDelete, calls[0].Method)
	assert.Equal(t, "/api/widgets/w1", calls[0].Path)
}

func TestDeleteConfirmationPageShowsSummary(t *testing.T) {
	c := newTestConsole(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"_id":"w1","code":"BOLT","kind":"large"}`))
	})

	rr := c.do(http.MethodGet, "/widgets/w1/delete", nil)

	require.Equal(t, http.StatusOK, rr.Code)
	body := rr.Body.String()
	assert.Contains(t, body, "Large")
	assert.Contains(t, body, `name="confirm" value="yes"`)
}

func TestNormalizeTrimsAndUppercases(t *testing.T) {
	res := widgetResource(apiclient.New("http://backend.invalid"))
	out := res.Normalize(url.Values{"code": {" ab-1 "}, "description": {" x "}, "other": {"ignored"}})
	assert.Equal(t, url.Values{"code": {"AB-1"}, "description": {"x"}}, out)
}
