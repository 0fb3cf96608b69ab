package view

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/odyssey-erp/trade-admin/internal/shared"
)

func TestNewEngine(t *testing.T) {
	engine, err := NewEngine()
	assert.NoError(t, err, "Templates should parse without error")
	assert.NotNil(t, engine)
}

func TestRenderHomeShowsNavAndFlash(t *testing.T) {
	engine, err := NewEngine()
	require.NoError(t, err)
	engine.SetNav([]NavItem{{Title: "Transports", Path: "/transports"}})

	rr := httptest.NewRecorder()
	err = engine.Render(rr, "pages/home.html", TemplateData{
		Title: "Trade Admin",
		Flash: &shared.FlashMessage{Kind: shared.NoticeSuccess, Message: "Record created."},
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rr.Code)
	body := rr.Body.String()
	assert.Contains(t, body, `href="/transports"`)
	assert.Contains(t, body, "Record created.")
}

func TestNilEngineRender(t *testing.T) {
	var engine *Engine
	err := engine.Render(httptest.NewRecorder(), "pages/home.html", TemplateData{})
	assert.Error(t, err)
}
