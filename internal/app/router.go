package app

import (
	"io/fs"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/odyssey-erp/trade-admin/internal/crud"
	"github.com/odyssey-erp/trade-admin/internal/observability"
	"github.com/odyssey-erp/trade-admin/internal/offer"
	"github.com/odyssey-erp/trade-admin/internal/selector"
	"github.com/odyssey-erp/trade-admin/internal/settings"
	"github.com/odyssey-erp/trade-admin/internal/shared"
	"github.com/odyssey-erp/trade-admin/internal/view"
	"github.com/odyssey-erp/trade-admin/report"
	"github.com/odyssey-erp/trade-admin/web"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger         *slog.Logger
	Config         *Config
	Templates      *view.Engine
	SessionManager *shared.SessionManager
	CSRFManager    *shared.CSRFManager

	// Pages are the master data screens, mounted under their own path
	// in navigation order.
	Pages           []crud.Page
	SettingsHandler *settings.Handler
	OfferHandler    *offer.Handler
	OptionsHandler  *selector.Handler
	ReportHandler   *report.Handler
	Metrics         *observability.Metrics
}

// Navigation lists the side menu entries for the given screens.
func Navigation(params RouterParams) []view.NavItem {
	var nav []view.NavItem
	for _, p := range params.Pages {
		nav = append(nav, view.NavItem{Title: p.Title(), Path: p.Path()})
	}
	if params.OfferHandler != nil {
		nav = append(nav, view.NavItem{Title: params.OfferHandler.Title(), Path: params.OfferHandler.Path()})
	}
	if params.SettingsHandler != nil {
		nav = append(nav, view.NavItem{Title: params.SettingsHandler.Title(), Path: params.SettingsHandler.Path()})
	}
	return nav
}

// NewRouter constructs the chi.Router with console defaults.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	if params.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", params.Metrics.Handler())
	}

	staticFS, err := fs.Sub(web.Static, "static")
	if err != nil {
		params.Logger.Error("create static sub filesystem", slog.Any("error", err))
	} else {
		// static assets skip sessions, csrf and rate limiting
		fileServer := http.StripPrefix("/static/", http.FileServer(http.FS(staticFS)))
		r.Handle("/static/*", staticCacheHandler(fileServer))
	}

	r.Group(func(r chi.Router) {
		for _, mw := range MiddlewareStack(MiddlewareConfig{
			Logger:         params.Logger,
			Config:         params.Config,
			SessionManager: params.SessionManager,
			CSRFManager:    params.CSRFManager,
			Metrics:        params.Metrics,
		}) {
			r.Use(mw)
		}
		r.Use(chimw.Logger)

		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			if err := params.Templates.Page(w, r, params.CSRFManager, "pages/home.html", "Trade Admin", http.StatusOK, nil); err != nil {
				params.Logger.Error("render home", slog.Any("error", err))
			}
		})

		for _, p := range params.Pages {
			r.Route(p.Path(), p.MountRoutes)
		}
		if params.SettingsHandler != nil {
			r.Route(params.SettingsHandler.Path(), params.SettingsHandler.MountRoutes)
		}
		if params.OfferHandler != nil {
			params.OfferHandler.MountRoutes(r)
		}
		if params.OptionsHandler != nil {
			r.Route("/options", params.OptionsHandler.MountRoutes)
		}
		if params.ReportHandler != nil {
			r.Route("/report", params.ReportHandler.MountRoutes)
		}
	})

	return r
}

// staticCacheHandler wraps a file server with Cache-Control headers.
func staticCacheHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "public, max-age=3600")
		next.ServeHTTP(w, r)
	})
}
