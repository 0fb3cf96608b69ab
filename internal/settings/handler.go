// Package settings serves the console settings page.
package settings

import (
	"errors"
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/odyssey-erp/trade-admin/internal/apiclient"
	"github.com/odyssey-erp/trade-admin/internal/shared"
	"github.com/odyssey-erp/trade-admin/internal/view"
)

// ErrInvalidCost rejects a transport cost that is not a finite,
// non-negative number.
var ErrInvalidCost = errors.New("transport cost per km must be a non-negative number")

const invalidCostMessage = "Transport cost per km must be a non-negative number."

// Handler manages the settings page.
type Handler struct {
	logger    *slog.Logger
	client    *apiclient.SettingsClient
	templates *view.Engine
	csrf      *shared.CSRFManager
}

type pageData struct {
	Value       string
	Error       string
	Unavailable bool
}

// NewHandler builds Handler instance.
func NewHandler(logger *slog.Logger, client *apiclient.SettingsClient, templates *view.Engine, csrf *shared.CSRFManager) *Handler {
	return &Handler{logger: logger, client: client, templates: templates, csrf: csrf}
}

// Path returns the console path of the page.
func (h *Handler) Path() string { return "/settings" }

// Title returns the navigation title.
func (h *Handler) Title() string { return "Settings" }

// MountRoutes registers settings routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.show)
	r.Post("/", h.save)
}

// ParseCost validates a submitted transport cost.
func ParseCost(raw string) (float64, error) {
	raw = strings.TrimSpace(strings.Replace(raw, ",", ".", 1))
	if raw == "" {
		return 0, ErrInvalidCost
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0, ErrInvalidCost
	}
	return v, nil
}

func (h *Handler) show(w http.ResponseWriter, r *http.Request) {
	s, err := h.client.Get(r.Context())
	if err != nil {
		h.logger.Error("load settings", slog.Any("error", err))
		h.render(w, r, http.StatusBadGateway, pageData{
			Error:       apiclient.UserMessage(err, shared.MsgRequestFailed),
			Unavailable: true,
		})
		return
	}
	h.render(w, r, http.StatusOK, pageData{Value: strconv.FormatFloat(s.TransportCostPerKm, 'f', -1, 64)})
}

func (h *Handler) save(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	raw := r.PostFormValue("transportCostPerKm")
	cost, err := ParseCost(raw)
	if err != nil {
		h.render(w, r, http.StatusUnprocessableEntity, pageData{Value: raw, Error: invalidCostMessage})
		return
	}
	if _, err := h.client.Put(r.Context(), apiclient.Settings{TransportCostPerKm: cost}); err != nil {
		h.logger.Error("save settings", slog.Any("error", err))
		h.render(w, r, http.StatusBadGateway, pageData{Value: raw, Error: apiclient.UserMessage(err, shared.MsgRequestFailed)})
		return
	}
	shared.RedirectWithNotice(w, r, h.Path(), shared.NoticeSuccess, shared.MsgSettingsSaved)
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, status int, data pageData) {
	if err := h.templates.Page(w, r, h.csrf, "pages/settings.html", h.Title(), status, data); err != nil {
		h.logger.Error("render template", slog.Any("error", err), slog.String("template", "pages/settings.html"))
	}
}
