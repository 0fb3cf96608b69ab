package selector

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/odyssey-erp/trade-admin/internal/platform/httpx"
)

// Handler serves picker state as JSON for the in-page control.
type Handler struct {
	logger   *slog.Logger
	registry *Registry
}

// NewHandler constructs a Handler.
func NewHandler(logger *slog.Logger, registry *Registry) *Handler {
	return &Handler{logger: logger, registry: registry}
}

// MountRoutes registers option routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/{source}", h.options)
}

type optionsResponse struct {
	Options   []View `json:"options"`
	Highlight int    `json:"highlight"`
	Selected  string `json:"selected"`
	Open      bool   `json:"open"`
	Disabled  bool   `json:"disabled"`
	Hint      string `json:"hint,omitempty"`
}

// options replays the client's interaction: filter by q, restore the
// previous highlight, then apply one key press.
func (h *Handler) options(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "source")
	if _, ok := h.registry.Lookup(name); !ok {
		httpx.RespondError(w, fmt.Errorf("option source %q: %w", name, httpx.ErrNotFound))
		return
	}
	q := r.URL.Query()
	var highlight *int
	if raw := q.Get("highlight"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			httpx.RespondError(w, fmt.Errorf("highlight %q: %w", raw, httpx.ErrValidation))
			return
		}
		highlight = &n
	}
	state, err := h.registry.Load(r.Context(), name)
	if err != nil {
		h.logger.Warn("load options", slog.String("source", name), slog.Any("error", err))
	}
	state.Select(q.Get("selected"))
	state.Search(q.Get("q"))
	if highlight != nil {
		state.SetHighlight(*highlight)
	}
	if key := q.Get("key"); key != "" {
		state.Press(key)
	}
	httpx.JSON(w, http.StatusOK, optionsResponse{
		Options:   state.Visible(),
		Highlight: state.Highlight(),
		Selected:  state.Selected(),
		Open:      state.Open(),
		Disabled:  state.Disabled(),
		Hint:      state.Hint(),
	})
}
