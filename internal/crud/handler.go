package crud

import (
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"sort"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/odyssey-erp/trade-admin/internal/apiclient"
	"github.com/odyssey-erp/trade-admin/internal/listing"
	"github.com/odyssey-erp/trade-admin/internal/selector"
	"github.com/odyssey-erp/trade-admin/internal/shared"
	"github.com/odyssey-erp/trade-admin/internal/view"
)

// Page is a mountable section of the console.
type Page interface {
	Path() string
	Title() string
	MountRoutes(r chi.Router)
}

const returnField = "return"

// Handler serves the list, form and delete pages of one Resource.
type Handler[T, F any] struct {
	logger    *slog.Logger
	res       *Resource[T, F]
	templates *view.Engine
	csrf      *shared.CSRFManager
	selectors *selector.Registry
	validator *validator.Validate
}

// NewHandler builds Handler instance.
func NewHandler[T, F any](logger *slog.Logger, res *Resource[T, F], templates *view.Engine, csrf *shared.CSRFManager, selectors *selector.Registry) *Handler[T, F] {
	return &Handler[T, F]{
		logger:    logger.With(slog.String("resource", res.Collection.Resource())),
		res:       res,
		templates: templates,
		csrf:      csrf,
		selectors: selectors,
		validator: NewValidator(),
	}
}

// Path returns the console path the handler is mounted on.
func (h *Handler[T, F]) Path() string { return h.res.Path }

// Title returns the navigation title.
func (h *Handler[T, F]) Title() string { return h.res.Title }

// MountRoutes registers the resource routes relative to Path.
func (h *Handler[T, F]) MountRoutes(r chi.Router) {
	r.Get("/", h.list)
	r.Get("/new", h.showNewForm)
	r.Post("/", h.create)
	r.Get("/{id}/edit", h.showEditForm)
	r.Post("/{id}/edit", h.update)
	r.Get("/{id}/delete", h.confirmDelete)
	r.Post("/{id}/delete", h.delete)
}

func (h *Handler[T, F]) list(w http.ResponseWriter, r *http.Request) {
	state := listing.Parse(r.URL.Query(), h.res.filterKeys())
	data := listPage{
		Path:       h.res.Path,
		NewHref:    h.res.Path + "/new" + returnQuery(state),
		Searchable: h.res.Searchable,
		Query:      state.Query,
		Hidden:     hiddenState(state),
		Span:       len(h.res.Columns) + 2,
	}
	for _, col := range h.res.Columns {
		hv := headerView{Label: col.Label, Sortable: col.Sortable && col.Key != ""}
		if hv.Sortable {
			hv.Href = state.Toggle(col.Key).Href(h.res.Path)
			hv.Indicator = state.SortIndicator(col.Key)
		}
		data.Columns = append(data.Columns, hv)
	}
	for _, f := range h.res.Filters {
		fv := filterView{Label: f.Label}
		current := state.Filters[f.Key]
		fv.Choices = append(fv.Choices, choiceView{Label: "All", Href: state.WithFilter(f.Key, "").Href(h.res.Path), Selected: current == ""})
		for _, c := range f.Choices {
			fv.Choices = append(fv.Choices, choiceView{
				Value:    c.Value,
				Label:    c.Label,
				Href:     state.WithFilter(f.Key, c.Value).Href(h.res.Path),
				Selected: current == c.Value,
			})
		}
		data.Filters = append(data.Filters, fv)
	}

	status := http.StatusOK
	page, err := h.res.Collection.List(r.Context(), state.Params())
	if err != nil {
		h.logger.Error("list failed", slog.Any("error", err))
		data.Error = apiclient.UserMessage(err, shared.MsgRequestFailed)
		status = http.StatusBadGateway
		data.Pager = newPagerView(state, h.res.Path, listing.NewPagination(state.Page, state.Limit, 0, 0))
		h.render(w, r, "pages/crud_list.html", status, data)
		return
	}
	rows := page.Data
	if h.res.Prepare != nil {
		prepared, err := h.res.Prepare(r.Context(), rows)
		if err != nil {
			h.logger.Warn("prepare rows", slog.Any("error", err))
		} else {
			rows = prepared
		}
	}
	ret := returnQuery(state)
	for _, rec := range rows {
		id := h.res.ID(rec)
		rv := rowView{
			ID:         id,
			EditHref:   h.itemPath(id) + "/edit" + ret,
			DeleteHref: h.itemPath(id) + "/delete" + ret,
		}
		for _, col := range h.res.Columns {
			rv.Cells = append(rv.Cells, col.Cell(rec))
		}
		if h.res.Detail != nil {
			rv.Detail = h.res.Detail(rec)
		}
		data.Rows = append(data.Rows, rv)
	}
	current := page.Page
	if current <= 0 {
		current = state.Page
	}
	data.Pager = newPagerView(state, h.res.Path, listing.NewPagination(current, state.Limit, page.Total, page.Pages))
	h.render(w, r, "pages/crud_list.html", status, data)
}

func (h *Handler[T, F]) showNewForm(w http.ResponseWriter, r *http.Request) {
	state := h.returnState(r.URL.Query().Get(returnField))
	h.renderForm(w, r, http.StatusOK, "", state, url.Values{}, nil, "")
}

func (h *Handler[T, F]) create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	state := h.returnState(r.PostFormValue(returnField))
	values := h.res.Normalize(r.PostForm)
	form, fieldErrs, msg := h.bind(values)
	if msg != "" {
		h.renderForm(w, r, http.StatusUnprocessableEntity, "", state, values, fieldErrs, msg)
		return
	}
	if _, err := h.res.Collection.Create(r.Context(), form); err != nil {
		h.logger.Error("create failed", slog.Any("error", err))
		h.renderForm(w, r, http.StatusBadGateway, "", state, values, nil, apiclient.UserMessage(err, shared.MsgRequestFailed))
		return
	}
	shared.RedirectWithNotice(w, r, state.WithPage(listing.DefaultPage).Href(h.res.Path), shared.NoticeSuccess, shared.MsgCreated)
}

func (h *Handler[T, F]) showEditForm(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	state := h.returnState(r.URL.Query().Get(returnField))
	rec, err := h.res.Collection.Get(r.Context(), id)
	if err != nil {
		h.logger.Error("load record failed", slog.String("id", id), slog.Any("error", err))
		shared.RedirectWithNotice(w, r, state.Href(h.res.Path), shared.NoticeError, apiclient.UserMessage(err, shared.MsgRequestFailed))
		return
	}
	h.renderForm(w, r, http.StatusOK, id, state, h.res.Values(rec), nil, "")
}

func (h *Handler[T, F]) update(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	id := chi.URLParam(r, "id")
	state := h.returnState(r.PostFormValue(returnField))
	values := h.res.Normalize(r.PostForm)
	form, fieldErrs, msg := h.bind(values)
	if msg != "" {
		h.renderForm(w, r, http.StatusUnprocessableEntity, id, state, values, fieldErrs, msg)
		return
	}
	if _, err := h.res.Collection.Update(r.Context(), id, form); err != nil {
		h.logger.Error("update failed", slog.String("id", id), slog.Any("error", err))
		h.renderForm(w, r, http.StatusBadGateway, id, state, values, nil, apiclient.UserMessage(err, shared.MsgRequestFailed))
		return
	}
	shared.RedirectWithNotice(w, r, state.WithPage(listing.DefaultPage).Href(h.res.Path), shared.NoticeSuccess, shared.MsgUpdated)
}

func (h *Handler[T, F]) confirmDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	state := h.returnState(r.URL.Query().Get(returnField))
	rec, err := h.res.Collection.Get(r.Context(), id)
	if err != nil {
		h.logger.Error("load record failed", slog.String("id", id), slog.Any("error", err))
		shared.RedirectWithNotice(w, r, state.Href(h.res.Path), shared.NoticeError, apiclient.UserMessage(err, shared.MsgRequestFailed))
		return
	}
	data := deletePage{
		Action:     h.itemPath(id) + "/delete" + returnQuery(state),
		CancelHref: state.Href(h.res.Path),
	}
	if h.res.Detail != nil {
		data.Summary = h.res.Detail(rec)
	}
	h.render(w, r, "pages/crud_delete.html", http.StatusOK, data)
}

func (h *Handler[T, F]) delete(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	id := chi.URLParam(r, "id")
	state := h.returnState(r.URL.Query().Get(returnField))
	back := state.Href(h.res.Path)
	if r.PostFormValue("confirm") != "yes" {
		http.Redirect(w, r, back, http.StatusSeeOther)
		return
	}
	if err := h.res.Collection.Delete(r.Context(), id); err != nil {
		h.logger.Error("delete failed", slog.String("id", id), slog.Any("error", err))
		shared.RedirectWithNotice(w, r, back, shared.NoticeError, apiclient.UserMessage(err, shared.MsgRequestFailed))
		return
	}
	shared.RedirectWithNotice(w, r, back, shared.NoticeSuccess, shared.MsgDeleted)
}

// bind decodes and validates values. A non-empty message means the form
// must be shown again and no request may be sent.
func (h *Handler[T, F]) bind(values url.Values) (F, map[string]string, string) {
	var zero F
	form, err := h.res.Decode(values)
	if err != nil {
		var fe *FieldError
		if errors.As(err, &fe) {
			label := fe.Field
			for _, f := range h.res.Fields {
				if f.Name == fe.Field {
					label = f.Label
				}
			}
			return zero, map[string]string{fe.Field: fe.Message}, label + " " + fe.Message + "."
		}
		return zero, nil, err.Error()
	}
	if err := h.validator.Struct(form); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return zero, nil, err.Error()
		}
		fieldErrs := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			fieldErrs[fe.Field()] = "Required"
		}
		return zero, fieldErrs, shared.MsgRequiredFields
	}
	return form, nil, ""
}

func (h *Handler[T, F]) renderForm(w http.ResponseWriter, r *http.Request, status int, id string, state listing.State, values url.Values, fieldErrs map[string]string, msg string) {
	data := formPage{
		Action:     h.res.Path,
		CancelHref: state.Href(h.res.Path),
		IsEdit:     id != "",
		Error:      msg,
	}
	if id != "" {
		data.Action = h.itemPath(id) + "/edit"
	}
	data.Fields = append(data.Fields, fieldView{Name: returnField, Kind: "hidden", Value: state.Values().Encode()})
	for _, f := range h.res.Fields {
		fv := fieldView{
			Name:      f.Name,
			Label:     f.Label,
			Kind:      f.Kind,
			Required:  f.Required,
			Uppercase: f.Uppercase,
			Value:     values.Get(f.Name),
			Error:     fieldErrs[f.Name],
		}
		switch f.Kind {
		case KindCheckbox:
			fv.Checked = Checked(fv.Value)
		case KindSelect:
			for _, c := range f.Choices {
				fv.Choices = append(fv.Choices, choiceView{Value: c.Value, Label: c.Label, Selected: c.Value == fv.Value})
			}
		case KindSelector:
			fv.Selector = h.loadSelector(r, f.Source, fv.Value)
		}
		data.Fields = append(data.Fields, fv)
	}
	title := "New " + h.res.Singular
	if id != "" {
		title = "Edit " + h.res.Singular
	}
	h.renderTitled(w, r, "pages/crud_form.html", title, status, data)
}

func (h *Handler[T, F]) loadSelector(r *http.Request, source, value string) *selectorView {
	st, err := h.selectors.Load(r.Context(), source)
	if err != nil {
		h.logger.Warn("load selector options", slog.String("source", source), slog.Any("error", err))
	}
	st.Select(value)
	return &selectorView{
		Source:   source,
		Disabled: st.Disabled(),
		Hint:     st.Hint(),
		Options:  st.Visible(),
	}
}

func (h *Handler[T, F]) returnState(raw string) listing.State {
	q, err := url.ParseQuery(raw)
	if err != nil {
		q = url.Values{}
	}
	return listing.Parse(q, h.res.filterKeys())
}

func (h *Handler[T, F]) itemPath(id string) string {
	return h.res.Path + "/" + url.PathEscape(id)
}

func (h *Handler[T, F]) render(w http.ResponseWriter, r *http.Request, name string, status int, data any) {
	h.renderTitled(w, r, name, h.res.Title, status, data)
}

func (h *Handler[T, F]) renderTitled(w http.ResponseWriter, r *http.Request, name, title string, status int, data any) {
	if err := h.templates.Page(w, r, h.csrf, name, title, status, data); err != nil {
		h.logger.Error("render template", slog.Any("error", err), slog.String("template", name))
	}
}

func returnQuery(state listing.State) string {
	enc := state.Values().Encode()
	if enc == "" {
		return ""
	}
	return "?" + returnField + "=" + url.QueryEscape(enc)
}

func sortedKeys(vals url.Values) []string {
	keys := make([]string, 0, len(vals))
	for k := range vals {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
