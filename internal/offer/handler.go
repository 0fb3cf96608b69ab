package offer

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/odyssey-erp/trade-admin/internal/apiclient"
	"github.com/odyssey-erp/trade-admin/internal/shared"
	"github.com/odyssey-erp/trade-admin/internal/view"
)

const basePath = "/sales-offers"

type exporter interface {
	Export(ctx context.Context, ref Reference, lang Language) (Result, error)
}

// Handler serves the offer preview, download and release endpoints.
type Handler struct {
	logger      *slog.Logger
	exporter    exporter
	previews    *PreviewStore
	templates   *view.Engine
	csrf        *shared.CSRFManager
	defaultLang Language
}

type langLink struct {
	Label   string
	Href    string
	Current bool
}

type previewPage struct {
	DocumentNo   string
	Language     Language
	Languages    []langLink
	Filename     string
	PreviewHref  string
	DownloadHref string
	RenderAction string
	ReleaseHref  string
	Error        string
}

// NewHandler builds Handler instance.
func NewHandler(logger *slog.Logger, exporter *Exporter, previews *PreviewStore, templates *view.Engine, csrf *shared.CSRFManager, defaultLang Language) *Handler {
	return &Handler{
		logger:      logger,
		exporter:    exporter,
		previews:    previews,
		templates:   templates,
		csrf:        csrf,
		defaultLang: ParseLanguage(string(defaultLang), English),
	}
}

// Path returns the console path of the offer pages.
func (h *Handler) Path() string { return basePath }

// Title returns the navigation title.
func (h *Handler) Title() string { return "Sales offers" }

// MountRoutes registers offer routes on the root router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get(basePath, h.index)
	r.Get(basePath+"/{documentNo}", h.show)
	r.Post(basePath+"/{documentNo}/render", h.render)
	r.Get(basePath+"/{documentNo}/download", h.download)
	r.Post(basePath+"/{documentNo}/release", h.release)
	r.Get("/previews/{handle}", h.preview)
}

// index shows the lookup form, or redirects to the document it submitted.
func (h *Handler) index(w http.ResponseWriter, r *http.Request) {
	if !r.URL.Query().Has("documentNo") {
		h.page(w, r, "pages/offer_index.html", h.Title(), http.StatusOK, nil)
		return
	}
	documentNo := strings.TrimSpace(r.URL.Query().Get("documentNo"))
	if documentNo == "" {
		shared.RedirectWithNotice(w, r, basePath, shared.NoticeError, shared.MsgRequiredFields)
		return
	}
	lang := h.language(r.URL.Query().Get("lang"))
	http.Redirect(w, r, documentPath(documentNo)+"?lang="+string(lang), http.StatusSeeOther)
}

func (h *Handler) show(w http.ResponseWriter, r *http.Request) {
	documentNo := chi.URLParam(r, "documentNo")
	lang := h.language(r.URL.Query().Get("lang"))
	owner, ok := h.owner(w, r)
	if !ok {
		return
	}
	p, err := h.previews.Current(r.Context(), owner, documentNo)
	if err == nil && p.Language == lang {
		h.showPreview(w, r, http.StatusOK, p, lang, "")
		return
	}
	if err != nil && !errors.Is(err, ErrPreviewNotFound) {
		h.logger.Warn("load preview", slog.Any("error", err))
	}
	h.renderFresh(w, r, owner, documentNo, lang)
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request) {
	documentNo := chi.URLParam(r, "documentNo")
	lang := h.language(r.PostFormValue("lang"))
	owner, ok := h.owner(w, r)
	if !ok {
		return
	}
	h.renderFresh(w, r, owner, documentNo, lang)
}

func (h *Handler) renderFresh(w http.ResponseWriter, r *http.Request, owner, documentNo string, lang Language) {
	// the old handle goes before rendering so a failed render leaves none
	if err := h.previews.Release(r.Context(), owner, documentNo); err != nil {
		h.logger.Warn("release preview", slog.Any("error", err))
	}
	res, err := h.exporter.Export(r.Context(), Reference{DocumentNo: documentNo}, lang)
	if err != nil {
		h.showPreview(w, r, http.StatusBadGateway, Preview{DocumentNo: documentNo}, lang, apiclient.UserMessage(err, shared.MsgRequestFailed))
		return
	}
	p, err := h.previews.Acquire(r.Context(), owner, res, lang)
	if err != nil {
		h.logger.Error("store preview", slog.Any("error", err))
		h.showPreview(w, r, http.StatusInternalServerError, Preview{DocumentNo: documentNo}, lang, shared.MsgRequestFailed)
		return
	}
	h.showPreview(w, r, http.StatusOK, p, lang, "")
}

func (h *Handler) showPreview(w http.ResponseWriter, r *http.Request, status int, p Preview, lang Language, msg string) {
	documentNo := p.DocumentNo
	data := previewPage{
		DocumentNo:   documentNo,
		Language:     lang,
		Filename:     Filename(documentNo),
		DownloadHref: documentPath(documentNo) + "/download?lang=" + string(lang),
		RenderAction: documentPath(documentNo) + "/render",
		ReleaseHref:  documentPath(documentNo) + "/release",
		Error:        msg,
	}
	if p.Handle != "" {
		data.PreviewHref = "/previews/" + url.PathEscape(p.Handle)
	}
	for _, l := range Languages {
		data.Languages = append(data.Languages, langLink{
			Label:   l.Name(),
			Href:    documentPath(documentNo) + "?lang=" + string(l),
			Current: l == lang,
		})
	}
	h.page(w, r, "pages/offer.html", LabelsFor(lang).Title+" "+documentNo, status, data)
}

func (h *Handler) preview(w http.ResponseWriter, r *http.Request) {
	owner, ok := h.owner(w, r)
	if !ok {
		return
	}
	p, pdf, err := h.previews.PDF(r.Context(), owner, chi.URLParam(r, "handle"))
	if err != nil {
		if !errors.Is(err, ErrPreviewNotFound) {
			h.logger.Error("load preview", slog.Any("error", err))
		}
		http.NotFound(w, r)
		return
	}
	writePDF(w, "inline", p.Filename, pdf)
}

func (h *Handler) download(w http.ResponseWriter, r *http.Request) {
	documentNo := chi.URLParam(r, "documentNo")
	lang := h.language(r.URL.Query().Get("lang"))
	owner, ok := h.owner(w, r)
	if !ok {
		return
	}
	if p, err := h.previews.Current(r.Context(), owner, documentNo); err == nil && p.Language == lang {
		if _, pdf, err := h.previews.PDF(r.Context(), owner, p.Handle); err == nil {
			writePDF(w, "attachment", Filename(documentNo), pdf)
			return
		}
	}
	res, err := h.exporter.Export(r.Context(), Reference{DocumentNo: documentNo}, lang)
	if err != nil {
		shared.RedirectWithNotice(w, r, documentPath(documentNo)+"?lang="+string(lang), shared.NoticeError, apiclient.UserMessage(err, shared.MsgRequestFailed))
		return
	}
	writePDF(w, "attachment", res.Filename, res.PDF)
}

func (h *Handler) release(w http.ResponseWriter, r *http.Request) {
	documentNo := chi.URLParam(r, "documentNo")
	owner, ok := h.owner(w, r)
	if !ok {
		return
	}
	if err := h.previews.Release(r.Context(), owner, documentNo); err != nil {
		h.logger.Error("release preview", slog.Any("error", err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, basePath, http.StatusSeeOther)
}

func (h *Handler) owner(w http.ResponseWriter, r *http.Request) (string, bool) {
	sess := shared.SessionFromContext(r.Context())
	if sess == nil {
		h.logger.Error("resolve preview owner", slog.Any("error", shared.ErrSessionMissing))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return "", false
	}
	return sess.ID, true
}

func (h *Handler) language(raw string) Language {
	return ParseLanguage(raw, h.defaultLang)
}

func (h *Handler) page(w http.ResponseWriter, r *http.Request, name, title string, status int, data any) {
	if err := h.templates.Page(w, r, h.csrf, name, title, status, data); err != nil {
		h.logger.Error("render template", slog.Any("error", err), slog.String("template", name))
	}
}

func documentPath(documentNo string) string {
	return basePath + "/" + url.PathEscape(documentNo)
}

func writePDF(w http.ResponseWriter, disposition, filename string, pdf []byte) {
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", disposition+"; filename="+strconv.Quote(filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(pdf)))
	w.Header().Set("Cache-Control", "private, no-store")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(pdf)
}
