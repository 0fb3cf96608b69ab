package offer

import (
	"bytes"
	"context"
	"fmt"
	"html/template"

	"github.com/odyssey-erp/trade-admin/report"
	"github.com/odyssey-erp/trade-admin/web"
)

// GotenbergRendererName identifies the HTML renderer in config and metrics.
const GotenbergRendererName = "gotenberg"

const offerTemplate = "reports/sales_offer.html"

// GotenbergRenderer renders the layout as HTML and converts it with
// Gotenberg.
type GotenbergRenderer struct {
	client    *report.Client
	templates *template.Template
}

type htmlView struct {
	Layout
	HasLogo bool
	Aligns  []Align
}

// NewGotenbergRenderer parses the offer template.
func NewGotenbergRenderer(client *report.Client) (*GotenbergRenderer, error) {
	tpl, err := template.ParseFS(web.Templates, "templates/"+offerTemplate)
	if err != nil {
		return nil, fmt.Errorf("parse offer template: %w", err)
	}
	return &GotenbergRenderer{client: client, templates: tpl}, nil
}

// Name implements Renderer.
func (r *GotenbergRenderer) Name() string { return GotenbergRendererName }

// HTML renders the page sent to Gotenberg.
func (r *GotenbergRenderer) HTML(layout Layout) (string, error) {
	view := htmlView{Layout: layout, HasLogo: len(layout.Logo) > 0}
	for _, c := range layout.Columns {
		view.Aligns = append(view.Aligns, c.Align)
	}
	var buf bytes.Buffer
	if err := r.templates.ExecuteTemplate(&buf, offerTemplate, view); err != nil {
		return "", fmt.Errorf("render offer html: %w", err)
	}
	return buf.String(), nil
}

// Render implements Renderer.
func (r *GotenbergRenderer) Render(ctx context.Context, layout Layout) ([]byte, error) {
	html, err := r.HTML(layout)
	if err != nil {
		return nil, err
	}
	var assets []report.Asset
	if len(layout.Logo) > 0 {
		assets = append(assets, report.Asset{Name: "logo.png", Data: layout.Logo})
	}
	pdf, err := r.client.RenderHTML(ctx, html, report.A4, assets...)
	if err != nil {
		return nil, fmt.Errorf("convert offer %s: %w", layout.DocumentNo, err)
	}
	return pdf, nil
}
