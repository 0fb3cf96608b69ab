package offer

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"
)

// RenderObserver records the outcome of each render.
type RenderObserver interface {
	ObserveRender(renderer string, err error)
}

// Document sources and loaders used by Exporter.
type (
	documentSource interface {
		Document(ctx context.Context, ref Reference) (Document, error)
		Lines(ctx context.Context, ref Reference) ([]Line, error)
	}
	logoSource interface {
		Load(ctx context.Context) ([]byte, error)
	}
)

// Result is a rendered offer.
type Result struct {
	DocumentNo string
	Filename   string
	PDF        []byte
	Totals     Totals
}

// Exporter fetches an offer, lays it out and renders it.
type Exporter struct {
	source   documentSource
	logo     logoSource
	renderer Renderer
	observer RenderObserver
	logger   *slog.Logger
}

// NewExporter wires an Exporter. observer may be nil.
func NewExporter(source *Source, logo *LogoLoader, renderer Renderer, observer RenderObserver, logger *slog.Logger) *Exporter {
	return &Exporter{source: source, logo: logo, renderer: renderer, observer: observer, logger: logger}
}

// Export produces the PDF of ref in lang. The header, the lines and the
// logo are loaded concurrently; any failure aborts the whole export.
func (e *Exporter) Export(ctx context.Context, ref Reference, lang Language) (Result, error) {
	var (
		doc   Document
		lines []Line
		logo  []byte
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		doc, err = e.source.Document(gctx, ref)
		return err
	})
	g.Go(func() error {
		var err error
		lines, err = e.source.Lines(gctx, ref)
		return err
	})
	g.Go(func() error {
		var err error
		logo, err = e.logo.Load(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		e.logger.Error("prepare offer", slog.String("document_no", ref.DocumentNo), slog.Any("error", err))
		return Result{}, err
	}

	totals := ComputeTotals(lines)
	layout := BuildLayout(doc, lines, totals, lang)
	layout.Logo = logo

	pdf, err := e.renderer.Render(ctx, layout)
	if e.observer != nil {
		e.observer.ObserveRender(e.renderer.Name(), err)
	}
	if err != nil {
		e.logger.Error("render offer", slog.String("document_no", ref.DocumentNo), slog.String("renderer", e.renderer.Name()), slog.Any("error", err))
		return Result{}, fmt.Errorf("render offer %s: %w", ref.DocumentNo, err)
	}
	e.logger.Info("offer rendered",
		slog.String("document_no", ref.DocumentNo),
		slog.Int("lines", len(lines)),
		slog.Int("bytes", len(pdf)),
	)
	return Result{DocumentNo: layout.DocumentNo, Filename: layout.Filename(), PDF: pdf, Totals: totals}, nil
}
