package offer

import (
	"context"
	"fmt"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/image"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/extension"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

// MarotoRendererName identifies the local renderer in config and metrics.
const MarotoRendererName = "maroto"

var (
	brandColor  = &props.Color{Red: 31, Green: 58, Blue: 96}
	mutedColor  = &props.Color{Red: 110, Green: 110, Blue: 110}
	white       = &props.Color{Red: 255, Green: 255, Blue: 255}
	stripeColor = &props.Color{Red: 246, Green: 247, Blue: 249}
	panelColor  = &props.Color{Red: 240, Green: 242, Blue: 245}
)

// MarotoRenderer draws the layout in-process with maroto.
type MarotoRenderer struct{}

// NewMarotoRenderer returns the local renderer.
func NewMarotoRenderer() *MarotoRenderer {
	return &MarotoRenderer{}
}

// Name implements Renderer.
func (r *MarotoRenderer) Name() string { return MarotoRendererName }

// Render implements Renderer.
func (r *MarotoRenderer) Render(ctx context.Context, layout Layout) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	customFonts, err := documentFonts()
	if err != nil {
		return nil, fmt.Errorf("load offer fonts: %w", err)
	}
	cfg := config.NewBuilder().
		WithCustomFonts(customFonts).
		WithDefaultFont(&props.Font{Family: documentFont}).
		WithOrientation(orientation.Vertical).
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).
		WithTopMargin(10).
		WithRightMargin(10).
		WithPageNumber(props.PageNumber{
			Pattern: layout.PageLabel,
			Place:   props.RightBottom,
			Size:    7,
			Color:   mutedColor,
		}).
		Build()

	m := maroto.New(cfg)
	addBrandBand(m, layout)
	addHeaderBlock(m, layout)
	addSection(m, layout.Audit)
	for _, s := range layout.Sections {
		addSection(m, s)
	}
	addLines(m, layout)
	addTotals(m, layout.Totals)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("generate offer pdf: %w", err)
	}
	return doc.GetBytes(), nil
}

func addBrandBand(m core.Maroto, layout Layout) {
	band := &props.Cell{BackgroundColor: brandColor}
	title := text.New(layout.Title, props.Text{Size: 16, Style: fontstyle.Bold, Align: align.Left, Color: white, Top: 4, Left: 3})
	number := text.New(layout.DocumentNo, props.Text{Size: 12, Style: fontstyle.Bold, Align: align.Right, Color: white, Top: 5, Right: 3})
	if len(layout.Logo) > 0 {
		m.AddRows(row.New(18).Add(
			col.New(3).Add(image.NewFromBytes(layout.Logo, extension.Png, props.Rect{Center: true, Percent: 80})).WithStyle(band),
			col.New(5).Add(title).WithStyle(band),
			col.New(4).Add(number).WithStyle(band),
		))
	} else {
		m.AddRows(row.New(18).Add(
			col.New(8).Add(title).WithStyle(band),
			col.New(4).Add(number).WithStyle(band),
		))
	}
	m.AddRows(row.New(4))
}

func addHeaderBlock(m core.Maroto, layout Layout) {
	label := props.Text{Size: 7, Style: fontstyle.Bold, Align: align.Left, Color: mutedColor}
	value := props.Text{Size: 8, Align: align.Left}
	n := max(len(layout.HeaderLeft), len(layout.HeaderRight))
	for i := 0; i < n; i++ {
		cols := make([]core.Col, 0, 4)
		cols = append(cols, fieldCols(layout.HeaderLeft, i, label, value)...)
		cols = append(cols, fieldCols(layout.HeaderRight, i, label, value)...)
		m.AddRows(row.New(6).Add(cols...))
	}
	m.AddRows(row.New(3))
}

func fieldCols(fs []Field, i int, label, value props.Text) []core.Col {
	if i >= len(fs) {
		return []core.Col{col.New(2), col.New(4)}
	}
	return []core.Col{
		col.New(2).Add(text.New(fs[i].Label, label)),
		col.New(4).Add(text.New(fs[i].Value, value)),
	}
}

func addSection(m core.Maroto, s Section) {
	if len(s.Fields) == 0 {
		return
	}
	m.AddRows(row.New(7).Add(
		col.New(12).Add(text.New(s.Title, props.Text{Size: 8, Style: fontstyle.Bold, Align: align.Left, Top: 1.5, Left: 1})).
			WithStyle(&props.Cell{BackgroundColor: panelColor}),
	))
	label := props.Text{Size: 7, Style: fontstyle.Bold, Align: align.Left, Color: mutedColor, Left: 1}
	value := props.Text{Size: 8, Align: align.Left}
	// two label/value pairs per row
	for i := 0; i < len(s.Fields); i += 2 {
		cols := []core.Col{
			col.New(2).Add(text.New(s.Fields[i].Label, label)),
			col.New(4).Add(text.New(s.Fields[i].Value, value)),
		}
		if i+1 < len(s.Fields) {
			cols = append(cols,
				col.New(2).Add(text.New(s.Fields[i+1].Label, label)),
				col.New(4).Add(text.New(s.Fields[i+1].Value, value)),
			)
		} else {
			cols = append(cols, col.New(6))
		}
		m.AddRows(row.New(5).Add(cols...))
	}
	m.AddRows(row.New(3))
}

func textAlign(a Align) align.Type {
	if a == AlignRight {
		return align.Right
	}
	return align.Left
}

func addLines(m core.Maroto, layout Layout) {
	m.AddRows(row.New(7).Add(
		col.New(12).Add(text.New(layout.LinesTitle, props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Left})),
	))
	head := &props.Cell{BackgroundColor: brandColor}
	header := make([]core.Col, len(layout.Columns))
	for i, c := range layout.Columns {
		header[i] = col.New(c.Width).Add(text.New(c.Label, props.Text{
			Size: 7, Style: fontstyle.Bold, Align: textAlign(c.Align), Color: white, Top: 1.5, Left: 1, Right: 1,
		})).WithStyle(head)
	}
	m.AddRows(row.New(7).Add(header...))

	for n, r := range layout.Rows {
		var stripe *props.Cell
		if n%2 == 1 {
			stripe = &props.Cell{BackgroundColor: stripeColor}
		}
		cols := make([]core.Col, len(layout.Columns))
		for i, c := range layout.Columns {
			v := ""
			if i < len(r) {
				v = r[i]
			}
			cc := col.New(c.Width).Add(text.New(v, props.Text{Size: 7, Align: textAlign(c.Align), Top: 1, Left: 1, Right: 1}))
			if stripe != nil {
				cc = cc.WithStyle(stripe)
			}
			cols[i] = cc
		}
		m.AddRows(row.New(6).Add(cols...))
	}
	m.AddRows(row.New(3))
}

func addTotals(m core.Maroto, totals []Field) {
	summary := &props.Cell{BackgroundColor: panelColor}
	for i, t := range totals {
		size := 8.0
		style := fontstyle.Normal
		if i == len(totals)-1 {
			size = 9
			style = fontstyle.Bold
		}
		m.AddRows(row.New(6).Add(
			col.New(6),
			col.New(3).Add(text.New(t.Label, props.Text{Size: size, Style: fontstyle.Bold, Align: align.Right, Top: 1})).WithStyle(summary),
			col.New(3).Add(text.New(t.Value, props.Text{Size: size, Style: style, Align: align.Right, Top: 1, Right: 1})).WithStyle(summary),
		))
	}
}
