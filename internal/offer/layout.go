package offer

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Placeholder is printed for missing values.
const Placeholder = "—"

// Field is one label/value pair.
type Field struct {
	Label string
	Value string
}

// Section is a titled label/value table.
type Section struct {
	Title  string
	Fields []Field
}

// Align positions a table column.
type Align string

const (
	AlignLeft  Align = "left"
	AlignRight Align = "right"
)

// Column is a lines table column. Width is in twelfths of the page.
type Column struct {
	Label string
	Width int
	Align Align
}

// Layout is the renderer-independent description of the printed offer.
type Layout struct {
	Language   Language
	Title      string
	DocumentNo string
	PageLabel  string
	Logo       []byte

	// HeaderLeft and HeaderRight form the two-column header block.
	HeaderLeft  []Field
	HeaderRight []Field
	Audit       Section
	Sections    []Section

	LinesTitle string
	Columns    []Column
	Rows       [][]string

	// Totals are printed right-aligned under the lines.
	Totals []Field
}

// Filename is the download name of the rendered document.
func (l Layout) Filename() string {
	return Filename(l.DocumentNo)
}

// Filename names the PDF after the document number.
func Filename(documentNo string) string {
	name := strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|':
			return '-'
		}
		return r
	}, strings.TrimSpace(documentNo))
	if name == "" {
		name = "offer"
	}
	return name + ".pdf"
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return Placeholder
	}
	return s
}

// optional formats a header value, leaving it blank when the backend sent
// no number so it prints as the placeholder.
func optional(a Amount, format func(decimal.Decimal) string) string {
	if !a.Valid {
		return ""
	}
	return format(a.Decimal)
}

func fields(pairs ...string) []Field {
	out := make([]Field, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, Field{Label: pairs[i], Value: orDash(pairs[i+1])})
	}
	return out
}

// BuildLayout assembles the printed offer. Section order and the field
// order inside each section are fixed.
func BuildLayout(doc Document, lines []Line, totals Totals, lang Language) Layout {
	lb := LabelsFor(lang)
	f := NewFormatter(lang)

	documentNo := doc.DocumentNo
	layout := Layout{
		Language:   lang,
		Title:      lb.Title,
		DocumentNo: documentNo,
		PageLabel:  lb.Page,
		HeaderLeft: fields(
			lb.DocumentNo, documentNo,
			lb.Status, doc.Status,
			lb.SalesPerson, doc.SalesPerson,
			lb.ExternalRef, doc.ExternalRef,
			lb.Currency, doc.CurrencyCode,
			lb.CurrencyFactor, optional(doc.CurrencyFactor, f.Factor),
		),
		HeaderRight: fields(
			lb.DocumentDate, f.Date(doc.DocumentDate),
			lb.ValidUntil, f.Date(doc.ValidUntil),
			lb.RequestedDate, f.Date(doc.RequestedDate),
		),
		Audit: Section{Title: lb.Audit, Fields: fields(
			lb.CreatedBy, doc.CreatedBy,
			lb.CreatedAt, f.Date(doc.CreatedAt),
			lb.UpdatedBy, doc.UpdatedBy,
			lb.UpdatedAt, f.Date(doc.UpdatedAt),
		)},
		Sections: []Section{
			{Title: lb.Party, Fields: fields(
				lb.No, doc.Customer.No,
				lb.Name, doc.Customer.Name,
				lb.Address, doc.Customer.Address,
				lb.PostCode, doc.Customer.PostCode,
				lb.City, doc.Customer.City,
				lb.Country, doc.Customer.Country,
				lb.VATNo, doc.Customer.VATNo,
				lb.Email, doc.Customer.Email,
				lb.Phone, doc.Customer.Phone,
			)},
			{Title: lb.Location, Fields: fields(
				lb.Code, doc.Location.Code,
				lb.Name, doc.Location.Name,
				lb.Address, doc.Location.Address,
				lb.PostCode, doc.Location.PostCode,
				lb.City, doc.Location.City,
				lb.Country, doc.Location.Country,
			)},
			{Title: lb.Shipment, Fields: fields(
				lb.Method, doc.Shipment.Method,
				lb.Terms, doc.Shipment.Terms,
				lb.ShipmentDate, f.Date(doc.Shipment.Date),
				lb.Address, doc.Shipment.Address,
				lb.City, doc.Shipment.City,
				lb.Country, doc.Shipment.Country,
				lb.Instructions, doc.Shipment.Instructions,
			)},
			{Title: lb.Transport, Fields: fields(
				lb.TransportNo, doc.Transport.TransportNo,
				lb.Name, doc.Transport.TransportName,
				lb.Vehicle, doc.Transport.TransportID,
				lb.Driver, doc.Transport.DriverName,
				lb.DriverPhone, doc.Transport.DriverPhoneNo,
				lb.Distance, optional(doc.Transport.DistanceKm, f.Quantity),
				lb.CostPerKm, optional(doc.Transport.CostPerKm, f.Money),
			)},
			{Title: lb.Broker, Fields: fields(
				lb.No, doc.Broker.No,
				lb.Name, doc.Broker.Name,
				lb.Email, doc.Broker.Email,
				lb.Phone, doc.Broker.Phone,
			)},
		},
		LinesTitle: lb.Lines,
		Columns: []Column{
			{Label: lb.LineNo, Width: 1, Align: AlignLeft},
			{Label: lb.ItemNo, Width: 2, Align: AlignLeft},
			{Label: lb.Description, Width: 3, Align: AlignLeft},
			{Label: lb.Quantity, Width: 1, Align: AlignRight},
			{Label: lb.UnitOfMeasure, Width: 1, Align: AlignLeft},
			{Label: lb.UnitPrice, Width: 1, Align: AlignRight},
			{Label: lb.LineValue, Width: 2, Align: AlignRight},
			{Label: lb.TransportCost, Width: 1, Align: AlignRight},
		},
		Totals: []Field{
			{Label: lb.SumLines, Value: f.Money(totals.Lines)},
			{Label: lb.SumTransport, Value: f.Money(totals.Transport)},
			{Label: lb.GrandTotal, Value: f.Money(totals.Grand)},
		},
	}
	for i, l := range lines {
		lineNo := strconv.Itoa(l.LineNo)
		if l.LineNo == 0 {
			lineNo = strconv.Itoa(i + 1)
		}
		layout.Rows = append(layout.Rows, []string{
			lineNo,
			orDash(l.ItemNo),
			orDash(l.Description),
			f.Quantity(l.Quantity.Decimal),
			orDash(l.UnitOfMeasure),
			f.Money(l.UnitPrice.Decimal),
			f.Money(l.LineValue.Decimal),
			f.Money(l.TransportCost.Decimal),
		})
	}
	if code := strings.TrimSpace(doc.CurrencyCode); code != "" {
		for i := range layout.Totals {
			layout.Totals[i].Value += " " + code
		}
	}
	return layout
}
