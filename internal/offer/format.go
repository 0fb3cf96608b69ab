package offer

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Fixed fraction digits per kind of number.
const (
	moneyScale    = 2
	quantityScale = 3
	factorScale   = 4
)

var dateLayouts = map[Language]string{
	English: "01/02/2006",
	Polish:  "02.01.2006",
}

var inputDateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// Formatter renders numbers and dates for one language.
type Formatter struct {
	lang       Language
	printer    *message.Printer
	groupSep   string
	decimalSep string
}

// NewFormatter returns a Formatter for lang.
func NewFormatter(lang Language) *Formatter {
	p := message.NewPrinter(lang.Tag())
	group, dec := separators(p)
	return &Formatter{lang: lang, printer: p, groupSep: group, decimalSep: dec}
}

// separators reads the locale's group and decimal marks off a sample.
func separators(p *message.Printer) (group, dec string) {
	sample := p.Sprint(number.Decimal(1234567.5, number.Scale(1)))
	// sample is "1<g>234<g>567<d>5"
	if i := strings.Index(sample, "234"); i > 1 {
		group = sample[1:i]
	}
	if i := strings.LastIndex(sample, "567"); i >= 0 && len(sample) > i+4 {
		dec = sample[i+3 : len(sample)-1]
	}
	if dec == "" {
		dec = "."
	}
	return group, dec
}

// Money renders a currency amount with two decimals and grouping.
func (f *Formatter) Money(d decimal.Decimal) string {
	return f.decimal(d, moneyScale)
}

// Quantity renders a quantity with three decimals.
func (f *Formatter) Quantity(d decimal.Decimal) string {
	return f.decimal(d, quantityScale)
}

// Factor renders a currency conversion factor with four decimals.
func (f *Formatter) Factor(d decimal.Decimal) string {
	return f.decimal(d, factorScale)
}

// decimal formats d exactly: the digits come from the decimal itself and
// only the integer part goes through the locale printer.
func (f *Formatter) decimal(d decimal.Decimal, scale int) string {
	rounded := d.Round(int32(scale))
	whole, frac, _ := strings.Cut(rounded.Abs().StringFixed(int32(scale)), ".")
	var b strings.Builder
	if rounded.IsNegative() {
		b.WriteByte('-')
	}
	b.WriteString(f.integer(whole))
	if frac != "" {
		b.WriteString(f.decimalSep)
		b.WriteString(frac)
	}
	return b.String()
}

func (f *Formatter) integer(digits string) string {
	if n, err := strconv.ParseInt(digits, 10, 64); err == nil {
		return f.printer.Sprint(number.Decimal(n))
	}
	return groupDigits(digits, f.groupSep)
}

// groupDigits inserts sep every three digits from the right.
func groupDigits(digits, sep string) string {
	if sep == "" || len(digits) <= 3 {
		return digits
	}
	var b strings.Builder
	head := len(digits) % 3
	if head > 0 {
		b.WriteString(digits[:head])
	}
	for i := head; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteString(sep)
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

// Date renders a backend timestamp as a short local date. Blank input
// gives "" and input that does not parse is returned unchanged.
func (f *Formatter) Date(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	out, ok := dateLayouts[f.lang]
	if !ok {
		out = dateLayouts[English]
	}
	for _, layout := range inputDateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.Format(out)
		}
	}
	return raw
}
