// Package crud provides one list/form/delete page set that every master
// data entity instantiates with its own columns and fields.
package crud

import (
	"context"
	"net/url"
	"strings"

	"github.com/odyssey-erp/trade-admin/internal/apiclient"
)

// FieldKind selects the input rendered for a form field.
type FieldKind string

const (
	KindText     FieldKind = "text"
	KindNumber   FieldKind = "number"
	KindEmail    FieldKind = "email"
	KindSelect   FieldKind = "select"
	KindCheckbox FieldKind = "checkbox"
	KindSelector FieldKind = "selector"
)

// Choice is one value of a select field or list filter.
type Choice struct {
	Value string
	Label string
}

// Column describes one table column. Key is the backend sort field.
type Column[T any] struct {
	Key      string
	Label    string
	Sortable bool
	Cell     func(T) string
}

// Field describes one form input. Name is the form key and the JSON key.
type Field struct {
	Name      string
	Label     string
	Kind      FieldKind
	Required  bool
	Uppercase bool
	Choices   []Choice
	// Source names the selector registry entry for KindSelector.
	Source string
}

// Filter is a fixed-choice list filter sent to the backend as <Key>=<value>.
type Filter struct {
	Key     string
	Label   string
	Choices []Choice
}

// DetailRow is one label/value pair of an expanded row.
type DetailRow struct {
	Label string
	Value string
}

// FieldError reports a form value that could not be decoded.
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	return e.Field + ": " + e.Message
}

// Resource binds an entity of record type T and form type F to a backend
// collection. F carries validate tags and is sent as the request body.
type Resource[T, F any] struct {
	Title      string
	Singular   string
	Path       string
	Collection *apiclient.Collection[T]
	Columns    []Column[T]
	Fields     []Field
	Filters    []Filter
	Searchable bool

	ID     func(T) string
	Detail func(T) []DetailRow
	// Values turns a stored record into form values for editing.
	Values func(T) url.Values
	// Decode builds the request body from normalized form values.
	Decode func(url.Values) (F, error)
	// Prepare optionally enriches a fetched page before display.
	Prepare func(ctx context.Context, rows []T) ([]T, error)
}

func (r *Resource[T, F]) filterKeys() []string {
	keys := make([]string, len(r.Filters))
	for i, f := range r.Filters {
		keys[i] = f.Key
	}
	return keys
}

// Normalize trims every submitted value and uppercases the fields that ask
// for it. The input is not modified.
func (r *Resource[T, F]) Normalize(in url.Values) url.Values {
	out := url.Values{}
	for _, f := range r.Fields {
		v := strings.TrimSpace(in.Get(f.Name))
		if f.Uppercase {
			v = strings.ToUpper(v)
		}
		if v != "" {
			out.Set(f.Name, v)
		}
	}
	return out
}
