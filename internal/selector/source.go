package selector

import (
	"context"
	"sort"

	"github.com/odyssey-erp/trade-admin/internal/apiclient"
)

// Source yields the closed option set of a picker.
type Source interface {
	Options(ctx context.Context) ([]Option, error)
}

// SourceFunc adapts a function to Source.
type SourceFunc func(ctx context.Context) ([]Option, error)

// Options implements Source.
func (f SourceFunc) Options(ctx context.Context) ([]Option, error) { return f(ctx) }

// FromCollection reads one generously sized page of a backend collection
// and maps each record to an option.
func FromCollection[T any](coll *apiclient.Collection[T], limit int, sortField string, mapFn func(T) Option) Source {
	return SourceFunc(func(ctx context.Context) ([]Option, error) {
		page, err := coll.List(ctx, apiclient.ListParams{
			Page:  1,
			Limit: limit,
			Sort:  apiclient.Sort{Field: sortField, Dir: apiclient.SortAsc},
		})
		if err != nil {
			return nil, err
		}
		opts := make([]Option, 0, len(page.Data))
		for _, rec := range page.Data {
			opts = append(opts, mapFn(rec))
		}
		return opts, nil
	})
}

// Registry names the option sources available to forms.
type Registry struct {
	sources map[string]Source
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{sources: map[string]Source{}}
}

// Register adds or replaces a source.
func (r *Registry) Register(name string, src Source) {
	r.sources[name] = src
}

// Lookup returns the named source.
func (r *Registry) Lookup(name string) (Source, bool) {
	if r == nil {
		return nil, false
	}
	src, ok := r.sources[name]
	return src, ok
}

// Names lists registered sources in order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.sources))
	for name := range r.sources {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Load builds a picker state for the named source. A failing or unknown
// source yields a disabled picker rather than an error page.
func (r *Registry) Load(ctx context.Context, name string) (*State, error) {
	src, ok := r.Lookup(name)
	if !ok {
		return NewState(nil), nil
	}
	opts, err := src.Options(ctx)
	if err != nil {
		return NewState(nil), err
	}
	return NewState(opts), nil
}
