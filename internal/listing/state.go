// Package listing holds the console-side state of a paginated list page:
// which page, how many rows, which sort and which filters.
package listing

import (
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/odyssey-erp/trade-admin/internal/apiclient"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// LimitChoices are the page sizes offered by the pager.
var LimitChoices = []int{10, 25, 50, 100}

// State is the list state encoded in the console URL.
type State struct {
	Page      int
	Limit     int
	SortField string
	SortDir   apiclient.SortDir
	Query     string
	Filters   map[string]string
}

// Parse reads state from console query parameters. Only filter keys listed
// in filterKeys are picked up.
func Parse(q url.Values, filterKeys []string) State {
	s := State{
		Page:    DefaultPage,
		Limit:   DefaultLimit,
		SortDir: apiclient.SortAsc,
		Query:   strings.TrimSpace(q.Get("query")),
		Filters: map[string]string{},
	}
	if page, err := strconv.Atoi(q.Get("page")); err == nil && page > 0 {
		s.Page = page
	}
	if limit, err := strconv.Atoi(q.Get("limit")); err == nil && limit > 0 {
		s.Limit = min(limit, MaxLimit)
	}
	s.SortField = strings.TrimSpace(q.Get("sort"))
	if s.SortField != "" && q.Get("dir") == "desc" {
		s.SortDir = apiclient.SortDesc
	}
	for _, key := range filterKeys {
		if v := strings.TrimSpace(q.Get(key)); v != "" {
			s.Filters[key] = v
		}
	}
	return s
}

// Toggle is a click on a sortable column header. A column that is not the
// current sort starts ascending; clicking the current sort flips it.
func (s State) Toggle(field string) State {
	next := s.clone()
	if s.SortField == field {
		if s.SortDir == apiclient.SortDesc {
			next.SortDir = apiclient.SortAsc
		} else {
			next.SortDir = apiclient.SortDesc
		}
		return next
	}
	next.SortField = field
	next.SortDir = apiclient.SortAsc
	return next
}

// WithPage moves to page p.
func (s State) WithPage(p int) State {
	next := s.clone()
	next.Page = max(p, DefaultPage)
	return next
}

// WithLimit changes the page size and returns to the first page.
func (s State) WithLimit(limit int) State {
	next := s.clone()
	next.Limit = min(max(limit, 1), MaxLimit)
	next.Page = DefaultPage
	return next
}

// WithQuery changes the search term and returns to the first page.
func (s State) WithQuery(q string) State {
	next := s.clone()
	next.Query = strings.TrimSpace(q)
	next.Page = DefaultPage
	return next
}

// WithFilter sets or clears one filter and returns to the first page.
func (s State) WithFilter(key, value string) State {
	next := s.clone()
	value = strings.TrimSpace(value)
	if value == "" {
		delete(next.Filters, key)
	} else {
		next.Filters[key] = value
	}
	next.Page = DefaultPage
	return next
}

// Params converts the state into a backend list request.
func (s State) Params() apiclient.ListParams {
	p := apiclient.ListParams{
		Page:    s.Page,
		Limit:   s.Limit,
		Query:   s.Query,
		Filters: make(map[string]string, len(s.Filters)),
	}
	if s.SortField != "" {
		p.Sort = apiclient.Sort{Field: s.SortField, Dir: s.SortDir}
	}
	for k, v := range s.Filters {
		p.Filters[k] = v
	}
	return p
}

// Values encodes the console URL parameters, leaving defaults out.
func (s State) Values() url.Values {
	v := url.Values{}
	if s.Page > DefaultPage {
		v.Set("page", strconv.Itoa(s.Page))
	}
	if s.Limit > 0 && s.Limit != DefaultLimit {
		v.Set("limit", strconv.Itoa(s.Limit))
	}
	if s.SortField != "" {
		v.Set("sort", s.SortField)
		if s.SortDir == apiclient.SortDesc {
			v.Set("dir", "desc")
		}
	}
	if s.Query != "" {
		v.Set("query", s.Query)
	}
	for k, val := range s.Filters {
		v.Set(k, val)
	}
	return v
}

// Href builds a console link for base with this state.
func (s State) Href(base string) string {
	if enc := s.Values().Encode(); enc != "" {
		return base + "?" + enc
	}
	return base
}

// SortIndicator returns an arrow for the column currently sorted.
func (s State) SortIndicator(field string) string {
	if s.SortField != field {
		return ""
	}
	if s.SortDir == apiclient.SortDesc {
		return "▼"
	}
	return "▲"
}

// FilterKeys returns the active filter keys in stable order.
func (s State) FilterKeys() []string {
	keys := make([]string, 0, len(s.Filters))
	for k := range s.Filters {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (s State) clone() State {
	next := s
	next.Filters = make(map[string]string, len(s.Filters))
	for k, v := range s.Filters {
		next.Filters[k] = v
	}
	return next
}
