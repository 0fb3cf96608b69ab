package apiclient

import (
	"net/url"
	"strconv"
	"strings"
)

// SortDir is the backend sort direction: 1 ascending, -1 descending.
type SortDir int

const (
	SortAsc  SortDir = 1
	SortDesc SortDir = -1
)

// Sort names a field and a direction.
type Sort struct {
	Field string
	Dir   SortDir
}

// ListParams is the paginated list request for a collection endpoint.
type ListParams struct {
	Page    int
	Limit   int
	Sort    Sort
	Query   string
	Filters map[string]string
}

// Values encodes only the parameters that carry information. Zero page or
// limit, an empty sort field, a blank search term and blank filter values
// are all left out.
func (p ListParams) Values() url.Values {
	v := url.Values{}
	if p.Page > 0 {
		v.Set("page", strconv.Itoa(p.Page))
	}
	if p.Limit > 0 {
		v.Set("limit", strconv.Itoa(p.Limit))
	}
	if field := strings.TrimSpace(p.Sort.Field); field != "" {
		dir := p.Sort.Dir
		if dir != SortDesc {
			dir = SortAsc
		}
		v.Set("sort", field+":"+strconv.Itoa(int(dir)))
	}
	if q := strings.TrimSpace(p.Query); q != "" {
		v.Set("query", q)
	}
	for key, value := range p.Filters {
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)
		if key == "" || value == "" {
			continue
		}
		switch key {
		case "page", "limit", "sort", "query":
			continue
		}
		v.Set(key, value)
	}
	return v
}
