package crud

import (
	"net/url"

	"github.com/odyssey-erp/trade-admin/internal/listing"
	"github.com/odyssey-erp/trade-admin/internal/selector"
)

type headerView struct {
	Label     string
	Sortable  bool
	Href      string
	Indicator string
}

type rowView struct {
	ID         string
	Cells      []string
	Detail     []DetailRow
	EditHref   string
	DeleteHref string
}

type linkView struct {
	N       int
	Href    string
	Current bool
}

type pagerView struct {
	Pagination listing.Pagination
	Prev       string
	Next       string
	Pages      []linkView
	Limits     []linkView
}

type choiceView struct {
	Value    string
	Label    string
	Href     string
	Selected bool
}

type filterView struct {
	Label   string
	Choices []choiceView
}

type hiddenView struct {
	Name  string
	Value string
}

type listPage struct {
	Path       string
	NewHref    string
	Searchable bool
	Query      string
	Hidden     []hiddenView
	Filters    []filterView
	Columns    []headerView
	Rows       []rowView
	Span       int
	Pager      pagerView
	Error      string
}

type selectorView struct {
	Source   string
	Disabled bool
	Hint     string
	Options  []selector.View
}

type fieldView struct {
	Name      string
	Label     string
	Kind      FieldKind
	Required  bool
	Uppercase bool
	Value     string
	Checked   bool
	Error     string
	Choices   []choiceView
	Selector  *selectorView
}

type formPage struct {
	Action     string
	CancelHref string
	IsEdit     bool
	Fields     []fieldView
	Error      string
}

type deletePage struct {
	Action     string
	CancelHref string
	Summary    []DetailRow
}

func newPagerView(state listing.State, base string, p listing.Pagination) pagerView {
	v := pagerView{Pagination: p}
	if p.HasPrev {
		v.Prev = state.WithPage(p.Page - 1).Href(base)
	}
	if p.HasNext {
		v.Next = state.WithPage(p.Page + 1).Href(base)
	}
	for _, n := range p.Pages {
		v.Pages = append(v.Pages, linkView{N: n, Href: state.WithPage(n).Href(base), Current: n == p.Page})
	}
	for _, n := range listing.LimitChoices {
		v.Limits = append(v.Limits, linkView{N: n, Href: state.WithLimit(n).Href(base), Current: n == state.Limit})
	}
	return v
}

// hiddenState keeps sort, limit and filters when the search form submits.
func hiddenState(state listing.State) []hiddenView {
	vals := state.Values()
	vals.Del("query")
	vals.Del("page")
	return flatten(vals)
}

func flatten(vals url.Values) []hiddenView {
	var out []hiddenView
	for _, key := range sortedKeys(vals) {
		for _, v := range vals[key] {
			out = append(out, hiddenView{Name: key, Value: v})
		}
	}
	return out
}
