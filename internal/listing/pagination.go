package listing

import "math"

// Pagination is the pager model rendered under a list.
type Pagination struct {
	Page       int
	PerPage    int
	Total      int
	TotalPages int
	HasPrev    bool
	HasNext    bool
	Pages      []int
}

const pagerWindow = 2

// NewPagination builds pager metadata. pages is the backend's own count;
// when it is missing it is derived from total and perPage.
func NewPagination(page, perPage, total, pages int) Pagination {
	if perPage <= 0 {
		perPage = DefaultLimit
	}
	if page <= 0 {
		page = DefaultPage
	}
	if pages <= 0 {
		pages = int(math.Ceil(float64(total) / float64(perPage)))
	}
	p := Pagination{
		Page:       page,
		PerPage:    perPage,
		Total:      total,
		TotalPages: pages,
		HasPrev:    page > 1,
		HasNext:    page < pages,
	}
	lo := max(1, page-pagerWindow)
	hi := min(pages, page+pagerWindow)
	for i := lo; i <= hi; i++ {
		p.Pages = append(p.Pages, i)
	}
	return p
}
