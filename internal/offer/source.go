package offer

import (
	"context"
	"fmt"
	"strings"

	"github.com/odyssey-erp/trade-admin/internal/apiclient"
)

// Backend collections read by the exporter.
const (
	DocumentResource = "sales-offers"
	LineResource     = "sales-offer-lines"
)

// maxLinePages stops a backend that keeps reporting more pages.
const maxLinePages = 1000

// Source reads offers and their lines from the backend.
type Source struct {
	documents *apiclient.Collection[Document]
	lines     *apiclient.Collection[Line]
	pageSize  int
}

// NewSource builds a Source fetching lines pageSize at a time.
func NewSource(client *apiclient.Client, pageSize int) *Source {
	if pageSize <= 0 {
		pageSize = 200
	}
	return &Source{
		documents: apiclient.NewCollection[Document](client, DocumentResource),
		lines:     apiclient.NewCollection[Line](client, LineResource),
		pageSize:  pageSize,
	}
}

// Document fetches the offer header.
func (s *Source) Document(ctx context.Context, ref Reference) (Document, error) {
	doc, err := s.documents.Get(ctx, ref.DocumentNo)
	if err != nil {
		return Document{}, fmt.Errorf("fetch offer %s: %w", ref.DocumentNo, err)
	}
	if strings.TrimSpace(doc.DocumentNo) == "" {
		doc.DocumentNo = ref.DocumentNo
	}
	return doc, nil
}

// Lines fetches every line of the offer, following pages until the
// backend reports the last one.
func (s *Source) Lines(ctx context.Context, ref Reference) ([]Line, error) {
	var out []Line
	for page := 1; page <= maxLinePages; page++ {
		res, err := s.lines.List(ctx, apiclient.ListParams{
			Page:    page,
			Limit:   s.pageSize,
			Sort:    apiclient.Sort{Field: "lineNo", Dir: apiclient.SortAsc},
			Filters: map[string]string{"documentNo": ref.DocumentNo},
		})
		if err != nil {
			return nil, fmt.Errorf("fetch offer %s lines page %d: %w", ref.DocumentNo, page, err)
		}
		out = append(out, res.Data...)
		if len(res.Data) == 0 || page >= res.Pages {
			return out, nil
		}
	}
	return nil, fmt.Errorf("fetch offer %s lines: more than %d pages", ref.DocumentNo, maxLinePages)
}
