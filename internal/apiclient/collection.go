package apiclient

import (
	"context"
	"net/http"
	"net/url"
)

// Page is one slice of a collection: { data, total, page, pages }.
type Page[T any] struct {
	Data  []T `json:"data"`
	Total int `json:"total"`
	Page  int `json:"page"`
	Pages int `json:"pages"`
}

// Collection is a typed view of /api/<resource>.
type Collection[T any] struct {
	client   *Client
	resource string
}

// NewCollection binds a record type to a resource path such as "parameters".
func NewCollection[T any](client *Client, resource string) *Collection[T] {
	return &Collection[T]{client: client, resource: resource}
}

// Resource returns the resource path segment.
func (c *Collection[T]) Resource() string {
	return c.resource
}

// List fetches one page.
func (c *Collection[T]) List(ctx context.Context, params ListParams) (Page[T], error) {
	var page Page[T]
	if err := c.client.do(ctx, http.MethodGet, c.resource, c.resource, params.Values(), nil, &page, 0); err != nil {
		return Page[T]{}, err
	}
	if page.Data == nil {
		page.Data = []T{}
	}
	return page, nil
}

// Get fetches a single record by id.
func (c *Collection[T]) Get(ctx context.Context, id string) (T, error) {
	var rec T
	err := c.client.do(ctx, http.MethodGet, c.resource, c.itemPath(id), nil, nil, &rec, 0)
	return rec, err
}

// Create POSTs body and returns the created record.
func (c *Collection[T]) Create(ctx context.Context, body any) (T, error) {
	var rec T
	err := c.client.do(ctx, http.MethodPost, c.resource, c.resource, nil, body, &rec, 0)
	return rec, err
}

// Update PUTs the full editable field set of a record.
func (c *Collection[T]) Update(ctx context.Context, id string, body any) (T, error) {
	var rec T
	err := c.client.do(ctx, http.MethodPut, c.resource, c.itemPath(id), nil, body, &rec, 0)
	return rec, err
}

// Delete removes a record. Only 204 No Content counts as success.
func (c *Collection[T]) Delete(ctx context.Context, id string) error {
	return c.client.do(ctx, http.MethodDelete, c.resource, c.itemPath(id), nil, nil, nil, http.StatusNoContent)
}

func (c *Collection[T]) itemPath(id string) string {
	return c.resource + "/" + url.PathEscape(id)
}
