package offer

import "context"

// Renderer turns a Layout into PDF bytes.
type Renderer interface {
	Name() string
	Render(ctx context.Context, layout Layout) ([]byte, error)
}
