package bean

import "context"

// Repository provides persistence for beans.
type Repository interface {
	Create(ctx context.Context, b *Bean) error
	Get(ctx context.Context, id int64) (*Bean, error)
	List(ctx context.Context) ([]Bean, error)
	Delete(ctx context.Context, id int64) error
}
