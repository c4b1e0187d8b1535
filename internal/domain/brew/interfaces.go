package brew

import "context"

// Repository provides persistence for brewing records.
type Repository interface {
	Create(ctx context.Context, rec *Record) error
	Get(ctx context.Context, id int64) (*Record, error)
	List(ctx context.Context, opts ListOptions) ([]Record, error)
	Delete(ctx context.Context, id int64) error
}
