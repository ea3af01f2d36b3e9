package serviceconfig

import "context"

// Repository guards the singleton at the data-access boundary: Create fails
// with errs.ErrSingletonViolation when a row already exists, Fetch fails with
// errs.ErrNoConfig when none does, and deletion is not expressible at all.
type Repository interface {
	Fetch(ctx context.Context) (*ServiceConfig, error)
	Create(ctx context.Context, cfg *ServiceConfig) (*ServiceConfig, error)
	Update(ctx context.Context, cfg *ServiceConfig) (*ServiceConfig, error)
}
