package crudsvc

import (
	"github.com/forja-labs/pkg/pagination"
	"github.com/forja-labs/pkg/workpool"
)

// Option configures a Service.
type Option[E any, F any] func(*Service[E, F])

// WithExecutor binds a worker pool that commands created by the service
// use for async execution.
func WithExecutor[E any, F any](pool *workpool.Pool) Option[E, F] {
	return func(s *Service[E, F]) {
		s.executor = pool
	}
}

// WithAsyncWrites dispatches mutations through the bound worker pool.
// It has no effect unless an executor is also configured.
func WithAsyncWrites[E any, F any](async bool) Option[E, F] {
	return func(s *Service[E, F]) {
		s.asyncWrites = async
	}
}

// WithSortFields whitelists the fields clients may sort paged listings by.
func WithSortFields[E any, F any](fields ...string) Option[E, F] {
	return func(s *Service[E, F]) {
		s.sortFields = fields
	}
}

// WithPageOptions overrides pagination defaults for ListPaged.
func WithPageOptions[E any, F any](opts ...pagination.Option) Option[E, F] {
	return func(s *Service[E, F]) {
		s.pageOpts = opts
	}
}

// WithListDecorator sets the function that folds pagination and sorting
// into the repository filter type.
func WithListDecorator[E any, F any](fn ListDecorator[F]) Option[E, F] {
	return func(s *Service[E, F]) {
		s.listDecorator = fn
	}
}
