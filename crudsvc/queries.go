package crudsvc

import (
	"context"

	"github.com/forja-labs/pkg/pagination"
	"github.com/forja-labs/pkg/repogen"
	"github.com/forja-labs/pkg/sorter"
)

// getElementQuery fetches exactly one entity.
type getElementQuery[E any, F any] struct {
	repo repogen.QueryRepo[E, F]
}

func (q *getElementQuery[E, F]) PreProcess(context.Context, F) error {
	return nil
}

func (q *getElementQuery[E, F]) Process(ctx context.Context, filters F) (*E, error) {
	return q.repo.Get(ctx, filters)
}

// listAllQuery fetches every matching entity.
type listAllQuery[E any, F any] struct {
	repo repogen.QueryRepo[E, F]
}

func (q *listAllQuery[E, F]) PreProcess(context.Context, F) error {
	return nil
}

func (q *listAllQuery[E, F]) Process(ctx context.Context, filters F) ([]E, error) {
	return q.repo.List(ctx, filters)
}

// pagedFilters bundles the caller's filters with normalized paging and
// sorting for the paged listing query.
type pagedFilters[F any] struct {
	filters F
	page    pagination.Request
	sort    sorter.Options
}

// listPagedQuery fetches one page of entities with totals.
type listPagedQuery[E any, F any] struct {
	repo     repogen.QueryRepo[E, F]
	decorate ListDecorator[F]
}

func (q *listPagedQuery[E, F]) PreProcess(context.Context, pagedFilters[F]) error {
	return nil
}

func (q *listPagedQuery[E, F]) Process(ctx context.Context, pf pagedFilters[F]) (pagination.Response[E], error) {
	filters := q.decorate(pf.filters, pf.page, pf.sort)

	items, count, err := q.repo.ListWithCount(ctx, filters)
	if err != nil {
		return pagination.Response[E]{}, err
	}

	return pagination.NewResponse(items, int64(count), pf.page), nil
}

// existsQuery checks whether any entity matches the filters.
type existsQuery[E any, F any] struct {
	repo repogen.QueryRepo[E, F]
}

func (q *existsQuery[E, F]) PreProcess(context.Context, F) error {
	return nil
}

func (q *existsQuery[E, F]) Process(ctx context.Context, filters F) (bool, error) {
	return q.repo.Exists(ctx, filters)
}
