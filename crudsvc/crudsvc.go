// Package crudsvc provides a generic CRUD service on top of the pipeline
// and repository packages.
//
// Service composes a CommandRepo with pagination and sorting. Every mutation
// runs as a command through the three-phase command pipeline and every read
// runs as a query through the query pipeline, so pipeline middleware, logging
// and the unified domain error contract apply uniformly to generated CRUD
// endpoints.
package crudsvc

import (
	"context"

	"github.com/forja-labs/pkg/pagination"
	"github.com/forja-labs/pkg/pipeline/command"
	"github.com/forja-labs/pkg/pipeline/query"
	"github.com/forja-labs/pkg/repogen"
	"github.com/forja-labs/pkg/sorter"
	"github.com/forja-labs/pkg/workpool"
)

// ListDecorator folds pagination and sorting into the repository filter type.
// Implementations typically copy limit/offset and order clauses into fields
// that the repository filter function understands.
type ListDecorator[F any] func(filters F, page pagination.Request, sort sorter.Options) F

// Service exposes generic CRUD operations for entity type E filtered by F.
type Service[E any, F any] struct {
	repo repogen.CommandRepo[E, F]

	executor    *workpool.Pool
	asyncWrites bool

	sortFields    []string
	pageOpts      []pagination.Option
	listDecorator ListDecorator[F]
}

// New creates a CRUD service over the given repository.
func New[E any, F any](repo repogen.CommandRepo[E, F], opts ...Option[E, F]) *Service[E, F] {
	s := &Service[E, F]{
		repo:          repo,
		listDecorator: func(filters F, _ pagination.Request, _ sorter.Options) F { return filters },
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// GetElement returns exactly one entity matching the filters.
func (s *Service[E, F]) GetElement(ctx context.Context, filters F) (*E, error) {
	return query.Execute(ctx, &getElementQuery[E, F]{repo: s.repo}, filters)
}

// ListAll returns all entities matching the filters without pagination.
func (s *Service[E, F]) ListAll(ctx context.Context, filters F) ([]E, error) {
	return query.Execute(ctx, &listAllQuery[E, F]{repo: s.repo}, filters)
}

// ListPaged returns one page of entities with totals. Page parameters are
// normalized and the sort expression is validated against the configured
// sortable fields before reaching the repository.
func (s *Service[E, F]) ListPaged(ctx context.Context, filters F, page pagination.Request) (pagination.Response[E], error) {
	page.Normalize(s.pageOpts...)
	sort := sorter.Single(page.SortBy, page.SortDir, s.sortFields...)

	q := &listPagedQuery[E, F]{repo: s.repo, decorate: s.listDecorator}
	return query.Execute(ctx, q, pagedFilters[F]{filters: filters, page: page, sort: sort})
}

// Exists reports whether any entity matches the filters.
func (s *Service[E, F]) Exists(ctx context.Context, filters F) (bool, error) {
	return query.Execute(ctx, &existsQuery[E, F]{repo: s.repo}, filters)
}

// Save creates a new entity and returns it with generated fields populated.
func (s *Service[E, F]) Save(ctx context.Context, entity *E) (*E, error) {
	cmd := &saveCommand[E, F]{repo: s.repo}
	cmd.SetContext(entity)
	s.prepare(cmd)

	return command.Execute[*E, *E](ctx, cmd)
}

// SaveAll creates multiple entities in a single operation.
func (s *Service[E, F]) SaveAll(ctx context.Context, entities []E) error {
	cmd := &saveAllCommand[E, F]{repo: s.repo}
	cmd.SetContext(entities)
	s.prepare(cmd)

	_, err := command.Execute[[]E, command.EmptyResult](ctx, cmd)
	return err
}

// Update modifies an existing entity and returns the updated entity.
func (s *Service[E, F]) Update(ctx context.Context, entity *E) (*E, error) {
	cmd := &updateCommand[E, F]{repo: s.repo}
	cmd.SetContext(entity)
	s.prepare(cmd)

	return command.Execute[*E, *E](ctx, cmd)
}

// Delete removes an existing entity.
func (s *Service[E, F]) Delete(ctx context.Context, entity *E) error {
	cmd := &deleteCommand[E, F]{repo: s.repo}
	cmd.SetContext(entity)
	s.prepare(cmd)

	_, err := command.Execute[*E, command.EmptyResult](ctx, cmd)
	return err
}

// prepare binds the executor and async preference onto a command before
// execution.
func (s *Service[E, F]) prepare(cmd interface {
	Bind(*workpool.Pool)
	SetAsync(bool)
},
) {
	if s.executor != nil {
		cmd.Bind(s.executor)
	}
	cmd.SetAsync(s.asyncWrites && s.executor != nil)
}
