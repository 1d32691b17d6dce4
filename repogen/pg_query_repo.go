package repogen

import (
	"context"
	"fmt"
	"reflect"

	"github.com/code19m/errx"
	"github.com/uptrace/bun"

	"github.com/forja-labs/pkg/pg"
)

// Verify that PgQueryRepo implements QueryRepo at compile time.
var _ QueryRepo[struct{}, struct{}] = (*PgQueryRepo[struct{}, struct{}])(nil)

// PgQueryRepo provides read-only access to a PostgreSQL database using bun ORM.
type PgQueryRepo[E any, F any] struct {
	idb          bun.IDB
	entityName   string
	schemaName   string
	notFoundCode string

	filterFunc func(q *bun.SelectQuery, filters F) *bun.SelectQuery
}

// PgQueryRepoBuilder is a builder for PgQueryRepo with sensible defaults.
type PgQueryRepoBuilder[E any, F any] struct {
	idb          bun.IDB
	entityName   string
	schemaName   string
	notFoundCode string
	filterFunc   func(q *bun.SelectQuery, filters F) *bun.SelectQuery
}

// NewPgQueryRepoBuilder creates a new builder with sensible defaults.
func NewPgQueryRepoBuilder[E any, F any](idb bun.IDB) *PgQueryRepoBuilder[E, F] {
	return &PgQueryRepoBuilder[E, F]{
		idb:          idb,
		entityName:   nameOf(new(E)),
		schemaName:   "public",
		notFoundCode: "OBJECT_NOT_FOUND",
		filterFunc:   func(q *bun.SelectQuery, _ F) *bun.SelectQuery { return q },
	}
}

// WithEntityName overrides the entity name used in error messages.
func (b *PgQueryRepoBuilder[E, F]) WithEntityName(name string) *PgQueryRepoBuilder[E, F] {
	b.entityName = name
	return b
}

// WithSchemaName sets the schema name.
func (b *PgQueryRepoBuilder[E, F]) WithSchemaName(name string) *PgQueryRepoBuilder[E, F] {
	b.schemaName = name
	return b
}

// WithNotFoundCode sets the error code for not found errors.
func (b *PgQueryRepoBuilder[E, F]) WithNotFoundCode(code string) *PgQueryRepoBuilder[E, F] {
	b.notFoundCode = code
	return b
}

// WithFilterFunc sets the filter function.
func (b *PgQueryRepoBuilder[E, F]) WithFilterFunc(
	fn func(q *bun.SelectQuery, filters F) *bun.SelectQuery,
) *PgQueryRepoBuilder[E, F] {
	b.filterFunc = fn
	return b
}

// Build creates the PgQueryRepo.
func (b *PgQueryRepoBuilder[E, F]) Build() *PgQueryRepo[E, F] {
	return &PgQueryRepo[E, F]{
		idb:          b.idb,
		entityName:   b.entityName,
		schemaName:   b.schemaName,
		notFoundCode: b.notFoundCode,
		filterFunc:   b.filterFunc,
	}
}

func (r *PgQueryRepo[E, F]) Get(ctx context.Context, filters F) (*E, error) {
	var entities = make([]E, 0)
	q := r.idb.NewSelect().Model(&entities).Limit(2) //nolint:mnd // limit 2 to check for multiple rows
	q = r.applyModelTableExpr(q)
	q = r.filterFunc(q, filters)

	err := q.Scan(ctx)
	if err != nil {
		return nil, errx.Wrap(err, errx.WithDetails(pg.GetPgErrorDetails(err, q)))
	}

	if len(entities) == 0 {
		return nil, errx.New(
			fmt.Sprintf("no %s found", r.entityName),
			errx.WithCode(r.notFoundCode),
			errx.WithDetails(pg.GetPgErrorDetails(err, q)),
		)
	}

	if len(entities) > 1 {
		return nil, errx.New(
			fmt.Sprintf("multiple %s found", r.entityName),
			errx.WithCode(codeMultipleRowsFound),
			errx.WithDetails(pg.GetPgErrorDetails(err, q)),
		)
	}

	return &entities[0], nil
}

func (r *PgQueryRepo[E, F]) List(ctx context.Context, filters F) ([]E, error) {
	var entities = make([]E, 0)
	q := r.idb.NewSelect().Model(&entities)
	q = r.applyModelTableExpr(q)
	q = r.filterFunc(q, filters)

	err := q.Scan(ctx)
	if err != nil {
		return nil, errx.Wrap(err, errx.WithDetails(pg.GetPgErrorDetails(err, q)))
	}

	return entities, nil
}

func (r *PgQueryRepo[E, F]) ListWithCount(ctx context.Context, filters F) ([]E, int, error) {
	var entities = make([]E, 0)
	q := r.idb.NewSelect().Model(&entities)
	q = r.applyModelTableExpr(q)
	q = r.filterFunc(q, filters)

	err := q.Scan(ctx)
	if err != nil {
		return nil, 0, errx.Wrap(err, errx.WithDetails(pg.GetPgErrorDetails(err, q)))
	}

	q = q.Offset(0).Limit(0)
	count, err := q.Count(ctx)
	if err != nil {
		return nil, 0, errx.Wrap(err, errx.WithDetails(pg.GetPgErrorDetails(err, q)))
	}

	return entities, count, nil
}

func (r *PgQueryRepo[E, F]) Count(ctx context.Context, filters F) (int, error) {
	q := r.idb.NewSelect().Model((*E)(nil))
	q = r.applyModelTableExpr(q)
	q = r.filterFunc(q, filters)
	q = q.Offset(0).Limit(0)

	count, err := q.Count(ctx)
	if err != nil {
		return 0, errx.Wrap(err, errx.WithDetails(pg.GetPgErrorDetails(err, q)))
	}

	return count, nil
}

func (r *PgQueryRepo[E, F]) FirstOrNil(ctx context.Context, filters F) (*E, error) {
	var entities = make([]E, 0)
	q := r.idb.NewSelect().Model(&entities).Limit(1)
	q = r.applyModelTableExpr(q)
	q = r.filterFunc(q, filters)

	err := q.Scan(ctx)
	if err != nil {
		return nil, errx.Wrap(err, errx.WithDetails(pg.GetPgErrorDetails(err, q)))
	}

	if len(entities) == 0 {
		return nil, nil //nolint:nilnil // Intentionally returning nil,nil as function name indicates
	}

	return &entities[0], nil
}

func (r *PgQueryRepo[E, F]) Exists(ctx context.Context, filters F) (bool, error) {
	q := r.idb.NewSelect().Model((*E)(nil))
	q = r.applyModelTableExpr(q)
	q = r.filterFunc(q, filters)

	exists, err := q.Exists(ctx)
	if err != nil {
		return false, errx.Wrap(err, errx.WithDetails(pg.GetPgErrorDetails(err, q)))
	}

	return exists, nil
}

func (r *PgQueryRepo[E, F]) NextSequenceValue(ctx context.Context, sequenceName string) (int64, error) {
	var next int64
	q := r.idb.NewRaw("SELECT nextval(?)", r.schemaName+"."+sequenceName)

	err := q.Scan(ctx, &next)
	if err != nil {
		return 0, errx.Wrap(err, errx.WithDetails(errx.D{"sequence": sequenceName}))
	}

	return next, nil
}

func (r *PgQueryRepo[E, F]) applyModelTableExpr(q *bun.SelectQuery) *bun.SelectQuery {
	table := q.GetModel().(bun.TableModel).Table() //nolint:errcheck // table name is always available
	return q.ModelTableExpr("?.? AS ?", bun.Ident(r.schemaName), bun.Ident(table.Name), bun.Ident(table.Alias))
}

// nameOf returns the name of the type of the given value.
// If the value is a pointer, it returns the name of the pointed-to type.
func nameOf(v any) string {
	t := reflect.TypeOf(v)
	if t.Kind() == reflect.Pointer {
		return t.Elem().Name()
	}
	return t.Name()
}
