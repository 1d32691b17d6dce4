package repogen

import (
	"context"
	"fmt"

	"github.com/code19m/errx"
	"github.com/uptrace/bun"

	"github.com/forja-labs/pkg/pg"
)

const (
	codeMultipleRowsFound      = "MULTIPLE_ROWS_FOUND"
	codeIncorrectRowsAffection = "INCORRECT_ROWS_AFFECTION"

	largeBulkSize = 10
)

// Verify that PgCommandRepo implements CommandRepo at compile time.
var _ CommandRepo[struct{}, struct{}] = (*PgCommandRepo[struct{}, struct{}])(nil)

// PgCommandRepo provides CRUD + Bulk operations for a PostgreSQL database using bun ORM.
type PgCommandRepo[E any, F any] struct {
	*PgQueryRepo[E, F]

	// conflictCodesMap is a map of PostgreSQL constraint names to error codes.
	// E.g. map["users_email_key"] = "EMAIL_ALREADY_EXISTS"
	conflictCodesMap map[string]string
}

// PgCommandRepoBuilder is a builder for PgCommandRepo with sensible defaults.
type PgCommandRepoBuilder[E any, F any] struct {
	queryBuilder     *PgQueryRepoBuilder[E, F]
	conflictCodesMap map[string]string
}

// NewPgCommandRepoBuilder creates a new builder with sensible defaults.
func NewPgCommandRepoBuilder[E any, F any](idb bun.IDB) *PgCommandRepoBuilder[E, F] {
	return &PgCommandRepoBuilder[E, F]{
		queryBuilder:     NewPgQueryRepoBuilder[E, F](idb),
		conflictCodesMap: make(map[string]string),
	}
}

// WithEntityName overrides the entity name used in error messages.
func (b *PgCommandRepoBuilder[E, F]) WithEntityName(name string) *PgCommandRepoBuilder[E, F] {
	b.queryBuilder.WithEntityName(name)
	return b
}

// WithSchemaName sets the schema name.
func (b *PgCommandRepoBuilder[E, F]) WithSchemaName(name string) *PgCommandRepoBuilder[E, F] {
	b.queryBuilder.WithSchemaName(name)
	return b
}

// WithNotFoundCode sets the error code for not found errors.
func (b *PgCommandRepoBuilder[E, F]) WithNotFoundCode(code string) *PgCommandRepoBuilder[E, F] {
	b.queryBuilder.WithNotFoundCode(code)
	return b
}

// WithFilterFunc sets the filter function.
func (b *PgCommandRepoBuilder[E, F]) WithFilterFunc(
	fn func(q *bun.SelectQuery, filters F) *bun.SelectQuery,
) *PgCommandRepoBuilder[E, F] {
	b.queryBuilder.WithFilterFunc(fn)
	return b
}

// WithConflictCode maps a PostgreSQL constraint name to a domain error code.
func (b *PgCommandRepoBuilder[E, F]) WithConflictCode(constraint, code string) *PgCommandRepoBuilder[E, F] {
	b.conflictCodesMap[constraint] = code
	return b
}

// Build creates the PgCommandRepo.
func (b *PgCommandRepoBuilder[E, F]) Build() *PgCommandRepo[E, F] {
	return &PgCommandRepo[E, F]{
		PgQueryRepo:      b.queryBuilder.Build(),
		conflictCodesMap: b.conflictCodesMap,
	}
}

func (r *PgCommandRepo[E, F]) Create(ctx context.Context, entity *E) (*E, error) {
	q := r.idb.NewInsert().Model(entity).Returning("*")
	q = r.applyInsertModelTableExpr(q)
	_, err := q.Exec(ctx)
	if err != nil {
		if code, exists := r.conflictCodesMap[pg.ConstraintName(err)]; exists {
			return nil, errx.New(
				fmt.Sprintf("conflict while creating %s", r.entityName),
				errx.WithCode(code),
				errx.WithDetails(pg.GetPgErrorDetails(err, q)),
			)
		}
		return nil, errx.Wrap(err, errx.WithDetails(pg.GetPgErrorDetails(err, q)))
	}

	return entity, nil
}

func (r *PgCommandRepo[E, F]) Update(ctx context.Context, entity *E) (*E, error) {
	q := r.idb.NewUpdate().Model(entity).WherePK().Returning("*")
	q = r.applyUpdateModelTableExpr(q)
	result, err := q.Exec(ctx)
	if err != nil {
		if code, exists := r.conflictCodesMap[pg.ConstraintName(err)]; exists {
			return nil, errx.New(
				fmt.Sprintf("conflict while updating %s", r.entityName),
				errx.WithCode(code),
				errx.WithDetails(pg.GetPgErrorDetails(err, q)),
			)
		}
		return nil, errx.Wrap(err, errx.WithDetails(pg.GetPgErrorDetails(err, q)))
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, errx.Wrap(err, errx.WithDetails(pg.GetPgErrorDetails(err, q)))
	}

	if rowsAffected == 0 {
		return nil, errx.New(
			fmt.Sprintf("no %s found to update", r.entityName),
			errx.WithCode(codeIncorrectRowsAffection),
			errx.WithDetails(pg.GetPgErrorDetails(err, q)),
		)
	}

	return entity, nil
}

func (r *PgCommandRepo[E, F]) Delete(ctx context.Context, entity *E) error {
	q := r.idb.NewDelete().Model(entity).WherePK()
	q = r.applyDeleteModelTableExpr(q)
	result, err := q.Exec(ctx)
	if err != nil {
		return errx.Wrap(err, errx.WithDetails(pg.GetPgErrorDetails(err, q)))
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return errx.Wrap(err, errx.WithDetails(pg.GetPgErrorDetails(err, q)))
	}

	if rowsAffected == 0 {
		return errx.New(
			fmt.Sprintf("no %s found to delete", r.entityName),
			errx.WithCode(codeIncorrectRowsAffection),
			errx.WithDetails(pg.GetPgErrorDetails(err, q)),
		)
	}

	return nil
}

func (r *PgCommandRepo[E, F]) BulkCreate(ctx context.Context, entities []E) error {
	q := r.idb.NewInsert().Model(&entities)
	q = r.applyInsertModelTableExpr(q)
	_, err := q.Exec(ctx)
	if err != nil {
		if len(entities) > largeBulkSize {
			q = nil // Set q to nil to avoid huge log size in large inserts
		}
		if code, exists := r.conflictCodesMap[pg.ConstraintName(err)]; exists {
			return errx.New(
				fmt.Sprintf("conflict while bulk creating %s", r.entityName),
				errx.WithCode(code),
				errx.WithDetails(pg.GetPgErrorDetails(err, q)),
			)
		}
		return errx.Wrap(err, errx.WithDetails(pg.GetPgErrorDetails(err, q)))
	}

	return nil
}

func (r *PgCommandRepo[E, F]) BulkUpdate(ctx context.Context, entities []E) error {
	q := r.idb.NewUpdate().Model(&entities).Bulk()
	q = r.applyUpdateModelTableExpr(q)
	result, err := q.Exec(ctx)
	if err != nil {
		if len(entities) > largeBulkSize {
			q = nil // Set q to nil to avoid huge log size in large updates
		}
		if code, exists := r.conflictCodesMap[pg.ConstraintName(err)]; exists {
			return errx.New(
				fmt.Sprintf("conflict while bulk updating %s", r.entityName),
				errx.WithCode(code),
				errx.WithDetails(pg.GetPgErrorDetails(err, q)),
			)
		}
		return errx.Wrap(err, errx.WithDetails(pg.GetPgErrorDetails(err, q)))
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return errx.Wrap(err, errx.WithDetails(pg.GetPgErrorDetails(err, q)))
	}

	if rowsAffected != int64(len(entities)) {
		if len(entities) > largeBulkSize {
			q = nil // Set q to nil to avoid huge log size in large updates
		}
		return errx.New(
			fmt.Sprintf("not all %s were updated", r.entityName),
			errx.WithCode(codeIncorrectRowsAffection),
			errx.WithDetails(pg.GetPgErrorDetails(err, q)),
		)
	}

	return nil
}

func (r *PgCommandRepo[E, F]) BulkDelete(ctx context.Context, entities []E) error {
	q := r.idb.NewDelete().Model(&entities).WherePK()
	q = r.applyDeleteModelTableExpr(q)
	result, err := q.Exec(ctx)
	if err != nil {
		if len(entities) > largeBulkSize {
			q = nil // Set q to nil to avoid huge log size in large deletes
		}
		return errx.Wrap(err, errx.WithDetails(pg.GetPgErrorDetails(err, q)))
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return errx.Wrap(err, errx.WithDetails(pg.GetPgErrorDetails(err, q)))
	}

	if rowsAffected != int64(len(entities)) {
		if len(entities) > largeBulkSize {
			q = nil // Set q to nil to avoid huge log size in large deletes
		}
		return errx.New(
			fmt.Sprintf("not all %s were deleted", r.entityName),
			errx.WithCode(codeIncorrectRowsAffection),
			errx.WithDetails(pg.GetPgErrorDetails(err, q)),
		)
	}

	return nil
}

func (r *PgCommandRepo[E, F]) applyInsertModelTableExpr(q *bun.InsertQuery) *bun.InsertQuery {
	table := q.GetModel().(bun.TableModel).Table() //nolint:errcheck // table name is always available
	return q.ModelTableExpr("?.? AS ?", bun.Ident(r.schemaName), bun.Ident(table.Name), bun.Ident(table.Alias))
}

func (r *PgCommandRepo[E, F]) applyUpdateModelTableExpr(q *bun.UpdateQuery) *bun.UpdateQuery {
	table := q.GetModel().(bun.TableModel).Table() //nolint:errcheck // table name is always available
	return q.ModelTableExpr("?.? AS ?", bun.Ident(r.schemaName), bun.Ident(table.Name), bun.Ident(table.Alias))
}

func (r *PgCommandRepo[E, F]) applyDeleteModelTableExpr(q *bun.DeleteQuery) *bun.DeleteQuery {
	table := q.GetModel().(bun.TableModel).Table() //nolint:errcheck // table name is always available
	return q.ModelTableExpr("?.? AS ?", bun.Ident(r.schemaName), bun.Ident(table.Name), bun.Ident(table.Alias))
}
