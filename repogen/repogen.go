// Package repogen provides generic repository interfaces split along
// command/query lines.
//
// QueryRepo covers reads (get, list, count, existence checks, sequence
// values) and CommandRepo adds writes (create, update, delete and their
// bulk variants). The interfaces are storage agnostic; PostgreSQL
// implementations built on bun ship alongside them.
package repogen

import (
	"context"
)

// QueryRepo defines a generic read-side repository interface for entities
// of type E with filter type F.
type QueryRepo[E any, F any] interface {
	// Get retrieves exactly one entity matching the provided filters.
	// It fails when no entity or more than one entity matches.
	Get(ctx context.Context, filters F) (*E, error)
	// List returns all entities matching the provided filters.
	List(ctx context.Context, filters F) ([]E, error)
	// ListWithCount returns matching entities together with the total
	// count ignoring limit/offset, for paginated listings.
	ListWithCount(ctx context.Context, filters F) ([]E, int, error)
	// Count returns the number of entities matching the filters.
	Count(ctx context.Context, filters F) (int, error)
	// FirstOrNil returns the first entity matching the filters, or nil if none found.
	FirstOrNil(ctx context.Context, filters F) (*E, error)
	// Exists checks if any entity matches the filters.
	Exists(ctx context.Context, filters F) (bool, error)
	// NextSequenceValue returns the next value of the named database sequence.
	NextSequenceValue(ctx context.Context, sequenceName string) (int64, error)
}

// CommandRepo defines a generic write-side repository interface for entities
// of type E with filter type F. It embeds QueryRepo so command handlers can
// read back what they wrote without a second repository.
type CommandRepo[E any, F any] interface {
	QueryRepo[E, F]
	// Create inserts a new entity and returns the created entity or an error.
	Create(ctx context.Context, entity *E) (*E, error)
	// Update modifies an existing entity and returns the updated entity or an error.
	Update(ctx context.Context, entity *E) (*E, error)
	// Delete removes an entity from the repository.
	Delete(ctx context.Context, entity *E) error

	// BulkCreate inserts multiple entities in a single operation.
	BulkCreate(ctx context.Context, entities []E) error
	// BulkUpdate updates multiple entities in a single operation.
	BulkUpdate(ctx context.Context, entities []E) error
	// BulkDelete deletes multiple entities in a single operation.
	BulkDelete(ctx context.Context, entities []E) error
}
