package crudsvc

import (
	"context"

	"github.com/forja-labs/pkg/apperr"
	"github.com/forja-labs/pkg/pipeline/command"
	"github.com/forja-labs/pkg/repogen"
)

// saveCommand creates a single entity through the command pipeline.
type saveCommand[E any, F any] struct {
	command.Base[*E, *E]

	repo repogen.CommandRepo[E, F]
}

func (c *saveCommand[E, F]) PreProcess(context.Context) error {
	if c.Context() == nil {
		return apperr.Domain("entity is required")
	}
	c.SetValid(true)
	return nil
}

func (c *saveCommand[E, F]) Process(ctx context.Context) error {
	created, err := c.repo.Create(ctx, c.Context())
	if err != nil {
		return err
	}

	c.SetResult(created)
	c.SetExecuted(true)
	return nil
}

// saveAllCommand creates a batch of entities through the command pipeline.
type saveAllCommand[E any, F any] struct {
	command.Base[[]E, command.EmptyResult]

	repo repogen.CommandRepo[E, F]
}

func (c *saveAllCommand[E, F]) PreProcess(context.Context) error {
	if len(c.Context()) == 0 {
		return apperr.Domain("at least one entity is required")
	}
	c.SetValid(true)
	return nil
}

func (c *saveAllCommand[E, F]) Process(ctx context.Context) error {
	if err := c.repo.BulkCreate(ctx, c.Context()); err != nil {
		return err
	}

	c.SetExecuted(true)
	return nil
}

// updateCommand updates a single entity through the command pipeline.
type updateCommand[E any, F any] struct {
	command.Base[*E, *E]

	repo repogen.CommandRepo[E, F]
}

func (c *updateCommand[E, F]) PreProcess(context.Context) error {
	if c.Context() == nil {
		return apperr.Domain("entity is required")
	}
	c.SetValid(true)
	return nil
}

func (c *updateCommand[E, F]) Process(ctx context.Context) error {
	updated, err := c.repo.Update(ctx, c.Context())
	if err != nil {
		return err
	}

	c.SetResult(updated)
	c.SetExecuted(true)
	return nil
}

// deleteCommand removes a single entity through the command pipeline.
type deleteCommand[E any, F any] struct {
	command.Base[*E, command.EmptyResult]

	repo repogen.CommandRepo[E, F]
}

func (c *deleteCommand[E, F]) PreProcess(context.Context) error {
	if c.Context() == nil {
		return apperr.Domain("entity is required")
	}
	c.SetValid(true)
	return nil
}

func (c *deleteCommand[E, F]) Process(ctx context.Context) error {
	if err := c.repo.Delete(ctx, c.Context()); err != nil {
		return err
	}

	c.SetExecuted(true)
	return nil
}
