package forward

import (
	"fmt"

	"github.com/code19m/errx"
	"github.com/gofiber/fiber/v2"

	"github.com/forja-labs/pkg/logger"
	"github.com/forja-labs/pkg/mask"
	"github.com/forja-labs/pkg/pagination"
	"github.com/forja-labs/pkg/pipeline/command"
	"github.com/forja-labs/pkg/pipeline/query"
	"github.com/forja-labs/pkg/respond"
	"github.com/forja-labs/pkg/val"
)

// ToQuery builds a handler that runs a read-only operation.
//
// The handler decodes the request into a fresh input context, validates it
// and runs the query through the pipeline. The result is written as a single
// datum inside the success envelope.
// C is the query input type and must be a pointer to a struct.
// R is the query result type.
func ToQuery[C, R any](q query.Query[C, R]) fiber.Handler {
	return toQuery(q, func(c *fiber.Ctx, resp R) error {
		return respond.Write(c, respond.Success(c.UserContext(), resp))
	})
}

// ToQueryList behaves like ToQuery for queries returning an item list.
// The envelope carries the items with their count.
func ToQueryList[C, T any](q query.Query[C, []T]) fiber.Handler {
	return toQuery(q, func(c *fiber.Ctx, items []T) error {
		return respond.Write(c, respond.SuccessList(c.UserContext(), items))
	})
}

// ToQueryPaginated behaves like ToQuery for queries returning a page of
// items. The envelope carries the page content, the total element count
// and a page summary line.
func ToQueryPaginated[C, T any](q query.Query[C, *pagination.Response[T]]) fiber.Handler {
	return toQuery(q, func(c *fiber.Ctx, page *pagination.Response[T]) error {
		return respond.Write(c, respond.SuccessPaginated(
			c.UserContext(),
			page.Content,
			int(page.TotalElements),
			page.PageNumber,
			page.PageSize,
		))
	})
}

func toQuery[C, R any](
	q query.Query[C, R],
	write func(*fiber.Ctx, R) error,
) fiber.Handler {
	return func(c *fiber.Ctx) error {
		req, err := newRequest[C]()
		if err != nil {
			return errx.Wrap(err)
		}

		if err = decodeRequest(c, req); err != nil {
			return errx.Wrap(err)
		}

		log := logger.
			Named("http.handler").
			WithContext(c.UserContext()).
			With("query_name", command.NameOf(q))

		// Include request body in log if its size is not too large
		if len(c.Body()) <= maxLogAllowedSize {
			log = log.With("request_body", mask.StructToOrdMap(req))
		} else {
			log = log.With("request_body", fmt.Sprintf("too large for logging: %d bytes", len(c.Body())))
		}

		// Validate the input context based on validate tags of the struct
		if err = val.ValidateSchema(req); err != nil {
			log.Errorx(err)
			return errx.Wrap(err)
		}

		resp, err := query.Execute(c.UserContext(), q, req)
		if err != nil {
			log.Errorx(err)
			return errx.Wrap(err)
		}

		log.Debug("query handled")
		return write(c, resp)
	}
}
