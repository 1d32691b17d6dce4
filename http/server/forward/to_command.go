package forward

import (
	"fmt"

	"github.com/code19m/errx"
	"github.com/gofiber/fiber/v2"

	"github.com/forja-labs/pkg/logger"
	"github.com/forja-labs/pkg/mask"
	"github.com/forja-labs/pkg/pipeline/command"
	"github.com/forja-labs/pkg/respond"
	"github.com/forja-labs/pkg/val"
)

// ToCommand builds a handler that runs a mutating operation.
//
// The handler decodes the request into a fresh input context, validates it,
// constructs a command via newCmd and executes it through the pipeline.
// The command result is written inside the success envelope with status 200.
// C is the command input type and must be a pointer to a struct.
// R is the command result type.
func ToCommand[C, R any](newCmd func() command.Command[C, R]) fiber.Handler {
	return toCommand(newCmd, func(c *fiber.Ctx, resp R) error {
		return respond.Write(c, respond.Success(c.UserContext(), resp))
	})
}

// ToCommandCreated behaves like ToCommand but writes the result with
// status 201. Intended for creation endpoints.
func ToCommandCreated[C, R any](newCmd func() command.Command[C, R]) fiber.Handler {
	return toCommand(newCmd, func(c *fiber.Ctx, resp R) error {
		return respond.Write(c, respond.Created(c.UserContext(), resp))
	})
}

// ToCommandNoContent builds a handler for commands without a meaningful
// result. The response is a 204 envelope with no payload.
func ToCommandNoContent[C any](newCmd func() command.Command[C, command.EmptyResult]) fiber.Handler {
	return toCommand(newCmd, func(c *fiber.Ctx, _ command.EmptyResult) error {
		return respond.Write(c, respond.NoContent[struct{}](c.UserContext()))
	})
}

func toCommand[C, R any](
	newCmd func() command.Command[C, R],
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

		cmd := newCmd()
		cmd.SetContext(req)

		log := logger.
			Named("http.handler").
			WithContext(c.UserContext()).
			With("command_name", command.NameOf(cmd))

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

		resp, err := command.Execute(c.UserContext(), cmd)
		if err != nil {
			log.Errorx(err)
			return errx.Wrap(err)
		}

		log.Debug("command handled")
		return write(c, resp)
	}
}
