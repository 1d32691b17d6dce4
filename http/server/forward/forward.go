// Package forward bridges HTTP requests into the command/query pipeline.
//
// A handler built with ToCommand or ToQuery decodes the request into the
// operation's input context (body, query and path parameters), validates it
// against the struct's validate tags, runs the operation through the
// pipeline and writes the unified response envelope.
package forward

import (
	"reflect"

	"github.com/code19m/errx"
	"github.com/gofiber/fiber/v2"
)

const (
	codeInvalidContentType = "INVALID_CONTENT_TYPE"
	codeInvalidJSONBody    = "INVALID_JSON_BODY"
	codeInvalidQueryParams = "INVALID_QUERY_PARAMS"
	codeInvalidPathParams  = "INVALID_PATH_PARAMS"
)

const maxLogAllowedSize = 8 << 10 // 8KB

// newRequest creates a new input context of type C.
// It ensures that C is a pointer to a struct.
func newRequest[C any]() (C, error) {
	var req C

	reqType := reflect.TypeOf((*C)(nil)).Elem()
	if reqType.Kind() != reflect.Pointer || reqType.Elem().Kind() != reflect.Struct {
		return req, errx.New("input type must be a pointer to a struct")
	}

	reqVal := reflect.New(reqType.Elem()).Interface().(C) //nolint:errcheck // safe type assertion
	return reqVal, nil
}

// decodeRequest fills req from the request body, query params and path params.
func decodeRequest[C any](c *fiber.Ctx, req C) error {
	if err := decodeBody(c, req); err != nil {
		return errx.Wrap(err)
	}
	if err := decodeQuery(c, req); err != nil {
		return errx.Wrap(err)
	}
	if err := decodePath(c, req); err != nil {
		return errx.Wrap(err)
	}
	return nil
}
