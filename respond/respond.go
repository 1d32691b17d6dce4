// Package respond provides the unified API response envelope.
//
// Every endpoint answers with the same shape: an ok flag, the HTTP status
// code, a localized message, and either a single datum or an item list with
// count and pagination totals. Messages resolve through the meta translation
// map using the request's accept-language.
package respond

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/forja-labs/pkg/meta"
	"github.com/forja-labs/pkg/respond/msgkey"
)

// Envelope is the unified response body. Single-object responses carry
// Datum; collection responses carry Items with Count and, when paginated,
// a Totals summary line.
type Envelope[T any] struct {
	OK      bool   `json:"ok"`
	Code    int    `json:"code"`
	Message string `json:"message,omitempty"`
	Datum   *T     `json:"datum,omitempty"`
	Items   []T    `json:"items,omitempty"`
	Count   *int   `json:"count,omitempty"`
	Totals  string `json:"totals,omitempty"`
}

// Success builds a 200 envelope with a single datum.
func Success[T any](ctx context.Context, datum T) Envelope[T] {
	return Envelope[T]{
		OK:      true,
		Code:    http.StatusOK,
		Message: meta.TrCtx(ctx, msgkey.SuccessOperation),
		Datum:   &datum,
	}
}

// Created builds a 201 envelope with the created datum.
func Created[T any](ctx context.Context, datum T) Envelope[T] {
	return Envelope[T]{
		OK:      true,
		Code:    http.StatusCreated,
		Message: meta.TrCtx(ctx, msgkey.SuccessCreated),
		Datum:   &datum,
	}
}

// SuccessList builds a 200 envelope with an item list and its count.
func SuccessList[T any](ctx context.Context, items []T) Envelope[T] {
	if items == nil {
		items = []T{}
	}
	count := len(items)
	return Envelope[T]{
		OK:      true,
		Code:    http.StatusOK,
		Message: meta.TrCtx(ctx, msgkey.SuccessOperation),
		Items:   items,
		Count:   &count,
	}
}

// SuccessPaginated builds a 200 envelope with one page of items, the total
// element count and a localized "page X of Y" summary. page is 1-based.
// An empty result keeps the envelope shape with a no-results message.
func SuccessPaginated[T any](ctx context.Context, items []T, total, page, pageSize int) Envelope[T] {
	if total == 0 || len(items) == 0 {
		zero := 0
		return Envelope[T]{
			OK:      true,
			Code:    http.StatusOK,
			Message: meta.TrCtx(ctx, msgkey.SuccessNoResults),
			Items:   []T{},
			Count:   &zero,
		}
	}

	totalPages := (total + pageSize - 1) / pageSize

	return Envelope[T]{
		OK:      true,
		Code:    http.StatusOK,
		Message: meta.TrCtx(ctx, msgkey.SuccessPaginated),
		Items:   items,
		Count:   &total,
		Totals:  fmt.Sprintf(meta.TrCtx(ctx, msgkey.SuccessPageInfo), page, totalPages),
	}
}

// NoContent builds a 204 envelope without a body payload.
func NoContent[T any](ctx context.Context) Envelope[T] {
	return Envelope[T]{
		OK:      true,
		Code:    http.StatusNoContent,
		Message: meta.TrCtx(ctx, msgkey.SuccessNoContent),
	}
}

// Error builds a failure envelope with the given HTTP status code and an
// already-localized message.
func Error[T any](code int, message string) Envelope[T] {
	return Envelope[T]{
		OK:      false,
		Code:    code,
		Message: message,
	}
}

// ErrorKey builds a failure envelope resolving the message from a key.
func ErrorKey[T any](ctx context.Context, code int, key string) Envelope[T] {
	return Error[T](code, meta.TrCtx(ctx, key))
}

// Write sends the envelope as the fiber response, using the envelope code
// as the HTTP status.
func Write[T any](c *fiber.Ctx, env Envelope[T]) error {
	return c.Status(env.Code).JSON(env)
}
