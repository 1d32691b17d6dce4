package middleware

import (
	"github.com/gofiber/fiber/v2"

	"github.com/forja-labs/pkg/http/server"
	"github.com/forja-labs/pkg/meta"
	"github.com/forja-labs/pkg/tracing"
)

// NewMetaInjectMW creates a middleware that injects metadata into the request context.
//
// This middleware collects information from the request such as trace ID, IP address,
// user agent, and other HTTP headers, and injects them into the request context using
// the meta package. It also sets service information and prepares actor keys that
// will be populated by authentication middlewares.
func NewMetaInjectMW(serviceName, serviceVersion string) server.Middleware {
	return server.Middleware{
		Priority: 700,
		Handler: func(c *fiber.Ctx) error {
			metaData := map[meta.ContextKey]string{
				meta.TraceID:           tracing.GetStartingTraceID(c.UserContext()),
				meta.IPAddress:         c.IP(),
				meta.UserAgent:         c.Get(fiber.HeaderUserAgent),
				meta.ServiceName:       serviceName,
				meta.ServiceVersion:    serviceVersion,
				meta.AcceptLanguage:    c.Get(string(meta.AcceptLanguage)),
				meta.XClientAppName:    c.Get(string(meta.XClientAppName)),
				meta.XClientAppVersion: c.Get(string(meta.XClientAppVersion)),

				// missing keys. Those will be set by authentication middlewares
				meta.ActorID:   "",
				meta.ActorType: "",
				meta.ActorRole: "",
			}

			ctx := meta.InjectMetaToContext(c.UserContext(), metaData)
			c.SetUserContext(ctx)

			return c.Next()
		},
	}
}
