// Package meta provides functionality for managing request metadata through context.
package meta

import (
	"context"
	"fmt"
)

// ContextKey is a type for keys used in context values for metadata.
type ContextKey string

const (
	// TraceID represents a unique identifier for tracing requests across services.
	TraceID ContextKey = "trace_id"

	// ActorID identifies the user or system making the request.
	ActorID ContextKey = "actor_id"

	// ActorType indicates the type of the actor making the request.
	ActorType ContextKey = "actor_type"

	// ActorRole indicates the current role of the actor making the request.
	ActorRole ContextKey = "actor_role"

	// IPAddress contains the client's IP address.
	IPAddress ContextKey = "ip_address"

	// UserAgent contains the user agent string from the request.
	UserAgent ContextKey = "user_agent"

	// ServiceName identifies the name of the current running service.
	ServiceName ContextKey = "service_name"

	// ServiceVersion indicates the version of the service.
	ServiceVersion ContextKey = "service_version"

	// AcceptLanguage indicates the natural language and locale that the client prefers.
	AcceptLanguage ContextKey = "accept-language"

	// XClientAppName identifies the client application name.
	XClientAppName ContextKey = "x-client-app-name"

	// XClientAppVersion indicates the version of the client application.
	XClientAppVersion ContextKey = "x-client-app-version"
)

// allKeys lists every predefined context key for extraction.
//
//nolint:gochecknoglobals // static lookup table
var allKeys = []ContextKey{
	TraceID,
	ActorID,
	ActorType,
	ActorRole,
	IPAddress,
	UserAgent,
	ServiceName,
	ServiceVersion,
	AcceptLanguage,
	XClientAppName,
	XClientAppVersion,
}

// InjectMetaToContext adds metadata from the provided map to the context.
// It only adds values that are not empty strings and returns a new context
// with the added values.
func InjectMetaToContext(ctx context.Context, data map[ContextKey]string) context.Context {
	for k, v := range data {
		if v != "" {
			ctx = context.WithValue(ctx, k, v) //nolint:fatcontext // allow due to finite number of keys
		}
	}
	return ctx
}

// ExtractMetaFromContext extracts all metadata from the provided context.
// It retrieves values for all predefined context keys and returns them in a map.
// Only non-empty string values are included in the returned map.
func ExtractMetaFromContext(ctx context.Context) map[ContextKey]string {
	data := make(map[ContextKey]string)
	for _, k := range allKeys {
		if v, ok := ctx.Value(k).(string); ok && v != "" {
			data[k] = v
		}
	}
	return data
}

// Find returns the value of the given key from the context,
// or an empty string when the key is absent.
func Find(ctx context.Context, key ContextKey) string {
	if v, ok := ctx.Value(key).(string); ok {
		return v
	}
	return ""
}

// ShouldGetMeta returns the value of the given key from the context.
// Unlike Find, it reports an error when the key is absent or holds
// a non-string value.
func ShouldGetMeta(ctx context.Context, key ContextKey) (string, error) {
	v := ctx.Value(key)
	if v == nil {
		return "", fmt.Errorf("meta: key not found in context: %s", key)
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("meta: type mismatch for key %s: expected string, got %T", key, v)
	}
	return s, nil
}
