// Package meta_test contains tests for the meta package.
package meta_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forja-labs/pkg/meta"
)

// testMeta creates a metadata map for testing purposes.
func testMeta(pairs ...metaPair) map[meta.ContextKey]string {
	result := make(map[meta.ContextKey]string)
	for _, pair := range pairs {
		result[pair.key] = pair.value
	}
	return result
}

// metaPair represents a key-value pair for testing metadata.
type metaPair struct {
	key   meta.ContextKey
	value string
}

// mp is a convenience function to create a metaPair.
func mp(key meta.ContextKey, value string) metaPair {
	return metaPair{key: key, value: value}
}

func TestInjectMetaToContext(t *testing.T) {
	tests := []struct {
		name        string
		initialCtx  context.Context
		metaData    map[meta.ContextKey]string
		keyToVerify meta.ContextKey
		valueExpect string
		nilValue    bool
	}{
		{
			name:       "inject single value",
			initialCtx: t.Context(),
			metaData: testMeta(
				mp(meta.TraceID, "abc-123"),
			),
			keyToVerify: meta.TraceID,
			valueExpect: "abc-123",
		},
		{
			name:       "inject multiple values",
			initialCtx: t.Context(),
			metaData: testMeta(
				mp(meta.TraceID, "trace-123"),
				mp(meta.ActorID, "user-456"),
				mp(meta.ActorType, "customer"),
				mp(meta.ServiceName, "auth-service"),
				mp(meta.ServiceVersion, "v1.0.0"),
			),
			keyToVerify: meta.ActorID,
			valueExpect: "user-456",
		},
		{
			name:       "skip empty values",
			initialCtx: t.Context(),
			metaData: testMeta(
				mp(meta.TraceID, "trace-123"),
				mp(meta.ActorID, ""),
				mp(meta.ServiceName, "auth-service"),
			),
			keyToVerify: meta.ActorID,
			nilValue:    true,
		},
		{
			name:       "overwrite existing value",
			initialCtx: context.WithValue(t.Context(), meta.TraceID, "old-trace-id"),
			metaData: testMeta(
				mp(meta.TraceID, "new-trace-id"),
			),
			keyToVerify: meta.TraceID,
			valueExpect: "new-trace-id",
		},
		{
			name:        "empty map",
			initialCtx:  t.Context(),
			metaData:    testMeta(),
			keyToVerify: meta.TraceID,
			nilValue:    true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			// Act
			resultCtx := meta.InjectMetaToContext(tc.initialCtx, tc.metaData)

			// Assert
			if tc.nilValue {
				assert.Nil(t, resultCtx.Value(tc.keyToVerify))
			} else {
				assert.Equal(t, tc.valueExpect, resultCtx.Value(tc.keyToVerify))
			}
		})
	}
}

func TestExtractMetaFromContext(t *testing.T) {
	tests := []struct {
		name     string
		ctxSetup func() context.Context
		expected map[meta.ContextKey]string
	}{
		{
			name: "extract single value",
			ctxSetup: func() context.Context {
				ctx := t.Context()
				return context.WithValue(ctx, meta.TraceID, "abc-123")
			},
			expected: testMeta(
				mp(meta.TraceID, "abc-123"),
			),
		},
		{
			name: "extract multiple values",
			ctxSetup: func() context.Context {
				ctx := t.Context()
				ctx = context.WithValue(ctx, meta.TraceID, "trace-123")
				ctx = context.WithValue(ctx, meta.ActorID, "user-456")
				ctx = context.WithValue(ctx, meta.ActorType, "customer")
				ctx = context.WithValue(ctx, meta.ServiceName, "auth-service")
				return ctx
			},
			expected: testMeta(
				mp(meta.TraceID, "trace-123"),
				mp(meta.ActorID, "user-456"),
				mp(meta.ActorType, "customer"),
				mp(meta.ServiceName, "auth-service"),
			),
		},
		{
			name: "ignore non-string values",
			ctxSetup: func() context.Context {
				ctx := t.Context()
				ctx = context.WithValue(ctx, meta.TraceID, 12345) // Not a string
				ctx = context.WithValue(ctx, meta.ServiceName, "auth-service")
				return ctx
			},
			expected: testMeta(
				mp(meta.ServiceName, "auth-service"),
			),
		},
		{
			name: "ignore empty string values",
			ctxSetup: func() context.Context {
				ctx := t.Context()
				ctx = context.WithValue(ctx, meta.TraceID, "trace-123")
				ctx = context.WithValue(ctx, meta.ActorID, "") // Empty string
				return ctx
			},
			expected: testMeta(
				mp(meta.TraceID, "trace-123"),
			),
		},
		{
			name:     "empty context",
			ctxSetup: t.Context,
			expected: testMeta(),
		},
		{
			name: "with custom context key not in predefined list",
			ctxSetup: func() context.Context {
				ctx := t.Context()
				customKey := meta.ContextKey("custom_key")
				ctx = context.WithValue(ctx, customKey, "custom_value")
				ctx = context.WithValue(ctx, meta.TraceID, "trace-123")
				return ctx
			},
			expected: testMeta(
				mp(meta.TraceID, "trace-123"),
				// custom_key should not be extracted as it's not in the predefined list
			),
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			ctx := tc.ctxSetup()

			// Act
			result := meta.ExtractMetaFromContext(ctx)

			// Assert
			assert.Equal(t, tc.expected, result)
		})
	}
}

func TestRoundTrip(t *testing.T) {
	// This test checks that metadata can be injected into a context and then extracted correctly

	// Arrange
	metadata := testMeta(
		mp(meta.TraceID, "trace-123"),
		mp(meta.ActorType, "user"),
		mp(meta.ActorID, "actor-123"),
		mp(meta.ServiceName, "auth-service"),
		mp(meta.ServiceVersion, "v1.0.0"),
	)

	// Act
	ctxWithMeta := meta.InjectMetaToContext(t.Context(), metadata)
	extractedMeta := meta.ExtractMetaFromContext(ctxWithMeta)

	// Assert
	assert.Equal(t, metadata, extractedMeta)
}

func TestShouldGetMeta(t *testing.T) {
	tests := []struct {
		name          string
		ctxSetup      func() context.Context
		key           meta.ContextKey
		expectedValue string
		expectError   bool
		errorContains string
	}{
		{
			name: "success - valid string value",
			ctxSetup: func() context.Context {
				return context.WithValue(t.Context(), meta.TraceID, "trace-xyz-123")
			},
			key:           meta.TraceID,
			expectedValue: "trace-xyz-123",
			expectError:   false,
		},
		{
			name:          "error - key not found",
			ctxSetup:      t.Context,
			key:           meta.ActorID,
			expectedValue: "",
			expectError:   true,
			errorContains: "key not found",
		},
		{
			name: "error - type mismatch (non-string value)",
			ctxSetup: func() context.Context {
				return context.WithValue(t.Context(), meta.ActorID, 12345)
			},
			key:           meta.ActorID,
			expectedValue: "",
			expectError:   true,
			errorContains: "type mismatch",
		},
		{
			name: "success - empty string value",
			ctxSetup: func() context.Context {
				return context.WithValue(t.Context(), meta.ActorType, "")
			},
			key:           meta.ActorType,
			expectedValue: "",
			expectError:   false,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			ctx := tc.ctxSetup()

			// Act
			value, err := meta.ShouldGetMeta(ctx, tc.key)

			// Assert
			if tc.expectError {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tc.errorContains)
				assert.Equal(t, tc.expectedValue, value)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tc.expectedValue, value)
			}
		})
	}
}

func TestFind(t *testing.T) {
	ctx := context.WithValue(t.Context(), meta.AcceptLanguage, "es")

	assert.Equal(t, "es", meta.Find(ctx, meta.AcceptLanguage))
	assert.Empty(t, meta.Find(ctx, meta.TraceID))
}

//nolint:paralleltest // relies on the package-level language map
func TestTranslation(t *testing.T) {
	meta.SetLanguageMap(map[string]map[string]string{
		"en": {
			"operation.success": "Operation completed successfully",
			"record.not_found":  "Record not found",
		},
		"es": {
			"operation.success": "Operación completada con éxito",
		},
	}, "en")

	tests := []struct {
		name     string
		key      string
		lang     string
		expected string
	}{
		{
			name:     "translated in requested language",
			key:      "operation.success",
			lang:     "es",
			expected: "Operación completada con éxito",
		},
		{
			name:     "falls back to default language",
			key:      "operation.success",
			lang:     "fr",
			expected: "Operation completed successfully",
		},
		{
			name:     "empty language uses default",
			key:      "record.not_found",
			lang:     "",
			expected: "Record not found",
		},
		{
			name:     "missing key returns the key itself",
			key:      "unknown.key",
			lang:     "en",
			expected: "unknown.key",
		},
		{
			name:     "missing key in non-default language returns the key itself",
			key:      "unknown.key",
			lang:     "es",
			expected: "unknown.key",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, meta.Tr(tc.key, tc.lang))
		})
	}

	t.Run("TrCtx uses accept-language from context", func(t *testing.T) {
		ctx := context.WithValue(t.Context(), meta.AcceptLanguage, "es")
		assert.Equal(t, "Operación completada con éxito", meta.TrCtx(ctx, "operation.success"))
	})

	t.Run("LCtx picks localized value from map", func(t *testing.T) {
		ctx := context.WithValue(t.Context(), meta.AcceptLanguage, "es")
		m := map[string]string{"en": "Hello", "es": "Hola"}
		assert.Equal(t, "Hola", meta.LCtx(ctx, m))
		assert.Equal(t, "Hello", meta.L(m, "de"))
	})
}
