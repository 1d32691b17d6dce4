// Package alert provides error alerting for background failures that would
// otherwise only surface in logs.
//
// The Provider interface abstracts the delivery channel; the default
// implementation reports to a Sentinel service over gRPC. A global singleton
// mirrors the logger package so call sites can alert without threading a
// provider through every constructor.
package alert

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
)

// Provider defines the interface for sending error alerts.
// Implementations of this interface can send alerts to various monitoring systems.
type Provider interface {
	// SendError sends an error alert with the given details.
	// ctx is the context for the operation.
	// errCode is a specific code identifying the error.
	// msg is a human-readable error message.
	// operation describes the operation during which the error occurred.
	// details is a map of additional string key-value pairs providing more context about the error.
	// Returns an error if sending the alert fails.
	SendError(ctx context.Context, errCode, msg, operation string, details map[string]string) error
}

// NoopProvider is an alert provider that silently discards alerts.
// It is used when alerting is not configured.
type NoopProvider struct{}

func (NoopProvider) SendError(
	_ context.Context,
	_, _, _ string,
	_ map[string]string,
) error {
	return nil
}

//nolint:gochecknoglobals // Global variables are required for the global alert singleton pattern
var (
	global   atomic.Value // stores Provider
	setOnce  sync.Once    // ensures SetGlobal is called once
	initOnce sync.Once    // ensures lazy initialization happens once
)

// SetGlobal sets the global alert provider instance.
// This should be called during application startup, before any alert
// functions are used, and can only be called once.
func SetGlobal(cfg Config, serviceName, serviceVersion string) error {
	var err error
	called := false

	setOnce.Do(func() {
		// Prevent lazy initialization from happening after this
		initOnce.Do(func() {})

		provider, providerErr := NewSentinelProvider(cfg, serviceName, serviceVersion)
		if providerErr != nil {
			err = fmt.Errorf("[alert]: failed to initialize global alert provider: %w", providerErr)
			return
		}
		global.Store(Provider(provider))
		called = true
	})

	if !called {
		return errors.New("[alert]: SetGlobal can only be called once")
	}

	return err
}

// SendError sends an error alert using the global provider.
// If SetGlobal has not been called, it uses a no-op provider that silently does nothing.
func SendError(ctx context.Context, errCode, msg, operation string, details map[string]string) error {
	return getGlobal().SendError(ctx, errCode, msg, operation, details)
}

func initDefault() {
	initOnce.Do(func() {
		global.Store(Provider(NoopProvider{}))
	})
}

func getGlobal() Provider {
	if p := global.Load(); p != nil {
		provider, ok := p.(Provider)
		if !ok {
			panic("[alert]: global contains invalid type")
		}
		return provider
	}
	initDefault()
	provider, ok := global.Load().(Provider)
	if !ok {
		panic("[alert]: global contains invalid type after initialization")
	}
	return provider
}
