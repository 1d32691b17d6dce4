// Package server provides a gRPC server wrapper with priority-ordered
// interceptors, OpenTelemetry instrumentation and sensible message size
// defaults.
package server

import (
	"net"
	"time"

	"github.com/spf13/cast"
)

// Default message size limits for gRPC.
const (
	MaxSendMessageLength    = 2147483647 // 2GB
	MaxReceiveMessageLength = 63554432   // 60MB
)

// Config is the configuration for the gRPC server.
type Config struct {
	// Host is the server's bind address.
	Host string `yaml:"host" validate:"required" default:"0.0.0.0"`

	// Port is the server's bind port.
	Port int `yaml:"port" validate:"required"`

	// Reflection enables gRPC server reflection.
	Reflection bool `yaml:"reflection"`

	// UnaryTimeout is the timeout for unary RPCs.
	UnaryTimeout time.Duration `yaml:"unary_timeout" default:"30s"`
}

// Address returns the server's listen address in "host:port" form.
func (c Config) Address() string {
	return net.JoinHostPort(c.Host, cast.ToString(c.Port))
}
