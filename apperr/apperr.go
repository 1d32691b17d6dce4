// Package apperr defines the error taxonomy shared by all layers of a service.
//
// Three kinds of failures exist:
//   - domain errors: business-rule violations and invalid input, safe to show to callers;
//   - infrastructure errors: failures of external collaborators (database, broker, network);
//   - application errors: orchestration and wiring failures inside the service itself.
//
// All constructors produce errx errors so that codes, types and details flow
// unchanged through the HTTP and gRPC layers.
package apperr

import (
	"errors"
	"fmt"

	"github.com/code19m/errx"
)

// Error codes carried by errors produced in this package.
const (
	CodeDomainError         = "DOMAIN_ERROR"
	CodeParsingError        = "PARSING_ERROR"
	CodeInfrastructureError = "INFRASTRUCTURE_ERROR"
	CodeApplicationError    = "APPLICATION_ERROR"
)

// Domain creates a domain error with the given message.
func Domain(msg string) error {
	return errx.New(msg, errx.WithCode(CodeDomainError), errx.WithType(errx.T_Validation))
}

// Domainf creates a domain error with a formatted message.
func Domainf(format string, args ...any) error {
	return Domain(fmt.Sprintf(format, args...))
}

// DomainWrap converts any error into a domain error, preserving the original
// as the wrapped cause. The original message remains visible to the caller.
// Errors that already carry the domain code pass through unchanged.
func DomainWrap(err error) error {
	if err == nil {
		return nil
	}
	var e errx.ErrorX
	if errors.As(err, &e) && e.Code() == CodeDomainError {
		return err
	}
	return errx.Wrap(err, errx.WithCode(CodeDomainError), errx.WithType(errx.T_Validation))
}

// Parsing creates a parsing error raised during structural interpretation
// of input data. The command pipeline treats it identically to a domain error.
func Parsing(msg string) error {
	return errx.New(msg, errx.WithCode(CodeParsingError), errx.WithType(errx.T_Validation))
}

// ParsingWrap converts any error into a parsing error, preserving the cause.
func ParsingWrap(err error) error {
	if err == nil {
		return nil
	}
	return errx.Wrap(err, errx.WithCode(CodeParsingError), errx.WithType(errx.T_Validation))
}

// Infrastructure creates an infrastructure error with the given message.
func Infrastructure(msg string) error {
	return errx.New(msg, errx.WithCode(CodeInfrastructureError), errx.WithType(errx.T_Internal))
}

// InfrastructureWrap converts any error into an infrastructure error, preserving the cause.
func InfrastructureWrap(err error) error {
	if err == nil {
		return nil
	}
	return errx.Wrap(err, errx.WithCode(CodeInfrastructureError), errx.WithType(errx.T_Internal))
}

// Application creates an application error with the given message.
func Application(msg string) error {
	return errx.New(msg, errx.WithCode(CodeApplicationError), errx.WithType(errx.T_Internal))
}

// Applicationf creates an application error with a formatted message.
func Applicationf(format string, args ...any) error {
	return Application(fmt.Sprintf(format, args...))
}

// ApplicationWrap converts any error into an application error, preserving the cause.
func ApplicationWrap(err error) error {
	if err == nil {
		return nil
	}
	return errx.Wrap(err, errx.WithCode(CodeApplicationError), errx.WithType(errx.T_Internal))
}

// IsDomain reports whether err is a domain or parsing error.
func IsDomain(err error) bool {
	if err == nil {
		return false
	}
	var e errx.ErrorX
	if !errors.As(err, &e) {
		return false
	}
	return e.Code() == CodeDomainError || e.Code() == CodeParsingError
}

// IsInfrastructure reports whether err is an infrastructure error.
func IsInfrastructure(err error) bool {
	if err == nil {
		return false
	}
	var e errx.ErrorX
	if !errors.As(err, &e) {
		return false
	}
	return e.Code() == CodeInfrastructureError
}
