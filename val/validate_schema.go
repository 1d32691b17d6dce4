package val

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/code19m/errx"
	"github.com/go-playground/validator/v10"
)

const (
	CodeValidationFailed = "VALIDATION_FAILED"
)

// ValidateSchema validates a struct against its validate tags. On failure it
// returns a single validation error carrying a per-field description map, so
// transport layers can render every violation at once.
func ValidateSchema(schema any) error {
	err := getValidator().Struct(schema)

	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		fields := make(errx.M)

		for _, fieldErr := range validationErrors {
			fields[fieldErr.Field()] = getFieldErrDescription(fieldErr)
		}

		return errx.New(
			"Validation failed. See fields for details.",
			errx.WithCode(CodeValidationFailed),
			errx.WithType(errx.T_Validation),
			errx.WithFields(fields),
		)
	}

	return errx.New(
		fmt.Sprintf("Unknown validation error: %s", err.Error()),
		errx.WithCode(CodeValidationFailed),
		errx.WithType(errx.T_Validation),
	)
}

// tagDescriptions covers tags whose message needs no parameter.
//
//nolint:gochecknoglobals // static lookup table
var tagDescriptions = map[string]string{
	"required":        "This field is required",
	"email":           "Invalid email format",
	"alpha":           "Must contain only alphabetic characters",
	"alphanum":        "Must contain only alphanumeric characters",
	"numeric":         "Must be a valid number",
	"url":             "Must be a valid URL",
	"uri":             "Must be a valid URI",
	"uuid":            "Must be a valid UUID",
	"uuid4":           "Must be a valid UUID v4",
	"json":            "Must be valid JSON",
	"base64":          "Must be valid base64",
	"jwt":             "Must be a valid JWT token",
	"hostname":        "Must be a valid hostname",
	"fqdn":            "Must be a valid fully qualified domain name",
	"ipv4":            "Must be a valid IPv4 address",
	"ipv6":            "Must be a valid IPv6 address",
	"ip":              "Must be a valid IP address",
	"mac":             "Must be a valid MAC address",
	"latitude":        "Must be a valid latitude",
	"longitude":       "Must be a valid longitude",
	"hexcolor":        "Must be a valid hex color",
	"credit_card":     "Must be a valid credit card number",
	"strong_password": "Must be at least 8 characters with uppercase, lowercase, number, and special character",
}

func getFieldErrDescription(fieldErr validator.FieldError) string {
	tag := fieldErr.Tag()
	param := fieldErr.Param()

	switch tag {
	case "min":
		if fieldErr.Kind() == reflect.String {
			return fmt.Sprintf("Must be at least %s characters", param)
		}
		return fmt.Sprintf("Must be at least %s", param)
	case "max":
		if fieldErr.Kind() == reflect.String {
			return fmt.Sprintf("Must be at most %s characters", param)
		}
		return fmt.Sprintf("Must be at most %s", param)
	case "len":
		if fieldErr.Kind() == reflect.String {
			return fmt.Sprintf("Must be exactly %s characters", param)
		}
		return fmt.Sprintf("Must have exactly %s items", param)
	case "gte":
		return fmt.Sprintf("Must be greater than or equal to %s", param)
	case "lte":
		return fmt.Sprintf("Must be less than or equal to %s", param)
	case "gt":
		return fmt.Sprintf("Must be greater than %s", param)
	case "lt":
		return fmt.Sprintf("Must be less than %s", param)
	case "oneof":
		return fmt.Sprintf("Must be one of: %s", param)
	case "startswith":
		return fmt.Sprintf("Must start with: %s", param)
	case "endswith":
		return fmt.Sprintf("Must end with: %s", param)
	case "datetime":
		return fmt.Sprintf("Must be a valid datetime in format: %s", param)
	case "eqfield":
		return fmt.Sprintf("Must be equal to %s", param)
	case "nefield":
		return fmt.Sprintf("Must not be equal to %s", param)
	}

	if desc, ok := tagDescriptions[tag]; ok {
		return desc
	}

	return fmt.Sprintf("Failed validation: %s", tag)
}
