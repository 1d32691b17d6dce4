// Package val wraps go-playground/validator with readable field messages
// and the error codes used across the service layers.
package val

import (
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validate     *validator.Validate //nolint:gochecknoglobals // single shared validator instance
	validateOnce sync.Once           //nolint:gochecknoglobals // lazy one-time setup
)

func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()
		validate.RegisterTagNameFunc(getTagName)
		registerCustomValidations(validate)
	})
	return validate
}

// RegisterValidation adds a custom validation function under the given tag.
// It must be called before the first ValidateSchema call that uses the tag.
func RegisterValidation(tag string, fn validator.Func) error {
	return getValidator().RegisterValidation(tag, fn)
}

// getTagName returns the name of a struct field based on its struct tags.
// It checks 'json', 'query', and 'params' tags in that order, and falls back
// to the field name if none of those tags have a non-empty name component.
func getTagName(fld reflect.StructField) string {
	for _, tagName := range []string{"json", "query", "params"} {
		name := strings.SplitN(fld.Tag.Get(tagName), ",", 2)[0]
		if name != "" && name != "-" {
			return name
		}
	}

	return fld.Name
}
