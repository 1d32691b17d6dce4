// Package mask replaces sensitive struct fields before config printing and
// other debugging output.
package mask

import (
	"fmt"
	"reflect"
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

const tagName = "mask"

// StructToOrdMap flattens a struct into an ordered map of dotted field paths.
// Fields tagged with `mask:"true"` have their values replaced with a masked
// placeholder. Field names follow json tag > yaml tag > field name priority;
// fields tagged json:"-" or yaml:"-" are omitted.
func StructToOrdMap(v any) *orderedmap.OrderedMap[string, any] {
	if v == nil {
		return nil
	}

	om := orderedmap.New[string, any]()
	walk(reflect.ValueOf(v), "", om)
	return om
}

func walk(val reflect.Value, prefix string, om *orderedmap.OrderedMap[string, any]) {
	if val.Kind() == reflect.Pointer {
		if val.IsNil() {
			om.Set(prefix, nil)
			return
		}
		val = val.Elem()
	}

	if val.Kind() != reflect.Struct {
		om.Set(prefix, val.Interface())
		return
	}

	typ := val.Type()
	for i := range val.NumField() {
		field := val.Field(i)
		fieldType := typ.Field(i)

		if !fieldType.IsExported() {
			continue
		}

		fieldName, skip := fieldNameFromTags(fieldType)
		if skip {
			continue
		}

		name := fieldName
		if prefix != "" {
			name = prefix + "." + name
		}

		switch {
		case strings.EqualFold(fieldType.Tag.Get(tagName), "true"):
			om.Set(name, maskValue(field))
		case isExpandable(field):
			walk(field, name, om)
		default:
			om.Set(name, field.Interface())
		}
	}
}

func isExpandable(val reflect.Value) bool {
	kind := val.Kind()
	if kind == reflect.Pointer {
		if val.IsNil() {
			return false
		}
		kind = val.Elem().Kind()
	}
	return kind == reflect.Struct
}

func maskValue(val reflect.Value) any {
	switch val.Kind() { //nolint:exhaustive // remaining kinds fall through
	case reflect.Pointer:
		if val.IsNil() {
			return nil
		}
		val = val.Elem()
	case reflect.Slice, reflect.Map:
		if val.IsNil() {
			return nil
		}
	}

	// zero values carry no secret worth hiding
	if val.IsZero() {
		return val.Interface()
	}

	return placeholderFor(val.Kind())
}

func placeholderFor(kind reflect.Kind) string {
	switch kind { //nolint:exhaustive // remaining kinds use the generic placeholder
	case reflect.String:
		return "***masked-string***"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return "***masked-int***"
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return "***masked-uint***"
	case reflect.Float32, reflect.Float64:
		return "***masked-float***"
	case reflect.Bool:
		return "***masked-bool***"
	case reflect.Struct:
		return "***masked-struct***"
	case reflect.Slice, reflect.Array:
		return "***masked-slice***"
	case reflect.Map:
		return "***masked-map***"
	default:
		return fmt.Sprintf("***masked-%s***", kind)
	}
}

// fieldNameFromTags resolves the printable name of a field. The second
// return value reports that the field is explicitly excluded.
func fieldNameFromTags(field reflect.StructField) (string, bool) {
	for _, tag := range []string{"json", "yaml"} {
		raw, ok := field.Tag.Lookup(tag)
		if !ok {
			continue
		}
		if raw == "-" {
			return "", true
		}
		name, _, _ := strings.Cut(raw, ",")
		if name != "" {
			return name, false
		}
	}

	return field.Name, false
}
