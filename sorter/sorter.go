// Package sorter parses user-supplied sorting expressions into structured
// options that can be turned into SQL ORDER BY clauses.
//
// It accepts either a combined expression ("name:asc,created_at:desc") or a
// single field/direction pair, and filters everything against a whitelist of
// sortable fields.
package sorter

import (
	"slices"
	"strings"
)

// Direction is a sort direction, either asc or desc.
type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// Option represents a single sorting option.
type Option struct {
	Field string
	Dir   Direction
}

// ToSQL converts the option into an SQL-compatible clause (e.g. "name asc").
func (o Option) ToSQL() string {
	return o.Field + " " + string(o.Dir)
}

// Options is an ordered list of sorting options.
type Options []Option

// ToSQL joins all options into a single ORDER BY expression
// (e.g. "name asc, created_at desc"). Returns an empty string when
// there is nothing to sort by.
func (opts Options) ToSQL() string {
	if len(opts) == 0 {
		return ""
	}

	clauses := make([]string, 0, len(opts))
	for _, o := range opts {
		clauses = append(clauses, o.ToSQL())
	}

	return strings.Join(clauses, ", ")
}

// Parse parses a combined sorting expression (e.g. "name:asc,created_at:desc")
// into Options. Pairs with unknown fields, invalid directions or a malformed
// shape are silently dropped. allowedFields lists the fields permitted for
// sorting.
func Parse(expr string, allowedFields ...string) Options {
	if expr == "" {
		return nil
	}

	var opts Options
	for pair := range strings.SplitSeq(expr, ",") {
		field, dir, found := strings.Cut(pair, ":")
		if !found {
			continue
		}

		if opt, ok := makeOption(field, dir, allowedFields); ok {
			opts = append(opts, opt)
		}
	}

	return opts
}

// Single builds Options from a separate field and direction pair, the shape
// list endpoints receive as sort_by/sort_dir query parameters. It returns nil
// when the field is empty or not allowed.
func Single(field, dir string, allowedFields ...string) Options {
	opt, ok := makeOption(field, dir, allowedFields)
	if !ok {
		return nil
	}
	return Options{opt}
}

func makeOption(field, dir string, allowedFields []string) (Option, bool) {
	field = strings.TrimSpace(field)
	if field == "" || !slices.Contains(allowedFields, field) {
		return Option{}, false
	}

	direction := Direction(strings.ToLower(strings.TrimSpace(dir)))
	if direction != Asc && direction != Desc {
		return Option{}, false
	}

	return Option{Field: field, Dir: direction}, true
}
