package sorter_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/forja-labs/pkg/sorter"
)

func TestParse(t *testing.T) {
	allowed := []string{"name", "created_at", "status"}

	tests := []struct {
		name     string
		expr     string
		expected sorter.Options
	}{
		{
			name:     "empty expression",
			expr:     "",
			expected: nil,
		},
		{
			name: "single option",
			expr: "name:asc",
			expected: sorter.Options{
				{Field: "name", Dir: sorter.Asc},
			},
		},
		{
			name: "multiple options keep order",
			expr: "name:asc,created_at:desc",
			expected: sorter.Options{
				{Field: "name", Dir: sorter.Asc},
				{Field: "created_at", Dir: sorter.Desc},
			},
		},
		{
			name: "disallowed field dropped",
			expr: "name:asc,password:desc",
			expected: sorter.Options{
				{Field: "name", Dir: sorter.Asc},
			},
		},
		{
			name: "invalid direction dropped",
			expr: "name:upward,created_at:desc",
			expected: sorter.Options{
				{Field: "created_at", Dir: sorter.Desc},
			},
		},
		{
			name: "malformed pair without colon dropped",
			expr: "name_asc,created_at:desc",
			expected: sorter.Options{
				{Field: "created_at", Dir: sorter.Desc},
			},
		},
		{
			name: "spaces and mixed case tolerated",
			expr: " name : ASC , created_at : Desc ",
			expected: sorter.Options{
				{Field: "name", Dir: sorter.Asc},
				{Field: "created_at", Dir: sorter.Desc},
			},
		},
		{
			name: "empty pairs ignored",
			expr: ",,status:asc,,",
			expected: sorter.Options{
				{Field: "status", Dir: sorter.Asc},
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			actual := sorter.Parse(tc.expr, allowed...)
			assert.Equal(t, tc.expected, actual)
		})
	}
}

func TestSingle(t *testing.T) {
	allowed := []string{"name", "created_at"}

	t.Run("valid pair", func(t *testing.T) {
		opts := sorter.Single("created_at", "DESC", allowed...)
		assert.Equal(t, sorter.Options{{Field: "created_at", Dir: sorter.Desc}}, opts)
	})

	t.Run("empty field", func(t *testing.T) {
		assert.Nil(t, sorter.Single("", "asc", allowed...))
	})

	t.Run("disallowed field", func(t *testing.T) {
		assert.Nil(t, sorter.Single("password", "asc", allowed...))
	})

	t.Run("invalid direction", func(t *testing.T) {
		assert.Nil(t, sorter.Single("name", "random", allowed...))
	})
}

func TestOptionsToSQL(t *testing.T) {
	tests := []struct {
		name     string
		opts     sorter.Options
		expected string
	}{
		{
			name:     "empty options",
			opts:     nil,
			expected: "",
		},
		{
			name:     "single clause",
			opts:     sorter.Options{{Field: "name", Dir: sorter.Asc}},
			expected: "name asc",
		},
		{
			name: "multiple clauses joined",
			opts: sorter.Options{
				{Field: "name", Dir: sorter.Asc},
				{Field: "created_at", Dir: sorter.Desc},
			},
			expected: "name asc, created_at desc",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.opts.ToSQL())
		})
	}
}
