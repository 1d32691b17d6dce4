// Package mask_test contains tests for the mask package.
package mask_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forja-labs/pkg/mask"
)

type dbConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password" mask:"true"`
}

type appConfig struct {
	Name     string   `yaml:"name"`
	APIKey   string   `json:"api_key"  mask:"true"`
	Database dbConfig `yaml:"database"`
	Internal string   `json:"-"`
	hidden   string   //nolint:unused // exercises unexported field skipping
}

func TestStructToOrdMap(t *testing.T) {
	t.Run("nil input", func(t *testing.T) {
		assert.Nil(t, mask.StructToOrdMap(nil))
	})

	t.Run("masks tagged fields and flattens nested structs", func(t *testing.T) {
		cfg := appConfig{
			Name:   "billing",
			APIKey: "sk-secret",
			Database: dbConfig{
				Host:     "localhost",
				Port:     5432,
				User:     "app",
				Password: "hunter2",
			},
			Internal: "skipped",
		}

		om := mask.StructToOrdMap(cfg)
		require.NotNil(t, om)

		get := func(key string) any {
			v, ok := om.Get(key)
			require.True(t, ok, "missing key %s", key)
			return v
		}

		assert.Equal(t, "billing", get("name"))
		assert.Equal(t, "***masked-string***", get("api_key"))
		assert.Equal(t, "localhost", get("database.host"))
		assert.Equal(t, 5432, get("database.port"))
		assert.Equal(t, "***masked-string***", get("database.password"))

		_, found := om.Get("Internal")
		assert.False(t, found, "json:\"-\" fields must be excluded")
	})

	t.Run("zero values stay visible even when tagged", func(t *testing.T) {
		cfg := dbConfig{Host: "localhost"}

		om := mask.StructToOrdMap(cfg)

		v, ok := om.Get("password")
		require.True(t, ok)
		assert.Equal(t, "", v)
	})

	t.Run("preserves declaration order", func(t *testing.T) {
		om := mask.StructToOrdMap(dbConfig{Host: "h", Port: 1, User: "u", Password: "p"})

		keys := make([]string, 0, om.Len())
		for pair := om.Oldest(); pair != nil; pair = pair.Next() {
			keys = append(keys, pair.Key)
		}

		assert.Equal(t, []string{"host", "port", "user", "password"}, keys)
	})

	t.Run("masks non-string kinds with typed placeholders", func(t *testing.T) {
		type secrets struct {
			PIN   int      `json:"pin"   mask:"true"`
			Flag  bool     `json:"flag"  mask:"true"`
			Codes []string `json:"codes" mask:"true"`
		}

		om := mask.StructToOrdMap(secrets{PIN: 1234, Flag: true, Codes: []string{"a"}})

		pin, _ := om.Get("pin")
		flag, _ := om.Get("flag")
		codes, _ := om.Get("codes")
		assert.Equal(t, "***masked-int***", pin)
		assert.Equal(t, "***masked-bool***", flag)
		assert.Equal(t, "***masked-slice***", codes)
	})

	t.Run("pointer to struct", func(t *testing.T) {
		cfg := &dbConfig{Host: "remote", Password: "secret"}

		om := mask.StructToOrdMap(cfg)

		host, ok := om.Get("host")
		require.True(t, ok)
		assert.Equal(t, "remote", host)
	})
}
