package pg

import (
	"encoding/json"
	"os"

	"github.com/code19m/errx"
)

// dbSecret mirrors the JSON document produced by external secret managers.
// Empty fields leave the corresponding config value untouched.
type dbSecret struct {
	Host     string `json:"host"`
	Port     int    `json:"port"`
	User     string `json:"username"`
	Password string `json:"password"`
	Database string `json:"database"`
}

// ApplySecret overlays connection credentials from a JSON secret file onto
// cfg. It allows config files to stay free of real credentials while secret
// mounts (e.g. vault agents, k8s secret volumes) provide them at runtime.
func ApplySecret(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errx.Wrap(err, errx.WithDetails(errx.D{"secret_file": path}))
	}

	var secret dbSecret
	if err = json.Unmarshal(data, &secret); err != nil {
		return errx.Wrap(err, errx.WithDetails(errx.D{"secret_file": path}))
	}

	if secret.Host != "" {
		cfg.Host = secret.Host
	}
	if secret.Port != 0 {
		cfg.Port = secret.Port
	}
	if secret.User != "" {
		cfg.User = secret.User
	}
	if secret.Password != "" {
		cfg.Password = secret.Password
	}
	if secret.Database != "" {
		cfg.Database = secret.Database
	}

	return nil
}
