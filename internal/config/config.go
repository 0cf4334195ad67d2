package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App struct {
		Name string `envconfig:"APP_NAME" default:"budgetd"`
		Port int    `envconfig:"PORT" default:"8080"`
	}

	DB struct {
		// Path is the SQLite database file. The parent directory must
		// exist.
		Path string `envconfig:"DB_PATH" default:"budget.db"`
	}

	Backup struct {
		// Version is stamped into JSON backup envelopes and filenames.
		Version string `envconfig:"BACKUP_VERSION" default:"1.2.0"`
	}

	CORS struct {
		Origin string `envconfig:"CORS_ORIGIN" default:"*"`
	}
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	return &cfg, nil
}
