package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App struct {
		Name string `envconfig:"APP_NAME" default:"Fatura"`
		// StateFile overrides the default state location under the
		// user's home directory.
		StateFile string `envconfig:"FATURA_STATE_FILE"`
	}

	Preview struct {
		Host string `envconfig:"PREVIEW_HOST" default:"127.0.0.1"`
		Port int    `envconfig:"PREVIEW_PORT" default:"8421"`
	}
}

// StatePath resolves the state file location: the configured override, or
// ~/.fatura/fatura.json.
func (c *Config) StatePath() (string, error) {
	if c.App.StateFile != "" {
		return c.App.StateFile, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}

	return filepath.Join(home, ".fatura", "fatura.json"), nil
}

// PreviewAddr is the listen address of the local preview server.
func (c *Config) PreviewAddr() string {
	return fmt.Sprintf("%s:%d", c.Preview.Host, c.Preview.Port)
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	return &cfg, nil
}
