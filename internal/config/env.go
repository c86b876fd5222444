package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Paths holds file locations, overridable from the environment.
type Paths struct {
	Config      string `env:"THOK_CONFIG"`
	Log         string `env:"THOK_LOG_PATH"`
	DB          string `env:"THOK_DB_PATH"`
	WordListDir string `env:"THOK_WORDLIST_DIR"`
}

// LoadPaths returns the XDG defaults with any environment overrides applied.
func LoadPaths() (Paths, error) {
	paths := Paths{
		Config:      DefaultConfigPath(),
		Log:         DefaultLogPath(),
		DB:          DefaultDBPath(),
		WordListDir: DefaultWordListDir(),
	}
	if err := env.Parse(&paths); err != nil {
		return Paths{}, fmt.Errorf("parse env: %w", err)
	}
	return paths, nil
}
