package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/BurntSushi/toml"
)

// FileConfig is the layout of config.toml.
type FileConfig struct {
	Practice PracticeConfig `toml:"practice"`
}

// PracticeConfig holds practice defaults. Nil fields were not set in the file.
type PracticeConfig struct {
	Lang          *string  `toml:"lang"`
	Words         *int     `toml:"words"`
	Secs          *float64 `toml:"secs"`
	Pace          *float64 `toml:"pace"`
	DeathMode     *bool    `toml:"death-mode"`
	FullSentences *int     `toml:"full-sentences"`
	CapsPct       *float64 `toml:"caps"`
	PunctPct      *float64 `toml:"punct"`
	PunctSet      *string  `toml:"punct-set"`
}

// LoadConfig decodes the TOML file at path. A missing file yields the zero
// config; unknown keys are rejected.
func LoadConfig(path string) (FileConfig, error) {
	var cfg FileConfig
	if path == "" {
		return cfg, errors.New("config path is empty")
	}
	md, err := toml.DecodeFile(path, &cfg)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return FileConfig{}, nil
	case err != nil:
		return FileConfig{}, fmt.Errorf("failed to decode config %s: %w", path, err)
	}
	if extra := md.Undecoded(); len(extra) > 0 {
		return FileConfig{}, fmt.Errorf("unknown config key %q", extra[0].String())
	}
	return cfg, nil
}
