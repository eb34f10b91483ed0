// Package config reads the server settings from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	HTTPAddr      string        `env:"HTTP_ADDR" envDefault:":8080"`
	CycleInterval time.Duration `env:"CYCLE_INTERVAL" envDefault:"1s"`
	Debug         bool          `env:"DEBUG" envDefault:"false"`

	LayoutFile   string `env:"LAYOUT_FILE" envDefault:"data/layout/draft.yaml"`
	GameDataFile string `env:"GAME_DATA_FILE" envDefault:"data/gamedata.json"`
	DisplayIndex int    `env:"DISPLAY_INDEX" envDefault:"0"`
	OCRLanguage  string `env:"OCR_LANGUAGE" envDefault:"eng"`

	BanDir           string  `env:"BAN_DIR" envDefault:"data/bans"`
	UserBanDir       string  `env:"USER_BAN_DIR" envDefault:"data/bans-learned"`
	BanCompareWidth  uint    `env:"BAN_COMPARE_WIDTH" envDefault:"32"`
	BanCompareHeight uint    `env:"BAN_COMPARE_HEIGHT" envDefault:"32"`
	BanThreshold     float64 `env:"BAN_THRESHOLD" envDefault:"0.15"`

	// DatabaseURL is optional; recent picks are disabled without it.
	DatabaseURL string `env:"DATABASE_URL"`
}

// Load reads an optional .env file from envFiles and then the environment.
// Variables already set in the environment win over the file.
func Load(envFiles ...string) (Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", f, err)
		}
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch {
	case c.CycleInterval <= 0:
		return fmt.Errorf("CYCLE_INTERVAL must be positive, got %s", c.CycleInterval)
	case c.BanThreshold <= 0 || c.BanThreshold > 1:
		return fmt.Errorf("BAN_THRESHOLD must be in (0, 1], got %v", c.BanThreshold)
	case c.BanCompareWidth == 0 || c.BanCompareHeight == 0:
		return errors.New("BAN_COMPARE_WIDTH and BAN_COMPARE_HEIGHT must be positive")
	}
	return nil
}
