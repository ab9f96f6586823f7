package app

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

const (
	EnvDBPath   = "NUTRIGUIDE_DB"
	EnvLogLevel = "NUTRIGUIDE_LOG_LEVEL"
)

// LoadEnv reads KEY=VALUE pairs from the given files into the process
// environment. Variables already set win over file values, and missing files
// are ignored.
func LoadEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("load env file %s: %w", f, err)
		}
	}
	return nil
}

// Settings are the resolved process-level options.
type Settings struct {
	DBPath   string
	LogLevel string
}

// ResolveSettings applies flag > environment > default precedence.
func ResolveSettings(flagDB, flagLogLevel string) (Settings, error) {
	s := Settings{
		DBPath:   strings.TrimSpace(flagDB),
		LogLevel: strings.TrimSpace(flagLogLevel),
	}
	if s.DBPath == "" {
		s.DBPath = strings.TrimSpace(os.Getenv(EnvDBPath))
	}
	if s.DBPath == "" {
		p, err := DefaultDBPath()
		if err != nil {
			return Settings{}, err
		}
		s.DBPath = p
	}
	if s.LogLevel == "" {
		s.LogLevel = strings.TrimSpace(os.Getenv(EnvLogLevel))
	}
	return s, nil
}
