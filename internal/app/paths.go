package app

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	appDirName = "nutriguide"
	dbFileName = "nutriguide.db"
	backupDir  = "backups"
	dateLayout = "2006-01-02"
)

// DateLayout is the format of every calendar-day key stored by NutriGuide.
const DateLayout = dateLayout

func DefaultDBPath() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(base, appDirName, dbFileName), nil
}

// DefaultBackupDir places backups next to the database file.
func DefaultBackupDir(dbPath string) string {
	return filepath.Join(filepath.Dir(dbPath), backupDir)
}

func EnsureDBDir(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create db directory: %w", err)
	}
	return nil
}
