package service

import (
	"database/sql"
	"fmt"
	"log/slog"
)

// ResetAll removes every user record and stored preference.
func ResetAll(db *sql.DB) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin reset tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := clearUserData(tx); err != nil {
		return err
	}
	if _, err := tx.Exec(`DELETE FROM app_config`); err != nil {
		return fmt.Errorf("clear config: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit reset: %w", err)
	}
	slog.Info("all user data reset")
	return nil
}
