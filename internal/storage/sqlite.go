package storage

import (
	"pantry-timeclock/internal/config"

	_ "github.com/mattn/go-sqlite3"
)

type SQLiteProvider struct {
	SQLProvider
}

func NewSQLiteProvider(config *config.Storage) (*SQLiteProvider, error) {
	// Foreign keys are off by default in sqlite.
	dsn := config.SQLite.Path + "?_foreign_keys=on"

	sqlProvider, err := NewSQLProvider(config, "sqlite3", dsn)
	if err != nil {
		return nil, err
	}

	return &SQLiteProvider{
		SQLProvider: *sqlProvider,
	}, nil
}
