package storage

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"pantry-timeclock/internal/config"

	"github.com/jmoiron/sqlx"
)

// ErrNoRows is returned when a lookup matches nothing. Callers translate it
// to their own not-found error.
var ErrNoRows = errors.New("storage: no rows")

// ErrOpenShiftConflict is returned when a concurrent scan already opened a
// shift for the same (chef, venue) pair. Backed by the partial unique index
// on open shifts.
var ErrOpenShiftConflict = errors.New("storage: open shift already exists")

type SQLProvider struct {
	db *sqlx.DB

	config *config.Storage

	logger *slog.Logger
}

func NewSQLProvider(config *config.Storage, driverName string, dataSource string) (*SQLProvider, error) {
	db, err := sqlx.Open(driverName, dataSource)
	if err != nil {
		return nil, err
	}

	logger := slog.With("component", "storage")

	return &SQLProvider{
		db:     db,
		config: config,
		logger: logger,
	}, nil
}

func (p *SQLProvider) Close() error {
	if p.db != nil {
		return p.db.Close()
	}
	return nil
}

func (p *SQLProvider) GetSchemaVersion(ctx context.Context) (int, error) {
	var version int
	err := p.db.GetContext(ctx, &version,
		`SELECT COALESCE(MAX(version), 0) FROM schema_migrations`)
	if err != nil {
		return 0, err
	}
	return version, nil
}

// wrapNoRows maps database/sql's sentinel to ours.
func wrapNoRows(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNoRows
	}
	return err
}
