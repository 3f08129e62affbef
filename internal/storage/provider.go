package storage

import (
	"context"
	"log/slog"
	"time"

	"pantry-timeclock/internal/config"
)

type Provider interface {
	Close() error
	GetSchemaVersion(ctx context.Context) (int, error)

	// Directory methods
	CreateVenue(ctx context.Context, venue Venue) error
	GetVenue(ctx context.Context, venueID string) (*Venue, error)
	ListVenues(ctx context.Context) ([]Venue, error)
	CreateChef(ctx context.Context, chef Chef) error
	GetChef(ctx context.Context, chefID string) (*Chef, error)
	ListChefs(ctx context.Context) ([]Chef, error)

	// Venue staff methods
	UpsertVenueStaff(ctx context.Context, staff VenueStaff) (*VenueStaff, error)
	GetVenueStaff(ctx context.Context, venueID string, staffID string) (*VenueStaff, error)
	ListVenueStaff(ctx context.Context, venueID string) ([]VenueStaff, error)
	SetVenueStaffActive(ctx context.Context, venueID string, staffID string, active bool) (*VenueStaff, error)
	IsActiveVenueStaff(ctx context.Context, venueID string, chefID string) (bool, error)

	// Clock token methods
	CreateClockToken(ctx context.Context, token ClockToken) error
	GetClockToken(ctx context.Context, tokenID string) (*ClockToken, error)
	GetClockTokenByValue(ctx context.Context, value string) (*ClockToken, error)
	GetPermanentClockToken(ctx context.Context, venueID string) (*ClockToken, error)
	ListActiveClockTokens(ctx context.Context, venueID string, now time.Time) ([]ClockToken, error)
	DeleteClockToken(ctx context.Context, tokenID string) error

	// Shift methods
	GetShift(ctx context.Context, shiftID string) (*Shift, error)
	ListVenueShifts(ctx context.Context, venueID string, status *ShiftStatus) ([]ShiftWithChef, error)
	ListChefShifts(ctx context.Context, chefID string, status *ShiftStatus) ([]Shift, error)
	ToggleShift(ctx context.Context, p ToggleShiftParams) (*Shift, bool, error)
	UpdateShiftStatus(ctx context.Context, shiftID string, from []ShiftStatus, to ShiftStatus, venueNote *string, now time.Time) (*Shift, error)
}

func NewProvider(config *config.Storage) Provider {
	switch {
	case config.SQLite != nil:
		provider, err := NewSQLiteProvider(config)
		if err != nil {
			slog.Error("Failed to open sqlite storage", "error", err)
			return nil
		}
		if err := provider.runMigrations("sqlite3"); err != nil {
			slog.Error("Failed to run migrations", "error", err)
			return nil
		}
		return provider

	default:
		slog.Error("Unsupported storage configuration", "config", config)
	}

	return nil
}
