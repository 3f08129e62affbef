// Package timeclock implements the QR clock-in/out and timesheet-approval
// workflow: venue clock token issuance, scan handling, review transitions
// and read-side earnings aggregation.
package timeclock

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"log/slog"
	"time"

	"pantry-timeclock/internal/auth"
	"pantry-timeclock/internal/config"
	"pantry-timeclock/internal/storage"
)

// Number of random bytes in a clock token value. 16 → 128-bit
const TOKEN_SIZE = 16

// Store is the subset of storage.Provider the workflow needs. Tests swap in
// an in-memory fake.
type Store interface {
	GetVenue(ctx context.Context, venueID string) (*storage.Venue, error)
	GetChef(ctx context.Context, chefID string) (*storage.Chef, error)

	UpsertVenueStaff(ctx context.Context, staff storage.VenueStaff) (*storage.VenueStaff, error)
	GetVenueStaff(ctx context.Context, venueID string, staffID string) (*storage.VenueStaff, error)
	ListVenueStaff(ctx context.Context, venueID string) ([]storage.VenueStaff, error)
	SetVenueStaffActive(ctx context.Context, venueID string, staffID string, active bool) (*storage.VenueStaff, error)
	IsActiveVenueStaff(ctx context.Context, venueID string, chefID string) (bool, error)

	CreateClockToken(ctx context.Context, token storage.ClockToken) error
	GetClockToken(ctx context.Context, tokenID string) (*storage.ClockToken, error)
	GetClockTokenByValue(ctx context.Context, value string) (*storage.ClockToken, error)
	GetPermanentClockToken(ctx context.Context, venueID string) (*storage.ClockToken, error)
	ListActiveClockTokens(ctx context.Context, venueID string, now time.Time) ([]storage.ClockToken, error)
	DeleteClockToken(ctx context.Context, tokenID string) error

	GetShift(ctx context.Context, shiftID string) (*storage.Shift, error)
	ListVenueShifts(ctx context.Context, venueID string, status *storage.ShiftStatus) ([]storage.ShiftWithChef, error)
	ListChefShifts(ctx context.Context, chefID string, status *storage.ShiftStatus) ([]storage.Shift, error)
	ToggleShift(ctx context.Context, p storage.ToggleShiftParams) (*storage.Shift, bool, error)
	UpdateShiftStatus(ctx context.Context, shiftID string, from []storage.ShiftStatus, to storage.ShiftStatus, venueNote *string, now time.Time) (*storage.Shift, error)
}

// Notifier delivers best-effort review notifications to chefs. May be nil.
type Notifier interface {
	ShiftReviewed(chef storage.Chef, venue storage.Venue, shift storage.Shift)
}

// Requester identifies the authenticated caller of an operation.
type Requester struct {
	UserID string
	Role   auth.Role
}

type Service struct {
	store    Store
	notifier Notifier

	// Token issuance mode, config.TokenModeSingleUse or TokenModePermanent.
	mode       string
	defaultTTL uint

	logger *slog.Logger
	now    func() time.Time
}

func NewService(store Store, cfg *config.Config, notifier Notifier) *Service {
	return &Service{
		store:      store,
		notifier:   notifier,
		mode:       cfg.TokenMode,
		defaultTTL: cfg.TokenDefaultTTL,
		logger:     slog.With("component", "timeclock"),
		now:        time.Now,
	}
}

// requireVenueManager checks that the requester manages the venue. Admins
// pass unconditionally. Returns the venue on success.
func (s *Service) requireVenueManager(ctx context.Context, venueID string, requester Requester) (*storage.Venue, error) {
	venue, err := s.store.GetVenue(ctx, venueID)
	if err != nil {
		if errors.Is(err, storage.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if requester.Role == auth.RoleAdmin {
		return venue, nil
	}
	if !requester.Role.CanManageVenues() || venue.ManagerID != requester.UserID {
		return nil, ErrNotAuthorized
	}
	return venue, nil
}

func newTokenValue() (string, error) {
	b := make([]byte, TOKEN_SIZE)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
