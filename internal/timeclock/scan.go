package timeclock

import (
	"context"
	"errors"
	"fmt"

	"pantry-timeclock/internal/storage"
)

// Action discriminates the two scan outcomes.
type Action string

const (
	ActionClockedIn  Action = "clocked_in"
	ActionClockedOut Action = "clocked_out"
)

type ScanOptions struct {
	// Break taken during the shift, applied on clock-out.
	BreakMinutes int
	// Optional note from the chef, attached to the shift.
	ChefNote *string
}

// Scan consumes a scanned token value and toggles the chef's shift at the
// token's venue: clock in when no shift is open, clock out when one is.
//
// Tokens carrying an expiry are single-use: redemption marks them used inside
// the same transaction as the shift mutation. Tokens without an expiry are
// permanent and toggle shifts indefinitely without consumption.
func (s *Service) Scan(ctx context.Context, tokenValue string, chefID string, opts ScanOptions) (*storage.Shift, Action, error) {
	if opts.BreakMinutes < 0 {
		return nil, "", fmt.Errorf("%w: break minutes must not be negative", ErrInvalidArgument)
	}

	token, err := s.store.GetClockTokenByValue(ctx, tokenValue)
	if err != nil {
		if errors.Is(err, storage.ErrNoRows) {
			return nil, "", ErrInvalidToken
		}
		return nil, "", err
	}

	now := s.now().UTC()
	singleUse := token.ExpiresAt != nil

	if singleUse {
		if now.After(*token.ExpiresAt) {
			return nil, "", ErrTokenExpired
		}
		if token.UsedAt != nil {
			return nil, "", ErrTokenAlreadyUsed
		}
	}

	active, err := s.store.IsActiveVenueStaff(ctx, token.VenueID, chefID)
	if err != nil {
		return nil, "", err
	}
	if !active {
		return nil, "", ErrNotAuthorized
	}

	params := storage.ToggleShiftParams{
		ChefID:       chefID,
		VenueID:      token.VenueID,
		GigID:        token.GigID,
		Now:          now,
		BreakMinutes: opts.BreakMinutes,
		ChefNote:     opts.ChefNote,
	}
	if singleUse {
		params.ConsumeTokenID = token.ID
	}

	shift, clockedOut, err := s.store.ToggleShift(ctx, params)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrTokenConsumed):
			return nil, "", ErrTokenAlreadyUsed
		case errors.Is(err, storage.ErrOpenShiftConflict):
			return nil, "", ErrShiftConflict
		}
		return nil, "", err
	}

	action := ActionClockedIn
	if clockedOut {
		action = ActionClockedOut
	}

	s.logger.Info("Clock scan handled",
		"chef_id", chefID, "venue_id", token.VenueID, "shift_id", shift.ID, "action", string(action))
	return shift, action, nil
}
