package timeclock

import (
	"context"
	"errors"
	"fmt"

	"pantry-timeclock/internal/auth"
	"pantry-timeclock/internal/storage"

	"github.com/google/uuid"
)

// ListShifts returns the venue's shifts joined with chef display info,
// optionally filtered by status. Requester must manage the venue.
func (s *Service) ListShifts(ctx context.Context, venueID string, requester Requester, status *storage.ShiftStatus) ([]storage.ShiftWithChef, error) {
	if _, err := s.requireVenueManager(ctx, venueID, requester); err != nil {
		return nil, err
	}
	return s.store.ListVenueShifts(ctx, venueID, status)
}

// UpdateStatus moves a submitted shift to approved or disputed, optionally
// attaching a venue note. Approved and disputed are terminal; any other
// requested transition fails with ErrInvalidTransition.
func (s *Service) UpdateStatus(ctx context.Context, shiftID string, newStatus storage.ShiftStatus, note *string, requester Requester) (*storage.Shift, error) {
	if newStatus != storage.ShiftApproved && newStatus != storage.ShiftDisputed {
		return nil, fmt.Errorf("%w: status must be approved or disputed", ErrInvalidTransition)
	}

	shift, err := s.store.GetShift(ctx, shiftID)
	if err != nil {
		if errors.Is(err, storage.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	venue, err := s.requireVenueManager(ctx, shift.VenueID, requester)
	if err != nil {
		return nil, err
	}

	updated, err := s.store.UpdateShiftStatus(ctx, shiftID,
		[]storage.ShiftStatus{storage.ShiftSubmitted}, newStatus, note, s.now().UTC())
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrStatusConflict):
			return nil, fmt.Errorf("%w: shift is %s, expected submitted", ErrInvalidTransition, shift.Status)
		case errors.Is(err, storage.ErrNoRows):
			return nil, ErrNotFound
		}
		return nil, err
	}

	s.logger.Info("Shift reviewed",
		"shift_id", shiftID, "venue_id", venue.ID, "status", string(newStatus), "reviewer", requester.UserID)

	s.notifyReviewed(ctx, *venue, *updated)
	return updated, nil
}

// VoidShift is the administrative override: open or submitted shifts may be
// voided; terminal states may not.
func (s *Service) VoidShift(ctx context.Context, shiftID string, requester Requester) (*storage.Shift, error) {
	if requester.Role != auth.RoleAdmin {
		return nil, ErrNotAuthorized
	}

	updated, err := s.store.UpdateShiftStatus(ctx, shiftID,
		[]storage.ShiftStatus{storage.ShiftOpen, storage.ShiftSubmitted}, storage.ShiftVoid, nil, s.now().UTC())
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrStatusConflict):
			return nil, fmt.Errorf("%w: shift already in a terminal state", ErrInvalidTransition)
		case errors.Is(err, storage.ErrNoRows):
			return nil, ErrNotFound
		}
		return nil, err
	}

	s.logger.Warn("Shift voided", "shift_id", shiftID, "admin", requester.UserID)
	return updated, nil
}

// AddStaff registers a chef as clock-eligible staff at a venue, independent
// of any gig. Re-adding reactivates an inactive member.
func (s *Service) AddStaff(ctx context.Context, venueID string, chefID string, requester Requester) (*storage.VenueStaff, error) {
	if _, err := s.requireVenueManager(ctx, venueID, requester); err != nil {
		return nil, err
	}

	if _, err := s.store.GetChef(ctx, chefID); err != nil {
		if errors.Is(err, storage.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	staff := storage.VenueStaff{
		ID:        uuid.NewString(),
		VenueID:   venueID,
		ChefID:    chefID,
		IsActive:  true,
		CreatedAt: s.now().UTC(),
	}
	return s.store.UpsertVenueStaff(ctx, staff)
}

// SetStaffActive toggles a staff member's eligibility to clock in.
func (s *Service) SetStaffActive(ctx context.Context, venueID string, staffID string, active bool, requester Requester) (*storage.VenueStaff, error) {
	if _, err := s.requireVenueManager(ctx, venueID, requester); err != nil {
		return nil, err
	}

	row, err := s.store.SetVenueStaffActive(ctx, venueID, staffID, active)
	if err != nil {
		if errors.Is(err, storage.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return row, nil
}

func (s *Service) ListStaff(ctx context.Context, venueID string, requester Requester) ([]storage.VenueStaff, error) {
	if _, err := s.requireVenueManager(ctx, venueID, requester); err != nil {
		return nil, err
	}
	return s.store.ListVenueStaff(ctx, venueID)
}

// notifyReviewed fires the chef notification without blocking the request.
func (s *Service) notifyReviewed(ctx context.Context, venue storage.Venue, shift storage.Shift) {
	if s.notifier == nil {
		return
	}

	chef, err := s.store.GetChef(ctx, shift.ChefID)
	if err != nil {
		s.logger.Warn("Skipping review notification, chef lookup failed", "chef_id", shift.ChefID, "error", err)
		return
	}

	go s.notifier.ShiftReviewed(*chef, venue, shift)
}
