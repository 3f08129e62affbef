package timeclock

import (
	"context"
	"errors"

	"pantry-timeclock/internal/storage"
)

// ShiftEarnings is the derived pay for one shift. Never persisted; recomputed
// on every view.
type ShiftEarnings struct {
	ShiftID        string  `json:"shift_id"`
	ChefID         string  `json:"chef_id"`
	PayableMinutes int64   `json:"payable_minutes"`
	Pence          int64   `json:"pence"`
	GigID          *string `json:"gig_id,omitempty"`

	// InProgress flags a shift without a clock-out; it contributes 0.
	InProgress bool `json:"in_progress,omitempty"`
	// RateNotSet flags a chef without an hourly rate; the shift contributes 0.
	RateNotSet bool `json:"rate_not_set,omitempty"`
}

// EarningsReport aggregates a set of approved shifts.
type EarningsReport struct {
	TotalPayableMinutes int64           `json:"total_payable_minutes"`
	TotalPence          int64           `json:"total_pence"`
	Shifts              []ShiftEarnings `json:"shifts"`
}

// shiftEarnings computes pay for one shift in integer pence, rounded to the
// nearest penny. The payable interval is clamped at zero, so a break longer
// than the worked interval never yields negative pay.
func shiftEarnings(shift storage.Shift, ratePence *int64) ShiftEarnings {
	e := ShiftEarnings{
		ShiftID: shift.ID,
		ChefID:  shift.ChefID,
		GigID:   shift.GigID,
	}

	if shift.ClockOutAt == nil {
		e.InProgress = true
		return e
	}

	payableSeconds := int64(shift.ClockOutAt.Sub(shift.ClockInAt).Seconds()) - int64(shift.BreakMinutes)*60
	if payableSeconds < 0 {
		payableSeconds = 0
	}
	e.PayableMinutes = payableSeconds / 60

	if ratePence == nil {
		e.RateNotSet = true
		return e
	}

	e.Pence = (payableSeconds*(*ratePence) + 1800) / 3600
	return e
}

// VenueEarnings folds the venue's approved shifts into total payable time and
// pay. Requester must manage the venue.
func (s *Service) VenueEarnings(ctx context.Context, venueID string, requester Requester) (*EarningsReport, error) {
	if _, err := s.requireVenueManager(ctx, venueID, requester); err != nil {
		return nil, err
	}

	approved := storage.ShiftApproved
	shifts, err := s.store.ListVenueShifts(ctx, venueID, &approved)
	if err != nil {
		return nil, err
	}

	report := &EarningsReport{Shifts: []ShiftEarnings{}}
	for _, row := range shifts {
		e := shiftEarnings(row.Shift, row.HourlyRatePence)
		report.TotalPayableMinutes += e.PayableMinutes
		report.TotalPence += e.Pence
		report.Shifts = append(report.Shifts, e)
	}
	return report, nil
}

// ChefEarnings is the chef's own view over their approved shifts.
func (s *Service) ChefEarnings(ctx context.Context, chefID string) (*EarningsReport, error) {
	chef, err := s.store.GetChef(ctx, chefID)
	if err != nil {
		if errors.Is(err, storage.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	approved := storage.ShiftApproved
	shifts, err := s.store.ListChefShifts(ctx, chefID, &approved)
	if err != nil {
		return nil, err
	}

	report := &EarningsReport{Shifts: []ShiftEarnings{}}
	for _, shift := range shifts {
		e := shiftEarnings(shift, chef.HourlyRatePence)
		report.TotalPayableMinutes += e.PayableMinutes
		report.TotalPence += e.Pence
		report.Shifts = append(report.Shifts, e)
	}
	return report, nil
}
