package storage

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/mattn/go-sqlite3"
)

// ErrTokenConsumed is returned by ToggleShift when a single-use token was
// consumed by another scan between validation and the toggle transaction.
var ErrTokenConsumed = errors.New("storage: clock token already consumed")

// ErrStatusConflict is returned by UpdateShiftStatus when the shift exists
// but is not in any of the expected source statuses.
var ErrStatusConflict = errors.New("storage: shift not in expected status")

// ToggleShiftParams drives a single clock scan mutation. When ConsumeTokenID
// is non-empty the named token is marked used inside the same transaction as
// the shift mutation, so a double redemption cannot produce two shifts.
type ToggleShiftParams struct {
	ChefID       string
	VenueID      string
	GigID        *string
	Now          time.Time
	BreakMinutes int
	ChefNote     *string

	ConsumeTokenID string
}

func (p *SQLProvider) GetShift(ctx context.Context, shiftID string) (*Shift, error) {
	var shift Shift
	err := p.db.GetContext(ctx, &shift,
		`SELECT * FROM shifts WHERE id = ?`, shiftID)
	if err != nil {
		return nil, wrapNoRows(err)
	}
	return &shift, nil
}

func (p *SQLProvider) ListVenueShifts(ctx context.Context, venueID string, status *ShiftStatus) ([]ShiftWithChef, error) {
	query := `SELECT s.*,
	                 c.display_name AS chef_name,
	                 c.email AS chef_email,
	                 c.avatar_url AS chef_avatar_url,
	                 c.hourly_rate_pence AS hourly_rate_pence
	          FROM shifts s
	          JOIN chefs c ON c.id = s.chef_id
	          WHERE s.venue_id = ?`
	args := []any{venueID}

	if status != nil {
		query += ` AND s.status = ?`
		args = append(args, *status)
	}
	query += ` ORDER BY s.clock_in_at DESC`

	shifts := []ShiftWithChef{}
	if err := p.db.SelectContext(ctx, &shifts, query, args...); err != nil {
		return nil, err
	}
	return shifts, nil
}

func (p *SQLProvider) ListChefShifts(ctx context.Context, chefID string, status *ShiftStatus) ([]Shift, error) {
	query := `SELECT * FROM shifts WHERE chef_id = ?`
	args := []any{chefID}

	if status != nil {
		query += ` AND status = ?`
		args = append(args, *status)
	}
	query += ` ORDER BY clock_in_at DESC`

	shifts := []Shift{}
	if err := p.db.SelectContext(ctx, &shifts, query, args...); err != nil {
		return nil, err
	}
	return shifts, nil
}

// ToggleShift performs a clock scan as a single transaction: if the chef has
// an open shift at the venue it is closed and submitted, otherwise a new open
// shift is created. Returns the resulting shift and whether the scan was a
// clock-out. The partial unique index on open shifts rejects the losing side
// of a concurrent double clock-in with ErrOpenShiftConflict.
func (p *SQLProvider) ToggleShift(ctx context.Context, params ToggleShiftParams) (*Shift, bool, error) {
	tx, err := p.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, false, err
	}
	defer tx.Rollback()

	var open Shift
	err = tx.GetContext(ctx, &open,
		`SELECT * FROM shifts WHERE chef_id = ? AND venue_id = ? AND status = ?`,
		params.ChefID, params.VenueID, ShiftOpen)

	var shift *Shift
	var clockedOut bool

	switch {
	case err == nil:
		// Clock out: close the open shift and submit it for review.
		res, err := tx.ExecContext(ctx,
			`UPDATE shifts
			 SET clock_out_at = ?, status = ?, break_minutes = ?,
			     chef_note = COALESCE(?, chef_note), updated_at = ?
			 WHERE id = ? AND status = ?`,
			params.Now, ShiftSubmitted, params.BreakMinutes,
			params.ChefNote, params.Now, open.ID, ShiftOpen)
		if err != nil {
			return nil, false, err
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return nil, false, err
		}
		if affected == 0 {
			// Lost a race against another scan closing the same shift.
			return nil, false, ErrOpenShiftConflict
		}

		open.ClockOutAt = &params.Now
		open.Status = ShiftSubmitted
		open.BreakMinutes = params.BreakMinutes
		if params.ChefNote != nil {
			open.ChefNote = params.ChefNote
		}
		open.UpdatedAt = params.Now
		shift = &open
		clockedOut = true

	case errors.Is(err, sql.ErrNoRows):
		// Clock in: open a new shift.
		created := Shift{
			ID:           uuid.NewString(),
			ChefID:       params.ChefID,
			VenueID:      params.VenueID,
			GigID:        params.GigID,
			ClockInAt:    params.Now,
			Status:       ShiftOpen,
			BreakMinutes: 0,
			ChefNote:     params.ChefNote,
			CreatedAt:    params.Now,
			UpdatedAt:    params.Now,
		}
		_, err := tx.NamedExecContext(ctx,
			`INSERT INTO shifts (id, chef_id, venue_id, gig_id, clock_in_at, clock_out_at, status,
			                     break_minutes, chef_note, venue_note, created_at, updated_at)
			 VALUES (:id, :chef_id, :venue_id, :gig_id, :clock_in_at, :clock_out_at, :status,
			         :break_minutes, :chef_note, :venue_note, :created_at, :updated_at)`,
			created)
		if err != nil {
			var sqliteErr sqlite3.Error
			if errors.As(err, &sqliteErr) && sqliteErr.Code == sqlite3.ErrConstraint {
				return nil, false, ErrOpenShiftConflict
			}
			return nil, false, err
		}
		shift = &created

	default:
		return nil, false, err
	}

	if params.ConsumeTokenID != "" {
		res, err := tx.ExecContext(ctx,
			`UPDATE clock_tokens SET used_at = ?, used_by = ?
			 WHERE id = ? AND used_at IS NULL`,
			params.Now, params.ChefID, params.ConsumeTokenID)
		if err != nil {
			return nil, false, err
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return nil, false, err
		}
		if affected == 0 {
			return nil, false, ErrTokenConsumed
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, false, err
	}

	return shift, clockedOut, nil
}

// UpdateShiftStatus conditionally moves a shift from one of the given source
// statuses to the target status. The condition lives in the UPDATE itself so
// concurrent reviews cannot both win.
func (p *SQLProvider) UpdateShiftStatus(ctx context.Context, shiftID string, from []ShiftStatus, to ShiftStatus, venueNote *string, now time.Time) (*Shift, error) {
	if len(from) == 0 {
		return nil, errors.New("storage: no source statuses given")
	}

	query := `UPDATE shifts
	          SET status = ?, venue_note = COALESCE(?, venue_note), updated_at = ?
	          WHERE id = ? AND status IN (?`
	args := []any{to, venueNote, now, shiftID, from[0]}
	for _, s := range from[1:] {
		query += `, ?`
		args = append(args, s)
	}
	query += `)`

	res, err := p.db.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		if _, err := p.GetShift(ctx, shiftID); err != nil {
			return nil, err
		}
		return nil, ErrStatusConflict
	}

	return p.GetShift(ctx, shiftID)
}
