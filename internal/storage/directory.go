package storage

import (
	"context"
)

func (p *SQLProvider) CreateVenue(ctx context.Context, venue Venue) error {
	_, err := p.db.NamedExecContext(ctx,
		`INSERT INTO venues (id, name, manager_id, created_at)
		 VALUES (:id, :name, :manager_id, :created_at)`,
		venue)
	return err
}

func (p *SQLProvider) GetVenue(ctx context.Context, venueID string) (*Venue, error) {
	var venue Venue
	err := p.db.GetContext(ctx, &venue,
		`SELECT * FROM venues WHERE id = ?`, venueID)
	if err != nil {
		return nil, wrapNoRows(err)
	}
	return &venue, nil
}

func (p *SQLProvider) ListVenues(ctx context.Context) ([]Venue, error) {
	venues := []Venue{}
	err := p.db.SelectContext(ctx, &venues,
		`SELECT * FROM venues ORDER BY created_at ASC`)
	if err != nil {
		return nil, err
	}
	return venues, nil
}

func (p *SQLProvider) CreateChef(ctx context.Context, chef Chef) error {
	_, err := p.db.NamedExecContext(ctx,
		`INSERT INTO chefs (id, display_name, email, avatar_url, hourly_rate_pence, created_at)
		 VALUES (:id, :display_name, :email, :avatar_url, :hourly_rate_pence, :created_at)`,
		chef)
	return err
}

func (p *SQLProvider) GetChef(ctx context.Context, chefID string) (*Chef, error) {
	var chef Chef
	err := p.db.GetContext(ctx, &chef,
		`SELECT * FROM chefs WHERE id = ?`, chefID)
	if err != nil {
		return nil, wrapNoRows(err)
	}
	return &chef, nil
}

func (p *SQLProvider) ListChefs(ctx context.Context) ([]Chef, error) {
	chefs := []Chef{}
	err := p.db.SelectContext(ctx, &chefs,
		`SELECT * FROM chefs ORDER BY created_at ASC`)
	if err != nil {
		return nil, err
	}
	return chefs, nil
}

// UpsertVenueStaff adds a chef as clock-eligible staff at a venue. Re-adding
// an existing member reactivates them.
func (p *SQLProvider) UpsertVenueStaff(ctx context.Context, staff VenueStaff) (*VenueStaff, error) {
	_, err := p.db.NamedExecContext(ctx,
		`INSERT INTO venue_staff (id, venue_id, chef_id, is_active, created_at)
		 VALUES (:id, :venue_id, :chef_id, :is_active, :created_at)
		 ON CONFLICT (venue_id, chef_id) DO UPDATE SET is_active = excluded.is_active`,
		staff)
	if err != nil {
		return nil, err
	}

	var row VenueStaff
	err = p.db.GetContext(ctx, &row,
		`SELECT * FROM venue_staff WHERE venue_id = ? AND chef_id = ?`,
		staff.VenueID, staff.ChefID)
	if err != nil {
		return nil, wrapNoRows(err)
	}
	return &row, nil
}

func (p *SQLProvider) GetVenueStaff(ctx context.Context, venueID string, staffID string) (*VenueStaff, error) {
	var row VenueStaff
	err := p.db.GetContext(ctx, &row,
		`SELECT * FROM venue_staff WHERE venue_id = ? AND id = ?`,
		venueID, staffID)
	if err != nil {
		return nil, wrapNoRows(err)
	}
	return &row, nil
}

func (p *SQLProvider) ListVenueStaff(ctx context.Context, venueID string) ([]VenueStaff, error) {
	staff := []VenueStaff{}
	err := p.db.SelectContext(ctx, &staff,
		`SELECT * FROM venue_staff WHERE venue_id = ? ORDER BY created_at ASC`, venueID)
	if err != nil {
		return nil, err
	}
	return staff, nil
}

func (p *SQLProvider) SetVenueStaffActive(ctx context.Context, venueID string, staffID string, active bool) (*VenueStaff, error) {
	res, err := p.db.ExecContext(ctx,
		`UPDATE venue_staff SET is_active = ? WHERE venue_id = ? AND id = ?`,
		active, venueID, staffID)
	if err != nil {
		return nil, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, ErrNoRows
	}
	return p.GetVenueStaff(ctx, venueID, staffID)
}

func (p *SQLProvider) IsActiveVenueStaff(ctx context.Context, venueID string, chefID string) (bool, error) {
	var active bool
	err := p.db.GetContext(ctx, &active,
		`SELECT is_active FROM venue_staff WHERE venue_id = ? AND chef_id = ?`,
		venueID, chefID)
	if err != nil {
		err = wrapNoRows(err)
		if err == ErrNoRows {
			return false, nil
		}
		return false, err
	}
	return active, nil
}
