package storage

import "time"

// Shift statuses. Terminal states are approved, disputed and void.
type ShiftStatus string

const (
	ShiftOpen      ShiftStatus = "open"
	ShiftSubmitted ShiftStatus = "submitted"
	ShiftApproved  ShiftStatus = "approved"
	ShiftDisputed  ShiftStatus = "disputed"
	ShiftVoid      ShiftStatus = "void"
)

type Venue struct {
	ID        string    `db:"id"`
	Name      string    `db:"name"`
	ManagerID string    `db:"manager_id"`
	CreatedAt time.Time `db:"created_at"`
}

type Chef struct {
	ID          string    `db:"id"`
	DisplayName string    `db:"display_name"`
	Email       string    `db:"email"`
	AvatarURL   *string   `db:"avatar_url"`
	// Hourly rate in pence. Nil means the chef has not set a rate yet.
	HourlyRatePence *int64    `db:"hourly_rate_pence"`
	CreatedAt       time.Time `db:"created_at"`
}

// ClockToken is an opaque venue clock token. The token value is what gets
// encoded into the QR image. GigID scopes the token to a single gig; nil
// means any gig at the venue. ExpiresAt nil means a permanent token.
type ClockToken struct {
	ID        string     `db:"id"`
	VenueID   string     `db:"venue_id"`
	Token     string     `db:"token"`
	GigID     *string    `db:"gig_id"`
	ExpiresAt *time.Time `db:"expires_at"`
	UsedAt    *time.Time `db:"used_at"`
	UsedBy    *string    `db:"used_by"`
	CreatedBy string     `db:"created_by"`
	CreatedAt time.Time  `db:"created_at"`
}

type Shift struct {
	ID           string      `db:"id"`
	ChefID       string      `db:"chef_id"`
	VenueID      string      `db:"venue_id"`
	GigID        *string     `db:"gig_id"`
	ClockInAt    time.Time   `db:"clock_in_at"`
	ClockOutAt   *time.Time  `db:"clock_out_at"`
	Status       ShiftStatus `db:"status"`
	BreakMinutes int         `db:"break_minutes"`
	ChefNote     *string     `db:"chef_note"`
	VenueNote    *string     `db:"venue_note"`
	CreatedAt    time.Time   `db:"created_at"`
	UpdatedAt    time.Time   `db:"updated_at"`
}

// ShiftWithChef is a shift row joined with the chef's display info and,
// when present, the gig id. Used by the timesheet review listing.
type ShiftWithChef struct {
	Shift
	ChefName        string  `db:"chef_name"`
	ChefEmail       string  `db:"chef_email"`
	ChefAvatarURL   *string `db:"chef_avatar_url"`
	HourlyRatePence *int64  `db:"hourly_rate_pence"`
}

type VenueStaff struct {
	ID        string    `db:"id"`
	VenueID   string    `db:"venue_id"`
	ChefID    string    `db:"chef_id"`
	IsActive  bool      `db:"is_active"`
	CreatedAt time.Time `db:"created_at"`
}
