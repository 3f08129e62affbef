package timeclock

// In-memory Store used by the service tests. Mirrors the semantics the SQL
// provider guarantees, including single-open-shift enforcement and token
// consumption inside the toggle.

import (
	"context"
	"fmt"
	"sync"
	"time"

	"pantry-timeclock/internal/storage"
)

type fakeStore struct {
	mu sync.Mutex

	venues map[string]storage.Venue
	chefs  map[string]storage.Chef
	staff  map[string]storage.VenueStaff // by staff id
	tokens map[string]storage.ClockToken // by token id
	shifts map[string]storage.Shift      // by shift id

	nextID int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		venues: make(map[string]storage.Venue),
		chefs:  make(map[string]storage.Chef),
		staff:  make(map[string]storage.VenueStaff),
		tokens: make(map[string]storage.ClockToken),
		shifts: make(map[string]storage.Shift),
	}
}

func (f *fakeStore) genID(prefix string) string {
	f.nextID++
	return fmt.Sprintf("%s-%d", prefix, f.nextID)
}

func (f *fakeStore) GetVenue(ctx context.Context, venueID string) (*storage.Venue, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	venue, ok := f.venues[venueID]
	if !ok {
		return nil, storage.ErrNoRows
	}
	return &venue, nil
}

func (f *fakeStore) GetChef(ctx context.Context, chefID string) (*storage.Chef, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	chef, ok := f.chefs[chefID]
	if !ok {
		return nil, storage.ErrNoRows
	}
	return &chef, nil
}

func (f *fakeStore) UpsertVenueStaff(ctx context.Context, staff storage.VenueStaff) (*storage.VenueStaff, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for id, existing := range f.staff {
		if existing.VenueID == staff.VenueID && existing.ChefID == staff.ChefID {
			existing.IsActive = staff.IsActive
			f.staff[id] = existing
			return &existing, nil
		}
	}
	f.staff[staff.ID] = staff
	return &staff, nil
}

func (f *fakeStore) GetVenueStaff(ctx context.Context, venueID string, staffID string) (*storage.VenueStaff, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	row, ok := f.staff[staffID]
	if !ok || row.VenueID != venueID {
		return nil, storage.ErrNoRows
	}
	return &row, nil
}

func (f *fakeStore) ListVenueStaff(ctx context.Context, venueID string) ([]storage.VenueStaff, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	rows := []storage.VenueStaff{}
	for _, row := range f.staff {
		if row.VenueID == venueID {
			rows = append(rows, row)
		}
	}
	return rows, nil
}

func (f *fakeStore) SetVenueStaffActive(ctx context.Context, venueID string, staffID string, active bool) (*storage.VenueStaff, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	row, ok := f.staff[staffID]
	if !ok || row.VenueID != venueID {
		return nil, storage.ErrNoRows
	}
	row.IsActive = active
	f.staff[staffID] = row
	return &row, nil
}

func (f *fakeStore) IsActiveVenueStaff(ctx context.Context, venueID string, chefID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, row := range f.staff {
		if row.VenueID == venueID && row.ChefID == chefID {
			return row.IsActive, nil
		}
	}
	return false, nil
}

func (f *fakeStore) CreateClockToken(ctx context.Context, token storage.ClockToken) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tokens[token.ID] = token
	return nil
}

func (f *fakeStore) GetClockToken(ctx context.Context, tokenID string) (*storage.ClockToken, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	token, ok := f.tokens[tokenID]
	if !ok {
		return nil, storage.ErrNoRows
	}
	return &token, nil
}

func (f *fakeStore) GetClockTokenByValue(ctx context.Context, value string) (*storage.ClockToken, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, token := range f.tokens {
		if token.Token == value {
			return &token, nil
		}
	}
	return nil, storage.ErrNoRows
}

func (f *fakeStore) GetPermanentClockToken(ctx context.Context, venueID string) (*storage.ClockToken, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, token := range f.tokens {
		if token.VenueID == venueID && token.ExpiresAt == nil {
			return &token, nil
		}
	}
	return nil, storage.ErrNoRows
}

func (f *fakeStore) ListActiveClockTokens(ctx context.Context, venueID string, now time.Time) ([]storage.ClockToken, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	tokens := []storage.ClockToken{}
	for _, token := range f.tokens {
		if token.VenueID != venueID || token.UsedAt != nil {
			continue
		}
		if token.ExpiresAt != nil && !token.ExpiresAt.After(now) {
			continue
		}
		tokens = append(tokens, token)
	}
	return tokens, nil
}

func (f *fakeStore) DeleteClockToken(ctx context.Context, tokenID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.tokens[tokenID]; !ok {
		return storage.ErrNoRows
	}
	delete(f.tokens, tokenID)
	return nil
}

func (f *fakeStore) GetShift(ctx context.Context, shiftID string) (*storage.Shift, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	shift, ok := f.shifts[shiftID]
	if !ok {
		return nil, storage.ErrNoRows
	}
	return &shift, nil
}

func (f *fakeStore) ListVenueShifts(ctx context.Context, venueID string, status *storage.ShiftStatus) ([]storage.ShiftWithChef, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	rows := []storage.ShiftWithChef{}
	for _, shift := range f.shifts {
		if shift.VenueID != venueID {
			continue
		}
		if status != nil && shift.Status != *status {
			continue
		}
		row := storage.ShiftWithChef{Shift: shift}
		if chef, ok := f.chefs[shift.ChefID]; ok {
			row.ChefName = chef.DisplayName
			row.ChefEmail = chef.Email
			row.HourlyRatePence = chef.HourlyRatePence
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func (f *fakeStore) ListChefShifts(ctx context.Context, chefID string, status *storage.ShiftStatus) ([]storage.Shift, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	rows := []storage.Shift{}
	for _, shift := range f.shifts {
		if shift.ChefID != chefID {
			continue
		}
		if status != nil && shift.Status != *status {
			continue
		}
		rows = append(rows, shift)
	}
	return rows, nil
}

func (f *fakeStore) ToggleShift(ctx context.Context, params storage.ToggleShiftParams) (*storage.Shift, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var open *storage.Shift
	for id := range f.shifts {
		shift := f.shifts[id]
		if shift.ChefID == params.ChefID && shift.VenueID == params.VenueID && shift.Status == storage.ShiftOpen {
			open = &shift
			break
		}
	}

	if params.ConsumeTokenID != "" {
		token, ok := f.tokens[params.ConsumeTokenID]
		if !ok || token.UsedAt != nil {
			return nil, false, storage.ErrTokenConsumed
		}
		token.UsedAt = &params.Now
		token.UsedBy = &params.ChefID
		f.tokens[params.ConsumeTokenID] = token
	}

	if open != nil {
		open.ClockOutAt = &params.Now
		open.Status = storage.ShiftSubmitted
		open.BreakMinutes = params.BreakMinutes
		if params.ChefNote != nil {
			open.ChefNote = params.ChefNote
		}
		open.UpdatedAt = params.Now
		f.shifts[open.ID] = *open
		return open, true, nil
	}

	created := storage.Shift{
		ID:        f.genID("shift"),
		ChefID:    params.ChefID,
		VenueID:   params.VenueID,
		GigID:     params.GigID,
		ClockInAt: params.Now,
		Status:    storage.ShiftOpen,
		ChefNote:  params.ChefNote,
		CreatedAt: params.Now,
		UpdatedAt: params.Now,
	}
	f.shifts[created.ID] = created
	return &created, false, nil
}

func (f *fakeStore) UpdateShiftStatus(ctx context.Context, shiftID string, from []storage.ShiftStatus, to storage.ShiftStatus, venueNote *string, now time.Time) (*storage.Shift, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	shift, ok := f.shifts[shiftID]
	if !ok {
		return nil, storage.ErrNoRows
	}

	allowed := false
	for _, status := range from {
		if shift.Status == status {
			allowed = true
			break
		}
	}
	if !allowed {
		return nil, storage.ErrStatusConflict
	}

	shift.Status = to
	if venueNote != nil {
		shift.VenueNote = venueNote
	}
	shift.UpdatedAt = now
	f.shifts[shiftID] = shift
	return &shift, nil
}

var _ Store = (*fakeStore)(nil)
