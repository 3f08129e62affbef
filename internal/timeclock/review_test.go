package timeclock

import (
	"context"
	"errors"
	"testing"
	"time"

	"pantry-timeclock/internal/auth"
	"pantry-timeclock/internal/config"
	"pantry-timeclock/internal/storage"
)

func seedShift(store *fakeStore, id string, status storage.ShiftStatus) {
	clockOut := t0.Add(8 * time.Hour)
	shift := storage.Shift{
		ID:        id,
		ChefID:    "C1",
		VenueID:   "V1",
		ClockInAt: t0,
		Status:    status,
		CreatedAt: t0,
		UpdatedAt: t0,
	}
	if status != storage.ShiftOpen {
		shift.ClockOutAt = &clockOut
	}
	store.shifts[id] = shift
}

func TestUpdateStatus_ApproveSubmittedShift(t *testing.T) {
	svc, store := newTestService(config.TokenModeSingleUse)
	seedVenueAndChef(store, true)
	seedShift(store, "S1", storage.ShiftSubmitted)

	note := "Good work"
	shift, err := svc.UpdateStatus(context.Background(), "S1", storage.ShiftApproved, &note, manager())
	if err != nil {
		t.Fatalf("UpdateStatus failed: %v", err)
	}
	if shift.Status != storage.ShiftApproved {
		t.Errorf("Expected approved, got %s", shift.Status)
	}
	if shift.VenueNote == nil || *shift.VenueNote != note {
		t.Errorf("Venue note not applied: %v", shift.VenueNote)
	}
}

func TestUpdateStatus_DisputeSubmittedShift(t *testing.T) {
	svc, store := newTestService(config.TokenModeSingleUse)
	seedVenueAndChef(store, true)
	seedShift(store, "S1", storage.ShiftSubmitted)

	shift, err := svc.UpdateStatus(context.Background(), "S1", storage.ShiftDisputed, nil, manager())
	if err != nil {
		t.Fatalf("UpdateStatus failed: %v", err)
	}
	if shift.Status != storage.ShiftDisputed {
		t.Errorf("Expected disputed, got %s", shift.Status)
	}
}

func TestUpdateStatus_TerminalStatesAreFinal(t *testing.T) {
	svc, store := newTestService(config.TokenModeSingleUse)
	seedVenueAndChef(store, true)

	for _, status := range []storage.ShiftStatus{storage.ShiftApproved, storage.ShiftDisputed, storage.ShiftVoid} {
		seedShift(store, "S1", status)
		if _, err := svc.UpdateStatus(context.Background(), "S1", storage.ShiftApproved, nil, manager()); !errors.Is(err, ErrInvalidTransition) {
			t.Errorf("Expected ErrInvalidTransition from %s, got %v", status, err)
		}
	}
}

func TestUpdateStatus_OpenShiftNotReviewable(t *testing.T) {
	svc, store := newTestService(config.TokenModeSingleUse)
	seedVenueAndChef(store, true)
	seedShift(store, "S1", storage.ShiftOpen)

	if _, err := svc.UpdateStatus(context.Background(), "S1", storage.ShiftApproved, nil, manager()); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("Expected ErrInvalidTransition, got %v", err)
	}
}

func TestUpdateStatus_RejectsOtherTargets(t *testing.T) {
	svc, store := newTestService(config.TokenModeSingleUse)
	seedVenueAndChef(store, true)
	seedShift(store, "S1", storage.ShiftSubmitted)

	for _, target := range []storage.ShiftStatus{storage.ShiftOpen, storage.ShiftSubmitted, storage.ShiftVoid} {
		if _, err := svc.UpdateStatus(context.Background(), "S1", target, nil, manager()); !errors.Is(err, ErrInvalidTransition) {
			t.Errorf("Expected ErrInvalidTransition for target %s, got %v", target, err)
		}
	}
}

func TestUpdateStatus_NotManager(t *testing.T) {
	svc, store := newTestService(config.TokenModeSingleUse)
	seedVenueAndChef(store, true)
	seedShift(store, "S1", storage.ShiftSubmitted)

	chef := Requester{UserID: "C1", Role: auth.RoleChef}
	if _, err := svc.UpdateStatus(context.Background(), "S1", storage.ShiftApproved, nil, chef); !errors.Is(err, ErrNotAuthorized) {
		t.Fatalf("Expected ErrNotAuthorized, got %v", err)
	}
}

func TestUpdateStatus_UnknownShift(t *testing.T) {
	svc, store := newTestService(config.TokenModeSingleUse)
	seedVenueAndChef(store, true)

	if _, err := svc.UpdateStatus(context.Background(), "nope", storage.ShiftApproved, nil, manager()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Expected ErrNotFound, got %v", err)
	}
}

func TestVoidShift_AdminOnly(t *testing.T) {
	svc, store := newTestService(config.TokenModeSingleUse)
	seedVenueAndChef(store, true)
	seedShift(store, "S1", storage.ShiftSubmitted)

	if _, err := svc.VoidShift(context.Background(), "S1", manager()); !errors.Is(err, ErrNotAuthorized) {
		t.Fatalf("Expected ErrNotAuthorized for non-admin, got %v", err)
	}

	admin := Requester{UserID: "ops", Role: auth.RoleAdmin}
	shift, err := svc.VoidShift(context.Background(), "S1", admin)
	if err != nil {
		t.Fatalf("VoidShift failed: %v", err)
	}
	if shift.Status != storage.ShiftVoid {
		t.Errorf("Expected void, got %s", shift.Status)
	}

	// Terminal shifts cannot be voided.
	seedShift(store, "S2", storage.ShiftApproved)
	if _, err := svc.VoidShift(context.Background(), "S2", admin); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("Expected ErrInvalidTransition, got %v", err)
	}
}

func TestVoidShift_OpenShift(t *testing.T) {
	svc, store := newTestService(config.TokenModeSingleUse)
	seedVenueAndChef(store, true)
	seedShift(store, "S1", storage.ShiftOpen)

	admin := Requester{UserID: "ops", Role: auth.RoleAdmin}
	shift, err := svc.VoidShift(context.Background(), "S1", admin)
	if err != nil {
		t.Fatalf("VoidShift failed: %v", err)
	}
	if shift.Status != storage.ShiftVoid {
		t.Errorf("Expected void, got %s", shift.Status)
	}
}

func TestListShifts_StatusFilter(t *testing.T) {
	svc, store := newTestService(config.TokenModeSingleUse)
	seedVenueAndChef(store, true)
	seedShift(store, "S1", storage.ShiftSubmitted)
	seedShift(store, "S2", storage.ShiftApproved)

	submitted := storage.ShiftSubmitted
	rows, err := svc.ListShifts(context.Background(), "V1", manager(), &submitted)
	if err != nil {
		t.Fatalf("ListShifts failed: %v", err)
	}
	if len(rows) != 1 || rows[0].ID != "S1" {
		t.Errorf("Expected only S1, got %v", rows)
	}
	if rows[0].ChefName != "Alex" {
		t.Errorf("Expected joined chef name, got %q", rows[0].ChefName)
	}

	rows, err = svc.ListShifts(context.Background(), "V1", manager(), nil)
	if err != nil {
		t.Fatalf("ListShifts failed: %v", err)
	}
	if len(rows) != 2 {
		t.Errorf("Expected 2 shifts, got %d", len(rows))
	}
}

func TestAddStaff_ReactivatesInactiveMember(t *testing.T) {
	svc, store := newTestService(config.TokenModeSingleUse)
	seedVenueAndChef(store, false)

	row, err := svc.AddStaff(context.Background(), "V1", "C1", manager())
	if err != nil {
		t.Fatalf("AddStaff failed: %v", err)
	}
	if !row.IsActive {
		t.Errorf("Expected reactivated staff member")
	}
	if len(store.staff) != 1 {
		t.Errorf("Expected upsert, got %d staff rows", len(store.staff))
	}
}

func TestAddStaff_UnknownChef(t *testing.T) {
	svc, store := newTestService(config.TokenModeSingleUse)
	seedVenueAndChef(store, true)

	if _, err := svc.AddStaff(context.Background(), "V1", "nope", manager()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Expected ErrNotFound, got %v", err)
	}
}

func TestSetStaffActive(t *testing.T) {
	svc, store := newTestService(config.TokenModeSingleUse)
	seedVenueAndChef(store, true)

	row, err := svc.SetStaffActive(context.Background(), "V1", "st1", false, manager())
	if err != nil {
		t.Fatalf("SetStaffActive failed: %v", err)
	}
	if row.IsActive {
		t.Errorf("Expected inactive staff member")
	}

	if _, err := svc.SetStaffActive(context.Background(), "V1", "nope", false, manager()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Expected ErrNotFound, got %v", err)
	}
}

type recordingNotifier struct {
	reviewed chan storage.Shift
}

func (n *recordingNotifier) ShiftReviewed(chef storage.Chef, venue storage.Venue, shift storage.Shift) {
	n.reviewed <- shift
}

func TestUpdateStatus_NotifiesChef(t *testing.T) {
	store := newFakeStore()
	cfg := &config.Config{TokenMode: config.TokenModeSingleUse, TokenDefaultTTL: 60}
	notifier := &recordingNotifier{reviewed: make(chan storage.Shift, 1)}
	svc := NewService(store, cfg, notifier)
	svc.now = func() time.Time { return t0 }

	seedVenueAndChef(store, true)
	seedShift(store, "S1", storage.ShiftSubmitted)

	if _, err := svc.UpdateStatus(context.Background(), "S1", storage.ShiftApproved, nil, manager()); err != nil {
		t.Fatalf("UpdateStatus failed: %v", err)
	}

	select {
	case shift := <-notifier.reviewed:
		if shift.ID != "S1" || shift.Status != storage.ShiftApproved {
			t.Errorf("Unexpected notification payload: %+v", shift)
		}
	case <-time.After(time.Second):
		t.Fatal("Notification never fired")
	}
}
