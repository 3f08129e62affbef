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

func TestIssueToken_DefaultExpiry(t *testing.T) {
	svc, store := newTestService(config.TokenModeSingleUse)
	seedVenueAndChef(store, true)

	token, err := svc.IssueToken(context.Background(), "V1", manager(), IssueOptions{})
	if err != nil {
		t.Fatalf("IssueToken failed: %v", err)
	}
	if token.ExpiresAt == nil {
		t.Fatalf("Expected expiry on single-use token")
	}
	if want := t0.Add(60 * time.Minute); !token.ExpiresAt.Equal(want) {
		t.Errorf("Expected expiry %v, got %v", want, token.ExpiresAt)
	}
	if token.Token == "" {
		t.Errorf("Expected a token value")
	}
}

func TestIssueToken_ExpiryBounds(t *testing.T) {
	svc, store := newTestService(config.TokenModeSingleUse)
	seedVenueAndChef(store, true)

	for _, minutes := range []uint{14, 481} {
		if _, err := svc.IssueToken(context.Background(), "V1", manager(), IssueOptions{ExpiresInMinutes: minutes}); !errors.Is(err, ErrInvalidArgument) {
			t.Errorf("Expected ErrInvalidArgument for %d minutes, got %v", minutes, err)
		}
	}
	for _, minutes := range []uint{15, 480} {
		if _, err := svc.IssueToken(context.Background(), "V1", manager(), IssueOptions{ExpiresInMinutes: minutes}); err != nil {
			t.Errorf("Expected %d minutes to be accepted, got %v", minutes, err)
		}
	}
}

func TestIssueToken_PermanentIsIdempotent(t *testing.T) {
	svc, store := newTestService(config.TokenModePermanent)
	seedVenueAndChef(store, true)

	first, err := svc.IssueToken(context.Background(), "V1", manager(), IssueOptions{})
	if err != nil {
		t.Fatalf("First IssueToken failed: %v", err)
	}
	if first.ExpiresAt != nil {
		t.Errorf("Permanent token has an expiry: %v", first.ExpiresAt)
	}

	second, err := svc.IssueToken(context.Background(), "V1", manager(), IssueOptions{})
	if err != nil {
		t.Fatalf("Second IssueToken failed: %v", err)
	}
	if second.ID != first.ID {
		t.Errorf("Expected same token, got %s and %s", first.ID, second.ID)
	}
	if len(store.tokens) != 1 {
		t.Errorf("Expected 1 stored token, got %d", len(store.tokens))
	}
}

func TestIssueToken_PermanentRejectsExpiryAndGig(t *testing.T) {
	svc, store := newTestService(config.TokenModePermanent)
	seedVenueAndChef(store, true)

	if _, err := svc.IssueToken(context.Background(), "V1", manager(), IssueOptions{ExpiresInMinutes: 30}); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("Expected ErrInvalidArgument for expiry, got %v", err)
	}

	gig := "G1"
	if _, err := svc.IssueToken(context.Background(), "V1", manager(), IssueOptions{GigID: &gig}); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("Expected ErrInvalidArgument for gig scope, got %v", err)
	}
}

func TestIssueToken_NotManager(t *testing.T) {
	svc, store := newTestService(config.TokenModeSingleUse)
	seedVenueAndChef(store, true)

	cases := []Requester{
		{UserID: "someone-else", Role: auth.RoleBusiness},
		{UserID: "C1", Role: auth.RoleChef},
	}
	for _, requester := range cases {
		if _, err := svc.IssueToken(context.Background(), "V1", requester, IssueOptions{}); !errors.Is(err, ErrNotAuthorized) {
			t.Errorf("Expected ErrNotAuthorized for %s/%s, got %v", requester.UserID, requester.Role, err)
		}
	}
}

func TestIssueToken_AdminBypassesManagerCheck(t *testing.T) {
	svc, store := newTestService(config.TokenModeSingleUse)
	seedVenueAndChef(store, true)

	admin := Requester{UserID: "ops", Role: auth.RoleAdmin}
	if _, err := svc.IssueToken(context.Background(), "V1", admin, IssueOptions{}); err != nil {
		t.Fatalf("Expected admin issuance to succeed, got %v", err)
	}
}

func TestIssueToken_UnknownVenue(t *testing.T) {
	svc, _ := newTestService(config.TokenModeSingleUse)

	if _, err := svc.IssueToken(context.Background(), "nope", manager(), IssueOptions{}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Expected ErrNotFound, got %v", err)
	}
}

func TestListActiveTokens_FiltersUsedAndExpired(t *testing.T) {
	svc, store := newTestService(config.TokenModeSingleUse)
	seedVenueAndChef(store, true)

	live, err := svc.IssueToken(context.Background(), "V1", manager(), IssueOptions{ExpiresInMinutes: 60})
	if err != nil {
		t.Fatalf("IssueToken failed: %v", err)
	}

	expired := t0.Add(-time.Minute)
	used := t0.Add(-time.Hour)
	store.tokens["expired"] = storage.ClockToken{ID: "expired", VenueID: "V1", Token: "tok-expired", ExpiresAt: &expired, CreatedBy: "mgr1", CreatedAt: t0}
	store.tokens["used"] = storage.ClockToken{ID: "used", VenueID: "V1", Token: "tok-used", UsedAt: &used, CreatedBy: "mgr1", CreatedAt: t0}

	tokens, err := svc.ListActiveTokens(context.Background(), "V1", manager())
	if err != nil {
		t.Fatalf("ListActiveTokens failed: %v", err)
	}
	if len(tokens) != 1 || tokens[0].ID != live.ID {
		t.Errorf("Expected only the live token, got %v", tokens)
	}
}

func TestRevokeToken(t *testing.T) {
	svc, store := newTestService(config.TokenModeSingleUse)
	seedVenueAndChef(store, true)

	token, err := svc.IssueToken(context.Background(), "V1", manager(), IssueOptions{})
	if err != nil {
		t.Fatalf("IssueToken failed: %v", err)
	}

	if err := svc.RevokeToken(context.Background(), token.ID, Requester{UserID: "stranger", Role: auth.RoleBusiness}); !errors.Is(err, ErrNotAuthorized) {
		t.Fatalf("Expected ErrNotAuthorized, got %v", err)
	}

	if err := svc.RevokeToken(context.Background(), token.ID, manager()); err != nil {
		t.Fatalf("RevokeToken failed: %v", err)
	}
	if len(store.tokens) != 0 {
		t.Errorf("Token still stored after revoke")
	}

	if err := svc.RevokeToken(context.Background(), token.ID, manager()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Expected ErrNotFound for revoked token, got %v", err)
	}
}
