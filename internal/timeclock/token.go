package timeclock

import (
	"context"
	"errors"
	"fmt"
	"time"

	"pantry-timeclock/internal/config"
	"pantry-timeclock/internal/storage"

	"github.com/google/uuid"
)

type IssueOptions struct {
	// Requested expiry in minutes. Zero means the configured default.
	// Rejected in permanent mode.
	ExpiresInMinutes uint
	// Scope the token to a single gig. Nil means any gig at the venue.
	GigID *string
}

// IssueToken creates (or, in permanent mode, returns) a venue clock token.
//
// single_use mode: every call persists a new token with an expiry clamped to
// [15 min, 8 h]. permanent mode: issuance is idempotent per venue; the token
// never expires, is never consumed and cannot be gig-scoped.
func (s *Service) IssueToken(ctx context.Context, venueID string, requester Requester, opts IssueOptions) (*storage.ClockToken, error) {
	if _, err := s.requireVenueManager(ctx, venueID, requester); err != nil {
		return nil, err
	}

	now := s.now().UTC()

	if s.mode == config.TokenModePermanent {
		if opts.ExpiresInMinutes != 0 {
			return nil, fmt.Errorf("%w: expiry not allowed for permanent tokens", ErrInvalidArgument)
		}
		if opts.GigID != nil {
			return nil, fmt.Errorf("%w: permanent tokens cannot be gig-scoped", ErrInvalidArgument)
		}

		existing, err := s.store.GetPermanentClockToken(ctx, venueID)
		if err == nil {
			return existing, nil
		}
		if !errors.Is(err, storage.ErrNoRows) {
			return nil, err
		}

		return s.createToken(ctx, venueID, requester.UserID, nil, nil, now)
	}

	ttl := opts.ExpiresInMinutes
	if ttl == 0 {
		ttl = s.defaultTTL
	}
	if ttl < config.TokenMinTTLMinutes || ttl > config.TokenMaxTTLMinutes {
		return nil, fmt.Errorf("%w: expiry must be between %d and %d minutes",
			ErrInvalidArgument, config.TokenMinTTLMinutes, config.TokenMaxTTLMinutes)
	}

	expiresAt := now.Add(time.Duration(ttl) * time.Minute)
	return s.createToken(ctx, venueID, requester.UserID, &expiresAt, opts.GigID, now)
}

func (s *Service) createToken(ctx context.Context, venueID string, createdBy string, expiresAt *time.Time, gigID *string, now time.Time) (*storage.ClockToken, error) {
	value, err := newTokenValue()
	if err != nil {
		return nil, err
	}

	token := storage.ClockToken{
		ID:        uuid.NewString(),
		VenueID:   venueID,
		Token:     value,
		GigID:     gigID,
		ExpiresAt: expiresAt,
		CreatedBy: createdBy,
		CreatedAt: now,
	}

	if err := s.store.CreateClockToken(ctx, token); err != nil {
		return nil, err
	}

	s.logger.Info("Issued clock token", "venue_id", venueID, "token_id", token.ID, "permanent", expiresAt == nil)
	return &token, nil
}

// ListActiveTokens returns the venue's tokens that are still consumable.
func (s *Service) ListActiveTokens(ctx context.Context, venueID string, requester Requester) ([]storage.ClockToken, error) {
	if _, err := s.requireVenueManager(ctx, venueID, requester); err != nil {
		return nil, err
	}
	return s.store.ListActiveClockTokens(ctx, venueID, s.now().UTC())
}

// RevokeToken deletes a token. The requester must manage the token's venue.
func (s *Service) RevokeToken(ctx context.Context, tokenID string, requester Requester) error {
	token, err := s.store.GetClockToken(ctx, tokenID)
	if err != nil {
		if errors.Is(err, storage.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}

	if _, err := s.requireVenueManager(ctx, token.VenueID, requester); err != nil {
		return err
	}

	if err := s.store.DeleteClockToken(ctx, tokenID); err != nil {
		if errors.Is(err, storage.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}

	s.logger.Info("Revoked clock token", "venue_id", token.VenueID, "token_id", tokenID)
	return nil
}

// GetToken returns a token by id without a venue-manager check. Used by the
// QR image and poster endpoints, where holding the token id is the
// capability.
func (s *Service) GetToken(ctx context.Context, tokenID string) (*storage.ClockToken, error) {
	token, err := s.store.GetClockToken(ctx, tokenID)
	if err != nil {
		if errors.Is(err, storage.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return token, nil
}

func (s *Service) Venue(ctx context.Context, venueID string) (*storage.Venue, error) {
	venue, err := s.store.GetVenue(ctx, venueID)
	if err != nil {
		if errors.Is(err, storage.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return venue, nil
}
