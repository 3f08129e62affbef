package storage

import (
	"context"
	"time"
)

func (p *SQLProvider) CreateClockToken(ctx context.Context, token ClockToken) error {
	_, err := p.db.NamedExecContext(ctx,
		`INSERT INTO clock_tokens (id, venue_id, token, gig_id, expires_at, used_at, used_by, created_by, created_at)
		 VALUES (:id, :venue_id, :token, :gig_id, :expires_at, :used_at, :used_by, :created_by, :created_at)`,
		token)
	return err
}

func (p *SQLProvider) GetClockToken(ctx context.Context, tokenID string) (*ClockToken, error) {
	var token ClockToken
	err := p.db.GetContext(ctx, &token,
		`SELECT * FROM clock_tokens WHERE id = ?`, tokenID)
	if err != nil {
		return nil, wrapNoRows(err)
	}
	return &token, nil
}

func (p *SQLProvider) GetClockTokenByValue(ctx context.Context, value string) (*ClockToken, error) {
	var token ClockToken
	err := p.db.GetContext(ctx, &token,
		`SELECT * FROM clock_tokens WHERE token = ?`, value)
	if err != nil {
		return nil, wrapNoRows(err)
	}
	return &token, nil
}

// GetPermanentClockToken returns the venue's token without an expiry, if any.
func (p *SQLProvider) GetPermanentClockToken(ctx context.Context, venueID string) (*ClockToken, error) {
	var token ClockToken
	err := p.db.GetContext(ctx, &token,
		`SELECT * FROM clock_tokens
		 WHERE venue_id = ? AND expires_at IS NULL
		 ORDER BY created_at ASC LIMIT 1`, venueID)
	if err != nil {
		return nil, wrapNoRows(err)
	}
	return &token, nil
}

// ListActiveClockTokens returns the venue's tokens that are neither expired
// nor consumed as of now.
func (p *SQLProvider) ListActiveClockTokens(ctx context.Context, venueID string, now time.Time) ([]ClockToken, error) {
	tokens := []ClockToken{}
	err := p.db.SelectContext(ctx, &tokens,
		`SELECT * FROM clock_tokens
		 WHERE venue_id = ?
		   AND used_at IS NULL
		   AND (expires_at IS NULL OR expires_at > ?)
		 ORDER BY created_at DESC`, venueID, now)
	if err != nil {
		return nil, err
	}
	return tokens, nil
}

func (p *SQLProvider) DeleteClockToken(ctx context.Context, tokenID string) error {
	res, err := p.db.ExecContext(ctx,
		`DELETE FROM clock_tokens WHERE id = ?`, tokenID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNoRows
	}
	return nil
}
