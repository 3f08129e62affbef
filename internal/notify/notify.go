// Package notify sends best-effort email notifications to chefs when a venue
// manager reviews one of their shifts. Delivery failures are logged and
// dropped; the review itself never depends on the mail server.
package notify

import (
	"fmt"
	"log/slog"
	"time"

	"pantry-timeclock/internal/config"
	"pantry-timeclock/internal/storage"

	"github.com/inbucket/html2text"
	"github.com/wneessen/go-mail"
)

type Mailer struct {
	cfg    config.EmailConfig
	logger *slog.Logger
}

// NewMailer returns nil when email is disabled, which the service treats as
// "no notifier".
func NewMailer(cfg config.EmailConfig) *Mailer {
	if !cfg.Enabled {
		return nil
	}
	return &Mailer{
		cfg:    cfg,
		logger: slog.With("component", "notify"),
	}
}

func (m *Mailer) ShiftReviewed(chef storage.Chef, venue storage.Venue, shift storage.Shift) {
	if chef.Email == "" {
		m.logger.Debug("Chef has no email, skipping notification", "chef_id", chef.ID)
		return
	}

	subject := fmt.Sprintf("Your shift at %s was %s", venue.Name, shift.Status)
	html := reviewBodyHTML(chef, venue, shift)

	text, err := html2text.FromString(html, html2text.Options{OmitLinks: false})
	if err != nil {
		m.logger.Error("Failed to convert notification to text", "error", err)
		return
	}

	msg := mail.NewMsg()
	if err := msg.From(m.cfg.From); err != nil {
		m.logger.Error("Invalid notification sender", "from", m.cfg.From, "error", err)
		return
	}
	if err := msg.To(chef.Email); err != nil {
		m.logger.Error("Invalid notification recipient", "to", chef.Email, "error", err)
		return
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextPlain, text)
	msg.AddAlternativeString(mail.TypeTextHTML, html)

	opts := []mail.Option{
		mail.WithPort(m.cfg.Port),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
	}
	if m.cfg.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(m.cfg.Username),
			mail.WithPassword(m.cfg.Password))
	}

	client, err := mail.NewClient(m.cfg.Host, opts...)
	if err != nil {
		m.logger.Error("Failed to create mail client", "error", err)
		return
	}

	if err := client.DialAndSend(msg); err != nil {
		m.logger.Error("Failed to send review notification", "chef_id", chef.ID, "shift_id", shift.ID, "error", err)
		return
	}

	m.logger.Info("Sent review notification", "chef_id", chef.ID, "shift_id", shift.ID, "status", string(shift.Status))
}

func reviewBodyHTML(chef storage.Chef, venue storage.Venue, shift storage.Shift) string {
	var when string
	if shift.ClockOutAt != nil {
		when = fmt.Sprintf("%s – %s",
			shift.ClockInAt.Format("Mon 2 Jan 15:04"),
			shift.ClockOutAt.Format("15:04"))
	} else {
		when = shift.ClockInAt.Format(time.RFC1123)
	}

	note := ""
	if shift.VenueNote != nil && *shift.VenueNote != "" {
		note = fmt.Sprintf("<p>Note from the venue: %s</p>", *shift.VenueNote)
	}

	return fmt.Sprintf(`<html><body>
<p>Hi %s,</p>
<p>Your shift at <strong>%s</strong> (%s) was marked <strong>%s</strong>.</p>
%s
<p>— Chef Pantry</p>
</body></html>`, chef.DisplayName, venue.Name, when, shift.Status, note)
}
