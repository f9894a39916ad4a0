// Package mailer implements the notification relay for new contact messages.
// Delivery is best effort: a missing configuration or a failed SMTP exchange
// is logged and never reported to the submitter, because the message has
// already been handed to storage by the time the relay runs.
package mailer

import (
	"context"
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/rs/zerolog"
	mail "github.com/wneessen/go-mail"

	"github.com/tabibito/portfolio-api/internal/config"
	"github.com/tabibito/portfolio-api/internal/observability"
)

// Mailer delivers contact notifications through an SMTP relay.
type Mailer struct {
	cfg    config.SMTP
	client *mail.Client
	logger zerolog.Logger
}

// New constructs a Mailer from the SMTP configuration. An incomplete
// configuration yields a log-only relay rather than an error; a client that
// cannot be built (bad host, bad options) does the same, so the contact
// endpoint is never disabled by mail trouble.
func New(cfg config.SMTP, logger zerolog.Logger) *Mailer {
	m := &Mailer{
		cfg:    cfg,
		logger: logger.With().Str("component", "mailer").Logger(),
	}

	if !cfg.Configured() {
		m.logger.Warn().Msg("smtp configuration incomplete, notifications will be logged only")
		return m
	}

	opts := []mail.Option{
		mail.WithPort(cfg.Port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(cfg.User),
		mail.WithPassword(cfg.Password),
		mail.WithTimeout(30 * time.Second),
	}
	if cfg.Secure {
		opts = append(opts, mail.WithSSL())
	} else {
		opts = append(opts, mail.WithTLSPolicy(mail.TLSOpportunistic))
	}

	client, err := mail.NewClient(cfg.Host, opts...)
	if err != nil {
		m.logger.Error().Err(err).Msg("failed to initialise smtp client, notifications will be logged only")
		return m
	}

	m.client = client
	m.logger.Info().Str("host", cfg.Host).Int("port", cfg.Port).Msg("smtp relay configured")
	return m
}

// Configured reports whether real delivery will be attempted.
func (m *Mailer) Configured() bool {
	return m.client != nil
}

// Notify relays one contact submission to the operator's inbox. The event is
// always logged; delivery only happens when the relay is configured, and a
// failed send is logged and swallowed.
func (m *Mailer) Notify(ctx context.Context, name, email, message string) error {
	m.logger.Info().
		Str("name", name).
		Str("email", email).
		Msg("contact form submission received")

	if m.client == nil {
		m.logger.Info().Msg("smtp relay not configured, contact info logged only")
		observability.ContactNotifications().WithLabelValues("skipped").Inc()
		return nil
	}

	msg, err := m.buildMessage(name, email, message)
	if err != nil {
		m.logger.Error().Err(err).Msg("failed to build notification email")
		observability.ContactNotifications().WithLabelValues("failed").Inc()
		return nil
	}

	if err := m.client.DialAndSendWithContext(ctx, msg); err != nil {
		m.logger.Error().Err(err).Msg("failed to send notification email")
		observability.ContactNotifications().WithLabelValues("failed").Inc()
		return nil
	}

	m.logger.Info().Msg("notification email sent")
	observability.ContactNotifications().WithLabelValues("delivered").Inc()
	return nil
}

func (m *Mailer) buildMessage(name, email, message string) (*mail.Msg, error) {
	msg := mail.NewMsg()
	if err := msg.From(m.cfg.From); err != nil {
		return nil, fmt.Errorf("invalid from address: %w", err)
	}
	if err := msg.To(m.cfg.To); err != nil {
		return nil, fmt.Errorf("invalid to address: %w", err)
	}
	if err := msg.ReplyTo(email); err != nil {
		return nil, fmt.Errorf("invalid reply-to address: %w", err)
	}

	msg.Subject(fmt.Sprintf("New contact form submission from %s", name))
	msg.SetBodyString(mail.TypeTextPlain, buildTextBody(name, email, message))
	msg.AddAlternativeString(mail.TypeTextHTML, buildHTMLBody(name, email, message))
	return msg, nil
}

func buildTextBody(name, email, message string) string {
	var b strings.Builder
	b.WriteString("New Contact Form Submission\n\n")
	b.WriteString("Name: ")
	b.WriteString(name)
	b.WriteString("\nEmail: ")
	b.WriteString(email)
	b.WriteString("\nMessage:\n")
	b.WriteString(message)
	b.WriteString("\n\nSubmitted at: ")
	b.WriteString(time.Now().UTC().Format(time.RFC3339))
	b.WriteString("\n")
	return b.String()
}

// buildHTMLBody escapes all user-supplied text before interpolation so a
// submission cannot inject markup into the notification.
func buildHTMLBody(name, email, message string) string {
	escaped := html.EscapeString(message)
	escaped = strings.ReplaceAll(escaped, "\n", "<br>")

	var b strings.Builder
	b.WriteString("<h2>New Contact Form Submission</h2>")
	b.WriteString("<p><strong>Name:</strong> ")
	b.WriteString(html.EscapeString(name))
	b.WriteString("</p><p><strong>Email:</strong> ")
	b.WriteString(html.EscapeString(email))
	b.WriteString("</p><p><strong>Message:</strong></p><p>")
	b.WriteString(escaped)
	b.WriteString("</p><hr><p><small>Submitted at: ")
	b.WriteString(time.Now().UTC().Format(time.RFC3339))
	b.WriteString("</small></p>")
	return b.String()
}
