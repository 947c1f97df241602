package mailer

import (
	"fmt"
	"net/smtp"

	"github.com/rs/zerolog"

	"storefront/internal/config"
)

// Mailer sends transactional mail.
type Mailer interface {
	// SendPasswordReset mails the one-time reset token to the user.
	SendPasswordReset(to, token string) error
}

// smtpMailer implements Mailer over plain SMTP.
type smtpMailer struct {
	cfg    config.SMTPConfig
	logger zerolog.Logger
}

// NewSMTPMailer creates a new SMTP-backed mailer.
func NewSMTPMailer(cfg config.SMTPConfig, logger zerolog.Logger) Mailer {
	return &smtpMailer{
		cfg:    cfg,
		logger: logger.With().Str("component", "mailer").Logger(),
	}
}

func (m *smtpMailer) SendPasswordReset(to, token string) error {
	subject := "Password reset"
	body := fmt.Sprintf(
		"A password reset was requested for your account.\r\n\r\n"+
			"Reset token: %s\r\n\r\n"+
			"The token expires shortly. If you did not request this, ignore this mail.",
		token,
	)

	msg := "From: " + m.cfg.From + "\r\n" +
		"To: " + to + "\r\n" +
		"Subject: " + subject + "\r\n" +
		"MIME-Version: 1.0\r\nContent-Type: text/plain; charset=utf-8\r\n\r\n" +
		body

	addr := fmt.Sprintf("%s:%d", m.cfg.Host, m.cfg.Port)

	// local relays (MailHog and friends) run without auth
	var auth smtp.Auth
	if m.cfg.Username != "" {
		auth = smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
	}

	if err := smtp.SendMail(addr, auth, m.cfg.From, []string{to}, []byte(msg)); err != nil {
		m.logger.Error().Err(err).Str("to", to).Msg("failed to send password reset mail")
		return fmt.Errorf("failed to send password reset mail: %w", err)
	}
	return nil
}
