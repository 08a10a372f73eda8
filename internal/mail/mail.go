// Package mail delivers contact-form submissions as outbound email.
//
// This is a boundary package: the application's only touchpoint is handing a
// fully-formed ContactMessage to SendContactMessage. SMTP failures propagate
// to the caller as a generic delivery failure — no retries, no inspection of
// transport errors.
package mail

import (
	"context"
	"fmt"
	"log/slog"
	"net/smtp"

	"github.com/jordan-wright/email"

	"github.com/ankit/blogd/internal/model"
)

// Sender is what handlers depend on; tests substitute a fake.
type Sender interface {
	SendContactMessage(ctx context.Context, msg model.ContactMessage) error
}

// SMTPConfig holds the delivery settings for the contact mailbox.
type SMTPConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string // envelope sender
	To       string // the blog owner's inbox
}

// SMTPSender delivers contact messages over authenticated SMTP.
type SMTPSender struct {
	cfg    SMTPConfig
	logger *slog.Logger
}

// NewSMTPSender creates an SMTPSender.
func NewSMTPSender(cfg SMTPConfig, logger *slog.Logger) *SMTPSender {
	return &SMTPSender{cfg: cfg, logger: logger}
}

var _ Sender = (*SMTPSender)(nil)

// SendContactMessage formats the submission into one plaintext email and
// sends it to the configured inbox.
func (s *SMTPSender) SendContactMessage(ctx context.Context, msg model.ContactMessage) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	e := email.NewEmail()
	e.From = s.cfg.From
	e.To = []string{s.cfg.To}
	e.Subject = "Blog Response"
	e.Text = []byte(formatContactBody(msg))

	addr := fmt.Sprintf("%s:%s", s.cfg.Host, s.cfg.Port)
	auth := smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	if err := e.Send(addr, auth); err != nil {
		s.logger.Error("contact mail delivery failed",
			slog.String("error", err.Error()),
		)
		return fmt.Errorf("mail: sending contact message: %w", err)
	}

	s.logger.Info("contact mail sent", slog.String("from", msg.Email))
	return nil
}

func formatContactBody(msg model.ContactMessage) string {
	return fmt.Sprintf(
		"name: %s\nemail: %s\nPhone Number: %s\nMessage: %s",
		msg.Name, msg.Email, msg.Phone, msg.Message,
	)
}
