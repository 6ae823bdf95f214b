// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

// Package email composes and delivers the storefront's outgoing mail.
package email

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"codeberg.org/oliverandrich/go-storefront/internal/config"
	"codeberg.org/oliverandrich/go-storefront/internal/i18n"
	"github.com/wneessen/go-mail"
)

// Sender delivers a plain text message.
type Sender interface {
	Send(ctx context.Context, to, subject, body string) error
}

// Service composes verification mails and hands them to a Sender.
type Service struct {
	sender  Sender
	baseURL string
}

// NewService creates a new email service.
func NewService(sender Sender, baseURL string) *Service {
	return &Service{
		sender:  sender,
		baseURL: strings.TrimSuffix(baseURL, "/"),
	}
}

// VerificationURL returns the confirmation link for an address and code.
func (s *Service) VerificationURL(toEmail, code string) string {
	return fmt.Sprintf("%s/users/email-verification/%s/%s",
		s.baseURL, url.PathEscape(toEmail), url.PathEscape(code))
}

// SendVerification sends the confirmation link. With expired set the
// message tells the user that their previous link ran out.
func (s *Service) SendVerification(ctx context.Context, toEmail, code string, expired bool) error {
	subjectID, bodyID := "email_verification_subject", "email_verification_body"
	if expired {
		subjectID, bodyID = "email_verification_expired_subject", "email_verification_expired_body"
	}

	subject := i18n.T(ctx, subjectID)
	body := i18n.TData(ctx, bodyID, map[string]any{
		"VerifyURL": s.VerificationURL(toEmail, code),
		"Email":     toEmail,
	})

	return s.sender.Send(ctx, toEmail, subject, body)
}

// NewSender returns an SMTP sender, or a log sender when no SMTP host is
// configured.
func NewSender(cfg *config.SMTPConfig) (Sender, error) {
	if !cfg.Enabled() {
		return LogSender{}, nil
	}
	return NewSMTPSender(cfg)
}

// LogSender writes messages to the log instead of sending them.
type LogSender struct{}

func (LogSender) Send(ctx context.Context, to, subject, body string) error {
	slog.InfoContext(ctx, "email_logged", "to", to, "subject", subject, "body", body)
	return nil
}

// SMTPSender delivers mail through an SMTP server using go-mail.
type SMTPSender struct {
	cfg *config.SMTPConfig
}

// NewSMTPSender validates the SMTP configuration.
func NewSMTPSender(cfg *config.SMTPConfig) (*SMTPSender, error) {
	if cfg.Host == "" {
		return nil, fmt.Errorf("SMTP host is required")
	}
	if cfg.From == "" {
		return nil, fmt.Errorf("SMTP from address is required")
	}
	return &SMTPSender{cfg: cfg}, nil
}

func (s *SMTPSender) message(to, subject, body string) (*mail.Msg, error) {
	msg := mail.NewMsg()

	if s.cfg.FromName != "" {
		if err := msg.FromFormat(s.cfg.FromName, s.cfg.From); err != nil {
			return nil, fmt.Errorf("setting from address: %w", err)
		}
	} else {
		if err := msg.From(s.cfg.From); err != nil {
			return nil, fmt.Errorf("setting from address: %w", err)
		}
	}

	if err := msg.To(to); err != nil {
		return nil, fmt.Errorf("setting to address: %w", err)
	}

	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextPlain, body)
	return msg, nil
}

func (s *SMTPSender) options() []mail.Option {
	opts := []mail.Option{
		mail.WithPort(s.cfg.Port),
	}

	if s.cfg.TLS {
		opts = append(opts, mail.WithTLSPolicy(mail.TLSMandatory))
		// Implicit TLS on 465, STARTTLS elsewhere
		if s.cfg.Port == 465 {
			opts = append(opts, mail.WithSSL())
		}
	} else {
		opts = append(opts, mail.WithTLSPolicy(mail.NoTLS))
	}

	if s.cfg.Username != "" && s.cfg.Password != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(s.cfg.Username),
			mail.WithPassword(s.cfg.Password),
		)
	}
	return opts
}

// Send delivers one message.
func (s *SMTPSender) Send(ctx context.Context, to, subject, body string) error {
	msg, err := s.message(to, subject, body)
	if err != nil {
		return err
	}

	client, err := mail.NewClient(s.cfg.Host, s.options()...)
	if err != nil {
		return fmt.Errorf("creating mail client: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("sending email: %w", err)
	}

	slog.InfoContext(ctx, "email_sent", "to", to, "subject", subject)
	return nil
}
