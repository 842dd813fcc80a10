package worker

import (
	"bytes"
	"context"
	"fmt"
	"html/template"

	"github.com/rs/zerolog"
	mail "github.com/wneessen/go-mail"

	"clientbook/backend/internal/config"
	"clientbook/backend/internal/security"
)

// SMTPMailer renders the mail templates and delivers them over SMTP.
// Confirmation mails embed a freshly issued email token.
type SMTPMailer struct {
	cfg    config.MailConfig
	client *mail.Client
	tokens *security.TokenService
	log    zerolog.Logger
}

func NewSMTPMailer(cfg config.MailConfig, tokens *security.TokenService, log zerolog.Logger) (*SMTPMailer, error) {
	opts := []mail.Option{
		mail.WithPort(cfg.Port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(cfg.Username),
		mail.WithPassword(cfg.Password),
	}
	if cfg.Port == 465 {
		opts = append(opts, mail.WithSSL())
	}

	client, err := mail.NewClient(cfg.Host, opts...)
	if err != nil {
		return nil, fmt.Errorf("smtp client: %w", err)
	}

	return &SMTPMailer{
		cfg:    cfg,
		client: client,
		tokens: tokens,
		log:    log,
	}, nil
}

func (m *SMTPMailer) SendConfirmation(ctx context.Context, email, username string) error {
	token, err := m.tokens.Issue(security.KindEmail, email)
	if err != nil {
		return fmt.Errorf("issue email token: %w", err)
	}

	body, err := render(confirmationTemplate, map[string]string{
		"Username": username,
		"BaseURL":  m.cfg.BaseURL,
		"Token":    token,
	})
	if err != nil {
		return err
	}

	return m.send(ctx, email, "Confirm your email!", body)
}

func (m *SMTPMailer) SendPasswordReset(ctx context.Context, email, username, password string) error {
	body, err := render(passwordResetTemplate, map[string]string{
		"Username": username,
		"Password": password,
	})
	if err != nil {
		return err
	}

	return m.send(ctx, email, "Your new password", body)
}

func (m *SMTPMailer) SendBirthdayDigest(ctx context.Context, recipient, digest string) error {
	body, err := render(birthdayDigestTemplate, map[string]string{
		"Body": digest,
	})
	if err != nil {
		return err
	}

	return m.send(ctx, recipient, "Upcoming client birthdays", body)
}

func (m *SMTPMailer) send(ctx context.Context, to, subject, body string) error {
	msg := mail.NewMsg()
	if err := msg.FromFormat(m.cfg.FromName, m.cfg.From); err != nil {
		return fmt.Errorf("from address: %w", err)
	}
	if err := msg.To(to); err != nil {
		return fmt.Errorf("to address: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextHTML, body)

	if err := m.client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("send mail: %w", err)
	}

	m.log.Info().Str("to", to).Str("subject", subject).Msg("mail sent")
	return nil
}

func render(tmpl *template.Template, data map[string]string) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render template: %w", err)
	}
	return buf.String(), nil
}
