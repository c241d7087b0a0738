package notification

import (
	"bytes"
	"context"
	"fmt"

	"github.com/wneessen/go-mail"
)

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// Mailer sends notifications over SMTP.
type Mailer struct {
	client *mail.Client
	from   string
}

func NewMailer(cfg SMTPConfig) (*Mailer, error) {
	client, err := mail.NewClient(
		cfg.Host,
		mail.WithPort(cfg.Port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(cfg.Username),
		mail.WithPassword(cfg.Password),
	)
	if err != nil {
		return nil, fmt.Errorf("init smtp client: %w", err)
	}
	return &Mailer{client: client, from: cfg.From}, nil
}

func (m *Mailer) Send(ctx context.Context, email Email) error {
	msg := mail.NewMsg()
	if err := msg.FromFormat("KayExpress", m.from); err != nil {
		return fmt.Errorf("set from address: %w", err)
	}
	if err := msg.To(email.To); err != nil {
		return fmt.Errorf("set to address: %w", err)
	}
	msg.Subject(email.Subject)
	msg.SetBodyString(mail.TypeTextHTML, email.HTMLBody)

	for _, a := range email.Attachments {
		if err := msg.AttachReader(a.Filename, bytes.NewReader(a.Content)); err != nil {
			return fmt.Errorf("attach %s: %w", a.Filename, err)
		}
	}

	return m.client.DialAndSendWithContext(ctx, msg)
}
