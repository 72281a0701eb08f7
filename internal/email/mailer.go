package email

import (
	"context"
	"errors"
	"fmt"

	"jobboard_backend/internal/logger"

	"gopkg.in/gomail.v2"
)

var ErrNoRecipients = errors.New("no recipients specified")

// Mailer отправляет письма пользователям
type Mailer interface {
	Send(ctx context.Context, email *Email) error
	SendApplicationStatus(ctx context.Context, to string, data ApplicationStatusData) error
}

// Dialer - часть gomail.Dialer, нужная мейлеру (подменяется в тестах)
type Dialer interface {
	DialAndSend(m ...*gomail.Message) error
}

type GomailMailer struct {
	config    SMTPConfig
	dialer    Dialer
	templates *TemplateManager
}

func NewGomailMailer(config SMTPConfig) (*GomailMailer, error) {
	dialer := gomail.NewDialer(config.Host, config.Port, config.Username, config.Password)
	return NewGomailMailerWithDialer(config, dialer)
}

func NewGomailMailerWithDialer(config SMTPConfig, dialer Dialer) (*GomailMailer, error) {
	if config.FromEmail == "" {
		return nil, errors.New("email: from address is required")
	}
	tm, err := NewTemplateManager()
	if err != nil {
		return nil, err
	}
	return &GomailMailer{config: config, dialer: dialer, templates: tm}, nil
}

func (m *GomailMailer) Send(ctx context.Context, email *Email) error {
	if len(email.To) == 0 {
		return ErrNoRecipients
	}

	msg := gomail.NewMessage()
	msg.SetAddressHeader("From", m.config.FromEmail, m.config.FromName)
	msg.SetHeader("To", email.To...)
	msg.SetHeader("Subject", email.Subject)
	if email.TextBody != "" {
		msg.SetBody("text/plain", email.TextBody)
		if email.HTMLBody != "" {
			msg.AddAlternative("text/html", email.HTMLBody)
		}
	} else {
		msg.SetBody("text/html", email.HTMLBody)
	}

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("send email: %w", err)
	}
	logger.CtxDebug(ctx, "email sent", "to", email.To, "subject", email.Subject)
	return nil
}

func (m *GomailMailer) SendApplicationStatus(ctx context.Context, to string, data ApplicationStatusData) error {
	templateName := TemplateApplicationRejected
	subject := "Your application has been reviewed"
	if data.Status == "accepted" {
		templateName = TemplateApplicationAccepted
		subject = "Your application has been accepted"
	}
	if data.Link != "" && m.config.PublicURL != "" {
		data.Link = m.config.PublicURL + data.Link
	}

	body, err := m.templates.Render(templateName, data)
	if err != nil {
		return err
	}
	return m.Send(ctx, &Email{To: []string{to}, Subject: subject, HTMLBody: body})
}

// NoopMailer используется, когда почта выключена в конфиге
type NoopMailer struct{}

func (NoopMailer) Send(ctx context.Context, email *Email) error {
	logger.CtxDebug(ctx, "email disabled, message dropped", "to", email.To, "subject", email.Subject)
	return nil
}

func (NoopMailer) SendApplicationStatus(ctx context.Context, to string, data ApplicationStatusData) error {
	logger.CtxDebug(ctx, "email disabled, status mail dropped", "to", to, "status", data.Status)
	return nil
}
