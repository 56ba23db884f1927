// Package email sends holiday decision notices over SMTP.
package email

import (
	"context"
	"fmt"
	"html"

	"gopkg.in/gomail.v2"

	"github.com/deskhub/deskhub/internal/application/holiday/dto"
	"github.com/deskhub/deskhub/internal/domain/directory"
	"github.com/deskhub/deskhub/internal/shared/config"
)

type SMTPConfig struct {
	Host        string
	Port        int
	Username    string
	Password    string
	FromAddress string
	FromName    string

	// To is the back-office mailbox that receives every notice
	To string
}

// FromMailConfig maps the mail section of the configuration.
func FromMailConfig(c config.MailConfig) SMTPConfig {
	return SMTPConfig{
		Host:        c.SMTPHost,
		Port:        c.SMTPPort,
		Username:    c.SMTPUser,
		Password:    c.SMTPPassword,
		FromAddress: c.FromAddress,
		FromName:    c.FromName,
		To:          c.HRAddress,
	}
}

type SMTPDecisionNotifier struct {
	config SMTPConfig
	send   func(m ...*gomail.Message) error
}

func NewSMTPDecisionNotifier(config SMTPConfig) *SMTPDecisionNotifier {
	dialer := gomail.NewDialer(config.Host, config.Port, config.Username, config.Password)

	return &SMTPDecisionNotifier{
		config: config,
		send:   dialer.DialAndSend,
	}
}

// NotifyDecision mails the back office the outcome of a holiday request.
func (s *SMTPDecisionNotifier) NotifyDecision(ctx context.Context, owner *directory.Actor, h *dto.HolidayDTO) error {
	if s.config.To == "" {
		return fmt.Errorf("no recipient configured for decision notices")
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.sendEmail(s.config.To, s.compose(owner, h))
}

type notice struct {
	subject   string
	htmlBody  string
	plainBody string
}

func (s *SMTPDecisionNotifier) compose(owner *directory.Actor, h *dto.HolidayDTO) notice {
	subject := fmt.Sprintf("Holiday request #%d: %s", h.ID, h.Status)

	plainBody := fmt.Sprintf(`
Holiday request #%d for %s (%s)

From: %s
To: %s
Status: %s
Approved by chef: %t
Approved by HR: %t
	`, h.ID, owner.Name(), owner.Username(), h.From, h.To, h.Status, h.IsOkByChef, h.IsOkByHr)

	htmlBody := fmt.Sprintf(`
		<html>
		<body>
			<h2>Holiday request #%d</h2>
			<p>%s (%s)</p>
			<p>From <b>%s</b> to <b>%s</b></p>
			<p>Status: <b>%s</b></p>
		</body>
		</html>
	`, h.ID, html.EscapeString(owner.Name()), html.EscapeString(owner.Username()), h.From, h.To, h.Status)

	return notice{subject: subject, htmlBody: htmlBody, plainBody: plainBody}
}

func (s *SMTPDecisionNotifier) sendEmail(to string, n notice) error {
	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.config.FromAddress, s.config.FromName)
	m.SetHeader("To", to)
	m.SetHeader("Subject", n.subject)
	m.SetBody("text/plain", n.plainBody)
	m.AddAlternative("text/html", n.htmlBody)

	if err := s.send(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}
