// Package mail submits notification emails over SMTP.
package mail

import (
	"context"
	"errors"
	"fmt"
	"html"
	"strings"
	"time"

	gomail "github.com/wneessen/go-mail"

	"saylani-fulfillment/internal/log"
)

var ErrInvalidRecipient = errors.New("invalid recipient address")

type Email struct {
	To      string
	Subject string
	Text    string
}

// Sender delivers a single email.
type Sender interface {
	Send(ctx context.Context, e Email) error
}

// ValidAddress is the check used before mailing an end user: the address
// must at least contain an "@".
func ValidAddress(addr string) bool {
	addr = strings.TrimSpace(addr)
	at := strings.Index(addr, "@")
	return at > 0 && at < len(addr)-1
}

// HTMLBody renders plain text as HTML, one line per <br>.
func HTMLBody(text string) string {
	return strings.ReplaceAll(html.EscapeString(text), "\n", "<br>")
}

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	FromName string
	Timeout  time.Duration
}

// SMTPSender submits mail through an authenticated STARTTLS relay.
type SMTPSender struct {
	cfg SMTPConfig
}

func NewSMTPSender(cfg SMTPConfig) *SMTPSender {
	if cfg.Port == 0 {
		cfg.Port = 587
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}
	return &SMTPSender{cfg: cfg}
}

func (s *SMTPSender) Send(ctx context.Context, e Email) error {
	msg, err := s.buildMessage(e)
	if err != nil {
		return err
	}
	client, err := gomail.NewClient(s.cfg.Host,
		gomail.WithPort(s.cfg.Port),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(s.cfg.Username),
		gomail.WithPassword(s.cfg.Password),
		gomail.WithTLSPortPolicy(gomail.TLSMandatory),
		gomail.WithTimeout(s.cfg.Timeout),
	)
	if err != nil {
		return fmt.Errorf("create smtp client: %w", err)
	}
	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("send mail to %s: %w", e.To, err)
	}
	logger := log.WithComponent("mail")
	logger.Info().Str("to", e.To).Str("subject", e.Subject).Msg("email sent")
	return nil
}

func (s *SMTPSender) buildMessage(e Email) (*gomail.Msg, error) {
	if !ValidAddress(e.To) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidRecipient, e.To)
	}
	msg := gomail.NewMsg()
	if err := msg.FromFormat(s.cfg.FromName, s.cfg.Username); err != nil {
		return nil, fmt.Errorf("set sender: %w", err)
	}
	if err := msg.To(strings.TrimSpace(e.To)); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRecipient, err)
	}
	msg.Subject(e.Subject)
	msg.SetBodyString(gomail.TypeTextPlain, e.Text)
	msg.AddAlternativeString(gomail.TypeTextHTML, HTMLBody(e.Text))
	return msg, nil
}

// LogSender stands in when SMTP is not configured: it logs and drops.
type LogSender struct{}

func (LogSender) Send(_ context.Context, e Email) error {
	logger := log.WithComponent("mail")
	logger.Warn().
		Str("to", e.To).
		Str("subject", e.Subject).
		Msg("smtp not configured; email dropped")
	return nil
}
