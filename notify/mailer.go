package notify

import (
	"context"
	"fmt"
	"net"
	"net/smtp"
	"strings"

	"github.com/jrsteele09/internship-portal/internal/config"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Message is a plain-text email
type Message struct {
	To      string
	Subject string
	Body    string
}

type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// SendFunc allows the use of ordinary functions as mailers
type SendFunc func(ctx context.Context, msg Message) error

func (f SendFunc) Send(ctx context.Context, msg Message) error {
	return f(ctx, msg)
}

// SMTPMailer delivers messages through an authenticated SMTP relay
type SMTPMailer struct {
	host     string
	port     string
	account  string
	password string
	sendMail func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

func NewSMTPMailer(host, port, account, password string) *SMTPMailer {
	return &SMTPMailer{
		host:     host,
		port:     port,
		account:  account,
		password: password,
		sendMail: smtp.SendMail,
	}
}

func (m *SMTPMailer) Send(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	auth := smtp.PlainAuth("", m.account, m.password, m.host)
	addr := net.JoinHostPort(m.host, m.port)
	if err := m.sendMail(addr, auth, m.account, []string{msg.To}, m.format(msg)); err != nil {
		return fmt.Errorf("smtp send to %s: %w", msg.To, err)
	}
	return nil
}

func (m *SMTPMailer) format(msg Message) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", m.account)
	fmt.Fprintf(&b, "To: %s\r\n", msg.To)
	fmt.Fprintf(&b, "Subject: %s\r\n", msg.Subject)
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=\"utf-8\"\r\n\r\n")
	b.WriteString(strings.ReplaceAll(msg.Body, "\n", "\r\n"))
	return []byte(b.String())
}

// LogMailer writes messages to the log instead of sending them; used in DEV and
// whenever no SMTP account is configured
type LogMailer struct {
	logger zerolog.Logger
}

func NewLogMailer(logger zerolog.Logger) *LogMailer {
	return &LogMailer{logger: logger}
}

func (m *LogMailer) Send(_ context.Context, msg Message) error {
	m.logger.Info().
		Str("to", msg.To).
		Str("subject", msg.Subject).
		Str("body", msg.Body).
		Msg("mail")
	return nil
}

// New picks the SMTP mailer when an account is configured
func New(cfg config.SmtpConfig) Mailer {
	if cfg.GetSmtpAccount() == "" {
		return NewLogMailer(log.Logger)
	}
	return NewSMTPMailer(cfg.GetSmtpHost(), cfg.GetSmtpPort(), cfg.GetSmtpAccount(), cfg.GetSmtpPassword())
}

// SendBestEffort never fails the caller: mail delivery problems are only logged
func SendBestEffort(ctx context.Context, mailer Mailer, msg Message) {
	if mailer == nil {
		return
	}
	if err := mailer.Send(ctx, msg); err != nil {
		log.Err(err).Str("to", msg.To).Str("subject", msg.Subject).Msg("Email sending failed")
	}
}
