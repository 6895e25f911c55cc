package email

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/rs/zerolog/log"

	"fashionmag-backend/internal/config"
)

type EmailService interface {
	SendResetCode(ctx context.Context, data ResetCodeEmail) error
}

// NewEmailService returns the SMTP sender, or the log sender when no relay is
// configured.
func NewEmailService(cfg config.SMTPConfig) EmailService {
	if cfg.Host == "" {
		log.Warn().Msg("SMTP_HOST not set, emails are written to the log")
		return NewLogEmailService()
	}
	return NewSMTPEmailService(cfg)
}

// ========================================
// SMTP
// ========================================

type sendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

type smtpEmailService struct {
	addr string
	from string
	auth smtp.Auth
	send sendFunc
}

func NewSMTPEmailService(cfg config.SMTPConfig) EmailService {
	var auth smtp.Auth
	if cfg.Username != "" {
		auth = smtp.PlainAuth("", cfg.Username, cfg.Password, cfg.Host)
	}
	return &smtpEmailService{
		addr: cfg.Host + ":" + cfg.Port,
		from: cfg.From,
		auth: auth,
		send: smtp.SendMail,
	}
}

func (s *smtpEmailService) SendResetCode(ctx context.Context, data ResetCodeEmail) error {
	msg := ResetCodeMessage(s.from, data)

	if err := s.send(s.addr, s.auth, msg.From, msg.To, msg.Bytes()); err != nil {
		log.Error().
			Err(err).
			Str("to", data.Email).
			Str("smtp_addr", s.addr).
			Msg("Failed to send email")
		return fmt.Errorf("failed to send email: %w", err)
	}

	log.Info().Str("to", data.Email).Msg("Reset code email sent")
	return nil
}

// ========================================
// LOG (development)
// ========================================

type logEmailService struct{}

func NewLogEmailService() EmailService {
	return logEmailService{}
}

func (logEmailService) SendResetCode(_ context.Context, data ResetCodeEmail) error {
	log.Info().
		Str("to", data.Email).
		Str("code", data.Code).
		Str("expires_in", data.ExpiresIn).
		Msg("Reset code email (not sent, SMTP disabled)")
	return nil
}

// ========================================
// TEMPLATES
// ========================================

func ResetCodeMessage(from string, data ResetCodeEmail) Message {
	name := data.Name
	if name == "" {
		name = "there"
	}
	body := fmt.Sprintf(`Hi %s,

Use this code to reset your Fashion Magazine talent password:

    %s

The code expires in %s. If you did not ask for a reset, ignore this email.`, name, data.Code, data.ExpiresIn)

	return Message{
		From:    from,
		To:      []string{data.Email},
		Subject: "Your password reset code",
		Body:    body,
	}
}

// Bytes renders RFC 5322 headers and the body with CRLF line endings
func (m Message) Bytes() []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", m.From)
	fmt.Fprintf(&b, "To: %s\r\n", strings.Join(m.To, ", "))
	fmt.Fprintf(&b, "Subject: %s\r\n", m.Subject)
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=UTF-8\r\n\r\n")
	b.WriteString(strings.ReplaceAll(m.Body, "\n", "\r\n"))
	return []byte(b.String())
}
