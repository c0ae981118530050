// Package mailer delivers one-time codes to staff email addresses.
package mailer

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"time"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

// Sender delivers an OTP to a user.
type Sender interface {
	SendOTP(ctx context.Context, to, username, code string, validFor time.Duration) error
}

// OTPSubject is the subject line of OTP emails.
const OTPSubject = "Kode OTP Reset Password Anda"

var otpTemplate = template.Must(template.New("otp").Parse(`<div style="font-family: Arial, sans-serif; text-align: center; padding: 20px;">
  <h2>Reset Password Soto Lamongan</h2>
  <p>Halo {{.Username}}, gunakan kode di bawah ini untuk mereset password Anda.</p>
  <p style="font-size: 24px; font-weight: bold; letter-spacing: 5px; background-color: #f0f0f0; padding: 10px; border-radius: 5px;">
    {{.Code}}
  </p>
  <p>Kode ini hanya berlaku selama {{.Minutes}} menit. Jangan berikan kode ini kepada siapa pun.</p>
</div>`))

type otpView struct {
	Username string
	Code     string
	Minutes  int
}

// RenderOTP returns the HTML body of an OTP email.
func RenderOTP(username, code string, validFor time.Duration) (string, error) {
	var buf bytes.Buffer
	err := otpTemplate.Execute(&buf, otpView{
		Username: username,
		Code:     code,
		Minutes:  int(validFor / time.Minute),
	})
	if err != nil {
		return "", fmt.Errorf("failed to render otp email: %w", err)
	}
	return buf.String(), nil
}

// SMTPConfig holds outbound mail account settings.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

type dialer interface {
	DialAndSend(m ...*gomail.Message) error
}

// SMTPSender sends mail through an SMTP relay.
type SMTPSender struct {
	from   string
	dialer dialer
	logger *zap.Logger
}

// NewSMTPSender creates a sender for the given relay.
func NewSMTPSender(cfg SMTPConfig, logger *zap.Logger) *SMTPSender {
	return &SMTPSender{
		from:   cfg.From,
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		logger: logger,
	}
}

func (s *SMTPSender) SendOTP(ctx context.Context, to, username, code string, validFor time.Duration) error {
	body, err := RenderOTP(username, code, validFor)
	if err != nil {
		return err
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", OTPSubject)
	m.SetBody("text/html", body)

	// gomail has no context support; the dial keeps running if ctx ends first.
	done := make(chan error, 1)
	go func() {
		done <- s.dialer.DialAndSend(m)
	}()

	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("failed to send otp email to %s: %w", to, err)
		}
		s.logger.Info("otp email sent", zap.String("username", username), zap.String("to", to))
		return nil
	case <-ctx.Done():
		return fmt.Errorf("otp email to %s not confirmed: %w", to, ctx.Err())
	}
}

// LogSender writes codes to the log instead of sending mail. Development only.
type LogSender struct {
	logger *zap.Logger
}

// NewLogSender creates a LogSender.
func NewLogSender(logger *zap.Logger) *LogSender {
	return &LogSender{logger: logger}
}

func (s *LogSender) SendOTP(ctx context.Context, to, username, code string, validFor time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.logger.Warn("smtp not configured, otp written to log",
		zap.String("username", username),
		zap.String("to", to),
		zap.String("code", code),
		zap.Duration("valid_for", validFor))
	return nil
}
