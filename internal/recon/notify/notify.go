// Package notify delivers one-time codes to users.
package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/wneessen/go-mail"

	"github.com/aussiebroadwan/recon/pkg/slogx"
)

type SMTPConfig struct {
	Host     string `env:"HOST"`
	Port     int    `env:"PORT" envDefault:"587"`
	Username string `env:"USERNAME"`
	Password string `env:"PASSWORD"`
	From     string `env:"FROM"`
	FromName string `env:"FROM_NAME" envDefault:"recon"`
	TLS      bool   `env:"TLS" envDefault:"true"`
}

// SMTP sends OTP e-mails through an SMTP relay.
type SMTP struct {
	cfg SMTPConfig
}

func NewSMTP(cfg SMTPConfig) (*SMTP, error) {
	if cfg.Host == "" {
		return nil, fmt.Errorf("SMTP host is required")
	}
	if cfg.From == "" {
		return nil, fmt.Errorf("SMTP from address is required")
	}
	return &SMTP{cfg: cfg}, nil
}

// SendOTP e-mails code to the user.
func (s *SMTP) SendOTP(ctx context.Context, email, code string, expiresAt time.Time) error {
	msg, err := s.message(email, code, expiresAt)
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
	return nil
}

func (s *SMTP) message(to, code string, expiresAt time.Time) (*mail.Msg, error) {
	msg := mail.NewMsg()

	if s.cfg.FromName != "" {
		if err := msg.FromFormat(s.cfg.FromName, s.cfg.From); err != nil {
			return nil, fmt.Errorf("setting from address: %w", err)
		}
	} else if err := msg.From(s.cfg.From); err != nil {
		return nil, fmt.Errorf("setting from address: %w", err)
	}

	if err := msg.To(to); err != nil {
		return nil, fmt.Errorf("setting to address: %w", err)
	}

	msg.Subject("Your recon verification code")
	msg.SetBodyString(mail.TypeTextPlain, otpBody(code, expiresAt))
	return msg, nil
}

func (s *SMTP) options() []mail.Option {
	opts := []mail.Option{mail.WithPort(s.cfg.Port)}

	if s.cfg.TLS {
		opts = append(opts, mail.WithTLSPolicy(mail.TLSMandatory))
		// Implicit TLS on 465, STARTTLS elsewhere.
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

func otpBody(code string, expiresAt time.Time) string {
	return fmt.Sprintf(
		"Your verification code is %s.\n\nIt expires at %s. If you did not try to sign in, you can ignore this message.\n",
		code, expiresAt.UTC().Format(time.RFC1123),
	)
}

// Log writes codes to the request logger instead of sending them. It is
// used when no SMTP host is configured.
type Log struct{}

func (Log) SendOTP(ctx context.Context, email, code string, expiresAt time.Time) error {
	slogx.FromContext(ctx).Warn("smtp not configured, logging otp",
		"email", email,
		"otp", code,
		"expires_at", expiresAt,
	)
	return nil
}
