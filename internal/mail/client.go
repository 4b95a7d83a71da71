// Package mail provides an SMTP client for sending account lifecycle mail
// from a preset address.
package mail

import (
	"context"
	"fmt"
	"net/url"

	"github.com/dajohi/goemail"
)

// Client sends verification and password-reset links. A Client constructed
// without credentials is disabled: sends succeed silently so that local
// environments work without an SMTP account.
//
// Client implements the service.Mailer interface.
type Client struct {
	smtp        *goemail.SMTP
	mailAddress string
	disabled    bool
}

type Config struct {
	Host string // host:port of the SMTP server
	User string // sending address, also the SMTP username
	Pass string
}

func NewClient(cfg Config) (*Client, error) {
	if cfg.User == "" || cfg.Pass == "" {
		return &Client{disabled: true}, nil
	}
	u := url.URL{
		Scheme: "smtps",
		User:   url.UserPassword(cfg.User, cfg.Pass),
		Host:   cfg.Host,
	}
	smtp, err := goemail.NewSMTP(u.String(), nil)
	if err != nil {
		return nil, err
	}
	return &Client{
		smtp:        smtp,
		mailAddress: cfg.User,
	}, nil
}

// IsEnabled returns whether the mail server is enabled.
func (c *Client) IsEnabled() bool {
	return !c.disabled
}

func (c *Client) SendVerificationLink(ctx context.Context, to, link string) error {
	body := fmt.Sprintf(`<div>
  <h1>Account Verification Link</h1>
  <p>This verification link is valid for 1 hour.</p>
  <p>Please click the link below to verify your account:</p>
  <a href="%s">Verify Account</a>
</div>`, link)
	return c.send("Account Verification Link", body, to)
}

func (c *Client) SendPasswordResetLink(ctx context.Context, to, link string) error {
	body := fmt.Sprintf(`<div>
  <h1>Password Reset Request</h1>
  <p>This reset link is valid for 1 hour.</p>
  <p>Please click the link below to reset your password:</p>
  <a href="%s">Reset Password</a>
  <p>If you did not request a password reset, please ignore this email.</p>
</div>`, link)
	return c.send("Password Reset Request", body, to)
}

func (c *Client) send(subject, body, to string) error {
	if c.disabled {
		return nil
	}
	msg := goemail.NewHTMLMessage(c.mailAddress, subject, body)
	msg.AddTo(to)
	return c.smtp.Send(msg)
}
