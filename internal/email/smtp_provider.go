package email

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

// SMTPConfig holds SMTP server settings.
type SMTPConfig struct {
	Host      string
	Port      int
	Username  string
	Password  string
	FromEmail string
	FromName  string
}

// SMTPProvider delivers mail through an SMTP server using gomail.
type SMTPProvider struct {
	config SMTPConfig
	dialer *gomail.Dialer
}

func NewSMTPProvider(config SMTPConfig) (*SMTPProvider, error) {
	if config.Host == "" || config.FromEmail == "" {
		return nil, fmt.Errorf("invalid email config: host and from_email are required")
	}

	return &SMTPProvider{
		config: config,
		dialer: gomail.NewDialer(config.Host, config.Port, config.Username, config.Password),
	}, nil
}

func (p *SMTPProvider) Send(msg *Message) error {
	if len(msg.To) == 0 {
		return fmt.Errorf("no recipients specified")
	}

	m := gomail.NewMessage()
	m.SetAddressHeader("From", p.config.FromEmail, p.config.FromName)
	m.SetHeader("To", msg.To...)
	m.SetHeader("Subject", msg.Subject)
	m.SetBody("text/plain", msg.Body)
	if msg.HTMLBody != "" {
		m.AddAlternative("text/html", msg.HTMLBody)
	}

	return p.dialer.DialAndSend(m)
}

func (p *SMTPProvider) SendVerification(to, link string) error {
	body := fmt.Sprintf(
		"Welcome to MarketSafe!\n\n"+
			"Confirm your email address by opening the link below. "+
			"The link expires in 5 minutes.\n\n%s\n\n"+
			"If you did not sign up, you can ignore this message.",
		link,
	)
	htmlBody := fmt.Sprintf(
		`<p>Welcome to MarketSafe!</p>
<p>Confirm your email address by clicking the link below. The link expires in 5 minutes.</p>
<p><a href="%s">Verify my email</a></p>
<p>If you did not sign up, you can ignore this message.</p>`,
		link,
	)

	return p.Send(&Message{
		To:       []string{to},
		Subject:  "Verify your MarketSafe email",
		Body:     body,
		HTMLBody: htmlBody,
	})
}

func (p *SMTPProvider) Close() error {
	// gomail dials per send; nothing to close.
	return nil
}
