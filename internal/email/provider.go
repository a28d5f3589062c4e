package email

// Message is a single outbound email.
type Message struct {
	To       []string
	Subject  string
	Body     string
	HTMLBody string
}

// Provider sends email. The account service only depends on this interface;
// delivery details (SMTP, mock) stay behind it.
type Provider interface {
	// Send delivers a prepared message.
	Send(msg *Message) error

	// SendVerification delivers the email-verification link to an address.
	SendVerification(to, link string) error

	// Close releases any underlying connection.
	Close() error
}
