package mail

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/imhamzamoeen/umerfilms-sub001/internal/config"
	"github.com/imhamzamoeen/umerfilms-sub001/internal/observability"
	"github.com/imhamzamoeen/umerfilms-sub001/internal/types"
	"gopkg.in/gomail.v2"
)

// Sender delivers prepared messages. *gomail.Dialer satisfies it.
type Sender interface {
	DialAndSend(m ...*gomail.Message) error
}

// logSender stands in for SMTP when no host is configured.
type logSender struct{}

func (logSender) DialAndSend(messages ...*gomail.Message) error {
	for _, m := range messages {
		slog.Info("SMTP not configured, contact message not sent",
			slog.String("to", strings.Join(m.GetHeader("To"), ",")),
			slog.String("subject", strings.Join(m.GetHeader("Subject"), "")),
		)
	}
	return nil
}

// Contact forwards contact form submissions to the site owner.
type Contact struct {
	sender Sender
	from   string
	to     string
}

func NewContact(cfg config.SMTP) *Contact {
	var sender Sender = logSender{}
	if cfg.Host != "" {
		sender = gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password)
	}
	return newContact(sender, cfg)
}

func newContact(sender Sender, cfg config.SMTP) *Contact {
	from := cfg.From
	if from == "" {
		from = cfg.User
	}
	return &Contact{
		sender: sender,
		from:   from,
		to:     cfg.To,
	}
}

// Deliver sends one contact form submission. The visitor's address goes into Reply-To
// so the owner can answer directly.
func (c *Contact) Deliver(ctx context.Context, req types.ContactRequest) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	subject := req.Subject
	if subject == "" {
		subject = "New enquiry"
	}

	m := gomail.NewMessage()
	m.SetHeader("From", c.from)
	m.SetHeader("To", c.to)
	m.SetAddressHeader("Reply-To", req.Email, req.Name)
	m.SetHeader("Subject", fmt.Sprintf("[Website] %s", subject))
	m.SetBody("text/plain", fmt.Sprintf("From: %s <%s>\n\n%s\n", req.Name, req.Email, req.Message))

	if err := c.sender.DialAndSend(m); err != nil {
		observability.ContactMessages.WithLabelValues("failed").Inc()
		return fmt.Errorf("send contact mail: %w", err)
	}

	observability.ContactMessages.WithLabelValues("sent").Inc()
	slog.Info("Contact message delivered", slog.String("reply_to", req.Email))
	return nil
}
