package service

import (
	"context"
	"fmt"
	"log"

	"github.com/wneessen/go-mail"

	"microblog/internal/config"
	"microblog/internal/model"
)

// Mailer sends outbound notification email over SMTP. Sends happen on the
// mail workers, never on a request goroutine, so a slow SMTP server only
// delays email, not responses.
type Mailer struct {
	client *mail.Client
	sender string
}

// NewMailer builds an SMTP mailer from configuration. Returns (nil, nil)
// when no SMTP host is configured, which disables email without disabling
// the rest of the pipeline.
func NewMailer(cfg *config.Config) (*Mailer, error) {
	if cfg.SMTPHost == "" {
		log.Println("No SMTP host configured, follower notification email disabled")
		return nil, nil
	}

	opts := []mail.Option{
		mail.WithPort(cfg.SMTPPort),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
	}
	if cfg.SMTPUsername != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(cfg.SMTPUsername),
			mail.WithPassword(cfg.SMTPPassword),
		)
	}

	client, err := mail.NewClient(cfg.SMTPHost, opts...)
	if err != nil {
		return nil, fmt.Errorf("create smtp client: %w", err)
	}

	return &Mailer{client: client, sender: cfg.MailSender}, nil
}

// SendFollowerNotification emails the followed user about their new
// follower.
func (m *Mailer) SendFollowerNotification(ctx context.Context, followed, follower *model.User) error {
	msg := mail.NewMsg()
	if err := msg.From(m.sender); err != nil {
		return fmt.Errorf("set sender: %w", err)
	}
	if err := msg.To(followed.Email); err != nil {
		return fmt.Errorf("set recipient: %w", err)
	}

	msg.Subject(fmt.Sprintf("[microblog] %s is now following you!", follower.Nickname))
	msg.SetBodyString(mail.TypeTextPlain, fmt.Sprintf(
		"Dear %s,\n\n%s is now following you.\n\nVisit their profile to follow back.\n",
		followed.Nickname, follower.Nickname))

	if err := m.client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("send mail: %w", err)
	}

	return nil
}
