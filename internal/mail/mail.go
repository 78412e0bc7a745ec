// AngelaMos | 2026
// mail.go

package mail

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/resend/resend-go/v2"

	"github.com/angelamos/sook/internal/config"
)

// Message is a single outbound email.
type Message struct {
	To      string
	ToName  string
	Subject string
	HTML    string
	Text    string
}

// Mailer delivers transactional email. Delivery failures are reported,
// never retried here; callers decide whether a failure matters.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// New picks the Resend mailer when an API key is configured and falls
// back to logging otherwise, so local setups work without credentials.
func New(cfg config.MailConfig, logger *slog.Logger) Mailer {
	if cfg.APIKey == "" {
		logger.Warn("resend api key not set, emails will only be logged")
		return &LogMailer{logger: logger}
	}
	return &ResendMailer{
		client: resend.NewClient(cfg.APIKey),
		sender: cfg.Sender,
	}
}

// ResendMailer sends email through the Resend API.
type ResendMailer struct {
	client *resend.Client
	sender string
}

func (m *ResendMailer) Send(ctx context.Context, msg Message) error {
	params := &resend.SendEmailRequest{
		From:    m.sender,
		To:      []string{msg.To},
		Subject: msg.Subject,
		Html:    msg.HTML,
		Text:    msg.Text,
	}

	if _, err := m.client.Emails.SendWithContext(ctx, params); err != nil {
		return fmt.Errorf("send email to %s: %w", msg.To, err)
	}

	return nil
}

// LogMailer writes the message to the log instead of sending it.
type LogMailer struct {
	logger *slog.Logger
}

func (m *LogMailer) Send(_ context.Context, msg Message) error {
	m.logger.Info("email suppressed",
		"to", msg.To,
		"subject", msg.Subject,
	)
	return nil
}

// WelcomeMessage builds the signup greeting sent to new accounts.
func WelcomeMessage(email, username string) Message {
	return Message{
		To:      email,
		ToName:  username,
		Subject: "Bienvenue sur SOOK !",
		HTML: fmt.Sprintf(
			"<h1>Bienvenue %s !</h1><p>Votre compte SOOK est pr&ecirc;t. "+
				"Publiez votre premi&egrave;re annonce d&egrave;s maintenant.</p>",
			username,
		),
		Text: fmt.Sprintf(
			"Bienvenue %s ! Votre compte SOOK est prêt.",
			username,
		),
	}
}
