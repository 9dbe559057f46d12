package mailingservices

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/mailgun/mailgun-go/v4"

	"github.com/garagego/api/config"
)

// Mailer sends transactional email
type Mailer interface {
	SendResetPassword(recipient, resetLink string) error
}

type Mailgun struct {
	Client *mailgun.MailgunImpl
	From   string
}

func (m *Mailgun) Init(conf *config.Config) {
	m.Client = mailgun.NewMailgun(conf.MgDomain, conf.MailgunApiKey)
	m.From = conf.MgEmailFrom
	log.Println("Mailgun client initialized")
}

func (m *Mailgun) SendResetPassword(recipient, resetLink string) error {
	subject := "Reset your Garage-Go password"
	body := fmt.Sprintf("Hello,\n\nFollow this link to reset your password:\n%s\n\nThe link expires in 20 minutes. If you didn't ask for a reset you can ignore this email.", resetLink)

	message := m.Client.NewMessage(m.From, subject, body, recipient)
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()

	_, _, err := m.Client.Send(ctx, message)
	return err
}
