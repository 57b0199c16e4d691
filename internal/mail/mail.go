package mail

import (
	"context"
	"fmt"
	"log/slog"

	"catalog_service/internal/models"

	"github.com/google/uuid"
	"gopkg.in/gomail.v2"
)

type Publisher interface {
	SendMessage(ctx context.Context, msg models.Message) error
}

// SendForgotPasswordMail hands the password-change mail off to the broker.
// The token is an opaque code the mail collaborator includes in the message;
// nothing is stored on this side.
func SendForgotPasswordMail(
	ctx context.Context,
	log *slog.Logger,
	pub Publisher,
	email, name string,
) error {
	token := uuid.NewString()

	msg := models.Message{
		Email:   email,
		Subject: "Alteração de Senha",
		Body:    fmt.Sprintf("Olá %s, use o código %s para alterar sua senha.", name, token),
	}

	if err := pub.SendMessage(ctx, msg); err != nil {
		log.Error("failed to publish password mail", slog.Any("err", err))

		return err
	}

	return nil
}

// Mailer delivers queued messages over SMTP.
type Mailer struct {
	Host     string
	Port     int
	Username string
	Password string
}

func (m *Mailer) Send(to, subject, body string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("To", to)
	msg.SetHeader("From", m.Username)
	msg.SetHeader("Subject", subject)

	msg.SetBody("text/plain", body)

	dialer := gomail.NewDialer(m.Host, m.Port, m.Username, m.Password)
	return dialer.DialAndSend(msg)
}
