package mail

import (
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/mugangish/shelter-backend/internal/logger"
)

// Mailer отправляет исходящие письма. Интерфейс нужен сервисам модерации,
// чтобы в тестах подменять отправку и считать письма.
type Mailer interface {
	Send(to, subject, body string) error
}

// SMTPMailer отправляет письма через SMTP.
type SMTPMailer struct {
	dialer *gomail.Dialer
	from   string
}

// NewSMTPMailer создаёт почтовый клиент.
func NewSMTPMailer(host string, port int, user, pass, from string) *SMTPMailer {
	return &SMTPMailer{
		dialer: gomail.NewDialer(host, port, user, pass),
		from:   from,
	}
}

// Send отправляет одно письмо. Тело — plain text на иврите, поэтому
// выставляем charset явно.
func (m *SMTPMailer) Send(to, subject, body string) error {
	msg := gomail.NewMessage(gomail.SetCharset("UTF-8"))
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("mail: не удалось отправить письмо на %s: %w", to, err)
	}

	if logger.Log != nil {
		logger.Log.WithField("to", to).Debug("mail: письмо отправлено")
	}

	return nil
}
