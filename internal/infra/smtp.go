package infra

import (
	"context"
	"fmt"
	"net/smtp"

	"github.com/jordan-wright/email"
)

// Mailer sends transactional mail over plain SMTP.
type Mailer struct {
	host     string
	from     string
	password string
	addr     string
}

func NewMailer(host string, port int, user, password string) *Mailer {
	return &Mailer{
		host:     host,
		from:     user,
		password: password,
		addr:     fmt.Sprintf("%s:%d", host, port),
	}
}

// SendResetCode satisfies service.CodeNotifier.
func (m *Mailer) SendResetCode(_ context.Context, to, code string) error {
	e := email.NewEmail()
	e.From = m.from
	e.To = []string{to}
	e.Subject = "Código de recuperación - BAR VEREDALES"
	e.Text = []byte(fmt.Sprintf(
		"Tu código de recuperación es: %s\n\nEl código expira en 10 minutos.", code))

	auth := smtp.PlainAuth("", m.from, m.password, m.host)
	return e.Send(m.addr, auth)
}

// SendReceipt mails a payment receipt with the PDF attached.
func (m *Mailer) SendReceipt(to, subject, body, pdfPath string) error {
	e := email.NewEmail()
	e.From = m.from
	e.To = []string{to}
	e.Subject = subject
	e.Text = []byte(body)

	if pdfPath != "" {
		if _, err := e.AttachFile(pdfPath); err != nil {
			return fmt.Errorf("mailer: attach PDF: %w", err)
		}
	}

	auth := smtp.PlainAuth("", m.from, m.password, m.host)
	return e.Send(m.addr, auth)
}
