// Package email envoie la facture PDF au client via SMTP (gomail).
package email

import (
	"fmt"
	"io"

	"gopkg.in/gomail.v2"

	"github.com/htconfort/myconfort-facturation/internal/application/export"
	"github.com/htconfort/myconfort-facturation/pkg/config"
	"github.com/htconfort/myconfort-facturation/pkg/logger"
)

// Mailer implémente export.Mailer au-dessus d'un dialer SMTP.
type Mailer struct {
	dialer *gomail.Dialer
	from   string
	log    *logger.Logger
}

var _ export.Mailer = (*Mailer)(nil)

// NewMailer construit l'expéditeur depuis la configuration SMTP.
func NewMailer(cfg config.SMTPConfig, log *logger.Logger) *Mailer {
	return &Mailer{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password),
		from:   cfg.From,
		log:    log,
	}
}

// SendInvoice envoie un e-mail HTML avec la facture en pièce jointe.
// L'issue est un succès ou un échec avec message, pas un code structuré.
func (m *Mailer) SendInvoice(to, subject, body string, pdf []byte, filename string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", body)
	msg.Attach(filename, gomail.SetCopyFunc(func(w io.Writer) error {
		_, err := w.Write(pdf)
		return err
	}))

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("envoi SMTP à %s: %w", to, err)
	}
	m.log.Info().Str("to", to).Str("attachment", filename).Msg("e-mail envoyé")
	return nil
}
