package utils

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"net/smtp"
	"strconv"

	"github.com/jordan-wright/email"
	"gopkg.in/gomail.v2"
)

// ReservationMailData is rendered into the guest confirmation email.
type ReservationMailData struct {
	Code       string
	Name       string
	Date       string
	Time       string
	People     int
	DetailLink string
}

var confirmationTmpl = template.Must(template.New("confirmation").Parse(`<!doctype html>
<html><body style="font-family:sans-serif">
<h2>Réservation confirmée</h2>
<p>Bonjour {{.Name}},</p>
<p>Votre table pour <strong>{{.People}}</strong> personne(s) est confirmée le <strong>{{.Date}}</strong> à <strong>{{.Time}}</strong>.</p>
<p>Référence : <code>{{.Code}}</code></p>
<p><img src="cid:reservation_qr.png" alt="{{.Code}}" width="180" height="180"></p>
{{if .DetailLink}}<p><a href="{{.DetailLink}}">Voir ma réservation</a></p>{{end}}
<p>À bientôt !</p>
</body></html>`))

type Mailer struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// Enabled is false when no SMTP host is configured; callers skip sending.
func (m Mailer) Enabled() bool {
	return m.Host != ""
}

// SendReservationConfirmation sends the HTML confirmation with the reservation
// code embedded as a QR image.
func (m Mailer) SendReservationConfirmation(to string, data ReservationMailData) error {
	var body bytes.Buffer
	if err := confirmationTmpl.Execute(&body, data); err != nil {
		return fmt.Errorf("render confirmation: %w", err)
	}
	png, err := ReservationQR(data.Code, 256)
	if err != nil {
		return fmt.Errorf("qr code: %w", err)
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.From)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", "Confirmation de réservation "+data.Code)
	msg.SetBody("text/html", body.String())
	msg.Embed("reservation_qr.png", gomail.SetCopyFunc(func(w io.Writer) error {
		_, err := w.Write(png)
		return err
	}))

	d := gomail.NewDialer(m.Host, m.Port, m.Username, m.Password)
	return d.DialAndSend(msg)
}

// SendPlain sends a plain-text message, used for owner notifications and the
// daily digest.
func (m Mailer) SendPlain(to []string, subject, text string) error {
	e := email.NewEmail()
	e.From = m.From
	e.To = to
	e.Subject = subject
	e.Text = []byte(text)
	addr := m.Host + ":" + strconv.Itoa(m.Port)
	var auth smtp.Auth
	if m.Username != "" {
		auth = smtp.PlainAuth("", m.Username, m.Password, m.Host)
	}
	return e.Send(addr, auth)
}
