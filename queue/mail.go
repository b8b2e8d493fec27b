package queue

import (
	"context"
	"fmt"
	"log"
	"strings"

	"restaurant_site/utils"
)

// Sender is the part of utils.Mailer the handler uses.
type Sender interface {
	Enabled() bool
	SendReservationConfirmation(to string, data utils.ReservationMailData) error
	SendPlain(to []string, subject, text string) error
}

// MailHandler tells the owner about new bookings and sends guests their
// confirmation once the owner confirms.
type MailHandler struct {
	Sender     Sender
	OwnerEmail string
	PublicURL  string
}

func (m MailHandler) Handle(_ context.Context, ev ReservationEvent) error {
	if m.Sender == nil || !m.Sender.Enabled() {
		log.Printf("[queue] mail disabled, skipping %s for %s", ev.Type, ev.Code)
		return nil
	}
	switch ev.Type {
	case EventReservationCreated:
		if m.OwnerEmail == "" {
			return nil
		}
		subject := fmt.Sprintf("Nouvelle réservation %s : %d pers. le %s à %s", ev.Code, ev.People, ev.Date, ev.Time)
		return m.Sender.SendPlain([]string{m.OwnerEmail}, subject, ownerText(ev))
	case EventReservationConfirmed:
		link := ""
		if m.PublicURL != "" {
			link = strings.TrimRight(m.PublicURL, "/") + "/reservation/" + ev.Code
		}
		return m.Sender.SendReservationConfirmation(ev.Email, utils.ReservationMailData{
			Code:       ev.Code,
			Name:       ev.Name,
			Date:       ev.Date,
			Time:       ev.Time,
			People:     ev.People,
			DetailLink: link,
		})
	}
	return fmt.Errorf("unknown event type %q", ev.Type)
}

func ownerText(ev ReservationEvent) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Référence : %s\n", ev.Code)
	fmt.Fprintf(&b, "Date : %s à %s\n", ev.Date, ev.Time)
	fmt.Fprintf(&b, "Couverts : %d\n", ev.People)
	fmt.Fprintf(&b, "Nom : %s\n", ev.Name)
	fmt.Fprintf(&b, "Email : %s\n", ev.Email)
	fmt.Fprintf(&b, "Téléphone : %s\n", ev.Phone)
	return b.String()
}
