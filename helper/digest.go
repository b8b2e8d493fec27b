package helper

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"restaurant_site/constants"
	"restaurant_site/model"
	"restaurant_site/utils"
)

type DayReader interface {
	ListByDate(ctx context.Context, date string) ([]model.Reservation, error)
}

type PlainSender interface {
	Enabled() bool
	SendPlain(to []string, subject, text string) error
}

// Digest mails the owner the day's reservations.
type Digest struct {
	Reservations DayReader
	Mailer       PlainSender
	OwnerEmail   string
	Location     *time.Location
	Now          func() time.Time
}

// Build renders the digest for date.
func (d Digest) Build(ctx context.Context, date string) (string, string, error) {
	rows, err := d.Reservations.ListByDate(ctx, date)
	if err != nil {
		return "", "", err
	}
	var b strings.Builder
	total, pending := 0, 0
	for _, slot := range constants.Slots {
		first := true
		for _, r := range rows {
			if r.Time != slot {
				continue
			}
			if first {
				fmt.Fprintf(&b, "\n%s\n", slot)
				first = false
			}
			fmt.Fprintf(&b, "  - %s, %d pers., %s (%s)\n", r.Name, r.People, r.Phone, r.Status)
			total += r.People
			if r.Status == constants.RESERVATION_PENDING {
				pending++
			}
		}
	}
	if len(rows) == 0 {
		b.WriteString("\nAucune réservation.\n")
	}
	subject := fmt.Sprintf("Réservations du %s : %d couverts", date, total)
	body := fmt.Sprintf("%d réservation(s), %d en attente de confirmation.\n%s", len(rows), pending, b.String())
	return subject, body, nil
}

// Run sends today's digest. It is the scheduler task.
func (d Digest) Run() {
	log.Println("[CRON] reservation digest triggered")
	if d.Mailer == nil || !d.Mailer.Enabled() || d.OwnerEmail == "" {
		log.Println("[CRON] digest skipped, mail not configured")
		return
	}
	now := time.Now
	if d.Now != nil {
		now = d.Now
	}
	loc := d.Location
	if loc == nil {
		loc = time.UTC
	}
	date := utils.DateOf(now().In(loc)).String()
	subject, body, err := d.Build(context.Background(), date)
	if err != nil {
		log.Printf("[CRON] digest for %s failed: %v", date, err)
		return
	}
	if err := d.Mailer.SendPlain([]string{d.OwnerEmail}, subject, body); err != nil {
		log.Printf("[CRON] digest mail failed: %v", err)
	}
}
