package queue

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"restaurant_site/constants"
	"restaurant_site/model"
	"restaurant_site/utils"
)

type fakeSender struct {
	enabled   bool
	plain     []string
	confirmed []utils.ReservationMailData
	to        []string
}

func (f *fakeSender) Enabled() bool { return f.enabled }

func (f *fakeSender) SendReservationConfirmation(to string, data utils.ReservationMailData) error {
	f.to = append(f.to, to)
	f.confirmed = append(f.confirmed, data)
	return nil
}

func (f *fakeSender) SendPlain(to []string, subject, text string) error {
	f.to = append(f.to, to...)
	f.plain = append(f.plain, subject+"\n"+text)
	return nil
}

func sampleReservation() model.Reservation {
	d, _ := utils.ParseDate("2024-07-01")
	r := model.Reservation{Code: "R-ABCD1234", Date: d, Time: "19:00", Name: "Camille", Email: "camille@example.com", Phone: "+33612345678", People: 4, Status: constants.RESERVATION_PENDING}
	r.ID = 12
	return r
}

func TestConsumerHandleDecodes(t *testing.T) {
	var got ReservationEvent
	c := NewConsumer("", func(_ context.Context, ev ReservationEvent) error {
		got = ev
		return nil
	})
	body, _ := json.Marshal(NewReservationEvent(EventReservationCreated, sampleReservation()))
	if err := c.Handle(context.Background(), body); err != nil {
		t.Fatal(err)
	}
	if got.Code != "R-ABCD1234" || got.Date != "2024-07-01" || got.People != 4 || got.ReservationID != 12 {
		t.Errorf("decoded %+v", got)
	}

	if err := c.Handle(context.Background(), []byte("{")); err == nil {
		t.Error("accepted broken JSON")
	}
	if err := c.Handle(context.Background(), []byte(`{"type":"reservation.created"}`)); err == nil {
		t.Error("accepted event without code")
	}
}

func TestMailHandler(t *testing.T) {
	ctx := context.Background()
	sender := &fakeSender{enabled: true}
	h := MailHandler{Sender: sender, OwnerEmail: "owner@example.com", PublicURL: "https://resto.test/"}
	r := sampleReservation()

	if err := h.Handle(ctx, NewReservationEvent(EventReservationCreated, r)); err != nil {
		t.Fatal(err)
	}
	if len(sender.plain) != 1 || !strings.Contains(sender.plain[0], "Camille") || sender.to[0] != "owner@example.com" {
		t.Errorf("owner mail = %v to %v", sender.plain, sender.to)
	}

	r.Status = constants.RESERVATION_CONFIRMED
	if err := h.Handle(ctx, NewReservationEvent(EventReservationConfirmed, r)); err != nil {
		t.Fatal(err)
	}
	if len(sender.confirmed) != 1 || sender.confirmed[0].DetailLink != "https://resto.test/reservation/R-ABCD1234" {
		t.Errorf("guest mail = %+v", sender.confirmed)
	}

	if err := h.Handle(ctx, ReservationEvent{Type: "reservation.deleted", Code: "x"}); err == nil {
		t.Error("unknown type accepted")
	}
}

func TestMailHandlerDisabled(t *testing.T) {
	sender := &fakeSender{}
	h := MailHandler{Sender: sender, OwnerEmail: "owner@example.com"}
	if err := h.Handle(context.Background(), NewReservationEvent(EventReservationCreated, sampleReservation())); err != nil {
		t.Fatal(err)
	}
	if len(sender.plain) != 0 {
		t.Error("sent mail while disabled")
	}
}

func TestPublishWithoutURL(t *testing.T) {
	if err := NewPublisher("").Publish(context.Background(), ReservationEvent{}); err == nil {
		t.Error("expected an error without a broker url")
	}
	var nilPub *Publisher
	if err := nilPub.Publish(context.Background(), ReservationEvent{}); err == nil || errors.Is(err, context.Canceled) {
		t.Errorf("nil publisher: %v", err)
	}
}
