package queue

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"restaurant_site/model"

	amqp "github.com/rabbitmq/amqp091-go"
)

type Publisher struct {
	url string
}

func NewPublisher(url string) *Publisher {
	return &Publisher{url: url}
}

// Publish sends one persistent message on the reservation queue. It opens a
// connection per call; volume is a handful of bookings a day.
func (p *Publisher) Publish(ctx context.Context, ev ReservationEvent) error {
	if p == nil || p.url == "" {
		return errors.New("rabbitmq url not configured")
	}
	conn, err := amqp.Dial(p.url)
	if err != nil {
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		return err
	}
	defer func() { _ = ch.Close() }()

	if _, err := ch.QueueDeclare(QueueName, true, false, false, false, nil); err != nil {
		return err
	}

	body, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	return ch.PublishWithContext(ctx, "", QueueName, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Type:         ev.Type,
		Body:         body,
	})
}

// ReservationCreated publishes a reservation.created event. Failures are only
// logged; the reservation is already stored.
func (p *Publisher) ReservationCreated(ctx context.Context, r model.Reservation) {
	if err := p.Publish(ctx, NewReservationEvent(EventReservationCreated, r)); err != nil {
		log.Printf("[queue] publish %s for %s failed: %v", EventReservationCreated, r.Code, err)
	}
}

func (p *Publisher) ReservationsConfirmed(ctx context.Context, rows []model.Reservation) {
	for _, r := range rows {
		if err := p.Publish(ctx, NewReservationEvent(EventReservationConfirmed, r)); err != nil {
			log.Printf("[queue] publish %s for %s failed: %v", EventReservationConfirmed, r.Code, err)
		}
	}
}
