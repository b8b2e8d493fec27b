// Package queue moves reservation events through RabbitMQ so mail and other
// slow side effects run outside the request.
package queue

import (
	"time"

	"restaurant_site/model"
)

const QueueName = "reservation.events"

const (
	EventReservationCreated   = "reservation.created"
	EventReservationConfirmed = "reservation.confirmed"
)

type ReservationEvent struct {
	Type          string    `json:"type"`
	ReservationID uint      `json:"reservation_id"`
	Code          string    `json:"code"`
	Date          string    `json:"date"`
	Time          string    `json:"time"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	Phone         string    `json:"phone"`
	People        int       `json:"people"`
	Status        string    `json:"status"`
	OccurredAt    time.Time `json:"occurred_at"`
}

func NewReservationEvent(kind string, r model.Reservation) ReservationEvent {
	return ReservationEvent{
		Type:          kind,
		ReservationID: r.ID,
		Code:          r.Code,
		Date:          r.Date.String(),
		Time:          r.Time,
		Name:          r.Name,
		Email:         r.Email,
		Phone:         r.Phone,
		People:        r.People,
		Status:        r.Status,
		OccurredAt:    time.Now().UTC(),
	}
}
