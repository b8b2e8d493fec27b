// Package booking decides whether a party fits in a slot and drives a public
// reservation from form input to a stored row.
package booking

import (
	"context"
	"errors"
	"fmt"

	"restaurant_site/constants"
	"restaurant_site/model"
)

// ErrCapacityExceeded means the slot cannot take the requested party.
var ErrCapacityExceeded = errors.New("capacity exceeded")

// Counter reads booked seats.
type Counter interface {
	SumPeople(ctx context.Context, date, slot string) (int, error)
	SumBySlot(ctx context.Context, date string) (map[string]int, error)
}

type Checker struct {
	counter  Counter
	capacity int
}

func NewChecker(counter Counter) *Checker {
	return &Checker{counter: counter, capacity: constants.RoomCapacity}
}

// CheckCapacity reports whether requested more people fit at (date, slot).
// Every reservation at the slot counts, whatever its status. A read error
// returns false together with the error.
func (c *Checker) CheckCapacity(ctx context.Context, date, slot string, requested int) (bool, error) {
	booked, err := c.counter.SumPeople(ctx, date, slot)
	if err != nil {
		return false, fmt.Errorf("read booked seats: %w", err)
	}
	return booked+requested <= c.capacity, nil
}

// Remaining returns the free seats at (date, slot), never below zero.
func (c *Checker) Remaining(ctx context.Context, date, slot string) (int, error) {
	booked, err := c.counter.SumPeople(ctx, date, slot)
	if err != nil {
		return 0, fmt.Errorf("read booked seats: %w", err)
	}
	return max(c.capacity-booked, 0), nil
}

// DayAvailability lists every slot of date in display order.
func (c *Checker) DayAvailability(ctx context.Context, date string) ([]model.SlotAvailability, error) {
	booked, err := c.counter.SumBySlot(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("read booked seats: %w", err)
	}
	out := make([]model.SlotAvailability, 0, len(constants.Slots))
	for _, slot := range constants.Slots {
		n := booked[slot]
		out = append(out, model.SlotAvailability{
			Time:      slot,
			Booked:    n,
			Remaining: max(c.capacity-n, 0),
		})
	}
	return out, nil
}
