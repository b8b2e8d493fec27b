package booking

import (
	"context"

	"restaurant_site/model"
	"restaurant_site/repository"
)

// Store is what the flow needs from persistence. WithSlot runs fn against a
// Store scoped to one transaction that holds the slot.
type Store interface {
	Counter
	Create(ctx context.Context, r *model.Reservation) error
	WithSlot(ctx context.Context, date, slot string, fn func(Store) error) error
}

// GormStore adapts the reservation repository.
type GormStore struct {
	repo *repository.ReservationRepository
}

func NewGormStore(repo *repository.ReservationRepository) *GormStore {
	return &GormStore{repo: repo}
}

func (s *GormStore) SumPeople(ctx context.Context, date, slot string) (int, error) {
	return s.repo.SumPeople(ctx, date, slot)
}

func (s *GormStore) SumBySlot(ctx context.Context, date string) (map[string]int, error) {
	return s.repo.SumBySlot(ctx, date)
}

func (s *GormStore) Create(ctx context.Context, r *model.Reservation) error {
	return s.repo.Create(ctx, r)
}

func (s *GormStore) WithSlot(ctx context.Context, date, slot string, fn func(Store) error) error {
	return s.repo.WithSlotLock(ctx, date, slot, func(tx *repository.ReservationRepository) error {
		return fn(&GormStore{repo: tx})
	})
}
