package repository

import (
	"context"

	"restaurant_site/constants"
	"restaurant_site/model"
	"restaurant_site/utils"

	"gorm.io/gorm"
)

type ReservationRepository struct {
	DB *gorm.DB
}

func NewReservationRepository(db *gorm.DB) *ReservationRepository {
	return &ReservationRepository{DB: db}
}

// SumPeople totals the party sizes already booked at exactly (date, slot),
// whatever their status.
func (r *ReservationRepository) SumPeople(ctx context.Context, date, slot string) (int, error) {
	var total int64
	err := r.DB.WithContext(ctx).
		Model(&model.Reservation{}).
		Where("date = ? AND time = ?", date, slot).
		Select("COALESCE(SUM(people), 0)").
		Scan(&total).Error
	return int(total), err
}

// SumBySlot returns booked seats per slot for one day.
func (r *ReservationRepository) SumBySlot(ctx context.Context, date string) (map[string]int, error) {
	type row struct {
		Time  string
		Total int64
	}
	var rows []row
	err := r.DB.WithContext(ctx).
		Model(&model.Reservation{}).
		Select("time, COALESCE(SUM(people), 0) AS total").
		Where("date = ?", date).
		Group("time").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make(map[string]int, len(rows))
	for _, r := range rows {
		out[r.Time] = int(r.Total)
	}
	return out, nil
}

func (r *ReservationRepository) Create(ctx context.Context, res *model.Reservation) error {
	return translate(r.DB.WithContext(ctx).Create(res).Error)
}

// WithSlotLock runs fn inside a transaction. On Postgres the transaction first
// takes an advisory lock keyed on the slot so concurrent bookings for the same
// date and time run one after the other.
func (r *ReservationRepository) WithSlotLock(ctx context.Context, date, slot string, fn func(tx *ReservationRepository) error) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if tx.Dialector.Name() == "postgres" {
			if err := tx.Exec("SELECT pg_advisory_xact_lock(hashtext(?))", "reservation:"+date+":"+slot).Error; err != nil {
				return err
			}
		}
		return fn(&ReservationRepository{DB: tx})
	})
}

func (r *ReservationRepository) FindByID(ctx context.Context, id uint) (*model.Reservation, error) {
	var res model.Reservation
	if err := r.DB.WithContext(ctx).First(&res, id).Error; err != nil {
		return nil, translate(err)
	}
	return &res, nil
}

func (r *ReservationRepository) List(ctx context.Context, filter model.ReservationFilter) ([]model.Reservation, int64, error) {
	db := r.DB.WithContext(ctx).Model(&model.Reservation{})
	if filter.Date != nil && *filter.Date != "" {
		db = db.Where("date = ?", *filter.Date)
	}
	if filter.Status != nil && *filter.Status != "" {
		db = db.Where("status = ?", *filter.Status)
	}
	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var rows []model.Reservation
	err := utils.ApplyPagination(db, filter.Limit, filter.Page).
		Order("date ASC, time ASC, id ASC").
		Find(&rows).Error
	return rows, total, err
}

// ListByDate returns one day's reservations ordered by slot.
func (r *ReservationRepository) ListByDate(ctx context.Context, date string) ([]model.Reservation, error) {
	var rows []model.Reservation
	err := r.DB.WithContext(ctx).
		Where("date = ?", date).
		Order("time ASC, id ASC").
		Find(&rows).Error
	return rows, err
}

// Confirm moves one reservation to confirmed. It reports whether the status
// changed.
func (r *ReservationRepository) Confirm(ctx context.Context, id uint) (*model.Reservation, bool, error) {
	res, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, false, err
	}
	if res.Status == constants.RESERVATION_CONFIRMED {
		return res, false, nil
	}
	res.Status = constants.RESERVATION_CONFIRMED
	if err := r.DB.WithContext(ctx).Model(res).Update("status", constants.RESERVATION_CONFIRMED).Error; err != nil {
		return nil, false, err
	}
	return res, true, nil
}

// ConfirmPending confirms every pending reservation, optionally restricted to
// one date, and returns the rows it changed.
func (r *ReservationRepository) ConfirmPending(ctx context.Context, date *string) ([]model.Reservation, error) {
	var changed []model.Reservation
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		q := tx.Where("status = ?", constants.RESERVATION_PENDING)
		if date != nil && *date != "" {
			q = q.Where("date = ?", *date)
		}
		if err := q.Order("date ASC, time ASC").Find(&changed).Error; err != nil {
			return err
		}
		if len(changed) == 0 {
			return nil
		}
		ids := make([]uint, 0, len(changed))
		for i := range changed {
			ids = append(ids, changed[i].ID)
			changed[i].Status = constants.RESERVATION_CONFIRMED
		}
		return tx.Model(&model.Reservation{}).
			Where("id IN ?", ids).
			Update("status", constants.RESERVATION_CONFIRMED).Error
	})
	if err != nil {
		return nil, err
	}
	return changed, nil
}

func (r *ReservationRepository) Delete(ctx context.Context, ids []uint) (int64, error) {
	res := r.DB.WithContext(ctx).Delete(&model.Reservation{}, ids)
	return res.RowsAffected, res.Error
}
