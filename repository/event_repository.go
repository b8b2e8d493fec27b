package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"restaurant_site/model"
	"restaurant_site/utils"

	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

type EventRepository struct {
	DB *gorm.DB
}

func NewEventRepository(db *gorm.DB) *EventRepository {
	return &EventRepository{DB: db}
}

// List returns events relative to today. Past events come newest first,
// upcoming and all oldest first.
func (r *EventRepository) List(ctx context.Context, filter model.EventFilter, today string) ([]model.Event, int64, error) {
	db := r.DB.WithContext(ctx).Model(&model.Event{})
	order := "date ASC, id ASC"
	when := model.EventsAll
	if filter.When != nil && *filter.When != "" {
		when = *filter.When
	}
	switch when {
	case model.EventsPast:
		db = db.Where("date < ?", today)
		order = "date DESC, id DESC"
	case model.EventsUpcoming:
		db = db.Where("date >= ?", today)
	case model.EventsAll:
	default:
		return nil, 0, fmt.Errorf("unknown event filter %q", when)
	}
	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var events []model.Event
	err := utils.ApplyPagination(db, filter.Limit, filter.Page).Order(order).Find(&events).Error
	return events, total, err
}

func (r *EventRepository) FindByID(ctx context.Context, id uint) (*model.Event, error) {
	var event model.Event
	if err := r.DB.WithContext(ctx).First(&event, id).Error; err != nil {
		return nil, translate(err)
	}
	return &event, nil
}

func (r *EventRepository) FindBySlug(ctx context.Context, s string) (*model.Event, error) {
	var event model.Event
	if err := r.DB.WithContext(ctx).Where("slug = ?", s).First(&event).Error; err != nil {
		return nil, translate(err)
	}
	return &event, nil
}

func (r *EventRepository) FindByIDs(ctx context.Context, ids []uint) ([]model.Event, error) {
	var events []model.Event
	err := r.DB.WithContext(ctx).Where("id IN ?", ids).Find(&events).Error
	return events, err
}

// UniqueSlug derives a slug from title, appending -2, -3 ... until no other
// event uses it. exceptID lets an event keep its own slug on update.
func (r *EventRepository) UniqueSlug(ctx context.Context, title string, exceptID uint) (string, error) {
	base := slug.Make(title)
	if base == "" {
		base = "evenement"
	}
	candidate := base
	for i := 2; ; i++ {
		var count int64
		q := r.DB.WithContext(ctx).Model(&model.Event{}).Where("slug = ?", candidate)
		if exceptID != 0 {
			q = q.Where("id <> ?", exceptID)
		}
		if err := q.Count(&count).Error; err != nil {
			return "", err
		}
		if count == 0 {
			return candidate, nil
		}
		candidate = base + "-" + strconv.Itoa(i)
	}
}

func (r *EventRepository) Create(ctx context.Context, event *model.Event) error {
	if event.Slug == "" {
		s, err := r.UniqueSlug(ctx, event.Titre, 0)
		if err != nil {
			return err
		}
		event.Slug = s
	}
	return translate(r.DB.WithContext(ctx).Create(event).Error)
}

func (r *EventRepository) Save(ctx context.Context, event *model.Event) error {
	if event.ID == 0 {
		return errors.New("event has no id")
	}
	return translate(r.DB.WithContext(ctx).Save(event).Error)
}

func (r *EventRepository) Delete(ctx context.Context, ids []uint) (int64, error) {
	res := r.DB.WithContext(ctx).Delete(&model.Event{}, ids)
	return res.RowsAffected, res.Error
}
