package model

import "restaurant_site/utils"

type Event struct {
	DTO
	Date          utils.CustomDate `gorm:"type:date;not null;index" json:"date"`
	Titre         string           `gorm:"size:200;not null" json:"titre"`
	Slug          string           `gorm:"size:220;uniqueIndex" json:"slug"`
	Description   string           `gorm:"type:text" json:"description"`
	ImageUrl      *string          `json:"image_url"`
	ImagePublicID *string          `json:"-"`
}

type CreateEventInput struct {
	Date        string  `json:"date" form:"date" validate:"required,datetime=2006-01-02"`
	Titre       string  `json:"titre" form:"titre" validate:"required,max=200"`
	Description string  `json:"description" form:"description" validate:"omitempty,max=5000"`
	ImageUrl    *string `json:"image_url" form:"image_url" validate:"omitempty,url"`
}

type UpdateEventInput struct {
	Date        *string `json:"date" form:"date" validate:"omitempty,datetime=2006-01-02"`
	Titre       *string `json:"titre" form:"titre" validate:"omitempty,min=1,max=200"`
	Description *string `json:"description" form:"description" validate:"omitempty,max=5000"`
	ImageUrl    *string `json:"image_url" form:"image_url" validate:"omitempty,url"`
}

type EventFilter struct {
	Pagination
	// When is past, upcoming or all.
	When *string `query:"when" json:"when" validate:"omitempty,oneof=past upcoming all"`
}

const (
	EventsPast     = "past"
	EventsUpcoming = "upcoming"
	EventsAll      = "all"
)
