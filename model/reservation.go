package model

import "restaurant_site/utils"

type Reservation struct {
	DTO
	Code   string           `gorm:"size:20;uniqueIndex" json:"code"`
	Date   utils.CustomDate `gorm:"type:date;not null;index:idx_reservation_slot" json:"date"`
	Time   string           `gorm:"size:5;not null;index:idx_reservation_slot" json:"time"`
	Name   string           `gorm:"size:120;not null" json:"name"`
	Email  string           `gorm:"size:255;not null" json:"email"`
	Phone  string           `gorm:"size:20;not null" json:"phone"`
	People int              `gorm:"not null" json:"people"`
	Status string           `gorm:"size:20;not null;default:pending;index" json:"status"`
}

// CreateReservationInput is the public booking form.
type CreateReservationInput struct {
	Date   string `json:"date" validate:"required,datetime=2006-01-02"`
	Time   string `json:"time" validate:"required,slot"`
	Name   string `json:"name" validate:"required,max=120"`
	Email  string `json:"email" validate:"required,email"`
	Phone  string `json:"phone" validate:"required,e164"`
	People int    `json:"people" validate:"required,min=1,max=20"`
}

type ReservationFilter struct {
	Pagination
	Date   *string `query:"date"`
	Status *string `query:"status"`
}

type SyncReservationsInput struct {
	Date *string `json:"date" validate:"omitempty,datetime=2006-01-02"`
}

// SlotAvailability reports the seats left in one slot.
type SlotAvailability struct {
	Time      string `json:"time"`
	Booked    int    `json:"booked"`
	Remaining int    `json:"remaining"`
}
