package handler

import (
	"context"
	"time"

	"restaurant_site/booking"
	"restaurant_site/config"
	"restaurant_site/constants"
	"restaurant_site/helper"
	"restaurant_site/model"
	"restaurant_site/profile"
	"restaurant_site/realtime"
	"restaurant_site/repository"
	"restaurant_site/storage"
	"restaurant_site/theme"
	"restaurant_site/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// ReservationEvents receives reservation lifecycle events.
type ReservationEvents interface {
	booking.Notifier
	ReservationsConfirmed(ctx context.Context, rows []model.Reservation)
}

type Deps struct {
	DB     *gorm.DB
	Config config.Settings
	// Storage may be nil, in which case uploads answer 503.
	Storage storage.Backend
	Feed    realtime.Feed
	Events  ReservationEvents
	Now     func() time.Time
}

// Handler holds every dependency the HTTP handlers use.
type Handler struct {
	cfg      config.Settings
	loc      *time.Location
	now      func() time.Time
	tokens   *helper.Tokens
	accounts *repository.AccountRepository

	reservations      *repository.ReservationRepository
	checker           *booking.Checker
	flow              *booking.Flow
	reservationEvents ReservationEvents

	menu      *repository.MenuRepository
	eventRepo *repository.EventRepository
	settings  *repository.SiteSettingRepository
	features  *repository.FeatureRepository
	editable  *repository.EditableRepository

	Theme    *theme.Store
	profiles *profile.Service
	storage  *storage.Service
	feed     realtime.Feed
	Hub      *realtime.Hub
}

func New(d Deps) *Handler {
	loc := d.Config.Timezone
	if loc == nil {
		loc = time.UTC
	}
	now := d.Now
	if now == nil {
		now = time.Now
	}
	reservations := repository.NewReservationRepository(d.DB)
	store := booking.NewGormStore(reservations)
	var notifiers []booking.Notifier
	if d.Events != nil {
		notifiers = append(notifiers, d.Events)
	}
	accounts := repository.NewAccountRepository(d.DB)

	h := &Handler{
		cfg:          d.Config,
		loc:          loc,
		now:          now,
		tokens:       helper.NewTokens(d.Config.JWTSecret),
		accounts:     accounts,
		reservations: reservations,
		checker:      booking.NewChecker(store),
		flow: booking.NewFlow(store, booking.FlowConfig{
			Serialize: d.Config.BookingSerialize,
			Location:  loc,
			Now:       now,
			Notifiers: notifiers,
		}),
		reservationEvents: d.Events,
		menu:              repository.NewMenuRepository(d.DB),
		eventRepo:         repository.NewEventRepository(d.DB),
		settings:          repository.NewSiteSettingRepository(d.DB),
		features:          repository.NewFeatureRepository(d.DB),
		editable:          repository.NewEditableRepository(d.DB),
		Theme:             theme.NewStore(repository.NewSiteConfigRepository(d.DB)),
		profiles:          profile.NewService(accounts, repository.NewProfileRepository(d.DB)),
		feed:              d.Feed,
		Hub:               realtime.NewHub(constants.CHANNEL_SITE_CONFIG, constants.CHANNEL_FEATURES),
	}
	if d.Storage != nil {
		h.storage = storage.NewService(d.Storage, d.Config.UploadMaxWidth)
	}
	return h
}

func (h *Handler) Tokens() *helper.Tokens {
	return h.tokens
}

// today is the restaurant's current calendar day.
func (h *Handler) today() string {
	return utils.DateOf(h.now().In(h.loc)).String()
}

func inputId(c *fiber.Ctx) uint {
	return c.Locals("inputId").(uint)
}

func (h *Handler) publish(ctx context.Context, channel, payload string) {
	realtime.Notify(ctx, h.feed, channel, payload)
}
