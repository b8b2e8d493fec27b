package handler

import (
	"errors"
	"log"

	"restaurant_site/booking"
	"restaurant_site/constants"
	"restaurant_site/model"
	"restaurant_site/repository"
	"restaurant_site/utils"

	"github.com/gofiber/fiber/v2"
)

// CreateReservation is the public booking endpoint.
func (h *Handler) CreateReservation(c *fiber.Ctx) error {
	var input model.CreateReservationInput
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
	}

	out := h.flow.Submit(c.UserContext(), input)
	switch out.State {
	case booking.StateSucceeded:
		return utils.SuccessResponse(c, fiber.StatusCreated, fiber.Map{
			"message":     out.Message,
			"reservation": out.Reservation,
		})
	case booking.StateRejectedValidation:
		return utils.ValidationErrorResponse(c, out.Message, out.FieldErrors)
	case booking.StateRejectedCapacity:
		return utils.ErrorResponse(c, fiber.StatusConflict, out.Message, out.Err)
	}
	return utils.ErrorResponse(c, fiber.StatusInternalServerError, out.Message, nil)
}

// Availability lists remaining seats per slot for ?date=.
func (h *Handler) Availability(c *fiber.Ctx) error {
	date := c.Locals("date").(string)
	slots, err := h.checker.DayAvailability(c.UserContext(), date)
	if err != nil {
		log.Printf("[booking] availability for %s failed: %v", date, err)
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, nil)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"date":     date,
		"capacity": constants.RoomCapacity,
		"slots":    slots,
	})
}

func (h *Handler) GetReservations(c *fiber.Ctx) error {
	filter := new(model.ReservationFilter)
	if err := c.QueryParser(filter); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
	}
	rows, total, err := h.reservations.List(c.UserContext(), *filter)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, &model.ResponseCustom{
		Rows:       rows,
		Limit:      filter.Limit,
		Page:       filter.Page,
		TotalCount: total,
	})
}

func (h *Handler) ConfirmReservation(c *fiber.Ctx) error {
	res, changed, err := h.reservations.Confirm(c.UserContext(), inputId(c))
	if errors.Is(err, repository.ErrNotFound) {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.NOT_FOUND, err)
	}
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	if changed && h.reservationEvents != nil {
		h.reservationEvents.ReservationsConfirmed(c.UserContext(), []model.Reservation{*res})
	}
	return utils.SuccessResponse(c, fiber.StatusOK, res)
}

// SyncReservations confirms every pending reservation, optionally for one
// date.
func (h *Handler) SyncReservations(c *fiber.Ctx) error {
	input := c.Locals("input").(model.SyncReservationsInput)
	changed, err := h.reservations.ConfirmPending(c.UserContext(), input.Date)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	if len(changed) > 0 && h.reservationEvents != nil {
		h.reservationEvents.ReservationsConfirmed(c.UserContext(), changed)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"confirmed": len(changed),
		"rows":      changed,
	})
}

func (h *Handler) DeleteReservations(c *fiber.Ctx) error {
	input := c.Locals("deleteIds").(model.ArrayId)
	n, err := h.reservations.Delete(c.UserContext(), input.IDs)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"deleted": n})
}

// ReservationSheet renders the day's service sheet as a PDF.
func (h *Handler) ReservationSheet(c *fiber.Ctx) error {
	date := c.Locals("date").(string)
	rows, err := h.reservations.ListByDate(c.UserContext(), date)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	slots := make([]utils.SheetSlot, 0, len(constants.Slots))
	for _, slot := range constants.Slots {
		s := utils.SheetSlot{Time: slot, Capacity: constants.RoomCapacity}
		for _, r := range rows {
			if r.Time != slot {
				continue
			}
			s.Booked += r.People
			s.Rows = append(s.Rows, utils.SheetRow{Time: r.Time, Name: r.Name, People: r.People, Phone: r.Phone, Status: r.Status})
		}
		slots = append(slots, s)
	}
	pdf, err := utils.ReservationSheetPDF("Réservations", date, slots)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="reservations-`+date+`.pdf"`)
	return c.Send(pdf)
}
