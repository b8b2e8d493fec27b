package booking

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"restaurant_site/constants"
	"restaurant_site/model"
	"restaurant_site/utils"
	"restaurant_site/validate"

	"github.com/google/uuid"
)

type State int

const (
	StateIdle State = iota
	StateValidating
	StateCheckingCapacity
	StateRejectedValidation
	StateRejectedCapacity
	StateInserting
	StateSucceeded
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateValidating:
		return "validating"
	case StateCheckingCapacity:
		return "checking_capacity"
	case StateRejectedValidation:
		return "rejected_validation"
	case StateRejectedCapacity:
		return "rejected_capacity"
	case StateInserting:
		return "inserting"
	case StateSucceeded:
		return "succeeded"
	case StateFailed:
		return "failed"
	}
	return "unknown"
}

// Notifier hears about stored reservations. Implementations must not block
// for long and handle their own errors.
type Notifier interface {
	ReservationCreated(ctx context.Context, r model.Reservation)
}

// Outcome is the terminal state of one submission and what the caller needs
// to render it.
type Outcome struct {
	State       State
	Path        []State
	Reservation *model.Reservation
	FieldErrors map[string]string
	Message     string
	Err         error
}

type FlowConfig struct {
	// Serialize runs check and insert in one transaction holding the slot.
	Serialize bool
	Location  *time.Location
	Now       func() time.Time
	Notifiers []Notifier
}

// Flow carries no per-submission state, so one Flow serves every request.
type Flow struct {
	store     Store
	serialize bool
	loc       *time.Location
	now       func() time.Time
	notifiers []Notifier
}

func NewFlow(store Store, cfg FlowConfig) *Flow {
	f := &Flow{
		store:     store,
		serialize: cfg.Serialize,
		loc:       cfg.Location,
		now:       cfg.Now,
		notifiers: cfg.Notifiers,
	}
	if f.loc == nil {
		f.loc = time.UTC
	}
	if f.now == nil {
		f.now = time.Now
	}
	return f
}

// Validate returns per-field errors for req, including a date in the past.
func (f *Flow) Validate(req model.CreateReservationInput) map[string]string {
	req.Name = strings.TrimSpace(req.Name)
	fields := validate.Fields(req)
	if _, bad := fields["date"]; !bad {
		date, err := utils.ParseDate(req.Date)
		if err != nil {
			fields["date"] = "datetime"
		} else if date.Before(utils.DateOf(f.now().In(f.loc))) {
			fields["date"] = "past"
		}
	}
	return fields
}

func (f *Flow) Submit(ctx context.Context, req model.CreateReservationInput) Outcome {
	out := Outcome{Path: []State{StateIdle}}
	move := func(s State) {
		out.State = s
		out.Path = append(out.Path, s)
	}

	move(StateValidating)
	if fields := f.Validate(req); len(fields) > 0 {
		move(StateRejectedValidation)
		out.FieldErrors = fields
		out.Message = constants.VALIDATION_FAILED
		return out
	}

	date, _ := utils.ParseDate(req.Date)
	res := &model.Reservation{
		Code:   newCode(),
		Date:   date,
		Time:   req.Time,
		Name:   strings.TrimSpace(req.Name),
		Email:  strings.TrimSpace(req.Email),
		Phone:  req.Phone,
		People: req.People,
		Status: constants.RESERVATION_PENDING,
	}

	var checkErr error
	run := func(s Store) error {
		move(StateCheckingCapacity)
		ok, err := NewChecker(s).CheckCapacity(ctx, req.Date, req.Time, req.People)
		if err != nil {
			checkErr = err
			return err
		}
		if !ok {
			return ErrCapacityExceeded
		}
		move(StateInserting)
		return s.Create(ctx, res)
	}

	var err error
	if f.serialize {
		err = f.store.WithSlot(ctx, req.Date, req.Time, run)
	} else {
		err = run(f.store)
	}

	switch {
	case errors.Is(err, ErrCapacityExceeded):
		move(StateRejectedCapacity)
		out.Message = constants.BOOKING_NO_ROOM
		out.Err = err
		return out
	case err != nil:
		if checkErr != nil {
			log.Printf("[booking] capacity check failed for %s %s: %v", req.Date, req.Time, err)
		} else {
			log.Printf("[booking] insert failed for %s %s: %v", req.Date, req.Time, err)
		}
		move(StateFailed)
		out.Message = constants.BOOKING_FAILED
		out.Err = err
		return out
	}

	move(StateSucceeded)
	out.Reservation = res
	out.Message = constants.BOOKING_SUCCESS
	for _, n := range f.notifiers {
		n.ReservationCreated(ctx, *res)
	}
	return out
}

// newCode returns a short public reference such as "R-1A2B3C4D".
func newCode() string {
	id := strings.ReplaceAll(uuid.NewString(), "-", "")
	return "R-" + strings.ToUpper(id[:8])
}
