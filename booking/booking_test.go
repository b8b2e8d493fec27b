package booking

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"restaurant_site/constants"
	"restaurant_site/database"
	"restaurant_site/model"
	"restaurant_site/repository"
)

type memStore struct {
	mu      sync.Mutex
	rows    []model.Reservation
	readErr error
	saveErr error
}

func (m *memStore) SumPeople(_ context.Context, date, slot string) (int, error) {
	if m.readErr != nil {
		return 0, m.readErr
	}
	total := 0
	for _, r := range m.rows {
		if r.Date.String() == date && r.Time == slot {
			total += r.People
		}
	}
	return total, nil
}

func (m *memStore) SumBySlot(_ context.Context, date string) (map[string]int, error) {
	if m.readErr != nil {
		return nil, m.readErr
	}
	out := map[string]int{}
	for _, r := range m.rows {
		if r.Date.String() == date {
			out[r.Time] += r.People
		}
	}
	return out, nil
}

func (m *memStore) Create(_ context.Context, r *model.Reservation) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	r.ID = uint(len(m.rows) + 1)
	m.rows = append(m.rows, *r)
	return nil
}

func (m *memStore) WithSlot(_ context.Context, _, _ string, fn func(Store) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return fn(m)
}

func seed(m *memStore, date, slot string, people ...int) {
	for _, p := range people {
		r := model.Reservation{Time: slot, People: p}
		r.Date.Time, _ = time.Parse(constants.DateLayout, date)
		m.rows = append(m.rows, r)
	}
}

func TestCheckCapacityBoundaries(t *testing.T) {
	ctx := context.Background()
	cases := []struct {
		name      string
		existing  []int
		requested int
		want      bool
	}{
		{"empty slot", nil, 20, true},
		{"empty slot small party", nil, 1, true},
		{"exactly twenty", []int{10, 5}, 5, true},
		{"twenty one", []int{10, 5}, 6, false},
		{"already full", []int{20}, 1, false},
		{"well under", []int{2, 2}, 4, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m := &memStore{}
			seed(m, "2024-07-01", "19:00", tc.existing...)
			got, err := NewChecker(m).CheckCapacity(ctx, "2024-07-01", "19:00", tc.requested)
			if err != nil {
				t.Fatal(err)
			}
			if got != tc.want {
				t.Errorf("CheckCapacity = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestCheckCapacityOnlyCountsExactSlot(t *testing.T) {
	m := &memStore{}
	seed(m, "2024-07-01", "19:30", 20)
	seed(m, "2024-07-02", "19:00", 20)
	ok, err := NewChecker(m).CheckCapacity(context.Background(), "2024-07-01", "19:00", 20)
	if err != nil || !ok {
		t.Errorf("other slots leaked into the sum: %v %v", ok, err)
	}
}

func TestCheckCapacityFailsClosed(t *testing.T) {
	m := &memStore{readErr: errors.New("connection reset")}
	ok, err := NewChecker(m).CheckCapacity(context.Background(), "2024-07-01", "19:00", 1)
	if ok || err == nil {
		t.Errorf("got %v, %v; want false and an error", ok, err)
	}
}

func TestDayAvailability(t *testing.T) {
	m := &memStore{}
	seed(m, "2024-07-01", "19:00", 15, 3)
	seed(m, "2024-07-01", "12:00", 25)
	slots, err := NewChecker(m).DayAvailability(context.Background(), "2024-07-01")
	if err != nil {
		t.Fatal(err)
	}
	if len(slots) != len(constants.Slots) {
		t.Fatalf("got %d slots", len(slots))
	}
	for _, s := range slots {
		switch s.Time {
		case "19:00":
			if s.Booked != 18 || s.Remaining != 2 {
				t.Errorf("19:00 = %+v", s)
			}
		case "12:00":
			if s.Remaining != 0 {
				t.Errorf("overbooked slot should clamp to 0, got %+v", s)
			}
		default:
			if s.Remaining != constants.RoomCapacity {
				t.Errorf("%s = %+v", s.Time, s)
			}
		}
	}
}

type recorder struct{ got []model.Reservation }

func (r *recorder) ReservationCreated(_ context.Context, res model.Reservation) {
	r.got = append(r.got, res)
}

func fixedNow() time.Time {
	return time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC)
}

func request(people int) model.CreateReservationInput {
	return model.CreateReservationInput{
		Date:   "2024-07-01",
		Time:   "19:00",
		Name:   "Camille",
		Email:  "camille@example.com",
		Phone:  "+33612345678",
		People: people,
	}
}

func TestSubmitScenario(t *testing.T) {
	for _, serialize := range []bool{false, true} {
		m := &memStore{}
		rec := &recorder{}
		flow := NewFlow(m, FlowConfig{Serialize: serialize, Now: fixedNow, Notifiers: []Notifier{rec}})
		ctx := context.Background()

		first := flow.Submit(ctx, request(15))
		if first.State != StateSucceeded {
			t.Fatalf("serialize=%v: 15 people: %v %v", serialize, first.State, first.Err)
		}
		if first.Reservation.Status != constants.RESERVATION_PENDING || first.Reservation.Code == "" {
			t.Errorf("stored reservation = %+v", first.Reservation)
		}

		second := flow.Submit(ctx, request(6))
		if second.State != StateRejectedCapacity || !errors.Is(second.Err, ErrCapacityExceeded) {
			t.Fatalf("serialize=%v: 6 people: %v", serialize, second.State)
		}
		if second.Message != constants.BOOKING_NO_ROOM {
			t.Errorf("message = %q", second.Message)
		}

		third := flow.Submit(ctx, request(5))
		if third.State != StateSucceeded {
			t.Fatalf("serialize=%v: 5 people: %v", serialize, third.State)
		}

		if len(m.rows) != 2 || len(rec.got) != 2 {
			t.Errorf("rows=%d notified=%d, want 2 and 2", len(m.rows), len(rec.got))
		}
		wantPath := []State{StateIdle, StateValidating, StateCheckingCapacity, StateInserting, StateSucceeded}
		if !samePath(third.Path, wantPath) {
			t.Errorf("path = %v", third.Path)
		}
	}
}

func TestSubmitValidation(t *testing.T) {
	flow := NewFlow(&memStore{}, FlowConfig{Now: fixedNow})
	ctx := context.Background()

	cases := []struct {
		name  string
		edit  func(*model.CreateReservationInput)
		field string
	}{
		{"zero people", func(r *model.CreateReservationInput) { r.People = 0 }, "people"},
		{"too many people", func(r *model.CreateReservationInput) { r.People = 21 }, "people"},
		{"past date", func(r *model.CreateReservationInput) { r.Date = "2024-06-14" }, "date"},
		{"bad date", func(r *model.CreateReservationInput) { r.Date = "01/07/2024" }, "date"},
		{"unknown slot", func(r *model.CreateReservationInput) { r.Time = "18:00" }, "time"},
		{"bad email", func(r *model.CreateReservationInput) { r.Email = "nope" }, "email"},
		{"local phone", func(r *model.CreateReservationInput) { r.Phone = "0612345678" }, "phone"},
		{"blank name", func(r *model.CreateReservationInput) { r.Name = "   " }, "name"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := request(2)
			tc.edit(&req)
			out := flow.Submit(ctx, req)
			if out.State != StateRejectedValidation {
				t.Fatalf("state = %v", out.State)
			}
			if _, ok := out.FieldErrors[tc.field]; !ok {
				t.Errorf("field errors %v missing %q", out.FieldErrors, tc.field)
			}
			for _, s := range out.Path {
				if s == StateCheckingCapacity {
					t.Error("capacity checked after a validation failure")
				}
			}
		})
	}

	today := request(2)
	today.Date = "2024-06-15"
	if out := flow.Submit(ctx, today); out.State != StateSucceeded {
		t.Errorf("booking for today: %v %v", out.State, out.FieldErrors)
	}
}

func TestSubmitBackendErrors(t *testing.T) {
	ctx := context.Background()

	read := &memStore{readErr: errors.New("timeout")}
	out := NewFlow(read, FlowConfig{Now: fixedNow}).Submit(ctx, request(2))
	if out.State != StateFailed || out.Message != constants.BOOKING_FAILED {
		t.Errorf("read error: %v %q", out.State, out.Message)
	}

	write := &memStore{saveErr: errors.New("disk full")}
	rec := &recorder{}
	out = NewFlow(write, FlowConfig{Now: fixedNow, Notifiers: []Notifier{rec}}).Submit(ctx, request(2))
	if out.State != StateFailed || out.Reservation != nil {
		t.Errorf("write error: %v %+v", out.State, out.Reservation)
	}
	if len(rec.got) != 0 {
		t.Error("notified about a failed insert")
	}
}

func TestSubmitAgainstDatabase(t *testing.T) {
	db, err := database.OpenMemory()
	if err != nil {
		t.Fatal(err)
	}
	store := NewGormStore(repository.NewReservationRepository(db))
	flow := NewFlow(store, FlowConfig{Serialize: true, Now: fixedNow})
	ctx := context.Background()

	for _, tc := range []struct {
		people int
		want   State
	}{{15, StateSucceeded}, {6, StateRejectedCapacity}, {5, StateSucceeded}, {1, StateRejectedCapacity}} {
		if out := flow.Submit(ctx, request(tc.people)); out.State != tc.want {
			t.Fatalf("%d people: got %v want %v (%v)", tc.people, out.State, tc.want, out.Err)
		}
	}
	total, err := store.SumPeople(ctx, "2024-07-01", "19:00")
	if err != nil || total != 20 {
		t.Errorf("stored total = %d, %v", total, err)
	}
}

func samePath(a, b []State) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
