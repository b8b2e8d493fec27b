package repository

import (
	"context"
	"errors"
	"testing"

	"restaurant_site/constants"
	"restaurant_site/database"
	"restaurant_site/model"
	"restaurant_site/utils"

	"gorm.io/gorm"
)

func openDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.OpenMemory()
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	return db
}

func reservation(t *testing.T, date, slot string, people int, status string) *model.Reservation {
	t.Helper()
	d, err := utils.ParseDate(date)
	if err != nil {
		t.Fatal(err)
	}
	return &model.Reservation{Date: d, Time: slot, Name: "Test", Email: "t@example.com", Phone: "+33600000000", People: people, Status: status}
}

func TestReservationSums(t *testing.T) {
	ctx := context.Background()
	repo := NewReservationRepository(openDB(t))

	total, err := repo.SumPeople(ctx, "2024-07-01", "19:00")
	if err != nil || total != 0 {
		t.Fatalf("empty slot: got %d, %v", total, err)
	}

	fixtures := []*model.Reservation{
		reservation(t, "2024-07-01", "19:00", 15, constants.RESERVATION_PENDING),
		reservation(t, "2024-07-01", "19:00", 3, constants.RESERVATION_CONFIRMED),
		reservation(t, "2024-07-01", "12:00", 4, constants.RESERVATION_PENDING),
		reservation(t, "2024-07-02", "19:00", 9, constants.RESERVATION_PENDING),
	}
	for i, r := range fixtures {
		r.Code = "R" + string(rune('A'+i))
		if err := repo.Create(ctx, r); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	total, err = repo.SumPeople(ctx, "2024-07-01", "19:00")
	if err != nil {
		t.Fatal(err)
	}
	if total != 18 {
		t.Errorf("SumPeople = %d, want 18 (status ignored)", total)
	}

	bySlot, err := repo.SumBySlot(ctx, "2024-07-01")
	if err != nil {
		t.Fatal(err)
	}
	if bySlot["19:00"] != 18 || bySlot["12:00"] != 4 || len(bySlot) != 2 {
		t.Errorf("SumBySlot = %v", bySlot)
	}
}

func TestReservationWithSlotLockRollsBack(t *testing.T) {
	ctx := context.Background()
	repo := NewReservationRepository(openDB(t))
	boom := errors.New("boom")

	err := repo.WithSlotLock(ctx, "2024-07-01", "20:00", func(tx *ReservationRepository) error {
		r := reservation(t, "2024-07-01", "20:00", 2, constants.RESERVATION_PENDING)
		r.Code = "LOCK1"
		if err := tx.Create(ctx, r); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("got %v, want boom", err)
	}
	total, _ := repo.SumPeople(ctx, "2024-07-01", "20:00")
	if total != 0 {
		t.Errorf("insert survived rollback: total %d", total)
	}
}

func TestConfirmPending(t *testing.T) {
	ctx := context.Background()
	repo := NewReservationRepository(openDB(t))
	for i, date := range []string{"2024-07-01", "2024-07-01", "2024-07-02"} {
		r := reservation(t, date, "12:00", 2, constants.RESERVATION_PENDING)
		r.Code = "C" + string(rune('A'+i))
		if err := repo.Create(ctx, r); err != nil {
			t.Fatal(err)
		}
	}

	date := "2024-07-01"
	changed, err := repo.ConfirmPending(ctx, &date)
	if err != nil {
		t.Fatal(err)
	}
	if len(changed) != 2 {
		t.Fatalf("changed %d rows, want 2", len(changed))
	}

	pending := constants.RESERVATION_PENDING
	rows, total, err := repo.List(ctx, model.ReservationFilter{Status: &pending})
	if err != nil {
		t.Fatal(err)
	}
	if total != 1 || rows[0].Date.String() != "2024-07-02" {
		t.Errorf("remaining pending = %d %v", total, rows)
	}

	res, changedOne, err := repo.Confirm(ctx, rows[0].ID)
	if err != nil || !changedOne || res.Status != constants.RESERVATION_CONFIRMED {
		t.Errorf("Confirm = %v %v %v", res, changedOne, err)
	}
	_, changedOne, _ = repo.Confirm(ctx, rows[0].ID)
	if changedOne {
		t.Error("second Confirm reported a change")
	}
	if _, _, err := repo.Confirm(ctx, 9999); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing id: got %v", err)
	}
}

func TestEventListAndSlug(t *testing.T) {
	ctx := context.Background()
	repo := NewEventRepository(openDB(t))
	for _, e := range []struct{ date, title string }{
		{"2024-01-10", "Soirée Jazz"},
		{"2024-09-10", "Soirée Jazz"},
		{"2024-12-31", "Réveillon"},
	} {
		d, _ := utils.ParseDate(e.date)
		if err := repo.Create(ctx, &model.Event{Date: d, Titre: e.title}); err != nil {
			t.Fatal(err)
		}
	}

	got, err := repo.FindBySlug(ctx, "soiree-jazz-2")
	if err != nil {
		t.Fatalf("FindBySlug: %v", err)
	}
	if got.Date.String() != "2024-09-10" {
		t.Errorf("slug resolved to %s", got.Date)
	}

	past := model.EventsPast
	rows, total, err := repo.List(ctx, model.EventFilter{When: &past}, "2024-09-10")
	if err != nil {
		t.Fatal(err)
	}
	if total != 1 || rows[0].Slug != "soiree-jazz" {
		t.Errorf("past = %d %v", total, rows)
	}

	upcoming := model.EventsUpcoming
	_, total, _ = repo.List(ctx, model.EventFilter{When: &upcoming}, "2024-09-10")
	if total != 2 {
		t.Errorf("upcoming total = %d, want 2", total)
	}

	if _, err := repo.FindBySlug(ctx, "nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing slug: %v", err)
	}
}

func TestSiteConfigUpsertAndReplace(t *testing.T) {
	ctx := context.Background()
	repo := NewSiteConfigRepository(openDB(t))

	if err := repo.UpsertMany(ctx, map[string]string{"text_color": "#000000", "hero_title": "Bienvenue"}); err != nil {
		t.Fatal(err)
	}
	if err := repo.UpsertMany(ctx, map[string]string{"text_color": "#111111"}); err != nil {
		t.Fatal(err)
	}
	all, err := repo.All(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if all["text_color"] != "#111111" || all["hero_title"] != "Bienvenue" || len(all) != 2 {
		t.Errorf("after upsert: %v", all)
	}

	if err := repo.Replace(ctx, map[string]string{"button_color": "#ff0000"}); err != nil {
		t.Fatal(err)
	}
	all, _ = repo.All(ctx)
	if len(all) != 1 || all["button_color"] != "#ff0000" {
		t.Errorf("after replace: %v", all)
	}
}

func TestFeatureAndProfile(t *testing.T) {
	ctx := context.Background()
	db := openDB(t)
	features := NewFeatureRepository(db)

	f, err := features.Get(ctx, constants.FEATURE_CUSTOMIZATION)
	if err != nil || f.Enabled {
		t.Fatalf("missing feature should read disabled: %v %v", f, err)
	}
	if f, err = features.Set(ctx, constants.FEATURE_CUSTOMIZATION, true); err != nil || !f.Enabled {
		t.Fatalf("Set: %v %v", f, err)
	}
	if f, _ = features.Set(ctx, constants.FEATURE_CUSTOMIZATION, false); f.Enabled {
		t.Error("Set(false) kept the switch on")
	}

	profiles := NewProfileRepository(db)
	p, err := profiles.FindByUser(ctx, 7)
	if err != nil || p != nil {
		t.Fatalf("FindByUser on empty table: %v %v", p, err)
	}
	if err := profiles.Upsert(ctx, &model.Profile{UserID: 7, FullName: "A"}); err != nil {
		t.Fatal(err)
	}
	if err := profiles.Upsert(ctx, &model.Profile{UserID: 7, FullName: "B", FacebookURL: "x"}); err != nil {
		t.Fatal(err)
	}
	p, _ = profiles.FindByUser(ctx, 7)
	if p == nil || p.FullName != "B" || p.FacebookURL != "x" {
		t.Errorf("profile after upsert: %+v", p)
	}
}
