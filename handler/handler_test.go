package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"image"
	"image/png"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"restaurant_site/config"
	"restaurant_site/constants"
	"restaurant_site/database"
	"restaurant_site/handler"
	"restaurant_site/model"
	"restaurant_site/realtime"
	"restaurant_site/router"
	"restaurant_site/storage"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type memBackend struct {
	puts    []string
	deletes []string
}

func (m *memBackend) Put(_ context.Context, bucket, publicID string, r io.Reader) (storage.Object, error) {
	if _, err := io.ReadAll(r); err != nil {
		return storage.Object{}, err
	}
	m.puts = append(m.puts, bucket+"/"+publicID)
	return storage.Object{URL: "https://cdn.test/" + bucket + "/" + publicID + ".jpg", PublicID: bucket + "/" + publicID}, nil
}

func (m *memBackend) Delete(_ context.Context, publicID string) error {
	m.deletes = append(m.deletes, publicID)
	return nil
}

type env struct {
	app     *fiber.App
	h       *handler.Handler
	feed    *realtime.MemoryFeed
	backend *memBackend
	admin   string
	db      *gorm.DB
}

func setup(t *testing.T) *env {
	t.Helper()
	db, err := database.OpenMemory()
	if err != nil {
		t.Fatal(err)
	}
	if err := database.SeedData(db, "admin", "changeme123"); err != nil {
		t.Fatal(err)
	}
	loc, _ := time.LoadLocation("Europe/Paris")
	if loc == nil {
		loc = time.UTC
	}
	cfg := config.Settings{
		Env:              "test",
		Origins:          "http://localhost:5173",
		JWTSecret:        "test-secret",
		Timezone:         loc,
		UploadMaxWidth:   800,
		BookingSerialize: true,
		BookingRate:      1000,
		BookingBurst:     1000,
	}
	feed := realtime.NewMemoryFeed()
	backend := &memBackend{}
	h := handler.New(handler.Deps{
		DB:      db,
		Config:  cfg,
		Storage: backend,
		Feed:    feed,
		Now: func() time.Time {
			return time.Date(2026, 10, 19, 10, 0, 0, 0, loc)
		},
	})
	token, err := h.Tokens().GenerateAccessToken(model.TokenClaim{AccountId: 1, Username: "admin", Role: constants.ROLE_ADMIN})
	if err != nil {
		t.Fatal(err)
	}
	return &env{app: router.NewApp(h, cfg), h: h, feed: feed, backend: backend, admin: token, db: db}
}

type envelope struct {
	Status  string            `json:"status"`
	Message string            `json:"message"`
	Data    json.RawMessage   `json:"data"`
	Fields  map[string]string `json:"fields"`
}

func (e *env) do(t *testing.T, method, path string, body any, auth bool) (*http.Response, envelope) {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatal(err)
		}
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if auth {
		req.Header.Set("Authorization", "Bearer "+e.admin)
	}
	return e.send(t, req)
}

func (e *env) send(t *testing.T, req *http.Request) (*http.Response, envelope) {
	t.Helper()
	resp, err := e.app.Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	var out envelope
	raw, _ := io.ReadAll(resp.Body)
	_ = json.Unmarshal(raw, &out)
	return resp, out
}

func booking(people int) map[string]any {
	return map[string]any{
		"date":   "2026-10-24",
		"time":   "19:00",
		"name":   "Camille Martin",
		"email":  "camille@example.com",
		"phone":  "+33612345678",
		"people": people,
	}
}

func TestReservationCapacityOverHTTP(t *testing.T) {
	e := setup(t)

	steps := []struct {
		people int
		want   int
	}{
		{15, fiber.StatusCreated},
		{6, fiber.StatusConflict},
		{5, fiber.StatusCreated},
		{1, fiber.StatusConflict},
	}
	for _, s := range steps {
		resp, out := e.do(t, fiber.MethodPost, "/api/v1/reservations", booking(s.people), false)
		if resp.StatusCode != s.want {
			t.Fatalf("people=%d: status %d, want %d (%s)", s.people, resp.StatusCode, s.want, out.Message)
		}
		if s.want == fiber.StatusConflict && out.Message != constants.BOOKING_NO_ROOM {
			t.Errorf("people=%d: message %q", s.people, out.Message)
		}
	}

	resp, out := e.do(t, fiber.MethodGet, "/api/v1/reservations/availability?date=2026-10-24", nil, false)
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("availability status %d", resp.StatusCode)
	}
	var day struct {
		Slots []model.SlotAvailability `json:"slots"`
	}
	if err := json.Unmarshal(out.Data, &day); err != nil {
		t.Fatal(err)
	}
	for _, s := range day.Slots {
		if s.Time == "19:00" && (s.Booked != 20 || s.Remaining != 0) {
			t.Errorf("19:00 = %+v", s)
		}
		if s.Time == "19:30" && s.Remaining != constants.RoomCapacity {
			t.Errorf("19:30 = %+v", s)
		}
	}

	resp, out = e.do(t, fiber.MethodPost, "/api/v1/reservations/sync", nil, true)
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("sync status %d", resp.StatusCode)
	}
	var synced struct {
		Confirmed int `json:"confirmed"`
	}
	_ = json.Unmarshal(out.Data, &synced)
	if synced.Confirmed != 2 {
		t.Errorf("confirmed %d, want 2", synced.Confirmed)
	}
}

func TestReservationValidation(t *testing.T) {
	e := setup(t)

	bad := booking(0)
	bad["date"] = "2026-10-01"
	bad["time"] = "18:15"
	resp, out := e.do(t, fiber.MethodPost, "/api/v1/reservations", bad, false)
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("status %d", resp.StatusCode)
	}
	for _, f := range []string{"date", "time", "people"} {
		if _, ok := out.Fields[f]; !ok {
			t.Errorf("missing field error for %s: %v", f, out.Fields)
		}
	}
	if out.Fields["date"] != "past" {
		t.Errorf("date error %q, want past", out.Fields["date"])
	}
}

func TestAdminRoutesNeedToken(t *testing.T) {
	e := setup(t)
	resp, _ := e.do(t, fiber.MethodGet, "/api/v1/reservations", nil, false)
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("status %d", resp.StatusCode)
	}
	resp, _ = e.do(t, fiber.MethodGet, "/api/v1/reservations", nil, true)
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status %d", resp.StatusCode)
	}
}

func TestLogin(t *testing.T) {
	e := setup(t)

	resp, _ := e.do(t, fiber.MethodPost, "/api/v1/auth/login", map[string]string{"username": "admin", "password": "wrong"}, false)
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("wrong password: status %d", resp.StatusCode)
	}

	resp, _ = e.do(t, fiber.MethodPost, "/api/v1/auth/login", map[string]string{"username": "admin", "password": "changeme123"}, false)
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("login: status %d", resp.StatusCode)
	}
	var access string
	for _, c := range resp.Cookies() {
		if c.Name == "access_token" {
			access = c.Value
		}
	}
	if access == "" {
		t.Fatal("no access_token cookie")
	}

	req := httptest.NewRequest(fiber.MethodGet, "/api/v1/account/me", nil)
	req.AddCookie(&http.Cookie{Name: "access_token", Value: access})
	resp, out := e.send(t, req)
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("me: status %d", resp.StatusCode)
	}
	var acc model.Account
	_ = json.Unmarshal(out.Data, &acc)
	if acc.Username != "admin" {
		t.Errorf("me = %+v", acc)
	}
}

func TestThemeUpdateNotifies(t *testing.T) {
	e := setup(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	notes, err := e.feed.Subscribe(ctx, constants.CHANNEL_SITE_CONFIG)
	if err != nil {
		t.Fatal(err)
	}

	patch := map[string]any{
		"colors":      map[string]string{"buttonColor": "#112233"},
		"textContent": map[string]any{"heroTitle": "Chez Nous"},
	}
	resp, out := e.do(t, fiber.MethodPut, "/api/v1/site/theme", patch, true)
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("update status %d: %s", resp.StatusCode, out.Message)
	}

	select {
	case n := <-notes:
		if n.Channel != constants.CHANNEL_SITE_CONFIG {
			t.Errorf("channel %q", n.Channel)
		}
	case <-time.After(time.Second):
		t.Fatal("no change notification")
	}

	e.h.Theme.Invalidate()
	resp, out = e.do(t, fiber.MethodGet, "/api/v1/site/theme", nil, false)
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("get status %d", resp.StatusCode)
	}
	var snap struct {
		Colors      map[string]string `json:"colors"`
		TextContent struct {
			HeroTitle string `json:"heroTitle"`
		} `json:"textContent"`
	}
	if err := json.Unmarshal(out.Data, &snap); err != nil {
		t.Fatal(err)
	}
	if snap.Colors["buttonColor"] != "#112233" || snap.TextContent.HeroTitle != "Chez Nous" {
		t.Errorf("snapshot = %+v", snap)
	}
	if snap.Colors["textColor"] != "#2d2a26" {
		t.Errorf("untouched color changed: %q", snap.Colors["textColor"])
	}

	resp, _ = e.do(t, fiber.MethodPut, "/api/v1/site/theme", map[string]any{"colors": map[string]string{"nope": "#000000"}}, true)
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Errorf("unknown field: status %d", resp.StatusCode)
	}

	req := httptest.NewRequest(fiber.MethodGet, "/api/v1/site/theme.css", nil)
	resp, err = e.app.Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}
	css, _ := io.ReadAll(resp.Body)
	if !bytes.Contains(css, []byte("--button-color: #112233;")) {
		t.Errorf("css = %s", css)
	}
}

func TestEditableGatedByFeature(t *testing.T) {
	e := setup(t)
	el := map[string]string{"page_path": "/", "element_id": "hero-title", "content": "Salut"}

	resp, _ := e.do(t, fiber.MethodPut, "/api/v1/site/editable", el, true)
	if resp.StatusCode != fiber.StatusForbidden {
		t.Fatalf("disabled: status %d", resp.StatusCode)
	}
	resp, _ = e.do(t, fiber.MethodPut, "/api/v1/site/features/"+constants.FEATURE_CUSTOMIZATION, map[string]bool{"enabled": true}, true)
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("enable: status %d", resp.StatusCode)
	}
	resp, _ = e.do(t, fiber.MethodPut, "/api/v1/site/editable", el, true)
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("enabled: status %d", resp.StatusCode)
	}
	resp, out := e.do(t, fiber.MethodGet, "/api/v1/site/editable?page=/", nil, false)
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("list: status %d", resp.StatusCode)
	}
	var rows []model.EditableElement
	_ = json.Unmarshal(out.Data, &rows)
	if len(rows) != 1 || rows[0].Content != "Salut" {
		t.Errorf("rows = %+v", rows)
	}
}

func TestMenuGrouped(t *testing.T) {
	e := setup(t)
	for _, it := range []map[string]any{
		{"categorie": "Desserts", "nom": "Tarte Tatin", "prix": 8.5},
		{"categorie": "Entrées", "nom": "Velouté", "prix": 7, "is_vegan": true},
	} {
		resp, out := e.do(t, fiber.MethodPost, "/api/v1/menu", it, true)
		if resp.StatusCode != fiber.StatusCreated {
			t.Fatalf("create %v: status %d %v", it["nom"], resp.StatusCode, out.Fields)
		}
	}
	resp, _ := e.do(t, fiber.MethodPost, "/api/v1/menu", map[string]any{"categorie": "Pizzas", "nom": "x"}, true)
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Errorf("unknown category: status %d", resp.StatusCode)
	}

	_, out := e.do(t, fiber.MethodGet, "/api/v1/menu", nil, false)
	var sections []model.MenuSection
	if err := json.Unmarshal(out.Data, &sections); err != nil {
		t.Fatal(err)
	}
	if len(sections) != 2 || sections[0].Categorie != "Entrées" || sections[1].Categorie != "Desserts" {
		t.Errorf("sections = %+v", sections)
	}
}

func TestUploadToBucket(t *testing.T) {
	e := setup(t)

	var img bytes.Buffer
	if err := png.Encode(&img, image.NewRGBA(image.Rect(0, 0, 40, 20))); err != nil {
		t.Fatal(err)
	}
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, _ := w.CreateFormFile("image", "Salle du fond.png")
	_, _ = part.Write(img.Bytes())
	_ = w.Close()

	req := httptest.NewRequest(fiber.MethodPost, "/api/v1/uploads/"+constants.BUCKET_HOMEPAGE_IMAGES, &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+e.admin)
	resp, out := e.send(t, req)
	if resp.StatusCode != fiber.StatusCreated {
		t.Fatalf("status %d: %s", resp.StatusCode, out.Message)
	}
	var obj storage.Object
	_ = json.Unmarshal(out.Data, &obj)
	if obj.URL == "" || len(e.backend.puts) != 1 {
		t.Errorf("obj = %+v puts = %v", obj, e.backend.puts)
	}

	resp, _ = e.do(t, fiber.MethodPost, "/api/v1/uploads/avatars", nil, true)
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Errorf("unknown bucket: status %d", resp.StatusCode)
	}
}

func TestProfileRoundTrip(t *testing.T) {
	e := setup(t)
	resp, out := e.do(t, fiber.MethodPut, "/api/v1/account/profile", map[string]string{
		"fullName":     "Jeanne Dupont",
		"email":        "jeanne@example.com",
		"instagramUrl": "https://instagram.com/chez.nous",
	}, true)
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("save: status %d: %s", resp.StatusCode, out.Message)
	}

	_, out = e.do(t, fiber.MethodGet, "/api/v1/account/profile", nil, true)
	var data map[string]string
	_ = json.Unmarshal(out.Data, &data)
	if data["fullName"] != "Jeanne Dupont" || data["instagramUrl"] != "https://instagram.com/chez.nous" || data["email"] != "jeanne@example.com" {
		t.Errorf("profile = %v", data)
	}
}

func TestThemePartialWriteStillNotifies(t *testing.T) {
	e := setup(t)
	err := e.db.Callback().Create().Before("gorm:create").Register("test:reject_images", func(tx *gorm.DB) {
		rows, ok := tx.Statement.Dest.(*[]model.SiteConfig)
		if !ok {
			return
		}
		for _, r := range *rows {
			if r.Key == "home_image_url" {
				_ = tx.AddError(errors.New("disk full"))
				return
			}
		}
	})
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	notes, err := e.feed.Subscribe(ctx, constants.CHANNEL_SITE_CONFIG)
	if err != nil {
		t.Fatal(err)
	}

	patch := map[string]any{
		"colors": map[string]string{"buttonColor": "#112233"},
		"images": map[string]string{"homeImageUrl": "https://cdn.test/home.jpg"},
	}
	resp, _ := e.do(t, fiber.MethodPut, "/api/v1/site/theme", patch, true)
	if resp.StatusCode != fiber.StatusInternalServerError {
		t.Fatalf("status %d, want 500", resp.StatusCode)
	}
	select {
	case n := <-notes:
		if n.Channel != constants.CHANNEL_SITE_CONFIG {
			t.Errorf("channel %q", n.Channel)
		}
	case <-time.After(time.Second):
		t.Fatal("colors were stored but nothing was published")
	}

	var row model.SiteConfig
	if err := e.db.Where("key = ?", "button_color").First(&row).Error; err != nil || row.Value != "#112233" {
		t.Errorf("button_color row = %+v, %v", row, err)
	}
}

func TestEventsRejectUnknownWhen(t *testing.T) {
	e := setup(t)
	resp, out := e.do(t, fiber.MethodGet, "/api/v1/events?when=tomorrow", nil, false)
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("status %d, want 400", resp.StatusCode)
	}
	if out.Fields["when"] != "oneof" {
		t.Errorf("fields = %v", out.Fields)
	}
	for _, when := range []string{"", "past", "upcoming", "all"} {
		resp, _ := e.do(t, fiber.MethodGet, "/api/v1/events?when="+when, nil, false)
		if resp.StatusCode != fiber.StatusOK {
			t.Errorf("when=%q: status %d", when, resp.StatusCode)
		}
	}
}
