package validate

import (
	"net/http/httptest"
	"strings"
	"testing"

	"restaurant_site/model"

	"github.com/gofiber/fiber/v2"
)

func TestFieldsUsesJSONNamesAndCustomTags(t *testing.T) {
	in := model.CreateReservationInput{
		Date:   "2026-13-01",
		Time:   "18:15",
		Name:   "Léa",
		Email:  "lea@example.com",
		Phone:  "0612345678",
		People: 21,
	}
	got := Fields(in)
	want := map[string]string{"date": "datetime", "time": "slot", "phone": "e164", "people": "max"}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("%s: got %q, want %q (all: %v)", k, got[k], v, got)
		}
	}
	if _, ok := got["email"]; ok {
		t.Errorf("email should be valid: %v", got)
	}

	item := model.CreateMenuItemInput{Categorie: "Plats", Nom: "Blanquette"}
	if f := Fields(item); len(f) != 0 {
		t.Errorf("valid menu item rejected: %v", f)
	}
	item.Categorie = "Pizzas"
	if f := Fields(item); f["categorie"] != "category" {
		t.Errorf("category: %v", f)
	}
}

func TestGetByIdAndBucket(t *testing.T) {
	app := fiber.New()
	app.Get("/items/:id", GetById("id"), func(c *fiber.Ctx) error {
		return c.JSON(c.Locals("inputId"))
	})
	app.Post("/uploads/:bucket", Bucket("bucket"), func(c *fiber.Ctx) error {
		return c.SendString(c.Locals("bucket").(string))
	})

	cases := []struct {
		method, path string
		want         int
	}{
		{fiber.MethodGet, "/items/12", fiber.StatusOK},
		{fiber.MethodGet, "/items/abc", fiber.StatusBadRequest},
		{fiber.MethodGet, "/items/0", fiber.StatusBadRequest},
		{fiber.MethodPost, "/uploads/site_images", fiber.StatusOK},
		{fiber.MethodPost, "/uploads/avatars", fiber.StatusBadRequest},
	}
	for _, tc := range cases {
		resp, err := app.Test(httptest.NewRequest(tc.method, tc.path, nil), -1)
		if err != nil {
			t.Fatal(err)
		}
		if resp.StatusCode != tc.want {
			t.Errorf("%s %s: status %d, want %d", tc.method, tc.path, resp.StatusCode, tc.want)
		}
	}
}

func TestUpdateThemeRejectsEmptyPatch(t *testing.T) {
	app := fiber.New()
	app.Put("/theme", UpdateTheme(), func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusNoContent) })

	for body, want := range map[string]int{
		`{}`:                                 fiber.StatusBadRequest,
		`{"colors":{"textColor":"red"}}`:     fiber.StatusBadRequest,
		`{"colors":{"textColor":"#aabbcc"}}`: fiber.StatusNoContent,
		`{"textContent":{"heroTitle":"x"}}`:  fiber.StatusNoContent,
	} {
		req := httptest.NewRequest(fiber.MethodPut, "/theme", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req, -1)
		if err != nil {
			t.Fatal(err)
		}
		if resp.StatusCode != want {
			t.Errorf("%s: status %d, want %d", body, resp.StatusCode, want)
		}
	}
}
