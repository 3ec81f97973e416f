package middleware

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v3"
)

func TestActorMiddleware_SetsLocalsFromHeader(t *testing.T) {
	app := fiber.New()

	var captured interface{}
	app.Use(ActorMiddleware())
	app.Get("/x", func(c fiber.Ctx) error {
		captured = c.Locals("actor_id")
		return c.SendStatus(fiber.StatusOK)
	})

	req := httptest.NewRequest("GET", "/x", nil)
	req.Header.Set("X-Actor-Id", "nguyen.van.a")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test lỗi: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d, muốn 200", resp.StatusCode)
	}

	actorID, ok := captured.(string)
	if !ok || actorID != "nguyen.van.a" {
		t.Errorf("locals actor_id = %v, muốn %q", captured, "nguyen.van.a")
	}
}

func TestActorMiddleware_NoHeader_PassesThrough(t *testing.T) {
	app := fiber.New()

	var captured interface{}
	app.Use(ActorMiddleware())
	app.Get("/x", func(c fiber.Ctx) error {
		captured = c.Locals("actor_id")
		return c.SendStatus(fiber.StatusOK)
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/x", nil))
	if err != nil {
		t.Fatalf("app.Test lỗi: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("request không có header phải vẫn đi qua, status = %d", resp.StatusCode)
	}
	if captured != nil {
		t.Errorf("không có header thì locals actor_id phải nil, có %v", captured)
	}
}
