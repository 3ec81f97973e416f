package middleware

import (
	"github.com/gofiber/fiber/v3"
)

// ActorMiddleware đọc định danh người thao tác từ header X-Actor-Id
// và lưu vào request locals cho handler phía sau dùng.
// Định danh là ambient: không có header vẫn cho qua, handler nào
// bắt buộc actor sẽ tự kiểm tra (ví dụ action review hồ sơ).
func ActorMiddleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		if actorID := c.Get("X-Actor-Id"); actorID != "" {
			c.Locals("actor_id", actorID)
		}
		return c.Next()
	}
}
