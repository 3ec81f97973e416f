package middleware

import (
	"errors"

	"event_proposal/core/common"

	"github.com/gofiber/fiber/v3"
)

// JSONResponse ghi JSON response kèm charset=utf-8.
// Nội dung tiếng Việt (tên sự kiện, lý do từ chối...) cần charset rõ ràng
// để client hiển thị đúng.
func JSONResponse(c fiber.Ctx, statusCode int, data interface{}) error {
	c.Set("Content-Type", "application/json; charset=utf-8")
	return c.Status(statusCode).JSON(data)
}

// HandleErrorResponse ghi error envelope cho các tầng không import được handler
// (app-level error handler, middleware). Envelope giữ cùng format với handler.
func HandleErrorResponse(c fiber.Ctx, err error) {
	var customErr *common.Error
	if errors.As(err, &customErr) {
		JSONResponse(c, customErr.StatusCode, fiber.Map{
			"code":    customErr.Code.Code,
			"message": customErr.Message,
			"details": customErr.Details,
			"status":  "error",
		})
		return
	}
	// Lỗi không định danh: trả 500
	JSONResponse(c, common.StatusInternalServerError, fiber.Map{
		"code":    common.ErrCodeDatabase.Code,
		"message": err.Error(),
		"status":  "error",
	})
}
