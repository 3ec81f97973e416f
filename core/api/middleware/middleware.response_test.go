package middleware

import (
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"testing"

	"event_proposal/core/common"

	"github.com/gofiber/fiber/v3"
)

func TestJSONResponse_SetsCharsetUTF8(t *testing.T) {
	app := fiber.New()
	app.Get("/x", func(c fiber.Ctx) error {
		return JSONResponse(c, common.StatusOK, fiber.Map{"message": "Xin chào"})
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/x", nil))
	if err != nil {
		t.Fatalf("app.Test lỗi: %v", err)
	}
	if resp.StatusCode != common.StatusOK {
		t.Errorf("status = %d, muốn %d", resp.StatusCode, common.StatusOK)
	}
	if got := resp.Header.Get("Content-Type"); got != "application/json; charset=utf-8" {
		t.Errorf("Content-Type = %q, muốn application/json; charset=utf-8", got)
	}
}

func TestHandleErrorResponse_CustomError(t *testing.T) {
	app := fiber.New()
	app.Get("/x", func(c fiber.Ctx) error {
		HandleErrorResponse(c, common.NewError(common.ErrCodeValidationInput, "Dữ liệu không hợp lệ", common.StatusBadRequest, nil))
		return nil
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/x", nil))
	if err != nil {
		t.Fatalf("app.Test lỗi: %v", err)
	}
	if resp.StatusCode != common.StatusBadRequest {
		t.Errorf("status = %d, muốn %d", resp.StatusCode, common.StatusBadRequest)
	}

	body, _ := io.ReadAll(resp.Body)
	var envelope map[string]interface{}
	if err := json.Unmarshal(body, &envelope); err != nil {
		t.Fatalf("body không phải JSON: %v", err)
	}
	if envelope["status"] != "error" {
		t.Errorf("envelope status = %v, muốn error", envelope["status"])
	}
	if envelope["code"] != common.ErrCodeValidationInput.Code {
		t.Errorf("envelope code = %v, muốn %s", envelope["code"], common.ErrCodeValidationInput.Code)
	}
	if envelope["message"] != "Dữ liệu không hợp lệ" {
		t.Errorf("envelope message = %v", envelope["message"])
	}
}

func TestHandleErrorResponse_WrappedCustomError(t *testing.T) {
	// errors.As phải tìm được *common.Error bên trong chuỗi wrap
	app := fiber.New()
	app.Get("/x", func(c fiber.Ctx) error {
		HandleErrorResponse(c, errors.Join(errors.New("context"), common.ErrNotFound))
		return nil
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/x", nil))
	if err != nil {
		t.Fatalf("app.Test lỗi: %v", err)
	}
	if resp.StatusCode != common.StatusNotFound {
		t.Errorf("status = %d, muốn %d (lấy từ *common.Error bên trong)", resp.StatusCode, common.StatusNotFound)
	}
}

func TestHandleErrorResponse_GenericError_Returns500(t *testing.T) {
	app := fiber.New()
	app.Get("/x", func(c fiber.Ctx) error {
		HandleErrorResponse(c, errors.New("selection timeout"))
		return nil
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/x", nil))
	if err != nil {
		t.Fatalf("app.Test lỗi: %v", err)
	}
	if resp.StatusCode != common.StatusInternalServerError {
		t.Errorf("lỗi thường phải thành 500, status = %d", resp.StatusCode)
	}

	body, _ := io.ReadAll(resp.Body)
	var envelope map[string]interface{}
	if err := json.Unmarshal(body, &envelope); err != nil {
		t.Fatalf("body không phải JSON: %v", err)
	}
	if envelope["code"] != common.ErrCodeDatabase.Code {
		t.Errorf("envelope code = %v, muốn %s", envelope["code"], common.ErrCodeDatabase.Code)
	}
}
