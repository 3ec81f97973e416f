package handler

import (
	"net/http/httptest"
	"strings"
	"testing"

	"event_proposal/core/common"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newDraftTestApp dựng app với các route draft giống router thật
func newDraftTestApp(t *testing.T) *fiber.App {
	t.Helper()

	h, err := NewDraftHandler()
	require.NoError(t, err, "NewDraftHandler phải thành công khi registry đã có collection")

	app := fiber.New()
	app.Post("/proposals/drafts", h.CreateDraft)
	app.Get("/proposals/drafts/:id", h.GetDraft)
	app.Post("/proposals/drafts/:id/submit", h.SubmitDraft)
	app.Patch("/api/proposals/drafts/:id/:section", h.PatchSection)
	return app
}

func TestGetDraft_InvalidObjectID(t *testing.T) {
	app := newDraftTestApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/proposals/drafts/not-a-hex-id", nil))
	require.NoError(t, err)
	assert.Equal(t, common.StatusBadRequest, resp.StatusCode)

	envelope := decodeJSONBody(t, resp.Body)
	assert.Equal(t, "error", envelope["status"])
	assert.Equal(t, common.ErrCodeValidationFormat.Code, envelope["code"])
	assert.Contains(t, envelope["message"], "không đúng định dạng MongoDB ObjectID")
}

func TestSubmitDraft_InvalidObjectID(t *testing.T) {
	app := newDraftTestApp(t)

	resp, err := app.Test(httptest.NewRequest("POST", "/proposals/drafts/123/submit", nil))
	require.NoError(t, err)
	assert.Equal(t, common.StatusBadRequest, resp.StatusCode)

	envelope := decodeJSONBody(t, resp.Body)
	assert.Equal(t, common.ErrCodeValidationFormat.Code, envelope["code"])
}

func TestPatchSection_InvalidObjectID(t *testing.T) {
	app := newDraftTestApp(t)

	req := httptest.NewRequest("PATCH", "/api/proposals/drafts/xyz/eventDetails", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, common.StatusBadRequest, resp.StatusCode)

	envelope := decodeJSONBody(t, resp.Body)
	assert.Contains(t, envelope["message"], "không đúng định dạng MongoDB ObjectID")
}

func TestPatchSection_SectionNameWithDollarSign(t *testing.T) {
	app := newDraftTestApp(t)

	// Tên section chứa '$' có thể trở thành toán tử Mongo nếu lọt xuống tầng dưới
	req := httptest.NewRequest("PATCH", "/api/proposals/drafts/65f0c10000000000000000ab/$set", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, common.StatusBadRequest, resp.StatusCode)

	envelope := decodeJSONBody(t, resp.Body)
	assert.Equal(t, common.ErrCodeValidationInput.Code, envelope["code"])
	assert.Contains(t, envelope["message"], "Tham số URL không hợp lệ")
}

func TestPatchSection_SectionNameWithDot(t *testing.T) {
	app := newDraftTestApp(t)

	req := httptest.NewRequest("PATCH", "/api/proposals/drafts/65f0c10000000000000000ab/event.details", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, common.StatusBadRequest, resp.StatusCode, "tên section chứa '.' phải bị chặn vì đụng dot-notation của Mongo")
}

func TestPatchSection_MalformedJSONBody(t *testing.T) {
	app := newDraftTestApp(t)

	req := httptest.NewRequest("PATCH", "/api/proposals/drafts/65f0c10000000000000000ab/eventDetails", strings.NewReader(`{"title": `))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, common.StatusBadRequest, resp.StatusCode)

	envelope := decodeJSONBody(t, resp.Body)
	assert.Equal(t, common.ErrCodeValidationFormat.Code, envelope["code"])
	assert.Contains(t, envelope["message"], "Payload section phải là JSON hợp lệ")
}
