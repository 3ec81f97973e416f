package handler

import (
	"net/http/httptest"
	"strings"
	"testing"

	"event_proposal/core/api/middleware"
	"event_proposal/core/common"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newProposalTestApp dựng app với các route proposal giống router thật,
// kèm actor middleware để Review đọc được header X-Actor-Id
func newProposalTestApp(t *testing.T) *fiber.App {
	t.Helper()

	h, err := NewProposalHandler()
	require.NoError(t, err)

	app := fiber.New()
	app.Post("/proposals", middleware.ActorMiddleware(), h.InsertOne)
	app.Post("/proposals/:id/review", middleware.ActorMiddleware(), h.Review)
	app.Post("/proposals/:id/resubmit", middleware.ActorMiddleware(), h.Resubmit)
	app.Put("/proposals/:id/compliance-documents", middleware.ActorMiddleware(), h.SetComplianceDocument)
	return app
}

func postJSON(t *testing.T, app *fiber.App, method, url, body string) map[string]interface{} {
	t.Helper()
	req := httptest.NewRequest(method, url, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, common.StatusBadRequest, resp.StatusCode, "request %s %s phải bị chặn ở tầng validate", method, url)
	return decodeJSONBody(t, resp.Body)
}

func TestProposalInsertOne_MissingRequiredFields(t *testing.T) {
	app := newProposalTestApp(t)

	envelope := postJSON(t, app, "POST", "/proposals", `{}`)
	assert.Equal(t, common.ErrCodeValidationFormat.Code, envelope["code"])
	assert.Contains(t, envelope["message"], "không khớp với cấu trúc yêu cầu")
}

func TestProposalInsertOne_UnknownCategory(t *testing.T) {
	app := newProposalTestApp(t)

	envelope := postJSON(t, app, "POST", "/proposals", `{"title":"Hội thao sinh viên","category":"gardening"}`)
	assert.Equal(t, "error", envelope["status"])
}

func TestProposalInsertOne_TitleWithScriptTag(t *testing.T) {
	app := newProposalTestApp(t)

	envelope := postJSON(t, app, "POST", "/proposals", `{"title":"<script>alert(1)</script>","category":"sports"}`)
	assert.Equal(t, "error", envelope["status"], "title chứa script tag phải bị validator no_xss chặn")
}

func TestProposalInsertOne_MalformedDraftID(t *testing.T) {
	app := newProposalTestApp(t)

	envelope := postJSON(t, app, "POST", "/proposals", `{"title":"Hội thao sinh viên","category":"sports","draftId":"not-hex"}`)
	assert.Equal(t, common.ErrCodeValidationFormat.Code, envelope["code"])
	assert.Contains(t, envelope["message"], "DraftID 'not-hex' không đúng định dạng MongoDB ObjectID")
}

func TestProposalReview_InvalidObjectID(t *testing.T) {
	app := newProposalTestApp(t)

	envelope := postJSON(t, app, "POST", "/proposals/abc/review", `{"decision":"approve"}`)
	assert.Contains(t, envelope["message"], "không đúng định dạng MongoDB ObjectID")
}

func TestProposalReview_UnknownDecision(t *testing.T) {
	app := newProposalTestApp(t)

	envelope := postJSON(t, app, "POST", "/proposals/65f0c10000000000000000ab/review", `{"decision":"maybe"}`)
	assert.Equal(t, common.ErrCodeValidationFormat.Code, envelope["code"])
}

func TestProposalReview_MissingReviewer(t *testing.T) {
	app := newProposalTestApp(t)

	// Không có reviewer trong body, không có header X-Actor-Id
	envelope := postJSON(t, app, "POST", "/proposals/65f0c10000000000000000ab/review", `{"decision":"approve"}`)
	assert.Equal(t, common.ErrCodeValidationInput.Code, envelope["code"])
	assert.Contains(t, envelope["message"], "Không xác định được người review")
}

func TestProposalResubmit_InvalidObjectID(t *testing.T) {
	app := newProposalTestApp(t)

	req := httptest.NewRequest("POST", "/proposals/!!!/resubmit", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, common.StatusBadRequest, resp.StatusCode)
}

func TestSetComplianceDocument_MissingName(t *testing.T) {
	app := newProposalTestApp(t)

	envelope := postJSON(t, app, "PUT", "/proposals/65f0c10000000000000000ab/compliance-documents", `{"submitted":true}`)
	assert.Equal(t, common.ErrCodeValidationFormat.Code, envelope["code"])
}
