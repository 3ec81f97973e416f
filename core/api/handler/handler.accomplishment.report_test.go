package handler

import (
	"testing"

	"event_proposal/core/common"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newReportTestApp(t *testing.T) *fiber.App {
	t.Helper()

	h, err := NewReportHandler()
	require.NoError(t, err)

	app := fiber.New()
	app.Post("/reports", h.InsertOne)
	app.Put("/reports/:id/report-data", h.UpdateReportData)
	app.Post("/reports/:id/submit", h.SubmitReport)
	app.Post("/reports/:id/review", h.ReviewReport)
	return app
}

func TestReportInsertOne_MissingProposalID(t *testing.T) {
	app := newReportTestApp(t)

	envelope := postJSON(t, app, "POST", "/reports", `{}`)
	assert.Equal(t, common.ErrCodeValidationFormat.Code, envelope["code"])
	assert.Contains(t, envelope["message"], "không khớp với cấu trúc yêu cầu")
}

func TestReportInsertOne_MalformedProposalID(t *testing.T) {
	app := newReportTestApp(t)

	envelope := postJSON(t, app, "POST", "/reports", `{"proposalId":"banana"}`)
	assert.Contains(t, envelope["message"], "ProposalID 'banana' không đúng định dạng MongoDB ObjectID")
}

func TestUpdateReportData_InvalidObjectID(t *testing.T) {
	app := newReportTestApp(t)

	envelope := postJSON(t, app, "PUT", "/reports/zzz/report-data", `{}`)
	assert.Contains(t, envelope["message"], "không đúng định dạng MongoDB ObjectID")
}

func TestReviewReport_UnknownStatus(t *testing.T) {
	app := newReportTestApp(t)

	// Chỉ nhận approved / denied
	envelope := postJSON(t, app, "POST", "/reports/65f0c10000000000000000ab/review", `{"status":"rejected"}`)
	assert.Equal(t, common.ErrCodeValidationFormat.Code, envelope["code"])
}
