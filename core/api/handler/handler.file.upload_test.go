package handler

import (
	"net/http/httptest"
	"testing"

	"event_proposal/core/common"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFileTestApp(t *testing.T) *fiber.App {
	t.Helper()

	h, err := NewFileHandler()
	require.NoError(t, err)

	app := fiber.New()
	app.Post("/files/:proposalId/upload", h.UploadFile)
	app.Get("/files/:proposalId/download", h.DownloadFile)
	app.Get("/files/:proposalId/audit", h.GetAudit)
	return app
}

func TestUploadFile_InvalidProposalID(t *testing.T) {
	app := newFileTestApp(t)

	resp, err := app.Test(httptest.NewRequest("POST", "/files/not-an-oid/upload", nil))
	require.NoError(t, err)
	assert.Equal(t, common.StatusBadRequest, resp.StatusCode)

	envelope := decodeJSONBody(t, resp.Body)
	assert.Equal(t, common.ErrCodeValidationFormat.Code, envelope["code"])
	assert.Contains(t, envelope["message"], "ProposalID 'not-an-oid' không đúng định dạng MongoDB ObjectID")
}

func TestDownloadFile_MissingPathQuery(t *testing.T) {
	app := newFileTestApp(t)

	// path query bị kiểm tra trước khi truy vấn hồ sơ
	resp, err := app.Test(httptest.NewRequest("GET", "/files/65f0c10000000000000000ab/download", nil))
	require.NoError(t, err)
	assert.Equal(t, common.StatusBadRequest, resp.StatusCode)

	envelope := decodeJSONBody(t, resp.Body)
	assert.Equal(t, common.ErrCodeValidationInput.Code, envelope["code"])
	assert.Contains(t, envelope["message"], "Query param 'path'")
}

func TestGetAudit_InvalidProposalID(t *testing.T) {
	app := newFileTestApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/files/xx/audit", nil))
	require.NoError(t, err)
	assert.Equal(t, common.StatusBadRequest, resp.StatusCode)
}
