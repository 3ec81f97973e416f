// Package handler - Test các helper của BaseHandler và response envelope.
// Harness đăng ký các collection với client Mongo lazy (không có I/O cho tới khi
// thao tác DB thật chạy) để các constructor hoạt động; test chỉ đi các nhánh
// kết thúc trước khi chạm database.
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"event_proposal/core/common"
	"event_proposal/core/global"
	"event_proposal/core/logger"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func TestMain(m *testing.M) {
	// Logger ra stdout để test không tạo file log trong thư mục package
	logger.Init(&logger.LogConfig{
		Level:             "error",
		Format:            "text",
		Output:            "stdout",
		LogPath:           filepath.Join(os.TempDir(), "event_proposal_test_logs"),
		AppFile:           "app.log",
		AuditFile:         "audit.log",
		ErrorFile:         "error.log",
		FilterModules:     "*",
		FilterCollections: "*",
		FilterLogTypes:    "*",
	})

	global.MongoDB_ColNames.EventDrafts = "event_drafts"
	global.MongoDB_ColNames.EventProposals = "event_proposals"
	global.MongoDB_ColNames.Organizations = "auth_organizations"
	global.MongoDB_ColNames.AccomplishmentReports = "event_accomplishment_reports"
	global.MongoDB_ColNames.FileUploadAudits = "event_file_audits"
	global.InitValidator()

	// Client lazy: driver không dial cho tới khi có thao tác đầu tiên.
	// Timeout ngắn để thao tác DB vô tình chạy trong test sẽ fail nhanh thay vì treo.
	client, err := mongo.Connect(context.Background(), options.Client().
		ApplyURI("mongodb://127.0.0.1:27017").
		SetServerSelectionTimeout(100*time.Millisecond).
		SetConnectTimeout(100*time.Millisecond))
	if err != nil {
		panic(err)
	}

	db := client.Database("event_proposal_test")
	colNames := []string{
		global.MongoDB_ColNames.EventDrafts,
		global.MongoDB_ColNames.EventProposals,
		global.MongoDB_ColNames.Organizations,
		global.MongoDB_ColNames.AccomplishmentReports,
		global.MongoDB_ColNames.FileUploadAudits,
	}
	for _, name := range colNames {
		if _, err := global.RegistryCollections.Register(name, db.Collection(name)); err != nil {
			panic(err)
		}
	}

	os.Exit(m.Run())
}

// decodeJSONBody đọc toàn bộ response body thành map
func decodeJSONBody(t *testing.T, body io.Reader) map[string]interface{} {
	t.Helper()
	raw, err := io.ReadAll(body)
	require.NoError(t, err, "đọc response body")
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &out), "response body phải là JSON, có: %s", string(raw))
	return out
}

// --- ParsePagination ---

func TestParsePagination(t *testing.T) {
	h := &BaseHandler[interface{}, interface{}, interface{}]{}
	app := fiber.New()

	var page, limit int64
	app.Get("/x", func(c fiber.Ctx) error {
		page, limit = h.ParsePagination(c)
		return c.SendStatus(fiber.StatusOK)
	})

	tests := []struct {
		name      string
		url       string
		wantPage  int64
		wantLimit int64
	}{
		{"mặc định", "/x", 1, 10},
		{"giá trị hợp lệ", "/x?page=3&limit=25", 3, 25},
		{"page âm về mặc định", "/x?page=-1&limit=5", 1, 5},
		{"limit 0 về mặc định", "/x?page=2&limit=0", 2, 10},
		{"không phải số về mặc định", "/x?page=abc&limit=xyz", 1, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := app.Test(httptest.NewRequest("GET", tt.url, nil))
			require.NoError(t, err)
			assert.Equal(t, tt.wantPage, page, "page")
			assert.Equal(t, tt.wantLimit, limit, "limit")
		})
	}
}

// --- validateFilter ---

func TestValidateFilter_DeniedField(t *testing.T) {
	h := &BaseHandler[interface{}, interface{}, interface{}]{}

	err := h.validateFilter(map[string]interface{}{"password": "x"})
	require.Error(t, err, "trường password phải bị chặn")

	var customErr *common.Error
	require.True(t, errors.As(err, &customErr))
	assert.Equal(t, common.StatusBadRequest, customErr.StatusCode)
}

func TestValidateFilter_DisallowedOperator(t *testing.T) {
	h := &BaseHandler[interface{}, interface{}, interface{}]{}

	// $where cho phép chạy JS trên server, không bao giờ được whitelist
	err := h.validateFilter(map[string]interface{}{
		"title": map[string]interface{}{"$where": "this.x == 1"},
	})
	require.Error(t, err, "toán tử ngoài whitelist phải bị chặn")
}

func TestValidateFilter_AllowedOperators(t *testing.T) {
	h := &BaseHandler[interface{}, interface{}, interface{}]{}

	err := h.validateFilter(map[string]interface{}{
		"status":    map[string]interface{}{"$in": []interface{}{"pending", "approved"}},
		"startDate": map[string]interface{}{"$gte": 1700000000000},
	})
	assert.NoError(t, err, "filter với toán tử whitelist phải hợp lệ")
}

func TestValidateFilter_TooManyFields(t *testing.T) {
	h := &BaseHandler[interface{}, interface{}, interface{}]{}

	filter := map[string]interface{}{}
	for i := 0; i < 11; i++ {
		filter[string(rune('a'+i))] = i
	}
	err := h.validateFilter(filter)
	require.Error(t, err, "quá 10 trường phải bị chặn")
}

// --- normalizeFilter ---

func TestNormalizeFilter_ConvertsObjectIDStrings(t *testing.T) {
	h := &BaseHandler[interface{}, interface{}, interface{}]{}

	filter := h.normalizeFilter(map[string]interface{}{
		"proposalId": "65f0c10000000000000000ab",
		"title":      "65f0c10000000000000000ab", // không phải trường *Id, giữ nguyên string
	})

	if _, ok := filter["proposalId"].(string); ok {
		t.Error("trường proposalId với giá trị hex 24 ký tự phải được chuyển thành ObjectID")
	}
	if _, ok := filter["title"].(string); !ok {
		t.Error("trường không phải *Id phải giữ nguyên string")
	}
}

// --- GetIDFromContext ---

func TestGetIDFromContext(t *testing.T) {
	h := &BaseHandler[interface{}, interface{}, interface{}]{}
	app := fiber.New()

	var got string
	app.Get("/things/:id", func(c fiber.Ctx) error {
		got = h.GetIDFromContext(c)
		return c.SendStatus(fiber.StatusOK)
	})

	_, err := app.Test(httptest.NewRequest("GET", "/things/65f0c10000000000000000ab", nil))
	require.NoError(t, err)
	assert.Equal(t, "65f0c10000000000000000ab", got)
}

// --- HandleResponse / HandleBareResponse ---

func TestHandleResponse_SuccessEnvelope(t *testing.T) {
	h := &BaseHandler[interface{}, interface{}, interface{}]{}
	app := fiber.New()
	app.Get("/x", func(c fiber.Ctx) error {
		h.HandleResponse(c, fiber.Map{"title": "Hội thao"}, nil)
		return nil
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/x", nil))
	require.NoError(t, err)
	assert.Equal(t, common.StatusOK, resp.StatusCode)

	envelope := decodeJSONBody(t, resp.Body)
	assert.Equal(t, "success", envelope["status"])
	assert.Equal(t, common.MsgSuccess, envelope["message"])
	assert.Equal(t, float64(common.StatusOK), envelope["code"])

	data, ok := envelope["data"].(map[string]interface{})
	require.True(t, ok, "envelope phải có data object")
	assert.Equal(t, "Hội thao", data["title"])
}

func TestHandleResponse_CustomErrorEnvelope(t *testing.T) {
	h := &BaseHandler[interface{}, interface{}, interface{}]{}
	app := fiber.New()
	app.Get("/x", func(c fiber.Ctx) error {
		h.HandleResponse(c, nil, common.NewError(
			common.ErrCodeBusinessState,
			"Hồ sơ không ở trạng thái pending",
			common.StatusPreconditionFailed,
			nil,
		))
		return nil
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/x", nil))
	require.NoError(t, err)
	assert.Equal(t, common.StatusPreconditionFailed, resp.StatusCode)

	envelope := decodeJSONBody(t, resp.Body)
	assert.Equal(t, "error", envelope["status"])
	assert.Equal(t, common.ErrCodeBusinessState.Code, envelope["code"])
	assert.Equal(t, "Hồ sơ không ở trạng thái pending", envelope["message"])
}

func TestHandleResponse_GenericErrorBecomes500(t *testing.T) {
	h := &BaseHandler[interface{}, interface{}, interface{}]{}
	app := fiber.New()
	app.Get("/x", func(c fiber.Ctx) error {
		h.HandleResponse(c, nil, errors.New("driver: connection refused"))
		return nil
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/x", nil))
	require.NoError(t, err)
	assert.Equal(t, common.StatusInternalServerError, resp.StatusCode)
}

func TestHandleBareResponse_NoEnvelope(t *testing.T) {
	h := &BaseHandler[interface{}, interface{}, interface{}]{}
	app := fiber.New()
	app.Get("/x", func(c fiber.Ctx) error {
		h.HandleBareResponse(c, fiber.Map{"draftId": "abc", "status": "draft"}, nil)
		return nil
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/x", nil))
	require.NoError(t, err)
	assert.Equal(t, common.StatusOK, resp.StatusCode)

	body := decodeJSONBody(t, resp.Body)
	assert.Equal(t, "abc", body["draftId"])
	assert.Equal(t, "draft", body["status"])
	assert.NotContains(t, body, "data", "body trần không được bọc envelope")
	assert.NotContains(t, body, "message")
}

func TestHandleBareResponse_ErrorStillUsesEnvelope(t *testing.T) {
	h := &BaseHandler[interface{}, interface{}, interface{}]{}
	app := fiber.New()
	app.Get("/x", func(c fiber.Ctx) error {
		h.HandleBareResponse(c, nil, common.ErrNotFound)
		return nil
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/x", nil))
	require.NoError(t, err)
	assert.Equal(t, common.StatusNotFound, resp.StatusCode)

	envelope := decodeJSONBody(t, resp.Body)
	assert.Equal(t, "error", envelope["status"], "lỗi của endpoint bare vẫn phải trả envelope chuẩn")
}

// --- SafeHandler ---

func TestSafeHandler_RecoversPanic(t *testing.T) {
	h := &BaseHandler[interface{}, interface{}, interface{}]{}
	app := fiber.New()
	app.Get("/x", func(c fiber.Ctx) error {
		return h.SafeHandler(c, func() error {
			panic("nổ giữa chừng")
		})
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/x", nil))
	require.NoError(t, err)
	assert.Equal(t, common.StatusInternalServerError, resp.StatusCode)

	envelope := decodeJSONBody(t, resp.Body)
	assert.Equal(t, "error", envelope["status"])
	assert.Equal(t, common.ErrCodeInternalServer.Code, envelope["code"])
}
