package handler

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"event_proposal/core/common"
	"event_proposal/core/global"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func newHealthTestApp(t *testing.T) *fiber.App {
	t.Helper()

	h, err := NewSystemHandler()
	require.NoError(t, err)

	app := fiber.New()
	app.Get("/system/health", h.HandleHealth)
	return app
}

func TestHandleHealth_SessionNotInitialized(t *testing.T) {
	saved := global.MongoDB_Session
	global.MongoDB_Session = nil
	defer func() { global.MongoDB_Session = saved }()

	app := newHealthTestApp(t)
	resp, err := app.Test(httptest.NewRequest("GET", "/system/health", nil))
	require.NoError(t, err)

	// API vẫn sống nên trả 200, chỉ đánh dấu database chưa khởi tạo
	assert.Equal(t, common.StatusOK, resp.StatusCode)

	envelope := decodeJSONBody(t, resp.Body)
	assert.Equal(t, "success", envelope["status"])

	data, ok := envelope["data"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "degraded", data["status"])

	servicesMap, ok := data["services"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "ok", servicesMap["api"])
	assert.Equal(t, "not_initialized", servicesMap["database"])
}

func TestHandleHealth_DatabaseUnreachable(t *testing.T) {
	// Client trỏ vào cổng không có gì lắng nghe: Ping sẽ fail sau server selection timeout
	client, err := mongo.Connect(context.Background(), options.Client().
		ApplyURI("mongodb://127.0.0.1:1").
		SetServerSelectionTimeout(100*time.Millisecond).
		SetConnectTimeout(100*time.Millisecond))
	require.NoError(t, err)

	saved := global.MongoDB_Session
	global.MongoDB_Session = client
	defer func() { global.MongoDB_Session = saved }()

	app := newHealthTestApp(t)
	resp, err := app.Test(httptest.NewRequest("GET", "/system/health", nil), fiber.TestConfig{
		Timeout: 5 * time.Second,
	})
	require.NoError(t, err)
	assert.Equal(t, common.StatusServiceUnavailable, resp.StatusCode)

	envelope := decodeJSONBody(t, resp.Body)
	assert.Equal(t, "error", envelope["status"])
	assert.Equal(t, "Hệ thống đang gặp sự cố", envelope["message"])
	assert.Equal(t, float64(common.StatusServiceUnavailable), envelope["code"])

	data, ok := envelope["data"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "degraded", data["status"])
	assert.NotEmpty(t, data["database_error"])

	servicesMap, ok := data["services"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "error", servicesMap["database"])
}
