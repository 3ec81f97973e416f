package router

import (
	"context"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"event_proposal/core/global"
	"event_proposal/core/logger"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func TestMain(m *testing.M) {
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

	client, err := mongo.Connect(context.Background(), options.Client().
		ApplyURI("mongodb://127.0.0.1:27017").
		SetServerSelectionTimeout(100*time.Millisecond).
		SetConnectTimeout(100*time.Millisecond))
	if err != nil {
		panic(err)
	}

	db := client.Database("event_proposal_test")
	for _, name := range []string{
		global.MongoDB_ColNames.EventDrafts,
		global.MongoDB_ColNames.EventProposals,
		global.MongoDB_ColNames.Organizations,
		global.MongoDB_ColNames.AccomplishmentReports,
		global.MongoDB_ColNames.FileUploadAudits,
	} {
		if _, err := global.RegistryCollections.Register(name, db.Collection(name)); err != nil {
			panic(err)
		}
	}

	os.Exit(m.Run())
}

// routeSet gom route table thành set "METHOD path" để assert
func routeSet(app *fiber.App) map[string]bool {
	set := map[string]bool{}
	for _, route := range app.GetRoutes() {
		set[route.Method+" "+route.Path] = true
	}
	return set
}

func TestSetupRoutes_RegistersAllEndpoints(t *testing.T) {
	app := fiber.New()
	require.NoError(t, SetupRoutes(app))

	routes := routeSet(app)

	wantRoutes := []string{
		// System
		"GET /system/health",

		// Draft autosave (path cố định, không version)
		"POST /proposals/drafts",
		"GET /proposals/drafts",
		"GET /proposals/drafts/:id",
		"POST /proposals/drafts/:id/submit",
		"PATCH /api/proposals/drafts/:id/:section",

		// Proposal actions + intake
		"POST /api/v1/proposals/:id/review",
		"POST /api/v1/proposals/:id/resubmit",
		"PUT /api/v1/proposals/:id/compliance-documents",
		"POST /api/v1/proposals/insert-one",
		"GET /api/v1/proposals/find",
		"GET /api/v1/proposals/find-by-id/:id",

		// Report workflow
		"POST /api/v1/reports/insert-one",
		"PUT /api/v1/reports/:id/report-data",
		"POST /api/v1/reports/:id/submit",
		"POST /api/v1/reports/:id/review",

		// Organizations
		"PUT /api/v1/organizations/:id/active",
		"POST /api/v1/organizations/insert-one",
		"GET /api/v1/organizations/find",

		// Files + sổ cái
		"POST /api/v1/files/:proposalId/upload",
		"GET /api/v1/files/:proposalId/download",
		"GET /api/v1/files/:proposalId/audit",
		"GET /api/v1/files/audits/find",
	}
	for _, want := range wantRoutes {
		assert.True(t, routes[want], "thiếu route %s", want)
	}
}

func TestSetupRoutes_IntakeCollectionsHaveNoGenericMutation(t *testing.T) {
	app := fiber.New()
	require.NoError(t, SetupRoutes(app))

	routes := routeSet(app)

	// Mutation trạng thái chỉ đi qua action endpoints
	deniedRoutes := []string{
		"PUT /api/v1/proposals/update-one",
		"PUT /api/v1/proposals/update-by-id/:id",
		"DELETE /api/v1/proposals/delete-one",
		"PUT /api/v1/reports/update-one",
		"DELETE /api/v1/reports/delete-by-id/:id",
		"POST /api/v1/files/audits/insert-one",
		"PUT /api/v1/files/audits/update-one",
		"DELETE /api/v1/files/audits/delete-one",
	}
	for _, denied := range deniedRoutes {
		assert.False(t, routes[denied], "route %s không được phép tồn tại", denied)
	}
}

func TestSetupRoutes_HealthEndpointServes(t *testing.T) {
	app := fiber.New()
	require.NoError(t, SetupRoutes(app))

	resp, err := app.Test(httptest.NewRequest("GET", "/system/health", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestSetupRoutes_UnknownPathReturns404(t *testing.T) {
	app := fiber.New()
	require.NoError(t, SetupRoutes(app))

	resp, err := app.Test(httptest.NewRequest("GET", "/no-such-route", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestSetupRoutes_PatchSectionWiredThroughRouter(t *testing.T) {
	app := fiber.New()
	require.NoError(t, SetupRoutes(app))

	// Đi qua router thật để chắc path và handler khớp nhau
	resp, err := app.Test(httptest.NewRequest("PATCH", "/api/proposals/drafts/bad-id/eventDetails", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
