package worker

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"event_proposal/core/global"
	"event_proposal/core/logger"

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

func TestNewComplianceSweepWorker_IntervalTooShortFallsBackToDefault(t *testing.T) {
	w, err := NewComplianceSweepWorker(5 * time.Second)
	if err != nil {
		t.Fatalf("Không tạo được worker: %v", err)
	}

	if w.interval != 1*time.Hour {
		t.Errorf("Interval dưới 30s phải về mặc định 1 giờ, có: %v", w.interval)
	}
}

func TestNewComplianceSweepWorker_KeepsValidInterval(t *testing.T) {
	w, err := NewComplianceSweepWorker(2 * time.Minute)
	if err != nil {
		t.Fatalf("Không tạo được worker: %v", err)
	}

	if w.interval != 2*time.Minute {
		t.Errorf("Interval hợp lệ phải được giữ nguyên, muốn 2m, có: %v", w.interval)
	}
}

func TestComplianceSweepWorker_StopsOnContextCancel(t *testing.T) {
	// Interval dài để không có tick nào kịp chạy trong test
	w, err := NewComplianceSweepWorker(1 * time.Hour)
	if err != nil {
		t.Fatalf("Không tạo được worker: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		w.Start(ctx)
		close(done)
	}()

	cancel()

	select {
	case <-done:
		// Worker dừng đúng theo context
	case <-time.After(2 * time.Second):
		t.Fatal("Worker không dừng sau khi cancel context")
	}
}
