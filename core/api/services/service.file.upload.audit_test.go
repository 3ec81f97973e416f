// Package services - Test chuẩn hóa dòng sổ cái thao tác file trước khi ghi.
package services

import (
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	models "event_proposal/core/api/models/mongodb"
)

func TestNormalizeAuditEntry_Defaults(t *testing.T) {
	now := time.Now().UnixMilli()

	entry := normalizeAuditEntry(models.FileUploadAudit{}, now)
	if entry.Timestamp != now {
		t.Errorf("timestamp trống phải lấy now, có %d", entry.Timestamp)
	}
	if entry.Action != models.FileAuditActionUpload {
		t.Errorf("action trống phải mặc định upload, có %q", entry.Action)
	}

	// Giá trị đã có không được ghi đè
	entry = normalizeAuditEntry(models.FileUploadAudit{
		Timestamp: 1700000000000,
		Action:    models.FileAuditActionDownload,
		FileInfo:  models.FileInfo{Name: "ke_hoach.pdf"},
	}, now)
	if entry.Timestamp != 1700000000000 {
		t.Errorf("timestamp có sẵn bị ghi đè thành %d", entry.Timestamp)
	}
	if entry.Action != models.FileAuditActionDownload {
		t.Errorf("action có sẵn bị ghi đè thành %q", entry.Action)
	}
	if entry.FileInfo.Name != "ke_hoach.pdf" {
		t.Errorf("fileInfo.name có sẵn bị ghi đè thành %q", entry.FileInfo.Name)
	}
}

func TestNormalizeAuditEntry_ViewWithoutFileGetsSyntheticName(t *testing.T) {
	now := time.Now().UnixMilli()

	entry := normalizeAuditEntry(models.FileUploadAudit{
		ProposalID: primitive.NewObjectID(),
		Action:     models.FileAuditActionView,
	}, now)

	if entry.FileInfo.Name == "" {
		t.Fatal("entry action=view không gắn file phải nhận tên tổng hợp, fileInfo.name vẫn rỗng")
	}
	if entry.FileInfo.Name != "(view)" {
		t.Errorf("tên tổng hợp phải theo action, có %q", entry.FileInfo.Name)
	}
}

func TestNormalizeAuditEntry_DocumentPassesNameConstraint(t *testing.T) {
	// Schema validator của event_file_audits yêu cầu fileInfo.name là string
	// không rỗng; document sau chuẩn hóa phải thỏa ràng buộc đó với mọi action.
	now := time.Now().UnixMilli()

	for _, action := range []string{
		models.FileAuditActionUpload,
		models.FileAuditActionDelete,
		models.FileAuditActionReplace,
		models.FileAuditActionView,
		models.FileAuditActionDownload,
	} {
		entry := normalizeAuditEntry(models.FileUploadAudit{
			ProposalID: primitive.NewObjectID(),
			Action:     action,
		}, now)

		raw, err := bson.Marshal(entry)
		if err != nil {
			t.Fatalf("[%s] bson marshal lỗi: %v", action, err)
		}
		var doc bson.M
		if err := bson.Unmarshal(raw, &doc); err != nil {
			t.Fatalf("[%s] bson unmarshal lỗi: %v", action, err)
		}

		fileInfo, ok := doc["fileInfo"].(bson.M)
		if !ok {
			t.Fatalf("[%s] document thiếu fileInfo object, có %T", action, doc["fileInfo"])
		}
		name, ok := fileInfo["name"].(string)
		if !ok || len(name) < 1 {
			t.Errorf("[%s] fileInfo.name phải là string không rỗng, có %v", action, fileInfo["name"])
		}
	}
}
