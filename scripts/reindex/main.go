// Script khởi tạo lại schema MongoDB cho hệ thống tiếp nhận hồ sơ sự kiện:
// tạo collections với $jsonSchema validator, tạo indexes (từ struct tag và
// các index compound bổ sung), seed các tổ chức mặc định.
// Idempotent: chạy lại nhiều lần không tạo trùng, chạy song song với server đang
// phục vụ traffic vẫn an toàn (lỗi duplicate được hạ cấp thành thành công).
//
// Chạy: go run ./scripts/reindex
// Cần: config/env/<GO_ENV>.env với MONGODB_CONNECTION_URI, MONGODB_DBNAME
package main

import (
	"context"
	"fmt"
	"log"

	"event_proposal/config"
	models "event_proposal/core/api/models/mongodb"
	"event_proposal/core/api/services"
	"event_proposal/core/database"
	"event_proposal/core/global"
)

func main() {
	fmt.Println("=== Khởi tạo lại schema & index cho event proposal backend ===")

	// 1. Đọc cấu hình (tự tìm config/env từ thư mục hiện tại trở lên)
	cfg := config.NewConfig()
	if cfg == nil {
		log.Fatal("Không đọc được cấu hình. Cần config/env/<GO_ENV>.env với MONGODB_CONNECTION_URI và MONGODB_DBNAME.")
	}
	global.MongoDB_ServerConfig = cfg

	// Tên collection dùng chung với server chính
	global.MongoDB_ColNames.EventDrafts = "event_drafts"
	global.MongoDB_ColNames.EventProposals = "event_proposals"
	global.MongoDB_ColNames.Organizations = "auth_organizations"
	global.MongoDB_ColNames.AccomplishmentReports = "event_accomplishment_reports"
	global.MongoDB_ColNames.FileUploadAudits = "event_file_audits"

	// 2. Kết nối MongoDB (có retry với backoff)
	fmt.Println("--- Kết nối MongoDB...")
	client, err := database.GetInstance(cfg)
	if err != nil {
		log.Fatalf("Không kết nối được MongoDB: %v", err)
	}
	global.MongoDB_Session = client
	defer func() {
		if err := database.CloseInstance(client); err != nil {
			log.Printf("Lỗi khi đóng kết nối: %v", err)
		}
	}()

	// 3. Tạo database, collections và schema validators nếu chưa có
	fmt.Println("--- Đảm bảo collections & schema validators...")
	if err := database.EnsureDatabaseAndCollections(client); err != nil {
		log.Fatalf("Không tạo được collections: %v", err)
	}

	// 4. Tạo indexes từ struct tag của từng model
	fmt.Println("--- Tạo indexes từ model...")
	db := client.Database(cfg.MongoDB_DBName)
	indexTargets := []struct {
		colName string
		model   interface{}
	}{
		{global.MongoDB_ColNames.EventDrafts, models.EventDraft{}},
		{global.MongoDB_ColNames.EventProposals, models.EventProposal{}},
		{global.MongoDB_ColNames.Organizations, models.Organization{}},
		{global.MongoDB_ColNames.AccomplishmentReports, models.AccomplishmentReport{}},
		{global.MongoDB_ColNames.FileUploadAudits, models.FileUploadAudit{}},
	}
	for _, target := range indexTargets {
		if err := database.CreateIndexes(context.TODO(), db.Collection(target.colName), target.model); err != nil {
			log.Fatalf("Không tạo được index cho %s: %v", target.colName, err)
		}
		fmt.Printf("    %s: OK\n", target.colName)
	}

	// 5. Các index bổ sung (compound, partial) không khai báo được qua struct tag
	fmt.Println("--- Tạo indexes bổ sung...")
	if err := database.CreateEventAdditionalIndexes(context.TODO(), db); err != nil {
		log.Fatalf("Không tạo được index bổ sung: %v", err)
	}

	// 6. Đăng ký collections vào registry để dùng được tầng services
	for _, target := range indexTargets {
		if _, err := global.RegistryCollections.Register(target.colName, db.Collection(target.colName)); err != nil {
			log.Fatalf("Không đăng ký được collection %s: %v", target.colName, err)
		}
	}

	// 7. Seed các tổ chức mặc định (theo natural key, duplicate coi như đã có)
	fmt.Println("--- Seed tổ chức mặc định...")
	initService, err := services.NewInitService()
	if err != nil {
		log.Fatalf("Không khởi tạo được init service: %v", err)
	}
	if err := initService.InitDefaultOrganizations(); err != nil {
		log.Fatalf("Không seed được tổ chức mặc định: %v", err)
	}

	fmt.Println("=== Hoàn tất. Schema, index và seed data đã ở trạng thái mong muốn. ===")
}
