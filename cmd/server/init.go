package main

import (
	"context"

	"event_proposal/config"
	"event_proposal/core/api/events"
	models "event_proposal/core/api/models/mongodb"
	"event_proposal/core/database"
	"event_proposal/core/global"
	"event_proposal/core/logger"
	"event_proposal/core/storage"

	"github.com/sirupsen/logrus"
)

// Hàm khởi tạo các biến toàn cục
func InitGlobal() {
	initColNames()         // Khởi tạo tên các collection trong database
	initValidator()        // Khởi tạo validator
	initConfig()           // Khởi tạo cấu hình server
	initDatabase_MongoDB() // Khởi tạo kết nối database
	initStorage()          // Khởi tạo blob storage cho file đính kèm
	initDataChangeAudit()  // Đăng ký audit log cho mọi thay đổi dữ liệu
}

// Hàm khởi tạo tên các collection trong database
func initColNames() {
	global.MongoDB_ColNames.EventDrafts = "event_drafts"
	global.MongoDB_ColNames.EventProposals = "event_proposals"
	global.MongoDB_ColNames.Organizations = "auth_organizations"
	global.MongoDB_ColNames.AccomplishmentReports = "event_accomplishment_reports"
	global.MongoDB_ColNames.FileUploadAudits = "event_file_audits"

	logrus.Info("Initialized collection names") // Ghi log thông báo đã khởi tạo tên các collection
}

// Hàm khởi tạo validator (dùng global.InitValidator để đăng ký custom validators: no_xss, section_name, ...)
func initValidator() {
	global.InitValidator()
	logrus.Info("Initialized validator") // Ghi log thông báo đã khởi tạo validator
}

// Hàm khởi tạo cấu hình server
func initConfig() {
	global.MongoDB_ServerConfig = config.NewConfig()
	if global.MongoDB_ServerConfig == nil {
		logrus.Fatalf("Failed to initialize config: config is nil") // Ghi log lỗi nếu khởi tạo cấu hình thất bại
	}
	logrus.Info("Initialized server config") // Ghi log thông báo đã khởi tạo cấu hình server
}

// Hàm khởi tạo kết nối database
func initDatabase_MongoDB() {
	var err error
	global.MongoDB_Session, err = database.GetInstance(global.MongoDB_ServerConfig)
	if err != nil {
		logrus.Fatalf("Failed to get database instance: %v", err) // Ghi log lỗi nếu kết nối database thất bại
	}
	logrus.Info("Connected to MongoDB") // Ghi log thông báo đã kết nối database thành công

	// Khởi tạo các db, collections và schema validators nếu chưa có
	if err := database.EnsureDatabaseAndCollections(global.MongoDB_Session); err != nil {
		logrus.Fatalf("Failed to ensure database and collections: %v", err)
	}
	logrus.Info("Ensured database and collections") // Ghi log thông báo đã đảm bảo database và các collection

	// Khởi tạo các index cho các collection (khai báo qua struct tag `index`)
	dbName := global.MongoDB_ServerConfig.MongoDB_DBName
	db := global.MongoDB_Session.Database(dbName)
	database.CreateIndexes(context.TODO(), db.Collection(global.MongoDB_ColNames.EventDrafts), models.EventDraft{})
	database.CreateIndexes(context.TODO(), db.Collection(global.MongoDB_ColNames.EventProposals), models.EventProposal{})
	database.CreateIndexes(context.TODO(), db.Collection(global.MongoDB_ColNames.Organizations), models.Organization{})
	database.CreateIndexes(context.TODO(), db.Collection(global.MongoDB_ColNames.AccomplishmentReports), models.AccomplishmentReport{})
	database.CreateIndexes(context.TODO(), db.Collection(global.MongoDB_ColNames.FileUploadAudits), models.FileUploadAudit{})

	// Các index bổ sung không khai báo được qua struct tag (compound, partial)
	if err := database.CreateEventAdditionalIndexes(context.TODO(), db); err != nil {
		logrus.Errorf("Failed to create additional indexes: %v", err)
	}
}

// initDataChangeAudit đăng ký subscriber ghi audit log cho mọi thay đổi dữ liệu qua CRUD.
// BaseServiceMongoImpl phát DataChangeEvent sau mỗi thao tác ghi thành công;
// subscriber này ghi lại collection, loại thao tác và _id của document vào audit log.
func initDataChangeAudit() {
	events.OnDataChanged(func(ctx context.Context, e events.DataChangeEvent) {
		docID := events.GetDocumentID(e.Document)
		targetID := ""
		if !docID.IsZero() {
			targetID = docID.Hex()
		}

		logger.WithAudit(logger.GetAuditLogger(), "system", e.Operation, targetID).
			WithField("collection", e.CollectionName).
			Info("Data changed")
	})
	logrus.Info("Registered data change audit subscriber")
}

// initStorage khởi tạo blob storage (MinIO) cho file đính kèm của hồ sơ
func initStorage() {
	cfg := global.MongoDB_ServerConfig

	uploader, err := storage.NewUploader(cfg)
	if err != nil {
		logrus.Errorf("Failed to initialize storage uploader: %v", err)
		// Không fatal, fallback sang no-op để hệ thống vẫn chạy được (upload file sẽ trả lỗi rõ ràng)
		global.StorageUploader = &storage.NoopUploader{}
		return
	}

	global.StorageUploader = uploader
	logrus.Info("Storage uploader initialized successfully")
}
