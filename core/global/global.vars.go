package global

import (
	"event_proposal/config"
	"event_proposal/core/registry"
	"event_proposal/core/storage"

	"go.mongodb.org/mongo-driver/mongo"
	validator "gopkg.in/go-playground/validator.v9"
)

// MongoDB_CollectionName chứa tên các collection trong MongoDB
type MongoDB_CollectionName struct {
	EventDrafts           string // Tên collection cho bản nháp proposal (section-addressable)
	EventProposals        string // Tên collection cho proposal đã nộp và hồ sơ review
	Organizations         string // Tên collection cho tổ chức
	AccomplishmentReports string // Tên collection cho báo cáo kết quả sau sự kiện
	FileUploadAudits      string // Tên collection cho sổ cái audit file (append-only)
}

// Các biến toàn cục
var Validate *validator.Validate                                         // Biến để xác thực dữ liệu
var MongoDB_Session *mongo.Client                                        // Phiên kết nối tới MongoDB
var MongoDB_ServerConfig *config.Configuration                           // Cấu hình của server
var MongoDB_ColNames MongoDB_CollectionName = *new(MongoDB_CollectionName) // Tên các collection

// StorageUploader là blob store chứa file đính kèm (MinIO hoặc no-op khi chưa cấu hình)
var StorageUploader storage.Uploader

// Các Registry
var RegistryCollections = registry.NewRegistry[*mongo.Collection]() // Registry chứa các collections
var RegistryDatabase = registry.NewRegistry[*mongo.Database]()      // Registry chứa các databases
