package services

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	models "event_proposal/core/api/models/mongodb"
	"event_proposal/core/common"
	"event_proposal/core/global"
)

// FileAuditService ghi và đọc sổ cái thao tác file của hồ sơ.
// Sổ cái append-only: service không có thao tác sửa hay xóa.
type FileAuditService struct {
	*BaseServiceMongoImpl[models.FileUploadAudit]
}

// NewFileAuditService tạo mới FileAuditService.
// Trả về: *FileAuditService, error.
func NewFileAuditService() (*FileAuditService, error) {
	collection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.FileUploadAudits)
	if !exist {
		return nil, fmt.Errorf("failed to get event_file_audits collection: %v", common.ErrNotFound)
	}

	return &FileAuditService{
		BaseServiceMongoImpl: NewBaseServiceMongo[models.FileUploadAudit](collection),
	}, nil
}

// normalizeAuditEntry điền giá trị mặc định cho một dòng sổ cái trước khi ghi.
// Schema validator của event_file_audits yêu cầu fileInfo.name không rỗng,
// nên entry không gắn file cụ thể (ví dụ action=view đọc cả sổ cái) nhận
// tên tổng hợp theo action.
func normalizeAuditEntry(entry models.FileUploadAudit, now int64) models.FileUploadAudit {
	if entry.Timestamp == 0 {
		entry.Timestamp = now
	}
	if entry.Action == "" {
		entry.Action = models.FileAuditActionUpload
	}
	if entry.FileInfo.Name == "" {
		entry.FileInfo.Name = "(" + entry.Action + ")"
	}
	return entry
}

// Record ghi một dòng sổ cái. Timestamp để trống sẽ lấy thời điểm hiện tại,
// action để trống mặc định là upload, fileInfo.name để trống nhận tên tổng hợp.
func (s *FileAuditService) Record(ctx context.Context, entry models.FileUploadAudit) (models.FileUploadAudit, error) {
	return s.InsertOne(ctx, normalizeAuditEntry(entry, time.Now().UnixMilli()))
}

// ListByProposal trả về sổ cái của một hồ sơ, thao tác mới nhất trước, có phân trang.
func (s *FileAuditService) ListByProposal(ctx context.Context, proposalID primitive.ObjectID, page, limit int64) (*models.PaginateResult[models.FileUploadAudit], error) {
	filter := bson.M{"proposalId": proposalID}
	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}})
	return s.FindWithPagination(ctx, filter, page, limit, opts)
}
