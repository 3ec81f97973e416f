package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// FileAuditAction các hành động trên file được ghi sổ
const (
	FileAuditActionUpload   = "upload"
	FileAuditActionDelete   = "delete"
	FileAuditActionReplace  = "replace"
	FileAuditActionView     = "view"
	FileAuditActionDownload = "download"
)

// FileInfo metadata của file tại thời điểm ghi sổ
type FileInfo struct {
	Name     string `json:"name" bson:"name"`
	Path     string `json:"path,omitempty" bson:"path,omitempty"` // Object key trong blob store
	Mimetype string `json:"mimetype,omitempty" bson:"mimetype,omitempty"`
	Size     int64  `json:"size,omitempty" bson:"size,omitempty"`
	Type     string `json:"type,omitempty" bson:"type,omitempty"` // gpoa, proposal, accomplishment, other
}

// FileUploadAudit là một dòng trong sổ cái thao tác file của hồ sơ.
// Append-only: chỉ insert, không bao giờ update hay delete.
type FileUploadAudit struct {
	ID primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"` // ID của dòng sổ cái

	// ===== NGUỒN =====
	ProposalID primitive.ObjectID `json:"proposalId" bson:"proposalId" index:"compound:proposal_time"` // Hồ sơ chứa file
	UploadedBy string             `json:"uploadedBy,omitempty" bson:"uploadedBy,omitempty"`            // Người thao tác (từ header X-Actor-Id)

	// ===== HÀNH ĐỘNG =====
	Action   string   `json:"action" bson:"action"`     // upload, delete, replace, view, download
	FileInfo FileInfo `json:"fileInfo" bson:"fileInfo"` // Metadata file tại thời điểm thao tác

	// ===== NGỮ CẢNH REQUEST =====
	IPAddress string `json:"ipAddress,omitempty" bson:"ipAddress,omitempty"`
	UserAgent string `json:"userAgent,omitempty" bson:"userAgent,omitempty"`
	Timestamp int64  `json:"timestamp" bson:"timestamp" index:"compound:proposal_time"` // Thời điểm thao tác

	// ===== TIMESTAMPS =====
	CreatedAt int64 `json:"createdAt" bson:"createdAt"` // Thời gian ghi sổ
	UpdatedAt int64 `json:"updatedAt" bson:"updatedAt"` // Bằng createdAt, sổ cái không sửa
}
