package dto

// FileInfoInput metadata của file trong một dòng sổ cái (tầng transport)
type FileInfoInput struct {
	Name     string `json:"name" validate:"required"`                                                     // Tên file gốc (bắt buộc)
	Path     string `json:"path,omitempty"`                                                               // Object key trong blob store
	Mimetype string `json:"mimetype,omitempty"`                                                           // Content type
	Size     int64  `json:"size,omitempty" validate:"omitempty,gte=0"`                                    // Kích thước (bytes)
	Type     string `json:"type,omitempty" validate:"omitempty,oneof=gpoa proposal accomplishment other"` // Phân loại tài liệu
}

// FileUploadAuditCreateInput dữ liệu đầu vào khi ghi sổ cái thao tác file trực tiếp (đường quản trị).
// Upload qua multipart tự sinh dòng sổ cái, không đi qua DTO này.
type FileUploadAuditCreateInput struct {
	ProposalID string        `json:"proposalId" validate:"required"`                                                  // ID hồ sơ chứa file (string ObjectID, bắt buộc)
	UploadedBy string        `json:"uploadedBy,omitempty"`                                                            // Người thao tác
	Action     string        `json:"action,omitempty" validate:"omitempty,oneof=upload delete replace view download"` // Hành động (mặc định: upload)
	FileInfo   FileInfoInput `json:"fileInfo" validate:"required"`                                                    // Metadata file tại thời điểm thao tác
}

// FileUploadAuditUpdateInput placeholder cho generic handler.
// Sổ cái append-only nên không mở route update nào.
type FileUploadAuditUpdateInput struct{}
