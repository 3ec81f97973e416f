package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DraftStatus định nghĩa trạng thái của bản nháp hồ sơ
const (
	DraftStatusDraft     = "draft"     // Đang soạn, các section còn sửa được
	DraftStatusSubmitted = "submitted" // Đã nộp, khóa chỉnh sửa section
)

// EventCategory các loại hình sự kiện
const (
	EventCategoryAcademic          = "academic"
	EventCategoryCultural          = "cultural"
	EventCategorySports            = "sports"
	EventCategoryCommunityService  = "community-service"
	EventCategoryOffCampusActivity = "off-campus-activity"
	EventCategoryOther             = "other"
)

// EventDraft đại diện cho bản nháp hồ sơ sự kiện đang soạn theo từng section.
// FormData là map phẳng section name → payload của section đó; payload schemaless,
// mỗi lần patch thay thế nguyên section (không merge sâu).
// Bản nháp không bao giờ bị xóa vật lý bởi nghiệp vụ.
type EventDraft struct {
	ID primitive.ObjectID `json:"draftId,omitempty" bson:"_id,omitempty"` // Định danh công khai của bản nháp (hex), key JSON thống nhất là draftId

	// ===== NỘI DUNG =====
	FormData map[string]interface{} `json:"formData" bson:"formData"` // Map section name → section payload

	// ===== TRẠNG THÁI =====
	Status      string `json:"status" bson:"status" index:"single:1"`              // Trạng thái: draft, submitted
	SubmittedAt *int64 `json:"submittedAt,omitempty" bson:"submittedAt,omitempty"` // Thời gian nộp (có sau khi submit)

	// ===== TIMESTAMPS =====
	CreatedAt int64 `json:"createdAt" bson:"createdAt"` // Thời gian tạo
	UpdatedAt int64 `json:"updatedAt" bson:"updatedAt"` // Thời gian cập nhật
}
