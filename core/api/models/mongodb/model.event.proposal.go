package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProposalStatus định nghĩa trạng thái review của hồ sơ đề xuất
const (
	ProposalStatusDraft    = "draft"    // Bị trả về để sửa, chờ nộp lại
	ProposalStatusPending  = "pending"  // Chờ duyệt
	ProposalStatusApproved = "approved" // Đã duyệt
	ProposalStatusRejected = "rejected" // Đã từ chối
)

// ComplianceStatus định nghĩa trạng thái hồ sơ tuân thủ sau sự kiện
const (
	ComplianceStatusNotApplicable = "not_applicable" // Loại hình sự kiện không yêu cầu
	ComplianceStatusPending       = "pending"        // Chờ nộp tài liệu tuân thủ
	ComplianceStatusCompliant     = "compliant"      // Đã nộp đủ tài liệu
	ComplianceStatusOverdue       = "overdue"        // Quá hạn nộp
)

// ReviewDecision các quyết định review hợp lệ
const (
	ReviewDecisionApprove = "approve" // Duyệt hồ sơ
	ReviewDecisionReject  = "reject"  // Từ chối hồ sơ
	ReviewDecisionRevise  = "revise"  // Trả về để sửa
)

// Priority mức độ ưu tiên xử lý hồ sơ
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

// DocumentType loại tài liệu đính kèm hồ sơ
const (
	DocumentTypeGPOA           = "gpoa"           // General plan of action
	DocumentTypeProposal       = "proposal"       // Bản đề xuất scan/pdf
	DocumentTypeAccomplishment = "accomplishment" // Tài liệu báo cáo kết quả
	DocumentTypeOther          = "other"
)

// ComplianceRequiredCategories các loại hình sự kiện bắt buộc nộp hồ sơ tuân thủ
var ComplianceRequiredCategories = map[string]bool{
	EventCategoryCommunityService:  true,
	EventCategoryOffCampusActivity: true,
}

// TimeWindow là khung giờ diễn ra trong ngày, định dạng HH:mm
type TimeWindow struct {
	StartTime string `json:"startTime,omitempty" bson:"startTime,omitempty"`
	EndTime   string `json:"endTime,omitempty" bson:"endTime,omitempty"`
}

// EventDetails gom các chi tiết tổ chức của sự kiện
type EventDetails struct {
	TimeWindow     TimeWindow          `json:"timeWindow,omitempty" bson:"timeWindow,omitempty"`
	EventType      string              `json:"eventType,omitempty" bson:"eventType,omitempty"`
	EventMode      string              `json:"eventMode,omitempty" bson:"eventMode,omitempty"`           // onsite, online, hybrid
	TargetAudience []string            `json:"targetAudience,omitempty" bson:"targetAudience,omitempty"`
	OrganizationID *primitive.ObjectID `json:"organizationId,omitempty" bson:"organizationId,omitempty"` // Tổ chức đứng tên, link theo giá trị
}

// ContactInfo thông tin liên hệ của người đứng hồ sơ hoặc tổ chức
type ContactInfo struct {
	Person string `json:"person,omitempty" bson:"person,omitempty"`
	Email  string `json:"email,omitempty" bson:"email,omitempty"`
	Phone  string `json:"phone,omitempty" bson:"phone,omitempty"`
}

// ReviewComment là một mục trong nhật ký review của hồ sơ.
// Mảng reviewComments chỉ được append bằng $push, không sửa hoặc xóa mục cũ.
type ReviewComment struct {
	Reviewer  string `json:"reviewer" bson:"reviewer"`                   // Người review (từ header X-Actor-Id)
	Decision  string `json:"decision" bson:"decision"`                   // Quyết định: approve, reject, revise
	Comment   string `json:"comment,omitempty" bson:"comment,omitempty"` // Nội dung nhận xét
	CreatedAt int64  `json:"createdAt" bson:"createdAt"`                 // Thời gian review
}

// ProposalDocument là metadata một file đã upload vào blob store, gắn với hồ sơ
type ProposalDocument struct {
	Name       string `json:"name" bson:"name"`
	Path       string `json:"path" bson:"path"` // Object key trong blob store
	Mimetype   string `json:"mimetype,omitempty" bson:"mimetype,omitempty"`
	Size       int64  `json:"size" bson:"size"`
	Type       string `json:"type" bson:"type"` // gpoa, proposal, accomplishment, other
	UploadedAt int64  `json:"uploadedAt" bson:"uploadedAt"`
}

// ComplianceDocument là một mục trong checklist tài liệu tuân thủ phải nộp sau sự kiện
type ComplianceDocument struct {
	Name        string `json:"name" bson:"name"`
	Path        string `json:"path,omitempty" bson:"path,omitempty"` // Object key khi đã nộp
	Required    bool   `json:"required" bson:"required"`
	Submitted   bool   `json:"submitted" bson:"submitted"`
	SubmittedAt *int64 `json:"submittedAt,omitempty" bson:"submittedAt,omitempty"`
}

// EventProposal đại diện cho hồ sơ đề xuất sự kiện đã nộp chính thức và toàn bộ vòng đời review.
// Vòng đời: pending -> approved/rejected, riêng quyết định revise trả hồ sơ về draft để sửa rồi resubmit.
// Trục compliance chạy song song, không phụ thuộc kết quả duyệt.
type EventProposal struct {
	ID primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"` // ID của hồ sơ

	// ===== NGUỒN GỐC =====
	DraftID *primitive.ObjectID `json:"draftId,omitempty" bson:"draftId,omitempty" index:"unique,sparse"` // Bản nháp nguồn, mỗi bản nháp chỉ sinh một hồ sơ

	// ===== NỘI DUNG =====
	Title        string       `json:"title" bson:"title"`                                   // Tên sự kiện
	Description  string       `json:"description,omitempty" bson:"description,omitempty"`   // Mô tả
	Category     string       `json:"category" bson:"category" index:"single:1"`            // Loại hình sự kiện
	StartDate    int64        `json:"startDate,omitempty" bson:"startDate,omitempty"`       // Ngày bắt đầu (UnixMilli)
	EndDate      int64        `json:"endDate,omitempty" bson:"endDate,omitempty"`           // Ngày kết thúc, mốc tính hạn tuân thủ
	Location     string       `json:"location,omitempty" bson:"location,omitempty"`         // Địa điểm
	EventDetails EventDetails `json:"eventDetails,omitempty" bson:"eventDetails,omitempty"` // Chi tiết tổ chức

	// ===== NGUỒN LỰC VÀ NGƯỜI ĐỨNG HỒ SƠ =====
	Budget           float64     `json:"budget,omitempty" bson:"budget,omitempty"`                     // Kinh phí dự kiến, >= 0
	Objectives       []string    `json:"objectives,omitempty" bson:"objectives,omitempty"`             // Mục tiêu sự kiện
	VolunteersNeeded int         `json:"volunteersNeeded,omitempty" bson:"volunteersNeeded,omitempty"` // Số tình nguyện viên cần, >= 0
	Submitter        string      `json:"submitter,omitempty" bson:"submitter,omitempty"`               // Người nộp hồ sơ
	OrganizationType string      `json:"organizationType,omitempty" bson:"organizationType,omitempty"` // school-based, community-based
	Contact          ContactInfo `json:"contact,omitempty" bson:"contact,omitempty"`                   // Thông tin liên hệ

	// ===== REVIEW =====
	Status         string          `json:"status" bson:"status" index:"single:1"`                         // Trạng thái: draft, pending, approved, rejected
	Priority       string          `json:"priority,omitempty" bson:"priority,omitempty" default:"medium"` // Mức ưu tiên xử lý
	AssignedTo     string          `json:"assignedTo,omitempty" bson:"assignedTo,omitempty"`              // Reviewer được phân công
	ReviewComments []ReviewComment `json:"reviewComments,omitempty" bson:"reviewComments,omitempty"`      // Nhật ký review, append-only
	RevisionCount  int             `json:"revisionCount,omitempty" bson:"revisionCount,omitempty"`        // Số lần bị trả về để sửa
	SubmittedAt    int64           `json:"submittedAt,omitempty" bson:"submittedAt,omitempty"`            // Thời gian nộp lần gần nhất
	DecidedAt      *int64          `json:"decidedAt,omitempty" bson:"decidedAt,omitempty"`                // Thời gian có quyết định cuối (approve/reject)

	// ===== FILE ĐÍNH KÈM =====
	Documents []ProposalDocument `json:"documents,omitempty" bson:"documents,omitempty"` // Metadata file trong blob store, append qua $push

	// ===== TUÂN THỦ SAU SỰ KIỆN =====
	ComplianceStatus    string               `json:"complianceStatus" bson:"complianceStatus" index:"single:1"`          // Trạng thái: not_applicable, pending, compliant, overdue
	ComplianceDueDate   *int64               `json:"complianceDueDate,omitempty" bson:"complianceDueDate,omitempty"`     // Hạn nộp tài liệu tuân thủ
	ComplianceDocuments []ComplianceDocument `json:"complianceDocuments,omitempty" bson:"complianceDocuments,omitempty"` // Checklist tài liệu phải nộp

	// ===== TIMESTAMPS =====
	CreatedAt int64 `json:"createdAt" bson:"createdAt"` // Thời gian tạo
	UpdatedAt int64 `json:"updatedAt" bson:"updatedAt"` // Thời gian cập nhật
}
