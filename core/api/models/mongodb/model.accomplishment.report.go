package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ReportStatus định nghĩa trạng thái của báo cáo kết quả
const (
	ReportStatusDraft    = "draft"    // Đang soạn
	ReportStatusPending  = "pending"  // Đã nộp, chờ duyệt
	ReportStatusApproved = "approved" // Đã duyệt
	ReportStatusDenied   = "denied"   // Bị từ chối
)

// FinancialSummary tổng kết tài chính của sự kiện.
// Variance do người nộp tự khai, hệ thống lưu nguyên trạng, không tính lại.
type FinancialSummary struct {
	BudgetAllocated float64 `json:"budgetAllocated,omitempty" bson:"budgetAllocated,omitempty"` // Kinh phí được cấp
	ActualExpenses  float64 `json:"actualExpenses,omitempty" bson:"actualExpenses,omitempty"`   // Chi thực tế
	Variance        float64 `json:"variance,omitempty" bson:"variance,omitempty"`               // Chênh lệch người nộp tự khai
}

// ReportData là nội dung báo cáo do người nộp soạn
type ReportData struct {
	EventSummary     string           `json:"eventSummary,omitempty" bson:"eventSummary,omitempty"`         // Tóm tắt sự kiện, bắt buộc khi nộp
	ActualAttendance *int             `json:"actualAttendance,omitempty" bson:"actualAttendance,omitempty"` // Số người tham dự thực tế, bắt buộc >= 0 khi nộp
	Objectives       []string         `json:"objectives,omitempty" bson:"objectives,omitempty"`             // Mục tiêu đã đạt, cần ít nhất 1 khi nộp
	Outcomes         []string         `json:"outcomes,omitempty" bson:"outcomes,omitempty"`                 // Kết quả cụ thể
	Challenges       string           `json:"challenges,omitempty" bson:"challenges,omitempty"`             // Khó khăn gặp phải
	Recommendations  string           `json:"recommendations,omitempty" bson:"recommendations,omitempty"`   // Đề xuất cho lần sau
	FinancialSummary FinancialSummary `json:"financialSummary,omitempty" bson:"financialSummary,omitempty"` // Tổng kết tài chính
}

// AccomplishmentReport đại diện cho báo cáo kết quả sau sự kiện.
// Mỗi hồ sơ đề xuất đã duyệt chỉ có đúng một báo cáo (proposalId unique),
// tạo trùng sẽ bị từ chối với lỗi Conflict từ unique index, không pre-check.
// Vòng đời: draft -> pending -> approved/denied.
type AccomplishmentReport struct {
	ID primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"` // ID của báo cáo

	// ===== LIÊN KẾT =====
	ProposalID primitive.ObjectID `json:"proposalId" bson:"proposalId" index:"unique"` // Hồ sơ đề xuất đã duyệt

	// ===== NỘI DUNG =====
	ReportData ReportData `json:"reportData,omitempty" bson:"reportData,omitempty"` // Nội dung báo cáo

	// ===== TRẠNG THÁI =====
	Status        string `json:"status" bson:"status" index:"single:1"`                  // Trạng thái: draft, pending, approved, denied
	SubmittedAt   *int64 `json:"submittedAt,omitempty" bson:"submittedAt,omitempty"`     // Thời gian nộp
	ReviewedAt    *int64 `json:"reviewedAt,omitempty" bson:"reviewedAt,omitempty"`       // Thời gian admin duyệt
	AdminComments string `json:"adminComments,omitempty" bson:"adminComments,omitempty"` // Nhận xét của admin khi duyệt

	// ===== TIMESTAMPS =====
	CreatedAt int64 `json:"createdAt" bson:"createdAt"` // Thời gian tạo
	UpdatedAt int64 `json:"updatedAt" bson:"updatedAt"` // Thời gian cập nhật
}
