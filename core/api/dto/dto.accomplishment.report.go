package dto

// FinancialSummaryInput tổng kết tài chính do người nộp tự khai
type FinancialSummaryInput struct {
	BudgetAllocated float64 `json:"budgetAllocated,omitempty"` // Kinh phí được cấp
	ActualExpenses  float64 `json:"actualExpenses,omitempty"`  // Chi thực tế
	Variance        float64 `json:"variance,omitempty"`        // Chênh lệch tự khai, lưu nguyên trạng
}

// ReportDataInput nội dung báo cáo kết quả (tầng transport).
// Các ràng buộc "bắt buộc khi nộp" kiểm tra lúc submit, không kiểm tra lúc soạn.
type ReportDataInput struct {
	EventSummary     string                `json:"eventSummary,omitempty" validate:"omitempty,no_xss"`    // Tóm tắt sự kiện
	ActualAttendance *int                  `json:"actualAttendance,omitempty" validate:"omitempty,gte=0"` // Số người tham dự thực tế
	Objectives       []string              `json:"objectives,omitempty"`                                  // Mục tiêu đã đạt
	Outcomes         []string              `json:"outcomes,omitempty"`                                    // Kết quả cụ thể
	Challenges       string                `json:"challenges,omitempty"`                                  // Khó khăn gặp phải
	Recommendations  string                `json:"recommendations,omitempty"`                             // Đề xuất cho lần sau
	FinancialSummary FinancialSummaryInput `json:"financialSummary,omitempty"`                            // Tổng kết tài chính
}

// AccomplishmentReportCreateInput dữ liệu đầu vào khi tạo báo cáo kết quả (tầng transport)
type AccomplishmentReportCreateInput struct {
	ProposalID string          `json:"proposalId" validate:"required"` // ID hồ sơ đề xuất đã duyệt (string ObjectID, bắt buộc)
	ReportData ReportDataInput `json:"reportData,omitempty"`           // Nội dung báo cáo ban đầu
}

// AccomplishmentReportUpdateInput dữ liệu đầu vào khi cập nhật nội dung báo cáo còn draft
type AccomplishmentReportUpdateInput struct {
	ReportData ReportDataInput `json:"reportData,omitempty"` // Nội dung báo cáo thay thế
}

// ReportReviewInput body của action admin duyệt báo cáo
type ReportReviewInput struct {
	Status        string `json:"status" validate:"required,oneof=approved denied"`    // Kết quả duyệt (bắt buộc)
	AdminComments string `json:"adminComments,omitempty" validate:"omitempty,no_xss"` // Nhận xét của admin
}
