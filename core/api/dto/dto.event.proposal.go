package dto

// TimeWindowInput khung giờ diễn ra trong ngày, định dạng HH:mm
type TimeWindowInput struct {
	StartTime string `json:"startTime,omitempty"` // Giờ bắt đầu (HH:mm)
	EndTime   string `json:"endTime,omitempty"`   // Giờ kết thúc (HH:mm)
}

// EventDetailsInput chi tiết tổ chức của sự kiện (tầng transport)
type EventDetailsInput struct {
	TimeWindow     TimeWindowInput `json:"timeWindow,omitempty"`     // Khung giờ trong ngày
	EventType      string          `json:"eventType,omitempty"`      // Loại sự kiện tự do (seminar, workshop, ...)
	EventMode      string          `json:"eventMode,omitempty"`      // onsite, online, hybrid
	TargetAudience []string        `json:"targetAudience,omitempty"` // Đối tượng tham dự
	OrganizationID string          `json:"organizationId,omitempty"` // ID tổ chức đứng tên (string ObjectID)
}

// ContactInfoInput thông tin liên hệ của người đứng hồ sơ
type ContactInfoInput struct {
	Person string `json:"person,omitempty" validate:"omitempty,no_xss"` // Tên người liên hệ
	Email  string `json:"email,omitempty" validate:"omitempty,email"`   // Email liên hệ
	Phone  string `json:"phone,omitempty"`                              // Số điện thoại
}

// EventProposalCreateInput dữ liệu đầu vào khi nộp hồ sơ đề xuất (tầng transport).
// draftId tùy chọn: khi có, bản nháp nguồn phải đã nộp; mỗi bản nháp chỉ sinh một hồ sơ.
type EventProposalCreateInput struct {
	DraftID          string            `json:"draftId,omitempty"`                                                                                       // ID bản nháp nguồn (string ObjectID, tùy chọn)
	Title            string            `json:"title" validate:"required,no_xss"`                                                                        // Tên sự kiện (bắt buộc)
	Description      string            `json:"description,omitempty" validate:"omitempty,no_xss"`                                                       // Mô tả
	Category         string            `json:"category" validate:"required,oneof=academic cultural sports community-service off-campus-activity other"` // Loại hình sự kiện (bắt buộc)
	StartDate        int64             `json:"startDate,omitempty"`                                                                                     // Ngày bắt đầu (UnixMilli)
	EndDate          int64             `json:"endDate,omitempty"`                                                                                       // Ngày kết thúc (UnixMilli), mốc tính hạn tuân thủ
	Location         string            `json:"location,omitempty"`                                                                                      // Địa điểm
	EventDetails     EventDetailsInput `json:"eventDetails,omitempty"`                                                                                  // Chi tiết tổ chức
	Budget           float64           `json:"budget,omitempty" validate:"omitempty,gte=0"`                                                             // Kinh phí dự kiến, >= 0
	Objectives       []string          `json:"objectives,omitempty"`                                                                                    // Mục tiêu sự kiện
	VolunteersNeeded int               `json:"volunteersNeeded,omitempty" validate:"omitempty,gte=0"`                                                   // Số tình nguyện viên cần, >= 0
	Submitter        string            `json:"submitter,omitempty"`                                                                                     // Người nộp hồ sơ
	OrganizationType string            `json:"organizationType,omitempty" validate:"omitempty,oneof=school-based community-based"`                      // Loại tổ chức
	Contact          ContactInfoInput  `json:"contact,omitempty"`                                                                                       // Thông tin liên hệ
	Status           string            `json:"status,omitempty" validate:"omitempty,oneof=pending draft"`                                               // Trạng thái khởi tạo (mặc định: pending; draft = nộp dạng work-in-progress)
	Priority         string            `json:"priority,omitempty" validate:"omitempty,oneof=low medium high"`                                           // Mức ưu tiên (mặc định: medium)
	AssignedTo       string            `json:"assignedTo,omitempty"`                                                                                    // Reviewer được phân công
}

// EventProposalUpdateInput dữ liệu đầu vào khi cập nhật nội dung hồ sơ (tầng transport).
// Chỉ cho sửa các trường nội dung; trạng thái review và compliance đi qua action endpoints.
type EventProposalUpdateInput struct {
	Title            string            `json:"title,omitempty" validate:"omitempty,no_xss"`
	Description      string            `json:"description,omitempty" validate:"omitempty,no_xss"`
	Category         string            `json:"category,omitempty" validate:"omitempty,oneof=academic cultural sports community-service off-campus-activity other"`
	StartDate        int64             `json:"startDate,omitempty"`
	EndDate          int64             `json:"endDate,omitempty"`
	Location         string            `json:"location,omitempty"`
	EventDetails     EventDetailsInput `json:"eventDetails,omitempty"`
	Budget           float64           `json:"budget,omitempty" validate:"omitempty,gte=0"`
	Objectives       []string          `json:"objectives,omitempty"`
	VolunteersNeeded int               `json:"volunteersNeeded,omitempty" validate:"omitempty,gte=0"`
	Submitter        string            `json:"submitter,omitempty"`
	OrganizationType string            `json:"organizationType,omitempty" validate:"omitempty,oneof=school-based community-based"`
	Contact          ContactInfoInput  `json:"contact,omitempty"`
	Priority         string            `json:"priority,omitempty" validate:"omitempty,oneof=low medium high"`
	AssignedTo       string            `json:"assignedTo,omitempty"`
}

// ProposalReviewInput body của action review hồ sơ
type ProposalReviewInput struct {
	Reviewer string `json:"reviewer,omitempty"`                                       // Người review, mặc định lấy từ header X-Actor-Id
	Decision string `json:"decision" validate:"required,oneof=approve reject revise"` // Quyết định (bắt buộc)
	Comment  string `json:"comment,omitempty" validate:"omitempty,no_xss"`            // Nội dung nhận xét
}

// ComplianceDocumentInput body của action cập nhật checklist tài liệu tuân thủ
type ComplianceDocumentInput struct {
	Name      string `json:"name" validate:"required"` // Tên tài liệu trong checklist (bắt buộc)
	Submitted bool   `json:"submitted"`                // true = đánh dấu đã nộp, false = rút lại
	Path      string `json:"path,omitempty"`           // Object key trong blob store (tùy chọn)
}
