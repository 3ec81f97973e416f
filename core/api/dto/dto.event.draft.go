package dto

// EventDraftCreateInput dữ liệu đầu vào khi tạo bản nháp hồ sơ (tầng transport).
// Endpoint tạo nháp công khai bỏ qua body nên mọi field đều tùy chọn;
// DTO này dùng cho đường insert quản trị.
type EventDraftCreateInput struct {
	FormData map[string]interface{} `json:"formData,omitempty"` // Map section name → section payload
}

// EventDraftUpdateInput dữ liệu đầu vào khi cập nhật bản nháp (tầng transport)
type EventDraftUpdateInput struct {
	FormData map[string]interface{} `json:"formData,omitempty"` // Thay toàn bộ formData (patch từng section dùng endpoint riêng)
}

// DraftSectionParams params trên URL của endpoint patch section
type DraftSectionParams struct {
	ID      string `uri:"id" validate:"required"`                   // ID bản nháp (string ObjectID)
	Section string `uri:"section" validate:"required,section_name"` // Tên section, không chứa '$' hoặc '.'
}
