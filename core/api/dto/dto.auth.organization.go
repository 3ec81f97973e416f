package dto

// OrganizationCreateInput dữ liệu đầu vào khi tạo tổ chức (tầng transport)
type OrganizationCreateInput struct {
	Name     string           `json:"name" validate:"required,no_xss"`                                        // Tên tổ chức (bắt buộc, unique)
	Type     string           `json:"type,omitempty" validate:"omitempty,oneof=school-based community-based"` // Loại tổ chức
	Contact  ContactInfoInput `json:"contact,omitempty"`                                                      // Thông tin liên hệ
	IsActive *bool            `json:"isActive,omitempty"`                                                     // Trạng thái hoạt động (mặc định: true)
}

// OrganizationUpdateInput dữ liệu đầu vào khi cập nhật tổ chức (tầng transport)
type OrganizationUpdateInput struct {
	Name     string           `json:"name,omitempty" validate:"omitempty,no_xss"`                             // Tên tổ chức (unique)
	Type     string           `json:"type,omitempty" validate:"omitempty,oneof=school-based community-based"` // Loại tổ chức
	Contact  ContactInfoInput `json:"contact,omitempty"`                                                      // Thông tin liên hệ
	IsActive *bool            `json:"isActive,omitempty"`                                                     // Trạng thái hoạt động (dùng pointer để phân biệt false và không cập nhật)
}
