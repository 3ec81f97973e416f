package global

import (
	"strings"

	validator "gopkg.in/go-playground/validator.v9"
)

// InitValidator khởi tạo và đăng ký các custom validator
func InitValidator() {
	// Khởi tạo validator
	Validate = validator.New()

	// Đăng ký các custom validator
	_ = Validate.RegisterValidation("no_xss", validateNoXSS)
	_ = Validate.RegisterValidation("section_name", validateSectionName)
}

// validateNoXSS kiểm tra XSS
func validateNoXSS(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	dangerousPatterns := []string{
		"<script",
		"javascript:",
		"onerror=",
		"onload=",
		"onclick=",
		"onmouseover=",
		"eval(",
		"document.cookie",
		"document.write",
		"innerHTML",
		"fromCharCode",
		"window.location",
		"<iframe",
		"<object",
		"<embed",
	}

	value = strings.ToLower(value)
	for _, pattern := range dangerousPatterns {
		if strings.Contains(value, pattern) {
			return false
		}
	}
	return true
}

// validateSectionName kiểm tra tên section hợp lệ để dùng làm key trong formData.
// Tên section trở thành field path của MongoDB nên không được chứa '$' hoặc '.'.
func validateSectionName(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" || len(value) > 64 {
		return false
	}
	if strings.ContainsAny(value, "$.") {
		return false
	}
	return true
}
