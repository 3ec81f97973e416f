package handler

import (
	"event_proposal/core/api/dto"
	models "event_proposal/core/api/models/mongodb"
	"event_proposal/core/api/services"
	"event_proposal/core/common"
	"event_proposal/core/utility"
	"fmt"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// OrganizationHandler xử lý các request liên quan đến Organization
type OrganizationHandler struct {
	BaseHandler[models.Organization, dto.OrganizationCreateInput, dto.OrganizationUpdateInput]
	OrganizationService *services.OrganizationService
}

// NewOrganizationHandler tạo mới OrganizationHandler
func NewOrganizationHandler() (*OrganizationHandler, error) {
	organizationService, err := services.NewOrganizationService()
	if err != nil {
		return nil, fmt.Errorf("failed to create organization service: %v", err)
	}

	handler := &OrganizationHandler{
		OrganizationService: organizationService,
	}
	handler.BaseService = handler.OrganizationService.BaseServiceMongoImpl

	// Khởi tạo filterOptions với giá trị mặc định
	handler.filterOptions = FilterOptions{
		DeniedFields: []string{
			"password",
			"token",
			"secret",
			"key",
			"hash",
		},
		AllowedOperators: []string{
			"$eq",
			"$gt",
			"$gte",
			"$lt",
			"$lte",
			"$in",
			"$nin",
			"$exists",
		},
		MaxFields: 10,
	}

	return handler, nil
}

// InsertOne override method InsertOne để xử lý IsActive mặc định.
// IsActive trong DTO là pointer: không gửi lên thì tổ chức mặc định đang hoạt động.
func (h *OrganizationHandler) InsertOne(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		// Parse request body thành DTO
		var input dto.OrganizationCreateInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			h.HandleResponse(c, nil, common.NewError(
				common.ErrCodeValidationFormat,
				fmt.Sprintf("Dữ liệu gửi lên không đúng định dạng JSON hoặc không khớp với cấu trúc yêu cầu. Chi tiết: %v", err),
				common.StatusBadRequest,
				err,
			))
			return nil
		}

		// Chuyển đổi DTO sang Model
		organization := models.Organization{
			Name: input.Name,
			Type: input.Type,
			Contact: models.ContactInfo{
				Person: input.Contact.Person,
				Email:  input.Contact.Email,
				Phone:  input.Contact.Phone,
			},
			IsActive: true,
		}
		if input.IsActive != nil {
			organization.IsActive = *input.IsActive
		}

		data, err := h.OrganizationService.InsertOne(c.Context(), organization)
		h.HandleResponse(c, data, err)
		return nil
	})
}

// SetActive bật/tắt trạng thái hoạt động của tổ chức.
// Endpoint: PUT /api/v1/organizations/:id/active
// Body:
//   - isActive: true = kích hoạt, false = vô hiệu hóa (bắt buộc)
func (h *OrganizationHandler) SetActive(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		id := c.Params("id")
		if id == "" {
			h.HandleResponse(c, nil, common.NewError(
				common.ErrCodeValidationFormat,
				"ID không được để trống trong URL params",
				common.StatusBadRequest,
				nil,
			))
			return nil
		}

		if !primitive.IsValidObjectID(id) {
			h.HandleResponse(c, nil, common.NewError(
				common.ErrCodeValidationFormat,
				fmt.Sprintf("ID '%s' không đúng định dạng MongoDB ObjectID", id),
				common.StatusBadRequest,
				nil,
			))
			return nil
		}

		var body struct {
			IsActive *bool `json:"isActive"`
		}
		if err := h.ParseRequestBody(c, &body); err != nil || body.IsActive == nil {
			h.HandleResponse(c, nil, common.NewError(
				common.ErrCodeValidationInput,
				"Body phải có trường isActive kiểu boolean",
				common.StatusBadRequest,
				err,
			))
			return nil
		}

		data, err := h.OrganizationService.SetActive(c.Context(), utility.String2ObjectID(id), *body.IsActive)
		h.HandleResponse(c, data, err)
		return nil
	})
}

// DeleteById override method DeleteById để đi qua service:
// chặn xóa tổ chức hệ thống và tổ chức còn hồ sơ đề xuất trực thuộc.
func (h *OrganizationHandler) DeleteById(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		id := c.Params("id")
		if id == "" {
			h.HandleResponse(c, nil, common.NewError(
				common.ErrCodeValidationFormat,
				"ID không được để trống trong URL params",
				common.StatusBadRequest,
				nil,
			))
			return nil
		}

		if !primitive.IsValidObjectID(id) {
			h.HandleResponse(c, nil, common.NewError(
				common.ErrCodeValidationFormat,
				fmt.Sprintf("ID '%s' không đúng định dạng MongoDB ObjectID (phải là chuỗi hex 24 ký tự)", id),
				common.StatusBadRequest,
				nil,
			))
			return nil
		}

		err := h.OrganizationService.DeleteById(c.Context(), utility.String2ObjectID(id))
		h.HandleResponse(c, nil, err)
		return nil
	})
}
