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

// ProposalHandler xử lý các request liên quan đến hồ sơ đề xuất sự kiện
type ProposalHandler struct {
	BaseHandler[models.EventProposal, dto.EventProposalCreateInput, dto.EventProposalUpdateInput]
	ProposalService *services.ProposalService
}

// NewProposalHandler tạo mới ProposalHandler
func NewProposalHandler() (*ProposalHandler, error) {
	proposalService, err := services.NewProposalService()
	if err != nil {
		return nil, fmt.Errorf("failed to create proposal service: %v", err)
	}

	handler := &ProposalHandler{
		ProposalService: proposalService,
	}
	handler.BaseService = handler.ProposalService.BaseServiceMongoImpl

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

// InsertOne override method InsertOne để đi qua luồng tiếp nhận hồ sơ:
// chuyển đổi DTO sang Model rồi gọi CreateProposal (guard bản nháp nguồn,
// seed checklist tuân thủ, đặt submittedAt).
func (h *ProposalHandler) InsertOne(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		// Parse request body thành DTO
		var input dto.EventProposalCreateInput
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
		proposal := models.EventProposal{
			Title:       input.Title,
			Description: input.Description,
			Category:    input.Category,
			StartDate:   input.StartDate,
			EndDate:     input.EndDate,
			Location:    input.Location,
			EventDetails: models.EventDetails{
				TimeWindow: models.TimeWindow{
					StartTime: input.EventDetails.TimeWindow.StartTime,
					EndTime:   input.EventDetails.TimeWindow.EndTime,
				},
				EventType:      input.EventDetails.EventType,
				EventMode:      input.EventDetails.EventMode,
				TargetAudience: input.EventDetails.TargetAudience,
			},
			Budget:           input.Budget,
			Objectives:       input.Objectives,
			VolunteersNeeded: input.VolunteersNeeded,
			Submitter:        input.Submitter,
			OrganizationType: input.OrganizationType,
			Contact: models.ContactInfo{
				Person: input.Contact.Person,
				Email:  input.Contact.Email,
				Phone:  input.Contact.Phone,
			},
			Status:     input.Status,
			Priority:   input.Priority,
			AssignedTo: input.AssignedTo,
		}
		if proposal.Priority == "" {
			proposal.Priority = models.PriorityMedium
		}

		// Xử lý các ID dạng string
		if input.DraftID != "" {
			if !primitive.IsValidObjectID(input.DraftID) {
				h.HandleResponse(c, nil, common.NewError(
					common.ErrCodeValidationFormat,
					fmt.Sprintf("DraftID '%s' không đúng định dạng MongoDB ObjectID", input.DraftID),
					common.StatusBadRequest,
					nil,
				))
				return nil
			}
			draftID := utility.String2ObjectID(input.DraftID)
			proposal.DraftID = &draftID
		}
		if input.EventDetails.OrganizationID != "" {
			if !primitive.IsValidObjectID(input.EventDetails.OrganizationID) {
				h.HandleResponse(c, nil, common.NewError(
					common.ErrCodeValidationFormat,
					fmt.Sprintf("OrganizationID '%s' không đúng định dạng MongoDB ObjectID", input.EventDetails.OrganizationID),
					common.StatusBadRequest,
					nil,
				))
				return nil
			}
			organizationID := utility.String2ObjectID(input.EventDetails.OrganizationID)
			proposal.EventDetails.OrganizationID = &organizationID
		}

		// Thực hiện tiếp nhận hồ sơ
		data, err := h.ProposalService.CreateProposal(c.Context(), proposal)
		h.HandleResponse(c, data, err)
		return nil
	})
}

// Review ghi nhận quyết định của admin trên hồ sơ pending.
// Endpoint: POST /api/v1/proposals/:id/review
// Body:
//   - reviewer: Người review (tùy chọn, mặc định lấy từ header X-Actor-Id)
//   - decision: approve / reject / revise (bắt buộc)
//   - comment: Nội dung nhận xét (tùy chọn)
func (h *ProposalHandler) Review(c fiber.Ctx) error {
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

		var input dto.ProposalReviewInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			h.HandleResponse(c, nil, common.NewError(
				common.ErrCodeValidationFormat,
				fmt.Sprintf("Dữ liệu gửi lên không đúng định dạng JSON hoặc không khớp với cấu trúc yêu cầu. Chi tiết: %v", err),
				common.StatusBadRequest,
				err,
			))
			return nil
		}

		// Reviewer mặc định lấy định danh actor từ middleware
		reviewer := input.Reviewer
		if reviewer == "" {
			if actorID, ok := c.Locals("actor_id").(string); ok {
				reviewer = actorID
			}
		}
		if reviewer == "" {
			h.HandleResponse(c, nil, common.NewError(
				common.ErrCodeValidationInput,
				"Không xác định được người review: body thiếu reviewer và request thiếu header X-Actor-Id",
				common.StatusBadRequest,
				nil,
			))
			return nil
		}

		data, err := h.ProposalService.Review(c.Context(), utility.String2ObjectID(id), reviewer, input.Decision, input.Comment)
		h.HandleResponse(c, data, err)
		return nil
	})
}

// Resubmit nộp lại hồ sơ sau khi sửa theo quyết định revise (draft -> pending).
// Endpoint: POST /api/v1/proposals/:id/resubmit
func (h *ProposalHandler) Resubmit(c fiber.Ctx) error {
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

		data, err := h.ProposalService.Resubmit(c.Context(), utility.String2ObjectID(id))
		h.HandleResponse(c, data, err)
		return nil
	})
}

// SetComplianceDocument đánh dấu nộp / rút lại một mục trong checklist tài liệu tuân thủ.
// Endpoint: PUT /api/v1/proposals/:id/compliance-documents
// Body:
//   - name: Tên tài liệu trong checklist (bắt buộc)
//   - submitted: true = đã nộp, false = rút lại
//   - path: Object key trong blob store (tùy chọn)
func (h *ProposalHandler) SetComplianceDocument(c fiber.Ctx) error {
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

		var input dto.ComplianceDocumentInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			h.HandleResponse(c, nil, common.NewError(
				common.ErrCodeValidationFormat,
				fmt.Sprintf("Dữ liệu gửi lên không đúng định dạng JSON hoặc không khớp với cấu trúc yêu cầu. Chi tiết: %v", err),
				common.StatusBadRequest,
				err,
			))
			return nil
		}

		data, err := h.ProposalService.SetComplianceDocument(c.Context(), utility.String2ObjectID(id), input.Name, input.Submitted, input.Path)
		h.HandleResponse(c, data, err)
		return nil
	})
}
