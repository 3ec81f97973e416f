package handler

import (
	"bytes"
	"encoding/json"
	"event_proposal/core/api/dto"
	models "event_proposal/core/api/models/mongodb"
	"event_proposal/core/api/services"
	"event_proposal/core/common"
	"event_proposal/core/utility"
	"fmt"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DraftHandler xử lý các request liên quan đến bản nháp hồ sơ sự kiện.
// Các endpoint autosave trả về body trần (không bọc envelope) để khớp với
// client autosave; lỗi vẫn trả về envelope chuẩn qua HandleResponse.
type DraftHandler struct {
	BaseHandler[models.EventDraft, dto.EventDraftCreateInput, dto.EventDraftUpdateInput]
	DraftService *services.DraftService
}

// NewDraftHandler tạo mới DraftHandler
func NewDraftHandler() (*DraftHandler, error) {
	draftService, err := services.NewDraftService()
	if err != nil {
		return nil, fmt.Errorf("failed to create draft service: %v", err)
	}

	handler := &DraftHandler{
		DraftService: draftService,
	}
	handler.BaseService = handler.DraftService.BaseServiceMongoImpl

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

// CreateDraft tạo một bản nháp rỗng mới.
// Endpoint: POST /proposals/drafts
// Request body bị bỏ qua: bản nháp luôn khởi tạo với formData rỗng và status draft.
// Response: {draftId, status}
func (h *DraftHandler) CreateDraft(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		draft, err := h.DraftService.CreateDraft(c.Context())
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		h.HandleBareResponse(c, fiber.Map{
			"draftId": draft.ID.Hex(),
			"status":  draft.Status,
		}, nil)
		return nil
	})
}

// GetDraft lấy toàn bộ bản nháp theo ID.
// Endpoint: GET /proposals/drafts/:id
// Response: toàn bộ document bản nháp, hoặc 404 nếu không tồn tại.
func (h *DraftHandler) GetDraft(c fiber.Ctx) error {
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

		draft, err := h.DraftService.GetDraft(c.Context(), utility.String2ObjectID(id))
		h.HandleBareResponse(c, draft, err)
		return nil
	})
}

// PatchSection thay thế nguyên một section trong formData của bản nháp.
// Endpoint: PATCH /api/proposals/drafts/:id/:section
// Body là payload JSON bất kỳ của section; thay thế nguyên giá trị cũ,
// không merge sâu, không đụng các section khác. Retry cùng payload là idempotent.
// Response: {success: true}; 404 nếu bản nháp không tồn tại; 412 nếu đã nộp.
func (h *DraftHandler) PatchSection(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		var params dto.DraftSectionParams
		if err := h.ParseRequestParams(c, &params); err != nil {
			h.HandleResponse(c, nil, common.NewError(
				common.ErrCodeValidationInput,
				fmt.Sprintf("Tham số URL không hợp lệ: %v", err),
				common.StatusBadRequest,
				err,
			))
			return nil
		}

		if !primitive.IsValidObjectID(params.ID) {
			h.HandleResponse(c, nil, common.NewError(
				common.ErrCodeValidationFormat,
				fmt.Sprintf("ID '%s' không đúng định dạng MongoDB ObjectID", params.ID),
				common.StatusBadRequest,
				nil,
			))
			return nil
		}

		// Payload là giá trị JSON bất kỳ; body rỗng tương đương object rỗng
		var payload interface{}
		if len(c.Body()) == 0 {
			payload = map[string]interface{}{}
		} else {
			decoder := json.NewDecoder(bytes.NewReader(c.Body()))
			decoder.UseNumber()
			if err := decoder.Decode(&payload); err != nil {
				h.HandleResponse(c, nil, common.NewError(
					common.ErrCodeValidationFormat,
					fmt.Sprintf("Payload section phải là JSON hợp lệ. Chi tiết: %v", err),
					common.StatusBadRequest,
					err,
				))
				return nil
			}
		}

		_, err := h.DraftService.PatchSection(c.Context(), utility.String2ObjectID(params.ID), params.Section, payload)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		h.HandleBareResponse(c, fiber.Map{"success": true}, nil)
		return nil
	})
}

// SubmitDraft nộp bản nháp: chuyển status draft → submitted, khóa chỉnh sửa section.
// Endpoint: POST /proposals/drafts/:id/submit
// Response: {success: true}; 404 nếu không tồn tại; 412 nếu đã nộp trước đó.
func (h *DraftHandler) SubmitDraft(c fiber.Ctx) error {
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

		_, err := h.DraftService.SubmitDraft(c.Context(), utility.String2ObjectID(id))
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		h.HandleBareResponse(c, fiber.Map{"success": true}, nil)
		return nil
	})
}

// ListDrafts liệt kê toàn bộ bản nháp kèm tổng số.
// Endpoint: GET /proposals/drafts
// Response: {drafts: [...], count}
func (h *DraftHandler) ListDrafts(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		drafts, count, err := h.DraftService.ListDrafts(c.Context())
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		// Đảm bảo drafts không bao giờ là nil trong JSON response
		if drafts == nil {
			drafts = []models.EventDraft{}
		}

		h.HandleBareResponse(c, fiber.Map{
			"drafts": drafts,
			"count":  count,
		}, nil)
		return nil
	})
}
