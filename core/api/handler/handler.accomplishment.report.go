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

// ReportHandler xử lý các request liên quan đến báo cáo kết quả sau sự kiện
type ReportHandler struct {
	BaseHandler[models.AccomplishmentReport, dto.AccomplishmentReportCreateInput, dto.AccomplishmentReportUpdateInput]
	ReportService *services.ReportService
}

// NewReportHandler tạo mới ReportHandler
func NewReportHandler() (*ReportHandler, error) {
	reportService, err := services.NewReportService()
	if err != nil {
		return nil, fmt.Errorf("failed to create report service: %v", err)
	}

	handler := &ReportHandler{
		ReportService: reportService,
	}
	handler.BaseService = handler.ReportService.BaseServiceMongoImpl

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

// toReportData chuyển đổi nội dung báo cáo từ DTO sang Model
func toReportData(input dto.ReportDataInput) models.ReportData {
	return models.ReportData{
		EventSummary:     input.EventSummary,
		ActualAttendance: input.ActualAttendance,
		Objectives:       input.Objectives,
		Outcomes:         input.Outcomes,
		Challenges:       input.Challenges,
		Recommendations:  input.Recommendations,
		FinancialSummary: models.FinancialSummary{
			BudgetAllocated: input.FinancialSummary.BudgetAllocated,
			ActualExpenses:  input.FinancialSummary.ActualExpenses,
			Variance:        input.FinancialSummary.Variance,
		},
	}
}

// InsertOne override method InsertOne để đi qua luồng mở báo cáo:
// hồ sơ nguồn phải đã duyệt, báo cáo khởi tạo với trạng thái draft.
func (h *ReportHandler) InsertOne(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		// Parse request body thành DTO
		var input dto.AccomplishmentReportCreateInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			h.HandleResponse(c, nil, common.NewError(
				common.ErrCodeValidationFormat,
				fmt.Sprintf("Dữ liệu gửi lên không đúng định dạng JSON hoặc không khớp với cấu trúc yêu cầu. Chi tiết: %v", err),
				common.StatusBadRequest,
				err,
			))
			return nil
		}

		if !primitive.IsValidObjectID(input.ProposalID) {
			h.HandleResponse(c, nil, common.NewError(
				common.ErrCodeValidationFormat,
				fmt.Sprintf("ProposalID '%s' không đúng định dạng MongoDB ObjectID", input.ProposalID),
				common.StatusBadRequest,
				nil,
			))
			return nil
		}

		// Chuyển đổi DTO sang Model
		report := models.AccomplishmentReport{
			ProposalID: utility.String2ObjectID(input.ProposalID),
			ReportData: toReportData(input.ReportData),
		}

		data, err := h.ReportService.CreateReport(c.Context(), report)
		h.HandleResponse(c, data, err)
		return nil
	})
}

// UpdateReportData thay nội dung báo cáo còn draft.
// Endpoint: PUT /api/v1/reports/:id/report-data
// Body: nội dung báo cáo mới (thay thế nguyên reportData cũ)
func (h *ReportHandler) UpdateReportData(c fiber.Ctx) error {
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

		var input dto.AccomplishmentReportUpdateInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			h.HandleResponse(c, nil, common.NewError(
				common.ErrCodeValidationFormat,
				fmt.Sprintf("Dữ liệu gửi lên không đúng định dạng JSON hoặc không khớp với cấu trúc yêu cầu. Chi tiết: %v", err),
				common.StatusBadRequest,
				err,
			))
			return nil
		}

		data, err := h.ReportService.UpdateReportData(c.Context(), utility.String2ObjectID(id), toReportData(input.ReportData))
		h.HandleResponse(c, data, err)
		return nil
	})
}

// SubmitReport nộp báo cáo: draft -> pending, kiểm tra nội dung tối thiểu trước khi nộp.
// Endpoint: POST /api/v1/reports/:id/submit
func (h *ReportHandler) SubmitReport(c fiber.Ctx) error {
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

		data, err := h.ReportService.SubmitReport(c.Context(), utility.String2ObjectID(id))
		h.HandleResponse(c, data, err)
		return nil
	})
}

// ReviewReport admin duyệt báo cáo pending -> approved/denied.
// Endpoint: POST /api/v1/reports/:id/review
// Body:
//   - status: approved / denied (bắt buộc)
//   - adminComments: Nhận xét của admin (tùy chọn)
func (h *ReportHandler) ReviewReport(c fiber.Ctx) error {
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

		var input dto.ReportReviewInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			h.HandleResponse(c, nil, common.NewError(
				common.ErrCodeValidationFormat,
				fmt.Sprintf("Dữ liệu gửi lên không đúng định dạng JSON hoặc không khớp với cấu trúc yêu cầu. Chi tiết: %v", err),
				common.StatusBadRequest,
				err,
			))
			return nil
		}

		data, err := h.ReportService.ReviewReport(c.Context(), utility.String2ObjectID(id), input.Status, input.AdminComments)
		h.HandleResponse(c, data, err)
		return nil
	})
}
