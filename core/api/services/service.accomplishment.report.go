package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	models "event_proposal/core/api/models/mongodb"
	"event_proposal/core/common"
	"event_proposal/core/global"
)

// ReportService quản lý báo cáo kết quả sau sự kiện: mở báo cáo cho hồ sơ đã duyệt,
// soạn, nộp và duyệt báo cáo. Vòng đời: draft -> pending -> approved/denied.
type ReportService struct {
	*BaseServiceMongoImpl[models.AccomplishmentReport]
	proposalService *ProposalService
}

// NewReportService tạo mới ReportService.
// Trả về: *ReportService, error.
func NewReportService() (*ReportService, error) {
	collection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.AccomplishmentReports)
	if !exist {
		return nil, fmt.Errorf("failed to get event_accomplishment_reports collection: %v", common.ErrNotFound)
	}

	proposalService, err := NewProposalService()
	if err != nil {
		return nil, fmt.Errorf("failed to create proposal service: %w", err)
	}

	return &ReportService{
		BaseServiceMongoImpl: NewBaseServiceMongo[models.AccomplishmentReport](collection),
		proposalService:      proposalService,
	}, nil
}

// ValidateReportForSubmit kiểm tra nội dung tối thiểu trước khi nộp báo cáo. Hàm thuần.
// Yêu cầu: eventSummary không rỗng, actualAttendance có mặt và >= 0, ít nhất một objective.
func ValidateReportForSubmit(data models.ReportData) error {
	if strings.TrimSpace(data.EventSummary) == "" {
		return common.NewError(common.ErrCodeValidationInput, "Báo cáo phải có eventSummary", common.StatusBadRequest, nil)
	}
	if data.ActualAttendance == nil || *data.ActualAttendance < 0 {
		return common.NewError(common.ErrCodeValidationInput, "Báo cáo phải có actualAttendance >= 0", common.StatusBadRequest, nil)
	}
	if len(data.Objectives) == 0 {
		return common.NewError(common.ErrCodeValidationInput, "Báo cáo phải có ít nhất một objective", common.StatusBadRequest, nil)
	}
	return nil
}

// CreateReport mở báo cáo kết quả cho một hồ sơ đã duyệt, trạng thái khởi tạo draft.
// Hồ sơ không tồn tại trả 404, chưa duyệt trả 412. Báo cáo thứ hai cho cùng hồ sơ
// bị unique index trên proposalId chặn với lỗi 409, không pre-check để tránh race.
func (s *ReportService) CreateReport(ctx context.Context, report models.AccomplishmentReport) (models.AccomplishmentReport, error) {
	var zero models.AccomplishmentReport

	proposal, err := s.proposalService.FindOneById(ctx, report.ProposalID)
	if err != nil {
		return zero, err
	}
	if proposal.Status != models.ProposalStatusApproved {
		return zero, common.NewError(common.ErrCodeBusinessState,
			"Hồ sơ chưa được duyệt, không thể mở báo cáo kết quả", common.StatusPreconditionFailed, nil)
	}

	report.Status = models.ReportStatusDraft
	return s.InsertOne(ctx, report)
}

// UpdateReportData thay nội dung báo cáo, chỉ khi báo cáo còn draft.
// Variance trong financialSummary do người nộp tự khai, lưu nguyên trạng.
func (s *ReportService) UpdateReportData(ctx context.Context, id primitive.ObjectID, data models.ReportData) (models.AccomplishmentReport, error) {
	var zero models.AccomplishmentReport

	filter := bson.M{"_id": id, "status": models.ReportStatusDraft}
	update := &UpdateData{Set: map[string]interface{}{"reportData": data}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	updated, err := s.FindOneAndUpdate(ctx, filter, update, opts)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return zero, s.reportStateError(ctx, id, models.ReportStatusDraft)
		}
		return zero, err
	}
	return updated, nil
}

// SubmitReport nộp báo cáo draft -> pending sau khi kiểm tra nội dung tối thiểu.
func (s *ReportService) SubmitReport(ctx context.Context, id primitive.ObjectID) (models.AccomplishmentReport, error) {
	var zero models.AccomplishmentReport

	report, err := s.FindOneById(ctx, id)
	if err != nil {
		return zero, err
	}
	if err := ValidateReportForSubmit(report.ReportData); err != nil {
		return zero, err
	}

	filter := bson.M{"_id": id, "status": models.ReportStatusDraft}
	update := &UpdateData{
		Set: map[string]interface{}{
			"status":      models.ReportStatusPending,
			"submittedAt": time.Now().UnixMilli(),
		},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	submitted, err := s.FindOneAndUpdate(ctx, filter, update, opts)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return zero, s.reportStateError(ctx, id, models.ReportStatusDraft)
		}
		return zero, err
	}
	return submitted, nil
}

// ReviewReport duyệt báo cáo pending -> approved/denied, đóng dấu reviewedAt và adminComments.
// Chỉ báo cáo pending duyệt được, trạng thái khác trả 412.
func (s *ReportService) ReviewReport(ctx context.Context, id primitive.ObjectID, status, adminComments string) (models.AccomplishmentReport, error) {
	var zero models.AccomplishmentReport

	if status != models.ReportStatusApproved && status != models.ReportStatusDenied {
		return zero, common.NewError(common.ErrCodeValidationInput,
			fmt.Sprintf("Trạng thái duyệt không hợp lệ: '%s', chỉ nhận approved hoặc denied", status),
			common.StatusBadRequest, nil)
	}

	set := map[string]interface{}{
		"status":     status,
		"reviewedAt": time.Now().UnixMilli(),
	}
	if adminComments != "" {
		set["adminComments"] = adminComments
	}

	filter := bson.M{"_id": id, "status": models.ReportStatusPending}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	reviewed, err := s.FindOneAndUpdate(ctx, filter, &UpdateData{Set: set}, opts)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return zero, s.reportStateError(ctx, id, models.ReportStatusPending)
		}
		return zero, err
	}
	return reviewed, nil
}

// reportStateError phân biệt báo cáo không tồn tại (404) với báo cáo sai trạng thái (412).
func (s *ReportService) reportStateError(ctx context.Context, id primitive.ObjectID, want string) error {
	existing, err := s.FindOneById(ctx, id)
	if err != nil {
		return err
	}
	return common.NewError(common.ErrCodeBusinessState,
		fmt.Sprintf("Báo cáo đang ở trạng thái '%s', thao tác này yêu cầu '%s'", existing.Status, want),
		common.StatusPreconditionFailed, nil)
}
