package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	models "event_proposal/core/api/models/mongodb"
	"event_proposal/core/common"
	"event_proposal/core/global"
	"event_proposal/core/logger"
)

// complianceChecklistByCategory liệt kê tài liệu tuân thủ bắt buộc theo loại hình sự kiện.
// Seed vào complianceDocuments lúc tiếp nhận hồ sơ thuộc diện tuân thủ.
var complianceChecklistByCategory = map[string][]string{
	models.EventCategoryCommunityService: {
		"post-activity-report",
		"attendance-sheet",
		"beneficiary-acknowledgement",
	},
	models.EventCategoryOffCampusActivity: {
		"parental-consent-forms",
		"travel-itinerary",
		"post-activity-report",
	},
}

// ProposalService quản lý vòng đời hồ sơ đề xuất: tiếp nhận, review, nộp lại,
// và trục tuân thủ sau sự kiện chạy song song với trạng thái duyệt.
type ProposalService struct {
	*BaseServiceMongoImpl[models.EventProposal]
	draftService *DraftService
}

// NewProposalService tạo mới ProposalService.
// Trả về: *ProposalService, error.
func NewProposalService() (*ProposalService, error) {
	collection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.EventProposals)
	if !exist {
		return nil, fmt.Errorf("failed to get event_proposals collection: %v", common.ErrNotFound)
	}

	draftService, err := NewDraftService()
	if err != nil {
		return nil, fmt.Errorf("failed to create draft service: %w", err)
	}

	return &ProposalService{
		BaseServiceMongoImpl: NewBaseServiceMongo[models.EventProposal](collection),
		draftService:         draftService,
	}, nil
}

// complianceGraceDays đọc số ngày gia hạn nộp tài liệu tuân thủ từ config, mặc định 7.
func complianceGraceDays() int {
	if global.MongoDB_ServerConfig != nil && global.MongoDB_ServerConfig.ComplianceGraceDays > 0 {
		return global.MongoDB_ServerConfig.ComplianceGraceDays
	}
	return 7
}

// ComplianceChecklistForCategory trả về checklist tài liệu bắt buộc cho một loại hình sự kiện,
// nil nếu loại hình không thuộc diện tuân thủ.
func ComplianceChecklistForCategory(category string) []models.ComplianceDocument {
	names, ok := complianceChecklistByCategory[category]
	if !ok {
		return nil
	}
	docs := make([]models.ComplianceDocument, 0, len(names))
	for _, name := range names {
		docs = append(docs, models.ComplianceDocument{Name: name, Required: true})
	}
	return docs
}

// InitCompliance khởi tạo trục tuân thủ lúc tiếp nhận hồ sơ. Hàm thuần.
// Loại hình thuộc diện tuân thủ: status=pending, hạn nộp = endDate + graceDays,
// checklist seed theo loại hình. Ngoài diện: not_applicable, không hạn, không checklist.
func InitCompliance(p *models.EventProposal, graceDays int) {
	if !models.ComplianceRequiredCategories[p.Category] {
		p.ComplianceStatus = models.ComplianceStatusNotApplicable
		p.ComplianceDueDate = nil
		p.ComplianceDocuments = nil
		return
	}

	p.ComplianceStatus = models.ComplianceStatusPending
	if p.EndDate > 0 {
		due := p.EndDate + int64(graceDays)*24*time.Hour.Milliseconds()
		p.ComplianceDueDate = &due
	}
	if len(p.ComplianceDocuments) == 0 {
		p.ComplianceDocuments = ComplianceChecklistForCategory(p.Category)
	}
}

// EvaluateCompliance tính trạng thái tuân thủ hiện tại của hồ sơ. Hàm thuần,
// chạy lại sau mỗi lần checklist thay đổi và trong sweep định kỳ.
// Đủ tài liệu bắt buộc thắng quá hạn: nộp muộn vẫn chuyển compliant.
func EvaluateCompliance(p *models.EventProposal, now int64) string {
	if p.ComplianceStatus == models.ComplianceStatusNotApplicable {
		return models.ComplianceStatusNotApplicable
	}

	allSubmitted := len(p.ComplianceDocuments) > 0
	for _, doc := range p.ComplianceDocuments {
		if doc.Required && !doc.Submitted {
			allSubmitted = false
			break
		}
	}
	if allSubmitted {
		return models.ComplianceStatusCompliant
	}

	if p.ComplianceDueDate != nil && now > *p.ComplianceDueDate {
		return models.ComplianceStatusOverdue
	}
	return models.ComplianceStatusPending
}

// BuildReviewUpdate dựng update document cho một quyết định review. Hàm thuần.
// Mỗi quyết định append đúng một entry vào reviewComments qua $push, không bao giờ ghi đè;
// approve/reject đóng dấu decidedAt, revise tăng revisionCount.
func BuildReviewUpdate(reviewer, decision, comment string, now int64) (*UpdateData, error) {
	if reviewer == "" {
		return nil, common.NewError(common.ErrCodeValidationInput, "Review phải có reviewer", common.StatusBadRequest, nil)
	}

	var newStatus string
	switch decision {
	case models.ReviewDecisionApprove:
		newStatus = models.ProposalStatusApproved
	case models.ReviewDecisionReject:
		newStatus = models.ProposalStatusRejected
	case models.ReviewDecisionRevise:
		newStatus = models.ProposalStatusDraft
	default:
		return nil, common.NewError(common.ErrCodeValidationInput,
			fmt.Sprintf("Quyết định review không hợp lệ: '%s', chỉ nhận approve, reject, revise", decision),
			common.StatusBadRequest, nil)
	}

	update := &UpdateData{
		Set: map[string]interface{}{"status": newStatus},
		Push: map[string]interface{}{
			"reviewComments": models.ReviewComment{
				Reviewer:  reviewer,
				Decision:  decision,
				Comment:   comment,
				CreatedAt: now,
			},
		},
	}

	switch decision {
	case models.ReviewDecisionApprove, models.ReviewDecisionReject:
		update.Set["decidedAt"] = now
	case models.ReviewDecisionRevise:
		update.Inc = map[string]interface{}{"revisionCount": 1}
	}
	return update, nil
}

// CreateProposal tiếp nhận hồ sơ đề xuất chính thức. Trạng thái khởi tạo pending
// (hoặc draft khi nộp dạng work-in-progress). Khi có draftId, bản nháp nguồn phải
// đã nộp (404 nếu không có, 412 nếu chưa nộp). Mỗi bản nháp chỉ sinh một hồ sơ,
// unique index trên draftId chặn lần tiếp nhận thứ hai với lỗi 409.
func (s *ProposalService) CreateProposal(ctx context.Context, proposal models.EventProposal) (models.EventProposal, error) {
	var zero models.EventProposal

	if proposal.Status == "" {
		proposal.Status = models.ProposalStatusPending
	}
	if proposal.Status != models.ProposalStatusPending && proposal.Status != models.ProposalStatusDraft {
		return zero, common.NewError(common.ErrCodeValidationInput,
			fmt.Sprintf("Trạng thái khởi tạo không hợp lệ: '%s', chỉ nhận pending hoặc draft", proposal.Status),
			common.StatusBadRequest, nil)
	}

	if proposal.DraftID != nil {
		draft, err := s.draftService.FindOneById(ctx, *proposal.DraftID)
		if err != nil {
			return zero, err
		}
		if draft.Status != models.DraftStatusSubmitted {
			return zero, common.NewError(common.ErrCodeBusinessState,
				"Bản nháp nguồn chưa nộp, không thể tiếp nhận hồ sơ", common.StatusPreconditionFailed, nil)
		}
	}

	if proposal.Status == models.ProposalStatusPending {
		proposal.SubmittedAt = time.Now().UnixMilli()
	}
	InitCompliance(&proposal, complianceGraceDays())

	return s.InsertOne(ctx, proposal)
}

// Review ghi nhận quyết định của admin trên hồ sơ pending.
// Guard status=pending nằm trong filter: hai review chạy song song chỉ một thắng,
// cái còn lại nhận 412. Quyết định revise mở lại bản nháp nguồn để sửa tiếp.
func (s *ProposalService) Review(ctx context.Context, id primitive.ObjectID, reviewer, decision, comment string) (models.EventProposal, error) {
	var zero models.EventProposal

	update, err := BuildReviewUpdate(reviewer, decision, comment, time.Now().UnixMilli())
	if err != nil {
		return zero, err
	}

	filter := bson.M{"_id": id, "status": models.ProposalStatusPending}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	reviewed, err := s.FindOneAndUpdate(ctx, filter, update, opts)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return zero, s.proposalStateError(ctx, id, models.ProposalStatusPending)
		}
		return zero, err
	}

	if decision == models.ReviewDecisionRevise && reviewed.DraftID != nil {
		// Hồ sơ đã về draft; bản nháp nguồn mở lại để patch section tiếp.
		// Lỗi ở bước này không rollback review, chỉ ghi log để xử lý tay.
		if _, err := s.draftService.ReopenDraft(ctx, *reviewed.DraftID); err != nil {
			logger.GetAppLogger().WithFields(logrus.Fields{
				"proposal_id": id.Hex(),
				"draft_id":    reviewed.DraftID.Hex(),
				"error":       err.Error(),
			}).Warn("⚠️ Không mở lại được bản nháp nguồn sau quyết định revise")
		}
	}
	return reviewed, nil
}

// Resubmit nộp lại hồ sơ sau khi sửa theo quyết định revise: draft -> pending.
// Từ trạng thái khác trả 412, không tồn tại trả 404.
func (s *ProposalService) Resubmit(ctx context.Context, id primitive.ObjectID) (models.EventProposal, error) {
	var zero models.EventProposal

	filter := bson.M{"_id": id, "status": models.ProposalStatusDraft}
	update := &UpdateData{
		Set: map[string]interface{}{
			"status":      models.ProposalStatusPending,
			"submittedAt": time.Now().UnixMilli(),
		},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	resubmitted, err := s.FindOneAndUpdate(ctx, filter, update, opts)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return zero, s.proposalStateError(ctx, id, models.ProposalStatusDraft)
		}
		return zero, err
	}
	return resubmitted, nil
}

// SetComplianceDocument đánh dấu nộp/gỡ một mục trong checklist tuân thủ qua positional update,
// rồi đánh giá lại complianceStatus. path là object key trong blob store khi đã nộp.
func (s *ProposalService) SetComplianceDocument(ctx context.Context, id primitive.ObjectID, name string, submitted bool, path string) (models.EventProposal, error) {
	var zero models.EventProposal
	now := time.Now().UnixMilli()

	set := map[string]interface{}{
		"complianceDocuments.$.submitted": submitted,
	}
	update := &UpdateData{Set: set}
	if submitted {
		set["complianceDocuments.$.submittedAt"] = now
		if path != "" {
			set["complianceDocuments.$.path"] = path
		}
	} else {
		update.Unset = map[string]interface{}{"complianceDocuments.$.submittedAt": ""}
	}

	filter := bson.M{"_id": id, "complianceDocuments.name": name}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	updated, err := s.FindOneAndUpdate(ctx, filter, update, opts)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return zero, s.complianceEntryError(ctx, id, name)
		}
		return zero, err
	}

	return s.refreshComplianceStatus(ctx, updated, now)
}

// refreshComplianceStatus ghi lại complianceStatus nếu đánh giá ra trạng thái mới
func (s *ProposalService) refreshComplianceStatus(ctx context.Context, p models.EventProposal, now int64) (models.EventProposal, error) {
	next := EvaluateCompliance(&p, now)
	if next == p.ComplianceStatus {
		return p, nil
	}
	return s.UpdateById(ctx, p.ID, &UpdateData{Set: map[string]interface{}{"complianceStatus": next}})
}

// SweepOverdueCompliance chuyển các hồ sơ pending đã quá hạn nộp sang overdue.
// Worker định kỳ gọi hàm này. Trả về số hồ sơ bị chuyển.
func (s *ProposalService) SweepOverdueCompliance(ctx context.Context, now int64) (int64, error) {
	filter := bson.M{
		"complianceStatus":  models.ComplianceStatusPending,
		"complianceDueDate": bson.M{"$lte": now},
	}
	update := &UpdateData{Set: map[string]interface{}{"complianceStatus": models.ComplianceStatusOverdue}}
	return s.UpdateMany(ctx, filter, update, nil)
}

// AttachDocument gắn metadata file mới upload vào hồ sơ qua $push, không đụng file cũ.
func (s *ProposalService) AttachDocument(ctx context.Context, id primitive.ObjectID, doc models.ProposalDocument) (models.EventProposal, error) {
	filter := bson.M{"_id": id}
	update := &UpdateData{Push: map[string]interface{}{"documents": doc}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	return s.FindOneAndUpdate(ctx, filter, update, opts)
}

// proposalStateError phân biệt hồ sơ không tồn tại (404) với hồ sơ sai trạng thái (412)
// khi update có guard trạng thái không match document nào.
func (s *ProposalService) proposalStateError(ctx context.Context, id primitive.ObjectID, want string) error {
	existing, err := s.FindOneById(ctx, id)
	if err != nil {
		return err
	}
	return common.NewError(common.ErrCodeBusinessState,
		fmt.Sprintf("Hồ sơ đang ở trạng thái '%s', thao tác này yêu cầu '%s'", existing.Status, want),
		common.StatusPreconditionFailed, nil)
}

// complianceEntryError phân biệt nguyên nhân khi positional update checklist không match:
// hồ sơ không tồn tại (404), không thuộc diện tuân thủ (412), hay sai tên mục (400).
func (s *ProposalService) complianceEntryError(ctx context.Context, id primitive.ObjectID, name string) error {
	existing, err := s.FindOneById(ctx, id)
	if err != nil {
		return err
	}
	if existing.ComplianceStatus == models.ComplianceStatusNotApplicable {
		return common.NewError(common.ErrCodeBusinessState,
			"Hồ sơ không thuộc diện nộp tài liệu tuân thủ", common.StatusPreconditionFailed, nil)
	}
	return common.NewError(common.ErrCodeValidationInput,
		fmt.Sprintf("Checklist tuân thủ không có mục '%s'", name), common.StatusBadRequest, nil)
}
