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

// maxSectionNameLength giới hạn độ dài tên section làm key trong formData
const maxSectionNameLength = 64

// DraftService quản lý bản nháp hồ sơ sự kiện: tạo, đọc, patch từng section, nộp.
// Mọi mutation dùng atomic update với guard trạng thái trong filter,
// không bao giờ read-modify-write ở tầng ứng dụng.
type DraftService struct {
	*BaseServiceMongoImpl[models.EventDraft]
}

// NewDraftService tạo mới DraftService.
// Trả về: *DraftService, error.
func NewDraftService() (*DraftService, error) {
	collection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.EventDrafts)
	if !exist {
		return nil, fmt.Errorf("failed to get event_drafts collection: %v", common.ErrNotFound)
	}

	return &DraftService{
		BaseServiceMongoImpl: NewBaseServiceMongo[models.EventDraft](collection),
	}, nil
}

// ValidateSectionName kiểm tra tên section hợp lệ làm key MongoDB:
// không rỗng, tối đa 64 ký tự, không chứa '$' hoặc '.'.
func ValidateSectionName(section string) error {
	if section == "" {
		return common.NewError(common.ErrCodeValidationInput, "Tên section không được rỗng", common.StatusBadRequest, nil)
	}
	if len(section) > maxSectionNameLength {
		return common.NewError(common.ErrCodeValidationInput,
			fmt.Sprintf("Tên section dài %d ký tự, tối đa %d", len(section), maxSectionNameLength),
			common.StatusBadRequest, nil)
	}
	if strings.ContainsAny(section, "$.") {
		return common.NewError(common.ErrCodeValidationInput, "Tên section không được chứa ký tự '$' hoặc '.'", common.StatusBadRequest, nil)
	}
	return nil
}

// BuildSectionPatch dựng update document cho một lần patch section:
// thay nguyên giá trị formData.<section>, không merge sâu, không đụng section khác.
// updatedAt do base service tự thêm vào $set lúc ghi.
func BuildSectionPatch(section string, payload interface{}) *UpdateData {
	return &UpdateData{
		Set: map[string]interface{}{
			"formData." + section: payload,
		},
	}
}

// CreateDraft tạo bản nháp mới, status=draft, formData rỗng.
// Trả về: bản nháp vừa tạo với ID sinh mới.
func (s *DraftService) CreateDraft(ctx context.Context) (models.EventDraft, error) {
	draft := models.EventDraft{
		FormData: map[string]interface{}{},
		Status:   models.DraftStatusDraft,
	}
	return s.InsertOne(ctx, draft)
}

// GetDraft lấy bản nháp theo id.
// Trả về: bản nháp đầy đủ, hoặc ErrNotFound.
func (s *DraftService) GetDraft(ctx context.Context, id primitive.ObjectID) (models.EventDraft, error) {
	return s.FindOneById(ctx, id)
}

// PatchSection thay nguyên payload của một section trong formData bằng một atomic update.
// Guard status=draft nằm trong filter nên submit chạy song song không chen được vào giữa.
// Bản nháp đã nộp trả lỗi 412, không tồn tại trả 404.
func (s *DraftService) PatchSection(ctx context.Context, id primitive.ObjectID, section string, payload interface{}) (models.EventDraft, error) {
	var zero models.EventDraft

	if err := ValidateSectionName(section); err != nil {
		return zero, err
	}

	filter := bson.M{"_id": id, "status": models.DraftStatusDraft}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	updated, err := s.FindOneAndUpdate(ctx, filter, BuildSectionPatch(section, payload), opts)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return zero, s.draftStateError(ctx, id)
		}
		return zero, err
	}
	return updated, nil
}

// SubmitDraft chuyển bản nháp draft -> submitted và đóng dấu submittedAt.
// Nộp lại bản đã nộp trả lỗi 412, không tồn tại trả 404.
func (s *DraftService) SubmitDraft(ctx context.Context, id primitive.ObjectID) (models.EventDraft, error) {
	var zero models.EventDraft

	filter := bson.M{"_id": id, "status": models.DraftStatusDraft}
	update := &UpdateData{
		Set: map[string]interface{}{
			"status":      models.DraftStatusSubmitted,
			"submittedAt": time.Now().UnixMilli(),
		},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	submitted, err := s.FindOneAndUpdate(ctx, filter, update, opts)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return zero, s.draftStateError(ctx, id)
		}
		return zero, err
	}
	return submitted, nil
}

// ReopenDraft mở lại bản nháp để sửa tiếp section, gọi khi hồ sơ nhận quyết định revise.
// Trả về: bản nháp với status=draft, submittedAt đã gỡ.
func (s *DraftService) ReopenDraft(ctx context.Context, id primitive.ObjectID) (models.EventDraft, error) {
	update := &UpdateData{
		Set:   map[string]interface{}{"status": models.DraftStatusDraft},
		Unset: map[string]interface{}{"submittedAt": ""},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	return s.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts)
}

// ListDrafts trả về toàn bộ bản nháp theo thứ tự tạo, kèm tổng số.
func (s *DraftService) ListDrafts(ctx context.Context) ([]models.EventDraft, int64, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})
	drafts, err := s.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, 0, err
	}
	return drafts, int64(len(drafts)), nil
}

// DraftStateConflictError trả lỗi trạng thái (412) khi bản nháp tồn tại nhưng
// guard status=draft trong filter không match. Không bao giờ trả 404:
// nhánh không-tồn-tại do lookup quyết định, không phải hàm này.
func DraftStateConflictError(status string) error {
	if status == models.DraftStatusSubmitted {
		return common.NewError(common.ErrCodeBusinessState,
			"Bản nháp đã nộp, không thể thao tác. Bản nháp chỉ mở lại khi hồ sơ nhận quyết định revise",
			common.StatusPreconditionFailed, nil)
	}
	return common.ErrInvalidState
}

// draftStateError phân biệt nguyên nhân khi update có guard status=draft không match:
// bản nháp không tồn tại trả ErrNotFound (404), đã nộp trả lỗi trạng thái (412).
func (s *DraftService) draftStateError(ctx context.Context, id primitive.ObjectID) error {
	existing, err := s.FindOneById(ctx, id)
	if err != nil {
		return err
	}
	return DraftStateConflictError(existing.Status)
}
