package services

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	models "event_proposal/core/api/models/mongodb"
	"event_proposal/core/common"
	"event_proposal/core/global"
)

// OrganizationService quản lý tổ chức đứng tên hồ sơ. Name là natural key,
// unique index chặn trùng tên với lỗi 409.
type OrganizationService struct {
	*BaseServiceMongoImpl[models.Organization]
}

// NewOrganizationService tạo mới OrganizationService.
// Trả về: *OrganizationService, error.
func NewOrganizationService() (*OrganizationService, error) {
	collection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Organizations)
	if !exist {
		return nil, fmt.Errorf("failed to get auth_organizations collection: %v", common.ErrNotFound)
	}

	return &OrganizationService{
		BaseServiceMongoImpl: NewBaseServiceMongo[models.Organization](collection),
	}, nil
}

// FindByName tìm tổ chức theo tên (natural key).
func (s *OrganizationService) FindByName(ctx context.Context, name string) (models.Organization, error) {
	return s.FindOne(ctx, bson.M{"name": name}, nil)
}

// SetActive bật/tắt tổ chức. Tổ chức tắt vẫn giữ nguyên dữ liệu và hồ sơ cũ.
func (s *OrganizationService) SetActive(ctx context.Context, id primitive.ObjectID, active bool) (models.Organization, error) {
	return s.UpdateById(ctx, id, &UpdateData{Set: map[string]interface{}{"isActive": active}})
}

// DeleteById chặn xóa khi còn hồ sơ đề xuất trực thuộc, sau đó ủy quyền cho base
// (base kiểm tra tiếp IsSystem và tag quan hệ trên model).
func (s *OrganizationService) DeleteById(ctx context.Context, id primitive.ObjectID) error {
	if err := ValidateBeforeDeleteOrganization(ctx, id); err != nil {
		return err
	}
	return s.BaseServiceMongoImpl.DeleteById(ctx, id)
}
