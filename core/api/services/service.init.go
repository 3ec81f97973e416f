package services

import (
	"context"
	"errors"
	"fmt"

	models "event_proposal/core/api/models/mongodb"
	"event_proposal/core/common"
	"event_proposal/core/logger"
)

// InitService là cấu trúc chứa các phương thức khởi tạo dữ liệu ban đầu cho hệ thống.
// Hiện tại chỉ seed các tổ chức mặc định; mọi phương thức đều an toàn khi chạy lại nhiều lần.
type InitService struct {
	organizationService *OrganizationService // Service xử lý tổ chức
}

// NewInitService tạo mới một đối tượng InitService
// Khởi tạo các service con cần thiết để xử lý các tác vụ liên quan
// Returns:
//   - *InitService: Instance mới của InitService
//   - error: Lỗi nếu có trong quá trình khởi tạo
func NewInitService() (*InitService, error) {
	organizationService, err := NewOrganizationService()
	if err != nil {
		return nil, fmt.Errorf("failed to create organization service: %v", err)
	}

	return &InitService{
		organizationService: organizationService,
	}, nil
}

// DefaultOrganizations trả về danh sách tổ chức mặc định được seed khi khởi động.
// Name là natural key (unique index); seed lại nhiều lần vẫn chỉ có một document mỗi tổ chức.
func DefaultOrganizations() []models.Organization {
	return []models.Organization{
		{
			Name: "Phòng Công tác Sinh viên",
			Type: models.OrganizationTypeSchoolBased,
			Contact: models.ContactInfo{
				Person: "Văn phòng CTSV",
				Email:  "ctsv@example.edu.vn",
			},
			IsActive: true,
			IsSystem: true, // Đánh dấu là dữ liệu hệ thống, không cho xóa qua API
		},
		{
			Name: "Đoàn Thanh niên",
			Type: models.OrganizationTypeSchoolBased,
			Contact: models.ContactInfo{
				Person: "Văn phòng Đoàn",
				Email:  "doanthanhnien@example.edu.vn",
			},
			IsActive: true,
			IsSystem: true,
		},
		{
			Name: "Trung tâm Tình nguyện Cộng đồng",
			Type: models.OrganizationTypeCommunityBased,
			Contact: models.ContactInfo{
				Person: "Ban điều phối",
				Email:  "tinhnguyen@example.org",
			},
			IsActive: true,
			IsSystem: true,
		},
	}
}

// InitDefaultOrganizations seed các tổ chức mặc định nếu chưa tồn tại.
// Idempotent: kiểm tra theo natural key (name) trước khi tạo; nếu hai tiến trình
// cùng seed và insert đụng unique index thì lỗi duplicate được hạ cấp thành thành công.
// Returns:
//   - error: Lỗi nếu có trong quá trình seed (lỗi duplicate không tính là lỗi)
func (h *InitService) InitDefaultOrganizations() error {
	log := logger.GetAppLogger()

	// Context cho phép insert system data trong quá trình seed
	initCtx := WithSystemDataInsertAllowed(context.TODO())

	for _, org := range DefaultOrganizations() {
		// Kiểm tra tổ chức đã tồn tại chưa (theo natural key)
		existing, err := h.organizationService.FindByName(context.TODO(), org.Name)
		if err == nil {
			log.Infof("✅ [INIT] Organization '%s' already exists (ID: %s), skipping creation", org.Name, existing.ID.Hex())
			continue
		}
		if !errors.Is(err, common.ErrNotFound) {
			return fmt.Errorf("failed to check organization '%s': %v", org.Name, err)
		}

		// Chưa có, tạo mới
		created, err := h.organizationService.InsertOne(initCtx, org)
		if err != nil {
			// Race giữa check và insert: một tiến trình khác vừa seed xong.
			// Duplicate key trên natural key nghĩa là dữ liệu đã có, coi như thành công.
			if errors.Is(err, common.ErrMongoDuplicate) {
				log.Infof("✅ [INIT] Organization '%s' was created concurrently, treating as success", org.Name)
				continue
			}
			return fmt.Errorf("failed to create organization '%s': %v", org.Name, err)
		}

		log.Infof("✅ [INIT] Organization '%s' created successfully (ID: %s)", org.Name, created.ID.Hex())
	}

	return nil
}
