// Package models - Organization là đơn vị đứng tên các hồ sơ đề xuất sự kiện.
package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// OrganizationType phân loại tổ chức
const (
	OrganizationTypeSchoolBased    = "school-based"
	OrganizationTypeCommunityBased = "community-based"
)

// Organization đại diện cho tổ chức (câu lạc bộ, khoa, đơn vị cộng đồng) nộp hồ sơ.
// Name là natural key, không trùng nhau. Hồ sơ tham chiếu tổ chức theo giá trị.
type Organization struct {
	_Relationships struct{}           `relationship:"collection:event_proposals,field:eventDetails.organizationId,message:Không thể xóa tổ chức vì có %d hồ sơ đề xuất trực thuộc. Vui lòng xử lý các hồ sơ trước."`
	ID             primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Name           string             `json:"name" bson:"name" index:"unique"`
	Type           string             `json:"type,omitempty" bson:"type,omitempty"` // school-based, community-based
	Contact        ContactInfo        `json:"contact,omitempty" bson:"contact,omitempty"`
	IsActive       bool               `json:"isActive" bson:"isActive" index:"single:1" default:"true"`
	IsSystem       bool               `json:"-" bson:"isSystem"`                    // Tổ chức seed mặc định, không cho xóa qua API
	CreatedAt      int64              `json:"createdAt" bson:"createdAt"`
	UpdatedAt      int64              `json:"updatedAt" bson:"updatedAt"`
}
