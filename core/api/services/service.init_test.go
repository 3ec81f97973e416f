// Package services - Test dữ liệu seed tổ chức mặc định.
package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	models "event_proposal/core/api/models/mongodb"
)

func TestDefaultOrganizations_SeedDataIsValid(t *testing.T) {
	seeds := DefaultOrganizations()
	require.NotEmpty(t, seeds, "phải có ít nhất một tổ chức mặc định")

	seen := map[string]bool{}
	for _, org := range seeds {
		assert.NotEmpty(t, org.Name, "tổ chức seed phải có tên")
		assert.False(t, seen[org.Name], "tên tổ chức '%s' bị trùng trong seed data (Name là natural key)", org.Name)
		seen[org.Name] = true

		assert.True(t, org.IsSystem, "tổ chức seed '%s' phải được đánh dấu isSystem", org.Name)
		assert.True(t, org.IsActive, "tổ chức seed '%s' phải active ngay khi tạo", org.Name)
		assert.Contains(t,
			[]string{models.OrganizationTypeSchoolBased, models.OrganizationTypeCommunityBased},
			org.Type,
			"loại tổ chức của '%s' phải là một trong hai loại được hỗ trợ", org.Name,
		)
		assert.NotEmpty(t, org.Contact.Person, "tổ chức seed '%s' phải có người liên hệ", org.Name)
		assert.True(t, org.ID.IsZero(), "seed không được gán sẵn ObjectID, để Mongo tự sinh")
	}
}
