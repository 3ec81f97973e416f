// Package services - Test máy trạng thái review và trục tuân thủ của hồ sơ đề xuất.
package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	models "event_proposal/core/api/models/mongodb"
	"event_proposal/core/common"
)

func TestBuildReviewUpdate_AppendsExactlyOneComment(t *testing.T) {
	now := time.Now().UnixMilli()

	for _, decision := range []string{
		models.ReviewDecisionApprove,
		models.ReviewDecisionReject,
		models.ReviewDecisionRevise,
	} {
		update, err := BuildReviewUpdate("admin-01", decision, "nhận xét", now)
		require.NoError(t, err, "quyết định %s phải hợp lệ", decision)

		require.NotNil(t, update.Push, "mọi quyết định đều phải $push vào reviewComments")
		require.Len(t, update.Push, 1, "chỉ được push vào đúng một field")

		comment, ok := update.Push["reviewComments"].(models.ReviewComment)
		require.True(t, ok, "giá trị push phải là một ReviewComment, có %T", update.Push["reviewComments"])
		assert.Equal(t, "admin-01", comment.Reviewer)
		assert.Equal(t, decision, comment.Decision)
		assert.Equal(t, now, comment.CreatedAt)

		// Không bao giờ ghi đè mảng reviewComments bằng $set
		_, overwrites := update.Set["reviewComments"]
		assert.False(t, overwrites, "reviewComments không được xuất hiện trong $set")
	}
}

func TestBuildReviewUpdate_StatusTransitions(t *testing.T) {
	now := time.Now().UnixMilli()

	update, err := BuildReviewUpdate("admin-01", models.ReviewDecisionApprove, "", now)
	require.NoError(t, err)
	assert.Equal(t, models.ProposalStatusApproved, update.Set["status"])
	assert.Equal(t, now, update.Set["decidedAt"], "approve phải đóng dấu decidedAt")

	update, err = BuildReviewUpdate("admin-01", models.ReviewDecisionReject, "", now)
	require.NoError(t, err)
	assert.Equal(t, models.ProposalStatusRejected, update.Set["status"])
	assert.Equal(t, now, update.Set["decidedAt"], "reject phải đóng dấu decidedAt")

	update, err = BuildReviewUpdate("admin-01", models.ReviewDecisionRevise, "cần bổ sung kinh phí", now)
	require.NoError(t, err)
	assert.Equal(t, models.ProposalStatusDraft, update.Set["status"], "revise trả hồ sơ về draft")
	_, hasDecidedAt := update.Set["decidedAt"]
	assert.False(t, hasDecidedAt, "revise không phải quyết định cuối, không đóng dấu decidedAt")
	assert.Equal(t, 1, update.Inc["revisionCount"], "revise phải tăng revisionCount")
}

func TestBuildReviewUpdate_RejectsBadInput(t *testing.T) {
	now := time.Now().UnixMilli()

	_, err := BuildReviewUpdate("admin-01", "escalate", "", now)
	require.Error(t, err, "quyết định ngoài approve/reject/revise phải bị từ chối")
	appErr, ok := err.(*common.Error)
	require.True(t, ok)
	assert.Equal(t, common.StatusBadRequest, appErr.StatusCode)

	_, err = BuildReviewUpdate("", models.ReviewDecisionApprove, "", now)
	require.Error(t, err, "review không có reviewer phải bị từ chối")
}

func TestInitCompliance_RequiredCategory(t *testing.T) {
	endDate := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC).UnixMilli()
	p := &models.EventProposal{
		Category: models.EventCategoryCommunityService,
		EndDate:  endDate,
	}
	InitCompliance(p, 7)

	assert.Equal(t, models.ComplianceStatusPending, p.ComplianceStatus)
	require.NotNil(t, p.ComplianceDueDate, "loại hình thuộc diện tuân thủ phải có hạn nộp")
	assert.Equal(t, endDate+7*24*time.Hour.Milliseconds(), *p.ComplianceDueDate, "hạn nộp = endDate + 7 ngày")
	require.NotEmpty(t, p.ComplianceDocuments, "checklist phải được seed theo loại hình")
	for _, doc := range p.ComplianceDocuments {
		assert.True(t, doc.Required, "mục %s trong checklist seed phải là bắt buộc", doc.Name)
		assert.False(t, doc.Submitted, "mục %s chưa được nộp lúc khởi tạo", doc.Name)
	}
}

func TestInitCompliance_ExemptCategory(t *testing.T) {
	p := &models.EventProposal{
		Category: models.EventCategoryAcademic,
		EndDate:  time.Now().UnixMilli(),
	}
	InitCompliance(p, 7)

	assert.Equal(t, models.ComplianceStatusNotApplicable, p.ComplianceStatus)
	assert.Nil(t, p.ComplianceDueDate)
	assert.Empty(t, p.ComplianceDocuments)
}

func TestEvaluateCompliance_Transitions(t *testing.T) {
	now := time.Now().UnixMilli()
	past := now - 24*time.Hour.Milliseconds()
	future := now + 24*time.Hour.Milliseconds()
	submittedAt := now

	// Đủ tài liệu bắt buộc → compliant, kể cả khi đã quá hạn (nộp muộn vẫn tính)
	p := &models.EventProposal{
		ComplianceStatus:  models.ComplianceStatusOverdue,
		ComplianceDueDate: &past,
		ComplianceDocuments: []models.ComplianceDocument{
			{Name: "post-activity-report", Required: true, Submitted: true, SubmittedAt: &submittedAt},
			{Name: "attendance-sheet", Required: true, Submitted: true, SubmittedAt: &submittedAt},
		},
	}
	assert.Equal(t, models.ComplianceStatusCompliant, EvaluateCompliance(p, now))

	// Thiếu tài liệu, còn hạn → pending
	p = &models.EventProposal{
		ComplianceStatus:  models.ComplianceStatusPending,
		ComplianceDueDate: &future,
		ComplianceDocuments: []models.ComplianceDocument{
			{Name: "post-activity-report", Required: true, Submitted: false},
		},
	}
	assert.Equal(t, models.ComplianceStatusPending, EvaluateCompliance(p, now))

	// Thiếu tài liệu, quá hạn → overdue
	p.ComplianceDueDate = &past
	assert.Equal(t, models.ComplianceStatusOverdue, EvaluateCompliance(p, now))

	// Mục không bắt buộc chưa nộp không chặn compliant
	p = &models.EventProposal{
		ComplianceStatus:  models.ComplianceStatusPending,
		ComplianceDueDate: &future,
		ComplianceDocuments: []models.ComplianceDocument{
			{Name: "post-activity-report", Required: true, Submitted: true},
			{Name: "photos", Required: false, Submitted: false},
		},
	}
	assert.Equal(t, models.ComplianceStatusCompliant, EvaluateCompliance(p, now))

	// Ngoài diện tuân thủ thì giữ nguyên bất kể checklist
	p = &models.EventProposal{ComplianceStatus: models.ComplianceStatusNotApplicable}
	assert.Equal(t, models.ComplianceStatusNotApplicable, EvaluateCompliance(p, now))
}

func TestComplianceChecklistForCategory(t *testing.T) {
	docs := ComplianceChecklistForCategory(models.EventCategoryOffCampusActivity)
	require.NotEmpty(t, docs, "off-campus-activity phải có checklist")
	names := make(map[string]bool, len(docs))
	for _, d := range docs {
		names[d.Name] = true
	}
	assert.True(t, names["parental-consent-forms"], "hoạt động ngoài trường phải yêu cầu parental-consent-forms")

	assert.Nil(t, ComplianceChecklistForCategory(models.EventCategorySports), "loại hình ngoài diện không có checklist")
}
