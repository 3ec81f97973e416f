// Package services - Test validate tên section và update document của patch section.
package services

import (
	"errors"
	"strings"
	"testing"

	models "event_proposal/core/api/models/mongodb"
	"event_proposal/core/common"
)

func TestValidateSectionName_Valid(t *testing.T) {
	for _, name := range []string{"overview", "schedule", "budget-plan", "section_2"} {
		if err := ValidateSectionName(name); err != nil {
			t.Errorf("ValidateSectionName(%q) trả lỗi: %v", name, err)
		}
	}
}

func TestValidateSectionName_Invalid(t *testing.T) {
	cases := []struct {
		name    string
		section string
	}{
		{"rỗng", ""},
		{"chứa dấu chấm", "form.data"},
		{"chứa dollar", "$set"},
		{"quá dài", strings.Repeat("a", 65)},
	}
	for _, c := range cases {
		err := ValidateSectionName(c.section)
		if err == nil {
			t.Errorf("ValidateSectionName(%q) [%s] phải trả lỗi", c.section, c.name)
			continue
		}
		appErr, ok := err.(*common.Error)
		if !ok {
			t.Errorf("ValidateSectionName(%q) phải trả *common.Error, có %T", c.section, err)
			continue
		}
		if appErr.StatusCode != common.StatusBadRequest {
			t.Errorf("ValidateSectionName(%q) phải trả status 400, có %d", c.section, appErr.StatusCode)
		}
	}
}

func TestBuildSectionPatch_TouchesOnlyNamedSection(t *testing.T) {
	payload := map[string]interface{}{"title": "Hội thao khoa", "attendees": 120}
	update := BuildSectionPatch("overview", payload)

	if len(update.Set) != 1 {
		t.Fatalf("update document phải set đúng 1 key, có %d: %v", len(update.Set), update.Set)
	}
	got, ok := update.Set["formData.overview"]
	if !ok {
		t.Fatal("update document thiếu key 'formData.overview'")
	}
	if gotMap, ok := got.(map[string]interface{}); !ok || gotMap["title"] != "Hội thao khoa" {
		t.Errorf("payload của section bị biến đổi: %v", got)
	}

	// Patch thay nguyên section, không dùng toán tử merge hay array
	if update.Push != nil || update.Unset != nil || update.AddToSet != nil || update.Inc != nil {
		t.Error("patch section chỉ được dùng $set")
	}
}

func TestDraftStateConflictError_SubmittedDraftIs412(t *testing.T) {
	// Patch hoặc submit trên bản nháp đã nộp: guard status=draft miss nhưng
	// document tồn tại, phải phân loại thành 412 chứ không phải 404
	err := DraftStateConflictError(models.DraftStatusSubmitted)
	if err == nil {
		t.Fatal("bản nháp đã nộp phải trả lỗi trạng thái")
	}

	appErr, ok := err.(*common.Error)
	if !ok {
		t.Fatalf("phải trả *common.Error, có %T", err)
	}
	if appErr.StatusCode != common.StatusPreconditionFailed {
		t.Errorf("status = %d, muốn %d", appErr.StatusCode, common.StatusPreconditionFailed)
	}
	if !strings.Contains(appErr.Message, "đã nộp") {
		t.Errorf("message phải nói rõ bản nháp đã nộp, có: %s", appErr.Message)
	}
	if errors.Is(err, common.ErrNotFound) {
		t.Error("lỗi trạng thái không được lẫn với ErrNotFound (404)")
	}
}

func TestDraftStateConflictError_NeverReturns404(t *testing.T) {
	// Mọi trạng thái khác draft cũng phân loại thành 412, nhánh 404 chỉ do lookup quyết định
	for _, status := range []string{models.DraftStatusDraft, "archived", ""} {
		err := DraftStateConflictError(status)
		if err == nil {
			t.Errorf("status %q: guard miss luôn phải có lỗi", status)
			continue
		}
		appErr, ok := err.(*common.Error)
		if !ok {
			t.Errorf("status %q: phải trả *common.Error, có %T", status, err)
			continue
		}
		if appErr.StatusCode != common.StatusPreconditionFailed {
			t.Errorf("status %q: status code = %d, muốn %d", status, appErr.StatusCode, common.StatusPreconditionFailed)
		}
	}
}

func TestBuildSectionPatch_ReplacementIsIdempotent(t *testing.T) {
	first := BuildSectionPatch("budget", 5000)
	second := BuildSectionPatch("budget", 5000)

	if first.Set["formData.budget"] != second.Set["formData.budget"] {
		t.Error("hai lần patch cùng payload phải sinh update document giống nhau")
	}
}
