// Package database - Test parse index tag và schema validator của các collection domain.
package database

import (
	"testing"

	"event_proposal/core/global"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func TestParseIndexTag_SingleAndUnique(t *testing.T) {
	configs := parseIndexTag("single:1")
	if len(configs) != 1 {
		t.Fatalf("parseIndexTag trả về %d config, muốn 1", len(configs))
	}
	if _, ok := configs[0]["single"]; !ok {
		t.Error("config thiếu key 'single'")
	}

	configs = parseIndexTag("unique,sparse")
	if len(configs) != 1 {
		t.Fatalf("parseIndexTag trả về %d config, muốn 1", len(configs))
	}
	if _, ok := configs[0]["unique"]; !ok {
		t.Error("config thiếu key 'unique'")
	}
	if _, ok := configs[0]["sparse"]; !ok {
		t.Error("config thiếu key 'sparse'")
	}
}

func TestParseIndexTag_MultipleConfigs(t *testing.T) {
	configs := parseIndexTag("single:1;compound:proposal_review_queue")
	if len(configs) != 2 {
		t.Fatalf("parseIndexTag trả về %d config, muốn 2", len(configs))
	}
	if group, ok := configs[1]["compound"]; !ok || group != "proposal_review_queue" {
		t.Errorf("config compound sai, có: %v", configs[1])
	}
}

func TestParseOrder(t *testing.T) {
	if got := parseOrder("single:1,order:-1"); got != -1 {
		t.Errorf("parseOrder với order:-1 trả về %d, muốn -1", got)
	}
	if got := parseOrder("single:1"); got != 1 {
		t.Errorf("parseOrder mặc định trả về %d, muốn 1", got)
	}
}

func TestCompareIndex_MatchAndMismatch(t *testing.T) {
	existing := bson.M{
		"key":    bson.M{"status": int32(1)},
		"unique": true,
	}
	keys := bson.D{{Key: "status", Value: 1}}

	if !compareIndex(existing, keys, options.Index().SetUnique(true)) {
		t.Error("index trùng cấu hình nhưng compareIndex trả về false")
	}

	// Index cũ không unique, cấu hình mới unique thì phải mismatch
	existingNonUnique := bson.M{"key": bson.M{"status": int32(1)}}
	if compareIndex(existingNonUnique, keys, options.Index().SetUnique(true)) {
		t.Error("index cũ không unique nhưng compareIndex vẫn báo khớp với cấu hình unique")
	}

	// Khác field thì mismatch
	otherKeys := bson.D{{Key: "complianceStatus", Value: 1}}
	if compareIndex(existing, otherKeys, options.Index().SetUnique(true)) {
		t.Error("index khác field nhưng compareIndex vẫn báo khớp")
	}
}

func TestCollectionValidator_CoversDomainCollections(t *testing.T) {
	global.MongoDB_ColNames.EventDrafts = "event_drafts"
	global.MongoDB_ColNames.EventProposals = "event_proposals"
	global.MongoDB_ColNames.Organizations = "auth_organizations"
	global.MongoDB_ColNames.AccomplishmentReports = "event_accomplishment_reports"
	global.MongoDB_ColNames.FileUploadAudits = "event_file_audits"

	for _, name := range []string{
		"event_drafts",
		"event_proposals",
		"auth_organizations",
		"event_accomplishment_reports",
		"event_file_audits",
	} {
		validator := collectionValidator(name)
		if validator == nil {
			t.Errorf("collection %s không có validator", name)
			continue
		}
		if _, ok := validator["$jsonSchema"]; !ok {
			t.Errorf("validator của %s thiếu $jsonSchema", name)
		}
	}

	if collectionValidator("unknown_collection") != nil {
		t.Error("collection không xác định phải trả về validator nil")
	}
}

func TestCollectionValidator_ProposalStatusEnum(t *testing.T) {
	global.MongoDB_ColNames.EventProposals = "event_proposals"

	validator := collectionValidator("event_proposals")
	schema := validator["$jsonSchema"].(bson.M)
	props := schema["properties"].(bson.M)

	statusEnum := props["status"].(bson.M)["enum"].([]string)
	wantStatus := map[string]bool{"draft": true, "pending": true, "approved": true, "rejected": true}
	for _, s := range statusEnum {
		if !wantStatus[s] {
			t.Errorf("status enum chứa giá trị lạ: %s", s)
		}
		delete(wantStatus, s)
	}
	for s := range wantStatus {
		t.Errorf("status enum thiếu giá trị: %s", s)
	}

	complianceEnum := props["complianceStatus"].(bson.M)["enum"].([]string)
	wantCompliance := map[string]bool{"not_applicable": true, "pending": true, "compliant": true, "overdue": true}
	for _, s := range complianceEnum {
		if !wantCompliance[s] {
			t.Errorf("complianceStatus enum chứa giá trị lạ: %s", s)
		}
		delete(wantCompliance, s)
	}
	for s := range wantCompliance {
		t.Errorf("complianceStatus enum thiếu giá trị: %s", s)
	}
}
