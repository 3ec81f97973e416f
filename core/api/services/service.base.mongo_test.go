// Package services - Test ToUpdateData, default từ struct tag và parse tag quan hệ.
package services

import (
	"reflect"
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	models "event_proposal/core/api/models/mongodb"
)

func TestToUpdateData_WrapsPlainMap(t *testing.T) {
	update, err := ToUpdateData(map[string]interface{}{"status": "pending"})
	if err != nil {
		t.Fatalf("ToUpdateData trả lỗi: %v", err)
	}
	if update.Set == nil || update.Set["status"] != "pending" {
		t.Errorf("map thường phải được wrap trong $set, có: %+v", update)
	}
}

func TestToUpdateData_PassesThroughUpdateData(t *testing.T) {
	original := &UpdateData{Set: map[string]interface{}{"status": "approved"}}
	update, err := ToUpdateData(original)
	if err != nil {
		t.Fatalf("ToUpdateData trả lỗi: %v", err)
	}
	if update != original {
		t.Error("con trỏ UpdateData phải được trả lại nguyên trạng")
	}

	byValue, err := ToUpdateData(UpdateData{Unset: map[string]interface{}{"submittedAt": ""}})
	if err != nil {
		t.Fatalf("ToUpdateData với UpdateData giá trị trả lỗi: %v", err)
	}
	if byValue.Unset == nil {
		t.Error("UpdateData truyền theo giá trị phải giữ nguyên $unset")
	}
}

func TestToUpdateData_KeepsMongoOperators(t *testing.T) {
	update, err := ToUpdateData(map[string]interface{}{
		"$set":  map[string]interface{}{"status": "draft"},
		"$push": map[string]interface{}{"reviewComments": "x"},
		"$inc":  map[string]interface{}{"revisionCount": 1},
	})
	if err != nil {
		t.Fatalf("ToUpdateData trả lỗi: %v", err)
	}
	if update.Set["status"] != "draft" {
		t.Error("$set bị mất khi chuyển đổi")
	}
	if update.Push["reviewComments"] != "x" {
		t.Error("$push bị mất khi chuyển đổi")
	}
	if update.Inc["revisionCount"] != 1 {
		t.Error("$inc bị mất khi chuyển đổi")
	}
}

func TestGetInsertDefaultsFromModelType(t *testing.T) {
	defaults := getInsertDefaultsFromModelType(reflect.TypeOf(models.Organization{}))
	if got, ok := defaults["isActive"].(bool); !ok || !got {
		t.Errorf("Organization phải có default isActive = true, có: %v", defaults)
	}

	defaults = getInsertDefaultsFromModelType(reflect.TypeOf(models.EventProposal{}))
	if got, ok := defaults["priority"].(string); !ok || got != "medium" {
		t.Errorf("EventProposal phải có default priority = medium, có: %v", defaults)
	}
}

func TestApplyInsertDefaultsToModel(t *testing.T) {
	org := models.Organization{Name: "CLB Tình nguyện"}
	applyInsertDefaultsToModel(&org)
	if !org.IsActive {
		t.Error("tổ chức mới phải được set isActive = true từ default tag")
	}

	p := models.EventProposal{Title: "Hội thao", Priority: models.PriorityHigh}
	applyInsertDefaultsToModel(&p)
	if p.Priority != models.PriorityHigh {
		t.Errorf("field đã có giá trị không được ghi đè bởi default, có: %s", p.Priority)
	}
}

func TestParseDefaultValue(t *testing.T) {
	if v := parseDefaultValue("true", reflect.TypeOf(true)); v != true {
		t.Errorf("parseDefaultValue bool sai: %v", v)
	}
	if v := parseDefaultValue("medium", reflect.TypeOf("")); v != "medium" {
		t.Errorf("parseDefaultValue string sai: %v", v)
	}
	if v := parseDefaultValue("42", reflect.TypeOf(int64(0))); v != int64(42) {
		t.Errorf("parseDefaultValue int64 sai: %v", v)
	}
}

func TestRefetchFilter_PrefersIDOverOriginalFilter(t *testing.T) {
	// Update đổi chính trường trong filter (ví dụ set isActive=false với filter
	// {isActive: true}): lần đọc lại phải đi theo _id, không theo filter gốc
	id := primitive.NewObjectID()
	original := bson.M{"isActive": true}

	got := refetchFilter(models.Organization{ID: id, Name: "CLB Tình nguyện"}, original)
	filter, ok := got.(bson.M)
	if !ok {
		t.Fatalf("refetchFilter phải trả bson.M theo _id, có %T", got)
	}
	if filter["_id"] != id {
		t.Errorf("filter đọc lại phải trỏ đúng _id %s, có %v", id.Hex(), filter["_id"])
	}
	if _, hasActive := filter["isActive"]; hasActive {
		t.Error("filter đọc lại không được giữ điều kiện của filter gốc")
	}
}

func TestRefetchFilter_FallsBackWhenNoID(t *testing.T) {
	original := bson.M{"name": "CLB Tình nguyện"}

	// Model có ID zero: chưa biết _id, đành dùng lại filter gốc
	got := refetchFilter(models.Organization{Name: "CLB Tình nguyện"}, original)
	if filter, ok := got.(bson.M); !ok || filter["name"] != "CLB Tình nguyện" {
		t.Errorf("model không có _id phải fallback về filter gốc, có %v", got)
	}

	// Giá trị không phải struct cũng fallback
	got = refetchFilter("không phải model", original)
	if filter, ok := got.(bson.M); !ok || filter["name"] != "CLB Tình nguyện" {
		t.Errorf("giá trị không phải struct phải fallback về filter gốc, có %v", got)
	}
}

func TestParseRelationshipTag_Organization(t *testing.T) {
	rels := ParseRelationshipTag(reflect.TypeOf(models.Organization{}))
	if len(rels) != 1 {
		t.Fatalf("Organization phải khai báo đúng 1 quan hệ, có %d", len(rels))
	}
	rel := rels[0]
	if rel.CollectionName != "event_proposals" {
		t.Errorf("quan hệ phải trỏ tới event_proposals, có %s", rel.CollectionName)
	}
	if rel.FieldName != "eventDetails.organizationId" {
		t.Errorf("field quan hệ sai: %s", rel.FieldName)
	}
	if rel.ErrorMessage == "" {
		t.Error("quan hệ phải mang message tùy chỉnh")
	}
}

func TestParseRelationshipTagValue_MultipleAndDefaults(t *testing.T) {
	rels := parseRelationshipTagValue("collection:a,field:x|collection:b,field:y,cascade:true")
	if len(rels) != 2 {
		t.Fatalf("tag nhiều quan hệ phải parse ra 2, có %d", len(rels))
	}
	if rels[0].ErrorMessage == "" {
		t.Error("quan hệ không khai message phải nhận message mặc định")
	}
	if !rels[1].Cascade {
		t.Error("cascade:true không được parse")
	}

	// Thiếu collection hoặc field thì bỏ qua
	rels = parseRelationshipTagValue("field:x")
	if len(rels) != 0 {
		t.Errorf("tag thiếu collection phải bị bỏ qua, có %d", len(rels))
	}
}
