// Package models - Test hợp đồng JSON của bản nháp hồ sơ.
package models

import (
	"encoding/json"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestEventDraft_JSONUsesDraftIdKey(t *testing.T) {
	// POST /proposals/drafts trả {draftId, ...}; GET trả nguyên document,
	// nên key định danh trong JSON của model phải cùng tên draftId
	draft := EventDraft{
		ID:       primitive.NewObjectID(),
		FormData: map[string]interface{}{"overview": map[string]interface{}{"title": "Hội thao khoa"}},
		Status:   DraftStatusDraft,
	}

	raw, err := json.Marshal(draft)
	if err != nil {
		t.Fatalf("json marshal lỗi: %v", err)
	}
	var doc map[string]interface{}
	if err := json.Unmarshal(raw, &doc); err != nil {
		t.Fatalf("json unmarshal lỗi: %v", err)
	}

	got, ok := doc["draftId"].(string)
	if !ok || got != draft.ID.Hex() {
		t.Errorf("JSON phải có key draftId = %s, có %v", draft.ID.Hex(), doc["draftId"])
	}
	if _, hasID := doc["id"]; hasID {
		t.Error("JSON không được còn key 'id' song song với draftId")
	}
}
