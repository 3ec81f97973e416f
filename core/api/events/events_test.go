package events

import (
	"context"
	"testing"
	"time"

	models "event_proposal/core/api/models/mongodb"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestEmitDataChanged_DeliversToSubscriber(t *testing.T) {
	received := make(chan DataChangeEvent, 1)
	OnDataChanged(func(ctx context.Context, e DataChangeEvent) {
		received <- e
	})

	want := DataChangeEvent{
		CollectionName: "event_proposals",
		Operation:      OpInsert,
		Document:       models.EventProposal{Title: "Hội thao khoa"},
	}
	EmitDataChanged(context.Background(), want)

	select {
	case got := <-received:
		if got.CollectionName != want.CollectionName {
			t.Errorf("collection = %q, muốn %q", got.CollectionName, want.CollectionName)
		}
		if got.Operation != OpInsert {
			t.Errorf("operation = %q, muốn %q", got.Operation, OpInsert)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("subscriber không nhận được event")
	}
}

func TestEmitDataChanged_PanickingSubscriberDoesNotBlockOthers(t *testing.T) {
	OnDataChanged(func(ctx context.Context, e DataChangeEvent) {
		if e.Operation == OpDelete {
			panic("subscriber hỏng")
		}
	})

	received := make(chan struct{}, 1)
	OnDataChanged(func(ctx context.Context, e DataChangeEvent) {
		if e.Operation == OpDelete {
			received <- struct{}{}
		}
	})

	EmitDataChanged(context.Background(), DataChangeEvent{
		CollectionName: "event_drafts",
		Operation:      OpDelete,
	})

	select {
	case <-received:
		// Subscriber lành mạnh vẫn chạy dù subscriber khác panic
	case <-time.After(2 * time.Second):
		t.Fatal("panic của một subscriber không được chặn subscriber khác")
	}
}

func TestGetDocumentID(t *testing.T) {
	id := primitive.NewObjectID()

	if got := GetDocumentID(models.EventDraft{ID: id}); got != id {
		t.Errorf("struct theo giá trị: got %s, muốn %s", got.Hex(), id.Hex())
	}
	if got := GetDocumentID(&models.EventDraft{ID: id}); got != id {
		t.Errorf("con trỏ struct: got %s, muốn %s", got.Hex(), id.Hex())
	}
	if got := GetDocumentID(nil); !got.IsZero() {
		t.Errorf("nil phải trả zero ObjectID, có %s", got.Hex())
	}
	if got := GetDocumentID("không phải struct"); !got.IsZero() {
		t.Errorf("giá trị không phải struct phải trả zero ObjectID, có %s", got.Hex())
	}
	var nilPtr *models.EventDraft
	if got := GetDocumentID(nilPtr); !got.IsZero() {
		t.Errorf("con trỏ nil phải trả zero ObjectID, có %s", got.Hex())
	}
}
