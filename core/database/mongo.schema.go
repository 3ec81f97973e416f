// Package database - Schema validator và index bổ sung cho domain event (nested, compound) không thể định nghĩa qua model tags.
package database

import (
	"context"
	"strings"

	"event_proposal/core/global"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// collectionValidator trả về $jsonSchema validator cho collection, nil nếu không có.
// Validator chỉ ràng buộc các field bất biến của domain (status enum, field bắt buộc,
// cận số học), phần formData để tự do vì payload của từng section là schemaless.
func collectionValidator(name string) bson.M {
	switch name {
	case global.MongoDB_ColNames.EventDrafts:
		return bson.M{
			"$jsonSchema": bson.M{
				"bsonType": "object",
				"required": []string{"_id", "status", "formData", "createdAt", "updatedAt"},
				"properties": bson.M{
					"status": bson.M{
						"enum": []string{"draft", "submitted"},
					},
					"formData":  bson.M{"bsonType": "object"},
					"createdAt": bson.M{"bsonType": "long"},
					"updatedAt": bson.M{"bsonType": "long"},
				},
			},
		}

	case global.MongoDB_ColNames.EventProposals:
		return bson.M{
			"$jsonSchema": bson.M{
				"bsonType": "object",
				"required": []string{"_id", "title", "category", "status", "complianceStatus", "createdAt", "updatedAt"},
				"properties": bson.M{
					"draftId": bson.M{"bsonType": "objectId"},
					"title":   bson.M{"bsonType": "string", "minLength": 1, "maxLength": 200},
					"category": bson.M{
						"enum": []string{"academic", "cultural", "sports", "community-service", "off-campus-activity", "other"},
					},
					"status": bson.M{
						"enum": []string{"draft", "pending", "approved", "rejected"},
					},
					"priority": bson.M{
						"enum": []string{"low", "medium", "high"},
					},
					"complianceStatus": bson.M{
						"enum": []string{"not_applicable", "pending", "compliant", "overdue"},
					},
					"budget":           bson.M{"bsonType": []string{"double", "int", "long"}, "minimum": 0},
					"volunteersNeeded": bson.M{"bsonType": []string{"int", "long"}, "minimum": 0},
					"contact": bson.M{
						"bsonType": "object",
						"properties": bson.M{
							"email": bson.M{"bsonType": "string", "pattern": `^.+@.+\..+$`},
						},
					},
					"reviewComments":      bson.M{"bsonType": "array"},
					"documents":           bson.M{"bsonType": "array"},
					"complianceDocuments": bson.M{"bsonType": "array"},
					"createdAt":           bson.M{"bsonType": "long"},
					"updatedAt":           bson.M{"bsonType": "long"},
				},
			},
		}

	case global.MongoDB_ColNames.Organizations:
		return bson.M{
			"$jsonSchema": bson.M{
				"bsonType": "object",
				"required": []string{"_id", "name", "createdAt", "updatedAt"},
				"properties": bson.M{
					"name": bson.M{"bsonType": "string", "minLength": 1, "maxLength": 150},
					"type": bson.M{
						"enum": []string{"school-based", "community-based"},
					},
					"createdAt": bson.M{"bsonType": "long"},
					"updatedAt": bson.M{"bsonType": "long"},
				},
			},
		}

	case global.MongoDB_ColNames.AccomplishmentReports:
		return bson.M{
			"$jsonSchema": bson.M{
				"bsonType": "object",
				"required": []string{"_id", "proposalId", "status", "createdAt", "updatedAt"},
				"properties": bson.M{
					"proposalId": bson.M{"bsonType": "objectId"},
					"status": bson.M{
						"enum": []string{"draft", "pending", "approved", "denied"},
					},
					"reportData": bson.M{
						"bsonType": "object",
						"properties": bson.M{
							"actualAttendance": bson.M{"bsonType": []string{"int", "long"}, "minimum": 0},
						},
					},
					"createdAt": bson.M{"bsonType": "long"},
					"updatedAt": bson.M{"bsonType": "long"},
				},
			},
		}

	case global.MongoDB_ColNames.FileUploadAudits:
		return bson.M{
			"$jsonSchema": bson.M{
				"bsonType": "object",
				"required": []string{"_id", "proposalId", "action", "fileInfo", "timestamp", "createdAt"},
				"properties": bson.M{
					"proposalId": bson.M{"bsonType": "objectId"},
					"action": bson.M{
						"enum": []string{"upload", "delete", "replace", "view", "download"},
					},
					"fileInfo": bson.M{
						"bsonType": "object",
						"required": []string{"name"},
						"properties": bson.M{
							"name": bson.M{"bsonType": "string", "minLength": 1},
							"size": bson.M{"bsonType": []string{"int", "long"}, "minimum": 0},
						},
					},
					"timestamp": bson.M{"bsonType": "long"},
					"createdAt": bson.M{"bsonType": "long"},
				},
			},
		}
	}

	return nil
}

// CreateEventAdditionalIndexes tạo các index compound phục vụ query pattern cụ thể
// mà model tags không diễn tả được (thứ tự sort khác nhau giữa các field).
// Gọi sau CreateIndexes cho từng collection.
func CreateEventAdditionalIndexes(ctx context.Context, db *mongo.Database) error {
	// event_drafts: (status, updatedAt desc) — listDrafts lọc theo status, sắp theo lần sửa cuối
	eventDrafts := db.Collection(global.MongoDB_ColNames.EventDrafts)
	if _, err := eventDrafts.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "status", Value: 1},
			{Key: "updatedAt", Value: -1},
		},
		Options: options.Index().SetName("draft_status_updated"),
	}); err != nil && !isIndexExistsError(err) {
		return err
	}

	// event_proposals: (status, submittedAt) — review queue lấy pending theo thứ tự nộp
	eventProposals := db.Collection(global.MongoDB_ColNames.EventProposals)
	if _, err := eventProposals.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "status", Value: 1},
			{Key: "submittedAt", Value: 1},
		},
		Options: options.Index().SetName("proposal_review_queue"),
	}); err != nil && !isIndexExistsError(err) {
		return err
	}

	// event_proposals: (complianceStatus, complianceDueDate) — sweep tìm hồ sơ quá hạn
	if _, err := eventProposals.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "complianceStatus", Value: 1},
			{Key: "complianceDueDate", Value: 1},
		},
		Options: options.Index().SetName("proposal_compliance_due"),
	}); err != nil && !isIndexExistsError(err) {
		return err
	}

	return nil
}

func isIndexExistsError(err error) bool {
	if err == nil {
		return false
	}
	s := err.Error()
	return strings.Contains(s, "already exists") || strings.Contains(s, "duplicate")
}
