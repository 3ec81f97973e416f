// Package common - Test taxonomy lỗi và chuyển đổi lỗi MongoDB.
package common

import (
	"errors"
	"fmt"
	"testing"

	"go.mongodb.org/mongo-driver/mongo"
)

func TestNewError_MessageAndIs(t *testing.T) {
	err := NewError(ErrCodeBusinessState, "Trạng thái sai", StatusPreconditionFailed, nil)

	if err.Error() != "Trạng thái sai" {
		t.Errorf("Error() phải trả về message, có: %s", err.Error())
	}

	same := NewError(ErrCodeBusinessState, "Trạng thái sai", StatusPreconditionFailed, "chi tiết khác")
	if !errors.Is(err, same) {
		t.Error("Hai lỗi cùng code và message phải match qua errors.Is")
	}

	other := NewError(ErrCodeBusinessState, "Message khác", StatusPreconditionFailed, nil)
	if errors.Is(err, other) {
		t.Error("Lỗi khác message không được match")
	}
}

func TestErrorIs_ThroughWrapping(t *testing.T) {
	wrapped := fmt.Errorf("tầng ngoài: %w", ErrNotFound)
	if !errors.Is(wrapped, ErrNotFound) {
		t.Error("errors.Is phải xuyên qua fmt.Errorf %%w")
	}
}

func TestConvertMongoError_Nil(t *testing.T) {
	if got := ConvertMongoError(nil); got != nil {
		t.Errorf("nil phải giữ nguyên nil, có: %v", got)
	}
}

func TestConvertMongoError_NoDocuments(t *testing.T) {
	got := ConvertMongoError(mongo.ErrNoDocuments)
	if !errors.Is(got, ErrNotFound) {
		t.Errorf("mongo.ErrNoDocuments phải chuyển thành ErrNotFound, có: %v", got)
	}

	var customErr *Error
	if !errors.As(got, &customErr) || customErr.StatusCode != StatusNotFound {
		t.Errorf("ErrNotFound phải mang status 404, có: %+v", got)
	}
}

func TestConvertMongoError_DuplicateKey(t *testing.T) {
	dupErr := mongo.WriteException{
		WriteErrors: mongo.WriteErrors{
			{Code: MongoErrDuplicateKey, Message: "E11000 duplicate key error collection: event_proposal.auth_organizations index: name_1"},
		},
	}

	got := ConvertMongoError(dupErr)
	if !errors.Is(got, ErrMongoDuplicate) {
		t.Errorf("Write error 11000 phải chuyển thành ErrMongoDuplicate, có: %v", got)
	}

	var customErr *Error
	if !errors.As(got, &customErr) || customErr.StatusCode != StatusConflict {
		t.Errorf("Lỗi trùng key phải mang status 409, có: %+v", got)
	}
}

func TestConvertMongoError_SchemaValidation(t *testing.T) {
	valErr := mongo.WriteException{
		WriteErrors: mongo.WriteErrors{
			{Code: MongoErrDocValidation, Message: "Document failed validation"},
		},
	}

	got := ConvertMongoError(valErr)

	var customErr *Error
	if !errors.As(got, &customErr) {
		t.Fatalf("Write error 121 phải chuyển thành *Error, có: %T", got)
	}
	if customErr.Code.Code != ErrCodeValidationSchema.Code {
		t.Errorf("Write error 121 phải mang code %s, có: %s", ErrCodeValidationSchema.Code, customErr.Code.Code)
	}
	if customErr.StatusCode != StatusBadRequest {
		t.Errorf("Vi phạm schema validator phải mang status 400, có: %d", customErr.StatusCode)
	}
}

func TestConvertMongoError_AlreadyConverted(t *testing.T) {
	got := ConvertMongoError(ErrInvalidState)
	if got != ErrInvalidState {
		t.Errorf("Lỗi đã convert phải giữ nguyên, có: %v", got)
	}
}

func TestConvertMongoError_CommandErrorRanges(t *testing.T) {
	tests := []struct {
		code int32
		want error
	}{
		{150, ErrMongoConnection},
		{250, ErrMongoAuth},
		{350, ErrMongoQuery},
		{450, ErrMongoWrite},
		{550, ErrMongoSystem},
	}

	for _, tt := range tests {
		got := ConvertMongoError(mongo.CommandError{Code: tt.code, Message: "x"})
		if !errors.Is(got, tt.want) {
			t.Errorf("CommandError code %d: muốn %v, có %v", tt.code, tt.want, got)
		}
	}
}

func TestConvertMongoError_UnknownErrorBecomes500(t *testing.T) {
	got := ConvertMongoError(errors.New("socket đóng đột ngột"))

	var customErr *Error
	if !errors.As(got, &customErr) {
		t.Fatalf("Lỗi lạ phải được bọc thành *Error, có: %T", got)
	}
	if customErr.StatusCode != StatusInternalServerError {
		t.Errorf("Lỗi lạ phải mang status 500, có: %d", customErr.StatusCode)
	}
}
