package storage

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/url"
	"testing"
	"time"

	"event_proposal/config"

	"github.com/minio/minio-go/v7"
)

// --- NoopUploader ---

func TestNoopUploader_Upload_IsNoOp(t *testing.T) {
	u := &NoopUploader{}
	err := u.Upload(context.Background(), "draft/abc/1_report.pdf", bytes.NewReader([]byte("x")), 1, "application/pdf")
	if err != nil {
		t.Errorf("NoopUploader.Upload() không được trả lỗi, có %v", err)
	}
}

func TestNoopUploader_PresignedURL_ReturnsErrNotConfigured(t *testing.T) {
	u := &NoopUploader{}
	_, _, err := u.PresignedURL(context.Background(), "draft/abc/1_report.pdf")
	if !errors.Is(err, ErrNotConfigured) {
		t.Errorf("NoopUploader.PresignedURL() phải trả ErrNotConfigured, có %v", err)
	}
}

func TestNoopUploader_EnsureBucket_IsNoOp(t *testing.T) {
	u := &NoopUploader{}
	if err := u.EnsureBucket(context.Background()); err != nil {
		t.Errorf("NoopUploader.EnsureBucket() không được trả lỗi, có %v", err)
	}
}

// --- NewUploader factory ---

func TestNewUploader_EmptyEndpoint_ReturnsNoopUploader(t *testing.T) {
	c := &config.Configuration{Storage_Endpoint: "", Storage_Bucket: "event-files"}

	u, err := NewUploader(c)
	if err != nil {
		t.Fatalf("NewUploader() lỗi = %v", err)
	}

	if _, ok := u.(*NoopUploader); !ok {
		t.Errorf("muốn *NoopUploader, có %T", u)
	}
}

func TestNewUploader_WithEndpoint_ReturnsMinioUploader(t *testing.T) {
	c := &config.Configuration{
		Storage_Bucket:    "event-attachments",
		Storage_Endpoint:  "localhost:9000",
		Storage_AccessKey: "minioadmin",
		Storage_SecretKey: "minioadmin",
		Storage_UseSSL:    false,
	}

	u, err := NewUploader(c)
	if err != nil {
		t.Fatalf("NewUploader() lỗi = %v", err)
	}

	mu, ok := u.(*MinioUploader)
	if !ok {
		t.Fatalf("muốn *MinioUploader, có %T", u)
	}
	if mu.bucket != "event-attachments" {
		t.Errorf("bucket = %q, muốn %q", mu.bucket, "event-attachments")
	}
}

// --- MinioUploader với fake client ---

type fakeS3Client struct {
	bucketExists    bool
	bucketExistsErr error
	makeCalled      bool
	makeErr         error
	putCalled       bool
	putErr          error
	presignErr      error
	lastBucket      string
	lastObjectName  string
	lastSize        int64
	lastContentType string
	lastBody        []byte
}

func (f *fakeS3Client) BucketExists(ctx context.Context, bucketName string) (bool, error) {
	f.lastBucket = bucketName
	return f.bucketExists, f.bucketExistsErr
}

func (f *fakeS3Client) MakeBucket(ctx context.Context, bucketName string, opts minio.MakeBucketOptions) error {
	f.makeCalled = true
	f.lastBucket = bucketName
	return f.makeErr
}

func (f *fakeS3Client) PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error) {
	f.putCalled = true
	f.lastBucket = bucketName
	f.lastObjectName = objectName
	f.lastSize = objectSize
	f.lastContentType = opts.ContentType
	f.lastBody, _ = io.ReadAll(reader)
	return minio.UploadInfo{Bucket: bucketName, Key: objectName, Size: objectSize}, f.putErr
}

func (f *fakeS3Client) PresignedGetObject(ctx context.Context, bucketName, objectName string, expires time.Duration, reqParams url.Values) (*url.URL, error) {
	f.lastBucket = bucketName
	f.lastObjectName = objectName
	if f.presignErr != nil {
		return nil, f.presignErr
	}
	return url.Parse("https://storage.example.com/" + bucketName + "/" + objectName + "?presigned=true")
}

func TestMinioUploader_EnsureBucket_CreatesWhenMissing(t *testing.T) {
	fake := &fakeS3Client{bucketExists: false}
	u := &MinioUploader{client: fake, bucket: "event-attachments", urlExpiry: defaultURLExpiry}

	if err := u.EnsureBucket(context.Background()); err != nil {
		t.Fatalf("EnsureBucket() lỗi = %v", err)
	}
	if !fake.makeCalled {
		t.Error("MakeBucket phải được gọi khi bucket chưa tồn tại")
	}
}

func TestMinioUploader_EnsureBucket_SkipsWhenExists(t *testing.T) {
	fake := &fakeS3Client{bucketExists: true}
	u := &MinioUploader{client: fake, bucket: "event-attachments", urlExpiry: defaultURLExpiry}

	if err := u.EnsureBucket(context.Background()); err != nil {
		t.Fatalf("EnsureBucket() lỗi = %v", err)
	}
	if fake.makeCalled {
		t.Error("MakeBucket không được gọi khi bucket đã tồn tại")
	}
}

func TestMinioUploader_EnsureBucket_ConcurrentCreateIsSuccess(t *testing.T) {
	// Hai tiến trình cùng tạo: MakeBucket trả "đã tồn tại" thì vẫn coi là thành công
	fake := &fakeS3Client{
		bucketExists: false,
		makeErr:      minio.ErrorResponse{Code: "BucketAlreadyOwnedByYou"},
	}
	u := &MinioUploader{client: fake, bucket: "event-attachments", urlExpiry: defaultURLExpiry}

	if err := u.EnsureBucket(context.Background()); err != nil {
		t.Errorf("EnsureBucket() phải coi BucketAlreadyOwnedByYou là thành công, có %v", err)
	}
}

func TestMinioUploader_Upload_PassesThrough(t *testing.T) {
	fake := &fakeS3Client{}
	u := &MinioUploader{client: fake, bucket: "event-attachments", urlExpiry: defaultURLExpiry}

	body := []byte("noi dung file")
	err := u.Upload(context.Background(), "proposal/abc/1_plan.pdf", bytes.NewReader(body), int64(len(body)), "application/pdf")
	if err != nil {
		t.Fatalf("Upload() lỗi = %v", err)
	}

	if !fake.putCalled {
		t.Fatal("PutObject không được gọi")
	}
	if fake.lastBucket != "event-attachments" {
		t.Errorf("bucket = %q, muốn %q", fake.lastBucket, "event-attachments")
	}
	if fake.lastObjectName != "proposal/abc/1_plan.pdf" {
		t.Errorf("objectName = %q, muốn %q", fake.lastObjectName, "proposal/abc/1_plan.pdf")
	}
	if fake.lastContentType != "application/pdf" {
		t.Errorf("contentType = %q, muốn %q", fake.lastContentType, "application/pdf")
	}
	if !bytes.Equal(fake.lastBody, body) {
		t.Error("nội dung upload không khớp với reader đầu vào")
	}
}

func TestMinioUploader_Upload_EmptyContentType_Defaults(t *testing.T) {
	fake := &fakeS3Client{}
	u := &MinioUploader{client: fake, bucket: "event-attachments", urlExpiry: defaultURLExpiry}

	err := u.Upload(context.Background(), "draft/x/1_a.bin", bytes.NewReader([]byte("x")), 1, "")
	if err != nil {
		t.Fatalf("Upload() lỗi = %v", err)
	}
	if fake.lastContentType != "application/octet-stream" {
		t.Errorf("contentType mặc định = %q, muốn application/octet-stream", fake.lastContentType)
	}
}

func TestMinioUploader_Upload_Error(t *testing.T) {
	fake := &fakeS3Client{putErr: errors.New("network timeout")}
	u := &MinioUploader{client: fake, bucket: "event-attachments", urlExpiry: defaultURLExpiry}

	err := u.Upload(context.Background(), "draft/x/1_a.bin", bytes.NewReader([]byte("x")), 1, "")
	if err == nil {
		t.Fatal("Upload() phải trả lỗi khi PutObject thất bại")
	}
	if !errors.Is(err, fake.putErr) {
		t.Errorf("lỗi phải wrap lỗi gốc, có %v", err)
	}
}

func TestMinioUploader_PresignedURL(t *testing.T) {
	fake := &fakeS3Client{}
	u := &MinioUploader{client: fake, bucket: "event-attachments", urlExpiry: defaultURLExpiry}

	urlStr, expiry, err := u.PresignedURL(context.Background(), "report/abc/1_done.pdf")
	if err != nil {
		t.Fatalf("PresignedURL() lỗi = %v", err)
	}
	if urlStr == "" {
		t.Error("PresignedURL() trả về URL rỗng")
	}
	if fake.lastObjectName != "report/abc/1_done.pdf" {
		t.Errorf("objectName = %q, muốn %q", fake.lastObjectName, "report/abc/1_done.pdf")
	}

	// Expiry phải xấp xỉ now + urlExpiry
	want := time.Now().Add(defaultURLExpiry)
	if expiry.Before(want.Add(-2*time.Second)) || expiry.After(want.Add(2*time.Second)) {
		t.Errorf("expiry = %v, muốn xấp xỉ %v", expiry, want)
	}
}

func TestBuildObjectKey_Format(t *testing.T) {
	tests := []struct {
		targetType string
		targetID   string
		fileName   string
		uploadedAt int64
		want       string
	}{
		{"draft", "65f0c1", "ke_hoach.pdf", 1700000000000, "draft/65f0c1/1700000000000_ke_hoach.pdf"},
		{"proposal", "abc", "budget.xlsx", 1, "proposal/abc/1_budget.xlsx"},
		{"report", "xyz", "tong_ket.docx", 42, "report/xyz/42_tong_ket.docx"},
	}

	for _, tt := range tests {
		got := BuildObjectKey(tt.targetType, tt.targetID, tt.fileName, tt.uploadedAt)
		if got != tt.want {
			t.Errorf("BuildObjectKey(%q, %q, %q, %d) = %q, muốn %q",
				tt.targetType, tt.targetID, tt.fileName, tt.uploadedAt, got, tt.want)
		}
	}
}
