// Package storage cung cấp blob store S3-compatible cho file đính kèm hồ sơ.
// Khi chưa cấu hình storage (endpoint rỗng), NoopUploader được dùng thay thế:
// upload bị bỏ qua để hệ thống vẫn chạy được ở chế độ local-only.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"time"

	"event_proposal/config"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// ErrNotConfigured được trả về khi blob storage chưa được cấu hình.
var ErrNotConfigured = errors.New("blob storage not configured")

// Thời hạn mặc định của pre-signed URL tải file
const defaultURLExpiry = 15 * time.Minute

// Uploader upload file đính kèm và sinh pre-signed URL để tải về.
type Uploader interface {
	// EnsureBucket tạo bucket nếu chưa tồn tại. Idempotent, an toàn khi gọi lại.
	EnsureBucket(ctx context.Context) error

	// Upload đẩy nội dung file lên blob store theo object key.
	Upload(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error

	// PresignedURL trả về pre-signed URL để tải file theo object key.
	// Trả về ErrNotConfigured khi storage chưa được cấu hình.
	PresignedURL(ctx context.Context, key string) (url string, expiry time.Time, err error)
}

// s3Client là tập thao tác tối thiểu của minio.Client mà MinioUploader dùng.
// Interface này cho phép test với fake client.
type s3Client interface {
	BucketExists(ctx context.Context, bucketName string) (bool, error)
	MakeBucket(ctx context.Context, bucketName string, opts minio.MakeBucketOptions) error
	PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
	PresignedGetObject(ctx context.Context, bucketName, objectName string, expires time.Duration, reqParams url.Values) (*url.URL, error)
}

// MinioUploader upload file lên storage S3-compatible qua minio client.
type MinioUploader struct {
	client    s3Client
	bucket    string
	urlExpiry time.Duration
}

// EnsureBucket tạo bucket nếu chưa tồn tại.
// Hai tiến trình cùng tạo một bucket: lỗi "đã tồn tại" được coi là thành công.
func (u *MinioUploader) EnsureBucket(ctx context.Context) error {
	exists, err := u.client.BucketExists(ctx, u.bucket)
	if err != nil {
		return fmt.Errorf("check bucket %q: %w", u.bucket, err)
	}
	if exists {
		return nil
	}

	if err := u.client.MakeBucket(ctx, u.bucket, minio.MakeBucketOptions{}); err != nil {
		errResp := minio.ToErrorResponse(err)
		if errResp.Code == "BucketAlreadyOwnedByYou" || errResp.Code == "BucketAlreadyExists" {
			return nil
		}
		return fmt.Errorf("create bucket %q: %w", u.bucket, err)
	}
	return nil
}

// Upload đẩy nội dung từ reader lên bucket theo key
func (u *MinioUploader) Upload(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error {
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	_, err := u.client.PutObject(ctx, u.bucket, key, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return fmt.Errorf("upload file to blob storage: %w", err)
	}
	return nil
}

// PresignedURL trả về pre-signed GET URL cho file
func (u *MinioUploader) PresignedURL(ctx context.Context, key string) (string, time.Time, error) {
	presigned, err := u.client.PresignedGetObject(ctx, u.bucket, key, u.urlExpiry, nil)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("generate pre-signed URL: %w", err)
	}
	expiry := time.Now().Add(u.urlExpiry)
	return presigned.String(), expiry, nil
}

// NoopUploader được dùng khi storage chưa cấu hình.
// Upload là no-op, PresignedURL trả về ErrNotConfigured.
type NoopUploader struct{}

// EnsureBucket là no-op khi storage chưa cấu hình.
func (u *NoopUploader) EnsureBucket(ctx context.Context) error {
	return nil
}

// Upload là no-op khi storage chưa cấu hình.
func (u *NoopUploader) Upload(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error {
	return nil
}

// PresignedURL trả về ErrNotConfigured khi storage chưa cấu hình.
func (u *NoopUploader) PresignedURL(ctx context.Context, key string) (string, time.Time, error) {
	return "", time.Time{}, ErrNotConfigured
}

// NewUploader tạo Uploader phù hợp theo cấu hình.
// Endpoint rỗng trả về NoopUploader, ngược lại trả về MinioUploader.
func NewUploader(c *config.Configuration) (Uploader, error) {
	if c.Storage_Endpoint == "" {
		return &NoopUploader{}, nil
	}

	client, err := minio.New(c.Storage_Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(c.Storage_AccessKey, c.Storage_SecretKey, ""),
		Secure: c.Storage_UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("create blob storage client: %w", err)
	}

	return &MinioUploader{
		client:    client,
		bucket:    c.Storage_Bucket,
		urlExpiry: defaultURLExpiry,
	}, nil
}

// BuildObjectKey sinh object key cho file đính kèm.
// Convention: {targetType}/{targetId}/{uploadedAtMilli}_{fileName}
func BuildObjectKey(targetType, targetID, fileName string, uploadedAt int64) string {
	return fmt.Sprintf("%s/%s/%d_%s", targetType, targetID, uploadedAt, fileName)
}
