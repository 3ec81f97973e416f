package database

import (
	"context"
	"fmt"
	"time"

	"event_proposal/config"
	"event_proposal/core/logger"

	"github.com/sethvargo/go-retry"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// GetInstance khởi tạo và trả về một *mongo.Client.
// Kết nối được thử lại với exponential backoff theo cấu hình
// (MongoDB_ConnectRetries lần, base delay MongoDB_RetryBaseMs).
//
// Tham số:
// - c: Con trỏ tới config.Configuration chứa thông tin cấu hình.
//
// Trả về:
// - *mongo.Client: Client MongoDB đã kết nối và ping thành công.
// - error: Lỗi nếu hết số lần thử mà vẫn không kết nối được.
func GetInstance(c *config.Configuration) (*mongo.Client, error) {
	if c.MongoDB_ConnectionURI == "" {
		return nil, fmt.Errorf("database connection URL is empty")
	}

	// Cài đặt các options cho client
	clientOptions := options.Client().ApplyURI(c.MongoDB_ConnectionURI).
		SetMaxPoolSize(50).                 // Giới hạn tối đa 50 connections
		SetMinPoolSize(10).                 // Giữ tối thiểu 10 connections trong pool
		SetConnectTimeout(5 * time.Second). // Timeout khi kết nối
		SetSocketTimeout(10 * time.Second)  // Timeout khi gửi nhận dữ liệu

	// Backoff: base delay nhân đôi sau mỗi lần thất bại, giới hạn số lần thử
	backoff := retry.WithMaxRetries(
		uint64(c.MongoDB_ConnectRetries),
		retry.NewExponential(time.Duration(c.MongoDB_RetryBaseMs)*time.Millisecond),
	)

	var client *mongo.Client
	err := retry.Do(context.Background(), backoff, func(ctx context.Context) error {
		connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()

		candidate, err := mongo.Connect(connectCtx, clientOptions)
		if err != nil {
			logger.GetAppLogger().WithError(err).Warn("⚠️ Kết nối MongoDB thất bại, sẽ thử lại")
			return retry.RetryableError(err)
		}

		// Kiểm tra kết nối
		pingCtx, cancelPing := context.WithTimeout(ctx, 2*time.Second)
		defer cancelPing()

		if err := candidate.Ping(pingCtx, nil); err != nil {
			_ = candidate.Disconnect(context.Background())
			logger.GetAppLogger().WithError(err).Warn("⚠️ Ping MongoDB thất bại, sẽ thử lại")
			return retry.RetryableError(err)
		}

		client = candidate
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB after %d retries: %w", c.MongoDB_ConnectRetries, err)
	}

	logger.GetAppLogger().Info("✅ Successfully connected to MongoDB")
	return client, nil
}

// CloseInstance đóng kết nối của MongoDB client.
func CloseInstance(client *mongo.Client) error {
	if err := client.Disconnect(context.TODO()); err != nil {
		logger.GetAppLogger().WithError(err).Error("Failed to disconnect MongoDB client")
		return err
	}
	logger.GetAppLogger().Info("Successfully disconnected from MongoDB")
	return nil
}
