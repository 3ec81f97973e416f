package main

import (
	"context"

	"event_proposal/core/api/services"
	"event_proposal/core/global"
	"event_proposal/core/logger"
)

func InitDefaultData() {
	log := logger.GetAppLogger()
	log.Info("🔄 [INIT] Starting InitDefaultData...")

	initService, err := services.NewInitService()
	if err != nil {
		log.Fatalf("Failed to initialize init service: %v", err)
	}

	// 1. Seed các tổ chức mặc định (idempotent, duplicate-key được coi là thành công)
	log.Info("🔄 [INIT] Step 1: Initializing default organizations...")
	if err := initService.InitDefaultOrganizations(); err != nil {
		log.Fatalf("Failed to initialize default organizations: %v", err)
	}
	log.Info("✅ [INIT] Step 1: Default organizations initialized")

	// 2. Đảm bảo bucket chứa file đính kèm tồn tại - Tùy chọn
	// Không fatal: khi storage chưa cấu hình hoặc lỗi, upload file sẽ trả lỗi rõ ràng
	log.Info("🔄 [INIT] Step 2: Ensuring storage bucket exists...")
	if err := global.StorageUploader.EnsureBucket(context.TODO()); err != nil {
		log.WithError(err).Error("❌ [INIT] Step 2: Failed to ensure storage bucket")
		log.Warnf("Failed to ensure storage bucket: %v", err)
	} else {
		log.Info("✅ [INIT] Step 2: Storage bucket ready")
	}

	log.Info("✅ [INIT] InitDefaultData completed successfully")
}
