package worker

import (
	"context"
	"time"

	"event_proposal/core/api/services"
	"event_proposal/core/logger"
)

// ComplianceSweepWorker worker để tự động chuyển hồ sơ quá hạn nộp tài liệu tuân thủ sang overdue
// Chạy định kỳ, quét các hồ sơ có complianceStatus=pending đã qua complianceDueDate
type ComplianceSweepWorker struct {
	proposalService *services.ProposalService
	interval        time.Duration // Khoảng thời gian giữa các lần quét
}

// NewComplianceSweepWorker tạo mới ComplianceSweepWorker
// Tham số:
//   - interval: Khoảng thời gian giữa các lần quét (mặc định: 1 giờ)
//
// Trả về:
//   - *ComplianceSweepWorker: Instance mới của ComplianceSweepWorker
//   - error: Lỗi nếu có trong quá trình khởi tạo
func NewComplianceSweepWorker(interval time.Duration) (*ComplianceSweepWorker, error) {
	proposalService, err := services.NewProposalService()
	if err != nil {
		return nil, err
	}

	// Set defaults
	if interval < 30*time.Second {
		interval = 1 * time.Hour // Mặc định 1 giờ
	}

	return &ComplianceSweepWorker{
		proposalService: proposalService,
		interval:        interval,
	}, nil
}

// Start bắt đầu background worker quét compliance quá hạn
// Worker chạy định kỳ theo interval, mỗi lần quét là một atomic UpdateMany
// nên chạy song song nhiều instance vẫn an toàn
func (w *ComplianceSweepWorker) Start(ctx context.Context) {
	log := logger.GetAppLogger()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	log.WithFields(map[string]interface{}{
		"interval": w.interval.String(),
	}).Info("🔄 [COMPLIANCE_SWEEP] Starting Compliance Sweep Worker...")

	for {
		select {
		case <-ctx.Done():
			log.Info("🔄 [COMPLIANCE_SWEEP] Compliance Sweep Worker stopped")
			return
		case <-ticker.C:
			func() {
				defer func() {
					if r := recover(); r != nil {
						log.WithFields(map[string]interface{}{
							"panic": r,
						}).Error("🔄 [COMPLIANCE_SWEEP] Panic khi quét compliance quá hạn, sẽ tiếp tục ở lần chạy tiếp theo")
					}
				}()

				// Gọi service để chuyển các hồ sơ quá hạn sang overdue
				sweptCount, err := w.proposalService.SweepOverdueCompliance(ctx, time.Now().UnixMilli())
				if err != nil {
					log.WithError(err).Error("🔄 [COMPLIANCE_SWEEP] Failed to sweep overdue compliance")
					return
				}

				if sweptCount > 0 {
					log.WithFields(map[string]interface{}{
						"sweptCount": sweptCount,
					}).Info("🔄 [COMPLIANCE_SWEEP] Marked overdue compliance proposals")
				}
				// Nếu sweptCount = 0, không log (giảm log noise)
			}()
		}
	}
}
