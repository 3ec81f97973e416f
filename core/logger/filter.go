package logger

import (
	"strings"

	"github.com/sirupsen/logrus"
)

// FilterHook lọc log entries theo module, collection và log type.
// Entry không khớp filter sẽ bị đánh dấu để AsyncHook bỏ qua.
type FilterHook struct {
	allowedModules     map[string]bool
	allowedCollections map[string]bool
	allowedLogTypes    map[string]bool
}

// NewFilterHook tạo filter hook từ config.
// Filter rỗng nghĩa là cho phép tất cả.
func NewFilterHook(cfg *LogConfig) *FilterHook {
	return &FilterHook{
		allowedModules:     parseFilter(cfg.FilterModules),
		allowedCollections: parseFilter(cfg.FilterCollections),
		allowedLogTypes:    parseFilter(cfg.FilterLogTypes),
	}
}

// parseFilter chuyển chuỗi "a,b,c" thành set.
// Chuỗi rỗng hoặc chứa "*" trả về nil (không lọc).
func parseFilter(raw string) map[string]bool {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	set := make(map[string]bool)
	for _, item := range strings.Split(raw, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			set[item] = true
		}
	}
	if set["*"] {
		return nil
	}
	return set
}

// Levels trả về các log levels mà hook này xử lý
func (h *FilterHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

// Fire kiểm tra entry với các filter đã cấu hình.
// Entry không khớp sẽ bị gắn cờ _filtered, AsyncHook sẽ bỏ qua.
func (h *FilterHook) Fire(entry *logrus.Entry) error {
	if !h.match(entry, "module", h.allowedModules) ||
		!h.match(entry, "collection", h.allowedCollections) ||
		!h.match(entry, "log_type", h.allowedLogTypes) {
		entry.Data["_filtered"] = true
	}
	return nil
}

// match kiểm tra một field của entry với set cho phép.
// Set nil nghĩa là không lọc field đó. Entry thiếu field vẫn được cho qua.
func (h *FilterHook) match(entry *logrus.Entry, field string, allowed map[string]bool) bool {
	if allowed == nil {
		return true
	}
	value, ok := entry.Data[field].(string)
	if !ok || value == "" {
		return true
	}
	return allowed[value]
}
